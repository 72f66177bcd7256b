package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cookbookd/backend/config"
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
}

// ImageService stores uploaded recipe images. When an S3 bucket is
// configured uploads go there; otherwise they land under the configured
// upload directory and are served from the media URL.
type ImageService struct {
	uploadDir string
	mediaURL  string
	s3Config  *config.S3Config
	logger    *zap.Logger
}

func NewImageService(cfg *config.Config, s3Config *config.S3Config, logger *zap.Logger) *ImageService {
	return &ImageService{
		uploadDir: cfg.UploadDir,
		mediaURL:  strings.TrimSuffix(cfg.MediaURL, "/"),
		s3Config:  s3Config,
		logger:    logger,
	}
}

// Store validates the upload's MIME type against the jpeg/png/gif allow-list
// and writes it to the configured backend. Returns the URL the stored image
// is served from.
func (s *ImageService) Store(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	file, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}

	// Sniff the actual content rather than trusting the client header.
	contentType := http.DetectContentType(data)
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return "", ErrInvalidImageType
	}

	name := fmt.Sprintf("images/%s%s", uuid.New().String(), ext)

	if s.s3Config != nil {
		return s.storeS3(ctx, data, name, contentType)
	}
	return s.storeLocal(data, name)
}

func (s *ImageService) storeLocal(data []byte, name string) (string, error) {
	path := filepath.Join(s.uploadDir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	s.logger.Info("stored image", zap.String("path", path))
	return s.mediaURL + "/" + name, nil
}

func (s *ImageService) storeS3(ctx context.Context, data []byte, name, contentType string) (string, error) {
	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(name),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	url := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, name)
	s.logger.Info("uploaded image to S3", zap.String("url", url))
	return url, nil
}

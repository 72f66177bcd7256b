package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const resetTokenTTL = 24 * time.Hour

// PasswordResetService issues and consumes password-reset tokens. Tokens are
// opaque random strings stored in Redis with a TTL; consuming a token deletes
// it, so each link works once.
type PasswordResetService struct {
	redis *redis.Client
}

func NewPasswordResetService(redisClient *redis.Client) *PasswordResetService {
	return &PasswordResetService{redis: redisClient}
}

// IssueToken creates a reset token for the user and stores it with a TTL.
func (s *PasswordResetService) IssueToken(ctx context.Context, userID uint) (string, error) {
	token := strings.ReplaceAll(uuid.New().String()+uuid.New().String(), "-", "")
	key := resetKey(token)
	if err := s.redis.Set(ctx, key, userID, resetTokenTTL).Err(); err != nil {
		return "", fmt.Errorf("failed to store reset token: %w", err)
	}
	return token, nil
}

// ConsumeToken resolves a token to its user id and invalidates it.
func (s *PasswordResetService) ConsumeToken(ctx context.Context, token string) (uint, error) {
	key := resetKey(token)
	val, err := s.redis.GetDel(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrInvalidResetToken
		}
		return 0, err
	}
	userID, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, ErrInvalidResetToken
	}
	return uint(userID), nil
}

func resetKey(token string) string {
	return "password_reset:" + token
}

package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cookbookd/backend/config"
	"github.com/cookbookd/backend/internal/api"
	"github.com/cookbookd/backend/internal/middleware"
	"github.com/cookbookd/backend/internal/router"
	"github.com/cookbookd/backend/internal/service"
)

// Server wires services, handlers and routes into an HTTP server.
type Server struct {
	cfg    *config.Config
	engine *gin.Engine
	logger *zap.Logger
}

// New assembles the full application: services over the database, handlers
// over the services, routes over the handlers.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, s3Config *config.S3Config, logger *zap.Logger) *Server {
	authService := service.NewAuthService(db, cfg.JWTSecret)
	userService := service.NewUserService(db)
	recipeService := service.NewRecipeService(db)
	ingredientService := service.NewIngredientService(db)
	instructionService := service.NewInstructionService(db)
	recipeIngredientService := service.NewRecipeIngredientService(db)
	imageService := service.NewImageService(cfg, s3Config, logger)
	emailService := service.NewEmailService(cfg, logger)

	var resetService *service.PasswordResetService
	var rateLimiter *middleware.RateLimiter
	if redisClient != nil {
		resetService = service.NewPasswordResetService(redisClient)
		rateLimiter = middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
			Window:    time.Minute,
			Limit:     60,
			KeyPrefix: "ratelimit",
		})
	}

	authHandler := api.NewAuthHandler(authService, userService, resetService, emailService, cfg.PublicBaseURL, logger)
	userHandler := api.NewUserHandler(userService, authService)
	recipeHandler := api.NewRecipeHandler(recipeService, imageService, authService, rateLimiter)
	ingredientHandler := api.NewIngredientHandler(ingredientService, authService)
	instructionHandler := api.NewInstructionHandler(instructionService, authService)
	recipeIngredientHandler := api.NewRecipeIngredientHandler(recipeIngredientService, authService)

	engine := router.SetupRouter(cfg,
		authHandler,
		userHandler,
		recipeHandler,
		ingredientHandler,
		instructionHandler,
		recipeIngredientHandler,
	)

	return &Server{
		cfg:    cfg,
		engine: engine,
		logger: logger,
	}
}

// Engine exposes the underlying gin engine, mainly for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Start serves HTTP until SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	srv := &http.Server{
		Addr:    s.cfg.ServerHost + ":" + s.cfg.ServerPort,
		Handler: s.engine,
	}

	go func() {
		s.logger.Info("starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	s.logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return srv.Shutdown(ctx)
}

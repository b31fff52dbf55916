// The identity service: validates credentials against Postgres, issues
// signed+encrypted bearer tokens and reuses them through a Redis TTL
// cache.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/gavilanm26/prueba-backend-fgs/internal/cache"
	"github.com/gavilanm26/prueba-backend-fgs/internal/config"
	"github.com/gavilanm26/prueba-backend-fgs/internal/db"
	"github.com/gavilanm26/prueba-backend-fgs/internal/handler"
	"github.com/gavilanm26/prueba-backend-fgs/internal/model"
	"github.com/gavilanm26/prueba-backend-fgs/internal/observe"
	"github.com/gavilanm26/prueba-backend-fgs/internal/service"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger := observe.NewLogger(cfg.Server.Mode)
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	signKey, err := cfg.Token.SigningKey()
	if err != nil {
		logger.Fatal("key material missing", zap.Error(err))
	}

	pool, err := db.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		logger.Fatal("postgres connection failed", zap.Error(err))
	}
	defer pool.Close()

	repo := &db.Postgres{Pool: pool}
	users := service.NewUserStore(repo)
	if err := users.EnsureSchema(ctx); err != nil {
		logger.Fatal("schema bootstrap failed", zap.Error(err))
	}
	if seedUser := os.Getenv("SEED_USERNAME"); seedUser != "" {
		if err := users.EnsureUser(ctx, seedUser, os.Getenv("SEED_PASSWORD")); err != nil {
			logger.Fatal("seed user bootstrap failed", zap.Error(err))
		}
	}

	tokenCache, err := cache.NewRedisCache(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Fatal("redis connection failed", zap.Error(err))
	}

	issuer, err := service.NewIssuerService(users, tokenCache, signKey, cfg.Token.Passphrase, cfg.Token.ExpiresIn, logger)
	if err != nil {
		logger.Fatal("issuer setup failed", zap.Error(err))
	}

	generate := observe.Wrap(logger, "generate_token",
		func(out *model.AuthResponse, err error) int { return handler.StatusFor(err) },
		func(ctx context.Context, req model.AuthRequest) (*model.AuthResponse, error) {
			return issuer.GenerateToken(ctx, req.Username, req.Password)
		},
	)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(handler.RequestLogger(logger))

	router.GET("/healthz", handler.Health)
	router.POST("/v1/auth", handler.NewAuthHandler(handler.GenerateTokenFunc(generate)).GenerateToken)

	run(router, cfg.Server.Port, logger)
}

func run(router *gin.Engine, port string, logger *zap.Logger) {
	srv := &http.Server{Addr: ":" + port, Handler: router}

	go func() {
		logger.Info("identity service listening", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
	logger.Info("identity service stopped")
}

// The products service: verifies bearer tokens issued by the identity
// service without calling back into it, then serves its guarded surface.
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

	"github.com/gavilanm26/prueba-backend-fgs/internal/config"
	"github.com/gavilanm26/prueba-backend-fgs/internal/handler"
	"github.com/gavilanm26/prueba-backend-fgs/internal/observe"
	"github.com/gavilanm26/prueba-backend-fgs/internal/service"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger := observe.NewLogger(cfg.Server.Mode)
	defer func() { _ = logger.Sync() }()

	verifyKey, err := cfg.Token.VerifyKey()
	if err != nil {
		logger.Fatal("key material missing", zap.Error(err))
	}

	verifier, err := service.NewVerifierService(verifyKey, cfg.Token.Passphrase)
	if err != nil {
		logger.Fatal("verifier setup failed", zap.Error(err))
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(handler.RequestLogger(logger))

	router.GET("/healthz", handler.Health)

	guarded := router.Group("/v1/credits", handler.TokenGuard(verifier))
	guarded.GET("/identity", handler.Identity)

	srv := &http.Server{Addr: ":" + cfg.Server.Port, Handler: router}

	go func() {
		logger.Info("products service listening", zap.String("port", cfg.Server.Port))
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
	logger.Info("products service stopped")
}

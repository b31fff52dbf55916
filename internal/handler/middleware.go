package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gavilanm26/prueba-backend-fgs/internal/model"
	"github.com/gavilanm26/prueba-backend-fgs/internal/observe"
	"github.com/gavilanm26/prueba-backend-fgs/internal/service"
)

const authUserKey = "auth_user"

// TokenGuard verifies the bearer token on every request and attaches the
// recovered identity to the context. A rejected token always aborts; a
// fresh login is the only recovery.
func TokenGuard(verifier *service.VerifierService) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := verifier.VerifyAuthorization(c.GetHeader("Authorization"))
		if err != nil {
			writeError(c, err)
			c.Abort()
			return
		}

		c.Set(authUserKey, identity)
		c.Next()
	}
}

// GetAuthUser returns the identity the guard attached, or nil outside a
// guarded route.
func GetAuthUser(c *gin.Context) *model.VerifiedIdentity {
	if value, ok := c.Get(authUserKey); ok {
		if identity, ok := value.(*model.VerifiedIdentity); ok {
			return identity
		}
	}
	return nil
}

// RequestLogger logs each request at a level classified from the
// response status.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		logger.Log(observe.LevelFor(status), "http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
}

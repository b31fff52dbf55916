package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gavilanm26/prueba-backend-fgs/internal/apperr"
	"github.com/gavilanm26/prueba-backend-fgs/internal/model"
)

// GenerateTokenFunc is the issuance operation the auth endpoint fronts.
// The composition root may wrap it with observability before wiring it
// in; the handler neither knows nor cares.
type GenerateTokenFunc func(ctx context.Context, req model.AuthRequest) (*model.AuthResponse, error)

type AuthHandler struct {
	generate GenerateTokenFunc
}

func NewAuthHandler(generate GenerateTokenFunc) *AuthHandler {
	return &AuthHandler{generate: generate}
}

// GenerateToken handles POST /v1/auth: validates credentials and returns
// a bearer token, reusing a cached one when available.
func (h *AuthHandler) GenerateToken(c *gin.Context) {
	var req model.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	resp, err := h.generate(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// StatusFor maps application errors to HTTP status codes. It is the one
// place the error taxonomy meets HTTP.
func StatusFor(err error) int {
	if err == nil {
		return http.StatusOK
	}
	switch apperr.KindOf(err) {
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError turns an application error into its HTTP response. Messages
// stay generic.
func writeError(c *gin.Context, err error) {
	c.JSON(StatusFor(err), gin.H{"error": apperr.Message(err)})
}

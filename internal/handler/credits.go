package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Identity is the guarded endpoint of the products service: it echoes
// the identity the TokenGuard recovered from the bearer token. The
// credits CRUD surface that normally sits behind the guard lives
// elsewhere.
func Identity(c *gin.Context) {
	identity := GetAuthUser(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, identity)
}

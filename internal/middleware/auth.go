package middleware

import (
	"net/http"
	"strings"

	"github.com/22DP3HEisu/JustFitness-Mobile/internal/pkg/token"

	"github.com/gin-gonic/gin"
)

// JWTAuth guards protected routes. Only access tokens pass: a refresh token
// presented as a bearer credential is rejected the same as any other invalid
// token. On success the user's id and email land in the Gin context.
func JWTAuth(tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "AUTH_HEADER_MISSING", "Authorization header is required")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, "INVALID_AUTH_FORMAT", "Authorization header must be: Bearer <token>")
			return
		}

		claims, err := tokens.Validate(strings.TrimSpace(parts[1]), token.KindAccess)
		if err != nil {
			abortUnauthorized(c, "INVALID_TOKEN", "Token is invalid or expired")
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error":   gin.H{"code": code, "message": message},
	})
}

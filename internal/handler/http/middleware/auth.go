package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/traceblog/internal/domain/entity"
	"github.com/mikiasgoitom/traceblog/internal/handler/http/dto"
)

// Authenticator verifies a bearer token.
type Authenticator interface {
	Authenticate(tokenStr string) (*entity.Claims, error)
}

// AuthMiddleWare rejects requests without a valid bearer token and stores
// the user id under "userID".
func AuthMiddleWare(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}
		token, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c, "Missing or invalid Authorization header")
			return
		}
		claims, err := auth.Authenticate(token)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}
		c.Set("userID", claims.UserID)
		c.Set("userType", string(claims.UserType))
		c.Next()
	}
}

// OptionalAuth identifies the viewer when a valid token is present and
// otherwise lets the request through anonymously.
func OptionalAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if claims, err := auth.Authenticate(token); err == nil {
				c.Set("userID", claims.UserID)
				c.Set("userType", string(claims.UserType))
			}
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(header[len(prefix):]), true
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
		Message:    message,
		StatusCode: http.StatusUnauthorized,
		Error:      http.StatusText(http.StatusUnauthorized),
	})
}

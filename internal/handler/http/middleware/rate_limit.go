package middleware

import (
	"net/http"

	"github.com/didip/tollbooth/v7"
	"github.com/didip/tollbooth/v7/limiter"
	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/traceblog/internal/handler/http/dto"
)

// RateLimiter rejects requests over the limiter's rate with 429.
func RateLimiter(lmt *limiter.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if httpErr := tollbooth.LimitByRequest(lmt, c.Writer, c.Request); httpErr != nil {
			c.AbortWithStatusJSON(httpErr.StatusCode, dto.ErrorResponse{
				Message:    httpErr.Message,
				StatusCode: httpErr.StatusCode,
				Error:      http.StatusText(httpErr.StatusCode),
			})
			return
		}
		c.Next()
	}
}

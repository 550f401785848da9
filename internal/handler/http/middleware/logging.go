package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/traceblog/internal/infrastructure/metrics"
	usecasecontract "github.com/mikiasgoitom/traceblog/internal/usecase/contract"
)

// RequestLogger logs every request once it completes and records it in
// the request metrics, labelled by route pattern.
func RequestLogger(logger usecasecontract.IAppLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		elapsed := time.Since(start)
		metrics.ObserveHTTPRequest(c.Request.Method, route, strconv.Itoa(status), elapsed.Seconds())

		entry := logger.
			WithField("method", c.Request.Method).
			WithField("route", route).
			WithField("status", status).
			WithField("duration_ms", elapsed.Milliseconds())
		if userID := c.GetString("userID"); userID != "" {
			entry = entry.WithField("user_id", userID)
		}
		switch {
		case len(c.Errors) > 0:
			entry.Errorf("request failed: %s", c.Errors.String())
		case status >= 500:
			entry.Errorf("request failed")
		case status >= 400:
			entry.Warnf("request rejected")
		default:
			entry.Infof("request served")
		}
	}
}

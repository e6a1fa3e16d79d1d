// Package middleware provides the gin middleware of the HTTP server: access logging,
// panic recovery and request metrics.
package middleware

import (
	"github.com/DenisKhanov/GenAPI/internal/server/constant"
	"github.com/DenisKhanov/GenAPI/internal/server/models"
	"github.com/gin-gonic/gin"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	"net/http"
	"time"
)

// Recorder receives one event per served request.
type Recorder interface {
	RecordHTTPRequest(method, path string, status int, duration time.Duration)
}

// LogrusLog logs every request with logrus once it has been served.
func LogrusLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := logrus.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency":    time.Since(start),
			"client_ip":  c.ClientIP(),
			"request_id": chimw.GetReqID(c.Request.Context()),
		})
		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			entry.Error("request failed")
		case status >= http.StatusBadRequest:
			entry.Warn("request rejected")
		default:
			entry.Info("request served")
		}
	}
}

// Recovery converts a panic into a 500 JSON response so a single request can't bring down the service.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		logrus.WithField("panic", recovered).Error("recovered from panic in handler")
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.Failed(constant.ERR_TEXT_INTERNAL))
	})
}

// Metrics reports every request to the recorder, labelled with the matched route.
func Metrics(recorder Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		recorder.RecordHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}

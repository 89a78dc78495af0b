package middleware

import (
	"fmt"
	"strconv"
	"time"

	"github.com/ariebrainware/cabinet-pediatrie/util"
	"github.com/gin-gonic/gin"
)

// EndpointCallLogger logs each HTTP request and records it in the request
// metrics when metrics were injected.
func EndpointCallLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		status := c.Writer.Status()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		if m := GetMetrics(c); m != nil {
			m.RequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(status)).Inc()
			m.RequestDuration.WithLabelValues(c.Request.Method, path).Observe(duration.Seconds())
		}

		util.LogSecurityEvent(util.SecurityEvent{
			EventType: util.EventEndpointCall,
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			Message:   fmt.Sprintf("%s %s -> %d", c.Request.Method, c.Request.URL.Path, status),
			Details: map[string]interface{}{
				"method":      c.Request.Method,
				"path":        path,
				"status":      status,
				"duration_ms": duration.Milliseconds(),
			},
		})
	}
}

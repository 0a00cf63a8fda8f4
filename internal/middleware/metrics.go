package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jobtrackr/jobtrackr/internal/metrics"
)

// Metrics counts every handled request by method, route template and
// status code.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		metrics.HTTPRequestsCounter.
			WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).
			Inc()
	}
}

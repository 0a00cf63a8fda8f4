package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/jobtrackr/jobtrackr/internal/logger"
)

// Recovery turns a handler panic into a 500 with the standard error
// envelope instead of a dropped connection.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, err any) {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeHTTP).
			Errorf("panic in %s %s: %v", c.Request.Method, c.FullPath(), err)

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error",
		})
	})
}

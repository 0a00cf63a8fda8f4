package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/jobtrackr/jobtrackr/internal/logger"
	"github.com/jobtrackr/jobtrackr/internal/validation"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}

func respondValidationErrors(c *gin.Context, fieldErrors []validation.FieldError) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": "Validation failed",
		"errors":  fieldErrors,
	})
}

// respondStoreError logs the underlying failure and surfaces a
// generic message so persistence internals never leak to clients.
func respondStoreError(c *gin.Context, err error) {
	log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
		Errorf("%s %s: %v", c.Request.Method, c.FullPath(), err)
	respondError(c, http.StatusInternalServerError, "Internal server error")
}

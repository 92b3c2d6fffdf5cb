package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lalith-99/luxgrid/internal/models"
)

// writeError maps the data layer's error taxonomy onto HTTP statuses.
//
// Database errors get special treatment: the detail (SQL text, driver
// messages, possibly other tenants' data) goes to the server log only, and
// the client sees an opaque 500.
func writeError(c *gin.Context, logger *zap.Logger, err error) {
	var dbErr *models.DatabaseError
	if errors.As(err, &dbErr) {
		logger.Error("database error",
			zap.String("path", c.FullPath()),
			zap.String("detail", dbErr.Detail),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	switch {
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrMacConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrConfigInUse):
		c.JSON(http.StatusPreconditionFailed, gin.H{"error": err.Error()})
	default:
		// Everything else in the taxonomy is a validation failure: bad
		// names, MACs, timezones, enum values, missing payload variants.
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}

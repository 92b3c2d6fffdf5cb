package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MeasurementHandler reserves the measurement endpoints. Devices will report
// sensor readings here eventually; the routes exist now so clients can code
// against the final URL layout.
type MeasurementHandler struct{}

func NewMeasurementHandler() *MeasurementHandler {
	return &MeasurementHandler{}
}

// List handles GET /v1/devices/:id/measurements.
func (h *MeasurementHandler) List(c *gin.Context) {
	c.JSON(http.StatusNotImplemented, gin.H{"error": "measurements are not implemented yet"})
}

// Create handles POST /v1/devices/:id/measurements.
func (h *MeasurementHandler) Create(c *gin.Context) {
	c.JSON(http.StatusNotImplemented, gin.H{"error": "measurements are not implemented yet"})
}

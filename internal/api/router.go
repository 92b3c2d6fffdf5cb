package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lalith-99/luxgrid/internal/db"
	"github.com/lalith-99/luxgrid/internal/events"
	"github.com/lalith-99/luxgrid/internal/middleware"
	"github.com/lalith-99/luxgrid/internal/repository"
	"github.com/lalith-99/luxgrid/internal/stream"
)

// NewRouter wires every handler onto the gin engine. /v1/health is public so
// load balancers can probe without credentials; everything else sits behind
// the JWT middleware.
func NewRouter(
	store repository.Store,
	database *db.DB,
	publisher *events.Publisher,
	jwtSecret string,
	logger *zap.Logger,
) *gin.Engine {
	srv := gin.New()
	srv.Use(gin.Logger(), gin.Recovery())

	srv.GET("/v1/health", func(c *gin.Context) {
		if err := database.Health(c.Request.Context()); err != nil {
			c.JSON(503, gin.H{"status": "degraded"})
			return
		}
		c.JSON(200, gin.H{"status": "ok"})
	})

	devices := NewDeviceHandler(store, publisher, logger)
	configs := NewConfigHandler(store, publisher, logger)
	features := NewFeatureHandler(store, logger)
	profiles := NewProfileHandler(store, publisher, logger)
	measurements := NewMeasurementHandler()
	streamHandler := stream.NewHandler(publisher.Client(), logger)

	v1 := srv.Group("/v1")
	v1.Use(middleware.AuthMiddleware(jwtSecret))

	v1.POST("/devices", devices.Create)
	v1.GET("/devices", devices.List)
	v1.GET("/devices/:id", devices.Get)
	v1.PUT("/devices/:id", devices.Update)
	v1.DELETE("/devices/:id", devices.Delete)
	v1.GET("/devices/:id/measurements", measurements.List)
	v1.POST("/devices/:id/measurements", measurements.Create)

	// Singular "config", matching the resource name template.
	v1.POST("/config", configs.Create)
	v1.GET("/config", configs.List)
	v1.GET("/config/:id", configs.Get)
	v1.PUT("/config/:id", configs.Update)
	v1.DELETE("/config/:id", configs.Delete)

	v1.POST("/features", features.Create)
	v1.GET("/features", features.List)
	v1.GET("/features/:id", features.Get)
	v1.PUT("/features/:id", features.Update)
	v1.DELETE("/features/:id", features.Delete)

	v1.POST("/profiles", profiles.Create)
	v1.GET("/profiles", profiles.List)
	v1.GET("/profiles/:id", profiles.Get)
	v1.PUT("/profiles/:id", profiles.Update)
	v1.DELETE("/profiles/:id", profiles.Delete)
	v1.POST("/profiles/:id/features", profiles.CreateFeatureProfile)
	v1.GET("/profiles/:id/features", profiles.ListFeatureProfiles)
	v1.GET("/profiles/:id/features/:fpid", profiles.GetFeatureProfile)
	v1.PUT("/profiles/:id/features/:fpid", profiles.UpdateFeatureProfile)
	v1.DELETE("/profiles/:id/features/:fpid", profiles.DeleteFeatureProfile)

	v1.GET("/stream", streamHandler.Serve)

	return srv
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lalith-99/luxgrid/internal/middleware"
	"github.com/lalith-99/luxgrid/internal/models"
	"github.com/lalith-99/luxgrid/internal/names"
	"github.com/lalith-99/luxgrid/internal/repository"
	"github.com/lalith-99/luxgrid/internal/wire"
)

type FeatureHandler struct {
	store  repository.Store
	logger *zap.Logger
}

func NewFeatureHandler(store repository.Store, logger *zap.Logger) *FeatureHandler {
	return &FeatureHandler{store: store, logger: logger}
}

func (h *FeatureHandler) scope(c *gin.Context) repository.Scope {
	return h.store.Domain(middleware.GetDomainID(c))
}

// Create handles POST /v1/features.
func (h *FeatureHandler) Create(c *gin.Context) {
	var req wire.Feature
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	feature, err := wire.FeatureFromWire(req, middleware.GetDomainID(c), true)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	created, err := h.scope(c).Features().Create(c.Request.Context(), feature)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, wire.FeatureToWire(created))
}

// List handles GET /v1/features.
func (h *FeatureHandler) List(c *gin.Context) {
	filter := repository.ListFilter{DisplayName: c.Query("display_name")}

	list, err := h.scope(c).Features().FetchAll(c.Request.Context(), filter)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	out := make([]wire.Feature, 0, len(list))
	for _, f := range list {
		out = append(out, wire.FeatureToWire(f))
	}
	c.JSON(http.StatusOK, wire.ListFeaturesResponse{Features: out})
}

// Get handles GET /v1/features/:id.
func (h *FeatureHandler) Get(c *gin.Context) {
	id, err := names.DecodeID(c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	feature, err := h.scope(c).Features().FetchOne(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, wire.FeatureToWire(feature))
}

// Update handles PUT /v1/features/:id.
func (h *FeatureHandler) Update(c *gin.Context) {
	id, err := names.DecodeID(c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	var req wire.Feature
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// The body's name must address the same feature as the path.
	if req.Name == "" {
		req.Name = names.FeatureName(id)
	}

	feature, err := wire.FeatureFromWire(req, middleware.GetDomainID(c), false)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	if feature.ID != id {
		writeError(c, h.logger, models.ErrInvalidName)
		return
	}

	updated, err := h.scope(c).Features().Update(c.Request.Context(), feature)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, wire.FeatureToWire(updated))
}

// Delete handles DELETE /v1/features/:id.
func (h *FeatureHandler) Delete(c *gin.Context) {
	id, err := names.DecodeID(c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	if err := h.scope(c).Features().Delete(c.Request.Context(), id); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

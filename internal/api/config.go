package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lalith-99/luxgrid/internal/events"
	"github.com/lalith-99/luxgrid/internal/middleware"
	"github.com/lalith-99/luxgrid/internal/models"
	"github.com/lalith-99/luxgrid/internal/names"
	"github.com/lalith-99/luxgrid/internal/repository"
	"github.com/lalith-99/luxgrid/internal/wire"
)

type ConfigHandler struct {
	store     repository.Store
	publisher *events.Publisher
	logger    *zap.Logger
}

func NewConfigHandler(store repository.Store, publisher *events.Publisher, logger *zap.Logger) *ConfigHandler {
	return &ConfigHandler{store: store, publisher: publisher, logger: logger}
}

func (h *ConfigHandler) scope(c *gin.Context) repository.Scope {
	return h.store.Domain(middleware.GetDomainID(c))
}

// Create handles POST /v1/config.
func (h *ConfigHandler) Create(c *gin.Context) {
	var req wire.Config
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	config, err := wire.ConfigFromWire(req, middleware.GetDomainID(c), true)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	created, err := h.scope(c).Configs().Create(c.Request.Context(), config)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	out := wire.ConfigToWire(created)
	h.publisher.Publish(c.Request.Context(), created.DomainID, events.ConfigCreated, out.Name)
	c.JSON(http.StatusCreated, out)
}

// List handles GET /v1/config.
func (h *ConfigHandler) List(c *gin.Context) {
	filter := repository.ListFilter{DisplayName: c.Query("display_name")}

	list, err := h.scope(c).Configs().FetchAll(c.Request.Context(), filter)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	out := make([]wire.Config, 0, len(list))
	for _, cfg := range list {
		out = append(out, wire.ConfigToWire(cfg))
	}
	c.JSON(http.StatusOK, wire.ListConfigsResponse{Configs: out})
}

// Get handles GET /v1/config/:id.
func (h *ConfigHandler) Get(c *gin.Context) {
	id, err := names.DecodeID(c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	config, err := h.scope(c).Configs().FetchOne(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, wire.ConfigToWire(config))
}

// Update handles PUT /v1/config/:id.
func (h *ConfigHandler) Update(c *gin.Context) {
	id, err := names.DecodeID(c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	var req wire.Config
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	config, err := wire.ConfigFromWire(req, middleware.GetDomainID(c), false)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	if config.ID == uuid.Nil {
		config.ID = id
	} else if config.ID != id {
		writeError(c, h.logger, models.ErrInvalidConfigID)
		return
	}

	updated, err := h.scope(c).Configs().Update(c.Request.Context(), config)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	out := wire.ConfigToWire(updated)
	h.publisher.Publish(c.Request.Context(), updated.DomainID, events.ConfigUpdated, out.Name)
	c.JSON(http.StatusOK, out)
}

// Delete handles DELETE /v1/config/:id. Fails with 412 while any device in
// the domain still references the config.
func (h *ConfigHandler) Delete(c *gin.Context) {
	id, err := names.DecodeID(c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	if err := h.scope(c).Configs().Delete(c.Request.Context(), id); err != nil {
		writeError(c, h.logger, err)
		return
	}

	h.publisher.Publish(c.Request.Context(), middleware.GetDomainID(c), events.ConfigDeleted, names.ConfigName(id))
	c.Status(http.StatusNoContent)
}

package api

import (
	"errors"
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

// DeviceHandler adapts HTTP requests onto the device repository. Handlers
// are deliberately thin: bind JSON, translate, call the repo, translate back.
// All validation lives in the wire package; all tenancy lives in the store.
type DeviceHandler struct {
	store     repository.Store
	publisher *events.Publisher
	logger    *zap.Logger
}

func NewDeviceHandler(store repository.Store, publisher *events.Publisher, logger *zap.Logger) *DeviceHandler {
	return &DeviceHandler{store: store, publisher: publisher, logger: logger}
}

func (h *DeviceHandler) scope(c *gin.Context) repository.Scope {
	return h.store.Domain(middleware.GetDomainID(c))
}

// Create handles POST /v1/devices. The server assigns the id; whatever name
// the client sent is discarded.
func (h *DeviceHandler) Create(c *gin.Context) {
	var req wire.Device
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	device, err := wire.DeviceFromWire(req, middleware.GetDomainID(c), true)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	created, err := h.scope(c).Devices().Create(c.Request.Context(), device)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	out := wire.DeviceToWire(created)
	h.publisher.Publish(c.Request.Context(), created.DomainID, events.DeviceCreated, out.Name)
	c.JSON(http.StatusCreated, out)
}

// List handles GET /v1/devices. Optional query parameters:
//
//	display_name — substring match on the display name, case-sensitive
//	config       — config resource name; only devices referencing it
//	mac          — MAC lookup; yields zero or one device
func (h *DeviceHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	devices := h.scope(c).Devices()
	filter := repository.ListFilter{DisplayName: c.Query("display_name")}

	if macParam := c.Query("mac"); macParam != "" {
		mac, err := models.ParseMac(macParam)
		if err != nil {
			writeError(c, h.logger, err)
			return
		}
		device, err := devices.FetchByMac(ctx, mac)
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusOK, wire.ListDevicesResponse{Devices: []wire.Device{}})
			return
		}
		if err != nil {
			writeError(c, h.logger, err)
			return
		}
		c.JSON(http.StatusOK, wire.ListDevicesResponse{Devices: []wire.Device{wire.DeviceToWire(device)}})
		return
	}

	var (
		list []models.Device
		err  error
	)
	if configParam := c.Query("config"); configParam != "" {
		configID, nameErr := names.ParseConfigName(configParam)
		if nameErr != nil {
			writeError(c, h.logger, models.ErrInvalidConfigID)
			return
		}
		list, err = devices.FetchByConfig(ctx, configID, filter)
	} else {
		list, err = devices.FetchAll(ctx, filter)
	}
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	out := make([]wire.Device, 0, len(list))
	for _, d := range list {
		out = append(out, wire.DeviceToWire(d))
	}
	c.JSON(http.StatusOK, wire.ListDevicesResponse{Devices: out})
}

// Get handles GET /v1/devices/:id.
func (h *DeviceHandler) Get(c *gin.Context) {
	id, err := names.DecodeID(c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	device, err := h.scope(c).Devices().FetchOne(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, wire.DeviceToWire(device))
}

// Update handles PUT /v1/devices/:id. A name in the body must agree with the
// path; an empty body name defers to the path.
func (h *DeviceHandler) Update(c *gin.Context) {
	id, err := names.DecodeID(c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	var req wire.Device
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	device, err := wire.DeviceFromWire(req, middleware.GetDomainID(c), false)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	if device.ID == uuid.Nil {
		device.ID = id
	} else if device.ID != id {
		writeError(c, h.logger, models.ErrInvalidDeviceID)
		return
	}

	updated, err := h.scope(c).Devices().Update(c.Request.Context(), device)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	out := wire.DeviceToWire(updated)
	h.publisher.Publish(c.Request.Context(), updated.DomainID, events.DeviceUpdated, out.Name)
	c.JSON(http.StatusOK, out)
}

// Delete handles DELETE /v1/devices/:id.
func (h *DeviceHandler) Delete(c *gin.Context) {
	id, err := names.DecodeID(c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	if err := h.scope(c).Devices().Delete(c.Request.Context(), id); err != nil {
		writeError(c, h.logger, err)
		return
	}

	h.publisher.Publish(c.Request.Context(), middleware.GetDomainID(c), events.DeviceDeleted, names.DeviceName(id))
	c.Status(http.StatusNoContent)
}

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

// ProfileHandler serves profiles and their nested feature-profile entries.
// A profile is created as an aggregate (nested entries in one request, one
// transaction); afterwards the entries have their own sub-resource endpoints.
type ProfileHandler struct {
	store     repository.Store
	publisher *events.Publisher
	logger    *zap.Logger
}

func NewProfileHandler(store repository.Store, publisher *events.Publisher, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{store: store, publisher: publisher, logger: logger}
}

func (h *ProfileHandler) scope(c *gin.Context) repository.Scope {
	return h.store.Domain(middleware.GetDomainID(c))
}

// Create handles POST /v1/profiles.
func (h *ProfileHandler) Create(c *gin.Context) {
	var req wire.Profile
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := wire.ProfileFromWire(req, middleware.GetDomainID(c), true)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	created, err := h.scope(c).Profiles().Create(c.Request.Context(), profile)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	out := wire.ProfileToWire(created)
	h.publisher.Publish(c.Request.Context(), created.DomainID, events.ProfileCreated, out.Name)
	c.JSON(http.StatusCreated, out)
}

// List handles GET /v1/profiles.
func (h *ProfileHandler) List(c *gin.Context) {
	filter := repository.ListFilter{DisplayName: c.Query("display_name")}

	list, err := h.scope(c).Profiles().FetchAll(c.Request.Context(), filter)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	out := make([]wire.Profile, 0, len(list))
	for _, p := range list {
		out = append(out, wire.ProfileToWire(p))
	}
	c.JSON(http.StatusOK, wire.ListProfilesResponse{Profiles: out})
}

// Get handles GET /v1/profiles/:id.
func (h *ProfileHandler) Get(c *gin.Context) {
	id, err := names.DecodeID(c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	profile, err := h.scope(c).Profiles().FetchOne(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, wire.ProfileToWire(profile))
}

// Update handles PUT /v1/profiles/:id. Only the profile's own fields change;
// nested entries in the body are ignored — they have their own endpoints.
func (h *ProfileHandler) Update(c *gin.Context) {
	id, err := names.DecodeID(c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	var req wire.Profile
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.FeatureProfiles = nil
	if req.Name == "" {
		req.Name = names.ProfileName(id)
	}

	profile, err := wire.ProfileFromWire(req, middleware.GetDomainID(c), false)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	if profile.ID != id {
		writeError(c, h.logger, models.ErrInvalidName)
		return
	}

	updated, err := h.scope(c).Profiles().Update(c.Request.Context(), profile)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	out := wire.ProfileToWire(updated)
	h.publisher.Publish(c.Request.Context(), updated.DomainID, events.ProfileUpdated, out.Name)
	c.JSON(http.StatusOK, out)
}

// Delete handles DELETE /v1/profiles/:id; nested entries go with it.
func (h *ProfileHandler) Delete(c *gin.Context) {
	id, err := names.DecodeID(c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	if err := h.scope(c).Profiles().Delete(c.Request.Context(), id); err != nil {
		writeError(c, h.logger, err)
		return
	}

	h.publisher.Publish(c.Request.Context(), middleware.GetDomainID(c), events.ProfileDeleted, names.ProfileName(id))
	c.Status(http.StatusNoContent)
}

// CreateFeatureProfile handles POST /v1/profiles/:id/features.
func (h *ProfileHandler) CreateFeatureProfile(c *gin.Context) {
	profileID, err := names.DecodeID(c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	var req wire.FeatureProfile
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fp, err := wire.FeatureProfileFromWire(req, middleware.GetDomainID(c), true)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	fp.ProfileID = profileID

	created, err := h.scope(c).FeatureProfiles().Create(c.Request.Context(), fp)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, wire.FeatureProfileToWire(created))
}

// ListFeatureProfiles handles GET /v1/profiles/:id/features.
func (h *ProfileHandler) ListFeatureProfiles(c *gin.Context) {
	profileID, err := names.DecodeID(c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	filter := repository.ListFilter{DisplayName: c.Query("display_name")}
	list, err := h.scope(c).FeatureProfiles().FetchAll(c.Request.Context(), profileID, filter)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	out := make([]wire.FeatureProfile, 0, len(list))
	for _, fp := range list {
		out = append(out, wire.FeatureProfileToWire(fp))
	}
	c.JSON(http.StatusOK, gin.H{"feature_profiles": out})
}

// GetFeatureProfile handles GET /v1/profiles/:id/features/:fpid.
func (h *ProfileHandler) GetFeatureProfile(c *gin.Context) {
	profileID, fpID, ok := h.featureProfilePath(c)
	if !ok {
		return
	}

	fp, err := h.scope(c).FeatureProfiles().FetchOne(c.Request.Context(), profileID, fpID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, wire.FeatureProfileToWire(fp))
}

// UpdateFeatureProfile handles PUT /v1/profiles/:id/features/:fpid.
func (h *ProfileHandler) UpdateFeatureProfile(c *gin.Context) {
	profileID, fpID, ok := h.featureProfilePath(c)
	if !ok {
		return
	}

	var req wire.FeatureProfile
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name == "" {
		req.Name = names.FeatureProfileName(profileID, fpID)
	}

	fp, err := wire.FeatureProfileFromWire(req, middleware.GetDomainID(c), false)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	if fp.ID != fpID || fp.ProfileID != profileID {
		writeError(c, h.logger, models.ErrInvalidName)
		return
	}

	updated, err := h.scope(c).FeatureProfiles().Update(c.Request.Context(), fp)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, wire.FeatureProfileToWire(updated))
}

// DeleteFeatureProfile handles DELETE /v1/profiles/:id/features/:fpid.
func (h *ProfileHandler) DeleteFeatureProfile(c *gin.Context) {
	profileID, fpID, ok := h.featureProfilePath(c)
	if !ok {
		return
	}

	if err := h.scope(c).FeatureProfiles().Delete(c.Request.Context(), profileID, fpID); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProfileHandler) featureProfilePath(c *gin.Context) (profileID, fpID uuid.UUID, ok bool) {
	profileID, err := names.DecodeID(c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return uuid.Nil, uuid.Nil, false
	}
	fpID, err = names.DecodeID(c.Param("fpid"))
	if err != nil {
		writeError(c, h.logger, err)
		return uuid.Nil, uuid.Nil, false
	}
	return profileID, fpID, true
}

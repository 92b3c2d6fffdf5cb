package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lalith-99/luxgrid/internal/events"
	"github.com/lalith-99/luxgrid/internal/middleware"
	"github.com/lalith-99/luxgrid/internal/models"
	"github.com/lalith-99/luxgrid/internal/names"
	"github.com/lalith-99/luxgrid/internal/repository"
	"github.com/lalith-99/luxgrid/internal/wire"
)

// fakeDevices is an in-memory DeviceRepository for handler tests. It only
// implements what the tests touch.
type fakeDevices struct {
	devices map[uuid.UUID]models.Device
}

func newFakeDevices() *fakeDevices {
	return &fakeDevices{devices: make(map[uuid.UUID]models.Device)}
}

func (f *fakeDevices) Create(_ context.Context, d models.Device) (models.Device, error) {
	for _, existing := range f.devices {
		if existing.Mac == d.Mac {
			return models.Device{}, models.ErrMacConflict
		}
	}
	d.ID = uuid.New()
	f.devices[d.ID] = d
	return d, nil
}

func (f *fakeDevices) FetchOne(_ context.Context, id uuid.UUID) (models.Device, error) {
	d, ok := f.devices[id]
	if !ok {
		return models.Device{}, models.NoSuchResource("device", id)
	}
	return d, nil
}

func (f *fakeDevices) FetchAll(_ context.Context, _ repository.ListFilter) ([]models.Device, error) {
	out := make([]models.Device, 0, len(f.devices))
	for _, d := range f.devices {
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeDevices) FetchByMac(_ context.Context, mac models.Mac) (models.Device, error) {
	for _, d := range f.devices {
		if d.Mac == mac {
			return d, nil
		}
	}
	return models.Device{}, models.NoSuchResourceKey("device", string(mac))
}

func (f *fakeDevices) FetchByConfig(_ context.Context, configID uuid.UUID, _ repository.ListFilter) ([]models.Device, error) {
	out := make([]models.Device, 0)
	for _, d := range f.devices {
		if d.ConfigID == configID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDevices) Update(_ context.Context, d models.Device) (models.Device, error) {
	if _, ok := f.devices[d.ID]; !ok {
		return models.Device{}, models.NoSuchResource("device", d.ID)
	}
	f.devices[d.ID] = d
	return d, nil
}

func (f *fakeDevices) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.devices[id]; !ok {
		return models.NoSuchResource("device", id)
	}
	delete(f.devices, id)
	return nil
}

type fakeScope struct {
	repository.Scope
	devices *fakeDevices
}

func (s *fakeScope) Devices() repository.DeviceRepository { return s.devices }

type fakeStore struct {
	scope *fakeScope
}

func (s *fakeStore) Domain(_ uuid.UUID) repository.Scope { return s.scope }

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	devices := newFakeDevices()
	store := &fakeStore{scope: &fakeScope{devices: devices}}

	// The publisher never reaches Redis in these tests; publish failures are
	// swallowed by design.
	publisher, err := events.NewPublisher("redis://localhost:1", zap.NewNop())
	require.NoError(t, err)

	handler := NewDeviceHandler(store, publisher, zap.NewNop())

	srv := gin.New()
	srv.Use(func(c *gin.Context) {
		c.Set(middleware.ContextKeyDomainID, uuid.New())
	})
	srv.POST("/v1/devices", handler.Create)
	srv.GET("/v1/devices", handler.List)
	srv.GET("/v1/devices/:id", handler.Get)
	srv.PUT("/v1/devices/:id", handler.Update)
	srv.DELETE("/v1/devices/:id", handler.Delete)
	return srv
}

func postJSON(t *testing.T, srv *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func validDeviceBody() wire.Device {
	return wire.Device{
		DisplayName: "rack 1",
		Mac:         "AA:BB:CC:DD:EE:01",
		ConfigName:  names.ConfigName(uuid.New()),
		Timezone:    "America/Montreal",
	}
}

func TestCreateDevice(t *testing.T) {
	srv := newTestRouter(t)

	w := postJSON(t, srv, "/v1/devices", validDeviceBody())
	require.Equal(t, http.StatusCreated, w.Code)

	var got wire.Device
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	// Server assigned the name and normalized the MAC.
	assert.NotEmpty(t, got.Name)
	assert.Equal(t, "aa:bb:cc:dd:ee:01", got.Mac)
}

func TestCreateDeviceValidationErrors(t *testing.T) {
	srv := newTestRouter(t)

	bad := validDeviceBody()
	bad.Mac = "not-a-mac"
	assert.Equal(t, http.StatusBadRequest, postJSON(t, srv, "/v1/devices", bad).Code)

	bad = validDeviceBody()
	bad.Timezone = "Rohan/Edoras"
	assert.Equal(t, http.StatusBadRequest, postJSON(t, srv, "/v1/devices", bad).Code)

	bad = validDeviceBody()
	bad.ConfigName = "devices/QasxIsREQqivPuKUwY--OA"
	assert.Equal(t, http.StatusBadRequest, postJSON(t, srv, "/v1/devices", bad).Code)
}

func TestCreateDeviceMacConflict(t *testing.T) {
	srv := newTestRouter(t)

	require.Equal(t, http.StatusCreated, postJSON(t, srv, "/v1/devices", validDeviceBody()).Code)
	assert.Equal(t, http.StatusConflict, postJSON(t, srv, "/v1/devices", validDeviceBody()).Code)
}

func TestGetDevice(t *testing.T) {
	srv := newTestRouter(t)

	created := postJSON(t, srv, "/v1/devices", validDeviceBody())
	require.Equal(t, http.StatusCreated, created.Code)
	var d wire.Device
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &d))
	id, err := names.ParseDeviceName(d.Name)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/devices/"+names.EncodeID(id), nil))
	assert.Equal(t, http.StatusOK, w.Code)

	// Unknown id is a 404, malformed id a 400.
	w = httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/devices/"+names.EncodeID(uuid.New()), nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/devices/not-an-id", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListDevicesByMac(t *testing.T) {
	srv := newTestRouter(t)

	require.Equal(t, http.StatusCreated, postJSON(t, srv, "/v1/devices", validDeviceBody()).Code)

	w := httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/devices?mac=aa:bb:cc:dd:ee:01", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp wire.ListDevicesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Devices, 1)

	// No match is an empty list, not an error.
	w = httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/devices?mac=ff:ff:ff:ff:ff:ff", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Devices)
}

func TestDeleteDevice(t *testing.T) {
	srv := newTestRouter(t)

	created := postJSON(t, srv, "/v1/devices", validDeviceBody())
	require.Equal(t, http.StatusCreated, created.Code)
	var d wire.Device
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &d))
	id, err := names.ParseDeviceName(d.Name)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/v1/devices/"+names.EncodeID(id), nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/v1/devices/"+names.EncodeID(id), nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

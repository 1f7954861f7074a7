package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Freeeeeet/slot_scheduler/internal/availability"
	"github.com/Freeeeeet/slot_scheduler/internal/clock"
	"github.com/Freeeeeet/slot_scheduler/internal/events"
	"github.com/Freeeeeet/slot_scheduler/internal/model"
	"github.com/Freeeeeet/slot_scheduler/internal/repository/memory"
	"github.com/Freeeeeet/slot_scheduler/internal/service"
)

const testDate = "2025-06-10"

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(t *testing.T, token string, seed ...model.SlotException) (*gin.Engine, *memory.Store) {
	t.Helper()

	logger := zaptest.NewLogger(t)
	store := memory.NewStore(seed...)
	view, err := service.NewSnapshotView(context.Background(), store, logger)
	require.NoError(t, err)
	t.Cleanup(view.Close)

	now := time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)
	clk := clock.New(time.UTC, func() time.Time { return now })
	tpl := availability.MustTemplate("07:00", "08:30", "14:00")

	slots := service.NewSlotService(store, view, tpl, clk, events.NopPublisher{}, logger)
	booking := service.NewBookingService(view, tpl, clk)

	controller := NewSlotController(slots, booking, token, time.Second, logger)
	return NewRouter(controller, logger, false), store
}

func do(router *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHealth(t *testing.T) {
	router, _ := newRouter(t, "")

	w := do(router, http.MethodGet, "/healthz", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, testDate, decode(t, w)["today"])
}

func TestAvailability(t *testing.T) {
	router, _ := newRouter(t, "",
		model.SlotException{ID: "e", Date: testDate, Time: "09:00"},
		model.SlotException{ID: "m", Date: testDate, Time: "14:00", Removed: true},
	)

	w := do(router, http.MethodGet, "/api/v1/availability/"+testDate, "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []any{"07:00", "08:30", "09:00"}, decode(t, w)["times"])
}

func TestAvailabilityInvalidDate(t *testing.T) {
	router, _ := newRouter(t, "")

	w := do(router, http.MethodGet, "/api/v1/availability/tomorrow", "", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_date", decode(t, w)["error"])
}

func TestAdminScenario(t *testing.T) {
	router, _ := newRouter(t, "")
	base := "/api/v1/admin/slots/" + testDate

	w := do(router, http.MethodPost, base+"/extras", `{"time":"09:00"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	extraID, _ := decode(t, w)["id"].(string)
	require.NotEmpty(t, extraID)

	w = do(router, http.MethodPost, base+"/suppressions", `{"time":"08:30"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(router, http.MethodGet, base, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var day DaySlotsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &day))
	assert.Equal(t, []string{"08:30"}, day.Suppressed)
	assert.Equal(t, []model.ResolvedSlot{
		{Time: "07:00", Origin: model.OriginFixed},
		{Time: "09:00", Origin: model.OriginExtra, SourceID: extraID},
		{Time: "14:00", Origin: model.OriginFixed},
	}, day.Slots)

	w = do(router, http.MethodDelete, "/api/v1/admin/extras/"+extraID, "", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = do(router, http.MethodDelete, "/api/v1/admin/extras/"+extraID, "", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestAdminErrors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   string
	}{
		{"already offered", "/api/v1/admin/slots/" + testDate + "/extras", `{"time":"07:00"}`, http.StatusConflict, "already_offered"},
		{"past date", "/api/v1/admin/slots/2025-06-01/extras", `{"time":"09:00"}`, http.StatusUnprocessableEntity, "past_date"},
		{"invalid time", "/api/v1/admin/slots/" + testDate + "/extras", `{"time":"25:00"}`, http.StatusBadRequest, "invalid_time"},
		{"not fixed", "/api/v1/admin/slots/" + testDate + "/suppressions", `{"time":"09:00"}`, http.StatusUnprocessableEntity, "not_fixed_time"},
		{"missing body", "/api/v1/admin/slots/" + testDate + "/extras", `{}`, http.StatusBadRequest, "bad_request"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, store := newRouter(t, "")

			w := do(router, http.MethodPost, tt.path, tt.body, nil)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, decode(t, w)["error"])
			assert.Equal(t, 0, store.Len())
		})
	}
}

func TestAdminWriteFailure(t *testing.T) {
	router, store := newRouter(t, "")
	store.SetWriteHook(func(op, id string) error { return errors.New("timeout") })

	w := do(router, http.MethodPost, "/api/v1/admin/slots/"+testDate+"/extras", `{"time":"09:00"}`, nil)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "write_failed", decode(t, w)["error"])
}

func TestAdminToken(t *testing.T) {
	router, _ := newRouter(t, "secret")
	path := "/api/v1/admin/slots/" + testDate

	w := do(router, http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(router, http.MethodGet, path, "", map[string]string{adminTokenHeader: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(router, http.MethodGet, path, "", map[string]string{adminTokenHeader: "secret"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(router, http.MethodGet, "/api/v1/availability/"+testDate, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPurge(t *testing.T) {
	router, store := newRouter(t, "",
		model.SlotException{ID: "old", Date: "2025-06-01", Time: "09:00"},
		model.SlotException{ID: "new", Date: "2025-06-20", Time: "09:00"},
	)

	w := do(router, http.MethodPost, "/api/v1/admin/purge", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["purged"])
	assert.Equal(t, 1, store.Len())
}

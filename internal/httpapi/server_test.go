package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/estate/internal/memory"
	"github.com/mesh-intelligence/estate/internal/metrics"
	"github.com/mesh-intelligence/estate/internal/records"
	"github.com/mesh-intelligence/estate/pkg/types"
)

type fixedClock struct{}

func (fixedClock) Now() time.Time { return time.Unix(1_700_000_000, 0) }

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, store.Attach(types.Config{Backend: types.BackendMemory}))
	t.Cleanup(func() { _ = store.Detach() })

	logger, _ := logtest.NewNullLogger()
	reg := prometheus.NewRegistry()
	rec, err := metrics.NewRecorder(reg)
	require.NoError(t, err)

	svc := records.New(store, records.WithClock(fixedClock{}), records.WithLogger(logger), records.WithRecorder(rec))
	return NewHandler(svc, Options{
		AllowedOrigins: []string{"https://app.example.com"},
		Gatherer:       reg,
		Logger:         logger,
	})
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var e ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	return e
}

const propertyBody = `{"address":"1 Main St","owner":"Ann","valuation":100,"status":"listed"}`

func TestPropertyLifecycle(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, http.MethodPost, Properties, propertyBody)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var p types.Property
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, uint64(0), p.ID)
	assert.Equal(t, uint64(1_700_000_000), p.CreatedAt)

	w = do(t, h, http.MethodPut, "/api/v1/properties/0", `{"address":"2 Side St","owner":"Bob"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, "2 Side St", p.Address)

	w = do(t, h, http.MethodGet, "/api/v1/properties/0", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, http.MethodGet, Properties, "")
	require.Equal(t, http.StatusOK, w.Code)
	var all []types.Property
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	assert.Len(t, all, 1)

	w = do(t, h, http.MethodDelete, "/api/v1/properties/0", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.Bytes())

	w = do(t, h, http.MethodGet, Properties, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, ErrorResponse{Code: ErrCodeNotFound, Message: "No properties found."}, decodeError(t, w))
}

func TestErrorMapping(t *testing.T) {
	h := newTestHandler(t)
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, Properties, propertyBody).Code)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"validation", http.MethodPost, Properties, `{"owner":"Ann"}`,
			http.StatusBadRequest, ErrCodeValidation, types.MsgAddressOwnerRequired},
		{"lease dates", http.MethodPost, Leases, `{"property_id":0,"tenant":"Bob","start_date":100,"end_date":50}`,
			http.StatusBadRequest, ErrCodeValidation, types.MsgInvalidDates},
		{"lease unknown property", http.MethodPost, Leases, `{"property_id":9,"tenant":"Bob","start_date":1,"end_date":2}`,
			http.StatusNotFound, ErrCodeNotFound, types.MsgPropertyNotFound},
		{"maintenance status", http.MethodPost, MaintenanceRequests, `{"property_id":0,"status":"open"}`,
			http.StatusBadRequest, ErrCodeValidation, types.MsgInvalidStatus},
		{"update missing", http.MethodPut, "/api/v1/leases/5", `{"tenant":"x"}`,
			http.StatusNotFound, ErrCodeNotFound, "Lease agreement with id=5 not found"},
		{"delete missing", http.MethodDelete, "/api/v1/maintenance-requests/5", "",
			http.StatusNotFound, ErrCodeNotFound, "Maintenance request with id=5 not found"},
		{"malformed json", http.MethodPost, Properties, `{"address":`,
			http.StatusBadRequest, ErrCodeInvalidPayload, "Invalid JSON payload"},
		{"unknown field", http.MethodPost, Properties, `{"address":"a","owner":"b","color":"red"}`,
			http.StatusBadRequest, ErrCodeInvalidPayload, "Invalid JSON payload"},
		{"trailing data", http.MethodPost, Properties, propertyBody + `{}`,
			http.StatusBadRequest, ErrCodeInvalidPayload, "Invalid JSON payload"},
		{"non-numeric id", http.MethodGet, "/api/v1/properties/abc", "",
			http.StatusBadRequest, ErrCodeInvalidPayload, "Invalid id"},
		{"negative id", http.MethodDelete, "/api/v1/properties/-1", "",
			http.StatusBadRequest, ErrCodeInvalidPayload, "Invalid id"},
		{"unknown route", http.MethodGet, "/api/v1/tenants", "",
			http.StatusNotFound, ErrCodeNotFound, "Route not found"},
		{"wrong method", http.MethodPatch, "/api/v1/properties/0", "",
			http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.Equal(t, ErrorResponse{Code: tt.wantCode, Message: tt.wantMsg}, decodeError(t, w))
		})
	}
}

func TestRespondServiceErrorKinds(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{types.Unauthorized("nope"), http.StatusUnauthorized, ErrCodeUnauthorized},
		{types.NotFound("gone"), http.StatusNotFound, ErrCodeNotFound},
		{types.Validation("bad"), http.StatusBadRequest, ErrCodeValidation},
		{errors.New("disk on fire"), http.StatusInternalServerError, ErrCodeInternal},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		respondServiceError(w, logger, tt.err)
		assert.Equal(t, tt.wantStatus, w.Code)
		assert.Equal(t, tt.wantCode, decodeError(t, w).Code)
	}

	w := httptest.NewRecorder()
	respondServiceError(w, logger, errors.New("secret detail"))
	assert.NotContains(t, w.Body.String(), "secret detail")
	require.NotNil(t, hook.LastEntry())
	assert.Contains(t, hook.LastEntry().Data["error"].(error).Error(), "secret detail")
}

func TestUnencodableRecordIsInternalError(t *testing.T) {
	store := memory.NewStore()
	require.NoError(t, store.Attach(types.Config{Backend: types.BackendMemory}))
	t.Cleanup(func() { _ = store.Detach() })
	logger, hook := logtest.NewNullLogger()
	svc := records.New(store, records.WithClock(fixedClock{}), records.WithLogger(logger))

	_, err := svc.CreateProperty(context.Background(), types.PropertyPayload{Address: "1 Main St", Owner: "Ann", Valuation: math.Inf(1)})
	require.NoError(t, err)
	h := NewHandler(svc, Options{Gatherer: prometheus.NewRegistry(), Logger: logger})

	for _, path := range []string{Properties, Properties + "/0"} {
		w := do(t, h, http.MethodGet, path, "")
		assert.Equal(t, http.StatusInternalServerError, w.Code, path)
		assert.Equal(t, ErrCodeInternal, decodeError(t, w).Code, path)
	}
	require.NotNil(t, hook.LastEntry())

	w := httptest.NewRecorder()
	respondJSON(w, logger, http.StatusCreated, map[string]float64{"v": math.NaN()})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, ErrCodeInternal, decodeError(t, w).Code)
}

func TestLeaseAndMaintenanceRoutes(t *testing.T) {
	h := newTestHandler(t)
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, Properties, propertyBody).Code)

	w := do(t, h, http.MethodPost, Leases, `{"property_id":0,"tenant":"Bob","rent":900,"start_date":1,"end_date":2,"digital_signature":"sig"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var l types.LeaseAgreement
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &l))
	assert.Equal(t, uint64(1), l.ID)
	assert.Equal(t, "sig", l.DigitalSignature)

	w = do(t, h, http.MethodPost, MaintenanceRequests, `{"property_id":0,"description":"leak","status":"pending","priority":"high"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var m types.MaintenanceRequest
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	assert.Equal(t, uint64(2), m.ID)

	w = do(t, h, http.MethodGet, "/api/v1/leases/1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	w = do(t, h, http.MethodGet, MaintenanceRequests, "")
	assert.Equal(t, http.StatusOK, w.Code)
	w = do(t, h, http.MethodPut, "/api/v1/maintenance-requests/2", `{"property_id":0,"status":"completed"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	w = do(t, h, http.MethodDelete, "/api/v1/leases/1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = do(t, h, http.MethodGet, Leases, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, http.MethodGet, Health, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	do(t, h, http.MethodPost, Properties, propertyBody)
	w = do(t, h, http.MethodGet, Metrics, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `estate_operations_total{entity="property",op="create",outcome="ok"} 1`)
}

func TestRequestIDHeader(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, http.MethodGet, Health, "")
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	r := httptest.NewRequest(http.MethodGet, Health, nil)
	r.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestCORS(t *testing.T) {
	h := newTestHandler(t)

	r := httptest.NewRequest(http.MethodOptions, Properties, nil)
	r.Header.Set("Origin", "https://app.example.com")
	r.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	r = httptest.NewRequest(http.MethodGet, Health, nil)
	r.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestServerOverRealListener(t *testing.T) {
	srv := httptest.NewServer(newTestHandler(t))
	defer srv.Close()

	resp, err := http.Post(srv.URL+Properties, "application/json", bytes.NewBufferString(propertyBody))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	s := NewServer(":0", http.NotFoundHandler())
	assert.Equal(t, ":0", s.Addr)
	require.NoError(t, s.Shutdown(context.Background()))
}

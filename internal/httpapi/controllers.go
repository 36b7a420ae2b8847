package httpapi

import (
	"context"
	"net/http"

	"github.com/mesh-intelligence/estate/internal/records"
	"github.com/mesh-intelligence/estate/pkg/types"
)

// resourceController serves the five record endpoints of one entity type.
type resourceController[R, P any] struct {
	create func(context.Context, P) (R, error)
	update func(context.Context, uint64, P) (R, error)
	remove func(context.Context, uint64) error
	getAll func(context.Context) ([]R, error)
	get    func(context.Context, uint64) (R, error)
}

func newPropertyController(svc *records.Service) *resourceController[types.Property, types.PropertyPayload] {
	return &resourceController[types.Property, types.PropertyPayload]{
		create: svc.CreateProperty,
		update: svc.UpdateProperty,
		remove: svc.DeleteProperty,
		getAll: svc.GetAllProperties,
		get:    svc.GetProperty,
	}
}

func newLeaseController(svc *records.Service) *resourceController[types.LeaseAgreement, types.LeaseAgreementPayload] {
	return &resourceController[types.LeaseAgreement, types.LeaseAgreementPayload]{
		create: svc.CreateLeaseAgreement,
		update: svc.UpdateLeaseAgreement,
		remove: svc.DeleteLeaseAgreement,
		getAll: svc.GetAllLeaseAgreements,
		get:    svc.GetLeaseAgreement,
	}
}

func newMaintenanceController(svc *records.Service) *resourceController[types.MaintenanceRequest, types.MaintenanceRequestPayload] {
	return &resourceController[types.MaintenanceRequest, types.MaintenanceRequestPayload]{
		create: svc.CreateMaintenanceRequest,
		update: svc.UpdateMaintenanceRequest,
		remove: svc.DeleteMaintenanceRequest,
		getAll: svc.GetAllMaintenanceRequests,
		get:    svc.GetMaintenanceRequest,
	}
}

// -----------------------------------------------------------------------------
// POST /{collection}
// -----------------------------------------------------------------------------
func (c *resourceController[R, P]) Create(w http.ResponseWriter, r *http.Request) {
	log := loggerFrom(r)
	var payload P
	if err := decodeJSON(w, r, &payload); err != nil {
		respondError(w, log, http.StatusBadRequest, ErrCodeInvalidPayload, "Invalid JSON payload", err)
		return
	}
	rec, err := c.create(r.Context(), payload)
	if err != nil {
		respondServiceError(w, log, err)
		return
	}
	respondJSON(w, log, http.StatusCreated, rec)
}

// -----------------------------------------------------------------------------
// GET /{collection}
// -----------------------------------------------------------------------------
func (c *resourceController[R, P]) GetAll(w http.ResponseWriter, r *http.Request) {
	log := loggerFrom(r)
	recs, err := c.getAll(r.Context())
	if err != nil {
		respondServiceError(w, log, err)
		return
	}
	respondJSON(w, log, http.StatusOK, recs)
}

// -----------------------------------------------------------------------------
// GET /{collection}/{id}
// -----------------------------------------------------------------------------
func (c *resourceController[R, P]) Get(w http.ResponseWriter, r *http.Request) {
	log := loggerFrom(r)
	id, err := pathID(r)
	if err != nil {
		respondError(w, log, http.StatusBadRequest, ErrCodeInvalidPayload, "Invalid id", err)
		return
	}
	rec, err := c.get(r.Context(), id)
	if err != nil {
		respondServiceError(w, log, err)
		return
	}
	respondJSON(w, log, http.StatusOK, rec)
}

// -----------------------------------------------------------------------------
// PUT /{collection}/{id}
// -----------------------------------------------------------------------------
func (c *resourceController[R, P]) Update(w http.ResponseWriter, r *http.Request) {
	log := loggerFrom(r)
	id, err := pathID(r)
	if err != nil {
		respondError(w, log, http.StatusBadRequest, ErrCodeInvalidPayload, "Invalid id", err)
		return
	}
	var payload P
	if err := decodeJSON(w, r, &payload); err != nil {
		respondError(w, log, http.StatusBadRequest, ErrCodeInvalidPayload, "Invalid JSON payload", err)
		return
	}
	rec, err := c.update(r.Context(), id, payload)
	if err != nil {
		respondServiceError(w, log, err)
		return
	}
	respondJSON(w, log, http.StatusOK, rec)
}

// -----------------------------------------------------------------------------
// DELETE /{collection}/{id}
// -----------------------------------------------------------------------------
func (c *resourceController[R, P]) Delete(w http.ResponseWriter, r *http.Request) {
	log := loggerFrom(r)
	id, err := pathID(r)
	if err != nil {
		respondError(w, log, http.StatusBadRequest, ErrCodeInvalidPayload, "Invalid id", err)
		return
	}
	if err := c.remove(r.Context(), id); err != nil {
		respondServiceError(w, log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, loggerFrom(r), http.StatusOK, HealthResponse{Status: "ok"})
}

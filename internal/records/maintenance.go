package records

import (
	"context"
	"time"

	"github.com/mesh-intelligence/estate/pkg/types"
)

const (
	msgMaintenanceIDNotFound = "Maintenance request with id=%d not found"
	msgNoMaintenance         = "No maintenance requests found."
)

// CreateMaintenanceRequest checks the status, then that the referenced
// property exists, and stores the request under a fresh id.
func (s *Service) CreateMaintenanceRequest(ctx context.Context, p types.MaintenanceRequestPayload) (types.MaintenanceRequest, error) {
	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := types.ValidateMaintenanceRequestPayload(p); err != nil {
		return types.MaintenanceRequest{}, s.finish(ctx, EntityMaintenance, OpCreate, nil, start, err)
	}
	if err := s.requireProperty(p.PropertyID); err != nil {
		return types.MaintenanceRequest{}, s.finish(ctx, EntityMaintenance, OpCreate, nil, start, err)
	}
	rec, id, err := insertNew(s, s.store.MaintenanceRequests, func(id, createdAt uint64) types.MaintenanceRequest {
		return types.NewMaintenanceRequest(id, p, createdAt)
	})
	return rec, s.finish(ctx, EntityMaintenance, OpCreate, &id, start, err)
}

// UpdateMaintenanceRequest overwrites request id. Any status is accepted.
func (s *Service) UpdateMaintenanceRequest(ctx context.Context, id uint64, p types.MaintenanceRequestPayload) (types.MaintenanceRequest, error) {
	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := replace(s.store.MaintenanceRequests, id, msgMaintenanceIDNotFound, func(r *types.MaintenanceRequest) { r.Apply(p) })
	return rec, s.finish(ctx, EntityMaintenance, OpUpdate, &id, start, err)
}

// DeleteMaintenanceRequest removes request id, or reports NotFound.
func (s *Service) DeleteMaintenanceRequest(ctx context.Context, id uint64) error {
	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	err := remove(s.store.MaintenanceRequests, id, msgMaintenanceIDNotFound)
	return s.finish(ctx, EntityMaintenance, OpDelete, &id, start, err)
}

// GetAllMaintenanceRequests returns every maintenance request by ascending
// id, or NotFound when the table is empty.
func (s *Service) GetAllMaintenanceRequests(ctx context.Context) ([]types.MaintenanceRequest, error) {
	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	out, err := listOrNotFound(s.store.MaintenanceRequests, msgNoMaintenance)
	return out, s.finish(ctx, EntityMaintenance, OpGetAll, nil, start, err)
}

// ListMaintenanceRequests is GetAllMaintenanceRequests without the
// empty-table error.
func (s *Service) ListMaintenanceRequests(ctx context.Context) ([]types.MaintenanceRequest, error) {
	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	out, err := list(s.store.MaintenanceRequests)
	return out, s.finish(ctx, EntityMaintenance, OpList, nil, start, err)
}

// GetMaintenanceRequest returns request id, or reports NotFound.
func (s *Service) GetMaintenanceRequest(ctx context.Context, id uint64) (types.MaintenanceRequest, error) {
	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := lookup(s.store.MaintenanceRequests, id, msgMaintenanceIDNotFound)
	return rec, s.finish(ctx, EntityMaintenance, OpGet, &id, start, err)
}

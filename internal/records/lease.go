package records

import (
	"context"
	"time"

	"github.com/mesh-intelligence/estate/pkg/types"
)

const (
	msgLeaseIDNotFound = "Lease agreement with id=%d not found"
	msgNoLeases        = "No lease agreements found."
)

// CreateLeaseAgreement checks the tenant and date rules, then that the
// referenced property exists, and stores the lease under a fresh id.
// Payload rules run first: a lease that is both malformed and dangling
// reports the validation error, not NotFound.
func (s *Service) CreateLeaseAgreement(ctx context.Context, p types.LeaseAgreementPayload) (types.LeaseAgreement, error) {
	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := types.ValidateLeaseAgreementPayload(p); err != nil {
		return types.LeaseAgreement{}, s.finish(ctx, EntityLease, OpCreate, nil, start, err)
	}
	if err := s.requireProperty(p.PropertyID); err != nil {
		return types.LeaseAgreement{}, s.finish(ctx, EntityLease, OpCreate, nil, start, err)
	}
	rec, id, err := insertNew(s, s.store.LeaseAgreements, func(id, createdAt uint64) types.LeaseAgreement {
		return types.NewLeaseAgreement(id, p, createdAt)
	})
	return rec, s.finish(ctx, EntityLease, OpCreate, &id, start, err)
}

// UpdateLeaseAgreement overwrites lease id, property reference included,
// without re-checking creation rules.
func (s *Service) UpdateLeaseAgreement(ctx context.Context, id uint64, p types.LeaseAgreementPayload) (types.LeaseAgreement, error) {
	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := replace(s.store.LeaseAgreements, id, msgLeaseIDNotFound, func(r *types.LeaseAgreement) { r.Apply(p) })
	return rec, s.finish(ctx, EntityLease, OpUpdate, &id, start, err)
}

// DeleteLeaseAgreement removes lease agreement id, or reports NotFound.
func (s *Service) DeleteLeaseAgreement(ctx context.Context, id uint64) error {
	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	err := remove(s.store.LeaseAgreements, id, msgLeaseIDNotFound)
	return s.finish(ctx, EntityLease, OpDelete, &id, start, err)
}

// GetAllLeaseAgreements returns every lease agreement by ascending id, or
// NotFound when the table is empty.
func (s *Service) GetAllLeaseAgreements(ctx context.Context) ([]types.LeaseAgreement, error) {
	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	out, err := listOrNotFound(s.store.LeaseAgreements, msgNoLeases)
	return out, s.finish(ctx, EntityLease, OpGetAll, nil, start, err)
}

// ListLeaseAgreements is GetAllLeaseAgreements without the empty-table error.
func (s *Service) ListLeaseAgreements(ctx context.Context) ([]types.LeaseAgreement, error) {
	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	out, err := list(s.store.LeaseAgreements)
	return out, s.finish(ctx, EntityLease, OpList, nil, start, err)
}

// GetLeaseAgreement returns lease agreement id, or reports NotFound.
func (s *Service) GetLeaseAgreement(ctx context.Context, id uint64) (types.LeaseAgreement, error) {
	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := lookup(s.store.LeaseAgreements, id, msgLeaseIDNotFound)
	return rec, s.finish(ctx, EntityLease, OpGet, &id, start, err)
}

package records

import (
	"context"
	"time"

	"github.com/mesh-intelligence/estate/pkg/types"
)

const (
	msgPropertyIDNotFound = "Property with id=%d not found"
	msgNoProperties       = "No properties found."
)

// CreateProperty validates p and stores it under a fresh id.
func (s *Service) CreateProperty(ctx context.Context, p types.PropertyPayload) (types.Property, error) {
	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := types.ValidatePropertyPayload(p); err != nil {
		return types.Property{}, s.finish(ctx, EntityProperty, OpCreate, nil, start, err)
	}
	rec, id, err := insertNew(s, s.store.Properties, func(id, createdAt uint64) types.Property {
		return types.NewProperty(id, p, createdAt)
	})
	return rec, s.finish(ctx, EntityProperty, OpCreate, &id, start, err)
}

// UpdateProperty replaces the mutable fields of property id. The payload is
// stored as given; creation rules are not re-checked.
func (s *Service) UpdateProperty(ctx context.Context, id uint64, p types.PropertyPayload) (types.Property, error) {
	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := replace(s.store.Properties, id, msgPropertyIDNotFound, func(r *types.Property) { r.Apply(p) })
	return rec, s.finish(ctx, EntityProperty, OpUpdate, &id, start, err)
}

// DeleteProperty removes property id. Leases and maintenance requests that
// reference it are left in place.
func (s *Service) DeleteProperty(ctx context.Context, id uint64) error {
	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	err := remove(s.store.Properties, id, msgPropertyIDNotFound)
	return s.finish(ctx, EntityProperty, OpDelete, &id, start, err)
}

// GetAllProperties returns every property by ascending id, or NotFound when
// there are none.
func (s *Service) GetAllProperties(ctx context.Context) ([]types.Property, error) {
	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	out, err := listOrNotFound(s.store.Properties, msgNoProperties)
	return out, s.finish(ctx, EntityProperty, OpGetAll, nil, start, err)
}

// ListProperties is GetAllProperties without the empty-table error.
func (s *Service) ListProperties(ctx context.Context) ([]types.Property, error) {
	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	out, err := list(s.store.Properties)
	return out, s.finish(ctx, EntityProperty, OpList, nil, start, err)
}

// GetProperty returns property id.
func (s *Service) GetProperty(ctx context.Context, id uint64) (types.Property, error) {
	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := lookup(s.store.Properties, id, msgPropertyIDNotFound)
	return rec, s.finish(ctx, EntityProperty, OpGet, &id, start, err)
}

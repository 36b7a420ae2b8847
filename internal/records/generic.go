package records

import (
	"fmt"

	"github.com/mesh-intelligence/estate/pkg/types"
)

type acquireFunc[R any] func() (types.Table[R], error)

// insertNew allocates an id, builds the record and stores it. The caller
// holds s.mu and has already validated the payload.
func insertNew[R any](s *Service, acquire acquireFunc[R], build func(id, createdAt uint64) R) (R, uint64, error) {
	var zero R
	tbl, err := acquire()
	if err != nil {
		return zero, 0, err
	}
	counter, err := s.store.Counter()
	if err != nil {
		return zero, 0, err
	}
	id, err := NextID(counter)
	if err != nil {
		return zero, 0, err
	}
	rec := build(id, s.now())
	if err := tbl.Insert(id, rec); err != nil {
		return zero, id, fmt.Errorf("inserting id %d: %w", id, err)
	}
	return rec, id, nil
}

// replace applies mutate to the record stored under id and stores the result.
func replace[R any](acquire acquireFunc[R], id uint64, notFound string, mutate func(*R)) (R, error) {
	var zero R
	tbl, err := acquire()
	if err != nil {
		return zero, err
	}
	rec, ok, err := tbl.Get(id)
	if err != nil {
		return zero, fmt.Errorf("reading id %d: %w", id, err)
	}
	if !ok {
		return zero, types.NotFound(fmt.Sprintf(notFound, id))
	}
	mutate(&rec)
	if err := tbl.Insert(id, rec); err != nil {
		return zero, fmt.Errorf("writing id %d: %w", id, err)
	}
	return rec, nil
}

func remove[R any](acquire acquireFunc[R], id uint64, notFound string) error {
	tbl, err := acquire()
	if err != nil {
		return err
	}
	_, ok, err := tbl.Remove(id)
	if err != nil {
		return fmt.Errorf("removing id %d: %w", id, err)
	}
	if !ok {
		return types.NotFound(fmt.Sprintf(notFound, id))
	}
	return nil
}

func lookup[R any](acquire acquireFunc[R], id uint64, notFound string) (R, error) {
	var zero R
	tbl, err := acquire()
	if err != nil {
		return zero, err
	}
	rec, ok, err := tbl.Get(id)
	if err != nil {
		return zero, fmt.Errorf("reading id %d: %w", id, err)
	}
	if !ok {
		return zero, types.NotFound(fmt.Sprintf(notFound, id))
	}
	return rec, nil
}

// list returns every record in ascending id order; an empty table yields an
// empty, non-nil slice.
func list[R any](acquire acquireFunc[R]) ([]R, error) {
	tbl, err := acquire()
	if err != nil {
		return nil, err
	}
	entries, err := tbl.Iterate()
	if err != nil {
		return nil, fmt.Errorf("iterating: %w", err)
	}
	out := make([]R, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Record)
	}
	return out, nil
}

// listOrNotFound is list with an empty table reported as NotFound(empty).
func listOrNotFound[R any](acquire acquireFunc[R], empty string) ([]R, error) {
	out, err := list(acquire)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, types.NotFound(empty)
	}
	return out, nil
}

// requireProperty reports NotFound when no property has the given id.
func (s *Service) requireProperty(id uint64) error {
	props, err := s.store.Properties()
	if err != nil {
		return err
	}
	_, ok, err := props.Get(id)
	if err != nil {
		return fmt.Errorf("reading property %d: %w", id, err)
	}
	if !ok {
		return types.NotFound(types.MsgPropertyNotFound)
	}
	return nil
}

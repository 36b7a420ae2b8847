// Package memory provides an in-memory storage substrate used for tests and
// ephemeral environments. Records are held in their encoded form so the
// codec ceiling applies exactly as it does on disk.
package memory

import (
	"slices"
	"sync"

	"github.com/mesh-intelligence/estate/internal/codec"
	"github.com/mesh-intelligence/estate/pkg/types"
)

// Compile-time contract assertion.
var _ types.Store = (*Store)(nil)

// Store implements types.Store over maps.
type Store struct {
	mu       sync.RWMutex
	attached bool
	rows     map[string]map[uint64][]byte
	next     uint64
}

// NewStore returns a detached, empty store.
func NewStore() *Store {
	s := &Store{}
	s.reset()
	return s
}

func (s *Store) reset() {
	s.rows = make(map[string]map[uint64][]byte, len(types.StandardTableNames))
	for _, name := range types.StandardTableNames {
		s.rows[name] = make(map[uint64][]byte)
	}
	s.next = 0
}

// Attach validates config and marks the store usable. Data is kept across
// Detach/Attach cycles for the life of the process.
func (s *Store) Attach(config types.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}
	s.attached = true
	return nil
}

// Detach is idempotent.
func (s *Store) Detach() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attached = false
	return nil
}

// Properties returns the property table.
func (s *Store) Properties() (types.Table[types.Property], error) {
	return tableFor[types.Property](s, types.PropertiesTable)
}

// LeaseAgreements returns the lease agreement table.
func (s *Store) LeaseAgreements() (types.Table[types.LeaseAgreement], error) {
	return tableFor[types.LeaseAgreement](s, types.LeaseAgreementsTable)
}

// MaintenanceRequests returns the maintenance request table.
func (s *Store) MaintenanceRequests() (types.Table[types.MaintenanceRequest], error) {
	return tableFor[types.MaintenanceRequest](s, types.MaintenanceRequestsTable)
}

// Counter returns the ID counter cell.
func (s *Store) Counter() (types.Counter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.attached {
		return nil, types.ErrStoreDetached
	}
	return counter{s: s}, nil
}

func tableFor[R any](s *Store, name string) (types.Table[R], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.attached {
		return nil, types.ErrStoreDetached
	}
	return &table[R]{s: s, name: name}, nil
}

type table[R any] struct {
	s    *Store
	name string
}

func (t *table[R]) Get(id uint64) (R, bool, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	var zero R
	if !t.s.attached {
		return zero, false, types.ErrStoreDetached
	}
	data, ok := t.s.rows[t.name][id]
	if !ok {
		return zero, false, nil
	}
	r, err := codec.Decode[R](data)
	if err != nil {
		return zero, false, err
	}
	return r, true, nil
}

func (t *table[R]) Insert(id uint64, r R) error {
	data, err := codec.Encode(r)
	if err != nil {
		return err
	}

	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if !t.s.attached {
		return types.ErrStoreDetached
	}
	t.s.rows[t.name][id] = data
	return nil
}

func (t *table[R]) Remove(id uint64) (R, bool, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	var zero R
	if !t.s.attached {
		return zero, false, types.ErrStoreDetached
	}
	data, ok := t.s.rows[t.name][id]
	if !ok {
		return zero, false, nil
	}
	r, err := codec.Decode[R](data)
	if err != nil {
		return zero, false, err
	}
	delete(t.s.rows[t.name], id)
	return r, true, nil
}

func (t *table[R]) Iterate() ([]types.Entry[R], error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	if !t.s.attached {
		return nil, types.ErrStoreDetached
	}
	rows := t.s.rows[t.name]
	ids := make([]uint64, 0, len(rows))
	for id := range rows {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]types.Entry[R], 0, len(ids))
	for _, id := range ids {
		r, err := codec.Decode[R](rows[id])
		if err != nil {
			return nil, err
		}
		out = append(out, types.Entry[R]{ID: id, Record: r})
	}
	return out, nil
}

func (t *table[R]) Len() (int, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	if !t.s.attached {
		return 0, types.ErrStoreDetached
	}
	return len(t.s.rows[t.name]), nil
}

type counter struct {
	s *Store
}

func (c counter) Get() (uint64, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()
	if !c.s.attached {
		return 0, types.ErrStoreDetached
	}
	return c.s.next, nil
}

func (c counter) Set(v uint64) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	if !c.s.attached {
		return types.ErrStoreDetached
	}
	c.s.next = v
	return nil
}

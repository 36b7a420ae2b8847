// Package store is the public factory for estate storage substrates. The
// returned Store is not attached; call Attach with the same Config.
//
// Example:
//
//	s, err := store.New(types.Config{Backend: types.BackendSQLite, DataDir: "data"})
//	if err != nil { ... }
//	if err := s.Attach(cfg); err != nil { ... }
//	defer s.Detach()
package store

import (
	"fmt"

	"github.com/mesh-intelligence/estate/internal/memory"
	"github.com/mesh-intelligence/estate/internal/sqlite"
	"github.com/mesh-intelligence/estate/pkg/types"
)

// New returns an unattached Store for config.Backend.
func New(config types.Config) (types.Store, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	switch config.Backend {
	case types.BackendSQLite:
		return sqlite.NewBackend(), nil
	case types.BackendMemory:
		return memory.NewStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrBackendUnknown, config.Backend)
	}
}

// Open is New followed by Attach.
func Open(config types.Config) (types.Store, error) {
	s, err := New(config)
	if err != nil {
		return nil, err
	}
	if err := s.Attach(config); err != nil {
		return nil, err
	}
	return s, nil
}

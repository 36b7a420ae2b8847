// Package sqlite implements the durable storage substrate on SQLite.
// Each entity table is a SQLite table of (id, encoded record) rows and the
// ID counter lives in a counters table, so all state survives restarts.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/mesh-intelligence/estate/pkg/types"
)

// DBFileName is the database file created inside Config.DataDir.
const DBFileName = "estate.db"

// Compile-time contract assertion.
var _ types.Store = (*Backend)(nil)

// Backend implements types.Store on a SQLite database file.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	path     string
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{}
}

// Attach opens (or creates) the database under DataDir and applies the
// schema. Existing data is kept. Returns ErrAlreadyAttached if already
// attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}
	if config.Backend != types.BackendSQLite {
		return fmt.Errorf("sqlite backend cannot serve %q: %w", config.Backend, types.ErrBackendUnknown)
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	path := filepath.Join(dataDir, DBFileName)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	// One connection keeps writes serialized and avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := applySchema(db); err != nil {
		db.Close()
		return err
	}

	b.attachDB(db, config, path)
	return nil
}

// attachDB binds an already-prepared database handle. The caller holds b.mu.
func (b *Backend) attachDB(db *sql.DB, config types.Config, path string) {
	b.db = db
	b.config = config
	b.path = path
	b.attached = true
}

// Detach closes the database. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	b.attached = false
	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return fmt.Errorf("close sqlite: %w", err)
		}
		b.db = nil
	}
	return nil
}

// Path returns the database file path of the current attachment.
func (b *Backend) Path() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.path
}

// handle returns the open database, or ErrStoreDetached.
func (b *Backend) handle() (*sql.DB, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrStoreDetached
	}
	return b.db, nil
}

// Properties returns the property table.
func (b *Backend) Properties() (types.Table[types.Property], error) {
	return tableFor[types.Property](b, types.PropertiesTable)
}

// LeaseAgreements returns the lease agreement table.
func (b *Backend) LeaseAgreements() (types.Table[types.LeaseAgreement], error) {
	return tableFor[types.LeaseAgreement](b, types.LeaseAgreementsTable)
}

// MaintenanceRequests returns the maintenance request table.
func (b *Backend) MaintenanceRequests() (types.Table[types.MaintenanceRequest], error) {
	return tableFor[types.MaintenanceRequest](b, types.MaintenanceRequestsTable)
}

// Counter returns the persisted ID counter cell.
func (b *Backend) Counter() (types.Counter, error) {
	if _, err := b.handle(); err != nil {
		return nil, err
	}
	return &counter{backend: b, name: types.NextIDCounter}, nil
}

package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/mesh-intelligence/estate/pkg/types"
)

// Schema DDL. Every entity table has the same shape: the id key and the
// codec-encoded record.
const (
	createProperties = `CREATE TABLE IF NOT EXISTS properties (
    id INTEGER PRIMARY KEY,
    record BLOB NOT NULL
);`

	createLeaseAgreements = `CREATE TABLE IF NOT EXISTS lease_agreements (
    id INTEGER PRIMARY KEY,
    record BLOB NOT NULL
);`

	createMaintenanceRequests = `CREATE TABLE IF NOT EXISTS maintenance_requests (
    id INTEGER PRIMARY KEY,
    record BLOB NOT NULL
);`

	createCounters = `CREATE TABLE IF NOT EXISTS counters (
    name TEXT PRIMARY KEY,
    value INTEGER NOT NULL
);`

	seedNextID = `INSERT OR IGNORE INTO counters (name, value) VALUES ('` + types.NextIDCounter + `', 0);`
)

// schemaDDL lists all statements applied on Attach, in order.
var schemaDDL = []string{
	createProperties,
	createLeaseAgreements,
	createMaintenanceRequests,
	createCounters,
	seedNextID,
}

// applySchema creates missing tables and seeds the counter. It is safe to run
// against an existing database.
func applySchema(db *sql.DB) error {
	for _, stmt := range schemaDDL {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

package types

// Table names used by storage substrates and exports.
const (
	PropertiesTable          = "properties"
	LeaseAgreementsTable     = "lease_agreements"
	MaintenanceRequestsTable = "maintenance_requests"
)

// StandardTableNames lists all table names for enumeration.
var StandardTableNames = []string{
	PropertiesTable,
	LeaseAgreementsTable,
	MaintenanceRequestsTable,
}

// NextIDCounter names the persisted counter cell backing the ID allocator.
const NextIDCounter = "next_id"

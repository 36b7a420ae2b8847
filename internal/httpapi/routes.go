package httpapi

const (
	// Health
	Health = "/health"

	// Metrics
	Metrics = "/metrics"

	// Record endpoints
	Properties          = "/api/v1/properties"
	Property            = "/api/v1/properties/{id}"
	Leases              = "/api/v1/leases"
	Lease               = "/api/v1/leases/{id}"
	MaintenanceRequests = "/api/v1/maintenance-requests"
	MaintenanceRequest  = "/api/v1/maintenance-requests/{id}"
)

package types

// Maintenance request states accepted at creation.
const (
	MaintenancePending   = "pending"
	MaintenanceCompleted = "completed"
)

// MaintenanceRequest is a work order against a property. PropertyID is a
// weak reference, checked only at creation.
type MaintenanceRequest struct {
	ID          uint64 `json:"id" cbor:"1,keyasint"`
	PropertyID  uint64 `json:"property_id" cbor:"2,keyasint"`
	Description string `json:"description" cbor:"3,keyasint"`
	Status      string `json:"status" cbor:"4,keyasint"`
	CreatedAt   uint64 `json:"created_at" cbor:"5,keyasint"`
	Priority    string `json:"priority" cbor:"6,keyasint"`
}

// MaintenanceRequestPayload carries the caller-supplied fields of a request.
type MaintenanceRequestPayload struct {
	PropertyID  uint64 `json:"property_id"`
	Description string `json:"description"`
	Status      string `json:"status" validate:"oneof=pending completed"`
	Priority    string `json:"priority"`
}

// NewMaintenanceRequest builds a MaintenanceRequest from a payload.
func NewMaintenanceRequest(id uint64, p MaintenanceRequestPayload, createdAt uint64) MaintenanceRequest {
	return MaintenanceRequest{
		ID:          id,
		PropertyID:  p.PropertyID,
		Description: p.Description,
		Status:      p.Status,
		CreatedAt:   createdAt,
		Priority:    p.Priority,
	}
}

// Apply replaces the mutable fields with the payload's values.
func (r *MaintenanceRequest) Apply(p MaintenanceRequestPayload) {
	r.PropertyID = p.PropertyID
	r.Description = p.Description
	r.Status = p.Status
	r.Priority = p.Priority
}

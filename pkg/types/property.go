package types

// Property is a real-estate asset. ID and CreatedAt are fixed at creation;
// every other field is replaced by an update.
type Property struct {
	ID        uint64  `json:"id" cbor:"1,keyasint"`
	Address   string  `json:"address" cbor:"2,keyasint"`
	Owner     string  `json:"owner" cbor:"3,keyasint"`
	Valuation float64 `json:"valuation" cbor:"4,keyasint"`
	Status    string  `json:"status" cbor:"5,keyasint"`
	CreatedAt uint64  `json:"created_at" cbor:"6,keyasint"`
}

// PropertyPayload carries the caller-supplied fields of a Property.
type PropertyPayload struct {
	Address   string  `json:"address" validate:"required"`
	Owner     string  `json:"owner" validate:"required"`
	Valuation float64 `json:"valuation"`
	Status    string  `json:"status"`
}

// NewProperty builds a Property from a payload.
func NewProperty(id uint64, p PropertyPayload, createdAt uint64) Property {
	return Property{
		ID:        id,
		Address:   p.Address,
		Owner:     p.Owner,
		Valuation: p.Valuation,
		Status:    p.Status,
		CreatedAt: createdAt,
	}
}

// Apply replaces the mutable fields with the payload's values.
func (r *Property) Apply(p PropertyPayload) {
	r.Address = p.Address
	r.Owner = p.Owner
	r.Valuation = p.Valuation
	r.Status = p.Status
}

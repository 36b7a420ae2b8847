package types

// LeaseAgreement binds a tenant to a property for a date range. PropertyID is
// a weak reference: it is checked when the lease is created and never again.
type LeaseAgreement struct {
	ID               uint64  `json:"id" cbor:"1,keyasint"`
	PropertyID       uint64  `json:"property_id" cbor:"2,keyasint"`
	Tenant           string  `json:"tenant" cbor:"3,keyasint"`
	Rent             float64 `json:"rent" cbor:"4,keyasint"`
	StartDate        uint64  `json:"start_date" cbor:"5,keyasint"`
	EndDate          uint64  `json:"end_date" cbor:"6,keyasint"`
	CreatedAt        uint64  `json:"created_at" cbor:"7,keyasint"`
	DigitalSignature string  `json:"digital_signature" cbor:"8,keyasint"`
}

// LeaseAgreementPayload carries the caller-supplied fields of a lease.
type LeaseAgreementPayload struct {
	PropertyID       uint64  `json:"property_id"`
	Tenant           string  `json:"tenant" validate:"required"`
	Rent             float64 `json:"rent"`
	StartDate        uint64  `json:"start_date" validate:"ltfield=EndDate"`
	EndDate          uint64  `json:"end_date"`
	DigitalSignature string  `json:"digital_signature"`
}

// NewLeaseAgreement builds a LeaseAgreement from a payload.
func NewLeaseAgreement(id uint64, p LeaseAgreementPayload, createdAt uint64) LeaseAgreement {
	return LeaseAgreement{
		ID:               id,
		PropertyID:       p.PropertyID,
		Tenant:           p.Tenant,
		Rent:             p.Rent,
		StartDate:        p.StartDate,
		EndDate:          p.EndDate,
		CreatedAt:        createdAt,
		DigitalSignature: p.DigitalSignature,
	}
}

// Apply replaces the mutable fields with the payload's values.
func (r *LeaseAgreement) Apply(p LeaseAgreementPayload) {
	r.PropertyID = p.PropertyID
	r.Tenant = p.Tenant
	r.Rent = p.Rent
	r.StartDate = p.StartDate
	r.EndDate = p.EndDate
	r.DigitalSignature = p.DigitalSignature
}

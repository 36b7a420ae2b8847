package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPropertyApplyKeepsIdentity(t *testing.T) {
	p := NewProperty(7, PropertyPayload{Address: "123 Main St", Owner: "Alice", Valuation: 500000, Status: "available"}, 1700000000)
	p.Apply(PropertyPayload{Address: "123 Main St", Owner: "Bob", Valuation: 600000, Status: "sold"})

	assert.Equal(t, uint64(7), p.ID)
	assert.Equal(t, uint64(1700000000), p.CreatedAt)
	assert.Equal(t, "Bob", p.Owner)
	assert.Equal(t, 600000.0, p.Valuation)
	assert.Equal(t, "sold", p.Status)
}

func TestLeaseApplyReplacesAllMutableFields(t *testing.T) {
	l := NewLeaseAgreement(3, LeaseAgreementPayload{PropertyID: 1, Tenant: "Carol", Rent: 900, StartDate: 10, EndDate: 20, DigitalSignature: "sig"}, 42)
	l.Apply(LeaseAgreementPayload{PropertyID: 2, Tenant: "Dan", Rent: 950, StartDate: 30, EndDate: 5})

	assert.Equal(t, LeaseAgreement{ID: 3, PropertyID: 2, Tenant: "Dan", Rent: 950, StartDate: 30, EndDate: 5, CreatedAt: 42}, l)
}

func TestMaintenanceApply(t *testing.T) {
	m := NewMaintenanceRequest(5, MaintenanceRequestPayload{PropertyID: 1, Description: "roof", Status: "pending", Priority: "high"}, 9)
	m.Apply(MaintenanceRequestPayload{PropertyID: 1, Description: "roof", Status: "anything", Priority: "low"})

	assert.Equal(t, MaintenanceRequest{ID: 5, PropertyID: 1, Description: "roof", Status: "anything", CreatedAt: 9, Priority: "low"}, m)
}

func TestTimestamp(t *testing.T) {
	assert.Equal(t, uint64(1700000000), Timestamp(time.Unix(1700000000, 999999999)))
	assert.Equal(t, uint64(0), Timestamp(time.Unix(-5, 0)))
}

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePropertyPayload(t *testing.T) {
	tests := []struct {
		name    string
		payload PropertyPayload
		wantMsg string
	}{
		{
			name:    "valid property",
			payload: PropertyPayload{Address: "123 Main St", Owner: "Alice", Valuation: 500000, Status: "available"},
		},
		{
			name:    "status and valuation are free",
			payload: PropertyPayload{Address: "1 Elm", Owner: "Bob"},
		},
		{
			name:    "empty address",
			payload: PropertyPayload{Owner: "Alice"},
			wantMsg: MsgAddressOwnerRequired,
		},
		{
			name:    "empty owner",
			payload: PropertyPayload{Address: "123 Main St"},
			wantMsg: MsgAddressOwnerRequired,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertValidation(t, ValidatePropertyPayload(tt.payload), tt.wantMsg)
		})
	}
}

func TestValidateLeaseAgreementPayload(t *testing.T) {
	tests := []struct {
		name    string
		payload LeaseAgreementPayload
		wantMsg string
	}{
		{
			name:    "valid lease",
			payload: LeaseAgreementPayload{PropertyID: 0, Tenant: "Carol", Rent: 1200, StartDate: 50, EndDate: 100},
		},
		{
			name:    "empty tenant",
			payload: LeaseAgreementPayload{StartDate: 50, EndDate: 100},
			wantMsg: MsgTenantRequired,
		},
		{
			name:    "start after end",
			payload: LeaseAgreementPayload{Tenant: "Carol", StartDate: 100, EndDate: 50},
			wantMsg: MsgInvalidDates,
		},
		{
			name:    "start equal to end",
			payload: LeaseAgreementPayload{Tenant: "Carol", StartDate: 100, EndDate: 100},
			wantMsg: MsgInvalidDates,
		},
		{
			name:    "tenant reported before dates",
			payload: LeaseAgreementPayload{StartDate: 100, EndDate: 50},
			wantMsg: MsgTenantRequired,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertValidation(t, ValidateLeaseAgreementPayload(tt.payload), tt.wantMsg)
		})
	}
}

func TestValidateMaintenanceRequestPayload(t *testing.T) {
	tests := []struct {
		name    string
		status  string
		wantMsg string
	}{
		{name: "pending", status: MaintenancePending},
		{name: "completed", status: MaintenanceCompleted},
		{name: "unknown status", status: "in_progress", wantMsg: MsgInvalidStatus},
		{name: "empty status", status: "", wantMsg: MsgInvalidStatus},
		{name: "case sensitive", status: "Pending", wantMsg: MsgInvalidStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := MaintenanceRequestPayload{Description: "leaky tap", Status: tt.status, Priority: "high"}
			assertValidation(t, ValidateMaintenanceRequestPayload(p), tt.wantMsg)
		})
	}
}

func assertValidation(t *testing.T, err error, wantMsg string) {
	t.Helper()
	if wantMsg == "" {
		require.NoError(t, err)
		return
	}
	require.Error(t, err)
	assert.ErrorIs(t, err, Validation(wantMsg))
}

package types

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Validation messages returned by the create-time rules.
const (
	MsgAddressOwnerRequired = "Address and owner are required"
	MsgTenantRequired       = "Tenant name is required"
	MsgInvalidDates         = "Invalid dates. Start date must be before end date"
	MsgInvalidStatus        = "Invalid status. Status must be either 'pending' or 'completed'"
	MsgPropertyNotFound     = "Property not found"
)

var validate = validator.New()

// fieldMessages maps a failing struct field to the message reported for it.
var fieldMessages = map[string]string{
	"PropertyPayload.Address":          MsgAddressOwnerRequired,
	"PropertyPayload.Owner":            MsgAddressOwnerRequired,
	"LeaseAgreementPayload.Tenant":     MsgTenantRequired,
	"LeaseAgreementPayload.StartDate":  MsgInvalidDates,
	"MaintenanceRequestPayload.Status": MsgInvalidStatus,
}

// ValidatePropertyPayload rejects a property without an address or owner.
func ValidatePropertyPayload(p PropertyPayload) error {
	return check(p)
}

// ValidateLeaseAgreementPayload rejects a lease without a tenant or whose
// start date is not before its end date. The tenant rule is reported first.
func ValidateLeaseAgreementPayload(p LeaseAgreementPayload) error {
	return check(p)
}

// ValidateMaintenanceRequestPayload rejects a request whose status is not
// pending or completed.
func ValidateMaintenanceRequestPayload(p MaintenanceRequestPayload) error {
	return check(p)
}

// check runs the struct-tag rules and converts the first failure, in field
// declaration order, into a validation Error.
func check(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validating %T: %w", payload, err)
	}
	fe := verrs[0]
	if msg, ok := fieldMessages[fe.StructNamespace()]; ok {
		return Validation(msg)
	}
	return Validation(fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
}

package kernel

import (
	"strings"

	"github.com/m4r-ant/200millas-Backend/internal/pkg/errs"
)

// ErrTenantIDIsRequired indicates that a TenantID was not properly initialized
// through the NewTenantID constructor. The zero value of TenantID is invalid.
var ErrTenantIDIsRequired = errs.NewValueIsRequiredError("tenant ID must be created via NewTenantID")

// TenantID is a value object identifying the organization that owns a record.
// Every entity and query in the system is scoped by exactly one TenantID;
// cross-tenant lookups fail closed as not-found.
//
// TenantID is immutable and safe for concurrent use. The zero value is
// invalid and must be created through NewTenantID.
//
// Example usage:
//
//	tenant, err := kernel.NewTenantID("200millas")
//	if err != nil {
//	    // handle error
//	}
type TenantID struct {
	id string
}

// NewTenantID creates a TenantID from its string form.
// Surrounding whitespace is trimmed; an empty identifier is rejected.
func NewTenantID(id string) (TenantID, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return TenantID{}, errs.NewValueIsRequiredError("tenant ID")
	}
	return TenantID{id: id}, nil
}

// String returns the tenant identifier as provided at construction.
func (t TenantID) String() string {
	return t.id
}

// IsEqual compares two tenant identifiers for equality.
func (t TenantID) IsEqual(other TenantID) bool {
	return t.id == other.id
}

// Validate checks that the TenantID was created through NewTenantID.
// Returns ErrTenantIDIsRequired for the zero value.
func (t TenantID) Validate() error {
	if t.id == "" {
		return ErrTenantIDIsRequired
	}
	return nil
}

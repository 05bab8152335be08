package staff

import (
	"fmt"
	"strings"

	"github.com/m4r-ant/200millas-Backend/internal/pkg/errs"
)

// Status represents a staff member's current availability.
//
// Available staff can be matched to queued work. Busy staff hold exactly one
// order and are skipped by the matcher. Offline staff are off shift and
// invisible to assignment.
type Status int

const (
	// StatusUnknown represents an invalid or unset availability status.
	StatusUnknown Status = iota
	// StatusAvailable means the staff member is on shift and can take work.
	StatusAvailable
	// StatusBusy means the staff member currently holds an order.
	StatusBusy
	// StatusOffline means the staff member is off shift.
	StatusOffline
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "unknown",
		StatusAvailable: "available",
		StatusBusy:      "busy",
		StatusOffline:   "offline",
	}
}

// ParseStatus converts a string into a Status. Matching is case-insensitive.
func ParseStatus(s string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for status, name := range getStatusStrings() {
		if status != StatusUnknown && name == normalized {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid availability status", s))
}

// Validate checks that the status is one of the known availability states.
func (s Status) Validate() error {
	if s != StatusAvailable && s != StatusBusy && s != StatusOffline {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid availability status", int(s)))
	}
	return nil
}

// String returns the wire name of the status.
func (s Status) String() string {
	if name, ok := getStatusStrings()[s]; ok {
		return name
	}
	return getStatusStrings()[StatusUnknown]
}

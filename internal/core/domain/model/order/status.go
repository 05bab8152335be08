package order

import (
	"fmt"

	"github.com/m4r-ant/200millas-Backend/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a strictly linear state machine with a single side-terminal
// failure state; the legality of every transition is encoded in one central
// table rather than scattered across per-state handlers.
//
// State transitions:
//
//	Pending -> Confirmed -> Cooking -> Packing -> Ready -> InDelivery -> Delivered
//	                                               ^            |
//	                                               └────────────┘
//	                                        (driver cancels a pickup)
//
// Every non-terminal state can additionally move to Failed.
// Delivered and Failed are terminal and allow no further transitions.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status at order creation, before the workflow
	// engine confirms the order. Confirmation is immediate and automatic.
	Pending

	// Confirmed indicates the order was accepted and is queued for a chef.
	Confirmed

	// Cooking indicates a chef has been assigned and is preparing the order.
	Cooking

	// Packing indicates cooking finished and the same chef is packing.
	Packing

	// Ready indicates the order is packed and waiting for a driver to claim it.
	Ready

	// InDelivery indicates a driver has picked up the order.
	InDelivery

	// Delivered indicates the order reached the customer. Terminal.
	Delivered

	// Failed indicates the order was cancelled or hit an unrecoverable error.
	// Terminal, reachable from any non-terminal state.
	Failed
)

// getStatusStrings returns a map of Status values to their wire representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Pending:    "pending",
		Confirmed:  "confirmed",
		Cooking:    "cooking",
		Packing:    "packing",
		Ready:      "ready",
		InDelivery: "in_delivery",
		Delivered:  "delivered",
		Failed:     "failed",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation and parsing.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "pending",
		Confirmed:  "confirmed",
		Cooking:    "cooking",
		Packing:    "packing",
		Ready:      "ready",
		InDelivery: "in_delivery",
		Delivered:  "delivered",
		Failed:     "failed",
	}
}

// getTransitions returns the central transition table: for each status, the
// set of statuses legally reachable from it. This table is the single source
// of truth for workflow legality; role and ownership gating layers on top of
// it in the transition command handler.
func getTransitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:    {Confirmed, Failed},
		Confirmed:  {Cooking, Failed},
		Cooking:    {Packing, Failed},
		Packing:    {Ready, Failed},
		Ready:      {InDelivery, Failed},
		InDelivery: {Delivered, Ready, Failed},
		Delivered:  {},
		Failed:     {},
	}
}

// ParseStatus converts a wire representation ("cooking", "in_delivery", ...)
// into a Status. Returns an error for unknown representations.
func ParseStatus(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
// Unknown (0) and any other out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire representation of the status.
// Implements fmt.Stringer; safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status allows no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Failed
}

// CanTransitionTo reports whether moving from the current status to target is
// legal per the central transition table. It checks workflow legality only;
// role and ownership requirements are enforced by the caller.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range getTransitions()[s] {
		if next == target {
			return true
		}
	}
	return false
}

// TransitionTo returns the target status if the transition is legal from the
// current status, or an error describing the illegal move. The returned error
// unwraps to errs.ErrInvalidTransition.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}

	if !s.CanTransitionTo(target) {
		return Unknown, errs.NewInvalidTransitionError("", s.String(), target.String())
	}

	return target, nil
}

package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors used as the root of every error chain in the application.
// Callers should classify errors with errors.Is against these values.
var (
	ErrObjectNotFound       = errors.New("object not found")
	ErrValueIsInvalid       = errors.New("value is invalid")
	ErrValueIsOutOfRange    = errors.New("value is out of range")
	ErrValueIsRequired      = errors.New("value is required")
	ErrVersionIsInvalid     = errors.New("version is invalid")
	ErrInvalidTransition    = errors.New("invalid transition")
	ErrForbidden            = errors.New("forbidden")
	ErrConsistencyViolation = errors.New("consistency violation")
	ErrAssignmentConflict   = errors.New("assignment conflict")
	ErrConcurrencyConflict  = errors.New("concurrency conflict")
)

// ObjectNotFoundError indicates that a requested object does not exist.
// Cross-tenant lookups also surface as this error so that the existence
// of another tenant's data is never leaked.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError without a cause.
func NewObjectNotFoundError(paramName string, id any) ObjectNotFoundError {
	return ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping an underlying cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) ObjectNotFoundError {
	return ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)", ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError indicates that a provided value failed validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError without a cause.
func NewValueIsInvalidError(paramName string) ValueIsInvalidError {
	return ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping an underlying cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) ValueIsInvalidError {
	return ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError indicates that a numeric value is outside its allowed bounds.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

// NewValueIsOutOfRangeError creates a ValueIsOutOfRangeError without a cause.
func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) ValueIsOutOfRangeError {
	return ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

// NewValueIsOutOfRangeErrorWithCause creates a ValueIsOutOfRangeError wrapping an underlying cause.
func NewValueIsOutOfRangeErrorWithCause(paramName string, value, minValue, maxValue any, cause error) ValueIsOutOfRangeError {
	return ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e ValueIsOutOfRangeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v (cause: %s)",
			ErrValueIsInvalid, e.Value, e.ParamName, e.Min, e.Max, e.Cause)
	}
	return fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, e.Value, e.ParamName, e.Min, e.Max)
}

func (e ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError indicates that a required value is missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError without a cause.
func NewValueIsRequiredError(paramName string) ValueIsRequiredError {
	return ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping an underlying cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) ValueIsRequiredError {
	return ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// VersionIsInvalidError indicates that a version value could not be parsed or compared.
type VersionIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewVersionIsInvalidError creates a VersionIsInvalidError wrapping an underlying cause.
func NewVersionIsInvalidError(paramName string, cause error) VersionIsInvalidError {
	return VersionIsInvalidError{ParamName: paramName, Cause: cause}
}

// NewVersionIsInvalidErrorWithCause creates a VersionIsInvalidError without a cause.
func NewVersionIsInvalidErrorWithCause(paramName string) VersionIsInvalidError {
	return VersionIsInvalidError{ParamName: paramName}
}

func (e VersionIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrVersionIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrVersionIsInvalid, e.ParamName)
}

func (e VersionIsInvalidError) Unwrap() error {
	return ErrVersionIsInvalid
}

// InvalidTransitionError indicates that a requested workflow transition is not
// legal from the order's current status. CurrentStatus always carries the
// authoritative state at rejection time so clients can reconcile without
// polling.
type InvalidTransitionError struct {
	OrderID         string
	CurrentStatus   string
	RequestedStatus string
	Cause           error
}

// NewInvalidTransitionError creates an InvalidTransitionError for the given order and statuses.
func NewInvalidTransitionError(orderID, currentStatus, requestedStatus string) InvalidTransitionError {
	return InvalidTransitionError{OrderID: orderID, CurrentStatus: currentStatus, RequestedStatus: requestedStatus}
}

// NewInvalidTransitionErrorWithCause creates an InvalidTransitionError wrapping an underlying cause.
func NewInvalidTransitionErrorWithCause(orderID, currentStatus, requestedStatus string, cause error) InvalidTransitionError {
	return InvalidTransitionError{
		OrderID:         orderID,
		CurrentStatus:   currentStatus,
		RequestedStatus: requestedStatus,
		Cause:           cause,
	}
}

func (e InvalidTransitionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: order %s cannot move from %s to %s (cause: %s)",
			ErrInvalidTransition, e.OrderID, e.CurrentStatus, e.RequestedStatus, e.Cause)
	}
	return fmt.Sprintf("%s: order %s cannot move from %s to %s",
		ErrInvalidTransition, e.OrderID, e.CurrentStatus, e.RequestedStatus)
}

func (e InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// ForbiddenError indicates that the acting identity lacks the role or
// ownership required for the attempted operation.
type ForbiddenError struct {
	ActorID string
	Action  string
}

// NewForbiddenError creates a ForbiddenError for the given actor and action.
func NewForbiddenError(actorID, action string) ForbiddenError {
	return ForbiddenError{ActorID: actorID, Action: action}
}

func (e ForbiddenError) Error() string {
	return fmt.Sprintf("%s: actor %s may not %s", ErrForbidden, e.ActorID, e.Action)
}

func (e ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// ConsistencyViolationError indicates a broken ledger invariant. It is never
// retried: it signals a logic defect and the affected order is flagged failed
// pending manual intervention.
type ConsistencyViolationError struct {
	OrderID string
	Detail  string
}

// NewConsistencyViolationError creates a ConsistencyViolationError for the given order.
func NewConsistencyViolationError(orderID, detail string) ConsistencyViolationError {
	return ConsistencyViolationError{OrderID: orderID, Detail: detail}
}

func (e ConsistencyViolationError) Error() string {
	return fmt.Sprintf("%s: order %s: %s", ErrConsistencyViolation, e.OrderID, e.Detail)
}

func (e ConsistencyViolationError) Unwrap() error {
	return ErrConsistencyViolation
}

package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors for the dispatch-specific error kinds. These classify the
// business-rule failures a caller can act on: wrong ordering, uncollected
// payment, geofence distance, repeated terminal actions, amount mismatches,
// unconfirmed gateway transactions and optimistic-concurrency conflicts.
var (
	ErrUnauthorized               = errors.New("principal is not permitted for this resource")
	ErrSequentialViolation        = errors.New("previous delivery is not completed")
	ErrPaymentOutstanding         = errors.New("previous delivery payment is not collected")
	ErrGeofenceViolation          = errors.New("courier is outside the arrival geofence")
	ErrAlreadyInTerminalState     = errors.New("action was already applied")
	ErrAmountMismatch             = errors.New("collected amount does not match amount owed")
	ErrExternalPaymentUnconfirmed = errors.New("external payment transaction is not confirmed")
	ErrConflictRetry              = errors.New("concurrent modification detected, retry the action")
)

// UnauthorizedError indicates the acting principal has no permission for the
// targeted resource.
type UnauthorizedError struct {
	Role     string
	Resource string
}

// NewUnauthorizedError creates an UnauthorizedError for the given role and
// resource description.
func NewUnauthorizedError(role string, resource string) *UnauthorizedError {
	return &UnauthorizedError{Role: role, Resource: resource}
}

func (e *UnauthorizedError) Error() string {
	return sanitize(fmt.Sprintf("%s: role is: %s, resource is: %s", ErrUnauthorized, e.Role, e.Resource))
}

func (e *UnauthorizedError) Unwrap() error {
	return ErrUnauthorized
}

// SequentialViolationError indicates an action targeted a delivery whose
// predecessor is not yet completed or skipped. PredecessorCode identifies the
// stop that must be finished first.
type SequentialViolationError struct {
	PredecessorCode string
}

// NewSequentialViolationError creates a SequentialViolationError carrying the
// blocking predecessor's code.
func NewSequentialViolationError(predecessorCode string) *SequentialViolationError {
	return &SequentialViolationError{PredecessorCode: predecessorCode}
}

func (e *SequentialViolationError) Error() string {
	return sanitize(fmt.Sprintf("%s: complete %s first", ErrSequentialViolation, e.PredecessorCode))
}

func (e *SequentialViolationError) Unwrap() error {
	return ErrSequentialViolation
}

// PaymentOutstandingError indicates the predecessor delivery still owes a
// payment collection. Reported distinctly from SequentialViolationError so a
// client can tell "wrong order" from "payment still owed".
type PaymentOutstandingError struct {
	PredecessorCode string
	Outstanding     float64
}

// NewPaymentOutstandingError creates a PaymentOutstandingError carrying the
// predecessor's code and the uncollected amount.
func NewPaymentOutstandingError(predecessorCode string, outstanding float64) *PaymentOutstandingError {
	return &PaymentOutstandingError{PredecessorCode: predecessorCode, Outstanding: outstanding}
}

func (e *PaymentOutstandingError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s owes %.2f", ErrPaymentOutstanding, e.PredecessorCode, e.Outstanding))
}

func (e *PaymentOutstandingError) Unwrap() error {
	return ErrPaymentOutstanding
}

// GeofenceViolationError indicates the courier is too far from the stop's
// destination. DistanceKm is the measured great-circle distance, RadiusKm the
// allowed arrival radius.
type GeofenceViolationError struct {
	DistanceKm float64
	RadiusKm   float64
}

// NewGeofenceViolationError creates a GeofenceViolationError with the measured
// distance and the allowed radius, both in kilometers.
func NewGeofenceViolationError(distanceKm float64, radiusKm float64) *GeofenceViolationError {
	return &GeofenceViolationError{DistanceKm: distanceKm, RadiusKm: radiusKm}
}

func (e *GeofenceViolationError) Error() string {
	return sanitize(fmt.Sprintf("%s: %.3f km away, allowed radius is %.3f km",
		ErrGeofenceViolation, e.DistanceKm, e.RadiusKm))
}

func (e *GeofenceViolationError) Unwrap() error {
	return ErrGeofenceViolation
}

// AlreadyInTerminalStateError indicates a repeated arrive/complete/override on
// a delivery that already absorbed the action.
type AlreadyInTerminalStateError struct {
	Code   string
	Status string
}

// NewAlreadyInTerminalStateError creates an AlreadyInTerminalStateError for
// the delivery code and its current status.
func NewAlreadyInTerminalStateError(code string, status string) *AlreadyInTerminalStateError {
	return &AlreadyInTerminalStateError{Code: code, Status: status}
}

func (e *AlreadyInTerminalStateError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s is already %s", ErrAlreadyInTerminalState, e.Code, e.Status))
}

func (e *AlreadyInTerminalStateError) Unwrap() error {
	return ErrAlreadyInTerminalState
}

// AmountMismatchError indicates a collected payment amount differs from the
// amount owed for the stop.
type AmountMismatchError struct {
	Expected  float64
	Collected float64
}

// NewAmountMismatchError creates an AmountMismatchError with the owed and
// collected amounts.
func NewAmountMismatchError(expected float64, collected float64) *AmountMismatchError {
	return &AmountMismatchError{Expected: expected, Collected: collected}
}

func (e *AmountMismatchError) Error() string {
	return sanitize(fmt.Sprintf("%s: owed %.2f, collected %.2f", ErrAmountMismatch, e.Expected, e.Collected))
}

func (e *AmountMismatchError) Unwrap() error {
	return ErrAmountMismatch
}

// ExternalPaymentUnconfirmedError indicates the referenced mobile-money
// transaction does not exist or is not in a terminal-success state.
type ExternalPaymentUnconfirmedError struct {
	Reference string
}

// NewExternalPaymentUnconfirmedError creates an ExternalPaymentUnconfirmedError
// for the gateway transaction reference.
func NewExternalPaymentUnconfirmedError(reference string) *ExternalPaymentUnconfirmedError {
	return &ExternalPaymentUnconfirmedError{Reference: reference}
}

func (e *ExternalPaymentUnconfirmedError) Error() string {
	return sanitize(fmt.Sprintf("%s: reference is: %s", ErrExternalPaymentUnconfirmed, e.Reference))
}

func (e *ExternalPaymentUnconfirmedError) Unwrap() error {
	return ErrExternalPaymentUnconfirmed
}

// ConflictRetryError indicates an optimistic-concurrency loss on an aggregate
// write. The whole action is retryable by the caller.
type ConflictRetryError struct {
	ParamName string
	ID        any
}

// NewConflictRetryError creates a ConflictRetryError for the aggregate that
// lost the concurrent write.
func NewConflictRetryError(paramName string, id any) *ConflictRetryError {
	return &ConflictRetryError{ParamName: paramName, ID: id}
}

func (e *ConflictRetryError) Error() string {
	return sanitize(fmt.Sprintf("%s: param is: %s, ID is: %s", ErrConflictRetry, e.ParamName, e.ID))
}

func (e *ConflictRetryError) Unwrap() error {
	return ErrConflictRetry
}

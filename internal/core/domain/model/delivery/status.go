package delivery

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery stop.
// It implements a state machine with defined transitions so a stop can only
// move forward through its workflow.
//
// State transitions:
//
//	Pending ──> EnRoute ──> Arrived ──> Completed
//	    │          │           │
//	    └──────────┴───────────┴──────> Skipped / Failed
//
// Completed, Skipped and Failed are terminal: no further transitions are
// allowed from them.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the initial status of a freshly created stop.
	StatusPending

	// StatusEnRoute indicates the courier has departed towards the stop.
	StatusEnRoute

	// StatusArrived indicates the courier passed the geofence check at the
	// stop's destination.
	StatusArrived

	// StatusCompleted indicates the stop was delivered, paid and confirmed.
	// Terminal.
	StatusCompleted

	// StatusFailed indicates the stop could not be delivered. Terminal.
	StatusFailed

	// StatusSkipped indicates the stop was skipped via an approved skip
	// request or an admin override. Terminal.
	StatusSkipped
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "unknown",
		StatusPending:   "pending",
		StatusEnRoute:   "en_route",
		StatusArrived:   "arrived",
		StatusCompleted: "completed",
		StatusFailed:    "failed",
		StatusSkipped:   "skipped",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusPending:   "pending",
		StatusEnRoute:   "en_route",
		StatusArrived:   "arrived",
		StatusCompleted: "completed",
		StatusFailed:    "failed",
		StatusSkipped:   "skipped",
	}
}

// Validate checks if the Status value is one of the defined lifecycle states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire-level name of the status ("pending", "en_route", ...).
// Implements fmt.Stringer and is safe on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusSkipped
}

// IsResolved reports whether the status unblocks the next chained stop:
// a predecessor in Completed or Skipped releases its successor.
func (s Status) IsResolved() bool {
	return s == StatusCompleted || s == StatusSkipped
}

// StatusFromString parses a wire-level status name.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%q is not a valid status", s))
}

// Depart transitions the status to EnRoute.
//
// Valid transitions:
//   - Pending -> EnRoute
//   - EnRoute -> EnRoute (repeated departure pings are harmless)
func (s Status) Depart() (Status, error) {
	if s != StatusPending && s != StatusEnRoute {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to depart from", s.String()),
		)
	}

	return StatusEnRoute, nil
}

// Arrive transitions the status to Arrived.
//
// Valid transitions:
//   - Pending -> Arrived
//   - EnRoute -> Arrived
//
// Re-arriving on an Arrived or Completed stop is rejected rather than
// silently repeated, so retried requests surface to the caller.
func (s Status) Arrive() (Status, error) {
	if s == StatusArrived || s == StatusCompleted {
		return 0, errs.NewAlreadyInTerminalStateError("delivery", s.String())
	}

	if s != StatusPending && s != StatusEnRoute {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to arrive from", s.String()),
		)
	}

	return StatusArrived, nil
}

// Complete transitions the status to Completed.
//
// Valid transitions:
//   - Arrived -> Completed
//
// Completing an already completed stop reports AlreadyInTerminalState so a
// retried "complete" cannot post duplicate ledger entries.
func (s Status) Complete() (Status, error) {
	if s == StatusCompleted {
		return 0, errs.NewAlreadyInTerminalStateError("delivery", s.String())
	}

	if s != StatusArrived {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to complete from", s.String()),
		)
	}

	return StatusCompleted, nil
}

// Skip transitions the status to Skipped. Allowed from any non-terminal state.
func (s Status) Skip() (Status, error) {
	if s.IsTerminal() {
		return 0, errs.NewAlreadyInTerminalStateError("delivery", s.String())
	}

	return StatusSkipped, nil
}

// Fail transitions the status to Failed. Allowed from any non-terminal state.
func (s Status) Fail() (Status, error) {
	if s.IsTerminal() {
		return 0, errs.NewAlreadyInTerminalStateError("delivery", s.String())
	}

	return StatusFailed, nil
}

package delivery

import (
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// SkipReason is the closed enumeration of reasons a courier may give when
// requesting to skip a stop.
type SkipReason int

const (
	// SkipReasonUnknown represents an invalid or undefined reason.
	SkipReasonUnknown SkipReason = iota

	// SkipReasonShopClosed - the destination shop is closed.
	SkipReasonShopClosed

	// SkipReasonOwnerNotPresent - nobody authorized to receive is present.
	SkipReasonOwnerNotPresent

	// SkipReasonWrongAddress - the recorded destination is wrong.
	SkipReasonWrongAddress

	// SkipReasonRefusedDelivery - the counterparty refused the delivery.
	SkipReasonRefusedDelivery

	// SkipReasonOther - any other reason; requires free-text notes.
	SkipReasonOther
)

func getSkipReasonStrings() map[SkipReason]string {
	//nolint:exhaustive // SkipReasonUnknown is intentionally excluded as it's invalid
	return map[SkipReason]string{
		SkipReasonShopClosed:      "shop_closed",
		SkipReasonOwnerNotPresent: "owner_not_present",
		SkipReasonWrongAddress:    "wrong_address",
		SkipReasonRefusedDelivery: "refused_delivery",
		SkipReasonOther:           "other",
	}
}

// Validate checks if the reason is one of the defined skip reasons.
func (r SkipReason) Validate() error {
	if _, ok := getSkipReasonStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("skip reason is invalid",
			fmt.Errorf("%d is not a valid skip reason", r))
	}
	return nil
}

// String returns the wire-level name of the reason. Implements fmt.Stringer.
func (r SkipReason) String() string {
	if str, ok := getSkipReasonStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// SkipReasonFromString parses a wire-level skip reason name.
func SkipReasonFromString(s string) (SkipReason, error) {
	for reason, str := range getSkipReasonStrings() {
		if str == s {
			return reason, nil
		}
	}
	return SkipReasonUnknown, errs.NewValueIsInvalidErrorWithCause("skip reason is invalid",
		fmt.Errorf("%q is not a valid skip reason", s))
}

// SkipStatus is the state of a stop's skip request.
//
// State transitions:
//
//	None ──> Pending ──> Approved
//	                └──> Rejected
//
// A rejected request returns the stop to an actionable state; the courier may
// open a new request afterwards.
type SkipStatus int

const (
	// SkipStatusNone means no skip request has been opened.
	SkipStatusNone SkipStatus = iota

	// SkipStatusPending means a request awaits dispatcher resolution.
	SkipStatusPending

	// SkipStatusApproved means the dispatcher approved the skip.
	SkipStatusApproved

	// SkipStatusRejected means the dispatcher rejected the skip.
	SkipStatusRejected
)

func getSkipStatusStrings() map[SkipStatus]string {
	return map[SkipStatus]string{
		SkipStatusNone:     "none",
		SkipStatusPending:  "pending",
		SkipStatusApproved: "approved",
		SkipStatusRejected: "rejected",
	}
}

// String returns the wire-level name of the status. Implements fmt.Stringer.
func (s SkipStatus) String() string {
	if str, ok := getSkipStatusStrings()[s]; ok {
		return str
	}
	return "none"
}

// SkipStatusFromString parses a wire-level skip status name.
func SkipStatusFromString(s string) (SkipStatus, error) {
	for status, str := range getSkipStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return SkipStatusNone, errs.NewValueIsInvalidErrorWithCause("skip status is invalid",
		fmt.Errorf("%q is not a valid skip status", s))
}

// SkipRequest is the courier-initiated "this stop is unreachable" sub-record
// of a delivery and its dispatcher resolution.
type SkipRequest struct {
	requested       bool
	reason          SkipReason
	notes           string
	photoURI        string
	status          SkipStatus
	resolverID      *kernel.UUID
	resolvedAt      *time.Time
	resolutionNotes string
}

// RestoreSkipRequest reconstructs a skip request sub-record from persistent
// storage.
func RestoreSkipRequest(
	requested bool,
	reason SkipReason,
	notes string,
	photoURI string,
	status SkipStatus,
	resolverID *kernel.UUID,
	resolvedAt *time.Time,
	resolutionNotes string,
) SkipRequest {
	return SkipRequest{
		requested:       requested,
		reason:          reason,
		notes:           notes,
		photoURI:        photoURI,
		status:          status,
		resolverID:      resolverID,
		resolvedAt:      resolvedAt,
		resolutionNotes: resolutionNotes,
	}
}

// Requested reports whether a skip request was ever opened.
func (s SkipRequest) Requested() bool { return s.requested }

// Reason returns the courier's stated reason.
func (s SkipRequest) Reason() SkipReason { return s.reason }

// Notes returns the courier's free-text notes.
func (s SkipRequest) Notes() string { return s.notes }

// PhotoURI returns the optional supporting photo reference.
func (s SkipRequest) PhotoURI() string { return s.photoURI }

// Status returns the request's resolution state.
func (s SkipRequest) Status() SkipStatus { return s.status }

// ResolverID returns the dispatcher who resolved the request, or nil.
func (s SkipRequest) ResolverID() *kernel.UUID { return s.resolverID }

// ResolvedAt returns when the request was resolved, or nil.
func (s SkipRequest) ResolvedAt() *time.Time { return s.resolvedAt }

// ResolutionNotes returns the dispatcher's resolution notes.
func (s SkipRequest) ResolutionNotes() string { return s.resolutionNotes }

// open creates a pending request. Only one pending request may exist per stop
// at a time; the "other" reason requires non-empty notes.
func (s SkipRequest) open(reason SkipReason, notes string, photoURI string) (SkipRequest, error) {
	if s.status == SkipStatusPending {
		return SkipRequest{}, errs.NewAlreadyInTerminalStateError("skip request", s.status.String())
	}

	if err := reason.Validate(); err != nil {
		return SkipRequest{}, err
	}

	if reason == SkipReasonOther && notes == "" {
		return SkipRequest{}, errs.NewValueIsRequiredError("notes")
	}

	return SkipRequest{
		requested: true,
		reason:    reason,
		notes:     notes,
		photoURI:  photoURI,
		status:    SkipStatusPending,
	}, nil
}

// resolve moves a pending request to Approved or Rejected.
func (s SkipRequest) resolve(
	approved bool, resolverID kernel.UUID, resolutionNotes string, at time.Time,
) (SkipRequest, error) {
	if s.status != SkipStatusPending {
		return SkipRequest{}, errs.NewValueIsInvalidErrorWithCause(
			"skip request status is invalid",
			fmt.Errorf("%s is not a pending request", s.status.String()),
		)
	}

	if err := resolverID.Validate(); err != nil {
		return SkipRequest{}, err
	}

	resolved := s
	if approved {
		resolved.status = SkipStatusApproved
	} else {
		resolved.status = SkipStatusRejected
	}
	resolved.resolverID = &resolverID
	resolved.resolvedAt = &at
	resolved.resolutionNotes = resolutionNotes
	return resolved, nil
}

package services

import (
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/pkg/errs"
)

// BypassReason explains why the sequencing gate let an action through without
// checking the predecessor. Handlers log it so every bypass leaves a trace.
type BypassReason string

const (
	// BypassNone means the action passed the regular sequencing check.
	BypassNone BypassReason = ""
	// BypassDispatcherRole means a dispatcher or admin acted on the stop.
	BypassDispatcherRole BypassReason = "dispatcher_role"
	// BypassStopOverride means the stop carries an admin override.
	BypassStopOverride BypassReason = "stop_override"
	// BypassRouteOverride means the route carries a blanket override.
	BypassRouteOverride BypassReason = "route_override"
)

// SequentialEnforcer is the domain service guarding the strict stop order:
// a courier may only act on a stop when its predecessor is resolved and the
// predecessor's payment is collected.
//
// Business rules:
//   - the first stop of a route is always actionable
//   - dispatchers bypass the gate entirely; the bypass is reported so the
//     caller can log it
//   - a stop or route override releases the stop without touching the
//     predecessor
//   - an unresolved predecessor that has arrived but still owes a payment is
//     reported as a payment problem, not an ordering problem, so the courier
//     app can tell the rider exactly what to fix
type SequentialEnforcer struct{}

// NewSequentialEnforcer creates a new SequentialEnforcer instance.
func NewSequentialEnforcer() SequentialEnforcer {
	return SequentialEnforcer{}
}

// EnsureCanProceed checks whether an action on target is permitted.
// predecessor may be nil for the first stop. actorIsDispatcher and
// routeHasOverride feed the bypass rules. Returns the bypass reason applied,
// or an error describing what blocks the stop.
func (e SequentialEnforcer) EnsureCanProceed(
	target *delivery.Delivery,
	predecessor *delivery.Delivery,
	actorIsDispatcher bool,
	routeHasOverride bool,
) (BypassReason, error) {
	if err := target.Validate(); err != nil {
		return BypassNone, err
	}

	if actorIsDispatcher {
		return BypassDispatcherRole, nil
	}
	if target.AdminOverride().IsOverridden() {
		return BypassStopOverride, nil
	}
	if routeHasOverride {
		return BypassRouteOverride, nil
	}

	if target.CanProceed() || target.PreviousDeliveryID() == nil {
		return BypassNone, nil
	}

	if predecessor == nil {
		return BypassNone, errs.NewObjectNotFoundError("previousDeliveryID", target.PreviousDeliveryID().String())
	}
	if err := predecessor.Validate(); err != nil {
		return BypassNone, err
	}

	if predecessor.Status().IsResolved() {
		return BypassNone, nil
	}

	if predecessor.Status() == delivery.StatusArrived && !predecessor.Payment().IsSatisfied() {
		return BypassNone, errs.NewPaymentOutstandingError(
			predecessor.Code(), predecessor.Payment().AmountToCollect())
	}

	return BypassNone, errs.NewSequentialViolationError(predecessor.Code())
}

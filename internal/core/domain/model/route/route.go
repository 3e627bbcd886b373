package route

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Domain errors for route operations.
var (
	// ErrRouteIsNotConstructed is returned when using an improperly
	// initialized Route.
	ErrRouteIsNotConstructed = errors.New("Route must be created via NewRoute constructor")
	// ErrRouteNotInProgress is returned when progress operations target a
	// route that has not been started or is already archived.
	ErrRouteNotInProgress = errors.New("route is not in progress")
	// ErrRouteExhausted is returned when the cursor points past the last
	// active stop.
	ErrRouteExhausted = errors.New("route has no remaining stops")
)

// Route is an ordered list of stops assigned to one courier for one working
// session, together with the progress cursor over its active stops.
//
// Invariants:
//   - stop sequence numbers are unique and strictly increasing
//   - currentShopIndex only advances forward; when it reaches the count of
//     active stops the route is archived
//   - reordering the stop list is only permitted while the route is not in
//     progress
//
// The version field supports optimistic concurrency across courier and
// dispatcher writers sharing the same backing store.
type Route struct {
	id        kernel.UUID
	code      string
	courierID kernel.UUID
	stops     []Stop

	currentShopIndex int
	isInProgress     bool
	isArchived       bool
	startedAt        *time.Time

	canSkipShops   bool
	overrideReason string
	overrideActor  *kernel.UUID

	lastDeviationAlertAt *time.Time

	version int64
	guard   guard.ConstructorGuard
}

// NewRoute creates a route with a fixed stop sequence, not yet started.
// Stop sequence numbers must be strictly increasing.
func NewRoute(id kernel.UUID, code string, courierID kernel.UUID, stops []Stop) (*Route, error) {
	r := &Route{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setCode(code),
		r.setCourierID(courierID),
		r.setStops(stops),
	); err != nil {
		return nil, err
	}

	r.version = 1
	return r, nil
}

// RestoreRoute reconstructs a Route aggregate from persistent storage.
func RestoreRoute(
	id kernel.UUID,
	code string,
	courierID kernel.UUID,
	stops []Stop,
	currentShopIndex int,
	isInProgress bool,
	isArchived bool,
	startedAt *time.Time,
	canSkipShops bool,
	overrideReason string,
	overrideActor *kernel.UUID,
	lastDeviationAlertAt *time.Time,
	version int64,
) (*Route, error) {
	r := &Route{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setCode(code),
		r.setCourierID(courierID),
		r.setStops(stops),
	); err != nil {
		return nil, err
	}

	r.currentShopIndex = currentShopIndex
	r.isInProgress = isInProgress
	r.isArchived = isArchived
	r.startedAt = startedAt
	r.canSkipShops = canSkipShops
	r.overrideReason = overrideReason
	r.overrideActor = overrideActor
	r.lastDeviationAlertAt = lastDeviationAlertAt
	r.version = version
	return r, nil
}

// Validate ensures the Route was constructed via NewRoute or RestoreRoute.
func (r *Route) Validate() error {
	if r == nil {
		return ErrRouteIsNotConstructed
	}
	return r.guard.Validate(ErrRouteIsNotConstructed)
}

// ID returns the route's unique identifier.
func (r *Route) ID() kernel.UUID { return r.id }

// Code returns the stable human-facing route code.
func (r *Route) Code() string { return r.code }

// CourierID returns the assigned courier's identifier.
func (r *Route) CourierID() kernel.UUID { return r.courierID }

// Stops returns the full stop list, including deactivated entries.
func (r *Route) Stops() []Stop { return r.stops }

// CurrentShopIndex returns the progress cursor into the active-stop list.
func (r *Route) CurrentShopIndex() int { return r.currentShopIndex }

// IsInProgress reports whether the route has started and is not yet
// exhausted.
func (r *Route) IsInProgress() bool { return r.isInProgress }

// IsArchived reports whether the route is terminal.
func (r *Route) IsArchived() bool { return r.isArchived }

// StartedAt returns when the route was started, or nil.
func (r *Route) StartedAt() *time.Time { return r.startedAt }

// CanSkipShops reports whether a blanket sequencing override is active for
// the whole route.
func (r *Route) CanSkipShops() bool { return r.canSkipShops }

// OverrideReason returns the blanket override's stated reason.
func (r *Route) OverrideReason() string { return r.overrideReason }

// OverrideActor returns the dispatcher who granted the blanket override, or
// nil.
func (r *Route) OverrideActor() *kernel.UUID { return r.overrideActor }

// LastDeviationAlertAt returns the time the last deviation alert was emitted
// for this route, or nil. Used by the monitor's cooldown.
func (r *Route) LastDeviationAlertAt() *time.Time { return r.lastDeviationAlertAt }

// Version returns the optimistic-concurrency version of the aggregate.
func (r *Route) Version() int64 { return r.version }

// ActiveStops returns the stops that participate in progress indexing, in
// sequence order.
func (r *Route) ActiveStops() []Stop {
	active := make([]Stop, 0, len(r.stops))
	for _, s := range r.stops {
		if s.isActive {
			active = append(active, s)
		}
	}
	return active
}

// Start begins the route session. Starting an already started or archived
// route is rejected.
func (r *Route) Start(at time.Time) error {
	if r.isArchived {
		return errs.NewAlreadyInTerminalStateError(r.code, "archived")
	}
	if r.isInProgress {
		return errs.NewAlreadyInTerminalStateError(r.code, "in_progress")
	}
	if len(r.ActiveStops()) == 0 {
		return errs.NewValueIsRequiredError("stops")
	}

	r.isInProgress = true
	r.startedAt = &at
	return nil
}

// CurrentStop returns the stop the cursor points at.
func (r *Route) CurrentStop() (Stop, error) {
	active := r.ActiveStops()
	if r.currentShopIndex >= len(active) {
		return Stop{}, ErrRouteExhausted
	}
	return active[r.currentShopIndex], nil
}

// NextStop returns the stop after the cursor, if any.
func (r *Route) NextStop() (Stop, bool) {
	active := r.ActiveStops()
	if r.currentShopIndex+1 >= len(active) {
		return Stop{}, false
	}
	return active[r.currentShopIndex+1], true
}

// Advance moves the cursor forward by one active stop. When the cursor
// reaches the count of active stops the route becomes terminal: archived and
// no longer in progress. The cursor never moves backwards.
func (r *Route) Advance() error {
	if !r.isInProgress {
		return ErrRouteNotInProgress
	}

	r.currentShopIndex++
	if r.currentShopIndex >= len(r.ActiveStops()) {
		r.isInProgress = false
		r.isArchived = true
	}
	return nil
}

// DeactivateStop marks the stop with the given sequence number inactive and
// repositions the cursor on the next active stop at or after its position.
// Progress is neither decremented nor duplicated. Archives the route when no
// active stop remains at or after the cursor.
func (r *Route) DeactivateStop(sequenceNumber int) error {
	if !r.isInProgress {
		return ErrRouteNotInProgress
	}

	activeBefore := r.ActiveStops()
	target := -1
	for i, s := range activeBefore {
		if s.sequenceNumber == sequenceNumber {
			target = i
			break
		}
	}
	if target == -1 {
		return errs.NewObjectNotFoundError("sequenceNumber", sequenceNumber)
	}

	for i := range r.stops {
		if r.stops[i].sequenceNumber == sequenceNumber {
			r.stops[i].isActive = false
			break
		}
	}

	// Deactivation shifts active indices left of everything after the
	// target; a cursor past the target must follow the shift, a cursor on
	// the target now points at the next active stop.
	if target < r.currentShopIndex {
		r.currentShopIndex--
	}

	if r.currentShopIndex >= len(r.ActiveStops()) {
		r.isInProgress = false
		r.isArchived = true
	}
	return nil
}

// ApplyBlanketOverride grants a route-wide sequencing bypass, independent of
// any single stop's override.
func (r *Route) ApplyBlanketOverride(actorID kernel.UUID, reason string) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}

	r.canSkipShops = true
	r.overrideReason = reason
	r.overrideActor = &actorID
	return nil
}

// Reorder replaces the stop list. Only permitted while the route is not in
// progress.
func (r *Route) Reorder(stops []Stop) error {
	if r.isInProgress {
		return errs.NewValueIsInvalidError("stop list cannot be reordered while the route is in progress")
	}
	if r.isArchived {
		return errs.NewAlreadyInTerminalStateError(r.code, "archived")
	}

	return r.setStops(stops)
}

// RecordDeviationAlert stamps the time of an emitted deviation alert for the
// monitor's cooldown bookkeeping.
func (r *Route) RecordDeviationAlert(at time.Time) {
	r.lastDeviationAlertAt = &at
}

func (r *Route) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Route) setCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}
	r.code = code
	return nil
}

func (r *Route) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	r.courierID = courierID
	return nil
}

func (r *Route) setStops(stops []Stop) error {
	if len(stops) == 0 {
		return errs.NewValueIsRequiredError("stops")
	}

	lastSeq := 0
	for _, s := range stops {
		if s.sequenceNumber <= lastSeq {
			return errs.NewValueIsInvalidError("stop sequence numbers must be strictly increasing")
		}
		lastSeq = s.sequenceNumber
	}

	r.stops = stops
	return nil
}

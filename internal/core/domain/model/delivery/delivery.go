package delivery

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrDeliveryIsNotConstructed is returned when a Delivery instance was not
// created through NewDelivery or RestoreDelivery.
var ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery constructor")

// Delivery represents one stop's work item within a route. It is the
// aggregate root for the stop lifecycle: arrival, payment, confirmation,
// skip requests and admin overrides.
//
// Delivery follows these invariants:
//   - sequenceNumber is 1-based and unique within the route
//   - previousDeliveryID is nil only for the first stop of the route; the
//     chain is threaded through the record store by identifier, never as a
//     live object reference
//   - canProceed is true iff the stop is first, its predecessor is resolved
//     (completed or skipped), an admin override is active, or the route has a
//     blanket override
//   - status transitions are monotonic forward only; completed, skipped and
//     failed are terminal
//
// The version field supports optimistic concurrency: a losing concurrent
// writer receives a retryable conflict instead of clobbering the other's
// update.
type Delivery struct {
	id                 kernel.UUID
	code               string
	routeID            kernel.UUID
	courierID          kernel.UUID
	shopID             kernel.UUID
	sequenceNumber     int
	status             Status
	canProceed         bool
	previousDeliveryID *kernel.UUID

	destination       kernel.GeoPoint
	arrivalPoint      *kernel.GeoPoint
	arrivalDistanceKm *float64

	departedAt         *time.Time
	arrivedAt          *time.Time
	completedAt        *time.Time
	actualDurationMins *int

	payment       Payment
	confirmation  Confirmation
	adminOverride AdminOverride
	skipRequest   SkipRequest
	lineItems     []LineItem

	version int64
	guard   guard.ConstructorGuard
}

// NewDelivery creates a stop work item in pending status.
// previousDeliveryID must be nil exactly when sequenceNumber is 1; later
// stops start blocked (canProceed=false) until their predecessor resolves.
func NewDelivery(
	id kernel.UUID,
	code string,
	routeID kernel.UUID,
	courierID kernel.UUID,
	shopID kernel.UUID,
	sequenceNumber int,
	destination kernel.GeoPoint,
	previousDeliveryID *kernel.UUID,
	payment Payment,
	lineItems []LineItem,
) (*Delivery, error) {
	d := &Delivery{
		status: StatusPending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setCode(code),
		d.setRouteID(routeID),
		d.setCourierID(courierID),
		d.setShopID(shopID),
		d.setSequenceNumber(sequenceNumber),
		d.setDestination(destination),
		d.setPreviousDeliveryID(sequenceNumber, previousDeliveryID),
	); err != nil {
		return nil, err
	}

	d.payment = payment
	d.lineItems = lineItems
	d.canProceed = previousDeliveryID == nil
	d.version = 1
	return d, nil
}

// RestoreDelivery reconstructs a Delivery aggregate from persistent storage.
// Unlike NewDelivery it accepts the full mutable state and performs only
// structural validation.
func RestoreDelivery(
	id kernel.UUID,
	code string,
	routeID kernel.UUID,
	courierID kernel.UUID,
	shopID kernel.UUID,
	sequenceNumber int,
	status Status,
	canProceed bool,
	previousDeliveryID *kernel.UUID,
	destination kernel.GeoPoint,
	arrivalPoint *kernel.GeoPoint,
	arrivalDistanceKm *float64,
	departedAt *time.Time,
	arrivedAt *time.Time,
	completedAt *time.Time,
	actualDurationMins *int,
	payment Payment,
	confirmation Confirmation,
	adminOverride AdminOverride,
	skipRequest SkipRequest,
	lineItems []LineItem,
	version int64,
) (*Delivery, error) {
	d := &Delivery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setCode(code),
		d.setRouteID(routeID),
		d.setCourierID(courierID),
		d.setShopID(shopID),
		d.setSequenceNumber(sequenceNumber),
		d.setDestination(destination),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	d.status = status
	d.canProceed = canProceed
	d.previousDeliveryID = previousDeliveryID
	d.arrivalPoint = arrivalPoint
	d.arrivalDistanceKm = arrivalDistanceKm
	d.departedAt = departedAt
	d.arrivedAt = arrivedAt
	d.completedAt = completedAt
	d.actualDurationMins = actualDurationMins
	d.payment = payment
	d.confirmation = confirmation
	d.adminOverride = adminOverride
	d.skipRequest = skipRequest
	d.lineItems = lineItems
	d.version = version
	return d, nil
}

// Validate ensures the Delivery was constructed via NewDelivery or
// RestoreDelivery.
func (d *Delivery) Validate() error {
	if d == nil {
		return ErrDeliveryIsNotConstructed
	}
	return d.guard.Validate(ErrDeliveryIsNotConstructed)
}

// IsEqual compares two deliveries by identifier.
func (d *Delivery) IsEqual(other *Delivery) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the delivery's unique identifier.
func (d *Delivery) ID() kernel.UUID { return d.id }

// Code returns the stable human-facing stop code.
func (d *Delivery) Code() string { return d.code }

// RouteID returns the owning route's identifier.
func (d *Delivery) RouteID() kernel.UUID { return d.routeID }

// CourierID returns the assigned courier's identifier.
func (d *Delivery) CourierID() kernel.UUID { return d.courierID }

// ShopID returns the destination shop's identifier.
func (d *Delivery) ShopID() kernel.UUID { return d.shopID }

// SequenceNumber returns the stop's 1-based position within its route.
func (d *Delivery) SequenceNumber() int { return d.sequenceNumber }

// Status returns the stop's lifecycle state.
func (d *Delivery) Status() Status { return d.status }

// CanProceed reports whether sequencing currently permits actions on the stop.
func (d *Delivery) CanProceed() bool { return d.canProceed }

// PreviousDeliveryID returns the predecessor stop's identifier, or nil for
// the first stop of a route.
func (d *Delivery) PreviousDeliveryID() *kernel.UUID { return d.previousDeliveryID }

// Destination returns the stop's destination point.
func (d *Delivery) Destination() kernel.GeoPoint { return d.destination }

// ArrivalPoint returns the recorded arrival position, or nil.
func (d *Delivery) ArrivalPoint() *kernel.GeoPoint { return d.arrivalPoint }

// ArrivalDistanceKm returns the measured distance from the destination at
// arrival, or nil.
func (d *Delivery) ArrivalDistanceKm() *float64 { return d.arrivalDistanceKm }

// DepartedAt returns when the courier departed towards the stop, or nil.
func (d *Delivery) DepartedAt() *time.Time { return d.departedAt }

// ArrivedAt returns when the courier arrived, or nil.
func (d *Delivery) ArrivedAt() *time.Time { return d.arrivedAt }

// CompletedAt returns when the stop completed, or nil.
func (d *Delivery) CompletedAt() *time.Time { return d.completedAt }

// ActualDurationMins returns the recorded leg duration in minutes, or nil.
// Recorded for analytics only; it does not affect control flow.
func (d *Delivery) ActualDurationMins() *int { return d.actualDurationMins }

// Payment returns the payment sub-record.
func (d *Delivery) Payment() Payment { return d.payment }

// Confirmation returns the proof-of-delivery sub-record.
func (d *Delivery) Confirmation() Confirmation { return d.confirmation }

// AdminOverride returns the override sub-record.
func (d *Delivery) AdminOverride() AdminOverride { return d.adminOverride }

// SkipRequest returns the skip-request sub-record.
func (d *Delivery) SkipRequest() SkipRequest { return d.skipRequest }

// LineItems returns the order line items carried to the stop.
func (d *Delivery) LineItems() []LineItem { return d.lineItems }

// Version returns the optimistic-concurrency version of the aggregate.
func (d *Delivery) Version() int64 { return d.version }

// TotalAmount returns the sum of all line item totals.
func (d *Delivery) TotalAmount() float64 {
	var total float64
	for _, item := range d.lineItems {
		total += item.Total()
	}
	return total
}

// Depart marks the courier as en route towards the stop, recording the
// departure time used later for the actual-duration analytics.
func (d *Delivery) Depart(at time.Time) error {
	newStatus, err := d.status.Depart()
	if err != nil {
		return err
	}

	d.status = newStatus
	if d.departedAt == nil {
		d.departedAt = &at
	}
	return nil
}

// Arrive records a geofence-validated arrival at the stop.
// The coordinator performs the geofence check; the aggregate records the
// arrival point and the measured distance. Re-arriving is rejected with
// AlreadyInTerminalState, not silently repeated.
func (d *Delivery) Arrive(point kernel.GeoPoint, distanceKm float64, at time.Time) error {
	if err := point.Validate(); err != nil {
		return err
	}

	newStatus, err := d.status.Arrive()
	if err != nil {
		return err
	}

	d.status = newStatus
	d.arrivalPoint = &point
	d.arrivalDistanceKm = &distanceKm
	d.arrivedAt = &at
	return nil
}

// CollectPayment records a payment collection for an arrived stop.
// The collected amount must equal the amount owed exactly.
func (d *Delivery) CollectPayment(amount float64, externalRef string, at time.Time) error {
	if d.status != StatusArrived {
		return errs.NewValueIsInvalidError("delivery must be arrived to collect payment")
	}

	collected, err := d.payment.Collect(amount, externalRef, at)
	if err != nil {
		return err
	}

	d.payment = collected
	return nil
}

// Complete finishes the stop: requires arrived status and a satisfied
// payment, attaches the proof-of-delivery confirmation, marks all line items
// delivered and records the actual leg duration in minutes.
func (d *Delivery) Complete(confirmation Confirmation, at time.Time) error {
	newStatus, err := d.status.Complete()
	if err != nil {
		return err
	}

	if !d.payment.IsSatisfied() {
		return errs.NewPaymentOutstandingError(d.code, d.payment.AmountToCollect())
	}

	d.status = newStatus
	d.confirmation = confirmation
	d.completedAt = &at

	for i := range d.lineItems {
		d.lineItems[i].delivered = true
	}

	if d.departedAt != nil {
		mins := int(at.Sub(*d.departedAt).Minutes())
		d.actualDurationMins = &mins
	}
	return nil
}

// ApplyAdminOverride attaches a dispatcher override releasing the stop from
// sequential enforcement. Overriding an already overridden stop is rejected.
func (d *Delivery) ApplyAdminOverride(actorID kernel.UUID, reason string, at time.Time) error {
	if d.adminOverride.IsOverridden() {
		return errs.NewAlreadyInTerminalStateError(d.code, "overridden")
	}

	if d.status.IsTerminal() {
		return errs.NewAlreadyInTerminalStateError(d.code, d.status.String())
	}

	override, err := NewAdminOverride(actorID, reason, at)
	if err != nil {
		return err
	}

	d.adminOverride = override
	d.canProceed = true
	return nil
}

// RequestSkip opens a pending skip request for the stop. Only one pending
// request may exist at a time, and the stop must not be terminal.
func (d *Delivery) RequestSkip(reason SkipReason, notes string, photoURI string) error {
	if d.status.IsTerminal() {
		return errs.NewAlreadyInTerminalStateError(d.code, d.status.String())
	}

	request, err := d.skipRequest.open(reason, notes, photoURI)
	if err != nil {
		return err
	}

	d.skipRequest = request
	return nil
}

// ApproveSkip resolves the pending skip request as approved: the stop moves
// to skipped and an override entry is attached so sequential enforcement
// treats it as resolved.
func (d *Delivery) ApproveSkip(resolverID kernel.UUID, resolutionNotes string, at time.Time) error {
	request, err := d.skipRequest.resolve(true, resolverID, resolutionNotes, at)
	if err != nil {
		return err
	}

	newStatus, err := d.status.Skip()
	if err != nil {
		return err
	}

	override, err := NewAdminOverride(resolverID, "skip approved: "+request.Reason().String(), at)
	if err != nil {
		return err
	}

	d.skipRequest = request
	d.status = newStatus
	d.adminOverride = override
	d.canProceed = true
	return nil
}

// RejectSkip resolves the pending skip request as rejected. Only the
// request's own status changes; the stop remains actionable.
func (d *Delivery) RejectSkip(resolverID kernel.UUID, resolutionNotes string, at time.Time) error {
	request, err := d.skipRequest.resolve(false, resolverID, resolutionNotes, at)
	if err != nil {
		return err
	}

	d.skipRequest = request
	return nil
}

// MarkFailed moves the stop to the terminal failed state.
func (d *Delivery) MarkFailed() error {
	newStatus, err := d.status.Fail()
	if err != nil {
		return err
	}

	d.status = newStatus
	return nil
}

// Unlock marks the stop as actionable. Called on the successor when its
// predecessor resolves.
func (d *Delivery) Unlock() {
	d.canProceed = true
}

func (d *Delivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Delivery) setCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}
	d.code = code
	return nil
}

func (d *Delivery) setRouteID(routeID kernel.UUID) error {
	if err := routeID.Validate(); err != nil {
		return err
	}
	d.routeID = routeID
	return nil
}

func (d *Delivery) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	d.courierID = courierID
	return nil
}

func (d *Delivery) setShopID(shopID kernel.UUID) error {
	if err := shopID.Validate(); err != nil {
		return err
	}
	d.shopID = shopID
	return nil
}

func (d *Delivery) setSequenceNumber(sequenceNumber int) error {
	if sequenceNumber < 1 {
		return errs.NewValueIsOutOfRangeError("sequenceNumber", sequenceNumber, 1, "unbounded")
	}
	d.sequenceNumber = sequenceNumber
	return nil
}

func (d *Delivery) setDestination(destination kernel.GeoPoint) error {
	if err := destination.Validate(); err != nil {
		return err
	}
	d.destination = destination
	return nil
}

func (d *Delivery) setPreviousDeliveryID(sequenceNumber int, previousDeliveryID *kernel.UUID) error {
	if sequenceNumber == 1 && previousDeliveryID != nil {
		return errs.NewValueIsInvalidError("previousDeliveryID must be nil for the first stop")
	}
	if sequenceNumber > 1 && previousDeliveryID == nil {
		return errs.NewValueIsRequiredError("previousDeliveryID")
	}
	if previousDeliveryID != nil {
		if err := previousDeliveryID.Validate(); err != nil {
			return err
		}
	}
	d.previousDeliveryID = previousDeliveryID
	return nil
}

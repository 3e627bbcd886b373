package deviation

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrRecordIsNotConstructed is returned when using an improperly initialized
// Record.
var ErrRecordIsNotConstructed = errors.New("Record must be created via NewRecord constructor")

// Record captures one observed off-corridor position of a courier. Records
// are written by the deviation monitor and reviewed by dispatchers after the
// fact.
type Record struct {
	id         kernel.UUID
	routeID    kernel.UUID
	courierID  kernel.UUID
	position   kernel.GeoPoint
	distanceKm float64
	severity   Severity
	observedAt time.Time

	isReviewed  bool
	reviewedBy  *kernel.UUID
	reviewNotes string
	reviewedAt  *time.Time

	guard guard.ConstructorGuard
}

// NewRecord creates an unreviewed deviation record. Severity must be a
// recordable tier.
func NewRecord(
	id kernel.UUID,
	routeID kernel.UUID,
	courierID kernel.UUID,
	position kernel.GeoPoint,
	distanceKm float64,
	severity Severity,
	observedAt time.Time,
) (*Record, error) {
	r := &Record{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setRouteID(routeID),
		r.setCourierID(courierID),
		r.setPosition(position),
		severity.Validate(),
	); err != nil {
		return nil, err
	}

	if !severity.IsRecordable() {
		return nil, errs.NewValueIsInvalidError("severity none is not recordable")
	}
	if distanceKm < 0 {
		return nil, errs.NewValueIsOutOfRangeError("distanceKm", distanceKm, 0, "unbounded")
	}

	r.distanceKm = distanceKm
	r.severity = severity
	r.observedAt = observedAt
	return r, nil
}

// RestoreRecord reconstructs a deviation record from persistent storage.
func RestoreRecord(
	id kernel.UUID,
	routeID kernel.UUID,
	courierID kernel.UUID,
	position kernel.GeoPoint,
	distanceKm float64,
	severity Severity,
	observedAt time.Time,
	isReviewed bool,
	reviewedBy *kernel.UUID,
	reviewNotes string,
	reviewedAt *time.Time,
) (*Record, error) {
	r := &Record{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setRouteID(routeID),
		r.setCourierID(courierID),
		r.setPosition(position),
		severity.Validate(),
	); err != nil {
		return nil, err
	}

	r.distanceKm = distanceKm
	r.severity = severity
	r.observedAt = observedAt
	r.isReviewed = isReviewed
	r.reviewedBy = reviewedBy
	r.reviewNotes = reviewNotes
	r.reviewedAt = reviewedAt
	return r, nil
}

// Validate ensures the Record was constructed via NewRecord or RestoreRecord.
func (r *Record) Validate() error {
	if r == nil {
		return ErrRecordIsNotConstructed
	}
	return r.guard.Validate(ErrRecordIsNotConstructed)
}

// ID returns the record's unique identifier.
func (r *Record) ID() kernel.UUID { return r.id }

// RouteID returns the affected route's identifier.
func (r *Record) RouteID() kernel.UUID { return r.routeID }

// CourierID returns the deviating courier's identifier.
func (r *Record) CourierID() kernel.UUID { return r.courierID }

// Position returns the observed off-corridor position.
func (r *Record) Position() kernel.GeoPoint { return r.position }

// DistanceKm returns the measured distance from the route corridor.
func (r *Record) DistanceKm() float64 { return r.distanceKm }

// Severity returns the deviation's severity tier.
func (r *Record) Severity() Severity { return r.severity }

// ObservedAt returns when the deviation was observed.
func (r *Record) ObservedAt() time.Time { return r.observedAt }

// IsReviewed reports whether a dispatcher has reviewed the record.
func (r *Record) IsReviewed() bool { return r.isReviewed }

// ReviewedBy returns the reviewing dispatcher's identifier, or nil.
func (r *Record) ReviewedBy() *kernel.UUID { return r.reviewedBy }

// ReviewNotes returns the dispatcher's review notes.
func (r *Record) ReviewNotes() string { return r.reviewNotes }

// ReviewedAt returns when the record was reviewed, or nil.
func (r *Record) ReviewedAt() *time.Time { return r.reviewedAt }

// Review attaches a dispatcher's review outcome. Reviewing an already
// reviewed record is rejected.
func (r *Record) Review(reviewerID kernel.UUID, notes string, at time.Time) error {
	if r.isReviewed {
		return errs.NewAlreadyInTerminalStateError(r.id.String(), "reviewed")
	}
	if err := reviewerID.Validate(); err != nil {
		return err
	}

	r.isReviewed = true
	r.reviewedBy = &reviewerID
	r.reviewNotes = notes
	r.reviewedAt = &at
	return nil
}

func (r *Record) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Record) setRouteID(routeID kernel.UUID) error {
	if err := routeID.Validate(); err != nil {
		return err
	}
	r.routeID = routeID
	return nil
}

func (r *Record) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	r.courierID = courierID
	return nil
}

func (r *Record) setPosition(position kernel.GeoPoint) error {
	if err := position.Validate(); err != nil {
		return err
	}
	r.position = position
	return nil
}

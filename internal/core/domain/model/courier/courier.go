package courier

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// defaultAvgSpeedKmh is used for arrival estimates when the courier has no
// measured average speed yet.
const defaultAvgSpeedKmh = 25.0

// Domain errors for courier operations.
var (
	// ErrNameIsRequired is returned when attempting to create a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrPhoneIsRequired is returned when attempting to create a courier without a phone number.
	ErrPhoneIsRequired = errs.NewValueIsRequiredError("phone")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
)

// Courier represents a delivery rider. It is an aggregate root that manages
// the rider's identity and the last position the rider's app reported.
//
// Key responsibilities:
//   - Managing courier identity (ID, name, phone)
//   - Recording the position feed from the rider's app
//   - Providing the average speed used for arrival estimates
//
// Business rules:
//   - Courier must have a valid UUID, non-empty name and phone
//   - A position report older than the recorded one is ignored
type Courier struct {
	// id uniquely identifies the courier
	id kernel.UUID
	// name is the human-readable name of the courier
	name string
	// phone is the courier's contact number
	phone string
	// avgSpeedKmh is the speed assumed for arrival estimates
	avgSpeedKmh float64
	// lastPosition is the most recent position reported by the rider's app
	lastPosition *kernel.GeoPoint
	// positionRecordedAt is when lastPosition was reported
	positionRecordedAt *time.Time
	// guard ensures the courier was properly constructed
	guard guard.ConstructorGuard
}

// NewCourier creates a new Courier with no position recorded yet.
func NewCourier(id kernel.UUID, name string, phone string) (*Courier, error) {
	courier := &Courier{
		avgSpeedKmh: defaultAvgSpeedKmh,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		courier.setID(id),
		courier.setName(name),
		courier.setPhone(phone),
	); err != nil {
		return nil, err
	}

	return courier, nil
}

// RestoreCourier reconstructs a Courier aggregate from persistent storage.
func RestoreCourier(
	id kernel.UUID,
	name string,
	phone string,
	avgSpeedKmh float64,
	lastPosition *kernel.GeoPoint,
	positionRecordedAt *time.Time,
) (*Courier, error) {
	courier := &Courier{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		courier.setID(id),
		courier.setName(name),
		courier.setPhone(phone),
	); err != nil {
		return nil, err
	}

	if avgSpeedKmh <= 0 {
		avgSpeedKmh = defaultAvgSpeedKmh
	}
	courier.avgSpeedKmh = avgSpeedKmh
	courier.lastPosition = lastPosition
	courier.positionRecordedAt = positionRecordedAt
	return courier, nil
}

// IsEqual compares two couriers by identifier.
func (c *Courier) IsEqual(other *Courier) bool {
	if other == nil {
		return false
	}
	return c.id.IsEqual(other.id)
}

// Validate checks if the Courier was properly constructed.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// ID returns the courier's unique identifier.
func (c *Courier) ID() kernel.UUID { return c.id }

// Name returns the courier's name.
func (c *Courier) Name() string { return c.name }

// Phone returns the courier's contact number.
func (c *Courier) Phone() string { return c.phone }

// AvgSpeedKmh returns the speed assumed for arrival estimates.
func (c *Courier) AvgSpeedKmh() float64 { return c.avgSpeedKmh }

// LastPosition returns the most recent reported position, or nil when the
// rider's app has not reported yet.
func (c *Courier) LastPosition() *kernel.GeoPoint { return c.lastPosition }

// PositionRecordedAt returns when the last position was reported, or nil.
func (c *Courier) PositionRecordedAt() *time.Time { return c.positionRecordedAt }

// RecordPosition stores a position report from the rider's app. Reports that
// are not newer than the recorded one are ignored without error, since the
// app may retry or deliver out of order.
func (c *Courier) RecordPosition(position kernel.GeoPoint, at time.Time) error {
	if err := position.Validate(); err != nil {
		return err
	}

	if c.positionRecordedAt != nil && !at.After(*c.positionRecordedAt) {
		return nil
	}

	c.lastPosition = &position
	c.positionRecordedAt = &at
	return nil
}

// EstimateTravelMins estimates the minutes needed to cover distanceKm at the
// courier's average speed. Returns false when no position has been reported
// yet, since there is nothing to measure the distance from.
func (c *Courier) EstimateTravelMins(distanceKm float64) (int, bool) {
	if c.lastPosition == nil || distanceKm < 0 {
		return 0, false
	}

	mins := distanceKm / c.avgSpeedKmh * 60
	return int(mins + 0.5), true
}

// setID sets the courier's unique identifier with validation.
func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.id = id
	return nil
}

// setName sets the courier's name with validation.
func (c *Courier) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}

	c.name = name
	return nil
}

// setPhone sets the courier's contact number with validation.
func (c *Courier) setPhone(phone string) error {
	if phone == "" {
		return ErrPhoneIsRequired
	}

	c.phone = phone
	return nil
}

package route

import (
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// Stop is one entry of a route's ordered stop list. Deactivated stops
// (admin-skipped shops) are excluded from progress indexing but retained for
// audit.
type Stop struct {
	shopID         kernel.UUID
	destination    kernel.GeoPoint
	sequenceNumber int
	isActive       bool
	notes          string
}

// NewStop creates an active stop-list entry.
func NewStop(shopID kernel.UUID, destination kernel.GeoPoint, sequenceNumber int, notes string) (Stop, error) {
	if err := shopID.Validate(); err != nil {
		return Stop{}, err
	}
	if err := destination.Validate(); err != nil {
		return Stop{}, err
	}
	if sequenceNumber < 1 {
		return Stop{}, errs.NewValueIsOutOfRangeError("sequenceNumber", sequenceNumber, 1, "unbounded")
	}

	return Stop{
		shopID:         shopID,
		destination:    destination,
		sequenceNumber: sequenceNumber,
		isActive:       true,
		notes:          notes,
	}, nil
}

// RestoreStop reconstructs a stop-list entry from persistent storage.
func RestoreStop(
	shopID kernel.UUID, destination kernel.GeoPoint, sequenceNumber int, isActive bool, notes string,
) Stop {
	return Stop{
		shopID:         shopID,
		destination:    destination,
		sequenceNumber: sequenceNumber,
		isActive:       isActive,
		notes:          notes,
	}
}

// ShopID returns the destination shop's identifier.
func (s Stop) ShopID() kernel.UUID { return s.shopID }

// Destination returns the stop's destination point.
func (s Stop) Destination() kernel.GeoPoint { return s.destination }

// SequenceNumber returns the stop's 1-based position within the route.
func (s Stop) SequenceNumber() int { return s.sequenceNumber }

// IsActive reports whether the stop still participates in progress indexing.
func (s Stop) IsActive() bool { return s.isActive }

// Notes returns the dispatcher's free-text notes for the stop.
func (s Stop) Notes() string { return s.notes }

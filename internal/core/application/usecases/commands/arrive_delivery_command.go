package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrArriveDeliveryCommandIsNotConstructed = errors.New(
	"ArriveDeliveryCommand must be created via NewArriveDeliveryCommand constructor",
)

// ArriveDeliveryCommand records a courier's arrival at a stop. The reported
// position must fall inside the stop's arrival geofence, and the stop must be
// released by the sequencing gate.
type ArriveDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	actorID    kernel.UUID
	position   kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewArriveDeliveryCommand creates a command to record an arrival at the
// given position.
func NewArriveDeliveryCommand(
	deliveryID kernel.UUID, actorID kernel.UUID, lon float64, lat float64,
) (ArriveDeliveryCommand, error) {
	command := ArriveDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	position, err := kernel.NewGeoPoint(lon, lat)
	if err != nil {
		return ArriveDeliveryCommand{}, err
	}

	if err = errors.Join(
		command.setDeliveryID(deliveryID),
		command.setActorID(actorID),
	); err != nil {
		return ArriveDeliveryCommand{}, err
	}

	command.position = position
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ArriveDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrArriveDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the stop being arrived at.
func (c ArriveDeliveryCommand) DeliveryID() kernel.UUID { return c.deliveryID }

// ActorID returns the courier reporting the arrival.
func (c ArriveDeliveryCommand) ActorID() kernel.UUID { return c.actorID }

// Position returns the reported arrival position.
func (c ArriveDeliveryCommand) Position() kernel.GeoPoint { return c.position }

func (c *ArriveDeliveryCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *ArriveDeliveryCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}

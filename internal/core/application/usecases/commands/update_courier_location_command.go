package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrUpdateCourierLocationCommandIsNotConstructed = errors.New(
	"UpdateCourierLocationCommand must be created via NewUpdateCourierLocationCommand constructor",
)

// UpdateCourierLocationCommand records a position report from the rider's
// app. The feed drives the deviation monitor and arrival estimates.
type UpdateCourierLocationCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	position  kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewUpdateCourierLocationCommand creates a command to record a position
// report.
func NewUpdateCourierLocationCommand(
	courierID kernel.UUID, lon float64, lat float64,
) (UpdateCourierLocationCommand, error) {
	command := UpdateCourierLocationCommand{
		guard: guard.NewConstructorGuard(),
	}

	position, err := kernel.NewGeoPoint(lon, lat)
	if err != nil {
		return UpdateCourierLocationCommand{}, err
	}

	if err = command.setCourierID(courierID); err != nil {
		return UpdateCourierLocationCommand{}, err
	}

	command.position = position
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateCourierLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCourierLocationCommandIsNotConstructed)
}

// CourierID returns the reporting courier.
func (c UpdateCourierLocationCommand) CourierID() kernel.UUID { return c.courierID }

// Position returns the reported position.
func (c UpdateCourierLocationCommand) Position() kernel.GeoPoint { return c.position }

func (c *UpdateCourierLocationCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}

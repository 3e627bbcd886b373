package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrUnlockDeliveryCommandIsNotConstructed = errors.New(
	"UnlockDeliveryCommand must be created via NewUnlockDeliveryCommand constructor",
)

// UnlockDeliveryCommand attaches a dispatcher override to a single stop,
// releasing it from sequential enforcement. The reason is mandatory; it is
// the audit trail for the exception.
type UnlockDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	actorID    kernel.UUID
	reason     string

	guard guard.ConstructorGuard
}

// NewUnlockDeliveryCommand creates a command to override a stop's sequencing.
func NewUnlockDeliveryCommand(
	deliveryID kernel.UUID, actorID kernel.UUID, reason string,
) (UnlockDeliveryCommand, error) {
	command := UnlockDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setDeliveryID(deliveryID),
		command.setActorID(actorID),
		command.setReason(reason),
	); err != nil {
		return UnlockDeliveryCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c UnlockDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrUnlockDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the stop being released.
func (c UnlockDeliveryCommand) DeliveryID() kernel.UUID { return c.deliveryID }

// ActorID returns the dispatcher granting the override.
func (c UnlockDeliveryCommand) ActorID() kernel.UUID { return c.actorID }

// Reason returns the override's stated reason.
func (c UnlockDeliveryCommand) Reason() string { return c.reason }

func (c *UnlockDeliveryCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *UnlockDeliveryCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}

func (c *UnlockDeliveryCommand) setReason(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}

	c.reason = reason
	return nil
}

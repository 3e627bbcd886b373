package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrRecordPaymentCommandIsNotConstructed = errors.New(
	"RecordPaymentCommand must be created via NewRecordPaymentCommand constructor",
)

// RecordPaymentCommand records a payment collection at an arrived stop.
// The collected amount must equal the amount owed exactly; mobile-money
// collections additionally require a confirmed gateway transaction.
type RecordPaymentCommand struct { //nolint:recvcheck //using for validation
	deliveryID  kernel.UUID
	actorID     kernel.UUID
	amount      float64
	externalRef string

	guard guard.ConstructorGuard
}

// NewRecordPaymentCommand creates a command to record a collection.
// externalRef is the gateway transaction reference, required for mobile
// money and ignored for cash.
func NewRecordPaymentCommand(
	deliveryID kernel.UUID, actorID kernel.UUID, amount float64, externalRef string,
) (RecordPaymentCommand, error) {
	command := RecordPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setDeliveryID(deliveryID),
		command.setActorID(actorID),
		command.setAmount(amount),
	); err != nil {
		return RecordPaymentCommand{}, err
	}

	command.externalRef = externalRef
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordPaymentCommand) Validate() error {
	return c.guard.Validate(ErrRecordPaymentCommandIsNotConstructed)
}

// DeliveryID returns the stop being paid.
func (c RecordPaymentCommand) DeliveryID() kernel.UUID { return c.deliveryID }

// ActorID returns the courier recording the collection.
func (c RecordPaymentCommand) ActorID() kernel.UUID { return c.actorID }

// Amount returns the collected amount.
func (c RecordPaymentCommand) Amount() float64 { return c.amount }

// ExternalRef returns the gateway transaction reference, if any.
func (c RecordPaymentCommand) ExternalRef() string { return c.externalRef }

func (c *RecordPaymentCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *RecordPaymentCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}

func (c *RecordPaymentCommand) setAmount(amount float64) error {
	if amount <= 0 {
		return errs.NewValueIsRequiredError("amount")
	}

	c.amount = amount
	return nil
}

package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrCompleteDeliveryCommandIsNotConstructed = errors.New(
	"CompleteDeliveryCommand must be created via NewCompleteDeliveryCommand constructor",
)

// CompleteDeliveryCommand finishes an arrived stop with its proof of
// delivery. Completion is the atomic unit of the engine: the stop, the stock
// ledger, the courier wallet, the route cursor and the successor's release
// all change together or not at all.
type CompleteDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID     kernel.UUID
	actorID        kernel.UUID
	recipientName  string
	recipientPhone string
	signatureURI   string
	photoURI       string
	notes          string

	guard guard.ConstructorGuard
}

// NewCompleteDeliveryCommand creates a command to complete a stop.
// The confirmation fields are all optional.
func NewCompleteDeliveryCommand(
	deliveryID kernel.UUID,
	actorID kernel.UUID,
	recipientName string,
	recipientPhone string,
	signatureURI string,
	photoURI string,
	notes string,
) (CompleteDeliveryCommand, error) {
	command := CompleteDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setDeliveryID(deliveryID),
		command.setActorID(actorID),
	); err != nil {
		return CompleteDeliveryCommand{}, err
	}

	command.recipientName = recipientName
	command.recipientPhone = recipientPhone
	command.signatureURI = signatureURI
	command.photoURI = photoURI
	command.notes = notes
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCompleteDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the stop being completed.
func (c CompleteDeliveryCommand) DeliveryID() kernel.UUID { return c.deliveryID }

// ActorID returns the courier completing the stop.
func (c CompleteDeliveryCommand) ActorID() kernel.UUID { return c.actorID }

// RecipientName returns the receiving person's name.
func (c CompleteDeliveryCommand) RecipientName() string { return c.recipientName }

// RecipientPhone returns the receiving person's phone number.
func (c CompleteDeliveryCommand) RecipientPhone() string { return c.recipientPhone }

// SignatureURI returns the signature artifact URI.
func (c CompleteDeliveryCommand) SignatureURI() string { return c.signatureURI }

// PhotoURI returns the photo artifact URI.
func (c CompleteDeliveryCommand) PhotoURI() string { return c.photoURI }

// Notes returns the courier's free-text notes.
func (c CompleteDeliveryCommand) Notes() string { return c.notes }

func (c *CompleteDeliveryCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *CompleteDeliveryCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}

package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrRequestSkipCommandIsNotConstructed = errors.New(
	"RequestSkipCommand must be created via NewRequestSkipCommand constructor",
)

// RequestSkipCommand opens a skip request on a stop the courier cannot
// serve. The stop stays blocked until a dispatcher resolves the request.
type RequestSkipCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	actorID    kernel.UUID
	reason     delivery.SkipReason
	notes      string
	photoURI   string

	guard guard.ConstructorGuard
}

// NewRequestSkipCommand creates a command to open a skip request.
// reason must be one of the defined skip reason names; the "other" reason
// requires notes.
func NewRequestSkipCommand(
	deliveryID kernel.UUID, actorID kernel.UUID, reason string, notes string, photoURI string,
) (RequestSkipCommand, error) {
	command := RequestSkipCommand{
		guard: guard.NewConstructorGuard(),
	}

	skipReason, err := delivery.SkipReasonFromString(reason)
	if err != nil {
		return RequestSkipCommand{}, err
	}

	if err = errors.Join(
		command.setDeliveryID(deliveryID),
		command.setActorID(actorID),
	); err != nil {
		return RequestSkipCommand{}, err
	}

	command.reason = skipReason
	command.notes = notes
	command.photoURI = photoURI
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestSkipCommand) Validate() error {
	return c.guard.Validate(ErrRequestSkipCommandIsNotConstructed)
}

// DeliveryID returns the stop the request targets.
func (c RequestSkipCommand) DeliveryID() kernel.UUID { return c.deliveryID }

// ActorID returns the courier opening the request.
func (c RequestSkipCommand) ActorID() kernel.UUID { return c.actorID }

// Reason returns the parsed skip reason.
func (c RequestSkipCommand) Reason() delivery.SkipReason { return c.reason }

// Notes returns the courier's supporting notes.
func (c RequestSkipCommand) Notes() string { return c.notes }

// PhotoURI returns the supporting photo URI, if any.
func (c RequestSkipCommand) PhotoURI() string { return c.photoURI }

func (c *RequestSkipCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *RequestSkipCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}

package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrResolveSkipCommandIsNotConstructed = errors.New(
	"ResolveSkipCommand must be created via NewResolveSkipCommand constructor",
)

// ResolveSkipCommand settles a pending skip request. Approval skips the stop
// and keeps the route moving; rejection leaves the stop actionable.
type ResolveSkipCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	resolverID kernel.UUID
	approve    bool
	notes      string

	guard guard.ConstructorGuard
}

// NewResolveSkipCommand creates a command to resolve a skip request.
func NewResolveSkipCommand(
	deliveryID kernel.UUID, resolverID kernel.UUID, approve bool, notes string,
) (ResolveSkipCommand, error) {
	command := ResolveSkipCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setDeliveryID(deliveryID),
		command.setResolverID(resolverID),
	); err != nil {
		return ResolveSkipCommand{}, err
	}

	command.approve = approve
	command.notes = notes
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ResolveSkipCommand) Validate() error {
	return c.guard.Validate(ErrResolveSkipCommandIsNotConstructed)
}

// DeliveryID returns the stop whose request is being resolved.
func (c ResolveSkipCommand) DeliveryID() kernel.UUID { return c.deliveryID }

// ResolverID returns the dispatcher resolving the request.
func (c ResolveSkipCommand) ResolverID() kernel.UUID { return c.resolverID }

// Approve reports whether the request is approved.
func (c ResolveSkipCommand) Approve() bool { return c.approve }

// Notes returns the dispatcher's resolution notes.
func (c ResolveSkipCommand) Notes() string { return c.notes }

func (c *ResolveSkipCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *ResolveSkipCommand) setResolverID(resolverID kernel.UUID) error {
	if err := resolverID.Validate(); err != nil {
		return err
	}

	c.resolverID = resolverID
	return nil
}

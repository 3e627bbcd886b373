package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrStartRouteCommandIsNotConstructed = errors.New(
	"StartRouteCommand must be created via NewStartRouteCommand constructor",
)

// StartRouteCommand begins a courier's working session on a planned route.
// Only the assigned courier may start their route.
type StartRouteCommand struct { //nolint:recvcheck //using for validation
	routeID kernel.UUID
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewStartRouteCommand creates a command to start a route session.
func NewStartRouteCommand(routeID kernel.UUID, actorID kernel.UUID) (StartRouteCommand, error) {
	command := StartRouteCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setRouteID(routeID),
		command.setActorID(actorID),
	); err != nil {
		return StartRouteCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c StartRouteCommand) Validate() error {
	return c.guard.Validate(ErrStartRouteCommandIsNotConstructed)
}

// RouteID returns the route to start.
func (c StartRouteCommand) RouteID() kernel.UUID { return c.routeID }

// ActorID returns the courier starting the route.
func (c StartRouteCommand) ActorID() kernel.UUID { return c.actorID }

func (c *StartRouteCommand) setRouteID(routeID kernel.UUID) error {
	if err := routeID.Validate(); err != nil {
		return err
	}

	c.routeID = routeID
	return nil
}

func (c *StartRouteCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}

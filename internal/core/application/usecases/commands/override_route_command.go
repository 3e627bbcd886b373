package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrOverrideRouteCommandIsNotConstructed = errors.New(
	"OverrideRouteCommand must be created via NewOverrideRouteCommand constructor",
)

// OverrideRouteCommand grants a blanket sequencing override for a whole
// route, used for mass exceptions like a road closure re-route.
type OverrideRouteCommand struct { //nolint:recvcheck //using for validation
	routeID kernel.UUID
	actorID kernel.UUID
	reason  string

	guard guard.ConstructorGuard
}

// NewOverrideRouteCommand creates a command to grant a route-wide override.
func NewOverrideRouteCommand(
	routeID kernel.UUID, actorID kernel.UUID, reason string,
) (OverrideRouteCommand, error) {
	command := OverrideRouteCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setRouteID(routeID),
		command.setActorID(actorID),
		command.setReason(reason),
	); err != nil {
		return OverrideRouteCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c OverrideRouteCommand) Validate() error {
	return c.guard.Validate(ErrOverrideRouteCommandIsNotConstructed)
}

// RouteID returns the route being overridden.
func (c OverrideRouteCommand) RouteID() kernel.UUID { return c.routeID }

// ActorID returns the dispatcher granting the override.
func (c OverrideRouteCommand) ActorID() kernel.UUID { return c.actorID }

// Reason returns the override's stated reason.
func (c OverrideRouteCommand) Reason() string { return c.reason }

func (c *OverrideRouteCommand) setRouteID(routeID kernel.UUID) error {
	if err := routeID.Validate(); err != nil {
		return err
	}

	c.routeID = routeID
	return nil
}

func (c *OverrideRouteCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}

func (c *OverrideRouteCommand) setReason(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}

	c.reason = reason
	return nil
}

package commands

import (
	"context"
)

// OverrideRouteCommandHandler grants a blanket sequencing override. The
// override is evaluated by the sequencing gate at action time, so no stop
// state needs rewriting here.
type OverrideRouteCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// NewOverrideRouteCommandHandler creates a handler for route overrides.
func NewOverrideRouteCommandHandler(uowFactory DeliveryUoWFactory) OverrideRouteCommandHandler {
	return OverrideRouteCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle grants the override on the route aggregate.
func (h OverrideRouteCommandHandler) Handle(ctx context.Context, command OverrideRouteCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	routeRepo := uow.RouteRepository()

	routeAggregate, err := routeRepo.Get(ctx, command.RouteID())
	if err != nil {
		return err
	}

	if err = routeAggregate.ApplyBlanketOverride(command.ActorID(), command.Reason()); err != nil {
		return err
	}

	if err = routeRepo.Update(ctx, routeAggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

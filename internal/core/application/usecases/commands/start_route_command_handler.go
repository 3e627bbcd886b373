package commands

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// StartRouteCommandHandler starts a route session: the route moves to in
// progress and the first delivery is marked en route.
type StartRouteCommandHandler struct {
	uowFactory DeliveryUoWFactory
	publisher  ports.EventPublisher
}

// NewStartRouteCommandHandler creates a handler for route start operations.
func NewStartRouteCommandHandler(
	uowFactory DeliveryUoWFactory, publisher ports.EventPublisher,
) StartRouteCommandHandler {
	return StartRouteCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle starts the route. Rejected when the acting courier is not the
// route's assignee or the route is already started or archived.
func (h StartRouteCommandHandler) Handle(ctx context.Context, command StartRouteCommand) error {
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
	deliveryRepo := uow.DeliveryRepository()

	routeAggregate, err := routeRepo.Get(ctx, command.RouteID())
	if err != nil {
		return err
	}

	if !routeAggregate.CourierID().IsEqual(command.ActorID()) {
		return errs.NewUnauthorizedError("courier", "route "+routeAggregate.Code())
	}

	now := time.Now()
	if err = routeAggregate.Start(now); err != nil {
		return err
	}

	deliveries, err := deliveryRepo.GetByRoute(ctx, command.RouteID())
	if err != nil {
		return err
	}
	if len(deliveries) == 0 {
		return errs.NewObjectNotFoundError("routeID", command.RouteID().String())
	}

	first := deliveries[0]
	if err = first.Depart(now); err != nil {
		return err
	}

	if err = routeRepo.Update(ctx, routeAggregate); err != nil {
		return err
	}
	if err = deliveryRepo.Update(ctx, first); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, ports.Event{
		Kind:       ports.EventDeliveryStarted,
		RouteID:    routeAggregate.ID().String(),
		DeliveryID: first.ID().String(),
		Audience:   ports.AudienceRole,
		Target:     "dispatcher",
		Message:    fmt.Sprintf("route %s started with %d stops", routeAggregate.Code(), len(routeAggregate.ActiveStops())),
		OccurredAt: now,
	})

	return nil
}

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// ArriveDeliveryCommandHandler validates and records a courier's arrival at a
// stop. The sequencing gate runs first, then the geofence check; only then is
// the arrival written. The reported position also refreshes the courier's
// position feed.
type ArriveDeliveryCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewArriveDeliveryCommandHandler creates a handler for arrival operations.
func NewArriveDeliveryCommandHandler(
	uowFactory UoWFactory, publisher ports.EventPublisher, logger *slog.Logger,
) ArriveDeliveryCommandHandler {
	return ArriveDeliveryCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle records the arrival. Rejected when the actor is not the stop's
// courier, the sequencing gate blocks the stop, or the position is outside
// the arrival geofence. A repeated arrival reports AlreadyInTerminalState.
func (h ArriveDeliveryCommandHandler) Handle(ctx context.Context, command ArriveDeliveryCommand) error {
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

	deliveryRepo := uow.DeliveryRepository()

	target, err := deliveryRepo.Get(ctx, command.DeliveryID())
	if err != nil {
		return err
	}

	if !target.CourierID().IsEqual(command.ActorID()) {
		return errs.NewUnauthorizedError("courier", "delivery "+target.Code())
	}

	routeAggregate, err := uow.RouteRepository().Get(ctx, target.RouteID())
	if err != nil {
		return err
	}

	var predecessor *delivery.Delivery
	if target.PreviousDeliveryID() != nil && !target.CanProceed() {
		predecessor, err = deliveryRepo.Get(ctx, *target.PreviousDeliveryID())
		if err != nil {
			return err
		}
	}

	bypass, err := services.NewSequentialEnforcer().EnsureCanProceed(
		target, predecessor, false, routeAggregate.CanSkipShops())
	if err != nil {
		return err
	}
	if bypass != services.BypassNone {
		h.logger.Info("sequencing gate bypassed on arrival",
			"delivery", target.Code(), "reason", string(bypass))
	}

	inside, distanceKm := services.IsWithinGeofence(
		command.Position(), target.Destination(), services.DefaultGeofenceRadiusKm)
	if !inside {
		return errs.NewGeofenceViolationError(distanceKm, services.DefaultGeofenceRadiusKm)
	}

	now := time.Now()
	if err = target.Arrive(command.Position(), distanceKm, now); err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, target); err != nil {
		return err
	}

	courierRepo := uow.CourierRepository()
	courierAggregate, err := courierRepo.Get(ctx, target.CourierID())
	if err != nil {
		return err
	}
	if err = courierAggregate.RecordPosition(command.Position(), now); err != nil {
		return err
	}
	if err = courierRepo.Update(ctx, courierAggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, ports.Event{
		Kind:       ports.EventDeliveryArrived,
		RouteID:    target.RouteID().String(),
		DeliveryID: target.ID().String(),
		Audience:   ports.AudienceRole,
		Target:     "dispatcher",
		Message:    fmt.Sprintf("courier arrived at %s, %.3f km from the pin", target.Code(), distanceKm),
		OccurredAt: now,
	})

	return nil
}

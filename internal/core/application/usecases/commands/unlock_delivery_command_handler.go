package commands

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/core/ports"
)

// UnlockDeliveryCommandHandler attaches a dispatcher override to one stop
// and notifies the courier that the stop is actionable.
type UnlockDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	publisher  ports.EventPublisher
}

// NewUnlockDeliveryCommandHandler creates a handler for stop overrides.
func NewUnlockDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory, publisher ports.EventPublisher,
) UnlockDeliveryCommandHandler {
	return UnlockDeliveryCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle applies the override. Overriding an already overridden or terminal
// stop reports AlreadyInTerminalState.
func (h UnlockDeliveryCommandHandler) Handle(ctx context.Context, command UnlockDeliveryCommand) error {
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

	now := time.Now()
	if err = target.ApplyAdminOverride(command.ActorID(), command.Reason(), now); err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, target); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, ports.Event{
		Kind:       ports.EventShopUnlocked,
		RouteID:    target.RouteID().String(),
		DeliveryID: target.ID().String(),
		Audience:   ports.AudienceUser,
		Target:     target.CourierID().String(),
		Message:    fmt.Sprintf("stop %s released by dispatcher: %s", target.Code(), command.Reason()),
		OccurredAt: now,
	})

	return nil
}

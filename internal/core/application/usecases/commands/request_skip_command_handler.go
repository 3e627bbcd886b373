package commands

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// RequestSkipCommandHandler opens a pending skip request and notifies the
// dispatchers. Only one pending request may exist per stop.
type RequestSkipCommandHandler struct {
	uowFactory DeliveryUoWFactory
	publisher  ports.EventPublisher
}

// NewRequestSkipCommandHandler creates a handler for skip requests.
func NewRequestSkipCommandHandler(
	uowFactory DeliveryUoWFactory, publisher ports.EventPublisher,
) RequestSkipCommandHandler {
	return RequestSkipCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle opens the request. Rejected when the actor is not the stop's
// courier, the stop is terminal, or a pending request already exists.
func (h RequestSkipCommandHandler) Handle(ctx context.Context, command RequestSkipCommand) error {
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

	if err = target.RequestSkip(command.Reason(), command.Notes(), command.PhotoURI()); err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, target); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, ports.Event{
		Kind:       ports.EventSkipRequested,
		RouteID:    target.RouteID().String(),
		DeliveryID: target.ID().String(),
		Audience:   ports.AudienceRole,
		Target:     "dispatcher",
		Message:    fmt.Sprintf("skip requested for %s: %s", target.Code(), command.Reason()),
		OccurredAt: time.Now(),
	})

	return nil
}

package commands

import (
	"context"
	"time"
)

// UpdateCourierLocationCommandHandler persists a position report. Stale
// reports are absorbed by the aggregate without error, so app retries are
// harmless.
type UpdateCourierLocationCommandHandler struct {
	uowFactory CourierUoWFactory
}

// NewUpdateCourierLocationCommandHandler creates a handler for position
// reports.
func NewUpdateCourierLocationCommandHandler(uowFactory CourierUoWFactory) UpdateCourierLocationCommandHandler {
	return UpdateCourierLocationCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle records the report on the courier aggregate.
func (h UpdateCourierLocationCommandHandler) Handle(ctx context.Context, command UpdateCourierLocationCommand) error {
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

	courierRepo := uow.CourierRepository()

	courierAggregate, err := courierRepo.Get(ctx, command.CourierID())
	if err != nil {
		return err
	}

	if err = courierAggregate.RecordPosition(command.Position(), time.Now()); err != nil {
		return err
	}

	if err = courierRepo.Update(ctx, courierAggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

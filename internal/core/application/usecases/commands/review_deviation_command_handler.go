package commands

import (
	"context"
	"time"
)

// ReviewDeviationCommandHandler closes out a deviation record. Reviewing the
// same record twice is rejected by the aggregate.
type ReviewDeviationCommandHandler struct {
	uowFactory UoWFactory
}

// NewReviewDeviationCommandHandler creates a handler for deviation reviews.
func NewReviewDeviationCommandHandler(uowFactory UoWFactory) ReviewDeviationCommandHandler {
	return ReviewDeviationCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle marks the record as reviewed.
func (h ReviewDeviationCommandHandler) Handle(ctx context.Context, command ReviewDeviationCommand) error {
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

	deviationRepo := uow.DeviationRepository()

	record, err := deviationRepo.Get(ctx, command.RecordID())
	if err != nil {
		return err
	}

	if err = record.Review(command.ActorID(), command.Notes(), time.Now()); err != nil {
		return err
	}

	if err = deviationRepo.Update(ctx, record); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

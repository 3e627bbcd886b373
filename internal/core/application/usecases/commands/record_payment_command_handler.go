package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// RecordPaymentCommandHandler records a payment collection at a stop.
// Mobile-money collections are verified against the external gateway before
// the aggregate accepts them.
type RecordPaymentCommandHandler struct {
	uowFactory DeliveryUoWFactory
	gateway    ports.MobileMoneyGateway
}

// NewRecordPaymentCommandHandler creates a handler for payment collections.
func NewRecordPaymentCommandHandler(
	uowFactory DeliveryUoWFactory, gateway ports.MobileMoneyGateway,
) RecordPaymentCommandHandler {
	return RecordPaymentCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
	}
}

// Handle records the collection. Rejected when the actor is not the stop's
// courier, the stop has not arrived, the amount differs from the amount owed,
// or a mobile-money transaction is missing, unconfirmed or mismatched.
func (h RecordPaymentCommandHandler) Handle(ctx context.Context, command RecordPaymentCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()

	// The gateway lookup is a network call; read and verify before opening
	// the transaction so it is never held across the round trip.
	target, err := uow.DeliveryRepository().Get(ctx, command.DeliveryID())
	if err != nil {
		return err
	}

	if !target.CourierID().IsEqual(command.ActorID()) {
		return errs.NewUnauthorizedError("courier", "delivery "+target.Code())
	}

	if target.Payment().Method() == delivery.PaymentMethodMobileMoney {
		if err = h.verifyMobileMoney(ctx, command); err != nil {
			return err
		}
	}

	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = target.CollectPayment(command.Amount(), command.ExternalRef(), time.Now()); err != nil {
		return err
	}

	// Re-acquired after Begin so the write runs inside the transaction.
	if err = uow.DeliveryRepository().Update(ctx, target); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// verifyMobileMoney checks the referenced gateway transaction: it must
// exist, be confirmed and match the collected amount.
func (h RecordPaymentCommandHandler) verifyMobileMoney(ctx context.Context, command RecordPaymentCommand) error {
	if command.ExternalRef() == "" {
		return errs.NewValueIsRequiredError("externalRef")
	}

	tx, err := h.gateway.GetTransaction(ctx, command.ExternalRef())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return errs.NewExternalPaymentUnconfirmedError(command.ExternalRef())
	}
	if err != nil {
		return err
	}

	if !tx.Confirmed {
		return errs.NewExternalPaymentUnconfirmedError(command.ExternalRef())
	}
	if tx.Amount != command.Amount() {
		return errs.NewAmountMismatchError(command.Amount(), tx.Amount)
	}

	return nil
}

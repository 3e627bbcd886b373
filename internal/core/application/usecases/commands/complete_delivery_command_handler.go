package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/ledger"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// CompleteDeliveryCommandHandler finishes a stop as one transaction:
//
//   - the delivery moves to completed with its confirmation attached
//   - one stock ledger entry is appended per line item
//   - a collected payment is credited to the courier's wallet
//   - the route cursor advances, archiving the route on the last stop
//   - the successor stop, if any, is unlocked
//
// A failure at any step rolls the whole unit back, so a completed stop can
// never exist without its ledger entries or with a still-locked successor.
type CompleteDeliveryCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewCompleteDeliveryCommandHandler creates a handler for stop completion.
func NewCompleteDeliveryCommandHandler(
	uowFactory UoWFactory, publisher ports.EventPublisher, logger *slog.Logger,
) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle completes the stop. Rejected when the actor is not the stop's
// courier, the sequencing gate blocks the stop, the stop has not arrived, or
// a required payment is uncollected.
// Repeating a completion reports AlreadyInTerminalState rather than posting
// duplicate ledger entries.
func (h CompleteDeliveryCommandHandler) Handle(ctx context.Context, command CompleteDeliveryCommand) error {
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

	routeRepo := uow.RouteRepository()
	routeAggregate, err := routeRepo.Get(ctx, target.RouteID())
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
		h.logger.Info("sequencing gate bypassed on completion",
			"delivery", target.Code(), "reason", string(bypass))
	}

	now := time.Now()
	confirmation := delivery.NewConfirmation(
		command.RecipientName(),
		command.RecipientPhone(),
		command.SignatureURI(),
		command.PhotoURI(),
		command.Notes(),
		now,
	)

	if err = target.Complete(confirmation, now); err != nil {
		return err
	}

	credit, err := h.appendLedgers(ctx, uow, target, now)
	if err != nil {
		return err
	}

	if err = routeAggregate.Advance(); err != nil {
		return err
	}

	successor, err := deliveryRepo.GetSuccessor(ctx, target.ID())
	if err != nil {
		return err
	}
	if successor != nil {
		successor.Unlock()
		if err = deliveryRepo.Update(ctx, successor); err != nil {
			return err
		}
	}

	if err = deliveryRepo.Update(ctx, target); err != nil {
		return err
	}
	if err = routeRepo.Update(ctx, routeAggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publishOutcome(ctx, target, routeAggregate.IsArchived(), successor, credit, now)
	return nil
}

// appendLedgers writes the stock movements for the delivered line items and
// credits a collected payment to the courier's wallet. The credit entry, when
// one was written, is returned for the wallet notification.
func (h CompleteDeliveryCommandHandler) appendLedgers(
	ctx context.Context, uow UoW, target *delivery.Delivery, now time.Time,
) (*ledger.WalletEntry, error) {
	stockRepo := uow.StockRepository()
	for _, item := range target.LineItems() {
		entry, err := ledger.NewStockEntry(
			kernel.NewUUID(),
			target.ShopID(),
			target.ID(),
			item.ProductID(),
			ledger.StockEntryDeliveredIn,
			item.Quantity(),
			now,
		)
		if err != nil {
			return nil, err
		}
		if err = stockRepo.Add(ctx, entry); err != nil {
			return nil, err
		}
	}

	payment := target.Payment()
	if !payment.Method().RequiresCollection() || payment.AmountCollected() <= 0 {
		return nil, nil
	}

	walletRepo := uow.WalletRepository()
	balance, err := walletRepo.GetBalance(ctx, target.CourierID())
	if err != nil {
		return nil, err
	}

	deliveryID := target.ID()
	credit, err := ledger.NewWalletEntry(
		kernel.NewUUID(),
		target.CourierID(),
		&deliveryID,
		ledger.WalletEntryCredit,
		payment.AmountCollected(),
		balance+payment.AmountCollected(),
		fmt.Sprintf("%s collected at %s", payment.Method(), target.Code()),
		now,
	)
	if err != nil {
		return nil, err
	}

	if err = walletRepo.Add(ctx, credit); err != nil {
		return nil, err
	}
	return &credit, nil
}

func (h CompleteDeliveryCommandHandler) publishOutcome(
	ctx context.Context,
	target *delivery.Delivery,
	routeArchived bool,
	successor *delivery.Delivery,
	credit *ledger.WalletEntry,
	now time.Time,
) {
	h.publisher.Publish(ctx, ports.Event{
		Kind:       ports.EventDeliveryCompleted,
		RouteID:    target.RouteID().String(),
		DeliveryID: target.ID().String(),
		Audience:   ports.AudienceRole,
		Target:     "dispatcher",
		Message:    fmt.Sprintf("delivery %s completed", target.Code()),
		OccurredAt: now,
	})

	if successor != nil {
		h.publisher.Publish(ctx, ports.Event{
			Kind:       ports.EventDeliveryStarted,
			RouteID:    successor.RouteID().String(),
			DeliveryID: successor.ID().String(),
			Audience:   ports.AudienceUser,
			Target:     successor.CourierID().String(),
			Message:    fmt.Sprintf("next stop %s is ready", successor.Code()),
			OccurredAt: now,
		})
	}

	if credit != nil {
		h.publisher.Publish(ctx, ports.Event{
			Kind:       ports.EventWalletUpdated,
			RouteID:    target.RouteID().String(),
			DeliveryID: target.ID().String(),
			Audience:   ports.AudienceUser,
			Target:     target.CourierID().String(),
			Message:    fmt.Sprintf("wallet credited %.2f, balance %.2f", credit.Amount(), credit.BalanceAfter()),
			OccurredAt: now,
		})
	}

	if routeArchived {
		h.publisher.Publish(ctx, ports.Event{
			Kind:       ports.EventRouteCompleted,
			RouteID:    target.RouteID().String(),
			Audience:   ports.AudienceRole,
			Target:     "dispatcher",
			Message:    "route completed, all stops resolved",
			OccurredAt: now,
		})
	}
}

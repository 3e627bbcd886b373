package commands

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/ledger"
	"dispatch/internal/core/ports"
)

// ResolveSkipCommandHandler settles a pending skip request.
//
// Approval is transactional like completion: the stop moves to skipped, the
// route's stop list entry is deactivated with the cursor repositioned, the
// successor is unlocked and a zero-amount adjustment marks the uncollected
// payment in the courier's wallet. Rejection only touches the request.
type ResolveSkipCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
}

// NewResolveSkipCommandHandler creates a handler for skip resolutions.
func NewResolveSkipCommandHandler(
	uowFactory UoWFactory, publisher ports.EventPublisher,
) ResolveSkipCommandHandler {
	return ResolveSkipCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle resolves the request. Rejected when no pending request exists or
// the request was already resolved.
func (h ResolveSkipCommandHandler) Handle(ctx context.Context, command ResolveSkipCommand) error {
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

	if !command.Approve() {
		if err = target.RejectSkip(command.ResolverID(), command.Notes(), now); err != nil {
			return err
		}
		if err = deliveryRepo.Update(ctx, target); err != nil {
			return err
		}
		if err = uow.Commit(ctx); err != nil {
			return err
		}

		h.publishResolution(ctx, target, ports.EventSkipRejected, "rejected", now)
		return nil
	}

	if err = target.ApproveSkip(command.ResolverID(), command.Notes(), now); err != nil {
		return err
	}

	routeRepo := uow.RouteRepository()
	routeAggregate, err := routeRepo.Get(ctx, target.RouteID())
	if err != nil {
		return err
	}
	if err = routeAggregate.DeactivateStop(target.SequenceNumber()); err != nil {
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

	adjustment, err := h.appendSkipAdjustment(ctx, uow, target, now)
	if err != nil {
		return err
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

	h.publishResolution(ctx, target, ports.EventSkipApproved, "approved", now)

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

	if adjustment != nil {
		h.publisher.Publish(ctx, ports.Event{
			Kind:       ports.EventWalletUpdated,
			RouteID:    target.RouteID().String(),
			DeliveryID: target.ID().String(),
			Audience:   ports.AudienceUser,
			Target:     target.CourierID().String(),
			Message:    fmt.Sprintf("skip adjustment posted for %s, balance %.2f", target.Code(), adjustment.BalanceAfter()),
			OccurredAt: now,
		})
	}

	return nil
}

// appendSkipAdjustment writes the zero-amount wallet marker for a skipped
// stop that owed a collection, so the audit trail shows the amount was never
// collected. The entry, when one was written, is returned for the wallet
// notification.
func (h ResolveSkipCommandHandler) appendSkipAdjustment(
	ctx context.Context, uow UoW, target *delivery.Delivery, now time.Time,
) (*ledger.WalletEntry, error) {
	payment := target.Payment()
	if !payment.Method().RequiresCollection() || payment.IsSatisfied() {
		return nil, nil
	}

	walletRepo := uow.WalletRepository()
	balance, err := walletRepo.GetBalance(ctx, target.CourierID())
	if err != nil {
		return nil, err
	}

	deliveryID := target.ID()
	adjustment, err := ledger.NewWalletEntry(
		kernel.NewUUID(),
		target.CourierID(),
		&deliveryID,
		ledger.WalletEntrySkipAdjustment,
		0,
		balance,
		fmt.Sprintf("stop %s skipped, %.2f never collected", target.Code(), payment.AmountToCollect()),
		now,
	)
	if err != nil {
		return nil, err
	}

	if err = walletRepo.Add(ctx, adjustment); err != nil {
		return nil, err
	}
	return &adjustment, nil
}

func (h ResolveSkipCommandHandler) publishResolution(
	ctx context.Context, target *delivery.Delivery, kind string, outcome string, now time.Time,
) {
	h.publisher.Publish(ctx, ports.Event{
		Kind:       kind,
		RouteID:    target.RouteID().String(),
		DeliveryID: target.ID().String(),
		Audience:   ports.AudienceUser,
		Target:     target.CourierID().String(),
		Message:    fmt.Sprintf("skip request for %s %s", target.Code(), outcome),
		OccurredAt: now,
	})
}

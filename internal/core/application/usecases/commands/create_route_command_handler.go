package commands

import (
	"context"
	"fmt"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/route"
	"dispatch/internal/core/domain/services"
)

// CreateRouteCommandHandler plans a route and materializes its delivery
// chain. The route, its stops and one delivery per stop are persisted in a
// single transaction, so a route never exists half-planned.
type CreateRouteCommandHandler struct {
	uowFactory UoWFactory
}

// NewCreateRouteCommandHandler creates a handler for route planning.
func NewCreateRouteCommandHandler(uowFactory UoWFactory) CreateRouteCommandHandler {
	return CreateRouteCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle plans the route. Stop drafts are optionally reordered with the
// nearest-neighbor heuristic, sequence numbers are assigned 1..n in the final
// order, and the deliveries are chained by predecessor identifier: only the
// first stop starts actionable.
func (h CreateRouteCommandHandler) Handle(ctx context.Context, command CreateRouteCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	drafts := command.Stops()
	destinations := make([]kernel.GeoPoint, 0, len(drafts))
	for _, draft := range drafts {
		point, err := kernel.NewGeoPoint(draft.Lon, draft.Lat)
		if err != nil {
			return err
		}
		destinations = append(destinations, point)
	}

	order := make([]int, len(drafts))
	for i := range order {
		order[i] = i
	}
	if command.Optimize() {
		start, err := kernel.NewGeoPoint(command.StartLon(), command.StartLat())
		if err != nil {
			return err
		}
		order, _ = services.NewRoutePlanner().PlanSequence(start, destinations)
	}

	stops := make([]route.Stop, 0, len(drafts))
	for seq, idx := range order {
		stop, err := route.NewStop(drafts[idx].ShopID, destinations[idx], seq+1, drafts[idx].Notes)
		if err != nil {
			return err
		}
		stops = append(stops, stop)
	}

	routeAggregate, err := route.NewRoute(command.RouteID(), command.Code(), command.CourierID(), stops)
	if err != nil {
		return err
	}

	deliveries, err := h.buildDeliveryChain(command, order, destinations)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.RouteRepository().Add(ctx, routeAggregate); err != nil {
		return err
	}

	deliveryRepo := uow.DeliveryRepository()
	for _, d := range deliveries {
		if err = deliveryRepo.Add(ctx, d); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

func (h CreateRouteCommandHandler) buildDeliveryChain(
	command CreateRouteCommand,
	order []int,
	destinations []kernel.GeoPoint,
) ([]*delivery.Delivery, error) {
	drafts := command.Stops()
	deliveries := make([]*delivery.Delivery, 0, len(order))
	var previousID *kernel.UUID

	for seq, idx := range order {
		draft := drafts[idx]

		method, err := delivery.PaymentMethodFromString(draft.PaymentMethod)
		if err != nil {
			return nil, err
		}
		payment, err := delivery.NewPayment(method, draft.AmountToCollect)
		if err != nil {
			return nil, err
		}

		items := make([]delivery.LineItem, 0, len(draft.LineItems))
		for _, li := range draft.LineItems {
			item, liErr := delivery.NewLineItem(kernel.NewUUID(), li.ProductID, li.Name, li.Quantity, li.UnitPrice)
			if liErr != nil {
				return nil, liErr
			}
			items = append(items, item)
		}

		d, err := delivery.NewDelivery(
			kernel.NewUUID(),
			fmt.Sprintf("%s-%02d", command.Code(), seq+1),
			command.RouteID(),
			command.CourierID(),
			draft.ShopID,
			seq+1,
			destinations[idx],
			previousID,
			payment,
			items,
		)
		if err != nil {
			return nil, err
		}

		deliveries = append(deliveries, d)
		id := d.ID()
		previousID = &id
	}

	return deliveries, nil
}

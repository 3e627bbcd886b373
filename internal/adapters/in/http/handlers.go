package http

import (
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// CreateRoute handles POST /api/v1/routes - plans a route with its chained
// stops. Dispatcher only.
func (s *Server) CreateRoute(ctx echo.Context) error {
	if _, err := requireDispatcher(ctx); err != nil {
		return respondError(ctx, err)
	}

	var request CreateRouteRequest
	if err := ctx.Bind(&request); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidError("request body"))
	}

	courierID, err := kernel.UUIDFromString(request.CourierID)
	if err != nil {
		return respondError(ctx, err)
	}

	drafts, err := stopDrafts(request.Stops)
	if err != nil {
		return respondError(ctx, err)
	}

	routeID := kernel.NewUUID()
	cmd, err := commands.NewCreateRouteCommand(
		routeID, request.Code, courierID, drafts,
		request.Optimize, request.StartLon, request.StartLat)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.createRouteHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateRouteResponse{RouteID: routeID.String()})
}

func stopDrafts(requests []StopRequest) ([]commands.StopDraft, error) {
	drafts := make([]commands.StopDraft, 0, len(requests))
	for _, stop := range requests {
		shopID, err := kernel.UUIDFromString(stop.ShopID)
		if err != nil {
			return nil, err
		}

		items := make([]commands.LineItemDraft, 0, len(stop.LineItems))
		for _, item := range stop.LineItems {
			productID, itemErr := kernel.UUIDFromString(item.ProductID)
			if itemErr != nil {
				return nil, itemErr
			}
			items = append(items, commands.LineItemDraft{
				ProductID: productID,
				Name:      item.Name,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
			})
		}

		drafts = append(drafts, commands.StopDraft{
			ShopID:          shopID,
			Lon:             stop.Lon,
			Lat:             stop.Lat,
			PaymentMethod:   stop.PaymentMethod,
			AmountToCollect: stop.AmountToCollect,
			Notes:           stop.Notes,
			LineItems:       items,
		})
	}
	return drafts, nil
}

// StartRoute handles POST /api/v1/routes/:routeId/start - the assigned
// courier begins the run.
func (s *Server) StartRoute(ctx echo.Context) error {
	actor, err := actorID(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	routeID, err := pathUUID(ctx, "routeId")
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewStartRouteCommand(routeID, actor)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.startRouteHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// OverrideRoute handles POST /api/v1/routes/:routeId/override - grants free
// stop order on the whole route. Dispatcher only.
func (s *Server) OverrideRoute(ctx echo.Context) error {
	actor, err := requireDispatcher(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	routeID, err := pathUUID(ctx, "routeId")
	if err != nil {
		return respondError(ctx, err)
	}

	var request OverrideRouteRequest
	if err := ctx.Bind(&request); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidError("request body"))
	}

	cmd, err := commands.NewOverrideRouteCommand(routeID, actor, request.Reason)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.overrideRouteHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ArriveDelivery handles PATCH /api/v1/deliveries/:id/arrive - a
// geofence-checked arrival attempt.
func (s *Server) ArriveDelivery(ctx echo.Context) error {
	actor, err := actorID(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	deliveryID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	var request ArriveRequest
	if err := ctx.Bind(&request); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidError("request body"))
	}

	cmd, err := commands.NewArriveDeliveryCommand(deliveryID, actor, request.Lon, request.Lat)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.arriveDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RecordPayment handles POST /api/v1/deliveries/:id/payment - records a
// collection at an arrived stop.
func (s *Server) RecordPayment(ctx echo.Context) error {
	actor, err := actorID(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	deliveryID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	var request PaymentRequest
	if err := ctx.Bind(&request); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidError("request body"))
	}

	cmd, err := commands.NewRecordPaymentCommand(deliveryID, actor, request.Amount, request.ExternalRef)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.recordPaymentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteDelivery handles PATCH /api/v1/deliveries/:id/complete - finishes
// the stop with its proof-of-delivery confirmation.
func (s *Server) CompleteDelivery(ctx echo.Context) error {
	actor, err := actorID(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	deliveryID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	var request CompleteRequest
	if err := ctx.Bind(&request); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidError("request body"))
	}

	cmd, err := commands.NewCompleteDeliveryCommand(
		deliveryID, actor,
		request.RecipientName, request.RecipientPhone,
		request.SignatureURI, request.PhotoURI, request.Notes)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.completeDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RequestSkip handles POST /api/v1/deliveries/:id/request-skip - the courier
// reports an unreachable stop.
func (s *Server) RequestSkip(ctx echo.Context) error {
	actor, err := actorID(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	deliveryID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	var request RequestSkipRequest
	if err := ctx.Bind(&request); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidError("request body"))
	}

	cmd, err := commands.NewRequestSkipCommand(
		deliveryID, actor, request.Reason, request.Notes, request.PhotoURI)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.requestSkipHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusAccepted)
}

// ResolveSkip handles POST /api/v1/deliveries/:id/resolve-skip - a
// dispatcher approves or rejects the pending skip request.
func (s *Server) ResolveSkip(ctx echo.Context) error {
	actor, err := requireDispatcher(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	deliveryID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	var request ResolveSkipRequest
	if err := ctx.Bind(&request); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidError("request body"))
	}

	cmd, err := commands.NewResolveSkipCommand(deliveryID, actor, request.Approve, request.Notes)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.resolveSkipHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UnlockDelivery handles POST /api/v1/deliveries/:id/admin-unlock - a
// dispatcher releases a stop from sequential enforcement.
func (s *Server) UnlockDelivery(ctx echo.Context) error {
	actor, err := requireDispatcher(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	deliveryID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	var request UnlockRequest
	if err := ctx.Bind(&request); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidError("request body"))
	}

	cmd, err := commands.NewUnlockDeliveryCommand(deliveryID, actor, request.Reason)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.unlockDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetDelivery handles GET /api/v1/deliveries/:id.
func (s *Server) GetDelivery(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetDeliveryQuery(deliveryID)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.getDeliveryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, DeliveryResponse{
		ID:                   result.ID.String(),
		Code:                 result.Code,
		RouteID:              result.RouteID.String(),
		SequenceNumber:       result.SequenceNumber,
		Status:               result.Status,
		CanProceed:           result.CanProceed,
		Destination:          GeoPointResponse{Lon: result.Destination.Lon(), Lat: result.Destination.Lat()},
		PaymentMethod:        result.PaymentMethod,
		PaymentStatus:        result.PaymentStatus,
		AmountToCollect:      result.AmountToCollect,
		AmountCollected:      result.AmountCollected,
		SkipStatus:           result.SkipStatus,
		RecipientName:        result.RecipientName,
		ArrivedAt:            result.ArrivedAt,
		CompletedAt:          result.CompletedAt,
		ActualDurationMins:   result.ActualDurationMins,
		EstimatedArrivalMins: result.EstimatedArrivalMins,
	})
}

// GetActiveRoute handles GET /api/v1/routes/rider/:riderId/active.
// Dispatchers see the whole stop list; couriers only the stop the route
// cursor points at.
func (s *Server) GetActiveRoute(ctx echo.Context) error {
	riderID, err := pathUUID(ctx, "riderId")
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetActiveRouteQuery(riderID)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.getActiveRouteHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	role := ctx.Request().Header.Get(HeaderActorRole)
	visible := visibleStops(role, result.CurrentShopIndex, result.Stops)

	stops := make([]ActiveRouteStopResponse, 0, len(visible))
	for _, stop := range visible {
		stops = append(stops, ActiveRouteStopResponse{
			DeliveryID:      stop.DeliveryID.String(),
			Code:            stop.Code,
			SequenceNumber:  stop.SequenceNumber,
			Status:          stop.Status,
			CanProceed:      stop.CanProceed,
			Destination:     GeoPointResponse{Lon: stop.Destination.Lon(), Lat: stop.Destination.Lat()},
			PaymentMethod:   stop.PaymentMethod,
			AmountToCollect: stop.AmountToCollect,
			AmountCollected: stop.AmountCollected,
			SkipStatus:      stop.SkipStatus,
		})
	}

	return ctx.JSON(http.StatusOK, ActiveRouteResponse{
		RouteID:          result.RouteID.String(),
		Code:             result.Code,
		CurrentShopIndex: result.CurrentShopIndex,
		CanSkipShops:     result.CanSkipShops,
		StartedAt:        result.StartedAt,
		Stops:            stops,
	})
}

// visibleStops scopes the stop list by role. Dispatchers get the full route;
// everyone else gets only the stop at currentIndex, or nothing when the
// cursor is past the last stop.
func visibleStops(role string, currentIndex int, stops []queries.ActiveRouteStopResponse) []queries.ActiveRouteStopResponse {
	if role == RoleDispatcher {
		return stops
	}
	if currentIndex < 0 || currentIndex >= len(stops) {
		return nil
	}
	return stops[currentIndex : currentIndex+1]
}

// UpdateCourierLocation handles PATCH /api/v1/couriers/:id/location - the
// rider app's position feed.
func (s *Server) UpdateCourierLocation(ctx echo.Context) error {
	courierID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	var request LocationRequest
	if err := ctx.Bind(&request); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidError("request body"))
	}

	cmd, err := commands.NewUpdateCourierLocationCommand(courierID, request.Lon, request.Lat)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.updateLocationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetWallet handles GET /api/v1/couriers/:id/wallet.
func (s *Server) GetWallet(ctx echo.Context) error {
	courierID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetWalletQuery(courierID)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.getWalletHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	entries := make([]WalletEntryResponse, 0, len(result.Entries))
	for _, entry := range result.Entries {
		var deliveryID *string
		if entry.DeliveryID != nil {
			raw := entry.DeliveryID.String()
			deliveryID = &raw
		}
		entries = append(entries, WalletEntryResponse{
			ID:           entry.ID.String(),
			DeliveryID:   deliveryID,
			EntryType:    entry.EntryType,
			Amount:       entry.Amount,
			BalanceAfter: entry.BalanceAfter,
			Description:  entry.Description,
			CreatedAt:    entry.CreatedAt,
		})
	}

	return ctx.JSON(http.StatusOK, WalletResponse{
		CourierID: result.CourierID.String(),
		Balance:   result.Balance,
		Entries:   entries,
	})
}

// GetRouteDeviations handles GET /api/v1/routes/:routeId/deviations.
// Dispatcher only.
func (s *Server) GetRouteDeviations(ctx echo.Context) error {
	if _, err := requireDispatcher(ctx); err != nil {
		return respondError(ctx, err)
	}

	routeID, err := pathUUID(ctx, "routeId")
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetRouteDeviationsQuery(routeID)
	if err != nil {
		return respondError(ctx, err)
	}

	records, err := s.getRouteDeviationsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]DeviationResponse, 0, len(records))
	for _, record := range records {
		response = append(response, DeviationResponse{
			ID:         record.ID.String(),
			CourierID:  record.CourierID.String(),
			Position:   GeoPointResponse{Lon: record.Position.Lon(), Lat: record.Position.Lat()},
			DistanceKm: record.DistanceKm,
			Severity:   record.Severity,
			ObservedAt: record.ObservedAt,
			Reviewed:   record.Reviewed,
			ReviewedAt: record.ReviewedAt,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// ReviewDeviation handles POST /api/v1/deviations/:id/review - a dispatcher
// signs off a deviation record. Dispatcher only.
func (s *Server) ReviewDeviation(ctx echo.Context) error {
	actor, err := requireDispatcher(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	recordID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	var request ReviewDeviationRequest
	if err := ctx.Bind(&request); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidError("request body"))
	}

	cmd, err := commands.NewReviewDeviationCommand(recordID, actor, request.Notes)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.reviewDeviationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

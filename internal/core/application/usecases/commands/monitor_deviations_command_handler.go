package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/deviation"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/route"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// deviationAlertCooldown is the minimum time between alerts for the same
// route. The cooldown timestamp lives on the route row, so concurrent engine
// instances share it.
const deviationAlertCooldown = time.Minute

// MonitorDeviationsCommandHandler sweeps every route in progress, measures
// the assigned courier's distance from the planned corridor and grades it.
// Recordable deviations are persisted; warning and critical ones alert the
// dispatchers, throttled per route by the cooldown.
//
// A route that cannot be evaluated is logged and skipped; one bad route must
// not starve the rest of the sweep.
type MonitorDeviationsCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewMonitorDeviationsCommandHandler creates a handler for monitor sweeps.
func NewMonitorDeviationsCommandHandler(
	uowFactory UoWFactory, publisher ports.EventPublisher, logger *slog.Logger,
) MonitorDeviationsCommandHandler {
	return MonitorDeviationsCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle runs one sweep.
func (h MonitorDeviationsCommandHandler) Handle(ctx context.Context, command MonitorDeviationsCommand) error {
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

	routes, err := uow.RouteRepository().GetAllInProgress(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	var alerts []ports.Event

	for _, routeAggregate := range routes {
		alert, sweepErr := h.sweepRoute(ctx, uow, routeAggregate, now)
		if sweepErr != nil {
			h.logger.Error("deviation sweep failed for route",
				"route", routeAggregate.Code(), "error", sweepErr)
			continue
		}
		if alert != nil {
			alerts = append(alerts, *alert)
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	for _, event := range alerts {
		h.publisher.Publish(ctx, event)
	}

	return nil
}

// sweepRoute evaluates one route and returns the alert to publish, if any.
func (h MonitorDeviationsCommandHandler) sweepRoute(
	ctx context.Context, uow UoW, routeAggregate *route.Route, now time.Time,
) (*ports.Event, error) {
	courierAggregate, err := uow.CourierRepository().Get(ctx, routeAggregate.CourierID())
	if err != nil {
		return nil, err
	}

	position := courierAggregate.LastPosition()
	if position == nil {
		return nil, nil
	}

	corridor := make([]kernel.GeoPoint, 0, len(routeAggregate.ActiveStops()))
	for _, stop := range routeAggregate.ActiveStops() {
		corridor = append(corridor, stop.Destination())
	}
	if len(corridor) == 0 {
		return nil, nil
	}

	distanceKm := services.DistanceToCorridorKm(*position, corridor)
	severity := services.ClassifyDeviation(distanceKm)
	if !severity.IsRecordable() {
		return nil, nil
	}

	record, err := deviation.NewRecord(
		kernel.NewUUID(),
		routeAggregate.ID(),
		routeAggregate.CourierID(),
		*position,
		distanceKm,
		severity,
		now,
	)
	if err != nil {
		return nil, err
	}
	if err = uow.DeviationRepository().Add(ctx, record); err != nil {
		return nil, err
	}

	if !severity.TriggersAlert() {
		return nil, nil
	}

	last := routeAggregate.LastDeviationAlertAt()
	if last != nil && now.Sub(*last) < deviationAlertCooldown {
		return nil, nil
	}

	routeAggregate.RecordDeviationAlert(now)
	if err = uow.RouteRepository().Update(ctx, routeAggregate); err != nil {
		return nil, err
	}

	return &ports.Event{
		Kind:       ports.EventDeviationAlert,
		RouteID:    routeAggregate.ID().String(),
		Audience:   ports.AudienceRole,
		Target:     "dispatcher",
		Message:    fmt.Sprintf("%s deviation on %s: %.2f km off the corridor", severity, routeAggregate.Code(), distanceKm),
		OccurredAt: now,
	}, nil
}

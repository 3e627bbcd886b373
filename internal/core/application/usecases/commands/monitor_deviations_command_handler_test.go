package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/deviation"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/route"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func positionedCourier(t *testing.T, id kernel.UUID, lon float64, lat float64) *courier.Courier {
	t.Helper()
	rider, err := courier.NewCourier(id, "Ayo", "+2348000000001")
	require.NoError(t, err)
	require.NoError(t, rider.RecordPosition(testPoint(t, lon, lat), time.Now()))
	return rider
}

func TestMonitorDeviationsCommandHandler_Handle_CriticalDeviationAlerts(t *testing.T) {
	ctx := t.Context()
	courierID := kernel.NewUUID()
	routeAggregate := startedRoute(t, courierID, 2)
	// Stops sit at (0,0) and (1,1); a rider at (5,5) is far off the corridor.
	rider := positionedCourier(t, courierID, 5, 5)

	routeRepo := new(MockRouteRepository)
	courierRepo := new(MockCourierRepository)
	deviationRepo := new(MockDeviationRepository)
	uow := new(MockUoW)
	publisher := new(MockEventPublisher)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RouteRepository").Return(routeRepo).Once(),
		routeRepo.On("GetAllInProgress", ctx).Return([]*route.Route{routeAggregate}, nil).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		courierRepo.On("Get", ctx, courierID).Return(rider, nil).Once(),
		uow.On("DeviationRepository").Return(deviationRepo).Once(),
		deviationRepo.On("Add", ctx, mock.MatchedBy(func(record *deviation.Record) bool {
			return record.Severity() == deviation.SeverityCritical &&
				record.RouteID().IsEqual(routeAggregate.ID())
		})).Return(nil).Once(),
		uow.On("RouteRepository").Return(routeRepo).Once(),
		routeRepo.On("Update", ctx, routeAggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		publisher.On("Publish", ctx, mock.AnythingOfType("ports.Event")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewMonitorDeviationsCommandHandler(factory, publisher, discardLogger())
	err := h.Handle(ctx, commands.NewMonitorDeviationsCommand())
	require.NoError(t, err)

	require.NotNil(t, routeAggregate.LastDeviationAlertAt())
	routeRepo.AssertExpectations(t)
	courierRepo.AssertExpectations(t)
	deviationRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestMonitorDeviationsCommandHandler_Handle_OnCorridorRecordsNothing(t *testing.T) {
	ctx := t.Context()
	courierID := kernel.NewUUID()
	routeAggregate := startedRoute(t, courierID, 2)
	rider := positionedCourier(t, courierID, 0, 0)

	routeRepo := new(MockRouteRepository)
	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)
	publisher := new(MockEventPublisher)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RouteRepository").Return(routeRepo).Once(),
		routeRepo.On("GetAllInProgress", ctx).Return([]*route.Route{routeAggregate}, nil).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		courierRepo.On("Get", ctx, courierID).Return(rider, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewMonitorDeviationsCommandHandler(factory, publisher, discardLogger())
	err := h.Handle(ctx, commands.NewMonitorDeviationsCommand())
	require.NoError(t, err)

	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func TestMonitorDeviationsCommandHandler_Handle_CooldownSuppressesAlert(t *testing.T) {
	ctx := t.Context()
	courierID := kernel.NewUUID()
	routeAggregate := startedRoute(t, courierID, 2)
	routeAggregate.RecordDeviationAlert(time.Now())
	rider := positionedCourier(t, courierID, 5, 5)

	routeRepo := new(MockRouteRepository)
	courierRepo := new(MockCourierRepository)
	deviationRepo := new(MockDeviationRepository)
	uow := new(MockUoW)
	publisher := new(MockEventPublisher)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RouteRepository").Return(routeRepo).Once(),
		routeRepo.On("GetAllInProgress", ctx).Return([]*route.Route{routeAggregate}, nil).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		courierRepo.On("Get", ctx, courierID).Return(rider, nil).Once(),
		uow.On("DeviationRepository").Return(deviationRepo).Once(),
		deviationRepo.On("Add", ctx, mock.AnythingOfType("*deviation.Record")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewMonitorDeviationsCommandHandler(factory, publisher, discardLogger())
	err := h.Handle(ctx, commands.NewMonitorDeviationsCommand())
	require.NoError(t, err)

	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	routeRepo.AssertExpectations(t)
	deviationRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestMonitorDeviationsCommandHandler_Handle_NoPositionSkipsRoute(t *testing.T) {
	ctx := t.Context()
	courierID := kernel.NewUUID()
	routeAggregate := startedRoute(t, courierID, 2)
	rider, err := courier.NewCourier(courierID, "Ayo", "+2348000000001")
	require.NoError(t, err)

	routeRepo := new(MockRouteRepository)
	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RouteRepository").Return(routeRepo).Once(),
		routeRepo.On("GetAllInProgress", ctx).Return([]*route.Route{routeAggregate}, nil).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		courierRepo.On("Get", ctx, courierID).Return(rider, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewMonitorDeviationsCommandHandler(factory, new(MockEventPublisher), discardLogger())
	err = h.Handle(ctx, commands.NewMonitorDeviationsCommand())
	require.NoError(t, err)

	uow.AssertExpectations(t)
}

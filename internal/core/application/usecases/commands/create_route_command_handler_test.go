package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/route"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func draftAt(lon float64, lat float64, method string, amount float64) commands.StopDraft {
	return commands.StopDraft{
		ShopID:          kernel.NewUUID(),
		Lon:             lon,
		Lat:             lat,
		PaymentMethod:   method,
		AmountToCollect: amount,
		LineItems: []commands.LineItemDraft{
			{ProductID: kernel.NewUUID(), Name: "rice 50kg", Quantity: 1, UnitPrice: 400},
		},
	}
}

func TestCreateRouteCommandHandler_Handle_ChainsDeliveries(t *testing.T) {
	ctx := t.Context()
	courierID := kernel.NewUUID()
	drafts := []commands.StopDraft{
		draftAt(0, 0, "cash", 500),
		draftAt(1, 1, "mobile_money", 750),
		draftAt(2, 2, "credit", 300),
	}
	cmd, err := commands.NewCreateRouteCommand(kernel.NewUUID(), "R-7", courierID, drafts, false, 0, 0)
	require.NoError(t, err)

	var added []*delivery.Delivery
	var plannedStops []route.Stop

	routeRepo := new(MockRouteRepository)
	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RouteRepository").Return(routeRepo).Once(),
		routeRepo.On("Add", ctx, mock.AnythingOfType("*route.Route")).
			Run(func(args mock.Arguments) {
				plannedStops = args.Get(1).(*route.Route).Stops()
			}).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("Add", ctx, mock.AnythingOfType("*delivery.Delivery")).
			Run(func(args mock.Arguments) {
				added = append(added, args.Get(1).(*delivery.Delivery))
			}).Return(nil).Times(3),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateRouteCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)

	require.Len(t, plannedStops, 3)
	require.Len(t, added, 3)

	assert.Equal(t, "R-7-01", added[0].Code())
	assert.Nil(t, added[0].PreviousDeliveryID())
	assert.True(t, added[0].CanProceed())

	for i := 1; i < 3; i++ {
		require.NotNil(t, added[i].PreviousDeliveryID())
		assert.True(t, added[i].PreviousDeliveryID().IsEqual(added[i-1].ID()))
		assert.False(t, added[i].CanProceed())
		assert.Equal(t, i+1, added[i].SequenceNumber())
	}

	assert.Equal(t, delivery.PaymentMethodMobileMoney, added[1].Payment().Method())
	assert.Equal(t, 750.0, added[1].Payment().AmountToCollect())

	routeRepo.AssertExpectations(t)
	deliveryRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateRouteCommandHandler_Handle_OptimizedOrder(t *testing.T) {
	ctx := t.Context()
	courierID := kernel.NewUUID()
	// Submitted out of order; nearest-neighbor from (0,0) visits them
	// as 0.1 -> 1 -> 2.
	drafts := []commands.StopDraft{
		draftAt(2, 2, "cash", 100),
		draftAt(0.1, 0.1, "cash", 200),
		draftAt(1, 1, "cash", 300),
	}
	cmd, err := commands.NewCreateRouteCommand(kernel.NewUUID(), "R-8", courierID, drafts, true, 0, 0)
	require.NoError(t, err)

	var added []*delivery.Delivery

	routeRepo := new(MockRouteRepository)
	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RouteRepository").Return(routeRepo).Once(),
		routeRepo.On("Add", ctx, mock.AnythingOfType("*route.Route")).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("Add", ctx, mock.AnythingOfType("*delivery.Delivery")).
			Run(func(args mock.Arguments) {
				added = append(added, args.Get(1).(*delivery.Delivery))
			}).Return(nil).Times(3),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateRouteCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)

	require.Len(t, added, 3)
	assert.Equal(t, 0.1, added[0].Destination().Lon())
	assert.Equal(t, 1.0, added[1].Destination().Lon())
	assert.Equal(t, 2.0, added[2].Destination().Lon())
	assert.Equal(t, 200.0, added[0].Payment().AmountToCollect())
}

func TestCreateRouteCommand_New_Validation(t *testing.T) {
	courierID := kernel.NewUUID()

	_, err := commands.NewCreateRouteCommand(
		kernel.NewUUID(), "", courierID, []commands.StopDraft{draftAt(0, 0, "cash", 1)}, false, 0, 0)
	require.Error(t, err)

	_, err = commands.NewCreateRouteCommand(kernel.NewUUID(), "R-9", courierID, nil, false, 0, 0)
	require.Error(t, err)

	_, err = commands.NewCreateRouteCommand(kernel.UUID{}, "R-9", courierID,
		[]commands.StopDraft{draftAt(0, 0, "cash", 1)}, false, 0, 0)
	require.Error(t, err)
}

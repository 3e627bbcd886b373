package commands_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/deviation"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/ledger"
	"dispatch/internal/core/domain/model/route"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDeliveryRepository struct{ mock.Mock }

func (m *MockDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Update(ctx context.Context, aggregate *delivery.Delivery) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) GetByRoute(ctx context.Context, routeID kernel.UUID) ([]*delivery.Delivery, error) {
	args := m.Called(ctx, routeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) GetSuccessor(ctx context.Context, previousID kernel.UUID) (*delivery.Delivery, error) {
	args := m.Called(ctx, previousID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}

type MockRouteRepository struct{ mock.Mock }

func (m *MockRouteRepository) Add(ctx context.Context, aggregate *route.Route) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockRouteRepository) Update(ctx context.Context, aggregate *route.Route) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockRouteRepository) Get(ctx context.Context, id kernel.UUID) (*route.Route, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*route.Route), args.Error(1)
}

func (m *MockRouteRepository) GetActiveByCourier(ctx context.Context, courierID kernel.UUID) (*route.Route, error) {
	args := m.Called(ctx, courierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*route.Route), args.Error(1)
}

func (m *MockRouteRepository) GetAllInProgress(ctx context.Context) ([]*route.Route, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*route.Route), args.Error(1)
}

type MockCourierRepository struct{ mock.Mock }

func (m *MockCourierRepository) Add(ctx context.Context, aggregate *courier.Courier) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockCourierRepository) Update(ctx context.Context, aggregate *courier.Courier) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courier.Courier), args.Error(1)
}

type MockDeviationRepository struct{ mock.Mock }

func (m *MockDeviationRepository) Add(ctx context.Context, record *deviation.Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockDeviationRepository) Update(ctx context.Context, record *deviation.Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockDeviationRepository) Get(ctx context.Context, id kernel.UUID) (*deviation.Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*deviation.Record), args.Error(1)
}

func (m *MockDeviationRepository) GetByRoute(ctx context.Context, routeID kernel.UUID) ([]*deviation.Record, error) {
	args := m.Called(ctx, routeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*deviation.Record), args.Error(1)
}

type MockWalletRepository struct{ mock.Mock }

func (m *MockWalletRepository) Add(ctx context.Context, entry ledger.WalletEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockWalletRepository) GetBalance(ctx context.Context, courierID kernel.UUID) (float64, error) {
	args := m.Called(ctx, courierID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockWalletRepository) GetByCourier(ctx context.Context, courierID kernel.UUID) ([]ledger.WalletEntry, error) {
	args := m.Called(ctx, courierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.WalletEntry), args.Error(1)
}

type MockStockRepository struct{ mock.Mock }

func (m *MockStockRepository) Add(ctx context.Context, entry ledger.StockEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockStockRepository) GetByShop(ctx context.Context, shopID kernel.UUID) ([]ledger.StockEntry, error) {
	args := m.Called(ctx, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.StockEntry), args.Error(1)
}

// MockUoW implements the full unit of work and its narrower views, so one
// mock serves every handler.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) DeliveryRepository() ports.DeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRepository)
}

func (m *MockUoW) RouteRepository() ports.RouteRepository {
	args := m.Called()
	return args.Get(0).(ports.RouteRepository)
}

func (m *MockUoW) CourierRepository() ports.CourierRepository {
	args := m.Called()
	return args.Get(0).(ports.CourierRepository)
}

func (m *MockUoW) DeviationRepository() ports.DeviationRepository {
	args := m.Called()
	return args.Get(0).(ports.DeviationRepository)
}

func (m *MockUoW) WalletRepository() ports.WalletRepository {
	args := m.Called()
	return args.Get(0).(ports.WalletRepository)
}

func (m *MockUoW) StockRepository() ports.StockRepository {
	args := m.Called()
	return args.Get(0).(ports.StockRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockDeliveryUoWFactory struct{ mock.Mock }

func (m *MockDeliveryUoWFactory) Create() commands.DeliveryUoW {
	args := m.Called()
	return args.Get(0).(commands.DeliveryUoW)
}

type MockCourierUoWFactory struct{ mock.Mock }

func (m *MockCourierUoWFactory) Create() commands.CourierUoW {
	args := m.Called()
	return args.Get(0).(commands.CourierUoW)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, event ports.Event) {
	m.Called(ctx, event)
}

type MockMobileMoneyGateway struct{ mock.Mock }

func (m *MockMobileMoneyGateway) GetTransaction(ctx context.Context, reference string) (ports.MobileMoneyTransaction, error) {
	args := m.Called(ctx, reference)
	return args.Get(0).(ports.MobileMoneyTransaction), args.Error(1)
}

// Fixtures.

func testPoint(t *testing.T, lon float64, lat float64) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(lon, lat)
	require.NoError(t, err)
	return p
}

// plannedRoute builds a not yet started route with n stops at (i, i).
func plannedRoute(t *testing.T, courierID kernel.UUID, n int) *route.Route {
	t.Helper()
	stops := make([]route.Stop, 0, n)
	for i := range n {
		stop, err := route.NewStop(kernel.NewUUID(), testPoint(t, float64(i), float64(i)), i+1, "")
		require.NoError(t, err)
		stops = append(stops, stop)
	}
	r, err := route.NewRoute(kernel.NewUUID(), "R-100", courierID, stops)
	require.NoError(t, err)
	return r
}

// startedRoute builds a route with n stops and starts it.
func startedRoute(t *testing.T, courierID kernel.UUID, n int) *route.Route {
	t.Helper()
	r := plannedRoute(t, courierID, n)
	require.NoError(t, r.Start(time.Now()))
	return r
}

// pendingFirstStop builds the first stop of a route, still pending.
func pendingFirstStop(
	t *testing.T, routeID kernel.UUID, courierID kernel.UUID, method delivery.PaymentMethod, amount float64,
) *delivery.Delivery {
	t.Helper()
	payment, err := delivery.NewPayment(method, amount)
	require.NoError(t, err)
	item, err := delivery.NewLineItem(kernel.NewUUID(), kernel.NewUUID(), "flour 25kg", 2, 250)
	require.NoError(t, err)
	d, err := delivery.NewDelivery(
		kernel.NewUUID(), "R-100-01", routeID, courierID, kernel.NewUUID(),
		1, testPoint(t, 0, 0), nil, payment, []delivery.LineItem{item},
	)
	require.NoError(t, err)
	return d
}

// arrivedFirstStop builds the first stop already arrived at its destination.
func arrivedFirstStop(
	t *testing.T, routeID kernel.UUID, courierID kernel.UUID, method delivery.PaymentMethod, amount float64,
) *delivery.Delivery {
	t.Helper()
	d := pendingFirstStop(t, routeID, courierID, method, amount)
	require.NoError(t, d.Depart(time.Now()))
	require.NoError(t, d.Arrive(d.Destination(), 0.02, time.Now()))
	return d
}

package postgres_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/courierrepo"
	"dispatch/internal/adapters/out/postgres/deliveryrepo"
	"dispatch/internal/adapters/out/postgres/deviationrepo"
	"dispatch/internal/adapters/out/postgres/ledgerrepo"
	"dispatch/internal/adapters/out/postgres/routerepo"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/ledger"
	"dispatch/internal/core/domain/model/route"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite verifies transaction semantics of the GORM
// unit of work across the dispatch repositories.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *pgcontainer.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := pgcontainer.Run(ctx,
		"postgres:15-alpine",
		pgcontainer.WithDatabase("testdb"),
		pgcontainer.WithUsername("testuser"),
		pgcontainer.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&courierrepo.CourierDTO{},
		&routerepo.RouteDTO{},
		&routerepo.StopDTO{},
		&deliveryrepo.DeliveryDTO{},
		&deliveryrepo.LineItemDTO{},
		&deviationrepo.RecordDTO{},
		&ledgerrepo.WalletEntryDTO{},
		&ledgerrepo.StockEntryDTO{},
	))
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec(
		"TRUNCATE TABLE stock_entries, wallet_entries, deviations, delivery_line_items, deliveries, route_stops, routes, couriers").Error)
	suite.factory = postgres.NewGormUnitOfWorkFactory(suite.db)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_MultiRepositoryWrites_AllPersisted() {
	ctx := context.Background()

	plan := suite.createTestRoute("R-100")
	stop := suite.createTestDelivery(plan)
	entry := suite.createWalletEntry(plan.CourierID(), stop.ID())

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	suite.Require().NoError(uow.RouteRepository().Add(ctx, plan))
	suite.Require().NoError(uow.DeliveryRepository().Add(ctx, stop))
	suite.Require().NoError(uow.WalletRepository().Add(ctx, entry))

	suite.Require().NoError(uow.Commit(ctx))

	suite.assertCount(&routerepo.RouteDTO{}, 1)
	suite.assertCount(&deliveryrepo.DeliveryDTO{}, 1)
	suite.assertCount(&ledgerrepo.WalletEntryDTO{}, 1)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_MultiRepositoryWrites_NothingPersisted() {
	ctx := context.Background()

	plan := suite.createTestRoute("R-100")
	stop := suite.createTestDelivery(plan)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	suite.Require().NoError(uow.RouteRepository().Add(ctx, plan))
	suite.Require().NoError(uow.DeliveryRepository().Add(ctx, stop))

	suite.Require().NoError(uow.Rollback(ctx))

	suite.assertCount(&routerepo.RouteDTO{}, 0)
	suite.assertCount(&deliveryrepo.DeliveryDTO{}, 0)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_WithoutBegin_ReturnsError() {
	uow := suite.factory.Create()
	suite.Require().ErrorIs(uow.Commit(context.Background()), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_WithoutBegin_ReturnsError() {
	uow := suite.factory.Create()
	suite.Require().ErrorIs(uow.Rollback(context.Background()), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestBegin_CalledTwice_ReusesTransaction() {
	ctx := context.Background()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx))

	plan := suite.createTestRoute("R-100")
	suite.Require().NoError(uow.RouteRepository().Add(ctx, plan))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.assertCount(&routerepo.RouteDTO{}, 0)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRepositoriesWithoutTransaction_WriteImmediately() {
	ctx := context.Background()

	plan := suite.createTestRoute("R-100")

	uow := suite.factory.Create()
	suite.Require().NoError(uow.RouteRepository().Add(ctx, plan))

	suite.assertCount(&routerepo.RouteDTO{}, 1)
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestRoute(code string) *route.Route {
	destination, err := kernel.NewGeoPoint(-17.44, 14.70)
	suite.Require().NoError(err)

	stop, err := route.NewStop(kernel.NewUUID(), destination, 1, "")
	suite.Require().NoError(err)

	plan, err := route.NewRoute(kernel.NewUUID(), code, kernel.NewUUID(), []route.Stop{stop})
	suite.Require().NoError(err)
	return plan
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestDelivery(plan *route.Route) *delivery.Delivery {
	payment, err := delivery.NewPayment(delivery.PaymentMethodCash, 500)
	suite.Require().NoError(err)

	item, err := delivery.NewLineItem(kernel.NewUUID(), kernel.NewUUID(), "flour 25kg", 2, 250)
	suite.Require().NoError(err)

	stop, err := delivery.NewDelivery(
		kernel.NewUUID(),
		plan.Code()+"-01",
		plan.ID(),
		plan.CourierID(),
		plan.Stops()[0].ShopID(),
		1,
		plan.Stops()[0].Destination(),
		nil,
		payment,
		[]delivery.LineItem{item},
	)
	suite.Require().NoError(err)
	return stop
}

func (suite *UnitOfWorkIntegrationTestSuite) createWalletEntry(
	courierID, deliveryID kernel.UUID,
) ledger.WalletEntry {
	entry, err := ledger.NewWalletEntry(
		kernel.NewUUID(),
		courierID,
		&deliveryID,
		ledger.WalletEntryCredit,
		500,
		500,
		"collected at D-100-01",
		time.Now(),
	)
	suite.Require().NoError(err)
	return entry
}

func (suite *UnitOfWorkIntegrationTestSuite) assertCount(model any, expected int) {
	var count int64
	err := suite.db.Model(model).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}

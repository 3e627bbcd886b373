package routerepo_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/routerepo"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/route"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of the aggregateTracker
// interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// RouteRepositoryIntegrationTestSuite verifies route persistence against a
// real PostgreSQL instance.
type RouteRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *routerepo.GormRouteRepository
	tracker    *MockAggregateTracker
}

func (suite *RouteRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
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
		&routerepo.RouteDTO{},
		&routerepo.StopDTO{},
	))
}

func (suite *RouteRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE route_stops, routes").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = routerepo.NewGormRouteRepository(suite.db, suite.tracker)
}

func (suite *RouteRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *RouteRepositoryIntegrationTestSuite) TestAdd_ValidRoute_PersistsStops() {
	ctx := context.Background()

	plan := suite.createTestRoute("R-100", kernel.NewUUID(), 3)
	suite.tracker.On("TrackAggregate", plan.ID(), plan).Once()

	suite.Require().NoError(suite.repository.Add(ctx, plan))

	suite.assertStopCount(3)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *RouteRepositoryIntegrationTestSuite) TestGet_ExistingRoute_RoundTripsStopOrder() {
	ctx := context.Background()

	plan := suite.createTestRoute("R-100", kernel.NewUUID(), 3)
	suite.tracker.On("TrackAggregate", plan.ID(), plan).Once()
	suite.Require().NoError(suite.repository.Add(ctx, plan))

	retrieved, err := suite.repository.Get(ctx, plan.ID())
	suite.Require().NoError(err)

	suite.Equal(plan.ID(), retrieved.ID())
	suite.Equal(plan.Code(), retrieved.Code())
	suite.Require().Len(retrieved.Stops(), 3)
	for i, stop := range retrieved.Stops() {
		suite.Equal(i+1, stop.SequenceNumber())
		suite.Equal(plan.Stops()[i].ShopID(), stop.ShopID())
	}

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *RouteRepositoryIntegrationTestSuite) TestUpdate_StartedRoute_PersistsProgress() {
	ctx := context.Background()

	plan := suite.createTestRoute("R-100", kernel.NewUUID(), 2)
	suite.tracker.On("TrackAggregate", plan.ID(), plan).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, plan))

	startedAt := time.Now()
	suite.Require().NoError(plan.Start(startedAt))
	suite.Require().NoError(suite.repository.Update(ctx, plan))

	retrieved, err := suite.repository.Get(ctx, plan.ID())
	suite.Require().NoError(err)

	suite.True(retrieved.IsInProgress())
	suite.Require().NotNil(retrieved.StartedAt())
	suite.WithinDuration(startedAt, *retrieved.StartedAt(), time.Second)
	suite.Equal(plan.Version()+1, retrieved.Version())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *RouteRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_ReturnsConflictError() {
	ctx := context.Background()

	plan := suite.createTestRoute("R-100", kernel.NewUUID(), 2)
	suite.tracker.On("TrackAggregate", plan.ID(), plan).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, plan))

	suite.Require().NoError(plan.Start(time.Now()))
	suite.Require().NoError(suite.repository.Update(ctx, plan))

	err := suite.repository.Update(ctx, plan)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrConflictRetry)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *RouteRepositoryIntegrationTestSuite) TestGetActiveByCourier_ReturnsOnlyRunningRoute() {
	ctx := context.Background()

	courierID := kernel.NewUUID()

	planned := suite.createTestRoute("R-100", courierID, 2)
	running := suite.createTestRoute("R-101", courierID, 2)
	suite.Require().NoError(running.Start(time.Now()))

	for _, plan := range []*route.Route{planned, running} {
		suite.tracker.On("TrackAggregate", plan.ID(), plan).Once()
		suite.Require().NoError(suite.repository.Add(ctx, plan))
	}

	retrieved, err := suite.repository.GetActiveByCourier(ctx, courierID)
	suite.Require().NoError(err)

	suite.Equal(running.ID(), retrieved.ID())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *RouteRepositoryIntegrationTestSuite) TestGetActiveByCourier_NoActiveRoute_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.GetActiveByCourier(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *RouteRepositoryIntegrationTestSuite) TestGetAllInProgress_SkipsPlannedAndArchived() {
	ctx := context.Background()

	planned := suite.createTestRoute("R-100", kernel.NewUUID(), 2)
	running := suite.createTestRoute("R-101", kernel.NewUUID(), 2)
	suite.Require().NoError(running.Start(time.Now()))

	for _, plan := range []*route.Route{planned, running} {
		suite.tracker.On("TrackAggregate", plan.ID(), plan).Once()
		suite.Require().NoError(suite.repository.Add(ctx, plan))
	}

	inProgress, err := suite.repository.GetAllInProgress(ctx)
	suite.Require().NoError(err)

	suite.Require().Len(inProgress, 1)
	suite.Equal(running.ID(), inProgress[0].ID())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *RouteRepositoryIntegrationTestSuite) createTestRoute(
	code string, courierID kernel.UUID, stopCount int,
) *route.Route {
	stops := make([]route.Stop, 0, stopCount)
	for i := range stopCount {
		destination, err := kernel.NewGeoPoint(-17.44+float64(i)*0.01, 14.70)
		suite.Require().NoError(err)

		stop, err := route.NewStop(kernel.NewUUID(), destination, i+1, "")
		suite.Require().NoError(err)
		stops = append(stops, stop)
	}

	plan, err := route.NewRoute(kernel.NewUUID(), code, courierID, stops)
	suite.Require().NoError(err)
	return plan
}

func (suite *RouteRepositoryIntegrationTestSuite) assertStopCount(expected int) {
	var count int64
	err := suite.db.Model(&routerepo.StopDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestRouteRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(RouteRepositoryIntegrationTestSuite))
}

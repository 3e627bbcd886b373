package cmd

import (
	"log/slog"

	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/mobilemoney"
	"dispatch/internal/adapters/out/postgres"
	redisout "dispatch/internal/adapters/out/redis"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/ports"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	publisher  ports.EventPublisher
	gateway    ports.MobileMoneyGateway
	logger     *slog.Logger
}

func NewCompositionRoot(
	configs Config, gormDB *gorm.DB, redisClient *redis.Client, logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  redisout.NewEventPublisher(redisClient, logger),
		gateway:    mobilemoney.NewGateway(configs.MobileMoneyBaseURL),
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateCreateRouteCommandHandler() commands.CreateRouteCommandHandler {
	return commands.NewCreateRouteCommandHandler(c.uowFactoryAdapter())
}

func (c *CompositionRoot) CreateStartRouteCommandHandler() commands.StartRouteCommandHandler {
	return commands.NewStartRouteCommandHandler(c.deliveryUoWFactoryAdapter(), c.publisher)
}

func (c *CompositionRoot) CreateArriveDeliveryCommandHandler() commands.ArriveDeliveryCommandHandler {
	return commands.NewArriveDeliveryCommandHandler(c.uowFactoryAdapter(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateRecordPaymentCommandHandler() commands.RecordPaymentCommandHandler {
	return commands.NewRecordPaymentCommandHandler(c.deliveryUoWFactoryAdapter(), c.gateway)
}

func (c *CompositionRoot) CreateCompleteDeliveryCommandHandler() commands.CompleteDeliveryCommandHandler {
	return commands.NewCompleteDeliveryCommandHandler(c.uowFactoryAdapter(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateRequestSkipCommandHandler() commands.RequestSkipCommandHandler {
	return commands.NewRequestSkipCommandHandler(c.deliveryUoWFactoryAdapter(), c.publisher)
}

func (c *CompositionRoot) CreateResolveSkipCommandHandler() commands.ResolveSkipCommandHandler {
	return commands.NewResolveSkipCommandHandler(c.uowFactoryAdapter(), c.publisher)
}

func (c *CompositionRoot) CreateUnlockDeliveryCommandHandler() commands.UnlockDeliveryCommandHandler {
	return commands.NewUnlockDeliveryCommandHandler(c.deliveryUoWFactoryAdapter(), c.publisher)
}

func (c *CompositionRoot) CreateOverrideRouteCommandHandler() commands.OverrideRouteCommandHandler {
	return commands.NewOverrideRouteCommandHandler(c.deliveryUoWFactoryAdapter())
}

func (c *CompositionRoot) CreateUpdateCourierLocationCommandHandler() commands.UpdateCourierLocationCommandHandler {
	return commands.NewUpdateCourierLocationCommandHandler(c.courierUoWFactoryAdapter())
}

func (c *CompositionRoot) CreateReviewDeviationCommandHandler() commands.ReviewDeviationCommandHandler {
	return commands.NewReviewDeviationCommandHandler(c.uowFactoryAdapter())
}

func (c *CompositionRoot) CreateMonitorDeviationsCommandHandler() commands.MonitorDeviationsCommandHandler {
	return commands.NewMonitorDeviationsCommandHandler(c.uowFactoryAdapter(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateGetActiveRouteQueryHandler() queries.GetActiveRouteQueryHandler {
	return queries.NewGetActiveRouteQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDeliveryQueryHandler() queries.GetDeliveryQueryHandler {
	return queries.NewGetDeliveryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetWalletQueryHandler() queries.GetWalletQueryHandler {
	return queries.NewGetWalletQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetRouteDeviationsQueryHandler() queries.GetRouteDeviationsQueryHandler {
	return queries.NewGetRouteDeviationsQueryHandler(c.gormDB)
}

// CreateHTTPServer assembles the REST server with every handler wired.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateRouteCommandHandler(),
		c.CreateStartRouteCommandHandler(),
		c.CreateArriveDeliveryCommandHandler(),
		c.CreateRecordPaymentCommandHandler(),
		c.CreateCompleteDeliveryCommandHandler(),
		c.CreateRequestSkipCommandHandler(),
		c.CreateResolveSkipCommandHandler(),
		c.CreateUnlockDeliveryCommandHandler(),
		c.CreateOverrideRouteCommandHandler(),
		c.CreateUpdateCourierLocationCommandHandler(),
		c.CreateReviewDeviationCommandHandler(),
		c.CreateGetActiveRouteQueryHandler(),
		c.CreateGetDeliveryQueryHandler(),
		c.CreateGetWalletQueryHandler(),
		c.CreateGetRouteDeviationsQueryHandler(),
	)
}

// The command packages declare role-scoped unit of work interfaces; the gorm
// unit of work satisfies all of them structurally. These adapters only narrow
// the factory return type.

func (c *CompositionRoot) uowFactoryAdapter() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) deliveryUoWFactoryAdapter() commands.DeliveryUoWFactory {
	return FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) courierUoWFactoryAdapter() commands.CourierUoWFactory {
	return FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

package cmd

import (
	"log/slog"

	adapterhttp "orderflow/internal/adapters/in/http"
	"orderflow/internal/adapters/out/courier"
	"orderflow/internal/adapters/out/postgres"
	"orderflow/internal/adapters/out/postgres/tenantrepo"
	"orderflow/internal/adapters/out/storefront"
	"orderflow/internal/adapters/out/whatsapp"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
	"orderflow/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	notifier         ports.Notifier
	courierClient    ports.CourierClient
	storefrontClient ports.StorefrontClient

	logger *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	notifier, err := whatsapp.NewClient(config.WhatsAppAPIURL, config.WhatsAppToken)
	if err != nil {
		return CompositionRoot{}, err
	}

	courierClient, err := courier.NewClient(config.CourierAPIURL)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		config:           config,
		gormDB:           gormDB,
		uowFactory:       *postgres.NewGormUnitOfWorkFactory(gormDB),
		notifier:         notifier,
		courierClient:    courierClient,
		storefrontClient: storefront.NewClient(config.StorefrontBaseURL),
		logger:           logger,
	}, nil
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateProcessReplyCommandHandler() commands.ProcessReplyCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewProcessReplyCommandHandler(
		f, services.NewReplyMatcher(), c.notifier, c.courierClient, c.storefrontClient, c.logger)
}

func (c *CompositionRoot) CreateReportFulfillmentCommandHandler() commands.ReportFulfillmentCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReportFulfillmentCommandHandler(f, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateObserveCourierStatusCommandHandler() commands.ObserveCourierStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewObserveCourierStatusCommandHandler(f, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateReconcileDeliveriesCommandHandler() commands.ReconcileDeliveriesCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})

	observeHandler := c.CreateObserveCourierStatusCommandHandler()
	return commands.NewReconcileDeliveriesCommandHandler(f, c.courierClient, &observeHandler, c.logger)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateTenantRepository() ports.TenantRepository {
	return tenantrepo.NewGormTenantRepository(c.gormDB)
}

func (c *CompositionRoot) CreateServer() *adapterhttp.Server {
	createOrder := c.CreateCreateOrderCommandHandler()
	reportFulfillment := c.CreateReportFulfillmentCommandHandler()
	processReply := c.CreateProcessReplyCommandHandler()

	return adapterhttp.NewServer(
		c.CreateTenantRepository(),
		&createOrder,
		&reportFulfillment,
		&processReply,
		c.CreateGetActiveOrdersQueryHandler(),
		c.config.WhatsAppVerifyToken,
		c.config.DefaultCountryCode,
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateReconcileDeliveriesCommandHandler(),
		c.config.ReconcileSchedule,
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

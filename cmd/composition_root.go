package cmd

import (
	"log/slog"
	"time"

	"github.com/m4r-ant/200millas-Backend/internal/adapters/out/postgres"
	"github.com/m4r-ant/200millas-Backend/internal/core/application/usecases/commands"
	"github.com/m4r-ant/200millas-Backend/internal/core/application/usecases/queries"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	logger     *slog.Logger
	uowFactory postgres.GormUnitOfWorkFactory
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		logger:     logger,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.workflowUoWFactory())
}

func (c *CompositionRoot) CreateRequestTransitionCommandHandler() commands.RequestTransitionCommandHandler {
	return commands.NewRequestTransitionCommandHandler(c.workflowUoWFactory())
}

func (c *CompositionRoot) CreateReportAvailabilityCommandHandler() commands.ReportAvailabilityCommandHandler {
	var f commands.StaffUoWFactory = FuncStaffUoWFactory(func() commands.StaffUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReportAvailabilityCommandHandler(f)
}

func (c *CompositionRoot) CreateAssignWorkCommandHandler() commands.AssignWorkCommandHandler {
	return commands.NewAssignWorkCommandHandler(c.workflowUoWFactory())
}

func (c *CompositionRoot) CreateExpireWaitsCommandHandler() commands.ExpireWaitsCommandHandler {
	return commands.NewExpireWaitsCommandHandler(
		c.workflowUoWFactory(),
		time.Duration(c.config.CookWaitSeconds)*time.Second,
		time.Duration(c.config.PackWaitSeconds)*time.Second,
		time.Duration(c.config.PickupWaitSeconds)*time.Second,
		c.logger,
	)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetTimelineQueryHandler() queries.GetTimelineQueryHandler {
	return queries.NewGetTimelineQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDashboardMetricsQueryHandler() queries.GetDashboardMetricsQueryHandler {
	return queries.NewGetDashboardMetricsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetStaffAvailabilityQueryHandler() queries.GetStaffAvailabilityQueryHandler {
	return queries.NewGetStaffAvailabilityQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetStaffPerformanceQueryHandler() queries.GetStaffPerformanceQueryHandler {
	return queries.NewGetStaffPerformanceQueryHandler(c.gormDB)
}

func (c *CompositionRoot) workflowUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncStaffUoWFactory func() commands.StaffUoW

func (f FuncStaffUoWFactory) Create() commands.StaffUoW {
	return f()
}

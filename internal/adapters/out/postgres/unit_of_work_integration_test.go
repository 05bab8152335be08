package postgres_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpin "github.com/m4r-ant/200millas-Backend/internal/adapters/in/http"
	"github.com/m4r-ant/200millas-Backend/internal/adapters/out/postgres"
	"github.com/m4r-ant/200millas-Backend/internal/adapters/out/postgres/assignmentrepo"
	"github.com/m4r-ant/200millas-Backend/internal/adapters/out/postgres/orderrepo"
	"github.com/m4r-ant/200millas-Backend/internal/adapters/out/postgres/staffrepo"
	"github.com/m4r-ant/200millas-Backend/internal/adapters/out/postgres/steprepo"
	"github.com/m4r-ant/200millas-Backend/internal/core/application/usecases/commands"
	"github.com/m4r-ant/200millas-Backend/internal/core/application/usecases/queries"
	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/assignment"
	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/kernel"
	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/order"
	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/staff"
	"github.com/m4r-ant/200millas-Backend/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type funcUoWFactory func() commands.UoW

func (f funcUoWFactory) Create() commands.UoW {
	return f()
}

type funcStaffUoWFactory func() commands.StaffUoW

func (f funcStaffUoWFactory) Create() commands.StaffUoW {
	return f()
}

// UnitOfWorkIntegrationTestSuite exercises the full write stack against a
// real PostgreSQL instance: transactional unit of work, command handlers on
// top of it, and the read-side queries over the same rows.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *pgcontainer.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory

	uowFactory      funcUoWFactory
	staffUowFactory funcStaffUoWFactory
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
		&orderrepo.OrderDTO{},
		&staffrepo.StaffDTO{},
		&steprepo.StepDTO{},
		&assignmentrepo.RequestDTO{},
	))

	suite.factory = postgres.NewGormUnitOfWorkFactory(db)
	suite.uowFactory = func() commands.UoW { return suite.factory.Create() }
	suite.staffUowFactory = func() commands.StaffUoW { return suite.factory.Create() }
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec(
		"TRUNCATE TABLE orders, staff_availability, workflow_steps, assignment_requests").Error)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) tenant() kernel.TenantID {
	tenant, err := kernel.NewTenantID("200millas")
	suite.Require().NoError(err)
	return tenant
}

func (suite *UnitOfWorkIntegrationTestSuite) actor(id string, role kernel.ActorRole) kernel.Actor {
	actor, err := kernel.NewActor(id, role)
	suite.Require().NoError(err)
	return actor
}

func (suite *UnitOfWorkIntegrationTestSuite) reportAvailable(ctx context.Context, staffID string, role staff.Role) {
	handler := commands.NewReportAvailabilityCommandHandler(suite.staffUowFactory)
	cmd, err := commands.NewReportAvailabilityCommand(suite.tenant(), staffID, role, staff.StatusAvailable)
	suite.Require().NoError(err)
	suite.Require().NoError(handler.Handle(ctx, cmd))
}

func (suite *UnitOfWorkIntegrationTestSuite) createOrder(ctx context.Context) kernel.UUID {
	handler := commands.NewCreateOrderCommandHandler(suite.uowFactory)
	orderID := kernel.NewUUID()

	cmd, err := commands.NewCreateOrderCommand(
		orderID,
		suite.tenant(),
		"customer-1",
		[]commands.OrderItem{
			{SKU: "sku-ceviche", Name: "Ceviche Clasico", Quantity: 1, UnitPrice: 18.99},
			{SKU: "sku-chicha", Name: "Chicha Morada", Quantity: 2, UnitPrice: 5.50},
		},
		"Av. Larco 1301, Miraflores",
		"ring twice",
	)
	suite.Require().NoError(err)
	suite.Require().NoError(handler.Handle(ctx, cmd))

	return orderID
}

func (suite *UnitOfWorkIntegrationTestSuite) assignWork(ctx context.Context, category assignment.Category) {
	handler := commands.NewAssignWorkCommandHandler(suite.uowFactory)
	cmd, err := commands.NewAssignWorkCommand(category)
	suite.Require().NoError(err)
	suite.Require().NoError(handler.Handle(ctx, cmd))
}

func (suite *UnitOfWorkIntegrationTestSuite) transition(
	ctx context.Context,
	orderID kernel.UUID,
	actor kernel.Actor,
	target order.Status,
) error {
	handler := commands.NewRequestTransitionCommandHandler(suite.uowFactory)
	cmd, err := commands.NewRequestTransitionCommand(suite.tenant(), orderID, actor, target, "")
	suite.Require().NoError(err)
	return handler.Handle(ctx, cmd)
}

func (suite *UnitOfWorkIntegrationTestSuite) getOrder(ctx context.Context, orderID kernel.UUID) queries.GetOrderQueryResponse {
	handler := queries.NewGetOrderQueryHandler(suite.db)
	query, err := queries.NewGetOrderQuery(suite.tenant(), orderID, suite.actor("back", kernel.ActorRoleStaff))
	suite.Require().NoError(err)

	response, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	return response
}

// TestFullWorkflow walks one order through every stage of a successful
// delivery and then checks every read model over the result.
func (suite *UnitOfWorkIntegrationTestSuite) TestFullWorkflow() {
	ctx := context.Background()
	chef := suite.actor("chef@200millas", kernel.ActorRoleChef)
	driver := suite.actor("driver@200millas", kernel.ActorRoleDriver)

	suite.reportAvailable(ctx, chef.ID(), staff.RoleChef)
	suite.reportAvailable(ctx, driver.ID(), staff.RoleDriver)

	orderID := suite.createOrder(ctx)
	suite.Equal(order.Confirmed.String(), suite.getOrder(ctx, orderID).Status)

	suite.assignWork(ctx, assignment.CategoryCooking)
	afterMatch := suite.getOrder(ctx, orderID)
	suite.Equal(order.Cooking.String(), afterMatch.Status)
	suite.Require().NotNil(afterMatch.AssignedChef)
	suite.Equal(chef.ID(), *afterMatch.AssignedChef)

	suite.Require().NoError(suite.transition(ctx, orderID, chef, order.Packing))
	suite.Require().NoError(suite.transition(ctx, orderID, chef, order.Ready))

	// Packing done: the chef is free again and the delivery queue holds
	// the order.
	suite.Require().NoError(suite.transition(ctx, orderID, driver, order.InDelivery))
	suite.Require().NoError(suite.transition(ctx, orderID, driver, order.Delivered))

	final := suite.getOrder(ctx, orderID)
	suite.Equal(order.Delivered.String(), final.Status)
	suite.InDelta(29.99, final.TotalAmount, 0.001)

	suite.assertTimeline(ctx, orderID, chef.ID(), driver.ID())
	suite.assertDashboard(ctx)
	suite.assertStaffReadModels(ctx, chef.ID(), driver.ID())
}

func (suite *UnitOfWorkIntegrationTestSuite) assertTimeline(ctx context.Context, orderID kernel.UUID, chefID, driverID string) {
	handler := queries.NewGetTimelineQueryHandler(suite.db)
	query, err := queries.NewGetTimelineQuery(suite.tenant(), orderID)
	suite.Require().NoError(err)

	timeline, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(timeline.Steps, 6)

	wantStatuses := []string{"pending", "confirmed", "cooking", "packing", "ready", "in_delivery"}
	wantActors := []string{"system", "system", chefID, chefID, "system", driverID}
	for i, step := range timeline.Steps {
		suite.Equal(i+1, step.StepNumber)
		suite.Equal(wantStatuses[i], step.Status)
		suite.Equal(wantActors[i], step.AssignedTo)
		suite.NotNil(step.CompletedAt, "every step closed after delivery")
		suite.NotNil(step.DurationSeconds)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) assertDashboard(ctx context.Context) {
	handler := queries.NewGetDashboardMetricsQueryHandler(suite.db)
	query, err := queries.NewGetDashboardMetricsQuery(suite.tenant())
	suite.Require().NoError(err)

	dashboard, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal(1, dashboard.DeliveredCount)
	suite.Equal(0, dashboard.ActiveOrders)
	suite.Equal(0, dashboard.FailedCount)
	suite.InDelta(29.99, dashboard.TotalRevenue, 0.001)
	suite.Require().Len(dashboard.RecentOrders, 1)
	suite.Equal("customer-1", dashboard.RecentOrders[0].CustomerID)
}

func (suite *UnitOfWorkIntegrationTestSuite) assertStaffReadModels(ctx context.Context, chefID, driverID string) {
	rosterHandler := queries.NewGetStaffAvailabilityQueryHandler(suite.db)
	rosterQuery, err := queries.NewGetStaffAvailabilityQuery(suite.tenant())
	suite.Require().NoError(err)

	roster, err := rosterHandler.Handle(ctx, rosterQuery)
	suite.Require().NoError(err)
	suite.Equal(2, roster.AvailableCount)
	suite.Equal(0, roster.BusyCount)

	performanceHandler := queries.NewGetStaffPerformanceQueryHandler(suite.db)
	performanceQuery, err := queries.NewGetStaffPerformanceQuery(
		suite.tenant(), suite.actor("owner", kernel.ActorRoleAdmin))
	suite.Require().NoError(err)

	performance, err := performanceHandler.Handle(ctx, performanceQuery)
	suite.Require().NoError(err)
	suite.Require().Len(performance, 2)

	for _, row := range performance {
		suite.Contains([]string{chefID, driverID}, row.StaffID)
		suite.Equal(1, row.CompletedTasks)
		suite.InDelta(100.0, row.CompletionRate, 0.001)
	}
}

// TestDriverCancelsPickup returns the order to the shelf and requeues
// delivery, with the driver credited for the held time but not the order.
func (suite *UnitOfWorkIntegrationTestSuite) TestDriverCancelsPickup() {
	ctx := context.Background()
	chef := suite.actor("chef@200millas", kernel.ActorRoleChef)
	driver := suite.actor("driver@200millas", kernel.ActorRoleDriver)

	suite.reportAvailable(ctx, chef.ID(), staff.RoleChef)
	suite.reportAvailable(ctx, driver.ID(), staff.RoleDriver)

	orderID := suite.createOrder(ctx)
	suite.assignWork(ctx, assignment.CategoryCooking)
	suite.Require().NoError(suite.transition(ctx, orderID, chef, order.Packing))
	suite.Require().NoError(suite.transition(ctx, orderID, chef, order.Ready))
	suite.Require().NoError(suite.transition(ctx, orderID, driver, order.InDelivery))

	suite.Require().NoError(suite.transition(ctx, orderID, driver, order.Ready))

	returned := suite.getOrder(ctx, orderID)
	suite.Equal(order.Ready.String(), returned.Status)
	suite.Nil(returned.AssignedDriver)

	var queued int64
	suite.Require().NoError(suite.db.Model(&assignmentrepo.RequestDTO{}).
		Where("category = ?", "delivery").Count(&queued).Error)
	suite.Equal(int64(1), queued)

	// The same driver can claim it again.
	suite.Require().NoError(suite.transition(ctx, orderID, driver, order.InDelivery))
}

// TestForbiddenTransitionLeavesNoTrace checks that a rejected request
// writes nothing: no status change, no ledger entry.
func (suite *UnitOfWorkIntegrationTestSuite) TestForbiddenTransitionLeavesNoTrace() {
	ctx := context.Background()
	chef := suite.actor("chef@200millas", kernel.ActorRoleChef)

	suite.reportAvailable(ctx, chef.ID(), staff.RoleChef)
	orderID := suite.createOrder(ctx)
	suite.assignWork(ctx, assignment.CategoryCooking)

	customer := suite.actor("customer-1", kernel.ActorRoleCustomer)
	err := suite.transition(ctx, orderID, customer, order.Packing)
	suite.Require().ErrorIs(err, errs.ErrForbidden)

	suite.Equal(order.Cooking.String(), suite.getOrder(ctx, orderID).Status)

	var steps int64
	suite.Require().NoError(suite.db.Model(&steprepo.StepDTO{}).Count(&steps).Error)
	suite.Equal(int64(3), steps)
}

// TestRollbackDiscardsWrites verifies transaction isolation at the unit of
// work level.
func (suite *UnitOfWorkIntegrationTestSuite) TestRollbackDiscardsWrites() {
	ctx := context.Background()

	worker, err := staff.NewStaffAvailability(
		"chef@200millas", suite.tenant(), staff.RoleChef, staff.StatusAvailable)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.StaffRepository().Add(ctx, worker))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err = suite.factory.Create().StaffRepository().Get(ctx, suite.tenant(), "chef@200millas")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

// TestTransitionEndpointReturnsOrderView drives a transition through the
// HTTP surface and checks the response carries the committed order, with
// the assignment changes the transition made, not just an acknowledgement.
func (suite *UnitOfWorkIntegrationTestSuite) TestTransitionEndpointReturnsOrderView() {
	ctx := context.Background()
	suite.reportAvailable(ctx, "chef@200millas", staff.RoleChef)
	orderID := suite.createOrder(ctx)
	suite.assignWork(ctx, assignment.CategoryCooking)

	server := httpin.NewServer(
		commands.NewCreateOrderCommandHandler(suite.uowFactory),
		commands.NewRequestTransitionCommandHandler(suite.uowFactory),
		commands.NewReportAvailabilityCommandHandler(suite.staffUowFactory),
		queries.NewGetOrderQueryHandler(suite.db),
		queries.NewGetOrdersQueryHandler(suite.db),
		queries.NewGetTimelineQueryHandler(suite.db),
		queries.NewGetDashboardMetricsQueryHandler(suite.db),
		queries.NewGetStaffAvailabilityQueryHandler(suite.db),
		queries.NewGetStaffPerformanceQueryHandler(suite.db),
	)
	e := echo.New()
	server.RegisterRoutes(e)

	req := httptest.NewRequest(http.MethodPost,
		"/api/v1/orders/"+orderID.String()+"/transition",
		strings.NewReader(`{"target_status":"packing"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("X-Tenant-ID", "200millas")
	req.Header.Set("X-Actor-ID", "chef@200millas")
	req.Header.Set("X-Actor-Role", "chef")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var view httpin.Order
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &view))
	suite.Equal(orderID.String(), view.ID)
	suite.Equal("packing", view.Status)
	suite.Require().NotNil(view.AssignedChef)
	suite.Equal("chef@200millas", *view.AssignedChef)
	suite.InDelta(29.99, view.TotalAmount, 0.001)
	suite.Len(view.Items, 2)
}

// TestStaffGuardRejectsStaleStatus checks that the registry write path
// carries the same conditional-update discipline as orders: a write guarded
// by a status the row no longer holds touches nothing.
func (suite *UnitOfWorkIntegrationTestSuite) TestStaffGuardRejectsStaleStatus() {
	ctx := context.Background()
	suite.reportAvailable(ctx, "driver@200millas", staff.RoleDriver)

	repo := staffrepo.NewGormStaffRepository(suite.db)
	worker, err := repo.Get(ctx, suite.tenant(), "driver@200millas")
	suite.Require().NoError(err)
	suite.Require().NoError(worker.Report(staff.StatusOffline))

	err = repo.Update(ctx, worker, staff.StatusBusy)
	suite.Require().ErrorIs(err, errs.ErrConcurrencyConflict)

	// The row is untouched; the correctly guarded write then lands.
	persisted, err := repo.Get(ctx, suite.tenant(), "driver@200millas")
	suite.Require().NoError(err)
	suite.Equal(staff.StatusAvailable, persisted.Status())

	suite.Require().NoError(repo.Update(ctx, worker, staff.StatusAvailable))
	persisted, err = repo.Get(ctx, suite.tenant(), "driver@200millas")
	suite.Require().NoError(err)
	suite.Equal(staff.StatusOffline, persisted.Status())
}

// TestEnqueueIsIdempotent checks that requeueing the same order and
// category leaves a single queue row.
func (suite *UnitOfWorkIntegrationTestSuite) TestEnqueueIsIdempotent() {
	ctx := context.Background()
	repo := assignmentrepo.NewGormAssignmentRepository(suite.db)

	request, err := assignment.NewRequest(
		kernel.NewUUID(), suite.tenant(), assignment.CategoryCooking, time.Now().UTC())
	suite.Require().NoError(err)

	suite.Require().NoError(repo.Add(ctx, request))
	suite.Require().NoError(repo.Add(ctx, request))

	var count int64
	suite.Require().NoError(suite.db.Model(&assignmentrepo.RequestDTO{}).Count(&count).Error)
	suite.Equal(int64(1), count)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}

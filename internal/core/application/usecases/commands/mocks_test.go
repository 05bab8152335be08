package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/m4r-ant/200millas-Backend/internal/core/application/usecases/commands"
	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/assignment"
	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/kernel"
	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/order"
	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/staff"
	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/timeline"
	"github.com/m4r-ant/200millas-Backend/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order, expectedStatus order.Status) error {
	args := m.Called(ctx, o, expectedStatus)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, tenantID kernel.TenantID, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockStaffRepository struct{ mock.Mock }

func (m *MockStaffRepository) Add(ctx context.Context, w *staff.StaffAvailability) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *MockStaffRepository) Update(ctx context.Context, w *staff.StaffAvailability, expectedStatus staff.Status) error {
	args := m.Called(ctx, w, expectedStatus)
	return args.Error(0)
}

func (m *MockStaffRepository) Get(ctx context.Context, tenantID kernel.TenantID, id string) (*staff.StaffAvailability, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*staff.StaffAvailability), args.Error(1)
}

func (m *MockStaffRepository) GetAllAvailableByRole(ctx context.Context, tenantID kernel.TenantID, role staff.Role) ([]*staff.StaffAvailability, error) {
	args := m.Called(ctx, tenantID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*staff.StaffAvailability), args.Error(1)
}

type MockStepRepository struct{ mock.Mock }

func (m *MockStepRepository) Add(ctx context.Context, s *timeline.WorkflowStep) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStepRepository) Update(ctx context.Context, s *timeline.WorkflowStep) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStepRepository) GetOpenStep(ctx context.Context, tenantID kernel.TenantID, orderID kernel.UUID) (*timeline.WorkflowStep, error) {
	args := m.Called(ctx, tenantID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*timeline.WorkflowStep), args.Error(1)
}

func (m *MockStepRepository) CountSteps(ctx context.Context, tenantID kernel.TenantID, orderID kernel.UUID) (int, error) {
	args := m.Called(ctx, tenantID, orderID)
	return args.Int(0), args.Error(1)
}

func (m *MockStepRepository) GetSteps(ctx context.Context, tenantID kernel.TenantID, orderID kernel.UUID) ([]*timeline.WorkflowStep, error) {
	args := m.Called(ctx, tenantID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*timeline.WorkflowStep), args.Error(1)
}

func (m *MockStepRepository) GetOpenStepsInStatusBefore(ctx context.Context, status order.Status, cutoff time.Time) ([]*timeline.WorkflowStep, error) {
	args := m.Called(ctx, status, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*timeline.WorkflowStep), args.Error(1)
}

type MockAssignmentRepository struct{ mock.Mock }

func (m *MockAssignmentRepository) Add(ctx context.Context, r *assignment.Request) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockAssignmentRepository) GetFirstPending(ctx context.Context, category assignment.Category) (*assignment.Request, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assignment.Request), args.Error(1)
}

func (m *MockAssignmentRepository) Remove(ctx context.Context, orderID kernel.UUID, category assignment.Category) error {
	args := m.Called(ctx, orderID, category)
	return args.Error(0)
}

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

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) StaffRepository() ports.StaffRepository {
	args := m.Called()
	return args.Get(0).(ports.StaffRepository)
}

func (m *MockUoW) StepRepository() ports.StepRepository {
	args := m.Called()
	return args.Get(0).(ports.StepRepository)
}

func (m *MockUoW) AssignmentRepository() ports.AssignmentRepository {
	args := m.Called()
	return args.Get(0).(ports.AssignmentRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockStaffUoW struct{ mock.Mock }

func (m *MockStaffUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStaffUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStaffUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStaffUoW) StaffRepository() ports.StaffRepository {
	args := m.Called()
	return args.Get(0).(ports.StaffRepository)
}

type MockStaffUoWFactory struct{ mock.Mock }

func (m *MockStaffUoWFactory) Create() commands.StaffUoW {
	args := m.Called()
	return args.Get(0).(commands.StaffUoW)
}

// wiredUoW sets up a MockUoW whose repository accessors always return the
// given mocks; call counts on the accessors are not asserted.
func wiredUoW(orderRepo *MockOrderRepository, staffRepo *MockStaffRepository, stepRepo *MockStepRepository, assignmentRepo *MockAssignmentRepository) *MockUoW {
	uow := new(MockUoW)
	uow.On("OrderRepository").Return(orderRepo).Maybe()
	uow.On("StaffRepository").Return(staffRepo).Maybe()
	uow.On("StepRepository").Return(stepRepo).Maybe()
	uow.On("AssignmentRepository").Return(assignmentRepo).Maybe()
	return uow
}

func testTenant(t *testing.T) kernel.TenantID {
	t.Helper()
	tenant, err := kernel.NewTenantID("200millas")
	require.NoError(t, err)
	return tenant
}

func testItems(t *testing.T) []order.Item {
	t.Helper()
	item, err := order.NewItem("sku-ceviche", "Ceviche Clasico", 1, 18.99)
	require.NoError(t, err)
	return []order.Item{item}
}

// orderInStatus builds an order advanced to the given status with chef/driver
// assigned where the status requires them.
func orderInStatus(t *testing.T, status order.Status, chefID, driverID string) *order.Order {
	t.Helper()

	var chef, driver *string
	if chefID != "" {
		chef = &chefID
	}
	if driverID != "" {
		driver = &driverID
	}

	aggregate, err := order.RestoreOrder(
		kernel.NewUUID(), testTenant(t), "customer-1", testItems(t),
		"Av. Larco 1301", "", status, chef, driver, 18.99, time.Now(),
	)
	require.NoError(t, err)
	return aggregate
}

func openStepFor(t *testing.T, aggregate *order.Order, stepNumber int, actor string) *timeline.WorkflowStep {
	t.Helper()
	step, err := timeline.NewWorkflowStep(
		aggregate.ID(), aggregate.TenantID(), stepNumber, aggregate.Status(),
		actor, time.Now().Add(-2*time.Minute), "")
	require.NoError(t, err)
	return step
}

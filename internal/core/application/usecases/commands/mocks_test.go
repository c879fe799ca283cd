package commands_test

import (
	"context"
	"testing"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/tenant"
	"orderflow/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, tenantID, orderID string) (*order.Order, error) {
	args := m.Called(ctx, tenantID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByPhone(ctx context.Context, phone kernel.Phone) ([]*order.Order, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetInFlight(ctx context.Context, tenantID string) ([]*order.Order, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockTenantRepository struct{ mock.Mock }

func (m *MockTenantRepository) Get(ctx context.Context, tenantID string) (*tenant.Tenant, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenant.Tenant), args.Error(1)
}

func (m *MockTenantRepository) GetByDomain(ctx context.Context, domain string) (*tenant.Tenant, error) {
	args := m.Called(ctx, domain)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenant.Tenant), args.Error(1)
}

func (m *MockTenantRepository) GetSecrets(ctx context.Context, tenantID string) (*tenant.Secrets, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenant.Secrets), args.Error(1)
}

func (m *MockTenantRepository) List(ctx context.Context) ([]*tenant.Tenant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*tenant.Tenant), args.Error(1)
}

// MockUoW satisfies both commands.UoW and commands.OrderUoW.
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

func (m *MockUoW) TenantRepository() ports.TenantRepository {
	args := m.Called()
	return args.Get(0).(ports.TenantRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Send(ctx context.Context, msg ports.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

type MockCourierClient struct{ mock.Mock }

func (m *MockCourierClient) Book(ctx context.Context, o *order.Order, secrets *tenant.Secrets) (string, error) {
	args := m.Called(ctx, o, secrets)
	return args.String(0), args.Error(1)
}

func (m *MockCourierClient) QueryStatus(ctx context.Context, trackingNumber string, secrets *tenant.Secrets) (string, error) {
	args := m.Called(ctx, trackingNumber, secrets)
	return args.String(0), args.Error(1)
}

type MockStorefrontClient struct{ mock.Mock }

func (m *MockStorefrontClient) UpdateOrderNote(ctx context.Context, tn *tenant.Tenant, secrets *tenant.Secrets, orderID, note string) error {
	args := m.Called(ctx, tn, secrets, orderID, note)
	return args.Error(0)
}

type MockCourierStatusObserver struct{ mock.Mock }

func (m *MockCourierStatusObserver) Handle(ctx context.Context, cmd commands.ObserveCourierStatusCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

// Shared fixtures for the handler tests.

func kernelZeroPhone() kernel.Phone {
	return kernel.Phone{}
}

func testCustomer() order.Customer {
	return order.Customer{
		Name:    "Ali",
		Phone:   kernel.NewPhone("0300-1234567", "92"),
		Address: "12 Mall Road",
		City:    "Lahore",
	}
}

func newPendingOrder(t *testing.T) *order.Order {
	t.Helper()

	o, err := order.NewOrder("tn-1", "ord-1", "#1001",
		testCustomer(),
		order.Amount{Total: "1500", Currency: "PKR"},
		order.Product{Name: "Shirt", Quantity: 2},
		time.Now().Add(-time.Hour),
	)
	require.NoError(t, err)

	return o
}

func newConfirmedOrder(t *testing.T) *order.Order {
	t.Helper()

	o := newPendingOrder(t)
	require.NoError(t, o.Confirm(time.Now().Add(-30*time.Minute)))

	return o
}

func newTestTenant(t *testing.T) *tenant.Tenant {
	t.Helper()

	tn, err := tenant.NewTenant("tn-1", "ali-store.myshopify.com", "Ali Store", "92")
	require.NoError(t, err)

	return tn
}

func testSecrets() *tenant.Secrets {
	return &tenant.Secrets{
		WebhookSecret:   "whsec",
		PlatformToken:   "shptoken",
		CourierAPIKey:   "courierkey",
		AutoBookCourier: true,
	}
}

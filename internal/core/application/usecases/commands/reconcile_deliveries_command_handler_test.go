package commands_test

import (
	"errors"
	"log/slog"
	"testing"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/tenant"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewReconcileDeliveriesCommand(t *testing.T) {
	cmd := commands.NewReconcileDeliveriesCommand()
	require.NoError(t, cmd.Validate())

	var zero commands.ReconcileDeliveriesCommand
	require.ErrorIs(t, zero.Validate(), commands.ErrReconcileDeliveriesCommandIsNotConstructed)
}

func TestReconcileDeliveriesCommandHandler_Handle_SweepsTenants(t *testing.T) {
	ctx := t.Context()

	tn1 := newTestTenant(t)
	tn2, err := tenant.NewTenant("tn-2", "other-store", "Other Store", "92")
	require.NoError(t, err)

	o := newBookedOrder(t)
	o.RecordCourierStatus("In Transit")

	listUow := new(MockUoW)
	listTenantRepo := new(MockTenantRepository)
	mock.InOrder(
		listUow.On("Begin", ctx).Return(nil).Once(),
		listUow.On("TenantRepository").Return(listTenantRepo).Once(),
		listTenantRepo.On("List", ctx).Return([]*tenant.Tenant{tn1, tn2}, nil).Once(),
		listUow.On("Rollback", ctx).Return(nil).Once(),
	)

	tn1Uow := new(MockUoW)
	tn1TenantRepo := new(MockTenantRepository)
	tn1OrderRepo := new(MockOrderRepository)
	mock.InOrder(
		tn1Uow.On("Begin", ctx).Return(nil).Once(),
		tn1Uow.On("TenantRepository").Return(tn1TenantRepo).Once(),
		tn1TenantRepo.On("GetSecrets", ctx, "tn-1").Return(testSecrets(), nil).Once(),
		tn1Uow.On("OrderRepository").Return(tn1OrderRepo).Once(),
		tn1OrderRepo.On("GetInFlight", ctx, "tn-1").Return([]*order.Order{o}, nil).Once(),
		tn1Uow.On("Rollback", ctx).Return(nil).Once(),
	)

	tn2Uow := new(MockUoW)
	tn2TenantRepo := new(MockTenantRepository)
	mock.InOrder(
		tn2Uow.On("Begin", ctx).Return(nil).Once(),
		tn2Uow.On("TenantRepository").Return(tn2TenantRepo).Once(),
		tn2TenantRepo.On("GetSecrets", ctx, "tn-2").
			Return(nil, errors.New("secrets unavailable")).Once(),
		tn2Uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(listUow).Once()
	factory.On("Create").Return(tn1Uow).Once()
	factory.On("Create").Return(tn2Uow).Once()

	courier := new(MockCourierClient)
	courier.On("QueryStatus", mock.Anything, "TRK1", mock.Anything).Return("Delivered", nil).Once()

	observer := new(MockCourierStatusObserver)
	observer.On("Handle", ctx, mock.MatchedBy(func(cmd commands.ObserveCourierStatusCommand) bool {
		return cmd.TenantID() == "tn-1" && cmd.OrderID() == "ord-1" &&
			cmd.ObservedStatus() == "Delivered"
	})).Return(nil).Once()

	h := commands.NewReconcileDeliveriesCommandHandler(factory, courier, observer, slog.Default())
	require.NoError(t, h.Handle(ctx, commands.NewReconcileDeliveriesCommand()))
	mock.AssertExpectationsForObjects(t,
		listUow, listTenantRepo, tn1Uow, tn1TenantRepo, tn1OrderRepo,
		tn2Uow, tn2TenantRepo, factory, courier, observer)
}

func TestReconcileDeliveriesCommandHandler_Handle_UnchangedStatusNotDispatched(t *testing.T) {
	ctx := t.Context()

	tn1 := newTestTenant(t)
	o := newBookedOrder(t)
	o.RecordCourierStatus("In Transit")

	listUow := new(MockUoW)
	listTenantRepo := new(MockTenantRepository)
	listUow.On("Begin", ctx).Return(nil).Once()
	listUow.On("TenantRepository").Return(listTenantRepo).Once()
	listTenantRepo.On("List", ctx).Return([]*tenant.Tenant{tn1}, nil).Once()
	listUow.On("Rollback", ctx).Return(nil).Once()

	tn1Uow := new(MockUoW)
	tn1TenantRepo := new(MockTenantRepository)
	tn1OrderRepo := new(MockOrderRepository)
	tn1Uow.On("Begin", ctx).Return(nil).Once()
	tn1Uow.On("TenantRepository").Return(tn1TenantRepo).Once()
	tn1TenantRepo.On("GetSecrets", ctx, "tn-1").Return(testSecrets(), nil).Once()
	tn1Uow.On("OrderRepository").Return(tn1OrderRepo).Once()
	tn1OrderRepo.On("GetInFlight", ctx, "tn-1").Return([]*order.Order{o}, nil).Once()
	tn1Uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(listUow).Once()
	factory.On("Create").Return(tn1Uow).Once()

	courier := new(MockCourierClient)
	courier.On("QueryStatus", mock.Anything, "TRK1", mock.Anything).Return("In Transit", nil).Once()

	observer := new(MockCourierStatusObserver)

	h := commands.NewReconcileDeliveriesCommandHandler(factory, courier, observer, slog.Default())
	require.NoError(t, h.Handle(ctx, commands.NewReconcileDeliveriesCommand()))
	observer.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	mock.AssertExpectationsForObjects(t, factory, courier)
}

func TestReconcileDeliveriesCommandHandler_Handle_LookupFailureSkipsOrder(t *testing.T) {
	ctx := t.Context()

	tn1 := newTestTenant(t)
	o := newBookedOrder(t)

	listUow := new(MockUoW)
	listTenantRepo := new(MockTenantRepository)
	listUow.On("Begin", ctx).Return(nil).Once()
	listUow.On("TenantRepository").Return(listTenantRepo).Once()
	listTenantRepo.On("List", ctx).Return([]*tenant.Tenant{tn1}, nil).Once()
	listUow.On("Rollback", ctx).Return(nil).Once()

	tn1Uow := new(MockUoW)
	tn1TenantRepo := new(MockTenantRepository)
	tn1OrderRepo := new(MockOrderRepository)
	tn1Uow.On("Begin", ctx).Return(nil).Once()
	tn1Uow.On("TenantRepository").Return(tn1TenantRepo).Once()
	tn1TenantRepo.On("GetSecrets", ctx, "tn-1").Return(testSecrets(), nil).Once()
	tn1Uow.On("OrderRepository").Return(tn1OrderRepo).Once()
	tn1OrderRepo.On("GetInFlight", ctx, "tn-1").Return([]*order.Order{o}, nil).Once()
	tn1Uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(listUow).Once()
	factory.On("Create").Return(tn1Uow).Once()

	courier := new(MockCourierClient)
	courier.On("QueryStatus", mock.Anything, "TRK1", mock.Anything).
		Return("", errors.New("courier timeout")).Once()

	observer := new(MockCourierStatusObserver)

	h := commands.NewReconcileDeliveriesCommandHandler(factory, courier, observer, slog.Default())
	require.NoError(t, h.Handle(ctx, commands.NewReconcileDeliveriesCommand()))
	observer.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	mock.AssertExpectationsForObjects(t, factory, courier)
}

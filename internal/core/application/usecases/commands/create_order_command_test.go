package commands_test

import (
	"testing"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	customer := testCustomer()
	cmd, err := commands.NewCreateOrderCommand("tn-1", "ord-1", "#1001",
		customer,
		order.Amount{Total: "1500", Currency: "PKR"},
		order.Product{Name: "Shirt", Quantity: 2},
	)
	require.NoError(t, err)
	assert.Equal(t, "tn-1", cmd.TenantID())
	assert.Equal(t, "ord-1", cmd.OrderID())
	assert.Equal(t, "#1001", cmd.OrderName())
	assert.Equal(t, customer, cmd.Customer())
	assert.Equal(t, "PKR", cmd.Amount().Currency)
	assert.Equal(t, 2, cmd.Product().Quantity)
	require.NoError(t, cmd.Validate())
}

func TestNewCreateOrderCommand_MissingIdentifiers(t *testing.T) {
	_, err := commands.NewCreateOrderCommand("", "", "",
		testCustomer(), order.Amount{}, order.Product{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestCreateOrderCommand_NotConstructed(t *testing.T) {
	var cmd commands.CreateOrderCommand
	err := cmd.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
}

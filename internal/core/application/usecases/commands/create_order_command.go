package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// CreateOrderCommand is the canonical OrderCreated event: a storefront order
// webhook reduced to the fields the state machine needs. The customer phone
// is expected to be normalized already (the adapter knows the tenant's
// country code).
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	tenantID  string
	orderID   string
	orderName string
	customer  order.Customer
	amount    order.Amount
	product   order.Product

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command for a newly reported storefront order.
// Tenant id, order id and order name are required.
func NewCreateOrderCommand(
	tenantID, orderID, orderName string,
	customer order.Customer,
	amount order.Amount,
	product order.Product,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		customer: customer,
		amount:   amount,
		product:  product,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTenantID(tenantID),
		cmd.setOrderID(orderID),
		cmd.setOrderName(orderName),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// TenantID returns the owning tenant's identifier.
func (c CreateOrderCommand) TenantID() string {
	return c.tenantID
}

// OrderID returns the platform-assigned order identifier.
func (c CreateOrderCommand) OrderID() string {
	return c.orderID
}

// OrderName returns the human-readable order reference.
func (c CreateOrderCommand) OrderName() string {
	return c.orderName
}

// Customer returns the order recipient.
func (c CreateOrderCommand) Customer() order.Customer {
	return c.customer
}

// Amount returns the order total.
func (c CreateOrderCommand) Amount() order.Amount {
	return c.amount
}

// Product returns the primary line-item summary.
func (c CreateOrderCommand) Product() order.Product {
	return c.product
}

func (c *CreateOrderCommand) setTenantID(tenantID string) error {
	if tenantID == "" {
		return errs.NewValueIsRequiredError("tenantID")
	}
	c.tenantID = tenantID
	return nil
}

func (c *CreateOrderCommand) setOrderID(orderID string) error {
	if orderID == "" {
		return errs.NewValueIsRequiredError("orderID")
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setOrderName(orderName string) error {
	if orderName == "" {
		return errs.NewValueIsRequiredError("orderName")
	}
	c.orderName = orderName
	return nil
}

package commands

import (
	"errors"

	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var (
	ErrObserveCourierStatusCommandIsNotConstructed = errors.New(
		"ObserveCourierStatusCommand must be created via NewObserveCourierStatusCommand constructor",
	)
)

// ObserveCourierStatusCommand is the canonical CourierStatusObserved event:
// the reconciliation sweep read one shipment's current status string at the
// courier.
type ObserveCourierStatusCommand struct { //nolint:recvcheck //using for validation
	tenantID       string
	orderID        string
	observedStatus string

	guard guard.ConstructorGuard
}

// NewObserveCourierStatusCommand creates a command for one observed courier
// status. All fields are required.
func NewObserveCourierStatusCommand(tenantID, orderID, observedStatus string) (ObserveCourierStatusCommand, error) {
	cmd := ObserveCourierStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTenantID(tenantID),
		cmd.setOrderID(orderID),
		cmd.setObservedStatus(observedStatus),
	); err != nil {
		return ObserveCourierStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ObserveCourierStatusCommand) Validate() error {
	return c.guard.Validate(ErrObserveCourierStatusCommandIsNotConstructed)
}

// TenantID returns the owning tenant's identifier.
func (c ObserveCourierStatusCommand) TenantID() string {
	return c.tenantID
}

// OrderID returns the platform-assigned order identifier.
func (c ObserveCourierStatusCommand) OrderID() string {
	return c.orderID
}

// ObservedStatus returns the courier's status string as observed.
func (c ObserveCourierStatusCommand) ObservedStatus() string {
	return c.observedStatus
}

func (c *ObserveCourierStatusCommand) setTenantID(tenantID string) error {
	if tenantID == "" {
		return errs.NewValueIsRequiredError("tenantID")
	}
	c.tenantID = tenantID
	return nil
}

func (c *ObserveCourierStatusCommand) setOrderID(orderID string) error {
	if orderID == "" {
		return errs.NewValueIsRequiredError("orderID")
	}
	c.orderID = orderID
	return nil
}

func (c *ObserveCourierStatusCommand) setObservedStatus(observedStatus string) error {
	if observedStatus == "" {
		return errs.NewValueIsRequiredError("observedStatus")
	}
	c.observedStatus = observedStatus
	return nil
}

package commands

import (
	"errors"

	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var (
	ErrReportFulfillmentCommandIsNotConstructed = errors.New(
		"ReportFulfillmentCommand must be created via NewReportFulfillmentCommand constructor",
	)
)

// ReportFulfillmentCommand is the canonical FulfillmentReported event: the
// storefront marked the order fulfilled, optionally with a courier tracking
// number assigned platform-side.
type ReportFulfillmentCommand struct { //nolint:recvcheck //using for validation
	tenantID       string
	orderID        string
	trackingNumber string

	guard guard.ConstructorGuard
}

// NewReportFulfillmentCommand creates a command for a storefront fulfillment
// event. The tracking number is optional.
func NewReportFulfillmentCommand(tenantID, orderID, trackingNumber string) (ReportFulfillmentCommand, error) {
	cmd := ReportFulfillmentCommand{
		trackingNumber: trackingNumber,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTenantID(tenantID),
		cmd.setOrderID(orderID),
	); err != nil {
		return ReportFulfillmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportFulfillmentCommand) Validate() error {
	return c.guard.Validate(ErrReportFulfillmentCommandIsNotConstructed)
}

// TenantID returns the owning tenant's identifier.
func (c ReportFulfillmentCommand) TenantID() string {
	return c.tenantID
}

// OrderID returns the platform-assigned order identifier.
func (c ReportFulfillmentCommand) OrderID() string {
	return c.orderID
}

// TrackingNumber returns the platform-assigned tracking number, if any.
func (c ReportFulfillmentCommand) TrackingNumber() string {
	return c.trackingNumber
}

func (c *ReportFulfillmentCommand) setTenantID(tenantID string) error {
	if tenantID == "" {
		return errs.NewValueIsRequiredError("tenantID")
	}
	c.tenantID = tenantID
	return nil
}

func (c *ReportFulfillmentCommand) setOrderID(orderID string) error {
	if orderID == "" {
		return errs.NewValueIsRequiredError("orderID")
	}
	c.orderID = orderID
	return nil
}

package queries

import (
	"errors"
	"time"

	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var (
	ErrGetActiveOrdersQueryIsNotConstructed = errors.New(
		"GetActiveOrdersQuery must be created via NewGetActiveOrdersQuery constructor",
	)
)

// GetActiveOrdersQuery retrieves a tenant's orders that are not yet in a
// terminal status, for the operator dashboard.
type GetActiveOrdersQuery struct {
	tenantID string

	guard guard.ConstructorGuard
}

// NewGetActiveOrdersQuery creates a query scoped to one tenant.
func NewGetActiveOrdersQuery(tenantID string) (GetActiveOrdersQuery, error) {
	if tenantID == "" {
		return GetActiveOrdersQuery{}, errs.NewValueIsRequiredError("tenantID")
	}

	return GetActiveOrdersQuery{
		tenantID: tenantID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrdersQueryIsNotConstructed)
}

// TenantID returns the tenant whose orders are requested.
func (q GetActiveOrdersQuery) TenantID() string {
	return q.tenantID
}

// GetActiveOrdersQueryResponse is one in-progress order as the dashboard
// shows it.
type GetActiveOrdersQueryResponse struct {
	OrderID        string     `json:"order_id"`
	OrderName      string     `json:"order_name"`
	CustomerName   string     `json:"customer_name"`
	Status         string     `json:"status"`
	TrackingNumber string     `json:"tracking_number,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	LastReplyAt    *time.Time `json:"last_reply_at,omitempty"`
}

package queries

import (
	"context"

	"orderflow/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetActiveOrdersQueryHandler reads in-progress orders straight from the
// database, bypassing aggregate reconstruction. The read side only needs the
// dashboard columns.
type GetActiveOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveOrdersQueryHandler creates a handler for active order queries.
func NewGetActiveOrdersQueryHandler(db *gorm.DB) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{db: db}
}

// Handle returns the tenant's non-terminal orders, newest first.
func (h GetActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrdersQuery,
) ([]GetActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetActiveOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			customer_name,
			status,
			tracking_number,
			created_at,
			last_reply_at
		FROM orders
		WHERE tenant_id = ?
		  AND status NOT IN (?, ?)
		ORDER BY created_at DESC
	`, query.TenantID(), order.Cancelled.String(), order.Delivered.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetActiveOrdersQueryResponse

		err = rows.Scan(
			&resp.OrderID,
			&resp.OrderName,
			&resp.CustomerName,
			&resp.Status,
			&resp.TrackingNumber,
			&resp.CreatedAt,
			&resp.LastReplyAt,
		)
		if err != nil {
			return nil, err
		}

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

// Package orderrepo persists order aggregates. It maps between the domain
// aggregate and the relational row and keeps the write surface partial: only
// the columns the state machine mutates are written on update.
package orderrepo

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// OrderDTO is the database row for one order. The primary key is the
// (tenant_id, id) pair; order ids are only unique per tenant.
type OrderDTO struct {
	TenantID string `gorm:"primaryKey;size:64"`
	ID       string `gorm:"primaryKey;size:64"`
	Name     string `gorm:"size:64"`

	CustomerName    string
	CustomerPhone   string `gorm:"size:32;index"`
	CustomerAddress string
	CustomerCity    string

	AmountTotal     string `gorm:"size:32"`
	AmountCurrency  string `gorm:"size:8"`
	ProductName     string
	ProductQuantity int

	Status string `gorm:"size:32;index"`

	CreatedAt         time.Time
	ConfirmedAt       *time.Time
	CancelledAt       *time.Time
	FulfilledAt       *time.Time
	DeliveredAt       *time.Time
	LastMessageSentAt *time.Time
	LastReplyAt       *time.Time

	ConfirmationSent bool
	FulfilledSent    bool
	ReplyAckSent     bool

	TrackingNumber    string `gorm:"size:64;index"`
	CourierLastStatus string `gorm:"size:64"`
	BookedAt          *time.Time
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order aggregate to its database row.
func fromDomain(aggregate *order.Order) OrderDTO {
	customer := aggregate.Customer()
	amount := aggregate.Amount()
	product := aggregate.Product()
	timeline := aggregate.Timeline()
	flags := aggregate.Flags()
	courier := aggregate.Courier()

	return OrderDTO{
		TenantID: aggregate.TenantID(),
		ID:       aggregate.ID(),
		Name:     aggregate.Name(),

		CustomerName:    customer.Name,
		CustomerPhone:   customer.Phone.String(),
		CustomerAddress: customer.Address,
		CustomerCity:    customer.City,

		AmountTotal:     amount.Total,
		AmountCurrency:  amount.Currency,
		ProductName:     product.Name,
		ProductQuantity: product.Quantity,

		Status: aggregate.Status().String(),

		CreatedAt:         timeline.CreatedAt,
		ConfirmedAt:       timeline.ConfirmedAt,
		CancelledAt:       timeline.CancelledAt,
		FulfilledAt:       timeline.FulfilledAt,
		DeliveredAt:       timeline.DeliveredAt,
		LastMessageSentAt: timeline.LastMessageSentAt,
		LastReplyAt:       timeline.LastReplyAt,

		ConfirmationSent: flags.ConfirmationSent,
		FulfilledSent:    flags.FulfilledSent,
		ReplyAckSent:     flags.ReplyAckSent,

		TrackingNumber:    courier.TrackingNumber,
		CourierLastStatus: courier.LastStatus,
		BookedAt:          courier.BookedAt,
	}
}

// mutableColumns returns the columns the state machine is allowed to change
// after creation. Identity, customer and amount columns are immutable, so a
// late webhook can never overwrite them.
func mutableColumns(dto OrderDTO) map[string]interface{} {
	return map[string]interface{}{
		"status":               dto.Status,
		"confirmed_at":         dto.ConfirmedAt,
		"cancelled_at":         dto.CancelledAt,
		"fulfilled_at":         dto.FulfilledAt,
		"delivered_at":         dto.DeliveredAt,
		"last_message_sent_at": dto.LastMessageSentAt,
		"last_reply_at":        dto.LastReplyAt,
		"confirmation_sent":    dto.ConfirmationSent,
		"fulfilled_sent":       dto.FulfilledSent,
		"reply_ack_sent":       dto.ReplyAckSent,
		"tracking_number":      dto.TrackingNumber,
		"courier_last_status":  dto.CourierLastStatus,
		"booked_at":            dto.BookedAt,
	}
}

// toDomain converts a database row back to an order aggregate.
func toDomain(dto OrderDTO) (*order.Order, error) {
	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		dto.TenantID, dto.ID, dto.Name,
		order.Customer{
			Name:    dto.CustomerName,
			Phone:   kernel.RestorePhone(dto.CustomerPhone),
			Address: dto.CustomerAddress,
			City:    dto.CustomerCity,
		},
		order.Amount{Total: dto.AmountTotal, Currency: dto.AmountCurrency},
		order.Product{Name: dto.ProductName, Quantity: dto.ProductQuantity},
		status,
		order.Timeline{
			CreatedAt:         dto.CreatedAt,
			ConfirmedAt:       dto.ConfirmedAt,
			CancelledAt:       dto.CancelledAt,
			FulfilledAt:       dto.FulfilledAt,
			DeliveredAt:       dto.DeliveredAt,
			LastMessageSentAt: dto.LastMessageSentAt,
			LastReplyAt:       dto.LastReplyAt,
		},
		order.NotificationFlags{
			ConfirmationSent: dto.ConfirmationSent,
			FulfilledSent:    dto.FulfilledSent,
			ReplyAckSent:     dto.ReplyAckSent,
		},
		order.CourierInfo{
			TrackingNumber: dto.TrackingNumber,
			LastStatus:     dto.CourierLastStatus,
			BookedAt:       dto.BookedAt,
		},
	)
}

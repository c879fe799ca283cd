// Package courier books shipments and reads shipment status at the courier's
// REST API. Credentials are per tenant and passed on every call.
package courier

import (
	"context"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/tenant"
	"orderflow/internal/pkg/errs"

	"github.com/go-resty/resty/v2"
)

const defaultTimeout = 15 * time.Second

// Client implements ports.CourierClient.
type Client struct {
	http *resty.Client
}

// NewClient creates a courier client for the given API root.
func NewClient(baseURL string) (*Client, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}

	http := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(defaultTimeout).
		SetHeader("Content-Type", "application/json")

	return &Client{http: http}, nil
}

type bookingRequest struct {
	OrderRef         string `json:"order_ref"`
	ConsigneeName    string `json:"consignee_name"`
	ConsigneePhone   string `json:"consignee_phone"`
	ConsigneeAddress string `json:"consignee_address"`
	ConsigneeCity    string `json:"consignee_city"`
	CollectionAmount string `json:"collection_amount"`
	Pieces           int    `json:"pieces"`
	ProductDetail    string `json:"product_detail"`
}

type bookingResponse struct {
	TrackingNumber string `json:"tracking_number"`
	Message        string `json:"message"`
}

type trackingResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Book creates a shipment for the order and returns its tracking number.
func (c *Client) Book(ctx context.Context, aggregate *order.Order, secrets *tenant.Secrets) (string, error) {
	if err := aggregate.Validate(); err != nil {
		return "", err
	}
	if secrets.CourierAPIKey == "" {
		return "", errs.NewValueIsRequiredError("courierAPIKey")
	}

	customer := aggregate.Customer()
	req := bookingRequest{
		OrderRef:         aggregate.Name(),
		ConsigneeName:    customer.Name,
		ConsigneePhone:   customer.Phone.String(),
		ConsigneeAddress: customer.Address,
		ConsigneeCity:    customer.City,
		CollectionAmount: aggregate.Amount().Total,
		Pieces:           aggregate.Product().Quantity,
		ProductDetail:    aggregate.Product().Name,
	}

	var result bookingResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(secrets.CourierAPIKey).
		SetBody(req).
		SetResult(&result).
		SetError(&result).
		Post("/bookings")
	if err != nil {
		return "", fmt.Errorf("courier booking: %w", err)
	}

	if resp.IsError() {
		return "", fmt.Errorf("courier booking: status %d: %s",
			resp.StatusCode(), result.Message)
	}

	if result.TrackingNumber == "" {
		return "", fmt.Errorf("courier booking: no tracking number in response")
	}

	return result.TrackingNumber, nil
}

// QueryStatus returns the courier's current status string for a shipment.
func (c *Client) QueryStatus(ctx context.Context, trackingNumber string, secrets *tenant.Secrets) (string, error) {
	if trackingNumber == "" {
		return "", errs.NewValueIsRequiredError("trackingNumber")
	}
	if secrets.CourierAPIKey == "" {
		return "", errs.NewValueIsRequiredError("courierAPIKey")
	}

	var result trackingResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(secrets.CourierAPIKey).
		SetResult(&result).
		SetError(&result).
		SetPathParam("trackingNumber", trackingNumber).
		Get("/shipments/{trackingNumber}")
	if err != nil {
		return "", fmt.Errorf("courier tracking: %w", err)
	}

	if resp.IsError() {
		return "", fmt.Errorf("courier tracking: status %d: %s",
			resp.StatusCode(), result.Message)
	}

	return result.Status, nil
}

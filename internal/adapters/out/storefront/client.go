// Package storefront talks to the commerce platform's admin API on behalf of
// a tenant, using the tenant's own access token.
package storefront

import (
	"context"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/tenant"
	"orderflow/internal/pkg/errs"

	"github.com/go-resty/resty/v2"
)

const (
	defaultTimeout = 15 * time.Second
	apiVersion     = "2024-01"
)

// Client implements ports.StorefrontClient. Requests go to the tenant's own
// shop domain; baseURLOverride redirects all of them to one host, which tests
// and self-hosted platforms use.
type Client struct {
	http            *resty.Client
	baseURLOverride string
}

// NewClient creates a storefront admin API client. Pass an empty override in
// production.
func NewClient(baseURLOverride string) *Client {
	http := resty.New().
		SetTimeout(defaultTimeout).
		SetHeader("Content-Type", "application/json")

	return &Client{http: http, baseURLOverride: baseURLOverride}
}

type orderNoteUpdate struct {
	Order orderNote `json:"order"`
}

type orderNote struct {
	ID   string `json:"id"`
	Note string `json:"note"`
}

type apiError struct {
	Errors any `json:"errors"`
}

// UpdateOrderNote records a note on the platform-side order.
func (c *Client) UpdateOrderNote(ctx context.Context, tn *tenant.Tenant, secrets *tenant.Secrets, orderID, note string) error {
	if err := tn.Validate(); err != nil {
		return err
	}
	if secrets.PlatformToken == "" {
		return errs.NewValueIsRequiredError("platformToken")
	}
	if orderID == "" {
		return errs.NewValueIsRequiredError("orderID")
	}

	var respErr apiError
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("X-Shopify-Access-Token", secrets.PlatformToken).
		SetBody(orderNoteUpdate{Order: orderNote{ID: orderID, Note: note}}).
		SetError(&respErr).
		Put(c.orderURL(tn.Domain(), orderID))
	if err != nil {
		return fmt.Errorf("storefront note update: %w", err)
	}

	if resp.IsError() {
		return fmt.Errorf("storefront note update: status %d: %v",
			resp.StatusCode(), respErr.Errors)
	}

	return nil
}

func (c *Client) orderURL(domain, orderID string) string {
	base := c.baseURLOverride
	if base == "" {
		base = fmt.Sprintf("https://%s.myshopify.com", domain)
	}

	return fmt.Sprintf("%s/admin/api/%s/orders/%s.json", base, apiVersion, orderID)
}

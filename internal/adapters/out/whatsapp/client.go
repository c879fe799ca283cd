// Package whatsapp sends templated customer messages through the WhatsApp
// Cloud API.
package whatsapp

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"

	"github.com/go-resty/resty/v2"
)

const defaultTimeout = 15 * time.Second

// Client implements ports.Notifier against the WhatsApp Cloud API.
// One client serves all tenants; messages go out from a single platform
// number.
type Client struct {
	http         *resty.Client
	languageCode string
}

// NewClient creates a WhatsApp client. baseURL is the phone-number-scoped API
// root (".../v18.0/<phone_number_id>"); token is the platform access token.
func NewClient(baseURL, token string) (*Client, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}
	if token == "" {
		return nil, errs.NewValueIsRequiredError("token")
	}

	http := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(token).
		SetTimeout(defaultTimeout).
		SetHeader("Content-Type", "application/json")

	return &Client{http: http, languageCode: "en"}, nil
}

type templatePayload struct {
	MessagingProduct string          `json:"messaging_product"`
	To               string          `json:"to"`
	Type             string          `json:"type"`
	Template         templateSection `json:"template"`
}

type templateSection struct {
	Name       string      `json:"name"`
	Language   language    `json:"language"`
	Components []component `json:"components"`
}

type language struct {
	Code string `json:"code"`
}

type component struct {
	Type       string      `json:"type"`
	SubType    string      `json:"sub_type,omitempty"`
	Index      string      `json:"index,omitempty"`
	Parameters []parameter `json:"parameters"`
}

type parameter struct {
	Type    string `json:"type"`
	Text    string `json:"text,omitempty"`
	Payload string `json:"payload,omitempty"`
}

type sendError struct {
	Error struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// Send delivers one templated message. Quick-reply actions map to template
// button components; their payloads come back verbatim in the customer's
// reply.
func (c *Client) Send(ctx context.Context, msg ports.Message) error {
	if msg.Phone.IsZero() {
		return errs.NewValueIsRequiredError("phone")
	}

	payload := templatePayload{
		MessagingProduct: "whatsapp",
		To:               msg.Phone.String(),
		Type:             "template",
		Template: templateSection{
			Name:       msg.Template,
			Language:   language{Code: c.languageCode},
			Components: buildComponents(msg),
		},
	}

	var apiErr sendError
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		SetError(&apiErr).
		Post("/messages")
	if err != nil {
		return fmt.Errorf("whatsapp send: %w", err)
	}

	if resp.IsError() {
		return fmt.Errorf("whatsapp send: status %d: %s",
			resp.StatusCode(), apiErr.Error.Message)
	}

	return nil
}

func buildComponents(msg ports.Message) []component {
	components := make([]component, 0, 1+len(msg.Actions))

	if len(msg.Params) > 0 {
		body := component{Type: "body", Parameters: make([]parameter, 0, len(msg.Params))}
		for _, p := range msg.Params {
			body.Parameters = append(body.Parameters, parameter{Type: "text", Text: p})
		}
		components = append(components, body)
	}

	for i, action := range msg.Actions {
		components = append(components, component{
			Type:    "button",
			SubType: "quick_reply",
			Index:   strconv.Itoa(i),
			Parameters: []parameter{
				{Type: "payload", Payload: action.ID},
			},
		})
	}

	if msg.LinkURL != "" {
		components = append(components, component{
			Type:    "button",
			SubType: "url",
			Index:   strconv.Itoa(len(msg.Actions)),
			Parameters: []parameter{
				{Type: "text", Text: msg.LinkURL},
			},
		})
	}

	return components
}

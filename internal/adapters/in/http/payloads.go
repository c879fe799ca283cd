package http

import (
	"encoding/json"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// orderWebhookPayload is the storefront's order creation webhook body, reduced
// to the fields the state machine needs.
type orderWebhookPayload struct {
	ID         json.Number `json:"id"`
	Name       string      `json:"name"`
	TotalPrice string      `json:"total_price"`
	Currency   string      `json:"currency"`
	Phone      string      `json:"phone"`

	Customer struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Phone     string `json:"phone"`

		DefaultAddress struct {
			Address1 string `json:"address1"`
			City     string `json:"city"`
		} `json:"default_address"`
	} `json:"customer"`

	LineItems []struct {
		Name     string `json:"name"`
		Quantity int    `json:"quantity"`
	} `json:"line_items"`
}

// toCreateOrderCommand maps the webhook body to the canonical event. The
// customer phone is taken from the customer record first, then the top-level
// order phone, and normalized with the tenant's country code.
func (p orderWebhookPayload) toCreateOrderCommand(tenantID, countryCode string) (commands.CreateOrderCommand, error) {
	rawPhone := p.Customer.Phone
	if rawPhone == "" {
		rawPhone = p.Phone
	}

	name := p.Customer.FirstName
	if p.Customer.LastName != "" {
		if name != "" {
			name += " "
		}
		name += p.Customer.LastName
	}

	product := order.Product{}
	if len(p.LineItems) > 0 {
		product.Name = p.LineItems[0].Name
		product.Quantity = p.LineItems[0].Quantity
	}

	return commands.NewCreateOrderCommand(
		tenantID, p.ID.String(), p.Name,
		order.Customer{
			Name:    name,
			Phone:   kernel.NewPhone(rawPhone, countryCode),
			Address: p.Customer.DefaultAddress.Address1,
			City:    p.Customer.DefaultAddress.City,
		},
		order.Amount{Total: p.TotalPrice, Currency: p.Currency},
		product,
	)
}

// fulfillmentWebhookPayload is the storefront's fulfillment webhook body.
type fulfillmentWebhookPayload struct {
	OrderID        json.Number `json:"order_id"`
	Status         string      `json:"status"`
	TrackingNumber string      `json:"tracking_number"`
}

// messagesWebhookPayload is the WhatsApp Cloud API inbound envelope.
type messagesWebhookPayload struct {
	Entry []struct {
		Changes []struct {
			Value struct {
				Messages []inboundMessage `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

type inboundMessage struct {
	From string `json:"from"`
	Type string `json:"type"`

	Text struct {
		Body string `json:"body"`
	} `json:"text"`

	Button struct {
		Payload string `json:"payload"`
		Text    string `json:"text"`
	} `json:"button"`

	Interactive struct {
		ButtonReply struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		} `json:"button_reply"`
	} `json:"interactive"`
}

// toProcessReplyCommand maps one inbound message to the canonical reply
// event. Button payloads carry the embedded order reference; everything else
// dispatches with no hints and takes the phone-lookup path.
func (m inboundMessage) toProcessReplyCommand() (commands.ProcessReplyCommand, error) {
	payload := m.Button.Payload
	if payload == "" {
		payload = m.Interactive.ButtonReply.ID
	}

	phone := kernel.NewPhone(m.From, "")

	if action, tenantID, orderID, ok := commands.ParseReplyActionPayload(payload); ok {
		return commands.NewProcessReplyCommand(phone, action, tenantID, orderID)
	}

	return commands.NewProcessReplyCommand(phone, "", "", "")
}

// Package http is the inbound webhook surface. Every webhook endpoint
// acknowledges with 200 before processing completes: the payload is verified
// and parsed synchronously, then handed to the command handlers on a
// background goroutine so provider retry timers never see slow downstreams.
package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	nethttp "net/http"
	"sync"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/ports"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// asyncTimeout bounds background processing of one webhook event.
const asyncTimeout = 30 * time.Second

// Dispatch targets. Narrow interfaces over the command handlers keep the
// server testable without the full wiring.
type (
	// OrderCreator applies a storefront order creation event.
	OrderCreator interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) error
	}

	// FulfillmentReporter applies a storefront fulfillment event.
	FulfillmentReporter interface {
		Handle(ctx context.Context, cmd commands.ReportFulfillmentCommand) error
	}

	// ReplyProcessor applies an inbound customer reply.
	ReplyProcessor interface {
		Handle(ctx context.Context, cmd commands.ProcessReplyCommand) error
	}
)

// Server handles the webhook endpoints and the dashboard read endpoint.
type Server struct {
	tenants             ports.TenantRepository
	orderCreator        OrderCreator
	fulfillmentReporter FulfillmentReporter
	replyProcessor      ReplyProcessor
	activeOrdersHandler queries.GetActiveOrdersQueryHandler

	verifyToken        string
	defaultCountryCode string

	logger *slog.Logger
	wg     sync.WaitGroup
}

// NewServer creates the webhook server. verifyToken answers the messaging
// provider's subscription handshake; defaultCountryCode applies to tenants
// provisioned without one.
func NewServer(
	tenants ports.TenantRepository,
	orderCreator OrderCreator,
	fulfillmentReporter FulfillmentReporter,
	replyProcessor ReplyProcessor,
	activeOrdersHandler queries.GetActiveOrdersQueryHandler,
	verifyToken string,
	defaultCountryCode string,
	logger *slog.Logger,
) *Server {
	return &Server{
		tenants:             tenants,
		orderCreator:        orderCreator,
		fulfillmentReporter: fulfillmentReporter,
		replyProcessor:      replyProcessor,
		activeOrdersHandler: activeOrdersHandler,
		verifyToken:         verifyToken,
		defaultCountryCode:  defaultCountryCode,
		logger:              logger.With("component", "http_server"),
	}
}

// RegisterRoutes attaches all endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.POST("/webhooks/storefront/orders", s.HandleOrderWebhook)
	e.POST("/webhooks/storefront/fulfillments", s.HandleFulfillmentWebhook)
	e.GET("/webhooks/messages", s.VerifyMessagesWebhook)
	e.POST("/webhooks/messages", s.HandleMessagesWebhook)
	e.GET("/orders/active", s.GetActiveOrders)
	e.GET("/health", s.Health)
}

// Drain blocks until all in-flight background dispatches finish. Called on
// shutdown and by tests.
func (s *Server) Drain() {
	s.wg.Wait()
}

// dispatch runs fn on a background goroutine with its own deadline. The
// request context is already gone by the time fn runs.
func (s *Server) dispatch(eventID string, fn func(ctx context.Context) error) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), asyncTimeout)
		defer cancel()

		if err := fn(ctx); err != nil {
			s.logger.ErrorContext(ctx, "webhook event processing failed",
				"event_id", eventID, "error", err)
		}
	}()
}

// HandleOrderWebhook handles POST /webhooks/storefront/orders. The tenant is
// resolved from X-Shop-Domain and the raw body is verified against the
// tenant's webhook secret before parsing.
func (s *Server) HandleOrderWebhook(c echo.Context) error {
	eventID := uuid.NewString()

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.NoContent(nethttp.StatusBadRequest)
	}

	ctx := c.Request().Context()

	tn, err := s.tenants.GetByDomain(ctx, c.Request().Header.Get("X-Shop-Domain"))
	if err != nil {
		s.logger.WarnContext(ctx, "order webhook from unknown domain, dropped",
			"event_id", eventID, "domain", c.Request().Header.Get("X-Shop-Domain"))
		return c.NoContent(nethttp.StatusOK)
	}

	secrets, err := s.tenants.GetSecrets(ctx, tn.ID())
	if err != nil {
		return c.NoContent(nethttp.StatusInternalServerError)
	}

	if !VerifySignature(secrets.WebhookSecret, body, c.Request().Header.Get("X-Webhook-Signature")) {
		s.logger.WarnContext(ctx, "order webhook signature rejected",
			"event_id", eventID, "tenant_id", tn.ID())
		return c.NoContent(nethttp.StatusUnauthorized)
	}

	var payload orderWebhookPayload
	if err = json.Unmarshal(body, &payload); err != nil {
		return c.NoContent(nethttp.StatusBadRequest)
	}

	countryCode := tn.CountryCode()
	if countryCode == "" {
		countryCode = s.defaultCountryCode
	}

	cmd, err := payload.toCreateOrderCommand(tn.ID(), countryCode)
	if err != nil {
		s.logger.WarnContext(ctx, "order webhook payload rejected",
			"event_id", eventID, "tenant_id", tn.ID(), "error", err)
		return c.NoContent(nethttp.StatusBadRequest)
	}

	s.dispatch(eventID, func(ctx context.Context) error {
		return s.orderCreator.Handle(ctx, cmd)
	})

	return c.NoContent(nethttp.StatusOK)
}

// HandleFulfillmentWebhook handles POST /webhooks/storefront/fulfillments.
// Only the "fulfilled" status dispatches; everything else is acknowledged and
// dropped.
func (s *Server) HandleFulfillmentWebhook(c echo.Context) error {
	eventID := uuid.NewString()
	ctx := c.Request().Context()

	tn, err := s.tenants.GetByDomain(ctx, c.Request().Header.Get("X-Shop-Domain"))
	if err != nil {
		s.logger.WarnContext(ctx, "fulfillment webhook from unknown domain, dropped",
			"event_id", eventID, "domain", c.Request().Header.Get("X-Shop-Domain"))
		return c.NoContent(nethttp.StatusOK)
	}

	var payload fulfillmentWebhookPayload
	if err = c.Bind(&payload); err != nil {
		return c.NoContent(nethttp.StatusBadRequest)
	}

	if payload.Status != "fulfilled" {
		return c.NoContent(nethttp.StatusOK)
	}

	cmd, err := commands.NewReportFulfillmentCommand(
		tn.ID(), payload.OrderID.String(), payload.TrackingNumber)
	if err != nil {
		return c.NoContent(nethttp.StatusBadRequest)
	}

	s.dispatch(eventID, func(ctx context.Context) error {
		return s.fulfillmentReporter.Handle(ctx, cmd)
	})

	return c.NoContent(nethttp.StatusOK)
}

// VerifyMessagesWebhook handles GET /webhooks/messages, the messaging
// provider's subscription handshake.
func (s *Server) VerifyMessagesWebhook(c echo.Context) error {
	mode := c.QueryParam("hub.mode")
	token := c.QueryParam("hub.verify_token")

	if mode != "subscribe" || token != s.verifyToken {
		return c.NoContent(nethttp.StatusForbidden)
	}

	return c.String(nethttp.StatusOK, c.QueryParam("hub.challenge"))
}

// HandleMessagesWebhook handles POST /webhooks/messages. Every message in the
// envelope dispatches independently; a reply that fails to parse is dropped
// without failing the batch.
func (s *Server) HandleMessagesWebhook(c echo.Context) error {
	eventID := uuid.NewString()
	ctx := c.Request().Context()

	var payload messagesWebhookPayload
	if err := c.Bind(&payload); err != nil {
		return c.NoContent(nethttp.StatusBadRequest)
	}

	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			for _, msg := range change.Value.Messages {
				cmd, err := msg.toProcessReplyCommand()
				if err != nil {
					s.logger.WarnContext(ctx, "inbound message dropped",
						"event_id", eventID, "error", err)
					continue
				}

				s.dispatch(eventID, func(ctx context.Context) error {
					return s.replyProcessor.Handle(ctx, cmd)
				})
			}
		}
	}

	return c.NoContent(nethttp.StatusOK)
}

// GetActiveOrders handles GET /orders/active, the dashboard read endpoint.
func (s *Server) GetActiveOrders(c echo.Context) error {
	query, err := queries.NewGetActiveOrdersQuery(c.QueryParam("tenant_id"))
	if err != nil {
		return c.JSON(nethttp.StatusBadRequest, map[string]string{
			"message": "tenant_id is required",
		})
	}

	orders, err := s.activeOrdersHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return c.JSON(nethttp.StatusInternalServerError, map[string]string{
			"message": "failed to retrieve orders",
		})
	}

	return c.JSON(nethttp.StatusOK, orders)
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.JSON(nethttp.StatusOK, map[string]string{"status": "ok"})
}

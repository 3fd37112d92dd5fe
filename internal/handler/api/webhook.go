package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"furnish-admin/internal/handler/httperr"
	"furnish-admin/internal/pkg/config"
	"furnish-admin/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
)

const webhookBodyLimit = 1 << 16

type WebhookHandler struct {
	commands      commands.WebhookCommands
	webhookSecret string
}

func NewWebhookHandler(webhookCommands commands.WebhookCommands, cfg config.GatewayConfig) *WebhookHandler {
	return &WebhookHandler{
		commands:      webhookCommands,
		webhookSecret: cfg.WebhookSecret,
	}
}

// HandlePaymentEvent verifies the gateway signature, then reconciles. The
// endpoint answers 200 for every verified delivery regardless of the
// reconciliation outcome, so the gateway never retries what we have already
// seen. Only a bad signature earns a 400.
//
// @Summary Payment gateway webhook
// @Tags webhooks
// @Accept json
// @Produce json
// @Success 200 {object} map[string]bool
// @Failure 400 {object} httperr.Response
// @Router /webhooks/payments [post]
func (h *WebhookHandler) HandlePaymentEvent(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, webhookBodyLimit))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Failed to read request body", nil)
		return
	}

	event, err := webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), h.webhookSecret)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid webhook signature", nil)
		return
	}

	gatewayEvent, ok := h.decode(event)
	if ok {
		if err := h.commands.HandleEvent(c.Request.Context(), gatewayEvent); err != nil {
			// Transient local failure; a 200 would drop the delivery for good.
			slog.Error("webhook reconciliation failed",
				"eventType", event.Type,
				"error", err,
			)
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

// decode flattens the gateway envelope into the reconciler's event. Unknown
// or malformed payloads return ok=false and are acknowledged untouched.
func (h *WebhookHandler) decode(event stripe.Event) (commands.GatewayEvent, bool) {
	switch string(event.Type) {
	case commands.GatewayEventIntentSucceeded, commands.GatewayEventIntentFailed:
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			slog.Warn("failed to decode payment intent payload", "eventType", event.Type, "error", err)
			return commands.GatewayEvent{}, false
		}

		gatewayEvent := commands.GatewayEvent{
			Type:            string(event.Type),
			GatewayIntentID: pi.ID,
		}
		if pi.LatestCharge != nil {
			gatewayEvent.ReceiptURL = pi.LatestCharge.ReceiptURL
		}
		if pi.LastPaymentError != nil {
			gatewayEvent.FailureMessage = pi.LastPaymentError.Msg
		}
		return gatewayEvent, true

	case commands.GatewayEventChargeRefunded:
		var ch stripe.Charge
		if err := json.Unmarshal(event.Data.Raw, &ch); err != nil {
			slog.Warn("failed to decode charge payload", "error", err)
			return commands.GatewayEvent{}, false
		}
		if ch.PaymentIntent == nil {
			return commands.GatewayEvent{}, false
		}

		return commands.GatewayEvent{
			Type:               string(event.Type),
			GatewayIntentID:    ch.PaymentIntent.ID,
			RefundedTotalMinor: ch.AmountRefunded,
			Currency:           string(ch.Currency),
		}, true

	default:
		return commands.GatewayEvent{}, false
	}
}

package stripewebhooks

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/webhook"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"eventpay/internal/domain/webhookevents"
	"eventpay/internal/payments"
)

type Handler struct {
	fulfillment *payments.FulfillmentService
	connect     *payments.ConnectService
	store       payments.Store
	secret      string
	log         *logrus.Logger
}

func NewHandler(fulfillment *payments.FulfillmentService, connect *payments.ConnectService, store payments.Store, secret string, log *logrus.Logger) *Handler {
	return &Handler{fulfillment: fulfillment, connect: connect, store: store, secret: secret, log: log}
}

// Handle processes POST /webhook. Signature verification runs against
// the untouched raw body before any JSON parsing — Stripe signs the
// exact byte stream, so this route must stay clear of body-rewriting
// middleware. Delivery is at-least-once; fulfillment idempotency
// absorbs the retries, and a processed-event table short-circuits
// straight redeliveries.
func (h *Handler) Handle(c *gin.Context) {
	payload, err := readRawBody(c, 65536)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Error reading request body"})
		return
	}

	event, err := webhook.ConstructEventWithOptions(
		payload,
		c.GetHeader("Stripe-Signature"),
		h.secret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		h.log.WithError(err).Warn("stripe signature verification failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Signature verification failed"})
		return
	}

	// Stripe redelivers on timeouts. An audit row for this event id
	// means a previous delivery already ran to completion, so answer
	// 200 without dispatching again.
	if _, err := h.store.WebhookEventByID(c.Request.Context(), event.ID); err == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		// Lookup trouble is not worth a retry storm; dispatch anyway,
		// the services are idempotent on their own keys.
		h.log.WithError(err).WithField("event_id", event.ID).Warn("webhook event lookup failed")
	}

	switch event.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse session"})
			return
		}
		if _, err := h.fulfillment.FulfillSession(c.Request.Context(), session.ID); err != nil {
			switch payments.KindOf(err) {
			case payments.KindPaymentNotConfirmed, payments.KindMalformedSession:
				// Retrying will not fix these; acknowledge so Stripe
				// stops redelivering. Fulfillment already logged them.
				c.JSON(http.StatusOK, gin.H{"status": "ignored"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			return
		}

	case "account.updated":
		var acct stripe.Account
		if err := json.Unmarshal(event.Data.Raw, &acct); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse account"})
			return
		}
		if err := h.connect.ApplyAccountUpdate(c.Request.Context(), payments.AccountStatus{
			AccountID:        acct.ID,
			DetailsSubmitted: acct.DetailsSubmitted,
			ChargesEnabled:   acct.ChargesEnabled,
		}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

	default:
		// Acknowledge unknown events to avoid retries.
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	h.recordEvent(c, &event, payload)
	c.JSON(http.StatusOK, gin.H{"status": "received"})
}

// recordEvent audits the processed event after success. The audit row
// feeds the redelivery short-circuit above; the idempotency guarantee
// itself stays with the services' unique keys.
func (h *Handler) recordEvent(c *gin.Context, event *stripe.Event, payload []byte) {
	err := h.store.RecordWebhookEvent(c.Request.Context(), &webhookevents.Event{
		StripeEventID: event.ID,
		Type:          string(event.Type),
		Payload:       datatypes.JSON(payload),
	})
	if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		h.log.WithError(err).WithField("event_id", event.ID).Warn("failed to record webhook event")
	}
}

func readRawBody(c *gin.Context, maxBytes int64) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	return io.ReadAll(c.Request.Body)
}

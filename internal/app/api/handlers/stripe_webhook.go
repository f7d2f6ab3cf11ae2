package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/hevolife/bookingfast/internal/app/service/booking"
	wh "github.com/hevolife/bookingfast/internal/app/service/webhook"
	stripeplatform "github.com/hevolife/bookingfast/internal/platform/stripe"
	"github.com/hevolife/bookingfast/pkg/logctx"
	"github.com/hevolife/bookingfast/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// maxWebhookBodyBytes bounds the webhook payload size.
const maxWebhookBodyBytes = 1 << 20

// @Summary      Stripe Webhook
// @Description  Handles Stripe events. Only checkout.session.completed triggers domain logic; other event types are acknowledged without side effects.
// @Tags         Webhook
// @Accept       json
// @Produce      json
// @Param        payload body string true "Stripe event JSON"
// @Success      200  {object}  types.WebhookOutcome
// @Router       /api/v1/webhooks/stripe [post]
// ApiStripeWebhook handles Stripe webhook deliveries. The response code
// drives the provider's retry behavior: ignored/duplicate events must still
// be 200, retriable failures must not be.
func ApiStripeWebhook(cli *stripeplatform.Client, h *wh.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logctx.FromGin(c, h.Logger)

		body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBodyBytes))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
			return
		}

		event, err := cli.ConstructEvent(body, c.GetHeader("Stripe-Signature"))
		if err != nil {
			log.Warnw("webhook_signature_rejected", "error", err.Error())
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload or signature"})
			return
		}

		log.Infow("webhook_stripe_received", "event_id", event.ID, "event_type", event.Type)

		out, err := h.HandleEvent(c.Request.Context(), &event)
		if err != nil {
			status := webhookErrorStatus(err)
			log.Errorw("webhook_stripe_handle_error", "event_id", event.ID, "status", status, "error", err.Error())
			metrics.ObserveWebhookOutcome("error")
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		metrics.ObserveWebhookOutcome(string(out.Type))
		log.Infow("webhook_stripe_handled", "event_id", event.ID, "outcome", out.Type)
		c.JSON(http.StatusOK, out)
	}
}

// webhookErrorStatus translates the domain error taxonomy into transport
// codes: correlation failures are client errors, match-not-found is
// retriable (the record may not be visible yet), everything else is a
// server failure the provider should redeliver after.
func webhookErrorStatus(err error) int {
	switch {
	case errors.Is(err, wh.ErrMissingCorrelation):
		return http.StatusBadRequest
	case errors.Is(err, booking.ErrBookingNotFound), errors.Is(err, booking.ErrAmbiguousMatch):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func RegisterWebhookRoutes(r gin.IRouter, cli *stripeplatform.Client, h *wh.Handler) {
	r.POST("/stripe", ApiStripeWebhook(cli, h))
}

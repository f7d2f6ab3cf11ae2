package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	cfgpkg "github.com/hevolife/bookingfast/pkg/config"

	stripeapi "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
	"github.com/stripe/stripe-go/v82/webhook"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ErrNotConfigured is returned for outbound calls when no API key is set.
// Webhook handling stays available without a key.
var ErrNotConfigured = errors.New("stripe api key not configured")

// Client wraps the stripe-go API client and signature verification.
type Client struct {
	api *client.API
	cfg *cfgpkg.Config
	log *zap.SugaredLogger
}

func NewClient(cfg *cfgpkg.Config, log *zap.SugaredLogger) *Client {
	c := &Client{cfg: cfg, log: log}
	if cfg.Stripe.SecretKey != "" {
		api := &client.API{}
		api.Init(cfg.Stripe.SecretKey, nil)
		c.api = api
	} else {
		log.Warnw("stripe secret key not configured, payment links disabled")
	}
	return c
}

// CreateCheckoutSession creates a hosted checkout session for a payment link.
func (c *Client) CreateCheckoutSession(ctx context.Context, params *stripeapi.CheckoutSessionParams) (*stripeapi.CheckoutSession, error) {
	if c.api == nil {
		return nil, ErrNotConfigured
	}
	params.Context = ctx
	sess, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}
	return sess, nil
}

// ConstructEvent verifies the webhook signature when a webhook secret is
// configured; otherwise the payload is parsed without verification (dev
// environments, replayed fixtures).
func (c *Client) ConstructEvent(payload []byte, sigHeader string) (stripeapi.Event, error) {
	if c.cfg.Stripe.WebhookSecret == "" {
		var event stripeapi.Event
		if err := json.Unmarshal(payload, &event); err != nil {
			return event, fmt.Errorf("failed to parse webhook payload: %w", err)
		}
		return event, nil
	}
	return webhook.ConstructEvent(payload, sigHeader, c.cfg.Stripe.WebhookSecret)
}

var Module = fx.Options(
	fx.Provide(NewClient),
)

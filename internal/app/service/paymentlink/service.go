package paymentlink

import (
	"context"
	"fmt"
	"time"

	"github.com/hevolife/bookingfast/internal/app/service/booking"
	"github.com/hevolife/bookingfast/internal/app/service/ledger"
	stripeplatform "github.com/hevolife/bookingfast/internal/platform/stripe"
	"github.com/hevolife/bookingfast/pkg/config"
	"github.com/hevolife/bookingfast/pkg/logctx"

	"github.com/shopspring/decimal"
	stripeapi "github.com/stripe/stripe-go/v82"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Service issues Stripe Checkout payment links for bookings and records them
// as pending ledger entries. A pending entry never counts toward the paid
// amount; it is settled by the webhook or cancelled on expiry.
type Service struct {
	cfg        *config.Config
	stripeCli  *stripeplatform.Client
	bookingSvc *booking.Service
	log        *zap.SugaredLogger
}

func NewService(cfg *config.Config, cli *stripeplatform.Client, bookingSvc *booking.Service, log *zap.SugaredLogger) *Service {
	return &Service{cfg: cfg, stripeCli: cli, bookingSvc: bookingSvc, log: log}
}

type CreateResult struct {
	URL           string    `json:"url"`
	TransactionID string    `json:"transaction_id"`
	ExpiresAt     time.Time `json:"expires_at"`
}

// CreateForBooking creates a checkout session for the given amount and
// appends the pending link transaction. The amount is validated against the
// remaining balance before any Stripe call.
func (s *Service) CreateForBooking(ctx context.Context, bookingID string, amount decimal.Decimal) (*CreateResult, error) {
	if !amount.IsPositive() {
		return nil, booking.ErrInvalidAmount
	}

	b, err := s.bookingSvc.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	sum := ledger.Summarize(b.Transactions, b.TotalAmount)
	if amount.GreaterThan(sum.Remaining) {
		return nil, booking.ErrAmountExceedsRemaining
	}

	params := &stripeapi.CheckoutSessionParams{
		Mode:       stripeapi.String(string(stripeapi.CheckoutSessionModePayment)),
		SuccessURL: stripeapi.String(s.cfg.Stripe.SuccessURL),
		CancelURL:  stripeapi.String(s.cfg.Stripe.CancelURL),
		LineItems: []*stripeapi.CheckoutSessionLineItemParams{
			{
				Quantity: stripeapi.Int64(1),
				PriceData: &stripeapi.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripeapi.String(s.cfg.Stripe.Currency),
					UnitAmount: stripeapi.Int64(amount.Shift(2).IntPart()),
					ProductData: &stripeapi.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripeapi.String(fmt.Sprintf("Booking %s %s", b.BookingDate, b.BookingTime)),
					},
				},
			},
		},
	}
	if b.CustomerEmail != "" {
		params.CustomerEmail = stripeapi.String(b.CustomerEmail)
	}
	// Correlation metadata lets the webhook matcher find this booking even
	// if the payment settles after the client session is gone.
	params.AddMetadata("user_id", b.UserID)
	params.AddMetadata("service_id", b.ServiceID)
	params.AddMetadata("booking_date", b.BookingDate)
	params.AddMetadata("booking_time", b.BookingTime)
	params.AddMetadata("total_amount", b.TotalAmount.String())

	sess, err := s.stripeCli.CreateCheckoutSession(ctx, params)
	if err != nil {
		return nil, err
	}

	_, tx, err := s.bookingSvc.AppendPendingLink(ctx, bookingID, amount, sess.URL)
	if err != nil {
		return nil, fmt.Errorf("checkout session created but link not recorded: %w", err)
	}

	expiry := time.Duration(s.cfg.Stripe.PaymentLinkExpiryMinutes) * time.Minute
	logctx.FromCtx(ctx, s.log).Infow("payment link created",
		"booking_id", bookingID, "transaction_id", tx.ID, "amount", amount.String())

	return &CreateResult{
		URL:           sess.URL,
		TransactionID: tx.ID,
		ExpiresAt:     tx.CreatedAt.Add(expiry),
	}, nil
}

var Module = fx.Options(
	fx.Provide(NewService),
)

package webhook

import (
	"errors"
	"testing"

	"github.com/hevolife/bookingfast/internal/app/service/booking"

	"github.com/shopspring/decimal"
	stripeapi "github.com/stripe/stripe-go/v82"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeMetadata_AliasFolding(t *testing.T) {
	sess := &stripeapi.CheckoutSession{
		Metadata: map[string]string{
			"user_id":    "u1",
			"service_id": "s1",
			"date":       "2026-09-01",
			"time":       "14:30",
		},
		CustomerDetails: &stripeapi.CheckoutSessionCustomerDetails{Email: "alice@example.com"},
	}
	keys := NormalizeMetadata(sess)
	assert.Equal(t, "u1", keys.UserID)
	assert.Equal(t, "s1", keys.ServiceID)
	assert.Equal(t, "2026-09-01", keys.BookingDate)
	assert.Equal(t, "14:30", keys.BookingTime)
	assert.Equal(t, "alice@example.com", keys.CustomerEmail)
}

func TestNormalizeMetadata_CanonicalKeysWin(t *testing.T) {
	sess := &stripeapi.CheckoutSession{
		Metadata: map[string]string{
			"booking_date": "2026-09-02",
			"date":         "2026-01-01",
			"booking_time": "10:00",
			"time":         "23:59",
		},
	}
	keys := NormalizeMetadata(sess)
	assert.Equal(t, "2026-09-02", keys.BookingDate)
	assert.Equal(t, "10:00", keys.BookingTime)
}

func TestNormalizeMetadata_EmailFallback(t *testing.T) {
	// CustomerDetails absent: fall back to metadata keys
	sess := &stripeapi.CheckoutSession{
		Metadata: map[string]string{"customer_email": " bob@example.com "},
	}
	assert.Equal(t, "bob@example.com", NormalizeMetadata(sess).CustomerEmail)

	// CustomerDetails present but empty: still fall back
	sess2 := &stripeapi.CheckoutSession{
		Metadata:        map[string]string{"email": "carol@example.com"},
		CustomerDetails: &stripeapi.CheckoutSessionCustomerDetails{},
	}
	assert.Equal(t, "carol@example.com", NormalizeMetadata(sess2).CustomerEmail)
}

func TestNormalizeMetadata_NumericFields(t *testing.T) {
	sess := &stripeapi.CheckoutSession{
		Metadata: map[string]string{
			"duration_minutes": "90",
			"quantity":         "2",
			"total_amount":     "120.50",
		},
	}
	keys := NormalizeMetadata(sess)
	assert.Equal(t, 90, keys.DurationMinutes)
	assert.Equal(t, 2, keys.Quantity)
	assert.True(t, keys.TotalAmount.Equal(decimal.RequireFromString("120.50")))

	// unparseable values are dropped, not fatal
	bad := &stripeapi.CheckoutSession{
		Metadata: map[string]string{"duration_minutes": "soon", "total_amount": "a lot"},
	}
	badKeys := NormalizeMetadata(bad)
	assert.Zero(t, badKeys.DurationMinutes)
	assert.True(t, badKeys.TotalAmount.IsZero())
}

func TestNormalizeMetadata_TotalAmountFallsBackToSession(t *testing.T) {
	// no metadata total: the session total stands in, so a created booking
	// never derives its payment status against a zero contract amount
	sess := &stripeapi.CheckoutSession{AmountTotal: 2500}
	assert.True(t, NormalizeMetadata(sess).TotalAmount.Equal(decimal.RequireFromString("25")))

	// an explicit metadata total wins over the session amount
	withTotal := &stripeapi.CheckoutSession{
		AmountTotal: 2500,
		Metadata:    map[string]string{"total_amount": "100"},
	}
	assert.True(t, NormalizeMetadata(withTotal).TotalAmount.Equal(decimal.RequireFromString("100")))

	// an unparseable metadata total falls back to the session amount too
	badTotal := &stripeapi.CheckoutSession{
		AmountTotal: 2500,
		Metadata:    map[string]string{"total_amount": "a lot"},
	}
	assert.True(t, NormalizeMetadata(badTotal).TotalAmount.Equal(decimal.RequireFromString("25")))
}

func TestValidateForLookup(t *testing.T) {
	require.NoError(t, validateForLookup(booking.CorrelationKeys{CustomerEmail: "a@b.c"}))
	err := validateForLookup(booking.CorrelationKeys{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingCorrelation))
}

func TestValidateForCreate(t *testing.T) {
	full := booking.CorrelationKeys{
		CustomerEmail: "a@b.c",
		UserID:        "u1",
		ServiceID:     "s1",
		BookingDate:   "2026-09-01",
		BookingTime:   "14:30",
	}
	require.NoError(t, validateForCreate(full))

	missing := full
	missing.ServiceID = ""
	missing.BookingTime = ""
	err := validateForCreate(missing)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingCorrelation))
	assert.Contains(t, err.Error(), "service_id")
	assert.Contains(t, err.Error(), "booking time")
}

func TestAmountFromSession_MinorUnits(t *testing.T) {
	sess := &stripeapi.CheckoutSession{AmountTotal: 12050}
	assert.True(t, AmountFromSession(sess).Equal(decimal.RequireFromString("120.50")))

	zero := &stripeapi.CheckoutSession{AmountTotal: 0}
	assert.True(t, AmountFromSession(zero).IsZero())
}

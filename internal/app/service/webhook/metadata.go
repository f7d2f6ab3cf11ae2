package webhook

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hevolife/bookingfast/internal/app/service/booking"

	"github.com/shopspring/decimal"
	stripeapi "github.com/stripe/stripe-go/v82"
)

// ErrMissingCorrelation means the event's metadata lacks fields required by
// the policy in force. This is a client error; the provider is not asked to
// retry it.
var ErrMissingCorrelation = errors.New("missing required correlation metadata")

// NormalizeMetadata folds the untyped checkout metadata bag into one
// canonical correlation-key structure. Alias keys (date vs booking_date,
// time vs booking_time) are resolved here, once; everything downstream works
// with the strict struct.
func NormalizeMetadata(sess *stripeapi.CheckoutSession) booking.CorrelationKeys {
	md := sess.Metadata
	pick := func(names ...string) string {
		for _, n := range names {
			if v := strings.TrimSpace(md[n]); v != "" {
				return v
			}
		}
		return ""
	}

	keys := booking.CorrelationKeys{
		UserID:          pick("user_id"),
		ServiceID:       pick("service_id"),
		BookingDate:     pick("booking_date", "date"),
		BookingTime:     pick("booking_time", "time"),
		ClientName:      pick("client_name"),
		ClientFirstname: pick("client_firstname"),
		ClientPhone:     pick("phone"),
	}

	if sess.CustomerDetails != nil {
		keys.CustomerEmail = strings.TrimSpace(sess.CustomerDetails.Email)
	}
	if keys.CustomerEmail == "" {
		keys.CustomerEmail = pick("customer_email", "email")
	}

	if v := pick("duration_minutes"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			keys.DurationMinutes = n
		}
	}
	if v := pick("quantity"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			keys.Quantity = n
		}
	}
	if v := pick("total_amount"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			keys.TotalAmount = d
		}
	}
	// Without a contract amount a created booking would derive its payment
	// status against zero and always read completed. The session total is
	// the best available stand-in.
	if keys.TotalAmount.IsZero() {
		keys.TotalAmount = AmountFromSession(sess)
	}

	return keys
}

// validateForLookup checks the minimum needed under the must-exist policy.
func validateForLookup(keys booking.CorrelationKeys) error {
	if keys.CustomerEmail == "" {
		return fmt.Errorf("%w: customer email", ErrMissingCorrelation)
	}
	return nil
}

// validateForCreate checks everything a brand-new booking needs.
func validateForCreate(keys booking.CorrelationKeys) error {
	var missing []string
	if keys.CustomerEmail == "" {
		missing = append(missing, "customer email")
	}
	if keys.UserID == "" {
		missing = append(missing, "user_id")
	}
	if keys.ServiceID == "" {
		missing = append(missing, "service_id")
	}
	if keys.BookingDate == "" {
		missing = append(missing, "booking date")
	}
	if keys.BookingTime == "" {
		missing = append(missing, "booking time")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingCorrelation, strings.Join(missing, ", "))
	}
	return nil
}

// AmountFromSession converts the minor-unit session total to decimal
// currency units. This is the single conversion point at the boundary.
func AmountFromSession(sess *stripeapi.CheckoutSession) decimal.Decimal {
	return decimal.New(sess.AmountTotal, -2)
}

package booking

import (
	"context"
	"errors"
	"fmt"

	models "github.com/hevolife/bookingfast/internal/models"
	"github.com/hevolife/bookingfast/pkg/logctx"
	types "github.com/hevolife/bookingfast/pkg/types"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CorrelationKeys is the canonical correlation structure produced by the
// webhook metadata normalization. Alias keys (date vs booking_date, time vs
// booking_time) are folded before this struct exists; everything downstream
// consumes it as a strict type.
type CorrelationKeys struct {
	UserID          string
	ServiceID       string
	CustomerEmail   string
	BookingDate     string
	BookingTime     string
	ClientName      string
	ClientFirstname string
	ClientPhone     string
	DurationMinutes int
	Quantity        int
	TotalAmount     decimal.Decimal
}

// HasExactKeys reports whether the exact-match cascade step can run.
func (k CorrelationKeys) HasExactKeys() bool {
	return k.CustomerEmail != "" && k.UserID != "" && k.ServiceID != "" &&
		k.BookingDate != "" && k.BookingTime != ""
}

// FindOpenBooking resolves the single open booking a payment event applies
// to. The cascade trades precision for recall in a controlled, logged order:
// each step runs only when the previous found nothing and only with the
// correlation fields it needs, always restricted to open bookings, newest
// first. The email-only step refuses to guess between several candidates.
func (s *Service) FindOpenBooking(ctx context.Context, keys CorrelationKeys) (*models.Booking, error) {
	log := logctx.FromCtx(ctx, s.log)

	// Step 1: exact slot match.
	if keys.HasExactKeys() {
		b, err := s.FindExactBooking(ctx, keys)
		if err != nil && !errors.Is(err, ErrBookingNotFound) {
			return nil, err
		}
		if b != nil {
			log.Infow("matcher_exact_hit", "booking_id", b.ID)
			return b, nil
		}
	}

	// Step 2: email + owning tenant.
	if keys.CustomerEmail != "" && keys.UserID != "" {
		var b models.Booking
		err := s.openBookings(ctx).
			Where("customer_email = ? AND user_id = ?", keys.CustomerEmail, keys.UserID).
			First(&b).Error
		if err == nil {
			log.Infow("matcher_relaxed_hit", "booking_id", b.ID, "email", keys.CustomerEmail)
			return &b, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("relaxed booking lookup failed: %w", err)
		}
	}

	// Step 3: email only. Reject when several open bookings share the
	// email instead of crediting the wrong ledger.
	if keys.CustomerEmail != "" {
		var candidates []*models.Booking
		err := s.openBookings(ctx).
			Where("customer_email = ?", keys.CustomerEmail).
			Limit(2).
			Find(&candidates).Error
		if err != nil {
			return nil, fmt.Errorf("loose booking lookup failed: %w", err)
		}
		switch len(candidates) {
		case 1:
			log.Warnw("matcher_email_only_hit", "booking_id", candidates[0].ID, "email", keys.CustomerEmail)
			return candidates[0], nil
		case 0:
		default:
			log.Warnw("matcher_ambiguous", "email", keys.CustomerEmail)
			return nil, ErrAmbiguousMatch
		}
	}

	return nil, ErrBookingNotFound
}

// FindExactBooking runs only the exact-match step. The conflict-resolving
// writer uses it to re-resolve after a duplicate-insert race, when the
// conflicting record has become visible.
func (s *Service) FindExactBooking(ctx context.Context, keys CorrelationKeys) (*models.Booking, error) {
	var b models.Booking
	err := s.openBookings(ctx).
		Where("customer_email = ? AND booking_date = ? AND booking_time = ? AND user_id = ? AND service_id = ?",
			keys.CustomerEmail, keys.BookingDate, keys.BookingTime, keys.UserID, keys.ServiceID).
		First(&b).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("exact booking lookup failed: %w", err)
	}
	return &b, nil
}

func (s *Service) openBookings(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("booking_status IN ?", types.OpenBookingStatuses).
		Order("created_at DESC")
}

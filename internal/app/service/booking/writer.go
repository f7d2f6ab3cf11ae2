package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hevolife/bookingfast/internal/app/service/ledger"
	models "github.com/hevolife/bookingfast/internal/models"
	"github.com/hevolife/bookingfast/pkg/logctx"
	"github.com/hevolife/bookingfast/pkg/tool"
	types "github.com/hevolife/bookingfast/pkg/types"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ApplyResult describes which record a payment event ultimately mutated and
// how. It is what the event cache memoizes through the webhook orchestrator.
type ApplyResult struct {
	Booking        *models.Booking
	AlreadyApplied bool
	Created        bool
	// ConflictResolved marks the insert path that lost a duplicate-insert
	// race and was redirected to the update path.
	ConflictResolved bool
}

// ApplyEventPayment merges a provider payment into an existing booking.
// The reload and the event-id re-check run inside one database transaction,
// so a racing delivery that slipped past the in-memory cache is caught by
// the durable note before anything is written.
func (s *Service) ApplyEventPayment(ctx context.Context, bookingID string, amount decimal.Decimal, eventID string) (*ApplyResult, error) {
	res := &ApplyResult{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		b, err := s.getForUpdate(ctx, tx, bookingID)
		if err != nil {
			return err
		}

		merged := ledger.Merge(ledger.MergeInput{
			Transactions: b.Transactions,
			PriorPaid:    b.PaymentAmount,
			TotalAmount:  b.TotalAmount,
			Amount:       amount,
			Method:       types.PaymentMethodStripe,
			EventID:      eventID,
			Now:          time.Now(),
		})
		if merged.AlreadyApplied {
			res.Booking = b
			res.AlreadyApplied = true
			return nil
		}
		applyMerge(b, merged)

		if err := tx.Save(b).Error; err != nil {
			return fmt.Errorf("failed to save booking payment: %w", err)
		}
		res.Booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// CreateFromEvent inserts a new booking carrying the event's payment as its
// first ledger entry. When another delivery created the "same" booking
// between match and insert, the uniqueness constraint fires; the writer
// re-resolves against the now-visible record and redirects to the update
// path instead of failing the whole request.
func (s *Service) CreateFromEvent(ctx context.Context, keys CorrelationKeys, amount decimal.Decimal, eventID string) (*ApplyResult, error) {
	merged := ledger.Merge(ledger.MergeInput{
		TotalAmount: keys.TotalAmount,
		Amount:      amount,
		Method:      types.PaymentMethodStripe,
		EventID:     eventID,
		Now:         time.Now(),
	})

	quantity := keys.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	b := &models.Booking{
		ID:              tool.GenerateUUIDV7(),
		UserID:          keys.UserID,
		ServiceID:       keys.ServiceID,
		CustomerEmail:   keys.CustomerEmail,
		ClientName:      keys.ClientName,
		ClientFirstname: keys.ClientFirstname,
		ClientPhone:     keys.ClientPhone,
		BookingDate:     keys.BookingDate,
		BookingTime:     keys.BookingTime,
		DurationMinutes: keys.DurationMinutes,
		Quantity:        quantity,
		TotalAmount:     keys.TotalAmount,
		Transactions:    merged.Transactions,
		PaymentAmount:   merged.PaymentAmount,
		PaymentStatus:   merged.PaymentStatus,
		BookingStatus:   ledger.DeriveBookingStatus(types.BookingStatusPending, merged.PaymentAmount),
	}

	if err := s.db.WithContext(ctx).Create(b).Error; err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("failed to create booking: %w", err)
		}

		logctx.FromCtx(ctx, s.log).Warnw("booking insert race detected, re-resolving",
			"event_id", eventID, "email", keys.CustomerEmail,
			"date", keys.BookingDate, "time", keys.BookingTime)

		existing, findErr := s.FindExactBooking(ctx, keys)
		if findErr != nil {
			// The conflicting row should be visible by now; if it is
			// not, surface the original insert error.
			logctx.FromCtx(ctx, s.log).Errorw("conflicting booking not found after duplicate insert",
				"event_id", eventID, "error", findErr.Error())
			return nil, fmt.Errorf("failed to create booking: %w", err)
		}

		res, applyErr := s.ApplyEventPayment(ctx, existing.ID, amount, eventID)
		if applyErr != nil {
			return nil, applyErr
		}
		res.ConflictResolved = true
		return res, nil
	}

	return &ApplyResult{Booking: b, Created: true}, nil
}

package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hevolife/bookingfast/internal/app/service/ledger"
	models "github.com/hevolife/bookingfast/internal/models"
	"github.com/hevolife/bookingfast/pkg/config"
	"github.com/hevolife/bookingfast/pkg/logctx"
	"github.com/hevolife/bookingfast/pkg/tool"
	types "github.com/hevolife/bookingfast/pkg/types"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Service struct {
	cfg *config.Config
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewService(cfg *config.Config, db *gorm.DB, log *zap.SugaredLogger) *Service {
	return &Service{cfg: cfg, db: db, log: log}
}

func (s *Service) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	var b models.Booking
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	return &b, nil
}

// AddTransaction appends a manual ledger entry (POS / booking modal).
// A negative amount records a refund. Forward payments may not exceed the
// remaining balance; the caller is told, nothing is clamped.
func (s *Service) AddTransaction(ctx context.Context, bookingID string, amount decimal.Decimal, method types.PaymentMethod, note string) (*models.Booking, error) {
	if amount.IsZero() {
		return nil, ErrInvalidAmount
	}

	var out *models.Booking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		b, err := s.getForUpdate(ctx, tx, bookingID)
		if err != nil {
			return err
		}

		if amount.IsPositive() {
			remaining := b.TotalAmount.Sub(b.PaymentAmount)
			if amount.GreaterThan(remaining) {
				return ErrAmountExceedsRemaining
			}
		}

		merged := ledger.Merge(ledger.MergeInput{
			Transactions: b.Transactions,
			PriorPaid:    b.PaymentAmount,
			TotalAmount:  b.TotalAmount,
			Amount:       amount,
			Method:       method,
			Note:         note,
			Now:          time.Now(),
		})
		applyMerge(b, merged)

		if err := tx.Save(b).Error; err != nil {
			return fmt.Errorf("failed to save booking: %w", err)
		}
		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CancelTransaction voids a pending payment-link entry. Settled entries are
// immutable; the ledger is append-only.
func (s *Service) CancelTransaction(ctx context.Context, bookingID, transactionID string) (*models.Booking, error) {
	var out *models.Booking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		b, err := s.getForUpdate(ctx, tx, bookingID)
		if err != nil {
			return err
		}

		found := false
		for i := range b.Transactions {
			if b.Transactions[i].ID != transactionID {
				continue
			}
			if b.Transactions[i].Status != types.TransactionStatusPending {
				return ErrTransactionNotPending
			}
			b.Transactions[i].Status = types.TransactionStatusCancelled
			found = true
			break
		}
		if !found {
			return ErrTransactionNotFound
		}

		// Pending entries never counted toward paid, so aggregates are
		// untouched by the cancellation.
		if err := tx.Save(b).Error; err != nil {
			return fmt.Errorf("failed to save booking: %w", err)
		}
		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AppendPendingLink records a not-yet-confirmed payment link in the ledger.
func (s *Service) AppendPendingLink(ctx context.Context, bookingID string, amount decimal.Decimal, url string) (*models.Booking, *models.Transaction, error) {
	if !amount.IsPositive() {
		return nil, nil, ErrInvalidAmount
	}

	var outBooking *models.Booking
	var outTx *models.Transaction
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		b, err := s.getForUpdate(ctx, tx, bookingID)
		if err != nil {
			return err
		}

		entry := models.Transaction{
			ID:        tool.GenerateUUIDV7(),
			Amount:    amount,
			Method:    types.PaymentMethodStripe,
			Status:    types.TransactionStatusPending,
			Note:      ledger.LinkNote(url),
			CreatedAt: time.Now(),
		}
		b.Transactions = append(b.Transactions, entry)

		if err := tx.Save(b).Error; err != nil {
			return fmt.Errorf("failed to save booking: %w", err)
		}
		outBooking = b
		outTx = &entry
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return outBooking, outTx, nil
}

// ExpirePendingLinks cancels pending payment-link entries past the
// configured expiry window.
func (s *Service) ExpirePendingLinks(ctx context.Context, bookingID string) (int, error) {
	expiry := time.Duration(s.cfg.Stripe.PaymentLinkExpiryMinutes) * time.Minute
	expired := 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		b, err := s.getForUpdate(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		now := time.Now()
		for i := range b.Transactions {
			if ledger.IsLinkExpired(b.Transactions[i], expiry, now) {
				b.Transactions[i].Status = types.TransactionStatusCancelled
				expired++
			}
		}
		if expired == 0 {
			return nil
		}
		return tx.Save(b).Error
	})
	if err != nil {
		return 0, err
	}
	if expired > 0 {
		logctx.FromCtx(ctx, s.log).Infow("expired payment links", "booking_id", bookingID, "count", expired)
	}
	return expired, nil
}

// PaymentSummary is the synchronous paid/remaining/status view for the
// booking modal and POS checkout.
func (s *Service) PaymentSummary(ctx context.Context, bookingID string) (*ledger.Summary, error) {
	b, err := s.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	sum := ledger.Summarize(b.Transactions, b.TotalAmount)
	return &sum, nil
}

// ScanBookings implements paginated/admin listing with filters.
type ScanBookingsRequest struct {
	Filters   []*types.CommonFilter `json:"filters"`
	From      int                   `json:"from"`
	Size      int                   `json:"size"`
	SortBy    string                `json:"sort_by"`
	SortOrder string                `json:"sort_order"`
}

type ScanBookingsResponse struct {
	Items []*models.Booking `json:"items"`
	Total int64             `json:"total"`
}

// filtersAnd combines multiple CommonFilter into a single clause.Expression.
type filtersAnd struct{ filters []*types.CommonFilter }

func (w filtersAnd) Build(builder clause.Builder) {
	if len(w.filters) == 0 {
		builder.WriteString("1=1")
		return
	}
	exprs := lo.Map(w.filters, func(f *types.CommonFilter, _ int) clause.Expression { return f })
	clause.And(exprs...).Build(builder)
}

func (s *Service) ScanBookings(ctx context.Context, req *ScanBookingsRequest) (*ScanBookingsResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("nil request")
	}
	if req.Size <= 0 {
		req.Size = 10
	}
	if req.From < 0 {
		req.From = 0
	}

	tx := s.db.WithContext(ctx).Model(&models.Booking{})
	if len(req.Filters) > 0 {
		tx = tx.Where(clause.Where{Exprs: []clause.Expression{filtersAnd{filters: req.Filters}}})
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}

	var rows []*models.Booking
	q := tx.Limit(req.Size)
	if req.From > 0 {
		q = q.Offset(req.From)
	}
	if req.SortBy != "" {
		q = q.Order(clause.OrderBy{Columns: []clause.OrderByColumn{{Column: clause.Column{Name: req.SortBy}, Desc: req.SortOrder != "asc"}}})
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	return &ScanBookingsResponse{Items: rows, Total: total}, nil
}

// getForUpdate loads a booking under a FOR UPDATE row lock. Two concurrent
// event applications for the same booking serialize on the row, so the second
// one re-reads the committed ledger and the event-id re-check actually sees
// the first one's append instead of a stale snapshot.
func (s *Service) getForUpdate(ctx context.Context, tx *gorm.DB, bookingID string) (*models.Booking, error) {
	var b models.Booking
	if err := tx.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", bookingID).First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	return &b, nil
}

// applyMerge copies a merge result onto the record, including the one-way
// pending -> confirmed transition.
func applyMerge(b *models.Booking, merged ledger.MergeResult) {
	b.Transactions = merged.Transactions
	b.PaymentAmount = merged.PaymentAmount
	b.PaymentStatus = merged.PaymentStatus
	b.BookingStatus = ledger.DeriveBookingStatus(b.BookingStatus, merged.PaymentAmount)
}

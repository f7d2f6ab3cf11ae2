package invoice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hevolife/bookingfast/internal/app/service/ledger"
	models "github.com/hevolife/bookingfast/internal/models"
	"github.com/hevolife/bookingfast/pkg/tool"
	types "github.com/hevolife/bookingfast/pkg/types"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrInvoiceNotFound = errors.New("invoice not found")
	// ErrInvalidAmount rejects zero amounts before any persistence.
	ErrInvalidAmount = errors.New("amount must be non-zero")
	// ErrAmountExceedsRemaining rejects a forward payment larger than the
	// remaining balance; the forward path never overpays an invoice.
	ErrAmountExceedsRemaining = errors.New("amount exceeds remaining balance")
)

type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewService(db *gorm.DB, log *zap.SugaredLogger) *Service {
	return &Service{db: db, log: log}
}

func (s *Service) GetInvoice(ctx context.Context, id string) (*models.Invoice, error) {
	var inv models.Invoice
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&inv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("failed to load invoice: %w", err)
	}
	return &inv, nil
}

// AddPayment appends a payment (or, with a negative amount, a refund) to the
// invoice's flat ledger. Prior entries are never mutated.
func (s *Service) AddPayment(ctx context.Context, invoiceID string, amount decimal.Decimal, method types.PaymentMethod, note string) (*models.Invoice, error) {
	if amount.IsZero() {
		return nil, ErrInvalidAmount
	}

	var out *models.Invoice
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var inv models.Invoice
		if err := tx.WithContext(ctx).Where("id = ?", invoiceID).First(&inv).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvoiceNotFound
			}
			return fmt.Errorf("failed to load invoice: %w", err)
		}

		paid := inv.PaidAmount()
		if amount.IsPositive() {
			remaining := inv.TotalAmount.Sub(paid)
			if amount.GreaterThan(remaining) {
				return ErrAmountExceedsRemaining
			}
		}

		inv.Payments = append(inv.Payments, models.InvoicePayment{
			ID:        tool.GenerateUUIDV7(),
			Amount:    amount,
			Method:    method,
			Note:      note,
			CreatedAt: time.Now(),
		})

		// Only sent/paid invoices participate in the paid<->sent
		// transition: a fully-paid sent invoice moves to paid, a refund
		// moves it back to sent. Drafts and quotes keep their status, a
		// deposit does not publish an invoice.
		if inv.Status == types.InvoiceStatusSent || inv.Status == types.InvoiceStatusPaid {
			if inv.PaidAmount().GreaterThanOrEqual(inv.TotalAmount) {
				inv.Status = types.InvoiceStatusPaid
			} else {
				inv.Status = types.InvoiceStatusSent
			}
		}

		if err := tx.Save(&inv).Error; err != nil {
			return fmt.Errorf("failed to save invoice: %w", err)
		}
		out = &inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// PaymentSummary mirrors the ledger derivation for the invoice payments view.
func (s *Service) PaymentSummary(ctx context.Context, invoiceID string) (*ledger.Summary, error) {
	inv, err := s.GetInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	paid := inv.PaidAmount()
	remaining := inv.TotalAmount.Sub(paid)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	return &ledger.Summary{
		Paid:      paid,
		Remaining: remaining,
		Status:    ledger.DerivePaymentStatus(paid, inv.TotalAmount),
	}, nil
}

package ledger

import (
	"fmt"
	"strings"
	"time"

	models "github.com/hevolife/bookingfast/internal/models"
	"github.com/hevolife/bookingfast/pkg/tool"
	types "github.com/hevolife/bookingfast/pkg/types"

	"github.com/shopspring/decimal"
)

// This package is the single home of the ledger-merge and status-derivation
// rules. The webhook path and the synchronous endpoints backing the booking
// modal / POS checkout both go through it, so the pre-confirmation view shown
// to the user and the eventual server state can never disagree on the math.

// ContainsEvent reports whether an entry for the given external event id is
// already present in the ledger. The event id is durably embedded in the
// note of provider-originated transactions, so this check survives process
// restarts and is independent of the in-memory event cache.
func ContainsEvent(txs []models.Transaction, eventID string) bool {
	if eventID == "" {
		return false
	}
	for _, tx := range txs {
		if tx.Method == types.PaymentMethodStripe && strings.Contains(tx.Note, eventID) {
			return true
		}
	}
	return false
}

// EventNote builds the note text for a provider-originated transaction.
func EventNote(eventID string) string {
	return fmt.Sprintf("Online payment via Stripe (event %s)", eventID)
}

// LinkNote builds the note text for a pending payment-link transaction.
func LinkNote(url string) string {
	return fmt.Sprintf("Payment link: %s", url)
}

// DerivePaymentStatus is the single derivation of payment status from
// amounts: completed iff paid >= total, partial iff 0 < paid < total,
// pending otherwise.
func DerivePaymentStatus(paid, total decimal.Decimal) types.PaymentStatus {
	switch {
	case paid.GreaterThanOrEqual(total):
		return types.PaymentStatusCompleted
	case paid.IsPositive():
		return types.PaymentStatusPartial
	default:
		return types.PaymentStatusPending
	}
}

// DeriveBookingStatus applies the confirm-once rule: any successful payment
// moves a pending booking to confirmed, and nothing here ever moves it back.
func DeriveBookingStatus(current types.BookingStatus, paid decimal.Decimal) types.BookingStatus {
	if current == types.BookingStatusPending && paid.IsPositive() {
		return types.BookingStatusConfirmed
	}
	return current
}

type MergeInput struct {
	Transactions []models.Transaction
	// PriorPaid is the record's maintained aggregate; it is trusted rather
	// than re-summed because it was itself produced by this merge.
	PriorPaid   decimal.Decimal
	TotalAmount decimal.Decimal
	Amount      decimal.Decimal
	Method      types.PaymentMethod
	// EventID, when non-empty, makes the merge idempotent against
	// redelivery of the same external event.
	EventID string
	Note    string
	Now     time.Time
}

type MergeResult struct {
	AlreadyApplied bool
	Transactions   []models.Transaction
	PaymentAmount  decimal.Decimal
	PaymentStatus  types.PaymentStatus
}

// Merge appends a completed transaction to the ledger and recomputes the
// aggregate paid amount and derived payment status. When the event id is
// already present the input is returned unchanged with AlreadyApplied set.
// Refunds are ordinary merges with a negative amount; prior entries are
// never touched.
func Merge(in MergeInput) MergeResult {
	if ContainsEvent(in.Transactions, in.EventID) {
		return MergeResult{
			AlreadyApplied: true,
			Transactions:   in.Transactions,
			PaymentAmount:  in.PriorPaid,
			PaymentStatus:  DerivePaymentStatus(in.PriorPaid, in.TotalAmount),
		}
	}

	note := in.Note
	if note == "" && in.EventID != "" {
		note = EventNote(in.EventID)
	}

	entry := models.Transaction{
		ID:        tool.GenerateUUIDV7(),
		Amount:    in.Amount,
		Method:    in.Method,
		Status:    types.TransactionStatusCompleted,
		Note:      note,
		CreatedAt: in.Now,
	}

	txs := make([]models.Transaction, 0, len(in.Transactions)+1)
	txs = append(txs, in.Transactions...)
	txs = append(txs, entry)

	paid := in.PriorPaid.Add(in.Amount)
	return MergeResult{
		Transactions:  txs,
		PaymentAmount: paid,
		PaymentStatus: DerivePaymentStatus(paid, in.TotalAmount),
	}
}

// PaidAmount re-sums the ledger from scratch: every entry whose status
// counts toward paid, pending links and cancelled entries excluded.
func PaidAmount(txs []models.Transaction) decimal.Decimal {
	sum := decimal.Zero
	for _, tx := range txs {
		if tx.Status.CountsTowardPaid() {
			sum = sum.Add(tx.Amount)
		}
	}
	return sum
}

// Summary is the synchronous view consumed by the booking modal and POS
// checkout before any network confirmation.
type Summary struct {
	Paid      decimal.Decimal     `json:"paid"`
	Remaining decimal.Decimal     `json:"remaining"`
	Status    types.PaymentStatus `json:"status"`
}

// Summarize recomputes totals from the full transaction list. Unlike Merge
// it does not trust a maintained aggregate, because the caller may have just
// added or removed entries locally.
func Summarize(txs []models.Transaction, total decimal.Decimal) Summary {
	paid := PaidAmount(txs)
	remaining := total.Sub(paid)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	return Summary{
		Paid:      paid,
		Remaining: remaining,
		Status:    DerivePaymentStatus(paid, total),
	}
}

// IsLinkExpired reports whether a pending payment-link transaction has
// outlived its redeemable window.
func IsLinkExpired(tx models.Transaction, expiry time.Duration, now time.Time) bool {
	if tx.Status != types.TransactionStatusPending {
		return false
	}
	return now.After(tx.CreatedAt.Add(expiry))
}

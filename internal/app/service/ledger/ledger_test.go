package ledger

import (
	"testing"
	"time"

	models "github.com/hevolife/bookingfast/internal/models"
	types "github.com/hevolife/bookingfast/pkg/types"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestDerivePaymentStatus_AllCases(t *testing.T) {
	tests := []struct {
		name  string
		paid  string
		total string
		want  types.PaymentStatus
	}{
		{name: "nothing paid", paid: "0", total: "100", want: types.PaymentStatusPending},
		{name: "partial", paid: "30", total: "100", want: types.PaymentStatusPartial},
		{name: "exactly paid", paid: "100", total: "100", want: types.PaymentStatusCompleted},
		{name: "overpaid", paid: "120", total: "100", want: types.PaymentStatusCompleted},
		{name: "refund below zero", paid: "-20", total: "100", want: types.PaymentStatusPending},
		{name: "zero total zero paid", paid: "0", total: "0", want: types.PaymentStatusCompleted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DerivePaymentStatus(dec(tt.paid), dec(tt.total)))
		})
	}
}

func TestDeriveBookingStatus_ConfirmOnce(t *testing.T) {
	// pending + payment -> confirmed
	assert.Equal(t, types.BookingStatusConfirmed, DeriveBookingStatus(types.BookingStatusPending, dec("10")))
	// pending + nothing paid -> stays pending
	assert.Equal(t, types.BookingStatusPending, DeriveBookingStatus(types.BookingStatusPending, dec("0")))
	// confirmed never demoted, even after a full refund
	assert.Equal(t, types.BookingStatusConfirmed, DeriveBookingStatus(types.BookingStatusConfirmed, dec("-50")))
	// cancelled never resurrected by a late payment
	assert.Equal(t, types.BookingStatusCancelled, DeriveBookingStatus(types.BookingStatusCancelled, dec("50")))
}

func TestContainsEvent(t *testing.T) {
	txs := []models.Transaction{
		{Method: types.PaymentMethodStripe, Note: EventNote("evt_abc")},
		{Method: types.PaymentMethodCash, Note: "walk-in deposit evt_cash"},
	}
	assert.True(t, ContainsEvent(txs, "evt_abc"))
	// only stripe-method entries count toward event idempotency
	assert.False(t, ContainsEvent(txs, "evt_cash"))
	assert.False(t, ContainsEvent(txs, "evt_other"))
	assert.False(t, ContainsEvent(txs, ""))
	assert.False(t, ContainsEvent(nil, "evt_abc"))
}

func TestMerge_AppendsAndAggregates(t *testing.T) {
	now := time.Now()
	res := Merge(MergeInput{
		Transactions: nil,
		PriorPaid:    dec("0"),
		TotalAmount:  dec("100"),
		Amount:       dec("40"),
		Method:       types.PaymentMethodStripe,
		EventID:      "evt_1",
		Now:          now,
	})
	require.False(t, res.AlreadyApplied)
	require.Len(t, res.Transactions, 1)
	entry := res.Transactions[0]
	assert.NotEmpty(t, entry.ID)
	assert.True(t, entry.Amount.Equal(dec("40")))
	assert.Equal(t, types.TransactionStatusCompleted, entry.Status)
	assert.Contains(t, entry.Note, "evt_1")
	assert.True(t, res.PaymentAmount.Equal(dec("40")))
	assert.Equal(t, types.PaymentStatusPartial, res.PaymentStatus)

	// second event completes the booking
	res2 := Merge(MergeInput{
		Transactions: res.Transactions,
		PriorPaid:    res.PaymentAmount,
		TotalAmount:  dec("100"),
		Amount:       dec("60"),
		Method:       types.PaymentMethodStripe,
		EventID:      "evt_2",
		Now:          now,
	})
	require.Len(t, res2.Transactions, 2)
	assert.True(t, res2.PaymentAmount.Equal(dec("100")))
	assert.Equal(t, types.PaymentStatusCompleted, res2.PaymentStatus)
}

func TestMerge_IdempotentOnEventID(t *testing.T) {
	now := time.Now()
	first := Merge(MergeInput{
		PriorPaid:   dec("0"),
		TotalAmount: dec("100"),
		Amount:      dec("100"),
		Method:      types.PaymentMethodStripe,
		EventID:     "evt_dup",
		Now:         now,
	})
	require.False(t, first.AlreadyApplied)

	replay := Merge(MergeInput{
		Transactions: first.Transactions,
		PriorPaid:    first.PaymentAmount,
		TotalAmount:  dec("100"),
		Amount:       dec("100"),
		Method:       types.PaymentMethodStripe,
		EventID:      "evt_dup",
		Now:          now,
	})
	require.True(t, replay.AlreadyApplied)
	// ledger and aggregate unchanged
	assert.Len(t, replay.Transactions, 1)
	assert.True(t, replay.PaymentAmount.Equal(dec("100")))
	assert.Equal(t, types.PaymentStatusCompleted, replay.PaymentStatus)
}

func TestMerge_RefundIsNegativeMerge(t *testing.T) {
	now := time.Now()
	paid := Merge(MergeInput{
		PriorPaid:   dec("0"),
		TotalAmount: dec("100"),
		Amount:      dec("100"),
		Method:      types.PaymentMethodStripe,
		EventID:     "evt_pay",
		Now:         now,
	})
	refund := Merge(MergeInput{
		Transactions: paid.Transactions,
		PriorPaid:    paid.PaymentAmount,
		TotalAmount:  dec("100"),
		Amount:       dec("-100"),
		Method:       types.PaymentMethodStripe,
		Note:         "refund requested by customer",
		Now:          now,
	})
	require.Len(t, refund.Transactions, 2)
	// the original entry is untouched
	assert.True(t, refund.Transactions[0].Amount.Equal(dec("100")))
	assert.True(t, refund.PaymentAmount.Equal(dec("0")))
	assert.Equal(t, types.PaymentStatusPending, refund.PaymentStatus)
}

func TestMerge_CustomNotePreserved(t *testing.T) {
	res := Merge(MergeInput{
		PriorPaid:   dec("0"),
		TotalAmount: dec("50"),
		Amount:      dec("50"),
		Method:      types.PaymentMethodCash,
		Note:        "paid at the counter",
		Now:         time.Now(),
	})
	require.Len(t, res.Transactions, 1)
	assert.Equal(t, "paid at the counter", res.Transactions[0].Note)
}

func TestPaidAmount_SkipsPendingAndCancelled(t *testing.T) {
	txs := []models.Transaction{
		{Amount: dec("40"), Status: types.TransactionStatusCompleted},
		{Amount: dec("30"), Status: types.TransactionStatusPending},
		{Amount: dec("20"), Status: types.TransactionStatusCancelled},
		{Amount: dec("-10"), Status: types.TransactionStatusCompleted},
	}
	assert.True(t, PaidAmount(txs).Equal(dec("30")))
}

func TestSummarize(t *testing.T) {
	txs := []models.Transaction{
		{Amount: dec("40"), Status: types.TransactionStatusCompleted},
		{Amount: dec("100"), Status: types.TransactionStatusPending},
	}
	sum := Summarize(txs, dec("100"))
	assert.True(t, sum.Paid.Equal(dec("40")))
	assert.True(t, sum.Remaining.Equal(dec("60")))
	assert.Equal(t, types.PaymentStatusPartial, sum.Status)

	// overpayment clamps remaining at zero
	over := Summarize([]models.Transaction{{Amount: dec("120"), Status: types.TransactionStatusCompleted}}, dec("100"))
	assert.True(t, over.Remaining.Equal(dec("0")))
	assert.Equal(t, types.PaymentStatusCompleted, over.Status)
}

func TestIsLinkExpired(t *testing.T) {
	now := time.Now()
	expiry := 30 * time.Minute
	fresh := models.Transaction{Status: types.TransactionStatusPending, CreatedAt: now.Add(-10 * time.Minute)}
	stale := models.Transaction{Status: types.TransactionStatusPending, CreatedAt: now.Add(-31 * time.Minute)}
	settled := models.Transaction{Status: types.TransactionStatusCompleted, CreatedAt: now.Add(-2 * time.Hour)}

	assert.False(t, IsLinkExpired(fresh, expiry, now))
	assert.True(t, IsLinkExpired(stale, expiry, now))
	// settled entries never expire
	assert.False(t, IsLinkExpired(settled, expiry, now))
}

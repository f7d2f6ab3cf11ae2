package booking

import (
	"context"
	"testing"

	models "github.com/hevolife/bookingfast/internal/models"
	types "github.com/hevolife/bookingfast/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyEventPayment_RedeliveryIsIdempotent(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	b := seedBooking(t, db, &models.Booking{
		UserID: "u1", ServiceID: "s1", CustomerEmail: "alice@example.com",
		BookingDate: "2026-09-01", BookingTime: "10:00",
		TotalAmount: dec("100"),
	})

	first, err := svc.ApplyEventPayment(ctx, b.ID, dec("40"), "evt_1")
	require.NoError(t, err)
	assert.False(t, first.AlreadyApplied)
	assert.True(t, first.Booking.PaymentAmount.Equal(dec("40")))
	assert.Equal(t, types.PaymentStatusPartial, first.Booking.PaymentStatus)
	assert.Equal(t, types.BookingStatusConfirmed, first.Booking.BookingStatus)

	// the same delivery again: the durable event-id re-check short-circuits
	// and nothing is double-counted
	again, err := svc.ApplyEventPayment(ctx, b.ID, dec("40"), "evt_1")
	require.NoError(t, err)
	assert.True(t, again.AlreadyApplied)

	stored, err := svc.GetBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, stored.PaymentAmount.Equal(dec("40")))
	assert.Len(t, stored.Transactions, 1)
}

func TestApplyEventPayment_AggregatesAcrossEvents(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	b := seedBooking(t, db, &models.Booking{
		UserID: "u1", ServiceID: "s1", CustomerEmail: "alice@example.com",
		BookingDate: "2026-09-01", BookingTime: "10:00",
		TotalAmount: dec("100"),
	})

	_, err := svc.ApplyEventPayment(ctx, b.ID, dec("40"), "evt_1")
	require.NoError(t, err)
	res, err := svc.ApplyEventPayment(ctx, b.ID, dec("60"), "evt_2")
	require.NoError(t, err)

	assert.True(t, res.Booking.PaymentAmount.Equal(dec("100")))
	assert.Equal(t, types.PaymentStatusCompleted, res.Booking.PaymentStatus)
	assert.Len(t, res.Booking.Transactions, 2)
}

func TestApplyEventPayment_UnknownBooking(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.ApplyEventPayment(context.Background(), "missing", dec("40"), "evt_1")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCreateFromEvent_CreatesConfirmedBooking(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	keys := slotKeys()
	keys.TotalAmount = dec("100")
	keys.ClientName = "Martin"

	res, err := svc.CreateFromEvent(ctx, keys, dec("25"), "evt_1")
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.False(t, res.ConflictResolved)
	assert.True(t, res.Booking.PaymentAmount.Equal(dec("25")))
	assert.Equal(t, types.PaymentStatusPartial, res.Booking.PaymentStatus)
	assert.Equal(t, types.BookingStatusConfirmed, res.Booking.BookingStatus)

	var count int64
	require.NoError(t, db.Model(&models.Booking{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreateFromEvent_DuplicateInsertRedirects(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	keys := slotKeys()
	keys.TotalAmount = dec("100")

	first, err := svc.CreateFromEvent(ctx, keys, dec("40"), "evt_a")
	require.NoError(t, err)
	require.True(t, first.Created)

	// the second insert for the same slot hits the uniqueness constraint
	// and is redirected onto the existing record
	second, err := svc.CreateFromEvent(ctx, keys, dec("60"), "evt_b")
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.True(t, second.ConflictResolved)
	assert.Equal(t, first.Booking.ID, second.Booking.ID)

	var count int64
	require.NoError(t, db.Model(&models.Booking{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	stored, err := svc.GetBooking(ctx, first.Booking.ID)
	require.NoError(t, err)
	assert.True(t, stored.PaymentAmount.Equal(dec("100")))
	assert.Equal(t, types.PaymentStatusCompleted, stored.PaymentStatus)
	assert.Len(t, stored.Transactions, 2)
}

func TestCreateFromEvent_RedeliveryThroughCreatePath(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	keys := slotKeys()
	keys.TotalAmount = dec("100")

	first, err := svc.CreateFromEvent(ctx, keys, dec("40"), "evt_a")
	require.NoError(t, err)

	// a redelivered create lands on the duplicate-insert path, re-resolves,
	// and the event-id re-check refuses to double-count
	again, err := svc.CreateFromEvent(ctx, keys, dec("40"), "evt_a")
	require.NoError(t, err)
	assert.True(t, again.ConflictResolved)
	assert.True(t, again.AlreadyApplied)

	stored, err := svc.GetBooking(ctx, first.Booking.ID)
	require.NoError(t, err)
	assert.True(t, stored.PaymentAmount.Equal(dec("40")))
	assert.Len(t, stored.Transactions, 1)
}

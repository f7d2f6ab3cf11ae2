package booking

import (
	"context"
	"testing"
	"time"

	models "github.com/hevolife/bookingfast/internal/models"
	types "github.com/hevolife/bookingfast/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slotKeys() CorrelationKeys {
	return CorrelationKeys{
		UserID:        "u1",
		ServiceID:     "s1",
		CustomerEmail: "alice@example.com",
		BookingDate:   "2026-09-01",
		BookingTime:   "10:00",
	}
}

func TestFindOpenBooking_ExactMatchWins(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	exact := seedBooking(t, db, &models.Booking{
		UserID: "u1", ServiceID: "s1", CustomerEmail: "alice@example.com",
		BookingDate: "2026-09-01", BookingTime: "10:00",
		CreatedAt: time.Now().Add(-48 * time.Hour),
	})
	// a newer open booking with the same email must not steal the event
	seedBooking(t, db, &models.Booking{
		UserID: "u1", ServiceID: "s1", CustomerEmail: "alice@example.com",
		BookingDate: "2026-09-02", BookingTime: "11:00",
		CreatedAt: time.Now(),
	})

	got, err := svc.FindOpenBooking(ctx, slotKeys())
	require.NoError(t, err)
	assert.Equal(t, exact.ID, got.ID)
}

func TestFindOpenBooking_RelaxedNewestFirst(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	seedBooking(t, db, &models.Booking{
		UserID: "u1", ServiceID: "s1", CustomerEmail: "alice@example.com",
		BookingDate: "2026-09-01", BookingTime: "10:00",
		CreatedAt: time.Now().Add(-48 * time.Hour),
	})
	newest := seedBooking(t, db, &models.Booking{
		UserID: "u1", ServiceID: "s1", CustomerEmail: "alice@example.com",
		BookingDate: "2026-09-02", BookingTime: "11:00",
		CreatedAt: time.Now(),
	})
	// same email under another tenant is out of scope for this step
	seedBooking(t, db, &models.Booking{
		UserID: "u2", ServiceID: "s1", CustomerEmail: "alice@example.com",
		BookingDate: "2026-09-03", BookingTime: "12:00",
		CreatedAt: time.Now().Add(time.Hour),
	})

	// no date/time: the exact step cannot run, email+user_id takes over
	got, err := svc.FindOpenBooking(ctx, CorrelationKeys{
		UserID: "u1", CustomerEmail: "alice@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, newest.ID, got.ID)
}

func TestFindOpenBooking_EmailOnlySingleHit(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	only := seedBooking(t, db, &models.Booking{
		UserID: "u1", ServiceID: "s1", CustomerEmail: "bob@example.com",
		BookingDate: "2026-09-01", BookingTime: "10:00",
	})
	seedBooking(t, db, &models.Booking{
		UserID: "u1", ServiceID: "s1", CustomerEmail: "other@example.com",
		BookingDate: "2026-09-01", BookingTime: "11:00",
	})

	got, err := svc.FindOpenBooking(ctx, CorrelationKeys{CustomerEmail: "bob@example.com"})
	require.NoError(t, err)
	assert.Equal(t, only.ID, got.ID)
}

func TestFindOpenBooking_EmailOnlyAmbiguous(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	seedBooking(t, db, &models.Booking{
		UserID: "u1", ServiceID: "s1", CustomerEmail: "bob@example.com",
		BookingDate: "2026-09-01", BookingTime: "10:00",
	})
	seedBooking(t, db, &models.Booking{
		UserID: "u2", ServiceID: "s1", CustomerEmail: "bob@example.com",
		BookingDate: "2026-09-02", BookingTime: "11:00",
	})

	// refuse to guess between several candidates rather than credit the
	// wrong ledger
	_, err := svc.FindOpenBooking(ctx, CorrelationKeys{CustomerEmail: "bob@example.com"})
	assert.ErrorIs(t, err, ErrAmbiguousMatch)
}

func TestFindOpenBooking_IgnoresClosedBookings(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	seedBooking(t, db, &models.Booking{
		UserID: "u1", ServiceID: "s1", CustomerEmail: "alice@example.com",
		BookingDate: "2026-09-01", BookingTime: "10:00",
		BookingStatus: types.BookingStatusCancelled,
	})

	_, err := svc.FindOpenBooking(ctx, slotKeys())
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestFindExactBooking_RequiresFullSlot(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	b := seedBooking(t, db, &models.Booking{
		UserID: "u1", ServiceID: "s1", CustomerEmail: "alice@example.com",
		BookingDate: "2026-09-01", BookingTime: "10:00",
	})

	got, err := svc.FindExactBooking(ctx, slotKeys())
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)

	shifted := slotKeys()
	shifted.BookingTime = "10:30"
	_, err = svc.FindExactBooking(ctx, shifted)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

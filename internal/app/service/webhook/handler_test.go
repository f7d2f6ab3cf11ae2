package webhook

import (
	"testing"

	"github.com/hevolife/bookingfast/internal/app/service/booking"
	models "github.com/hevolife/bookingfast/internal/models"
	types "github.com/hevolife/bookingfast/pkg/types"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOutcomeFromApply_AllCases(t *testing.T) {
	b := &models.Booking{
		ID:            "b1",
		PaymentAmount: decimal.RequireFromString("100"),
		PaymentStatus: types.PaymentStatusCompleted,
		BookingStatus: types.BookingStatusConfirmed,
	}

	tests := []struct {
		name string
		res  *booking.ApplyResult
		want types.WebhookOutcomeType
	}{
		{name: "already applied", res: &booking.ApplyResult{Booking: b, AlreadyApplied: true}, want: types.WebhookOutcomeSessionAlreadyProcessed},
		{name: "conflict resolved", res: &booking.ApplyResult{Booking: b, ConflictResolved: true}, want: types.WebhookOutcomeConflictResolved},
		{
			// a conflict resolved onto an already-processed row is still a
			// conflict resolution, not a duplicate
			name: "conflict resolved already applied",
			res:  &booking.ApplyResult{Booking: b, AlreadyApplied: true, ConflictResolved: true},
			want: types.WebhookOutcomeConflictResolved,
		},
		{name: "created", res: &booking.ApplyResult{Booking: b, Created: true}, want: types.WebhookOutcomeBookingCreated},
		{name: "updated", res: &booking.ApplyResult{Booking: b}, want: types.WebhookOutcomeExistingBookingUpdated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := outcomeFromApply(tt.res)
			assert.Equal(t, tt.want, out.Type)
			assert.True(t, out.Received)
			assert.Equal(t, "b1", out.BookingID)
			assert.Equal(t, types.PaymentStatusCompleted, out.PaymentStatus)
			assert.Equal(t, types.BookingStatusConfirmed, out.BookingStatus)
		})
	}
}

func TestOutcomeFromApply_NilBooking(t *testing.T) {
	out := outcomeFromApply(&booking.ApplyResult{AlreadyApplied: true})
	assert.Equal(t, types.WebhookOutcomeSessionAlreadyProcessed, out.Type)
	assert.Empty(t, out.BookingID)
}

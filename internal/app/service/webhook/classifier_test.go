package webhook

import (
	"testing"

	stripeapi "github.com/stripe/stripe-go/v82"
	"github.com/stretchr/testify/assert"
)

func paidSession(md map[string]string) *stripeapi.CheckoutSession {
	return &stripeapi.CheckoutSession{
		Status:        stripeapi.CheckoutSessionStatusComplete,
		PaymentStatus: stripeapi.CheckoutSessionPaymentStatusPaid,
		Metadata:      md,
	}
}

func TestClassify_AllRoutes(t *testing.T) {
	tests := []struct {
		name string
		sess *stripeapi.CheckoutSession
		want Route
	}{
		{
			name: "session not complete",
			sess: &stripeapi.CheckoutSession{
				Status:        stripeapi.CheckoutSessionStatusOpen,
				PaymentStatus: stripeapi.CheckoutSessionPaymentStatusPaid,
			},
			want: RouteNotPaid,
		},
		{
			name: "complete but unpaid",
			sess: &stripeapi.CheckoutSession{
				Status:        stripeapi.CheckoutSessionStatusComplete,
				PaymentStatus: stripeapi.CheckoutSessionPaymentStatusUnpaid,
			},
			want: RouteNotPaid,
		},
		{name: "subscription flag", sess: paidSession(map[string]string{"subscription": "true"}), want: RouteSubscription},
		{name: "subscription numeric flag", sess: paidSession(map[string]string{"subscription": "1"}), want: RouteSubscription},
		{
			// subscription wins when both flags are present
			name: "subscription beats create",
			sess: paidSession(map[string]string{"subscription": "true", "create_booking_after_payment": "true"}),
			want: RouteSubscription,
		},
		{name: "create after payment", sess: paidSession(map[string]string{"create_booking_after_payment": "true"}), want: RouteCreateBooking},
		{name: "flag must be truthy", sess: paidSession(map[string]string{"create_booking_after_payment": "yes"}), want: RouteExistingBooking},
		{name: "no flags", sess: paidSession(nil), want: RouteExistingBooking},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.sess))
		})
	}
}

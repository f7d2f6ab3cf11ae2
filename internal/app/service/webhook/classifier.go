package webhook

import (
	stripeapi "github.com/stripe/stripe-go/v82"
)

// Route is the downstream handling a payment event is sent to. The decision
// is made purely from metadata flags, never from amount or timing.
type Route string

const (
	// RouteNotPaid covers every incomplete checkout attempt; it is a
	// terminal acknowledge-and-ignore outcome, not an error.
	RouteNotPaid Route = "not_paid"
	// RouteSubscription activates an account-level subscription flag.
	RouteSubscription Route = "subscription"
	// RouteCreateBooking matches with a create-if-absent policy: the
	// client may or may not have created the booking before paying.
	RouteCreateBooking Route = "create_booking"
	// RouteExistingBooking matches with a must-exist policy.
	RouteExistingBooking Route = "existing_booking"
)

// Classify routes a checkout session.
func Classify(sess *stripeapi.CheckoutSession) Route {
	if sess.Status != stripeapi.CheckoutSessionStatusComplete ||
		sess.PaymentStatus != stripeapi.CheckoutSessionPaymentStatusPaid {
		return RouteNotPaid
	}
	if flagSet(sess.Metadata["subscription"]) {
		return RouteSubscription
	}
	if flagSet(sess.Metadata["create_booking_after_payment"]) {
		return RouteCreateBooking
	}
	return RouteExistingBooking
}

func flagSet(v string) bool {
	return v == "true" || v == "1"
}

package types

import "github.com/shopspring/decimal"

// WebhookOutcomeType discriminates how an inbound payment event was handled.
// Every successfully-acknowledged case carries one of these, including the
// "ignored" ones, so upstream retry behavior stays observable.
type WebhookOutcomeType string

const (
	WebhookOutcomePaymentNotComplete       WebhookOutcomeType = "payment_not_complete"
	WebhookOutcomeCachedDuplicatePrevented WebhookOutcomeType = "cached_duplicate_prevented"
	WebhookOutcomeSessionAlreadyProcessed  WebhookOutcomeType = "session_already_processed"
	WebhookOutcomeExistingBookingUpdated   WebhookOutcomeType = "existing_booking_updated"
	WebhookOutcomeBookingCreated           WebhookOutcomeType = "booking_created"
	WebhookOutcomeConflictResolved         WebhookOutcomeType = "conflict_resolved"
	WebhookOutcomeSubscription             WebhookOutcomeType = "subscription"
)

// WebhookOutcome is the result of processing one payment event. It is what
// the idempotency cache memoizes, keyed by event id.
type WebhookOutcome struct {
	Type          WebhookOutcomeType `json:"type"`
	Received      bool               `json:"received"`
	BookingID     string             `json:"booking_id,omitempty"`
	PaymentAmount decimal.Decimal    `json:"payment_amount,omitempty"`
	PaymentStatus PaymentStatus      `json:"payment_status,omitempty"`
	BookingStatus BookingStatus      `json:"booking_status,omitempty"`
	PlanID        string             `json:"plan_id,omitempty"`
}

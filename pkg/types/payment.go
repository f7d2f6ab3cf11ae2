package types

// PaymentMethod identifies how a transaction was settled.
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodStripe   PaymentMethod = "stripe"
	PaymentMethodCheck    PaymentMethod = "check"
)

// TransactionStatus is the lifecycle state of a single ledger entry.
// pending is reserved for not-yet-confirmed payment links; cancelled marks a
// voided pending link. Entries are never removed, only re-statused.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusCancelled TransactionStatus = "cancelled"
)

// CountsTowardPaid reports whether a transaction in this status contributes
// to the aggregate paid amount.
func (s TransactionStatus) CountsTowardPaid() bool {
	return s != TransactionStatusPending && s != TransactionStatusCancelled
}

// PaymentStatus is derived from the aggregate paid amount vs the total,
// never set directly.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusPartial   PaymentStatus = "partial"
	PaymentStatusCompleted PaymentStatus = "completed"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Open reports whether a booking can still receive payments.
func (s BookingStatus) Open() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed
}

// OpenBookingStatuses is the status set the matcher restricts its
// candidate queries to.
var OpenBookingStatuses = []BookingStatus{BookingStatusPending, BookingStatusConfirmed}

type InvoiceStatus string

const (
	InvoiceStatusDraft InvoiceStatus = "draft"
	InvoiceStatusSent  InvoiceStatus = "sent"
	InvoiceStatusPaid  InvoiceStatus = "paid"
	InvoiceStatusQuote InvoiceStatus = "quote"
)

package handlers

import (
	"time"

	"github.com/hevolife/bookingfast/internal/app/service/ledger"
	"github.com/hevolife/bookingfast/pkg/response"
	types "github.com/hevolife/bookingfast/pkg/types"

	"github.com/shopspring/decimal"
)

// RespOK is a generic OK envelope for endpoints returning no specific data.
type RespOK struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    interface{}              `json:"data"`
}

// RespBooking wraps a booking in the standard envelope.
type RespBooking struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    SwaggerBooking           `json:"data"`
}

// RespPaymentSummary wraps a ledger summary in the standard envelope.
type RespPaymentSummary struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    ledger.Summary           `json:"data"`
}

// RespPaymentLink wraps the created checkout link in the standard envelope.
type RespPaymentLink struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    SwaggerPaymentLink       `json:"data"`
}

// SwaggerBooking is a simplified view of models.Booking for documentation purposes.
type SwaggerBooking struct {
	ID            string              `json:"id"`
	UserID        string              `json:"user_id"`
	ServiceID     string              `json:"service_id"`
	BookingDate   string              `json:"booking_date"`
	BookingTime   string              `json:"booking_time"`
	CustomerEmail string              `json:"customer_email"`
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	PaymentAmount decimal.Decimal     `json:"payment_amount"`
	PaymentStatus types.PaymentStatus `json:"payment_status"`
	BookingStatus types.BookingStatus `json:"booking_status"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// SwaggerPaymentLink is a simplified view of paymentlink.CreateResult.
type SwaggerPaymentLink struct {
	URL           string    `json:"url"`
	TransactionID string    `json:"transaction_id"`
	ExpiresAt     time.Time `json:"expires_at"`
}

package models

import (
	"time"

	"github.com/hevolife/bookingfast/pkg/types"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Transaction is a single ledger entry embedded in a booking's JSONB
// transactions column. Entries are append-only: a voided payment link is
// re-statused to cancelled, never removed, so the audit trail stays intact.
type Transaction struct {
	ID     string              `json:"id"`
	Amount decimal.Decimal     `json:"amount"`
	Method types.PaymentMethod `json:"method"`
	Status types.TransactionStatus `json:"status"`
	// Note carries the human-readable description. Provider-originated
	// entries embed the originating event id here, payment links embed the
	// shareable URL; this is the durable idempotency anchor.
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

// Booking 预约记录，含内嵌交易账本
type Booking struct {
	ID              string `gorm:"column:id;primary_key;type:uuid" json:"id"`
	UserID          string `gorm:"column:user_id;type:varchar(64);not null;index;uniqueIndex:unique_booking_slot,priority:1" json:"user_id"`
	ServiceID       string `gorm:"column:service_id;type:varchar(64);uniqueIndex:unique_booking_slot,priority:2" json:"service_id"`
	CustomerEmail   string `gorm:"column:customer_email;type:varchar(255);not null;index;uniqueIndex:unique_booking_slot,priority:5" json:"customer_email"`
	ClientName      string `gorm:"column:client_name;type:varchar(255)" json:"client_name"`
	ClientFirstname string `gorm:"column:client_firstname;type:varchar(255)" json:"client_firstname"`
	ClientPhone     string `gorm:"column:client_phone;type:varchar(64)" json:"client_phone"`
	// BookingDate is stored as YYYY-MM-DD, BookingTime as HH:MM, matching
	// what the public booking flow submits.
	BookingDate     string `gorm:"column:booking_date;type:varchar(10);uniqueIndex:unique_booking_slot,priority:3" json:"booking_date"`
	BookingTime     string `gorm:"column:booking_time;type:varchar(5);uniqueIndex:unique_booking_slot,priority:4" json:"booking_time"`
	DurationMinutes int    `gorm:"column:duration_minutes" json:"duration_minutes"`
	Quantity        int    `gorm:"column:quantity;default:1" json:"quantity"`
	// TotalAmount is the contract amount owed, fixed once set.
	TotalAmount decimal.Decimal `gorm:"column:total_amount;type:numeric(12,2);not null" json:"total_amount"`
	// PaymentAmount is derived: the sum of amounts of transactions whose
	// status counts toward paid. Never set directly.
	PaymentAmount decimal.Decimal                    `gorm:"column:payment_amount;type:numeric(12,2);not null;default:0" json:"payment_amount"`
	PaymentStatus types.PaymentStatus                `gorm:"column:payment_status;type:varchar(32);not null;default:'pending'" json:"payment_status"`
	BookingStatus types.BookingStatus                `gorm:"column:booking_status;type:varchar(32);not null;default:'pending';index" json:"booking_status"`
	Transactions  datatypes.JSONSlice[Transaction]   `gorm:"column:transactions;type:jsonb;default:'[]'" json:"transactions"`
	CreatedAt     time.Time                          `json:"created_at"`
	UpdatedAt     time.Time                          `json:"updated_at"`
}

func (Booking) TableName() string {
	return "booking"
}

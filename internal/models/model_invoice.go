package models

import (
	"time"

	"github.com/hevolife/bookingfast/pkg/types"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// InvoicePayment is a flat ledger entry embedded in an invoice's JSONB
// payments column. Amount may be negative to represent a refund.
type InvoicePayment struct {
	ID        string              `json:"id"`
	Amount    decimal.Decimal     `json:"amount"`
	Method    types.PaymentMethod `json:"method"`
	Note      string              `json:"note"`
	CreatedAt time.Time           `json:"created_at"`
}

// Invoice covers both invoices and quotes (status=quote).
type Invoice struct {
	ID          string                               `gorm:"column:id;primary_key;type:uuid" json:"id"`
	UserID      string                               `gorm:"column:user_id;type:varchar(64);not null;index;uniqueIndex:unique_user_invoice_number,priority:1" json:"user_id"`
	ClientEmail string                               `gorm:"column:client_email;type:varchar(255);index" json:"client_email"`
	Number      string                               `gorm:"column:number;type:varchar(64);not null;uniqueIndex:unique_user_invoice_number,priority:2" json:"number"`
	Status      types.InvoiceStatus                  `gorm:"column:status;type:varchar(32);not null;default:'draft'" json:"status"`
	TotalAmount decimal.Decimal                      `gorm:"column:total_amount;type:numeric(12,2);not null" json:"total_amount"`
	Payments    datatypes.JSONSlice[InvoicePayment]  `gorm:"column:payments;type:jsonb;default:'[]'" json:"payments"`
	CreatedAt   time.Time                            `json:"created_at"`
	UpdatedAt   time.Time                            `json:"updated_at"`
}

func (Invoice) TableName() string {
	return "invoice"
}

// PaidAmount is the plain sum of all payment amounts, refunds included.
func (i *Invoice) PaidAmount() decimal.Decimal {
	sum := decimal.Zero
	for _, p := range i.Payments {
		sum = sum.Add(p.Amount)
	}
	return sum
}

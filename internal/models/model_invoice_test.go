package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestInvoicePaidAmount(t *testing.T) {
	inv := &Invoice{}
	assert.True(t, inv.PaidAmount().IsZero())

	inv.Payments = append(inv.Payments,
		InvoicePayment{Amount: decimal.RequireFromString("60")},
		InvoicePayment{Amount: decimal.RequireFromString("40")},
		// refund
		InvoicePayment{Amount: decimal.RequireFromString("-25")},
	)
	assert.True(t, inv.PaidAmount().Equal(decimal.RequireFromString("75")))
}

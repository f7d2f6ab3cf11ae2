package handlers

import (
	"errors"
	"net/http"

	"github.com/hevolife/bookingfast/internal/app/service/invoice"
	"github.com/hevolife/bookingfast/pkg/response"
	types "github.com/hevolife/bookingfast/pkg/types"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type AddInvoicePaymentRequest struct {
	Amount decimal.Decimal     `json:"amount"`
	Method types.PaymentMethod `json:"method"`
	Note   string              `json:"note"`
}

func invoiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, invoice.ErrInvoiceNotFound),
		errors.Is(err, invoice.ErrInvalidAmount),
		errors.Is(err, invoice.ErrAmountExceedsRemaining):
		c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
	default:
		c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
	}
}

// @Summary      Add invoice payment
// @Description  Appends a payment (or a refund with a negative amount) to the invoice ledger and updates its status.
// @Tags         Invoice
// @Accept       json
// @Produce      json
// @Param        id path string true "Invoice ID"
// @Param        request body handlers.AddInvoicePaymentRequest true "Payment"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/admin/invoices/{id}/payments [post]
func ApiAddInvoicePayment(svc *invoice.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddInvoicePaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		inv, err := svc.AddPayment(c.Request.Context(), c.Param("id"), req.Amount, req.Method, req.Note)
		if err != nil {
			invoiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(inv))
	}
}

// @Summary      Invoice payment summary
// @Description  Returns paid/remaining/status for an invoice.
// @Tags         Invoice
// @Produce      json
// @Param        id path string true "Invoice ID"
// @Success      200  {object}  handlers.RespPaymentSummary
// @Router       /api/v1/admin/invoices/{id}/payments/summary [get]
func ApiInvoicePaymentSummary(svc *invoice.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sum, err := svc.PaymentSummary(c.Request.Context(), c.Param("id"))
		if err != nil {
			invoiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(sum))
	}
}

func RegisterAdminInvoiceRoutes(r gin.IRouter, svc *invoice.Service) {
	r.POST("/invoices/:id/payments", ApiAddInvoicePayment(svc))
	r.GET("/invoices/:id/payments/summary", ApiInvoicePaymentSummary(svc))
}

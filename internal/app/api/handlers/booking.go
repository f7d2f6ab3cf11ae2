package handlers

import (
	"errors"
	"net/http"

	"github.com/hevolife/bookingfast/internal/app/service/booking"
	"github.com/hevolife/bookingfast/internal/app/service/paymentlink"
	"github.com/hevolife/bookingfast/internal/app/service/statistics"
	"github.com/hevolife/bookingfast/pkg/response"
	types "github.com/hevolife/bookingfast/pkg/types"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type AddTransactionRequest struct {
	Amount decimal.Decimal     `json:"amount"`
	Method types.PaymentMethod `json:"method"`
	Note   string              `json:"note"`
}

type CreatePaymentLinkRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// isClientError separates validation-style failures from persistence ones.
func isClientError(err error) bool {
	return errors.Is(err, booking.ErrInvalidAmount) ||
		errors.Is(err, booking.ErrAmountExceedsRemaining) ||
		errors.Is(err, booking.ErrTransactionNotFound) ||
		errors.Is(err, booking.ErrTransactionNotPending) ||
		errors.Is(err, booking.ErrBookingNotFound)
}

func bookingError(c *gin.Context, err error) {
	if isClientError(err) {
		c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
}

// @Summary      Add booking transaction
// @Description  Appends a manual payment (or a refund with a negative amount) to a booking's ledger.
// @Tags         Booking
// @Accept       json
// @Produce      json
// @Param        id path string true "Booking ID"
// @Param        request body handlers.AddTransactionRequest true "Transaction"
// @Success      200  {object}  handlers.RespBooking
// @Router       /api/v1/admin/bookings/{id}/transactions [post]
func ApiAddBookingTransaction(svc *booking.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddTransactionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		b, err := svc.AddTransaction(c.Request.Context(), c.Param("id"), req.Amount, req.Method, req.Note)
		if err != nil {
			bookingError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(b))
	}
}

// @Summary      Cancel pending transaction
// @Description  Voids a pending payment-link entry. Settled entries are immutable.
// @Tags         Booking
// @Produce      json
// @Param        id path string true "Booking ID"
// @Param        txid path string true "Transaction ID"
// @Success      200  {object}  handlers.RespBooking
// @Router       /api/v1/admin/bookings/{id}/transactions/{txid}/cancel [post]
func ApiCancelBookingTransaction(svc *booking.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		b, err := svc.CancelTransaction(c.Request.Context(), c.Param("id"), c.Param("txid"))
		if err != nil {
			bookingError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(b))
	}
}

// @Summary      Booking payment summary
// @Description  Returns paid/remaining/status for the booking modal and POS checkout.
// @Tags         Booking
// @Produce      json
// @Param        id path string true "Booking ID"
// @Success      200  {object}  handlers.RespPaymentSummary
// @Router       /api/v1/admin/bookings/{id}/payments/summary [get]
func ApiBookingPaymentSummary(svc *booking.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sum, err := svc.PaymentSummary(c.Request.Context(), c.Param("id"))
		if err != nil {
			bookingError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(sum))
	}
}

// @Summary      Create payment link
// @Description  Creates a Stripe Checkout session and records it as a pending ledger entry.
// @Tags         Booking
// @Accept       json
// @Produce      json
// @Param        id path string true "Booking ID"
// @Param        request body handlers.CreatePaymentLinkRequest true "Amount"
// @Success      200  {object}  handlers.RespPaymentLink
// @Router       /api/v1/admin/bookings/{id}/payment_link [post]
func ApiCreatePaymentLink(svc *paymentlink.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreatePaymentLinkRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		res, err := svc.CreateForBooking(c.Request.Context(), c.Param("id"), req.Amount)
		if err != nil {
			bookingError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Expire pending links
// @Description  Cancels pending payment-link entries past the expiry window.
// @Tags         Booking
// @Produce      json
// @Param        id path string true "Booking ID"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/admin/bookings/{id}/payment_link/expire [post]
func ApiExpirePaymentLinks(svc *booking.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		n, err := svc.ExpirePendingLinks(c.Request.Context(), c.Param("id"))
		if err != nil {
			bookingError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(map[string]int{"expired": n}))
	}
}

// @Summary      Scan bookings
// @Description  Paginated admin listing with filters.
// @Tags         Booking
// @Accept       json
// @Produce      json
// @Param        request body booking.ScanBookingsRequest true "Scan request"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/admin/bookings/scan [post]
func ApiScanBookings(svc *booking.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req booking.ScanBookingsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		res, err := svc.ScanBookings(c.Request.Context(), &req)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Booking statistics
// @Description  Dashboard statistics over bookings.
// @Tags         Booking
// @Accept       json
// @Produce      json
// @Param        request body statistics.BookingStatisticRequest true "Statistics request"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/admin/statistics [post]
func ApiBookingStatistics(svc *statistics.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req statistics.BookingStatisticRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		res, err := svc.GetBookingStatistics(c.Request.Context(), &req)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

func RegisterAdminBookingRoutes(r gin.IRouter, svc *booking.Service, links *paymentlink.Service, stats *statistics.Service) {
	r.POST("/bookings/scan", ApiScanBookings(svc))
	r.GET("/bookings/:id/payments/summary", ApiBookingPaymentSummary(svc))
	r.POST("/bookings/:id/transactions", ApiAddBookingTransaction(svc))
	r.POST("/bookings/:id/transactions/:txid/cancel", ApiCancelBookingTransaction(svc))
	r.POST("/bookings/:id/payment_link", ApiCreatePaymentLink(links))
	r.POST("/bookings/:id/payment_link/expire", ApiExpirePaymentLinks(svc))
	r.POST("/statistics", ApiBookingStatistics(stats))
}

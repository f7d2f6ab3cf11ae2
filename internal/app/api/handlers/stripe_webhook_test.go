package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/hevolife/bookingfast/internal/app/service/booking"
	wh "github.com/hevolife/bookingfast/internal/app/service/webhook"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookErrorStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "missing correlation", err: wh.ErrMissingCorrelation, want: http.StatusBadRequest},
		{name: "wrapped missing correlation", err: fmt.Errorf("%w: customer email", wh.ErrMissingCorrelation), want: http.StatusBadRequest},
		{name: "booking not found", err: booking.ErrBookingNotFound, want: http.StatusNotFound},
		{name: "ambiguous match", err: booking.ErrAmbiguousMatch, want: http.StatusNotFound},
		{name: "anything else", err: fmt.Errorf("db connection lost"), want: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, webhookErrorStatus(tt.err))
		})
	}
}

func TestRegisterRoutes_RegistersEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterWebhookRoutes(r.Group("/api/v1/webhooks"), nil, nil)
	RegisterAdminBookingRoutes(r.Group("/api/v1/admin"), nil, nil, nil)
	RegisterAdminInvoiceRoutes(r.Group("/api/v1/admin"), nil)

	routes := r.Routes()
	contains := func(target string) bool {
		for _, rt := range routes {
			if rt.Method+" "+rt.Path == target {
				return true
			}
		}
		return false
	}

	require.True(t, contains("POST /api/v1/webhooks/stripe"))
	require.True(t, contains("POST /api/v1/admin/bookings/scan"))
	require.True(t, contains("GET /api/v1/admin/bookings/:id/payments/summary"))
	require.True(t, contains("POST /api/v1/admin/bookings/:id/transactions"))
	require.True(t, contains("POST /api/v1/admin/bookings/:id/transactions/:txid/cancel"))
	require.True(t, contains("POST /api/v1/admin/bookings/:id/payment_link"))
	require.True(t, contains("POST /api/v1/admin/bookings/:id/payment_link/expire"))
	require.True(t, contains("POST /api/v1/admin/statistics"))
	require.True(t, contains("POST /api/v1/admin/invoices/:id/payments"))
	require.True(t, contains("GET /api/v1/admin/invoices/:id/payments/summary"))
}

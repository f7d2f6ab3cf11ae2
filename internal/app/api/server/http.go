package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/hevolife/bookingfast/docs"
	"github.com/hevolife/bookingfast/internal/app/api/handlers"
	mw "github.com/hevolife/bookingfast/internal/app/api/middleware"
	bookingsvc "github.com/hevolife/bookingfast/internal/app/service/booking"
	invoicesvc "github.com/hevolife/bookingfast/internal/app/service/invoice"
	"github.com/hevolife/bookingfast/internal/app/service/paymentlink"
	"github.com/hevolife/bookingfast/internal/app/service/statistics"
	wh "github.com/hevolife/bookingfast/internal/app/service/webhook"
	stripeplatform "github.com/hevolife/bookingfast/internal/platform/stripe"
	cfgpkg "github.com/hevolife/bookingfast/pkg/config"
	metrics "github.com/hevolife/bookingfast/pkg/metrics"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func newEngine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	// Add request tracing middleware only; request logger & access log are attached per group in registerRoutes
	r.Use(mw.TraceMiddleware())
	return r
}

type RouteDeps struct {
	fx.In

	Log       *zap.SugaredLogger
	Cfg       *cfgpkg.Config
	Stripe    *stripeplatform.Client
	Webhook   *wh.Handler
	Bookings  *bookingsvc.Service
	Invoices  *invoicesvc.Service
	Links     *paymentlink.Service
	Stats     *statistics.Service
}

func registerRoutes(r *gin.Engine, d RouteDeps) {
	// Prometheus metrics
	if d.Cfg != nil && d.Cfg.MetricsAddr != "" {
		p := metrics.NewPrometheus(metrics.NewPrometheusOptions{
			ReqCntURLLabelMappingFn: func(c *gin.Context) string {
				if fp := c.FullPath(); fp != "" {
					return fp
				}
				return c.Request.URL.Path
			},
			Logger: d.Log,
		})
		p.SetListenAddress(d.Cfg.MetricsAddr)
		p.Use(r)

		d.Log.Infow("metrics started", "addr", d.Cfg.MetricsAddr)
	}

	// Public group: request logger + access log
	pub := r.Group("/")
	pub.Use(mw.RequestLoggerMiddleware(d.Log), mw.AccessLogMiddleware())
	handlers.RegisterHealthRoutes(pub)
	// Swagger UI
	docs.SwaggerInfo.BasePath = "/"
	pub.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	apiV1 := r.Group("/api/v1")
	apiV1.Use(mw.RequestLoggerMiddleware(d.Log), mw.AccessLogMiddleware())

	// Stripe calls this unauthenticated; the signature check is the gate.
	handlers.RegisterWebhookRoutes(apiV1.Group("/webhooks"), d.Stripe, d.Webhook)

	// Admin APIs behind JWT
	admin := apiV1.Group("/admin")
	admin.Use(mw.JWTAuthMiddleware(d.Cfg.Auth.JWTSecret))
	handlers.RegisterAdminBookingRoutes(admin, d.Bookings, d.Links, d.Stats)
	handlers.RegisterAdminInvoiceRoutes(admin, d.Invoices)
}

func runServer(lc fx.Lifecycle, log *zap.SugaredLogger, cfg *cfgpkg.Config, r *gin.Engine) {
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting HTTP server", "addr", addr)
			go func() {
				if err := srv.ListenAndServe(); err != nil {
					log.Errorf("server error: %v", err)
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Infow("stopping HTTP server")
			shutdownCtx, cancel := context.WithTimeout(ctx, 120*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

var Module = fx.Options(
	fx.Provide(newEngine),
	fx.Invoke(registerRoutes),
	fx.Invoke(runServer),
)

package app

import (
	"time"

	"github.com/hevolife/bookingfast/internal/app/api/server"
	"github.com/hevolife/bookingfast/internal/app/service/booking"
	"github.com/hevolife/bookingfast/internal/app/service/eventcache"
	"github.com/hevolife/bookingfast/internal/app/service/eventlog"
	"github.com/hevolife/bookingfast/internal/app/service/invoice"
	"github.com/hevolife/bookingfast/internal/app/service/paymentlink"
	"github.com/hevolife/bookingfast/internal/app/service/statistics"
	"github.com/hevolife/bookingfast/internal/app/service/subscription"
	"github.com/hevolife/bookingfast/internal/app/service/webhook"
	"github.com/hevolife/bookingfast/internal/platform/db"
	stripeplatform "github.com/hevolife/bookingfast/internal/platform/stripe"
	"github.com/hevolife/bookingfast/pkg/config"
	"github.com/hevolife/bookingfast/pkg/logger"

	"go.uber.org/fx"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 10 * time.Second
)

var Module = fx.Options(
	logger.Module,
	config.Module,
	db.Module,
	stripeplatform.Module,
	server.Module,
	eventcache.Module,
	eventlog.Module,
	subscription.Module,
	booking.Module,
	invoice.Module,
	paymentlink.Module,
	statistics.Module,
	webhook.Module,
)

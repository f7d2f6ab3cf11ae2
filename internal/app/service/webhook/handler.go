package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hevolife/bookingfast/internal/app/service/booking"
	"github.com/hevolife/bookingfast/internal/app/service/eventcache"
	"github.com/hevolife/bookingfast/internal/app/service/eventlog"
	"github.com/hevolife/bookingfast/internal/app/service/subscription"
	models "github.com/hevolife/bookingfast/internal/models"
	"github.com/hevolife/bookingfast/pkg/logctx"
	types "github.com/hevolife/bookingfast/pkg/types"

	stripeapi "github.com/stripe/stripe-go/v82"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// EventTypeCheckoutCompleted is the only event type that triggers domain
// logic; everything else is acknowledged without side effects.
const EventTypeCheckoutCompleted = "checkout.session.completed"

type Handler struct {
	cache      *eventcache.Cache
	bookingSvc *booking.Service
	subSvc     *subscription.Service
	eventLog   *eventlog.Service
	Logger     *zap.SugaredLogger
}

func NewHandler(cache *eventcache.Cache, bookingSvc *booking.Service, subSvc *subscription.Service, eventLog *eventlog.Service, log *zap.SugaredLogger) *Handler {
	return &Handler{cache: cache, bookingSvc: bookingSvc, subSvc: subSvc, eventLog: eventLog, Logger: log}
}

// HandleEvent processes one inbound Stripe event. Both the receipt and the
// outcome are written to the event log for reconciliation audits.
func (h *Handler) HandleEvent(ctx context.Context, event *stripeapi.Event) (out *types.WebhookOutcome, resErr error) {
	var traceID string
	if tid, ok := ctx.Value("traceID").(string); ok {
		traceID = tid
	}
	dataBytes, _ := json.Marshal(event.Data)

	h.eventLog.Save(ctx, &models.WebhookEventLog{
		Provider:  "stripe",
		EventID:   event.ID,
		EventType: string(event.Type),
		TraceID:   traceID,
		Data:      datatypes.JSON(dataBytes),
		Status:    models.WebhookEventLogStatusReceived,
	})

	defer func() {
		resMap := map[string]any{"outcome": out}
		status := models.WebhookEventLogStatusHandled
		if resErr != nil {
			resMap["error"] = resErr.Error()
			status = models.WebhookEventLogStatusHandleFailed
		}
		resBytes, _ := json.Marshal(resMap)
		h.eventLog.Save(ctx, &models.WebhookEventLog{
			Provider:  "stripe",
			EventID:   event.ID,
			EventType: string(event.Type),
			TraceID:   traceID,
			Data:      datatypes.JSON(dataBytes),
			Result:    func() *datatypes.JSON { j := datatypes.JSON(resBytes); return &j }(),
			Status:    status,
		})
	}()

	if string(event.Type) != EventTypeCheckoutCompleted {
		logctx.FromCtx(ctx, h.Logger).Infow("ignoring webhook event", "event_type", event.Type)
		return &types.WebhookOutcome{Received: true}, nil
	}

	var sess stripeapi.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return nil, fmt.Errorf("%w: malformed checkout session payload", ErrMissingCorrelation)
	}
	if sess.ID == "" {
		sess.ID = event.ID
	}

	return h.HandleCheckoutCompleted(ctx, &sess)
}

// HandleCheckoutCompleted is the reconciliation pipeline: idempotency cache,
// classifier, matcher, ledger merge, conflict-resolving write. The cache is
// reserved before the slow persistence path begins so near-simultaneous
// redeliveries collapse to one in-flight attempt; persistence failures
// release the reservation so a legitimate retry is not starved.
func (h *Handler) HandleCheckoutCompleted(ctx context.Context, sess *stripeapi.CheckoutSession) (*types.WebhookOutcome, error) {
	log := logctx.FromCtx(ctx, h.Logger)

	if Classify(sess) == RouteNotPaid {
		log.Infow("checkout not complete, acknowledging", "session_id", sess.ID,
			"status", sess.Status, "payment_status", sess.PaymentStatus)
		return &types.WebhookOutcome{Type: types.WebhookOutcomePaymentNotComplete, Received: true}, nil
	}

	if cached, found := h.cache.Check(sess.ID); found {
		if cached != nil {
			log.Infow("event already processed in this window", "session_id", sess.ID, "outcome", cached.Type)
			return cached, nil
		}
		log.Infow("event currently in flight", "session_id", sess.ID)
		return &types.WebhookOutcome{Type: types.WebhookOutcomeCachedDuplicatePrevented, Received: true}, nil
	}
	if !h.cache.Reserve(sess.ID) {
		return &types.WebhookOutcome{Type: types.WebhookOutcomeCachedDuplicatePrevented, Received: true}, nil
	}

	out, err := h.process(ctx, sess)
	if err != nil {
		h.cache.Release(sess.ID)
		return nil, err
	}
	h.cache.Complete(sess.ID, out)
	return out, nil
}

func (h *Handler) process(ctx context.Context, sess *stripeapi.CheckoutSession) (*types.WebhookOutcome, error) {
	log := logctx.FromCtx(ctx, h.Logger)

	switch Classify(sess) {
	case RouteSubscription:
		userID := sess.Metadata["user_id"]
		if userID == "" {
			return nil, fmt.Errorf("%w: user_id for subscription activation", ErrMissingCorrelation)
		}
		planID := sess.Metadata["plan_id"]
		if _, err := h.subSvc.Activate(ctx, userID, planID); err != nil {
			return nil, fmt.Errorf("subscription activation failed: %w", err)
		}
		return &types.WebhookOutcome{Type: types.WebhookOutcomeSubscription, Received: true, PlanID: planID}, nil

	case RouteCreateBooking:
		keys := NormalizeMetadata(sess)
		if err := validateForCreate(keys); err != nil {
			return nil, err
		}
		amount := AmountFromSession(sess)

		matched, err := h.bookingSvc.FindOpenBooking(ctx, keys)
		if err != nil && !errors.Is(err, booking.ErrBookingNotFound) {
			return nil, err
		}
		if matched != nil {
			res, applyErr := h.bookingSvc.ApplyEventPayment(ctx, matched.ID, amount, sess.ID)
			if applyErr != nil {
				return nil, applyErr
			}
			return outcomeFromApply(res), nil
		}

		log.Infow("no booking matched, creating from event", "session_id", sess.ID, "email", keys.CustomerEmail)
		res, createErr := h.bookingSvc.CreateFromEvent(ctx, keys, amount, sess.ID)
		if createErr != nil {
			return nil, createErr
		}
		return outcomeFromApply(res), nil

	default: // RouteExistingBooking
		keys := NormalizeMetadata(sess)
		if err := validateForLookup(keys); err != nil {
			return nil, err
		}
		amount := AmountFromSession(sess)

		matched, err := h.bookingSvc.FindOpenBooking(ctx, keys)
		if err != nil {
			// Not-found is surfaced so the provider retries once the
			// record becomes visible (replication lag).
			return nil, err
		}
		res, applyErr := h.bookingSvc.ApplyEventPayment(ctx, matched.ID, amount, sess.ID)
		if applyErr != nil {
			return nil, applyErr
		}
		return outcomeFromApply(res), nil
	}
}

func outcomeFromApply(res *booking.ApplyResult) *types.WebhookOutcome {
	out := &types.WebhookOutcome{Received: true}
	switch {
	case res.AlreadyApplied && !res.ConflictResolved:
		out.Type = types.WebhookOutcomeSessionAlreadyProcessed
	case res.ConflictResolved:
		out.Type = types.WebhookOutcomeConflictResolved
	case res.Created:
		out.Type = types.WebhookOutcomeBookingCreated
	default:
		out.Type = types.WebhookOutcomeExistingBookingUpdated
	}
	if res.Booking != nil {
		out.BookingID = res.Booking.ID
		out.PaymentAmount = res.Booking.PaymentAmount
		out.PaymentStatus = res.Booking.PaymentStatus
		out.BookingStatus = res.Booking.BookingStatus
	}
	return out
}

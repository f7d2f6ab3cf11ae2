package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var MetricsWebhookOutcome = &Metric{
	ID:          "webhookOutcome",
	Name:        "webhook_events_total",
	Description: "Processed Stripe webhook events, partitioned by outcome.",
	Type:        "counter_vec",
	Args:        []string{"outcome"},
}

var registerWebhookOutcomeOnce sync.Once

func webhookOutcomeCounter() *prometheus.CounterVec {
	registerWebhookOutcomeOnce.Do(func() {
		metric := NewMetric(MetricsWebhookOutcome, "")
		// Duplicate registration only happens in tests; keep the first.
		if err := prometheus.Register(metric); err != nil {
			if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
				metric = are.ExistingCollector
			}
		}
		MetricsWebhookOutcome.MetricCollector = metric
	})
	return MetricsWebhookOutcome.MetricCollector.(*prometheus.CounterVec)
}

// ObserveWebhookOutcome bumps the webhook outcome counter.
func ObserveWebhookOutcome(outcome string) {
	webhookOutcomeCounter().WithLabelValues(outcome).Inc()
}

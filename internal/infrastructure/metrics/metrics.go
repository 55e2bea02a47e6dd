package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// CommissionMetrics covers the ingestion, review and settlement paths.
type CommissionMetrics struct {
	EventsCreatedTotal       prometheus.CounterVec
	EventsCreatedAmountTotal prometheus.CounterVec
	EventsDuplicateTotal     prometheus.Counter
	EventsFlaggedTotal       prometheus.Counter
	EventsSkippedTotal       prometheus.CounterVec

	EventStatusChangedTotal prometheus.CounterVec
	EventsClawedBackTotal   prometheus.Counter

	ReviewsResolvedTotal prometheus.CounterVec

	BatchesSettledTotal       prometheus.Counter
	BatchesSettledAmountTotal prometheus.Counter
	BatchesRejectedTotal      prometheus.Counter
	BatchRejectReasonsTotal   prometheus.CounterVec

	LedgerComputeDuration prometheus.HistogramVec
}

func NewCommissionMetrics() *CommissionMetrics {
	return &CommissionMetrics{
		EventsCreatedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "earning_events_created_total",
				Help: "Earning events persisted, by commission model and initial status",
			},
			[]string{"model", "status"},
		),
		EventsCreatedAmountTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "earning_events_created_amount_total",
				Help: "Commission amount of persisted events, by model",
			},
			[]string{"model"},
		),
		EventsDuplicateTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "earning_events_duplicate_total",
				Help: "Webhook deliveries dropped by the idempotency key",
			},
		),
		EventsFlaggedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "earning_events_flagged_total",
				Help: "Events held for review by the fraud scorer",
			},
		),
		EventsSkippedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "earning_events_skipped_total",
				Help: "Payment signals that produced no event, by reason",
			},
			[]string{"reason"},
		),
		EventStatusChangedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "earning_event_status_changed_total",
				Help: "Billing-state transitions applied to events",
			},
			[]string{"status"},
		),
		EventsClawedBackTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "earning_events_clawed_back_total",
				Help: "Paid events flagged CLAWED_BACK inside the clawback window",
			},
		),
		ReviewsResolvedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fraud_reviews_resolved_total",
				Help: "Operator review decisions",
			},
			[]string{"decision"},
		),
		BatchesSettledTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "payout_batches_settled_total",
				Help: "Payout batches fully settled",
			},
		),
		BatchesSettledAmountTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "payout_batches_settled_amount_total",
				Help: "Total amount settled through payout batches",
			},
		),
		BatchesRejectedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "payout_batches_rejected_total",
				Help: "Payout batches aborted by validation",
			},
		),
		BatchRejectReasonsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payout_batch_reject_reasons_total",
				Help: "Per-event rejection reasons across aborted batches",
			},
			[]string{"reason"},
		),
		LedgerComputeDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ledger_compute_duration_seconds",
				Help:    "Time to fold a broker's events into a ledger summary",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"scope"},
		),
	}
}

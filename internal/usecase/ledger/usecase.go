package ledger

import (
	"context"
	"log/slog"
	"time"

	"github.com/TrendTweekers/broker-commission-service/internal/domain"
	"github.com/TrendTweekers/broker-commission-service/internal/infrastructure/cache"
	"github.com/TrendTweekers/broker-commission-service/internal/infrastructure/metrics"
)

type LedgerUsecase interface {
	ComputeBrokerLedger(ctx context.Context, brokerID domain.BrokerID, now time.Time) (*domain.LedgerSummary, error)
	ComputeAllBrokersLedgers(ctx context.Context, now time.Time, dueOnly bool) ([]*domain.LedgerSummary, error)
}

type DefaultLedgerUsecase struct {
	EventRepo  domain.EarningEventRepository
	Calculator *Calculator
	Cache      *cache.LedgerCache
	Metrics    *metrics.CommissionMetrics
}

func NewDefaultLedgerUsecase(
	eventRepo domain.EarningEventRepository,
	calculator *Calculator,
	ledgerCache *cache.LedgerCache,
	commissionMetrics *metrics.CommissionMetrics) *DefaultLedgerUsecase {

	return &DefaultLedgerUsecase{
		EventRepo:  eventRepo,
		Calculator: calculator,
		Cache:      ledgerCache,
		Metrics:    commissionMetrics,
	}
}

// ComputeBrokerLedger projects the broker's events as of now. The cache is a
// TTL-bounded dashboard optimization; the store stays the source of truth and
// as-of overrides bypass the cache entirely.
func (uc *DefaultLedgerUsecase) ComputeBrokerLedger(ctx context.Context, brokerID domain.BrokerID, now time.Time) (*domain.LedgerSummary, error) {
	live := time.Since(now).Abs() < time.Second

	if live && uc.Cache != nil {
		if summary, ok := uc.Cache.Get(ctx, brokerID); ok {
			return summary, nil
		}
	}

	events, err := uc.EventRepo.GetEventsByBrokerID(brokerID)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	summary := uc.Calculator.ComputeBrokerLedger(brokerID, events, now)
	if uc.Metrics != nil {
		uc.Metrics.LedgerComputeDuration.WithLabelValues("broker").Observe(time.Since(started).Seconds())
	}

	if live && uc.Cache != nil {
		if err := uc.Cache.Set(ctx, summary); err != nil {
			slog.Warn("ledger cache set failed", "broker_id", brokerID, "error", err.Error())
		}
	}

	return summary, nil
}

func (uc *DefaultLedgerUsecase) ComputeAllBrokersLedgers(ctx context.Context, now time.Time, dueOnly bool) ([]*domain.LedgerSummary, error) {
	brokerIDs, err := uc.EventRepo.ListBrokerIDsWithEvents()
	if err != nil {
		return nil, err
	}

	summaries := make([]*domain.LedgerSummary, 0, len(brokerIDs))
	for _, brokerID := range brokerIDs {
		summary, err := uc.ComputeBrokerLedger(ctx, brokerID, now)
		if err != nil {
			return nil, err
		}
		if dueOnly && !summary.TotalDueNow.IsPositive() {
			continue
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}

package lifecycle

import (
	"context"
	"log/slog"

	"github.com/TrendTweekers/broker-commission-service/internal/domain"
	"github.com/TrendTweekers/broker-commission-service/internal/infrastructure/cache"
	"github.com/TrendTweekers/broker-commission-service/internal/infrastructure/kafka"
	"github.com/TrendTweekers/broker-commission-service/internal/infrastructure/logger"
	"github.com/TrendTweekers/broker-commission-service/internal/infrastructure/metrics"
	eventdto "github.com/TrendTweekers/broker-commission-service/internal/usecase/dto/event"
	"github.com/TrendTweekers/broker-commission-service/internal/usecase/fraud"
)

type LifecycleUsecase interface {
	RecordPaymentEvent(ctx context.Context, input *eventdto.RecordPaymentEventInput) (*eventdto.RecordPaymentEventOutput, error)
	ApplyBillingStateChange(ctx context.Context, input *eventdto.ApplyBillingStateChangeInput) (*eventdto.BillingStateChangeOutput, error)
	ResolveReview(ctx context.Context, input *eventdto.ResolveReviewInput) (*domain.EarningEvent, error)
	ListPendingReview(ctx context.Context) ([]*domain.EarningEvent, error)
	CheckFraudSignals(candidate *domain.FraudCandidate) *domain.FraudAssessment
}

type DefaultLifecycleUsecase struct {
	EventRepo    domain.EarningEventRepository
	BrokerRepo   domain.BrokerRepository
	Scorer       *fraud.Scorer
	Publisher    domain.PublisherPort
	Topic        string
	Metrics      *metrics.CommissionMetrics
	AuditLogger  logger.CommissionAuditLogger
	Cache        *cache.LedgerCache
	ClawbackDays int
}

func NewDefaultLifecycleUsecase(
	eventRepo domain.EarningEventRepository,
	brokerRepo domain.BrokerRepository,
	scorer *fraud.Scorer,
	publisher domain.PublisherPort,
	topic string,
	commissionMetrics *metrics.CommissionMetrics,
	auditLogger logger.CommissionAuditLogger,
	ledgerCache *cache.LedgerCache,
	clawbackDays int) *DefaultLifecycleUsecase {

	if clawbackDays <= 0 {
		clawbackDays = domain.ClawbackDays
	}

	return &DefaultLifecycleUsecase{
		EventRepo:    eventRepo,
		BrokerRepo:   brokerRepo,
		Scorer:       scorer,
		Publisher:    publisher,
		Topic:        topic,
		Metrics:      commissionMetrics,
		AuditLogger:  auditLogger,
		Cache:        ledgerCache,
		ClawbackDays: clawbackDays,
	}
}

// CheckFraudSignals is the pre-screening entry point for the referral-intake
// collaborator; ingestion runs the same scorer internally.
func (uc *DefaultLifecycleUsecase) CheckFraudSignals(candidate *domain.FraudCandidate) *domain.FraudAssessment {
	return uc.Scorer.Score(candidate)
}

func (uc *DefaultLifecycleUsecase) ListPendingReview(ctx context.Context) ([]*domain.EarningEvent, error) {
	return uc.EventRepo.ListPendingReview()
}

func (uc *DefaultLifecycleUsecase) publish(event kafka.CommissionEvent) {
	if uc.Publisher == nil {
		return
	}
	if err := kafka.PublishCommission(uc.Publisher, uc.Topic, event); err != nil {
		slog.Error("failed to publish commission event", "type", event.Type, "broker_id", event.BrokerID, "error", err.Error())
	}
}

func (uc *DefaultLifecycleUsecase) invalidateLedger(ctx context.Context, brokerID domain.BrokerID) {
	if uc.Cache != nil {
		uc.Cache.Invalidate(ctx, brokerID)
	}
}

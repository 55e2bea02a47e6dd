package payout

import (
	"context"

	"github.com/TrendTweekers/broker-commission-service/internal/domain"
	"github.com/TrendTweekers/broker-commission-service/internal/infrastructure/cache"
	"github.com/TrendTweekers/broker-commission-service/internal/infrastructure/logger"
	"github.com/TrendTweekers/broker-commission-service/internal/infrastructure/metrics"
	payoutdto "github.com/TrendTweekers/broker-commission-service/internal/usecase/dto/payout"
)

type PayoutUsecase interface {
	CreateBatch(ctx context.Context, input *payoutdto.CreateBatchInput) (*domain.BatchResult, error)
	GetBatchByID(ctx context.Context, batchID string) (*domain.PayoutBatch, error)
	GetBatchesByBrokerID(ctx context.Context, brokerID domain.BrokerID) ([]*domain.PayoutBatch, error)
}

type DefaultPayoutUsecase struct {
	EventRepo   domain.EarningEventRepository
	BatchRepo   domain.PayoutBatchRepository
	BrokerRepo  domain.BrokerRepository
	Publisher   domain.PublisherPort
	Topic       string
	Metrics     *metrics.CommissionMetrics
	AuditLogger logger.CommissionAuditLogger
	Cache       *cache.LedgerCache
	HoldDays    int
}

func NewDefaultPayoutUsecase(
	eventRepo domain.EarningEventRepository,
	batchRepo domain.PayoutBatchRepository,
	brokerRepo domain.BrokerRepository,
	publisher domain.PublisherPort,
	topic string,
	commissionMetrics *metrics.CommissionMetrics,
	auditLogger logger.CommissionAuditLogger,
	ledgerCache *cache.LedgerCache,
	holdDays int) *DefaultPayoutUsecase {

	if holdDays <= 0 {
		holdDays = domain.HoldDays
	}

	return &DefaultPayoutUsecase{
		EventRepo:   eventRepo,
		BatchRepo:   batchRepo,
		BrokerRepo:  brokerRepo,
		Publisher:   publisher,
		Topic:       topic,
		Metrics:     commissionMetrics,
		AuditLogger: auditLogger,
		Cache:       ledgerCache,
		HoldDays:    holdDays,
	}
}

func (uc *DefaultPayoutUsecase) GetBatchByID(ctx context.Context, batchID string) (*domain.PayoutBatch, error) {
	return uc.BatchRepo.GetBatchByID(batchID)
}

func (uc *DefaultPayoutUsecase) GetBatchesByBrokerID(ctx context.Context, brokerID domain.BrokerID) ([]*domain.PayoutBatch, error) {
	return uc.BatchRepo.GetBatchesByBrokerID(brokerID)
}

package payout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/TrendTweekers/broker-commission-service/internal/domain"
	"github.com/TrendTweekers/broker-commission-service/internal/infrastructure/kafka"
	"github.com/TrendTweekers/broker-commission-service/internal/infrastructure/logger"
	payoutdto "github.com/TrendTweekers/broker-commission-service/internal/usecase/dto/payout"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateBatch settles a set of eligible events for one broker, all or
// nothing. Every id is validated before any mutation; a single rejection
// aborts the whole batch and the rejected list is returned as data, not as an
// error. On success the batch record and every paid_at update commit in one
// transaction with a per-event compare-and-set, so two operators racing over
// overlapping sets cannot double-pay a subset: the loser's entire batch
// fails.
func (uc *DefaultPayoutUsecase) CreateBatch(ctx context.Context, input *payoutdto.CreateBatchInput) (*domain.BatchResult, error) {
	if len(input.EventIDs) == 0 {
		return nil, domain.ErrEmptyBatch
	}
	if _, err := uc.BrokerRepo.GetBrokerByID(input.BrokerID); err != nil {
		return nil, err
	}

	// a repeated id is one payment, not two
	eventIDs := dedupeIDs(input.EventIDs)

	now := time.Now()

	rejected, total, err := uc.validate(eventIDs, input.BrokerID, now)
	if err != nil {
		return nil, err
	}
	if len(rejected) > 0 {
		uc.recordRejection(rejected)
		return &domain.BatchResult{Rejected: rejected, TotalAmount: decimal.Zero}, nil
	}

	batch := &domain.PayoutBatch{
		ID:            uuid.NewString(),
		BrokerID:      input.BrokerID,
		EventIDs:      eventIDs,
		TotalAmount:   total,
		PaymentMethod: input.PaymentMethod,
		TransactionID: input.TransactionID,
		Notes:         input.Notes,
		CreatedAt:     now,
		PaidAt:        now,
	}

	if err := uc.BatchRepo.SettleBatch(batch); err != nil {
		if errors.Is(err, domain.ErrSettleConflict) {
			// a concurrent batch won the race; re-validate so the caller
			// sees which events are no longer payable
			rejected, _, verr := uc.validate(eventIDs, input.BrokerID, now)
			if verr != nil {
				return nil, verr
			}
			if len(rejected) > 0 {
				uc.recordRejection(rejected)
				return &domain.BatchResult{Rejected: rejected, TotalAmount: decimal.Zero}, nil
			}
			return nil, err
		}
		return nil, fmt.Errorf("failed to settle batch: %w", err)
	}

	uc.invalidateLedger(ctx, input.BrokerID)

	if uc.Metrics != nil {
		uc.Metrics.BatchesSettledTotal.Inc()
		totalFloat, _ := total.Float64()
		uc.Metrics.BatchesSettledAmountTotal.Add(totalFloat)
	}

	if uc.AuditLogger != nil {
		totalFloat, _ := total.Float64()
		if err := uc.AuditLogger.LogBatchSettled(ctx, logger.BatchSettledAudit{
			BatchID:       batch.ID,
			BrokerID:      string(batch.BrokerID),
			EventCount:    len(batch.EventIDs),
			TotalAmount:   totalFloat,
			PaymentMethod: batch.PaymentMethod,
			TransactionID: batch.TransactionID,
		}); err != nil {
			slog.Error("failed to write settlement audit", "batch_id", batch.ID, "error", err.Error())
		}
	}

	if uc.Publisher != nil {
		if err := kafka.PublishCommission(uc.Publisher, uc.Topic, kafka.CommissionEvent{
			Type:       kafka.EventTypeBatchSettled,
			BrokerID:   string(batch.BrokerID),
			BatchID:    batch.ID,
			Amount:     batch.TotalAmount.String(),
			OccurredAt: now,
		}); err != nil {
			slog.Error("failed to publish settlement event", "batch_id", batch.ID, "error", err.Error())
		}
	}

	return &domain.BatchResult{
		BatchID:       batch.ID,
		TransactionID: batch.TransactionID,
		TotalAmount:   batch.TotalAmount,
		PaidEventIDs:  batch.EventIDs,
	}, nil
}

// validate classifies every id; a store failure is an error, never a
// rejection.
func (uc *DefaultPayoutUsecase) validate(eventIDs []string, brokerID domain.BrokerID, now time.Time) ([]domain.RejectedEvent, decimal.Decimal, error) {
	events, err := uc.EventRepo.GetEventsByIDs(eventIDs)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("failed to load batch events: %w", err)
	}

	byID := make(map[string]*domain.EarningEvent, len(events))
	for _, event := range events {
		byID[event.ID] = event
	}

	rejected := make([]domain.RejectedEvent, 0)
	total := decimal.Zero

	for _, eventID := range eventIDs {
		event, ok := byID[eventID]
		switch {
		case !ok:
			rejected = append(rejected, domain.RejectedEvent{EventID: eventID, Reason: domain.RejectNotFound})
		case event.BrokerID != brokerID:
			rejected = append(rejected, domain.RejectedEvent{EventID: eventID, Reason: domain.RejectWrongBroker})
		case event.PaidAt != nil:
			rejected = append(rejected, domain.RejectedEvent{EventID: eventID, Reason: domain.RejectAlreadyPaid})
		case !event.IsEligible(now, uc.HoldDays):
			rejected = append(rejected, domain.RejectedEvent{EventID: eventID, Reason: domain.RejectNotEligible})
		default:
			total = total.Add(event.Amount)
		}
	}

	return rejected, total, nil
}

func dedupeIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func (uc *DefaultPayoutUsecase) recordRejection(rejected []domain.RejectedEvent) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.BatchesRejectedTotal.Inc()
	for _, r := range rejected {
		uc.Metrics.BatchRejectReasonsTotal.WithLabelValues(string(r.Reason)).Inc()
	}
}

func (uc *DefaultPayoutUsecase) invalidateLedger(ctx context.Context, brokerID domain.BrokerID) {
	if uc.Cache != nil {
		uc.Cache.Invalidate(ctx, brokerID)
	}
}

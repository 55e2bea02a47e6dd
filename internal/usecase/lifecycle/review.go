package lifecycle

import (
	"context"
	"time"

	"github.com/TrendTweekers/broker-commission-service/internal/domain"
	"github.com/TrendTweekers/broker-commission-service/internal/infrastructure/kafka"
	eventdto "github.com/TrendTweekers/broker-commission-service/internal/usecase/dto/event"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ResolveReview applies an operator decision to a flagged event: APPROVED
// moves it to ACTIVE, DENIED is terminal and removes it from every ledger
// bucket.
func (uc *DefaultLifecycleUsecase) ResolveReview(ctx context.Context, input *eventdto.ResolveReviewInput) (*domain.EarningEvent, error) {
	var newStatus domain.EventStatus
	switch input.Decision {
	case domain.ReviewApproved:
		newStatus = domain.StatusActive
	case domain.ReviewDenied:
		newStatus = domain.StatusDenied
	default:
		return nil, status.Errorf(codes.InvalidArgument, "unknown review decision: %s", input.Decision)
	}

	event, err := uc.EventRepo.GetEventByID(input.EventID)
	if err != nil {
		return nil, err
	}
	if event.Status != domain.StatusPendingReview {
		return nil, domain.ErrNotReviewable
	}

	if err := uc.EventRepo.SetReviewDecision(event.ID, input.Decision, newStatus); err != nil {
		return nil, err
	}
	event.ReviewDecision = input.Decision
	event.Status = newStatus
	event.UpdatedAt = time.Now()

	uc.invalidateLedger(ctx, event.BrokerID)

	if uc.Metrics != nil {
		uc.Metrics.ReviewsResolvedTotal.WithLabelValues(string(input.Decision)).Inc()
	}

	uc.publish(kafka.CommissionEvent{
		Type:       kafka.EventTypeReviewResolved,
		BrokerID:   string(event.BrokerID),
		EventID:    event.ID,
		Status:     string(newStatus),
		OccurredAt: time.Now(),
	})

	return event, nil
}

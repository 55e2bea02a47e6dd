package lifecycle

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/TrendTweekers/broker-commission-service/internal/domain"
	"github.com/TrendTweekers/broker-commission-service/internal/infrastructure/kafka"
	eventdto "github.com/TrendTweekers/broker-commission-service/internal/usecase/dto/event"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ApplyBillingStateChange propagates an upstream cancel/refund/chargeback/
// past-due signal to the customer's stored events. Already-paid events inside
// the clawback window become CLAWED_BACK; that only surfaces them for manual
// correction, it never reverses money. Terminal negative states are never
// left automatically.
func (uc *DefaultLifecycleUsecase) ApplyBillingStateChange(ctx context.Context, input *eventdto.ApplyBillingStateChangeInput) (*eventdto.BillingStateChangeOutput, error) {
	newStatus, ok := input.NewState.EventStatus()
	if !ok {
		return nil, status.Errorf(codes.InvalidArgument, "unknown billing state: %s", input.NewState)
	}

	asOf := input.AsOf
	if asOf.IsZero() {
		asOf = time.Now()
	}

	events, err := uc.EventRepo.GetEventsByCustomer(input.ProcessorCustomerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load customer events: %w", err)
	}

	out := &eventdto.BillingStateChangeOutput{}

	for _, event := range events {
		if domain.NegativeStatus(event.Status) {
			continue
		}

		target := newStatus
		clawback := false
		if event.PaidAt != nil {
			clawbackDeadline := event.PaymentDate.AddDate(0, 0, uc.ClawbackDays)
			if asOf.After(clawbackDeadline) {
				// too old to claw back; the settled record stands
				slog.Warn("billing reversal outside clawback window",
					"event_id", event.ID, "state", input.NewState, "paid_at", event.PaidAt)
				continue
			}
			target = domain.StatusClawedBack
			clawback = true
		}

		if err := uc.EventRepo.UpdateEventStatus(event.ID, target, asOf); err != nil {
			return nil, fmt.Errorf("failed to transition event %s: %w", event.ID, err)
		}
		event.Status = target
		event.UpdatedAt = asOf

		uc.invalidateLedger(ctx, event.BrokerID)

		if uc.Metrics != nil {
			uc.Metrics.EventStatusChangedTotal.WithLabelValues(string(target)).Inc()
			if clawback {
				uc.Metrics.EventsClawedBackTotal.Inc()
			}
		}

		uc.publish(kafka.CommissionEvent{
			Type:       kafka.EventTypeStatusChanged,
			BrokerID:   string(event.BrokerID),
			EventID:    event.ID,
			Status:     string(target),
			OccurredAt: asOf,
		})

		if clawback {
			out.ClawedBack = append(out.ClawedBack, event)
		} else {
			out.Transitioned = append(out.Transitioned, event)
		}
	}

	return out, nil
}

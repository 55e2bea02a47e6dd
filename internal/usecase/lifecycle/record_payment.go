package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/TrendTweekers/broker-commission-service/internal/domain"
	"github.com/TrendTweekers/broker-commission-service/internal/infrastructure/kafka"
	"github.com/TrendTweekers/broker-commission-service/internal/infrastructure/logger"
	eventdto "github.com/TrendTweekers/broker-commission-service/internal/usecase/dto/event"
	"github.com/jaevor/go-nanoid"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// RecordPaymentEvent ingests one upstream payment signal. It is idempotent on
// the processor event id: a duplicate delivery returns the stored event and
// mutates nothing. The fraud scorer runs synchronously before anything is
// persisted and decides the event's initial status.
func (uc *DefaultLifecycleUsecase) RecordPaymentEvent(ctx context.Context, input *eventdto.RecordPaymentEventInput) (*eventdto.RecordPaymentEventOutput, error) {
	if input.ProcessorEventID == "" {
		return nil, status.Error(codes.InvalidArgument, "processor event id is required")
	}

	existing, err := uc.EventRepo.GetEventByProcessorEventID(input.ProcessorEventID)
	if err != nil && !errors.Is(err, domain.ErrEventNotFound) {
		return nil, fmt.Errorf("idempotency lookup failed: %w", err)
	}
	if existing != nil {
		if uc.Metrics != nil {
			uc.Metrics.EventsDuplicateTotal.Inc()
		}
		return &eventdto.RecordPaymentEventOutput{Event: existing, Duplicate: true}, nil
	}

	broker, err := uc.resolveBroker(input.BrokerRef)
	if err != nil {
		return nil, err
	}

	amount := input.Amount
	if amount.IsZero() {
		amount = defaultAmount(broker.CommissionModel)
	}
	if !amount.IsPositive() {
		// upstream data-integrity violation, fail loudly
		return nil, fmt.Errorf("event %s: %w", input.ProcessorEventID, domain.ErrInvalidAmount)
	}

	if broker.CommissionModel == domain.ModelBounty {
		earned, err := uc.EventRepo.HasEventForCustomer(broker.ID, input.Customer.ProcessorCustomerID)
		if err != nil {
			return nil, err
		}
		if earned {
			// bounty pays on the first qualifying payment only
			if uc.Metrics != nil {
				uc.Metrics.EventsSkippedTotal.WithLabelValues("bounty_already_earned").Inc()
			}
			return &eventdto.RecordPaymentEventOutput{Skipped: true}, nil
		}
	}

	assessment := uc.Scorer.Score(uc.buildCandidate(broker, input))

	initialStatus := domain.StatusActive
	if assessment.ShouldFlag {
		initialStatus = domain.StatusPendingReview
	}

	idGenerator, err := nanoid.Standard(15)
	if err != nil {
		return nil, err
	}

	event := &domain.EarningEvent{
		ID:               idGenerator(),
		BrokerID:         broker.ID,
		Customer:         input.Customer,
		CommissionModel:  broker.CommissionModel,
		Amount:           amount,
		PaymentDate:      input.PaymentDate,
		Status:           initialStatus,
		FraudScore:       assessment.RiskScore,
		FraudFlags:       assessment.Flags,
		ReviewDecision:   domain.ReviewNone,
		ProcessorEventID: input.ProcessorEventID,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if err := uc.EventRepo.CreateEvent(event); err != nil {
		if errors.Is(err, domain.ErrDuplicateEvent) {
			// a concurrent delivery won the create; serve its event
			stored, lookupErr := uc.EventRepo.GetEventByProcessorEventID(input.ProcessorEventID)
			if lookupErr != nil {
				return nil, fmt.Errorf("duplicate event lookup failed: %w", lookupErr)
			}
			if uc.Metrics != nil {
				uc.Metrics.EventsDuplicateTotal.Inc()
			}
			return &eventdto.RecordPaymentEventOutput{Event: stored, Duplicate: true}, nil
		}
		return nil, fmt.Errorf("failed to create earning event: %w", err)
	}

	uc.invalidateLedger(ctx, broker.ID)

	if uc.Metrics != nil {
		uc.Metrics.EventsCreatedTotal.WithLabelValues(string(broker.CommissionModel), string(initialStatus)).Inc()
		amountFloat, _ := amount.Float64()
		uc.Metrics.EventsCreatedAmountTotal.WithLabelValues(string(broker.CommissionModel)).Add(amountFloat)
		if assessment.ShouldFlag {
			uc.Metrics.EventsFlaggedTotal.Inc()
		}
	}

	if uc.AuditLogger != nil {
		amountFloat, _ := amount.Float64()
		if err := uc.AuditLogger.LogEventIngested(ctx, logger.EventIngestedAudit{
			EventID:          event.ID,
			ProcessorEventID: event.ProcessorEventID,
			BrokerID:         string(event.BrokerID),
			CustomerID:       event.Customer.ProcessorCustomerID,
			Amount:           amountFloat,
			InitialStatus:    string(initialStatus),
			FraudScore:       assessment.RiskScore,
		}); err != nil {
			slog.Error("failed to write ingest audit", "event_id", event.ID, "error", err.Error())
		}
	}

	eventType := kafka.EventTypeCreated
	if assessment.ShouldFlag {
		eventType = kafka.EventTypeFlagged
	}
	uc.publish(kafka.CommissionEvent{
		Type:       eventType,
		BrokerID:   string(event.BrokerID),
		EventID:    event.ID,
		Status:     string(event.Status),
		Amount:     event.Amount.String(),
		FraudScore: event.FraudScore,
		OccurredAt: time.Now(),
	})

	return &eventdto.RecordPaymentEventOutput{Event: event, Created: true}, nil
}

func (uc *DefaultLifecycleUsecase) resolveBroker(ref eventdto.BrokerRef) (*domain.Broker, error) {
	brokerID := ref.BrokerID
	if brokerID == "" {
		if ref.ReferralCode == "" {
			return nil, status.Error(codes.InvalidArgument, "broker reference is required")
		}
		resolved, err := uc.BrokerRepo.ResolveReferralCode(ref.ReferralCode)
		if err != nil {
			return nil, err
		}
		brokerID = resolved
	}
	return uc.BrokerRepo.GetBrokerByID(brokerID)
}

func (uc *DefaultLifecycleUsecase) buildCandidate(broker *domain.Broker, input *eventdto.RecordPaymentEventInput) *domain.FraudCandidate {
	dayAgo := time.Now().Add(-24 * time.Hour)
	recent, err := uc.EventRepo.CountEventsByBroker(broker.ID, dayAgo)
	if err != nil {
		slog.Warn("failed to count recent referrals", "broker_id", broker.ID, "error", err.Error())
	}
	total, err := uc.EventRepo.CountEventsByBroker(broker.ID, time.Time{})
	if err != nil {
		slog.Warn("failed to count referrals", "broker_id", broker.ID, "error", err.Error())
	}

	return &domain.FraudCandidate{
		BrokerProcessorCustomerID:   broker.ProcessorCustomerID,
		CustomerProcessorCustomerID: input.Customer.ProcessorCustomerID,
		BrokerEmail:                 broker.Email,
		CustomerEmail:               input.Customer.Email,
		BrokerIP:                    input.SignalParams.BrokerIP,
		CustomerIP:                  input.SignalParams.CustomerIP,
		BrokerApprovedAt:            broker.ApprovedAt,
		SignupAt:                    input.SignalParams.SignupAt,
		ProcessorRiskLevel:          input.SignalParams.ProcessorRiskLevel,
		ReferralsLast24h:            int(recent),
		FirstReferral:               total == 0,
	}
}

func defaultAmount(model domain.CommissionModel) decimal.Decimal {
	if model == domain.ModelBounty {
		return domain.BountyAmount
	}
	return domain.RecurringAmount
}

package mappers

import (
	"github.com/TrendTweekers/broker-commission-service/internal/domain"
	"github.com/TrendTweekers/broker-commission-service/internal/infrastructure/postgres/models"
)

func ToDomainEvent(model *models.EarningEventModel) *domain.EarningEvent {
	flags := make([]domain.FraudFlag, 0, len(model.FraudFlags))
	for _, f := range model.FraudFlags {
		flags = append(flags, domain.FraudFlag(f))
	}

	return &domain.EarningEvent{
		ID:       model.ID,
		BrokerID: domain.BrokerID(model.BrokerID),
		Customer: domain.CustomerIdentity{
			Email:               model.CustomerEmail,
			ProcessorCustomerID: model.CustomerProcessorID,
		},
		CommissionModel:  model.CommissionModel,
		Amount:           model.Amount,
		PaymentDate:      model.PaymentDate,
		Status:           model.Status,
		FraudScore:       model.FraudScore,
		FraudFlags:       flags,
		ReviewDecision:   model.ReviewDecision,
		ProcessorEventID: model.ProcessorEventID,
		PaidAt:           model.PaidAt,
		PaidBatchID:      model.PaidBatchID,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	}
}

func ToGORMEvent(event *domain.EarningEvent) *models.EarningEventModel {
	flags := make([]string, 0, len(event.FraudFlags))
	for _, f := range event.FraudFlags {
		flags = append(flags, string(f))
	}

	return &models.EarningEventModel{
		ID:                  event.ID,
		BrokerID:            string(event.BrokerID),
		CustomerEmail:       event.Customer.Email,
		CustomerProcessorID: event.Customer.ProcessorCustomerID,
		CommissionModel:     event.CommissionModel,
		Amount:              event.Amount,
		PaymentDate:         event.PaymentDate,
		Status:              event.Status,
		FraudScore:          event.FraudScore,
		FraudFlags:          flags,
		ReviewDecision:      event.ReviewDecision,
		ProcessorEventID:    event.ProcessorEventID,
		PaidAt:              event.PaidAt,
		PaidBatchID:         event.PaidBatchID,
		CreatedAt:           event.CreatedAt,
		UpdatedAt:           event.UpdatedAt,
	}
}

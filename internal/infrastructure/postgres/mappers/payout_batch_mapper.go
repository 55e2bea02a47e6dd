package mappers

import (
	"github.com/TrendTweekers/broker-commission-service/internal/domain"
	"github.com/TrendTweekers/broker-commission-service/internal/infrastructure/postgres/models"
)

func ToDomainBatch(model *models.PayoutBatchModel) *domain.PayoutBatch {
	return &domain.PayoutBatch{
		ID:            model.ID,
		BrokerID:      domain.BrokerID(model.BrokerID),
		EventIDs:      model.EventIDs,
		TotalAmount:   model.TotalAmount,
		PaymentMethod: model.PaymentMethod,
		TransactionID: model.TransactionID,
		Notes:         model.Notes,
		CreatedAt:     model.CreatedAt,
		PaidAt:        model.PaidAt,
	}
}

func ToGORMBatch(batch *domain.PayoutBatch) *models.PayoutBatchModel {
	return &models.PayoutBatchModel{
		ID:            batch.ID,
		BrokerID:      string(batch.BrokerID),
		EventIDs:      batch.EventIDs,
		TotalAmount:   batch.TotalAmount,
		PaymentMethod: batch.PaymentMethod,
		TransactionID: batch.TransactionID,
		Notes:         batch.Notes,
		CreatedAt:     batch.CreatedAt,
		PaidAt:        batch.PaidAt,
	}
}

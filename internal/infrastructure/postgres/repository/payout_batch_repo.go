package repository

import (
	"errors"
	"fmt"

	"github.com/TrendTweekers/broker-commission-service/internal/domain"
	"github.com/TrendTweekers/broker-commission-service/internal/infrastructure/postgres/mappers"
	"github.com/TrendTweekers/broker-commission-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultPayoutBatchRepository struct {
	DB *gorm.DB
}

func NewDefaultPayoutBatchRepository(db *gorm.DB) *DefaultPayoutBatchRepository {
	return &DefaultPayoutBatchRepository{DB: db}
}

// SettleBatch commits the batch record and every event update in one
// transaction. The event update is conditioned on paid_at IS NULL and status
// ACTIVE, so a concurrent settlement of any referenced event makes
// RowsAffected fall short and rolls the whole batch back.
func (r *DefaultPayoutBatchRepository) SettleBatch(batch *domain.PayoutBatch) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		batchModel := mappers.ToGORMBatch(batch)
		if err := tx.Create(batchModel).Error; err != nil {
			return fmt.Errorf("failed to create payout batch: %w", err)
		}

		result := tx.Model(&models.EarningEventModel{}).
			Where("id IN ? AND broker_id = ? AND status = ? AND paid_at IS NULL",
				batch.EventIDs, string(batch.BrokerID), domain.StatusActive).
			Updates(map[string]interface{}{
				"paid_at":       batch.PaidAt,
				"paid_batch_id": batch.ID,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected != int64(len(batch.EventIDs)) {
			return domain.ErrSettleConflict
		}
		return nil
	})
}

func (r *DefaultPayoutBatchRepository) GetBatchByID(batchID string) (*domain.PayoutBatch, error) {
	var batchModel models.PayoutBatchModel
	if err := r.DB.First(&batchModel, "id = ?", batchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBatchNotFound
		}
		return nil, err
	}
	return mappers.ToDomainBatch(&batchModel), nil
}

func (r *DefaultPayoutBatchRepository) GetBatchesByBrokerID(brokerID domain.BrokerID) ([]*domain.PayoutBatch, error) {
	var batchModels []models.PayoutBatchModel
	err := r.DB.Where("broker_id = ?", string(brokerID)).
		Order("created_at DESC").
		Find(&batchModels).Error
	if err != nil {
		return nil, err
	}

	batches := make([]*domain.PayoutBatch, 0, len(batchModels))
	for i := range batchModels {
		batches = append(batches, mappers.ToDomainBatch(&batchModels[i]))
	}
	return batches, nil
}

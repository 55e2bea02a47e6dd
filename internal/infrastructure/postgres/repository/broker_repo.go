package repository

import (
	"errors"
	"time"

	"github.com/TrendTweekers/broker-commission-service/internal/domain"
	"github.com/TrendTweekers/broker-commission-service/internal/infrastructure/postgres/mappers"
	"github.com/TrendTweekers/broker-commission-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultBrokerRepository struct {
	DB *gorm.DB
}

func NewDefaultBrokerRepository(db *gorm.DB) *DefaultBrokerRepository {
	return &DefaultBrokerRepository{DB: db}
}

func (r *DefaultBrokerRepository) CreateBroker(broker *domain.Broker) error {
	brokerModel := mappers.ToGORMBroker(broker)
	return r.DB.Create(brokerModel).Error
}

func (r *DefaultBrokerRepository) GetBrokerByID(brokerID domain.BrokerID) (*domain.Broker, error) {
	var brokerModel models.BrokerModel
	if err := r.DB.First(&brokerModel, "id = ?", string(brokerID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBrokerNotFound
		}
		return nil, err
	}
	return mappers.ToDomainBroker(&brokerModel), nil
}

func (r *DefaultBrokerRepository) ResolveReferralCode(code domain.ReferralCode) (domain.BrokerID, error) {
	var brokerModel models.BrokerModel
	if err := r.DB.Select("id").First(&brokerModel, "referral_code = ?", string(code)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrReferralCodeNotFound
		}
		return "", err
	}
	return domain.BrokerID(brokerModel.ID), nil
}

func (r *DefaultBrokerRepository) UpdateBrokerStatus(brokerID domain.BrokerID, status domain.BrokerStatus, approvedAt *time.Time) error {
	updates := map[string]interface{}{"status": status}
	if approvedAt != nil {
		updates["approved_at"] = approvedAt
	}
	result := r.DB.Model(&models.BrokerModel{}).Where("id = ?", string(brokerID)).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrBrokerNotFound
	}
	return nil
}

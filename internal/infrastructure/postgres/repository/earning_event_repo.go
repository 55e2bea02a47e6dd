package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/TrendTweekers/broker-commission-service/internal/domain"
	"github.com/TrendTweekers/broker-commission-service/internal/infrastructure/postgres/mappers"
	"github.com/TrendTweekers/broker-commission-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultEarningEventRepository struct {
	DB *gorm.DB
}

func NewDefaultEarningEventRepository(db *gorm.DB) *DefaultEarningEventRepository {
	return &DefaultEarningEventRepository{DB: db}
}

func (r *DefaultEarningEventRepository) CreateEvent(event *domain.EarningEvent) error {
	eventModel := mappers.ToGORMEvent(event)
	if err := r.DB.Create(eventModel).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateEvent
		}
		return fmt.Errorf("failed to create earning event: %w", err)
	}
	return nil
}

func (r *DefaultEarningEventRepository) GetEventByID(eventID string) (*domain.EarningEvent, error) {
	var eventModel models.EarningEventModel
	if err := r.DB.First(&eventModel, "id = ?", eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}
	return mappers.ToDomainEvent(&eventModel), nil
}

func (r *DefaultEarningEventRepository) GetEventsByIDs(eventIDs []string) ([]*domain.EarningEvent, error) {
	var eventModels []models.EarningEventModel
	if err := r.DB.Where("id IN ?", eventIDs).Find(&eventModels).Error; err != nil {
		return nil, err
	}
	return toDomainEvents(eventModels), nil
}

func (r *DefaultEarningEventRepository) GetEventByProcessorEventID(processorEventID string) (*domain.EarningEvent, error) {
	var eventModel models.EarningEventModel
	if err := r.DB.First(&eventModel, "processor_event_id = ?", processorEventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}
	return mappers.ToDomainEvent(&eventModel), nil
}

func (r *DefaultEarningEventRepository) GetEventsByBrokerID(brokerID domain.BrokerID) ([]*domain.EarningEvent, error) {
	var eventModels []models.EarningEventModel
	err := r.DB.Where("broker_id = ?", string(brokerID)).
		Order("payment_date ASC, id ASC").
		Find(&eventModels).Error
	if err != nil {
		return nil, err
	}
	return toDomainEvents(eventModels), nil
}

func (r *DefaultEarningEventRepository) GetEventsByCustomer(processorCustomerID string) ([]*domain.EarningEvent, error) {
	var eventModels []models.EarningEventModel
	err := r.DB.Where("customer_processor_id = ?", processorCustomerID).
		Order("payment_date ASC").
		Find(&eventModels).Error
	if err != nil {
		return nil, err
	}
	return toDomainEvents(eventModels), nil
}

func (r *DefaultEarningEventRepository) CountEventsByBroker(brokerID domain.BrokerID, since time.Time) (int64, error) {
	var count int64
	query := r.DB.Model(&models.EarningEventModel{}).Where("broker_id = ?", string(brokerID))
	if !since.IsZero() {
		query = query.Where("created_at >= ?", since)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return count, nil
}

func (r *DefaultEarningEventRepository) HasEventForCustomer(brokerID domain.BrokerID, processorCustomerID string) (bool, error) {
	var count int64
	err := r.DB.Model(&models.EarningEventModel{}).
		Where("broker_id = ? AND customer_processor_id = ?", string(brokerID), processorCustomerID).
		Where("status <> ?", domain.StatusDenied).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *DefaultEarningEventRepository) UpdateEventStatus(eventID string, newStatus domain.EventStatus, asOf time.Time) error {
	result := r.DB.Model(&models.EarningEventModel{}).
		Where("id = ?", eventID).
		Updates(map[string]interface{}{"status": newStatus, "updated_at": asOf})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *DefaultEarningEventRepository) SetReviewDecision(eventID string, decision domain.ReviewDecision, newStatus domain.EventStatus) error {
	result := r.DB.Model(&models.EarningEventModel{}).
		Where("id = ? AND status = ?", eventID, domain.StatusPendingReview).
		Updates(map[string]interface{}{"review_decision": decision, "status": newStatus})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotReviewable
	}
	return nil
}

func (r *DefaultEarningEventRepository) ListPendingReview() ([]*domain.EarningEvent, error) {
	var eventModels []models.EarningEventModel
	err := r.DB.Where("status = ?", domain.StatusPendingReview).
		Order("created_at ASC").
		Find(&eventModels).Error
	if err != nil {
		return nil, err
	}
	return toDomainEvents(eventModels), nil
}

func (r *DefaultEarningEventRepository) ListBrokerIDsWithEvents() ([]domain.BrokerID, error) {
	var ids []string
	err := r.DB.Model(&models.EarningEventModel{}).
		Distinct("broker_id").
		Order("broker_id ASC").
		Pluck("broker_id", &ids).Error
	if err != nil {
		return nil, err
	}

	brokerIDs := make([]domain.BrokerID, 0, len(ids))
	for _, id := range ids {
		brokerIDs = append(brokerIDs, domain.BrokerID(id))
	}
	return brokerIDs, nil
}

func toDomainEvents(eventModels []models.EarningEventModel) []*domain.EarningEvent {
	events := make([]*domain.EarningEvent, 0, len(eventModels))
	for i := range eventModels {
		events = append(events, mappers.ToDomainEvent(&eventModels[i]))
	}
	return events
}

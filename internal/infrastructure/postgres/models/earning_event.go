package models

import (
	"time"

	"github.com/TrendTweekers/broker-commission-service/internal/domain"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type EarningEventModel struct {
	ID                  string             `gorm:"primaryKey"`
	BrokerID            string             `gorm:"type:uuid;index:idx_events_broker"`
	CustomerEmail       string
	CustomerProcessorID string             `gorm:"index:idx_events_customer"`
	CommissionModel     domain.CommissionModel
	Amount              decimal.Decimal    `gorm:"type:numeric(12,2);not null"`
	PaymentDate         time.Time          `gorm:"index:idx_events_payment_date"`
	Status              domain.EventStatus `gorm:"index:idx_events_status"`
	FraudScore          int
	FraudFlags          pq.StringArray     `gorm:"type:text[]"`
	ReviewDecision      domain.ReviewDecision
	ProcessorEventID    string             `gorm:"uniqueIndex"` // idempotency key
	PaidAt              *time.Time
	PaidBatchID         string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (EarningEventModel) TableName() string {
	return "earning_events"
}

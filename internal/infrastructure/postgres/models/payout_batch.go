package models

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type PayoutBatchModel struct {
	ID            string          `gorm:"primaryKey;type:uuid"`
	BrokerID      string          `gorm:"type:uuid;index:idx_batches_broker"`
	EventIDs      pq.StringArray  `gorm:"type:text[];not null"`
	TotalAmount   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	PaymentMethod string
	TransactionID string
	Notes         string
	CreatedAt     time.Time
	PaidAt        time.Time
}

func (PayoutBatchModel) TableName() string {
	return "payout_batches"
}

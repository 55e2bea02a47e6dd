package models

import (
	"time"

	"github.com/TrendTweekers/broker-commission-service/internal/domain"
)

type BrokerModel struct {
	ID                  string                 `gorm:"primaryKey;type:uuid"`
	Email               string                 `gorm:"index"`
	CompanyName         string
	ReferralCode        string                 `gorm:"uniqueIndex"`
	CommissionModel     domain.CommissionModel `gorm:"not null"`
	Status              domain.BrokerStatus    `gorm:"index"`
	ProcessorCustomerID string                 `gorm:"index"`
	PayoutMethod        string
	PaypalEmail         string
	BankAccount         string
	BankRouting         string
	ApprovedAt          *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (BrokerModel) TableName() string {
	return "brokers"
}

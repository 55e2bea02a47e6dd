package logger

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type EventIngestedAudit struct {
	ID               uint `gorm:"primaryKey"`
	EventID          string
	ProcessorEventID string
	BrokerID         string
	CustomerID       string
	Amount           float64
	InitialStatus    string
	FraudScore       int
	Timestamp        time.Time
}

type BatchSettledAudit struct {
	ID            uint `gorm:"primaryKey"`
	BatchID       string
	BrokerID      string
	EventCount    int
	TotalAmount   float64
	PaymentMethod string
	TransactionID string
	Timestamp     time.Time
}

type CommissionAuditLogger interface {
	LogEventIngested(ctx context.Context, audit EventIngestedAudit) error
	LogBatchSettled(ctx context.Context, audit BatchSettledAudit) error
}

type PGCommissionAuditLogger struct {
	db *gorm.DB
}

func NewPGCommissionAuditLogger(db *gorm.DB) *PGCommissionAuditLogger {
	db.AutoMigrate(&EventIngestedAudit{}, &BatchSettledAudit{})
	return &PGCommissionAuditLogger{db: db}
}

func (l *PGCommissionAuditLogger) LogEventIngested(ctx context.Context, audit EventIngestedAudit) error {
	if audit.Timestamp.IsZero() {
		audit.Timestamp = time.Now()
	}
	return l.db.WithContext(ctx).Create(&audit).Error
}

func (l *PGCommissionAuditLogger) LogBatchSettled(ctx context.Context, audit BatchSettledAudit) error {
	if audit.Timestamp.IsZero() {
		audit.Timestamp = time.Now()
	}
	return l.db.WithContext(ctx).Create(&audit).Error
}

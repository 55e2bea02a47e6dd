package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type LedgerBucket string

const (
	BucketDueNow   LedgerBucket = "DUE_NOW"
	BucketOnHold   LedgerBucket = "ON_HOLD"
	BucketPaid     LedgerBucket = "PAID"
	BucketExcluded LedgerBucket = "EXCLUDED"
)

// LedgerEntry is the per-event line of a ledger projection, classified as of
// the summary's AsOf instant.
type LedgerEntry struct {
	EventID     string           `json:"event_id"`
	Customer    CustomerIdentity `json:"customer"`
	Amount      decimal.Decimal  `json:"amount"`
	Status      EventStatus      `json:"status"`
	PaymentDate time.Time        `json:"payment_date"`
	EligibleAt  time.Time        `json:"eligible_at"`
	Bucket      LedgerBucket     `json:"bucket"`
	PaidAt      *time.Time       `json:"paid_at,omitempty"`
	PaidBatchID string           `json:"paid_batch_id,omitempty"`
}

type CustomerLedger struct {
	Customer    CustomerIdentity `json:"customer"`
	TotalEarned decimal.Decimal  `json:"total_earned"`
	TotalDueNow decimal.Decimal  `json:"total_due_now"`
	TotalOnHold decimal.Decimal  `json:"total_on_hold"`
	TotalPaid   decimal.Decimal  `json:"total_paid"`
	EventCount  int              `json:"event_count"`
}

type LedgerSummary struct {
	BrokerID    BrokerID         `json:"broker_id"`
	AsOf        time.Time        `json:"as_of"`
	TotalEarned decimal.Decimal  `json:"total_earned"`
	TotalDueNow decimal.Decimal  `json:"total_due_now"`
	TotalOnHold decimal.Decimal  `json:"total_on_hold"`
	TotalPaid   decimal.Decimal  `json:"total_paid"`
	Customers   []CustomerLedger `json:"customers"`
	Entries     []LedgerEntry    `json:"entries"`
}

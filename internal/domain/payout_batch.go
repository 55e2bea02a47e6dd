package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayoutBatch is an all-or-nothing settlement of eligible earning events.
// Membership and total are frozen at creation.
type PayoutBatch struct {
	ID            string
	BrokerID      BrokerID
	EventIDs      []string
	TotalAmount   decimal.Decimal
	PaymentMethod string
	TransactionID string
	Notes         string
	CreatedAt     time.Time
	PaidAt        time.Time
}

type RejectReason string

const (
	RejectNotFound    RejectReason = "NOT_FOUND"
	RejectWrongBroker RejectReason = "WRONG_BROKER"
	RejectAlreadyPaid RejectReason = "ALREADY_PAID"
	RejectNotEligible RejectReason = "NOT_ELIGIBLE"
)

type RejectedEvent struct {
	EventID string       `json:"event_id"`
	Reason  RejectReason `json:"reason"`
}

// BatchResult is either a settlement (Rejected empty) or a full rejection
// (Rejected non-empty, nothing mutated). There is no partial success.
type BatchResult struct {
	BatchID       string          `json:"batch_id,omitempty"`
	TransactionID string          `json:"transaction_id,omitempty"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaidEventIDs  []string        `json:"paid_event_ids,omitempty"`
	Rejected      []RejectedEvent `json:"rejected,omitempty"`
}

func (r *BatchResult) Settled() bool {
	return len(r.Rejected) == 0
}

type PayoutBatchRepository interface {
	// SettleBatch persists the batch and marks every referenced event paid in
	// one atomic unit. Each event is updated with paid_at still null as the
	// condition; if any event lost that race the whole batch rolls back with
	// ErrSettleConflict.
	SettleBatch(batch *PayoutBatch) error
	GetBatchByID(batchID string) (*PayoutBatch, error)
	GetBatchesByBrokerID(brokerID BrokerID) ([]*PayoutBatch, error)
}

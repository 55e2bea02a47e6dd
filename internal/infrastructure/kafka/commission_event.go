package kafka

import (
	"encoding/json"
	"time"

	"github.com/TrendTweekers/broker-commission-service/internal/domain"
)

const (
	EventTypeCreated        = "earning_event.created"
	EventTypeFlagged        = "earning_event.flagged"
	EventTypeStatusChanged  = "earning_event.status_changed"
	EventTypeReviewResolved = "earning_event.review_resolved"
	EventTypeBatchSettled   = "payout_batch.settled"
)

type CommissionEvent struct {
	Type       string    `json:"type"`
	BrokerID   string    `json:"broker_id"`
	EventID    string    `json:"event_id,omitempty"`
	BatchID    string    `json:"batch_id,omitempty"`
	Status     string    `json:"status,omitempty"`
	Amount     string    `json:"amount,omitempty"`
	FraudScore int       `json:"fraud_score,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// PublishCommission keys messages by broker so one broker's events stay
// ordered within a partition.
func PublishCommission(pub domain.PublisherPort, topic string, event CommissionEvent) error {
	v, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return pub.Publish(topic, domain.Message{Key: []byte(event.BrokerID), Value: v})
}

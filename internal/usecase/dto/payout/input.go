package payoutdto

import "github.com/TrendTweekers/broker-commission-service/internal/domain"

type CreateBatchInput struct {
	BrokerID      domain.BrokerID
	EventIDs      []string
	PaymentMethod string
	TransactionID string
	Notes         string
}

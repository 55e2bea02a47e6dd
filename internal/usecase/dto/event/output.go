package eventdto

import "github.com/TrendTweekers/broker-commission-service/internal/domain"

type RecordPaymentEventOutput struct {
	Event *domain.EarningEvent
	// Created is false when ingestion was a no-op: a duplicate delivery of
	// the same processor event, or a bounty customer who already earned.
	Created   bool
	Duplicate bool
	Skipped   bool
}

type BillingStateChangeOutput struct {
	Transitioned []*domain.EarningEvent
	ClawedBack   []*domain.EarningEvent
}

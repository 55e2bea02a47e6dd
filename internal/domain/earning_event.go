package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type EventStatus string

const (
	StatusActive        EventStatus = "ACTIVE"
	StatusPendingReview EventStatus = "PENDING_REVIEW"
	StatusDenied        EventStatus = "DENIED"
	StatusCanceled      EventStatus = "CANCELED"
	StatusRefunded      EventStatus = "REFUNDED"
	StatusChargeback    EventStatus = "CHARGEBACK"
	StatusPastDue       EventStatus = "PAST_DUE"
	StatusClawedBack    EventStatus = "CLAWED_BACK"
)

type ReviewDecision string

const (
	ReviewNone     ReviewDecision = "NONE"
	ReviewApproved ReviewDecision = "APPROVED"
	ReviewDenied   ReviewDecision = "DENIED"
)

// Default commission terms. HoldDays/ClawbackDays can be overridden from
// config; the amounts are fixed per occurrence.
const (
	HoldDays     = 60
	ClawbackDays = 90
)

var (
	BountyAmount    = decimal.NewFromInt(500)
	RecurringAmount = decimal.NewFromInt(50)
)

type CustomerIdentity struct {
	Email               string
	ProcessorCustomerID string
}

// EarningEvent is one commission-bearing payment occurrence. Events are never
// deleted; once settled they are a permanent audit record.
type EarningEvent struct {
	ID               string
	BrokerID         BrokerID
	Customer         CustomerIdentity
	CommissionModel  CommissionModel
	Amount           decimal.Decimal
	PaymentDate      time.Time
	Status           EventStatus
	FraudScore       int
	FraudFlags       []FraudFlag
	ReviewDecision   ReviewDecision
	ProcessorEventID string
	PaidAt           *time.Time
	PaidBatchID      string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// EligibleAt is when the event leaves the hold period. Eligibility is always
// derived from it at read time, never persisted.
func (e *EarningEvent) EligibleAt(holdDays int) time.Time {
	return e.PaymentDate.AddDate(0, 0, holdDays)
}

func (e *EarningEvent) IsEligible(now time.Time, holdDays int) bool {
	return e.Status == StatusActive && e.PaidAt == nil && !now.Before(e.EligibleAt(holdDays))
}

// NegativeStatus reports whether s is one of the terminal billing-failure
// states an event never automatically leaves.
func NegativeStatus(s EventStatus) bool {
	switch s {
	case StatusCanceled, StatusRefunded, StatusChargeback, StatusClawedBack, StatusDenied:
		return true
	}
	return false
}

type EarningEventRepository interface {
	CreateEvent(event *EarningEvent) error
	GetEventByID(eventID string) (*EarningEvent, error)
	GetEventsByIDs(eventIDs []string) ([]*EarningEvent, error)
	// GetEventByProcessorEventID returns ErrEventNotFound when no event with
	// the given idempotency key exists.
	GetEventByProcessorEventID(processorEventID string) (*EarningEvent, error)
	GetEventsByBrokerID(brokerID BrokerID) ([]*EarningEvent, error)
	GetEventsByCustomer(processorCustomerID string) ([]*EarningEvent, error)
	CountEventsByBroker(brokerID BrokerID, since time.Time) (int64, error)
	HasEventForCustomer(brokerID BrokerID, processorCustomerID string) (bool, error)
	UpdateEventStatus(eventID string, newStatus EventStatus, asOf time.Time) error
	SetReviewDecision(eventID string, decision ReviewDecision, newStatus EventStatus) error
	ListPendingReview() ([]*EarningEvent, error)
	ListBrokerIDsWithEvents() ([]BrokerID, error)
}

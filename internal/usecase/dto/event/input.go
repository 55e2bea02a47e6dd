package eventdto

import (
	"time"

	"github.com/TrendTweekers/broker-commission-service/internal/domain"
	"github.com/shopspring/decimal"
)

// RecordPaymentEventInput mirrors the billing webhook's payment payload.
// BrokerRef carries either the internal broker id or the public referral
// code; exactly one must be set.
type RecordPaymentEventInput struct {
	ProcessorEventID string
	BrokerRef        BrokerRef
	Customer         domain.CustomerIdentity
	CommissionModel  domain.CommissionModel
	Amount           decimal.Decimal
	PaymentDate      time.Time
	SignalParams     SignalParams
}

type BrokerRef struct {
	BrokerID     domain.BrokerID
	ReferralCode domain.ReferralCode
}

// SignalParams are the optional fraud signals delivered alongside the
// payment. Absent values contribute nothing to the score.
type SignalParams struct {
	CustomerIP         string
	BrokerIP           string
	SignupAt           *time.Time
	ProcessorRiskLevel domain.RiskLevel
}

type ApplyBillingStateChangeInput struct {
	ProcessorCustomerID string
	NewState            domain.BillingState
	AsOf                time.Time
}

type ResolveReviewInput struct {
	EventID  string
	Decision domain.ReviewDecision
	Reviewer string
}

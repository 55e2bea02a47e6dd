package domain

import "time"

// BrokerID is the internal numeric-style identifier of a broker.
// ReferralCode is the public code embedded in referral links. The two are
// distinct types on purpose: a field is always one or the other, never
// "whichever happened to be handy".
type BrokerID string

type ReferralCode string

type CommissionModel string

const (
	ModelBounty    CommissionModel = "BOUNTY"
	ModelRecurring CommissionModel = "RECURRING"
)

type BrokerStatus string

const (
	BrokerPending  BrokerStatus = "PENDING"
	BrokerApproved BrokerStatus = "APPROVED"
)

type PayoutDetails struct {
	Method      string
	PaypalEmail string
	BankAccount string
	BankRouting string
}

type Broker struct {
	ID                  BrokerID
	Email               string
	CompanyName         string
	ReferralCode        ReferralCode
	CommissionModel     CommissionModel
	Status              BrokerStatus
	ProcessorCustomerID string
	PayoutDetails       PayoutDetails
	ApprovedAt          *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type BrokerRepository interface {
	CreateBroker(broker *Broker) error
	GetBrokerByID(brokerID BrokerID) (*Broker, error)
	ResolveReferralCode(code ReferralCode) (BrokerID, error)
	UpdateBrokerStatus(brokerID BrokerID, status BrokerStatus, approvedAt *time.Time) error
}

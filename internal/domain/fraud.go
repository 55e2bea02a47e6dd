package domain

import "time"

type FraudFlag string

const (
	FlagSamePaymentCustomer   FraudFlag = "SAME_PAYMENT_CUSTOMER"
	FlagSimilarEmail          FraudFlag = "SIMILAR_EMAIL"
	FlagSequentialEmail       FraudFlag = "SEQUENTIAL_EMAIL"
	FlagSameCompanyDomain     FraudFlag = "SAME_COMPANY_DOMAIN"
	FlagImmediateSignup       FraudFlag = "IMMEDIATE_SIGNUP"
	FlagFastSignup            FraudFlag = "FAST_SIGNUP"
	FlagSameIP                FraudFlag = "SAME_IP"
	FlagProcessorRiskElevated FraudFlag = "PROCESSOR_RISK_ELEVATED"
	FlagProcessorRiskHighest  FraudFlag = "PROCESSOR_RISK_HIGHEST"
	FlagFirstReferral         FraudFlag = "FIRST_REFERRAL"
	FlagVelocity              FraudFlag = "VELOCITY"
)

type RiskLevel string

const (
	RiskNormal   RiskLevel = "normal"
	RiskElevated RiskLevel = "elevated"
	RiskHighest  RiskLevel = "highest"
)

// FraudCandidate carries the signals available about a referral at creation
// time. Every field is optional; an absent signal simply contributes nothing.
type FraudCandidate struct {
	BrokerProcessorCustomerID   string
	CustomerProcessorCustomerID string
	BrokerEmail                 string
	CustomerEmail               string
	BrokerIP                    string
	CustomerIP                  string
	BrokerApprovedAt            *time.Time
	SignupAt                    *time.Time
	ProcessorRiskLevel          RiskLevel
	ReferralsLast24h            int
	FirstReferral               bool
}

type FraudAssessment struct {
	Flags      []FraudFlag `json:"flags"`
	RiskScore  int         `json:"risk_score"`
	ShouldFlag bool        `json:"should_flag"`
}

func (a *FraudAssessment) HasFlag(flag FraudFlag) bool {
	for _, f := range a.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

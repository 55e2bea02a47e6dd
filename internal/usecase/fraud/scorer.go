package fraud

import (
	"time"

	"github.com/TrendTweekers/broker-commission-service/internal/domain"
)

// Signal weights. Flags accumulate additively and are order-independent.
const (
	weightSamePaymentCustomer   = 50
	weightSimilarEmail          = 30
	weightSequentialEmail       = 25
	weightSameCompanyDomain     = 20
	weightImmediateSignup       = 35
	weightFastSignup            = 15
	weightSameIP                = 40
	weightProcessorRiskElevated = 30
	weightProcessorRiskHighest  = 50
	weightFirstReferral         = 10
	weightVelocity              = 25

	flagThreshold          = 60
	similarEmailRatio      = 0.8
	immediateSignupWindow  = time.Hour
	fastSignupWindow       = 24 * time.Hour
	velocityReferralsLimit = 5
)

// Scorer evaluates a candidate referral before the earning event is trusted.
// It is pure and stateless; concurrent use is safe.
type Scorer struct{}

func NewScorer() *Scorer {
	return &Scorer{}
}

// Score is a total function: absent optional signals contribute zero and
// never produce an error.
func (s *Scorer) Score(c *domain.FraudCandidate) *domain.FraudAssessment {
	assessment := &domain.FraudAssessment{Flags: []domain.FraudFlag{}}

	add := func(flag domain.FraudFlag, weight int) {
		assessment.Flags = append(assessment.Flags, flag)
		assessment.RiskScore += weight
	}

	sharedCustomer := c.BrokerProcessorCustomerID != "" &&
		c.BrokerProcessorCustomerID == c.CustomerProcessorCustomerID
	if sharedCustomer {
		add(domain.FlagSamePaymentCustomer, weightSamePaymentCustomer)
	}

	if c.BrokerEmail != "" && c.CustomerEmail != "" {
		brokerLocal := localPart(c.BrokerEmail)
		customerLocal := localPart(c.CustomerEmail)
		if similarity(brokerLocal, customerLocal) > similarEmailRatio {
			add(domain.FlagSimilarEmail, weightSimilarEmail)
		}
		if sequentialLocalParts(brokerLocal, customerLocal) {
			add(domain.FlagSequentialEmail, weightSequentialEmail)
		}
		if sameCompanyDomain(c.BrokerEmail, c.CustomerEmail) {
			add(domain.FlagSameCompanyDomain, weightSameCompanyDomain)
		}
	}

	if c.BrokerApprovedAt != nil && c.SignupAt != nil {
		elapsed := c.SignupAt.Sub(*c.BrokerApprovedAt)
		if elapsed >= 0 {
			// only the stronger of the two timing signals applies
			switch {
			case elapsed <= immediateSignupWindow:
				add(domain.FlagImmediateSignup, weightImmediateSignup)
			case elapsed <= fastSignupWindow:
				add(domain.FlagFastSignup, weightFastSignup)
			}
		}
	}

	if c.BrokerIP != "" && c.BrokerIP == c.CustomerIP {
		add(domain.FlagSameIP, weightSameIP)
	}

	switch c.ProcessorRiskLevel {
	case domain.RiskHighest:
		add(domain.FlagProcessorRiskHighest, weightProcessorRiskHighest)
	case domain.RiskElevated:
		add(domain.FlagProcessorRiskElevated, weightProcessorRiskElevated)
	}

	if c.FirstReferral {
		add(domain.FlagFirstReferral, weightFirstReferral)
	}

	if c.ReferralsLast24h >= velocityReferralsLimit {
		add(domain.FlagVelocity, weightVelocity)
	}

	// self-referral through the same processor customer is flagged no matter
	// how low the total score is
	assessment.ShouldFlag = assessment.RiskScore >= flagThreshold || sharedCustomer

	return assessment
}

package broker

import (
	"time"

	"github.com/TrendTweekers/broker-commission-service/internal/domain"
	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"
)

type BrokerUsecase interface {
	RegisterBroker(input *RegisterBrokerInput) (*domain.Broker, error)
	ApproveBroker(brokerID domain.BrokerID) (*domain.Broker, error)
	GetBrokerByID(brokerID domain.BrokerID) (*domain.Broker, error)
	ResolveReferralCode(code domain.ReferralCode) (domain.BrokerID, error)
}

type RegisterBrokerInput struct {
	Email               string
	CompanyName         string
	CommissionModel     domain.CommissionModel
	ProcessorCustomerID string
	PayoutDetails       domain.PayoutDetails
}

type DefaultBrokerUsecase struct {
	BrokerRepo domain.BrokerRepository
}

func NewDefaultBrokerUsecase(brokerRepo domain.BrokerRepository) *DefaultBrokerUsecase {
	return &DefaultBrokerUsecase{BrokerRepo: brokerRepo}
}

func (uc *DefaultBrokerUsecase) RegisterBroker(input *RegisterBrokerInput) (*domain.Broker, error) {
	// referral codes are short and unambiguous enough to put in a link
	codeGenerator, err := nanoid.CustomASCII("abcdefghijklmnopqrstuvwxyz0123456789", 10)
	if err != nil {
		return nil, err
	}

	model := input.CommissionModel
	if model == "" {
		model = domain.ModelRecurring
	}

	newBroker := &domain.Broker{
		ID:                  domain.BrokerID(uuid.NewString()),
		Email:               input.Email,
		CompanyName:         input.CompanyName,
		ReferralCode:        domain.ReferralCode(codeGenerator()),
		CommissionModel:     model,
		Status:              domain.BrokerPending,
		ProcessorCustomerID: input.ProcessorCustomerID,
		PayoutDetails:       input.PayoutDetails,
		CreatedAt:           time.Now(),
		UpdatedAt:           time.Now(),
	}

	if err := uc.BrokerRepo.CreateBroker(newBroker); err != nil {
		return nil, err
	}

	return newBroker, nil
}

func (uc *DefaultBrokerUsecase) ApproveBroker(brokerID domain.BrokerID) (*domain.Broker, error) {
	b, err := uc.BrokerRepo.GetBrokerByID(brokerID)
	if err != nil {
		return nil, err
	}
	if b.Status == domain.BrokerApproved {
		return b, nil
	}

	approvedAt := time.Now()
	if err := uc.BrokerRepo.UpdateBrokerStatus(brokerID, domain.BrokerApproved, &approvedAt); err != nil {
		return nil, err
	}
	b.Status = domain.BrokerApproved
	b.ApprovedAt = &approvedAt
	return b, nil
}

func (uc *DefaultBrokerUsecase) GetBrokerByID(brokerID domain.BrokerID) (*domain.Broker, error) {
	return uc.BrokerRepo.GetBrokerByID(brokerID)
}

func (uc *DefaultBrokerUsecase) ResolveReferralCode(code domain.ReferralCode) (domain.BrokerID, error) {
	return uc.BrokerRepo.ResolveReferralCode(code)
}

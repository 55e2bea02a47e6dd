package mappers

import (
	"github.com/TrendTweekers/broker-commission-service/internal/domain"
	"github.com/TrendTweekers/broker-commission-service/internal/infrastructure/postgres/models"
)

func ToDomainBroker(model *models.BrokerModel) *domain.Broker {
	return &domain.Broker{
		ID:                  domain.BrokerID(model.ID),
		Email:               model.Email,
		CompanyName:         model.CompanyName,
		ReferralCode:        domain.ReferralCode(model.ReferralCode),
		CommissionModel:     model.CommissionModel,
		Status:              model.Status,
		ProcessorCustomerID: model.ProcessorCustomerID,
		PayoutDetails: domain.PayoutDetails{
			Method:      model.PayoutMethod,
			PaypalEmail: model.PaypalEmail,
			BankAccount: model.BankAccount,
			BankRouting: model.BankRouting,
		},
		ApprovedAt: model.ApprovedAt,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}

func ToGORMBroker(broker *domain.Broker) *models.BrokerModel {
	return &models.BrokerModel{
		ID:                  string(broker.ID),
		Email:               broker.Email,
		CompanyName:         broker.CompanyName,
		ReferralCode:        string(broker.ReferralCode),
		CommissionModel:     broker.CommissionModel,
		Status:              broker.Status,
		ProcessorCustomerID: broker.ProcessorCustomerID,
		PayoutMethod:        broker.PayoutDetails.Method,
		PaypalEmail:         broker.PayoutDetails.PaypalEmail,
		BankAccount:         broker.PayoutDetails.BankAccount,
		BankRouting:         broker.PayoutDetails.BankRouting,
		ApprovedAt:          broker.ApprovedAt,
		CreatedAt:           broker.CreatedAt,
		UpdatedAt:           broker.UpdatedAt,
	}
}

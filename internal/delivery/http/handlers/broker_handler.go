package handlers

import (
	"net/http"

	"github.com/TrendTweekers/broker-commission-service/internal/domain"
	"github.com/TrendTweekers/broker-commission-service/internal/usecase/broker"
	"github.com/gin-gonic/gin"
)

type BrokerHandler struct {
	brokerUsecase broker.BrokerUsecase
}

func NewBrokerHandler(brokerUsecase broker.BrokerUsecase) *BrokerHandler {
	return &BrokerHandler{brokerUsecase: brokerUsecase}
}

type registerBrokerRequest struct {
	Email               string `json:"email" binding:"required,email"`
	CompanyName         string `json:"company_name"`
	CommissionModel     string `json:"commission_model"`
	ProcessorCustomerID string `json:"processor_customer_id"`
	PayoutMethod        string `json:"payout_method"`
	PaypalEmail         string `json:"paypal_email"`
	BankAccount         string `json:"bank_account"`
	BankRouting         string `json:"bank_routing"`
}

func (h *BrokerHandler) Register(c *gin.Context) {
	var req registerBrokerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.brokerUsecase.RegisterBroker(&broker.RegisterBrokerInput{
		Email:               req.Email,
		CompanyName:         req.CompanyName,
		CommissionModel:     domain.CommissionModel(req.CommissionModel),
		ProcessorCustomerID: req.ProcessorCustomerID,
		PayoutDetails: domain.PayoutDetails{
			Method:      req.PayoutMethod,
			PaypalEmail: req.PaypalEmail,
			BankAccount: req.BankAccount,
			BankRouting: req.BankRouting,
		},
	})
	if err != nil {
		respondUsecaseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"broker_id":     b.ID,
		"referral_code": b.ReferralCode,
		"status":        b.Status,
	})
}

func (h *BrokerHandler) Approve(c *gin.Context) {
	b, err := h.brokerUsecase.ApproveBroker(domain.BrokerID(c.Param("brokerID")))
	if err != nil {
		respondUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"broker_id": b.ID, "status": b.Status, "approved_at": b.ApprovedAt})
}

func (h *BrokerHandler) Get(c *gin.Context) {
	b, err := h.brokerUsecase.GetBrokerByID(domain.BrokerID(c.Param("brokerID")))
	if err != nil {
		respondUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

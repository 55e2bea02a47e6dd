package handlers

import (
	"net/http"
	"time"

	"github.com/TrendTweekers/broker-commission-service/internal/domain"
	eventdto "github.com/TrendTweekers/broker-commission-service/internal/usecase/dto/event"
	"github.com/TrendTweekers/broker-commission-service/internal/usecase/lifecycle"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// BillingWebhookHandler ingests the upstream payment processor's webhook
// deliveries. Both endpoints are safe to retry: payment ingestion is
// idempotent on the processor event id and state changes are absorbing.
type BillingWebhookHandler struct {
	lifecycleUsecase lifecycle.LifecycleUsecase
}

func NewBillingWebhookHandler(lifecycleUsecase lifecycle.LifecycleUsecase) *BillingWebhookHandler {
	return &BillingWebhookHandler{lifecycleUsecase: lifecycleUsecase}
}

type paymentWebhookRequest struct {
	EventID      string  `json:"event_id" binding:"required"`
	BrokerID     string  `json:"broker_id"`
	ReferralCode string  `json:"referral_code"`
	Customer     struct {
		Email      string `json:"email"`
		CustomerID string `json:"customer_id" binding:"required"`
	} `json:"customer"`
	Amount      float64    `json:"amount"`
	PaymentDate time.Time  `json:"payment_date" binding:"required"`
	RiskLevel   string     `json:"risk_level"`
	CustomerIP  string     `json:"customer_ip"`
	BrokerIP    string     `json:"broker_ip"`
	SignupAt    *time.Time `json:"signup_at"`
}

func (h *BillingWebhookHandler) HandlePaymentSucceeded(c *gin.Context) {
	var req paymentWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := &eventdto.RecordPaymentEventInput{
		ProcessorEventID: req.EventID,
		BrokerRef: eventdto.BrokerRef{
			BrokerID:     domain.BrokerID(req.BrokerID),
			ReferralCode: domain.ReferralCode(req.ReferralCode),
		},
		Customer: domain.CustomerIdentity{
			Email:               req.Customer.Email,
			ProcessorCustomerID: req.Customer.CustomerID,
		},
		Amount:      decimal.NewFromFloat(req.Amount),
		PaymentDate: req.PaymentDate,
		SignalParams: eventdto.SignalParams{
			CustomerIP:         req.CustomerIP,
			BrokerIP:           req.BrokerIP,
			SignupAt:           req.SignupAt,
			ProcessorRiskLevel: domain.RiskLevel(req.RiskLevel),
		},
	}

	output, err := h.lifecycleUsecase.RecordPaymentEvent(c.Request.Context(), input)
	if err != nil {
		respondUsecaseError(c, err)
		return
	}

	switch {
	case output.Duplicate:
		c.JSON(http.StatusOK, gin.H{"duplicate": true, "event_id": output.Event.ID})
	case output.Skipped:
		c.JSON(http.StatusOK, gin.H{"skipped": true})
	default:
		c.JSON(http.StatusCreated, gin.H{
			"event_id":    output.Event.ID,
			"status":      output.Event.Status,
			"fraud_score": output.Event.FraudScore,
			"fraud_flags": output.Event.FraudFlags,
		})
	}
}

type billingStateRequest struct {
	CustomerID string     `json:"customer_id" binding:"required"`
	NewState   string     `json:"new_state" binding:"required"`
	AsOf       *time.Time `json:"as_of"`
}

func (h *BillingWebhookHandler) HandleBillingStateChange(c *gin.Context) {
	var req billingStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := &eventdto.ApplyBillingStateChangeInput{
		ProcessorCustomerID: req.CustomerID,
		NewState:            domain.BillingState(req.NewState),
	}
	if req.AsOf != nil {
		input.AsOf = *req.AsOf
	}

	output, err := h.lifecycleUsecase.ApplyBillingStateChange(c.Request.Context(), input)
	if err != nil {
		respondUsecaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transitioned": len(output.Transitioned),
		"clawed_back":  len(output.ClawedBack),
	})
}

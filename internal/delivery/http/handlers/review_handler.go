package handlers

import (
	"net/http"
	"time"

	"github.com/TrendTweekers/broker-commission-service/internal/domain"
	eventdto "github.com/TrendTweekers/broker-commission-service/internal/usecase/dto/event"
	"github.com/TrendTweekers/broker-commission-service/internal/usecase/fraud"
	"github.com/TrendTweekers/broker-commission-service/internal/usecase/lifecycle"
	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	lifecycleUsecase lifecycle.LifecycleUsecase
}

func NewReviewHandler(lifecycleUsecase lifecycle.LifecycleUsecase) *ReviewHandler {
	return &ReviewHandler{lifecycleUsecase: lifecycleUsecase}
}

func (h *ReviewHandler) ListPending(c *gin.Context) {
	events, err := h.lifecycleUsecase.ListPendingReview(c.Request.Context())
	if err != nil {
		respondUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pending": events, "count": len(events)})
}

type resolveReviewRequest struct {
	Decision string `json:"decision" binding:"required"`
	Reviewer string `json:"reviewer"`
}

func (h *ReviewHandler) Resolve(c *gin.Context) {
	var req resolveReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := h.lifecycleUsecase.ResolveReview(c.Request.Context(), &eventdto.ResolveReviewInput{
		EventID:  c.Param("eventID"),
		Decision: domain.ReviewDecision(req.Decision),
		Reviewer: req.Reviewer,
	})
	if err != nil {
		respondUsecaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"event_id": event.ID, "status": event.Status})
}

// FraudCheckHandler exposes the scorer for pre-screening a referral before
// any event exists.
type FraudCheckHandler struct {
	scorer *fraud.Scorer
}

func NewFraudCheckHandler(scorer *fraud.Scorer) *FraudCheckHandler {
	return &FraudCheckHandler{scorer: scorer}
}

type fraudCheckRequest struct {
	BrokerCustomerID   string     `json:"broker_customer_id"`
	CustomerCustomerID string     `json:"customer_customer_id"`
	BrokerEmail        string     `json:"broker_email"`
	CustomerEmail      string     `json:"customer_email"`
	BrokerIP           string     `json:"broker_ip"`
	CustomerIP         string     `json:"customer_ip"`
	BrokerApprovedAt   *time.Time `json:"broker_approved_at"`
	SignupAt           *time.Time `json:"signup_at"`
	RiskLevel          string     `json:"risk_level"`
	ReferralsLast24h   int        `json:"referrals_last_24h"`
	FirstReferral      bool       `json:"first_referral"`
}

func (h *FraudCheckHandler) Check(c *gin.Context) {
	var req fraudCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	assessment := h.scorer.Score(&domain.FraudCandidate{
		BrokerProcessorCustomerID:   req.BrokerCustomerID,
		CustomerProcessorCustomerID: req.CustomerCustomerID,
		BrokerEmail:                 req.BrokerEmail,
		CustomerEmail:               req.CustomerEmail,
		BrokerIP:                    req.BrokerIP,
		CustomerIP:                  req.CustomerIP,
		BrokerApprovedAt:            req.BrokerApprovedAt,
		SignupAt:                    req.SignupAt,
		ProcessorRiskLevel:          domain.RiskLevel(req.RiskLevel),
		ReferralsLast24h:            req.ReferralsLast24h,
		FirstReferral:               req.FirstReferral,
	})

	c.JSON(http.StatusOK, assessment)
}

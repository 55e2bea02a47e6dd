package handlers

import (
	"net/http"

	"github.com/TrendTweekers/broker-commission-service/internal/domain"
	payoutdto "github.com/TrendTweekers/broker-commission-service/internal/usecase/dto/payout"
	"github.com/TrendTweekers/broker-commission-service/internal/usecase/payout"
	"github.com/gin-gonic/gin"
)

type PayoutHandler struct {
	payoutUsecase payout.PayoutUsecase
}

func NewPayoutHandler(payoutUsecase payout.PayoutUsecase) *PayoutHandler {
	return &PayoutHandler{payoutUsecase: payoutUsecase}
}

type createBatchRequest struct {
	EventIDs      []string `json:"event_ids" binding:"required"`
	PaymentMethod string   `json:"payment_method" binding:"required"`
	TransactionID string   `json:"transaction_id"`
	Notes         string   `json:"notes"`
}

// CreateBatch settles the referenced events all-or-nothing. A validation
// failure comes back as 422 with the full rejected list; nothing was paid.
func (h *PayoutHandler) CreateBatch(c *gin.Context) {
	var req createBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := &payoutdto.CreateBatchInput{
		BrokerID:      domain.BrokerID(c.Param("brokerID")),
		EventIDs:      req.EventIDs,
		PaymentMethod: req.PaymentMethod,
		TransactionID: req.TransactionID,
		Notes:         req.Notes,
	}

	result, err := h.payoutUsecase.CreateBatch(c.Request.Context(), input)
	if err != nil {
		respondUsecaseError(c, err)
		return
	}

	if !result.Settled() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"rejected": result.Rejected})
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *PayoutHandler) GetBatch(c *gin.Context) {
	batch, err := h.payoutUsecase.GetBatchByID(c.Request.Context(), c.Param("batchID"))
	if err != nil {
		respondUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, batch)
}

func (h *PayoutHandler) ListBrokerBatches(c *gin.Context) {
	batches, err := h.payoutUsecase.GetBatchesByBrokerID(c.Request.Context(), domain.BrokerID(c.Param("brokerID")))
	if err != nil {
		respondUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"batches": batches})
}

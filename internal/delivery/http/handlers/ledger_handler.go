package handlers

import (
	"net/http"
	"time"

	"github.com/TrendTweekers/broker-commission-service/internal/domain"
	"github.com/TrendTweekers/broker-commission-service/internal/usecase/ledger"
	"github.com/gin-gonic/gin"
)

type LedgerHandler struct {
	ledgerUsecase ledger.LedgerUsecase
}

func NewLedgerHandler(ledgerUsecase ledger.LedgerUsecase) *LedgerHandler {
	return &LedgerHandler{ledgerUsecase: ledgerUsecase}
}

// GetBrokerLedger serves the per-broker due/hold/paid projection. An as_of
// query parameter (RFC 3339) re-runs the projection at another instant.
func (h *LedgerHandler) GetBrokerLedger(c *gin.Context) {
	brokerID := domain.BrokerID(c.Param("brokerID"))

	now := time.Now()
	if asOf := c.Query("as_of"); asOf != "" {
		parsed, err := time.Parse(time.RFC3339, asOf)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "as_of must be RFC 3339"})
			return
		}
		now = parsed
	}

	summary, err := h.ledgerUsecase.ComputeBrokerLedger(c.Request.Context(), brokerID, now)
	if err != nil {
		respondUsecaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *LedgerHandler) GetAllLedgers(c *gin.Context) {
	dueOnly := c.Query("due_only") == "true"

	summaries, err := h.ledgerUsecase.ComputeAllBrokersLedgers(c.Request.Context(), time.Now(), dueOnly)
	if err != nil {
		respondUsecaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ledgers": summaries, "count": len(summaries)})
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/TrendTweekers/broker-commission-service/internal/domain"
	"github.com/gin-gonic/gin"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// respondUsecaseError translates usecase errors into HTTP responses: domain
// sentinels map to explicit statuses, grpc-status errors carry their own
// code, everything else is a 500.
func respondUsecaseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrBrokerNotFound),
		errors.Is(err, domain.ErrEventNotFound),
		errors.Is(err, domain.ErrBatchNotFound),
		errors.Is(err, domain.ErrReferralCodeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrEmptyBatch):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotReviewable),
		errors.Is(err, domain.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrSettleConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		if st, ok := status.FromError(err); ok && st.Code() == codes.InvalidArgument {
			c.JSON(http.StatusBadRequest, gin.H{"error": st.Message()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

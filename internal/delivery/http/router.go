package http

import (
	"github.com/TrendTweekers/broker-commission-service/internal/delivery/http/handlers"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	Webhook    *handlers.BillingWebhookHandler
	Ledger     *handlers.LedgerHandler
	Payout     *handlers.PayoutHandler
	Review     *handlers.ReviewHandler
	FraudCheck *handlers.FraudCheckHandler
	Broker     *handlers.BrokerHandler
}

func SetupRouter(h Handlers) *gin.Engine {
	router := gin.Default()

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	webhooks := router.Group("/webhooks/billing")
	{
		webhooks.POST("/payment-succeeded", h.Webhook.HandlePaymentSucceeded)
		webhooks.POST("/state-changed", h.Webhook.HandleBillingStateChange)
	}

	brokers := router.Group("/brokers")
	{
		brokers.POST("", h.Broker.Register)
		brokers.GET("/:brokerID", h.Broker.Get)
		brokers.POST("/:brokerID/approve", h.Broker.Approve)
		brokers.GET("/:brokerID/ledger", h.Ledger.GetBrokerLedger)
		brokers.POST("/:brokerID/payouts", h.Payout.CreateBatch)
		brokers.GET("/:brokerID/payouts", h.Payout.ListBrokerBatches)
	}

	router.GET("/ledgers", h.Ledger.GetAllLedgers)
	router.GET("/payouts/:batchID", h.Payout.GetBatch)

	reviews := router.Group("/reviews")
	{
		reviews.GET("/pending", h.Review.ListPending)
		reviews.POST("/:eventID", h.Review.Resolve)
	}

	router.POST("/fraud/check", h.FraudCheck.Check)

	return router
}

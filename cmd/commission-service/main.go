package main

import (
	"fmt"
	"log"
	"time"

	"github.com/TrendTweekers/broker-commission-service/internal/config"
	httpdelivery "github.com/TrendTweekers/broker-commission-service/internal/delivery/http"
	"github.com/TrendTweekers/broker-commission-service/internal/delivery/http/handlers"
	"github.com/TrendTweekers/broker-commission-service/internal/infrastructure/cache"
	"github.com/TrendTweekers/broker-commission-service/internal/infrastructure/kafka"
	"github.com/TrendTweekers/broker-commission-service/internal/infrastructure/logger"
	"github.com/TrendTweekers/broker-commission-service/internal/infrastructure/metrics"
	"github.com/TrendTweekers/broker-commission-service/internal/infrastructure/migrate"
	"github.com/TrendTweekers/broker-commission-service/internal/infrastructure/postgres"
	"github.com/TrendTweekers/broker-commission-service/internal/infrastructure/postgres/repository"
	"github.com/TrendTweekers/broker-commission-service/internal/usecase/broker"
	"github.com/TrendTweekers/broker-commission-service/internal/usecase/fraud"
	"github.com/TrendTweekers/broker-commission-service/internal/usecase/ledger"
	"github.com/TrendTweekers/broker-commission-service/internal/usecase/lifecycle"
	"github.com/TrendTweekers/broker-commission-service/internal/usecase/payout"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	// Init database
	db := postgres.MustInitDB(cfg)

	if cfg.CommissionDB.MigrationsPath != "" {
		if err := migrate.RunMigrations(db, cfg.CommissionDB.MigrationsPath); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	// Kafka publisher for commission lifecycle events
	brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
	pub := kafka.NewKafkaPublisher(brokers)
	defer pub.Close()

	// Prometheus metrics
	commissionMetrics := metrics.NewCommissionMetrics()

	// Redis ledger cache (optional)
	var ledgerCache *cache.LedgerCache
	if cfg.RedisService.Addr != "" {
		ledgerCache = cache.NewLedgerCache(
			cfg.RedisService.Addr,
			cfg.RedisService.Password,
			time.Duration(cfg.RedisService.TTLSeconds)*time.Second,
		)
	}

	// Settlement/ingest audit trail
	auditLogger := logger.NewPGCommissionAuditLogger(db)

	// Init repos
	brokerRepo := repository.NewDefaultBrokerRepository(db)
	eventRepo := repository.NewDefaultEarningEventRepository(db)
	batchRepo := repository.NewDefaultPayoutBatchRepository(db)

	// Init usecases
	scorer := fraud.NewScorer()
	calculator := ledger.NewCalculator(cfg.LedgerRules.HoldDays)

	brokerUsecase := broker.NewDefaultBrokerUsecase(brokerRepo)
	ledgerUsecase := ledger.NewDefaultLedgerUsecase(eventRepo, calculator, ledgerCache, commissionMetrics)
	lifecycleUsecase := lifecycle.NewDefaultLifecycleUsecase(
		eventRepo,
		brokerRepo,
		scorer,
		pub,
		cfg.KafkaService.Topic,
		commissionMetrics,
		auditLogger,
		ledgerCache,
		cfg.LedgerRules.ClawbackDays,
	)
	payoutUsecase := payout.NewDefaultPayoutUsecase(
		eventRepo,
		batchRepo,
		brokerRepo,
		pub,
		cfg.KafkaService.Topic,
		commissionMetrics,
		auditLogger,
		ledgerCache,
		cfg.LedgerRules.HoldDays,
	)

	// HTTP delivery
	router := httpdelivery.SetupRouter(httpdelivery.Handlers{
		Webhook:    handlers.NewBillingWebhookHandler(lifecycleUsecase),
		Ledger:     handlers.NewLedgerHandler(ledgerUsecase),
		Payout:     handlers.NewPayoutHandler(payoutUsecase),
		Review:     handlers.NewReviewHandler(lifecycleUsecase),
		FraudCheck: handlers.NewFraudCheckHandler(scorer),
		Broker:     handlers.NewBrokerHandler(brokerUsecase),
	})

	addr := fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port)
	log.Printf("commission service started on %s\n", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("failed to serve: %v\n", err)
	}
}

package postgres

import (
	"log"

	"github.com/TrendTweekers/broker-commission-service/internal/config"
	"github.com/TrendTweekers/broker-commission-service/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.CommissionConfig) *gorm.DB {
	dsn := cfg.CommissionDB.Dsn
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	db.AutoMigrate(&models.BrokerModel{}, &models.EarningEventModel{}, &models.PayoutBatchModel{})

	return db
}

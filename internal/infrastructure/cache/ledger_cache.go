package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/TrendTweekers/broker-commission-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

// LedgerCache keeps recently computed ledger summaries in redis for the
// dashboard read path. Entries are short-lived and invalidated on every
// mutation of a broker's events, so the cache can never drift into being an
// independent source of truth.
type LedgerCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewLedgerCache(addr, password string, ttl time.Duration) *LedgerCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &LedgerCache{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
		ttl: ttl,
	}
}

func ledgerKey(brokerID domain.BrokerID) string {
	return fmt.Sprintf("ledger:%s", brokerID)
}

func (c *LedgerCache) Get(ctx context.Context, brokerID domain.BrokerID) (*domain.LedgerSummary, bool) {
	payload, err := c.client.Get(ctx, ledgerKey(brokerID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("ledger cache get failed", "broker_id", brokerID, "error", err.Error())
		}
		return nil, false
	}

	var summary domain.LedgerSummary
	if err := json.Unmarshal(payload, &summary); err != nil {
		return nil, false
	}
	return &summary, true
}

func (c *LedgerCache) Set(ctx context.Context, summary *domain.LedgerSummary) error {
	payload, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, ledgerKey(summary.BrokerID), payload, c.ttl).Err()
}

func (c *LedgerCache) Invalidate(ctx context.Context, brokerID domain.BrokerID) {
	if err := c.client.Del(ctx, ledgerKey(brokerID)).Err(); err != nil {
		slog.Warn("ledger cache invalidate failed", "broker_id", brokerID, "error", err.Error())
	}
}

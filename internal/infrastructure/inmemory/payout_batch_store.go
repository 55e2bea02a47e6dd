package inmemory

import (
	"sort"
	"sync"

	"github.com/TrendTweekers/broker-commission-service/internal/domain"
)

// InMemoryPayoutBatchStore settles against a sibling event store. The event
// store's lock is taken for the whole settle so the compare-and-set over all
// referenced events is atomic, mirroring the postgres transaction.
type InMemoryPayoutBatchStore struct {
	mu      sync.RWMutex
	batches map[string]*domain.PayoutBatch
	events  *InMemoryEarningEventStore
}

func NewInMemoryPayoutBatchStore(events *InMemoryEarningEventStore) *InMemoryPayoutBatchStore {
	return &InMemoryPayoutBatchStore{
		batches: make(map[string]*domain.PayoutBatch),
		events:  events,
	}
}

func (s *InMemoryPayoutBatchStore) SettleBatch(batch *domain.PayoutBatch) error {
	s.events.mu.Lock()
	defer s.events.mu.Unlock()

	for _, eventID := range batch.EventIDs {
		event, ok := s.events.events[eventID]
		if !ok || event.BrokerID != batch.BrokerID ||
			event.Status != domain.StatusActive || event.PaidAt != nil {
			return domain.ErrSettleConflict
		}
	}

	for _, eventID := range batch.EventIDs {
		event := s.events.events[eventID]
		paidAt := batch.PaidAt
		event.PaidAt = &paidAt
		event.PaidBatchID = batch.ID
		event.UpdatedAt = batch.PaidAt
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *batch
	copied.EventIDs = append([]string(nil), batch.EventIDs...)
	s.batches[batch.ID] = &copied
	return nil
}

func (s *InMemoryPayoutBatchStore) GetBatchByID(batchID string) (*domain.PayoutBatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	batch, ok := s.batches[batchID]
	if !ok {
		return nil, domain.ErrBatchNotFound
	}
	copied := *batch
	copied.EventIDs = append([]string(nil), batch.EventIDs...)
	return &copied, nil
}

func (s *InMemoryPayoutBatchStore) GetBatchesByBrokerID(brokerID domain.BrokerID) ([]*domain.PayoutBatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	found := make([]*domain.PayoutBatch, 0)
	for _, batch := range s.batches {
		if batch.BrokerID == brokerID {
			copied := *batch
			copied.EventIDs = append([]string(nil), batch.EventIDs...)
			found = append(found, &copied)
		}
	}
	sort.Slice(found, func(i, j int) bool {
		return found[i].CreatedAt.After(found[j].CreatedAt)
	})
	return found, nil
}

package inmemory

import (
	"sync"
	"time"

	"github.com/TrendTweekers/broker-commission-service/internal/domain"
)

// InMemoryBrokerStore backs tests and local runs; the postgres repository is
// the production implementation of the same interface.
type InMemoryBrokerStore struct {
	mu      sync.RWMutex
	brokers map[domain.BrokerID]*domain.Broker
	byCode  map[domain.ReferralCode]domain.BrokerID
}

func NewInMemoryBrokerStore() *InMemoryBrokerStore {
	return &InMemoryBrokerStore{
		brokers: make(map[domain.BrokerID]*domain.Broker),
		byCode:  make(map[domain.ReferralCode]domain.BrokerID),
	}
}

func (s *InMemoryBrokerStore) CreateBroker(broker *domain.Broker) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *broker
	s.brokers[broker.ID] = &copied
	if broker.ReferralCode != "" {
		s.byCode[broker.ReferralCode] = broker.ID
	}
	return nil
}

func (s *InMemoryBrokerStore) GetBrokerByID(brokerID domain.BrokerID) (*domain.Broker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	broker, ok := s.brokers[brokerID]
	if !ok {
		return nil, domain.ErrBrokerNotFound
	}
	copied := *broker
	return &copied, nil
}

func (s *InMemoryBrokerStore) ResolveReferralCode(code domain.ReferralCode) (domain.BrokerID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	brokerID, ok := s.byCode[code]
	if !ok {
		return "", domain.ErrReferralCodeNotFound
	}
	return brokerID, nil
}

func (s *InMemoryBrokerStore) UpdateBrokerStatus(brokerID domain.BrokerID, status domain.BrokerStatus, approvedAt *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	broker, ok := s.brokers[brokerID]
	if !ok {
		return domain.ErrBrokerNotFound
	}
	broker.Status = status
	if approvedAt != nil {
		broker.ApprovedAt = approvedAt
	}
	broker.UpdatedAt = time.Now()
	return nil
}

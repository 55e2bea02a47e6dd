package inmemory

import (
	"sort"
	"sync"
	"time"

	"github.com/TrendTweekers/broker-commission-service/internal/domain"
)

type InMemoryEarningEventStore struct {
	mu            sync.RWMutex
	events        map[string]*domain.EarningEvent
	byProcessorID map[string]string
}

func NewInMemoryEarningEventStore() *InMemoryEarningEventStore {
	return &InMemoryEarningEventStore{
		events:        make(map[string]*domain.EarningEvent),
		byProcessorID: make(map[string]string),
	}
}

func copyEvent(event *domain.EarningEvent) *domain.EarningEvent {
	copied := *event
	copied.FraudFlags = append([]domain.FraudFlag(nil), event.FraudFlags...)
	if event.PaidAt != nil {
		paidAt := *event.PaidAt
		copied.PaidAt = &paidAt
	}
	return &copied
}

func (s *InMemoryEarningEventStore) CreateEvent(event *domain.EarningEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byProcessorID[event.ProcessorEventID]; ok && event.ProcessorEventID != "" {
		return domain.ErrDuplicateEvent
	}
	s.events[event.ID] = copyEvent(event)
	if event.ProcessorEventID != "" {
		s.byProcessorID[event.ProcessorEventID] = event.ID
	}
	return nil
}

func (s *InMemoryEarningEventStore) GetEventByID(eventID string) (*domain.EarningEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	event, ok := s.events[eventID]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	return copyEvent(event), nil
}

func (s *InMemoryEarningEventStore) GetEventsByIDs(eventIDs []string) ([]*domain.EarningEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	found := make([]*domain.EarningEvent, 0, len(eventIDs))
	for _, id := range eventIDs {
		if event, ok := s.events[id]; ok {
			found = append(found, copyEvent(event))
		}
	}
	return found, nil
}

func (s *InMemoryEarningEventStore) GetEventByProcessorEventID(processorEventID string) (*domain.EarningEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	eventID, ok := s.byProcessorID[processorEventID]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	return copyEvent(s.events[eventID]), nil
}

func (s *InMemoryEarningEventStore) GetEventsByBrokerID(brokerID domain.BrokerID) ([]*domain.EarningEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	found := make([]*domain.EarningEvent, 0)
	for _, event := range s.events {
		if event.BrokerID == brokerID {
			found = append(found, copyEvent(event))
		}
	}
	sort.Slice(found, func(i, j int) bool {
		if found[i].PaymentDate.Equal(found[j].PaymentDate) {
			return found[i].ID < found[j].ID
		}
		return found[i].PaymentDate.Before(found[j].PaymentDate)
	})
	return found, nil
}

func (s *InMemoryEarningEventStore) GetEventsByCustomer(processorCustomerID string) ([]*domain.EarningEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	found := make([]*domain.EarningEvent, 0)
	for _, event := range s.events {
		if event.Customer.ProcessorCustomerID == processorCustomerID {
			found = append(found, copyEvent(event))
		}
	}
	sort.Slice(found, func(i, j int) bool {
		return found[i].PaymentDate.Before(found[j].PaymentDate)
	})
	return found, nil
}

func (s *InMemoryEarningEventStore) CountEventsByBroker(brokerID domain.BrokerID, since time.Time) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, event := range s.events {
		if event.BrokerID != brokerID {
			continue
		}
		if !since.IsZero() && event.CreatedAt.Before(since) {
			continue
		}
		count++
	}
	return count, nil
}

func (s *InMemoryEarningEventStore) HasEventForCustomer(brokerID domain.BrokerID, processorCustomerID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, event := range s.events {
		if event.BrokerID == brokerID &&
			event.Customer.ProcessorCustomerID == processorCustomerID &&
			event.Status != domain.StatusDenied {
			return true, nil
		}
	}
	return false, nil
}

func (s *InMemoryEarningEventStore) UpdateEventStatus(eventID string, newStatus domain.EventStatus, asOf time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	event, ok := s.events[eventID]
	if !ok {
		return domain.ErrEventNotFound
	}
	event.Status = newStatus
	event.UpdatedAt = asOf
	return nil
}

func (s *InMemoryEarningEventStore) SetReviewDecision(eventID string, decision domain.ReviewDecision, newStatus domain.EventStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	event, ok := s.events[eventID]
	if !ok {
		return domain.ErrEventNotFound
	}
	if event.Status != domain.StatusPendingReview {
		return domain.ErrNotReviewable
	}
	event.ReviewDecision = decision
	event.Status = newStatus
	event.UpdatedAt = time.Now()
	return nil
}

func (s *InMemoryEarningEventStore) ListPendingReview() ([]*domain.EarningEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	found := make([]*domain.EarningEvent, 0)
	for _, event := range s.events {
		if event.Status == domain.StatusPendingReview {
			found = append(found, copyEvent(event))
		}
	}
	sort.Slice(found, func(i, j int) bool {
		return found[i].CreatedAt.Before(found[j].CreatedAt)
	})
	return found, nil
}

func (s *InMemoryEarningEventStore) ListBrokerIDsWithEvents() ([]domain.BrokerID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[domain.BrokerID]bool)
	for _, event := range s.events {
		seen[event.BrokerID] = true
	}

	brokerIDs := make([]domain.BrokerID, 0, len(seen))
	for id := range seen {
		brokerIDs = append(brokerIDs, id)
	}
	sort.Slice(brokerIDs, func(i, j int) bool { return brokerIDs[i] < brokerIDs[j] })
	return brokerIDs, nil
}

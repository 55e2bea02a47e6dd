package payout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/TrendTweekers/broker-commission-service/internal/domain"
	"github.com/TrendTweekers/broker-commission-service/internal/infrastructure/inmemory"
	payoutdto "github.com/TrendTweekers/broker-commission-service/internal/usecase/dto/payout"
	"github.com/shopspring/decimal"
)

type payoutFixture struct {
	uc      *DefaultPayoutUsecase
	events  *inmemory.InMemoryEarningEventStore
	batches *inmemory.InMemoryPayoutBatchStore
	brokers *inmemory.InMemoryBrokerStore
}

func newPayoutFixture(t *testing.T) *payoutFixture {
	t.Helper()
	events := inmemory.NewInMemoryEarningEventStore()
	batches := inmemory.NewInMemoryPayoutBatchStore(events)
	brokers := inmemory.NewInMemoryBrokerStore()

	if err := brokers.CreateBroker(&domain.Broker{
		ID:     "broker-1",
		Status: domain.BrokerApproved,
	}); err != nil {
		t.Fatalf("failed to seed broker: %v", err)
	}

	return &payoutFixture{
		uc:      NewDefaultPayoutUsecase(events, batches, brokers, nil, "", nil, nil, nil, 60),
		events:  events,
		batches: batches,
		brokers: brokers,
	}
}

func (f *payoutFixture) seedEvent(t *testing.T, id string, brokerID domain.BrokerID, paymentDate time.Time, paid bool) {
	t.Helper()
	event := &domain.EarningEvent{
		ID:               id,
		BrokerID:         brokerID,
		Customer:         domain.CustomerIdentity{ProcessorCustomerID: "cus_" + id},
		CommissionModel:  domain.ModelRecurring,
		Amount:           decimal.NewFromInt(50),
		PaymentDate:      paymentDate,
		Status:           domain.StatusActive,
		ProcessorEventID: "evt_" + id,
	}
	if paid {
		paidAt := time.Now().AddDate(0, 0, -1)
		event.PaidAt = &paidAt
		event.PaidBatchID = "earlier-batch"
	}
	if err := f.events.CreateEvent(event); err != nil {
		t.Fatalf("failed to seed event %s: %v", id, err)
	}
}

func eligibleDate() time.Time {
	return time.Now().AddDate(0, 0, -90)
}

func TestCreateBatchSettles(t *testing.T) {
	f := newPayoutFixture(t)
	f.seedEvent(t, "ev-1", "broker-1", eligibleDate(), false)
	f.seedEvent(t, "ev-2", "broker-1", eligibleDate(), false)

	result, err := f.uc.CreateBatch(context.Background(), &payoutdto.CreateBatchInput{
		BrokerID:      "broker-1",
		EventIDs:      []string{"ev-1", "ev-2"},
		PaymentMethod: "paypal",
		TransactionID: "txn-1",
	})
	if err != nil {
		t.Fatalf("settle failed: %v", err)
	}
	if !result.Settled() {
		t.Fatalf("expected settlement, got rejections %+v", result.Rejected)
	}
	if !result.TotalAmount.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected total 100, got %s", result.TotalAmount)
	}

	for _, id := range []string{"ev-1", "ev-2"} {
		event, err := f.events.GetEventByID(id)
		if err != nil {
			t.Fatalf("failed to reload %s: %v", id, err)
		}
		if event.PaidAt == nil || event.PaidBatchID != result.BatchID {
			t.Fatalf("expected %s marked paid in batch %s, got %+v", id, result.BatchID, event)
		}
	}

	batch, err := f.batches.GetBatchByID(result.BatchID)
	if err != nil {
		t.Fatalf("failed to load batch: %v", err)
	}
	if batch.TransactionID != "txn-1" || len(batch.EventIDs) != 2 {
		t.Fatalf("unexpected batch record %+v", batch)
	}
}

func TestCreateBatchRejectsWholeBatchOnAlreadyPaid(t *testing.T) {
	f := newPayoutFixture(t)
	f.seedEvent(t, "ev-1", "broker-1", eligibleDate(), false)
	f.seedEvent(t, "ev-2", "broker-1", eligibleDate(), true)
	f.seedEvent(t, "ev-3", "broker-1", eligibleDate(), false)

	result, err := f.uc.CreateBatch(context.Background(), &payoutdto.CreateBatchInput{
		BrokerID: "broker-1",
		EventIDs: []string{"ev-1", "ev-2", "ev-3"},
	})
	if err != nil {
		t.Fatalf("expected rejection as data, got error: %v", err)
	}
	if result.Settled() {
		t.Fatal("expected the whole batch rejected")
	}
	if len(result.Rejected) != 1 {
		t.Fatalf("expected one rejection, got %+v", result.Rejected)
	}
	if result.Rejected[0].EventID != "ev-2" || result.Rejected[0].Reason != domain.RejectAlreadyPaid {
		t.Fatalf("expected ev-2 ALREADY_PAID, got %+v", result.Rejected[0])
	}

	// nothing was mutated, including the valid members
	for _, id := range []string{"ev-1", "ev-3"} {
		event, _ := f.events.GetEventByID(id)
		if event.PaidAt != nil {
			t.Fatalf("expected %s still unpaid after rejection", id)
		}
	}
}

func TestCreateBatchRejectReasons(t *testing.T) {
	f := newPayoutFixture(t)
	f.seedEvent(t, "ev-mine", "broker-1", eligibleDate(), false)
	f.seedEvent(t, "ev-other", "broker-2", eligibleDate(), false)
	f.seedEvent(t, "ev-held", "broker-1", time.Now().AddDate(0, 0, -10), false)

	pending := &domain.EarningEvent{
		ID:               "ev-pending",
		BrokerID:         "broker-1",
		Customer:         domain.CustomerIdentity{ProcessorCustomerID: "cus_p"},
		Amount:           decimal.NewFromInt(50),
		PaymentDate:      eligibleDate(),
		Status:           domain.StatusPendingReview,
		ProcessorEventID: "evt_p",
	}
	if err := f.events.CreateEvent(pending); err != nil {
		t.Fatalf("failed to seed pending event: %v", err)
	}

	result, err := f.uc.CreateBatch(context.Background(), &payoutdto.CreateBatchInput{
		BrokerID: "broker-1",
		EventIDs: []string{"ev-mine", "ev-other", "ev-held", "ev-pending", "ev-missing"},
	})
	if err != nil {
		t.Fatalf("expected rejection as data, got error: %v", err)
	}

	want := map[string]domain.RejectReason{
		"ev-other":   domain.RejectWrongBroker,
		"ev-held":    domain.RejectNotEligible,
		"ev-pending": domain.RejectNotEligible,
		"ev-missing": domain.RejectNotFound,
	}
	if len(result.Rejected) != len(want) {
		t.Fatalf("expected %d rejections, got %+v", len(want), result.Rejected)
	}
	for _, r := range result.Rejected {
		if want[r.EventID] != r.Reason {
			t.Fatalf("expected %s rejected as %s, got %s", r.EventID, want[r.EventID], r.Reason)
		}
	}
}

func TestCreateBatchCollapsesRepeatedIDs(t *testing.T) {
	f := newPayoutFixture(t)
	f.seedEvent(t, "ev-1", "broker-1", eligibleDate(), false)

	result, err := f.uc.CreateBatch(context.Background(), &payoutdto.CreateBatchInput{
		BrokerID: "broker-1",
		EventIDs: []string{"ev-1", "ev-1"},
	})
	if err != nil {
		t.Fatalf("settle failed: %v", err)
	}
	if !result.Settled() {
		t.Fatalf("expected settlement, got rejections %+v", result.Rejected)
	}

	// one event is one payment no matter how often the id repeats
	if !result.TotalAmount.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("expected total 50, got %s", result.TotalAmount)
	}
	if len(result.PaidEventIDs) != 1 || result.PaidEventIDs[0] != "ev-1" {
		t.Fatalf("expected ev-1 paid once, got %v", result.PaidEventIDs)
	}

	batch, err := f.batches.GetBatchByID(result.BatchID)
	if err != nil {
		t.Fatalf("failed to load batch: %v", err)
	}
	if !batch.TotalAmount.Equal(decimal.NewFromInt(50)) || len(batch.EventIDs) != 1 {
		t.Fatalf("expected persisted batch with one member and total 50, got %+v", batch)
	}
}

type failingEventRepo struct {
	domain.EarningEventRepository
}

func (failingEventRepo) GetEventsByIDs(eventIDs []string) ([]*domain.EarningEvent, error) {
	return nil, errors.New("connection refused")
}

func TestCreateBatchStoreFailureIsAnError(t *testing.T) {
	f := newPayoutFixture(t)
	f.seedEvent(t, "ev-1", "broker-1", eligibleDate(), false)
	f.uc.EventRepo = failingEventRepo{f.events}

	result, err := f.uc.CreateBatch(context.Background(), &payoutdto.CreateBatchInput{
		BrokerID: "broker-1",
		EventIDs: []string{"ev-1"},
	})
	if err == nil {
		t.Fatalf("expected a store failure to surface as an error, got %+v", result)
	}
	if result != nil {
		t.Fatalf("expected no result on store failure, got %+v", result)
	}

	event, _ := f.events.GetEventByID("ev-1")
	if event.PaidAt != nil {
		t.Fatal("expected ev-1 untouched after store failure")
	}
}

func TestCreateBatchEmptyAndUnknownBroker(t *testing.T) {
	f := newPayoutFixture(t)

	if _, err := f.uc.CreateBatch(context.Background(), &payoutdto.CreateBatchInput{
		BrokerID: "broker-1",
	}); !errors.Is(err, domain.ErrEmptyBatch) {
		t.Fatalf("expected ErrEmptyBatch, got %v", err)
	}

	if _, err := f.uc.CreateBatch(context.Background(), &payoutdto.CreateBatchInput{
		BrokerID: "no-such-broker",
		EventIDs: []string{"ev-1"},
	}); !errors.Is(err, domain.ErrBrokerNotFound) {
		t.Fatalf("expected ErrBrokerNotFound, got %v", err)
	}
}

func TestSettleBatchConflictLeavesNothingPaid(t *testing.T) {
	f := newPayoutFixture(t)
	f.seedEvent(t, "ev-1", "broker-1", eligibleDate(), false)
	f.seedEvent(t, "ev-2", "broker-1", eligibleDate(), true)

	err := f.batches.SettleBatch(&domain.PayoutBatch{
		ID:       "batch-x",
		BrokerID: "broker-1",
		EventIDs: []string{"ev-1", "ev-2"},
		PaidAt:   time.Now(),
	})
	if !errors.Is(err, domain.ErrSettleConflict) {
		t.Fatalf("expected ErrSettleConflict, got %v", err)
	}

	event, _ := f.events.GetEventByID("ev-1")
	if event.PaidAt != nil {
		t.Fatal("expected ev-1 untouched after conflicting settle")
	}
	if _, err := f.batches.GetBatchByID("batch-x"); !errors.Is(err, domain.ErrBatchNotFound) {
		t.Fatalf("expected no batch record after conflict, got %v", err)
	}
}

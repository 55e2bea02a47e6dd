package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/TrendTweekers/broker-commission-service/internal/domain"
	"github.com/TrendTweekers/broker-commission-service/internal/infrastructure/inmemory"
	eventdto "github.com/TrendTweekers/broker-commission-service/internal/usecase/dto/event"
	"github.com/TrendTweekers/broker-commission-service/internal/usecase/fraud"
	"github.com/shopspring/decimal"
)

type fixture struct {
	uc      *DefaultLifecycleUsecase
	events  *inmemory.InMemoryEarningEventStore
	brokers *inmemory.InMemoryBrokerStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	events := inmemory.NewInMemoryEarningEventStore()
	brokers := inmemory.NewInMemoryBrokerStore()
	uc := NewDefaultLifecycleUsecase(events, brokers, fraud.NewScorer(), nil, "", nil, nil, nil, 90)
	return &fixture{uc: uc, events: events, brokers: brokers}
}

func (f *fixture) addBroker(t *testing.T, id domain.BrokerID, model domain.CommissionModel) *domain.Broker {
	t.Helper()
	approvedAt := time.Now().AddDate(0, -6, 0)
	b := &domain.Broker{
		ID:              id,
		Email:           string(id) + "@partner.example.com",
		ReferralCode:    domain.ReferralCode("code-" + string(id)),
		CommissionModel: model,
		Status:          domain.BrokerApproved,
		ApprovedAt:      &approvedAt,
	}
	if err := f.brokers.CreateBroker(b); err != nil {
		t.Fatalf("failed to seed broker: %v", err)
	}
	return b
}

func paymentInput(brokerID domain.BrokerID, processorEventID, customerID string) *eventdto.RecordPaymentEventInput {
	return &eventdto.RecordPaymentEventInput{
		ProcessorEventID: processorEventID,
		BrokerRef:        eventdto.BrokerRef{BrokerID: brokerID},
		Customer: domain.CustomerIdentity{
			Email:               customerID + "@example.com",
			ProcessorCustomerID: customerID,
		},
		PaymentDate: time.Now().AddDate(0, 0, -1),
	}
}

func TestRecordPaymentEventIdempotent(t *testing.T) {
	f := newFixture(t)
	f.addBroker(t, "broker-1", domain.ModelRecurring)
	ctx := context.Background()

	first, err := f.uc.RecordPaymentEvent(ctx, paymentInput("broker-1", "evt_1", "cus_1"))
	if err != nil {
		t.Fatalf("first ingest failed: %v", err)
	}
	if !first.Created || first.Duplicate {
		t.Fatalf("expected created event, got %+v", first)
	}

	second, err := f.uc.RecordPaymentEvent(ctx, paymentInput("broker-1", "evt_1", "cus_1"))
	if err != nil {
		t.Fatalf("duplicate ingest failed: %v", err)
	}
	if !second.Duplicate || second.Created {
		t.Fatalf("expected duplicate marker, got %+v", second)
	}
	if second.Event.ID != first.Event.ID {
		t.Fatalf("expected the stored event back, got %s vs %s", second.Event.ID, first.Event.ID)
	}

	stored, err := f.events.GetEventsByBrokerID("broker-1")
	if err != nil {
		t.Fatalf("failed to list events: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("expected one stored event, got %d", len(stored))
	}
}

func TestRecordPaymentEventDefaultAmounts(t *testing.T) {
	f := newFixture(t)
	f.addBroker(t, "bounty-broker", domain.ModelBounty)
	f.addBroker(t, "recurring-broker", domain.ModelRecurring)
	ctx := context.Background()

	out, err := f.uc.RecordPaymentEvent(ctx, paymentInput("bounty-broker", "evt_b", "cus_b"))
	if err != nil {
		t.Fatalf("bounty ingest failed: %v", err)
	}
	if !out.Event.Amount.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("expected bounty default 500, got %s", out.Event.Amount)
	}

	out, err = f.uc.RecordPaymentEvent(ctx, paymentInput("recurring-broker", "evt_r", "cus_r"))
	if err != nil {
		t.Fatalf("recurring ingest failed: %v", err)
	}
	if !out.Event.Amount.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("expected recurring default 50, got %s", out.Event.Amount)
	}
}

func TestRecordPaymentEventRejectsNegativeAmount(t *testing.T) {
	f := newFixture(t)
	f.addBroker(t, "broker-1", domain.ModelRecurring)

	input := paymentInput("broker-1", "evt_neg", "cus_1")
	input.Amount = decimal.NewFromInt(-10)

	_, err := f.uc.RecordPaymentEvent(context.Background(), input)
	if !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestRecordPaymentEventBountyOncePerCustomer(t *testing.T) {
	f := newFixture(t)
	f.addBroker(t, "bounty-broker", domain.ModelBounty)
	ctx := context.Background()

	first, err := f.uc.RecordPaymentEvent(ctx, paymentInput("bounty-broker", "evt_1", "cus_1"))
	if err != nil {
		t.Fatalf("first ingest failed: %v", err)
	}
	if !first.Created {
		t.Fatalf("expected first payment to earn, got %+v", first)
	}

	second, err := f.uc.RecordPaymentEvent(ctx, paymentInput("bounty-broker", "evt_2", "cus_1"))
	if err != nil {
		t.Fatalf("second ingest failed: %v", err)
	}
	if !second.Skipped {
		t.Fatalf("expected renewal payment skipped for bounty, got %+v", second)
	}

	stored, _ := f.events.GetEventsByBrokerID("bounty-broker")
	if len(stored) != 1 {
		t.Fatalf("expected one bounty event per customer, got %d", len(stored))
	}
}

func TestRecordPaymentEventResolvesReferralCode(t *testing.T) {
	f := newFixture(t)
	b := f.addBroker(t, "broker-1", domain.ModelRecurring)

	input := paymentInput("", "evt_code", "cus_1")
	input.BrokerRef = eventdto.BrokerRef{ReferralCode: b.ReferralCode}

	out, err := f.uc.RecordPaymentEvent(context.Background(), input)
	if err != nil {
		t.Fatalf("ingest by referral code failed: %v", err)
	}
	if out.Event.BrokerID != b.ID {
		t.Fatalf("expected event attributed to %s, got %s", b.ID, out.Event.BrokerID)
	}

	input = paymentInput("", "evt_bad_code", "cus_2")
	input.BrokerRef = eventdto.BrokerRef{ReferralCode: "no-such-code"}
	if _, err := f.uc.RecordPaymentEvent(context.Background(), input); !errors.Is(err, domain.ErrReferralCodeNotFound) {
		t.Fatalf("expected ErrReferralCodeNotFound, got %v", err)
	}
}

func TestRecordPaymentEventFlagsSelfReferral(t *testing.T) {
	f := newFixture(t)
	b := f.addBroker(t, "broker-1", domain.ModelRecurring)
	b.ProcessorCustomerID = "cus_self"
	if err := f.brokers.CreateBroker(b); err != nil {
		t.Fatalf("failed to update broker: %v", err)
	}

	out, err := f.uc.RecordPaymentEvent(context.Background(), paymentInput("broker-1", "evt_self", "cus_self"))
	if err != nil {
		t.Fatalf("ingest failed: %v", err)
	}
	if out.Event.Status != domain.StatusPendingReview {
		t.Fatalf("expected self-referral held for review, got %s", out.Event.Status)
	}
	if out.Event.FraudScore == 0 {
		t.Fatal("expected a non-zero fraud score")
	}
}

func TestResolveReview(t *testing.T) {
	f := newFixture(t)
	b := f.addBroker(t, "broker-1", domain.ModelRecurring)
	b.ProcessorCustomerID = "cus_self"
	if err := f.brokers.CreateBroker(b); err != nil {
		t.Fatalf("failed to update broker: %v", err)
	}
	ctx := context.Background()

	flagged, err := f.uc.RecordPaymentEvent(ctx, paymentInput("broker-1", "evt_1", "cus_self"))
	if err != nil {
		t.Fatalf("ingest failed: %v", err)
	}

	approved, err := f.uc.ResolveReview(ctx, &eventdto.ResolveReviewInput{
		EventID:  flagged.Event.ID,
		Decision: domain.ReviewApproved,
	})
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if approved.Status != domain.StatusActive {
		t.Fatalf("expected approved event ACTIVE, got %s", approved.Status)
	}

	// a second resolution of the same event is rejected
	if _, err := f.uc.ResolveReview(ctx, &eventdto.ResolveReviewInput{
		EventID:  flagged.Event.ID,
		Decision: domain.ReviewDenied,
	}); !errors.Is(err, domain.ErrNotReviewable) {
		t.Fatalf("expected ErrNotReviewable, got %v", err)
	}
}

func TestResolveReviewDenied(t *testing.T) {
	f := newFixture(t)
	b := f.addBroker(t, "broker-1", domain.ModelRecurring)
	b.ProcessorCustomerID = "cus_self"
	if err := f.brokers.CreateBroker(b); err != nil {
		t.Fatalf("failed to update broker: %v", err)
	}
	ctx := context.Background()

	flagged, err := f.uc.RecordPaymentEvent(ctx, paymentInput("broker-1", "evt_1", "cus_self"))
	if err != nil {
		t.Fatalf("ingest failed: %v", err)
	}

	denied, err := f.uc.ResolveReview(ctx, &eventdto.ResolveReviewInput{
		EventID:  flagged.Event.ID,
		Decision: domain.ReviewDenied,
	})
	if err != nil {
		t.Fatalf("deny failed: %v", err)
	}
	if denied.Status != domain.StatusDenied {
		t.Fatalf("expected denied event DENIED, got %s", denied.Status)
	}

	pending, err := f.uc.ListPendingReview(ctx)
	if err != nil {
		t.Fatalf("failed to list pending: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected empty review queue, got %d", len(pending))
	}
}

func TestApplyBillingStateChangeUnpaid(t *testing.T) {
	f := newFixture(t)
	f.addBroker(t, "broker-1", domain.ModelRecurring)
	ctx := context.Background()

	created, err := f.uc.RecordPaymentEvent(ctx, paymentInput("broker-1", "evt_1", "cus_1"))
	if err != nil {
		t.Fatalf("ingest failed: %v", err)
	}

	out, err := f.uc.ApplyBillingStateChange(ctx, &eventdto.ApplyBillingStateChangeInput{
		ProcessorCustomerID: "cus_1",
		NewState:            domain.BillingRefunded,
	})
	if err != nil {
		t.Fatalf("billing change failed: %v", err)
	}
	if len(out.Transitioned) != 1 || len(out.ClawedBack) != 0 {
		t.Fatalf("expected one transition and no clawback, got %d/%d", len(out.Transitioned), len(out.ClawedBack))
	}

	stored, err := f.events.GetEventByID(created.Event.ID)
	if err != nil {
		t.Fatalf("failed to reload event: %v", err)
	}
	if stored.Status != domain.StatusRefunded {
		t.Fatalf("expected REFUNDED, got %s", stored.Status)
	}

	// terminal states are never left automatically
	again, err := f.uc.ApplyBillingStateChange(ctx, &eventdto.ApplyBillingStateChangeInput{
		ProcessorCustomerID: "cus_1",
		NewState:            domain.BillingCanceled,
	})
	if err != nil {
		t.Fatalf("second billing change failed: %v", err)
	}
	if len(again.Transitioned) != 0 {
		t.Fatalf("expected refunded event untouched, got %d transitions", len(again.Transitioned))
	}
}

func TestApplyBillingStateChangeClawback(t *testing.T) {
	f := newFixture(t)
	f.addBroker(t, "broker-1", domain.ModelRecurring)
	ctx := context.Background()
	now := time.Now()

	seed := func(id string, paymentDate time.Time) {
		paidAt := now.AddDate(0, 0, -5)
		event := &domain.EarningEvent{
			ID:               id,
			BrokerID:         "broker-1",
			Customer:         domain.CustomerIdentity{ProcessorCustomerID: "cus_1"},
			CommissionModel:  domain.ModelRecurring,
			Amount:           decimal.NewFromInt(50),
			PaymentDate:      paymentDate,
			Status:           domain.StatusActive,
			ProcessorEventID: "evt_" + id,
			PaidAt:           &paidAt,
			PaidBatchID:      "batch-1",
		}
		if err := f.events.CreateEvent(event); err != nil {
			t.Fatalf("failed to seed event: %v", err)
		}
	}

	seed("recent", now.AddDate(0, 0, -30))
	seed("stale", now.AddDate(0, 0, -120))

	out, err := f.uc.ApplyBillingStateChange(ctx, &eventdto.ApplyBillingStateChangeInput{
		ProcessorCustomerID: "cus_1",
		NewState:            domain.BillingChargeback,
		AsOf:                now,
	})
	if err != nil {
		t.Fatalf("billing change failed: %v", err)
	}

	if len(out.ClawedBack) != 1 || out.ClawedBack[0].ID != "recent" {
		t.Fatalf("expected only the recent payment clawed back, got %+v", out.ClawedBack)
	}

	recent, _ := f.events.GetEventByID("recent")
	if recent.Status != domain.StatusClawedBack {
		t.Fatalf("expected CLAWED_BACK, got %s", recent.Status)
	}

	// past the clawback window the settled record stands
	stale, _ := f.events.GetEventByID("stale")
	if stale.Status != domain.StatusActive {
		t.Fatalf("expected stale payment untouched, got %s", stale.Status)
	}
}

// racingEventStore misses the idempotency lookup a fixed number of times,
// reproducing two deliveries that both pass the lookup before either create
// commits.
type racingEventStore struct {
	*inmemory.InMemoryEarningEventStore
	misses int
}

func (s *racingEventStore) GetEventByProcessorEventID(processorEventID string) (*domain.EarningEvent, error) {
	if s.misses > 0 {
		s.misses--
		return nil, domain.ErrEventNotFound
	}
	return s.InMemoryEarningEventStore.GetEventByProcessorEventID(processorEventID)
}

func TestRecordPaymentEventDuplicateCreateRace(t *testing.T) {
	events := &racingEventStore{InMemoryEarningEventStore: inmemory.NewInMemoryEarningEventStore(), misses: 2}
	brokers := inmemory.NewInMemoryBrokerStore()
	uc := NewDefaultLifecycleUsecase(events, brokers, fraud.NewScorer(), nil, "", nil, nil, nil, 90)

	approvedAt := time.Now().AddDate(0, -6, 0)
	if err := brokers.CreateBroker(&domain.Broker{
		ID:              "broker-1",
		CommissionModel: domain.ModelRecurring,
		Status:          domain.BrokerApproved,
		ApprovedAt:      &approvedAt,
	}); err != nil {
		t.Fatalf("failed to seed broker: %v", err)
	}
	ctx := context.Background()

	first, err := uc.RecordPaymentEvent(ctx, paymentInput("broker-1", "evt_1", "cus_1"))
	if err != nil {
		t.Fatalf("first delivery failed: %v", err)
	}
	if !first.Created {
		t.Fatalf("expected first delivery to create, got %+v", first)
	}

	// the second delivery also misses the lookup, loses the create on the
	// unique key, and must still resolve to the stored event
	second, err := uc.RecordPaymentEvent(ctx, paymentInput("broker-1", "evt_1", "cus_1"))
	if err != nil {
		t.Fatalf("racing delivery failed: %v", err)
	}
	if !second.Duplicate || second.Created {
		t.Fatalf("expected duplicate resolution, got %+v", second)
	}
	if second.Event.ID != first.Event.ID {
		t.Fatalf("expected the stored event back, got %s vs %s", second.Event.ID, first.Event.ID)
	}

	stored, _ := events.GetEventsByBrokerID("broker-1")
	if len(stored) != 1 {
		t.Fatalf("expected one stored event, got %d", len(stored))
	}
}

func TestApplyBillingStateChangeUnknownState(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.ApplyBillingStateChange(context.Background(), &eventdto.ApplyBillingStateChangeInput{
		ProcessorCustomerID: "cus_1",
		NewState:            "trialing",
	})
	if err == nil {
		t.Fatal("expected an error for an unknown billing state")
	}
}

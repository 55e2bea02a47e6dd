package broker

import (
	"errors"
	"testing"

	"github.com/TrendTweekers/broker-commission-service/internal/domain"
	"github.com/TrendTweekers/broker-commission-service/internal/infrastructure/inmemory"
)

func TestRegisterBroker(t *testing.T) {
	uc := NewDefaultBrokerUsecase(inmemory.NewInMemoryBrokerStore())

	b, err := uc.RegisterBroker(&RegisterBrokerInput{
		Email:       "partner@acme.io",
		CompanyName: "Acme",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if b.Status != domain.BrokerPending {
		t.Fatalf("expected new broker PENDING, got %s", b.Status)
	}
	if b.CommissionModel != domain.ModelRecurring {
		t.Fatalf("expected default recurring model, got %s", b.CommissionModel)
	}
	if len(b.ReferralCode) != 10 {
		t.Fatalf("expected a 10-char referral code, got %q", b.ReferralCode)
	}

	resolved, err := uc.ResolveReferralCode(b.ReferralCode)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if resolved != b.ID {
		t.Fatalf("expected code to resolve to %s, got %s", b.ID, resolved)
	}
}

func TestApproveBrokerIdempotent(t *testing.T) {
	uc := NewDefaultBrokerUsecase(inmemory.NewInMemoryBrokerStore())

	b, err := uc.RegisterBroker(&RegisterBrokerInput{Email: "partner@acme.io"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	approved, err := uc.ApproveBroker(b.ID)
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if approved.Status != domain.BrokerApproved || approved.ApprovedAt == nil {
		t.Fatalf("expected approved broker with timestamp, got %+v", approved)
	}

	again, err := uc.ApproveBroker(b.ID)
	if err != nil {
		t.Fatalf("second approve failed: %v", err)
	}
	if !again.ApprovedAt.Equal(*approved.ApprovedAt) {
		t.Fatal("expected re-approval to keep the original timestamp")
	}
}

func TestApproveBrokerNotFound(t *testing.T) {
	uc := NewDefaultBrokerUsecase(inmemory.NewInMemoryBrokerStore())

	if _, err := uc.ApproveBroker("no-such-broker"); !errors.Is(err, domain.ErrBrokerNotFound) {
		t.Fatalf("expected ErrBrokerNotFound, got %v", err)
	}
}

package ledger

import (
	"sort"
	"time"

	"github.com/TrendTweekers/broker-commission-service/internal/domain"
	"github.com/shopspring/decimal"
)

// Calculator folds a broker's earning events into a due/hold/paid summary as
// of a given instant. It is pure and deterministic: identical inputs always
// produce an identical summary, so concurrent reads and caching are safe.
type Calculator struct {
	HoldDays int
}

func NewCalculator(holdDays int) *Calculator {
	if holdDays <= 0 {
		holdDays = domain.HoldDays
	}
	return &Calculator{HoldDays: holdDays}
}

// ComputeBrokerLedger classifies each event:
//   - non-ACTIVE statuses keep their amount in TotalEarned for the audit
//     trail but never contribute to due/hold (DENIED events are excluded
//     entirely);
//   - paid events go to TotalPaid;
//   - unpaid ACTIVE events go to TotalDueNow once now reaches eligibleAt,
//     otherwise to TotalOnHold.
func (c *Calculator) ComputeBrokerLedger(brokerID domain.BrokerID, events []*domain.EarningEvent, now time.Time) *domain.LedgerSummary {
	summary := &domain.LedgerSummary{
		BrokerID:    brokerID,
		AsOf:        now,
		TotalEarned: decimal.Zero,
		TotalDueNow: decimal.Zero,
		TotalOnHold: decimal.Zero,
		TotalPaid:   decimal.Zero,
		Customers:   []domain.CustomerLedger{},
		Entries:     []domain.LedgerEntry{},
	}

	byCustomer := make(map[string]*domain.CustomerLedger)
	customerOrder := make([]string, 0)

	for _, event := range events {
		if event.BrokerID != brokerID {
			continue
		}

		bucket := c.classify(event, now)
		if event.Status == domain.StatusDenied {
			// denied referrals never earned anything
			continue
		}

		entry := domain.LedgerEntry{
			EventID:     event.ID,
			Customer:    event.Customer,
			Amount:      event.Amount,
			Status:      event.Status,
			PaymentDate: event.PaymentDate,
			EligibleAt:  event.EligibleAt(c.HoldDays),
			Bucket:      bucket,
			PaidAt:      event.PaidAt,
			PaidBatchID: event.PaidBatchID,
		}
		summary.Entries = append(summary.Entries, entry)

		key := customerKey(event.Customer)
		cl, ok := byCustomer[key]
		if !ok {
			cl = &domain.CustomerLedger{
				Customer:    event.Customer,
				TotalEarned: decimal.Zero,
				TotalDueNow: decimal.Zero,
				TotalOnHold: decimal.Zero,
				TotalPaid:   decimal.Zero,
			}
			byCustomer[key] = cl
			customerOrder = append(customerOrder, key)
		}
		cl.EventCount++

		summary.TotalEarned = summary.TotalEarned.Add(event.Amount)
		cl.TotalEarned = cl.TotalEarned.Add(event.Amount)

		switch bucket {
		case domain.BucketPaid:
			summary.TotalPaid = summary.TotalPaid.Add(event.Amount)
			cl.TotalPaid = cl.TotalPaid.Add(event.Amount)
		case domain.BucketDueNow:
			summary.TotalDueNow = summary.TotalDueNow.Add(event.Amount)
			cl.TotalDueNow = cl.TotalDueNow.Add(event.Amount)
		case domain.BucketOnHold:
			summary.TotalOnHold = summary.TotalOnHold.Add(event.Amount)
			cl.TotalOnHold = cl.TotalOnHold.Add(event.Amount)
		}
	}

	// oldest-eligible-first gives the operator a stable payout order
	sort.Slice(summary.Entries, func(i, j int) bool {
		if summary.Entries[i].EligibleAt.Equal(summary.Entries[j].EligibleAt) {
			return summary.Entries[i].EventID < summary.Entries[j].EventID
		}
		return summary.Entries[i].EligibleAt.Before(summary.Entries[j].EligibleAt)
	})

	sort.Strings(customerOrder)
	for _, key := range customerOrder {
		summary.Customers = append(summary.Customers, *byCustomer[key])
	}

	return summary
}

func (c *Calculator) classify(event *domain.EarningEvent, now time.Time) domain.LedgerBucket {
	if event.Status != domain.StatusActive {
		return domain.BucketExcluded
	}
	if event.PaidAt != nil {
		return domain.BucketPaid
	}
	if !now.Before(event.EligibleAt(c.HoldDays)) {
		return domain.BucketDueNow
	}
	return domain.BucketOnHold
}

func customerKey(customer domain.CustomerIdentity) string {
	if customer.ProcessorCustomerID != "" {
		return customer.ProcessorCustomerID
	}
	return customer.Email
}

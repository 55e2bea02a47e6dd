package domain

// BillingState is the upstream payment processor's view of a customer
// payment, as delivered by the billing webhook.
type BillingState string

const (
	BillingCanceled   BillingState = "canceled"
	BillingRefunded   BillingState = "refunded"
	BillingChargeback BillingState = "chargeback"
	BillingPastDue    BillingState = "past_due"
)

func (s BillingState) EventStatus() (EventStatus, bool) {
	switch s {
	case BillingCanceled:
		return StatusCanceled, true
	case BillingRefunded:
		return StatusRefunded, true
	case BillingChargeback:
		return StatusChargeback, true
	case BillingPastDue:
		return StatusPastDue, true
	}
	return "", false
}

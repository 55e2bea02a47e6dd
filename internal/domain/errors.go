package domain

import "errors"

var (
	ErrBrokerNotFound       = errors.New("broker not found")
	ErrEventNotFound        = errors.New("earning event not found")
	ErrDuplicateEvent       = errors.New("processor event already recorded")
	ErrBatchNotFound        = errors.New("payout batch not found")
	ErrReferralCodeNotFound = errors.New("referral code not found")
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrEmptyBatch           = errors.New("batch must reference at least one event")
	ErrSettleConflict       = errors.New("settlement lost a concurrent update")
	ErrNotReviewable        = errors.New("event is not pending review")
	ErrInvalidTransition    = errors.New("invalid status transition")
)

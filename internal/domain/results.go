package domain

import "time"

type Attribution struct {
	Promoter *PromoterAccount
	Code     *DiscountCode
}

// StatusChange is a requested transition. From, when set, restricts the
// statuses the record may currently be in.
type StatusChange struct {
	From          []PayoutStatus
	TransferID    *string
	FailureReason *string
}

// StatusUpdate is what the ledger writes together with a status change.
type StatusUpdate struct {
	TransferID    *string
	FailureReason *string
	ProcessedAt   *time.Time
	At            time.Time
}

type SettlementDecision struct {
	Settle       bool
	PayoutIDs    []string
	PendingTotal int64
}

type SettlementResult struct {
	Settled []string
	Failed  []string
	Skipped []string
}

// IntakeResult reports what happened to each discount code of an order.
// Retryable is set when a code failed for reasons other than its own
// input, so redelivering the event may succeed.
type IntakeResult struct {
	Created    []string
	Duplicates []string
	Skipped    int
	Rejected   []string
	Retryable  bool
}

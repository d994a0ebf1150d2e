package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrNoAttributionFound  = errors.New("no attribution found")
	ErrDuplicateEvent      = errors.New("duplicate event")
	ErrNoDestination       = errors.New("promoter has no transfer destination")
	ErrProvider            = errors.New("transfer provider error")
	ErrLedgerWriteConflict = errors.New("ledger write conflict")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrPayoutNotFound      = errors.New("payout not found")
	ErrPromoterNotFound    = errors.New("promoter not found")
)

// ProviderError describes a failed transfer attempt.
type ProviderError struct {
	Code    string
	Timeout bool
	Err     error
}

func (e *ProviderError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("transfer provider error (%s): %v", e.Code, e.Err)
	}
	return fmt.Sprintf("transfer provider error: %v", e.Err)
}

func (e *ProviderError) Unwrap() []error {
	return []error{ErrProvider, e.Err}
}

// Reason is the failure reason stored on the payout record.
func (e *ProviderError) Reason() string {
	if e.Timeout {
		return ReasonProviderTimeout
	}
	return ReasonProviderError
}

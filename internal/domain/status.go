package domain

import "fmt"

type PayoutStatus string

const (
	// StatusPending комиссия начислена, перевод ещё не начат
	StatusPending PayoutStatus = "PENDING"
	// StatusProcessing идёт попытка перевода
	StatusProcessing PayoutStatus = "PROCESSING"
	// StatusCompleted перевод выполнен, статус финальный
	StatusCompleted PayoutStatus = "COMPLETED"
	// StatusFailed перевод не удался, возможен повтор
	StatusFailed PayoutStatus = "FAILED"
)

const (
	ReasonNoDestination   = "NO_DESTINATION"
	ReasonProviderError   = "PROVIDER_ERROR"
	ReasonProviderTimeout = "PROVIDER_TIMEOUT"
	ReasonAbandoned       = "ABANDONED"
)

var transitions = map[PayoutStatus][]PayoutStatus{
	StatusPending:    {StatusProcessing},
	StatusProcessing: {StatusCompleted, StatusFailed},
	StatusFailed:     {StatusProcessing},
	StatusCompleted:  nil,
}

func ParseStatus(s string) (PayoutStatus, error) {
	status := PayoutStatus(s)
	if _, ok := transitions[status]; !ok {
		return "", fmt.Errorf("unknown payout status %q", s)
	}
	return status, nil
}

func CanTransition(from, to PayoutStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (s PayoutStatus) Terminal() bool {
	return s == StatusCompleted
}

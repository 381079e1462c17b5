package transfer

import (
	"context"

	"credittransfer/internal/models"
)

// Service orchestrates the credit transfer saga: reserve, move funds, commit
// the reservation, extend validity, notify. Every attempt leaves a persisted
// Transaction row describing exactly how far it got.
type Service interface {
	// Transfer runs the full saga, verifying the caller's PIN against the
	// PIN configured on the source account.
	Transfer(ctx context.Context, sourceMsisdn, destMsisdn string, amount float64, pin string) Result
	// TransferWithoutPin skips PIN verification, for channels that have
	// already authenticated the subscriber. Same state machine, not a
	// different one.
	TransferWithoutPin(ctx context.Context, sourceMsisdn, destMsisdn string, amount float64) Result
	// TransferWithAdjustmentReason substitutes a caller-supplied reason for
	// the computed one, for audit-tagged administrative transfers.
	TransferWithAdjustmentReason(ctx context.Context, sourceMsisdn, destMsisdn string, amount float64, pin, reason string) Result
}

// TransactionStore is the slice of the transaction log the saga writes.
type TransactionStore interface {
	Insert(tx *models.Transaction) (uint, error)
	Update(tx *models.Transaction) error
}

// SourceLocker serializes sagas per source MSISDN. The default no-op locker
// preserves the historical read-then-decide daily-limit race; deployments
// that need race-free caps plug in a real implementation.
type SourceLocker interface {
	// Lock acquires the source's lock and returns the release func.
	Lock(msisdn string) func()
}

// NoopLocker performs no locking.
type NoopLocker struct{}

func (NoopLocker) Lock(string) func() { return func() {} }

// Package sweeper retries transactions stranded in a recoverable failure
// state by a crash or a billing backend outage.
package sweeper

import (
	"context"
	"log"
	"time"

	"credittransfer/internal/billing"
	"credittransfer/internal/events"
	"credittransfer/internal/models"
)

// TransactionStore is the slice of the transaction log the sweeper uses.
type TransactionStore interface {
	ListByStatus(statuses ...models.TransactionStatus) ([]models.Transaction, error)
	Update(tx *models.Transaction) error
}

// Gateway is the slice of the billing gateway the sweeper retries against.
type Gateway interface {
	ChargeReserved(ctx context.Context, msisdn string, reservationID int64) error
	ExtendValidity(ctx context.Context, msisdn string, days int) error
}

// Sweeper re-drives commit and extension retries for recoverable rows. It
// only ever touches rows already resting in a failure state, never rows an
// orchestrator is actively advancing, so it is safe alongside live sagas.
type Sweeper struct {
	txlog      TransactionStore
	gateway    Gateway
	publisher  events.Publisher
	maxRetries int
	interval   time.Duration
}

func New(txlog TransactionStore, gateway Gateway, publisher events.Publisher, maxRetries int, interval time.Duration) *Sweeper {
	if txlog == nil {
		panic("transaction log is required")
	}
	if gateway == nil {
		panic("billing gateway is required")
	}
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &Sweeper{
		txlog:      txlog,
		gateway:    gateway,
		publisher:  publisher,
		maxRetries: maxRetries,
		interval:   interval,
	}
}

// Start runs the sweep on a timer until the context is cancelled.
func (s *Sweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Run(ctx)
		}
	}
}

// Run performs one sweep. Rows are processed independently; one row's
// failure never aborts the rest of the sweep.
func (s *Sweeper) Run(ctx context.Context) {
	txs, err := s.txlog.ListByStatus(models.StatusCommitFailed, models.StatusExtensionFailed)
	if err != nil {
		log.Printf("sweep aborted, failed to list recoverable transactions: %v", err)
		return
	}

	for i := range txs {
		tx := &txs[i]
		switch tx.Status {
		case models.StatusCommitFailed:
			s.retryCommit(ctx, tx)
		case models.StatusExtensionFailed:
			s.retryExtension(ctx, tx)
		}
	}
}

func (s *Sweeper) retryCommit(ctx context.Context, tx *models.Transaction) {
	err := s.gateway.ChargeReserved(ctx, tx.SourceMsisdn, tx.ReservationID)
	if err == nil {
		tx.IsEventCharged = true
		if tx.ExtensionDays > 0 && !tx.IsExpiryExtended {
			if extErr := s.gateway.ExtendValidity(ctx, tx.DestMsisdn, tx.ExtensionDays); extErr != nil {
				s.transition(ctx, tx, models.StatusExtensionFailed)
				return
			}
			tx.IsExpiryExtended = true
		}
		s.transition(ctx, tx, models.StatusSucceeded)
		return
	}

	if billing.IsExpiredReservation(err) {
		// The backend auto-cancelled the reservation while the funds had
		// already moved. Manual reconciliation is required; retrying cannot
		// help.
		s.transition(ctx, tx, models.StatusCommitFailedAutoCancel)
		return
	}

	tx.NumberOfRetries++
	if tx.NumberOfRetries < s.maxRetries && tx.IsEventCharged {
		// A previous attempt charged the event but crashed before recording
		// it; the remaining work is the extension.
		s.transition(ctx, tx, models.StatusExtensionFailed)
		return
	}
	s.transition(ctx, tx, models.StatusCommitFailed)
}

func (s *Sweeper) retryExtension(ctx context.Context, tx *models.Transaction) {
	if err := s.gateway.ExtendValidity(ctx, tx.DestMsisdn, tx.ExtensionDays); err != nil {
		tx.NumberOfRetries++
		if tx.NumberOfRetries >= s.maxRetries {
			s.transition(ctx, tx, models.StatusExtensionFailedRetries)
			return
		}
		s.transition(ctx, tx, models.StatusExtensionFailed)
		return
	}
	tx.IsExpiryExtended = true
	s.transition(ctx, tx, models.StatusSucceeded)
}

func (s *Sweeper) transition(ctx context.Context, tx *models.Transaction, status models.TransactionStatus) {
	tx.Status = status
	if err := s.txlog.Update(tx); err != nil {
		log.Printf("failed to persist transaction %d status %s: %v", tx.ID, status, err)
		return
	}
	s.publisher.TransactionChanged(ctx, tx)
}

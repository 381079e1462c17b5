package validation

import (
	"context"

	"credittransfer/internal/billing"
	apperrors "credittransfer/internal/errors"
	"credittransfer/internal/models"
)

// Service is the transfer validation pipeline. It performs no mutation and no
// billing-side effects, so it is safe to call for check-only use cases.
type Service interface {
	// Validate runs the full pipeline; nil means the transfer is accepted.
	Validate(ctx context.Context, sourceMsisdn, destMsisdn string, amount float64) *apperrors.DomainError
	// Resolve runs the same pipeline but also returns the per-side lookups
	// so the orchestrator does not repeat them.
	Resolve(ctx context.Context, sourceMsisdn, destMsisdn string, amount float64) (*Assessment, *apperrors.DomainError)
}

// Assessment carries the validated request's resolved facts.
type Assessment struct {
	SourceRawType string
	DestRawType   string
	SourceClass   models.SubscriberClass
	DestClass     models.SubscriberClass
	SourceBalance float64
	SourceConfig  *models.TransferConfig
}

// Lookup is the slice of the billing gateway the pipeline reads from.
type Lookup interface {
	GetSubscriptionType(ctx context.Context, msisdn string) (string, error)
	GetBlockStatus(ctx context.Context, msisdn string) (billing.BlockStatus, error)
	GetStatus(ctx context.Context, msisdn string) (billing.SubscriptionStatus, error)
	GetBalance(ctx context.Context, msisdn string) (float64, error)
}

// DailyUsage is the slice of the transaction log the pipeline reads from.
type DailyUsage interface {
	CountSucceededToday(msisdn string) (int, error)
	SumSucceededAmountToday(msisdn string) (float64, error)
}

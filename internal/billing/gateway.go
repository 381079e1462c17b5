// Package billing client for the externally hosted billing service. The
// service exposes independent, non-transactional primitives; callers are
// responsible for compensation when a multi-step operation fails part way.
package billing

import (
	"context"
	"errors"
	"fmt"
)

// BlockStatus is the billing backend's block state for a subscriber.
type BlockStatus string

const (
	NoBlock     BlockStatus = "NO_BLOCK"
	ChargeBlock BlockStatus = "CHARGE_BLOCK"
	AllBlock    BlockStatus = "ALL_BLOCK"
)

// SubscriptionStatus is the billing backend's lifecycle state for a line.
type SubscriptionStatus string

const (
	StatusActive               SubscriptionStatus = "ACTIVE"
	StatusActiveBeforeFirstUse SubscriptionStatus = "ACTIVE_BEFORE_FIRST_USE"
	StatusActiveInUse          SubscriptionStatus = "ACTIVE_IN_USE"
	StatusInactive             SubscriptionStatus = "INACTIVE"
)

// Gateway is the synchronous client contract against the billing backend.
// Every call is bounded by the client's configured timeout; a timeout is
// reported as an unavailable-outcome error, never an indefinite hang.
type Gateway interface {
	GetSubscriptionType(ctx context.Context, msisdn string) (string, error)
	GetBlockStatus(ctx context.Context, msisdn string) (BlockStatus, error)
	GetStatus(ctx context.Context, msisdn string) (SubscriptionStatus, error)
	GetBalance(ctx context.Context, msisdn string) (float64, error)
	GetAccountPin(ctx context.Context, msisdn, serviceName string) (string, error)
	Reserve(ctx context.Context, msisdn string, eventID int) (int64, error)
	ChargeReserved(ctx context.Context, msisdn string, reservationID int64) error
	CancelReservation(ctx context.Context, msisdn string, reservationID int64) error
	TransferMoney(ctx context.Context, src, dst string, amount float64, reason, actor, note string) error
	AdjustByReason(ctx context.Context, msisdn string, signedAmount float64, reason, adjType, note string) error
	ExtendValidity(ctx context.Context, msisdn string, days int) error
	SendNotification(ctx context.Context, from, to, text string, rightToLeft bool) error
	GetLocale(ctx context.Context, msisdn string) (string, error)
}

// Outcome classifies a backend response code.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeSubscriptionNotFound
	OutcomePropertyNotFound
	OutcomeMiscellaneous
	OutcomeInsufficientCredit
	OutcomeExpiredReservation
	OutcomeUnavailable
)

// BackendError is a non-success response from the billing backend.
type BackendError struct {
	Op      string
	Code    int
	Outcome Outcome
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("billing %s failed: backend code %d", e.Op, e.Code)
}

// OutcomeOf classifies any error from a Gateway call. Transport-level errors
// and anything unrecognized count as unavailable.
func OutcomeOf(err error) Outcome {
	if err == nil {
		return OutcomeSuccess
	}
	var be *BackendError
	if errors.As(err, &be) {
		return be.Outcome
	}
	return OutcomeUnavailable
}

// IsExpiredReservation reports whether err is the backend's
// reservation-auto-expired response.
func IsExpiredReservation(err error) bool {
	return OutcomeOf(err) == OutcomeExpiredReservation
}

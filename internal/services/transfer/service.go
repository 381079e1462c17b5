package transfer

import (
	"context"
	"log"
	"strings"

	"credittransfer/internal/billing"
	"credittransfer/internal/config"
	apperrors "credittransfer/internal/errors"
	"credittransfer/internal/events"
	"credittransfer/internal/messages"
	"credittransfer/internal/models"
	"credittransfer/internal/services/validation"

	"github.com/google/uuid"
)

const (
	adjustmentDebit  = "debit"
	adjustmentCredit = "credit"
)

type service struct {
	validator validation.Service
	gateway   billing.Gateway
	txlog     TransactionStore
	publisher events.Publisher
	catalog   *messages.Catalog
	locker    SourceLocker
	cfg       *config.Config
}

// NewService creates the transfer orchestrator. publisher and locker may be
// nil; they default to no-ops.
func NewService(
	validator validation.Service,
	gateway billing.Gateway,
	txlog TransactionStore,
	publisher events.Publisher,
	catalog *messages.Catalog,
	locker SourceLocker,
	cfg *config.Config,
) Service {
	if validator == nil {
		panic("validator is required")
	}
	if gateway == nil {
		panic("billing gateway is required")
	}
	if txlog == nil {
		panic("transaction log is required")
	}
	if catalog == nil {
		panic("message catalog is required")
	}
	if cfg == nil {
		panic("config is required")
	}
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	if locker == nil {
		locker = NoopLocker{}
	}
	return &service{
		validator: validator,
		gateway:   gateway,
		txlog:     txlog,
		publisher: publisher,
		catalog:   catalog,
		locker:    locker,
		cfg:       cfg,
	}
}

func (s *service) Transfer(ctx context.Context, sourceMsisdn, destMsisdn string, amount float64, pin string) Result {
	return s.execute(ctx, sourceMsisdn, destMsisdn, amount, pin, "", true)
}

func (s *service) TransferWithoutPin(ctx context.Context, sourceMsisdn, destMsisdn string, amount float64) Result {
	return s.execute(ctx, sourceMsisdn, destMsisdn, amount, s.cfg.DefaultPIN, "", false)
}

func (s *service) TransferWithAdjustmentReason(ctx context.Context, sourceMsisdn, destMsisdn string, amount float64, pin, reason string) Result {
	return s.execute(ctx, sourceMsisdn, destMsisdn, amount, pin, reason, true)
}

// execute runs the saga. Once the reservation has been made, every exit path
// persists a Transaction status describing how far execution got, so the
// recovery sweeper or an operator can pick the attempt up.
func (s *service) execute(ctx context.Context, sourceMsisdn, destMsisdn string, amount float64, pin, reasonOverride string, verifyPin bool) Result {
	unlock := s.locker.Lock(sourceMsisdn)
	defer unlock()

	assessment, verr := s.validator.Resolve(ctx, sourceMsisdn, destMsisdn, amount)
	if verr != nil {
		return failure(verr, 0)
	}

	// The account's configured PIN lives on the billing side, scoped by the
	// class's customer service name. An account with no PIN accepts any.
	if verifyPin {
		accountPin, err := s.gateway.GetAccountPin(ctx, sourceMsisdn, assessment.SourceConfig.CustomerServiceName)
		if err != nil {
			return failure(backendReason(err), 0)
		}
		if accountPin != "" && accountPin != pin {
			return failure(apperrors.ErrPinMismatch, 0)
		}
	}

	bucket, err := bucketIndex(s.cfg.AmountThresholds, amount)
	if err != nil {
		log.Printf("amount bucket lookup failed: %v", err)
		return failure(apperrors.ErrConfiguration, 0)
	}

	tx := &models.Transaction{
		ReferenceID:    uuid.NewString(),
		SourceMsisdn:   sourceMsisdn,
		DestMsisdn:     destMsisdn,
		Amount:         amount,
		PIN:            pin,
		ExtensionDays:  s.extensionDays(assessment, bucket),
		IsFromCustomer: assessment.SourceClass.IsCustomer(),
		Status:         models.StatusPending,
		CreatedBy:      s.cfg.ServiceActor,
	}
	if _, err := s.txlog.Insert(tx); err != nil {
		log.Printf("failed to persist pending transaction: %v", err)
		return failure(apperrors.ErrServiceUnavailable, 0)
	}

	// Step 2: reserve fees, customers only.
	if tx.IsFromCustomer {
		reservationID, err := s.gateway.Reserve(ctx, sourceMsisdn, assessment.SourceConfig.TransferFeesEventID)
		if err != nil {
			s.finish(ctx, tx, models.StatusReservationFailed)
			return failure(backendReason(err), tx.ID)
		}
		tx.ReservationID = reservationID
		tx.IsEventReserved = true
		s.persist(tx)
	}

	// Step 3: pick the transfer reason.
	reason := reasonOverride
	if reason == "" {
		reason = s.transferReason(assessment, bucket)
	}

	// Step 4: move the funds, compensating the reservation on failure.
	if err := s.moveFunds(ctx, assessment, sourceMsisdn, destMsisdn, amount, reason); err != nil {
		status := models.StatusTransferFailed
		if tx.IsEventReserved {
			// The compensation must reach the backend even when the caller
			// has already given up on the request.
			if cancelErr := s.gateway.CancelReservation(context.WithoutCancel(ctx), sourceMsisdn, tx.ReservationID); cancelErr != nil {
				// Funds state versus reservation state is now ambiguous;
				// this status flags the row for operational follow-up.
				status = models.StatusTransferFailedCancelFailed
			} else {
				tx.IsEventCancelled = true
			}
		}
		s.finish(ctx, tx, status)
		return failure(backendReason(err), tx.ID)
	}
	tx.IsAmountTransferred = true
	s.persist(tx)

	// Step 5: commit the reservation. Funds have already moved, so failure
	// here is not compensated; the sweeper retries the commit. The failure
	// is surfaced to the caller rather than masked as success.
	if tx.IsEventReserved {
		if err := s.gateway.ChargeReserved(ctx, sourceMsisdn, tx.ReservationID); err != nil {
			s.finish(ctx, tx, models.StatusCommitFailed)
			return failure(backendReason(err), tx.ID)
		}
		tx.IsEventCharged = true
		s.persist(tx)
	}

	// Step 6: extend the destination's validity. Funds are committed, so a
	// failure is retried later and is not fatal to the caller.
	if tx.ExtensionDays > 0 {
		if err := s.gateway.ExtendValidity(ctx, destMsisdn, tx.ExtensionDays); err != nil {
			s.finish(ctx, tx, models.StatusExtensionFailed)
			return success(tx.ID)
		}
		tx.IsExpiryExtended = true
	}

	s.finish(ctx, tx, models.StatusSucceeded)
	s.notify(ctx, tx)
	return success(tx.ID)
}

// extensionDays is computed once, up front. Customer-to-customer transfers
// never extend validity; only non-customer to customer transfers do, and
// only when the feature is enabled.
func (s *service) extensionDays(assessment *validation.Assessment, bucket int) int {
	if !s.cfg.ExtendedDaysEnabled {
		return 0
	}
	if assessment.SourceClass.IsCustomer() || !assessment.DestClass.IsCustomer() {
		return 0
	}
	return s.cfg.ExtensionDaysTable[bucket]
}

func (s *service) transferReason(assessment *validation.Assessment, bucket int) string {
	r := s.classifyRoute(assessment)
	switch {
	case r.SameIN:
		if len(s.cfg.SameINReasons) > 0 {
			return s.cfg.SameINReasons[bucket]
		}
		return s.cfg.DefaultTransferReason
	case r.OldToNew:
		return s.cfg.OldToNewReasons[bucket]
	default:
		return s.cfg.NewToOldReasons[bucket]
	}
}

// classifyRoute determines whether both sides live on the same billing
// partition by matching the configured partition markers against each side's
// raw subscription-type string.
func (s *service) classifyRoute(assessment *validation.Assessment) route {
	srcNew := s.onNewPartition(assessment.SourceRawType)
	dstNew := s.onNewPartition(assessment.DestRawType)
	return route{
		SameIN:   srcNew == dstNew,
		OldToNew: !srcNew && dstNew,
	}
}

func (s *service) onNewPartition(rawType string) bool {
	for _, marker := range s.cfg.NewINMarkers {
		if strings.Contains(rawType, marker) {
			return true
		}
	}
	return false
}

// moveFunds performs the funds movement for the route: one atomic
// TransferMoney call on the same partition, paired adjustments across
// partitions. If the credit leg fails after the debit succeeded, a
// best-effort compensating credit is issued back to the source and the
// original failure is still reported.
func (s *service) moveFunds(ctx context.Context, assessment *validation.Assessment, src, dst string, amount float64, reason string) error {
	r := s.classifyRoute(assessment)
	if r.SameIN {
		note := "credit transfer " + src + " to " + dst
		return s.gateway.TransferMoney(ctx, src, dst, amount, reason, s.cfg.ServiceActor, note)
	}

	if err := s.gateway.AdjustByReason(ctx, src, -amount, reason, adjustmentDebit, "credit transfer debit"); err != nil {
		return err
	}
	if err := s.gateway.AdjustByReason(ctx, dst, amount, reason, adjustmentCredit, "credit transfer credit"); err != nil {
		if rbErr := s.gateway.AdjustByReason(context.WithoutCancel(ctx), src, amount, reason, adjustmentCredit, "credit transfer rollback"); rbErr != nil {
			log.Printf("rollback of debit for %s failed after credit failure: %v", src, rbErr)
		}
		return err
	}
	return nil
}

// persist saves intermediate progress; a write failure is logged, not fatal,
// since the backend state has already advanced.
func (s *service) persist(tx *models.Transaction) {
	if err := s.txlog.Update(tx); err != nil {
		log.Printf("failed to persist transaction %d progress: %v", tx.ID, err)
	}
}

// finish records the attempt's resting status and publishes the audit event.
// It must run even when the caller's context has been cancelled mid-saga.
func (s *service) finish(ctx context.Context, tx *models.Transaction, status models.TransactionStatus) {
	tx.Status = status
	if err := s.txlog.Update(tx); err != nil {
		log.Printf("failed to persist transaction %d status %s: %v", tx.ID, status, err)
	}
	s.publisher.TransactionChanged(context.WithoutCancel(ctx), tx)
}

// notify sends both parties a templated text in their locale. Notification
// sits outside the saga's consistency boundary; every failure here is
// swallowed.
func (s *service) notify(ctx context.Context, tx *models.Transaction) {
	ctx = context.WithoutCancel(ctx)

	srcLocale, err := s.gateway.GetLocale(ctx, tx.SourceMsisdn)
	if err != nil {
		srcLocale = messages.LocaleEnglish
	}
	dstLocale, err := s.gateway.GetLocale(ctx, tx.DestMsisdn)
	if err != nil {
		dstLocale = messages.LocaleEnglish
	}

	sent := s.catalog.TransferSent(srcLocale, tx.Amount, tx.DestMsisdn)
	if err := s.gateway.SendNotification(ctx, s.cfg.ServiceActor, tx.SourceMsisdn, sent, s.catalog.IsRightToLeft(srcLocale)); err != nil {
		log.Printf("failed to notify source %s: %v", tx.SourceMsisdn, err)
	}

	received := s.catalog.TransferReceived(dstLocale, tx.Amount, tx.SourceMsisdn)
	if err := s.gateway.SendNotification(ctx, s.cfg.ServiceActor, tx.DestMsisdn, received, s.catalog.IsRightToLeft(dstLocale)); err != nil {
		log.Printf("failed to notify destination %s: %v", tx.DestMsisdn, err)
	}
}

// backendReason maps a billing gateway failure onto the caller-facing
// taxonomy.
func backendReason(err error) *apperrors.DomainError {
	switch billing.OutcomeOf(err) {
	case billing.OutcomeSubscriptionNotFound:
		return apperrors.ErrSubscriptionNotFound
	case billing.OutcomeInsufficientCredit:
		return apperrors.ErrRemainingBalance
	case billing.OutcomeExpiredReservation:
		return apperrors.ErrExpiredReservation
	case billing.OutcomeUnavailable:
		return apperrors.ErrServiceUnavailable
	default:
		return apperrors.ErrMiscellaneous
	}
}

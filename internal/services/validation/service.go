package validation

import (
	"context"

	"credittransfer/internal/billing"
	"credittransfer/internal/config"
	apperrors "credittransfer/internal/errors"
	"credittransfer/internal/models"
	"credittransfer/internal/repositories"
	"credittransfer/internal/services/rules"
)

type service struct {
	engine  rules.Engine
	configs repositories.ConfigStore
	gateway Lookup
	usage   DailyUsage
	cfg     *config.Config
}

// NewService creates the validation pipeline.
func NewService(engine rules.Engine, configs repositories.ConfigStore, gateway Lookup, usage DailyUsage, cfg *config.Config) Service {
	if engine == nil {
		panic("rule engine is required")
	}
	if configs == nil {
		panic("config store is required")
	}
	if gateway == nil {
		panic("billing gateway is required")
	}
	if usage == nil {
		panic("transaction log is required")
	}
	if cfg == nil {
		panic("config is required")
	}
	return &service{engine: engine, configs: configs, gateway: gateway, usage: usage, cfg: cfg}
}

func (s *service) Validate(ctx context.Context, sourceMsisdn, destMsisdn string, amount float64) *apperrors.DomainError {
	_, verr := s.Resolve(ctx, sourceMsisdn, destMsisdn, amount)
	return verr
}

// Resolve runs the ordered checks. The first failure wins; later checks are
// not evaluated once an earlier one has failed.
func (s *service) Resolve(ctx context.Context, sourceMsisdn, destMsisdn string, amount float64) (*Assessment, *apperrors.DomainError) {
	if !s.isValidMsisdn(sourceMsisdn) {
		return nil, apperrors.ErrInvalidSourcePhone
	}
	if !s.isValidMsisdn(destMsisdn) {
		return nil, apperrors.ErrInvalidDestinationPhone
	}
	if sourceMsisdn == destMsisdn {
		return nil, apperrors.ErrSourceDestinationSame
	}

	out := &Assessment{}

	var verr *apperrors.DomainError
	if out.SourceRawType, out.SourceClass, out.SourceConfig, verr = s.resolveSide(ctx, sourceMsisdn, true); verr != nil {
		return nil, verr
	}
	// The destination's config row must exist even though only the source's
	// limits are read.
	if out.DestRawType, out.DestClass, _, verr = s.resolveSide(ctx, destMsisdn, false); verr != nil {
		return nil, verr
	}

	verdict := s.engine.Evaluate(ctx, s.cfg.CountryCode, out.SourceClass, out.DestClass)
	if !verdict.IsAllowed {
		if verdict.ErrorCode == apperrors.CodeSuccess {
			return nil, apperrors.ErrNotAllowedToDestination
		}
		return nil, &apperrors.DomainError{Code: verdict.ErrorCode, Message: verdict.ErrorMessage}
	}

	blockStatus, err := s.gateway.GetBlockStatus(ctx, sourceMsisdn)
	if err != nil || blockStatus != billing.NoBlock {
		return nil, apperrors.ErrMiscellaneous
	}

	destStatus, err := s.gateway.GetStatus(ctx, destMsisdn)
	if err != nil || destStatus == billing.StatusActiveBeforeFirstUse {
		return nil, apperrors.ErrInvalidDestinationPhone
	}

	out.SourceBalance, err = s.gateway.GetBalance(ctx, sourceMsisdn)
	if err != nil {
		return nil, apperrors.ErrServiceUnavailable
	}

	// A divisor of 1 disables the share-of-balance guard, for markets that
	// predate it.
	if p := s.cfg.MaxPercentageDivisor; p != 1 {
		if out.SourceBalance-amount < out.SourceBalance/p {
			return nil, apperrors.ErrRemainingBalanceHalf
		}
	}

	limits := out.SourceConfig
	if limits.MaxTransferAmount != nil && amount > *limits.MaxTransferAmount {
		return nil, apperrors.ErrTransferAmountAboveMax
	}
	if limits.MinTransferAmount != nil && amount < *limits.MinTransferAmount {
		return nil, apperrors.ErrTransferAmountBelowMin
	}

	if limits.DailyTransferCountLimit != nil {
		count, err := s.usage.CountSucceededToday(sourceMsisdn)
		if err != nil {
			return nil, apperrors.ErrServiceUnavailable
		}
		// The Nth transfer of the day is blocked once the limit is reached,
		// not exceeded: N-1 priors pass, N priors fail.
		if count >= *limits.DailyTransferCountLimit {
			return nil, apperrors.ErrExceedsMaxPerDay
		}
	}

	if limits.DailyTransferCapAmount != nil {
		total, err := s.usage.SumSucceededAmountToday(sourceMsisdn)
		if err != nil {
			return nil, apperrors.ErrServiceUnavailable
		}
		if total+amount > *limits.DailyTransferCapAmount {
			return nil, apperrors.ErrExceedsMaxCapPerDay
		}
	}

	if limits.MinPostTransferBalance != nil && out.SourceBalance-amount < *limits.MinPostTransferBalance {
		return nil, apperrors.ErrRemainingBalance
	}

	return out, nil
}

// resolveSide looks up one MSISDN's raw subscription type, maps it to a
// class and loads the class's limits row. Each failure mode maps to its own
// reason: a backend lookup failure is reported against the side, an unmapped
// type string is SubscriptionNotFound, and a missing limits row is the
// side's phone-not-found reason.
func (s *service) resolveSide(ctx context.Context, msisdn string, isSource bool) (string, models.SubscriberClass, *models.TransferConfig, *apperrors.DomainError) {
	sideErr := apperrors.ErrInvalidDestinationPhone
	notFoundErr := apperrors.ErrDestinationPhoneNotFound
	if isSource {
		sideErr = apperrors.ErrInvalidSourcePhone
		notFoundErr = apperrors.ErrSourcePhoneNotFound
	}

	raw, err := s.gateway.GetSubscriptionType(ctx, msisdn)
	if err != nil {
		return "", "", nil, sideErr
	}

	class, err := models.ParseSubscriberClass(raw)
	if err != nil {
		return "", "", nil, apperrors.ErrSubscriptionNotFound
	}

	cfg, err := s.configs.GetConfigForClass(class.String())
	if err != nil {
		return "", "", nil, notFoundErr
	}

	return raw, class, cfg, nil
}

func (s *service) isValidMsisdn(msisdn string) bool {
	if msisdn == "" {
		return false
	}
	lengthOK := false
	for _, l := range s.cfg.AcceptedMsisdnLengths {
		if len(msisdn) == l {
			lengthOK = true
			break
		}
	}
	if !lengthOK {
		return false
	}
	for _, r := range msisdn {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

package errors

// Status codes exposed to callers. These are stable across releases; new
// codes are appended, existing codes are never renumbered.
const (
	CodeSuccess                  = 0
	CodeMiscellaneousError       = -1
	CodeInvalidSourcePhone       = 20
	CodeInvalidDestinationPhone  = 21
	CodeSourceDestinationSame    = 22
	CodePinMismatch              = 23
	CodeTransferAmountAboveMax   = 24
	CodeTransferAmountBelowMin   = 25
	CodeSubscriptionNotFound     = 26
	CodeConfigurationError       = 27
	CodeSourcePhoneNotFound      = 28
	CodeDestinationPhoneNotFound = 29
	CodeNotAllowedToDestination  = 30
	CodeExceedsMaxPerDay         = 31
	CodeRemainingBalance         = 32
	CodeExceedsMaxCapPerDay      = 33
	CodeRemainingBalanceHalf     = 34
	CodeServiceUnavailable       = 35
	CodeExpiredReservationCode   = 36
)

var (
	ErrInvalidSourcePhone = &DomainError{
		Code:    CodeInvalidSourcePhone,
		Message: "invalid source phone number",
	}
	ErrInvalidDestinationPhone = &DomainError{
		Code:    CodeInvalidDestinationPhone,
		Message: "invalid destination phone number",
	}
	ErrSourceDestinationSame = &DomainError{
		Code:    CodeSourceDestinationSame,
		Message: "source and destination numbers are the same",
	}
	ErrPinMismatch = &DomainError{
		Code:    CodePinMismatch,
		Message: "incorrect PIN",
	}
	ErrTransferAmountAboveMax = &DomainError{
		Code:    CodeTransferAmountAboveMax,
		Message: "amount exceeds the maximum transfer amount",
	}
	ErrTransferAmountBelowMin = &DomainError{
		Code:    CodeTransferAmountBelowMin,
		Message: "amount is below the minimum transfer amount",
	}
	ErrMiscellaneous = &DomainError{
		Code:    CodeMiscellaneousError,
		Message: "miscellaneous error",
	}
	ErrSubscriptionNotFound = &DomainError{
		Code:    CodeSubscriptionNotFound,
		Message: "subscription not found",
	}
	ErrConfiguration = &DomainError{
		Code:    CodeConfigurationError,
		Message: "configuration error",
	}
	ErrSourcePhoneNotFound = &DomainError{
		Code:    CodeSourcePhoneNotFound,
		Message: "source phone number not found",
	}
	ErrDestinationPhoneNotFound = &DomainError{
		Code:    CodeDestinationPhoneNotFound,
		Message: "destination phone number not found",
	}
	ErrNotAllowedToDestination = &DomainError{
		Code:    CodeNotAllowedToDestination,
		Message: "transfer to this destination is not allowed",
	}
	ErrExceedsMaxPerDay = &DomainError{
		Code:    CodeExceedsMaxPerDay,
		Message: "daily transfer count limit reached",
	}
	ErrRemainingBalance = &DomainError{
		Code:    CodeRemainingBalance,
		Message: "remaining balance would fall below the allowed minimum",
	}
	ErrExceedsMaxCapPerDay = &DomainError{
		Code:    CodeExceedsMaxCapPerDay,
		Message: "daily transfer amount cap reached",
	}
	ErrRemainingBalanceHalf = &DomainError{
		Code:    CodeRemainingBalanceHalf,
		Message: "amount exceeds the allowed share of the current balance",
	}
	ErrServiceUnavailable = &DomainError{
		Code:    CodeServiceUnavailable,
		Message: "billing service unavailable",
	}
	ErrExpiredReservation = &DomainError{
		Code:    CodeExpiredReservationCode,
		Message: "reservation code expired",
	}
)

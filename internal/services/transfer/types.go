package transfer

import apperrors "credittransfer/internal/errors"

// Result is the caller-facing outcome of one transfer attempt.
type Result struct {
	Code          int    `json:"status_code"`
	Message       string `json:"status_message"`
	TransactionID uint   `json:"transaction_id,omitempty"`
}

func success(txID uint) Result {
	return Result{Code: apperrors.CodeSuccess, Message: "transfer completed successfully", TransactionID: txID}
}

func failure(verr *apperrors.DomainError, txID uint) Result {
	return Result{Code: verr.Code, Message: verr.Message, TransactionID: txID}
}

// route describes which billing partition each side lives on.
type route struct {
	SameIN   bool
	OldToNew bool
}

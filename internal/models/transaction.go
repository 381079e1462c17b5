package models

import "time"

// TransactionStatus is the saga state of a persisted transfer.
type TransactionStatus string

const (
	StatusPending                    TransactionStatus = "PENDING"
	StatusSucceeded                  TransactionStatus = "SUCCEEDED"
	StatusReservationFailed          TransactionStatus = "RESERVATION_FAILED"
	StatusTransferFailed             TransactionStatus = "TRANSFER_FAILED"
	StatusTransferFailedCancelFailed TransactionStatus = "TRANSFER_FAILED_CANCEL_FAILED"
	StatusCommitFailed               TransactionStatus = "COMMIT_FAILED"
	StatusCommitFailedAutoCancel     TransactionStatus = "COMMIT_FAILED_AUTO_CANCEL"
	StatusExtensionFailed            TransactionStatus = "EXTENSION_FAILED"
	StatusExtensionFailedRetries     TransactionStatus = "EXTENSION_FAILED_AFTER_RETRIES"
)

// IsTerminal reports whether the sweeper should leave the row alone.
func (s TransactionStatus) IsTerminal() bool {
	switch s {
	case StatusSucceeded, StatusCommitFailedAutoCancel, StatusExtensionFailedRetries:
		return true
	}
	return false
}

// Transaction is the durable record of one transfer attempt. Rows are created
// once per attempt and never deleted; only Status, the step flags and
// NumberOfRetries mutate after creation.
type Transaction struct {
	ID                  uint    `gorm:"primarykey"`
	ReferenceID         string  `gorm:"uniqueIndex"`
	SourceMsisdn        string  `gorm:"not null;index"`
	DestMsisdn          string  `gorm:"not null;index"`
	Amount              float64 `gorm:"not null"`
	PIN                 string
	ExtensionDays       int
	ReservationID       int64
	IsFromCustomer      bool
	IsEventReserved     bool
	IsAmountTransferred bool
	IsEventCharged      bool
	IsEventCancelled    bool
	IsExpiryExtended    bool
	Status              TransactionStatus `gorm:"not null;index"`
	CreatedBy           string
	NumberOfRetries     int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

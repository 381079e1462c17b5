package repositories

import (
	"credittransfer/internal/models"
)

// TransactionLog is the append/update repository over persisted transfer
// records. Rows are never deleted; they are the audit trail.
type TransactionLog interface {
	Insert(tx *models.Transaction) (uint, error)
	Update(tx *models.Transaction) error
	GetByID(id uint) (*models.Transaction, error)
	ListByStatus(statuses ...models.TransactionStatus) ([]models.Transaction, error)
	// CountSucceededToday counts the source's completed transfers since
	// midnight UTC, used by the daily count limit check.
	CountSucceededToday(msisdn string) (int, error)
	// SumSucceededAmountToday sums the source's completed transfer amounts
	// since midnight UTC, used by the daily cap check.
	SumSucceededAmountToday(msisdn string) (float64, error)
}

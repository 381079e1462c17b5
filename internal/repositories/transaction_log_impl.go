package repositories

import (
	"fmt"
	"time"

	"credittransfer/internal/models"

	"gorm.io/gorm"
)

type transactionLog struct {
	db *gorm.DB
}

func NewTransactionLog(db *gorm.DB) TransactionLog {
	return &transactionLog{db: db}
}

func (r *transactionLog) Insert(tx *models.Transaction) (uint, error) {
	if err := r.db.Create(tx).Error; err != nil {
		return 0, fmt.Errorf("failed to insert transaction: %w", err)
	}
	return tx.ID, nil
}

func (r *transactionLog) Update(tx *models.Transaction) error {
	if err := r.db.Save(tx).Error; err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	return nil
}

func (r *transactionLog) GetByID(id uint) (*models.Transaction, error) {
	var tx models.Transaction
	if err := r.db.First(&tx, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrTxNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &tx, nil
}

func (r *transactionLog) ListByStatus(statuses ...models.TransactionStatus) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := r.db.
		Where("status IN ?", statuses).
		Order("created_at asc").
		Find(&txs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txs, nil
}

func (r *transactionLog) CountSucceededToday(msisdn string) (int, error) {
	var count int64
	start, end := todayUTC()
	err := r.db.Model(&models.Transaction{}).
		Where("source_msisdn = ? AND status = ? AND created_at >= ? AND created_at < ?",
			msisdn, models.StatusSucceeded, start, end).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return int(count), nil
}

func (r *transactionLog) SumSucceededAmountToday(msisdn string) (float64, error) {
	var total float64
	start, end := todayUTC()
	err := r.db.Model(&models.Transaction{}).
		Where("source_msisdn = ? AND status = ? AND created_at >= ? AND created_at < ?",
			msisdn, models.StatusSucceeded, start, end).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum transactions: %w", err)
	}
	return total, nil
}

func todayUTC() (time.Time, time.Time) {
	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.Add(24 * time.Hour)
}

package models

import "time"

// TransferConfig holds the per-subscriber-class transfer limits. All limit
// fields are nullable; a nil limit means unconstrained.
type TransferConfig struct {
	ID                      uint   `gorm:"primarykey"`
	SubscriberClass         string `gorm:"not null;uniqueIndex"`
	MinTransferAmount       *float64
	MaxTransferAmount       *float64
	DailyTransferCountLimit *int
	DailyTransferCapAmount  *float64
	MinPostTransferBalance  *float64
	TransferFeesEventID     int
	CustomerServiceName     string
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

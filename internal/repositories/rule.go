package repositories

import (
	"errors"

	"credittransfer/internal/models"
)

var (
	ErrRuleNotFound   = errors.New("transfer rule not found")
	ErrConfigNotFound = errors.New("transfer config not found")
	ErrTxNotFound     = errors.New("transaction not found")
)

// RuleStore is the read/admin repository over the transfer rule table.
type RuleStore interface {
	// GetActiveRules returns all active rules for a country.
	GetActiveRules(country string) ([]models.TransferRule, error)
	// FindRule returns the governing (lowest priority) active rule for the
	// exact (country, source, dest) triple, dest being either a concrete
	// class or the wildcard. ErrRuleNotFound when no rule matches.
	FindRule(country, sourceClass, destClass string) (*models.TransferRule, error)
	Upsert(rule *models.TransferRule) error
	Deactivate(id uint) error
}

// ConfigStore is the read-only repository over per-class transfer limits.
type ConfigStore interface {
	// GetConfigForClass returns the limits row for a subscriber class, or
	// ErrConfigNotFound when the class has no row.
	GetConfigForClass(class string) (*models.TransferConfig, error)
}

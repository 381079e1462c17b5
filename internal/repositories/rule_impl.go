package repositories

import (
	"fmt"

	"credittransfer/internal/models"

	"gorm.io/gorm"
)

type ruleStore struct {
	db *gorm.DB
}

func NewRuleStore(db *gorm.DB) RuleStore {
	return &ruleStore{db: db}
}

func (r *ruleStore) GetActiveRules(country string) ([]models.TransferRule, error) {
	var rules []models.TransferRule
	err := r.db.
		Where("country = ? AND is_active = ?", country, true).
		Order("priority asc").
		Find(&rules).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}
	return rules, nil
}

func (r *ruleStore) FindRule(country, sourceClass, destClass string) (*models.TransferRule, error) {
	var rule models.TransferRule
	err := r.db.
		Where("country = ? AND source_class = ? AND dest_class = ? AND is_active = ?",
			country, sourceClass, destClass, true).
		Order("priority asc").
		First(&rule).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrRuleNotFound
		}
		return nil, fmt.Errorf("failed to find rule: %w", err)
	}
	return &rule, nil
}

func (r *ruleStore) Upsert(rule *models.TransferRule) error {
	if err := r.db.Save(rule).Error; err != nil {
		return fmt.Errorf("failed to save rule: %w", err)
	}
	return nil
}

func (r *ruleStore) Deactivate(id uint) error {
	result := r.db.Model(&models.TransferRule{}).
		Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		return fmt.Errorf("failed to deactivate rule: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRuleNotFound
	}
	return nil
}

type configStore struct {
	db *gorm.DB
}

func NewConfigStore(db *gorm.DB) ConfigStore {
	return &configStore{db: db}
}

func (r *configStore) GetConfigForClass(class string) (*models.TransferConfig, error) {
	var cfg models.TransferConfig
	err := r.db.Where("subscriber_class = ?", class).First(&cfg).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to load transfer config: %w", err)
	}
	return &cfg, nil
}

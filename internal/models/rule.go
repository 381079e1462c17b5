package models

import "time"

// WildcardDestination matches any destination class for a rule's
// country/source pair.
const WildcardDestination = "*"

// TransferRule is one row of the administratively managed permission table.
// Among active rules matching a (country, source) pair the lowest-priority
// match governs; a wildcard destination matches any destination class.
type TransferRule struct {
	ID           uint   `gorm:"primarykey"`
	Country      string `gorm:"not null;index:idx_rule_lookup"`
	SourceClass  string `gorm:"not null;index:idx_rule_lookup"`
	DestClass    string `gorm:"not null;index:idx_rule_lookup"`
	Priority     int    `gorm:"not null;default:100"`
	Allowed      bool   `gorm:"not null"`
	ErrorCode    int
	ErrorMessage string
	IsActive     bool `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// EvaluationResult is the cached projection of a rule evaluation. It is never
// persisted as source of truth.
type EvaluationResult struct {
	IsAllowed    bool   `json:"is_allowed"`
	ErrorCode    int    `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

package rules

import (
	"context"
	"time"

	"credittransfer/internal/models"
)

// Engine evaluates whether a transfer between two subscriber classes, in a
// given country, is permitted.
type Engine interface {
	Evaluate(ctx context.Context, country string, source, dest models.SubscriberClass) models.EvaluationResult
}

// RuleFinder is the slice of the rule store the engine needs.
type RuleFinder interface {
	FindRule(country, sourceClass, destClass string) (*models.TransferRule, error)
}

// Cache is the evaluation cache contract. Both methods may fail without
// affecting evaluation; failures degrade to a miss or a dropped write.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

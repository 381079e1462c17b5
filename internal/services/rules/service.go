package rules

import (
	"context"
	"fmt"
	"log"

	apperrors "credittransfer/internal/errors"
	"credittransfer/internal/models"
	"credittransfer/internal/repositories"
)

type service struct {
	rules RuleFinder
	cache Cache
}

// NewEngine creates a new rule evaluation engine.
func NewEngine(rules RuleFinder, cache Cache) Engine {
	if rules == nil {
		panic("rule finder is required")
	}
	if cache == nil {
		panic("cache is required")
	}
	return &service{rules: rules, cache: cache}
}

// Evaluate resolves the governing rule for a (country, source, dest) triple.
// A wildcard rule always precedes a specific rule regardless of the specific
// rule's priority number, so a wildcard deny for a source class cannot be
// overridden by a specific allow. On any repository error the engine fails
// closed and denies.
func (s *service) Evaluate(ctx context.Context, country string, source, dest models.SubscriberClass) models.EvaluationResult {
	key := evaluationKey(country, source, dest)

	var cached models.EvaluationResult
	if found, err := s.cache.Get(ctx, key, &cached); err == nil && found {
		return cached
	} else if err != nil {
		log.Printf("rule cache read failed for %s: %v", key, err)
	}

	rule, err := s.rules.FindRule(country, source.String(), models.WildcardDestination)
	if err == repositories.ErrRuleNotFound {
		rule, err = s.rules.FindRule(country, source.String(), dest.String())
	}

	var result models.EvaluationResult
	switch {
	case err == repositories.ErrRuleNotFound:
		result = models.EvaluationResult{
			IsAllowed:    true,
			ErrorCode:    apperrors.CodeSuccess,
			ErrorMessage: DefaultAllowMessage,
		}
	case err != nil:
		log.Printf("rule evaluation failed for %s: %v", key, err)
		return models.EvaluationResult{
			IsAllowed:    false,
			ErrorCode:    apperrors.CodeMiscellaneousError,
			ErrorMessage: "rule evaluation error",
		}
	default:
		result = models.EvaluationResult{
			IsAllowed:    rule.Allowed,
			ErrorCode:    rule.ErrorCode,
			ErrorMessage: rule.ErrorMessage,
		}
	}

	if err := s.cache.SetWithTTL(ctx, key, result, EvaluationTTL); err != nil {
		log.Printf("failed to cache rule evaluation for %s: %v", key, err)
	}
	return result
}

func evaluationKey(country string, source, dest models.SubscriberClass) string {
	return fmt.Sprintf("%s:%s:%s:%s", evaluationKeyPrefix, country, source, dest)
}

// EvaluationKeyPattern returns the cache key glob covering every cached
// evaluation for a country. An empty country covers all countries.
func EvaluationKeyPattern(country string) string {
	if country == "" {
		return evaluationKeyPrefix + ":*"
	}
	return fmt.Sprintf("%s:%s:*", evaluationKeyPrefix, country)
}

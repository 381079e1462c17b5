package rules

import "time"

// Rules change rarely, so cached evaluations live for a long time. Rule
// administration invalidates the affected keys; the TTL only bounds
// verdicts the invalidation missed.
const EvaluationTTL = 30 * 24 * time.Hour

const evaluationKeyPrefix = "eval"

// DefaultAllowMessage is returned when no rule matches a combination,
// preserving behavior for countries with no configured rules.
const DefaultAllowMessage = "no specific rule found"

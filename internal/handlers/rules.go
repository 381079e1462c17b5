package handlers

import (
	"context"
	"errors"
	"log"

	"credittransfer/internal/models"
	"credittransfer/internal/repositories"
	"credittransfer/internal/services/rules"
	"credittransfer/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// EvaluationCache is the slice of the cache the rule endpoints invalidate.
type EvaluationCache interface {
	DeletePattern(ctx context.Context, pattern string) error
}

// RuleHandler exposes the admin endpoints for the transfer permission table.
type RuleHandler struct {
	rules repositories.RuleStore
	cache EvaluationCache
}

func NewRuleHandler(ruleStore repositories.RuleStore, cache EvaluationCache) *RuleHandler {
	return &RuleHandler{rules: ruleStore, cache: cache}
}

// ListRules handles GET /admin/rules requests.
func (h *RuleHandler) ListRules(c *fiber.Ctx) error {
	country := c.Query("country")
	if country == "" {
		return response.BadRequest(c, "country is required")
	}
	active, err := h.rules.GetActiveRules(country)
	if err != nil {
		return response.ServerError(c, "failed to list rules")
	}
	return response.Success(c, "active rules", active)
}

// UpsertRule handles POST /admin/rules requests and evicts the country's
// cached evaluations so the change takes effect immediately.
func (h *RuleHandler) UpsertRule(c *fiber.Ctx) error {
	var rule models.TransferRule
	if err := c.BodyParser(&rule); err != nil {
		return response.BadRequest(c, "invalid request")
	}
	if rule.Country == "" || rule.SourceClass == "" || rule.DestClass == "" {
		return response.BadRequest(c, "country, source_class and dest_class are required")
	}
	if _, err := models.ParseSubscriberClass(rule.SourceClass); err != nil {
		return response.BadRequest(c, "unknown source class")
	}
	if rule.DestClass != models.WildcardDestination {
		if _, err := models.ParseSubscriberClass(rule.DestClass); err != nil {
			return response.BadRequest(c, "unknown destination class")
		}
	}
	if err := h.rules.Upsert(&rule); err != nil {
		return response.ServerError(c, "failed to save rule")
	}
	h.invalidate(c.Context(), rule.Country)
	return response.Success(c, "rule saved", rule)
}

// DeactivateRule handles DELETE /admin/rules/:id requests. Rules are
// deactivated, never deleted, so the audit trail survives. The row's country
// is not known from the id alone, so every cached evaluation is evicted.
func (h *RuleHandler) DeactivateRule(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "invalid rule id")
	}
	if err := h.rules.Deactivate(uint(id)); err != nil {
		if errors.Is(err, repositories.ErrRuleNotFound) {
			return response.Error(c, fiber.StatusNotFound, "rule not found")
		}
		return response.ServerError(c, "failed to deactivate rule")
	}
	h.invalidate(c.Context(), "")
	return response.Success(c, "rule deactivated", fiber.Map{"id": id})
}

// invalidate evicts cached evaluations best-effort; a failed eviction leaves
// stale verdicts bounded by the evaluation TTL.
func (h *RuleHandler) invalidate(ctx context.Context, country string) {
	if err := h.cache.DeletePattern(ctx, rules.EvaluationKeyPattern(country)); err != nil {
		log.Printf("failed to invalidate cached evaluations: %v", err)
	}
}

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"credittransfer/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRuleStore struct {
	mock.Mock
}

func (m *MockRuleStore) GetActiveRules(country string) ([]models.TransferRule, error) {
	args := m.Called(country)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TransferRule), args.Error(1)
}

func (m *MockRuleStore) FindRule(country, sourceClass, destClass string) (*models.TransferRule, error) {
	args := m.Called(country, sourceClass, destClass)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TransferRule), args.Error(1)
}

func (m *MockRuleStore) Upsert(rule *models.TransferRule) error {
	args := m.Called(rule)
	return args.Error(0)
}

func (m *MockRuleStore) Deactivate(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

type MockEvaluationCache struct {
	mock.Mock
}

func (m *MockEvaluationCache) DeletePattern(ctx context.Context, pattern string) error {
	args := m.Called(ctx, pattern)
	return args.Error(0)
}

func newRuleApp(store *MockRuleStore, cache *MockEvaluationCache) *fiber.App {
	h := NewRuleHandler(store, cache)
	app := fiber.New()
	app.Get("/admin/rules", h.ListRules)
	app.Post("/admin/rules", h.UpsertRule)
	app.Delete("/admin/rules/:id", h.DeactivateRule)
	return app
}

func postJSON(path, body string) *http.Request {
	req := httptest.NewRequest(fiber.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestUpsertRule_EvictsCountryEvaluations(t *testing.T) {
	store := new(MockRuleStore)
	cache := new(MockEvaluationCache)
	store.On("Upsert", mock.Anything).Return(nil)
	cache.On("DeletePattern", mock.Anything, "eval:OM:*").Return(nil)
	app := newRuleApp(store, cache)

	resp, err := app.Test(postJSON("/admin/rules",
		`{"Country":"OM","SourceClass":"Customer","DestClass":"*","Allowed":false,"ErrorCode":30,"IsActive":true}`))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	cache.AssertCalled(t, "DeletePattern", mock.Anything, "eval:OM:*")
}

func TestUpsertRule_UnknownClassRejectedWithoutEviction(t *testing.T) {
	store := new(MockRuleStore)
	cache := new(MockEvaluationCache)
	app := newRuleApp(store, cache)

	resp, err := app.Test(postJSON("/admin/rules",
		`{"Country":"OM","SourceClass":"Wizard","DestClass":"*"}`))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	store.AssertNotCalled(t, "Upsert", mock.Anything)
	cache.AssertNotCalled(t, "DeletePattern", mock.Anything, mock.Anything)
}

func TestUpsertRule_EvictionFailureIsNotFatal(t *testing.T) {
	store := new(MockRuleStore)
	cache := new(MockEvaluationCache)
	store.On("Upsert", mock.Anything).Return(nil)
	cache.On("DeletePattern", mock.Anything, mock.Anything).Return(assert.AnError)
	app := newRuleApp(store, cache)

	resp, err := app.Test(postJSON("/admin/rules",
		`{"Country":"OM","SourceClass":"Customer","DestClass":"Pos","Allowed":true}`))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestDeactivateRule_EvictsAllEvaluations(t *testing.T) {
	store := new(MockRuleStore)
	cache := new(MockEvaluationCache)
	store.On("Deactivate", uint(7)).Return(nil)
	cache.On("DeletePattern", mock.Anything, "eval:*").Return(nil)
	app := newRuleApp(store, cache)

	req := httptest.NewRequest(fiber.MethodDelete, "/admin/rules/7", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	cache.AssertCalled(t, "DeletePattern", mock.Anything, "eval:*")
}

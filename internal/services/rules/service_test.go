package rules

import (
	"context"
	"errors"
	"testing"
	"time"

	"credittransfer/internal/models"
	"credittransfer/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRuleFinder struct {
	mock.Mock
}

func (m *MockRuleFinder) FindRule(country, sourceClass, destClass string) (*models.TransferRule, error) {
	args := m.Called(country, sourceClass, destClass)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TransferRule), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	args := m.Called(ctx, key, dest)
	if result, ok := args.Get(2).(*models.EvaluationResult); ok && args.Bool(0) {
		*dest.(*models.EvaluationResult) = *result
	}
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func missAlways(cache *MockCache) {
	cache.On("Get", mock.Anything, mock.Anything, mock.Anything).Return(false, nil, nil)
	cache.On("SetWithTTL", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
}

func TestEvaluate_WildcardWinsOverSpecific(t *testing.T) {
	finder := new(MockRuleFinder)
	cache := new(MockCache)
	missAlways(cache)

	// A wildcard deny with a high priority number still beats a specific
	// allow with a lower one.
	finder.On("FindRule", "OM", "Customer", models.WildcardDestination).Return(&models.TransferRule{
		Allowed:      false,
		Priority:     90,
		ErrorCode:    33,
		ErrorMessage: "transfers from customers are disabled",
	}, nil)

	engine := NewEngine(finder, cache)
	result := engine.Evaluate(context.Background(), "OM", models.ClassCustomer, models.ClassPos)

	assert.False(t, result.IsAllowed)
	assert.Equal(t, 33, result.ErrorCode)
	finder.AssertNotCalled(t, "FindRule", "OM", "Customer", "Pos")
}

func TestEvaluate_SpecificRuleWhenNoWildcard(t *testing.T) {
	finder := new(MockRuleFinder)
	cache := new(MockCache)
	missAlways(cache)

	finder.On("FindRule", "OM", "Customer", models.WildcardDestination).
		Return(nil, repositories.ErrRuleNotFound)
	finder.On("FindRule", "OM", "Customer", "Pos").Return(&models.TransferRule{
		Allowed:      false,
		ErrorCode:    33,
		ErrorMessage: "customer to dealer transfers are not allowed",
	}, nil)

	engine := NewEngine(finder, cache)
	result := engine.Evaluate(context.Background(), "OM", models.ClassCustomer, models.ClassPos)

	assert.False(t, result.IsAllowed)
	assert.Equal(t, 33, result.ErrorCode)
}

func TestEvaluate_DefaultAllowWhenNoRuleMatches(t *testing.T) {
	finder := new(MockRuleFinder)
	cache := new(MockCache)
	missAlways(cache)

	finder.On("FindRule", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, repositories.ErrRuleNotFound)

	engine := NewEngine(finder, cache)
	result := engine.Evaluate(context.Background(), "SA", models.ClassDistributor, models.ClassCustomer)

	assert.True(t, result.IsAllowed)
	assert.Equal(t, 0, result.ErrorCode)
	assert.Equal(t, DefaultAllowMessage, result.ErrorMessage)
}

func TestEvaluate_RepositoryErrorFailsClosed(t *testing.T) {
	finder := new(MockRuleFinder)
	cache := new(MockCache)
	cache.On("Get", mock.Anything, mock.Anything, mock.Anything).Return(false, nil, nil)

	finder.On("FindRule", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused"))

	engine := NewEngine(finder, cache)
	result := engine.Evaluate(context.Background(), "OM", models.ClassCustomer, models.ClassPos)

	assert.False(t, result.IsAllowed)
	assert.Equal(t, -1, result.ErrorCode)
	cache.AssertNotCalled(t, "SetWithTTL", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEvaluate_CacheHitSkipsRepository(t *testing.T) {
	finder := new(MockRuleFinder)
	cache := new(MockCache)

	cached := &models.EvaluationResult{IsAllowed: true, ErrorCode: 0, ErrorMessage: DefaultAllowMessage}
	cache.On("Get", mock.Anything, "eval:OM:Customer:Customer", mock.Anything).Return(true, nil, cached)

	engine := NewEngine(finder, cache)
	result := engine.Evaluate(context.Background(), "OM", models.ClassCustomer, models.ClassCustomer)

	assert.True(t, result.IsAllowed)
	finder.AssertNotCalled(t, "FindRule", mock.Anything, mock.Anything, mock.Anything)
}

func TestEvaluate_CacheFailureDegradesToMiss(t *testing.T) {
	finder := new(MockRuleFinder)
	cache := new(MockCache)

	cache.On("Get", mock.Anything, mock.Anything, mock.Anything).
		Return(false, errors.New("redis down"), nil)
	cache.On("SetWithTTL", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("redis down"))
	finder.On("FindRule", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, repositories.ErrRuleNotFound)

	engine := NewEngine(finder, cache)
	result := engine.Evaluate(context.Background(), "OM", models.ClassCustomer, models.ClassCustomer)

	assert.True(t, result.IsAllowed)
}

func TestEvaluate_IdempotentAcrossCalls(t *testing.T) {
	finder := new(MockRuleFinder)
	cache := new(MockCache)
	missAlways(cache)

	finder.On("FindRule", "OM", "Pos", models.WildcardDestination).
		Return(nil, repositories.ErrRuleNotFound)
	finder.On("FindRule", "OM", "Pos", "Customer").Return(&models.TransferRule{
		Allowed: true,
	}, nil)

	engine := NewEngine(finder, cache)
	first := engine.Evaluate(context.Background(), "OM", models.ClassPos, models.ClassCustomer)
	second := engine.Evaluate(context.Background(), "OM", models.ClassPos, models.ClassCustomer)

	assert.Equal(t, first, second)
}

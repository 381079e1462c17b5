package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "OM", cfg.CountryCode)
	assert.Equal(t, []int{11, 12}, cfg.AcceptedMsisdnLengths)
	assert.Len(t, cfg.SameINReasons, len(cfg.AmountThresholds))
	assert.Len(t, cfg.ExtensionDaysTable, len(cfg.AmountThresholds))
}

func TestLoad_MalformedBucketTable(t *testing.T) {
	t.Setenv("SAME_IN_REASONS", "only_one_entry")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SAME_IN_REASONS")
}

func TestLoad_ThresholdsMustAscend(t *testing.T) {
	t.Setenv("AMOUNT_THRESHOLDS", "1,10,5,50")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ascending")
}

func TestLoad_ZeroPercentageDivisorRejected(t *testing.T) {
	t.Setenv("MAX_PERCENTAGE_DIVISOR", "0")

	_, err := Load()
	require.Error(t, err)
}

func TestNormalizeDenominations(t *testing.T) {
	t.Setenv("DENOMINATIONS", "10,1,5,10,2,1")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 5, 10}, cfg.Denominations)
}

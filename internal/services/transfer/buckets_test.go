package transfer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketIndex(t *testing.T) {
	thresholds := []float64{1, 5, 10, 50}
	codes := []string{"A", "B", "C", "D"}

	tests := []struct {
		amount float64
		want   string
	}{
		{3, "A"},
		{7, "B"},
		{100, "D"},
		{1, "A"},
		{5, "B"},
		{10, "C"},
		{50, "D"},
		{0.5, "A"},
	}

	for _, tt := range tests {
		idx, err := bucketIndex(thresholds, tt.amount)
		require.NoError(t, err)
		assert.Equal(t, tt.want, codes[idx], "amount %v", tt.amount)
	}
}

func TestBucketIndex_EmptyTableIsError(t *testing.T) {
	_, err := bucketIndex(nil, 10)
	assert.Error(t, err)
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSubscriberClass(t *testing.T) {
	cases := []struct {
		raw  string
		want SubscriberClass
	}{
		{"Customer", ClassCustomer},
		{"Pos", ClassPos},
		{"Distributor", ClassDistributor},
		{"DataAccount", ClassDataAccount},
		{"HalafoniCustomer", ClassHalafoni},
		{"VirginPrepaidCustomer", ClassVirginPrepaid},
		{"VirginPostpaidCustomer", ClassVirginPostpaid},
		// legacy names still emitted for older account ranges
		{"Prepaid", ClassCustomer},
		{"Active", ClassPos},
		{"Inactive", ClassPos},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			got, err := ParseSubscriberClass(tc.raw)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseSubscriberClass_UnmappedIsError(t *testing.T) {
	for _, raw := range []string{"", "Postpaid", "customer", "POS"} {
		_, err := ParseSubscriberClass(raw)
		assert.Error(t, err, "raw %q must not map", raw)
	}
}

func TestIsCustomer(t *testing.T) {
	assert.True(t, ClassCustomer.IsCustomer())
	for _, c := range []SubscriberClass{ClassPos, ClassDistributor, ClassDataAccount, ClassHalafoni, ClassVirginPrepaid, ClassVirginPostpaid} {
		assert.False(t, c.IsCustomer(), "class %s", c)
	}
}

func TestTransactionStatusIsTerminal(t *testing.T) {
	assert.True(t, StatusSucceeded.IsTerminal())
	assert.True(t, StatusCommitFailedAutoCancel.IsTerminal())
	assert.True(t, StatusExtensionFailedRetries.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusCommitFailed.IsTerminal())
	assert.False(t, StatusExtensionFailed.IsTerminal())
}

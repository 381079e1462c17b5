package billing

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second)
}

func respond(code int, value string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "<Response><Code>%d</Code><Value>%s</Value></Response>", code, value)
	}
}

func TestClient_GetBalance(t *testing.T) {
	c := newTestClient(t, respond(0, "102.5"))

	balance, err := c.GetBalance(context.Background(), "96890000000")
	require.NoError(t, err)
	assert.Equal(t, 102.5, balance)
}

func TestClient_Reserve(t *testing.T) {
	c := newTestClient(t, respond(0, "4711"))

	id, err := c.Reserve(context.Background(), "96890000000", 5)
	require.NoError(t, err)
	assert.Equal(t, int64(4711), id)
}

func TestClient_OutcomeMapping(t *testing.T) {
	tests := []struct {
		name    string
		code    int
		outcome Outcome
	}{
		{"subscription not found", 1, OutcomeSubscriptionNotFound},
		{"property not found", 3, OutcomePropertyNotFound},
		{"insufficient credit", 5, OutcomeInsufficientCredit},
		{"expired reservation", 7, OutcomeExpiredReservation},
		{"unknown code is miscellaneous", 99, OutcomeMiscellaneous},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, respond(tt.code, ""))

			_, err := c.GetSubscriptionType(context.Background(), "96890000000")
			require.Error(t, err)
			assert.Equal(t, tt.outcome, OutcomeOf(err))
		})
	}
}

func TestClient_TransportFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(respond(0, ""))
	srv.Close()
	c := NewClient(srv.URL, time.Second)

	_, err := c.GetBalance(context.Background(), "96890000000")
	require.Error(t, err)
	assert.Equal(t, OutcomeUnavailable, OutcomeOf(err))
}

func TestClient_HTTPErrorIsUnavailable(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	err := c.ExtendValidity(context.Background(), "96890000000", 30)
	require.Error(t, err)
	assert.Equal(t, OutcomeUnavailable, OutcomeOf(err))
}

func TestIsExpiredReservation(t *testing.T) {
	err := &BackendError{Op: "ChargeReservedEvent", Code: 7, Outcome: OutcomeExpiredReservation}
	assert.True(t, IsExpiredReservation(fmt.Errorf("charge: %w", err)))
	assert.False(t, IsExpiredReservation(nil))
}

package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/shipapi/internal/auth"
	. "github.com/fivetwenty-io/shipapi/internal/client"
	"github.com/fivetwenty-io/shipapi/internal/constants"
	"github.com/fivetwenty-io/shipapi/pkg/shipapi"
)

var errVaultSealed = errors.New("vault sealed")

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires config", func(t *testing.T) {
		t.Parallel()

		_, err := New(nil)
		require.ErrorIs(t, err, shipapi.ErrConfigRequired)
	})

	t.Run("requires API key", func(t *testing.T) {
		t.Parallel()

		_, err := New(&shipapi.Config{APIKey: "  "})
		require.ErrorIs(t, err, shipapi.ErrAPIKeyRequired)
	})

	t.Run("defaults endpoint", func(t *testing.T) {
		t.Parallel()

		client, err := New(&shipapi.Config{APIKey: "EZTK-test"})
		require.NoError(t, err)
		assert.Equal(t, constants.DefaultAPIEndpoint, client.BaseURL())
		assert.NotNil(t, client.Billing())
		assert.NotNil(t, client.ReferralCustomers())
		assert.NotNil(t, client.Users())
		assert.NotNil(t, client.Parcels())
	})

	t.Run("sends bearer key and user agent", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer EZTK-test", r.Header.Get("Authorization"))
			assert.Equal(t, "shipapi-test/1.0", r.Header.Get("User-Agent"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"user_me"}`))
		}))
		defer server.Close()

		client, err := New(&shipapi.Config{
			APIKey:      "EZTK-test",
			APIEndpoint: server.URL,
			UserAgent:   "shipapi-test/1.0",
		})
		require.NoError(t, err)

		user, err := client.Users().RetrieveMe(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "user_me", user.ID)
	})

	t.Run("records metrics through interceptors", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"prcl_1"}`))
		}))
		defer server.Close()

		collector := shipapi.NewMetricsCollector()
		chain := shipapi.NewInterceptorChain()
		chain.AddRequestInterceptor(shipapi.MetricsRequestInterceptor(collector))
		chain.AddResponseInterceptor(shipapi.MetricsResponseInterceptor(collector))

		client, err := New(&shipapi.Config{
			APIKey:       "EZTK-test",
			APIEndpoint:  server.URL,
			Interceptors: chain,
		})
		require.NoError(t, err)

		_, err = client.Parcels().Retrieve(context.Background(), "prcl_1")
		require.NoError(t, err)

		metrics, ok := collector.GetMetrics("GET /parcels/prcl_1")
		require.True(t, ok)
		assert.Equal(t, int64(1), metrics.TotalRequests)
	})
}

func TestNewWithKeyProvider(t *testing.T) {
	t.Parallel()

	var calls int

	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		calls++
	}))
	defer server.Close()

	keys := auth.KeyFunc(func(context.Context) (string, error) {
		return "", errVaultSealed
	})

	client, err := NewWithKeyProvider(&shipapi.Config{APIEndpoint: server.URL}, keys)
	require.NoError(t, err)

	_, err = client.Users().RetrieveMe(context.Background())
	require.ErrorIs(t, err, errVaultSealed)
	assert.Zero(t, calls)
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestNew_ProcessorTransport(t *testing.T) {
	t.Parallel()

	const timeout = 100 * time.Millisecond

	var (
		tokenCalls  int32
		attachCalls int32
	)

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/credit_cards" {
			atomic.AddInt32(&attachCalls, 1)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"public_key":"pk_test_123"}`))
	}))
	defer api.Close()

	proc := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&tokenCalls, 1) == 1 {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}

			return
		}

		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer proc.Close()

	client, err := New(&shipapi.Config{
		APIKey:       "EZTK-test",
		APIEndpoint:  api.URL,
		TokenizerURL: proc.URL,
		Timeout:      timeout,
	})
	require.NoError(t, err)

	card := &shipapi.CreditCardDetails{Number: "4242424242424242", ExpirationMonth: 5, ExpirationYear: 2030, CVC: "123"}

	t.Run("hung processor times out without retry", func(t *testing.T) {
		start := time.Now()

		_, err := client.ReferralCustomers().AddCreditCard(context.Background(), "EZTK-referral", card, shipapi.PriorityPrimary)
		elapsed := time.Since(start)

		require.ErrorIs(t, err, shipapi.ErrTokenizationFailed)
		assert.GreaterOrEqual(t, elapsed, timeout)
		assert.Less(t, elapsed, time.Second)
		assert.Equal(t, int32(1), atomic.LoadInt32(&tokenCalls))
	})

	t.Run("rate limited processor is not retried", func(t *testing.T) {
		_, err := client.ReferralCustomers().AddCreditCard(context.Background(), "EZTK-referral", card, shipapi.PriorityPrimary)

		require.ErrorIs(t, err, shipapi.ErrTokenizationFailed)
		assert.Equal(t, int32(2), atomic.LoadInt32(&tokenCalls))
	})

	assert.Zero(t, atomic.LoadInt32(&attachCalls))
}

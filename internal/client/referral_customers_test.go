package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/shipapi/pkg/shipapi"
)

const (
	testCardNumber  = "4242424242424242"
	testCVC         = "123"
	testReferralKey = "EZTK-referral"
	testPublicKey   = "pk_test_123"
)

func testCard() *shipapi.CreditCardDetails {
	return &shipapi.CreditCardDetails{
		Number:          testCardNumber,
		ExpirationMonth: 5,
		ExpirationYear:  2030,
		CVC:             testCVC,
	}
}

// cardServers starts the shipping API and the card processor. attached
// counts calls to the card attach endpoint.
func cardServers(t *testing.T, processor http.HandlerFunc, attached *int32) (*httptest.Server, *httptest.Server) {
	t.Helper()

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/partners/stripe_public_key":
			assert.Equal(t, http.MethodGet, r.Method)
			writeJSON(w, http.StatusOK, map[string]string{"public_key": testPublicKey})
		case "/credit_cards":
			atomic.AddInt32(attached, 1)
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "Bearer "+testReferralKey, r.Header.Get("Authorization"))

			var body attachCardRequest

			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			writeJSON(w, http.StatusCreated, map[string]interface{}{
				"id":     "card_" + body.CreditCard.StripeObjectID,
				"object": "CreditCard",
				"last4":  "4242",
				"brand":  string(body.CreditCard.Priority),
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	t.Cleanup(api.Close)

	proc := httptest.NewServer(processor)
	t.Cleanup(proc.Close)

	return api, proc
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestReferralCustomersClient_AddCreditCard(t *testing.T) {
	t.Parallel()

	var attached int32

	api, proc := cardServers(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/tokens", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, testPublicKey, user)
		assert.Empty(t, pass)

		assert.NoError(t, r.ParseForm())
		assert.Equal(t, testCardNumber, r.PostForm.Get("card[number]"))
		assert.Equal(t, "5", r.PostForm.Get("card[exp_month]"))
		assert.Equal(t, "2030", r.PostForm.Get("card[exp_year]"))
		assert.Equal(t, testCVC, r.PostForm.Get("card[cvc]"))

		writeJSON(w, http.StatusOK, map[string]interface{}{"id": "tok_abc", "object": "token"})
	}, &attached)

	client := NewTestClientWithProcessor(api.URL, proc.URL, nil)

	card, err := client.ReferralCustomers().AddCreditCard(context.Background(), testReferralKey, testCard(), shipapi.PrioritySecondary)
	require.NoError(t, err)
	assert.Equal(t, "card_tok_abc", card.ID)
	assert.Equal(t, "secondary", card.Brand)
	assert.Equal(t, int32(1), atomic.LoadInt32(&attached))
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestReferralCustomersClient_AddCreditCard_TokenizationFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		processor http.HandlerFunc
	}{
		{
			name: "card declined",
			processor: func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, http.StatusPaymentRequired, map[string]interface{}{
					"error": map[string]interface{}{
						"type":    "card_error",
						"code":    "card_declined",
						"message": "Your card " + testCardNumber + " was declined.",
					},
				})
			},
		},
		{
			name: "server error",
			processor: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
		},
		{
			name: "malformed body",
			processor: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte("<html>" + testCVC + "</html>"))
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var attached int32

			logger := &recordingLogger{}
			api, proc := cardServers(t, tt.processor, &attached)
			client := NewTestClientWithProcessor(api.URL, proc.URL, logger)

			card, err := client.ReferralCustomers().AddCreditCard(context.Background(), testReferralKey, testCard(), shipapi.PriorityPrimary)
			require.Error(t, err)
			assert.Nil(t, card)
			assert.Equal(t, shipapi.ErrTokenizationFailed, err) //nolint:errorlint // the exact sentinel is returned
			assert.Equal(t, "Could not send card details to Stripe, please try again later", err.Error())
			assert.Equal(t, int32(0), atomic.LoadInt32(&attached))

			for _, entry := range logger.Entries() {
				assert.NotContains(t, entry, testCardNumber)
				assert.NotContains(t, entry, "declined.")
			}
		})
	}
}

func TestReferralCustomersClient_AddCreditCard_ProcessorUnreachable(t *testing.T) {
	t.Parallel()

	var attached int32

	api, proc := cardServers(t, func(http.ResponseWriter, *http.Request) {}, &attached)
	proc.Close()

	client := NewTestClientWithProcessor(api.URL, proc.URL, nil)

	_, err := client.ReferralCustomers().AddCreditCard(context.Background(), testReferralKey, testCard(), shipapi.PriorityPrimary)
	require.ErrorIs(t, err, shipapi.ErrTokenizationFailed)
	assert.Equal(t, int32(0), atomic.LoadInt32(&attached))
}

func TestReferralCustomersClient_AddCreditCard_MissingTokenID(t *testing.T) {
	t.Parallel()

	var attached int32

	api, proc := cardServers(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{"object": "token"})
	}, &attached)

	client := NewTestClientWithProcessor(api.URL, proc.URL, nil)

	card, err := client.ReferralCustomers().AddCreditCard(context.Background(), testReferralKey, testCard(), shipapi.PriorityPrimary)
	require.NoError(t, err)
	assert.Equal(t, "card_", card.ID)
	assert.Equal(t, int32(1), atomic.LoadInt32(&attached))
}

func TestReferralCustomersClient_AddCreditCard_AttachErrorPropagates(t *testing.T) {
	t.Parallel()

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/partners/stripe_public_key" {
			writeJSON(w, http.StatusOK, map[string]string{"public_key": testPublicKey})

			return
		}

		writeJSON(w, http.StatusUnprocessableEntity, errorBody("CREDIT_CARD.INVALID", "Invalid token"))
	}))
	defer api.Close()

	proc := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{"id": "tok_abc"})
	}))
	defer proc.Close()

	client := NewTestClientWithProcessor(api.URL, proc.URL, nil)

	_, err := client.ReferralCustomers().AddCreditCard(context.Background(), testReferralKey, testCard(), shipapi.PriorityPrimary)
	require.Error(t, err)
	assert.NotErrorIs(t, err, shipapi.ErrTokenizationFailed)

	var apiErr *shipapi.APIError

	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "CREDIT_CARD.INVALID", apiErr.Code)
}

func TestReferralCustomersClient_AddCreditCard_PublicKeyErrorPropagates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		handler http.HandlerFunc
		check   func(t *testing.T, err error)
	}{
		{
			name: "api error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, http.StatusForbidden, errorBody("PARTNER.FORBIDDEN", "Not a partner account"))
			},
			check: func(t *testing.T, err error) {
				t.Helper()

				var apiErr *shipapi.APIError

				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, "PARTNER.FORBIDDEN", apiErr.Code)
				assert.True(t, shipapi.IsForbidden(err))
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte("{not json"))
			},
			check: func(t *testing.T, err error) {
				t.Helper()

				assert.Contains(t, err.Error(), "processor public key")
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var tokenized int32

			api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/partners/stripe_public_key", r.URL.Path)
				tt.handler(w, r)
			}))
			defer api.Close()

			proc := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				atomic.AddInt32(&tokenized, 1)
			}))
			defer proc.Close()

			client := NewTestClientWithProcessor(api.URL, proc.URL, nil)

			card, err := client.ReferralCustomers().AddCreditCard(context.Background(), testReferralKey, testCard(), shipapi.PriorityPrimary)
			require.Error(t, err)
			assert.Nil(t, card)
			assert.NotErrorIs(t, err, shipapi.ErrTokenizationFailed)
			assert.Equal(t, int32(0), atomic.LoadInt32(&tokenized))
			tt.check(t, err)
		})
	}
}

func TestReferralCustomersClient_AddCreditCard_NilCard(t *testing.T) {
	t.Parallel()

	client := NewTestClient("http://127.0.0.1:0")

	_, err := client.ReferralCustomers().AddCreditCard(context.Background(), testReferralKey, nil, shipapi.PriorityPrimary)
	require.ErrorIs(t, err, shipapi.ErrCardDetailsRequired)
}

func TestReferralCustomersClient_Create(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/referral_customers", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var body map[string]map[string]string

		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Test Referral", body["user"]["name"])
		assert.Equal(t, "test@example.com", body["user"]["email"])
		assert.Equal(t, "8888888888", body["user"]["phone_number"])

		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"id":     "user_123",
			"object": "User",
			"name":   "Test Referral",
			"email":  "test@example.com",
		})
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	user, err := client.ReferralCustomers().Create(context.Background(), &shipapi.UserCreateRequest{
		Name:        "Test Referral",
		Email:       "test@example.com",
		PhoneNumber: "8888888888",
	})
	require.NoError(t, err)
	assert.Equal(t, "user_123", user.ID)
	assert.Equal(t, "Test Referral", user.Name)
}

func TestReferralCustomersClient_UpdateEmail(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/referral_customers/user_123", r.URL.Path)
		assert.Equal(t, http.MethodPut, r.Method)

		var body map[string]map[string]string

		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "new@example.com", body["user"]["email"])

		writeJSON(w, http.StatusOK, map[string]interface{}{"id": "user_123"})
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	require.NoError(t, client.ReferralCustomers().UpdateEmail(context.Background(), "user_123", "new@example.com"))
	require.ErrorIs(t, client.ReferralCustomers().UpdateEmail(context.Background(), "", "new@example.com"), shipapi.ErrIDRequired)
}

func TestReferralCustomersClient_ListAndGetNextPage(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/referral_customers", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page_size"))

		if r.URL.Query().Get("before_id") == "" {
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"referral_customers": []map[string]string{{"id": "user_3"}, {"id": "user_2"}},
				"has_more":           true,
			})

			return
		}

		assert.Equal(t, "user_2", r.URL.Query().Get("before_id"))
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"referral_customers": []map[string]string{{"id": "user_1"}},
			"has_more":           false,
		})
	}))
	defer server.Close()

	referrals := NewTestClient(server.URL).ReferralCustomers()

	first, err := referrals.List(context.Background(), shipapi.NewListParams().WithPageSize(2))
	require.NoError(t, err)
	require.Len(t, first.ReferralCustomers, 2)
	assert.True(t, first.HasMore)

	second, err := referrals.GetNextPage(context.Background(), first, 2)
	require.NoError(t, err)
	require.Len(t, second.ReferralCustomers, 1)
	assert.Equal(t, "user_1", second.ReferralCustomers[0].ID)

	_, err = referrals.GetNextPage(context.Background(), second, 2)
	require.ErrorIs(t, err, shipapi.ErrNoMorePages)
	assert.True(t, strings.HasPrefix(err.Error(), "There are no more pages"))
}

func TestReferralCustomersClient_CollectAll(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("before_id") {
		case "":
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"referral_customers": []map[string]string{{"id": "user_3"}, {"id": "user_2"}},
				"has_more":           true,
			})
		case "user_2":
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"referral_customers": []map[string]string{{"id": "user_1"}},
				"has_more":           false,
			})
		default:
			t.Errorf("unexpected cursor %s", r.URL.RawQuery)
		}
	}))
	defer server.Close()

	referrals := NewTestClient(server.URL).ReferralCustomers()

	fetch := func(ctx context.Context, params *shipapi.ListParams) (shipapi.Page[shipapi.User], error) {
		return referrals.List(ctx, params)
	}

	users, err := shipapi.CollectAll(context.Background(), fetch, func(u shipapi.User) string { return u.ID }, 2)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "user_1", users[2].ID)
}

func TestReferralCustomersClient_GetNextPage_EmptyResult(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "user_9", r.URL.Query().Get("before_id"))
		writeJSON(w, http.StatusOK, map[string]interface{}{"referral_customers": []interface{}{}, "has_more": false})
	}))
	defer server.Close()

	_, err := NewTestClient(server.URL).ReferralCustomers().GetNextPage(context.Background(), &shipapi.ReferralCustomerList{
		ReferralCustomers: []shipapi.User{{Resource: shipapi.Resource{ID: "user_9"}}},
		HasMore:           true,
	}, 10)
	require.ErrorIs(t, err, shipapi.ErrNoMorePages)
}

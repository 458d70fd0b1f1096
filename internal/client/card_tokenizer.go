package client

import (
	"context"
	"encoding/json"
	"fmt"
	stdhttp "net/http"

	"github.com/google/go-querystring/query"
	"github.com/stripe/stripe-go/v72"

	"github.com/fivetwenty-io/shipapi/internal/http"
	"github.com/fivetwenty-io/shipapi/pkg/shipapi"
)

const (
	publicKeyPath = "/partners/stripe_public_key"
	tokensPath    = "/v1/tokens"
	creditCards   = "/credit_cards"
)

// cardForm is the form body of a processor token request.
type cardForm struct {
	Number   string `url:"card[number]"`
	ExpMonth int    `url:"card[exp_month]"`
	ExpYear  int    `url:"card[exp_year]"`
	CVC      string `url:"card[cvc]"`
}

type publicKeyResponse struct {
	PublicKey string `json:"public_key"`
}

type attachCardRequest struct {
	CreditCard attachCard `json:"credit_card"`
}

type attachCard struct {
	StripeObjectID string           `json:"stripe_object_id"`
	Priority       shipapi.Priority `json:"priority"`
}

type processorErrorEnvelope struct {
	Error *stripe.Error `json:"error"`
}

// CardTokenizer exchanges raw card details for a processor token and attaches
// the token to an account.
type CardTokenizer struct {
	httpClient *http.Client
	processor  *http.Client
	logger     shipapi.Logger
}

// NewCardTokenizer creates a tokenizer. processor talks to the card processor;
// httpClient talks to the shipping API.
func NewCardTokenizer(httpClient, processor *http.Client, logger shipapi.Logger) *CardTokenizer {
	return &CardTokenizer{
		httpClient: httpClient,
		processor:  processor,
		logger:     logger,
	}
}

// AddCard tokenizes card and attaches it with the referral customer's key.
func (t *CardTokenizer) AddCard(ctx context.Context, referralAPIKey string, card *shipapi.CreditCardDetails, priority shipapi.Priority) (*shipapi.PaymentMethod, error) {
	publicKey, err := t.publicKey(ctx)
	if err != nil {
		return nil, err
	}

	token, err := t.tokenize(ctx, publicKey, card)
	if err != nil {
		return nil, err
	}

	return t.attach(ctx, referralAPIKey, token.ID, priority)
}

func (t *CardTokenizer) publicKey(ctx context.Context) (string, error) {
	resp, err := t.httpClient.Get(ctx, publicKeyPath, nil)
	if err != nil {
		return "", fmt.Errorf("getting processor public key: %w", err)
	}

	key, err := decode[publicKeyResponse](resp, "processor public key")
	if err != nil {
		return "", err
	}

	return key.PublicKey, nil
}

// tokenize never returns an error other than shipapi.ErrTokenizationFailed.
// A response without a token id yields an empty token.
func (t *CardTokenizer) tokenize(ctx context.Context, publicKey string, card *shipapi.CreditCardDetails) (*stripe.Token, error) {
	form, err := query.Values(cardForm{
		Number:   card.Number,
		ExpMonth: card.ExpirationMonth,
		ExpYear:  card.ExpirationYear,
		CVC:      card.CVC,
	})
	if err != nil {
		t.warn("encoding card details failed", nil)

		return nil, shipapi.ErrTokenizationFailed
	}

	resp, err := t.processor.Do(ctx, &http.Request{
		Method:    stdhttp.MethodPost,
		Path:      tokensPath,
		Form:      form,
		BasicAuth: &http.BasicAuth{Username: publicKey},
	})
	if err != nil {
		t.warn("card tokenization failed", processorErrorFields(resp))

		return nil, shipapi.ErrTokenizationFailed
	}

	var token stripe.Token

	err = json.Unmarshal(resp.Body, &token)
	if err != nil {
		t.warn("card tokenization returned an unreadable body", map[string]interface{}{
			"status_code": resp.StatusCode,
		})

		return nil, shipapi.ErrTokenizationFailed
	}

	return &token, nil
}

func (t *CardTokenizer) attach(ctx context.Context, referralAPIKey, tokenID string, priority shipapi.Priority) (*shipapi.PaymentMethod, error) {
	resp, err := t.httpClient.Do(ctx, &http.Request{
		Method: stdhttp.MethodPost,
		Path:   creditCards,
		Body: &attachCardRequest{
			CreditCard: attachCard{
				StripeObjectID: tokenID,
				Priority:       priority,
			},
		},
		APIKey: referralAPIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("attaching credit card: %w", err)
	}

	return decode[shipapi.PaymentMethod](resp, "credit card")
}

func (t *CardTokenizer) warn(msg string, fields map[string]interface{}) {
	if t.logger != nil {
		t.logger.Warn(msg, fields)
	}
}

// processorErrorFields extracts loggable fields from a failed processor
// response. Messages are dropped since they may echo card data.
func processorErrorFields(resp *http.Response) map[string]interface{} {
	fields := map[string]interface{}{}

	if resp == nil {
		return fields
	}

	fields["status_code"] = resp.StatusCode

	var envelope processorErrorEnvelope

	if json.Unmarshal(resp.Body, &envelope) == nil && envelope.Error != nil {
		fields["error_type"] = string(envelope.Error.Type)
		fields["error_code"] = string(envelope.Error.Code)
	}

	return fields
}

package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/shipapi/internal/http"
	"github.com/fivetwenty-io/shipapi/pkg/shipapi"
)

// BillingClient implements shipapi.BillingClient.
type BillingClient struct {
	httpClient *http.Client
}

// NewBillingClient creates a new billing client.
func NewBillingClient(httpClient *http.Client) *BillingClient {
	return &BillingClient{
		httpClient: httpClient,
	}
}

// RetrievePaymentMethods implements shipapi.BillingClient.RetrievePaymentMethods.
func (c *BillingClient) RetrievePaymentMethods(ctx context.Context) (*shipapi.PaymentMethods, error) {
	resp, err := c.httpClient.Get(ctx, "/payment_methods", nil)
	if err != nil {
		return nil, fmt.Errorf("getting payment methods: %w", err)
	}

	methods, err := decode[shipapi.PaymentMethods](resp, "payment methods")
	if err != nil {
		return nil, err
	}

	if methods.ID == "" {
		return nil, shipapi.ErrBillingNotConfigured
	}

	return methods, nil
}

// ResolvePaymentMethod implements shipapi.BillingClient.ResolvePaymentMethod.
// The payment methods are fetched on every call.
func (c *BillingClient) ResolvePaymentMethod(ctx context.Context, priority shipapi.Priority) (*shipapi.ResolvedPaymentTarget, error) {
	if !priority.Valid() {
		return nil, shipapi.ErrInvalidPaymentMethod
	}

	methods, err := c.RetrievePaymentMethods(ctx)
	if err != nil {
		return nil, err
	}

	method := methods.ByPriority(priority)
	if method == nil || method.ID == "" {
		return nil, shipapi.ErrInvalidPaymentMethod
	}

	family := shipapi.PaymentMethodFamilyOf(method.ID)
	if family == shipapi.PaymentMethodFamilyUnknown {
		return nil, shipapi.ErrInvalidPaymentMethod
	}

	return &shipapi.ResolvedPaymentTarget{
		Family:          family,
		PaymentMethodID: method.ID,
	}, nil
}

// FundWallet implements shipapi.BillingClient.FundWallet.
func (c *BillingClient) FundWallet(ctx context.Context, amount string, priority shipapi.Priority) error {
	target, err := c.ResolvePaymentMethod(ctx, priority)
	if err != nil {
		return err
	}

	_, err = c.httpClient.Post(ctx, target.Path()+"/charges", &shipapi.FundWalletRequest{Amount: amount})
	if err != nil {
		return fmt.Errorf("funding wallet: %w", err)
	}

	return nil
}

// DeletePaymentMethod implements shipapi.BillingClient.DeletePaymentMethod.
func (c *BillingClient) DeletePaymentMethod(ctx context.Context, priority shipapi.Priority) error {
	target, err := c.ResolvePaymentMethod(ctx, priority)
	if err != nil {
		return err
	}

	_, err = c.httpClient.Delete(ctx, target.Path())
	if err != nil {
		return fmt.Errorf("deleting payment method: %w", err)
	}

	return nil
}

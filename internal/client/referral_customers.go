package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/shipapi/internal/http"
	"github.com/fivetwenty-io/shipapi/pkg/shipapi"
)

type userEnvelope[T any] struct {
	User T `json:"user"`
}

type emailUpdate struct {
	Email string `json:"email"`
}

// ReferralCustomersClient implements shipapi.ReferralCustomersClient.
type ReferralCustomersClient struct {
	httpClient *http.Client
	tokenizer  *CardTokenizer
}

// NewReferralCustomersClient creates a new referral customers client.
func NewReferralCustomersClient(httpClient *http.Client, tokenizer *CardTokenizer) *ReferralCustomersClient {
	return &ReferralCustomersClient{
		httpClient: httpClient,
		tokenizer:  tokenizer,
	}
}

// Create implements shipapi.ReferralCustomersClient.Create.
func (c *ReferralCustomersClient) Create(ctx context.Context, request *shipapi.UserCreateRequest) (*shipapi.User, error) {
	resp, err := c.httpClient.Post(ctx, "/referral_customers", &userEnvelope[*shipapi.UserCreateRequest]{User: request})
	if err != nil {
		return nil, fmt.Errorf("creating referral customer: %w", err)
	}

	return decode[shipapi.User](resp, "referral customer")
}

// UpdateEmail implements shipapi.ReferralCustomersClient.UpdateEmail.
func (c *ReferralCustomersClient) UpdateEmail(ctx context.Context, id, email string) error {
	if id == "" {
		return shipapi.ErrIDRequired
	}

	path := "/referral_customers/" + id

	_, err := c.httpClient.Put(ctx, path, &userEnvelope[emailUpdate]{User: emailUpdate{Email: email}})
	if err != nil {
		return fmt.Errorf("updating referral customer email: %w", err)
	}

	return nil
}

// List implements shipapi.ReferralCustomersClient.List.
func (c *ReferralCustomersClient) List(ctx context.Context, params *shipapi.ListParams) (*shipapi.ReferralCustomerList, error) {
	values, err := params.ToValues()
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, "/referral_customers", values)
	if err != nil {
		return nil, fmt.Errorf("listing referral customers: %w", err)
	}

	return decode[shipapi.ReferralCustomerList](resp, "referral customers list")
}

// GetNextPage implements shipapi.ReferralCustomersClient.GetNextPage. The
// next page holds the records created before the last one in page.
func (c *ReferralCustomersClient) GetNextPage(ctx context.Context, page *shipapi.ReferralCustomerList, pageSize int) (*shipapi.ReferralCustomerList, error) {
	if page == nil || len(page.ReferralCustomers) == 0 || !page.HasMore {
		return nil, shipapi.ErrNoMorePages
	}

	last := page.ReferralCustomers[len(page.ReferralCustomers)-1]

	next, err := c.List(ctx, shipapi.NewListParams().WithPageSize(pageSize).WithBeforeID(last.ID))
	if err != nil {
		return nil, err
	}

	if len(next.ReferralCustomers) == 0 {
		return nil, shipapi.ErrNoMorePages
	}

	return next, nil
}

// AddCreditCard implements shipapi.ReferralCustomersClient.AddCreditCard.
func (c *ReferralCustomersClient) AddCreditCard(
	ctx context.Context,
	referralAPIKey string,
	card *shipapi.CreditCardDetails,
	priority shipapi.Priority,
) (*shipapi.PaymentMethod, error) {
	if card == nil {
		return nil, shipapi.ErrCardDetailsRequired
	}

	return c.tokenizer.AddCard(ctx, referralAPIKey, card, priority)
}

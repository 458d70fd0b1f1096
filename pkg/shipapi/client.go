package shipapi

import (
	"context"
	"time"
)

// BillingClient manages the payment methods and wallet of the authenticated account.
type BillingClient interface {
	RetrievePaymentMethods(ctx context.Context) (*PaymentMethods, error)
	ResolvePaymentMethod(ctx context.Context, priority Priority) (*ResolvedPaymentTarget, error)
	FundWallet(ctx context.Context, amount string, priority Priority) error
	DeletePaymentMethod(ctx context.Context, priority Priority) error
}

// ReferralCustomersClient manages the referral customers of a partner account.
// All calls except AddCreditCard require the partner's API key.
type ReferralCustomersClient interface {
	Create(ctx context.Context, request *UserCreateRequest) (*User, error)
	UpdateEmail(ctx context.Context, id, email string) error
	List(ctx context.Context, params *ListParams) (*ReferralCustomerList, error)
	GetNextPage(ctx context.Context, page *ReferralCustomerList, pageSize int) (*ReferralCustomerList, error)
	AddCreditCard(ctx context.Context, referralAPIKey string, card *CreditCardDetails, priority Priority) (*PaymentMethod, error)
}

// UsersClient manages the authenticated user and its children.
type UsersClient interface {
	RetrieveMe(ctx context.Context) (*User, error)
	Retrieve(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, id string, request *UserUpdateRequest) (*User, error)
}

// ParcelsClient manages parcels.
type ParcelsClient interface {
	Create(ctx context.Context, request *ParcelCreateRequest) (*Parcel, error)
	Retrieve(ctx context.Context, id string) (*Parcel, error)
}

// Client provides access to all resource-specific clients.
type Client interface {
	Billing() BillingClient
	ReferralCustomers() ReferralCustomersClient
	Users() UsersClient
	Parcels() ParcelsClient
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a shipapi.Client.
//
// # Authentication
//
// Every request to the shipping API carries APIKey as a Bearer token, except
// ReferralCustomers().AddCreditCard, which attaches the card with the referral
// customer's own key passed to that call.
//
// # Timeouts and retries
//
// Timeout is applied to every outbound request, including the call to the
// card processor. Retries cover connection errors, 429 and 5xx responses;
// non-idempotent requests are only retried on 429.
type Config struct {
	// APIKey: partner or user API key. Required.
	APIKey string
	// APIEndpoint: base URL of the shipping API. Defaults to the production endpoint.
	APIEndpoint string
	// TokenizerURL: base URL of the card processor. Defaults to the processor's
	// production endpoint.
	TokenizerURL string

	// Timeout: per-request deadline. Defaults to 60s.
	Timeout time.Duration
	// RetryMax: maximum number of retries for transient failures. If 0, the
	// default is used; a negative value disables retries.
	RetryMax int
	// RetryWaitMin: minimum backoff between retries.
	RetryWaitMin time.Duration
	// RetryWaitMax: maximum backoff between retries.
	RetryWaitMax time.Duration
	// Debug: enables request/response logging when a Logger is provided.
	Debug bool
	// Logger: optional structured logger used by the HTTP layer.
	Logger Logger
	// UserAgent: overrides the default User-Agent header.
	UserAgent string
	// Interceptors: optional hooks run around every request to the shipping API.
	Interceptors *InterceptorChain
}

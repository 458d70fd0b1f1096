package client

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fivetwenty-io/shipapi/internal/auth"
	"github.com/fivetwenty-io/shipapi/internal/constants"
	"github.com/fivetwenty-io/shipapi/internal/http"
	"github.com/fivetwenty-io/shipapi/pkg/shipapi"
)

// Client implements the shipapi.Client interface.
type Client struct {
	httpClient      *http.Client
	processorClient *http.Client
	baseURL         string
	logger          shipapi.Logger

	// Resource clients
	billing           *BillingClient
	referralCustomers *ReferralCustomersClient
	users             *UsersClient
	parcels           *ParcelsClient
}

// New creates a new shipping API client.
func New(config *shipapi.Config) (*Client, error) {
	if config == nil {
		return nil, shipapi.ErrConfigRequired
	}

	if strings.TrimSpace(config.APIKey) == "" {
		return nil, shipapi.ErrAPIKeyRequired
	}

	return NewWithKeyProvider(config, auth.StaticKey(config.APIKey))
}

// NewWithKeyProvider creates a new client that reads its API key from keys.
func NewWithKeyProvider(config *shipapi.Config, keys auth.KeyProvider) (*Client, error) {
	if config == nil {
		return nil, shipapi.ErrConfigRequired
	}

	baseURL := config.APIEndpoint
	if baseURL == "" {
		baseURL = constants.DefaultAPIEndpoint
	}

	tokenizerURL := config.TokenizerURL
	if tokenizerURL == "" {
		tokenizerURL = constants.DefaultTokenizerURL
	}

	httpOpts := createHTTPClientOptions(config)
	if config.Interceptors != nil {
		httpOpts = append(httpOpts, http.WithInterceptors(config.Interceptors))
	}

	client := &Client{
		httpClient:      http.NewClient(baseURL, keys, httpOpts...),
		processorClient: http.NewClient(tokenizerURL, nil, createProcessorClientOptions(config)...),
		baseURL:         baseURL,
		logger:          config.Logger,
	}

	client.initializeResourceClients()

	return client, nil
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *shipapi.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(&loggerAdapter{logger: config.Logger}))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.Timeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.Timeout))
	}

	if config.RetryMax != 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	return httpOpts
}

// createProcessorClientOptions configures the card processor transport. Card
// data is submitted exactly once, so retries are disabled.
func createProcessorClientOptions(config *shipapi.Config) []http.Option {
	timeout := constants.DefaultHTTPTimeout
	if config.Timeout > 0 {
		timeout = config.Timeout
	}

	httpOpts := []http.Option{
		http.WithTimeout(timeout),
		http.WithRetryConfig(0, time.Second, time.Second),
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	return httpOpts
}

// initializeResourceClients initializes all resource-specific clients.
func (c *Client) initializeResourceClients() {
	tokenizer := NewCardTokenizer(c.httpClient, c.processorClient, c.logger)

	c.billing = NewBillingClient(c.httpClient)
	c.referralCustomers = NewReferralCustomersClient(c.httpClient, tokenizer)
	c.users = NewUsersClient(c.httpClient)
	c.parcels = NewParcelsClient(c.httpClient)
}

// Billing implements shipapi.Client.Billing.
func (c *Client) Billing() shipapi.BillingClient {
	return c.billing
}

// ReferralCustomers implements shipapi.Client.ReferralCustomers.
func (c *Client) ReferralCustomers() shipapi.ReferralCustomersClient {
	return c.referralCustomers
}

// Users implements shipapi.Client.Users.
func (c *Client) Users() shipapi.UsersClient {
	return c.users
}

// Parcels implements shipapi.Client.Parcels.
func (c *Client) Parcels() shipapi.ParcelsClient {
	return c.parcels
}

// BaseURL returns the API endpoint the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// decode unmarshals a response body into a new T.
func decode[T any](resp *http.Response, what string) (*T, error) {
	var result T

	err := json.Unmarshal(resp.Body, &result)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", what, err)
	}

	return &result, nil
}

// loggerAdapter adapts shipapi.Logger to http.Logger.
type loggerAdapter struct {
	logger shipapi.Logger
}

func (l *loggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, fields)
}

func (l *loggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, fields)
}

func (l *loggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, fields)
}

func (l *loggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, fields)
}

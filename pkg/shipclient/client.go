package shipclient

import (
	"fmt"
	"strings"

	"github.com/fivetwenty-io/shipapi/internal/auth"
	"github.com/fivetwenty-io/shipapi/internal/client"
	"github.com/fivetwenty-io/shipapi/pkg/shipapi"
)

// DefaultAPIKeyEnv is the environment variable read by NewFromEnv.
const DefaultAPIKeyEnv = "SHIPAPI_API_KEY"

// New creates a new shipping API client. The config is copied, not modified.
func New(config *shipapi.Config) (shipapi.Client, error) {
	if config == nil {
		return nil, shipapi.ErrConfigRequired
	}

	normalized := *config
	normalized.APIEndpoint = normalizeEndpoint(config.APIEndpoint)
	normalized.TokenizerURL = normalizeEndpoint(config.TokenizerURL)

	c, err := client.New(&normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// NewWithAPIKey creates a new client for the default endpoint.
func NewWithAPIKey(apiKey string) (shipapi.Client, error) {
	return New(&shipapi.Config{
		APIKey: apiKey,
	})
}

// NewFromEnv creates a client that reads its API key from the named
// environment variable on every request. An empty name uses DefaultAPIKeyEnv.
func NewFromEnv(config *shipapi.Config, name string) (shipapi.Client, error) {
	if config == nil {
		return nil, shipapi.ErrConfigRequired
	}

	if name == "" {
		name = DefaultAPIKeyEnv
	}

	normalized := *config
	normalized.APIEndpoint = normalizeEndpoint(config.APIEndpoint)
	normalized.TokenizerURL = normalizeEndpoint(config.TokenizerURL)

	c, err := client.NewWithKeyProvider(&normalized, auth.EnvKey(name))
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// normalizeEndpoint trims a trailing slash and adds https:// when no scheme
// is present. An empty endpoint stays empty so the default applies.
func normalizeEndpoint(endpoint string) string {
	endpoint = strings.TrimSuffix(strings.TrimSpace(endpoint), "/")
	if endpoint == "" {
		return ""
	}

	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	return endpoint
}

package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// API endpoints.
const (
	// DefaultAPIEndpoint is the production base URL of the shipping API.
	DefaultAPIEndpoint = "https://api.easypost.com/v2"

	// DefaultTokenizerURL is the base URL of the card processor.
	DefaultTokenizerURL = "https://api.stripe.com"

	// DefaultUserAgent is sent when Config.UserAgent is empty.
	DefaultUserAgent = "shipapi-go/1.0"
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the per-request deadline applied to every outbound call.
	DefaultHTTPTimeout = 60 * time.Second
)

// Retry limits.
const (
	// DefaultRetryMax is the default maximum number of retries.
	DefaultRetryMax = 2

	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// Pagination.
const (
	// StandardPageSize is the default page size for CLI list commands.
	StandardPageSize = 20

	// MaxPageSize is the largest page size the API accepts.
	MaxPageSize = 100
)

// Output formatting.
const (
	// JSONIndentSize is the indentation used for JSON and YAML output.
	JSONIndentSize = 2
)

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/shipapi/internal/auth"
	internalhttp "github.com/fivetwenty-io/shipapi/internal/http"
	"github.com/fivetwenty-io/shipapi/pkg/shipapi"
)

const testAPIKey = "EZTK-partner"

// NewTestClient creates a new test client with the given base URL.
func NewTestClient(baseURL string) *Client {
	return NewTestClientWithProcessor(baseURL, baseURL, nil)
}

// NewTestClientWithProcessor creates a test client whose card processor
// lives at processorURL. Retries are disabled on both transports.
func NewTestClientWithProcessor(baseURL, processorURL string, logger shipapi.Logger) *Client {
	opts := []internalhttp.Option{internalhttp.WithRetryConfig(0, time.Millisecond, time.Millisecond)}
	if logger != nil {
		opts = append(opts, internalhttp.WithLogger(logger))
	}

	client := &Client{
		httpClient:      internalhttp.NewClient(baseURL, auth.StaticKey(testAPIKey), opts...),
		processorClient: internalhttp.NewClient(processorURL, nil, opts...),
		baseURL:         baseURL,
		logger:          logger,
	}

	client.initializeResourceClients()

	return client
}

// writeJSON writes body as a JSON response with the given status.
func writeJSON(writer http.ResponseWriter, status int, body interface{}) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)

	if body != nil {
		_ = json.NewEncoder(writer).Encode(body)
	}
}

// errorBody builds an API error envelope.
func errorBody(code, message string) map[string]interface{} {
	return map[string]interface{}{
		"error": map[string]interface{}{
			"code":    code,
			"message": message,
		},
	}
}

// recordingLogger captures log calls for assertions.
type recordingLogger struct {
	mu      sync.Mutex
	entries []string
}

func (l *recordingLogger) record(level, msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, fmt.Sprintf("%s %s %v", level, msg, fields))
}

func (l *recordingLogger) Debug(msg string, fields map[string]interface{}) {
	l.record("DEBUG", msg, fields)
}

func (l *recordingLogger) Info(msg string, fields map[string]interface{}) {
	l.record("INFO", msg, fields)
}

func (l *recordingLogger) Warn(msg string, fields map[string]interface{}) {
	l.record("WARN", msg, fields)
}

func (l *recordingLogger) Error(msg string, fields map[string]interface{}) {
	l.record("ERROR", msg, fields)
}

func (l *recordingLogger) Entries() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]string(nil), l.entries...)
}

// TestGetOperation represents a generic get operation test case.
type TestGetOperation[TResponse any] struct {
	Name         string
	ID           string
	ExpectedPath string
	StatusCode   int
	Response     interface{}
	WantErr      bool
	ErrMessage   string
}

// RunGetTests runs a series of get operation tests.
func RunGetTests[TResponse any](
	t *testing.T,
	tests []TestGetOperation[TResponse],
	getFunc func(*Client) func(context.Context, string) (*TResponse, error),
) {
	t.Helper()

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.Name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, testCase.ExpectedPath, request.URL.Path)
				assert.Equal(t, http.MethodGet, request.Method)
				assert.Equal(t, "Bearer "+testAPIKey, request.Header.Get("Authorization"))

				writeJSON(writer, testCase.StatusCode, testCase.Response)
			}))
			defer server.Close()

			client := NewTestClient(server.URL)

			result, err := getFunc(client)(context.Background(), testCase.ID)

			if testCase.WantErr {
				require.Error(t, err)

				if testCase.ErrMessage != "" {
					assert.Contains(t, err.Error(), testCase.ErrMessage)
				}

				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				require.NotNil(t, result)
			}
		})
	}
}

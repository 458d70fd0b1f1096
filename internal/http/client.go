package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fivetwenty-io/shipapi/internal/auth"
	"github.com/fivetwenty-io/shipapi/internal/constants"
	"github.com/fivetwenty-io/shipapi/pkg/shipapi"
	"github.com/hashicorp/go-retryablehttp"
)

const (
	contentTypeJSON = "application/json"
	contentTypeForm = "application/x-www-form-urlencoded"
)

// Logger is the logging interface used by the transport.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// BasicAuth holds HTTP Basic credentials for a single request.
type BasicAuth struct {
	Username string
	Password string
}

// Request describes a call to the API.
type Request struct {
	Method string
	// Path is appended to the client's base URL unless it is an absolute URL.
	Path    string
	Query   url.Values
	Headers map[string]string
	// Body is JSON-encoded. Form takes precedence when both are set.
	Body interface{}
	Form url.Values
	// APIKey overrides the client's key provider for this request.
	APIKey string
	// BasicAuth replaces bearer authentication for this request.
	BasicAuth *BasicAuth
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client is a retrying HTTP client for the shipping API.
type Client struct {
	baseURL      string
	keys         auth.KeyProvider
	client       *retryablehttp.Client
	logger       Logger
	debug        bool
	userAgent    string
	interceptors *shipapi.InterceptorChain
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithRetryConfig sets the retry budget and backoff bounds.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		if retryMax < 0 {
			retryMax = 0
		}

		c.client.RetryMax = retryMax
		c.client.RetryWaitMin = waitMin
		c.client.RetryWaitMax = waitMax
	}
}

// WithTimeout sets the deadline applied to every request attempt.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.client.HTTPClient.Timeout = timeout
	}
}

// WithInterceptors installs request/response interceptors.
func WithInterceptors(chain *shipapi.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// NewClient creates a client for baseURL. keys may be nil for unauthenticated use.
func NewClient(baseURL string, keys auth.KeyProvider, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.Logger = nil
	retryClient.RetryMax = constants.DefaultRetryMax
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	retryClient.CheckRetry = checkRetry
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	client := &Client{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		keys:      keys,
		client:    retryClient,
		userAgent: constants.DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.logger != nil {
		retryClient.Logger = &leveledLogger{logger: client.logger}
		retryClient.RequestLogHook = client.logRetry
	}

	return client
}

// BaseURL returns the base URL requests are resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do sends the request. A non-2xx response returns both the response and a
// *shipapi.ResponseError.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	fullURL, err := c.buildURL(req.Path, req.Query)
	if err != nil {
		return nil, err
	}

	body, contentType, err := encodeBody(req)
	if err != nil {
		return nil, err
	}

	var rawBody interface{}
	if body != nil {
		rawBody = body
	}

	httpReq, err := retryablehttp.NewRequestWithContext(withMethod(ctx, req.Method), req.Method, fullURL, rawBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", contentTypeJSON)
	httpReq.Header.Set("User-Agent", c.userAgent)

	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	err = c.authorize(ctx, httpReq, req)
	if err != nil {
		return nil, err
	}

	intercepted := &shipapi.Request{Method: req.Method, Path: req.Path, Headers: httpReq.Header}

	if c.interceptors != nil {
		err = c.interceptors.ExecuteRequestInterceptors(ctx, intercepted)
		if err != nil {
			return nil, err
		}
	}

	c.logDebug("HTTP Request", map[string]interface{}{
		"method": req.Method,
		"url":    fullURL,
	})

	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		c.runResponseInterceptors(ctx, intercepted, &shipapi.Response{Error: err})

		return nil, fmt.Errorf("executing request: %w", err)
	}

	defer func() {
		_ = httpResp.Body.Close()
	}()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respBody,
	}

	c.logDebug("HTTP Response", map[string]interface{}{
		"method":      req.Method,
		"url":         fullURL,
		"status_code": resp.StatusCode,
	})

	var respErr error

	if resp.StatusCode >= http.StatusBadRequest {
		errResp, _ := shipapi.ParseResponseError(resp.StatusCode, respBody)
		respErr = errResp
	}

	c.runResponseInterceptors(ctx, intercepted, &shipapi.Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Error:      respErr,
	})

	if respErr != nil {
		return resp, respErr
	}

	return resp, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Patch performs a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPatch, Path: path, Body: body})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}

func (c *Client) buildURL(path string, query url.Values) (string, error) {
	raw := path
	if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		raw = c.baseURL + path
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parsing request URL: %w", err)
	}

	if len(query) > 0 {
		merged := parsed.Query()
		for key, values := range query {
			for _, value := range values {
				merged.Add(key, value)
			}
		}

		parsed.RawQuery = merged.Encode()
	}

	return parsed.String(), nil
}

func (c *Client) authorize(ctx context.Context, httpReq *retryablehttp.Request, req *Request) error {
	if req.BasicAuth != nil {
		httpReq.SetBasicAuth(req.BasicAuth.Username, req.BasicAuth.Password)

		return nil
	}

	key := req.APIKey
	if key == "" && c.keys != nil {
		var err error

		key, err = c.keys.APIKey(ctx)
		if err != nil {
			return fmt.Errorf("getting API key: %w", err)
		}
	}

	if key != "" {
		httpReq.Header.Set("Authorization", "Bearer "+key)
	}

	return nil
}

func (c *Client) runResponseInterceptors(ctx context.Context, req *shipapi.Request, resp *shipapi.Response) {
	if c.interceptors == nil {
		return
	}

	err := c.interceptors.ExecuteResponseInterceptors(ctx, req, resp)
	if err != nil && c.logger != nil {
		c.logger.Warn("response interceptor failed", map[string]interface{}{"error": err.Error()})
	}
}

func (c *Client) logDebug(msg string, fields map[string]interface{}) {
	if c.debug && c.logger != nil {
		c.logger.Debug(msg, fields)
	}
}

func (c *Client) logRetry(_ retryablehttp.Logger, req *http.Request, attempt int) {
	if attempt == 0 {
		return
	}

	c.logger.Warn("Retrying HTTP Request", map[string]interface{}{
		"method":  req.Method,
		"path":    req.URL.Path,
		"attempt": attempt,
	})
}

func encodeBody(req *Request) ([]byte, string, error) {
	if req.Form != nil {
		return []byte(req.Form.Encode()), contentTypeForm, nil
	}

	if req.Body == nil {
		return nil, "", nil
	}

	data, err := json.Marshal(req.Body)
	if err != nil {
		return nil, "", fmt.Errorf("encoding request body: %w", err)
	}

	return data, contentTypeJSON, nil
}

type methodKey struct{}

func withMethod(ctx context.Context, method string) context.Context {
	return context.WithValue(ctx, methodKey{}, method)
}

// checkRetry retries connection errors, 429 and 5xx for idempotent methods;
// non-idempotent methods are only retried on 429.
func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	retry, checkErr := retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	if !retry || checkErr != nil {
		return retry, checkErr
	}

	if resp != nil && resp.StatusCode == http.StatusTooManyRequests {
		return true, nil
	}

	method, _ := ctx.Value(methodKey{}).(string)

	return isIdempotent(method), nil
}

func isIdempotent(method string) bool {
	switch strings.ToUpper(method) {
	case "", http.MethodGet, http.MethodHead, http.MethodPut, http.MethodDelete, http.MethodOptions:
		return true
	default:
		return false
	}
}

// leveledLogger routes retryablehttp warnings and errors to Logger.
type leveledLogger struct {
	logger Logger
}

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, fieldsFrom(keysAndValues))
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, fieldsFrom(keysAndValues))
}

func (l *leveledLogger) Info(string, ...interface{}) {}

func (l *leveledLogger) Debug(string, ...interface{}) {}

func fieldsFrom(keysAndValues []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(keysAndValues)/2)

	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprint(keysAndValues[i])
		}

		if err, isErr := keysAndValues[i+1].(error); isErr {
			fields[key] = err.Error()

			continue
		}

		fields[key] = keysAndValues[i+1]
	}

	return fields
}

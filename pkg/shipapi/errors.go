package shipapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// FieldError describes a single invalid field in a rejected request.
type FieldError struct {
	Field   string `json:"field"   yaml:"field"`
	Message string `json:"message" yaml:"message"`
}

// APIError represents the error object returned by the API.
type APIError struct {
	Code    string       `json:"code"             yaml:"code"`
	Message string       `json:"message"          yaml:"message"`
	Errors  []FieldError `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code == "" {
		return e.Message
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ResponseError represents a non-2xx response from the API.
type ResponseError struct {
	StatusCode int      `json:"-"`
	Detail     APIError `json:"error"`
}

// Error implements the error interface for ResponseError.
func (e *ResponseError) Error() string {
	if e.Detail.Code == "" && e.Detail.Message == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}

	return fmt.Sprintf("%s (status: %d)", e.Detail.Error(), e.StatusCode)
}

// Unwrap exposes the API error detail to errors.As.
func (e *ResponseError) Unwrap() error {
	return &e.Detail
}

// Static errors for err113 compliance.
//
//nolint:stylecheck // messages are shown to API users verbatim
var (
	ErrInvalidPaymentMethod = errors.New("The chosen payment method is not valid. Please try again.")
	ErrTokenizationFailed   = errors.New("Could not send card details to Stripe, please try again later")
	ErrBillingNotConfigured = errors.New("Billing has not been setup for this user. Please add a payment method.")
	ErrNoMorePages          = errors.New("There are no more pages to retrieve.")
)

var (
	ErrConfigRequired      = errors.New("config is required")
	ErrAPIKeyRequired      = errors.New("API key is required")
	ErrIDRequired          = errors.New("resource ID is required")
	ErrCardDetailsRequired = errors.New("card details are required")
)

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return hasStatus(err, func(code int) bool { return code == http.StatusNotFound })
}

// IsUnauthorized checks if the error is an unauthorized error.
func IsUnauthorized(err error) bool {
	return hasStatus(err, func(code int) bool { return code == http.StatusUnauthorized })
}

// IsForbidden checks if the error is a forbidden error.
func IsForbidden(err error) bool {
	return hasStatus(err, func(code int) bool { return code == http.StatusForbidden })
}

// IsPaymentRequired checks if the API rejected the request for billing reasons.
func IsPaymentRequired(err error) bool {
	return hasStatus(err, func(code int) bool { return code == http.StatusPaymentRequired })
}

// IsRateLimited checks if the error is a rate limit error.
func IsRateLimited(err error) bool {
	return hasStatus(err, func(code int) bool { return code == http.StatusTooManyRequests })
}

// IsServerError checks if the error was caused by a 5xx response.
func IsServerError(err error) bool {
	return hasStatus(err, func(code int) bool { return code >= http.StatusInternalServerError })
}

func hasStatus(err error, match func(int) bool) bool {
	errResp := &ResponseError{}
	if errors.As(err, &errResp) {
		return match(errResp.StatusCode)
	}

	return false
}

// ParseResponseError parses an error response from JSON.
func ParseResponseError(statusCode int, data []byte) (*ResponseError, error) {
	errResp := ResponseError{StatusCode: statusCode}

	err := json.Unmarshal(data, &errResp)
	if err != nil {
		return &errResp, fmt.Errorf("failed to unmarshal response error: %w", err)
	}

	return &errResp, nil
}

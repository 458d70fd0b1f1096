package constants

import "errors"

// Configuration errors.
var (
	ErrNoAPIKeyConfigured = errors.New("no API key configured, use --api-key or set SHIPAPI_API_KEY")
	ErrConfigNotWritable  = errors.New("configuration file is not writable")
	ErrInvalidConfigKey   = errors.New("invalid configuration key")
)

// Validation errors.
var (
	ErrInvalidPriority       = errors.New("priority must be 'primary' or 'secondary'")
	ErrInvalidOutputFormat   = errors.New("output must be one of table, json, yaml")
	ErrReferralKeyRequired   = errors.New("--referral-api-key is required")
	ErrInvalidExpiration     = errors.New("expiration must be MM/YYYY")
	ErrCardNumberRequired    = errors.New("card number is required")
	ErrCVCRequired           = errors.New("card CVC is required")
	ErrAmountRequired        = errors.New("amount is required")
	ErrReferralFieldRequired = errors.New("--name and --email are required")
)

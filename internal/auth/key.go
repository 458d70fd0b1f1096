package auth

import (
	"context"
	"errors"
	"os"
	"strings"
)

// Static errors for err113 compliance.
var (
	ErrNoAPIKey = errors.New("no API key available")
)

// KeyProvider supplies the API key sent with each request.
type KeyProvider interface {
	APIKey(ctx context.Context) (string, error)
}

// StaticKey is a fixed API key.
type StaticKey string

// APIKey implements KeyProvider.
func (k StaticKey) APIKey(ctx context.Context) (string, error) {
	if strings.TrimSpace(string(k)) == "" {
		return "", ErrNoAPIKey
	}

	return string(k), nil
}

// KeyFunc adapts a function to KeyProvider.
type KeyFunc func(ctx context.Context) (string, error)

// APIKey implements KeyProvider.
func (f KeyFunc) APIKey(ctx context.Context) (string, error) {
	return f(ctx)
}

// EnvKey reads the API key from an environment variable on every call.
func EnvKey(name string) KeyProvider {
	return KeyFunc(func(ctx context.Context) (string, error) {
		return StaticKey(os.Getenv(name)).APIKey(ctx)
	})
}

// Mask hides all but the last four characters of a key for display.
func Mask(key string) string {
	const visible = 4

	if len(key) <= visible {
		return strings.Repeat("*", len(key))
	}

	return strings.Repeat("*", len(key)-visible) + key[len(key)-visible:]
}

// Package secrets resolves named credential bundles. A bundle is a flat map
// of credential fields (db host/user/password, directory client id/secret)
// fetched fresh on every call; nothing is cached and nothing is retried.
package secrets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrUnavailable reports that the backing store could not locate or decode
// the requested bundle.
var ErrUnavailable = errors.New("secret unavailable")

// Bundle is a resolved set of named credential fields.
type Bundle map[string]string

// Get returns the named field or an empty string.
func (b Bundle) Get(key string) string {
	if b == nil {
		return ""
	}
	return b[key]
}

// Provider fetches a bundle by name.
type Provider interface {
	Fetch(ctx context.Context, name string) (Bundle, error)
}

// EnvProvider reads bundles from process environment variables. The bundle
// named COAUTO is looked up as COAUTO_SECRET_COAUTO holding a JSON object of
// string fields.
type EnvProvider struct{}

// NewEnvProvider constructs the environment-backed provider.
func NewEnvProvider() *EnvProvider {
	return &EnvProvider{}
}

func (p *EnvProvider) Fetch(_ context.Context, name string) (Bundle, error) {
	key := envKey(name)
	raw := os.Getenv(key)
	if raw == "" {
		return nil, fmt.Errorf("%w: %s is not set", ErrUnavailable, key)
	}

	bundle := Bundle{}
	if err := json.Unmarshal([]byte(raw), &bundle); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", ErrUnavailable, key, err)
	}
	return bundle, nil
}

func envKey(name string) string {
	normalized := strings.ToUpper(strings.TrimSpace(name))
	normalized = strings.NewReplacer("-", "_", " ", "_").Replace(normalized)
	return "COAUTO_SECRET_" + normalized
}

// Static serves fixed bundles, for tests and local tooling.
type Static map[string]Bundle

func (s Static) Fetch(_ context.Context, name string) (Bundle, error) {
	bundle, ok := s[name]
	if !ok {
		return nil, fmt.Errorf("%w: no bundle named %q", ErrUnavailable, name)
	}
	return bundle, nil
}

// Package adapters implements the optional external verification clients.
// Every adapter fails soft: missing credentials, network errors, and
// malformed payloads all degrade to sentinel results and never surface as
// errors to the caller.
package adapters

import (
	"net/http"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

const userAgent = "Claimscope/1.0 (Claim verification service)"

// Credential names looked up through the Credentials collaborator.
const (
	CredentialFactCheckAggregator = "factCheckAggregator"
	CredentialClaimBuster         = "claimBuster"
)

// Credentials resolves API credentials by name. An absent credential is a
// normal, non-error state.
type Credentials interface {
	Credential(name string) (string, bool)
}

// StaticCredentials is a map-backed Credentials implementation.
type StaticCredentials map[string]string

// Credential returns the named credential if present and non-empty.
func (s StaticCredentials) Credential(name string) (string, bool) {
	v, ok := s[name]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Options tune the shared adapter plumbing.
type Options struct {
	// Timeout bounds each outbound call so a stalled endpoint cannot hang
	// an analysis.
	Timeout time.Duration

	// CacheTTL controls how long adapter results are reused for identical
	// claim text. Zero disables caching.
	CacheTTL time.Duration

	// RequestsPerSecond limits outbound calls per endpoint. Zero means
	// unlimited.
	RequestsPerSecond float64
}

// DefaultOptions returns the production defaults.
func DefaultOptions() Options {
	return Options{
		Timeout:           10 * time.Second,
		CacheTTL:          15 * time.Minute,
		RequestsPerSecond: 2,
	}
}

func newHTTPClient(opts Options) *http.Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

func newCache(opts Options) *gocache.Cache {
	if opts.CacheTTL <= 0 {
		return nil
	}
	return gocache.New(opts.CacheTTL, 2*opts.CacheTTL)
}

func newLimiter(opts Options) *rate.Limiter {
	if opts.RequestsPerSecond <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
}

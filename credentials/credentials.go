// Package credentials holds AWS-style access key material and the ways a
// signing client obtains it. Values are plain snapshots: the signer and
// transport layers never mutate or refresh them.
package credentials

import (
	"context"
	"errors"
	"os"
)

// Credentials is an immutable snapshot of a key pair, with an optional
// session token for temporary credentials. A zero SessionToken means
// long-lived credentials.
//
// The signer itself never reads SessionToken. Callers using temporary
// credentials must place the token in the X-Amz-Security-Token header
// before signing so it participates in the signed header set; the
// transport package does this automatically.
type Credentials struct {
	AccessKey    string
	SecretKey    string
	SessionToken string
}

// HasKeys reports whether both the access key and secret key are set.
func (c Credentials) HasKeys() bool {
	return c.AccessKey != "" && c.SecretKey != ""
}

// HasSessionToken reports whether the snapshot carries a session token.
func (c Credentials) HasSessionToken() bool {
	return c.SessionToken != ""
}

// ErrNoCredentials is returned by providers that cannot produce a usable
// key pair.
var ErrNoCredentials = errors.New("credentials: no credentials available")

// Provider yields a point-in-time credential snapshot. Implementations
// must be safe for concurrent use; each Retrieve call stands alone.
type Provider interface {
	Retrieve(ctx context.Context) (Credentials, error)
}

// Static is a Provider that always returns the same snapshot.
type Static struct {
	creds Credentials
}

// NewStatic creates a Static provider from a fixed snapshot.
func NewStatic(creds Credentials) *Static {
	return &Static{creds: creds}
}

// Retrieve implements Provider.
func (s *Static) Retrieve(ctx context.Context) (Credentials, error) {
	if !s.creds.HasKeys() {
		return Credentials{}, ErrNoCredentials
	}
	return s.creds, nil
}

// EnvProvider reads credentials from the conventional AWS environment
// variables on every Retrieve call.
type EnvProvider struct{}

// FromEnv returns a Provider backed by AWS_ACCESS_KEY_ID,
// AWS_SECRET_ACCESS_KEY and AWS_SESSION_TOKEN.
func FromEnv() *EnvProvider {
	return &EnvProvider{}
}

// Retrieve implements Provider.
func (e *EnvProvider) Retrieve(ctx context.Context) (Credentials, error) {
	creds := Credentials{
		AccessKey:    os.Getenv("AWS_ACCESS_KEY_ID"),
		SecretKey:    os.Getenv("AWS_SECRET_ACCESS_KEY"),
		SessionToken: os.Getenv("AWS_SESSION_TOKEN"),
	}
	if !creds.HasKeys() {
		return Credentials{}, ErrNoCredentials
	}
	return creds, nil
}

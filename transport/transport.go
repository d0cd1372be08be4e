// Package transport provides an http.RoundTripper that signs every
// outbound request with AWS Signature Version 4 before handing it to the
// underlying transport. It owns the plumbing the core signer deliberately
// leaves to callers: buffering the one-shot body, stamping X-Amz-Date, and
// adding X-Amz-Security-Token when the credential snapshot carries one.
package transport

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/quayside/go-authv4/credentials"
	"github.com/quayside/go-authv4/signer"
)

// RoundTripper signs requests and delegates to a base transport. It is
// safe for concurrent use; every request takes its own credential
// snapshot from the provider.
type RoundTripper struct {
	base     http.RoundTripper
	provider credentials.Provider
	region   string
	service  string
	now      func() time.Time
	logger   *slog.Logger
	metrics  *signMetrics
}

// Option configures a RoundTripper.
type Option func(*RoundTripper)

// WithBase sets the underlying transport. Defaults to
// http.DefaultTransport.
func WithBase(base http.RoundTripper) Option {
	return func(rt *RoundTripper) { rt.base = base }
}

// WithClock overrides the signing clock.
func WithClock(now func() time.Time) Option {
	return func(rt *RoundTripper) { rt.now = now }
}

// WithLogger enables logging of signing failures.
func WithLogger(logger *slog.Logger) Option {
	return func(rt *RoundTripper) { rt.logger = logger }
}

// WithRegisterer registers signing metrics with reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(rt *RoundTripper) { rt.metrics = newSignMetrics(reg) }
}

// New creates a signing RoundTripper for the given region and service.
func New(region, service string, provider credentials.Provider, opts ...Option) (*RoundTripper, error) {
	if region == "" {
		return nil, fmt.Errorf("region is required")
	}
	if service == "" {
		return nil, fmt.Errorf("service is required")
	}
	if provider == nil {
		return nil, fmt.Errorf("credentials provider is required")
	}

	rt := &RoundTripper{
		base:     http.DefaultTransport,
		provider: provider,
		region:   region,
		service:  service,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt, nil
}

// RoundTrip implements http.RoundTripper. The original request is not
// modified; its body, if any, is fully consumed and re-buffered onto the
// signed clone.
func (rt *RoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	signed, err := rt.sign(req)
	rt.metrics.observe(err, time.Since(start))
	if err != nil {
		if rt.logger != nil {
			rt.logger.Error("request signing failed",
				"method", req.Method,
				"host", req.URL.Host,
				"error", err,
			)
		}
		return nil, err
	}
	return rt.base.RoundTrip(signed)
}

func (rt *RoundTripper) sign(req *http.Request) (*http.Request, error) {
	creds, err := rt.provider.Retrieve(req.Context())
	if err != nil {
		return nil, fmt.Errorf("retrieve credentials: %w", err)
	}

	out := req.Clone(req.Context())

	var payload []byte
	if req.Body != nil {
		payload, err = io.ReadAll(req.Body)
		req.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("buffer request body: %w", err)
		}
		out.Body = io.NopCloser(bytes.NewReader(payload))
		out.ContentLength = int64(len(payload))
		out.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(payload)), nil
		}
	}

	// Both headers must be in place before signing so they join the
	// canonical header set.
	signingTime := rt.now()
	st := signer.NewSigningTime(signingTime)
	out.Header.Set(signer.AmzDateKey, st.TimeFormat())
	if creds.HasSessionToken() {
		out.Header.Set(signer.AmzSecurityTokenKey, creds.SessionToken)
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	if err := signer.SignRequest(out, body, rt.region, rt.service, signingTime, creds); err != nil {
		return nil, fmt.Errorf("sign request: %w", err)
	}
	return out, nil
}

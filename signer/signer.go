// Package signer computes AWS Signature Version 4 authentication for
// outbound HTTP requests. Every request is signed independently and
// statelessly from a point-in-time credential snapshot; no handshake, no
// session state, no I/O beyond consuming the body stream.
package signer

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/quayside/go-authv4/credentials"
)

// Signer applies SigV4 signing to HTTP requests using a fixed region,
// service and credential snapshot. A Signer holds no mutable state and is
// safe for concurrent use.
type Signer struct {
	config Config
}

// NewSigner creates a new Signer with the given config.
func NewSigner(config Config) (*Signer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Signer{config: config}, nil
}

// Sign signs req at signingTime, writing the Authorization header. See
// SignRequest for the full contract.
func (s *Signer) Sign(req *http.Request, body io.Reader, signingTime time.Time) error {
	return SignRequest(req, body, s.config.Region, s.config.Service, signingTime, s.config.Credentials)
}

// SignRequest computes the SigV4 signature for req and sets (overwriting)
// its Authorization header. No other header is modified. The signature is
// a pure function of the request line, header set, body bytes, region,
// service, timestamp and credentials; identical inputs always produce an
// identical header.
//
// body is the request payload, read exactly once and fully consumed as a
// side effect; nil means an empty body. Callers that need the payload
// afterward must buffer it themselves (the transport package does).
//
// Every header present on req participates in the canonical request, the
// date and target headers included. SignRequest does not set X-Amz-Date
// and does not inspect the session token: callers using temporary
// credentials must add X-Amz-Security-Token before signing, or the token
// is absent from the signed set and the service will reject the request.
func SignRequest(req *http.Request, body io.Reader, region, service string, signingTime time.Time, creds credentials.Credentials) error {
	st := NewSigningTime(signingTime)

	path := CanonicalPath(req.URL)
	if !utf8.ValidString(path) {
		return fmt.Errorf("%w: request path", ErrEncoding)
	}

	names, headerLines, err := CanonicalHeaders(req.Header, SanitizedHost(req))
	if err != nil {
		return err
	}
	signedHeaders := strings.Join(names, ";")

	payloadHash, err := HashPayload(body)
	if err != nil {
		return err
	}

	canonicalRequest := BuildCanonicalRequest(
		req.Method,
		path,
		req.URL.RawQuery,
		headerLines,
		signedHeaders,
		payloadHash,
	)

	scope := BuildCredentialScope(st, region, service)
	strToSign := BuildStringToSign(SigningAlgorithm, st.TimeFormat(), scope, canonicalRequest)
	key := DeriveSigningKey(creds.SecretKey, region, service, st)
	signature := BuildSignature(key, strToSign)

	req.Header.Set(AuthorizationHeader, BuildAuthorizationHeader(
		creds.AccessKey+"/"+scope,
		signedHeaders,
		signature,
	))
	return nil
}

// Presign produces a presigned URL for req, valid for expires from
// signingTime. The signature travels in the query string instead of the
// Authorization header, so the URL can be handed to a party without
// credentials. Only the host header is signed; req is not modified.
//
// payloadHash is the hex SHA256 of the payload the URL's user will send;
// pass EmptyStringSHA256 (or "") for bodyless requests. A session token
// on the Signer's credentials is included as X-Amz-Security-Token in the
// query.
func (s *Signer) Presign(req *http.Request, payloadHash string, signingTime time.Time, expires time.Duration) (string, error) {
	if payloadHash == "" {
		payloadHash = EmptyStringSHA256
	}
	st := NewSigningTime(signingTime)
	creds := s.config.Credentials

	path := CanonicalPath(req.URL)
	if !utf8.ValidString(path) {
		return "", fmt.Errorf("%w: request path", ErrEncoding)
	}

	scope := BuildCredentialScope(st, s.config.Region, s.config.Service)

	query := req.URL.Query()
	query.Set(AmzAlgorithmKey, SigningAlgorithm)
	query.Set(AmzDateKey, st.TimeFormat())
	query.Set(AmzExpiresKey, strconv.FormatInt(int64(expires/time.Second), 10))
	query.Set(AmzCredentialKey, creds.AccessKey+"/"+scope)
	query.Set(AmzSignedHeadersKey, "host")
	if creds.HasSessionToken() {
		query.Set(AmzSecurityTokenKey, creds.SessionToken)
	}

	// url.Values encodes spaces as "+"; the canonical form requires "%20".
	rawQuery := strings.ReplaceAll(query.Encode(), "+", "%20")

	host := SanitizedHost(req)
	canonicalRequest := BuildCanonicalRequest(
		req.Method,
		path,
		rawQuery,
		[]string{"host:" + host},
		"host",
		payloadHash,
	)

	strToSign := BuildStringToSign(SigningAlgorithm, st.TimeFormat(), scope, canonicalRequest)
	key := DeriveSigningKey(creds.SecretKey, s.config.Region, s.config.Service, st)
	signature := BuildSignature(key, strToSign)

	signedURL := *req.URL
	signedURL.RawQuery = rawQuery + "&" + AmzSignatureKey + "=" + signature
	return signedURL.String(), nil
}

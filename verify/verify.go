// Package verify checks inbound requests carrying SigV4 Authorization
// headers. It rebuilds the canonical request from exactly the header set
// the client declared as signed, recomputes the signature through the
// shared derivation chain, and compares in constant time.
package verify

import (
	"bytes"
	"context"
	"crypto/hmac"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/quayside/go-authv4/credentials"
	"github.com/quayside/go-authv4/signer"
)

// Errors returned by the verifier.
var (
	ErrAuthMissing       = errors.New("verify: missing authorization")
	ErrAuthInvalid       = errors.New("verify: invalid authorization")
	ErrUnknownAccessKey  = errors.New("verify: unknown access key")
	ErrSignatureMismatch = errors.New("verify: signature mismatch")
	ErrClockSkew         = errors.New("verify: request time outside allowed skew")
)

// Options tunes verification.
type Options struct {
	// MaxClockSkew bounds |now - X-Amz-Date|. Zero disables the check.
	MaxClockSkew time.Duration

	// Region and Service, when set, are enforced against the credential
	// scope of inbound requests.
	Region  string
	Service string

	// Now is the clock used for skew checks. Defaults to time.Now.
	Now func() time.Time
}

// authValues is the structured form of a SigV4 Authorization header.
type authValues struct {
	accessKey     string
	scopeDate     string
	scopeRegion   string
	scopeService  string
	signedHeaders []string
	signature     string
}

// VerifyRequest verifies the SigV4 signature on r against the credentials
// known to store. The request body, if present, is fully read to recompute
// the payload hash and then restored so handlers can consume it.
func VerifyRequest(ctx context.Context, r *http.Request, store credentials.Store, opts Options) error {
	auth := r.Header.Get(signer.AuthorizationHeader)
	if auth == "" {
		return ErrAuthMissing
	}

	av, err := parseAuthorization(auth)
	if err != nil {
		return err
	}
	if opts.Region != "" && av.scopeRegion != opts.Region {
		return fmt.Errorf("%w: region %q not allowed", ErrAuthInvalid, av.scopeRegion)
	}
	if opts.Service != "" && av.scopeService != opts.Service {
		return fmt.Errorf("%w: service %q not allowed", ErrAuthInvalid, av.scopeService)
	}

	creds, ok := store.Lookup(av.accessKey)
	if !ok {
		return ErrUnknownAccessKey
	}

	signingTime, err := requestTime(r)
	if err != nil {
		return err
	}
	if opts.MaxClockSkew > 0 {
		now := time.Now
		if opts.Now != nil {
			now = opts.Now
		}
		if d := now().Sub(signingTime); d > opts.MaxClockSkew || d < -opts.MaxClockSkew {
			return ErrClockSkew
		}
	}

	st := signer.NewSigningTime(signingTime)
	if st.ShortTimeFormat() != av.scopeDate {
		return fmt.Errorf("%w: scope date does not match request date", ErrAuthInvalid)
	}

	payloadHash, err := hashAndRestoreBody(r)
	if err != nil {
		return err
	}

	headerLines, err := canonicalHeaderLines(r, av.signedHeaders)
	if err != nil {
		return err
	}

	canonicalRequest := signer.BuildCanonicalRequest(
		r.Method,
		signer.CanonicalPath(r.URL),
		r.URL.RawQuery,
		headerLines,
		strings.Join(av.signedHeaders, ";"),
		payloadHash,
	)

	scope := signer.BuildCredentialScope(st, av.scopeRegion, av.scopeService)
	strToSign := signer.BuildStringToSign(signer.SigningAlgorithm, st.TimeFormat(), scope, canonicalRequest)
	key := signer.DeriveSigningKey(creds.SecretKey, av.scopeRegion, av.scopeService, st)
	expected := signer.BuildSignature(key, strToSign)

	if !hmac.Equal([]byte(expected), []byte(av.signature)) {
		return ErrSignatureMismatch
	}
	return nil
}

// parseAuthorization splits a header of the form
//
//	AWS4-HMAC-SHA256 Credential=AK/date/region/service/aws4_request, SignedHeaders=a;b, Signature=hex
func parseAuthorization(auth string) (authValues, error) {
	const prefix = signer.SigningAlgorithm + " "
	if !strings.HasPrefix(auth, prefix) {
		return authValues{}, fmt.Errorf("%w: unsupported algorithm", ErrAuthInvalid)
	}

	var av authValues
	for _, field := range strings.Split(auth[len(prefix):], ",") {
		field = strings.TrimSpace(field)
		switch {
		case strings.HasPrefix(field, "Credential="):
			parts := strings.Split(strings.TrimPrefix(field, "Credential="), "/")
			if len(parts) != 5 || parts[4] != "aws4_request" {
				return authValues{}, fmt.Errorf("%w: malformed credential scope", ErrAuthInvalid)
			}
			av.accessKey = parts[0]
			av.scopeDate = parts[1]
			av.scopeRegion = parts[2]
			av.scopeService = parts[3]
		case strings.HasPrefix(field, "SignedHeaders="):
			av.signedHeaders = strings.Split(strings.TrimPrefix(field, "SignedHeaders="), ";")
		case strings.HasPrefix(field, "Signature="):
			av.signature = strings.TrimPrefix(field, "Signature=")
		}
	}

	if av.accessKey == "" || len(av.signedHeaders) == 0 || len(av.signature) != 64 {
		return authValues{}, fmt.Errorf("%w: missing components", ErrAuthInvalid)
	}
	// The signed header list must be sorted and duplicate-free, matching
	// the ordering the canonical header block was hashed with.
	for i, name := range av.signedHeaders {
		if name == "" || name != strings.ToLower(name) {
			return authValues{}, fmt.Errorf("%w: malformed signed header %q", ErrAuthInvalid, name)
		}
		if i > 0 && av.signedHeaders[i-1] >= name {
			return authValues{}, fmt.Errorf("%w: signed headers not sorted", ErrAuthInvalid)
		}
	}
	return av, nil
}

// requestTime parses the request timestamp from X-Amz-Date. Clients in
// the wild send either the basic SigV4 format or RFC 3339.
func requestTime(r *http.Request) (time.Time, error) {
	value := r.Header.Get(signer.AmzDateKey)
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: missing %s header", ErrAuthInvalid, signer.AmzDateKey)
	}
	if t, err := time.Parse(signer.TimeFormat, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: unparseable %s header", ErrAuthInvalid, signer.AmzDateKey)
}

// hashAndRestoreBody hashes the request payload and puts an equivalent
// reader back on the request.
func hashAndRestoreBody(r *http.Request) (string, error) {
	if r.Body == nil {
		return signer.EmptyStringSHA256, nil
	}
	payload, err := io.ReadAll(r.Body)
	r.Body.Close()
	if err != nil {
		return "", fmt.Errorf("%w: read body: %v", ErrAuthInvalid, err)
	}
	r.Body = io.NopCloser(bytes.NewReader(payload))

	hash, err := signer.HashPayload(bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	return hash, nil
}

// canonicalHeaderLines rebuilds the canonical header block from exactly
// the names the client declared as signed.
func canonicalHeaderLines(r *http.Request, names []string) ([]string, error) {
	lines := make([]string, 0, len(names))
	for _, name := range names {
		var values []string
		if name == "host" {
			values = []string{signer.SanitizedHost(r)}
		} else if v, ok := r.Header[textproto.CanonicalMIMEHeaderKey(name)]; ok {
			values = v
		} else {
			for k, v := range r.Header {
				if strings.EqualFold(k, name) {
					values = v
					break
				}
			}
		}
		if len(values) == 0 {
			return nil, fmt.Errorf("%w: signed header %q absent from request", ErrAuthInvalid, name)
		}
		trimmed := make([]string, len(values))
		for i, v := range values {
			trimmed[i] = strings.TrimSpace(v)
		}
		lines = append(lines, name+":"+strings.Join(trimmed, ","))
	}
	return lines, nil
}

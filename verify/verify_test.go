package verify

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quayside/go-authv4/credentials"
	"github.com/quayside/go-authv4/signer"
)

var (
	testCreds = credentials.Credentials{
		AccessKey: "AKID",
		SecretKey: "SECRET",
	}
	testStore   = credentials.NewStaticStore([]credentials.Credentials{testCreds})
	signingTime = time.Date(2023, 12, 1, 12, 0, 0, 0, time.UTC)
)

// signedRequest produces a request signed the way the transport package
// signs outbound traffic: date header stamped first, every header signed.
func signedRequest(t *testing.T, body string) *http.Request {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "https://api.example.com/things?limit=5", strings.NewReader(body))
	st := signer.NewSigningTime(signingTime)
	req.Header.Set(signer.AmzDateKey, st.TimeFormat())
	req.Header.Set("Content-Type", "application/json")

	err := signer.SignRequest(req, strings.NewReader(body), "us-east-1", "execute-api", signingTime, testCreds)
	require.NoError(t, err)
	return req
}

func TestVerifyRequestRoundTrip(t *testing.T) {
	req := signedRequest(t, `{"name":"thing"}`)

	err := VerifyRequest(context.Background(), req, testStore, Options{})
	assert.NoError(t, err)

	// The body must still be readable by a handler afterward.
	payload, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"thing"}`, string(payload))
}

func TestVerifyRequestMissingAuthorization(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "https://api.example.com/", nil)

	err := VerifyRequest(context.Background(), req, testStore, Options{})
	assert.ErrorIs(t, err, ErrAuthMissing)
}

func TestVerifyRequestUnknownAccessKey(t *testing.T) {
	req := signedRequest(t, "{}")
	empty := credentials.NewStaticStore(nil)

	err := VerifyRequest(context.Background(), req, empty, Options{})
	assert.ErrorIs(t, err, ErrUnknownAccessKey)
}

func TestVerifyRequestTamperedBody(t *testing.T) {
	req := signedRequest(t, "{}")
	req.Body = io.NopCloser(strings.NewReader(`{"evil":true}`))

	err := VerifyRequest(context.Background(), req, testStore, Options{})
	assert.ErrorIs(t, err, ErrSignatureMismatch)
}

func TestVerifyRequestTamperedHeader(t *testing.T) {
	req := signedRequest(t, "{}")
	req.Header.Set("Content-Type", "text/plain")

	err := VerifyRequest(context.Background(), req, testStore, Options{})
	assert.ErrorIs(t, err, ErrSignatureMismatch)
}

func TestVerifyRequestTamperedSignature(t *testing.T) {
	req := signedRequest(t, "{}")
	auth := req.Header.Get(signer.AuthorizationHeader)
	flipped := "0"
	if strings.HasSuffix(auth, "0") {
		flipped = "1"
	}
	req.Header.Set(signer.AuthorizationHeader, auth[:len(auth)-1]+flipped)

	err := VerifyRequest(context.Background(), req, testStore, Options{})
	assert.ErrorIs(t, err, ErrSignatureMismatch)
}

func TestVerifyRequestClockSkew(t *testing.T) {
	req := signedRequest(t, "{}")

	opts := Options{
		MaxClockSkew: 5 * time.Minute,
		Now:          func() time.Time { return signingTime.Add(time.Hour) },
	}
	err := VerifyRequest(context.Background(), req, testStore, opts)
	assert.ErrorIs(t, err, ErrClockSkew)

	opts.Now = func() time.Time { return signingTime.Add(time.Minute) }
	err = VerifyRequest(context.Background(), req, testStore, opts)
	assert.NoError(t, err)
}

func TestVerifyRequestScopePinning(t *testing.T) {
	req := signedRequest(t, "{}")

	err := VerifyRequest(context.Background(), req, testStore, Options{Region: "eu-west-1"})
	assert.ErrorIs(t, err, ErrAuthInvalid)

	err = VerifyRequest(context.Background(), req, testStore, Options{Service: "s3"})
	assert.ErrorIs(t, err, ErrAuthInvalid)

	err = VerifyRequest(context.Background(), req, testStore, Options{Region: "us-east-1", Service: "execute-api"})
	assert.NoError(t, err)
}

func TestVerifyRequestRFC3339Date(t *testing.T) {
	body := "{}"
	req := httptest.NewRequest(http.MethodPost, "https://api.example.com/", strings.NewReader(body))
	req.Header.Set(signer.AmzDateKey, signingTime.Format(time.RFC3339))

	err := signer.SignRequest(req, strings.NewReader(body), "us-east-1", "execute-api", signingTime, testCreds)
	require.NoError(t, err)

	err = VerifyRequest(context.Background(), req, testStore, Options{})
	assert.NoError(t, err)
}

func TestParseAuthorization(t *testing.T) {
	tests := []struct {
		name    string
		auth    string
		wantErr bool
	}{
		{
			name: "valid",
			auth: "AWS4-HMAC-SHA256 Credential=AKID/20231201/us-east-1/s3/aws4_request, " +
				"SignedHeaders=content-type;host;x-amz-date, Signature=" + strings.Repeat("0", 64),
		},
		{
			name:    "wrong algorithm",
			auth:    "AWS4-HMAC-SHA1 Credential=AKID/20231201/us-east-1/s3/aws4_request, SignedHeaders=host, Signature=" + strings.Repeat("0", 64),
			wantErr: true,
		},
		{
			name:    "short credential scope",
			auth:    "AWS4-HMAC-SHA256 Credential=AKID/20231201/us-east-1/aws4_request, SignedHeaders=host, Signature=" + strings.Repeat("0", 64),
			wantErr: true,
		},
		{
			name:    "missing signature",
			auth:    "AWS4-HMAC-SHA256 Credential=AKID/20231201/us-east-1/s3/aws4_request, SignedHeaders=host",
			wantErr: true,
		},
		{
			name: "unsorted signed headers",
			auth: "AWS4-HMAC-SHA256 Credential=AKID/20231201/us-east-1/s3/aws4_request, " +
				"SignedHeaders=host;content-type, Signature=" + strings.Repeat("0", 64),
			wantErr: true,
		},
		{
			name: "upper case signed header",
			auth: "AWS4-HMAC-SHA256 Credential=AKID/20231201/us-east-1/s3/aws4_request, " +
				"SignedHeaders=Host, Signature=" + strings.Repeat("0", 64),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			av, err := parseAuthorization(tt.auth)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrAuthInvalid)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "AKID", av.accessKey)
			assert.Equal(t, "20231201", av.scopeDate)
			assert.Equal(t, []string{"content-type", "host", "x-amz-date"}, av.signedHeaders)
		})
	}
}

func TestMiddleware(t *testing.T) {
	handler := Middleware(testStore, Options{}, func(r *http.Request) bool {
		return r.URL.Path == "/healthz"
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("signed request passes", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, signedRequest(t, "{}"))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing authorization is 401", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "https://api.example.com/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("tampered request is 403", func(t *testing.T) {
		req := signedRequest(t, "{}")
		req.Body = io.NopCloser(strings.NewReader("tampered"))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("exempt path skips verification", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "https://api.example.com/healthz", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

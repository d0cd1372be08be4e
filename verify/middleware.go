package verify

import (
	"errors"
	"net/http"

	"github.com/quayside/go-authv4/credentials"
)

// Middleware returns an HTTP middleware enforcing SigV4 verification,
// except for requests where exempt(r) reports true. Missing credentials
// yield 401, any other verification failure 403.
func Middleware(store credentials.Store, opts Options, exempt func(*http.Request) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if exempt != nil && exempt(r) {
				next.ServeHTTP(w, r)
				return
			}
			if err := VerifyRequest(r.Context(), r, store, opts); err != nil {
				status := http.StatusForbidden
				if errors.Is(err, ErrAuthMissing) {
					status = http.StatusUnauthorized
				}
				http.Error(w, "AccessDenied: "+err.Error(), status)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

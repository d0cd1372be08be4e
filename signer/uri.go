package signer

import (
	"net/url"
	"strings"
)

// CanonicalPath returns the percent-encoded URI path for signing, as
// produced by the URL layer. An absent path yields the empty string; real
// requests always carry at least "/".
func CanonicalPath(u *url.URL) string {
	if len(u.Opaque) > 0 {
		const schemeSep, pathSep, queryStart = "//", "/", "?"
		opaque := u.Opaque

		// Cut off query string if present
		if idx := strings.Index(opaque, queryStart); idx >= 0 {
			opaque = opaque[:idx]
		}

		// Cut out scheme separator if present
		if strings.HasPrefix(opaque, schemeSep) {
			opaque = opaque[len(schemeSep):]
		}

		// Capture URI path starting with first path separator
		if idx := strings.Index(opaque, pathSep); idx >= 0 {
			return opaque[idx:]
		}
		return ""
	}
	return u.EscapedPath()
}

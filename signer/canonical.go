package signer

import (
	"fmt"
	"net/http"
	"net/textproto"
	"sort"
	"strings"
	"unicode/utf8"
)

// CanonicalHeaders canonicalizes a request's header mapping for signing.
// It returns the sorted, lower-cased, de-duplicated header name list and
// the parallel canonical header lines. The two slices are index-aligned
// and the same length; the signed-headers list joined from names must use
// exactly this ordering, because the verifying server recomputes the hash
// over the same block.
//
// host is the request's effective host value. Go keeps the Host header off
// http.Header, so it is folded in here unless the mapping already carries
// one.
//
// Rules per header: values are decoded as UTF-8 (ErrEncoding on invalid
// bytes), trimmed of leading/trailing whitespace, and comma-joined when a
// name maps to multiple values.
func CanonicalHeaders(header http.Header, host string) (names []string, lines []string, err error) {
	seen := make(map[string]struct{}, len(header)+1)
	for k := range header {
		lower := strings.ToLower(k)
		if _, ok := seen[lower]; ok {
			continue
		}
		seen[lower] = struct{}{}
		names = append(names, lower)
	}
	if host != "" {
		if _, ok := seen["host"]; !ok {
			names = append(names, "host")
		}
	}
	sort.Strings(names)

	lines = make([]string, 0, len(names))
	for _, name := range names {
		if name == "host" {
			if _, ok := seen["host"]; !ok {
				lines = append(lines, "host:"+strings.TrimSpace(host))
				continue
			}
		}
		values, ok := lookupHeader(header, name)
		if !ok {
			return nil, nil, fmt.Errorf("%w: %q", ErrMissingHeader, name)
		}
		trimmed := make([]string, len(values))
		for i, v := range values {
			if !utf8.ValidString(v) {
				return nil, nil, fmt.Errorf("%w: header %q", ErrEncoding, name)
			}
			trimmed[i] = strings.TrimSpace(v)
		}
		lines = append(lines, name+":"+strings.Join(trimmed, ","))
	}
	return names, lines, nil
}

// lookupHeader fetches all values for a lower-cased name against the
// original mapping, case-insensitively. The canonical-key lookup covers
// headers set through the http.Header API; the fold scan covers keys
// placed in the map directly.
func lookupHeader(header http.Header, name string) ([]string, bool) {
	if v, ok := header[textproto.CanonicalMIMEHeaderKey(name)]; ok {
		return v, true
	}
	for k, v := range header {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return nil, false
}

// BuildCanonicalRequest assembles the canonical request block:
//
//	METHOD
//	CANONICAL_PATH
//	CANONICAL_QUERY
//	CANONICAL_HEADER_LINES...
//
//	SIGNED_HEADER_NAMES
//	BODY_HASH_HEX
//
// The blank line between the header block and the signed-header-names
// line is mandatory; the layout is part of the verification contract.
func BuildCanonicalRequest(method, path, query string, headerLines []string, signedHeaders, payloadHash string) string {
	var b strings.Builder
	b.WriteString(method)
	b.WriteByte('\n')
	b.WriteString(path)
	b.WriteByte('\n')
	b.WriteString(query)
	b.WriteByte('\n')
	b.WriteString(strings.Join(headerLines, "\n"))
	b.WriteString("\n\n")
	b.WriteString(signedHeaders)
	b.WriteByte('\n')
	b.WriteString(payloadHash)
	return b.String()
}

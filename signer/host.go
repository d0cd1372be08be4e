package signer

import (
	"net/http"
	"strings"
)

// SanitizedHost returns the request's effective host with any default
// port removed, for use as the canonical host header value.
func SanitizedHost(r *http.Request) string {
	host := r.Host
	if host == "" {
		host = r.URL.Host
	}
	if port := portOnly(host); port != "" && isDefaultPort(r.URL.Scheme, port) {
		return stripPort(host)
	}
	return host
}

// stripPort removes the port from a host:port string.
func stripPort(hostport string) string {
	colon := strings.IndexByte(hostport, ':')
	if colon == -1 {
		return hostport
	}
	if i := strings.IndexByte(hostport, ']'); i != -1 {
		return strings.TrimPrefix(hostport[:i], "[")
	}
	return hostport[:colon]
}

// portOnly returns the port part of a host:port string.
func portOnly(hostport string) string {
	colon := strings.IndexByte(hostport, ':')
	if colon == -1 {
		return ""
	}
	if i := strings.Index(hostport, "]:"); i != -1 {
		return hostport[i+len("]:"):]
	}
	if strings.Contains(hostport, "]") {
		return ""
	}
	return hostport[colon+len(":"):]
}

// isDefaultPort checks if port is the default for the scheme.
func isDefaultPort(scheme, port string) bool {
	if port == "" {
		return true
	}
	lowerScheme := strings.ToLower(scheme)
	return (lowerScheme == "http" && port == "80") ||
		(lowerScheme == "https" && port == "443")
}

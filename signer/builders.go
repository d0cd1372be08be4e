package signer

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// BuildCredentialScope builds the SigV4 credential scope.
// Format: date/region/service/aws4_request
func BuildCredentialScope(t SigningTime, region, service string) string {
	return strings.Join([]string{
		t.ShortTimeFormat(),
		region,
		service,
		requestSuffix,
	}, "/")
}

// BuildStringToSign hashes the canonical request and builds the final
// text blob that gets HMAC-signed:
//
//	ALGORITHM
//	TIMESTAMP
//	SCOPE
//	HEX(SHA256(CANONICAL_REQUEST))
func BuildStringToSign(algorithm, timestamp, credentialScope, canonicalRequest string) string {
	hash := sha256.Sum256([]byte(canonicalRequest))
	return strings.Join([]string{
		algorithm,
		timestamp,
		credentialScope,
		hex.EncodeToString(hash[:]),
	}, "\n")
}

// BuildSignature signs stringToSign with the derived key and hex-encodes
// the result. This is the only hex-encoded value in the whole chain.
func BuildSignature(key []byte, stringToSign string) string {
	return hex.EncodeToString(HMACSHA256(key, []byte(stringToSign)))
}

// BuildAuthorizationHeader builds the Authorization header value.
// Format: ALGORITHM Credential=..., SignedHeaders=..., Signature=...
func BuildAuthorizationHeader(credentialStr, signedHeadersStr, signature string) string {
	const credential = "Credential="
	const signedHeaders = "SignedHeaders="
	const signatureKey = "Signature="
	const commaSpace = ", "

	var parts strings.Builder
	parts.Grow(
		len(SigningAlgorithm) + 1 +
			len(credential) + len(credentialStr) + 2 +
			len(signedHeaders) + len(signedHeadersStr) + 2 +
			len(signatureKey) + len(signature),
	)
	parts.WriteString(SigningAlgorithm)
	parts.WriteRune(' ')
	parts.WriteString(credential)
	parts.WriteString(credentialStr)
	parts.WriteString(commaSpace)
	parts.WriteString(signedHeaders)
	parts.WriteString(signedHeadersStr)
	parts.WriteString(commaSpace)
	parts.WriteString(signatureKey)
	parts.WriteString(signature)
	return parts.String()
}

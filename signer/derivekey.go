package signer

import (
	"crypto/hmac"
	"crypto/sha256"
)

// DeriveSigningKey derives the date/region/service-scoped signing key:
//   - kDate = HMAC-SHA256("AWS4" + secret, date)
//   - kRegion = HMAC-SHA256(kDate, region)
//   - kService = HMAC-SHA256(kRegion, service)
//   - kSigning = HMAC-SHA256(kService, "aws4_request")
//
// Each stage keys on the previous stage's raw binary output; nothing is
// hex-encoded until the final signature. The key is recomputed for every
// signing call — derivation is four HMAC operations, and recomputing
// sidesteps any cache invalidation across days, regions and key rotations.
func DeriveSigningKey(secret, region, service string, t SigningTime) []byte {
	kDate := HMACSHA256([]byte("AWS4"+secret), []byte(t.ShortTimeFormat()))
	kRegion := HMACSHA256(kDate, []byte(region))
	kService := HMACSHA256(kRegion, []byte(service))
	return HMACSHA256(kService, []byte(requestSuffix))
}

// HMACSHA256 computes HMAC-SHA256 of data with the given key.
func HMACSHA256(key, data []byte) []byte {
	h := hmac.New(sha256.New, key)
	h.Write(data)
	return h.Sum(nil)
}

package signer

// Signature Version 4 (SigV4) constants.
// Reference: https://docs.aws.amazon.com/general/latest/gr/sigv4-create-canonical-request.html

const (
	// EmptyStringSHA256 is the hex encoded SHA256 hash of zero bytes.
	// A request with no body hashes to this value.
	EmptyStringSHA256 = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"

	// SigningAlgorithm is the SigV4 signing algorithm identifier.
	SigningAlgorithm = "AWS4-HMAC-SHA256"

	// AuthorizationHeader is the header the signer writes. It is the only
	// header Sign modifies.
	AuthorizationHeader = "Authorization"

	// AmzDateKey is the header/query key for the request timestamp.
	// Format: YYYYMMDDTHHMMSSZ (e.g., 20231201T120000Z)
	AmzDateKey = "X-Amz-Date"

	// AmzSecurityTokenKey is the header/query key carrying a session token
	// for temporary credentials. The signer has no special knowledge of
	// it; when present it is canonicalized like any other header.
	AmzSecurityTokenKey = "X-Amz-Security-Token"

	// AmzAlgorithmKey is the query parameter key for signing algorithm.
	AmzAlgorithmKey = "X-Amz-Algorithm"

	// AmzCredentialKey is the query parameter key for credentials.
	AmzCredentialKey = "X-Amz-Credential"

	// AmzSignedHeadersKey is the query parameter key for signed headers.
	AmzSignedHeadersKey = "X-Amz-SignedHeaders"

	// AmzSignatureKey is the query parameter key for the signature.
	AmzSignatureKey = "X-Amz-Signature"

	// AmzExpiresKey is the query parameter key for presigned URL lifetime.
	AmzExpiresKey = "X-Amz-Expires"

	// TimeFormat is the time format for the X-Amz-Date header/query.
	TimeFormat = "20060102T150405Z"

	// ShortTimeFormat is the date-only format used in the credential scope.
	ShortTimeFormat = "20060102"

	// requestSuffix terminates every credential scope.
	requestSuffix = "aws4_request"
)

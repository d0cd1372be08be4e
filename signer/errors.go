package signer

import "errors"

// Sentinel errors returned by signing. All are unrecoverable for the call
// that produced them; signing has no retry semantics of its own.
var (
	// ErrEncoding indicates a header value or the canonical path is not
	// valid UTF-8 text.
	ErrEncoding = errors.New("signer: value is not valid UTF-8")

	// ErrMissingHeader indicates a sorted header name could not be
	// re-located in the source header mapping. This signals a programming
	// defect, not bad input.
	ErrMissingHeader = errors.New("signer: canonical header not found in source mapping")

	// ErrStreamRead indicates the body stream reported a genuine read
	// failure before end-of-stream. The body may have been partially
	// consumed; the request must not be signed.
	ErrStreamRead = errors.New("signer: body stream read failed")
)

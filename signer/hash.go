package signer

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
)

// payloadChunkSize bounds each read while hashing the body stream.
const payloadChunkSize = 4096

// HashPayload consumes the body stream exactly once and returns the
// lowercase hex SHA256 digest of its full content. A nil body means an
// empty body and yields EmptyStringSHA256.
//
// The stream is read in bounded chunks until io.EOF. A genuine read
// failure returns ErrStreamRead rather than silently truncating the
// hashed body. The stream is not rewound afterward; callers that need the
// body again must buffer it themselves.
func HashPayload(body io.Reader) (string, error) {
	if body == nil {
		return EmptyStringSHA256, nil
	}

	h := sha256.New()
	buf := make([]byte, payloadChunkSize)
	for {
		n, err := body.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return "", fmt.Errorf("%w: %v", ErrStreamRead, err)
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

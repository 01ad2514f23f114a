// Package media normalizes inbound signature payloads so they can flow
// through the same upload path as natively submitted photo files.
package media

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// File is a decoded in-memory upload, shaped like a submitted form file.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// DecodingError marks malformed signature input. Handlers answer it with
// a client error before any upload or database work starts.
type DecodingError struct {
	Reason string
	Err    error
}

func (e *DecodingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode signature: %s: %v", e.Reason, e.Err)
	}
	return "decode signature: " + e.Reason
}

func (e *DecodingError) Unwrap() error { return e.Err }

// DecodeSignature converts a "data:<mime>;base64,<payload>" data URI into
// a PNG file with a generated name. The header before the first comma is
// not inspected beyond locating the separator; signature pads always
// produce PNG data.
func DecodeSignature(dataURI string) (*File, error) {
	_, encoded, found := strings.Cut(dataURI, ",")
	if !found {
		return nil, &DecodingError{Reason: "missing data URI separator"}
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, &DecodingError{Reason: "invalid base64 payload", Err: err}
	}
	return &File{
		Name:        fmt.Sprintf("signature_%s.png", uuid.NewString()[:8]),
		ContentType: "image/png",
		Data:        data,
	}, nil
}

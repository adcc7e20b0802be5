// ABOUTME: Base64 payload decoder
// ABOUTME: Decodes base64 speech payloads into raw PCM bytes
package decode

import (
	"encoding/base64"
	"fmt"
)

// ErrMalformedBase64 indicates the payload is not valid base64
var ErrMalformedBase64 = fmt.Errorf("malformed base64 payload")

// Base64 decodes a standard-alphabet base64 string into raw bytes
func Base64(payload string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBase64, err)
	}
	return data, nil
}

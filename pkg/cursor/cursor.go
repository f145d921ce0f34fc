// Package cursor implements the opaque pagination token used by list
// endpoints: a base64url-encoded JSON object holding the sort position.
package cursor

import (
	"encoding/base64"
	"encoding/json"
	"errors"
)

// ErrInvalidCursor is returned for tokens that do not decode to a cursor
// payload.
var ErrInvalidCursor = errors.New("invalid cursor")

// Encode serializes a cursor payload into an opaque token.
func Encode(payload map[string]interface{}) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// Decode parses an opaque token back into its payload. Any malformed token
// maps to ErrInvalidCursor; callers never see encoding details.
func Decode(token string) (map[string]interface{}, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		// Tolerate padded tokens from older clients.
		raw, err = base64.URLEncoding.DecodeString(token)
		if err != nil {
			return nil, ErrInvalidCursor
		}
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, ErrInvalidCursor
	}
	return payload, nil
}

package cursor

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	token, err := Encode(map[string]interface{}{
		"last_reserve_date": "2024-06-01T10:00:00Z",
		"id":                uint(42),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	payload, err := Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01T10:00:00Z", payload["last_reserve_date"])
	assert.Equal(t, float64(42), payload["id"])
}

func TestDecodePaddedToken(t *testing.T) {
	// Older clients send standard padded base64url
	padded := base64.URLEncoding.EncodeToString([]byte(`{"id":7}`))
	payload, err := Decode(padded)
	require.NoError(t, err)
	assert.Equal(t, float64(7), payload["id"])
}

func TestDecodeInvalid(t *testing.T) {
	for _, token := range []string{
		"not base64!!",
		base64.RawURLEncoding.EncodeToString([]byte("not json")),
		base64.RawURLEncoding.EncodeToString([]byte(`[1,2,3]`)),
	} {
		_, err := Decode(token)
		assert.ErrorIs(t, err, ErrInvalidCursor, "token %q", token)
	}
}

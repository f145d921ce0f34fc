package hashid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	codec, err := NewCodec("test-salt", 8)
	require.NoError(t, err)

	for _, id := range []uint{1, 42, 100000} {
		public, err := codec.Encode(id)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(public), 8)

		decoded, err := codec.Decode(public)
		require.NoError(t, err)
		assert.Equal(t, id, decoded)
	}
}

func TestSaltChangesEncoding(t *testing.T) {
	a, err := NewCodec("salt-a", 8)
	require.NoError(t, err)
	b, err := NewCodec("salt-b", 8)
	require.NoError(t, err)

	publicA, err := a.Encode(42)
	require.NoError(t, err)
	publicB, err := b.Encode(42)
	require.NoError(t, err)
	assert.NotEqual(t, publicA, publicB)

	// A token minted under one salt does not decode under another
	if decoded, err := b.Decode(publicA); err == nil {
		assert.NotEqual(t, uint(42), decoded)
	}
}

func TestDecodeInvalid(t *testing.T) {
	codec, err := NewCodec("test-salt", 8)
	require.NoError(t, err)

	for _, public := range []string{"", "!!!", "こんにちは"} {
		_, err := codec.Decode(public)
		assert.ErrorIs(t, err, ErrInvalidID, "input %q", public)
	}
}

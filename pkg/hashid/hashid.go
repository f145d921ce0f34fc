// Package hashid encodes internal numeric ids into short opaque public
// identifiers. Services work on internal ids only; encoding happens at the
// handler boundary.
package hashid

import (
	"errors"

	hashids "github.com/speps/go-hashids/v2"
)

// ErrInvalidID is returned for public ids that do not decode.
var ErrInvalidID = errors.New("invalid id")

// Codec is a bidirectional id obfuscation codec.
type Codec struct {
	h *hashids.HashID
}

// NewCodec builds a codec from the configured salt and minimum length.
func NewCodec(salt string, minLength int) (*Codec, error) {
	data := hashids.NewData()
	data.Salt = salt
	data.MinLength = minLength
	h, err := hashids.NewWithData(data)
	if err != nil {
		return nil, err
	}
	return &Codec{h: h}, nil
}

// Encode turns an internal id into its public form.
func (c *Codec) Encode(id uint) (string, error) {
	return c.h.Encode([]int{int(id)})
}

// Decode turns a public id back into the internal id.
func (c *Codec) Decode(publicID string) (uint, error) {
	numbers, err := c.h.DecodeWithError(publicID)
	if err != nil || len(numbers) == 0 || numbers[0] < 0 {
		return 0, ErrInvalidID
	}
	return uint(numbers[0]), nil
}

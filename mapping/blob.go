package mapping

import (
	"fmt"
	"sync"

	"github.com/sharedindex/filterscope/internal/serialize"
)

// Mapping blobs are shared between the service that owns the index and the
// services that validate filters against it. One codec is shared by all
// encode/decode calls; it is safe for concurrent use.
var (
	codecOnce sync.Once
	codec     *serialize.Codec
	codecErr  error
)

func sharedCodec() (*serialize.Codec, error) {
	codecOnce.Do(func() {
		codec, codecErr = serialize.NewCodec()
	})
	return codec, codecErr
}

// EncodeCompressed serializes a mapping to its JSON document form and
// compresses it with ZStandard.
func EncodeCompressed(m Mapping) ([]byte, error) {
	data, err := m.MarshalDocument()
	if err != nil {
		return nil, err
	}
	c, err := sharedCodec()
	if err != nil {
		return nil, err
	}
	return c.Compress(data), nil
}

// DecodeCompressed parses a mapping document, accepting both plain JSON and
// ZStandard-compressed JSON.
func DecodeCompressed(data []byte) (Mapping, error) {
	if serialize.IsCompressed(data) {
		c, err := sharedCodec()
		if err != nil {
			return nil, err
		}
		data, err = c.Decompress(data)
		if err != nil {
			return nil, fmt.Errorf("mapping: %w", err)
		}
	}
	return Parse(data)
}

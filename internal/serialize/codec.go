// Package serialize provides ZStandard compression for mapping blobs.
// Shared-index mapping documents grow with every registered type, so they
// move between services compressed.
package serialize

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// zstdMagic is the ZStandard frame magic number (little endian).
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// Codec compresses and decompresses mapping blobs.
// Create once and reuse; both directions are safe for concurrent use.
type Codec struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// NewCodec creates a reusable ZStandard codec at the default compression
// level. Caller must call Close when done to release resources.
func NewCodec() (*Codec, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("serialize: create encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		encoder.Close()
		return nil, fmt.Errorf("serialize: create decoder: %w", err)
	}
	return &Codec{encoder: encoder, decoder: decoder}, nil
}

// Compress compresses data into a ZStandard frame.
func (c *Codec) Compress(data []byte) []byte {
	if len(data) == 0 {
		return []byte{}
	}
	return c.encoder.EncodeAll(data, make([]byte, 0, len(data)/2))
}

// Decompress decompresses a ZStandard frame.
func (c *Codec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return []byte{}, nil
	}
	out, err := c.decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("serialize: decompress: %w", err)
	}
	return out, nil
}

// Close releases codec resources.
func (c *Codec) Close() error {
	c.decoder.Close()
	return c.encoder.Close()
}

// IsCompressed reports whether data starts with a ZStandard frame header.
// Loaders use this to accept both plain and compressed mapping documents.
func IsCompressed(data []byte) bool {
	return len(data) >= len(zstdMagic) && bytes.Equal(data[:len(zstdMagic)], zstdMagic)
}

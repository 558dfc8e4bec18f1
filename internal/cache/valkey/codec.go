package valkey

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// Codec compresses cached payloads before they leave the process
type Codec struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// NewCodec creates a zstd codec; EncodeAll and DecodeAll are safe for concurrent use
func NewCodec() (*Codec, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		_ = encoder.Close()
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}

	return &Codec{encoder: encoder, decoder: decoder}, nil
}

// Encode compresses value
func (c *Codec) Encode(value []byte) []byte {
	return c.encoder.EncodeAll(value, make([]byte, 0, len(value)))
}

// Decode decompresses a payload produced by Encode
func (c *Codec) Decode(payload []byte) ([]byte, error) {
	value, err := c.decoder.DecodeAll(payload, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress cached value: %w", err)
	}
	return value, nil
}

// Close releases the encoder and decoder
func (c *Codec) Close() {
	_ = c.encoder.Close()
	c.decoder.Close()
}

package archive

import (
	"fmt"
	"io"

	"github.com/DataDog/zstd"
)

// DefaultCompressionLevel is the zstd level used unless overridden.
const DefaultCompressionLevel = zstd.BestSpeed

type writerConfig struct {
	level int
}

// WriterOption configures Encode and Compress.
type WriterOption func(*writerConfig)

// WithCompressionLevel sets the zstd (or LZ4) compression level.
func WithCompressionLevel(level int) WriterOption {
	return func(c *writerConfig) {
		c.level = level
	}
}

func newWriterConfig(opts []WriterOption) *writerConfig {
	c := &writerConfig{level: DefaultCompressionLevel}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Encode compresses data and writes it to dst inside a "ZSTD" envelope.
// The payload is compressed in memory so the header can be written with
// both sizes known, without seeking back.
func Encode(dst io.Writer, data []byte, opts ...WriterOption) error {
	cfg := newWriterConfig(opts)

	compressed, err := zstd.CompressLevel(nil, data, cfg.level)
	if err != nil {
		return fmt.Errorf("compress: %w", err)
	}

	header := NewHeader(uint64(len(data)), uint64(len(compressed)))
	headerBytes, err := header.MarshalBinary()
	if err != nil {
		return fmt.Errorf("marshal header: %w", err)
	}
	if _, err := dst.Write(headerBytes); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if _, err := dst.Write(compressed); err != nil {
		return fmt.Errorf("write payload: %w", err)
	}
	return nil
}

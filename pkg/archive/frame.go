package archive

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Frame magics, as stored little-endian at the start of each stream.
var (
	zstdFrameMagic = [4]byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4FrameMagic  = [4]byte{0x04, 0x22, 0x4d, 0x18}
)

func newZstdFrameReader(r io.Reader) (io.ReadCloser, error) {
	d, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1), zstd.WithDecoderLowmem(true))
	if err != nil {
		return nil, fmt.Errorf("open zstd frame: %w", err)
	}
	return d.IOReadCloser(), nil
}

func newLZ4FrameReader(r io.Reader) io.ReadCloser {
	return io.NopCloser(lz4.NewReader(r))
}

var lz4Levels = []lz4.CompressionLevel{
	lz4.Fast, lz4.Level1, lz4.Level2, lz4.Level3, lz4.Level4,
	lz4.Level5, lz4.Level6, lz4.Level7, lz4.Level8, lz4.Level9,
}

func writeZstdFrame(dst io.Writer, data []byte, level int) error {
	enc, err := zstd.NewWriter(dst, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)))
	if err != nil {
		return fmt.Errorf("create zstd encoder: %w", err)
	}
	if _, err := enc.Write(data); err != nil {
		enc.Close()
		return fmt.Errorf("write zstd frame: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("close zstd frame: %w", err)
	}
	return nil
}

func writeLZ4Frame(dst io.Writer, data []byte, level int) error {
	zw := lz4.NewWriter(dst)
	lvl := lz4.Fast
	if level > 0 && level < len(lz4Levels) {
		lvl = lz4Levels[level]
	}
	if err := zw.Apply(lz4.CompressionLevelOption(lvl)); err != nil {
		return fmt.Errorf("configure lz4: %w", err)
	}
	if _, err := zw.Write(data); err != nil {
		return fmt.Errorf("write lz4 frame: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("close lz4 frame: %w", err)
	}
	return nil
}

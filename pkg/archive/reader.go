package archive

import (
	"fmt"
	"io"
	"math"

	"github.com/DataDog/zstd"
)

// Reader decompresses the payload of a "ZSTD" envelope.
type Reader struct {
	header  Header
	zReader io.ReadCloser
	payload io.Reader
	read    uint64
}

// NewReader reads and validates the envelope header from r and returns a
// reader over the decompressed payload. Reads stop at the declared length.
func NewReader(r io.Reader) (*Reader, error) {
	var buf [HeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	reader := &Reader{}
	if err := reader.header.UnmarshalBinary(buf[:]); err != nil {
		return nil, fmt.Errorf("parse header: %w", err)
	}

	compressed := io.LimitReader(r, clampInt64(reader.header.CompressedLength))
	reader.zReader = zstd.NewReader(compressed)
	reader.payload = io.LimitReader(reader.zReader, clampInt64(reader.header.Length))
	return reader, nil
}

// Header returns the envelope header.
func (r *Reader) Header() Header {
	return r.header
}

// Read reads decompressed payload bytes. Reaching EOF before the declared
// length is reported as io.ErrUnexpectedEOF.
func (r *Reader) Read(p []byte) (int, error) {
	n, err := r.payload.Read(p)
	r.read += uint64(n)
	if err == io.EOF && r.read < r.header.Length {
		return n, fmt.Errorf("%w: payload ended at %d of %d bytes", io.ErrUnexpectedEOF, r.read, r.header.Length)
	}
	return n, err
}

// Close releases the decompressor.
func (r *Reader) Close() error {
	return r.zReader.Close()
}

// ReadAll returns the whole decompressed payload of an envelope.
func ReadAll(r io.Reader) ([]byte, error) {
	reader, err := NewReader(r)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	// The reader stops at the declared length, so the buffer only grows
	// as far as the payload actually decompresses.
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSizeMismatch, err)
	}
	if uint64(len(data)) != reader.header.Length {
		return nil, fmt.Errorf("%w: got %d bytes, expected %d", ErrSizeMismatch, len(data), reader.header.Length)
	}
	return data, nil
}

func clampInt64(n uint64) int64 {
	if n > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(n)
}

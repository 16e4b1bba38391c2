package archive

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// Kind is the wrapping detected around a payload.
type Kind int

const (
	KindRaw      Kind = iota // no wrapping
	KindEnvelope             // "ZSTD" envelope header + zstd stream
	KindZstd                 // bare zstd frame
	KindLZ4                  // LZ4 frame
)

func (k Kind) String() string {
	switch k {
	case KindRaw:
		return "raw"
	case KindEnvelope:
		return "envelope"
	case KindZstd:
		return "zstd"
	case KindLZ4:
		return "lz4"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a name printed by Kind.String back to a Kind.
func ParseKind(name string) (Kind, error) {
	for k := KindRaw; k <= KindLZ4; k++ {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown archive kind %q", name)
}

// Detect classifies a stream from its first four bytes.
func Detect(prefix []byte) Kind {
	if len(prefix) < 4 {
		return KindRaw
	}
	var magic [4]byte
	copy(magic[:], prefix)
	switch magic {
	case Magic:
		return KindEnvelope
	case zstdFrameMagic:
		return KindZstd
	case lz4FrameMagic:
		return KindLZ4
	}
	return KindRaw
}

// Source reads an unwrapped payload.
type Source struct {
	Kind Kind
	r    io.Reader
	c    io.Closer
}

// Read reads payload bytes.
func (s *Source) Read(p []byte) (int, error) {
	return s.r.Read(p)
}

// Close releases any decompressor. It does not close the underlying reader.
func (s *Source) Close() error {
	if s.c == nil {
		return nil
	}
	return s.c.Close()
}

// Open sniffs r and returns a Source over its payload. Streams that carry
// no recognised wrapping are passed through unchanged.
func Open(r io.Reader) (*Source, error) {
	br := bufio.NewReader(r)
	prefix, err := br.Peek(4)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("peek: %w", err)
	}

	kind := Detect(prefix)
	switch kind {
	case KindEnvelope:
		zr, err := NewReader(br)
		if err != nil {
			return nil, err
		}
		return &Source{Kind: kind, r: zr, c: zr}, nil
	case KindZstd:
		zr, err := newZstdFrameReader(br)
		if err != nil {
			return nil, err
		}
		return &Source{Kind: kind, r: zr, c: zr}, nil
	case KindLZ4:
		zr := newLZ4FrameReader(br)
		return &Source{Kind: kind, r: zr, c: zr}, nil
	}
	return &Source{Kind: KindRaw, r: br}, nil
}

// Compress writes data to dst wrapped as kind. KindRaw copies data as is.
func Compress(dst io.Writer, data []byte, kind Kind, opts ...WriterOption) error {
	cfg := newWriterConfig(opts)
	switch kind {
	case KindRaw:
		if _, err := dst.Write(data); err != nil {
			return fmt.Errorf("write payload: %w", err)
		}
		return nil
	case KindEnvelope:
		return Encode(dst, data, opts...)
	case KindZstd:
		return writeZstdFrame(dst, data, cfg.level)
	case KindLZ4:
		return writeLZ4Frame(dst, data, cfg.level)
	}
	return fmt.Errorf("compress: unsupported kind %s", kind)
}

// Package archive unwraps compressed DDS payloads.
//
// Texture resources are shipped either raw, inside the 24-byte "ZSTD"
// envelope used by Echo VR packages, or as a bare zstd or LZ4 frame.
// Open sniffs the leading bytes and returns a reader over the payload.
package archive

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Magic identifies the envelope header.
var Magic = [4]byte{'Z', 'S', 'T', 'D'}

// HeaderSize is the encoded size of an envelope header.
const HeaderSize = 24

// headerLength is the value of the envelope's own length field: the two
// size fields that follow it.
const headerLength = 16

var (
	// ErrInvalidHeader is returned for a malformed envelope header.
	ErrInvalidHeader = errors.New("archive: invalid envelope header")
	// ErrSizeMismatch is returned when a payload does not match its declared size.
	ErrSizeMismatch = errors.New("archive: payload size mismatch")
)

// Header is the envelope placed in front of a zstd compressed payload.
type Header struct {
	Magic            [4]byte
	HeaderLength     uint32
	Length           uint64 // payload size after decompression
	CompressedLength uint64 // bytes following the header
}

// NewHeader returns an envelope header for a payload of the given sizes.
func NewHeader(length, compressedLength uint64) *Header {
	return &Header{
		Magic:            Magic,
		HeaderLength:     headerLength,
		Length:           length,
		CompressedLength: compressedLength,
	}
}

// Validate checks the magic, the header length and that both sizes are set.
func (h *Header) Validate() error {
	switch {
	case h.Magic != Magic:
		return fmt.Errorf("%w: magic %q", ErrInvalidHeader, h.Magic[:])
	case h.HeaderLength != headerLength:
		return fmt.Errorf("%w: header length %d, expected %d", ErrInvalidHeader, h.HeaderLength, headerLength)
	case h.Length == 0:
		return fmt.Errorf("%w: empty payload", ErrInvalidHeader)
	case h.CompressedLength == 0:
		return fmt.Errorf("%w: empty compressed payload", ErrInvalidHeader)
	}
	return nil
}

// MarshalBinary encodes the header.
func (h *Header) MarshalBinary() ([]byte, error) {
	buf := make([]byte, HeaderSize)
	h.EncodeTo(buf)
	return buf, nil
}

// EncodeTo writes the header to buf, which must hold HeaderSize bytes.
func (h *Header) EncodeTo(buf []byte) {
	copy(buf[0:4], h.Magic[:])
	binary.LittleEndian.PutUint32(buf[4:8], h.HeaderLength)
	binary.LittleEndian.PutUint64(buf[8:16], h.Length)
	binary.LittleEndian.PutUint64(buf[16:24], h.CompressedLength)
}

// UnmarshalBinary decodes and validates the header.
func (h *Header) UnmarshalBinary(data []byte) error {
	if len(data) < HeaderSize {
		return fmt.Errorf("%w: need %d bytes, got %d", ErrInvalidHeader, HeaderSize, len(data))
	}
	h.DecodeFrom(data)
	return h.Validate()
}

// DecodeFrom reads the header from buf without validating it.
func (h *Header) DecodeFrom(buf []byte) {
	copy(h.Magic[:], buf[0:4])
	h.HeaderLength = binary.LittleEndian.Uint32(buf[4:8])
	h.Length = binary.LittleEndian.Uint64(buf[8:16])
	h.CompressedLength = binary.LittleEndian.Uint64(buf[16:24])
}

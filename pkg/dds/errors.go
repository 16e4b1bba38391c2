package dds

import (
	"errors"

	"github.com/goopsie/ddsfile/pkg/flip"
)

// Structural errors: the stream is not a well formed DDS container.
var (
	ErrNotDDS            = errors.New("dds: not a DDS file")
	ErrInvalidHeader     = errors.New("dds: invalid header")
	ErrMissingDimensions = errors.New("dds: missing dimensions")
	ErrTruncated         = errors.New("dds: truncated surface data")
)

// Semantic errors: the container is well formed but cannot be decoded.
var (
	ErrInvalidCompressedDimensions = errors.New("dds: invalid compressed dimensions")
	ErrUnknownFormat               = errors.New("dds: unknown format")
)

// IsStructural reports whether err was caused by a malformed container.
func IsStructural(err error) bool {
	return errors.Is(err, ErrNotDDS) ||
		errors.Is(err, ErrInvalidHeader) ||
		errors.Is(err, ErrMissingDimensions) ||
		errors.Is(err, ErrTruncated)
}

// IsSemantic reports whether err was caused by content the decoder
// cannot handle.
func IsSemantic(err error) bool {
	return errors.Is(err, ErrInvalidCompressedDimensions) ||
		errors.Is(err, ErrUnknownFormat) ||
		errors.Is(err, flip.ErrUnsupportedFormat)
}

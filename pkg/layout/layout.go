// Package layout computes the byte size of one DDS surface.
//
// Sizes fall into three families: block compressed data stored as 4x4
// blocks, the 4:2:2 packed legacy codes that share a 32-bit word between
// two pixels, and plain uncompressed scanlines. Other packed video layouts
// are not computed; the value declared in the file header is used as is.
package layout

import (
	"errors"
	"fmt"
	"math"

	"github.com/goopsie/ddsfile/pkg/format"
)

// ErrOverflow is returned when a surface size does not fit in an int.
var ErrOverflow = errors.New("layout: surface size overflows")

// Mul multiplies two sizes, failing with ErrOverflow instead of wrapping.
func Mul(a, b int) (int, error) {
	if a < 0 || b < 0 {
		return 0, fmt.Errorf("%w: negative operand %d x %d", ErrOverflow, a, b)
	}
	if a != 0 && b > math.MaxInt/a {
		return 0, fmt.Errorf("%w: %d x %d", ErrOverflow, a, b)
	}
	return a * b, nil
}

// BlockSize returns the bytes per 4x4 block for a block compressed format
// with the given nominal bits per pixel (8 for BC1/BC4, 16 otherwise).
func BlockSize(bitsPerPixel int) int {
	return bitsPerPixel * 2
}

// Blocks returns the number of 4x4 blocks spanning dimension.
func Blocks(dimension int) int {
	return max(1, (dimension+3)/4)
}

// Pitch returns the bytes per scanline, or per row of blocks, for a
// surface whose width is dimension. declared is the header's pitch or
// linear size and is returned unchanged for packed video formats.
func Pitch(dimension int, pair format.Pair, declared int) (int, error) {
	bpp, err := pair.BitsPerPixel()
	if err != nil {
		return 0, fmt.Errorf("compute pitch: %w", err)
	}

	if dimension < 0 {
		return 0, fmt.Errorf("%w: negative dimension %d", ErrOverflow, dimension)
	}

	switch {
	case pair.IsBlockCompressed():
		return Mul(Blocks(dimension), BlockSize(bpp))
	case pair.Legacy.IsPacked():
		return Mul(max(1, (dimension+1)>>1), 4)
	case pair.Modern.IsPacked():
		return declared, nil
	default:
		bits, err := Mul(dimension, bpp)
		if err != nil || bits > math.MaxInt-7 {
			return 0, fmt.Errorf("%w: %d pixels at %d bits", ErrOverflow, dimension, bpp)
		}
		return max(1, (bits+7)/8), nil
	}
}

// Rows returns the number of pitch-sized rows making up a surface of the
// given height: block rows for block compressed data, scanlines otherwise.
func Rows(height int, pair format.Pair) int {
	if pair.IsBlockCompressed() {
		return Blocks(height)
	}
	return height
}

// LinearSize returns the total bytes of one surface of width x height.
// Sizes that do not fit in an int fail with ErrOverflow.
func LinearSize(width, height int, pair format.Pair, declared int) (int, error) {
	pitch, err := Pitch(width, pair, declared)
	if err != nil {
		return 0, fmt.Errorf("compute linear size: %w", err)
	}
	size, err := Mul(pitch, Rows(height, pair))
	if err != nil {
		return 0, fmt.Errorf("compute linear size %dx%d: %w", width, height, err)
	}
	return size, nil
}

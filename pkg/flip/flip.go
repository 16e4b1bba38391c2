// Package flip mirrors DDS surface data vertically in place.
//
// Uncompressed and packed data is flipped by swapping whole scanlines;
// packed video layouts take their scanline length from the buffer.
// Block compressed data is flipped by reversing the order of block rows
// and mirroring the pixel rows stored inside every block. BC6H and BC7
// blocks cannot be mirrored this way and are rejected.
//
// When the block row count is odd, the blocks of the middle row are
// mirrored as well. Flippers that only swap row pairs leave that row
// upside down, so 4x4 and 12x12 surfaces differ from their output.
package flip

import (
	"errors"
	"fmt"

	"github.com/goopsie/ddsfile/pkg/format"
	"github.com/goopsie/ddsfile/pkg/layout"
)

var (
	// ErrUnsupportedFormat is returned for block formats without a flip.
	ErrUnsupportedFormat = errors.New("flip: unsupported format for flip")
	// ErrShortBuffer is returned when the buffer is smaller than the
	// surface it is said to hold.
	ErrShortBuffer = errors.New("flip: buffer too small for surface")
)

// blockFunc mirrors the pixel rows of one block.
type blockFunc func([]byte)

// blockFlipper returns the per-block transform for a modern block format.
func blockFlipper(f format.DXGIFormat) (blockFunc, error) {
	switch f {
	case format.DXGIFormatBC1Typeless, format.DXGIFormatBC1UNorm, format.DXGIFormatBC1UNormSRGB:
		return bc1Block, nil
	case format.DXGIFormatBC2Typeless, format.DXGIFormatBC2UNorm, format.DXGIFormatBC2UNormSRGB:
		return bc2Block, nil
	case format.DXGIFormatBC3Typeless, format.DXGIFormatBC3UNorm, format.DXGIFormatBC3UNormSRGB:
		return bc3Block, nil
	case format.DXGIFormatBC4Typeless, format.DXGIFormatBC4UNorm, format.DXGIFormatBC4SNorm:
		return bc4Block, nil
	case format.DXGIFormatBC5Typeless, format.DXGIFormatBC5UNorm, format.DXGIFormatBC5SNorm:
		return bc5Block, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
}

// Block mirrors the pixel rows of a single 4x4 block of the given modern
// format in place.
func Block(block []byte, f format.DXGIFormat) error {
	flipBlock, err := blockFlipper(f)
	if err != nil {
		return err
	}
	size := 16
	if bpp, _ := f.BitsPerPixel(); bpp == 4 {
		size = 8
	}
	if len(block) < size {
		return fmt.Errorf("%w: block needs %d bytes, got %d", ErrShortBuffer, size, len(block))
	}
	flipBlock(block[:size])
	return nil
}

// Surface flips the rows of one surface of width x height in place and
// returns buf. Block compressed surfaces no taller or wider than two
// pixels are left untouched.
func Surface(buf []byte, width, height int, pair format.Pair) ([]byte, error) {
	if pair.IsBlockCompressed() {
		return blocks(buf, width, height, pair)
	}
	return rows(buf, width, height, pair)
}

func blocks(buf []byte, width, height int, pair format.Pair) ([]byte, error) {
	if width <= 2 || height <= 2 {
		return buf, nil
	}

	flipBlock, err := blockFlipper(pair.Effective())
	if err != nil {
		return nil, err
	}
	bpp, err := pair.BitsPerPixel()
	if err != nil {
		return nil, fmt.Errorf("flip %s: %w", pair, err)
	}

	blockSize := layout.BlockSize(bpp)
	perRow := layout.Blocks(width)
	perCol := layout.Blocks(height)
	rowSize := perRow * blockSize
	if len(buf) < rowSize*perCol {
		return nil, fmt.Errorf("%w: need %d, got %d", ErrShortBuffer, rowSize*perCol, len(buf))
	}

	tmp := make([]byte, blockSize)
	for i := 0; i < perCol/2; i++ {
		top := i * rowSize
		bottom := (perCol - i - 1) * rowSize
		for x := 0; x < perRow; x++ {
			a := buf[top+x*blockSize : top+(x+1)*blockSize]
			b := buf[bottom+x*blockSize : bottom+(x+1)*blockSize]
			flipBlock(a)
			flipBlock(b)
			copy(tmp, a)
			copy(a, b)
			copy(b, tmp)
		}
	}

	// An odd block row count leaves a middle row that only needs its
	// blocks mirrored.
	if perCol%2 == 1 {
		mid := (perCol / 2) * rowSize
		for x := 0; x < perRow; x++ {
			flipBlock(buf[mid+x*blockSize : mid+(x+1)*blockSize])
		}
	}
	return buf, nil
}

func rows(buf []byte, width, height int, pair format.Pair) ([]byte, error) {
	bpp, err := pair.BitsPerPixel()
	if err != nil {
		return nil, fmt.Errorf("flip %s: %w", pair, err)
	}

	if height < 2 {
		return buf, nil
	}
	rowSize := width * (bpp / 8)
	if pair.Legacy.IsPacked() || pair.Modern.IsPacked() {
		// Packed video rows follow the stored pitch, not bits per pixel.
		rowSize = len(buf) / height
	}
	if rowSize == 0 {
		return buf, nil
	}
	if len(buf) < rowSize*height {
		return nil, fmt.Errorf("%w: need %d, got %d", ErrShortBuffer, rowSize*height, len(buf))
	}

	tmp := make([]byte, rowSize)
	for i := 0; i < height/2; i++ {
		top := buf[i*rowSize : (i+1)*rowSize]
		bottom := buf[(height-i-1)*rowSize : (height-i)*rowSize]
		copy(tmp, top)
		copy(top, bottom)
		copy(bottom, tmp)
	}
	return buf, nil
}

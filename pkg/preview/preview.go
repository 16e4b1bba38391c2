// Package preview converts decoded DDS surfaces into images for viewing.
//
// BC1 to BC3 blocks are decoded with github.com/mauserzjeh/dxt; BC4, BC5
// and the common uncompressed layouts are converted here. Only the first
// slice of a volume surface is converted.
package preview

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/mauserzjeh/dxt"

	"github.com/goopsie/ddsfile/pkg/dds"
	"github.com/goopsie/ddsfile/pkg/format"
	"github.com/goopsie/ddsfile/pkg/layout"
)

// ErrUnsupported is returned for formats without a converter.
var ErrUnsupported = errors.New("preview: unsupported format")

// ErrTruncated is returned when the data is smaller than the surface.
var ErrTruncated = errors.New("preview: data truncated")

// Surface converts one surface of a file with the given format.
func Surface(s *dds.Surface, pair format.Pair) (*image.NRGBA, error) {
	return Decode(s.Data, s.Width, s.Height, pair)
}

// Decode converts width x height pixels of data in the given format.
func Decode(data []byte, width, height int, pair format.Pair) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("preview: empty surface %dx%d", width, height)
	}

	switch pair.Legacy {
	case format.D3DFormatR8G8B8:
		return decodeBGR(data, width, height)
	case format.D3DFormatX8B8G8R8:
		return decodeRGBA(data, width, height, true)
	}

	switch f := pair.Effective(); f {
	case format.DXGIFormatBC1Typeless, format.DXGIFormatBC1UNorm, format.DXGIFormatBC1UNormSRGB:
		return decodeDXT(dxt.DecodeDXT1, data, width, height)
	case format.DXGIFormatBC2Typeless, format.DXGIFormatBC2UNorm, format.DXGIFormatBC2UNormSRGB:
		return decodeDXT(dxt.DecodeDXT3, data, width, height)
	case format.DXGIFormatBC3Typeless, format.DXGIFormatBC3UNorm, format.DXGIFormatBC3UNormSRGB:
		return decodeDXT(dxt.DecodeDXT5, data, width, height)
	case format.DXGIFormatBC4Typeless, format.DXGIFormatBC4UNorm:
		return decodeBC4(data, width, height)
	case format.DXGIFormatBC5Typeless, format.DXGIFormatBC5UNorm:
		return decodeBC5(data, width, height)

	case format.DXGIFormatR8G8B8A8Typeless, format.DXGIFormatR8G8B8A8UNorm, format.DXGIFormatR8G8B8A8UNormSRGB:
		return decodeRGBA(data, width, height, false)
	case format.DXGIFormatB8G8R8A8Typeless, format.DXGIFormatB8G8R8A8UNorm, format.DXGIFormatB8G8R8A8UNormSRGB:
		return decodeBGRA(data, width, height, false)
	case format.DXGIFormatB8G8R8X8Typeless, format.DXGIFormatB8G8R8X8UNorm, format.DXGIFormatB8G8R8X8UNormSRGB:
		return decodeBGRA(data, width, height, true)
	case format.DXGIFormatB5G6R5UNorm:
		return decodeB5G6R5(data, width, height)
	case format.DXGIFormatR8Typeless, format.DXGIFormatR8UNorm, format.DXGIFormatA8UNorm:
		return decodeR8(data, width, height, f == format.DXGIFormatA8UNorm)
	case format.DXGIFormatR11G11B10Float:
		return decodeR11G11B10Float(data, width, height)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, pair)
}

type dxtFunc func(data []byte, width, height uint) ([]byte, error)

// decodeDXT decodes whole blocks and crops to the surface, so mip levels
// smaller than one block decode too.
func decodeDXT(decode dxtFunc, data []byte, width, height int) (*image.NRGBA, error) {
	paddedW := layout.Blocks(width) * 4
	paddedH := layout.Blocks(height) * 4

	rgba, err := decode(data, uint(paddedW), uint(paddedH))
	if err != nil {
		return nil, fmt.Errorf("decode blocks: %w", err)
	}
	if len(rgba) < paddedW*paddedH*4 {
		return nil, fmt.Errorf("%w: decoded %d bytes for %dx%d", ErrTruncated, len(rgba), paddedW, paddedH)
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		copy(img.Pix[y*img.Stride:y*img.Stride+width*4], rgba[y*paddedW*4:])
	}
	return img, nil
}

// bc4Channel decodes the 16 values of one 8-byte interpolated block.
func bc4Channel(block []byte) [16]uint8 {
	a0, a1 := block[0], block[1]

	var palette [8]uint8
	palette[0], palette[1] = a0, a1
	if a0 > a1 {
		for i := 2; i < 8; i++ {
			palette[i] = uint8((int(a0)*(8-i) + int(a1)*(i-1)) / 7)
		}
	} else {
		for i := 2; i < 6; i++ {
			palette[i] = uint8((int(a0)*(6-i) + int(a1)*(i-1)) / 5)
		}
		palette[6], palette[7] = 0, 255
	}

	var indices uint64
	for i := 0; i < 6; i++ {
		indices |= uint64(block[2+i]) << (8 * i)
	}

	var out [16]uint8
	for i := range out {
		out[i] = palette[(indices>>(3*i))&7]
	}
	return out
}

func decodeBC4(data []byte, width, height int) (*image.NRGBA, error) {
	blocksW, blocksH := layout.Blocks(width), layout.Blocks(height)
	if len(data) < blocksW*blocksH*8 {
		return nil, ErrTruncated
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	offset := 0
	for by := 0; by < blocksH; by++ {
		for bx := 0; bx < blocksW; bx++ {
			red := bc4Channel(data[offset : offset+8])
			offset += 8
			for i, v := range red {
				x, y := bx*4+i%4, by*4+i/4
				if x >= width || y >= height {
					continue
				}
				p := img.PixOffset(x, y)
				img.Pix[p], img.Pix[p+1], img.Pix[p+2], img.Pix[p+3] = v, v, v, 255
			}
		}
	}
	return img, nil
}

// decodeBC5 treats the two channels as a tangent space normal and
// reconstructs Z.
func decodeBC5(data []byte, width, height int) (*image.NRGBA, error) {
	blocksW, blocksH := layout.Blocks(width), layout.Blocks(height)
	if len(data) < blocksW*blocksH*16 {
		return nil, ErrTruncated
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	offset := 0
	for by := 0; by < blocksH; by++ {
		for bx := 0; bx < blocksW; bx++ {
			red := bc4Channel(data[offset : offset+8])
			green := bc4Channel(data[offset+8 : offset+16])
			offset += 16
			for i := range red {
				x, y := bx*4+i%4, by*4+i/4
				if x >= width || y >= height {
					continue
				}
				nx := float64(red[i])/127.5 - 1
				ny := float64(green[i])/127.5 - 1
				nz := math.Sqrt(math.Max(0, 1-nx*nx-ny*ny))
				p := img.PixOffset(x, y)
				img.Pix[p] = red[i]
				img.Pix[p+1] = green[i]
				img.Pix[p+2] = uint8(math.Min(255, (nz+1)*127.5))
				img.Pix[p+3] = 255
			}
		}
	}
	return img, nil
}

func decodeR8(data []byte, width, height int, alpha bool) (*image.NRGBA, error) {
	if len(data) < width*height {
		return nil, ErrTruncated
	}
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < width*height; i++ {
		v := data[i]
		p := i * 4
		if alpha {
			img.Pix[p], img.Pix[p+1], img.Pix[p+2], img.Pix[p+3] = 255, 255, 255, v
		} else {
			img.Pix[p], img.Pix[p+1], img.Pix[p+2], img.Pix[p+3] = v, v, v, 255
		}
	}
	return img, nil
}

func decodeRGBA(data []byte, width, height int, opaque bool) (*image.NRGBA, error) {
	n := width * height * 4
	if len(data) < n {
		return nil, ErrTruncated
	}
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	copy(img.Pix, data[:n])
	if opaque {
		for p := 3; p < n; p += 4 {
			img.Pix[p] = 255
		}
	}
	return img, nil
}

func decodeBGRA(data []byte, width, height int, opaque bool) (*image.NRGBA, error) {
	n := width * height * 4
	if len(data) < n {
		return nil, ErrTruncated
	}
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for p := 0; p < n; p += 4 {
		img.Pix[p] = data[p+2]
		img.Pix[p+1] = data[p+1]
		img.Pix[p+2] = data[p]
		img.Pix[p+3] = data[p+3]
		if opaque {
			img.Pix[p+3] = 255
		}
	}
	return img, nil
}

func decodeBGR(data []byte, width, height int) (*image.NRGBA, error) {
	if len(data) < width*height*3 {
		return nil, ErrTruncated
	}
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < width*height; i++ {
		s, p := i*3, i*4
		img.Pix[p], img.Pix[p+1], img.Pix[p+2], img.Pix[p+3] = data[s+2], data[s+1], data[s], 255
	}
	return img, nil
}

func decodeB5G6R5(data []byte, width, height int) (*image.NRGBA, error) {
	if len(data) < width*height*2 {
		return nil, ErrTruncated
	}
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < width*height; i++ {
		c := uint16(data[i*2]) | uint16(data[i*2+1])<<8
		r5, g6, b5 := (c>>11)&0x1f, (c>>5)&0x3f, c&0x1f
		p := i * 4
		img.Pix[p] = uint8(r5<<3 | r5>>2)
		img.Pix[p+1] = uint8(g6<<2 | g6>>4)
		img.Pix[p+2] = uint8(b5<<3 | b5>>2)
		img.Pix[p+3] = 255
	}
	return img, nil
}

func decodeR11G11B10Float(data []byte, width, height int) (*image.NRGBA, error) {
	if len(data) < width*height*4 {
		return nil, ErrTruncated
	}
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < width*height; i++ {
		o := i * 4
		packed := uint32(data[o]) | uint32(data[o+1])<<8 | uint32(data[o+2])<<16 | uint32(data[o+3])<<24

		img.Pix[o] = unitToByte(f11ToF32(packed & 0x7ff))
		img.Pix[o+1] = unitToByte(f11ToF32((packed >> 11) & 0x7ff))
		img.Pix[o+2] = unitToByte(f10ToF32((packed >> 22) & 0x3ff))
		img.Pix[o+3] = 255
	}
	return img, nil
}

func unitToByte(v float32) uint8 {
	return uint8(math.Min(255, math.Max(0, float64(v)*255)))
}

// f11ToF32 expands an unsigned 11-bit float (5-bit exponent, 6-bit mantissa).
func f11ToF32(u uint32) float32 {
	return smallFloat(u>>6&0x1f, u&0x3f, 64)
}

// f10ToF32 expands an unsigned 10-bit float (5-bit exponent, 5-bit mantissa).
func f10ToF32(u uint32) float32 {
	return smallFloat(u>>5&0x1f, u&0x1f, 32)
}

func smallFloat(exponent, mantissa uint32, scale float32) float32 {
	switch exponent {
	case 0:
		return float32(mantissa) / scale / 16384
	case 31:
		return 65504
	}
	return float32(math.Ldexp(1, int(exponent)-15)) * (1 + float32(mantissa)/scale)
}

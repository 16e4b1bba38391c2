// Package dds decodes DirectDraw Surface texture containers into
// addressable in-memory surfaces.
//
// A file is a 4-byte magic, a 124-byte header, an optional 20-byte DX10
// header and the raw surface data. Decode validates the headers, resolves
// the pixel format, walks the flat, cube-map or volume layout and returns
// one Texture per array element.
package dds

import (
	"encoding/binary"
	"fmt"

	"github.com/goopsie/ddsfile/pkg/format"
)

// Magic is "DDS " read as a little-endian uint32.
const Magic uint32 = 0x20534444

// HeaderSize is the fixed size of the primary header, excluding the magic.
const HeaderSize = 124

// Flags marks which header fields hold valid data (DDSD_*).
type Flags uint32

const (
	FlagCaps        Flags = 0x00000001
	FlagHeight      Flags = 0x00000002
	FlagWidth       Flags = 0x00000004
	FlagPitch       Flags = 0x00000008
	FlagPixelFormat Flags = 0x00001000
	FlagMipMapCount Flags = 0x00020000
	FlagLinearSize  Flags = 0x00080000
	FlagDepth       Flags = 0x00800000
)

// Has reports whether every bit of mask is set.
func (f Flags) Has(mask Flags) bool { return f&mask == mask }

// Caps is the primary capability bitmask (DDSCAPS_*).
type Caps uint32

const (
	CapsComplex Caps = 0x00000008
	CapsTexture Caps = 0x00001000
	CapsMipmap  Caps = 0x00400000
)

// Has reports whether every bit of mask is set.
func (c Caps) Has(mask Caps) bool { return c&mask == mask }

// Caps2 is the secondary capability bitmask carrying cube-map and volume markers.
type Caps2 uint32

const (
	Caps2Cubemap          Caps2 = 0x00000200
	Caps2CubemapPositiveX Caps2 = 0x00000400
	Caps2CubemapNegativeX Caps2 = 0x00000800
	Caps2CubemapPositiveY Caps2 = 0x00001000
	Caps2CubemapNegativeY Caps2 = 0x00002000
	Caps2CubemapPositiveZ Caps2 = 0x00004000
	Caps2CubemapNegativeZ Caps2 = 0x00008000
	Caps2Volume           Caps2 = 0x00200000

	Caps2CubemapAllFaces = Caps2CubemapPositiveX | Caps2CubemapNegativeX |
		Caps2CubemapPositiveY | Caps2CubemapNegativeY |
		Caps2CubemapPositiveZ | Caps2CubemapNegativeZ
)

// Has reports whether every bit of mask is set.
func (c Caps2) Has(mask Caps2) bool { return c&mask == mask }

// Header is the primary DDS header (DDS_HEADER).
type Header struct {
	Size              uint32
	Flags             Flags
	Height            uint32
	Width             uint32
	PitchOrLinearSize uint32
	Depth             uint32
	MipMapCount       uint32
	Reserved1         [11]uint32
	PixelFormat       format.PixelFormat
	Caps              Caps
	Caps2             Caps2
	Caps3             uint32
	Caps4             uint32
	Reserved2         uint32
}

// Validate checks the size tags and that pitch and linear size are not
// both declared. In strict mode the CAPS and PIXELFORMAT flags and the
// TEXTURE capability are required as well.
func (h *Header) Validate(strict bool) error {
	if h.Size != HeaderSize {
		return fmt.Errorf("%w: size %d, expected %d", ErrInvalidHeader, h.Size, HeaderSize)
	}
	if h.PixelFormat.Size != format.PixelFormatSize {
		return fmt.Errorf("%w: pixel format size %d, expected %d",
			ErrInvalidHeader, h.PixelFormat.Size, format.PixelFormatSize)
	}
	if h.Flags.Has(FlagPitch | FlagLinearSize) {
		return fmt.Errorf("%w: both pitch and linear size flags set", ErrInvalidHeader)
	}
	if strict {
		if !h.Flags.Has(FlagCaps | FlagPixelFormat) {
			return fmt.Errorf("%w: caps or pixel format flag missing", ErrInvalidHeader)
		}
		if !h.Caps.Has(CapsTexture) {
			return fmt.Errorf("%w: texture capability missing", ErrInvalidHeader)
		}
	}
	return nil
}

// HasDimensions reports whether both the width and height flags are set.
func (h *Header) HasDimensions() bool {
	return h.Flags.Has(FlagWidth | FlagHeight)
}

// HasMipmaps reports whether the header declares a mip chain.
func (h *Header) HasMipmaps() bool {
	return h.Caps.Has(CapsMipmap) && h.Flags.Has(FlagMipMapCount)
}

// IsCubeMap reports whether the cube-map capability is set.
func (h *Header) IsCubeMap() bool {
	return h.Caps2.Has(Caps2Cubemap)
}

// IsVolume reports whether the volume capability is set.
func (h *Header) IsVolume() bool {
	return h.Caps2.Has(Caps2Volume)
}

// MarshalBinary encodes the header, without the magic.
func (h *Header) MarshalBinary() ([]byte, error) {
	buf := make([]byte, HeaderSize)
	h.EncodeTo(buf)
	return buf, nil
}

// EncodeTo writes the header to buf, which must hold HeaderSize bytes.
func (h *Header) EncodeTo(buf []byte) {
	binary.LittleEndian.PutUint32(buf[0:4], h.Size)
	binary.LittleEndian.PutUint32(buf[4:8], uint32(h.Flags))
	binary.LittleEndian.PutUint32(buf[8:12], h.Height)
	binary.LittleEndian.PutUint32(buf[12:16], h.Width)
	binary.LittleEndian.PutUint32(buf[16:20], h.PitchOrLinearSize)
	binary.LittleEndian.PutUint32(buf[20:24], h.Depth)
	binary.LittleEndian.PutUint32(buf[24:28], h.MipMapCount)
	for i, v := range h.Reserved1 {
		binary.LittleEndian.PutUint32(buf[28+i*4:32+i*4], v)
	}
	h.PixelFormat.EncodeTo(buf[72:104])
	binary.LittleEndian.PutUint32(buf[104:108], uint32(h.Caps))
	binary.LittleEndian.PutUint32(buf[108:112], uint32(h.Caps2))
	binary.LittleEndian.PutUint32(buf[112:116], h.Caps3)
	binary.LittleEndian.PutUint32(buf[116:120], h.Caps4)
	binary.LittleEndian.PutUint32(buf[120:124], h.Reserved2)
}

// UnmarshalBinary decodes and validates the header in lax mode.
func (h *Header) UnmarshalBinary(data []byte) error {
	if len(data) < HeaderSize {
		return fmt.Errorf("%w: need %d bytes, got %d", ErrInvalidHeader, HeaderSize, len(data))
	}
	h.DecodeFrom(data)
	return h.Validate(false)
}

// DecodeFrom reads the header from buf without validating it.
func (h *Header) DecodeFrom(buf []byte) {
	h.Size = binary.LittleEndian.Uint32(buf[0:4])
	h.Flags = Flags(binary.LittleEndian.Uint32(buf[4:8]))
	h.Height = binary.LittleEndian.Uint32(buf[8:12])
	h.Width = binary.LittleEndian.Uint32(buf[12:16])
	h.PitchOrLinearSize = binary.LittleEndian.Uint32(buf[16:20])
	h.Depth = binary.LittleEndian.Uint32(buf[20:24])
	h.MipMapCount = binary.LittleEndian.Uint32(buf[24:28])
	for i := range h.Reserved1 {
		h.Reserved1[i] = binary.LittleEndian.Uint32(buf[28+i*4 : 32+i*4])
	}
	h.PixelFormat.DecodeFrom(buf[72:104])
	h.Caps = Caps(binary.LittleEndian.Uint32(buf[104:108]))
	h.Caps2 = Caps2(binary.LittleEndian.Uint32(buf[108:112]))
	h.Caps3 = binary.LittleEndian.Uint32(buf[112:116])
	h.Caps4 = binary.LittleEndian.Uint32(buf[116:120])
	h.Reserved2 = binary.LittleEndian.Uint32(buf[120:124])
}

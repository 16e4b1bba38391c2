package format

import "fmt"

// D3DFormat is a legacy fixed-format code. Values below 0x100 are plain
// enumerators; the rest are FourCC codes packed little-endian.
type D3DFormat uint32

// FourCC packs a four character code into a D3DFormat.
// Shorter codes are padded with zero bytes.
func FourCC(code string) D3DFormat {
	var v uint32
	for i := 0; i < 4 && i < len(code); i++ {
		v |= uint32(code[i]) << (8 * i)
	}
	return D3DFormat(v)
}

const (
	D3DFormatUnknown D3DFormat = 0

	D3DFormatR8G8B8      D3DFormat = 20
	D3DFormatA8R8G8B8    D3DFormat = 21
	D3DFormatX8R8G8B8    D3DFormat = 22
	D3DFormatR5G6B5      D3DFormat = 23
	D3DFormatX1R5G5B5    D3DFormat = 24
	D3DFormatA1R5G5B5    D3DFormat = 25
	D3DFormatA4R4G4B4    D3DFormat = 26
	D3DFormatR3G3B2      D3DFormat = 27
	D3DFormatA8          D3DFormat = 28
	D3DFormatA8R3G3B2    D3DFormat = 29
	D3DFormatX4R4G4B4    D3DFormat = 30
	D3DFormatA2B10G10R10 D3DFormat = 31
	D3DFormatA8B8G8R8    D3DFormat = 32
	D3DFormatX8B8G8R8    D3DFormat = 33
	D3DFormatG16R16      D3DFormat = 34
	D3DFormatA2R10G10B10 D3DFormat = 35

	D3DFormatA16B16G16R16 D3DFormat = 36

	D3DFormatA8P8 D3DFormat = 40
	D3DFormatP8   D3DFormat = 41

	D3DFormatL8   D3DFormat = 50
	D3DFormatA8L8 D3DFormat = 51
	D3DFormatA4L4 D3DFormat = 52

	D3DFormatV8U8        D3DFormat = 60
	D3DFormatL6V5U5      D3DFormat = 61
	D3DFormatX8L8V8U8    D3DFormat = 62
	D3DFormatQ8W8V8U8    D3DFormat = 63
	D3DFormatV16U16      D3DFormat = 64
	D3DFormatA2W10V10U10 D3DFormat = 67

	D3DFormatD16Lockable  D3DFormat = 70
	D3DFormatD32          D3DFormat = 71
	D3DFormatD15S1        D3DFormat = 73
	D3DFormatD24S8        D3DFormat = 75
	D3DFormatD24X8        D3DFormat = 77
	D3DFormatD24X4S4      D3DFormat = 79
	D3DFormatD16          D3DFormat = 80
	D3DFormatL16          D3DFormat = 81
	D3DFormatD32FLockable D3DFormat = 82
	D3DFormatD24FS8       D3DFormat = 83
	D3DFormatD32Lockable  D3DFormat = 84
	D3DFormatS8Lockable   D3DFormat = 85

	D3DFormatIndex16 D3DFormat = 101
	D3DFormatIndex32 D3DFormat = 102

	D3DFormatQ16W16V16U16  D3DFormat = 110
	D3DFormatR16F          D3DFormat = 111
	D3DFormatG16R16F       D3DFormat = 112
	D3DFormatA16B16G16R16F D3DFormat = 113
	D3DFormatR32F          D3DFormat = 114
	D3DFormatG32R32F       D3DFormat = 115
	D3DFormatA32B32G32R32F D3DFormat = 116
	D3DFormatCxV8U8        D3DFormat = 117
	D3DFormatA1            D3DFormat = 118

	D3DFormatA2B10G10R10XRBias D3DFormat = 119

	// FourCC-coded formats.
	D3DFormatUYVY        D3DFormat = 'U' | 'Y'<<8 | 'V'<<16 | 'Y'<<24
	D3DFormatR8G8B8G8    D3DFormat = 'R' | 'G'<<8 | 'B'<<16 | 'G'<<24
	D3DFormatYUY2        D3DFormat = 'Y' | 'U'<<8 | 'Y'<<16 | '2'<<24
	D3DFormatG8R8G8B8    D3DFormat = 'G' | 'R'<<8 | 'G'<<16 | 'B'<<24
	D3DFormatDXT1        D3DFormat = 'D' | 'X'<<8 | 'T'<<16 | '1'<<24
	D3DFormatDXT2        D3DFormat = 'D' | 'X'<<8 | 'T'<<16 | '2'<<24
	D3DFormatDXT3        D3DFormat = 'D' | 'X'<<8 | 'T'<<16 | '3'<<24
	D3DFormatDXT4        D3DFormat = 'D' | 'X'<<8 | 'T'<<16 | '4'<<24
	D3DFormatDXT5        D3DFormat = 'D' | 'X'<<8 | 'T'<<16 | '5'<<24
	D3DFormatMulti2ARGB8 D3DFormat = 'M' | 'E'<<8 | 'T'<<16 | '1'<<24
	D3DFormatBC4U        D3DFormat = 'B' | 'C'<<8 | '4'<<16 | 'U'<<24
	D3DFormatBC4S        D3DFormat = 'B' | 'C'<<8 | '4'<<16 | 'S'<<24
	D3DFormatBC5U        D3DFormat = 'B' | 'C'<<8 | '5'<<16 | 'U'<<24
	D3DFormatBC5S        D3DFormat = 'B' | 'C'<<8 | '5'<<16 | 'S'<<24
	D3DFormatATI1        D3DFormat = 'A' | 'T'<<8 | 'I'<<16 | '1'<<24
	D3DFormatATI2        D3DFormat = 'A' | 'T'<<8 | 'I'<<16 | '2'<<24

	// D3DFormatDX10 is the FourCC announcing an extended header. It is a
	// marker, not a pixel format.
	D3DFormatDX10 D3DFormat = 'D' | 'X'<<8 | '1'<<16 | '0'<<24
)

var d3dNames = map[D3DFormat]string{
	D3DFormatUnknown:           "UNKNOWN",
	D3DFormatR8G8B8:            "R8G8B8",
	D3DFormatA8R8G8B8:          "A8R8G8B8",
	D3DFormatX8R8G8B8:          "X8R8G8B8",
	D3DFormatR5G6B5:            "R5G6B5",
	D3DFormatX1R5G5B5:          "X1R5G5B5",
	D3DFormatA1R5G5B5:          "A1R5G5B5",
	D3DFormatA4R4G4B4:          "A4R4G4B4",
	D3DFormatR3G3B2:            "R3G3B2",
	D3DFormatA8:                "A8",
	D3DFormatA8R3G3B2:          "A8R3G3B2",
	D3DFormatX4R4G4B4:          "X4R4G4B4",
	D3DFormatA2B10G10R10:       "A2B10G10R10",
	D3DFormatA8B8G8R8:          "A8B8G8R8",
	D3DFormatX8B8G8R8:          "X8B8G8R8",
	D3DFormatG16R16:            "G16R16",
	D3DFormatA2R10G10B10:       "A2R10G10B10",
	D3DFormatA16B16G16R16:      "A16B16G16R16",
	D3DFormatA8P8:              "A8P8",
	D3DFormatP8:                "P8",
	D3DFormatL8:                "L8",
	D3DFormatA8L8:              "A8L8",
	D3DFormatA4L4:              "A4L4",
	D3DFormatV8U8:              "V8U8",
	D3DFormatL6V5U5:            "L6V5U5",
	D3DFormatX8L8V8U8:          "X8L8V8U8",
	D3DFormatQ8W8V8U8:          "Q8W8V8U8",
	D3DFormatV16U16:            "V16U16",
	D3DFormatA2W10V10U10:       "A2W10V10U10",
	D3DFormatD16Lockable:       "D16_LOCKABLE",
	D3DFormatD32:               "D32",
	D3DFormatD15S1:             "D15S1",
	D3DFormatD24S8:             "D24S8",
	D3DFormatD24X8:             "D24X8",
	D3DFormatD24X4S4:           "D24X4S4",
	D3DFormatD16:               "D16",
	D3DFormatL16:               "L16",
	D3DFormatD32FLockable:      "D32F_LOCKABLE",
	D3DFormatD24FS8:            "D24FS8",
	D3DFormatD32Lockable:       "D32_LOCKABLE",
	D3DFormatS8Lockable:        "S8_LOCKABLE",
	D3DFormatIndex16:           "INDEX16",
	D3DFormatIndex32:           "INDEX32",
	D3DFormatQ16W16V16U16:      "Q16W16V16U16",
	D3DFormatR16F:              "R16F",
	D3DFormatG16R16F:           "G16R16F",
	D3DFormatA16B16G16R16F:     "A16B16G16R16F",
	D3DFormatR32F:              "R32F",
	D3DFormatG32R32F:           "G32R32F",
	D3DFormatA32B32G32R32F:     "A32B32G32R32F",
	D3DFormatCxV8U8:            "CxV8U8",
	D3DFormatA1:                "A1",
	D3DFormatA2B10G10R10XRBias: "A2B10G10R10_XR_BIAS",
	D3DFormatUYVY:              "UYVY",
	D3DFormatR8G8B8G8:          "R8G8_B8G8",
	D3DFormatYUY2:              "YUY2",
	D3DFormatG8R8G8B8:          "G8R8_G8B8",
	D3DFormatDXT1:              "DXT1",
	D3DFormatDXT2:              "DXT2",
	D3DFormatDXT3:              "DXT3",
	D3DFormatDXT4:              "DXT4",
	D3DFormatDXT5:              "DXT5",
	D3DFormatMulti2ARGB8:       "MULTI2_ARGB8",
	D3DFormatBC4U:              "BC4U",
	D3DFormatBC4S:              "BC4S",
	D3DFormatBC5U:              "BC5U",
	D3DFormatBC5S:              "BC5S",
	D3DFormatATI1:              "ATI1",
	D3DFormatATI2:              "ATI2",
}

// String returns the conventional name of the format, or a numeric form
// for codes outside the catalog.
func (f D3DFormat) String() string {
	if name, ok := d3dNames[f]; ok {
		return name
	}
	return fmt.Sprintf("D3DFormat(0x%08x)", uint32(f))
}

// IsKnown reports whether f is a catalogued pixel format. Unknown is not.
func (f D3DFormat) IsKnown() bool {
	if f == D3DFormatUnknown {
		return false
	}
	_, err := f.BitsPerPixel()
	return err == nil
}

// BitsPerPixel returns the nominal number of bits per pixel. Block
// compressed formats report 4 or 8. Unknown reports 0.
func (f D3DFormat) BitsPerPixel() (int, error) {
	switch f {
	case D3DFormatUnknown:
		return 0, nil

	case D3DFormatA1:
		return 1, nil

	case D3DFormatDXT1, D3DFormatBC4S, D3DFormatBC4U, D3DFormatATI1:
		return 4, nil

	case D3DFormatR3G3B2, D3DFormatA8, D3DFormatP8, D3DFormatL8, D3DFormatA4L4,
		D3DFormatS8Lockable,
		D3DFormatDXT2, D3DFormatDXT3, D3DFormatDXT4, D3DFormatDXT5,
		D3DFormatBC5S, D3DFormatBC5U, D3DFormatATI2:
		return 8, nil

	case D3DFormatR5G6B5, D3DFormatX1R5G5B5, D3DFormatA1R5G5B5, D3DFormatA4R4G4B4,
		D3DFormatA8R3G3B2, D3DFormatX4R4G4B4, D3DFormatA8P8, D3DFormatA8L8,
		D3DFormatV8U8, D3DFormatL6V5U5, D3DFormatUYVY, D3DFormatYUY2,
		D3DFormatR8G8B8G8, D3DFormatG8R8G8B8,
		D3DFormatD16, D3DFormatD16Lockable, D3DFormatD15S1, D3DFormatL16,
		D3DFormatIndex16, D3DFormatR16F, D3DFormatCxV8U8:
		return 16, nil

	case D3DFormatR8G8B8:
		return 24, nil

	case D3DFormatA8R8G8B8, D3DFormatX8R8G8B8, D3DFormatA2B10G10R10, D3DFormatA8B8G8R8,
		D3DFormatX8B8G8R8, D3DFormatG16R16, D3DFormatA2R10G10B10, D3DFormatX8L8V8U8,
		D3DFormatQ8W8V8U8, D3DFormatV16U16, D3DFormatA2W10V10U10,
		D3DFormatD32, D3DFormatD32Lockable, D3DFormatD32FLockable, D3DFormatD24S8,
		D3DFormatD24X8, D3DFormatD24X4S4, D3DFormatD24FS8,
		D3DFormatIndex32, D3DFormatG16R16F, D3DFormatR32F,
		D3DFormatA2B10G10R10XRBias, D3DFormatMulti2ARGB8:
		return 32, nil

	case D3DFormatA16B16G16R16, D3DFormatA16B16G16R16F, D3DFormatQ16W16V16U16,
		D3DFormatG32R32F:
		return 64, nil

	case D3DFormatA32B32G32R32F:
		return 128, nil
	}
	return 0, fmt.Errorf("%w: legacy 0x%08x", ErrInvalidFormat, uint32(f))
}

// IsBlockCompressed reports whether f stores 4x4 pixel blocks.
func (f D3DFormat) IsBlockCompressed() bool {
	switch f {
	case D3DFormatDXT1, D3DFormatDXT2, D3DFormatDXT3, D3DFormatDXT4, D3DFormatDXT5,
		D3DFormatBC4U, D3DFormatBC4S, D3DFormatBC5U, D3DFormatBC5S,
		D3DFormatATI1, D3DFormatATI2:
		return true
	}
	return false
}

// IsPacked reports whether f is one of the 4:2:2 layouts that share a
// 32-bit word between two horizontally adjacent pixels.
func (f D3DFormat) IsPacked() bool {
	switch f {
	case D3DFormatR8G8B8G8, D3DFormatG8R8G8B8, D3DFormatUYVY, D3DFormatYUY2:
		return true
	}
	return false
}

// HasAlpha reports whether the legacy layout carries an alpha channel.
func (f D3DFormat) HasAlpha() bool {
	switch f {
	case D3DFormatA8R8G8B8, D3DFormatA1R5G5B5, D3DFormatA4R4G4B4, D3DFormatA8,
		D3DFormatA8R3G3B2, D3DFormatA2B10G10R10, D3DFormatA8B8G8R8, D3DFormatA2R10G10B10,
		D3DFormatA16B16G16R16, D3DFormatA8P8, D3DFormatA8L8, D3DFormatA4L4,
		D3DFormatA2W10V10U10, D3DFormatA16B16G16R16F, D3DFormatA32B32G32R32F, D3DFormatA1,
		D3DFormatA2B10G10R10XRBias, D3DFormatMulti2ARGB8,
		D3DFormatDXT2, D3DFormatDXT3, D3DFormatDXT4, D3DFormatDXT5:
		return true
	}
	return false
}

// LegacyToModern maps a legacy format to its closest modern equivalent.
// Several legacy block formats collapse onto one modern code. Formats with
// no direct counterpart map to DXGIFormatUnknown.
func LegacyToModern(f D3DFormat) DXGIFormat {
	switch f {
	case D3DFormatA8:
		return DXGIFormatA8UNorm
	case D3DFormatA8R8G8B8:
		return DXGIFormatB8G8R8A8UNorm
	case D3DFormatX8R8G8B8:
		return DXGIFormatB8G8R8X8UNorm
	case D3DFormatR5G6B5:
		return DXGIFormatB5G6R5UNorm
	case D3DFormatA1R5G5B5:
		return DXGIFormatB5G5R5A1UNorm
	case D3DFormatA4R4G4B4:
		return DXGIFormatB4G4R4A4UNorm
	case D3DFormatA2B10G10R10:
		return DXGIFormatR10G10B10A2UNorm
	case D3DFormatA8B8G8R8:
		return DXGIFormatR8G8B8A8UNorm
	case D3DFormatG16R16:
		return DXGIFormatR16G16UNorm
	case D3DFormatA16B16G16R16:
		return DXGIFormatR16G16B16A16UNorm
	case D3DFormatL8:
		return DXGIFormatR8UNorm
	case D3DFormatA8L8:
		return DXGIFormatR8G8UNorm
	case D3DFormatV8U8:
		return DXGIFormatR8G8SNorm
	case D3DFormatQ8W8V8U8:
		return DXGIFormatR8G8B8A8SNorm
	case D3DFormatV16U16:
		return DXGIFormatR16G16SNorm
	// The two 4:2:2 codes map crosswise; the legacy names list channels in
	// the opposite byte order.
	case D3DFormatR8G8B8G8:
		return DXGIFormatG8R8G8B8UNorm
	case D3DFormatG8R8G8B8:
		return DXGIFormatR8G8B8G8UNorm
	case D3DFormatD16, D3DFormatD16Lockable:
		return DXGIFormatD16UNorm
	case D3DFormatD32FLockable:
		return DXGIFormatD32Float
	case D3DFormatD24S8:
		return DXGIFormatD24UNormS8UInt
	case D3DFormatL16:
		return DXGIFormatR16UNorm
	case D3DFormatIndex16:
		return DXGIFormatR16UInt
	case D3DFormatIndex32:
		return DXGIFormatR32UInt
	case D3DFormatQ16W16V16U16:
		return DXGIFormatR16G16B16A16SNorm
	case D3DFormatR16F:
		return DXGIFormatR16Float
	case D3DFormatG16R16F:
		return DXGIFormatR16G16Float
	case D3DFormatA16B16G16R16F:
		return DXGIFormatR16G16B16A16Float
	case D3DFormatR32F:
		return DXGIFormatR32Float
	case D3DFormatG32R32F:
		return DXGIFormatR32G32Float
	case D3DFormatA32B32G32R32F:
		return DXGIFormatR32G32B32A32Float
	case D3DFormatDXT1:
		return DXGIFormatBC1UNorm
	case D3DFormatDXT2, D3DFormatDXT3:
		return DXGIFormatBC2UNorm
	case D3DFormatDXT4, D3DFormatDXT5:
		return DXGIFormatBC3UNorm
	case D3DFormatBC4S:
		return DXGIFormatBC4SNorm
	case D3DFormatBC4U, D3DFormatATI1:
		return DXGIFormatBC4UNorm
	case D3DFormatBC5S:
		return DXGIFormatBC5SNorm
	case D3DFormatBC5U, D3DFormatATI2:
		return DXGIFormatBC5UNorm
	}
	return DXGIFormatUnknown
}

package format

import "encoding/binary"

// PixelFormatSize is the fixed size of the pixel format record.
const PixelFormatSize = 32

// PixelFlags is the pixel format flag bitmask (DDPF_*).
type PixelFlags uint32

const (
	PixelAlphaPixels PixelFlags = 0x00000001
	PixelAlpha       PixelFlags = 0x00000002
	PixelFourCC      PixelFlags = 0x00000004
	PixelRGB         PixelFlags = 0x00000040
	PixelYUV         PixelFlags = 0x00000200
	PixelLuminance   PixelFlags = 0x00020000

	PixelRGBA = PixelRGB | PixelAlphaPixels
)

// Has reports whether every bit of mask is set.
func (f PixelFlags) Has(mask PixelFlags) bool {
	return f&mask == mask
}

// PixelFormat is the pixel format record embedded in the DDS header.
type PixelFormat struct {
	Size        uint32
	Flags       PixelFlags
	FourCC      D3DFormat
	RGBBitCount uint32
	RBitMask    uint32
	GBitMask    uint32
	BBitMask    uint32
	ABitMask    uint32
}

// EncodeTo writes the record to buf, which must hold PixelFormatSize bytes.
func (pf *PixelFormat) EncodeTo(buf []byte) {
	binary.LittleEndian.PutUint32(buf[0:4], pf.Size)
	binary.LittleEndian.PutUint32(buf[4:8], uint32(pf.Flags))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(pf.FourCC))
	binary.LittleEndian.PutUint32(buf[12:16], pf.RGBBitCount)
	binary.LittleEndian.PutUint32(buf[16:20], pf.RBitMask)
	binary.LittleEndian.PutUint32(buf[20:24], pf.GBitMask)
	binary.LittleEndian.PutUint32(buf[24:28], pf.BBitMask)
	binary.LittleEndian.PutUint32(buf[28:32], pf.ABitMask)
}

// DecodeFrom reads the record from buf, which must hold PixelFormatSize bytes.
func (pf *PixelFormat) DecodeFrom(buf []byte) {
	pf.Size = binary.LittleEndian.Uint32(buf[0:4])
	pf.Flags = PixelFlags(binary.LittleEndian.Uint32(buf[4:8]))
	pf.FourCC = D3DFormat(binary.LittleEndian.Uint32(buf[8:12]))
	pf.RGBBitCount = binary.LittleEndian.Uint32(buf[12:16])
	pf.RBitMask = binary.LittleEndian.Uint32(buf[16:20])
	pf.GBitMask = binary.LittleEndian.Uint32(buf[20:24])
	pf.BBitMask = binary.LittleEndian.Uint32(buf[24:28])
	pf.ABitMask = binary.LittleEndian.Uint32(buf[28:32])
}

// IsExtended reports whether the record announces a DX10 extended header:
// the flags must be exactly FOURCC and the code must be "DX10".
func (pf *PixelFormat) IsExtended() bool {
	return pf.Flags == PixelFourCC && pf.FourCC == D3DFormatDX10
}

// masks is one row of the known channel layouts. The any flags skip the
// comparison for a channel the layout does not constrain.
type masks struct {
	r, g, b, a       uint32
	anyG, anyB, anyA bool
	format           D3DFormat
}

func (m masks) match(pf *PixelFormat) bool {
	return pf.RBitMask == m.r &&
		(m.anyG || pf.GBitMask == m.g) &&
		(m.anyB || pf.BBitMask == m.b) &&
		(m.anyA || pf.ABitMask == m.a)
}

var (
	rgba32 = []masks{
		{r: 0xff, g: 0xff00, b: 0xff0000, a: 0xff000000, format: D3DFormatA8B8G8R8},
		{r: 0xffff, g: 0xffff0000, anyB: true, anyA: true, format: D3DFormatG16R16},
		{r: 0x3ff, g: 0xffc00, b: 0x3ff00000, anyA: true, format: D3DFormatA2B10G10R10},
		{r: 0xff0000, g: 0xff00, b: 0xff, a: 0xff000000, format: D3DFormatA8R8G8B8},
		{r: 0x3ff00000, g: 0xffc00, b: 0x3ff, a: 0xc0000000, format: D3DFormatA2R10G10B10},
	}
	rgba16 = []masks{
		{r: 0x7c00, g: 0x3e0, b: 0x1f, a: 0x8000, format: D3DFormatA1R5G5B5},
		{r: 0xf00, g: 0xf0, b: 0xf, a: 0xf000, format: D3DFormatA4R4G4B4},
		{r: 0xe0, g: 0x1c, b: 0x3, a: 0xff00, format: D3DFormatA8R3G3B2},
	}
	rgb32 = []masks{
		{r: 0xffff, g: 0xffff0000, anyB: true, anyA: true, format: D3DFormatG16R16},
		{r: 0xff0000, g: 0xff00, b: 0xff, anyA: true, format: D3DFormatX8R8G8B8},
		{r: 0xff, g: 0xff00, b: 0xff0000, anyA: true, format: D3DFormatX8B8G8R8},
	}
	rgb24 = []masks{
		{r: 0xff0000, g: 0xff00, b: 0xff, anyA: true, format: D3DFormatR8G8B8},
	}
	rgb16 = []masks{
		{r: 0xf800, g: 0x7e0, b: 0x1f, anyA: true, format: D3DFormatR5G6B5},
		{r: 0x7c00, g: 0x3e0, b: 0x1f, anyA: true, format: D3DFormatX1R5G5B5},
		{r: 0xf00, g: 0xf0, b: 0xf, anyA: true, format: D3DFormatX4R4G4B4},
	}
	lum16 = []masks{
		{r: 0xff, anyG: true, anyB: true, a: 0xff00, format: D3DFormatA8L8},
		{r: 0xffff, anyG: true, anyB: true, anyA: true, format: D3DFormatL16},
	}
	lum8 = []masks{
		{r: 0xf, anyG: true, anyB: true, a: 0xf0, format: D3DFormatA4L4},
		{r: 0xff, anyG: true, anyB: true, anyA: true, format: D3DFormatL8},
	}
)

func lookup(table []masks, pf *PixelFormat) D3DFormat {
	for _, m := range table {
		if m.match(pf) {
			return m.format
		}
	}
	return D3DFormatUnknown
}

// ResolveLegacy resolves the legacy format described by a pixel format
// record. Flags are tested most specific first (RGBA, RGB, alpha only,
// luminance, FourCC), then the bit count, then the exact channel masks.
// An unmatched record resolves to D3DFormatUnknown, which is not an error.
func ResolveLegacy(pf *PixelFormat) D3DFormat {
	switch {
	case pf.Flags.Has(PixelRGBA):
		switch pf.RGBBitCount {
		case 32:
			return lookup(rgba32, pf)
		case 16:
			return lookup(rgba16, pf)
		}

	case pf.Flags.Has(PixelRGB):
		switch pf.RGBBitCount {
		case 32:
			return lookup(rgb32, pf)
		case 24:
			return lookup(rgb24, pf)
		case 16:
			return lookup(rgb16, pf)
		}

	case pf.Flags.Has(PixelAlpha):
		if pf.RGBBitCount == 8 && pf.ABitMask == 0xff {
			return D3DFormatA8
		}

	case pf.Flags.Has(PixelLuminance):
		switch pf.RGBBitCount {
		case 16:
			return lookup(lum16, pf)
		case 8:
			return lookup(lum8, pf)
		}

	case pf.Flags.Has(PixelFourCC):
		if pf.FourCC.IsKnown() {
			return pf.FourCC
		}
	}
	return D3DFormatUnknown
}

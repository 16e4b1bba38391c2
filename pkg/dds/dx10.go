package dds

import (
	"encoding/binary"
	"fmt"

	"github.com/goopsie/ddsfile/pkg/format"
)

// DX10HeaderSize is the fixed size of the extended header.
const DX10HeaderSize = 20

// ResourceDimension is the D3D10 resource dimension tag.
type ResourceDimension uint32

const (
	DimensionUnknown   ResourceDimension = 0
	DimensionBuffer    ResourceDimension = 1
	DimensionTexture1D ResourceDimension = 2
	DimensionTexture2D ResourceDimension = 3
	DimensionTexture3D ResourceDimension = 4
)

func (d ResourceDimension) String() string {
	switch d {
	case DimensionBuffer:
		return "buffer"
	case DimensionTexture1D:
		return "texture1d"
	case DimensionTexture2D:
		return "texture2d"
	case DimensionTexture3D:
		return "texture3d"
	}
	return "unknown"
}

// MiscTextureCube marks a DX10 resource as a cube map.
const MiscTextureCube uint32 = 0x4

// HeaderDX10 is the extended header (DDS_HEADER_DXT10).
type HeaderDX10 struct {
	Format     format.DXGIFormat
	Dimension  ResourceDimension
	MiscFlag   uint32
	ArraySize  uint32
	MiscFlags2 uint32
}

// IsCubeMap reports whether the misc flags mark a cube map.
func (h *HeaderDX10) IsCubeMap() bool {
	return h.MiscFlag&MiscTextureCube != 0
}

// MarshalBinary encodes the extended header.
func (h *HeaderDX10) MarshalBinary() ([]byte, error) {
	buf := make([]byte, DX10HeaderSize)
	h.EncodeTo(buf)
	return buf, nil
}

// EncodeTo writes the header to buf, which must hold DX10HeaderSize bytes.
func (h *HeaderDX10) EncodeTo(buf []byte) {
	binary.LittleEndian.PutUint32(buf[0:4], uint32(h.Format))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(h.Dimension))
	binary.LittleEndian.PutUint32(buf[8:12], h.MiscFlag)
	binary.LittleEndian.PutUint32(buf[12:16], h.ArraySize)
	binary.LittleEndian.PutUint32(buf[16:20], h.MiscFlags2)
}

// UnmarshalBinary decodes the extended header.
func (h *HeaderDX10) UnmarshalBinary(data []byte) error {
	if len(data) < DX10HeaderSize {
		return fmt.Errorf("%w: extended header needs %d bytes, got %d", ErrInvalidHeader, DX10HeaderSize, len(data))
	}
	h.DecodeFrom(data)
	return nil
}

// DecodeFrom reads the header from buf.
func (h *HeaderDX10) DecodeFrom(buf []byte) {
	h.Format = format.DXGIFormat(binary.LittleEndian.Uint32(buf[0:4]))
	h.Dimension = ResourceDimension(binary.LittleEndian.Uint32(buf[4:8]))
	h.MiscFlag = binary.LittleEndian.Uint32(buf[8:12])
	h.ArraySize = binary.LittleEndian.Uint32(buf[12:16])
	h.MiscFlags2 = binary.LittleEndian.Uint32(buf[16:20])
}

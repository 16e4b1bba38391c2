package dds

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/goopsie/ddsfile/pkg/archive"
	"github.com/goopsie/ddsfile/pkg/format"
	"github.com/goopsie/ddsfile/pkg/layout"
)

// File is a decoded DDS container. It is built in one pass by Decode and
// not modified afterwards.
type File struct {
	Header Header
	DX10   *HeaderDX10 // nil unless the file carries an extended header

	Format format.Pair

	Width         int
	Height        int
	BitsPerPixel  int
	Pitch         int
	LinearSize    int // bytes of the base surface
	Depth         int // volume depth, cube-map face count, or 1
	MipMapCount   int // 0 when the file has no mip chain
	ResourceCount int
	TotalSize     int // bytes across all surfaces

	Textures []*Texture
}

// IsExtended reports whether the file carries a DX10 header.
func (f *File) IsExtended() bool {
	return f.DX10 != nil
}

// IsVolume reports whether the file holds a volume texture.
func (f *File) IsVolume() bool {
	if f.Header.IsVolume() {
		return true
	}
	return f.DX10 != nil && f.DX10.Dimension == DimensionTexture3D
}

// IsCubeMap reports whether the file holds a cube map.
func (f *File) IsCubeMap() bool {
	if f.Header.IsCubeMap() {
		return true
	}
	return f.DX10 != nil && f.DX10.IsCubeMap()
}

// IsCompressed reports whether the surfaces are block compressed.
func (f *File) IsCompressed() bool {
	return f.Format.IsBlockCompressed()
}

// HasAlpha reports whether the pixel data carries alpha.
func (f *File) HasAlpha() bool {
	pf := f.Header.PixelFormat.Flags
	if pf&(format.PixelAlphaPixels|format.PixelAlpha) != 0 {
		return true
	}
	return f.Format.HasAlpha()
}

// HasMipmaps reports whether the file declares a mip chain.
func (f *File) HasMipmaps() bool {
	return f.Header.HasMipmaps()
}

// Levels returns the number of mip levels to read for each surface chain.
func (f *File) Levels() int {
	return max(1, f.MipMapCount)
}

// faces returns the cube-map faces present, in on-disk order. A DX10 cube
// map that sets no face bits holds all six.
func (f *File) faces() []SurfaceKind {
	caps2 := f.Header.Caps2
	if f.DX10 != nil && f.DX10.IsCubeMap() && caps2&Caps2CubemapAllFaces == 0 {
		caps2 |= Caps2CubemapAllFaces
	}
	var out []SurfaceKind
	for _, face := range cubeFaces {
		if caps2.Has(face.bit) {
			out = append(out, face.kind)
		}
	}
	return out
}

func (f *File) String() string {
	return fmt.Sprintf("%dx%d %s, %d mips, depth %d, %d resources, %d bytes",
		f.Width, f.Height, f.Format, f.MipMapCount, f.Depth, f.ResourceCount, f.TotalSize)
}

// ReadHeader reads and validates the magic, the primary header and the
// optional extended header, then resolves the format and derived sizes.
// The reader is left positioned at the first surface.
func ReadHeader(r io.Reader, opts ...Option) (*File, error) {
	return readHeader(r, newOptions(opts))
}

func readHeader(r io.Reader, o *options) (*File, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, fmt.Errorf("%w: read magic: %w", ErrNotDDS, err)
	}
	if binary.LittleEndian.Uint32(magic[:]) != Magic {
		return nil, fmt.Errorf("%w: magic %q", ErrNotDDS, magic[:])
	}

	var buf [HeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, fmt.Errorf("%w: read header: %w", ErrInvalidHeader, err)
	}

	f := &File{}
	f.Header.DecodeFrom(buf[:])
	if err := f.Header.Validate(o.strict); err != nil {
		return nil, err
	}
	if !f.Header.HasDimensions() {
		return nil, fmt.Errorf("%w: width and height flags are required", ErrMissingDimensions)
	}

	f.ResourceCount = 1
	if f.Header.PixelFormat.IsExtended() {
		var ext [DX10HeaderSize]byte
		if _, err := io.ReadFull(r, ext[:]); err != nil {
			return nil, fmt.Errorf("%w: read extended header: %w", ErrInvalidHeader, err)
		}
		f.DX10 = &HeaderDX10{}
		f.DX10.DecodeFrom(ext[:])
		if f.DX10.ArraySize > 0 {
			f.ResourceCount = int(f.DX10.ArraySize)
		}
	}

	if err := f.resolve(); err != nil {
		return nil, err
	}
	return f, nil
}

// resolve fills the format pair and the derived scalar properties.
func (f *File) resolve() error {
	h := &f.Header
	f.Width = int(h.Width)
	f.Height = int(h.Height)
	if f.Width < 0 || f.Height < 0 {
		return fmt.Errorf("%w: dimensions %dx%d out of range", ErrInvalidHeader, h.Width, h.Height)
	}

	f.Format.Legacy = format.ResolveLegacy(&h.PixelFormat)
	if f.DX10 != nil {
		f.Format.Modern = f.DX10.Format
	}
	if !f.Format.Known() {
		return fmt.Errorf("%w: fourcc %q, modern %s",
			ErrUnknownFormat, fourCCString(h.PixelFormat.FourCC), f.Format.Modern)
	}
	if f.Format.IsBlockCompressed() && (f.Width%4 != 0 || f.Height%4 != 0) {
		return fmt.Errorf("%w: %dx%d", ErrInvalidCompressedDimensions, f.Width, f.Height)
	}

	bpp, err := f.Format.BitsPerPixel()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnknownFormat, err)
	}
	f.BitsPerPixel = bpp

	if h.HasMipmaps() {
		f.MipMapCount = int(h.MipMapCount)
	}

	switch {
	case f.IsVolume():
		f.Depth = max(1, int(h.Depth))
	case f.IsCubeMap():
		f.Depth = len(f.faces())
	default:
		f.Depth = 1
	}

	declared := int(h.PitchOrLinearSize)
	if f.Pitch, err = layout.Pitch(f.Width, f.Format, declared); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidHeader, err)
	}
	if f.LinearSize, err = layout.LinearSize(f.Width, f.Height, f.Format, declared); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidHeader, err)
	}
	// Every resource must consume input, so a huge array size cannot
	// loop over empty surfaces.
	if f.LinearSize == 0 {
		return fmt.Errorf("%w: empty base surface %dx%d", ErrInvalidHeader, f.Width, f.Height)
	}
	return nil
}

func fourCCString(code format.D3DFormat) string {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(code))
	return string(bytes.TrimRight(b[:], "\x00"))
}

// Decode reads a complete DDS file from r.
func Decode(r io.Reader, opts ...Option) (*File, error) {
	o := newOptions(opts)

	f, err := readHeader(r, o)
	if err != nil {
		return nil, err
	}
	if err := f.readTextures(r, o); err != nil {
		return nil, err
	}
	return f, nil
}

// DecodeBytes decodes a DDS file held in memory.
func DecodeBytes(data []byte, opts ...Option) (*File, error) {
	return Decode(bytes.NewReader(data), opts...)
}

// DecodeFile opens path and decodes it. Files wrapped in a ZSTD archive
// envelope, a zstd frame or an LZ4 frame are unwrapped first.
func DecodeFile(path string, opts ...Option) (*File, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer file.Close()

	src, err := archive.Open(file)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer src.Close()

	f, err := Decode(src, opts...)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return f, nil
}

package dds

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/goopsie/ddsfile/pkg/flip"
	"github.com/goopsie/ddsfile/pkg/layout"
)

// readTextures reads every array element in the layout the header
// declares: volume, cube map or flat.
func (f *File) readTextures(r io.Reader, o *options) error {
	var read func(io.Reader, *options) (*Texture, error)
	switch {
	case f.IsVolume():
		read = f.readVolume
	case f.IsCubeMap():
		if f.Depth == 0 {
			return nil
		}
		read = f.readCubeMap
	default:
		read = f.readFlat
	}

	for i := 0; i < f.ResourceCount; i++ {
		tex, err := read(r, o)
		if err != nil {
			return fmt.Errorf("read resource %d: %w", i, err)
		}
		f.Textures = append(f.Textures, tex)
	}
	return nil
}

func (f *File) readFlat(r io.Reader, o *options) (*Texture, error) {
	kind := KindTexture1D
	if f.Height > 1 {
		kind = KindTexture2D
	}
	surfaces, err := f.readMipChain(r, o, kind, 1)
	if err != nil {
		return nil, err
	}
	return &Texture{Surfaces: surfaces}, nil
}

func (f *File) readVolume(r io.Reader, o *options) (*Texture, error) {
	surfaces, err := f.readMipChain(r, o, KindTexture3D, f.Depth)
	if err != nil {
		return nil, err
	}
	return &Texture{Surfaces: surfaces}, nil
}

// readCubeMap reads face by face, each face carrying its full mip chain.
func (f *File) readCubeMap(r io.Reader, o *options) (*Texture, error) {
	tex := &Texture{}
	for _, face := range f.faces() {
		surfaces, err := f.readMipChain(r, o, face, 1)
		if err != nil {
			return nil, fmt.Errorf("face %s: %w", face, err)
		}
		tex.Surfaces = append(tex.Surfaces, surfaces...)
	}
	return tex, nil
}

// maxPrealloc bounds the buffer reserved before a level's bytes arrive.
const maxPrealloc = 16 << 20

// readMipChain reads up to Levels() surfaces, halving the dimensions after
// each one and stopping once width and height both reach zero. Volume
// slices of one level are stored contiguously, and depth halves with the
// other dimensions down to one slice.
func (f *File) readMipChain(r io.Reader, o *options, kind SurfaceKind, depth int) ([]*Surface, error) {
	declared := int(f.Header.PitchOrLinearSize)
	width, height := f.Width, f.Height

	var surfaces []*Surface
	for level := 0; level < f.Levels() && (width > 0 || height > 0); level++ {
		sliceSize, err := layout.LinearSize(width, height, f.Format, declared)
		if err != nil {
			return nil, fmt.Errorf("%w: level %d: %w", ErrInvalidHeader, level, err)
		}
		size, err := layout.Mul(sliceSize, depth)
		if err != nil {
			return nil, fmt.Errorf("%w: level %d depth %d: %w", ErrInvalidHeader, level, depth, err)
		}

		data, err := readLevel(r, size)
		if err != nil {
			return nil, fmt.Errorf("level %d: %w", level, err)
		}

		if o.flip {
			for z := 0; z < depth; z++ {
				slice := data[z*sliceSize : (z+1)*sliceSize]
				if _, err := flip.Surface(slice, width, height, f.Format); err != nil {
					return nil, fmt.Errorf("flip level %d: %w", level, err)
				}
			}
		}

		surfaces = append(surfaces, &Surface{
			Kind:   kind,
			Level:  level,
			Width:  width,
			Height: height,
			Depth:  depth,
			Data:   data,
		})
		f.TotalSize += len(data)

		width /= 2
		height /= 2
		depth = max(1, depth/2)
	}
	return surfaces, nil
}

// readLevel reads exactly size bytes. The buffer grows with the input, so
// a header claiming more data than the stream holds fails with
// ErrTruncated instead of allocating the claimed size up front.
func readLevel(r io.Reader, size int) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(min(size, maxPrealloc))
	if _, err := io.CopyN(&buf, r, int64(size)); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: need %d bytes, got %d", ErrTruncated, size, buf.Len())
		}
		return nil, fmt.Errorf("read: %w", err)
	}
	return buf.Bytes(), nil
}

package dds

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/goopsie/ddsfile/pkg/archive"
	"github.com/goopsie/ddsfile/pkg/flip"
	"github.com/goopsie/ddsfile/pkg/format"
	"github.com/goopsie/ddsfile/pkg/layout"
)

var (
	pfA8R8G8B8 = format.PixelFormat{
		Size: format.PixelFormatSize, Flags: format.PixelRGBA, RGBBitCount: 32,
		RBitMask: 0xff0000, GBitMask: 0xff00, BBitMask: 0xff, ABitMask: 0xff000000,
	}
	pfL8 = format.PixelFormat{
		Size: format.PixelFormatSize, Flags: format.PixelLuminance, RGBBitCount: 8, RBitMask: 0xff,
	}
	pfDX10 = format.PixelFormat{
		Size: format.PixelFormatSize, Flags: format.PixelFourCC, FourCC: format.D3DFormatDX10,
	}
)

func pfFourCC(code string) format.PixelFormat {
	return format.PixelFormat{Size: format.PixelFormatSize, Flags: format.PixelFourCC, FourCC: format.FourCC(code)}
}

func newHeader(width, height uint32, pf format.PixelFormat) Header {
	return Header{
		Size:        HeaderSize,
		Flags:       FlagCaps | FlagHeight | FlagWidth | FlagPixelFormat,
		Height:      height,
		Width:       width,
		PixelFormat: pf,
		Caps:        CapsTexture,
	}
}

func withMips(h Header, count uint32) Header {
	h.Flags |= FlagMipMapCount
	h.Caps |= CapsMipmap | CapsComplex
	h.MipMapCount = count
	return h
}

// buildDDS assembles a complete stream: magic, header, optional extended
// header and payload.
func buildDDS(t testing.TB, h Header, ext *HeaderDX10, payload []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, Magic)

	hb, err := h.MarshalBinary()
	if err != nil {
		t.Fatalf("marshal header: %v", err)
	}
	buf.Write(hb)

	if ext != nil {
		eb, err := ext.MarshalBinary()
		if err != nil {
			t.Fatalf("marshal extended header: %v", err)
		}
		buf.Write(eb)
	}
	buf.Write(payload)
	return buf.Bytes()
}

// sequence returns n bytes counting up from start.
func sequence(n int, start byte) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = start + byte(i)
	}
	return out
}

type countingReader struct {
	r io.Reader
	n int
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += n
	return n, err
}

func TestHeader(t *testing.T) {
	t.Run("MarshalUnmarshal", func(t *testing.T) {
		original := withMips(newHeader(256, 128, pfA8R8G8B8), 9)
		original.Caps2 = Caps2Cubemap | Caps2CubemapAllFaces
		original.Reserved1[3] = 0xdeadbeef

		data, err := original.MarshalBinary()
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if len(data) != HeaderSize {
			t.Fatalf("encoded size: got %d, want %d", len(data), HeaderSize)
		}

		var decoded Header
		if err := decoded.UnmarshalBinary(data); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if decoded != original {
			t.Errorf("mismatch: got %+v, want %+v", decoded, original)
		}
	})

	t.Run("Validate", func(t *testing.T) {
		base := newHeader(4, 4, pfA8R8G8B8)

		tests := []struct {
			name   string
			modify func(*Header)
			strict bool
			valid  bool
		}{
			{"Valid", func(h *Header) {}, false, true},
			{"ValidStrict", func(h *Header) {}, true, true},
			{"BadSize", func(h *Header) { h.Size = 100 }, false, false},
			{"BadPixelFormatSize", func(h *Header) { h.PixelFormat.Size = 24 }, false, false},
			{"PitchAndLinearSize", func(h *Header) { h.Flags |= FlagPitch | FlagLinearSize }, false, false},
			{"NoCapsFlagLax", func(h *Header) { h.Flags &^= FlagCaps }, false, true},
			{"NoCapsFlagStrict", func(h *Header) { h.Flags &^= FlagCaps }, true, false},
			{"NoPixelFormatFlagStrict", func(h *Header) { h.Flags &^= FlagPixelFormat }, true, false},
			{"NoTextureCapStrict", func(h *Header) { h.Caps = 0 }, true, false},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				h := base
				tt.modify(&h)
				err := h.Validate(tt.strict)
				if tt.valid && err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				if !tt.valid && !errors.Is(err, ErrInvalidHeader) {
					t.Errorf("expected ErrInvalidHeader, got %v", err)
				}
			})
		}
	})

	t.Run("DX10RoundTrip", func(t *testing.T) {
		original := HeaderDX10{
			Format:    format.DXGIFormatBC7UNorm,
			Dimension: DimensionTexture2D,
			MiscFlag:  MiscTextureCube,
			ArraySize: 6,
		}
		data, err := original.MarshalBinary()
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var decoded HeaderDX10
		if err := decoded.UnmarshalBinary(data); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if decoded != original {
			t.Errorf("mismatch: got %+v, want %+v", decoded, original)
		}
		if err := decoded.UnmarshalBinary(data[:10]); !errors.Is(err, ErrInvalidHeader) {
			t.Errorf("short buffer: expected ErrInvalidHeader, got %v", err)
		}
	})
}

func TestDecode(t *testing.T) {
	t.Run("UncompressedSingleSurface", func(t *testing.T) {
		payload := sequence(64, 0)
		f, err := DecodeBytes(buildDDS(t, newHeader(4, 4, pfA8R8G8B8), nil, payload))
		if err != nil {
			t.Fatalf("decode: %v", err)
		}

		if f.Format.Legacy != format.D3DFormatA8R8G8B8 {
			t.Errorf("format: got %s", f.Format)
		}
		if f.BitsPerPixel != 32 || f.Pitch != 16 || f.LinearSize != 64 {
			t.Errorf("bpp %d pitch %d linear %d, want 32 16 64", f.BitsPerPixel, f.Pitch, f.LinearSize)
		}
		if f.ResourceCount != 1 || len(f.Textures) != 1 {
			t.Fatalf("resources: got %d/%d, want 1", f.ResourceCount, len(f.Textures))
		}
		if f.Depth != 1 || f.MipMapCount != 0 || f.HasMipmaps() {
			t.Errorf("depth %d mips %d, want 1 and 0", f.Depth, f.MipMapCount)
		}
		if !f.HasAlpha() || f.IsCompressed() || f.IsExtended() || f.IsCubeMap() || f.IsVolume() {
			t.Errorf("unexpected properties: %s", f)
		}

		surfaces := f.Textures[0].Surfaces
		if len(surfaces) != 1 {
			t.Fatalf("surfaces: got %d, want 1", len(surfaces))
		}
		s := surfaces[0]
		if s.Kind != KindTexture2D || s.Level != 0 || s.Width != 4 || s.Height != 4 {
			t.Errorf("surface: got %s", s)
		}
		if !bytes.Equal(s.Data, payload) {
			t.Error("surface data mismatch")
		}
		if f.TotalSize != 64 {
			t.Errorf("total size: got %d, want 64", f.TotalSize)
		}
	})

	t.Run("OneDimensional", func(t *testing.T) {
		f, err := DecodeBytes(buildDDS(t, newHeader(8, 1, pfL8), nil, sequence(8, 0)))
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if k := f.Textures[0].Surfaces[0].Kind; k != KindTexture1D {
			t.Errorf("kind: got %s, want 1D", k)
		}
	})

	t.Run("LegacyBlockCompressed", func(t *testing.T) {
		f, err := DecodeBytes(buildDDS(t, newHeader(8, 8, pfFourCC("DXT1")), nil, sequence(32, 0)))
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if f.Format.Legacy != format.D3DFormatDXT1 || !f.IsCompressed() {
			t.Errorf("format: got %s", f.Format)
		}
		if f.Pitch != 16 || f.LinearSize != 32 {
			t.Errorf("pitch %d linear %d, want 16 and 32", f.Pitch, f.LinearSize)
		}
	})

	t.Run("ExtendedArray", func(t *testing.T) {
		for _, modern := range []format.DXGIFormat{format.DXGIFormatBC3UNorm, format.DXGIFormatBC7UNorm} {
			t.Run(modern.String(), func(t *testing.T) {
				ext := &HeaderDX10{Format: modern, Dimension: DimensionTexture2D, ArraySize: 3}
				payload := sequence(3*64, 0)

				f, err := DecodeBytes(buildDDS(t, newHeader(8, 8, pfDX10), ext, payload))
				if err != nil {
					t.Fatalf("decode: %v", err)
				}
				if !f.IsExtended() || f.Format.Modern != modern || f.Format.Legacy != format.D3DFormatUnknown {
					t.Errorf("format: got %s", f.Format)
				}
				if f.ResourceCount != 3 || len(f.Textures) != 3 {
					t.Fatalf("resources: got %d/%d, want 3", f.ResourceCount, len(f.Textures))
				}
				for i, tex := range f.Textures {
					if len(tex.Surfaces) != 1 || len(tex.Surfaces[0].Data) != 64 {
						t.Errorf("texture %d: unexpected surfaces %v", i, tex.Surfaces)
						continue
					}
					if !bytes.Equal(tex.Surfaces[0].Data, payload[i*64:(i+1)*64]) {
						t.Errorf("texture %d: data out of order", i)
					}
				}
			})
		}
	})

	t.Run("ExtendedArraySizeZero", func(t *testing.T) {
		ext := &HeaderDX10{Format: format.DXGIFormatR8G8B8A8UNorm, Dimension: DimensionTexture2D}
		f, err := DecodeBytes(buildDDS(t, newHeader(2, 2, pfDX10), ext, sequence(16, 0)))
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if f.ResourceCount != 1 || len(f.Textures) != 1 {
			t.Errorf("resources: got %d, want 1", f.ResourceCount)
		}
	})

	t.Run("MipChain", func(t *testing.T) {
		payload := sequence(1024+256+64+16+4, 0)
		f, err := DecodeBytes(buildDDS(t, withMips(newHeader(16, 16, pfA8R8G8B8), 5), nil, payload))
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if f.MipMapCount != 5 {
			t.Errorf("mip count: got %d, want 5", f.MipMapCount)
		}

		surfaces := f.Textures[0].Surfaces
		if len(surfaces) != 5 {
			t.Fatalf("surfaces: got %d, want 5", len(surfaces))
		}
		dims := []int{16, 8, 4, 2, 1}
		offset := 0
		for i, s := range surfaces {
			if s.Level != i || s.Width != dims[i] || s.Height != dims[i] {
				t.Errorf("level %d: got %s", i, s)
			}
			want := dims[i] * dims[i] * 4
			if len(s.Data) != want {
				t.Errorf("level %d: %d bytes, want %d", i, len(s.Data), want)
			}
			if !bytes.Equal(s.Data, payload[offset:offset+want]) {
				t.Errorf("level %d: data mismatch", i)
			}
			offset += want
		}
	})

	t.Run("MipChainStopsAtZero", func(t *testing.T) {
		f, err := DecodeBytes(buildDDS(t, withMips(newHeader(4, 4, pfA8R8G8B8), 10), nil, sequence(64+16+4, 0)))
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if n := len(f.Textures[0].Surfaces); n != 3 {
			t.Errorf("surfaces: got %d, want 3", n)
		}
	})

	t.Run("CompressedMipChain", func(t *testing.T) {
		// 16x16, 8x8, 4x4, then 2x2 and 1x1 still take a full block each.
		f, err := DecodeBytes(buildDDS(t, withMips(newHeader(16, 16, pfFourCC("DXT1")), 5), nil, sequence(128+32+8+8+8, 0)))
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		sizes := []int{128, 32, 8, 8, 8}
		for i, s := range f.Textures[0].Surfaces {
			if len(s.Data) != sizes[i] {
				t.Errorf("level %d: %d bytes, want %d", i, len(s.Data), sizes[i])
			}
		}
	})

	t.Run("MipCountWithoutCaps", func(t *testing.T) {
		h := newHeader(4, 4, pfA8R8G8B8)
		h.MipMapCount = 3
		f, err := DecodeBytes(buildDDS(t, h, nil, sequence(64, 0)))
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if f.MipMapCount != 0 || len(f.Textures[0].Surfaces) != 1 {
			t.Errorf("mips %d surfaces %d, want 0 and 1", f.MipMapCount, len(f.Textures[0].Surfaces))
		}
	})

	t.Run("ReadHeaderPosition", func(t *testing.T) {
		payload := sequence(64, 7)
		r := bytes.NewReader(buildDDS(t, newHeader(4, 4, pfA8R8G8B8), nil, payload))
		f, err := ReadHeader(r)
		if err != nil {
			t.Fatalf("read header: %v", err)
		}
		if f.Textures != nil {
			t.Error("ReadHeader read surfaces")
		}
		rest, _ := io.ReadAll(r)
		if !bytes.Equal(rest, payload) {
			t.Errorf("reader not at first surface: %d bytes left", len(rest))
		}
	})
}

func TestDecodeCubeMap(t *testing.T) {
	t.Run("PartialFaces", func(t *testing.T) {
		h := newHeader(4, 4, pfA8R8G8B8)
		h.Caps |= CapsComplex
		h.Caps2 = Caps2Cubemap | Caps2CubemapPositiveX | Caps2CubemapPositiveY | Caps2CubemapNegativeZ

		payload := append(append(sequence(64, 0), sequence(64, 100)...), sequence(64, 200)...)
		f, err := DecodeBytes(buildDDS(t, h, nil, payload))
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !f.IsCubeMap() || f.Depth != 3 {
			t.Fatalf("cube %v depth %d, want true and 3", f.IsCubeMap(), f.Depth)
		}

		surfaces := f.Textures[0].Surfaces
		kinds := []SurfaceKind{KindCubemapPositiveX, KindCubemapPositiveY, KindCubemapNegativeZ}
		if len(surfaces) != len(kinds) {
			t.Fatalf("surfaces: got %d, want %d", len(surfaces), len(kinds))
		}
		for i, s := range surfaces {
			if s.Kind != kinds[i] {
				t.Errorf("face %d: got %s, want %s", i, s.Kind, kinds[i])
			}
			if !s.Kind.IsCubeFace() {
				t.Errorf("face %d: %s not a cube face", i, s.Kind)
			}
			if !bytes.Equal(s.Data, payload[i*64:(i+1)*64]) {
				t.Errorf("face %d: data out of order", i)
			}
		}
	})

	t.Run("FaceMajorMips", func(t *testing.T) {
		h := withMips(newHeader(4, 4, pfA8R8G8B8), 3)
		h.Caps2 = Caps2Cubemap | Caps2CubemapAllFaces
		f, err := DecodeBytes(buildDDS(t, h, nil, sequence(6*(64+16+4), 0)))
		if err != nil {
			t.Fatalf("decode: %v", err)
		}

		tex := f.Textures[0]
		if len(tex.Surfaces) != 18 {
			t.Fatalf("surfaces: got %d, want 18", len(tex.Surfaces))
		}
		for i, s := range tex.Surfaces {
			if s.Level != i%3 {
				t.Errorf("surface %d: level %d, want %d", i, s.Level, i%3)
			}
		}
		if chain := tex.ByKind(KindCubemapNegativeY); len(chain) != 3 || chain[0].Width != 4 || chain[2].Width != 1 {
			t.Errorf("-Y chain: %v", chain)
		}
		if f.TotalSize != 6*(64+16+4) {
			t.Errorf("total size: got %d", f.TotalSize)
		}
	})

	t.Run("NoFaces", func(t *testing.T) {
		h := newHeader(4, 4, pfA8R8G8B8)
		h.Caps2 = Caps2Cubemap
		f, err := DecodeBytes(buildDDS(t, h, nil, nil))
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if f.Depth != 0 || len(f.Textures) != 0 {
			t.Errorf("depth %d textures %d, want 0 and 0", f.Depth, len(f.Textures))
		}
	})

	t.Run("ExtendedAllFaces", func(t *testing.T) {
		ext := &HeaderDX10{Format: format.DXGIFormatBC1UNorm, Dimension: DimensionTexture2D, MiscFlag: MiscTextureCube, ArraySize: 1}
		f, err := DecodeBytes(buildDDS(t, newHeader(4, 4, pfDX10), ext, sequence(6*8, 0)))
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if f.Depth != 6 || len(f.Textures[0].Surfaces) != 6 {
			t.Errorf("depth %d surfaces %d, want 6 and 6", f.Depth, len(f.Textures[0].Surfaces))
		}
	})
}

func TestDecodeVolume(t *testing.T) {
	h := withMips(newHeader(4, 4, pfL8), 3)
	h.Flags |= FlagDepth
	h.Depth = 4
	h.Caps2 = Caps2Volume

	// 4x4x4, 2x2x2, 1x1x1
	payload := sequence(64+8+1, 0)
	f, err := DecodeBytes(buildDDS(t, h, nil, payload))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !f.IsVolume() || f.Depth != 4 {
		t.Fatalf("volume %v depth %d, want true and 4", f.IsVolume(), f.Depth)
	}

	surfaces := f.Textures[0].Surfaces
	want := []struct{ w, d, size int }{{4, 4, 64}, {2, 2, 8}, {1, 1, 1}}
	if len(surfaces) != len(want) {
		t.Fatalf("surfaces: got %d, want %d", len(surfaces), len(want))
	}
	for i, s := range surfaces {
		if s.Kind != KindTexture3D || s.Width != want[i].w || s.Depth != want[i].d || len(s.Data) != want[i].size {
			t.Errorf("level %d: got %s", i, s)
		}
	}
}

func TestDecodeFlip(t *testing.T) {
	t.Run("Rows", func(t *testing.T) {
		payload := append(sequence(16, 0), sequence(16, 100)...)
		f, err := DecodeBytes(buildDDS(t, newHeader(4, 2, pfA8R8G8B8), nil, payload), WithVerticalFlip(true))
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		want := append(sequence(16, 100), sequence(16, 0)...)
		if got := f.Textures[0].Surfaces[0].Data; !bytes.Equal(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("VolumeSlices", func(t *testing.T) {
		h := newHeader(2, 2, pfL8)
		h.Flags |= FlagDepth
		h.Depth = 2
		h.Caps2 = Caps2Volume

		f, err := DecodeBytes(buildDDS(t, h, nil, []byte{1, 2, 3, 4, 5, 6, 7, 8}), WithVerticalFlip(true))
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		want := []byte{3, 4, 1, 2, 7, 8, 5, 6}
		if got := f.Textures[0].Surfaces[0].Data; !bytes.Equal(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("UnsupportedBlockFormat", func(t *testing.T) {
		ext := &HeaderDX10{Format: format.DXGIFormatBC7UNorm, Dimension: DimensionTexture2D, ArraySize: 1}
		_, err := DecodeBytes(buildDDS(t, newHeader(8, 8, pfDX10), ext, sequence(64, 0)), WithVerticalFlip(true))
		if !errors.Is(err, flip.ErrUnsupportedFormat) {
			t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
		}
		if !IsSemantic(err) || IsStructural(err) {
			t.Errorf("misclassified: %v", err)
		}
	})
}

func TestDecodeErrors(t *testing.T) {
	t.Run("BadMagic", func(t *testing.T) {
		data := append([]byte("BAD "), make([]byte, 200)...)
		r := &countingReader{r: bytes.NewReader(data)}

		_, err := Decode(r)
		if !errors.Is(err, ErrNotDDS) {
			t.Fatalf("expected ErrNotDDS, got %v", err)
		}
		if r.n != 4 {
			t.Errorf("consumed %d bytes, want 4", r.n)
		}
	})

	tests := []struct {
		name   string
		data   func(t *testing.T) []byte
		opts   []Option
		target error
	}{
		{
			name:   "Empty",
			data:   func(t *testing.T) []byte { return nil },
			target: ErrNotDDS,
		},
		{
			name: "ShortHeader",
			data: func(t *testing.T) []byte {
				return buildDDS(t, newHeader(4, 4, pfA8R8G8B8), nil, nil)[:60]
			},
			target: ErrInvalidHeader,
		},
		{
			name: "BadHeaderSize",
			data: func(t *testing.T) []byte {
				h := newHeader(4, 4, pfA8R8G8B8)
				h.Size = 120
				return buildDDS(t, h, nil, sequence(64, 0))
			},
			target: ErrInvalidHeader,
		},
		{
			name: "PitchAndLinearSize",
			data: func(t *testing.T) []byte {
				h := newHeader(4, 4, pfA8R8G8B8)
				h.Flags |= FlagPitch | FlagLinearSize
				return buildDDS(t, h, nil, sequence(64, 0))
			},
			target: ErrInvalidHeader,
		},
		{
			name: "StrictMissingCaps",
			data: func(t *testing.T) []byte {
				h := newHeader(4, 4, pfA8R8G8B8)
				h.Flags &^= FlagCaps
				return buildDDS(t, h, nil, sequence(64, 0))
			},
			opts:   []Option{WithStrict(true)},
			target: ErrInvalidHeader,
		},
		{
			name: "MissingDimensions",
			data: func(t *testing.T) []byte {
				h := newHeader(4, 4, pfA8R8G8B8)
				h.Flags &^= FlagHeight
				return buildDDS(t, h, nil, sequence(64, 0))
			},
			target: ErrMissingDimensions,
		},
		{
			name: "ShortExtendedHeader",
			data: func(t *testing.T) []byte {
				return buildDDS(t, newHeader(4, 4, pfDX10), nil, sequence(10, 0))
			},
			target: ErrInvalidHeader,
		},
		{
			name: "UnknownFourCC",
			data: func(t *testing.T) []byte {
				return buildDDS(t, newHeader(4, 4, pfFourCC("ABCD")), nil, sequence(64, 0))
			},
			target: ErrUnknownFormat,
		},
		{
			name: "UnknownModern",
			data: func(t *testing.T) []byte {
				ext := &HeaderDX10{Format: format.DXGIFormat(500), Dimension: DimensionTexture2D}
				return buildDDS(t, newHeader(4, 4, pfDX10), ext, sequence(64, 0))
			},
			target: ErrUnknownFormat,
		},
		{
			name: "CompressedDimensions",
			data: func(t *testing.T) []byte {
				return buildDDS(t, newHeader(6, 6, pfFourCC("DXT1")), nil, sequence(32, 0))
			},
			target: ErrInvalidCompressedDimensions,
		},
		{
			name: "Truncated",
			data: func(t *testing.T) []byte {
				return buildDDS(t, newHeader(4, 4, pfA8R8G8B8), nil, sequence(40, 0))
			},
			target: ErrTruncated,
		},
		{
			name: "TruncatedMip",
			data: func(t *testing.T) []byte {
				return buildDDS(t, withMips(newHeader(4, 4, pfA8R8G8B8), 3), nil, sequence(64+16, 0))
			},
			target: ErrTruncated,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeBytes(tt.data(t), tt.opts...)
			if !errors.Is(err, tt.target) {
				t.Errorf("expected %v, got %v", tt.target, err)
			}
		})
	}

	t.Run("Classification", func(t *testing.T) {
		structural := []error{ErrNotDDS, ErrInvalidHeader, ErrMissingDimensions, ErrTruncated}
		semantic := []error{ErrInvalidCompressedDimensions, ErrUnknownFormat, flip.ErrUnsupportedFormat}
		for _, err := range structural {
			if !IsStructural(err) || IsSemantic(err) {
				t.Errorf("%v: misclassified", err)
			}
		}
		for _, err := range semantic {
			if IsStructural(err) || !IsSemantic(err) {
				t.Errorf("%v: misclassified", err)
			}
		}
	})
}

func TestDecodeFile(t *testing.T) {
	payload := sequence(64, 0)
	raw := buildDDS(t, newHeader(4, 4, pfA8R8G8B8), nil, payload)
	dir := t.TempDir()

	for _, kind := range []archive.Kind{archive.KindRaw, archive.KindEnvelope, archive.KindZstd, archive.KindLZ4} {
		t.Run(kind.String(), func(t *testing.T) {
			var buf bytes.Buffer
			if err := archive.Compress(&buf, raw, kind); err != nil {
				t.Fatalf("compress: %v", err)
			}
			path := filepath.Join(dir, kind.String()+".dds")
			if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
				t.Fatalf("write: %v", err)
			}

			f, err := DecodeFile(path)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if !bytes.Equal(f.Textures[0].Surfaces[0].Data, payload) {
				t.Error("surface data mismatch")
			}
		})
	}

	t.Run("Missing", func(t *testing.T) {
		if _, err := DecodeFile(filepath.Join(dir, "missing.dds")); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("expected os.ErrNotExist, got %v", err)
		}
	})
}

func TestDecodeOversizedHeaders(t *testing.T) {
	pfA32B32G32R32F := format.PixelFormat{
		Size: format.PixelFormatSize, Flags: format.PixelFourCC, FourCC: format.D3DFormatA32B32G32R32F,
	}

	t.Run("DimensionsOverflow", func(t *testing.T) {
		_, err := DecodeBytes(buildDDS(t, newHeader(0xffffffff, 0xffffffff, pfA32B32G32R32F), nil, nil))
		if !errors.Is(err, ErrInvalidHeader) {
			t.Fatalf("expected ErrInvalidHeader, got %v", err)
		}
		if !errors.Is(err, layout.ErrOverflow) {
			t.Errorf("expected layout.ErrOverflow in chain, got %v", err)
		}
	})

	t.Run("LargeSurfaceShortInput", func(t *testing.T) {
		_, err := DecodeBytes(buildDDS(t, newHeader(0x10000, 0x10000, pfA8R8G8B8), nil, sequence(64, 0)))
		if !errors.Is(err, ErrTruncated) {
			t.Errorf("expected ErrTruncated, got %v", err)
		}
	})

	t.Run("MipCount", func(t *testing.T) {
		h := withMips(newHeader(4, 4, pfA8R8G8B8), 0xffffffff)
		f, err := DecodeBytes(buildDDS(t, h, nil, sequence(64+16+4, 0)))
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if n := len(f.Textures[0].Surfaces); n != 3 {
			t.Errorf("surfaces: got %d, want 3", n)
		}
	})

	t.Run("ArraySize", func(t *testing.T) {
		ext := &HeaderDX10{Format: format.DXGIFormatR8G8B8A8UNorm, Dimension: DimensionTexture2D, ArraySize: 0xffffffff}
		_, err := DecodeBytes(buildDDS(t, newHeader(4, 4, pfDX10), ext, sequence(2*64, 0)))
		if !errors.Is(err, ErrTruncated) {
			t.Errorf("expected ErrTruncated, got %v", err)
		}
	})

	t.Run("VolumeDepth", func(t *testing.T) {
		h := newHeader(4, 4, pfA8R8G8B8)
		h.Flags |= FlagDepth
		h.Depth = 0xffffffff
		h.Caps2 = Caps2Volume
		_, err := DecodeBytes(buildDDS(t, h, nil, sequence(64, 0)))
		if !errors.Is(err, ErrTruncated) {
			t.Errorf("expected ErrTruncated, got %v", err)
		}
	})

	t.Run("ZeroHeight", func(t *testing.T) {
		ext := &HeaderDX10{Format: format.DXGIFormatR8G8B8A8UNorm, Dimension: DimensionTexture2D, ArraySize: 0xffffffff}
		_, err := DecodeBytes(buildDDS(t, newHeader(4, 0, pfDX10), ext, nil))
		if !errors.Is(err, ErrInvalidHeader) {
			t.Errorf("expected ErrInvalidHeader, got %v", err)
		}
	})
}

func TestDecodePackedVideo(t *testing.T) {
	h := newHeader(4, 4, pfDX10)
	h.Flags |= FlagPitch
	h.PitchOrLinearSize = 8
	ext := &HeaderDX10{Format: format.DXGIFormatYUY2, Dimension: DimensionTexture2D, ArraySize: 1}

	var payload []byte
	for row := 0; row < 4; row++ {
		payload = append(payload, sequence(8, byte(row*10))...)
	}
	data := buildDDS(t, h, ext, payload)

	t.Run("Plain", func(t *testing.T) {
		f, err := DecodeBytes(data)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if f.Pitch != 8 || f.LinearSize != 32 {
			t.Errorf("pitch %d linear %d, want 8 and 32", f.Pitch, f.LinearSize)
		}
		if !bytes.Equal(f.Textures[0].Surfaces[0].Data, payload) {
			t.Error("surface data mismatch")
		}
	})

	t.Run("Flipped", func(t *testing.T) {
		f, err := DecodeBytes(data, WithVerticalFlip(true))
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		var want []byte
		for row := 3; row >= 0; row-- {
			want = append(want, sequence(8, byte(row*10))...)
		}
		if got := f.Textures[0].Surfaces[0].Data; !bytes.Equal(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})
}

package layout

import (
	"errors"
	"math"
	"testing"

	"github.com/goopsie/ddsfile/pkg/format"
)

func TestBlocks(t *testing.T) {
	tests := []struct {
		dim, want int
	}{
		{0, 1}, {1, 1}, {3, 1}, {4, 1}, {5, 2}, {8, 2}, {1024, 256},
	}
	for _, tt := range tests {
		if got := Blocks(tt.dim); got != tt.want {
			t.Errorf("Blocks(%d) = %d, want %d", tt.dim, got, tt.want)
		}
	}
}

func TestPitch(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		pair     format.Pair
		declared int
		want     int
	}{
		{"A8R8G8B8", 4, format.Pair{Legacy: format.D3DFormatA8R8G8B8}, 0, 16},
		{"R8G8B8", 3, format.Pair{Legacy: format.D3DFormatR8G8B8}, 0, 9},
		{"A1RoundsUp", 3, format.Pair{Legacy: format.D3DFormatA1}, 0, 1},
		{"ZeroWidth", 0, format.Pair{Legacy: format.D3DFormatA8R8G8B8}, 0, 1},
		{"DXT1", 8, format.Pair{Legacy: format.D3DFormatDXT1}, 0, 16},
		{"DXT5", 8, format.Pair{Legacy: format.D3DFormatDXT5}, 0, 32},
		{"BC1SubBlock", 1, format.Pair{Modern: format.DXGIFormatBC1UNorm}, 0, 8},
		{"BC7", 8, format.Pair{Modern: format.DXGIFormatBC7UNorm}, 0, 32},
		{"R8G8B8G8Odd", 5, format.Pair{Legacy: format.D3DFormatR8G8B8G8}, 0, 12},
		{"YUY2Legacy", 4, format.Pair{Legacy: format.D3DFormatYUY2}, 0, 8},
		{"YUY2ModernDeclared", 4, format.Pair{Modern: format.DXGIFormatYUY2}, 100, 100},
		{"R32G32B32A32", 2, format.Pair{Modern: format.DXGIFormatR32G32B32A32Float}, 0, 32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Pitch(tt.width, tt.pair, tt.declared)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}

	t.Run("InvalidFormat", func(t *testing.T) {
		_, err := Pitch(4, format.Pair{Modern: format.DXGIFormat(999)}, 0)
		if !errors.Is(err, format.ErrInvalidFormat) {
			t.Errorf("expected ErrInvalidFormat, got %v", err)
		}
	})
}

func TestLinearSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		pair          format.Pair
		declared      int
		want          int
	}{
		{"A8R8G8B8_4x4", 4, 4, format.Pair{Legacy: format.D3DFormatA8R8G8B8}, 0, 64},
		{"DXT1_8x8", 8, 8, format.Pair{Legacy: format.D3DFormatDXT1}, 0, 32},
		{"BC3_8x8", 8, 8, format.Pair{Modern: format.DXGIFormatBC3UNorm}, 0, 64},
		{"BC7_8x8", 8, 8, format.Pair{Modern: format.DXGIFormatBC7UNorm}, 0, 64},
		{"BC1_1x1", 1, 1, format.Pair{Modern: format.DXGIFormatBC1UNorm}, 0, 8},
		{"L8_3x5", 3, 5, format.Pair{Legacy: format.D3DFormatL8}, 0, 15},
		{"YUY2Declared", 4, 4, format.Pair{Modern: format.DXGIFormatYUY2}, 100, 400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LinearSize(tt.width, tt.height, tt.pair, tt.declared)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

// Linear size is always pitch times rows, for every catalogued format.
func TestLinearSizeIsPitchTimesRows(t *testing.T) {
	dims := [][2]int{{1, 1}, {4, 4}, {7, 3}, {16, 8}, {256, 64}}

	for f := format.DXGIFormatR32G32B32A32Typeless; f <= format.DXGIFormatB4G4R4A4UNorm; f++ {
		pair := format.Pair{Modern: f}
		for _, d := range dims {
			pitch, err := Pitch(d[0], pair, 64)
			if err != nil {
				t.Fatalf("%s: pitch: %v", f, err)
			}
			size, err := LinearSize(d[0], d[1], pair, 64)
			if err != nil {
				t.Fatalf("%s: linear size: %v", f, err)
			}
			if size != pitch*Rows(d[1], pair) {
				t.Errorf("%s %dx%d: linear %d, pitch %d, rows %d", f, d[0], d[1], size, pitch, Rows(d[1], pair))
			}
			if size <= 0 {
				t.Errorf("%s %dx%d: non-positive size %d", f, d[0], d[1], size)
			}
		}
	}
}

func TestMul(t *testing.T) {
	tests := []struct {
		name    string
		a, b    int
		want    int
		wantErr bool
	}{
		{"Small", 6, 7, 42, false},
		{"Zero", 0, math.MaxInt, 0, false},
		{"Limit", math.MaxInt, 1, math.MaxInt, false},
		{"Overflow", math.MaxInt/2 + 1, 2, 0, true},
		{"Negative", -1, 4, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Mul(tt.a, tt.b)
			if tt.wantErr {
				if !errors.Is(err, ErrOverflow) {
					t.Fatalf("expected ErrOverflow, got %d, %v", got, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSizeOverflow(t *testing.T) {
	argb := format.Pair{Legacy: format.D3DFormatA8R8G8B8}
	tests := []struct {
		name          string
		width, height int
		pair          format.Pair
	}{
		{"PitchBits", math.MaxInt / 2, 1, argb},
		{"PitchTimesRows", math.MaxInt / 64, 64, argb},
		{"BlockRows", math.MaxInt / 2, math.MaxInt / 2, format.Pair{Legacy: format.D3DFormatDXT1}},
		{"NegativeWidth", -4, 4, argb},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LinearSize(tt.width, tt.height, tt.pair, 0); !errors.Is(err, ErrOverflow) {
				t.Errorf("expected ErrOverflow, got %v", err)
			}
		})
	}
}

// Package format catalogs the two pixel format enumerations found in DDS
// files: legacy D3DFORMAT codes and modern DXGI_FORMAT codes.
//
// Both enumerations expose bits per pixel, block-compression and packed
// classification. A Pair carries whichever of the two a file declares and
// dispatches to the one that is known.
package format

import (
	"errors"
	"fmt"
)

// ErrInvalidFormat is returned when a lookup is made for a code outside the catalog.
var ErrInvalidFormat = errors.New("format: invalid format")

// Pair holds the legacy and modern format of one texture. Legacy takes
// priority when both are set.
type Pair struct {
	Legacy D3DFormat
	Modern DXGIFormat
}

// Known reports whether at least one side of the pair is resolvable.
func (p Pair) Known() bool {
	return p.Legacy.IsKnown() || p.Modern.IsKnown()
}

// Effective returns the modern code describing the pair's layout. A pair
// carrying only a legacy code is mapped through LegacyToModern.
func (p Pair) Effective() DXGIFormat {
	if p.Modern != DXGIFormatUnknown {
		return p.Modern
	}
	return LegacyToModern(p.Legacy)
}

// BitsPerPixel looks the pair up in the legacy table first and falls back
// to the modern table. It fails only when neither side resolves.
func (p Pair) BitsPerPixel() (int, error) {
	var legacyErr error
	if p.Legacy != D3DFormatUnknown {
		bpp, err := p.Legacy.BitsPerPixel()
		if err == nil {
			return bpp, nil
		}
		legacyErr = err
	}
	if p.Modern != DXGIFormatUnknown {
		bpp, err := p.Modern.BitsPerPixel()
		if err == nil {
			return bpp, nil
		}
		if legacyErr != nil {
			return 0, fmt.Errorf("resolve %s: %w", p, errors.Join(legacyErr, err))
		}
		return 0, fmt.Errorf("resolve %s: %w", p, err)
	}
	if legacyErr != nil {
		return 0, fmt.Errorf("resolve %s: %w", p, legacyErr)
	}
	return 0, nil
}

// IsBlockCompressed reports whether either side of the pair is block compressed.
func (p Pair) IsBlockCompressed() bool {
	return p.Legacy.IsBlockCompressed() || p.Modern.IsBlockCompressed()
}

// HasAlpha reports whether the resolved format carries alpha.
func (p Pair) HasAlpha() bool {
	if p.Legacy.IsKnown() {
		return p.Legacy.HasAlpha()
	}
	return p.Modern.HasAlpha()
}

func (p Pair) String() string {
	switch {
	case p.Legacy != D3DFormatUnknown && p.Modern != DXGIFormatUnknown:
		return fmt.Sprintf("%s/%s", p.Legacy, p.Modern)
	case p.Modern != DXGIFormatUnknown:
		return p.Modern.String()
	default:
		return p.Legacy.String()
	}
}

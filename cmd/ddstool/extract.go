package main

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/goopsie/ddsfile/pkg/dds"
	"github.com/goopsie/ddsfile/pkg/preview"
)

// kindNames are file name fragments for each surface kind.
var kindNames = map[dds.SurfaceKind]string{
	dds.KindTexture1D:        "1d",
	dds.KindTexture2D:        "2d",
	dds.KindTexture3D:        "3d",
	dds.KindCubemapPositiveX: "px",
	dds.KindCubemapNegativeX: "nx",
	dds.KindCubemapPositiveY: "py",
	dds.KindCubemapNegativeY: "ny",
	dds.KindCubemapPositiveZ: "pz",
	dds.KindCubemapNegativeZ: "nz",
}

func surfaceName(base string, resource int, s *dds.Surface) string {
	return fmt.Sprintf("%s_r%d_%s_m%d", base, resource, kindNames[s.Kind], s.Level)
}

// extractFile decodes path and writes every surface to outDir, as PNG when
// a preview converter exists for the format and as raw bytes otherwise.
// It returns the number of files written.
func extractFile(path, outDir string) (int, error) {
	f, err := dds.DecodeFile(path, decodeOptions()...)
	if err != nil {
		return 0, err
	}

	base := trimDDSExt(filepath.Base(path))
	written := 0
	for i, tex := range f.Textures {
		for _, s := range tex.Surfaces {
			name := filepath.Join(outDir, surfaceName(base, i, s))
			asPNG, err := writeSurface(name, s, f)
			if err != nil {
				return written, fmt.Errorf("write %s: %w", name, err)
			}
			written++
			if verbose {
				ext := ".bin"
				if asPNG {
					ext = ".png"
				}
				fmt.Printf("  %s%s (%s)\n", name, ext, s)
			}
		}
	}

	fmt.Printf("Extracted %s → %s (%d surfaces)\n", path, outDir, written)
	return written, nil
}

func writeSurface(name string, s *dds.Surface, f *dds.File) (bool, error) {
	if !rawOnly && s.Width > 0 && s.Height > 0 {
		img, err := preview.Surface(s, f.Format)
		switch {
		case err == nil:
			return true, writePNG(name+".png", img)
		case !errors.Is(err, preview.ErrUnsupported):
			return false, err
		}
	}
	return false, os.WriteFile(name+".bin", s.Data, 0644)
}

func writePNG(path string, img image.Image) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

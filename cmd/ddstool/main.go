// Package main provides a command-line tool for inspecting and extracting DDS textures.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goopsie/ddsfile/pkg/archive"
	"github.com/goopsie/ddsfile/pkg/dds"
)

var (
	mode           string
	inputPath      string
	outputDir      string
	outputFile     string
	archiveKind    string
	flipVertical   bool
	strict         bool
	rawOnly        bool
	forceOverwrite bool
	verbose        bool
)

func init() {
	flag.StringVar(&mode, "mode", "", "Operation mode: info, extract, batch, pack")
	flag.StringVar(&inputPath, "input", "", "Input DDS file (info, extract, pack) or directory (batch)")
	flag.StringVar(&outputDir, "output", "", "Output directory for extract and batch")
	flag.StringVar(&outputFile, "out", "", "Output file for pack")
	flag.StringVar(&archiveKind, "kind", "envelope", "Wrapping for pack: envelope, zstd, lz4")
	flag.BoolVar(&flipVertical, "flip", false, "Flip surfaces vertically while decoding")
	flag.BoolVar(&strict, "strict", false, "Require the caps and pixel format header flags")
	flag.BoolVar(&rawOnly, "raw", false, "Write raw surface bytes instead of PNG previews")
	flag.BoolVar(&forceOverwrite, "force", false, "Allow non-empty output directory")
	flag.BoolVar(&verbose, "v", false, "Print every surface")
}

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := validateFlags(); err != nil {
		flag.Usage()
		return err
	}

	switch mode {
	case "info":
		return runInfo(inputPath)
	case "extract":
		if err := prepareOutputDir(); err != nil {
			return err
		}
		_, err := extractFile(inputPath, outputDir)
		return err
	case "batch":
		if err := prepareOutputDir(); err != nil {
			return err
		}
		return runBatch()
	case "pack":
		return runPack()
	default:
		return fmt.Errorf("unknown mode: %s", mode)
	}
}

func validateFlags() error {
	if mode == "" {
		return fmt.Errorf("mode is required")
	}
	if inputPath == "" {
		return fmt.Errorf("input is required")
	}

	switch mode {
	case "info":
	case "extract", "batch":
		if outputDir == "" {
			return fmt.Errorf("%s mode requires -output", mode)
		}
	case "pack":
		if outputFile == "" {
			return fmt.Errorf("pack mode requires -out")
		}
		if _, err := archive.ParseKind(archiveKind); err != nil {
			return err
		}
	default:
		return fmt.Errorf("mode must be 'info', 'extract', 'batch' or 'pack'")
	}

	return nil
}

func decodeOptions() []dds.Option {
	return []dds.Option{
		dds.WithVerticalFlip(flipVertical),
		dds.WithStrict(strict),
	}
}

func prepareOutputDir() error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	if !forceOverwrite {
		empty, err := isDirEmpty(outputDir)
		if err != nil {
			return fmt.Errorf("check output directory: %w", err)
		}
		if !empty {
			return fmt.Errorf("output directory is not empty (use -force to override)")
		}
	}

	return nil
}

func isDirEmpty(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	_, err = f.Readdir(1)
	return err == io.EOF, nil
}

func runInfo(path string) error {
	f, err := dds.DecodeFile(path, decodeOptions()...)
	if err != nil {
		return err
	}

	fmt.Printf("File: %s\n", path)
	fmt.Printf("Dimensions: %dx%d\n", f.Width, f.Height)
	fmt.Printf("Format: %s (legacy %s, modern %s)\n", f.Format, f.Format.Legacy, f.Format.Modern)
	fmt.Printf("Bits per pixel: %d\n", f.BitsPerPixel)
	fmt.Printf("Pitch: %d\n", f.Pitch)
	fmt.Printf("Linear size: %d\n", f.LinearSize)
	fmt.Printf("Depth: %d\n", f.Depth)
	fmt.Printf("Mip levels: %d\n", f.MipMapCount)
	fmt.Printf("Resources: %d\n", f.ResourceCount)
	fmt.Printf("Cube map: %t, volume: %t, compressed: %t, alpha: %t, DX10: %t\n",
		f.IsCubeMap(), f.IsVolume(), f.IsCompressed(), f.HasAlpha(), f.IsExtended())
	fmt.Printf("Total size: %d bytes (%.2f KB)\n", f.TotalSize, float64(f.TotalSize)/1024)

	if verbose {
		for i, tex := range f.Textures {
			for _, s := range tex.Surfaces {
				fmt.Printf("  [%d] %s\n", i, s)
			}
		}
	}
	return nil
}

func runBatch() error {
	count := 0
	failed := 0

	err := filepath.Walk(inputPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !isDDSName(path) {
			return nil
		}

		relPath, _ := filepath.Rel(inputPath, path)
		outDir := filepath.Join(outputDir, trimDDSExt(relPath))
		if err := os.MkdirAll(outDir, 0755); err != nil {
			fmt.Fprintf(os.Stderr, "mkdir %s: %v\n", outDir, err)
			failed++
			return nil
		}

		if _, err := extractFile(path, outDir); err != nil {
			fmt.Fprintf(os.Stderr, "extract %s: %v\n", path, err)
			failed++
			return nil
		}

		count++
		if count%100 == 0 {
			fmt.Printf("Processed %d files...\n", count)
		}
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Printf("\nCompleted: %d files extracted, %d errors\n", count, failed)
	return nil
}

func runPack() error {
	kind, err := archive.ParseKind(archiveKind)
	if err != nil {
		return err
	}

	// Decode first so only valid textures get packed.
	if _, err := dds.DecodeFile(inputPath, decodeOptions()...); err != nil {
		return err
	}

	src, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer src.Close()

	payload, err := archive.Open(src)
	if err != nil {
		return fmt.Errorf("open payload: %w", err)
	}
	defer payload.Close()

	data, err := io.ReadAll(payload)
	if err != nil {
		return fmt.Errorf("read payload: %w", err)
	}

	out, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer out.Close()

	if err := archive.Compress(out, data, kind); err != nil {
		return fmt.Errorf("compress: %w", err)
	}

	fmt.Printf("Packed %s → %s (%s, %d bytes)\n", inputPath, outputFile, kind, len(data))
	return nil
}

var ddsExts = []string{".dds", ".dds.zst", ".dds.lz4", ".ddsz"}

func isDDSName(path string) bool {
	lower := strings.ToLower(path)
	for _, ext := range ddsExts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

func trimDDSExt(path string) string {
	lower := strings.ToLower(path)
	for _, ext := range ddsExts {
		if strings.HasSuffix(lower, ext) {
			return path[:len(path)-len(ext)]
		}
	}
	return path
}

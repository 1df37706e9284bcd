package main

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/flavioheleno/imgselect"
	"github.com/flavioheleno/imgselect/rawconv"
	"github.com/spf13/cobra"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

var (
	flagOut         string
	flagModes       []int
	flagTestPattern bool
)

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert [images...]",
		Short: "Convert images into raw assets",
		Long: `Convert resizes each image to the screen size and writes one raw file
per packing mode to <out>/mode_N/<name>.raw.

Supported inputs are PNG, JPEG, BMP and WebP. Transparent pixels are
composited over white.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !flagTestPattern {
				return errors.New("no input images given")
			}
			modes := make([]rawconv.Mode, 0, len(flagModes))
			for _, m := range flagModes {
				modes = append(modes, rawconv.Mode(m))
			}
			return convert(newLogger(), flagOut, modes, flagTestPattern, args)
		},
	}

	cmd.Flags().StringVarP(&flagOut, "out", "o", "converted", "Output directory")
	cmd.Flags().IntSliceVar(&flagModes, "mode", []int{0, 1, 2, 3, 4, 5, 6, 7}, "Packing modes to emit")
	cmd.Flags().BoolVar(&flagTestPattern, "test-pattern", false, "Also emit the calibration pattern as test_pattern.raw")

	return cmd
}

type source struct {
	name string
	img  image.Image
}

func convert(logger *slog.Logger, out string, modes []rawconv.Mode, pattern bool, paths []string) error {
	for _, m := range modes {
		if !m.Valid() {
			return fmt.Errorf("invalid mode %d", int(m))
		}
	}

	var sources []source
	if pattern {
		sources = append(sources, source{
			name: "test_pattern",
			img:  rawconv.TestPattern(imgselect.ScreenWidth, imgselect.ScreenHeight),
		})
	}
	for _, p := range paths {
		img, err := decodeFile(p)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
		sources = append(sources, source{name: name, img: img})
	}

	for _, m := range modes {
		dir := filepath.Join(out, fmt.Sprintf("mode_%d", int(m)))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
		for _, src := range sources {
			path := filepath.Join(dir, src.name+".raw")
			if err := writeRaw(path, src.img, m); err != nil {
				return err
			}
			logger.Info("converted", "image", src.name, "mode", m, "path", path)
		}
	}
	return nil
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return img, nil
}

func writeRaw(path string, img image.Image, m rawconv.Mode) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := rawconv.Encode(f, img, imgselect.ScreenWidth, imgselect.ScreenHeight, m); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}

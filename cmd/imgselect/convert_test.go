package main

import (
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/flavioheleno/imgselect"
	"github.com/flavioheleno/imgselect/assets"
	"github.com/flavioheleno/imgselect/rawconv"
	"github.com/google/go-cmp/cmp"
)

func writePNG(t *testing.T, path string, c color.Color) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, c)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestConvert(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	src := filepath.Join(in, "red.png")
	writePNG(t, src, color.RGBA{0xFF, 0, 0, 0xFF})

	modes := []rawconv.Mode{rawconv.RGB565, rawconv.InvertedRGB565}
	if err := convert(slog.New(slog.DiscardHandler), out, modes, true, []string{src}); err != nil {
		t.Fatalf("convert() error = %v", err)
	}

	size := imgselect.ScreenWidth * imgselect.ScreenHeight * 2
	tests := []struct {
		path  string
		first [2]byte
	}{
		{"mode_0/red.raw", [2]byte{0x00, 0xF8}},
		{"mode_4/red.raw", [2]byte{0xFF, 0x07}},
		{"mode_0/test_pattern.raw", [2]byte{0x00, 0xF8}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join(out, tt.path))
			if err != nil {
				t.Fatal(err)
			}
			if len(data) != size {
				t.Fatalf("len = %d, want %d", len(data), size)
			}
			if diff := cmp.Diff(tt.first, [2]byte{data[0], data[1]}); diff != "" {
				t.Errorf("first pixel mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConvertPatternMatchesDefaultAsset(t *testing.T) {
	out := t.TempDir()
	if err := convert(slog.New(slog.DiscardHandler), out, []rawconv.Mode{rawconv.RGB565}, true, nil); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(out, "mode_0", "test_pattern.raw"))
	if err != nil {
		t.Fatal(err)
	}
	want, _ := assets.Lookup(0)
	if !cmp.Equal(want, data) {
		t.Error("converted test pattern differs from the embedded default image")
	}
}

func TestConvertErrors(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	dir := t.TempDir()

	if err := convert(logger, dir, []rawconv.Mode{8}, true, nil); err == nil {
		t.Error("expected error for invalid mode")
	}
	if err := convert(logger, dir, []rawconv.Mode{rawconv.RGB565}, false, []string{filepath.Join(dir, "missing.png")}); err == nil {
		t.Error("expected error for missing input")
	}

	bad := filepath.Join(dir, "bad.png")
	if err := os.WriteFile(bad, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := convert(logger, dir, []rawconv.Mode{rawconv.RGB565}, false, []string{bad}); err == nil {
		t.Error("expected error for undecodable input")
	}
}

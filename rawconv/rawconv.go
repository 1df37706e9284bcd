// Package rawconv converts images into the raw 16-bit pixel streams compiled
// into the firmware.
//
// Output is row-major, two bytes per pixel, little-endian, with no header.
// Panels differ in channel order and polarity, so eight packings are offered;
// flashing each and looking at TestPattern shows which one a panel needs.
package rawconv

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"golang.org/x/image/draw"
)

// Mode selects how a pixel is packed into 16 bits.
type Mode int

const (
	RGB565 Mode = iota
	BGR565
	CompactRGB // 5 bits per channel, green shifted by 6
	CompactBGR
	InvertedRGB565
	InvertedBGR565
	InvertedCompactRGB
	InvertedCompactBGR
)

// Modes lists every supported mode.
var Modes = []Mode{
	RGB565, BGR565, CompactRGB, CompactBGR,
	InvertedRGB565, InvertedBGR565, InvertedCompactRGB, InvertedCompactBGR,
}

func (m Mode) String() string {
	switch m {
	case RGB565:
		return "Standard RGB565 (normal)"
	case BGR565:
		return "Standard BGR565 (normal)"
	case CompactRGB:
		return "Compact RGB565 (normal)"
	case CompactBGR:
		return "Compact BGR565 (normal)"
	case InvertedRGB565:
		return "Standard RGB565 (inverted)"
	case InvertedBGR565:
		return "Standard BGR565 (inverted)"
	case InvertedCompactRGB:
		return "Compact RGB565 (inverted)"
	case InvertedCompactBGR:
		return "Compact BGR565 (inverted)"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Valid reports whether m is one of Modes.
func (m Mode) Valid() bool {
	return m >= RGB565 && m <= InvertedCompactBGR
}

// Pixel packs 8-bit channels according to m.
func Pixel(r, g, b uint8, m Mode) uint16 {
	var p uint16
	switch m % 4 {
	case RGB565:
		p = uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
	case BGR565:
		p = uint16(b>>3)<<11 | uint16(g>>2)<<5 | uint16(r>>3)
	case CompactRGB:
		p = uint16(r>>3)<<11 | uint16(g>>3)<<6 | uint16(b>>3)
	case CompactBGR:
		p = uint16(b>>3)<<11 | uint16(g>>3)<<6 | uint16(r>>3)
	}
	if m >= InvertedRGB565 {
		p = 0xFFFF - p
	}
	return p
}

// Flatten scales img to width×height and composites it over white.
// An image already at the target size is not resampled.
func Flatten(img image.Image, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	b := img.Bounds()
	if b.Dx() == width && b.Dy() == height {
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	}
	return dst
}

// Encode writes img as a raw stream of width×height pixels packed in mode m.
func Encode(w io.Writer, img image.Image, width, height int, m Mode) error {
	if !m.Valid() {
		return fmt.Errorf("rawconv: invalid mode %d", int(m))
	}
	if width <= 0 || height <= 0 {
		return errors.New("rawconv: size must be positive")
	}

	flat := Flatten(img, width, height)
	bw := bufio.NewWriter(w)
	var buf [2]byte
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := flat.RGBAAt(x, y)
			binary.LittleEndian.PutUint16(buf[:], Pixel(c.R, c.G, c.B, m))
			if _, err := bw.Write(buf[:]); err != nil {
				return fmt.Errorf("rawconv: write failed: %w", err)
			}
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("rawconv: write failed: %w", err)
	}
	return nil
}

// TestPattern returns the calibration image: red, green and blue vertical
// thirds, with a black to white ramp over the right half.
// Correct channel order shows pure primaries; correct polarity shows the ramp
// going from black on the left to white on the right.
func TestPattern(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	half := width / 2

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c color.RGBA
			switch {
			case x < width/3:
				c = color.RGBA{0xFF, 0, 0, 0xFF}
			case x < 2*width/3:
				c = color.RGBA{0, 0xFF, 0, 0xFF}
			default:
				c = color.RGBA{0, 0, 0xFF, 0xFF}
			}
			if x >= half {
				g := uint8(255 * (x - half) / (width - half))
				c = color.RGBA{g, g, g, 0xFF}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

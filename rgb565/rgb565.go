package rgb565

import (
	"image"
	"image/color"
)

// Color is a single RGB565 pixel.
type Color uint16

// FromRGB packs 8-bit channels into a Color, dropping the low bits.
func FromRGB(r, g, b uint8) Color {
	return Color(uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3))
}

// RGBA converts the Color to standard RGBA.
// Each channel is widened by bit replication so 0x1F and 0x3F map to 0xFFFF.
func (c Color) RGBA() (r, g, b, a uint32) {
	r8 := c.R()
	g8 := c.G()
	b8 := c.B()
	return uint32(r8) * 0x101, uint32(g8) * 0x101, uint32(b8) * 0x101, 0xFFFF
}

// R returns the red channel widened to 8 bits.
func (c Color) R() uint8 {
	r5 := uint8(c>>11) & 0x1F
	return r5<<3 | r5>>2
}

// G returns the green channel widened to 8 bits.
func (c Color) G() uint8 {
	g6 := uint8(c>>5) & 0x3F
	return g6<<2 | g6>>4
}

// B returns the blue channel widened to 8 bits.
func (c Color) B() uint8 {
	b5 := uint8(c) & 0x1F
	return b5<<3 | b5>>2
}

func toRGB565(c color.Color) color.Color {
	if v, ok := c.(Color); ok {
		return v
	}
	r, g, b, _ := c.RGBA()
	// RGBA returns 16-bit channels; keep the top 5/6/5 bits.
	return Color(uint16(r>>11)<<11 | uint16(g>>10)<<5 | uint16(b>>11))
}

// Model converts colors to Color.
var Model = color.ModelFunc(toRGB565)

// Image is an RGB565 image backed by a little-endian raw pixel stream.
type Image struct {
	Pix    []byte          // Pixel data, 2 bytes per pixel, little-endian
	Stride int             // Bytes per row
	Rect   image.Rectangle // Image bounds
}

// NewImage creates a zeroed Image with the specified bounds.
func NewImage(r image.Rectangle) *Image {
	w, h := r.Dx(), r.Dy()
	if w < 0 || h < 0 {
		return &Image{Rect: r}
	}
	return &Image{
		Pix:    make([]byte, 2*w*h),
		Stride: 2 * w,
		Rect:   r,
	}
}

// NewRaw wraps an existing raw stream of the given width, anchored at (0, 0).
// The height is derived from the data length; a trailing partial row is ignored.
// pix is not copied.
func NewRaw(pix []byte, width int) *Image {
	if width <= 0 {
		return &Image{}
	}
	stride := 2 * width
	h := len(pix) / stride
	return &Image{
		Pix:    pix[:h*stride],
		Stride: stride,
		Rect:   image.Rect(0, 0, width, h),
	}
}

// ColorModel returns the color model of the image.
func (p *Image) ColorModel() color.Model {
	return Model
}

// Bounds returns the image bounds.
func (p *Image) Bounds() image.Rectangle {
	return p.Rect
}

// At returns the color of the pixel at (x, y).
// It implements the image.Image interface.
func (p *Image) At(x, y int) color.Color {
	return p.ColorAt(x, y)
}

// ColorAt returns the Color of the pixel at (x, y), or 0 outside the bounds.
func (p *Image) ColorAt(x, y int) Color {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return 0
	}
	i := p.PixOffset(x, y)
	return Color(uint16(p.Pix[i]) | uint16(p.Pix[i+1])<<8)
}

// Set sets the color of the pixel at (x, y).
func (p *Image) Set(x, y int, c color.Color) {
	p.SetColor(x, y, Model.Convert(c).(Color))
}

// SetColor sets the Color of the pixel at (x, y) without conversion.
func (p *Image) SetColor(x, y int, c Color) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	i := p.PixOffset(x, y)
	p.Pix[i] = byte(c)
	p.Pix[i+1] = byte(c >> 8)
}

// PixOffset returns the index of the first byte of the pixel at (x, y).
func (p *Image) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*2
}

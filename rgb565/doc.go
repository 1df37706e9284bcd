// Package rgb565 provides the 16-bit RGB565 pixel format used by the image assets
// and the ST7789 display controller.
//
// Each pixel is a 16-bit word: 5 bits red, 6 bits green, 5 bits blue, red in the
// most significant bits. Raw asset streams store the words little-endian, row-major,
// without any header. The width travels alongside the data.
//
// Memory layout example for a 2-pixel row holding pure red then pure blue:
//
//	Pixels: 0        1
//	Words:  0xF800   0x001F
//	Bytes:  00 F8    1F 00
//
// This package provides:
//
// - Color: a color.Color holding one RGB565 word
// - Model: a color model converting standard Go colors to Color
// - Image: an image.Image / draw.Image over a raw little-endian pixel stream
//
// Example usage:
//
//	// Wrap an embedded 240 pixel wide asset
//	img := rgb565.NewRaw(data, 240)
//
//	// Read a pixel
//	c := img.ColorAt(10, 20)
//
//	// Use with standard Go image operations
//	draw.Draw(img, img.Bounds(), image.NewUniform(rgb565.Color(0xFFFF)), image.Point{}, draw.Src)
package rgb565

package imgselect

import (
	"fmt"
	"image"

	"github.com/flavioheleno/imgselect/rgb565"
	"periph.io/x/conn/v3/display"
)

// Renderer shows the image for an index. Rendering the same index twice must
// produce the same output, and each call must fully replace the previous image.
type Renderer interface {
	Render(index int) error
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(index int) error

// Render calls f(index).
func (f RendererFunc) Render(index int) error {
	return f(index)
}

// AssetFunc resolves an image index to a raw little-endian RGB565 stream and
// its width in pixels.
type AssetFunc func(index int) (pix []byte, width int)

// ImageRenderer draws fixed-size RGB565 assets at Origin on a display.
// Assets that do not cover the whole screen are rejected.
type ImageRenderer struct {
	dst    display.Drawer
	assets AssetFunc
}

// NewImageRenderer returns a Renderer drawing assets onto dst.
func NewImageRenderer(dst display.Drawer, assets AssetFunc) *ImageRenderer {
	return &ImageRenderer{dst: dst, assets: assets}
}

// Render draws the asset for index.
func (r *ImageRenderer) Render(index int) error {
	pix, width := r.assets(index)
	img := rgb565.NewRaw(pix, width)
	if img.Bounds().Empty() {
		return fmt.Errorf("imgselect: image %d is empty", index)
	}
	if img.Bounds() != image.Rect(0, 0, ScreenWidth, ScreenHeight) || len(pix) != 2*ScreenWidth*ScreenHeight {
		return fmt.Errorf("imgselect: image %d is %v, want %dx%d", index, img.Bounds().Size(), ScreenWidth, ScreenHeight)
	}
	if err := r.dst.Draw(img.Bounds().Add(Origin), img, image.Point{}); err != nil {
		return fmt.Errorf("imgselect: drawing image %d: %w", index, err)
	}
	return nil
}

// Package assets holds the compiled-in images, stored as raw little-endian
// RGB565 streams of Width×Height pixels without a header.
//
// The files are produced by `imgselect convert` (mode 0). Index 0 is the
// default image, the calibration test pattern.
package assets

import (
	_ "embed"
)

const (
	Width  = 240
	Height = 240

	// Count is the number of images, the default included.
	Count = 5
)

var (
	//go:embed avatar.raw
	avatar []byte
	//go:embed 1.raw
	image1 []byte
	//go:embed 2.raw
	image2 []byte
	//go:embed 3.raw
	image3 []byte
	//go:embed 4.raw
	image4 []byte
)

var table = [Count][]byte{avatar, image1, image2, image3, image4}

// Lookup returns the pixels and width of image index. Index 0 and any index
// outside [0, Count) resolve to the default image.
func Lookup(index int) (pix []byte, width int) {
	if index <= 0 || index >= Count {
		return avatar, Width
	}
	return table[index], Width
}

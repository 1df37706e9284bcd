package rgb565

import (
	"image"
	"image/color"
	"image/draw"
	"testing"
)

func TestColorRGBA(t *testing.T) {
	tests := []struct {
		name    string
		c       Color
		r, g, b uint32
	}{
		{"black", 0x0000, 0, 0, 0},
		{"white", 0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF},
		{"red", 0xF800, 0xFFFF, 0, 0},
		{"green", 0x07E0, 0, 0xFFFF, 0},
		{"blue", 0x001F, 0, 0, 0xFFFF},
		{"mid gray", 0x8410, 0x8484, 0x8282, 0x8484},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b, a := tt.c.RGBA()
			if r != tt.r || g != tt.g || b != tt.b || a != 0xFFFF {
				t.Errorf("RGBA() = (%x, %x, %x, %x), want (%x, %x, %x, ffff)",
					r, g, b, a, tt.r, tt.g, tt.b)
			}
		})
	}
}

func TestFromRGB(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		want    Color
	}{
		{"black", 0, 0, 0, 0x0000},
		{"white", 0xFF, 0xFF, 0xFF, 0xFFFF},
		{"red", 0xFF, 0, 0, 0xF800},
		{"green", 0, 0xFF, 0, 0x07E0},
		{"blue", 0, 0, 0xFF, 0x001F},
		{"gray", 0x88, 0x88, 0x88, 0x8C51},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromRGB(tt.r, tt.g, tt.b); got != tt.want {
				t.Errorf("FromRGB(%#x, %#x, %#x) = %#04x, want %#04x", tt.r, tt.g, tt.b, got, tt.want)
			}
		})
	}
}

func TestModelConvert(t *testing.T) {
	tests := []struct {
		name  string
		input color.Color
		want  Color
	}{
		{"passthrough", Color(0x1234), 0x1234},
		{"black", color.Black, 0x0000},
		{"white", color.White, 0xFFFF},
		{"gray rgb", color.RGBA{0x88, 0x88, 0x88, 0xFF}, 0x8C51},
		{"blue rgb", color.RGBA{0, 0, 0xFF, 0xFF}, 0x001F},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Model.Convert(tt.input).(Color)
			if got != tt.want {
				t.Errorf("Model.Convert(%v) = %#04x, want %#04x", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewImage(t *testing.T) {
	tests := []struct {
		name       string
		rect       image.Rectangle
		wantStride int
		wantPixLen int
	}{
		{"240x240", image.Rect(0, 0, 240, 240), 480, 115200},
		{"3x2", image.Rect(0, 0, 3, 2), 6, 12},
		{"offset rect", image.Rect(10, 20, 14, 22), 8, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := NewImage(tt.rect)
			if img.Rect != tt.rect {
				t.Errorf("Rect = %v, want %v", img.Rect, tt.rect)
			}
			if img.Stride != tt.wantStride {
				t.Errorf("Stride = %d, want %d", img.Stride, tt.wantStride)
			}
			if len(img.Pix) != tt.wantPixLen {
				t.Errorf("len(Pix) = %d, want %d", len(img.Pix), tt.wantPixLen)
			}
		})
	}
}

func TestNewRaw(t *testing.T) {
	tests := []struct {
		name     string
		pixLen   int
		width    int
		wantRect image.Rectangle
	}{
		{"full rows", 2 * 4 * 3, 4, image.Rect(0, 0, 4, 3)},
		{"partial trailing row", 2*4*3 + 5, 4, image.Rect(0, 0, 4, 3)},
		{"empty", 0, 4, image.Rect(0, 0, 4, 0)},
		{"zero width", 8, 0, image.Rectangle{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := NewRaw(make([]byte, tt.pixLen), tt.width)
			if img.Bounds() != tt.wantRect {
				t.Errorf("Bounds() = %v, want %v", img.Bounds(), tt.wantRect)
			}
		})
	}
}

func TestRawLittleEndian(t *testing.T) {
	// Red then blue, little-endian.
	img := NewRaw([]byte{0x00, 0xF8, 0x1F, 0x00}, 2)

	if c := img.ColorAt(0, 0); c != 0xF800 {
		t.Errorf("ColorAt(0, 0) = %#04x, want 0xf800", c)
	}
	if c := img.ColorAt(1, 0); c != 0x001F {
		t.Errorf("ColorAt(1, 0) = %#04x, want 0x001f", c)
	}

	img.SetColor(1, 0, 0x07E0)
	if img.Pix[2] != 0xE0 || img.Pix[3] != 0x07 {
		t.Errorf("Pix[2:4] = %#02x %#02x, want 0xe0 0x07", img.Pix[2], img.Pix[3])
	}
}

func TestImageSetAt(t *testing.T) {
	img := NewImage(image.Rect(0, 0, 2, 2))

	img.Set(0, 0, color.RGBA{0xFF, 0, 0, 0xFF})
	c, ok := img.At(0, 0).(Color)
	if !ok {
		t.Fatalf("At(0, 0) returned %T, want Color", img.At(0, 0))
	}
	if c != 0xF800 {
		t.Errorf("At(0, 0) = %#04x, want 0xf800", c)
	}
}

func TestImageOutOfBounds(t *testing.T) {
	img := NewImage(image.Rect(0, 0, 2, 2))

	img.SetColor(-1, 0, 0xFFFF)
	img.SetColor(2, 0, 0xFFFF)
	img.SetColor(0, 2, 0xFFFF)

	for i, b := range img.Pix {
		if b != 0 {
			t.Errorf("Pix[%d] = %#02x after out-of-bounds writes, want 0", i, b)
		}
	}
	if c := img.ColorAt(-1, 0); c != 0 {
		t.Errorf("ColorAt(-1, 0) = %#04x, want 0", c)
	}
}

func TestImageOffsetRect(t *testing.T) {
	img := NewImage(image.Rect(100, 50, 102, 52))
	img.SetColor(101, 51, 0xABCD)

	if got := img.PixOffset(101, 51); got != 6 {
		t.Errorf("PixOffset(101, 51) = %d, want 6", got)
	}
	if img.Pix[6] != 0xCD || img.Pix[7] != 0xAB {
		t.Errorf("Pix[6:8] = %#02x %#02x, want 0xcd 0xab", img.Pix[6], img.Pix[7])
	}
}

func TestImageDraw(t *testing.T) {
	img := NewImage(image.Rect(0, 0, 4, 4))
	draw.Draw(img, img.Bounds(), image.NewUniform(Color(0x07E0)), image.Point{}, draw.Src)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if c := img.ColorAt(x, y); c != 0x07E0 {
				t.Fatalf("ColorAt(%d, %d) = %#04x, want 0x07e0", x, y, c)
			}
		}
	}
}

func TestImageColorModel(t *testing.T) {
	img := NewImage(image.Rect(0, 0, 2, 2))
	if img.ColorModel() != Model {
		t.Error("ColorModel() did not return Model")
	}
}

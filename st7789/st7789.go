// Package st7789 controls a ST7789 RGB565 TFT display via SPI.
//
// The ST7789 is a 262K color TFT controller with a 240x320 frame memory.
// The common square module exposes a 240x240 window.
//
// See doc.go for usage.
package st7789

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"

	"github.com/flavioheleno/imgselect/rgb565"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Controller commands.
const (
	cmdSWRESET = 0x01
	cmdSLPIN   = 0x10
	cmdSLPOUT  = 0x11
	cmdNORON   = 0x13
	cmdINVOFF  = 0x20
	cmdINVON   = 0x21
	cmdDISPOFF = 0x28
	cmdDISPON  = 0x29
	cmdCASET   = 0x2A
	cmdRASET   = 0x2B
	cmdRAMWR   = 0x2C
	cmdMADCTL  = 0x36
	cmdCOLMOD  = 0x3A
)

// defaultMaxTx is used when the connection does not report its own limit.
const defaultMaxTx = 4096

// Orientation is the memory access control (MADCTL) value selecting the scan direction.
type Orientation byte

const (
	Portrait         Orientation = 0x00
	Landscape        Orientation = 0x60
	PortraitSwapped  Orientation = 0xC0
	LandscapeSwapped Orientation = 0xA0
)

func (o Orientation) String() string {
	switch o {
	case Portrait:
		return "Portrait"
	case Landscape:
		return "Landscape"
	case PortraitSwapped:
		return "PortraitSwapped"
	case LandscapeSwapped:
		return "LandscapeSwapped"
	default:
		return fmt.Sprintf("Orientation(0x%02x)", byte(o))
	}
}

// Opts is the configuration for the ST7789 display.
type Opts struct {
	// Display dimensions in pixels
	W int // Width (default: 240, must be ≤320)
	H int // Height (default: 240, must be ≤320)

	// Window position inside the 240x320 frame memory
	ColumnOffset int
	RowOffset    int

	Orientation Orientation

	// Optional pins
	RST gpio.PinIO  // Reset pin (nil if not used)
	BL  gpio.PinOut // Backlight pin (nil if not used)
}

// Dev is the device handle for the ST7789 display.
type Dev struct {
	// Communication
	c     conn.Conn   // SPI connection
	dc    gpio.PinOut // Data/Command pin
	rst   gpio.PinIO  // Reset pin (optional)
	bl    gpio.PinOut // Backlight pin (optional)
	maxTx int

	// Display geometry
	rect         image.Rectangle
	columnOffset int
	rowOffset    int

	// Pixel buffers, little-endian RGB565
	next *rgb565.Image // Frame being composed
	last *rgb565.Image // Frame currently in panel memory

	// State
	halted bool
}

var _ display.Drawer = &Dev{}

// NewSPI creates a new ST7789 device connected via SPI.
//
// The SPI port is configured for 50MHz, Mode3 (CPOL=1, CPHA=1), 8-bit transfers.
// The dc (Data/Command) GPIO pin must be provided and configured as an output.
//
// opts can be nil to use defaults (240x240 display, portrait).
func NewSPI(p spi.Port, dc gpio.PinOut, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &Opts{W: 240, H: 240}
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if dc == nil {
		return nil, errors.New("st7789: dc pin is required")
	}

	c, err := p.Connect(50*physic.MegaHertz, spi.Mode3, 8)
	if err != nil {
		return nil, fmt.Errorf("st7789: failed to connect: %w", err)
	}

	d := newDev(c, dc, opts)
	if err := d.init(opts); err != nil {
		return nil, err
	}
	return d, nil
}

func (o *Opts) validate() error {
	if o.W <= 0 || o.W > 320 {
		return errors.New("st7789: width must be between 1 and 320")
	}
	if o.H <= 0 || o.H > 320 {
		return errors.New("st7789: height must be between 1 and 320")
	}
	if o.ColumnOffset < 0 || o.RowOffset < 0 || o.ColumnOffset+o.W > 320 || o.RowOffset+o.H > 320 {
		return errors.New("st7789: window does not fit frame memory")
	}
	return nil
}

func newDev(c conn.Conn, dc gpio.PinOut, opts *Opts) *Dev {
	maxTx := defaultMaxTx
	if l, ok := c.(conn.Limits); ok && l.MaxTxSize() > 0 {
		maxTx = l.MaxTxSize()
	}
	rect := image.Rect(0, 0, opts.W, opts.H)
	return &Dev{
		c:            c,
		dc:           dc,
		rst:          opts.RST,
		bl:           opts.BL,
		maxTx:        maxTx,
		rect:         rect,
		columnOffset: opts.ColumnOffset,
		rowOffset:    opts.RowOffset,
		next:         rgb565.NewImage(rect),
		last:         rgb565.NewImage(rect),
	}
}

// init sends the initialization sequence to the display.
func (d *Dev) init(opts *Opts) error {
	if d.rst != nil {
		if err := d.rst.Out(gpio.Low); err != nil {
			return fmt.Errorf("st7789: failed to pull RST low: %w", err)
		}
		time.Sleep(10 * time.Millisecond)

		if err := d.rst.Out(gpio.High); err != nil {
			return fmt.Errorf("st7789: failed to pull RST high: %w", err)
		}
		time.Sleep(120 * time.Millisecond)
	}

	if err := d.sendCommand(cmdSWRESET); err != nil {
		return err
	}
	time.Sleep(150 * time.Millisecond)

	if err := d.sendCommand(cmdSLPOUT); err != nil {
		return err
	}
	time.Sleep(120 * time.Millisecond)

	// 16 bits per pixel on both the RGB and MCU interfaces
	if err := d.sendCommand(cmdCOLMOD, 0x55); err != nil {
		return err
	}
	if err := d.sendCommand(cmdMADCTL, byte(opts.Orientation)); err != nil {
		return err
	}
	// IPS modules show inverted colours without INVON
	if err := d.sendCommand(cmdINVON); err != nil {
		return err
	}
	if err := d.sendCommand(cmdNORON); err != nil {
		return err
	}

	if err := d.clearRAM(); err != nil {
		return err
	}

	return d.sendCommand(cmdDISPON)
}

// clearRAM clears all pixels in the display window.
func (d *Dev) clearRAM() error {
	zeros := make([]byte, 2*d.rect.Dx()*d.rect.Dy())
	return d.writeRect(0, 0, d.rect.Dx(), d.rect.Dy(), zeros)
}

// sendCommand sends a command byte followed by its parameters.
func (d *Dev) sendCommand(cmd byte, params ...byte) error {
	if err := d.dc.Out(gpio.Low); err != nil {
		return err
	}
	if err := d.c.Tx([]byte{cmd}, nil); err != nil {
		return err
	}
	if len(params) == 0 {
		return nil
	}
	return d.sendData(params)
}

// sendData sends data bytes, split to the connection's transfer limit.
func (d *Dev) sendData(data []byte) error {
	if err := d.dc.Out(gpio.High); err != nil {
		return err
	}
	for len(data) > 0 {
		n := min(len(data), d.maxTx)
		if err := d.c.Tx(data[:n], nil); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

// writeRect writes big-endian pixel data to a rectangular region of the display.
func (d *Dev) writeRect(x, y, width, height int, pixels []byte) error {
	x0 := x + d.columnOffset
	x1 := x0 + width - 1
	y0 := y + d.rowOffset
	y1 := y0 + height - 1

	if err := d.sendCommand(cmdCASET, byte(x0>>8), byte(x0), byte(x1>>8), byte(x1)); err != nil {
		return err
	}
	if err := d.sendCommand(cmdRASET, byte(y0>>8), byte(y0), byte(y1>>8), byte(y1)); err != nil {
		return err
	}
	if err := d.sendCommand(cmdRAMWR); err != nil {
		return err
	}
	return d.sendData(pixels)
}

// ColorModel returns the color model of the display.
func (d *Dev) ColorModel() color.Model {
	return rgb565.Model
}

// Bounds returns the image bounds of the display.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Write writes a full frame of raw little-endian RGB565 pixels to the display.
// The data must be exactly 2 * d.rect.Dx() * d.rect.Dy() bytes.
func (d *Dev) Write(pixels []byte) (int, error) {
	if d.halted {
		return 0, errors.New("st7789: halted")
	}
	if len(pixels) != len(d.next.Pix) {
		return 0, errors.New("st7789: invalid buffer size")
	}
	copy(d.next.Pix, pixels)
	if err := d.writeRect(0, 0, d.rect.Dx(), d.rect.Dy(), swapBytes(pixels)); err != nil {
		return 0, err
	}
	copy(d.last.Pix, pixels)
	return len(pixels), nil
}

// Draw draws an image onto the display with differential update optimization.
// Only the bounding rectangle of pixels that differ from the panel memory is
// transferred, so drawing the same image twice sends nothing the second time.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	if d.halted {
		return errors.New("st7789: halted")
	}

	dst = dst.Intersect(d.rect)
	if dst.Empty() {
		return nil
	}

	// Fast path: a raw stream matching the display geometry is copied as is
	if s, ok := src.(*rgb565.Image); ok && dst == d.rect && sp == s.Rect.Min &&
		s.Rect.Size() == d.rect.Size() && s.Stride == d.next.Stride {
		copy(d.next.Pix, s.Pix)
	} else {
		draw.Draw(d.next, dst, src, sp, draw.Src)
	}

	minX, maxX, minY, maxY := d.calculateDiff()
	if minX > maxX {
		return nil
	}

	changed := d.extractRegion(minX, maxX, minY, maxY)
	if err := d.writeRect(minX, minY, maxX-minX+1, maxY-minY+1, changed); err != nil {
		return err
	}

	copy(d.last.Pix, d.next.Pix)
	return nil
}

// calculateDiff compares the composed frame with the panel memory and returns
// the changed bounding box in pixels, or minX > maxX if nothing changed.
func (d *Dev) calculateDiff() (minX, maxX, minY, maxY int) {
	width := d.rect.Dx()
	height := d.rect.Dy()
	stride := d.next.Stride

	minX, maxX = width, -1
	minY, maxY = height, -1

	for y := 0; y < height; y++ {
		a := d.last.Pix[y*stride : (y+1)*stride]
		b := d.next.Pix[y*stride : (y+1)*stride]
		if bytes.Equal(a, b) {
			continue
		}
		if y < minY {
			minY = y
		}
		maxY = y

		for x := 0; x < width; x++ {
			if a[2*x] != b[2*x] || a[2*x+1] != b[2*x+1] {
				if x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
			}
		}
	}
	return
}

// extractRegion copies a rectangle out of the composed frame in wire (big-endian) order.
func (d *Dev) extractRegion(minX, maxX, minY, maxY int) []byte {
	stride := d.next.Stride
	result := make([]byte, 0, 2*(maxX-minX+1)*(maxY-minY+1))

	for y := minY; y <= maxY; y++ {
		i := y*stride + 2*minX
		for x := minX; x <= maxX; x++ {
			result = append(result, d.next.Pix[i+1], d.next.Pix[i])
			i += 2
		}
	}
	return result
}

// swapBytes converts a little-endian RGB565 stream to wire order.
func swapBytes(pixels []byte) []byte {
	out := make([]byte, len(pixels))
	for i := 0; i+1 < len(pixels); i += 2 {
		out[i], out[i+1] = pixels[i+1], pixels[i]
	}
	return out
}

// SetOrientation changes the scan direction of the frame memory.
func (d *Dev) SetOrientation(o Orientation) error {
	if d.halted {
		return errors.New("st7789: halted")
	}
	return d.sendCommand(cmdMADCTL, byte(o))
}

// SetBacklight switches the backlight pin.
func (d *Dev) SetBacklight(on bool) error {
	if d.halted {
		return errors.New("st7789: halted")
	}
	if d.bl == nil {
		return errors.New("st7789: no backlight pin")
	}
	l := gpio.Low
	if on {
		l = gpio.High
	}
	if err := d.bl.Out(l); err != nil {
		return fmt.Errorf("st7789: failed to set backlight: %w", err)
	}
	return nil
}

// Invert inverts the display colors.
func (d *Dev) Invert(invert bool) error {
	if d.halted {
		return errors.New("st7789: halted")
	}
	cmd := byte(cmdINVOFF)
	if invert {
		cmd = cmdINVON
	}
	return d.sendCommand(cmd)
}

// Halt turns the display off and puts the controller to sleep.
// After calling Halt, the display will not respond to further commands
// until the device is re-initialized.
func (d *Dev) Halt() error {
	d.halted = true
	if err := d.sendCommand(cmdDISPOFF); err != nil {
		return err
	}
	return d.sendCommand(cmdSLPIN)
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("st7789.Dev{%dx%d}", d.rect.Dx(), d.rect.Dy())
}

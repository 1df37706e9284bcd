// Package st7789 controls a ST7789 RGB565 TFT display via SPI.
//
// The ST7789 is a TFT LCD controller with a 240×320 frame memory. Square
// 240×240 IPS modules are the most common target. This driver implements the
// display.Drawer interface from periph.io.
//
// # Display Characteristics
//
// - 16-bit RGB565 color (65536 colors)
// - 240×320 frame memory; the visible window is configurable with offsets
// - Four scan orientations selected through MADCTL
// - Optional backlight pin
// - Display inversion (enabled by default, as IPS panels require)
//
// # Hardware Connection
//
// Connect the ST7789 display to your system via SPI:
//
//	Display Pin → System Pin
//	GND         → GND
//	VCC         → 3.3V
//	SCL         → SPI Clock (SCLK)
//	SDA         → SPI Data (MOSI)
//	DC          → GPIO (any available pin)
//	RES         → Optional: GPIO for hardware reset
//	BLK         → Optional: GPIO for backlight
//
// Modules without a CS pin require SPI mode 3, which is what this driver uses.
//
// # Basic Usage
//
//	host.Init()
//	spiBus, _ := spireg.Open("")
//	dev, _ := st7789.NewSPI(spiBus, gpioreg.ByName("GPIO25"), &st7789.Opts{
//		W:   240,
//		H:   240,
//		RST: gpioreg.ByName("GPIO27"),
//		BL:  gpioreg.ByName("GPIO18"),
//	})
//	defer dev.Halt()
//
//	dev.SetBacklight(true)
//	dev.Draw(dev.Bounds(), rgb565.NewRaw(pixels, 240), image.Point{})
//
// # Pixel Format
//
// The driver composes frames as little-endian RGB565 (the rgb565 package) and
// swaps to the big-endian order the controller expects on the wire. Write
// accepts a raw little-endian frame directly.
//
// # Differential Updates
//
// Draw keeps a copy of the panel memory and only transfers the bounding
// rectangle of changed pixels. Redrawing an unchanged image transfers nothing.
// Transfers larger than the connection's limit are split.
package st7789

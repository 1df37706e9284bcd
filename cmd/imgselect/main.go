// Command imgselect runs the image selector on a Linux board with a ST7789
// display, four push-buttons and a rotary encoder, and converts pictures into
// the raw assets it displays.
//
// Hardware Setup (Raspberry Pi defaults):
//
//	Display    Raspberry Pi
//	SCL        GPIO11 (SPI0 CLK)
//	SDA        GPIO10 (SPI0 MOSI)
//	DC         GPIO25
//	RES        GPIO27
//	BLK        GPIO18
//
//	Keys 1-4   GPIO5, GPIO6, GPIO13, GPIO19 (to GND, internal pull-up)
//	Encoder    A: GPIO20, B: GPIO21 (to GND, internal pull-up)
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var flagDebug bool

func main() {
	rootCmd := &cobra.Command{
		Use:          "imgselect",
		Short:        "Select and display images with push-buttons and a rotary encoder",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(newRunCmd(), newConvertCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if flagDebug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

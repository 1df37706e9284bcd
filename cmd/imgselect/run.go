package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/flavioheleno/imgselect"
	"github.com/flavioheleno/imgselect/assets"
	"github.com/flavioheleno/imgselect/quadrature"
	"github.com/flavioheleno/imgselect/st7789"
	"github.com/spf13/cobra"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

var (
	flagSPI  string
	flagDC   string
	flagRST  string
	flagBL   string
	flagKeys []string
	flagEncA string
	flagEncB string
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the selection loop on the attached hardware",
		Long: `Run initialises the display, shows the default image and then maps
key presses and encoder rotation to image selection until interrupted.

A display that fails to initialise is fatal; orientation and backlight
failures are logged and ignored.`,
		Args: cobra.NoArgs,
		RunE: runSelector,
	}

	cmd.Flags().StringVar(&flagSPI, "spi", "", "SPI port name (empty for default)")
	cmd.Flags().StringVar(&flagDC, "dc", "GPIO25", "Display data/command pin")
	cmd.Flags().StringVar(&flagRST, "rst", "GPIO27", "Display reset pin (empty if not wired)")
	cmd.Flags().StringVar(&flagBL, "bl", "GPIO18", "Display backlight pin (empty if not wired)")
	cmd.Flags().StringSliceVar(&flagKeys, "keys", []string{"GPIO5", "GPIO6", "GPIO13", "GPIO19"}, "Key 1-4 pins, in priority order")
	cmd.Flags().StringVar(&flagEncA, "enc-a", "GPIO20", "Encoder phase A pin")
	cmd.Flags().StringVar(&flagEncB, "enc-b", "GPIO21", "Encoder phase B pin")

	return cmd
}

// validateKeyPins checks the key wiring before any hardware is touched.
func validateKeyPins(names []string) error {
	if len(names) != 4 {
		return fmt.Errorf("expected 4 key pins, got %d", len(names))
	}
	for i, n := range names {
		if n == "" {
			return fmt.Errorf("key %d pin name is empty", i+1)
		}
	}
	return nil
}

func pinByName(name string) (gpio.PinIO, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("gpio pin %s not found", name)
	}
	return p, nil
}

func runSelector(cmd *cobra.Command, _ []string) error {
	if err := validateKeyPins(flagKeys); err != nil {
		return err
	}
	logger := newLogger()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := host.Init(); err != nil {
		return fmt.Errorf("failed to initialize periph.io: %w", err)
	}

	port, err := spireg.Open(flagSPI)
	if err != nil {
		return fmt.Errorf("failed to open SPI port: %w", err)
	}
	defer port.Close()

	dc, err := pinByName(flagDC)
	if err != nil {
		return err
	}
	opts := &st7789.Opts{W: imgselect.ScreenWidth, H: imgselect.ScreenHeight}
	if flagRST != "" {
		if opts.RST, err = pinByName(flagRST); err != nil {
			return err
		}
	}
	if flagBL != "" {
		if opts.BL, err = pinByName(flagBL); err != nil {
			return err
		}
	}

	logger.Info("initializing display", "spi", port)
	dev, err := st7789.NewSPI(port, dc, opts)
	if err != nil {
		logger.Error("display initialization failed", "err", err)
		return err
	}
	defer dev.Halt()
	logger.Info("display initialized", "dev", dev)

	if err := dev.SetOrientation(st7789.Portrait); err != nil {
		logger.Error("failed to set orientation", "err", err)
	} else {
		logger.Info("orientation set", "orientation", st7789.Portrait)
	}
	if err := dev.SetBacklight(true); err != nil {
		logger.Error("failed to turn backlight on", "err", err)
	} else {
		logger.Info("backlight on")
	}

	pins := make([]gpio.PinIn, 0, len(flagKeys))
	for _, name := range flagKeys {
		p, err := pinByName(name)
		if err != nil {
			return err
		}
		pins = append(pins, p)
	}
	keys, err := imgselect.ConfigurePinKeys(pins...)
	if err != nil {
		return err
	}

	a, err := pinByName(flagEncA)
	if err != nil {
		return err
	}
	b, err := pinByName(flagEncB)
	if err != nil {
		return err
	}
	enc, err := quadrature.New(a, b)
	if err != nil {
		return err
	}
	go func() {
		if err := enc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("encoder stopped", "err", err)
		}
	}()

	sel, err := imgselect.New(keys, enc, imgselect.NewImageRenderer(dev, assets.Lookup), &imgselect.Opts{
		Logger: logger,
	})
	if err != nil {
		return err
	}

	logger.Info("selector running", "images", imgselect.ImageCount)
	if err := sel.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("selector stopped", "index", sel.Index())
	return nil
}

// Package imgselect maps four push-buttons and a rotary encoder onto the
// selection of one of ImageCount fixed images shown on a 240×240 display.
//
// # Inputs
//
// Keys are pulled-up, active-low inputs read through a KeySource. Key1 to Key4
// select images 1 to 4 directly. The encoder is read through a PositionSource;
// forward rotation selects the next image and backward the previous one,
// wrapping modulo ImageCount.
//
// # Scan Loop
//
// A Selector runs a single-threaded loop:
//
//	scan keys → scan encoder → sleep PollInterval → repeat
//
// Keys are checked in order Key1..Key4 and the first one reading low claims
// the tick. It is sampled again after DebounceInterval; if still low the
// image is selected and the loop blocks, polling every PollInterval, until
// the key is released. Holding a key therefore yields one selection and
// freezes all other input until release.
//
// The encoder is compared against the position at the last step taken. A
// difference above 1 is one forward step, below -1 one backward step, and
// anything else is ignored as jitter. Because the reference only moves when a
// step is taken, slow motion accumulates across ticks until it crosses the
// threshold.
//
// # Rendering
//
// The Renderer is called once at Start with index 0, once per confirmed key
// press and once per encoder step. Render errors are logged and the loop
// carries on; the next selection is the retry.
//
// # Basic Usage
//
//	dev, _ := st7789.NewSPI(port, dc, nil)
//	keys, _ := imgselect.ConfigurePinKeys(k1, k2, k3, k4)
//	enc, _ := quadrature.New(a, b)
//	go enc.Run(ctx)
//
//	s, _ := imgselect.New(keys, enc, imgselect.NewImageRenderer(dev, assets.Lookup), &imgselect.Opts{
//		Logger: slog.Default(),
//	})
//	s.Run(ctx)
//
// All waits go through the Sleeper in Opts, so tests can drive the loop with
// a simulated clock.
package imgselect

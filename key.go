package imgselect

import (
	"context"
	"fmt"

	"periph.io/x/conn/v3/gpio"
)

// Key identifies one of the push-buttons.
type Key int

const (
	Key1 Key = iota + 1
	Key2
	Key3
	Key4
)

func (k Key) String() string {
	return fmt.Sprintf("key%d", int(k))
}

// KeySource reports the instantaneous electrical level of a key.
// Keys are pulled up and active-low: gpio.Low means pressed.
type KeySource interface {
	Level(k Key) gpio.Level
}

// binding ties a key to the image it selects.
type binding struct {
	key   Key
	index int
}

// bindings is scanned in order and the first key seen low claims the tick, so
// simultaneous presses resolve to the lowest key number.
var bindings = [...]binding{
	{Key1, 1},
	{Key2, 2},
	{Key3, 3},
	{Key4, 4},
}

// PinKeys is a KeySource over GPIO inputs; element 0 is Key1.
type PinKeys []gpio.PinIn

// ConfigurePinKeys configures pins as pulled-up inputs, Key1 first.
func ConfigurePinKeys(pins ...gpio.PinIn) (PinKeys, error) {
	for i, p := range pins {
		if p == nil {
			return nil, fmt.Errorf("imgselect: %s pin is nil", Key(i+1))
		}
		if err := p.In(gpio.PullUp, gpio.NoEdge); err != nil {
			return nil, fmt.Errorf("imgselect: failed to configure %s: %w", Key(i+1), err)
		}
	}
	return PinKeys(pins), nil
}

// Level reads the pin bound to k. Unbound keys read as released.
func (p PinKeys) Level(k Key) gpio.Level {
	i := int(k) - 1
	if i < 0 || i >= len(p) || p[i] == nil {
		return gpio.High
	}
	return p[i].Read()
}

// scanKeys handles at most one key per tick. The first key observed low
// claims the tick even if its press then fails to confirm.
func (s *Selector) scanKeys(ctx context.Context) error {
	for _, b := range bindings {
		if s.keys.Level(b.key) == gpio.Low {
			return s.press(ctx, b)
		}
	}
	return nil
}

// press debounces a key seen low, selects its image and blocks until release.
func (s *Selector) press(ctx context.Context, b binding) error {
	if err := s.sleep.Sleep(ctx, DebounceInterval); err != nil {
		return err
	}
	if s.keys.Level(b.key) != gpio.Low {
		s.log.Debug("key bounce ignored", "key", b.key)
		return nil
	}

	s.log.Info("key pressed", "key", b.key, "index", b.index)
	s.set(b.index)
	return s.waitRelease(ctx, b.key)
}

// waitRelease polls until k reads high. Nothing else is scanned meanwhile.
func (s *Selector) waitRelease(ctx context.Context, k Key) error {
	for s.keys.Level(k) == gpio.Low {
		if err := s.sleep.Sleep(ctx, PollInterval); err != nil {
			return err
		}
	}
	return nil
}

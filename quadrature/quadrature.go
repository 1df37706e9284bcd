// Package quadrature decodes a two-phase incremental rotary encoder wired to
// two GPIO inputs.
//
// Every edge on either phase is counted (x4 decoding), so one mechanical detent
// of a typical encoder moves the position by 4. The position is a free-running
// int32 that wraps on overflow; consumers should only look at differences.
//
// Phase A leading phase B increments the position.
package quadrature

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"periph.io/x/conn/v3/gpio"
)

// edgeTimeout bounds each edge wait so cancellation is observed.
const edgeTimeout = 100 * time.Millisecond

// transitions[prev<<2|cur] is the position change for a phase transition,
// where a state is A<<1|B. Transitions that skip a state count as zero.
var transitions = [16]int8{
	0, -1, +1, 0,
	+1, 0, 0, -1,
	-1, 0, 0, +1,
	0, +1, -1, 0,
}

// Decoder tracks the position of an encoder.
type Decoder struct {
	a, b gpio.PinIn

	mu    sync.Mutex
	state uint8

	pos atomic.Int32
}

// New configures both phase pins as pulled-up inputs with edge detection and
// returns a Decoder at position 0. Call Run to start tracking.
func New(a, b gpio.PinIn) (*Decoder, error) {
	if a == nil || b == nil {
		return nil, errors.New("quadrature: both phase pins are required")
	}
	for _, p := range []gpio.PinIn{a, b} {
		if err := p.In(gpio.PullUp, gpio.BothEdges); err != nil {
			return nil, fmt.Errorf("quadrature: failed to configure %s: %w", p, err)
		}
	}
	d := &Decoder{a: a, b: b}
	d.state = phase(a.Read(), b.Read())
	return d, nil
}

// Run watches both phases until ctx is done and returns ctx.Err().
func (d *Decoder) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, p := range []gpio.PinIn{d.a, d.b} {
		g.Go(func() error {
			return d.watch(ctx, p)
		})
	}
	return g.Wait()
}

func (d *Decoder) watch(ctx context.Context, p gpio.PinIn) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if p.WaitForEdge(edgeTimeout) {
			d.update(d.a.Read(), d.b.Read())
		}
	}
}

// update applies the phase levels observed after an edge.
func (d *Decoder) update(a, b gpio.Level) {
	d.mu.Lock()
	defer d.mu.Unlock()

	cur := phase(a, b)
	if delta := transitions[d.state<<2|cur]; delta != 0 {
		d.pos.Add(int32(delta))
	}
	d.state = cur
}

// Position returns the current position.
func (d *Decoder) Position() int32 {
	return d.pos.Load()
}

// String returns a string representation of the decoder.
func (d *Decoder) String() string {
	return fmt.Sprintf("quadrature.Decoder{%s, %s}", d.a, d.b)
}

func phase(a, b gpio.Level) uint8 {
	var s uint8
	if a {
		s |= 2
	}
	if b {
		s |= 1
	}
	return s
}

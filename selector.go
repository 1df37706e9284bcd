package imgselect

import (
	"context"
	"errors"
	"image"
	"log/slog"
	"time"
)

const (
	// ImageCount is the number of selectable images, index 0 being the default.
	ImageCount = 5

	// DebounceInterval is the settle time before a low key is sampled again.
	DebounceInterval = 20 * time.Millisecond

	// PollInterval is the sleep between ticks and between release checks.
	PollInterval = 50 * time.Millisecond

	// Screen geometry of the reference display.
	ScreenWidth  = 240
	ScreenHeight = 240
)

// Origin is where every image is drawn.
var Origin = image.Point{}

// Opts holds the collaborators a Selector may be given. Both are optional.
type Opts struct {
	Sleeper Sleeper      // default: TimerSleeper
	Logger  *slog.Logger // default: discard
}

// Selector owns the current image index. It scans the keys and the encoder
// once per tick and is the only caller of the Renderer.
//
// A Selector is not safe for concurrent use.
type Selector struct {
	keys  KeySource
	enc   PositionSource
	r     Renderer
	sleep Sleeper
	log   *slog.Logger

	index   int
	last    int32
	started bool
}

// New creates a Selector at index 0. Nothing is rendered until Start.
func New(keys KeySource, enc PositionSource, r Renderer, opts *Opts) (*Selector, error) {
	if keys == nil {
		return nil, errors.New("imgselect: key source is required")
	}
	if enc == nil {
		return nil, errors.New("imgselect: position source is required")
	}
	if r == nil {
		return nil, errors.New("imgselect: renderer is required")
	}
	if opts == nil {
		opts = &Opts{}
	}

	s := &Selector{
		keys:  keys,
		enc:   enc,
		r:     r,
		sleep: opts.Sleeper,
		log:   opts.Logger,
	}
	if s.sleep == nil {
		s.sleep = TimerSleeper
	}
	if s.log == nil {
		s.log = slog.New(slog.DiscardHandler)
	}
	return s, nil
}

// Index returns the current image index.
func (s *Selector) Index() int {
	return s.index
}

// Start renders the initial image and takes the encoder's reference position.
// Later calls do nothing. Tick calls Start if it has not run yet.
func (s *Selector) Start() {
	if s.started {
		return
	}
	s.started = true
	s.render()
	s.last = s.enc.Position()
	s.log.Debug("selector started", "index", s.index, "position", s.last)
}

// Tick runs one scan: keys first, then the encoder. The first call starts the
// selector. It blocks while a pressed key is held and only returns an error
// when ctx is done.
func (s *Selector) Tick(ctx context.Context) error {
	s.Start()
	if err := s.scanKeys(ctx); err != nil {
		return err
	}
	s.scanEncoder()
	return nil
}

// Run ticks every PollInterval until ctx is done. The first tick starts the
// selector.
// It always returns ctx.Err().
func (s *Selector) Run(ctx context.Context) error {
	for {
		if err := s.Tick(ctx); err != nil {
			return err
		}
		if err := s.sleep.Sleep(ctx, PollInterval); err != nil {
			return err
		}
	}
}

// set changes the index and renders it.
func (s *Selector) set(index int) {
	s.index = index
	s.render()
}

// render draws the current index. Failures are logged; the next selection
// change retries.
func (s *Selector) render() {
	if err := s.r.Render(s.index); err != nil {
		s.log.Error("render failed", "index", s.index, "err", err)
	}
}

package polaris

import (
	"time"

	"github.com/charmbracelet/harmonica"
)

// RevealState is the visibility state of the hero text.
type RevealState uint8

const (
	RevealHidden RevealState = iota
	RevealEntering
	RevealVisible
	RevealExiting
)

func (s RevealState) String() string {
	switch s {
	case RevealHidden:
		return "hidden"
	case RevealEntering:
		return "entering"
	case RevealVisible:
		return "visible"
	case RevealExiting:
		return "exiting"
	}
	return "unknown"
}

// RevealConfig tunes the text reveal. ExitThreshold must be above
// ReenterThreshold so that scroll jitter between them does not flip the
// state.
type RevealConfig struct {
	StartDelay       time.Duration
	EnterDuration    time.Duration
	ExitThreshold    float64
	ReenterThreshold float64

	// Offset is the vertical distance, in pixels, the text travels while
	// entering or leaving.
	Offset float64
	// Frequency and Damping configure the spring that eases opacity and
	// offset toward the state's target.
	Frequency, Damping float64
}

// DefaultRevealConfig returns the landing page tuning.
func DefaultRevealConfig() RevealConfig {
	return RevealConfig{
		StartDelay:       500 * time.Millisecond,
		EnterDuration:    time.Second,
		ExitThreshold:    0.03,
		ReenterThreshold: 0.01,
		Offset:           40,
		Frequency:        6,
		Damping:          1,
	}
}

// TextReveal drives the hero text through Hidden, Entering, Visible and
// Exiting. Time moves it in; scroll moves it out and back.
type TextReveal struct {
	cfg   RevealConfig
	state RevealState

	armed   bool
	elapsed time.Duration // since Start, or since entering
	scroll  float64

	opacity, opacityVel float64
	offset, offsetVel   float64

	spring   harmonica.Spring
	springDt time.Duration
}

// NewTextReveal creates a hidden reveal. Nothing happens until Start.
func NewTextReveal(cfg RevealConfig) *TextReveal {
	return &TextReveal{cfg: cfg, offset: cfg.Offset}
}

// Start arms the start-delay timer.
func (r *TextReveal) Start() {
	if r.armed {
		return
	}
	r.armed = true
	r.elapsed = 0
}

// SetScroll records the page scroll progress in [0, 1].
func (r *TextReveal) SetScroll(progress float64) {
	r.scroll = progress
}

// Update advances timers, evaluates at most one state transition, and moves
// the visual values toward the state's target.
func (r *TextReveal) Update(dt time.Duration) {
	dt = ClampDelta(dt)
	if r.armed {
		r.elapsed += dt
	}

	switch r.state {
	case RevealHidden:
		if r.armed && r.elapsed >= r.cfg.StartDelay {
			// The enter duration counts from the moment the delay ran out,
			// not from the end of this tick.
			over := r.elapsed - r.cfg.StartDelay
			r.enter(RevealEntering)
			r.elapsed = over
		}
	case RevealEntering:
		if r.scroll > r.cfg.ExitThreshold {
			r.enter(RevealExiting)
		} else if r.elapsed >= r.cfg.EnterDuration {
			r.enter(RevealVisible)
		}
	case RevealVisible:
		if r.scroll > r.cfg.ExitThreshold {
			r.enter(RevealExiting)
		}
	case RevealExiting:
		if r.scroll < r.cfg.ReenterThreshold {
			r.enter(RevealVisible)
		}
	}

	r.animate(dt)
}

func (r *TextReveal) enter(s RevealState) {
	r.state = s
	r.elapsed = 0
}

func (r *TextReveal) animate(dt time.Duration) {
	if dt <= 0 {
		return
	}
	if dt != r.springDt {
		r.spring = harmonica.NewSpring(dt.Seconds(), r.cfg.Frequency, r.cfg.Damping)
		r.springDt = dt
	}
	opacity, offset := r.target()
	r.opacity, r.opacityVel = r.spring.Update(r.opacity, r.opacityVel, opacity)
	r.offset, r.offsetVel = r.spring.Update(r.offset, r.offsetVel, offset)
}

// target returns the opacity and offset the current state settles at.
func (r *TextReveal) target() (opacity, offset float64) {
	switch r.state {
	case RevealEntering, RevealVisible:
		return 1, 0
	case RevealExiting:
		return 0, -r.cfg.Offset
	}
	return 0, r.cfg.Offset
}

// State returns the current state.
func (r *TextReveal) State() RevealState { return r.state }

// Opacity returns the displayed opacity, clamped to [0, 1].
func (r *TextReveal) Opacity() float64 { return Clamp(r.opacity, 0, 1) }

// OffsetY returns the displayed vertical offset in pixels.
func (r *TextReveal) OffsetY() float64 { return r.offset }

package polaris

import "math"

// ScrubRegion says where the viewport is relative to the scrub container.
type ScrubRegion uint8

const (
	RegionBefore ScrubRegion = iota // container top is still below the viewport top
	RegionInside                    // container spans the whole viewport; frames follow scroll
	RegionAfter                     // container bottom has scrolled above the viewport bottom
)

func (r ScrubRegion) String() string {
	switch r {
	case RegionBefore:
		return "before"
	case RegionInside:
		return "inside"
	case RegionAfter:
		return "after"
	default:
		return "unknown"
	}
}

// ContainerGeometry is the scrub container's bounding box relative to the
// viewport, measured from the viewport top.
type ContainerGeometry struct {
	Top, Bottom float64
}

// FrameState is the result of one scrubber evaluation.
type FrameState struct {
	Frame  int
	Pinned bool
	Region ScrubRegion
}

// defaultViewportHeight sizes the container before the viewport is known.
const defaultViewportHeight = 1000

// FrameScrubber maps the scroll position through a tall container to a frame
// index in [1, TotalFrames] and decides whether the frame view is pinned.
type FrameScrubber struct {
	TotalFrames    int
	PixelsPerFrame float64

	state  FrameState
	loaded int
}

// NewFrameScrubber creates a scrubber positioned at frame 1, unpinned.
func NewFrameScrubber(totalFrames int, pixelsPerFrame float64) *FrameScrubber {
	if totalFrames < 1 {
		totalFrames = 1
	}
	if pixelsPerFrame <= 0 {
		pixelsPerFrame = 50
	}
	return &FrameScrubber{
		TotalFrames:    totalFrames,
		PixelsPerFrame: pixelsPerFrame,
		state:          FrameState{Frame: 1, Region: RegionBefore},
	}
}

// ScrollLength returns the scroll distance that plays every frame once.
func (s *FrameScrubber) ScrollLength() float64 {
	return float64(s.TotalFrames) * s.PixelsPerFrame
}

// ContainerHeight returns the height the scrub container must have so the
// pinned region lasts exactly ScrollLength pixels of scroll.
func (s *FrameScrubber) ContainerHeight(viewportHeight float64) float64 {
	if viewportHeight <= 0 {
		viewportHeight = defaultViewportHeight
	}
	return s.ScrollLength() + viewportHeight
}

// Update evaluates the container geometry. The three regions are mutually
// exclusive and cover every scroll position. A non-positive viewport height
// leaves the previous state untouched.
func (s *FrameScrubber) Update(g ContainerGeometry, viewportHeight float64) FrameState {
	if !(viewportHeight > 0) {
		return s.state
	}
	switch {
	case g.Top <= 0 && g.Bottom > viewportHeight:
		s.state = FrameState{Frame: s.frameAt(-g.Top), Pinned: true, Region: RegionInside}
	case g.Top > 0:
		s.state = FrameState{Frame: 1, Pinned: false, Region: RegionBefore}
	default:
		s.state = FrameState{Frame: s.TotalFrames, Pinned: false, Region: RegionAfter}
	}
	return s.state
}

func (s *FrameScrubber) frameAt(scrolled float64) int {
	f := math.Floor(scrolled/s.PixelsPerFrame) + 1
	if math.IsNaN(f) {
		return 1
	}
	return int(Clamp(f, 1, float64(s.TotalFrames)))
}

// State returns the last evaluated state.
func (s *FrameScrubber) State() FrameState {
	return s.state
}

// CurrentFrame returns the frame to display, in [1, TotalFrames].
func (s *FrameScrubber) CurrentFrame() int {
	return s.state.Frame
}

// Pinned reports whether the frame view is fixed to the viewport.
func (s *FrameScrubber) Pinned() bool {
	return s.state.Pinned
}

// SetLoaded records how many frame images have finished loading. The count
// only ever grows and is capped at TotalFrames.
func (s *FrameScrubber) SetLoaded(n int) {
	if n > s.TotalFrames {
		n = s.TotalFrames
	}
	if n > s.loaded {
		s.loaded = n
	}
}

// Loaded returns the number of frame images loaded so far.
func (s *FrameScrubber) Loaded() int {
	return s.loaded
}

// Ready reports whether every frame image has loaded. Frames must not be
// drawn before this.
func (s *FrameScrubber) Ready() bool {
	return s.loaded >= s.TotalFrames
}

// LoadingPercent is the progress shown while frames are still loading,
// derived from the loaded count.
func (s *FrameScrubber) LoadingPercent() int {
	return percent(s.loaded, s.TotalFrames)
}

// PlaybackPercent is the position of the current frame within the sequence.
func (s *FrameScrubber) PlaybackPercent() int {
	return percent(s.state.Frame, s.TotalFrames)
}

func percent(n, total int) int {
	return int(math.Round(SafeRatio(float64(n), float64(total)) * 100))
}

package polaris

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"
)

// ErrDisposed is returned by operations on a disposed Page.
var ErrDisposed = errors.New("polaris: page disposed")

// PageStage is where the page is in its lifecycle.
type PageStage uint8

const (
	StageLoading  PageStage = iota // loading overlay shown
	StageExiting                   // overlay sliding away
	StageMounted                   // content live, listeners attached
	StageDisposed                  // torn down
)

func (s PageStage) String() string {
	switch s {
	case StageLoading:
		return "loading"
	case StageExiting:
		return "exiting"
	case StageMounted:
		return "mounted"
	case StageDisposed:
		return "disposed"
	}
	return "unknown"
}

// PageConfig collects the tuning of every page component.
type PageConfig struct {
	// LoadingDuration is how long the overlay is shown before it exits.
	LoadingDuration time.Duration
	// EntranceDelay is measured from mount to the model entrance trigger.
	EntranceDelay time.Duration

	ModelPath      string
	Frames         FrameSequenceConfig
	PixelsPerFrame float64

	Particles ParticleFieldConfig
	Loading   LoadingConfig
	Scene     SceneConfig
	Reveal    RevealConfig
	Layout    DocumentLayout

	// HeroLines is the hero text, drawn top to bottom.
	HeroLines []string
}

// DefaultPageConfig returns the landing page as shipped.
func DefaultPageConfig() PageConfig {
	return PageConfig{
		LoadingDuration: 5 * time.Second,
		EntranceDelay:   5 * time.Second,
		ModelPath:       "models/polaris.glb",
		Frames: FrameSequenceConfig{
			Dir:         "imagenes",
			Prefix:      "video1_frame_",
			Ext:         ".jpg",
			Total:       80,
			Parallelism: 8,
		},
		PixelsPerFrame: 50,
		Particles: ParticleFieldConfig{
			Count:         350,
			Radius:        120,
			PhaseDuration: 2 * time.Second,
			Center:        Vec2{X: 250, Y: 250},
			Color:         Color{R: 60.0 / 255, G: 60.0 / 255, B: 60.0 / 255, A: 1},
		},
		Loading: DefaultLoadingConfig(),
		Scene:   DefaultSceneConfig(),
		Reveal:  DefaultRevealConfig(),
		Layout:  DefaultDocumentLayout(),
		HeroLines: []string{
			"POLARIS",
			"Lo mejor para tu negocio",
			"BUSINESS",
			"Desarrollo empresarial",
			"Scroll para explorar",
		},
	}
}

// PageOptions supplies the page's collaborators. Zero values pick the
// defaults: a no-op renderer, LoadGLTF, LoadImageFile, a time-seeded random
// source and slog.Default().
type PageOptions struct {
	Renderer    Renderer
	ModelLoader ModelLoader
	ImageLoader ImageLoader
	Rand        *rand.Rand
	Logger      *slog.Logger

	// OnMount runs once, right after the content is mounted.
	OnMount func()
}

// Page sequences the landing page: the loading overlay for a fixed time, its
// slide-up exit, then the mounted content with the scene controller, text
// reveal and frame scrubber all following the document scroll.
type Page struct {
	cfg  PageConfig
	opts PageOptions
	log  *slog.Logger

	stage PageStage

	doc      *Document
	scrubber *FrameScrubber
	frames   *FrameSequence
	loading  *LoadingScreen
	scene    *SceneController
	reveal   *TextReveal

	timers      Scheduler
	mountedAt   time.Duration
	triggeredAt time.Duration
	// triggered is set when the entrance timer fires and cleared by the
	// tick that consumes it.
	triggered bool
	listeners Listeners
	handles   []CallbackHandle

	ctx    context.Context
	cancel context.CancelFunc
}

// NewPage creates a page in the loading stage with a viewport of the given
// size. The overlay timer starts counting on the first Update.
func NewPage(ctx context.Context, cfg PageConfig, width, height int, opts PageOptions) *Page {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Renderer == nil {
		opts.Renderer = NullRenderer{}
	}
	if ctx == nil {
		ctx = context.Background()
	}
	p := &Page{
		cfg:  cfg,
		opts: opts,
		log:  opts.Logger.With("component", "page"),
	}
	p.ctx, p.cancel = context.WithCancel(ctx)

	p.scrubber = NewFrameScrubber(cfg.Frames.Total, cfg.PixelsPerFrame)
	p.frames = NewFrameSequence(cfg.Frames, opts.ImageLoader, opts.Logger)
	p.doc = NewDocument(cfg.Layout, p.scrubber, float64(width), float64(height))
	p.loading = NewLoadingScreen(NewParticleField(cfg.Particles, opts.Rand), cfg.Loading)
	p.scene = NewSceneController(cfg.Scene, opts.Renderer, opts.Logger)
	p.reveal = NewTextReveal(cfg.Reveal)

	p.timers.After(cfg.LoadingDuration, p.beginExit)
	p.log.Debug("page created", "width", width, "height", height)
	return p
}

func (p *Page) beginExit() {
	if p.stage != StageLoading {
		return
	}
	p.stage = StageExiting
	_, h := p.doc.Viewport()
	p.loading.BeginExit(h)
	p.timers.After(p.cfg.Loading.ExitDuration, func() { _ = p.Mount() })
	p.log.Debug("loading exit started")
}

// Mount replaces the loading overlay with the live content. It attaches the
// scroll and resize listeners, starts the text reveal timer, schedules the
// model entrance, and starts the model and frame loads. Called by the
// overlay timer; calling it earlier skips the overlay. Mounting twice is a
// no-op.
func (p *Page) Mount() error {
	switch p.stage {
	case StageDisposed:
		return ErrDisposed
	case StageMounted:
		return nil
	}
	p.stage = StageMounted
	p.mountedAt = p.timers.Now()
	p.loading.Dispose()

	p.handles = append(p.handles,
		p.listeners.OnScroll(p.handleScroll),
		p.listeners.OnResize(p.handleResize),
	)
	p.reveal.Start()
	p.timers.After(p.cfg.EntranceDelay, p.triggerEntrance)

	p.scene.Load(LoadModelAsync(p.ctx, p.cfg.ModelPath, p.opts.ModelLoader))
	p.frames.Preload(p.ctx)

	w, h := p.doc.Viewport()
	p.scene.Resize(int(w), int(h))
	p.handleScroll(p.doc.ScrollEvent())

	p.log.Info("page mounted")
	if p.opts.OnMount != nil {
		p.opts.OnMount()
	}
	return nil
}

func (p *Page) triggerEntrance() {
	p.triggeredAt = p.timers.Now()
	p.triggered = true
	p.scene.TriggerEntrance()
}

func (p *Page) handleScroll(e ScrollEvent) {
	p.scene.OnScroll(e.ScrollTop, e.DocumentHeight, e.ViewportHeight)
	p.reveal.SetScroll(e.Progress())
	p.scrubber.Update(p.doc.ContainerGeometry(), e.ViewportHeight)
}

func (p *Page) handleResize(e ResizeEvent) {
	p.scene.Resize(e.Width, e.Height)
	p.handleScroll(p.doc.ScrollEvent())
}

// Update advances the page by one tick.
func (p *Page) Update(dt time.Duration) {
	if p.stage == StageDisposed {
		return
	}
	dt = ClampDelta(dt)
	before := p.stage
	p.timers.Advance(dt)
	switch {
	case p.stage == StageDisposed:
		return
	case p.stage == StageMounted && before != StageMounted:
		// Mounted by a timer inside this tick; the content only lives for
		// the remainder.
		dt = p.timers.Now() - p.mountedAt
	}

	if p.stage != StageMounted {
		p.loading.Update(dt)
		return
	}
	p.scrubber.SetLoaded(p.frames.Poll())
	p.reveal.Update(dt)

	sceneDt := dt
	if p.triggered {
		// The entrance clock starts at the trigger, not at the start of
		// this tick.
		p.triggered = false
		sceneDt = p.timers.Now() - p.triggeredAt
	}
	p.scene.Update(sceneDt)
}

// ScrollBy moves the document scroll offset and notifies the listeners.
func (p *Page) ScrollBy(dy float64) {
	p.SetScrollTop(p.doc.ScrollTop() + dy)
}

// SetScrollTop sets the document scroll offset and notifies the listeners.
func (p *Page) SetScrollTop(y float64) {
	if p.stage == StageDisposed {
		return
	}
	p.doc.SetScrollTop(y)
	p.listeners.EmitScroll(p.doc.ScrollEvent())
}

// Resize changes the viewport size and notifies the listeners.
func (p *Page) Resize(width, height int) {
	if p.stage == StageDisposed || width <= 0 || height <= 0 {
		return
	}
	w, h := p.doc.Viewport()
	if int(w) == width && int(h) == height {
		return
	}
	p.doc.SetViewport(float64(width), float64(height))
	p.listeners.EmitResize(ResizeEvent{Width: width, Height: height})
}

// SetTuning applies new smoothing and scroll ranges to the live scene.
func (p *Page) SetTuning(cfg SceneConfig) {
	if p.stage == StageDisposed {
		return
	}
	p.cfg.Scene = cfg
	p.scene.SetTuning(cfg)
}

// Dispose tears the page down: it stops ticking, clears pending timers,
// detaches listeners, cancels background loads and disposes the renderer.
// Safe to call more than once.
func (p *Page) Dispose() {
	if p.stage == StageDisposed {
		return
	}
	p.stage = StageDisposed

	p.timers.Clear()
	for _, h := range p.handles {
		h.Remove()
	}
	p.handles = nil
	p.listeners.Clear()

	p.cancel()
	p.frames.Dispose()
	p.loading.Dispose()
	p.scene.Dispose()
	p.log.Info("page disposed")
}

// Stage returns the lifecycle stage.
func (p *Page) Stage() PageStage { return p.stage }

// Config returns the page configuration.
func (p *Page) Config() PageConfig { return p.cfg }

// Document returns the virtual document.
func (p *Page) Document() *Document { return p.doc }

// Scrubber returns the frame scrubber.
func (p *Page) Scrubber() *FrameScrubber { return p.scrubber }

// Frames returns the frame sequence.
func (p *Page) Frames() *FrameSequence { return p.frames }

// Loading returns the loading overlay.
func (p *Page) Loading() *LoadingScreen { return p.loading }

// Scene returns the scene controller.
func (p *Page) Scene() *SceneController { return p.scene }

// Reveal returns the hero text reveal.
func (p *Page) Reveal() *TextReveal { return p.reveal }

// PendingTimers returns the number of scheduled callbacks not yet fired.
func (p *Page) PendingTimers() int { return p.timers.Pending() }

// ListenerCount returns the number of attached scroll and resize listeners.
func (p *Page) ListenerCount() int { return p.listeners.Len() }

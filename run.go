package polaris

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// ShowFPS draws an FPS/TPS counter in the top-left corner.
	ShowFPS bool
	// Debug logs per-second tick timing and page state at debug level.
	Debug bool
	// ScreenshotDir receives screenshots taken by a test script. Defaults
	// to "screenshots".
	ScreenshotDir string
	// Script, when set, drives the page instead of the user.
	Script *TestRunner
	// ExitWhenScriptDone closes the window once Script has run every step.
	ExitWhenScriptDone bool

	// WheelStep is the scroll distance of one wheel notch in pixels.
	WheelStep float64
	// KeyScrollSpeed is the scroll distance per tick while an arrow key is
	// held.
	KeyScrollSpeed float64

	Logger *slog.Logger
}

func (c *RunConfig) defaults() {
	if c.Width <= 0 {
		c.Width = 1280
	}
	if c.Height <= 0 {
		c.Height = 800
	}
	if c.ScreenshotDir == "" {
		c.ScreenshotDir = "screenshots"
	}
	if c.WheelStep <= 0 {
		c.WheelStep = 60
	}
	if c.KeyScrollSpeed <= 0 {
		c.KeyScrollSpeed = 12
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// hostEventKind identifies an injected host event.
type hostEventKind uint8

const (
	hostScrollBy hostEventKind = iota
	hostScrollTo
	hostResize
)

type hostEvent struct {
	kind          hostEventKind
	y             float64
	width, height int
}

// Host adapts a Page to ebiten.Game. It turns wheel and keyboard input into
// scroll changes, advances the page once per tick and draws it.
type Host struct {
	page *Page
	cfg  RunConfig
	log  *slog.Logger

	runner          *TestRunner
	injectQueue     []hostEvent
	screenshotQueue []string
	ScreenshotDir   string

	debug bool
	stats debugStats
	fps   *fpsCounter

	postMu sync.Mutex
	posted []func(*Page)

	lastTick   time.Time
	lastDelta  time.Duration
	lastW      int
	lastH      int
	terminated bool
}

// NewHost wraps page. The page is not advanced until the game loop calls
// Update.
func NewHost(page *Page, cfg RunConfig) *Host {
	cfg.defaults()
	h := &Host{
		page:          page,
		cfg:           cfg,
		log:           cfg.Logger.With("component", "host"),
		runner:        cfg.Script,
		ScreenshotDir: cfg.ScreenshotDir,
		debug:         cfg.Debug,
	}
	if cfg.ShowFPS {
		h.fps = &fpsCounter{}
	}
	return h
}

// SetDebugMode enables or disables the per-second debug log.
func (h *Host) SetDebugMode(enabled bool) {
	h.debug = enabled
}

// SetTestRunner attaches a script. The runner is stepped at the start of
// every Update.
func (h *Host) SetTestRunner(r *TestRunner) {
	h.runner = r
}

// Page returns the hosted page.
func (h *Host) Page() *Page {
	return h.page
}

// Post queues fn to run against the page at the start of the next tick.
// Unlike every other Host and Page method it is safe to call from any
// goroutine.
func (h *Host) Post(fn func(*Page)) {
	h.postMu.Lock()
	h.posted = append(h.posted, fn)
	h.postMu.Unlock()
}

func (h *Host) drainPosted() {
	h.postMu.Lock()
	fns := h.posted
	h.posted = nil
	h.postMu.Unlock()
	for _, fn := range fns {
		fn(h.page)
	}
}

// tickDelta returns the time step of this tick: 1/TPS when the tick rate is
// fixed, the measured wall-clock gap otherwise.
func (h *Host) tickDelta() time.Duration {
	if tps := ebiten.TPS(); tps > 0 {
		return time.Second / time.Duration(tps)
	}
	now := time.Now()
	var dt time.Duration
	if !h.lastTick.IsZero() {
		dt = now.Sub(h.lastTick)
	}
	h.lastTick = now
	return ClampDelta(dt)
}

// Update implements ebiten.Game.
func (h *Host) Update() error {
	if h.terminated || h.page.Stage() == StageDisposed {
		return ebiten.Termination
	}
	if h.runner != nil && h.runner.Done() && h.cfg.ExitWhenScriptDone {
		return ebiten.Termination
	}
	start := time.Now()

	h.drainPosted()
	if h.runner != nil {
		h.runner.step(h)
	}
	if !h.processInjected() && h.runner == nil {
		h.processInput()
	}
	if h.terminated {
		return ebiten.Termination
	}

	dt := h.tickDelta()
	h.lastDelta = dt
	h.page.Update(dt)
	if h.fps != nil {
		h.fps.Update(dt)
	}

	if h.debug {
		h.stats.update += time.Since(start)
		h.stats.ticks++
		h.stats.window += dt
		if h.stats.window >= time.Second {
			h.debugLog()
		}
	}
	return nil
}

func (h *Host) processInput() {
	if _, dy := ebiten.Wheel(); dy != 0 {
		h.page.ScrollBy(-dy * h.cfg.WheelStep)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		h.page.ScrollBy(h.cfg.KeyScrollSpeed)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		h.page.ScrollBy(-h.cfg.KeyScrollSpeed)
	}
	_, vh := h.page.Document().Viewport()
	if inpututil.IsKeyJustPressed(ebiten.KeyPageDown) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		h.page.ScrollBy(vh * 0.9)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageUp) {
		h.page.ScrollBy(-vh * 0.9)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		h.page.SetScrollTop(0)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnd) {
		h.page.SetScrollTop(h.page.Document().MaxScroll())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		h.terminated = true
	}
}

// Draw implements ebiten.Game.
func (h *Host) Draw(screen *ebiten.Image) {
	start := time.Now()
	h.page.Draw(screen)
	if h.fps != nil {
		h.fps.Draw(screen)
	}
	h.flushScreenshots(screen)
	if h.debug {
		h.stats.draw += time.Since(start)
	}
}

// Layout implements ebiten.Game. A changed outside size is forwarded to the
// page as a resize.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != h.lastW || outsideHeight != h.lastH {
		h.lastW, h.lastH = outsideWidth, outsideHeight
		h.page.Resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// Dispose tears down the page and the host's own images.
func (h *Host) Dispose() {
	h.page.Dispose()
	if h.fps != nil {
		h.fps.Dispose()
	}
}

// Run opens a window and runs page until the window is closed or Escape is
// pressed. The page is disposed on return.
func Run(page *Page, cfg RunConfig) error {
	if page.Stage() == StageDisposed {
		return ErrDisposed
	}
	return RunHost(NewHost(page, cfg))
}

// RunHost opens the window for an already constructed host and blocks until
// it closes. The host is disposed on return.
func RunHost(host *Host) error {
	defer host.Dispose()

	ebiten.SetWindowTitle(host.cfg.Title)
	ebiten.SetWindowSize(host.cfg.Width, host.cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	err := ebiten.RunGame(host)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

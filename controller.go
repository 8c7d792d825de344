package polaris

import (
	"log/slog"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/phanxgames/polaris/ease"
)

// SceneConfig tunes the scene animation controller.
type SceneConfig struct {
	// FOV, Near and Far set up the perspective camera.
	FOV, Near, Far float64

	// EntranceDuration is the length of the one-shot entrance.
	EntranceDuration time.Duration
	// EntranceRotation is the model's Y rotation at the start and end of
	// the entrance, in radians.
	EntranceRotation Range
	// CameraStartFactor and CameraEndFactor multiply the model's largest
	// dimension to give the camera Z at the start and end of the entrance.
	CameraStartFactor, CameraEndFactor float64
	// FadePortion is the fraction of the entrance over which the model
	// fades from 0 to 1.
	FadePortion float64

	// Smoothing is the fraction of the remaining distance covered per tick
	// by the continuous layer.
	Smoothing float64
	// ScrollRotation, ScrollFOV and ScrollScale are the scroll-driven
	// target ranges from the top of the page to the bottom.
	ScrollRotation, ScrollFOV, ScrollScale Range
	// ScrollCameraZFactor scales the anchored camera Z to give the target
	// at the bottom of the page.
	ScrollCameraZFactor float64

	// Metalness and Roughness are applied to every material on load.
	Metalness, Roughness float64
}

// DefaultSceneConfig returns the landing page tuning.
func DefaultSceneConfig() SceneConfig {
	return SceneConfig{
		FOV:                 32.5,
		Near:                0.1,
		Far:                 5000,
		EntranceDuration:    2 * time.Second,
		EntranceRotation:    Range{Min: math.Pi / 2, Max: 3.2},
		CameraStartFactor:   2.5,
		CameraEndFactor:     1.8,
		FadePortion:         0.5,
		Smoothing:           0.08,
		ScrollRotation:      Range{Min: 3.2, Max: 3.2 + math.Pi},
		ScrollFOV:           Range{Min: 32.5, Max: 45},
		ScrollScale:         Range{Min: 1, Max: 1.35},
		ScrollCameraZFactor: 0.5,
		Metalness:           0.05,
		Roughness:           0.9,
	}
}

// Camera positions used when the model has no usable size.
var (
	fallbackCameraStart = mgl64.Vec3{0, 0, 5}
	fallbackCameraEnd   = mgl64.Vec3{0, 0, 3}
)

// EntranceState tracks the one-shot entrance. It runs at most once: after
// Complete is set, Start has no effect.
type EntranceState struct {
	running  bool
	elapsed  time.Duration
	Progress float64
	Complete bool
}

// Running reports whether the entrance has started and not yet completed.
func (e EntranceState) Running() bool {
	return e.running
}

// Start begins the entrance. No-op if it is running or already complete.
func (e *EntranceState) Start() bool {
	if e.running || e.Complete {
		return false
	}
	e.running = true
	e.elapsed = 0
	e.Progress = 0
	return true
}

// advance accumulates dt and returns the linear progress in [0, 1].
func (e *EntranceState) advance(dt, duration time.Duration) float64 {
	e.elapsed += ClampDelta(dt)
	if duration <= 0 {
		e.Progress = 1
	} else {
		e.Progress = math.Min(float64(e.elapsed)/float64(duration), 1)
	}
	if e.Progress >= 1 {
		e.running = false
		e.Complete = true
	}
	return e.Progress
}

// SceneTargets is the desired end state of the continuous layer. The scroll
// handler writes it through SetScroll; the render tick reads it. Actual
// camera and model values lag behind and are never written back here.
type SceneTargets struct {
	RotationY float64
	FOV       float64
	CameraZ   float64
	Scale     float64

	// InitialCameraZ is the camera Z the entrance finished at. Until it is
	// anchored, a provisional value is used.
	InitialCameraZ float64
	anchored       bool

	// ScrollProgress is the last clamped, un-eased scroll ratio.
	ScrollProgress float64

	cfg *SceneConfig
}

func newSceneTargets(cfg *SceneConfig) SceneTargets {
	t := SceneTargets{cfg: cfg, InitialCameraZ: fallbackCameraEnd[2]}
	t.recompute()
	return t
}

// SetScroll recomputes the targets from the page scroll. A page that cannot
// scroll counts as progress 0.
func (t *SceneTargets) SetScroll(scrollTop, documentHeight, viewportHeight float64) {
	t.ScrollProgress = Clamp(SafeRatio(scrollTop, documentHeight-viewportHeight), 0, 1)
	t.recompute()
}

// AnchorCameraZ fixes the start of the camera Z range to z. Only the first
// call counts.
func (t *SceneTargets) AnchorCameraZ(z float64) {
	if t.anchored {
		return
	}
	t.anchored = true
	t.InitialCameraZ = z
	t.recompute()
}

// provisional sets the camera Z anchor used before the entrance completes.
func (t *SceneTargets) provisional(z float64) {
	if t.anchored {
		return
	}
	t.InitialCameraZ = z
	t.recompute()
}

// Anchored reports whether the camera Z anchor comes from a finished entrance.
func (t SceneTargets) Anchored() bool {
	return t.anchored
}

func (t *SceneTargets) recompute() {
	e := ease.OutCubic(t.ScrollProgress)
	t.RotationY = t.cfg.ScrollRotation.At(e)
	t.FOV = t.cfg.ScrollFOV.At(e)
	t.Scale = t.cfg.ScrollScale.At(e)
	t.CameraZ = Lerp(t.InitialCameraZ, t.InitialCameraZ*t.cfg.ScrollCameraZFactor, e)
}

// SceneController animates the model and camera: first a timed entrance,
// then continuous exponential smoothing toward the scroll-driven targets.
type SceneController struct {
	cfg      SceneConfig
	stage    *Stage
	camera   *Camera
	renderer Renderer
	log      *slog.Logger

	entrance EntranceState
	targets  SceneTargets

	pending    *Future[*Model]
	modelState FutureState
	triggered  bool

	camStart, camEnd mgl64.Vec3

	disposed bool
}

// NewSceneController creates a controller with an empty stage. renderer may
// be nil for headless use.
func NewSceneController(cfg SceneConfig, renderer Renderer, logger *slog.Logger) *SceneController {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "scene")
	c := &SceneController{
		cfg:      cfg,
		stage:    NewStage(logger),
		camera:   NewCamera(cfg.FOV, 1, cfg.Near, cfg.Far),
		renderer: renderer,
		log:      logger,
		camStart: fallbackCameraStart,
		camEnd:   fallbackCameraEnd,
	}
	c.targets = newSceneTargets(&c.cfg)
	c.camera.SetPosition(c.camStart)
	c.camera.LookAt(mgl64.Vec3{})
	return c
}

// Load hands the controller a pending model. It is polled on each Update
// and attached to the stage once ready.
func (c *SceneController) Load(f *Future[*Model]) {
	if c.disposed || c.pending != nil || c.modelState != FuturePending {
		return
	}
	c.pending = f
}

// TriggerEntrance requests the entrance. It begins on the first tick where
// the model is attached; without a model it never begins.
func (c *SceneController) TriggerEntrance() {
	c.triggered = true
}

// OnScroll updates the continuous-layer targets from the page scroll.
func (c *SceneController) OnScroll(scrollTop, documentHeight, viewportHeight float64) {
	c.targets.SetScroll(scrollTop, documentHeight, viewportHeight)
}

// Resize updates the camera aspect and the renderer surface.
func (c *SceneController) Resize(width, height int) {
	if c.disposed || width <= 0 || height <= 0 {
		return
	}
	c.camera.SetAspect(float64(width) / float64(height))
	c.camera.UpdateProjectionMatrix()
	if c.renderer != nil {
		c.renderer.Resize(width, height)
	}
}

// Update advances one tick: model readiness, then the entrance layer, then
// the continuous layer.
func (c *SceneController) Update(dt time.Duration) {
	if c.disposed {
		return
	}
	c.pollModel()

	if c.triggered && c.stage.Model() != nil && c.entrance.Start() {
		c.log.Debug("entrance started")
	}
	if c.entrance.Running() {
		c.applyEntrance(dt)
	}
	if c.entrance.Complete {
		c.applyContinuous()
	}
}

// Draw renders the stage. With no model the stage is drawn bare.
func (c *SceneController) Draw() {
	if c.disposed || c.renderer == nil {
		return
	}
	c.renderer.Render(c.stage, c.camera)
}

// Tick runs Update then Draw, the order every frame must follow.
func (c *SceneController) Tick(dt time.Duration) {
	c.Update(dt)
	c.Draw()
}

func (c *SceneController) pollModel() {
	if c.pending == nil {
		return
	}
	m, state, err := c.pending.Poll()
	switch state {
	case FuturePending:
		return
	case FutureFailed:
		c.log.Error("model load failed", "err", err)
	case FutureReady:
		if m == nil {
			state = FutureFailed
			c.log.Error("model load failed", "err", ErrModelNotReady)
			break
		}
		c.attach(m)
	}
	c.modelState = state
	c.pending = nil
}

func (c *SceneController) attach(m *Model) {
	m.ApplySurface(c.cfg.Metalness, c.cfg.Roughness)
	m.CenterOnOrigin()
	m.RotationY = c.cfg.EntranceRotation.Min
	m.SetOpacity(0)

	if d := m.MaxDim(); d > 0 && !math.IsInf(d, 0) {
		c.camStart = mgl64.Vec3{0, 0, d * c.cfg.CameraStartFactor}
		c.camEnd = mgl64.Vec3{0, 0, d * c.cfg.CameraEndFactor}
	}
	c.camera.SetPosition(c.camStart)
	c.camera.LookAt(mgl64.Vec3{})
	c.targets.provisional(c.camEnd[2])
	c.stage.Add(m)
	c.log.Info("model ready", "name", m.Name, "maxDim", m.MaxDim())
}

func (c *SceneController) applyEntrance(dt time.Duration) {
	p := c.entrance.advance(dt, c.cfg.EntranceDuration)
	e := ease.OutCubic(p)

	if m := c.stage.Model(); m != nil {
		m.RotationY = c.cfg.EntranceRotation.At(e)
		if c.cfg.FadePortion > 0 && p < c.cfg.FadePortion {
			m.SetOpacity(p / c.cfg.FadePortion)
		} else {
			m.SetOpacity(1)
		}
	}
	c.camera.SetPosition(mgl64.Vec3{
		Lerp(c.camStart[0], c.camEnd[0], e),
		Lerp(c.camStart[1], c.camEnd[1], e),
		Lerp(c.camStart[2], c.camEnd[2], e),
	})
	c.camera.LookAt(mgl64.Vec3{})

	if c.entrance.Complete {
		c.targets.AnchorCameraZ(c.camera.Position[2])
		c.log.Debug("entrance complete", "cameraZ", c.camera.Position[2])
	}
}

func (c *SceneController) applyContinuous() {
	s := c.cfg.Smoothing
	t := &c.targets
	if m := c.stage.Model(); m != nil {
		m.RotationY = Approach(m.RotationY, t.RotationY, s)
		m.Scale = Approach(m.Scale, t.Scale, s)
	}
	c.camera.SetFOV(Approach(c.camera.FOV, t.FOV, s))
	c.camera.UpdateProjectionMatrix()
	c.camera.SetZ(Approach(c.camera.Position[2], t.CameraZ, s))
}

// SetTuning replaces the smoothing factor and scroll ranges, keeping the
// camera Z anchor.
func (c *SceneController) SetTuning(cfg SceneConfig) {
	c.cfg.Smoothing = cfg.Smoothing
	c.cfg.ScrollRotation = cfg.ScrollRotation
	c.cfg.ScrollFOV = cfg.ScrollFOV
	c.cfg.ScrollScale = cfg.ScrollScale
	c.cfg.ScrollCameraZFactor = cfg.ScrollCameraZFactor
	c.targets.recompute()
}

// Dispose detaches the model and releases the renderer. Further calls to
// Update and Draw do nothing.
func (c *SceneController) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	c.pending = nil
	c.stage.Remove()
	if c.renderer != nil {
		c.renderer.Dispose()
	}
}

// Camera returns the controller's camera.
func (c *SceneController) Camera() *Camera { return c.camera }

// Stage returns the controller's stage.
func (c *SceneController) Stage() *Stage { return c.stage }

// Model returns the attached model, or nil.
func (c *SceneController) Model() *Model { return c.stage.Model() }

// ModelState reports whether the model is pending, ready or failed.
func (c *SceneController) ModelState() FutureState { return c.modelState }

// Entrance returns the entrance state.
func (c *SceneController) Entrance() EntranceState { return c.entrance }

// Targets returns a copy of the current targets.
func (c *SceneController) Targets() SceneTargets { return c.targets }

// Disposed reports whether Dispose has been called.
func (c *SceneController) Disposed() bool { return c.disposed }

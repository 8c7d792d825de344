// Package config loads the landing page settings from a TOML file.
//
// Every field has a default, so a file only needs the values it changes:
//
//	[scene]
//	smoothing = 0.05
//	fov = [30, 50]
//
//	[frames]
//	dir = "assets/frames"
//
// Durations are written as Go duration strings ("800ms", "5s").
package config

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/phanxgames/polaris"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Duration is a time.Duration written as a string in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration as a Go duration string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Config is the whole settings file.
type Config struct {
	Window  Window  `toml:"window"`
	Loading Loading `toml:"loading"`
	Scene   Scene   `toml:"scene"`
	Frames  Frames  `toml:"frames"`
	Reveal  Reveal  `toml:"reveal"`
	Page    Page    `toml:"page"`
}

// Window configures the desktop window.
type Window struct {
	Title   string `toml:"title"`
	Width   int    `toml:"width"`
	Height  int    `toml:"height"`
	Debug   bool   `toml:"debug"`
	ShowFPS bool   `toml:"show_fps"`
}

// Loading configures the loading overlay and its particle field.
type Loading struct {
	Particles int      `toml:"particles"`
	Radius    float64  `toml:"radius"`
	Phase     Duration `toml:"phase"`
	Display   Duration `toml:"display"`
	Exit      Duration `toml:"exit"`
	Caption   string   `toml:"caption"`
}

// Scene configures the model entrance and the scroll-driven motion.
type Scene struct {
	Model         string     `toml:"model"`
	Entrance      Duration   `toml:"entrance"`
	EntranceDelay Duration   `toml:"entrance_delay"`
	Smoothing     float64    `toml:"smoothing"`
	Rotation      [2]float64 `toml:"rotation"`
	FOV           [2]float64 `toml:"fov"`
	Scale         [2]float64 `toml:"scale"`
	CameraZFactor float64    `toml:"camera_z_factor"`
}

// Frames locates the scrubbed image sequence.
type Frames struct {
	Dir            string  `toml:"dir"`
	Prefix         string  `toml:"prefix"`
	Ext            string  `toml:"ext"`
	Total          int     `toml:"total"`
	PixelsPerFrame float64 `toml:"pixels_per_frame"`
	Parallelism    int     `toml:"parallelism"`
}

// Reveal configures the hero text reveal.
type Reveal struct {
	StartDelay       Duration `toml:"start_delay"`
	Enter            Duration `toml:"enter"`
	ExitThreshold    float64  `toml:"exit_threshold"`
	ReenterThreshold float64  `toml:"reenter_threshold"`
}

// Page configures the document layout and scroll input.
type Page struct {
	HeroViewports  float64 `toml:"hero_viewports"`
	FooterHeight   float64 `toml:"footer_height"`
	WheelStep      float64 `toml:"wheel_step"`
	KeyScrollSpeed float64 `toml:"key_scroll_speed"`
}

// Default returns the shipped settings.
func Default() Config {
	p := polaris.DefaultPageConfig()
	return Config{
		Window: Window{Title: "Polaris", Width: 1280, Height: 800},
		Loading: Loading{
			Particles: p.Particles.Count,
			Radius:    p.Particles.Radius,
			Phase:     Duration{p.Particles.PhaseDuration},
			Display:   Duration{p.LoadingDuration},
			Exit:      Duration{p.Loading.ExitDuration},
			Caption:   p.Loading.Caption,
		},
		Scene: Scene{
			Model:         p.ModelPath,
			Entrance:      Duration{p.Scene.EntranceDuration},
			EntranceDelay: Duration{p.EntranceDelay},
			Smoothing:     p.Scene.Smoothing,
			Rotation:      [2]float64{p.Scene.ScrollRotation.Min, p.Scene.ScrollRotation.Max},
			FOV:           [2]float64{p.Scene.ScrollFOV.Min, p.Scene.ScrollFOV.Max},
			Scale:         [2]float64{p.Scene.ScrollScale.Min, p.Scene.ScrollScale.Max},
			CameraZFactor: p.Scene.ScrollCameraZFactor,
		},
		Frames: Frames{
			Dir:            p.Frames.Dir,
			Prefix:         p.Frames.Prefix,
			Ext:            p.Frames.Ext,
			Total:          p.Frames.Total,
			PixelsPerFrame: p.PixelsPerFrame,
			Parallelism:    p.Frames.Parallelism,
		},
		Reveal: Reveal{
			StartDelay:       Duration{p.Reveal.StartDelay},
			Enter:            Duration{p.Reveal.EnterDuration},
			ExitThreshold:    p.Reveal.ExitThreshold,
			ReenterThreshold: p.Reveal.ReenterThreshold,
		},
		Page: Page{
			HeroViewports:  p.Layout.HeroViewports,
			FooterHeight:   p.Layout.FooterHeight,
			WheelStep:      60,
			KeyScrollSpeed: 12,
		},
	}
}

// Load reads path on top of Default and validates the result. Unknown keys
// are rejected so typos do not silently fall back to defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return Parse(data)
}

// Parse decodes TOML data on top of Default and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("parse config: %w: %s", ErrInvalid, strict.String())
		}
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every out-of-range value at once.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		bad("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Loading.Particles < 1 {
		bad("loading.particles %d must be at least 1", c.Loading.Particles)
	}
	if !(c.Loading.Radius > 0) {
		bad("loading.radius %v must be positive", c.Loading.Radius)
	}
	if c.Loading.Phase.Duration <= 0 {
		bad("loading.phase %v must be positive", c.Loading.Phase)
	}
	if c.Loading.Display.Duration < 0 || c.Loading.Exit.Duration < 0 {
		bad("loading durations must not be negative")
	}
	if c.Scene.Entrance.Duration <= 0 {
		bad("scene.entrance %v must be positive", c.Scene.Entrance)
	}
	if c.Scene.EntranceDelay.Duration < 0 {
		bad("scene.entrance_delay %v must not be negative", c.Scene.EntranceDelay)
	}
	if !(c.Scene.Smoothing > 0 && c.Scene.Smoothing <= 1) {
		bad("scene.smoothing %v must be in (0, 1]", c.Scene.Smoothing)
	}
	if !(c.Scene.FOV[0] > 0 && c.Scene.FOV[1] > 0 && c.Scene.FOV[0] < 180 && c.Scene.FOV[1] < 180) {
		bad("scene.fov %v must be within (0, 180) degrees", c.Scene.FOV)
	}
	if !(c.Scene.Scale[0] > 0 && c.Scene.Scale[1] > 0) {
		bad("scene.scale %v must be positive", c.Scene.Scale)
	}
	if !(c.Scene.CameraZFactor > 0) {
		bad("scene.camera_z_factor %v must be positive", c.Scene.CameraZFactor)
	}
	for _, v := range c.Scene.Rotation {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			bad("scene.rotation %v must be finite", c.Scene.Rotation)
			break
		}
	}
	if c.Frames.Total < 1 {
		bad("frames.total %d must be at least 1", c.Frames.Total)
	}
	if !(c.Frames.PixelsPerFrame > 0) {
		bad("frames.pixels_per_frame %v must be positive", c.Frames.PixelsPerFrame)
	}
	if c.Frames.Parallelism < 1 {
		bad("frames.parallelism %d must be at least 1", c.Frames.Parallelism)
	}
	if c.Reveal.StartDelay.Duration < 0 || c.Reveal.Enter.Duration < 0 {
		bad("reveal durations must not be negative")
	}
	if !(c.Reveal.ReenterThreshold < c.Reveal.ExitThreshold) {
		bad("reveal.reenter_threshold %v must be below reveal.exit_threshold %v",
			c.Reveal.ReenterThreshold, c.Reveal.ExitThreshold)
	}
	if c.Page.HeroViewports < 0 || c.Page.FooterHeight < 0 {
		bad("page section heights must not be negative")
	}
	return errors.Join(errs...)
}

// PageConfig converts the settings into the page's tuning.
func (c Config) PageConfig() polaris.PageConfig {
	p := polaris.DefaultPageConfig()
	p.LoadingDuration = c.Loading.Display.Duration
	p.EntranceDelay = c.Scene.EntranceDelay.Duration
	p.ModelPath = c.Scene.Model

	p.Frames = polaris.FrameSequenceConfig{
		Dir:         c.Frames.Dir,
		Prefix:      c.Frames.Prefix,
		Ext:         c.Frames.Ext,
		Total:       c.Frames.Total,
		Parallelism: c.Frames.Parallelism,
	}
	p.PixelsPerFrame = c.Frames.PixelsPerFrame

	p.Particles.Count = c.Loading.Particles
	p.Particles.Radius = c.Loading.Radius
	p.Particles.PhaseDuration = c.Loading.Phase.Duration
	p.Loading.ExitDuration = c.Loading.Exit.Duration
	p.Loading.Caption = c.Loading.Caption

	p.Scene = c.SceneConfig()

	p.Reveal.StartDelay = c.Reveal.StartDelay.Duration
	p.Reveal.EnterDuration = c.Reveal.Enter.Duration
	p.Reveal.ExitThreshold = c.Reveal.ExitThreshold
	p.Reveal.ReenterThreshold = c.Reveal.ReenterThreshold

	p.Layout.HeroViewports = c.Page.HeroViewports
	p.Layout.FooterHeight = c.Page.FooterHeight
	return p
}

// SceneConfig converts the [scene] section. These are the values that can
// be changed while running.
func (c Config) SceneConfig() polaris.SceneConfig {
	s := polaris.DefaultSceneConfig()
	s.EntranceDuration = c.Scene.Entrance.Duration
	s.Smoothing = c.Scene.Smoothing
	s.ScrollRotation = polaris.Range{Min: c.Scene.Rotation[0], Max: c.Scene.Rotation[1]}
	s.ScrollFOV = polaris.Range{Min: c.Scene.FOV[0], Max: c.Scene.FOV[1]}
	s.ScrollScale = polaris.Range{Min: c.Scene.Scale[0], Max: c.Scene.Scale[1]}
	s.ScrollCameraZFactor = c.Scene.CameraZFactor
	return s
}

// RunConfig converts the window and scroll input settings.
func (c Config) RunConfig() polaris.RunConfig {
	return polaris.RunConfig{
		Title:          c.Window.Title,
		Width:          c.Window.Width,
		Height:         c.Window.Height,
		ShowFPS:        c.Window.ShowFPS,
		Debug:          c.Window.Debug,
		WheelStep:      c.Page.WheelStep,
		KeyScrollSpeed: c.Page.KeyScrollSpeed,
	}
}

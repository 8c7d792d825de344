package polaris

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	gease "github.com/tanema/gween/ease"
)

// LoadingConfig tunes the loading overlay.
type LoadingConfig struct {
	Caption      string
	ExitDuration time.Duration
	// Top and Bottom are the overlay's gradient colors.
	Top, Bottom Color
	// CaptionGap is the distance in pixels between the field's outer ring
	// and the caption.
	CaptionGap float64
}

// DefaultLoadingConfig returns the landing page overlay.
func DefaultLoadingConfig() LoadingConfig {
	return LoadingConfig{
		Caption:      "LOADING",
		ExitDuration: 800 * time.Millisecond,
		Top:          Color{R: 0.859, G: 0.918, B: 0.996, A: 1},
		Bottom:       Color{R: 0.984, G: 0.812, B: 0.910, A: 1},
		CaptionGap:   32,
	}
}

// gradientBands is how many strips approximate the overlay gradient.
const gradientBands = 48

// LoadingScreen is the full-screen overlay shown while the page loads: the
// particle field over a gradient with a caption. BeginExit slides it up and
// out of view.
type LoadingScreen struct {
	Field *ParticleField

	// OffsetY is the overlay's vertical offset; 0 while shown and minus the
	// viewport height once it has slid away.
	OffsetY float64

	cfg      LoadingConfig
	exit     *TweenGroup
	exited   bool
	disposed bool
}

// NewLoadingScreen wraps field in an overlay.
func NewLoadingScreen(field *ParticleField, cfg LoadingConfig) *LoadingScreen {
	return &LoadingScreen{Field: field, cfg: cfg}
}

// Update advances the particle field and any running exit slide.
func (l *LoadingScreen) Update(dt time.Duration) {
	if l.disposed {
		return
	}
	l.Field.Update(dt)
	if l.exit != nil {
		l.exit.Update(dt)
	}
}

// BeginExit starts the slide-up over ExitDuration. Later calls are ignored.
func (l *LoadingScreen) BeginExit(viewportHeight float64) {
	if l.exit != nil || l.disposed {
		return
	}
	l.exit = TweenValue(&l.OffsetY, -viewportHeight, l.cfg.ExitDuration, gease.InOutCubic)
	l.exit.OnDone = func() { l.exited = true }
}

// Exiting reports whether the slide-up has started.
func (l *LoadingScreen) Exiting() bool {
	return l.exit != nil
}

// Exited reports whether the slide-up has finished.
func (l *LoadingScreen) Exited() bool {
	return l.exited
}

// Dispose stops all further updates.
func (l *LoadingScreen) Dispose() {
	l.disposed = true
	if l.exit != nil {
		l.exit.Stop()
	}
}

// Disposed reports whether Dispose has been called.
func (l *LoadingScreen) Disposed() bool {
	return l.disposed
}

// Draw renders the overlay at its current offset. Nothing is drawn once the
// overlay has slid fully away.
func (l *LoadingScreen) Draw(dst *ebiten.Image, face text.Face) {
	if l.exited || l.disposed {
		return
	}
	b := dst.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())

	band := h / gradientBands
	for i := 0; i < gradientBands; i++ {
		c := Color{
			R: Lerp(l.cfg.Top.R, l.cfg.Bottom.R, float64(i)/(gradientBands-1)),
			G: Lerp(l.cfg.Top.G, l.cfg.Bottom.G, float64(i)/(gradientBands-1)),
			B: Lerp(l.cfg.Top.B, l.cfg.Bottom.B, float64(i)/(gradientBands-1)),
			A: 1,
		}
		y := l.OffsetY + float64(i)*band
		// +1 hides seams between bands.
		vector.DrawFilledRect(dst, 0, float32(y), float32(w), float32(band+1), c.RGBA(), false)
	}

	center := Vec2{X: w / 2, Y: h/2 + l.OffsetY}
	l.Field.Draw(dst, Vec2{X: center.X - l.Field.Config().Center.X, Y: center.Y - l.Field.Config().Center.Y})

	if face == nil || l.cfg.Caption == "" {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(center.X, center.Y+l.Field.Config().Radius*1.2+l.cfg.CaptionGap)
	op.ColorScale.ScaleWithColor(Color{R: 0.12, G: 0.16, B: 0.22, A: 1}.RGBA())
	op.PrimaryAlign = text.AlignCenter
	text.Draw(dst, l.cfg.Caption, face, op)
}

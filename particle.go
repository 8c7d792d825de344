package polaris

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/polaris/ease"
)

// Particle is one point of the loading morph. Anchors are relative to the
// field center and fixed at construction.
type Particle struct {
	Index int

	start   Vec2 // far origin ring, distance in [100, 300)
	ring    Vec2 // uniform in a disc of radius 1.1R
	organic Vec2 // uniform in a disc of radius 1.5R

	Size    float64 // draw radius in [1, 3)
	Opacity float64
}

// newParticle randomizes the anchors of particle i. Disc samples use
// sqrt(u) for the radial term so density is uniform over area.
func newParticle(i int, radius float64, rng *rand.Rand) Particle {
	startAngle := rng.Float64() * 2 * math.Pi
	startDist := rng.Float64()*200 + 100

	ringAngle := rng.Float64() * 2 * math.Pi
	ringDist := math.Sqrt(rng.Float64()) * radius * 1.1

	organicDist := math.Sqrt(rng.Float64()) * radius * 1.5
	organicAngle := rng.Float64() * 2 * math.Pi

	return Particle{
		Index:   i,
		start:   Polar(startAngle, startDist),
		ring:    Polar(ringAngle, ringDist),
		organic: Polar(organicAngle, organicDist),
		Size:    rng.Float64()*2 + 1,
		Opacity: 1,
	}
}

// Anchors returns the from/to anchors of the given phase. The end anchor of
// each phase is the start anchor of the next, so the loop is closed.
func (p *Particle) Anchors(phase Phase) (from, to Vec2) {
	switch phase {
	case PhaseApproachRing:
		return p.start, p.ring
	case PhaseRingToOrganic:
		return p.ring, p.organic
	default:
		return p.organic, p.start
	}
}

// Position returns the particle offset from the field center for the given
// phase and phase-local progress t in [0, 1].
func (p *Particle) Position(phase Phase, t float64) Vec2 {
	from, to := p.Anchors(phase)
	return LerpVec2(from, to, ease.InOutCubic(t))
}

// ParticleFieldConfig controls the loading morph.
type ParticleFieldConfig struct {
	// Count is the particle population. Defaults to 350.
	Count int
	// Radius is the base radius R of the ring and organic discs. Defaults to 120.
	Radius float64
	// PhaseDuration is the wall-clock length of each phase. Defaults to 2s.
	PhaseDuration time.Duration
	// Center is the canvas position the offsets are relative to.
	Center Vec2
	// Color is the particle fill. Alpha is further scaled by 0.8 and the
	// particle opacity.
	Color Color
}

// ParticleField owns a fixed population of particles and the global phase
// clock they share.
type ParticleField struct {
	config    ParticleFieldConfig
	particles []Particle

	phase         Phase
	phaseProgress float64
}

// NewParticleField creates a field with cfg.Count particles whose anchors are
// drawn from rng. A nil rng uses a time-seeded source.
func NewParticleField(cfg ParticleFieldConfig, rng *rand.Rand) *ParticleField {
	if cfg.Count <= 0 {
		cfg.Count = 350
	}
	if cfg.Radius <= 0 {
		cfg.Radius = 120
	}
	if cfg.PhaseDuration <= 0 {
		cfg.PhaseDuration = 2 * time.Second
	}
	if cfg.Color == (Color{}) {
		cfg.Color = Color{R: 60.0 / 255, G: 60.0 / 255, B: 60.0 / 255, A: 1}
	}
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	f := &ParticleField{
		config:    cfg,
		particles: make([]Particle, cfg.Count),
	}
	for i := range f.particles {
		f.particles[i] = newParticle(i, cfg.Radius, rng)
	}
	return f
}

// Phase returns the current phase.
func (f *ParticleField) Phase() Phase {
	return f.phase
}

// Progress returns the phase-local progress in [0, 1).
func (f *ParticleField) Progress() float64 {
	return f.phaseProgress
}

// Particles returns the particle slice. The returned slice MUST NOT be mutated.
func (f *ParticleField) Particles() []Particle {
	return f.particles
}

// Config returns a copy of the field's config.
func (f *ParticleField) Config() ParticleFieldConfig {
	return f.config
}

// Update advances the phase clock by dt. Negative deltas are ignored.
// Overflow carries into the following phase instead of being dropped, and a
// delta spanning several phases advances by all of them, so the clock is
// independent of how elapsed time is split across ticks.
func (f *ParticleField) Update(dt time.Duration) {
	dt = ClampDelta(dt)
	if dt == 0 || f.config.PhaseDuration <= 0 {
		return
	}
	f.phaseProgress += float64(dt) / float64(f.config.PhaseDuration)
	if f.phaseProgress >= 1 {
		whole := math.Floor(f.phaseProgress)
		f.phaseProgress -= whole
		f.phase = f.phase.Advance(int(math.Mod(whole, float64(phaseCount))))
	}
}

// Positions appends the current absolute position of every particle to dst.
func (f *ParticleField) Positions(dst []Vec2) []Vec2 {
	for i := range f.particles {
		dst = append(dst, f.config.Center.Add(f.particles[i].Position(f.phase, f.phaseProgress)))
	}
	return dst
}

// Draw renders every particle as a filled circle, shifted by offset.
func (f *ParticleField) Draw(dst *ebiten.Image, offset Vec2) {
	c := f.config.Center.Add(offset)
	for i := range f.particles {
		p := &f.particles[i]
		pos := c.Add(p.Position(f.phase, f.phaseProgress))
		clr := f.config.Color.WithAlpha(p.Opacity * 0.8).RGBA()
		vector.DrawFilledCircle(dst, float32(pos.X), float32(pos.Y), float32(p.Size), clr, true)
	}
}

package polaris

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
)

// LightKind distinguishes ambient from directional lights.
type LightKind uint8

const (
	LightAmbient LightKind = iota
	LightDirectional
)

// Light is a scene light. Position is only used by directional lights and
// gives the direction toward the light.
type Light struct {
	Kind      LightKind
	Color     Color
	Intensity float64
	Position  mgl64.Vec3
}

// DefaultLights returns the ambient, key and fill lights of the landing scene.
func DefaultLights() []Light {
	return []Light{
		{Kind: LightAmbient, Color: ColorWhite, Intensity: 0.7},
		{Kind: LightDirectional, Color: ColorWhite, Intensity: 1.0, Position: mgl64.Vec3{1, 2, 3}},
		{Kind: LightDirectional, Color: ColorWhite, Intensity: 0.5, Position: mgl64.Vec3{-2, 0, -2}},
	}
}

// Renderer draws a stage from a camera. Implementations own whatever
// surface they draw into.
type Renderer interface {
	Render(stage *Stage, camera *Camera)
	Resize(width, height int)
	Dispose()
}

// Stage is the 3D scene: lights plus an optional model. With no model it
// renders as a bare lit scene.
type Stage struct {
	Lights []Light

	model *Model
	log   *slog.Logger
}

// NewStage creates a stage with the default lights and no model.
func NewStage(logger *slog.Logger) *Stage {
	if logger == nil {
		logger = slog.Default()
	}
	return &Stage{Lights: DefaultLights(), log: logger}
}

// Model returns the attached model, or nil.
func (s *Stage) Model() *Model {
	return s.model
}

// Add attaches m, replacing any previous model.
func (s *Stage) Add(m *Model) {
	if s.model != nil && s.model != m {
		s.model.Dispose()
	}
	s.model = m
	if m != nil {
		s.log.Debug("model attached", "name", m.Name, "maxDim", m.MaxDim())
	}
}

// Remove detaches and disposes the model.
func (s *Stage) Remove() {
	if s.model != nil {
		s.model.Dispose()
		s.model = nil
	}
}

// AmbientIntensity sums the ambient lights.
func (s *Stage) AmbientIntensity() float64 {
	total := 0.0
	for _, l := range s.Lights {
		if l.Kind == LightAmbient {
			total += l.Intensity
		}
	}
	return total
}

// Shade returns a Lambert-style brightness for a surface facing normal,
// clamped to [0, 1].
func (s *Stage) Shade(normal mgl64.Vec3) float64 {
	b := s.AmbientIntensity()
	if normal.Len() == 0 {
		return Clamp(b, 0, 1)
	}
	n := normal.Normalize()
	for _, l := range s.Lights {
		if l.Kind != LightDirectional || l.Position.Len() == 0 {
			continue
		}
		if d := n.Dot(l.Position.Normalize()); d > 0 {
			b += d * l.Intensity
		}
	}
	return Clamp(b, 0, 1)
}

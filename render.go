package polaris

import (
	"image/color"
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// defaultFace is the bitmap face used for captions, hero text and the HUD.
var defaultFace = sync.OnceValue(func() text.Face {
	return text.NewGoXFace(basicfont.Face7x13)
})

// Page colors.
var (
	pageBackground = Color{R: 0.067, G: 0.094, B: 0.153, A: 1}
	heroTextColor  = Color{R: 1, G: 1, B: 1, A: 1}
	frameBackdrop  = Color{R: 0, G: 0, B: 0, A: 1}
)

// NullRenderer discards every draw. Used headless and in tests.
type NullRenderer struct{}

func (NullRenderer) Render(*Stage, *Camera) {}
func (NullRenderer) Resize(int, int)        {}
func (NullRenderer) Dispose()               {}

// boxEdges indexes Box3.Corners pairs forming the twelve edges of a box.
var boxEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// ProjectedPoint is a mesh point in canvas pixels with its shaded
// brightness.
type ProjectedPoint struct {
	X, Y       float64
	Brightness float64
}

// ProjectedMesh is one mesh of the model as seen by the camera.
type ProjectedMesh struct {
	Points  []ProjectedPoint
	Corners [8]ProjectedPoint
	// Visible[i] is false when corner i is behind the camera.
	Visible [8]bool
	Color   Color
	Opacity float64
}

// ProjectStage projects every mesh of the stage's model onto a canvas of the
// given size. Points behind the camera are dropped. Returns nil when the
// stage has no model.
func ProjectStage(stage *Stage, camera *Camera, width, height float64) []ProjectedMesh {
	m := stage.Model()
	if m == nil {
		return nil
	}
	pose := m.Matrix()
	center := m.Bounds().Center()

	var out []ProjectedMesh
	m.Traverse(func(n *Node) {
		if n.Mesh == nil {
			return
		}
		nodeWorld := n.World()
		world := pose.Mul4(nodeWorld)
		pm := ProjectedMesh{Color: ColorWhite, Opacity: m.Opacity()}
		if n.Material != nil {
			pm.Color = n.Material.Color
			pm.Opacity = n.Material.Opacity
		}
		project := func(local mgl64.Vec3) (ProjectedPoint, bool) {
			p := mgl64.TransformCoordinate(local, world)
			normal := mgl64.TransformNormal(mgl64.TransformCoordinate(local, nodeWorld).Sub(center), pose)
			x, y, ok := camera.WorldToScreen(p, width, height)
			return ProjectedPoint{X: x, Y: y, Brightness: stage.Shade(normal)}, ok
		}
		for _, local := range n.Mesh.Points {
			if pt, ok := project(local); ok {
				pm.Points = append(pm.Points, pt)
			}
		}
		for i, c := range n.Mesh.Bounds.Corners() {
			pm.Corners[i], pm.Visible[i] = project(c)
		}
		out = append(out, pm)
	})
	return out
}

// EbitenRenderer draws the stage into an offscreen canvas: mesh points as
// shaded dots and each mesh's bounds as a wireframe box.
type EbitenRenderer struct {
	canvas *ebiten.Image
	// PointSize is the dot radius in pixels.
	PointSize float32
}

// NewEbitenRenderer creates a renderer with a canvas of the given size.
func NewEbitenRenderer(width, height int) *EbitenRenderer {
	r := &EbitenRenderer{PointSize: 1.5}
	r.Resize(width, height)
	return r
}

// Canvas returns the image the stage was last rendered into.
func (r *EbitenRenderer) Canvas() *ebiten.Image {
	return r.canvas
}

// Resize reallocates the canvas when the size changes.
func (r *EbitenRenderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if r.canvas != nil {
		b := r.canvas.Bounds()
		if b.Dx() == width && b.Dy() == height {
			return
		}
		r.canvas.Deallocate()
	}
	r.canvas = ebiten.NewImage(width, height)
}

// Render clears the canvas and draws the stage.
func (r *EbitenRenderer) Render(stage *Stage, camera *Camera) {
	if r.canvas == nil {
		return
	}
	r.canvas.Clear()
	b := r.canvas.Bounds()
	for _, pm := range ProjectStage(stage, camera, float64(b.Dx()), float64(b.Dy())) {
		if pm.Opacity <= 0 {
			continue
		}
		for _, e := range boxEdges {
			if !pm.Visible[e[0]] || !pm.Visible[e[1]] {
				continue
			}
			a, c := pm.Corners[e[0]], pm.Corners[e[1]]
			clr := shadeColor(pm.Color, (a.Brightness+c.Brightness)/2, pm.Opacity*0.6)
			vector.StrokeLine(r.canvas, float32(a.X), float32(a.Y), float32(c.X), float32(c.Y), 1, clr, true)
		}
		for _, pt := range pm.Points {
			clr := shadeColor(pm.Color, pt.Brightness, pm.Opacity)
			vector.DrawFilledCircle(r.canvas, float32(pt.X), float32(pt.Y), r.PointSize, clr, true)
		}
	}
}

// Dispose releases the canvas.
func (r *EbitenRenderer) Dispose() {
	if r.canvas != nil {
		r.canvas.Deallocate()
		r.canvas = nil
	}
}

func shadeColor(c Color, brightness, opacity float64) color.RGBA {
	return Color{R: c.R * brightness, G: c.G * brightness, B: c.B * brightness, A: c.A * opacity}.RGBA()
}

// canvasRenderer is implemented by renderers whose output is composited onto
// the screen.
type canvasRenderer interface {
	Canvas() *ebiten.Image
}

// coverFit returns the scale and offset that make an iw×ih image cover a
// w×h viewport, cropping the overflow equally on both sides.
func coverFit(iw, ih, w, h float64) (scale, dx, dy float64) {
	if iw <= 0 || ih <= 0 {
		return 0, 0, 0
	}
	scale = math.Max(w/iw, h/ih)
	return scale, (w - iw*scale) / 2, (h - ih*scale) / 2
}

// Draw composites the page onto screen: the scene canvas, the hero text, the
// frame view at its scroll position, and the loading overlay while it is
// still visible.
func (p *Page) Draw(screen *ebiten.Image) {
	screen.Fill(pageBackground.RGBA())
	if p.stage == StageDisposed {
		return
	}
	if p.stage == StageMounted {
		p.scene.Draw()
		if cr, ok := p.opts.Renderer.(canvasRenderer); ok && cr.Canvas() != nil {
			screen.DrawImage(cr.Canvas(), nil)
		}
		p.drawHero(screen)
		p.drawFrameView(screen)
	}
	p.loading.Draw(screen, defaultFace())
}

func (p *Page) drawHero(screen *ebiten.Image) {
	alpha := p.reveal.Opacity()
	if alpha <= 0 || len(p.cfg.HeroLines) == 0 {
		return
	}
	w, h := p.doc.Viewport()
	lineHeight := 13.0 * 3
	y := h/2 - lineHeight*float64(len(p.cfg.HeroLines))/2 + p.reveal.OffsetY()
	for i, line := range p.cfg.HeroLines {
		scale := 2.0
		if i%2 == 0 {
			scale = 4
		}
		op := &text.DrawOptions{}
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(w/2, y)
		op.ColorScale.ScaleWithColor(heroTextColor.WithAlpha(alpha).RGBA())
		op.PrimaryAlign = text.AlignCenter
		text.Draw(screen, line, defaultFace(), op)
		y += lineHeight
	}
}

// frameViewTop returns the viewport y of the frame view: pinned at 0 while
// inside the container, riding the container top before it, and the
// container bottom after it.
func frameViewTop(st FrameState, g ContainerGeometry, viewportHeight float64) float64 {
	switch st.Region {
	case RegionInside:
		return 0
	case RegionBefore:
		return g.Top
	}
	return g.Bottom - viewportHeight
}

func (p *Page) drawFrameView(screen *ebiten.Image) {
	w, h := p.doc.Viewport()
	top := frameViewTop(p.scrubber.State(), p.doc.ContainerGeometry(), h)
	if top >= h || top+h <= 0 {
		return
	}
	vector.DrawFilledRect(screen, 0, float32(top), float32(w), float32(h), frameBackdrop.RGBA(), false)

	if !p.scrubber.Ready() {
		op := &text.DrawOptions{}
		op.GeoM.Scale(2, 2)
		op.GeoM.Translate(w/2, top+h/2)
		op.ColorScale.ScaleWithColor(heroTextColor.RGBA())
		op.PrimaryAlign = text.AlignCenter
		text.Draw(screen, loadingLabel(p.scrubber.LoadingPercent()), defaultFace(), op)
		return
	}
	img := p.frames.Image(p.scrubber.CurrentFrame())
	if img == nil {
		return
	}
	b := img.Bounds()
	scale, dx, dy := coverFit(float64(b.Dx()), float64(b.Dy()), w, h)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(dx, top+dy)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)

	label := ProgressLabel(p.scrubber.State(), p.scrubber.TotalFrames, p.scrubber.PlaybackPercent())
	drawIndicator(screen, label, w/2, top+h-32)
}

package polaris

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// loadingLabel is shown in the frame view until every frame has loaded.
func loadingLabel(percent int) string {
	return fmt.Sprintf("Cargando frames... %d%%", percent)
}

// ProgressLabel formats the frame view's progress indicator.
func ProgressLabel(st FrameState, total, percent int) string {
	mode := "Normal"
	if st.Pinned {
		mode = "Scroll activo"
	}
	return fmt.Sprintf("Frame %d / %d | %s | %d%%", st.Frame, total, mode, percent)
}

var indicatorBackground = color.RGBA{0, 0, 0, 204}

// drawIndicator draws label in a dark pill centered at x with its bottom
// edge at bottom.
func drawIndicator(dst *ebiten.Image, label string, x, bottom float64) {
	const padX, padY = 16.0, 8.0
	face := defaultFace()
	w, h := text.Measure(label, face, 0)
	left, top := x-w/2-padX, bottom-h-2*padY
	vector.DrawFilledRect(dst, float32(left), float32(top), float32(w+2*padX), float32(h+2*padY), indicatorBackground, false)

	op := &text.DrawOptions{}
	op.GeoM.Translate(x, top+padY)
	op.PrimaryAlign = text.AlignCenter
	text.Draw(dst, label, face, op)
}

// fpsCounter renders FPS and TPS into a small image, refreshed about twice
// a second.
type fpsCounter struct {
	img     *ebiten.Image
	elapsed time.Duration
}

func (f *fpsCounter) Update(dt time.Duration) {
	f.elapsed += ClampDelta(dt)
	if f.img != nil && f.elapsed < 500*time.Millisecond {
		return
	}
	f.elapsed = 0
	if f.img == nil {
		// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
		f.img = ebiten.NewImage(100, 32)
	}
	f.img.Clear()
	f.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(f.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
}

func (f *fpsCounter) Draw(dst *ebiten.Image) {
	if f.img != nil {
		dst.DrawImage(f.img, nil)
	}
}

func (f *fpsCounter) Dispose() {
	if f.img != nil {
		f.img.Deallocate()
		f.img = nil
	}
}

package polaris

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boxLoader(context.Context, string) (*Model, error) {
	return testBox(), nil
}

func nilImageLoader(string) (*ebiten.Image, error) {
	return nil, nil
}

func testPage(t *testing.T, r Renderer, loader ModelLoader) *Page {
	t.Helper()
	cfg := DefaultPageConfig()
	cfg.Particles.Count = 10
	cfg.Frames.Total = 5
	p := NewPage(context.Background(), cfg, 1280, 1000, PageOptions{
		Renderer:    r,
		ModelLoader: loader,
		ImageLoader: nilImageLoader,
		Rand:        testRand(),
		Logger:      quietLogger(),
	})
	t.Cleanup(p.Dispose)
	return p
}

func mountedPage(t *testing.T, r Renderer, loader ModelLoader) *Page {
	t.Helper()
	p := testPage(t, r, loader)
	p.Update(5800 * time.Millisecond)
	require.Equal(t, StageMounted, p.Stage())
	return p
}

func TestPageStageSequence(t *testing.T) {
	mounted := 0
	cfg := DefaultPageConfig()
	cfg.Particles.Count = 10
	p := NewPage(context.Background(), cfg, 1280, 1000, PageOptions{
		ModelLoader: boxLoader,
		ImageLoader: nilImageLoader,
		Rand:        testRand(),
		Logger:      quietLogger(),
		OnMount:     func() { mounted++ },
	})
	defer p.Dispose()

	p.Update(4999 * time.Millisecond)
	assert.Equal(t, StageLoading, p.Stage())
	assert.Equal(t, 0, p.ListenerCount())

	p.Update(time.Millisecond)
	assert.Equal(t, StageExiting, p.Stage())
	assert.True(t, p.Loading().Exiting())

	p.Update(799 * time.Millisecond)
	assert.Equal(t, StageExiting, p.Stage())
	assert.Equal(t, 0, mounted)

	p.Update(time.Millisecond)
	assert.Equal(t, StageMounted, p.Stage())
	assert.Equal(t, 1, mounted)
	assert.Equal(t, 2, p.ListenerCount())
	assert.Equal(t, 1, p.PendingTimers(), "entrance trigger")
	assert.True(t, p.Loading().Disposed())
}

func TestPageEntranceTriggeredAfterDelay(t *testing.T) {
	p := mountedPage(t, nil, boxLoader)
	require.Eventually(t, func() bool {
		p.Update(0)
		return p.Scene().Model() != nil
	}, 2*time.Second, time.Millisecond)

	p.Update(4999 * time.Millisecond)
	assert.False(t, p.Scene().Entrance().Running())
	p.Update(time.Millisecond)
	assert.True(t, p.Scene().Entrance().Running())
	assert.Equal(t, 0, p.PendingTimers())
}

func TestPageEntranceStartsAtTriggerWithinTick(t *testing.T) {
	p := mountedPage(t, nil, boxLoader)
	require.Eventually(t, func() bool {
		p.Update(0)
		return p.Scene().Model() != nil
	}, 2*time.Second, time.Millisecond)

	p.Update(4900 * time.Millisecond)
	require.False(t, p.Scene().Entrance().Running())

	// The trigger fires 100ms into this 300ms tick.
	p.Update(300 * time.Millisecond)
	require.True(t, p.Scene().Entrance().Running())
	assert.InDelta(t, 0.1, p.Scene().Entrance().Progress, 1e-12)

	p.Update(100 * time.Millisecond)
	assert.InDelta(t, 0.15, p.Scene().Entrance().Progress, 1e-12)
}

func TestPageRevealTimerStartsAtMount(t *testing.T) {
	p := testPage(t, nil, boxLoader)
	p.Update(5 * time.Second)
	assert.Equal(t, RevealHidden, p.Reveal().State())
	p.Update(800 * time.Millisecond)
	require.Equal(t, StageMounted, p.Stage())
	assert.Equal(t, RevealHidden, p.Reveal().State())

	p.Update(500 * time.Millisecond)
	assert.Equal(t, RevealEntering, p.Reveal().State())
}

func TestPageScrollIgnoredUntilMount(t *testing.T) {
	p := testPage(t, nil, boxLoader)
	p.SetScrollTop(p.Document().MaxScroll())
	assert.Equal(t, 0.0, p.Scene().Targets().ScrollProgress)
	assert.Equal(t, 1, p.Scrubber().CurrentFrame())

	p.Update(5800 * time.Millisecond)
	require.Equal(t, StageMounted, p.Stage())
	assert.Equal(t, 1.0, p.Scene().Targets().ScrollProgress)
	assert.Equal(t, RegionAfter, p.Scrubber().State().Region)
}

func TestPageScrollDrivesScrubberAndReveal(t *testing.T) {
	p := mountedPage(t, nil, boxLoader)
	top := p.Document().ContainerTop()
	p.SetScrollTop(top + 125)

	st := p.Scrubber().State()
	assert.True(t, st.Pinned)
	assert.Equal(t, 3, st.Frame)

	p.Update(500 * time.Millisecond)
	p.Update(time.Second)
	assert.Equal(t, RevealExiting, p.Reveal().State())
}

func TestPageFramesBecomeReady(t *testing.T) {
	p := mountedPage(t, nil, boxLoader)
	require.Eventually(t, func() bool {
		p.Update(0)
		return p.Scrubber().Ready()
	}, 2*time.Second, time.Millisecond)
	assert.Equal(t, 100, p.Scrubber().LoadingPercent())
}

func TestPageResizeReachesScene(t *testing.T) {
	r := &recordingRenderer{}
	p := mountedPage(t, r, boxLoader)
	p.Resize(800, 400)
	p.Resize(800, 400)
	assert.Equal(t, 2.0, p.Scene().Camera().Aspect)
	assert.Equal(t, [2]int{800, 400}, r.resizes[len(r.resizes)-1])
	w, h := p.Document().Viewport()
	assert.Equal(t, 800.0, w)
	assert.Equal(t, 400.0, h)
}

func TestPageDisposeCancelsEverything(t *testing.T) {
	r := &recordingRenderer{}
	cancelled := make(chan error, 1)
	loader := func(ctx context.Context, _ string) (*Model, error) {
		<-ctx.Done()
		cancelled <- ctx.Err()
		return nil, ctx.Err()
	}
	p := mountedPage(t, r, loader)
	require.Equal(t, 2, p.ListenerCount())
	require.Equal(t, 1, p.PendingTimers())

	p.Dispose()
	p.Dispose()

	assert.Equal(t, StageDisposed, p.Stage())
	assert.Equal(t, 0, p.ListenerCount())
	assert.Equal(t, 0, p.PendingTimers())
	assert.Equal(t, 1, r.disposed)
	assert.True(t, p.Scene().Disposed())

	select {
	case err := <-cancelled:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(2 * time.Second):
		t.Fatal("model load was not cancelled")
	}

	renders := r.renders
	p.Update(10 * time.Second)
	p.SetScrollTop(500)
	assert.Equal(t, renders, r.renders)
	assert.Equal(t, 0.0, p.Scene().Targets().ScrollProgress)
	assert.ErrorIs(t, p.Mount(), ErrDisposed)
}

func TestPageDisposeDuringLoading(t *testing.T) {
	p := testPage(t, nil, boxLoader)
	p.Update(time.Second)
	p.Dispose()
	p.Update(time.Minute)
	assert.Equal(t, StageDisposed, p.Stage())
	assert.Equal(t, 0, p.ListenerCount())
	assert.True(t, p.Loading().Disposed())
}

func TestPageMountSkipsOverlay(t *testing.T) {
	p := testPage(t, nil, boxLoader)
	require.NoError(t, p.Mount())
	require.NoError(t, p.Mount())
	assert.Equal(t, StageMounted, p.Stage())
	assert.Equal(t, 2, p.ListenerCount())

	// The overlay timer was already scheduled and must not unmount anything.
	p.Update(6 * time.Second)
	assert.Equal(t, StageMounted, p.Stage())
}

func TestPageStageString(t *testing.T) {
	assert.Equal(t, "mounted", StageMounted.String())
	assert.Equal(t, "unknown", PageStage(42).String())
}

package polaris

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tick = 16 * time.Millisecond

func visibleReveal(t *testing.T) *TextReveal {
	t.Helper()
	r := NewTextReveal(DefaultRevealConfig())
	r.Start()
	r.Update(500 * time.Millisecond)
	require.Equal(t, RevealEntering, r.State())
	r.Update(time.Second)
	require.Equal(t, RevealVisible, r.State())
	return r
}

func TestRevealWaitsForStart(t *testing.T) {
	r := NewTextReveal(DefaultRevealConfig())
	r.Update(10 * time.Second)
	assert.Equal(t, RevealHidden, r.State())
	assert.Equal(t, 0.0, r.Opacity())
}

func TestRevealTimerSequence(t *testing.T) {
	r := NewTextReveal(DefaultRevealConfig())
	r.Start()
	r.Update(499 * time.Millisecond)
	assert.Equal(t, RevealHidden, r.State())
	r.Update(time.Millisecond)
	assert.Equal(t, RevealEntering, r.State())
	r.Update(999 * time.Millisecond)
	assert.Equal(t, RevealEntering, r.State())
	r.Update(time.Millisecond)
	assert.Equal(t, RevealVisible, r.State())
}

func TestRevealStartDelayOvershootCarries(t *testing.T) {
	r := NewTextReveal(DefaultRevealConfig())
	r.Start()
	r.Update(600 * time.Millisecond)
	require.Equal(t, RevealEntering, r.State())
	r.Update(899 * time.Millisecond)
	assert.Equal(t, RevealEntering, r.State())
	r.Update(time.Millisecond)
	assert.Equal(t, RevealVisible, r.State())
}

func TestRevealHysteresis(t *testing.T) {
	r := visibleReveal(t)

	r.SetScroll(0.04)
	r.Update(tick)
	assert.Equal(t, RevealExiting, r.State())

	r.SetScroll(0.02)
	for i := 0; i < 10; i++ {
		r.Update(tick)
	}
	assert.Equal(t, RevealExiting, r.State())

	r.SetScroll(0.005)
	r.Update(tick)
	assert.Equal(t, RevealVisible, r.State())

	r.SetScroll(0.02)
	r.Update(tick)
	assert.Equal(t, RevealVisible, r.State())
}

func TestRevealExitWhileEntering(t *testing.T) {
	r := NewTextReveal(DefaultRevealConfig())
	r.Start()
	r.Update(600 * time.Millisecond)
	require.Equal(t, RevealEntering, r.State())
	r.SetScroll(0.5)
	r.Update(tick)
	assert.Equal(t, RevealExiting, r.State())
}

func TestRevealSpringSettles(t *testing.T) {
	r := visibleReveal(t)
	for i := 0; i < 300; i++ {
		r.Update(tick)
	}
	assert.InDelta(t, 1, r.Opacity(), 0.01)
	assert.InDelta(t, 0, r.OffsetY(), 0.5)

	r.SetScroll(1)
	for i := 0; i < 300; i++ {
		r.Update(tick)
	}
	assert.InDelta(t, 0, r.Opacity(), 0.01)
	assert.InDelta(t, -40, r.OffsetY(), 0.5)
}

func TestRevealStateString(t *testing.T) {
	assert.Equal(t, "exiting", RevealExiting.String())
	assert.Equal(t, "unknown", RevealState(9).String())
}

package polaris

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHost(t *testing.T) *Host {
	t.Helper()
	p := testPage(t, nil, boxLoader)
	require.NoError(t, p.Mount())
	return NewHost(p, RunConfig{Logger: quietLogger()})
}

func TestInjectScroll(t *testing.T) {
	h := testHost(t)
	h.InjectScroll(100)
	h.InjectScroll(50)
	require.Len(t, h.injectQueue, 2)

	require.True(t, h.processInjected())
	assert.Equal(t, 100.0, h.page.Document().ScrollTop())
	h.processInjected()
	assert.Equal(t, 150.0, h.page.Document().ScrollTop())
}

func TestInjectSmoothScroll(t *testing.T) {
	h := testHost(t)
	h.InjectSmoothScroll(300, 3)
	require.Len(t, h.injectQueue, 3)
	for i, e := range h.injectQueue {
		assert.Equal(t, 100.0, e.y, "step %d", i)
	}

	h.injectQueue = nil
	h.InjectSmoothScroll(42, 0)
	require.Len(t, h.injectQueue, 1)
	assert.Equal(t, 42.0, h.injectQueue[0].y)
}

func TestInjectScrollToAndResize(t *testing.T) {
	h := testHost(t)
	h.InjectScrollTo(1e9)
	h.InjectResize(640, 480)

	h.processInjected()
	assert.Equal(t, h.page.Document().MaxScroll(), h.page.Document().ScrollTop())

	h.processInjected()
	w, hh := h.page.Document().Viewport()
	assert.Equal(t, 640.0, w)
	assert.Equal(t, 480.0, hh)
}

func TestProcessInjectedEmptyQueue(t *testing.T) {
	h := testHost(t)
	assert.False(t, h.processInjected())
}

func TestLayoutForwardsResize(t *testing.T) {
	h := testHost(t)
	w, hh := h.Layout(900, 600)
	assert.Equal(t, 900, w)
	assert.Equal(t, 600, hh)
	assert.Equal(t, 1.5, h.page.Scene().Camera().Aspect)
}

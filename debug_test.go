package polaris

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func debugHost(t *testing.T, buf *bytes.Buffer) *Host {
	t.Helper()
	p := testPage(t, nil, boxLoader)
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewHost(p, RunConfig{Logger: logger, Debug: true})
}

func TestDebugLogWritesStatsAndResets(t *testing.T) {
	var buf bytes.Buffer
	h := debugHost(t, &buf)

	h.stats = debugStats{ticks: 4, update: 8 * time.Millisecond, window: time.Second}
	h.debugLog()

	out := buf.String()
	for _, want := range []string{"tick stats", "ticks=4", "avgUpdate=2ms", "stage=loading"} {
		assert.Contains(t, out, want)
	}
	assert.Equal(t, debugStats{}, h.stats)
}

func TestDebugLogSkipsEmptyWindow(t *testing.T) {
	var buf bytes.Buffer
	h := debugHost(t, &buf)

	h.debugLog()
	assert.Zero(t, buf.Len())
}

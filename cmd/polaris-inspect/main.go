// Command polaris-inspect runs the landing page headlessly in the terminal
// and prints its internal state every tick. Nothing is drawn; the model is a
// placeholder box and frames are counted as loaded without decoding images.
//
// Keys: ↑/↓ or j/k scroll, PgUp/PgDn page, Home/End jump, m skips the
// loading overlay, r resets the page, q quits.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/polaris"
	"github.com/phanxgames/polaris/config"
)

var (
	configPath = flag.String("config", "", "TOML settings file; built-in defaults when empty")
	width      = flag.Int("width", 1280, "simulated viewport width")
	height     = flag.Int("height", 800, "simulated viewport height")
	lineStep   = flag.Float64("step", 40, "scroll distance of one arrow key press")
)

const tickRate = time.Second / 60

func main() {
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "polaris-inspect: %v\n", err)
			os.Exit(1)
		}
	}

	m := newInspector(cfg.PageConfig(), *width, *height)
	defer m.page.Dispose()

	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "polaris-inspect: %v\n", err)
		os.Exit(1)
	}
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(tickRate, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// inspector is the tea.Model driving one headless page.
type inspector struct {
	cfg    polaris.PageConfig
	w, h   int
	page   *polaris.Page
	ticks  int
	uptime time.Duration
}

func newInspector(cfg polaris.PageConfig, w, h int) *inspector {
	m := &inspector{cfg: cfg, w: w, h: h}
	m.reset()
	return m
}

func (m *inspector) reset() {
	if m.page != nil {
		m.page.Dispose()
	}
	m.ticks, m.uptime = 0, 0
	m.page = polaris.NewPage(context.Background(), m.cfg, m.w, m.h, polaris.PageOptions{
		ModelLoader: placeholderModel,
		ImageLoader: func(string) (*ebiten.Image, error) { return nil, nil },
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func placeholderModel(ctx context.Context, _ string) (*polaris.Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return polaris.NewBoxModel("placeholder", mgl64.Vec3{0, 0, 0}, mgl64.Vec3{2, 1.2, 0.6}), nil
}

// Init implements tea.Model.
func (m *inspector) Init() tea.Cmd {
	return tick()
}

// Update implements tea.Model.
func (m *inspector) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.page.Update(tickRate)
		m.ticks++
		m.uptime += tickRate
		return m, tick()
	case tea.WindowSizeMsg:
		return m, nil
	case tea.KeyMsg:
		_, vh := m.page.Document().Viewport()
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "down", "j":
			m.page.ScrollBy(*lineStep)
		case "up", "k":
			m.page.ScrollBy(-*lineStep)
		case "pgdown", " ":
			m.page.ScrollBy(vh * 0.9)
		case "pgup":
			m.page.ScrollBy(-vh * 0.9)
		case "home":
			m.page.SetScrollTop(0)
		case "end":
			m.page.SetScrollTop(m.page.Document().MaxScroll())
		case "m":
			_ = m.page.Mount()
		case "r":
			m.reset()
		}
	}
	return m, nil
}

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/phanxgames/polaris"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7dd3fc"))
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#334155")).
			Padding(0, 1)
	headStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#e2e8f0"))
	keyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#94a3b8")).Width(14)
	valStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#f8fafc"))
	helpStyle = lipgloss.NewStyle().Faint(true)
	onStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ade80"))
	offStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#f87171"))
)

type row struct{ k, v string }

func panel(title string, rows ...row) string {
	var b strings.Builder
	b.WriteString(headStyle.Render(title))
	for _, r := range rows {
		b.WriteString("\n")
		b.WriteString(keyStyle.Render(r.k))
		b.WriteString(valStyle.Render(r.v))
	}
	return panelStyle.Render(b.String())
}

func yesNo(on bool) string {
	if on {
		return onStyle.Render("yes")
	}
	return offStyle.Render("no")
}

func f2(v float64) string { return fmt.Sprintf("%.2f", v) }
func f3(v float64) string { return fmt.Sprintf("%.3f", v) }

// View implements tea.Model.
func (m *inspector) View() string {
	p := m.page
	doc := p.Document()
	vw, vh := doc.Viewport()

	page := panel("page",
		row{"stage", p.Stage().String()},
		row{"uptime", m.uptime.Truncate(10 * time.Millisecond).String()},
		row{"ticks", fmt.Sprint(m.ticks)},
		row{"viewport", fmt.Sprintf("%.0fx%.0f", vw, vh)},
		row{"timers", fmt.Sprint(p.PendingTimers())},
		row{"listeners", fmt.Sprint(p.ListenerCount())},
	)

	ev := doc.ScrollEvent()
	scroll := panel("scroll",
		row{"top", fmt.Sprintf("%.0f / %.0f", doc.ScrollTop(), doc.MaxScroll())},
		row{"document", fmt.Sprintf("%.0f", doc.Height())},
		row{"progress", f3(ev.Progress())},
		row{"container", fmt.Sprintf("%.0f +%.0f", doc.ContainerTop(), doc.ContainerHeight())},
	)

	field := p.Loading().Field
	loading := panel("loading",
		row{"phase", field.Phase().String()},
		row{"progress", f2(field.Progress())},
		row{"overlay y", fmt.Sprintf("%.0f", p.Loading().OffsetY)},
		row{"exited", yesNo(p.Loading().Exited())},
	)

	sc := p.Scrubber()
	st := sc.State()
	frames := panel("frames",
		row{"frame", fmt.Sprintf("%d / %d", st.Frame, p.Config().Frames.Total)},
		row{"region", st.Region.String()},
		row{"pinned", yesNo(st.Pinned)},
		row{"loaded", fmt.Sprintf("%d%%", sc.LoadingPercent())},
		row{"label", polaris.ProgressLabel(st, p.Config().Frames.Total, sc.PlaybackPercent())},
	)

	rv := p.Reveal()
	reveal := panel("hero text",
		row{"state", rv.State().String()},
		row{"opacity", f3(rv.Opacity())},
		row{"offset y", f2(rv.OffsetY())},
	)

	scene := p.Scene()
	ent := scene.Entrance()
	tg := scene.Targets()
	cam := scene.Camera()
	entrance := panel("entrance",
		row{"model", scene.ModelState().String()},
		row{"running", yesNo(ent.Running())},
		row{"progress", f3(ent.Progress)},
		row{"complete", yesNo(ent.Complete)},
		row{"anchored", yesNo(tg.Anchored())},
	)

	var rot, scale, opacity float64
	if model := scene.Model(); model != nil {
		rot, scale, opacity = model.RotationY, model.Scale, model.Opacity()
	}
	motion := panel("target → actual",
		row{"rotation y", f3(tg.RotationY) + " → " + f3(rot)},
		row{"scale", f3(tg.Scale) + " → " + f3(scale)},
		row{"fov", f2(tg.FOV) + " → " + f2(cam.FOV)},
		row{"camera z", f3(tg.CameraZ) + " → " + f3(cam.Position.Z())},
		row{"opacity", f3(opacity)},
	)

	top := lipgloss.JoinHorizontal(lipgloss.Top, page, scroll, loading)
	mid := lipgloss.JoinHorizontal(lipgloss.Top, frames, reveal)
	bot := lipgloss.JoinHorizontal(lipgloss.Top, entrance, motion)
	help := helpStyle.Render("↑/↓ j/k scroll · pgup/pgdn page · home/end · m mount · r reset · q quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("POLARIS inspector"), top, mid, bot, help)
}

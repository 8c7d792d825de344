package polaris

import "time"

// debugStats accumulates per-tick timing between debug log lines. Only
// populated when the host is in debug mode.
type debugStats struct {
	ticks  int
	update time.Duration
	draw   time.Duration
	window time.Duration
}

// debugLog writes one line of tick timing and page state, then resets the
// counters.
func (h *Host) debugLog() {
	s := h.stats
	h.stats = debugStats{}
	if s.ticks == 0 {
		return
	}
	p := h.page
	scene := p.Scene()
	cam := scene.Camera()
	targets := scene.Targets()
	frame := p.Scrubber().State()

	h.log.Debug("tick stats",
		"ticks", s.ticks,
		"avgUpdate", s.update/time.Duration(s.ticks),
		"avgDraw", s.draw/time.Duration(s.ticks),
		"stage", p.Stage(),
		"scroll", p.Document().ScrollTop(),
		"frame", frame.Frame,
		"region", frame.Region,
		"framesLoaded", p.Scrubber().Loaded(),
		"reveal", p.Reveal().State(),
		"entrance", scene.Entrance().Progress,
		"fov", cam.FOV,
		"targetFov", targets.FOV,
		"cameraZ", cam.Position[2],
		"targetCameraZ", targets.CameraZ,
	)
}

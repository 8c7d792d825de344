package polaris

// InjectScroll queues a relative scroll of dy pixels. Injected events are
// consumed one per tick, ahead of real input, so scripted runs are
// reproducible.
func (h *Host) InjectScroll(dy float64) {
	h.injectQueue = append(h.injectQueue, hostEvent{kind: hostScrollBy, y: dy})
}

// InjectScrollTo queues an absolute scroll to offset y.
func (h *Host) InjectScrollTo(y float64) {
	h.injectQueue = append(h.injectQueue, hostEvent{kind: hostScrollTo, y: y})
}

// InjectSmoothScroll queues a scroll of dy spread evenly over frames ticks.
// Minimum frames is 1.
func (h *Host) InjectSmoothScroll(dy float64, frames int) {
	if frames < 1 {
		frames = 1
	}
	step := dy / float64(frames)
	for i := 0; i < frames; i++ {
		h.InjectScroll(step)
	}
}

// InjectResize queues a viewport resize.
func (h *Host) InjectResize(width, height int) {
	h.injectQueue = append(h.injectQueue, hostEvent{kind: hostResize, width: width, height: height})
}

// processInjected pops one event from the inject queue and applies it to the
// page. Returns true if an event was consumed (real input should be skipped).
func (h *Host) processInjected() bool {
	if len(h.injectQueue) == 0 {
		return false
	}
	evt := h.injectQueue[0]
	copy(h.injectQueue, h.injectQueue[1:])
	h.injectQueue = h.injectQueue[:len(h.injectQueue)-1]

	switch evt.kind {
	case hostScrollBy:
		h.page.ScrollBy(evt.y)
	case hostScrollTo:
		h.page.SetScrollTop(evt.y)
	case hostResize:
		h.page.Resize(evt.width, evt.height)
	}
	return true
}

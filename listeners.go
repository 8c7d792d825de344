package polaris

// ScrollEvent reports the page scroll offset together with the layout it
// was measured against.
type ScrollEvent struct {
	ScrollTop      float64
	DocumentHeight float64
	ViewportHeight float64
}

// Progress returns the scroll position as a fraction of the scrollable
// range, clamped to [0, 1].
func (e ScrollEvent) Progress() float64 {
	return Clamp(SafeRatio(e.ScrollTop, e.DocumentHeight-e.ViewportHeight), 0, 1)
}

// ResizeEvent reports a new viewport size in pixels.
type ResizeEvent struct {
	Width, Height int
}

// EventType identifies the kind of a registered listener.
type EventType uint8

const (
	EventScroll EventType = iota
	EventResize
)

type scrollHandler struct {
	id uint32
	fn func(ScrollEvent)
}

type resizeHandler struct {
	id uint32
	fn func(ResizeEvent)
}

// Listeners holds the page-level scroll and resize callbacks.
type Listeners struct {
	scroll []scrollHandler
	resize []resizeHandler
	nextID uint32
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id    uint32
	reg   *Listeners
	event EventType
}

// Remove unregisters this callback so it no longer fires. Safe to call more
// than once.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventScroll:
		h.reg.scroll = removeHandler(h.reg.scroll, h.id, func(s scrollHandler) uint32 { return s.id })
	case EventResize:
		h.reg.resize = removeHandler(h.reg.resize, h.id, func(r resizeHandler) uint32 { return r.id })
	}
}

func removeHandler[T any](hs []T, id uint32, idOf func(T) uint32) []T {
	for i, h := range hs {
		if idOf(h) == id {
			return append(hs[:i], hs[i+1:]...)
		}
	}
	return hs
}

// OnScroll registers a callback for scroll events.
func (l *Listeners) OnScroll(fn func(ScrollEvent)) CallbackHandle {
	l.nextID++
	id := l.nextID
	l.scroll = append(l.scroll, scrollHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: l, event: EventScroll}
}

// OnResize registers a callback for resize events.
func (l *Listeners) OnResize(fn func(ResizeEvent)) CallbackHandle {
	l.nextID++
	id := l.nextID
	l.resize = append(l.resize, resizeHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: l, event: EventResize}
}

// EmitScroll calls every scroll callback in registration order.
func (l *Listeners) EmitScroll(e ScrollEvent) {
	for _, h := range l.scroll {
		h.fn(e)
	}
}

// EmitResize calls every resize callback in registration order.
func (l *Listeners) EmitResize(e ResizeEvent) {
	for _, h := range l.resize {
		h.fn(e)
	}
}

// Len returns the number of registered callbacks.
func (l *Listeners) Len() int {
	return len(l.scroll) + len(l.resize)
}

// Clear removes every callback.
func (l *Listeners) Clear() {
	l.scroll = nil
	l.resize = nil
}

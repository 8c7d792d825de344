package polaris

// DocumentLayout describes the sections of the page from top to bottom.
type DocumentLayout struct {
	// HeroViewports is the height of the model section in viewport heights.
	HeroViewports float64
	// FooterHeight is the height of the closing section in pixels.
	FooterHeight float64
}

// DefaultDocumentLayout returns a single-viewport hero and a short footer.
func DefaultDocumentLayout() DocumentLayout {
	return DocumentLayout{HeroViewports: 1, FooterHeight: 400}
}

// Document is the virtual page: a hero section, the scrub container sized by
// the scrubber, and a footer. It owns the scroll offset.
type Document struct {
	layout   DocumentLayout
	scrubber *FrameScrubber

	width, height float64
	scrollTop     float64
}

// NewDocument creates a document scrolled to the top.
func NewDocument(layout DocumentLayout, scrubber *FrameScrubber, width, height float64) *Document {
	if layout.HeroViewports < 0 {
		layout.HeroViewports = 0
	}
	if layout.FooterHeight < 0 {
		layout.FooterHeight = 0
	}
	d := &Document{layout: layout, scrubber: scrubber}
	d.SetViewport(width, height)
	return d
}

// SetViewport changes the viewport size and re-clamps the scroll offset.
// Non-positive sizes are ignored.
func (d *Document) SetViewport(width, height float64) {
	if width > 0 {
		d.width = width
	}
	if height > 0 {
		d.height = height
	}
	d.SetScrollTop(d.scrollTop)
}

// Viewport returns the viewport size in pixels.
func (d *Document) Viewport() (width, height float64) {
	return d.width, d.height
}

// HeroHeight returns the height of the model section.
func (d *Document) HeroHeight() float64 {
	return d.layout.HeroViewports * d.height
}

// ContainerTop returns the scrub container's offset from the document top.
func (d *Document) ContainerTop() float64 {
	return d.HeroHeight()
}

// ContainerHeight returns the scrub container's height.
func (d *Document) ContainerHeight() float64 {
	if d.scrubber == nil {
		return 0
	}
	return d.scrubber.ContainerHeight(d.height)
}

// Height returns the total document height.
func (d *Document) Height() float64 {
	return d.HeroHeight() + d.ContainerHeight() + d.layout.FooterHeight
}

// MaxScroll returns the largest valid scroll offset.
func (d *Document) MaxScroll() float64 {
	m := d.Height() - d.height
	if m < 0 {
		return 0
	}
	return m
}

// SetScrollTop sets the scroll offset, clamped to [0, MaxScroll], and
// returns the value actually applied.
func (d *Document) SetScrollTop(y float64) float64 {
	d.scrollTop = Clamp(y, 0, d.MaxScroll())
	return d.scrollTop
}

// ScrollBy moves the scroll offset by dy.
func (d *Document) ScrollBy(dy float64) float64 {
	return d.SetScrollTop(d.scrollTop + dy)
}

// ScrollTop returns the current scroll offset.
func (d *Document) ScrollTop() float64 {
	return d.scrollTop
}

// ScrollEvent describes the current scroll position.
func (d *Document) ScrollEvent() ScrollEvent {
	return ScrollEvent{ScrollTop: d.scrollTop, DocumentHeight: d.Height(), ViewportHeight: d.height}
}

// ContainerGeometry returns the scrub container's box relative to the
// viewport.
func (d *Document) ContainerGeometry() ContainerGeometry {
	top := d.ContainerTop() - d.scrollTop
	return ContainerGeometry{Top: top, Bottom: top + d.ContainerHeight()}
}

package host

// Window is the host viewport: its size, the vertical scroll offset, and a source for the
// current content height.
type Window struct {
	Width   float32
	Height  float32
	ScrollY float32
	// ContentHeight reports the document height; nil means the document fits the viewport.
	ContentHeight func() float32
}

// DocumentHeight returns the content height, never less than the viewport height.
func (w *Window) DocumentHeight() float32 {
	if w.ContentHeight == nil {
		return w.Height
	}
	return max(w.ContentHeight(), w.Height)
}

// MaxScroll returns the largest valid scroll offset.
func (w *Window) MaxScroll() float32 {
	return max(0, w.DocumentHeight()-w.Height)
}

func (w *Window) clampScroll(y float32) float32 {
	return max(0, min(y, w.MaxScroll()))
}

package anim

import (
	"nexus-landing/internal/host"
	"nexus-landing/internal/observer"
)

// Highlighter forwards viewport enter/exit transitions of marked elements to Feedback.
type Highlighter struct {
	obs      *observer.IntersectionObserver
	feedback Feedback
	elements []Element
	visible  map[Element]bool
}

// NewHighlighter starts an observer with the given threshold and bottom margin.
func NewHighlighter(loop *host.Loop, threshold, bottomMargin float32, feedback Feedback) *Highlighter {
	h := &Highlighter{feedback: feedback, visible: make(map[Element]bool)}
	h.obs = observer.New(loop, observer.Options{
		Threshold:  threshold,
		RootMargin: observer.Margin{Bottom: -bottomMargin},
	}, h.deliver)
	return h
}

func (h *Highlighter) deliver(entries []observer.Entry) {
	for _, e := range entries {
		el, ok := e.Target.(Element)
		if !ok {
			continue
		}
		if h.visible[el] == e.Visible {
			continue
		}
		h.visible[el] = e.Visible
		h.feedback.VisibilityChanged(el, e.Visible)
	}
}

// Track replaces the tracked set. New elements start being observed; elements that
// drop out are unobserved and their highlight is released.
func (h *Highlighter) Track(els []Element) {
	keep := make(map[Element]bool, len(els))
	for _, el := range els {
		keep[el] = true
	}
	kept := make([]Element, 0, len(els))
	for _, el := range h.elements {
		if keep[el] {
			kept = append(kept, el)
			continue
		}
		h.obs.Unobserve(el)
		delete(h.visible, el)
		h.feedback.ReleaseHighlight(el)
	}
	h.elements = kept
	for _, el := range els {
		if _, ok := h.visible[el]; ok {
			continue
		}
		h.visible[el] = false
		h.elements = append(h.elements, el)
		h.feedback.VisibilityTracked(el)
		h.obs.Observe(el)
	}
}

// Elements returns every tracked element.
func (h *Highlighter) Elements() []Element {
	return h.elements
}

// Recheck re-evaluates visibility after layout changes.
func (h *Highlighter) Recheck() {
	h.obs.Recheck()
}

// Stop disconnects the observer and forgets all elements.
func (h *Highlighter) Stop() {
	h.obs.Disconnect()
	h.elements = nil
	h.visible = make(map[Element]bool)
}

package ui

import (
	"image/color"
	"strconv"
	"strings"
	"time"
)

// Rule is a single CSS rule: one selector and a set of property values (raw strings).
type Rule struct {
	Selector string            // e.g. ".card", "#hero", "[data-highlight]", ".card.collision-active"
	Props    map[string]string // e.g. "background" -> "#333"
	sel      compound
}

// Stylesheet is a list of rules (order matters: later overrides earlier).
type Stylesheet struct {
	Rules []Rule
}

// ComputedStyle holds resolved values used for layout and drawing.
// Padding is the inset (in pixels) from the node's edges to its content.
type ComputedStyle struct {
	Background color.RGBA
	Color      color.RGBA
	Border     color.RGBA
	HasBorder  bool
	Width      int32
	Height     int32
	MinHeight  int32 // pixels; see MinHeightVH
	// MinHeightVH is a minimum height in percent of the viewport height (-1 = not set).
	MinHeightVH int32
	Padding     int32
	Gap         int32
	FontSize    int32
	Radius      float32
	Opacity     float32
	Center      bool // text-align: center
	// Shift is a vertical draw offset (transform: translateY), eased with opacity.
	Shift int32
	// Zoom is a draw scale about the node's center (transform: scale), 1 when unset.
	Zoom       float32
	Transition time.Duration
}

// DefaultComputedStyle returns a minimal style (transparent background, white text,
// no border, fully opaque).
func DefaultComputedStyle() ComputedStyle {
	return ComputedStyle{
		Background:  color.RGBA{},
		Color:       color.RGBA{255, 255, 255, 255},
		Border:      color.RGBA{0, 0, 0, 255},
		MinHeightVH: -1,
		Padding:     4,
		FontSize:    20,
		Opacity:     1,
		Zoom:        1,
	}
}

// ParseHexColor parses #RGB, #RRGGBB or #RRGGBBAA. Returns black and false on parse error.
func ParseHexColor(s string) (color.RGBA, bool) {
	s = strings.TrimSpace(s)
	black := color.RGBA{0, 0, 0, 255}
	if len(s) < 4 || s[0] != '#' {
		return black, false
	}
	hex := s[1:]
	for i := 0; i < len(hex); i++ {
		if _, ok := hexNibble(hex[i]); !ok {
			return black, false
		}
	}
	switch len(hex) {
	case 3:
		// #RGB -> RR GG BB
		return color.RGBA{hexByte(hex[0]) * 17, hexByte(hex[1]) * 17, hexByte(hex[2]) * 17, 255}, true
	case 6, 8:
		c := color.RGBA{
			R: hexByte(hex[0])<<4 + hexByte(hex[1]),
			G: hexByte(hex[2])<<4 + hexByte(hex[3]),
			B: hexByte(hex[4])<<4 + hexByte(hex[5]),
			A: 255,
		}
		if len(hex) == 8 {
			c.A = hexByte(hex[6])<<4 + hexByte(hex[7])
		}
		return c, true
	}
	return black, false
}

// ParseColor accepts hex colors, rgb(r, g, b), rgba(r, g, b, a) with a in [0, 1], and
// "transparent".
func ParseColor(s string) (color.RGBA, bool) {
	s = strings.TrimSpace(s)
	if s == "transparent" {
		return color.RGBA{}, true
	}
	if strings.HasPrefix(s, "#") {
		return ParseHexColor(s)
	}
	var args string
	switch {
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		args = s[5 : len(s)-1]
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		args = s[4 : len(s)-1]
	default:
		return color.RGBA{0, 0, 0, 255}, false
	}
	parts := strings.Split(args, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return color.RGBA{0, 0, 0, 255}, false
	}
	var ch [4]uint8
	ch[3] = 255
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return color.RGBA{0, 0, 0, 255}, false
		}
		if i == 3 {
			f *= 255
		}
		ch[i] = uint8(max(0, min(255, f)))
	}
	return color.RGBA{ch[0], ch[1], ch[2], ch[3]}, true
}

func hexNibble(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

func hexByte(c byte) uint8 {
	n, _ := hexNibble(c)
	return n
}

// ParsePx parses a number, with optional "px" suffix, to int32. Unitless is treated as pixels.
func ParsePx(s string) (int32, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "px")
	s = strings.TrimSpace(s)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return int32(f), true
}

// ParseVH parses "Nvh" to int32 (0–100).
func ParseVH(s string) (int32, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasSuffix(s, "vh") {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(s[:len(s)-2]))
	if err != nil || n < 0 || n > 100 {
		return 0, false
	}
	return int32(n), true
}

// ParseDuration parses CSS time values ("0.6s", "600ms"). The first time-like token of a
// shorthand such as "opacity 0.6s ease" is used.
func ParseDuration(s string) (time.Duration, bool) {
	for _, f := range strings.Fields(s) {
		f = strings.TrimSuffix(f, ",")
		var unit time.Duration
		var num string
		switch {
		case strings.HasSuffix(f, "ms"):
			unit, num = time.Millisecond, f[:len(f)-2]
		case strings.HasSuffix(f, "s"):
			unit, num = time.Second, f[:len(f)-1]
		default:
			continue
		}
		v, err := strconv.ParseFloat(num, 64)
		if err != nil || v < 0 {
			continue
		}
		return time.Duration(v * float64(unit)), true
	}
	return 0, false
}

// ParseTransform reads translateY and scale functions from a transform value such as
// "translateY(-5px) scale(1.02)". Other functions are ignored; "none" yields 0 and 1.
func ParseTransform(s string) (shift int32, zoom float32) {
	zoom = 1
	for s = strings.TrimSpace(s); s != ""; s = strings.TrimSpace(s) {
		open := strings.IndexByte(s, '(')
		end := strings.IndexByte(s, ')')
		if open < 0 || end < open {
			break
		}
		name, arg := strings.TrimSpace(s[:open]), s[open+1:end]
		s = s[end+1:]
		switch name {
		case "translateY":
			if n, ok := ParsePx(arg); ok {
				shift = n
			}
		case "scale":
			if f, err := strconv.ParseFloat(strings.TrimSpace(arg), 32); err == nil && f > 0 {
				zoom = float32(f)
			}
		}
	}
	return shift, zoom
}

// ResolveProps builds a ComputedStyle from a merged property map (e.g. from matching rules).
func ResolveProps(props map[string]string) ComputedStyle {
	out := DefaultComputedStyle()
	for k, v := range props {
		v = strings.TrimSpace(v)
		switch k {
		case "background", "background-color":
			if c, ok := ParseColor(v); ok {
				out.Background = c
			}
		case "color":
			if c, ok := ParseColor(v); ok {
				out.Color = c
			}
		case "border", "border-color":
			if c, ok := ParseColor(v); ok {
				out.Border = c
				out.HasBorder = c.A > 0
			}
		case "width":
			if n, ok := ParsePx(v); ok {
				out.Width = n
			}
		case "height":
			if n, ok := ParsePx(v); ok {
				out.Height = n
			}
		case "min-height":
			if n, ok := ParseVH(v); ok {
				out.MinHeightVH = n
			} else if n, ok := ParsePx(v); ok {
				out.MinHeight = n
			}
		case "padding":
			if n, ok := ParsePx(v); ok && n >= 0 {
				out.Padding = n
			}
		case "gap":
			if n, ok := ParsePx(v); ok && n >= 0 {
				out.Gap = n
			}
		case "font-size":
			if n, ok := ParsePx(v); ok && n > 0 {
				out.FontSize = n
			}
		case "border-radius":
			if n, ok := ParsePx(v); ok && n >= 0 {
				out.Radius = float32(n)
			}
		case "opacity":
			if f, err := strconv.ParseFloat(v, 32); err == nil {
				out.Opacity = float32(max(0, min(1, f)))
			}
		case "text-align":
			out.Center = v == "center"
		case "transform":
			out.Shift, out.Zoom = ParseTransform(v)
		case "transition":
			if d, ok := ParseDuration(v); ok {
				out.Transition = d
			}
		}
	}
	return out
}

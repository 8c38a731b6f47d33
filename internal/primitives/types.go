package primitives

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"nexus-landing/internal/ui"
)

//go:embed glyphs.yaml
var glyphsYAML []byte

// PartDef is the YAML definition of one glyph part (see glyphs.yaml).
// Size is the full extent for cube, sphere and triangle; arcs use Radius and Thickness.
type PartDef struct {
	Type      string     `yaml:"type"`
	Size      [3]float32 `yaml:"size,omitempty"`
	Offset    [3]float32 `yaml:"offset,omitempty"`
	Rotation  [3]float32 `yaml:"rotation,omitempty"`
	Radius    float32    `yaml:"radius,omitempty"`
	Thickness float32    `yaml:"thickness,omitempty"`
	Color     string     `yaml:"color,omitempty"`
	Opacity   float32    `yaml:"opacity,omitempty"`
}

// ParseShapes decodes glyph part lists keyed by glyph kind name.
func ParseShapes(data []byte) (map[string][]PartDef, error) {
	var shapes map[string][]PartDef
	if err := yaml.Unmarshal(data, &shapes); err != nil {
		return nil, fmt.Errorf("parse glyph shapes: %w", err)
	}
	for kind, parts := range shapes {
		for i, p := range parts {
			switch p.Type {
			case "cube", "sphere", "triangle":
			case "arc":
				if p.Radius <= 0 || p.Thickness <= 0 {
					return nil, fmt.Errorf("glyph %s part %d: arc needs radius and thickness", kind, i)
				}
			default:
				return nil, fmt.Errorf("glyph %s part %d: unknown type %q", kind, i, p.Type)
			}
			if p.Color != "" {
				if _, ok := ui.ParseColor(p.Color); !ok {
					return nil, fmt.Errorf("glyph %s part %d: bad color %q", kind, i, p.Color)
				}
			}
		}
	}
	return shapes, nil
}

// DefaultShapes returns the built-in wifi and msg glyphs.
func DefaultShapes() map[string][]PartDef {
	shapes, err := ParseShapes(glyphsYAML)
	if err != nil {
		panic(err)
	}
	return shapes
}

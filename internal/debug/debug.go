package debug

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"nexus-landing/internal/metrics"
	"nexus-landing/internal/vmath"
)

const (
	fpsFontSize   = 20
	fpsPadding    = 12
	fpsLineHeight = fpsFontSize + 4
	// updateInterval: only refresh overlay text every N frames to reduce allocations.
	updateInterval = 30
)

// Probe reports what the footprint overlay shows: the sphere's projected footprint and
// the scroll progress. ok is false when the sphere layer is not mounted.
type Probe func() (center vmath.Vec2, radius float32, progress float32, hit bool, ok bool)

// Debug holds runtime debugging overlays. All overlays are off by default.
type Debug struct {
	ShowFPS       bool
	ShowMemAlloc  bool
	ShowFootprint bool
	font          rl.Font // optional; when set, Draw uses DrawTextEx instead of default font
	sampler       *metrics.Sampler
	frameCount    uint32
	lastFpsText   string
	lastMemText   string
	lastRSSText   string
}

// New returns a Debug system with all overlays hidden.
func New() *Debug {
	return &Debug{sampler: metrics.NewSampler(updateInterval)}
}

// SetShowFPS sets whether the FPS counter is drawn (top-right, green).
func (d *Debug) SetShowFPS(show bool) {
	d.ShowFPS = show
}

// SetShowMemAlloc sets whether heap and RSS counters are drawn (top-right, under FPS).
func (d *Debug) SetShowMemAlloc(show bool) {
	d.ShowMemAlloc = show
}

// SetShowFootprint sets whether the collision footprint and scroll progress are drawn.
func (d *Debug) SetShowFootprint(show bool) {
	d.ShowFootprint = show
}

// SetFont sets the font used for overlay text. Zero texture ID = use raylib default.
func (d *Debug) SetFont(font rl.Font) {
	d.font = font
}

// Draw renders any enabled overlays. Call last in the draw loop so overlays sit on top.
func (d *Debug) Draw(probe Probe) {
	d.frameCount++
	update := d.frameCount%updateInterval == 0
	if d.ShowFPS && d.lastFpsText == "" {
		update = true
	}

	y := float32(fpsPadding)
	if d.ShowFPS {
		if update {
			d.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		d.drawRight(d.lastFpsText, y, rl.Green)
		y += fpsLineHeight
	}

	if d.ShowMemAlloc {
		if snap, fresh := d.sampler.Tick(); fresh {
			d.lastMemText = "Heap: " + metrics.MiB(snap.HeapAlloc)
			d.lastRSSText = ""
			if snap.RSS > 0 {
				d.lastRSSText = "RSS: " + metrics.MiB(snap.RSS)
			}
		}
		d.drawRight(d.lastMemText, y, rl.Green)
		y += fpsLineHeight
		if d.lastRSSText != "" {
			d.drawRight(d.lastRSSText, y, rl.Green)
			y += fpsLineHeight
		}
	}

	if d.ShowFootprint && probe != nil {
		center, radius, progress, hit, ok := probe()
		if ok {
			c := rl.Yellow
			if hit {
				c = rl.Red
			}
			rl.DrawCircleLines(int32(center.X), int32(center.Y), radius, c)
			rl.DrawLine(int32(center.X)-4, int32(center.Y), int32(center.X)+4, int32(center.Y), c)
			rl.DrawLine(int32(center.X), int32(center.Y)-4, int32(center.X), int32(center.Y)+4, c)
		}
		d.drawRight(fmt.Sprintf("Scroll: %.0f%%", progress*100), y, rl.Yellow)
	}
}

func (d *Debug) drawRight(text string, y float32, c rl.Color) {
	if text == "" {
		return
	}
	screenW := float32(rl.GetScreenWidth())
	if d.font.Texture.ID != 0 {
		sz := float32(fpsFontSize)
		pos := rl.NewVector2(screenW-rl.MeasureTextEx(d.font, text, sz, 1).X-fpsPadding, y)
		rl.DrawTextEx(d.font, text, pos, sz, 1, c)
		return
	}
	w := float32(rl.MeasureText(text, fpsFontSize))
	rl.DrawText(text, int32(screenW-w-fpsPadding), int32(y), fpsFontSize, c)
}

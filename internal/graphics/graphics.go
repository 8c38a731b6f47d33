package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Window describes the window Run opens.
type Window struct {
	Title     string
	Width     int32
	Height    int32
	TargetFPS int32
	// Background clears the frame before draw.
	Background rl.Color
}

// Run opens a resizable window and runs the main loop. init runs once the OpenGL context
// exists; each frame it calls update (input, page timers) then clears the screen and calls
// draw. ESC is left to the console; close via the window button. done runs before the
// window closes so GPU resources can be released.
func Run(w Window, init, update, draw, done func()) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint | rl.FlagVsyncHint)
	rl.InitWindow(w.Width, w.Height, w.Title)
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull)
	if w.TargetFPS > 0 {
		rl.SetTargetFPS(w.TargetFPS)
	}
	if init != nil {
		init()
	}
	if done != nil {
		defer done()
	}

	for !rl.WindowShouldClose() {
		update()

		rl.BeginDrawing()
		rl.ClearBackground(w.Background)
		draw()
		rl.EndDrawing()
	}
}

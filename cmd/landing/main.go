package main

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"nexus-landing/internal/app"
	"nexus-landing/internal/config"
	"nexus-landing/internal/content"
	"nexus-landing/internal/debug"
	"nexus-landing/internal/env"
	"nexus-landing/internal/graphics"
	"nexus-landing/internal/host"
	"nexus-landing/internal/logger"
	"nexus-landing/internal/primitives"
	"nexus-landing/internal/render"
	"nexus-landing/internal/scene"
	"nexus-landing/internal/terminal"
	"nexus-landing/internal/vmath"
)

const (
	windowWidth  = 1280
	windowHeight = 800
	// wheelStep is the scroll distance of one mouse wheel notch.
	wheelStep = 80
	keyStep   = 60
)

var pageBackground = rl.NewColor(2, 6, 23, 255)

func main() {
	log := logger.New(logger.LogFilePath)
	if n, err := env.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Logf("env: %v", err)
	} else if n > 0 {
		log.Logf("env: loaded %d variables from .env", n)
	}

	path := config.DefaultPath
	if p := os.Getenv(config.EnvConfig); p != "" {
		path = p
	}
	prefs, err := config.Load(path)
	if err != nil {
		log.Logf("config: %v (using defaults)", err)
	}
	if err := prefs.ApplyEnv(os.LookupEnv); err != nil {
		log.Logf("config: %v", err)
	}

	var page *content.Page
	if prefs.Content != "" {
		if page, err = content.Load(prefs.Content); err != nil {
			log.Logf("content: %v (using built-in page)", err)
			page = nil
		}
	}

	ctrl, err := prefs.Controller()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	glyphs := primitives.NewRegistry(primitives.DefaultShapes())
	var layers []*scene.Layer

	a, err := app.New(app.Options{
		Prefs:      prefs,
		ConfigPath: path,
		Page:       page,
		Log:        log,
		Clock:      host.SystemClock{},
		Width:      windowWidth,
		Height:     windowHeight,
		Seed:       time.Now().UnixNano(),
		Bind: func(l *app.Layer) {
			var sl *scene.Layer
			switch l.Name {
			case "sphere":
				stage := l.Stage
				sl = scene.Sphere(stage, func() color.RGBA { return ctrl.Tint(stage.Hit) })
			default:
				sl = scene.Glyphs(l.Stage, glyphs)
			}
			sl.Bind(l.Canvas)
			layers = append(layers, sl)
		},
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	term := terminal.New(log, a.Commands)
	dbg := debug.New()
	page2d := render.New(a.Doc, a.Feedback, prefs.Font)
	probe := func() (vmath.Vec2, float32, float32, bool, bool) {
		c := a.Sphere.Controller
		center, radius, ok := c.Footprint()
		return center, radius, c.Progress(), a.Sphere.Stage.Hit, ok
	}

	setup := func() {
		// The window may open at a different size than requested (HiDPI, tiling WMs).
		a.Loop.Resize(float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))
	}
	update := func() {
		term.Update()
		if rl.IsWindowResized() {
			a.Loop.Resize(float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))
		}
		if wheel := rl.GetMouseWheelMove(); wheel != 0 {
			a.Loop.ScrollBy(-wheel * wheelStep)
		}
		if !term.IsOpen() {
			scrollKeys(a)
		}
		mouse := rl.GetMousePosition()
		a.Doc.HoverAt(mouse.X, mouse.Y)
		a.Pump()
	}
	draw := func() {
		page2d.Draw()
		term.SetFont(page2d.Font())
		dbg.SetFont(page2d.Font())
		dbg.SetShowFPS(a.Prefs.ShowFPS)
		dbg.SetShowMemAlloc(a.Prefs.ShowMemAlloc)
		dbg.SetShowFootprint(a.Prefs.ShowFootprint)
		dbg.Draw(probe)
		term.Draw()
	}
	done := func() {
		a.Close()
		for _, l := range layers {
			l.Unload()
		}
		glyphs.Unload()
		page2d.Unload()
	}

	graphics.Run(graphics.Window{
		Title:      "Nexus",
		Width:      windowWidth,
		Height:     windowHeight,
		TargetFPS:  int32(prefs.TargetFPS),
		Background: pageBackground,
	}, setup, update, draw, done)
}

func scrollKeys(a *app.App) {
	w := a.Loop.Window
	switch {
	case rl.IsKeyPressed(rl.KeyPageDown) || rl.IsKeyPressed(rl.KeySpace):
		a.Loop.ScrollBy(w.Height * 0.9)
	case rl.IsKeyPressed(rl.KeyPageUp):
		a.Loop.ScrollBy(-w.Height * 0.9)
	case rl.IsKeyPressed(rl.KeyHome):
		a.Loop.ScrollTo(0)
	case rl.IsKeyPressed(rl.KeyEnd):
		a.Loop.ScrollTo(w.MaxScroll())
	case rl.IsKeyDown(rl.KeyDown):
		a.Loop.ScrollBy(keyStep * rl.GetFrameTime() * 10)
	case rl.IsKeyDown(rl.KeyUp):
		a.Loop.ScrollBy(-keyStep * rl.GetFrameTime() * 10)
	}
}

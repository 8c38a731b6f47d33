package app

import (
	"flag"
	"fmt"
	"strings"

	"nexus-landing/internal/anim"
	"nexus-landing/internal/config"
)

// toggle registers a --show/--hide command that flips *target.
func (a *App) toggle(name, usage string, target *bool) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	show := fs.Bool("show", false, "show the overlay")
	hide := fs.Bool("hide", false, "hide the overlay")
	a.Commands.Register(name, usage, fs, func() error {
		switch {
		case *show && *hide:
			return fmt.Errorf("%s: use only one of --show and --hide", name)
		case *show:
			*target = true
		case *hide:
			*target = false
		default:
			*target = !*target
		}
		a.Log.Logf("%s: %v", name, *target)
		return nil
	})
}

func (a *App) registerCommands() {
	a.toggle("fps", "fps [--show|--hide]: frame rate overlay", &a.Prefs.ShowFPS)
	a.toggle("memalloc", "memalloc [--show|--hide]: heap and RSS overlay", &a.Prefs.ShowMemAlloc)
	a.toggle("debug", "debug [--show|--hide]: collision footprint and scroll progress", &a.Prefs.ShowFootprint)

	overlap := flag.NewFlagSet("overlap", flag.ContinueOnError)
	policy := overlap.String("policy", "", "box or radial")
	a.Commands.Register("overlap", "overlap --policy box|radial: sphere/card overlap test", overlap, func() error {
		if *policy == "" {
			a.Log.Logf("overlap: %s", a.Sphere.Controller.Config().Policy)
			return nil
		}
		p, err := anim.ParsePolicy(*policy)
		if err != nil {
			return err
		}
		a.SetOverlap(p)
		a.Log.Logf("overlap: %s", p)
		return nil
	})

	scroll := flag.NewFlagSet("scroll", flag.ContinueOnError)
	to := scroll.Float64("to", -1, "scroll progress in [0, 1]")
	a.Commands.Register("scroll", "scroll --to <0..1>: jump to a scroll position", scroll, func() error {
		if *to < 0 || *to > 1 {
			return fmt.Errorf("scroll: --to must be in [0, 1]")
		}
		a.ScrollToProgress(float32(*to))
		a.Log.Logf("scroll: y=%.0f", a.Loop.Window.ScrollY)
		return nil
	})

	a.Commands.Register("remount", "remount: tear down and mount both layers", nil, func() error {
		a.Remount()
		return nil
	})

	a.Commands.Register("status", "status: controller state", nil, func() error {
		for _, l := range []*Layer{a.Sphere, a.Glyphs} {
			c := l.Controller
			a.Log.Logf("%s: mounted=%v ticks=%d checks=%d cards=%d colliding=%d highlights=%d progress=%.3f",
				l.Name, c.Mounted(), c.Ticks(), c.Checks(), c.Cards(), c.Colliding(), c.Highlights(), c.Progress())
		}
		return nil
	})

	a.Commands.Register("save", "save: write preferences to the config file", nil, func() error {
		if a.configPath == "" {
			return fmt.Errorf("save: no config path")
		}
		if err := config.Save(a.configPath, a.Prefs); err != nil {
			return fmt.Errorf("save: %w", err)
		}
		a.Log.Logf("saved %s", a.configPath)
		return nil
	})

	a.Commands.Register("help", "help: list commands", nil, func() error {
		a.Log.Log("commands: " + strings.Join(a.Commands.Names(), ", "))
		for _, line := range a.Commands.Help() {
			a.Log.Log("  " + line)
		}
		return nil
	})
}

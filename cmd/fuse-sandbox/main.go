// Command fuse-sandbox is a terminal sandbox for placing explosives, lighting
// their fuses and watching agents react
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/wick/audio"
	"github.com/lixenwraith/wick/config"
	"github.com/lixenwraith/wick/core"
	"github.com/lixenwraith/wick/engine"
	"github.com/lixenwraith/wick/parameter"
	"github.com/lixenwraith/wick/scenario"
	"github.com/lixenwraith/wick/status"
)

var (
	emptyFlag = flag.Bool("empty", false, "Start with an empty grid instead of the demo layout")
	loadFlag  = flag.Bool("load", false, "Restore the save file on start")
)

func main() {
	// Panic recovery: restore the terminal before printing the crash
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	if logFile := setupLogging(cfg.Debug); logFile != nil {
		defer logFile.Close()
	}

	defs, err := config.LoadDefinitions(cfg.DefinitionsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "definitions: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	// Engine goroutines restore the terminal before exiting on a crash
	core.SetCrashCleanup(screen.Fini)
	defer screen.Fini()

	// One registry for world and player so the status rows show both
	reg := status.NewRegistry()
	opts := scenario.Options{
		Width:       cfg.Width,
		Height:      cfg.Height,
		Seed:        cfg.Seed,
		Definitions: defs,
		Status:      reg,
	}

	var player *audio.CuePlayer
	if cfg.AudioEnabled {
		player = audio.NewCuePlayer(audio.Options{
			MasterVolume: cfg.MasterVolume,
			Width:        cfg.Width,
			Status:       reg,
		})
		// The player keeps mixing silently without a device
		if err := player.Start(); errors.Is(err, audio.ErrNoAudioDevice) {
			log.Printf("%v (continuing without sound)", err)
		}
		defer player.Close()
		opts.Audio = player
	}

	sb := scenario.New(opts)
	switch {
	case *loadFlag:
		if err := sb.LoadFrom(cfg.SavePath); err != nil {
			log.Printf("load %s: %v", cfg.SavePath, err)
			sb.World.RunSafe(sb.PopulateDemo)
		}
	case !*emptyFlag:
		sb.World.RunSafe(sb.PopulateDemo)
	}

	clock, ticks := engine.NewClockScheduler(sb.World, parameter.TickInterval)
	a := newApp(cfg, screen, sb, clock, player)

	if cfg.WatchDefinitions && cfg.DefinitionsPath != "" {
		if w, err := config.WatchFile(cfg.DefinitionsPath); err != nil {
			log.Printf("definitions watch: %v", err)
		} else {
			defer w.Close()
			core.Go(func() { a.watchDefinitions(w) })
		}
	}

	clock.Start()
	defer clock.Stop()

	a.run(ticks)
}

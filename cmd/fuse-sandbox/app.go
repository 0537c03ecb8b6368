package main

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/wick/audio"
	"github.com/lixenwraith/wick/config"
	"github.com/lixenwraith/wick/core"
	"github.com/lixenwraith/wick/engine"
	"github.com/lixenwraith/wick/event"
	"github.com/lixenwraith/wick/fuse"
	"github.com/lixenwraith/wick/parameter"
	"github.com/lixenwraith/wick/scenario"
)

// action is one user command, decoupled from the key that triggers it
type action uint8

const (
	actionNone action = iota
	actionQuit
	actionLeft
	actionRight
	actionUp
	actionDown
	actionPlaceExplosive
	actionNextExplosive
	actionStackUp
	actionStackDown
	actionPlaceAgent
	actionNextAgent
	actionPlaceCrate
	actionToggleWall
	actionArm
	actionArmSilent
	actionDisarm
	actionDetonate
	actionShoot
	actionBomb
	actionRot
	actionStun
	actionEMP
	actionRemove
	actionToggleAlerts
	actionPause
	actionStep
	actionMute
	actionSave
	actionLoad
	actionReset
	actionClear
)

var runeActions = map[rune]action{
	'q': actionQuit,
	'h': actionLeft,
	'l': actionRight,
	'k': actionUp,
	'j': actionDown,
	'e': actionPlaceExplosive,
	'E': actionNextExplosive,
	'+': actionStackUp,
	'-': actionStackDown,
	'a': actionPlaceAgent,
	'A': actionNextAgent,
	'c': actionPlaceCrate,
	'w': actionToggleWall,
	'f': actionArm,
	'F': actionArmSilent,
	'x': actionDisarm,
	'X': actionDetonate,
	'd': actionShoot,
	'D': actionBomb,
	'r': actionRot,
	'z': actionStun,
	'Z': actionEMP,
	'v': actionRemove,
	't': actionToggleAlerts,
	' ': actionPause,
	'.': actionStep,
	'm': actionMute,
	'S': actionSave,
	'L': actionLoad,
	'R': actionReset,
	'C': actionClear,
}

const helpLine = "hjkl move  e/E keg  +/- stack  a/A agent  c crate  w wall  f/F arm  x disarm  X boom  d/D/r hit  z stun  Z emp  v remove  t alerts  spc pause  . step  m mute  S/L save  R demo  C clear  q quit"

// app owns the screen and routes input into the sandbox
type app struct {
	cfg    config.Config
	screen tcell.Screen
	sb     *scenario.Sandbox
	clock  *engine.ClockScheduler
	player *audio.CuePlayer

	cursor    core.Point
	explosive int
	agent     int
	stack     int
	alerts    bool

	message string
	notices chan string
}

func newApp(cfg config.Config, screen tcell.Screen, sb *scenario.Sandbox, clock *engine.ClockScheduler, player *audio.CuePlayer) *app {
	return &app{
		cfg:     cfg,
		screen:  screen,
		sb:      sb,
		clock:   clock,
		player:  player,
		cursor:  core.Point{X: cfg.Width / 4, Y: cfg.Height / 2},
		stack:   1,
		alerts:  true,
		notices: make(chan string, 8),
	}
}

// run is the input and render loop; returns on quit
func (a *app) run(ticks <-chan struct{}) {
	events := make(chan tcell.Event, 100)
	core.Go(func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	})

	frame := time.NewTicker(parameter.FrameUpdateInterval)
	defer frame.Stop()

	dirty := true
	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !a.apply(keyAction(ev)) {
					return
				}
			case *tcell.EventResize:
				a.screen.Sync()
			}
			dirty = true

		case <-ticks:
			dirty = true

		case msg := <-a.notices:
			a.say(msg)
			dirty = true

		case <-frame.C:
			if dirty {
				a.draw()
				dirty = false
			}
		}
	}
}

func keyAction(ev *tcell.EventKey) action {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return actionQuit
	case tcell.KeyLeft:
		return actionLeft
	case tcell.KeyRight:
		return actionRight
	case tcell.KeyUp:
		return actionUp
	case tcell.KeyDown:
		return actionDown
	case tcell.KeyRune:
		return runeActions[ev.Rune()]
	}
	return actionNone
}

// apply executes an action; false means quit
func (a *app) apply(act action) bool {
	switch act {
	case actionQuit:
		return false
	case actionLeft:
		a.move(-1, 0)
	case actionRight:
		a.move(1, 0)
	case actionUp:
		a.move(0, -1)
	case actionDown:
		a.move(0, 1)

	case actionPlaceExplosive:
		name := a.explosiveName()
		a.spawn(func() error {
			_, err := a.sb.SpawnExplosive(name, a.cursor, a.stack)
			return err
		})
	case actionNextExplosive:
		a.explosive++
		a.say("explosive: " + a.explosiveName())
	case actionStackUp:
		a.stack = min(a.stack+1, 99)
	case actionStackDown:
		a.stack = max(a.stack-1, 1)
	case actionPlaceAgent:
		name := a.agentName()
		a.spawn(func() error {
			_, err := a.sb.SpawnAgent(name, a.cursor)
			return err
		})
	case actionNextAgent:
		a.agent++
		a.say("agent: " + a.agentName())
	case actionPlaceCrate:
		a.spawn(func() error {
			_, err := a.sb.SpawnCrate(a.cursor)
			return err
		})
	case actionToggleWall:
		a.toggleWall()

	case actionArm:
		a.command(event.FuseArm)
	case actionArmSilent:
		a.command(event.FuseArmSilent)
	case actionDisarm:
		a.command(event.FuseDisarm)
	case actionDetonate:
		a.command(event.FuseDetonate)
	case actionShoot:
		a.damage(fuse.DamageBullet, 10)
	case actionBomb:
		a.damage(fuse.DamageBomb, 25)
	case actionRot:
		a.damage(fuse.DamageDeterioration, 10)
	case actionStun:
		a.damage(fuse.DamageStun, 0)
	case actionEMP:
		a.damage(fuse.DamageEMP, 0)
	case actionRemove:
		if e, ok := a.target(); ok {
			a.sb.World.PushEvent(event.EventDeathRequest, &event.DeathRequestPayload{Entity: e, Mode: core.DestroyVanish})
		}
	case actionToggleAlerts:
		a.alerts = !a.alerts
		a.sb.ToggleSystem("alert", a.alerts)
		a.say(fmt.Sprintf("alerts: %t", a.alerts))

	case actionPause:
		if a.clock != nil {
			if a.clock.TogglePause() {
				a.say("paused")
			} else {
				a.say("running")
			}
		}
	case actionStep:
		if a.clock != nil {
			a.clock.Step()
		}
	case actionMute:
		if a.player != nil {
			if a.player.ToggleMute() {
				a.say("sound on")
			} else {
				a.say("muted")
			}
		}
	case actionSave:
		if err := a.sb.SaveTo(a.cfg.SavePath); err != nil {
			a.fail("save", err)
		} else {
			a.say("saved " + a.cfg.SavePath)
		}
	case actionLoad:
		if err := a.sb.LoadFrom(a.cfg.SavePath); err != nil {
			a.fail("load", err)
		} else {
			a.say("loaded " + a.cfg.SavePath)
		}
	case actionReset:
		a.sb.World.Reset()
		a.sb.World.RunSafe(a.sb.PopulateDemo)
		a.say("new demo")
	case actionClear:
		a.sb.World.Reset()
		a.say("cleared")
	}
	return true
}

func (a *app) move(dx, dy int) {
	w, h := a.sb.World.Terrain.Size()
	a.cursor.X = min(max(a.cursor.X+dx, 0), w-1)
	a.cursor.Y = min(max(a.cursor.Y+dy, 0), h-1)
}

func (a *app) explosiveName() string {
	names := a.sb.Definitions().ExplosiveNames()
	if len(names) == 0 {
		return ""
	}
	return names[a.explosive%len(names)]
}

func (a *app) agentName() string {
	names := a.sb.Definitions().AgentNames()
	if len(names) == 0 {
		return ""
	}
	return names[a.agent%len(names)]
}

// spawn runs a placement under the update lock
func (a *app) spawn(fn func() error) {
	var err error
	a.sb.World.RunSafe(func() { err = fn() })
	if err != nil {
		a.fail("place", err)
	}
}

func (a *app) toggleWall() {
	a.sb.World.RunSafe(func() {
		t := a.sb.World.Terrain
		if t.IsWall(a.cursor) {
			t.SetWall(a.cursor, false)
			return
		}
		if _, ok := a.sb.SolidAt(a.cursor); ok {
			a.message = "cell occupied"
			return
		}
		t.SetWall(a.cursor, true)
	})
}

// target returns the solid entity under the cursor
func (a *app) target() (core.Entity, bool) {
	var e core.Entity
	var ok bool
	a.sb.World.RunSafe(func() { e, ok = a.sb.SolidAt(a.cursor) })
	if !ok {
		a.say("nothing here")
	}
	return e, ok
}

func (a *app) command(cmd event.FuseCommand) {
	if e, ok := a.target(); ok {
		a.sb.Command(e, cmd)
	}
}

func (a *app) damage(kind fuse.DamageKind, amount int) {
	if e, ok := a.target(); ok {
		a.sb.Damage(e, kind, amount)
	}
}

func (a *app) say(msg string) {
	a.message = msg
}

func (a *app) fail(what string, err error) {
	log.Printf("%s: %v", what, err)
	switch {
	case errors.Is(err, scenario.ErrCellBlocked):
		a.message = "cell blocked"
	case errors.Is(err, scenario.ErrUnknownDefinition):
		a.message = "unknown definition"
	default:
		a.message = fmt.Sprintf("%s failed: %v", what, err)
	}
}

// watchDefinitions reloads definitions when the watched file changes
func (a *app) watchDefinitions(w *config.Watcher) {
	want := filepath.Base(a.cfg.DefinitionsPath)
	for {
		select {
		case path, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Base(path) != want {
				continue
			}
			defs, err := config.LoadDefinitions(a.cfg.DefinitionsPath)
			if err != nil {
				log.Printf("definitions: %v", err)
				a.notice("definitions rejected, see log")
				continue
			}
			n := a.sb.ReloadDefinitions(defs)
			a.notice(fmt.Sprintf("definitions reloaded, %d fuses rebound", n))
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Printf("definitions watch: %v", err)
		}
	}
}

func (a *app) notice(msg string) {
	select {
	case a.notices <- msg:
	default:
	}
}

package main

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/wick/core"
	"github.com/lixenwraith/wick/fuse"
	"github.com/lixenwraith/wick/system"
	"github.com/lixenwraith/wick/vmath"
)

const (
	wallRune  = '█'
	sparkRune = '\''
)

var (
	styleWall      = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleIdle      = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleLit       = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleSilent    = tcell.StyleDefault.Foreground(tcell.ColorPurple)
	styleSpark     = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	styleAgent     = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleAlerted   = tcell.StyleDefault.Foreground(tcell.ColorLightGreen).Bold(true)
	styleCrate     = tcell.StyleDefault.Foreground(tcell.ColorOlive)
	styleDebris    = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	styleStatus    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleMetrics   = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleHelp      = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	styleBlastBomb = tcell.StyleDefault.Background(tcell.ColorOrangeRed)
	styleBlastHeat = tcell.StyleDefault.Background(tcell.ColorMaroon)
)

// draw renders the world and the status rows, holding the update lock while
// reading world state
func (a *app) draw() {
	a.screen.Clear()
	a.sb.World.RunSafe(a.drawWorld)
	a.drawStatus()
	a.screen.Show()
}

func (a *app) drawWorld() {
	w := a.sb.World
	frame := w.FrameNumber()

	for _, p := range w.Terrain.Walls() {
		a.screen.SetContent(p.X, p.Y, wallRune, nil, styleWall)
	}

	for _, b := range a.sb.Explosion.Blasts() {
		a.drawBlast(b)
	}

	for _, e := range w.Components.Glyph.All() {
		g, ok := w.Components.Glyph.Get(e)
		if !ok {
			continue
		}
		pos, ok := w.Positions.Get(e)
		if !ok {
			continue
		}
		ch := g.Set.Pick(g.Variant)
		style := styleCrate

		switch {
		case w.Components.Fuse.Has(e):
			fc, _ := w.Components.Fuse.Get(e)
			style = fuseStyle(fc.Machine)
			if fc.Machine != nil && fc.Machine.ShowsWickOverlay() && frame%4 < 2 {
				a.drawSpark(pos)
			}
		case w.Components.Agent.Has(e):
			ag, _ := w.Components.Agent.Get(e)
			style = styleAgent
			if ag.Alerted() {
				style = styleAlerted
			}
		case w.Components.Debris.Has(e):
			style = styleDebris
		}
		a.screen.SetContent(pos.X, pos.Y, ch, nil, style.Background(a.background(pos)))
	}

	// Cursor keeps the glyph under it
	ch, _, st, _ := a.screen.GetContent(a.cursor.X, a.cursor.Y)
	if ch == 0 {
		ch = ' '
	}
	a.screen.SetContent(a.cursor.X, a.cursor.Y, ch, nil, st.Reverse(true))
}

func fuseStyle(m *fuse.Machine) tcell.Style {
	if m == nil {
		return styleIdle
	}
	switch m.State() {
	case fuse.StateArmedAudible:
		return styleLit
	case fuse.StateArmedSilent:
		return styleSilent
	default:
		return styleIdle
	}
}

func (a *app) drawBlast(b system.Blast) {
	style := styleBlastBomb
	if b.Kind == fuse.DamageFlame {
		style = styleBlastHeat
	}
	t := a.sb.World.Terrain
	for _, off := range vmath.RadialPattern(b.Radius) {
		p := b.Center.Add(off)
		if !t.InBounds(p) || t.IsWall(p) {
			continue
		}
		a.screen.SetContent(p.X, p.Y, ' ', nil, style)
	}
}

// drawSpark puts the burning wick above the charge when the cell is free
func (a *app) drawSpark(at core.Point) {
	p := core.Point{X: at.X, Y: at.Y - 1}
	w := a.sb.World
	if !w.Terrain.InBounds(p) || w.Terrain.IsWall(p) || w.Positions.HasAny(p) {
		return
	}
	a.screen.SetContent(p.X, p.Y, sparkRune, nil, styleSpark)
}

// background keeps blast colors behind entities drawn over them
func (a *app) background(p core.Point) tcell.Color {
	_, _, st, _ := a.screen.GetContent(p.X, p.Y)
	_, bg, _ := st.Decompose()
	return bg
}

func (a *app) drawStatus() {
	_, gridH := a.sb.World.Terrain.Size()
	sw, sh := a.screen.Size()
	row := min(gridH, max(sh-3, 0))

	var b strings.Builder
	fmt.Fprintf(&b, "(%d,%d)  %s x%d  %s  frame %d",
		a.cursor.X, a.cursor.Y, a.explosiveName(), a.stack, a.agentName(), a.sb.World.FrameNumber())
	if a.clock != nil && a.clock.IsPaused() {
		b.WriteString("  [PAUSED]")
	}
	if a.player != nil && a.player.Muted() {
		b.WriteString("  [MUTED]")
	}
	if a.message != "" {
		b.WriteString("  ")
		b.WriteString(a.message)
	}
	drawText(a.screen, 0, row, sw, b.String(), styleStatus)
	drawText(a.screen, 0, row+1, sw, strings.Join(a.sb.World.Resource.Status.Lines(), "  "), styleMetrics)
	drawText(a.screen, 0, row+2, sw, helpLine, styleHelp)
}

func drawText(s tcell.Screen, x, y, width int, text string, style tcell.Style) {
	for _, r := range text {
		if x >= width {
			return
		}
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

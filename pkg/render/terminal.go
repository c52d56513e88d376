// Package render draws the game in a text terminal through tcell.
package render

import (
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-starfighter/pkg/entity"
	"github.com/opd-ai/go-starfighter/pkg/physics"
	"github.com/opd-ai/go-starfighter/pkg/state"
)

// TerminalPriority draws after the physics step and laser expiry.
const TerminalPriority = -60

// Screen is the part of tcell.Screen the renderer draws on
type Screen interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (width, height int)
	Clear()
	Show()
}

type cell struct {
	r     rune
	style tcell.Style
}

var (
	shipStyle   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	laserStyle  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	statusStyle = tcell.StyleDefault.Reverse(true)
)

// shipGlyphs point along the ship's heading, counter-clockwise from up
var shipGlyphs = [8]rune{'↑', '↖', '←', '↙', '↓', '↘', '→', '↗'}

// TerminalRenderer provides a character-cell rendering of the world. The
// view spans viewWidth world units across the screen, centred on centerPos.
// Terminal cells are about twice as tall as they are wide, so vertical
// distances use half as many rows.
type TerminalRenderer struct {
	screen    Screen
	bodies    *physics.BodySet
	run       *state.RunState
	width     int
	height    int
	buffer    [][]cell
	viewWidth float64
	centerPos physics.Vector2D

	ships  map[uint64]*entity.BodyComponent
	lasers map[uint64]*entity.BodyComponent
}

// NewTerminalRenderer creates a new terminal renderer for screen
func NewTerminalRenderer(screen Screen, bodies *physics.BodySet, run *state.RunState, viewWidth float64) *TerminalRenderer {
	return &TerminalRenderer{
		screen:    screen,
		bodies:    bodies,
		run:       run,
		viewWidth: viewWidth,
		ships:     make(map[uint64]*entity.BodyComponent),
		lasers:    make(map[uint64]*entity.BodyComponent),
	}
}

// SetCenter sets the center position of the view
func (r *TerminalRenderer) SetCenter(pos physics.Vector2D) {
	r.centerPos = pos
}

// Priority satisfies ecs.Prioritizer.
func (r *TerminalRenderer) Priority() int {
	return TerminalPriority
}

// AddShip satisfies entity.ShipAdder.
func (r *TerminalRenderer) AddShip(basic *ecs.BasicEntity, _ *entity.Ship, body *entity.BodyComponent) {
	r.ships[basic.ID()] = body
}

// AddLaser satisfies entity.LaserAdder.
func (r *TerminalRenderer) AddLaser(basic *ecs.BasicEntity, _ *entity.Laser, body *entity.BodyComponent) {
	r.lasers[basic.ID()] = body
}

// Remove satisfies ecs.System.
func (r *TerminalRenderer) Remove(basic ecs.BasicEntity) {
	delete(r.ships, basic.ID())
	delete(r.lasers, basic.ID())
}

// Update draws one frame.
func (r *TerminalRenderer) Update(dt float32) {
	r.Clear()
	for _, body := range r.lasers {
		if b, ok := r.bodies.Get(body.Handle); ok {
			r.plot(b.Position.Translation, cell{'*', laserStyle})
		}
	}
	for _, body := range r.ships {
		if b, ok := r.bodies.Get(body.Handle); ok {
			r.plot(b.Position.Translation, cell{shipGlyph(b.Position.Rotation), shipStyle})
		}
	}
	r.drawStatus()
	r.Present()
}

// Clear resizes the buffer to the screen and blanks it
func (r *TerminalRenderer) Clear() {
	w, h := r.screen.Size()
	if w != r.width || h != r.height || r.buffer == nil {
		r.width, r.height = w, h
		r.buffer = make([][]cell, h)
		for y := range r.buffer {
			r.buffer[y] = make([]cell, w)
		}
	}
	for y := range r.buffer {
		for x := range r.buffer[y] {
			r.buffer[y][x] = cell{' ', tcell.StyleDefault}
		}
	}
}

// Present copies the buffer to the screen
func (r *TerminalRenderer) Present() {
	r.screen.Clear()
	for y, row := range r.buffer {
		for x, c := range row {
			r.screen.SetContent(x, y, c.r, nil, c.style)
		}
	}
	r.screen.Show()
}

// worldToScreen converts world coordinates to a screen cell
func (r *TerminalRenderer) worldToScreen(pos physics.Vector2D) (int, int) {
	if r.width == 0 || r.viewWidth <= 0 {
		return -1, -1
	}
	cellsPerUnit := float64(r.width) / r.viewWidth
	screenX := int(math.Floor((pos.X-r.centerPos.X)*cellsPerUnit + float64(r.width)/2))
	screenY := int(math.Floor(float64(r.height)/2 - (pos.Y-r.centerPos.Y)*cellsPerUnit/2))
	return screenX, screenY
}

func (r *TerminalRenderer) plot(pos physics.Vector2D, c cell) {
	x, y := r.worldToScreen(pos)
	// row 0 holds the status line
	if x >= 0 && x < r.width && y >= 1 && y < r.height {
		r.buffer[y][x] = c
	}
}

func (r *TerminalRenderer) drawStatus() {
	if r.height == 0 {
		return
	}
	text := statusText(r.run)
	row := r.buffer[0]
	for x := range row {
		row[x] = cell{' ', statusStyle}
	}
	x := 1
	for _, ch := range text {
		if x >= len(row) {
			break
		}
		row[x] = cell{ch, statusStyle}
		x++
	}
}

func statusText(run *state.RunState) string {
	current, ok := run.Current()
	if !ok {
		return "STARFIGHTER"
	}
	switch current {
	case state.StartMenu:
		return "STARFIGHTER  Enter: start  Esc: quit"
	case state.Game:
		return "W/A/D: fly  Space: fire  Esc: pause"
	case state.Pause:
		return "PAUSED  Esc: resume"
	case state.GameOver:
		return "GAME OVER  Enter: menu  Esc: quit"
	}
	return current.String()
}

// shipGlyph picks the arrow closest to the heading. Rotation 0 faces up.
func shipGlyph(rotation float64) rune {
	octant := int(math.Round(rotation/(math.Pi/4))) % 8
	if octant < 0 {
		octant += 8
	}
	return shipGlyphs[octant]
}

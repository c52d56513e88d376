package render

import (
	"math"
	"testing"

	"github.com/EngoEngine/ecs"
	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-starfighter/pkg/entity"
	"github.com/opd-ai/go-starfighter/pkg/physics"
	"github.com/opd-ai/go-starfighter/pkg/state"
)

// fakeScreen records the last frame shown
type fakeScreen struct {
	width, height int
	cells         map[[2]int]rune
	shown         int
}

func newFakeScreen(w, h int) *fakeScreen {
	return &fakeScreen{width: w, height: h, cells: make(map[[2]int]rune)}
}

func (s *fakeScreen) SetContent(x, y int, primary rune, _ []rune, _ tcell.Style) {
	if primary == ' ' {
		delete(s.cells, [2]int{x, y})
		return
	}
	s.cells[[2]int{x, y}] = primary
}

func (s *fakeScreen) Size() (int, int) { return s.width, s.height }

func (s *fakeScreen) Clear() { s.cells = make(map[[2]int]rune) }

func (s *fakeScreen) Show() { s.shown++ }

func (s *fakeScreen) row(y int) string {
	out := make([]rune, s.width)
	for x := range out {
		if r, ok := s.cells[[2]int{x, y}]; ok {
			out[x] = r
		} else {
			out[x] = ' '
		}
	}
	return string(out)
}

func newTestRenderer(w, h int) (*TerminalRenderer, *fakeScreen, *physics.BodySet, *state.RunState) {
	screen := newFakeScreen(w, h)
	bodies := physics.NewBodySet()
	run := state.NewRunState()
	return NewTerminalRenderer(screen, bodies, run, 40), screen, bodies, run
}

func addShipAt(r *TerminalRenderer, bodies *physics.BodySet, pose physics.Isometry) ecs.BasicEntity {
	body := physics.NewDynamicBody(physics.Ball{Radius: 1}, 1)
	body.Position = pose
	basic := ecs.NewBasic()
	r.AddShip(&basic, &entity.Ship{}, &entity.BodyComponent{Handle: bodies.Insert(body)})
	return basic
}

func TestTerminalRenderer_WorldToScreen(t *testing.T) {
	r, _, _, _ := newTestRenderer(80, 24)
	r.Clear()

	tests := []struct {
		name  string
		pos   physics.Vector2D
		wantX int
		wantY int
	}{
		{"origin is centre", physics.Vector2D{}, 40, 12},
		{"right", physics.Vector2D{X: 10}, 60, 12},
		{"up is fewer rows", physics.Vector2D{Y: 4}, 40, 8},
		{"down", physics.Vector2D{Y: -4}, 40, 16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := r.worldToScreen(tt.pos)
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("worldToScreen(%v) = (%d, %d), want (%d, %d)", tt.pos, x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestTerminalRenderer_SetCenter(t *testing.T) {
	r, _, _, _ := newTestRenderer(80, 24)
	r.Clear()
	r.SetCenter(physics.Vector2D{X: 10, Y: 4})

	if x, y := r.worldToScreen(physics.Vector2D{X: 10, Y: 4}); x != 40 || y != 12 {
		t.Errorf("center maps to (%d, %d), want (40, 12)", x, y)
	}
}

func TestTerminalRenderer_DrawsShipAndLaser(t *testing.T) {
	r, screen, bodies, run := newTestRenderer(80, 24)
	run.RequestTransition(state.Game)
	run.Commit()
	addShipAt(r, bodies, physics.Isometry{})

	laserBody := physics.NewDynamicBody(physics.Ball{Radius: 0.25}, 1)
	laserBody.Position.Translation = physics.Vector2D{X: 10}
	laser := ecs.NewBasic()
	r.AddLaser(&laser, &entity.Laser{}, &entity.BodyComponent{Handle: bodies.Insert(laserBody)})

	r.Update(1.0 / 60)

	if screen.shown != 1 {
		t.Errorf("Show called %d times, want 1", screen.shown)
	}
	if got := screen.cells[[2]int{40, 12}]; got != '↑' {
		t.Errorf("ship cell = %q, want '↑'", got)
	}
	if got := screen.cells[[2]int{60, 12}]; got != '*' {
		t.Errorf("laser cell = %q, want '*'", got)
	}

	r.Remove(laser)
	r.Update(1.0 / 60)
	if _, ok := screen.cells[[2]int{60, 12}]; ok {
		t.Error("removed laser still drawn")
	}
}

func TestTerminalRenderer_SkipsStaleAndOffscreenBodies(t *testing.T) {
	r, screen, bodies, _ := newTestRenderer(20, 10)
	stale := physics.NewDynamicBody(physics.Ball{Radius: 1}, 1)
	handle := bodies.Insert(stale)
	bodies.Remove(handle)
	basic := ecs.NewBasic()
	r.AddShip(&basic, &entity.Ship{}, &entity.BodyComponent{Handle: handle})
	addShipAt(r, bodies, physics.Isometry{Translation: physics.Vector2D{X: 1000}})

	r.Update(1.0 / 60)

	for y := 1; y < 10; y++ {
		if row := screen.row(y); row != "                    " {
			t.Errorf("row %d = %q, want blank", y, row)
		}
	}
}

func TestTerminalRenderer_StatusLine(t *testing.T) {
	tests := []struct {
		state state.GameState
		want  string
	}{
		{state.StartMenu, " STARFIGHTER  Enter: start"},
		{state.Game, " W/A/D: fly"},
		{state.Pause, " PAUSED"},
		{state.GameOver, " GAME OVER"},
	}
	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			r, screen, _, run := newTestRenderer(60, 10)
			run.RequestTransition(tt.state)
			run.Commit()

			r.Update(0)

			if got := screen.row(0); got[:len(tt.want)] != tt.want {
				t.Errorf("status = %q, want prefix %q", got, tt.want)
			}
		})
	}
}

func TestTerminalRenderer_ResizesBuffer(t *testing.T) {
	r, screen, bodies, _ := newTestRenderer(20, 10)
	addShipAt(r, bodies, physics.Isometry{})
	r.Update(0)

	screen.width, screen.height = 40, 20
	r.Update(0)

	if r.width != 40 || r.height != 20 || len(r.buffer) != 20 || len(r.buffer[0]) != 40 {
		t.Errorf("buffer not resized: %dx%d", r.width, r.height)
	}
	if got := screen.cells[[2]int{20, 10}]; got != '↑' {
		t.Errorf("ship cell after resize = %q", got)
	}
}

func TestShipGlyph(t *testing.T) {
	tests := []struct {
		rotation float64
		want     rune
	}{
		{0, '↑'},
		{math.Pi / 4, '↖'},
		{math.Pi / 2, '←'},
		{math.Pi, '↓'},
		{-math.Pi, '↓'},
		{-math.Pi / 2, '→'},
		{-math.Pi / 4, '↗'},
		{0.3, '↑'},
		{2 * math.Pi, '↑'},
	}
	for _, tt := range tests {
		if got := shipGlyph(tt.rotation); got != tt.want {
			t.Errorf("shipGlyph(%v) = %q, want %q", tt.rotation, got, tt.want)
		}
	}
}

package player

import (
	"testing"

	"github.com/opd-ai/go-starfighter/pkg/state"
)

func TestHealthSystem_Update(t *testing.T) {
	tests := []struct {
		name    string
		state   state.GameState
		damage  uint32
		pending bool
		want    bool
	}{
		{"alive ship", state.Game, 0, false, false},
		{"destroyed ship", state.Game, 1, false, true},
		{"destroyed while paused", state.Pause, 1, false, false},
		{"transition already pending", state.Game, 1, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.enter(tt.state)
			ship, _ := h.spawnShip(t)
			ship.TakeDamage(tt.damage)
			if tt.pending {
				h.res.Run.RequestTransition(state.Pause)
			}

			h.health.Update(1.0 / 60)

			next, ok := h.res.Run.Next()
			got := ok && next == state.GameOver
			if got != tt.want {
				t.Errorf("GameOver requested = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHealthSystem_Update_NoPlayer(t *testing.T) {
	h := newHarness(t)
	h.enter(state.Game)

	h.health.Update(1.0 / 60)

	if _, ok := h.res.Run.Next(); ok {
		t.Error("no ship should not end the game")
	}
}

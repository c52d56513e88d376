package player

import (
	"github.com/opd-ai/go-starfighter/pkg/state"
)

// HealthPriority runs after damping.
const HealthPriority = 80

// HealthSystem ends the game once the player's ship has no life left.
type HealthSystem struct {
	shipTracker
	res Resources
}

// NewHealthSystem creates the health system.
func NewHealthSystem(res Resources) *HealthSystem {
	return &HealthSystem{res: res}
}

// Priority satisfies ecs.Prioritizer.
func (s *HealthSystem) Priority() int {
	return HealthPriority
}

// Update requests GameOver when the ship is destroyed during play. A
// transition already requested this tick takes precedence.
func (s *HealthSystem) Update(dt float32) {
	if !s.res.Run.Is(state.Game) {
		return
	}
	ship, _, ok := s.playerShip(s.res)
	if !ok || !ship.Destroyed() {
		return
	}
	if _, pending := s.res.Run.Next(); pending {
		return
	}
	s.res.requestTransition(s, state.GameOver)
}

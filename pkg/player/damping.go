package player

import (
	"math"

	"github.com/opd-ai/go-starfighter/pkg/config"
	"github.com/opd-ai/go-starfighter/pkg/state"
)

// DampingPriority runs damping after input and before the physics step.
const DampingPriority = 90

// DampingSystem bleeds off the ship's velocity so flight feels controlled.
// After one second the ship keeps Angular of its spin and Linear of its
// speed, whatever the frame rate.
type DampingSystem struct {
	shipTracker
	res     Resources
	angular float64
	linear  float64
}

// NewDampingSystem creates the damping system.
func NewDampingSystem(res Resources, cfg config.DampingConfig) *DampingSystem {
	return &DampingSystem{
		res:     res,
		angular: cfg.Angular,
		linear:  cfg.Linear,
	}
}

// Priority satisfies ecs.Prioritizer.
func (s *DampingSystem) Priority() int {
	return DampingPriority
}

// Update damps the player's body while in the Game state.
func (s *DampingSystem) Update(dt float32) {
	if !s.res.Run.Is(state.Game) {
		return
	}
	body, _, ok := s.playerBody(s.res)
	if !ok {
		return
	}
	elapsed := float64(dt)
	body.AngVel *= math.Pow(s.angular, elapsed)
	body.LinVel = body.LinVel.Scale(math.Pow(s.linear, elapsed))
}

package player

import (
	"context"

	"github.com/opd-ai/go-starfighter/pkg/event"
	"github.com/opd-ai/go-starfighter/pkg/input"
	"github.com/opd-ai/go-starfighter/pkg/physics"
	"github.com/opd-ai/go-starfighter/pkg/state"
	"github.com/opd-ai/go-starfighter/pkg/weapon"
)

// InputPriority runs input handling first in every tick.
const InputPriority = 100

// InputSystem reads the keyboard once per tick and, depending on the current
// game state, steers the ship, fires, or requests a state transition.
type InputSystem struct {
	shipTracker
	res    Resources
	keys   input.Reader
	lasers weapon.Spawner
}

// NewInputSystem creates the input system. lasers may be nil, in which case
// the fire key does nothing.
func NewInputSystem(res Resources, keys input.Reader, lasers weapon.Spawner) *InputSystem {
	return &InputSystem{
		res:    res,
		keys:   keys,
		lasers: lasers,
	}
}

// Priority satisfies ecs.Prioritizer.
func (s *InputSystem) Priority() int {
	return InputPriority
}

// Update dispatches on the current game state.
func (s *InputSystem) Update(dt float32) {
	current, ok := s.res.Run.Current()
	if !ok {
		return
	}

	switch current {
	case state.Game:
		s.updateGame()
	case state.StartMenu:
		if s.keys.JustPressed(input.Confirm) {
			s.res.requestTransition(s, state.Game)
		}
		if s.keys.JustPressed(input.Cancel) {
			s.requestExit()
		}
	case state.GameOver:
		if s.keys.JustPressed(input.Confirm) {
			s.res.requestTransition(s, state.StartMenu)
		}
		if s.keys.JustPressed(input.Cancel) {
			s.requestExit()
		}
	case state.Pause:
		if s.keys.JustPressed(input.Cancel) {
			s.res.requestTransition(s, state.Game)
			s.res.setPhysicsActive(s, true)
		}
	}
}

func (s *InputSystem) updateGame() {
	rotation, thrust := 0, 0
	if s.keys.Pressed(input.Thrust) {
		thrust++
	}
	if s.keys.Pressed(input.TurnLeft) {
		rotation++
	}
	if s.keys.Pressed(input.TurnRight) {
		rotation--
	}
	fire := s.keys.JustPressed(input.Fire)

	if rotation != 0 || thrust != 0 || fire {
		if body, ship, ok := s.playerBody(s.res); ok {
			s.steer(body, float64(rotation)*float64(ship.RotationSpeed), float64(thrust)*float64(ship.Thrust))
			if fire && s.lasers != nil {
				s.lasers.SpawnLaser(*body)
			}
		} else {
			s.res.Logger.Debug(context.Background(), "player body unavailable, input skipped")
		}
	}

	if s.keys.JustPressed(input.Cancel) {
		s.res.requestTransition(s, state.Pause)
		s.res.setPhysicsActive(s, false)
	}
}

// steer applies at most one torque impulse and one force for the tick.
func (s *InputSystem) steer(body *physics.RigidBody, torque, thrust float64) {
	if torque != 0 {
		body.WakeUp()
		body.ApplyTorqueImpulse(torque)
	}
	if thrust != 0 {
		body.WakeUp()
		body.ApplyForce(body.Forward().Scale(thrust))
	}
}

func (s *InputSystem) requestExit() {
	s.res.Logger.Info(context.Background(), "exit requested")
	s.res.Bus.Publish(event.NewExitEvent(s))
}

// pkg/engine/transition.go
package engine

import (
	"context"
	"fmt"

	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-starfighter/pkg/entity"
	"github.com/opd-ai/go-starfighter/pkg/event"
	"github.com/opd-ai/go-starfighter/pkg/player"
	"github.com/opd-ai/go-starfighter/pkg/state"
)

// TransitionPriority runs the transition driver last, so a request made
// during a tick takes effect before the next one.
const TransitionPriority = -100

// PlayerSpawner creates the player's ship.
type PlayerSpawner interface {
	Spawn() (*entity.ShipEntity, error)
}

type lifecycleEntry struct {
	basic *ecs.BasicEntity
	life  *entity.LifecycleComponent
	body  *entity.BodyComponent
}

// TransitionSystem commits pending state transitions. On each change it
// despawns every entity not retained in the new state and spawns the player
// when a game starts.
type TransitionSystem struct {
	world    *ecs.World
	res      player.Resources
	spawner  PlayerSpawner
	entities map[uint64]lifecycleEntry
	err      error
}

// NewTransitionSystem creates the transition driver.
func NewTransitionSystem(res player.Resources, spawner PlayerSpawner) *TransitionSystem {
	return &TransitionSystem{
		res:      res,
		spawner:  spawner,
		entities: make(map[uint64]lifecycleEntry),
	}
}

// New satisfies ecs.Initializer.
func (s *TransitionSystem) New(w *ecs.World) {
	s.world = w
}

// Priority satisfies ecs.Prioritizer.
func (s *TransitionSystem) Priority() int {
	return TransitionPriority
}

// AddLifecycle satisfies entity.LifecycleAdder.
func (s *TransitionSystem) AddLifecycle(basic *ecs.BasicEntity, life *entity.LifecycleComponent, body *entity.BodyComponent) {
	s.entities[basic.ID()] = lifecycleEntry{basic: basic, life: life, body: body}
}

// Remove satisfies ecs.System.
func (s *TransitionSystem) Remove(basic ecs.BasicEntity) {
	delete(s.entities, basic.ID())
}

// Len returns the number of entities with a lifecycle.
func (s *TransitionSystem) Len() int {
	return len(s.entities)
}

// Err returns the first spawn failure. The game cannot continue after one.
func (s *TransitionSystem) Err() error {
	return s.err
}

// Update commits the pending transition, if any.
func (s *TransitionSystem) Update(dt float32) {
	from, hadFrom, committed := s.res.Run.Commit()
	if !committed {
		return
	}
	to, _ := s.res.Run.Current()

	despawned := s.despawnExcept(to)

	if to == state.Game && (!hadFrom || from != state.Pause) {
		s.spawnPlayer()
	}

	fromName := ""
	if hadFrom {
		fromName = from.String()
	}
	s.res.Logger.Info(context.Background(), "state entered",
		"from", fromName,
		"to", to.String(),
		"despawned", despawned,
	)
	s.res.Bus.Publish(event.NewStateEvent(event.StateEntered, s, fromName, to.String()))
}

func (s *TransitionSystem) despawnExcept(to state.GameState) int {
	var doomed []lifecycleEntry
	for _, e := range s.entities {
		if !e.life.RetainedIn(to) {
			doomed = append(doomed, e)
		}
	}

	playerID, hasPlayer := s.res.Run.Player()
	for _, e := range doomed {
		id := e.basic.ID()
		entity.Despawn(s.world, s.res.Bodies, *e.basic, e.body)
		if hasPlayer && id == playerID {
			s.res.Run.ClearPlayer()
		}
		s.res.Bus.Publish(event.NewEntityEvent(event.EntityDespawned, s, id))
	}
	return len(doomed)
}

func (s *TransitionSystem) spawnPlayer() {
	if s.spawner == nil || s.err != nil {
		return
	}
	if _, err := s.spawner.Spawn(); err != nil {
		s.err = fmt.Errorf("enter game: %w", err)
		s.res.Logger.Error(context.Background(), "player spawn failed", err)
	}
}

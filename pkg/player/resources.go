// Package player implements the player ship: spawning it, damping its
// motion and turning keyboard input into forces and state transitions.
package player

import (
	"context"

	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-starfighter/pkg/entity"
	"github.com/opd-ai/go-starfighter/pkg/event"
	"github.com/opd-ai/go-starfighter/pkg/logging"
	"github.com/opd-ai/go-starfighter/pkg/physics"
	"github.com/opd-ai/go-starfighter/pkg/state"
)

// Resources is the shared context every player system is built with.
// Nothing in it is global; tests build a fresh one each time.
type Resources struct {
	Run     *state.RunState
	Bodies  *physics.BodySet
	Physics *physics.ActiveFlag
	Bus     *event.Bus
	Logger  *logging.Logger
}

// NewResources returns resources with an empty RunState and body set,
// physics enabled, and a logger that discards output.
func NewResources() Resources {
	return Resources{
		Run:     state.NewRunState(),
		Bodies:  physics.NewBodySet(),
		Physics: physics.NewActiveFlag(true),
		Bus:     event.NewEventBus(),
		Logger:  logging.Discard(),
	}
}

type shipEntry struct {
	ship *entity.Ship
	body *entity.BodyComponent
}

// shipTracker records the ship entities handed to a system so it can find
// the player's components by entity id.
type shipTracker struct {
	ships map[uint64]shipEntry
}

// AddShip satisfies entity.ShipAdder.
func (t *shipTracker) AddShip(basic *ecs.BasicEntity, ship *entity.Ship, body *entity.BodyComponent) {
	if t.ships == nil {
		t.ships = make(map[uint64]shipEntry)
	}
	t.ships[basic.ID()] = shipEntry{ship: ship, body: body}
}

// Remove satisfies ecs.System.
func (t *shipTracker) Remove(basic ecs.BasicEntity) {
	delete(t.ships, basic.ID())
}

// playerShip returns the player's Ship component.
func (t *shipTracker) playerShip(res Resources) (*entity.Ship, *entity.BodyComponent, bool) {
	id, ok := res.Run.Player()
	if !ok {
		return nil, nil, false
	}
	e, ok := t.ships[id]
	if !ok {
		return nil, nil, false
	}
	return e.ship, e.body, true
}

// playerBody resolves the player's rigid body. It fails without error when
// there is no player, the entity is not tracked, or the handle is stale.
func (t *shipTracker) playerBody(res Resources) (*physics.RigidBody, *entity.Ship, bool) {
	ship, comp, ok := t.playerShip(res)
	if !ok || comp == nil {
		return nil, nil, false
	}
	body, ok := res.Bodies.Get(comp.Handle)
	if !ok {
		return nil, nil, false
	}
	return body, ship, true
}

func (r Resources) requestTransition(source interface{}, to state.GameState) {
	from := ""
	if cur, ok := r.Run.Current(); ok {
		from = cur.String()
	}
	r.Run.RequestTransition(to)
	r.Logger.Info(context.Background(), "state transition requested", "from", from, "to", to.String())
	r.Bus.Publish(event.NewStateEvent(event.TransitionRequested, source, from, to.String()))
}

func (r Resources) setPhysicsActive(source interface{}, active bool) {
	r.Physics.Set(active)
	r.Bus.Publish(event.NewPhysicsEvent(source, active))
}

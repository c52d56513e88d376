// Package state holds the game state machine shared by every system.
package state

import "fmt"

// GameState is one of the four top-level modes of the game.
type GameState int

// Game states
const (
	StartMenu GameState = iota
	Game
	Pause
	GameOver
)

// All lists every game state in declaration order.
var All = []GameState{StartMenu, Game, Pause, GameOver}

var stateNames = map[GameState]string{
	StartMenu: "StartMenu",
	Game:      "Game",
	Pause:     "Pause",
	GameOver:  "GameOver",
}

// String returns the state name
func (s GameState) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("GameState(%d)", int(s))
}

// Valid reports whether s is one of the declared states.
func (s GameState) Valid() bool {
	_, ok := stateNames[s]
	return ok
}

// Set is a small set of game states, used for entity retention.
type Set []GameState

// Contains reports whether s includes st.
func (s Set) Contains(st GameState) bool {
	for _, member := range s {
		if member == st {
			return true
		}
	}
	return false
}

// RunState is the process-wide game state: the current state, a requested
// next state, and the entity id of the player's ship. All three start out
// absent.
type RunState struct {
	current *GameState
	next    *GameState
	player  *uint64
}

// NewRunState returns a RunState with no current state, no pending
// transition and no player.
func NewRunState() *RunState {
	return &RunState{}
}

// Current returns the current state, if any.
func (r *RunState) Current() (GameState, bool) {
	if r.current == nil {
		return 0, false
	}
	return *r.current, true
}

// Is reports whether the current state is s.
func (r *RunState) Is(s GameState) bool {
	cur, ok := r.Current()
	return ok && cur == s
}

// Next returns the pending transition target, if any.
func (r *RunState) Next() (GameState, bool) {
	if r.next == nil {
		return 0, false
	}
	return *r.next, true
}

// RequestTransition records s as the next state. A later request in the
// same tick replaces an earlier one.
func (r *RunState) RequestTransition(s GameState) {
	r.next = &s
}

// Commit moves the pending transition into the current state and clears it.
// It returns the previous state (ok=false when there was none) and whether a
// transition happened.
func (r *RunState) Commit() (from GameState, hadFrom bool, committed bool) {
	if r.next == nil {
		return 0, false, false
	}
	from, hadFrom = r.Current()
	next := *r.next
	r.current = &next
	r.next = nil
	return from, hadFrom, true
}

// Player returns the player's entity id, if a ship exists.
func (r *RunState) Player() (uint64, bool) {
	if r.player == nil {
		return 0, false
	}
	return *r.player, true
}

// SetPlayer records the player's entity id.
func (r *RunState) SetPlayer(id uint64) {
	r.player = &id
}

// ClearPlayer forgets the player's entity id.
func (r *RunState) ClearPlayer() {
	r.player = nil
}

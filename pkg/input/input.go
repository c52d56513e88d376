// Package input turns per-tick key samples into held and just-pressed
// queries for the fixed set of game actions.
package input

import "fmt"

// Action is a logical game control, bound to one or more keys.
type Action int

// Game actions
const (
	Thrust Action = iota
	TurnLeft
	TurnRight
	Fire
	Confirm
	Cancel

	actionCount
)

// Actions lists every action in declaration order.
var Actions = []Action{Thrust, TurnLeft, TurnRight, Fire, Confirm, Cancel}

var actionNames = [actionCount]string{
	Thrust:    "thrust",
	TurnLeft:  "turnLeft",
	TurnRight: "turnRight",
	Fire:      "fire",
	Confirm:   "confirm",
	Cancel:    "cancel",
}

// String returns the binding name of the action.
func (a Action) String() string {
	if a >= 0 && a < actionCount {
		return actionNames[a]
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// ParseAction resolves a binding name such as "turnLeft".
func ParseAction(name string) (Action, error) {
	for i, n := range actionNames {
		if n == name {
			return Action(i), nil
		}
	}
	return 0, fmt.Errorf("unknown action %q", name)
}

// Reader answers input queries for the current tick.
type Reader interface {
	// Pressed reports whether the action is held this tick.
	Pressed(a Action) bool
	// JustPressed reports whether the action went from released to held
	// between the previous tick and this one.
	JustPressed(a Action) bool
}

// Keyboard keeps the held state of every action for the current and the
// previous tick. Sample must be called exactly once per tick, before the
// systems read it.
type Keyboard struct {
	current  [actionCount]bool
	previous [actionCount]bool
}

// NewKeyboard returns a keyboard with nothing held.
func NewKeyboard() *Keyboard {
	return &Keyboard{}
}

// Sample starts a new tick: the current state becomes the previous one and
// exactly the given actions are held.
func (k *Keyboard) Sample(held ...Action) {
	k.previous = k.current
	k.current = [actionCount]bool{}
	for _, a := range held {
		if a >= 0 && a < actionCount {
			k.current[a] = true
		}
	}
}

// SampleFunc starts a new tick, asking down for each action.
func (k *Keyboard) SampleFunc(down func(Action) bool) {
	k.previous = k.current
	for _, a := range Actions {
		k.current[a] = down(a)
	}
}

// Pressed implements Reader.
func (k *Keyboard) Pressed(a Action) bool {
	return a >= 0 && a < actionCount && k.current[a]
}

// JustPressed implements Reader.
func (k *Keyboard) JustPressed(a Action) bool {
	return k.Pressed(a) && !k.previous[a]
}

// JustReleased reports whether the action was held last tick but not now.
func (k *Keyboard) JustReleased(a Action) bool {
	return a >= 0 && a < actionCount && k.previous[a] && !k.current[a]
}

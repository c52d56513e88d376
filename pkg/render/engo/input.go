// pkg/render/engo/input.go
package engo

import (
	"fmt"
	"sort"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-starfighter/pkg/input"
)

// KeyPriority samples the keyboard before any game system runs.
const KeyPriority = 200

// keyNames maps the key names accepted in config files to engo keys
var keyNames = map[string]engo.Key{
	"W":          engo.KeyW,
	"A":          engo.KeyA,
	"S":          engo.KeyS,
	"D":          engo.KeyD,
	"Q":          engo.KeyQ,
	"E":          engo.KeyE,
	"J":          engo.KeyJ,
	"K":          engo.KeyK,
	"L":          engo.KeyL,
	"I":          engo.KeyI,
	"P":          engo.KeyP,
	"X":          engo.KeyX,
	"Z":          engo.KeyZ,
	"ArrowUp":    engo.KeyArrowUp,
	"ArrowDown":  engo.KeyArrowDown,
	"ArrowLeft":  engo.KeyArrowLeft,
	"ArrowRight": engo.KeyArrowRight,
	"Space":      engo.KeySpace,
	"Enter":      engo.KeyEnter,
	"Escape":     engo.KeyEscape,
	"Backspace":  engo.KeyBackspace,
	"Tab":        engo.KeyTab,
	"LeftShift":  engo.KeyLeftShift,
	"LeftCtrl":   engo.KeyLeftControl,
}

// Bindings maps each action to the keys that trigger it
type Bindings map[input.Action][]engo.Key

// ParseBindings converts the key table of a config file. Every action must
// be bound to at least one key.
func ParseBindings(keys map[string][]string) (Bindings, error) {
	b := make(Bindings, len(keys))
	for name, list := range keys {
		action, err := input.ParseAction(name)
		if err != nil {
			return nil, err
		}
		for _, keyName := range list {
			key, ok := keyNames[keyName]
			if !ok {
				return nil, fmt.Errorf("action %s: unknown key %q", name, keyName)
			}
			b[action] = append(b[action], key)
		}
	}
	for _, action := range input.Actions {
		if len(b[action]) == 0 {
			return nil, fmt.Errorf("action %s has no key binding", action)
		}
	}
	return b, nil
}

// KeyNames returns every key name ParseBindings understands, sorted.
func KeyNames() []string {
	names := make([]string, 0, len(keyNames))
	for name := range keyNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Register makes every binding known to engo as a button named after its
// action.
func (b Bindings) Register() {
	for action, keys := range b {
		engo.Input.RegisterButton(action.String(), keys...)
	}
}

// KeySystem copies the state of the engo buttons into a Keyboard once per
// frame, so game systems never talk to engo directly.
type KeySystem struct {
	keys *input.Keyboard
}

// NewKeySystem creates a key system feeding keys.
func NewKeySystem(keys *input.Keyboard) *KeySystem {
	return &KeySystem{keys: keys}
}

// Priority satisfies ecs.Prioritizer.
func (ks *KeySystem) Priority() int {
	return KeyPriority
}

// Update samples the keyboard.
func (ks *KeySystem) Update(dt float32) {
	ks.keys.SampleFunc(func(a input.Action) bool {
		return engo.Input.Button(a.String()).Down()
	})
}

// Remove satisfies the ecs.System interface
func (ks *KeySystem) Remove(basic ecs.BasicEntity) {}

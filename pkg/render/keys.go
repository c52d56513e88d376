package render

import (
	"fmt"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-starfighter/pkg/input"
)

// DefaultHoldTime is how long a key counts as held after its last press or
// auto-repeat. Terminals report no key releases, so holding is inferred.
const DefaultHoldTime = 250 * time.Millisecond

type keyBinding struct {
	key tcell.Key
	r   rune
}

// namedKeys maps config key names that are not single letters
var namedKeys = map[string]keyBinding{
	"ArrowUp":    {key: tcell.KeyUp},
	"ArrowDown":  {key: tcell.KeyDown},
	"ArrowLeft":  {key: tcell.KeyLeft},
	"ArrowRight": {key: tcell.KeyRight},
	"Space":      {key: tcell.KeyRune, r: ' '},
	"Enter":      {key: tcell.KeyEnter},
	"Escape":     {key: tcell.KeyEscape},
	"Tab":        {key: tcell.KeyTab},
	"Backspace":  {key: tcell.KeyBackspace2},
}

// TerminalKeys turns tcell key events into held actions
type TerminalKeys struct {
	bindings map[keyBinding][]input.Action
	hold     time.Duration
	last     map[input.Action]time.Time
}

// NewTerminalKeys parses the key table of a config file. Keys a terminal
// cannot report, such as modifiers on their own, are skipped, but every
// action must keep at least one key.
func NewTerminalKeys(keys map[string][]string, hold time.Duration) (*TerminalKeys, error) {
	tk := &TerminalKeys{
		bindings: make(map[keyBinding][]input.Action),
		hold:     hold,
		last:     make(map[input.Action]time.Time),
	}
	bound := make(map[input.Action]bool)
	for name, list := range keys {
		action, err := input.ParseAction(name)
		if err != nil {
			return nil, err
		}
		for _, keyName := range list {
			for _, b := range terminalBindings(keyName) {
				tk.bindings[b] = append(tk.bindings[b], action)
				bound[action] = true
			}
		}
	}
	for _, action := range input.Actions {
		if !bound[action] {
			return nil, fmt.Errorf("action %s has no key usable in a terminal", action)
		}
	}
	return tk, nil
}

func terminalBindings(name string) []keyBinding {
	if b, ok := namedKeys[name]; ok {
		return []keyBinding{b}
	}
	runes := []rune(name)
	if len(runes) != 1 || !unicode.IsLetter(runes[0]) {
		return nil
	}
	lower, upper := unicode.ToLower(runes[0]), unicode.ToUpper(runes[0])
	return []keyBinding{{key: tcell.KeyRune, r: lower}, {key: tcell.KeyRune, r: upper}}
}

// Press records a key event at now. It reports whether the key is bound.
func (tk *TerminalKeys) Press(key tcell.Key, r rune, now time.Time) bool {
	if key != tcell.KeyRune {
		r = 0
	}
	actions, ok := tk.bindings[keyBinding{key: key, r: r}]
	for _, a := range actions {
		tk.last[a] = now
	}
	return ok
}

// Held reports whether a was pressed within the hold time before now.
func (tk *TerminalKeys) Held(a input.Action, now time.Time) bool {
	t, ok := tk.last[a]
	return ok && now.Sub(t) < tk.hold
}

// Sample feeds the held state at now into kb.
func (tk *TerminalKeys) Sample(kb *input.Keyboard, now time.Time) {
	kb.SampleFunc(func(a input.Action) bool {
		return tk.Held(a, now)
	})
}

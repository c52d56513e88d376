// pkg/render/engo/input_test.go
package engo

import (
	"sort"
	"strings"
	"testing"

	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-starfighter/pkg/config"
	"github.com/opd-ai/go-starfighter/pkg/input"
)

func TestParseBindings_Defaults(t *testing.T) {
	b, err := ParseBindings(config.DefaultKeys())
	if err != nil {
		t.Fatalf("ParseBindings() error: %v", err)
	}

	tests := []struct {
		action input.Action
		want   []engo.Key
	}{
		{input.Thrust, []engo.Key{engo.KeyW, engo.KeyArrowUp}},
		{input.TurnLeft, []engo.Key{engo.KeyA, engo.KeyArrowLeft}},
		{input.TurnRight, []engo.Key{engo.KeyD, engo.KeyArrowRight}},
		{input.Fire, []engo.Key{engo.KeySpace}},
		{input.Confirm, []engo.Key{engo.KeyEnter}},
		{input.Cancel, []engo.Key{engo.KeyEscape}},
	}
	for _, tt := range tests {
		t.Run(tt.action.String(), func(t *testing.T) {
			got := b[tt.action]
			if len(got) != len(tt.want) {
				t.Fatalf("keys = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("keys[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseBindings_Errors(t *testing.T) {
	tests := []struct {
		name    string
		edit    func(keys map[string][]string)
		wantErr string
	}{
		{"unknown key", func(k map[string][]string) { k["fire"] = []string{"F13"} }, "unknown key"},
		{"unknown action", func(k map[string][]string) { k["warp"] = []string{"W"} }, "unknown action"},
		{"unbound action", func(k map[string][]string) { delete(k, "cancel") }, "no key binding"},
		{"empty binding", func(k map[string][]string) { k["confirm"] = nil }, "no key binding"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keys := config.DefaultKeys()
			tt.edit(keys)

			_, err := ParseBindings(keys)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ParseBindings() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestKeyNames_SortedAndComplete(t *testing.T) {
	names := KeyNames()
	if !sort.StringsAreSorted(names) {
		t.Error("KeyNames() is not sorted")
	}
	if len(names) != len(keyNames) {
		t.Errorf("KeyNames() returned %d names, want %d", len(names), len(keyNames))
	}
	for _, list := range config.DefaultKeys() {
		for _, name := range list {
			if _, ok := keyNames[name]; !ok {
				t.Errorf("default key %q is not parseable", name)
			}
		}
	}
}

package render

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-starfighter/pkg/engine"
	"github.com/opd-ai/go-starfighter/pkg/logging"
)

// maxDeltaTime caps a tick so a stalled terminal does not make the ship
// jump.
const maxDeltaTime = 0.1

// TerminalLoop drives a game from terminal events at a fixed tick rate
type TerminalLoop struct {
	game     *engine.Game
	keys     *TerminalKeys
	tickRate time.Duration
	logger   *logging.Logger
	last     time.Time
}

// NewTerminalLoop creates a loop ticking game every tickRate.
func NewTerminalLoop(game *engine.Game, keys *TerminalKeys, tickRate time.Duration, logger *logging.Logger) *TerminalLoop {
	return &TerminalLoop{
		game:     game,
		keys:     keys,
		tickRate: tickRate,
		logger:   logger,
	}
}

// Run processes events and ticks until the game exits, Ctrl-C is pressed,
// events is closed or ctx is done.
func (l *TerminalLoop) Run(ctx context.Context, events <-chan tcell.Event) error {
	ticker := time.NewTicker(l.tickRate)
	defer ticker.Stop()
	l.last = time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if key, isKey := ev.(*tcell.EventKey); isKey {
				if l.handleKey(key.Key(), key.Rune(), time.Now()) {
					l.logger.Info(ctx, "interrupted")
					return nil
				}
			}
		case now := <-ticker.C:
			done, err := l.tick(now)
			if err != nil {
				return err
			}
			if done {
				return nil
			}
		}
	}
}

// handleKey records a key press and reports whether the loop must stop.
func (l *TerminalLoop) handleKey(key tcell.Key, r rune, now time.Time) bool {
	if key == tcell.KeyCtrlC {
		return true
	}
	l.keys.Press(key, r, now)
	return false
}

// tick advances the game to now and reports whether it exited.
func (l *TerminalLoop) tick(now time.Time) (bool, error) {
	dt := now.Sub(l.last).Seconds()
	l.last = now
	if dt > maxDeltaTime {
		dt = maxDeltaTime
	}
	if dt < 0 {
		dt = 0
	}

	l.keys.Sample(l.game.Keys, now)
	if err := l.game.Tick(float32(dt)); err != nil {
		return false, err
	}
	return l.game.Exited(), nil
}

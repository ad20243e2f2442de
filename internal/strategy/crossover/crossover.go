// Package crossover implements a long-only moving-average crossover strategy
// over an ordered series of OHLCV bars.
package crossover

import (
	"fmt"

	"github.com/finsig/finsig/internal/core"
	"github.com/finsig/finsig/internal/indicator"
)

// Crossover generates BUY/SELL signals where a short moving average of
// closing prices crosses a long one. Each call to Signals is a pure function
// of its input; the type holds only the window configuration.
type Crossover struct {
	windows core.WindowPair
}

// New creates a crossover strategy for the given window pair. Returns a
// CONFIGURATION_ERROR when the windows are non-positive or not strictly
// ordered short < long.
func New(windows core.WindowPair) (*Crossover, error) {
	if err := windows.Validate(); err != nil {
		return nil, err
	}
	return &Crossover{windows: windows}, nil
}

// Name returns the strategy identifier.
func (c *Crossover) Name() string {
	return "ma_crossover"
}

// Description returns a human-readable description.
func (c *Crossover) Description() string {
	return fmt.Sprintf("MA Crossover (%d/%d)", c.windows.Short, c.windows.Long)
}

// Windows returns the configured window pair.
func (c *Crossover) Windows() core.WindowPair {
	return c.windows
}

// Signals walks the series once, maintaining both moving averages as
// incremental rolling sums, and emits a signal at every crossover.
//
// The strategy starts flat: the first index where both averages are defined
// may open a position (BUY) when the short average is already strictly above
// the long one, but can never close one. Afterwards a BUY fires when the
// short average moves from at-or-below to strictly above the long average,
// and a SELL when it moves from at-or-above to strictly below — each gated
// on the current position, so emitted signals strictly alternate in kind.
//
// Bars must be supplied in timestamp order; the engine does not re-sort.
// A malformed bar stops the walk with a DATA_INTEGRITY_ERROR naming the
// offending index, with no signals computed past it.
func (c *Crossover) Signals(bars []core.Bar) ([]core.Signal, error) {
	shortWin := indicator.NewRolling(c.windows.Short)
	longWin := indicator.NewRolling(c.windows.Long)

	var (
		signals     []core.Signal
		prevShort   float64
		prevLong    float64
		prevDefined bool
		inPosition  bool
	)

	for i, bar := range bars {
		if err := bar.Validate(); err != nil {
			return nil, core.WrapError(core.ErrDataIntegrity,
				fmt.Errorf("bar %d (%s): %w", i, bar.Timestamp.Format("2006-01-02T15:04:05Z07:00"), err))
		}

		shortMA, _ := shortWin.Push(bar.Close)
		longMA, ok := longWin.Push(bar.Close)
		if !ok {
			// Long window not warm yet; short < long so it warms first.
			continue
		}

		switch {
		case !inPosition && shortMA > longMA && (!prevDefined || prevShort <= prevLong):
			signals = append(signals, core.Signal{
				Timestamp: bar.Timestamp,
				Kind:      core.SignalBuy,
				Price:     bar.Close,
				ShortMA:   shortMA,
				LongMA:    longMA,
			})
			inPosition = true

		case inPosition && prevDefined && shortMA < longMA && prevShort >= prevLong:
			signals = append(signals, core.Signal{
				Timestamp: bar.Timestamp,
				Kind:      core.SignalSell,
				Price:     bar.Close,
				ShortMA:   shortMA,
				LongMA:    longMA,
			})
			inPosition = false
		}

		prevShort, prevLong = shortMA, longMA
		prevDefined = true
	}

	return signals, nil
}

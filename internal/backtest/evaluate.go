// Package backtest evaluates the moving-average crossover strategy against a
// series of bars and summarizes the simulated trade performance.
package backtest

import (
	"github.com/finsig/finsig/internal/core"
	"github.com/finsig/finsig/internal/strategy/crossover"
)

// Evaluate is the single entry point of the evaluation pipeline: rolling
// averages, crossover signals, long-only trade simulation, performance
// aggregation. It is a pure function of its inputs.
//
// A series shorter than the long window is a normal outcome and yields a
// zero-valued report. The only failures are CONFIGURATION_ERROR (invalid
// windows) and DATA_INTEGRITY_ERROR (malformed bar); neither returns a
// partial report.
func Evaluate(bars []core.Bar, windows core.WindowPair) (*Result, error) {
	strat, err := crossover.New(windows)
	if err != nil {
		return nil, err
	}

	signals, err := strat.Signals(bars)
	if err != nil {
		return nil, err
	}

	trades := PairTrades(signals)

	return &Result{
		Stats:   CalculateStats(trades),
		Windows: windows,
		Signals: signals,
		Trades:  trades,
	}, nil
}

// PairTrades pairs each BUY with the next subsequent SELL into a closed
// trade. This model cannot short: a SELL with no unmatched BUY before it is
// skipped. A trailing BUY with no exit is an unrealized position and is not
// scored — it stays in the signal list but produces no trade.
func PairTrades(signals []core.Signal) []Trade {
	var trades []Trade
	var entry *core.Signal

	for _, sig := range signals {
		switch sig.Kind {
		case core.SignalBuy:
			if entry == nil {
				sigCopy := sig
				entry = &sigCopy
			}
		case core.SignalSell:
			if entry != nil {
				trades = append(trades, Trade{
					EntrySignal: *entry,
					ExitSignal:  sig,
					EntryPrice:  entry.Price,
					ExitPrice:   sig.Price,
					Return:      (sig.Price - entry.Price) / entry.Price,
				})
				entry = nil
			}
		}
	}

	return trades
}

package backtest

import (
	"github.com/finsig/finsig/internal/core"
)

// Trade represents one closed round-trip: a BUY entry paired with the next
// SELL exit. Open positions are never represented as trades.
type Trade struct {
	EntrySignal core.Signal `json:"entry"`
	ExitSignal  core.Signal `json:"exit"`
	EntryPrice  float64     `json:"entry_price"`
	ExitPrice   float64     `json:"exit_price"`
	Return      float64     `json:"return"` // (exit - entry) / entry, full precision
}

// IsWin returns true if the trade was profitable
func (t Trade) IsWin() bool {
	return t.Return > 0
}

// Stats holds aggregate performance statistics. WinRate and TotalReturn are
// rounded to two decimals for presentation; per-trade returns keep full
// precision in Trades.
type Stats struct {
	TotalTrades   int     `json:"total_trades"`
	WinningTrades int     `json:"winning_trades"`
	LosingTrades  int     `json:"losing_trades"`
	WinRate       float64 `json:"win_rate"`     // winning / total * 100, 0 when no trades
	TotalReturn   float64 `json:"total_return"` // additive sum of per-trade percentage returns
}

// Result is the full performance report for one evaluation: the aggregate
// statistics, every signal in timestamp order (including any unpaired ones),
// and the closed trades behind the numbers.
type Result struct {
	Stats
	Windows core.WindowPair `json:"windows"`
	Signals []core.Signal   `json:"signals"`
	Trades  []Trade         `json:"trades,omitempty"`
}

package backtest

import (
	"math"
)

// CalculateStats computes aggregate performance statistics from closed
// trades. A winning trade has a strictly positive return; break-even counts
// as a loss.
func CalculateStats(trades []Trade) Stats {
	if len(trades) == 0 {
		return Stats{}
	}

	var winning, losing int
	var totalReturn float64

	for _, t := range trades {
		totalReturn += t.Return
		if t.IsWin() {
			winning++
		} else {
			losing++
		}
	}

	winRate := float64(winning) / float64(len(trades)) * 100

	return Stats{
		TotalTrades:   len(trades),
		WinningTrades: winning,
		LosingTrades:  losing,
		WinRate:       round2(winRate),
		TotalReturn:   round2(totalReturn * 100),
	}
}

// round2 rounds to two decimal places for presentation. The additive
// total-return convention (sum of percentage returns, not compounded) is a
// documented assumption; swapping it touches only CalculateStats.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

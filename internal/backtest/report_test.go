package backtest_test

import (
	"testing"
	"time"

	"github.com/finsig/finsig/internal/backtest"
	"github.com/finsig/finsig/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dailyBars(closes []float64) []core.Bar {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]core.Bar, len(closes))
	for i, c := range closes {
		bars[i] = core.Bar{
			Timestamp: base.AddDate(0, 0, i),
			Open:      c,
			High:      c + 1,
			Low:       c - 1,
			Close:     c,
			Volume:    1000,
		}
	}
	return bars
}

func TestEvaluate_Report(t *testing.T) {
	// Rises through both windows then falls back to the entry price
	bars := dailyBars([]float64{10, 10, 10, 12, 14, 16, 14, 12, 10, 10})

	result, err := backtest.Evaluate(bars, core.WindowPair{Short: 2, Long: 4})
	require.NoError(t, err)
	require.NotNil(t, result)

	require.Len(t, result.Signals, 2)
	assert.Equal(t, core.SignalBuy, result.Signals[0].Kind)
	assert.Equal(t, core.SignalSell, result.Signals[1].Kind)

	require.Len(t, result.Trades, 1)
	trade := result.Trades[0]
	assert.Equal(t, result.Signals[0].Price, trade.EntryPrice, "entry price should come from the BUY signal")
	assert.Equal(t, result.Signals[1].Price, trade.ExitPrice, "exit price should come from the SELL signal")
	assert.True(t, trade.ExitSignal.Timestamp.After(trade.EntrySignal.Timestamp))

	assert.Equal(t, 1, result.TotalTrades)
	assert.Equal(t, 0, result.WinningTrades)
	assert.Equal(t, 1, result.LosingTrades, "break-even trades count as losses")
	assert.Equal(t, 0.0, result.WinRate)
	assert.Equal(t, 0.0, result.TotalReturn)
}

func TestEvaluate_ReportConsistency(t *testing.T) {
	bars := dailyBars([]float64{10, 10, 10, 14, 18, 18, 10, 10, 10, 14, 18, 18})

	result, err := backtest.Evaluate(bars, core.WindowPair{Short: 2, Long: 4})
	require.NoError(t, err)

	assert.Equal(t, result.TotalTrades, len(result.Trades))
	assert.Equal(t, result.TotalTrades, result.WinningTrades+result.LosingTrades)
	assert.GreaterOrEqual(t, result.WinRate, 0.0)
	assert.LessOrEqual(t, result.WinRate, 100.0)

	// Signals alternate, starting with a BUY
	for i, sig := range result.Signals {
		if i%2 == 0 {
			assert.Equal(t, core.SignalBuy, sig.Kind, "signal %d", i)
		} else {
			assert.Equal(t, core.SignalSell, sig.Kind, "signal %d", i)
		}
	}
}

package backtest

import (
	"math"
	"testing"

	"github.com/finsig/finsig/internal/core"
)

func sig(kind core.SignalKind, price float64) core.Signal {
	return core.Signal{Kind: kind, Price: price}
}

func TestPairTrades_RoundTrip(t *testing.T) {
	signals := []core.Signal{
		sig(core.SignalBuy, 100),
		sig(core.SignalSell, 110),
	}

	trades := PairTrades(signals)

	if len(trades) != 1 {
		t.Fatalf("expected 1 trade, got %d", len(trades))
	}
	if trades[0].EntryPrice != 100 || trades[0].ExitPrice != 110 {
		t.Errorf("trade prices = %g/%g, want 100/110", trades[0].EntryPrice, trades[0].ExitPrice)
	}
	if math.Abs(trades[0].Return-0.10) > 1e-12 {
		t.Errorf("Return = %f, want 0.10", trades[0].Return)
	}
}

func TestPairTrades_DanglingBuyExcluded(t *testing.T) {
	signals := []core.Signal{
		sig(core.SignalBuy, 100),
		sig(core.SignalSell, 110),
		sig(core.SignalBuy, 120),
	}

	trades := PairTrades(signals)

	if len(trades) != 1 {
		t.Errorf("open position must not be scored, got %d trades", len(trades))
	}
}

func TestPairTrades_LeadingSellSkipped(t *testing.T) {
	signals := []core.Signal{
		sig(core.SignalSell, 90),
		sig(core.SignalBuy, 100),
		sig(core.SignalSell, 105),
	}

	trades := PairTrades(signals)

	if len(trades) != 1 {
		t.Fatalf("expected 1 trade, got %d", len(trades))
	}
	if trades[0].EntryPrice != 100 {
		t.Errorf("entry price = %g, want 100 (cannot short)", trades[0].EntryPrice)
	}
}

func TestPairTrades_OnlyBuy(t *testing.T) {
	trades := PairTrades([]core.Signal{sig(core.SignalBuy, 100)})
	if len(trades) != 0 {
		t.Errorf("expected 0 trades, got %d", len(trades))
	}
}

func TestCalculateStats_Empty(t *testing.T) {
	stats := CalculateStats(nil)
	if stats.TotalTrades != 0 || stats.WinRate != 0 || stats.TotalReturn != 0 {
		t.Errorf("empty input should produce zero stats, got %+v", stats)
	}
}

func TestCalculateStats_WinningTrade(t *testing.T) {
	stats := CalculateStats(PairTrades([]core.Signal{
		sig(core.SignalBuy, 100),
		sig(core.SignalSell, 110),
	}))

	if stats.TotalTrades != 1 || stats.WinningTrades != 1 || stats.LosingTrades != 0 {
		t.Errorf("counts = %d/%d/%d, want 1/1/0",
			stats.TotalTrades, stats.WinningTrades, stats.LosingTrades)
	}
	if stats.WinRate != 100 {
		t.Errorf("WinRate = %f, want 100", stats.WinRate)
	}
	if stats.TotalReturn != 10 {
		t.Errorf("TotalReturn = %f, want 10", stats.TotalReturn)
	}
}

func TestCalculateStats_LosingTrade(t *testing.T) {
	stats := CalculateStats(PairTrades([]core.Signal{
		sig(core.SignalBuy, 100),
		sig(core.SignalSell, 90),
	}))

	if stats.WinningTrades != 0 || stats.LosingTrades != 1 {
		t.Errorf("counts = %d/%d, want 0/1", stats.WinningTrades, stats.LosingTrades)
	}
	if stats.WinRate != 0 {
		t.Errorf("WinRate = %f, want 0", stats.WinRate)
	}
	if stats.TotalReturn != -10 {
		t.Errorf("TotalReturn = %f, want -10", stats.TotalReturn)
	}
}

func TestCalculateStats_BreakEvenCountsAsLoss(t *testing.T) {
	stats := CalculateStats([]Trade{{EntryPrice: 100, ExitPrice: 100, Return: 0}})

	if stats.WinningTrades != 0 || stats.LosingTrades != 1 {
		t.Errorf("break-even trade should count as loss, got %d/%d",
			stats.WinningTrades, stats.LosingTrades)
	}
}

func TestCalculateStats_MultipleTrades(t *testing.T) {
	stats := CalculateStats(PairTrades([]core.Signal{
		sig(core.SignalBuy, 100), sig(core.SignalSell, 110), // +10%
		sig(core.SignalBuy, 105), sig(core.SignalSell, 95), // -9.52%
		sig(core.SignalBuy, 90), sig(core.SignalSell, 100), // +11.11%
	}))

	if stats.TotalTrades != 3 {
		t.Fatalf("TotalTrades = %d, want 3", stats.TotalTrades)
	}
	if stats.WinningTrades+stats.LosingTrades != stats.TotalTrades {
		t.Error("winning + losing must equal total")
	}
	if stats.WinRate != 66.67 {
		t.Errorf("WinRate = %f, want 66.67", stats.WinRate)
	}
	// 10 - 9.5238... + 11.1111... = 11.5873..., rounded to 11.59
	if stats.TotalReturn != 11.59 {
		t.Errorf("TotalReturn = %f, want 11.59", stats.TotalReturn)
	}
}

func TestCalculateStats_WinRateBounds(t *testing.T) {
	trades := []Trade{
		{Return: 0.5}, {Return: -0.1}, {Return: 0.02}, {Return: 0},
	}
	stats := CalculateStats(trades)
	if stats.WinRate < 0 || stats.WinRate > 100 {
		t.Errorf("WinRate %f out of [0,100]", stats.WinRate)
	}
}

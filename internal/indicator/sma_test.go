package indicator

import (
	"math"
	"testing"
)

func TestSMA_Calculate(t *testing.T) {
	prices := []float64{10, 20, 30, 40, 50}

	sma := SMA(prices, 3)

	// SMA(3) for [10,20,30,40,50]:
	// [0] = (10+20+30)/3 = 20
	// [1] = (20+30+40)/3 = 30
	// [2] = (30+40+50)/3 = 40

	expected := []float64{20, 30, 40}

	if len(sma) != len(expected) {
		t.Fatalf("expected %d values, got %d", len(expected), len(sma))
	}

	for i, v := range expected {
		if sma[i] != v {
			t.Errorf("sma[%d] = %f, want %f", i, sma[i], v)
		}
	}
}

func TestSMA_NotEnoughData(t *testing.T) {
	prices := []float64{10, 11}
	sma := SMA(prices, 5)

	if len(sma) != 0 {
		t.Errorf("expected empty slice, got %d values", len(sma))
	}
}

func TestRolling_MatchesBatch(t *testing.T) {
	prices := []float64{10, 10, 10, 12, 14, 16, 14, 12, 10, 10}
	period := 4

	batch := SMA(prices, period)

	r := NewRolling(period)
	var streamed []float64
	for _, p := range prices {
		if mean, ok := r.Push(p); ok {
			streamed = append(streamed, mean)
		}
	}

	if len(streamed) != len(batch) {
		t.Fatalf("streamed %d values, batch %d", len(streamed), len(batch))
	}
	for i := range batch {
		if math.Abs(streamed[i]-batch[i]) > 1e-12 {
			t.Errorf("rolling[%d] = %f, want %f", i, streamed[i], batch[i])
		}
	}
}

func TestRolling_WarmupBoundary(t *testing.T) {
	r := NewRolling(3)

	if _, ok := r.Push(10); ok {
		t.Error("mean should be undefined after 1 of 3 prices")
	}
	if _, ok := r.Push(20); ok {
		t.Error("mean should be undefined after 2 of 3 prices")
	}

	mean, ok := r.Push(30)
	if !ok {
		t.Fatal("mean should be defined once the window is full")
	}
	if mean != 20 {
		t.Errorf("mean = %f, want 20", mean)
	}
	if !r.Warm() {
		t.Error("Warm() should report true after a full period")
	}
}

func TestRolling_ConstantPrices(t *testing.T) {
	r := NewRolling(5)
	for i := 0; i < 20; i++ {
		if mean, ok := r.Push(42); ok && mean != 42 {
			t.Fatalf("constant series mean = %f, want 42", mean)
		}
	}
}

package core

import (
	"fmt"
	"time"
)

// Bar represents one time-stamped OHLCV price observation.
// Bars are immutable once constructed; the engine only reads them.
type Bar struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    int64     `json:"volume"`
}

// Validate checks the bar invariants: positive prices and volume,
// high at or above every other price, low at or below open and close.
func (b Bar) Validate() error {
	if b.Open <= 0 || b.High <= 0 || b.Low <= 0 || b.Close <= 0 {
		return fmt.Errorf("prices must be positive (open=%g high=%g low=%g close=%g)",
			b.Open, b.High, b.Low, b.Close)
	}
	if b.Volume <= 0 {
		return fmt.Errorf("volume must be positive, got %d", b.Volume)
	}
	if b.High < b.Open || b.High < b.Close || b.High < b.Low {
		return fmt.Errorf("high %g below open/close/low (%g/%g/%g)",
			b.High, b.Open, b.Close, b.Low)
	}
	if b.Low > b.Open || b.Low > b.Close {
		return fmt.Errorf("low %g above open/close (%g/%g)", b.Low, b.Open, b.Close)
	}
	return nil
}

// WindowPair holds the two moving-average window lengths for a crossover
// strategy.
type WindowPair struct {
	Short int `json:"short_window"`
	Long  int `json:"long_window"`
}

// Validate checks the window invariants: both positive, short strictly
// smaller than long.
func (w WindowPair) Validate() error {
	if w.Short <= 0 || w.Long <= 0 {
		return WrapError(ErrConfiguration,
			fmt.Errorf("windows must be positive, got short=%d long=%d", w.Short, w.Long))
	}
	if w.Short >= w.Long {
		return WrapError(ErrConfiguration,
			fmt.Errorf("short window %d must be smaller than long window %d", w.Short, w.Long))
	}
	return nil
}

// SignalKind represents the direction of a trading signal
type SignalKind string

const (
	SignalBuy  SignalKind = "BUY"
	SignalSell SignalKind = "SELL"
)

// Signal represents a crossover event at one bar. ShortMA and LongMA carry
// the full-precision averages that produced the decision.
type Signal struct {
	Timestamp time.Time  `json:"timestamp"`
	Kind      SignalKind `json:"signal"`
	Price     float64    `json:"price"`
	ShortMA   float64    `json:"short_ma"`
	LongMA    float64    `json:"long_ma"`
}

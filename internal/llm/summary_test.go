package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/finsig/finsig/internal/backtest"
	"github.com/finsig/finsig/internal/core"
)

type fakeProvider struct {
	lastRequest ChatRequest
	response    string
	err         error
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	f.lastRequest = req
	if f.err != nil {
		return nil, f.err
	}
	return &ChatResponse{Content: f.response}, nil
}

func sampleResult() *backtest.Result {
	buy := core.Signal{
		Timestamp: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Kind:      core.SignalBuy,
		Price:     100,
		ShortMA:   101,
		LongMA:    100,
	}
	sell := core.Signal{
		Timestamp: time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC),
		Kind:      core.SignalSell,
		Price:     110,
		ShortMA:   108,
		LongMA:    109,
	}
	return &backtest.Result{
		Stats: backtest.Stats{
			TotalTrades:   1,
			WinningTrades: 1,
			WinRate:       100,
			TotalReturn:   10,
		},
		Windows: core.WindowPair{Short: 10, Long: 20},
		Signals: []core.Signal{buy, sell},
		Trades: []backtest.Trade{
			{EntrySignal: buy, ExitSignal: sell, EntryPrice: 100, ExitPrice: 110, Return: 0.10},
		},
	}
}

func TestAnalyst_Analyze(t *testing.T) {
	provider := &fakeProvider{response: "Solid single-trade run."}
	analyst := NewAnalyst(provider)

	got, err := analyst.Analyze(context.Background(), sampleResult())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if got != "Solid single-trade run." {
		t.Errorf("unexpected commentary: %q", got)
	}

	if provider.lastRequest.SystemPrompt == "" {
		t.Error("expected a system prompt")
	}
	if len(provider.lastRequest.Messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(provider.lastRequest.Messages))
	}
	if !strings.Contains(provider.lastRequest.Messages[0].Content, "Win rate: 100.00%") {
		t.Errorf("prompt should contain win rate, got:\n%s", provider.lastRequest.Messages[0].Content)
	}
}

func TestAnalyst_NoProvider(t *testing.T) {
	analyst := NewAnalyst(nil)

	_, err := analyst.Analyze(context.Background(), sampleResult())
	if !errors.Is(err, core.ErrLLMUnavailable) {
		t.Errorf("expected LLM_UNAVAILABLE, got %v", err)
	}
}

func TestAnalyst_ProviderError(t *testing.T) {
	provider := &fakeProvider{err: errors.New("connection refused")}
	analyst := NewAnalyst(provider)

	_, err := analyst.Analyze(context.Background(), sampleResult())
	if !errors.Is(err, core.ErrLLMFailed) {
		t.Errorf("expected LLM_FAILED, got %v", err)
	}
}

func TestFormatResult(t *testing.T) {
	out := FormatResult(sampleResult())

	for _, want := range []string{
		"short=10, long=20",
		"Trades: 1 (won 1, lost 0)",
		"Total return: 10.00%",
		"BUY",
		"SELL",
		"100.00 -> 110.00",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/finsig/finsig/internal/backtest"
	"github.com/finsig/finsig/internal/core"
)

const analystSystemPrompt = `You are a quantitative trading analyst. You are given the
results of a moving-average crossover evaluation over a historical OHLCV dataset.
Comment on the signal quality, the win rate and the total return, and point out
anything notable about the trade sequence. Be concise and concrete. Do not give
financial advice.`

// Analyst turns evaluation results into natural-language commentary
// using a configured LLM provider.
type Analyst struct {
	provider Provider
}

// NewAnalyst creates an analyst backed by the given provider.
func NewAnalyst(provider Provider) *Analyst {
	return &Analyst{provider: provider}
}

// Analyze asks the provider for commentary on an evaluation result.
func (a *Analyst) Analyze(ctx context.Context, result *backtest.Result) (string, error) {
	if a.provider == nil {
		return "", core.WrapError(core.ErrLLMUnavailable, fmt.Errorf("no provider configured"))
	}

	resp, err := a.provider.Chat(ctx, ChatRequest{
		SystemPrompt: analystSystemPrompt,
		Messages: []Message{
			{Role: "user", Content: FormatResult(result)},
		},
		MaxTokens: 1024,
	})
	if err != nil {
		return "", core.WrapError(core.ErrLLMFailed, err)
	}
	return resp.Content, nil
}

// FormatResult renders an evaluation result as a compact plain-text report
// suitable for a prompt.
func FormatResult(result *backtest.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "MA crossover evaluation (short=%d, long=%d)\n",
		result.Windows.Short, result.Windows.Long)
	fmt.Fprintf(&b, "Trades: %d (won %d, lost %d)\n",
		result.TotalTrades, result.WinningTrades, result.LosingTrades)
	fmt.Fprintf(&b, "Win rate: %.2f%%\n", result.WinRate)
	fmt.Fprintf(&b, "Total return: %.2f%%\n", result.TotalReturn)

	if len(result.Signals) > 0 {
		fmt.Fprintf(&b, "\nSignals:\n")
		for _, sig := range result.Signals {
			fmt.Fprintf(&b, "  %s %s at %.2f (MA %.2f/%.2f)\n",
				sig.Timestamp.Format("2006-01-02"), sig.Kind, sig.Price,
				sig.ShortMA, sig.LongMA)
		}
	}

	if len(result.Trades) > 0 {
		fmt.Fprintf(&b, "\nTrades:\n")
		for _, tr := range result.Trades {
			fmt.Fprintf(&b, "  %s -> %s: %.2f -> %.2f (%+.2f%%)\n",
				tr.EntrySignal.Timestamp.Format("2006-01-02"),
				tr.ExitSignal.Timestamp.Format("2006-01-02"),
				tr.EntryPrice, tr.ExitPrice, tr.Return*100)
		}
	}

	return b.String()
}

package main

import (
	"fmt"

	"github.com/finsig/finsig/internal/backtest"
	"github.com/finsig/finsig/internal/core"
	"github.com/finsig/finsig/internal/dataset"
	"github.com/finsig/finsig/internal/llm"
	"github.com/spf13/cobra"
)

var (
	evaluateData  string
	evaluateShort int
	evaluateLong  int
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate the crossover strategy over a CSV dataset",
	Long:  "Run the moving-average crossover strategy against a CSV file and print the performance report, without a running server.",
	RunE:  runEvaluate,
}

func init() {
	evaluateCmd.Flags().StringVar(&evaluateData, "data", "", "CSV dataset path (required)")
	evaluateCmd.Flags().IntVar(&evaluateShort, "short", 10, "Short moving-average window")
	evaluateCmd.Flags().IntVar(&evaluateLong, "long", 20, "Long moving-average window")

	evaluateCmd.MarkFlagRequired("data")

	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	bars, err := dataset.ReadFile(evaluateData)
	if err != nil {
		return err
	}

	result, err := backtest.Evaluate(bars, core.WindowPair{
		Short: evaluateShort,
		Long:  evaluateLong,
	})
	if err != nil {
		return err
	}

	fmt.Println("=== finsig evaluation ===")
	fmt.Printf("Dataset: %s (%d bars)\n\n", evaluateData, len(bars))
	fmt.Print(llm.FormatResult(result))

	return nil
}

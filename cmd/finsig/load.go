package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/finsig/finsig/internal/core"
	"github.com/finsig/finsig/internal/dataset"
	"github.com/spf13/cobra"
)

var (
	loadData   string
	loadServer string
	loadAPIKey string
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load a CSV dataset into a running server",
	Long:  "Read OHLCV bars from a CSV file and bulk-ingest them into a running finsig server.",
	RunE:  runLoad,
}

func init() {
	loadCmd.Flags().StringVar(&loadData, "data", "", "CSV dataset path (required)")
	loadCmd.Flags().StringVar(&loadServer, "server", "http://localhost:8080", "Server base URL")
	loadCmd.Flags().StringVar(&loadAPIKey, "api-key", "", "API key, if the server requires one")

	loadCmd.MarkFlagRequired("data")

	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	bars, err := dataset.ReadFile(loadData)
	if err != nil {
		return err
	}
	if len(bars) == 0 {
		return fmt.Errorf("no bars in %s", loadData)
	}

	body, err := json.Marshal(map[string][]core.Bar{"bars": bars})
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	url := loadServer + "/api/v1/data/bulk"
	req, err := http.NewRequestWithContext(cmd.Context(), http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if loadAPIKey != "" {
		req.Header.Set("X-API-Key", loadAPIKey)
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("posting dataset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("server rejected dataset: %s: %s", resp.Status, payload)
	}

	fmt.Printf("Loaded %d bars into %s\n", len(bars), loadServer)
	return nil
}

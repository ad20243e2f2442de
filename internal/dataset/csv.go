// internal/dataset/csv.go
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/finsig/finsig/internal/core"
)

// Header is the expected CSV column layout.
var Header = []string{"timestamp", "open", "high", "low", "close", "volume"}

// ReadFile reads an OHLCV dataset from a CSV file.
func ReadFile(path string) ([]core.Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Read parses an OHLCV dataset from CSV. The first row must match Header.
// Every bar is validated, and the result is sorted by timestamp with ties
// kept in file order.
func Read(r io.Reader) ([]core.Bar, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	var bars []core.Bar
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		b, err := parseRecord(record)
		if err != nil {
			return nil, core.WrapError(core.ErrDataIntegrity,
				fmt.Errorf("line %d: %w", line, err))
		}
		if err := b.Validate(); err != nil {
			return nil, core.WrapError(core.ErrDataIntegrity,
				fmt.Errorf("line %d: %w", line, err))
		}

		bars = append(bars, b)
	}

	sort.SliceStable(bars, func(i, j int) bool {
		return bars[i].Timestamp.Before(bars[j].Timestamp)
	})

	return bars, nil
}

func checkHeader(header []string) error {
	if len(header) != len(Header) {
		return fmt.Errorf("expected header %q, got %q",
			strings.Join(Header, ","), strings.Join(header, ","))
	}
	for i, col := range header {
		if !strings.EqualFold(strings.TrimSpace(col), Header[i]) {
			return fmt.Errorf("expected column %d to be %q, got %q", i, Header[i], col)
		}
	}
	return nil
}

func parseRecord(record []string) (core.Bar, error) {
	if len(record) != len(Header) {
		return core.Bar{}, fmt.Errorf("expected %d fields, got %d", len(Header), len(record))
	}

	ts, err := parseTimestamp(record[0])
	if err != nil {
		return core.Bar{}, fmt.Errorf("timestamp: %w", err)
	}

	prices := make([]float64, 4)
	for i, name := range []string{"open", "high", "low", "close"} {
		v, err := strconv.ParseFloat(record[i+1], 64)
		if err != nil {
			return core.Bar{}, fmt.Errorf("%s: %w", name, err)
		}
		prices[i] = v
	}

	volume, err := strconv.ParseInt(record[5], 10, 64)
	if err != nil {
		return core.Bar{}, fmt.Errorf("volume: %w", err)
	}

	return core.Bar{
		Timestamp: ts,
		Open:      prices[0],
		High:      prices[1],
		Low:       prices[2],
		Close:     prices[3],
		Volume:    volume,
	}, nil
}

// parseTimestamp accepts RFC3339 or a bare date.
func parseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", raw)
}

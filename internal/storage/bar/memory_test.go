package bar

import (
	"context"
	"testing"
	"time"

	"github.com/finsig/finsig/internal/core"
)

func testBar(ts time.Time, close float64) core.Bar {
	return core.Bar{
		Timestamp: ts,
		Open:      close,
		High:      close + 1,
		Low:       close - 1,
		Close:     close,
		Volume:    100,
	}
}

func TestMemoryStore_SaveAssignsID(t *testing.T) {
	store := NewMemoryStore()

	rec, err := store.Save(context.Background(), testBar(time.Now(), 100))
	if err != nil {
		t.Fatal(err)
	}
	if rec.ID == "" {
		t.Error("expected an assigned ID")
	}
}

func TestMemoryStore_ListOrderedByTimestamp(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	// Insert out of order
	store.Save(ctx, testBar(base.AddDate(0, 0, 2), 102))
	store.Save(ctx, testBar(base, 100))
	store.Save(ctx, testBar(base.AddDate(0, 0, 1), 101))

	records, err := store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	for i := 1; i < len(records); i++ {
		if records[i].Timestamp.Before(records[i-1].Timestamp) {
			t.Errorf("records out of order at %d", i)
		}
	}
	if records[0].Close != 100 || records[2].Close != 102 {
		t.Errorf("unexpected ordering: %v", records)
	}
}

func TestMemoryStore_EqualTimestampsKeepInsertionOrder(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	ts := time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)

	store.Save(ctx, testBar(ts, 100))
	store.Save(ctx, testBar(ts, 200))
	store.Save(ctx, testBar(ts, 300))

	bars, err := store.Bars(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{100, 200, 300}
	for i, w := range want {
		if bars[i].Close != w {
			t.Errorf("bars[%d].Close = %g, want %g", i, bars[i].Close, w)
		}
	}
}

func TestMemoryStore_SaveBulk(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	records, err := store.SaveBulk(ctx, []core.Bar{
		testBar(base.AddDate(0, 0, 1), 101),
		testBar(base, 100),
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	count, _ := store.Count(ctx)
	if count != 2 {
		t.Errorf("Count = %d, want 2", count)
	}
}

func TestMemoryStore_DeleteAll(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	store.Save(ctx, testBar(time.Now(), 100))
	store.Save(ctx, testBar(time.Now(), 101))

	n, err := store.DeleteAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("DeleteAll = %d, want 2", n)
	}

	count, _ := store.Count(ctx)
	if count != 0 {
		t.Errorf("Count after delete = %d, want 0", count)
	}
}

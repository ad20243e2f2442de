// internal/storage/archive/snapshot.go
package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/finsig/finsig/internal/core"
	"github.com/google/uuid"
)

const snapshotPrefix = "snapshots"

// Snapshot is an archived copy of the full bar dataset, written before
// destructive operations such as a purge.
type Snapshot struct {
	ID        string     `json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	BarCount  int        `json:"bar_count"`
	Bars      []core.Bar `json:"bars"`
}

// Snapshotter writes and lists dataset snapshots on a Storage backend.
type Snapshotter struct {
	storage Storage
}

// NewSnapshotter creates a snapshotter over the given backend.
func NewSnapshotter(storage Storage) *Snapshotter {
	return &Snapshotter{storage: storage}
}

// Write archives the given bars as one snapshot and returns its path.
func (s *Snapshotter) Write(ctx context.Context, bars []core.Bar) (string, error) {
	snap := Snapshot{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		BarCount:  len(bars),
		Bars:      bars,
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return "", core.WrapError(core.ErrArchiveFailed, fmt.Errorf("encoding snapshot: %w", err))
	}

	path := fmt.Sprintf("%s/%s_%s.json", snapshotPrefix,
		snap.CreatedAt.Format("20060102T150405Z"), snap.ID)

	if err := s.storage.Write(ctx, path, data); err != nil {
		return "", core.WrapError(core.ErrArchiveFailed, err)
	}
	return path, nil
}

// List returns all snapshot paths, oldest first.
func (s *Snapshotter) List(ctx context.Context) ([]string, error) {
	paths, err := s.storage.List(ctx, snapshotPrefix)
	if err != nil {
		return nil, core.WrapError(core.ErrArchiveFailed, err)
	}
	sort.Strings(paths)
	return paths, nil
}

// Load reads one snapshot back from the backend.
func (s *Snapshotter) Load(ctx context.Context, path string) (*Snapshot, error) {
	data, err := s.storage.Read(ctx, path)
	if err != nil {
		return nil, core.WrapError(core.ErrArchiveFailed, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, core.WrapError(core.ErrArchiveFailed, fmt.Errorf("decoding snapshot: %w", err))
	}
	return &snap, nil
}

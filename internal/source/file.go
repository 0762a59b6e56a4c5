package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/matsen/simgraph/internal/paper"
	"github.com/matsen/simgraph/internal/storage"
)

// File serves a single snapshot stored as a JSON document.
type File struct {
	Path string
}

// Snapshot reads the file. paperID must match the snapshot's root paper
// unless it is empty.
func (f File) Snapshot(ctx context.Context, paperID string) (*paper.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var snap paper.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parsing snapshot %s: %w", f.Path, err)
	}
	if err := snap.Validate(); err != nil {
		return nil, err
	}

	if paperID != "" && snap.Root().ID != paperID {
		return nil, fmt.Errorf("%w: %s is not the root of %s", ErrNotFound, paperID, f.Path)
	}
	return &snap, nil
}

// Archive serves snapshots from a JSONL archive, one snapshot per line.
type Archive struct {
	Path string
}

// Snapshot returns the most recently archived snapshot rooted at paperID.
func (a Archive) Snapshot(ctx context.Context, paperID string) (*paper.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snaps, err := storage.ReadSnapshots(a.Path)
	if err != nil {
		return nil, err
	}

	snap, ok := storage.FindByRoot(snaps, paperID)
	if !ok {
		return nil, fmt.Errorf("%w: %s not in archive %s", ErrNotFound, paperID, a.Path)
	}
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	return snap, nil
}

// Caching wraps a source and appends every fetched snapshot to an archive,
// serving later requests for the same paper from the archive.
type Caching struct {
	Source  Source
	Archive Archive
}

// Snapshot returns the archived snapshot for paperID or fetches and archives it.
func (c Caching) Snapshot(ctx context.Context, paperID string) (*paper.Snapshot, error) {
	snap, err := c.Archive.Snapshot(ctx, paperID)
	if err == nil {
		return snap, nil
	}
	if !IsNotFound(err) {
		return nil, err
	}

	snap, err = c.Source.Snapshot(ctx, paperID)
	if err != nil {
		return nil, err
	}
	if err := storage.AppendSnapshot(c.Archive.Path, snap); err != nil {
		return nil, fmt.Errorf("archiving snapshot: %w", err)
	}
	return snap, nil
}

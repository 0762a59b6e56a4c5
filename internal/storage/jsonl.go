package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/matsen/simgraph/internal/paper"
)

// MaxJSONLLineCapacity is the maximum buffer size for reading JSONL lines.
// A snapshot's tensor grows with the square of its paper count, so lines
// can be large.
const MaxJSONLLineCapacity = 64 * 1024 * 1024

// ReadSnapshots reads all snapshots from a JSONL archive.
func ReadSnapshots(path string) ([]paper.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // Missing archive is an empty archive
		}
		return nil, fmt.Errorf("opening snapshot archive: %w", err)
	}
	defer f.Close()

	var snaps []paper.Snapshot
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), MaxJSONLLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue // Skip empty lines
		}

		var snap paper.Snapshot
		if err := json.Unmarshal(line, &snap); err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", lineNum, err)
		}
		snaps = append(snaps, snap)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading snapshot archive: %w", err)
	}

	return snaps, nil
}

// AppendSnapshot adds a snapshot to the end of a JSONL archive.
func AppendSnapshot(path string, snap *paper.Snapshot) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening snapshot archive for append: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if _, err := f.WriteString("\n"); err != nil {
		return fmt.Errorf("writing newline: %w", err)
	}

	return nil
}

// FindByRoot returns the last snapshot whose root paper is id, so a
// re-appended snapshot supersedes older ones.
func FindByRoot(snaps []paper.Snapshot, id string) (*paper.Snapshot, bool) {
	for i := len(snaps) - 1; i >= 0; i-- {
		if root := snaps[i].Root(); root != nil && root.ID == id {
			return &snaps[i], true
		}
	}
	return nil, false
}

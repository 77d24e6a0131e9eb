// ABOUTME: Data migration between storage backends
// ABOUTME: Copies collection slots byte for byte from source to destination

package storage

import (
	"errors"
	"fmt"
	"os"
)

// MigrateSummary holds counts of migrated slots.
type MigrateSummary struct {
	Copied  int
	Missing int
	Bytes   int
}

// Migrate copies the named slots from src to dst. Slots absent from src are
// counted and left untouched in dst. Values are copied verbatim so the
// destination reads exactly what the source held.
func Migrate(src, dst KV, slots []string) (*MigrateSummary, error) {
	summary := &MigrateSummary{}

	for _, slot := range slots {
		data, err := src.Get(slot)
		if errors.Is(err, ErrNotFound) {
			summary.Missing++
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read slot %q: %w", slot, err)
		}
		if err := dst.Set(slot, data); err != nil {
			return nil, fmt.Errorf("write slot %q: %w", slot, err)
		}
		summary.Copied++
		summary.Bytes += len(data)
	}

	return summary, nil
}

// IsDirNonEmpty checks whether a directory exists and contains any files or subdirectories.
// Returns false if the directory does not exist or is empty.
func IsDirNonEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read directory %q: %w", path, err)
	}
	return len(entries) > 0, nil
}

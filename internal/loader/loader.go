// Package loader reads score sheets and alias files from their directories, isolating
// failures at file granularity and reporting them as data.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Strategy how a score sheet with bad rows is treated
type Strategy int

const (
	// StrategyFile any bad row discards the whole file
	StrategyFile Strategy = iota
	// StrategyRow bad rows are skipped and reported, good rows are kept
	StrategyRow
)

func (s Strategy) String() string {
	switch s {
	case StrategyRow:
		return "row"
	default:
		return "file"
	}
}

// ParseStrategy maps a config value to a Strategy; empty means StrategyFile
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "file":
		return StrategyFile, nil
	case "row":
		return StrategyRow, nil
	default:
		return StrategyFile, fmt.Errorf("unknown parse strategy %q (want file or row)", s)
	}
}

// Status lets the reporting layer tell a clean load from a partial or failed one
type Status int

const (
	StatusOK Status = iota
	StatusPartial
	StatusDirectoryUnreadable
)

func (s Status) String() string {
	switch s {
	case StatusPartial:
		return "partial"
	case StatusDirectoryUnreadable:
		return "directory_unreadable"
	default:
		return "ok"
	}
}

func statusOf(directoryFailed bool, failed int) Status {
	switch {
	case directoryFailed:
		return StatusDirectoryUnreadable
	case failed > 0:
		return StatusPartial
	default:
		return StatusOK
	}
}

const defaultConcurrency = 4

// listFiles regular files directly under dir, in lexical path order
func listFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		// follow symlinks: a link to a regular file counts as a file
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths, nil
}

package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"meal-board/internal/planner"
)

// BackupArchive provides file-based, versioned JSON backups of the board
// state.
type BackupArchive struct {
	basePath string
}

// NewBackupArchive creates a new BackupArchive and ensures the base
// directory exists.
func NewBackupArchive(basePath string) (*BackupArchive, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory %s: %w", basePath, err)
	}
	return &BackupArchive{basePath: basePath}, nil
}

// versionedPath returns the file path for a backup taken at ts.
func (a *BackupArchive) versionedPath(ts time.Time) string {
	return filepath.Join(a.basePath, fmt.Sprintf("board_%s.json", ts.UTC().Format("20060102T150405")))
}

// Save writes a timestamped backup of the state and returns its path.
func (a *BackupArchive) Save(s *planner.State) (string, error) {
	data, err := planner.ExportBackup(s)
	if err != nil {
		return "", fmt.Errorf("failed to serialize backup: %w", err)
	}
	path := a.versionedPath(time.Now())
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write backup file: %w", err)
	}
	return path, nil
}

// List returns the archived backup paths, newest first.
func (a *BackupArchive) List() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(a.basePath, "board_*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to list backups: %w", err)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(matches)))
	return matches, nil
}

// LoadLatest restores the most recent backup. Returns (nil, nil) when the
// archive is empty.
func (a *BackupArchive) LoadLatest() (*planner.State, error) {
	backups, err := a.List()
	if err != nil {
		return nil, err
	}
	if len(backups) == 0 {
		return nil, nil
	}
	data, err := os.ReadFile(backups[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read backup file: %w", err)
	}
	s, err := planner.ImportBackup(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse backup %s: %w", backups[0], err)
	}
	return s, nil
}

// Prune removes all but the keep most recent backups.
func (a *BackupArchive) Prune(keep int) error {
	backups, err := a.List()
	if err != nil {
		return err
	}
	if keep < 0 {
		keep = 0
	}
	for _, stale := range backups[min(keep, len(backups)):] {
		if err := os.Remove(stale); err != nil {
			return fmt.Errorf("failed to remove stale backup %s: %w", stale, err)
		}
	}
	return nil
}

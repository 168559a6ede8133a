// Package receipt is the boundary to the external receipt/assistant parser.
// Parsing itself (OCR, language models) happens outside this process; the
// planner only ever sees the parser's draft item output.
package receipt

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"meal-board/internal/planner"
)

// DraftSource supplies parsed draft items for reconciliation.
type DraftSource interface {
	Load(ctx context.Context) ([]planner.ReceiptDraftItem, error)
}

// FileDraftSource reads parser output from a JSON file.
type FileDraftSource struct {
	FilePath string
}

// NewFileDraftSource creates a file-backed draft source.
func NewFileDraftSource(filePath string) *FileDraftSource {
	return &FileDraftSource{FilePath: filePath}
}

// Load reads and decodes the draft item list.
func (f *FileDraftSource) Load(ctx context.Context) ([]planner.ReceiptDraftItem, error) {
	data, err := os.ReadFile(f.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read draft file: %w", err)
	}
	var items []planner.ReceiptDraftItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode draft items: %w", err)
	}
	return items, nil
}

// StaticDraftSource serves a fixed item list, used in tests and demos.
type StaticDraftSource struct {
	Items []planner.ReceiptDraftItem
	Err   error
}

// Load returns the fixed items.
func (s *StaticDraftSource) Load(ctx context.Context) ([]planner.ReceiptDraftItem, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Items, nil
}

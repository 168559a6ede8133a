package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"meal-board/internal/planner"
)

// Repository persists the planner state as a single JSON document row.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new state repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{db: d}
}

// Save writes the current state, replacing any previous snapshot.
func (r *Repository) Save(ctx context.Context, s *planner.State) error {
	data, err := planner.ExportBackup(s)
	if err != nil {
		return fmt.Errorf("failed to serialize board state: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO board_state (id, data, updated_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		string(data), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save board state: %w", err)
	}
	return nil
}

// Load reads the persisted state. Returns (nil, nil) when nothing has been
// saved yet. The stored document passes through the same validation and
// legacy-shape normalization as a JSON backup import.
func (r *Repository) Load(ctx context.Context) (*planner.State, error) {
	var data string
	err := r.db.QueryRowContext(ctx, `SELECT data FROM board_state WHERE id = 1`).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load board state: %w", err)
	}

	s, err := planner.ImportBackup([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse stored board state: %w", err)
	}
	return s, nil
}

// LogReceiptImport records a reconciled receipt batch for auditing.
func (r *Repository) LogReceiptImport(ctx context.Context, items []planner.ReceiptDraftItem) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal receipt items: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO receipt_imports (item_count, payload, imported_at) VALUES (?, ?, ?)`,
		len(items), string(payload), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to log receipt import: %w", err)
	}
	return nil
}

package storage

import (
	"database/sql"
	"fmt"
)

// DispatchRecord represents a queued token sequence in the database.
type DispatchRecord struct {
	DispatchID    int64
	SessionID     string
	DispatchIndex int
	TsMs          int64
	Mode          string
	Raw           string
	Tokens        string
	MoveCount     int
}

// FixRecord is a misoriented center that triggered a fix dispatch.
type FixRecord struct {
	FixID       int64
	DispatchID  int64
	Face        string
	Orientation int
}

// DispatchRepository provides CRUD operations for dispatches.
type DispatchRepository struct {
	db *DB
}

// NewDispatchRepository creates a new dispatch repository.
func NewDispatchRepository(db *DB) *DispatchRepository {
	return &DispatchRepository{db: db}
}

// Create stores a dispatch and the fixes it carries, and returns its ID.
func (r *DispatchRepository) Create(d DispatchRecord, fixes []FixRecord) (int64, error) {
	var id int64
	err := r.db.Transaction(func(tx *sql.Tx) error {
		result, err := tx.Exec(`
			INSERT INTO dispatches (session_id, dispatch_index, ts_ms, mode, raw, tokens, move_count)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, d.SessionID, d.DispatchIndex, d.TsMs, d.Mode, d.Raw, d.Tokens, d.MoveCount)
		if err != nil {
			return fmt.Errorf("failed to create dispatch: %w", err)
		}

		id, err = result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get dispatch ID: %w", err)
		}

		for _, f := range fixes {
			_, err := tx.Exec(`
				INSERT INTO fixes (dispatch_id, face, orientation)
				VALUES (?, ?, ?)
			`, id, f.Face, f.Orientation)
			if err != nil {
				return fmt.Errorf("failed to create fix for %s: %w", f.Face, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// GetBySession retrieves all dispatches of a session in order.
func (r *DispatchRepository) GetBySession(sessionID string) ([]DispatchRecord, error) {
	rows, err := r.db.Query(`
		SELECT dispatch_id, session_id, dispatch_index, ts_ms, mode, raw, tokens, move_count
		FROM dispatches
		WHERE session_id = ?
		ORDER BY dispatch_index
	`, sessionID)

	if err != nil {
		return nil, fmt.Errorf("failed to get dispatches: %w", err)
	}
	defer rows.Close()

	var dispatches []DispatchRecord
	for rows.Next() {
		var d DispatchRecord
		err := rows.Scan(&d.DispatchID, &d.SessionID, &d.DispatchIndex, &d.TsMs, &d.Mode, &d.Raw, &d.Tokens, &d.MoveCount)
		if err != nil {
			return nil, fmt.Errorf("failed to scan dispatch: %w", err)
		}
		dispatches = append(dispatches, d)
	}

	return dispatches, rows.Err()
}

// GetFixes retrieves the fixes recorded with a dispatch.
func (r *DispatchRepository) GetFixes(dispatchID int64) ([]FixRecord, error) {
	rows, err := r.db.Query(`
		SELECT fix_id, dispatch_id, face, orientation
		FROM fixes
		WHERE dispatch_id = ?
		ORDER BY fix_id
	`, dispatchID)

	if err != nil {
		return nil, fmt.Errorf("failed to get fixes: %w", err)
	}
	defer rows.Close()

	var fixes []FixRecord
	for rows.Next() {
		var f FixRecord
		if err := rows.Scan(&f.FixID, &f.DispatchID, &f.Face, &f.Orientation); err != nil {
			return nil, fmt.Errorf("failed to scan fix: %w", err)
		}
		fixes = append(fixes, f)
	}

	return fixes, rows.Err()
}

// GetNextIndex returns the next dispatch index for a session.
func (r *DispatchRepository) GetNextIndex(sessionID string) (int, error) {
	var maxIndex int
	err := r.db.QueryRow(`
		SELECT COALESCE(MAX(dispatch_index), -1) FROM dispatches WHERE session_id = ?
	`, sessionID).Scan(&maxIndex)
	if err != nil {
		return 0, fmt.Errorf("failed to get max dispatch index: %w", err)
	}
	return maxIndex + 1, nil
}

// Count returns the number of dispatches in a session.
func (r *DispatchRepository) Count(sessionID string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM dispatches WHERE session_id = ?", sessionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count dispatches: %w", err)
	}
	return count, nil
}

// CountByMode returns dispatch counts per mode for a session.
func (r *DispatchRepository) CountByMode(sessionID string) (map[string]int, error) {
	rows, err := r.db.Query(`
		SELECT mode, COUNT(*) FROM dispatches WHERE session_id = ? GROUP BY mode
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to count dispatches by mode: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var mode string
		var n int
		if err := rows.Scan(&mode, &n); err != nil {
			return nil, fmt.Errorf("failed to scan mode count: %w", err)
		}
		counts[mode] = n
	}
	return counts, rows.Err()
}

package export

import (
	"fmt"

	"github.com/SeamusWaldron/cubeanim/internal/storage"
)

// FromJournal loads every dispatch of a session, with its fixes, as
// export entries.
func FromJournal(db *storage.DB, sessionID string) ([]Entry, error) {
	repo := storage.NewDispatchRepository(db)
	records, err := repo.GetBySession(sessionID)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(records))
	for _, r := range records {
		fixes, err := repo.GetFixes(r.DispatchID)
		if err != nil {
			return nil, fmt.Errorf("dispatch %d: %w", r.DispatchIndex, err)
		}
		e := Entry{
			SessionID:     r.SessionID,
			DispatchIndex: r.DispatchIndex,
			TsMs:          r.TsMs,
			Mode:          r.Mode,
			Raw:           r.Raw,
			Tokens:        r.Tokens,
			MoveCount:     r.MoveCount,
		}
		for _, f := range fixes {
			e.Fixes = append(e.Fixes, Fix{Face: f.Face, Orientation: f.Orientation})
		}
		entries = append(entries, e)
	}
	return entries, nil
}

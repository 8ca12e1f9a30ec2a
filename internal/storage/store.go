package storage

import (
	"context"
	"time"

	"crisp-interview/internal/interview"
	"crisp-interview/internal/models"
)

// SchemaVersion is bumped whenever the snapshot layout changes shape.
const SchemaVersion = 1

// Snapshot is the whole application state persisted as one versioned
// document: the candidate roster plus the interview in flight. It is always
// read and written wholesale.
type Snapshot struct {
	SchemaVersion int                     `json:"schema_version"`
	SavedAt       time.Time               `json:"saved_at"`
	Candidates    []models.Candidate      `json:"candidates"`
	Session       *interview.SessionState `json:"session,omitempty"`
}

// Store persists snapshots. Load on a fresh backend returns an empty
// snapshot, not an error.
type Store interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snap *Snapshot) error
	Reset(ctx context.Context) error
	Close() error
}

func emptySnapshot() *Snapshot {
	return &Snapshot{SchemaVersion: SchemaVersion}
}

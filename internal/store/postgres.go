// Package store persists the engine's ApplicationState to Postgres.
//
// The engine's state is a single in-memory value the reducer replaces
// wholesale on every command (see domain.ApplicationState), so the store
// does not attempt to normalize Tournaments/Matches/Groups into their own
// tables; it persists the whole snapshot as one JSON document per write,
// using prepared statements and mapping sql.ErrNoRows onto a fresh empty
// state.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/braccet/tournament-engine/internal/domain"
)

// snapshotRow is the on-disk shape of one ApplicationState snapshot.
type snapshotRow struct {
	Tournaments         map[domain.TournamentID]*domain.Tournament        `json:"tournaments"`
	Containers          map[domain.ContainerID]*domain.TournamentContainer `json:"containers"`
	CurrentTournamentID *domain.TournamentID                               `json:"currentTournamentId,omitempty"`
	CurrentContainerID  *domain.ContainerID                                `json:"currentContainerId,omitempty"`
}

// SnapshotStore persists and restores the whole engine state under a single
// singleton row, identified by Key.
type SnapshotStore struct {
	db  *sql.DB
	key string
}

// NewSnapshotStore returns a store reading/writing snapshots under key
// (callers running more than one independent engine instance against the
// same database pass distinct keys).
func NewSnapshotStore(db *sql.DB, key string) *SnapshotStore {
	return &SnapshotStore{db: db, key: key}
}

// EnsureSchema creates the snapshot table if it does not already exist.
func (s *SnapshotStore) EnsureSchema(ctx context.Context) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS application_state_snapshots (
			key        TEXT PRIMARY KEY,
			data       JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)
	`
	_, err := s.db.ExecContext(ctx, ddl)
	return err
}

// Save upserts the full state under the store's key.
func (s *SnapshotStore) Save(ctx context.Context, state domain.ApplicationState) error {
	row := snapshotRow{
		Tournaments:         state.Tournaments,
		Containers:          state.Containers,
		CurrentTournamentID: state.CurrentTournamentID,
		CurrentContainerID:  state.CurrentContainerID,
	}
	data, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	stmt, err := s.db.PrepareContext(ctx, `
		INSERT INTO application_state_snapshots (key, data, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, s.key, data, time.Now())
	return err
}

// Load returns the store's key's last saved state, or a fresh empty state
// if nothing has been saved yet.
func (s *SnapshotStore) Load(ctx context.Context) (domain.ApplicationState, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM application_state_snapshots WHERE key = $1`, s.key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewApplicationState(), nil
	}
	if err != nil {
		return domain.ApplicationState{}, err
	}

	var row snapshotRow
	if err := json.Unmarshal(data, &row); err != nil {
		return domain.ApplicationState{}, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if row.Tournaments == nil {
		row.Tournaments = make(map[domain.TournamentID]*domain.Tournament)
	}
	if row.Containers == nil {
		row.Containers = make(map[domain.ContainerID]*domain.TournamentContainer)
	}
	return domain.ApplicationState{
		Tournaments:         row.Tournaments,
		Containers:          row.Containers,
		CurrentTournamentID: row.CurrentTournamentID,
		CurrentContainerID:  row.CurrentContainerID,
	}, nil
}

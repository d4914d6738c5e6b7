// Package api exposes the engine's command/query surface over HTTP: a thin
// layer that decodes a request, calls into the domain logic, and encodes
// the result. The domain logic itself is a single call to engine.Reduce
// against the process-wide ApplicationState, since the engine core
// (package engine) is a pure reducer over one root-of-truth value (see
// domain.ApplicationState) rather than a set of normalized SQL tables.
package api

import (
	"context"
	"sync"

	"github.com/braccet/tournament-engine/internal/domain"
	"github.com/braccet/tournament-engine/internal/engine"
	"github.com/braccet/tournament-engine/internal/logging"
	"github.com/braccet/tournament-engine/internal/standingscache"
	"github.com/braccet/tournament-engine/internal/store"
)

// Server holds the engine's single in-memory ApplicationState plus the
// collaborators that make it durable and observable. Every command is
// applied under mu, serializing requests without a row-level lock: the
// whole state replaces itself atomically on every Reduce call (§9).
type Server struct {
	mu    sync.Mutex
	state domain.ApplicationState

	store *store.SnapshotStore
	cache *standingscache.Cache
	idGen domain.IDGenerator
	clock domain.Clock
}

// NewServer constructs a Server around an already-loaded state. Callers load
// the initial state via store.Load before constructing the Server so a
// restart resumes exactly where the last Save left off.
func NewServer(initial domain.ApplicationState, snapshotStore *store.SnapshotStore, cache *standingscache.Cache, idGen domain.IDGenerator, clock domain.Clock) *Server {
	return &Server{
		state: initial,
		store: snapshotStore,
		cache: cache,
		idGen: idGen,
		clock: clock,
	}
}

// apply runs cmd through engine.Reduce against the current state, persists
// the result on success, and invalidates any cached standings for the
// tournament the caller names (invalidateFor may be empty if the command
// does not touch a tournament's standings).
func (s *Server) apply(ctx context.Context, cmd engine.Command, invalidateFor domain.TournamentID) (domain.ApplicationState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := engine.Reduce(s.state, cmd, s.idGen, s.clock)
	if err != nil {
		return s.state, err
	}
	s.state = next

	if s.store != nil {
		if saveErr := s.store.Save(ctx, s.state); saveErr != nil {
			logging.Error("save snapshot failed", logging.Err(saveErr))
		}
	}
	if s.cache != nil && invalidateFor != "" {
		if invErr := s.cache.Invalidate(ctx, invalidateFor); invErr != nil {
			logging.Warn("invalidate standings cache failed", logging.Err(invErr))
		}
	}
	return s.state, nil
}

// snapshot returns the current state without mutating it, for query
// handlers.
func (s *Server) snapshot() domain.ApplicationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

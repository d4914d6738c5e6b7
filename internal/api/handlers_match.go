package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/braccet/tournament-engine/internal/domain"
	"github.com/braccet/tournament-engine/internal/engine"
)

// ScoreRequest carries a match's set-by-set score.
type ScoreRequest struct {
	Scores []domain.SetScore `json:"scores"`
}

func (s *Server) decodeScore(w http.ResponseWriter, r *http.Request) ([]domain.SetScore, bool) {
	var req ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return nil, false
	}
	return req.Scores, true
}

// UpdateMatchScore overwrites a match's in-progress scores without
// resolving a winner.
func (s *Server) UpdateMatchScore(w http.ResponseWriter, r *http.Request) {
	tournamentID := domain.TournamentID(chi.URLParam(r, "tournamentId"))
	matchID := domain.MatchID(chi.URLParam(r, "matchId"))
	scores, ok := s.decodeScore(w, r)
	if !ok {
		return
	}
	cmd := engine.UpdateMatchScore{TournamentID: tournamentID, MatchID: matchID, Scores: scores}
	state, err := s.apply(r.Context(), cmd, tournamentID)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toMatchResponse(state.Tournaments[tournamentID].MatchByID(matchID)))
}

// CompleteMatch finalizes a match's score and drives dependency
// propagation, referee reassignment and phase-completion checks.
func (s *Server) CompleteMatch(w http.ResponseWriter, r *http.Request) {
	tournamentID := domain.TournamentID(chi.URLParam(r, "tournamentId"))
	matchID := domain.MatchID(chi.URLParam(r, "matchId"))
	scores, ok := s.decodeScore(w, r)
	if !ok {
		return
	}
	cmd := engine.CompleteMatch{TournamentID: tournamentID, MatchID: matchID, Scores: scores}
	state, err := s.apply(r.Context(), cmd, tournamentID)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTournamentResponse(state.Tournaments[tournamentID]))
}

// EditMatchScore corrects an already-completed match's score, cascading a
// reset through any one-hop dependents when the winner changes.
func (s *Server) EditMatchScore(w http.ResponseWriter, r *http.Request) {
	tournamentID := domain.TournamentID(chi.URLParam(r, "tournamentId"))
	matchID := domain.MatchID(chi.URLParam(r, "matchId"))
	scores, ok := s.decodeScore(w, r)
	if !ok {
		return
	}
	cmd := engine.EditMatchScore{TournamentID: tournamentID, MatchID: matchID, Scores: scores}
	state, err := s.apply(r.Context(), cmd, tournamentID)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTournamentResponse(state.Tournaments[tournamentID]))
}

// ForfeitTeam withdraws a team, completing every remaining match of theirs
// with the opponent as a synthetic winner.
func (s *Server) ForfeitTeam(w http.ResponseWriter, r *http.Request) {
	tournamentID := domain.TournamentID(chi.URLParam(r, "tournamentId"))
	teamID := domain.TeamID(chi.URLParam(r, "teamId"))
	cmd := engine.ForfeitTeam{TournamentID: tournamentID, TeamID: teamID}
	state, err := s.apply(r.Context(), cmd, tournamentID)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTournamentResponse(state.Tournaments[tournamentID]))
}

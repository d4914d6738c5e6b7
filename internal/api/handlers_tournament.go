package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/braccet/tournament-engine/internal/apperr"
	"github.com/braccet/tournament-engine/internal/domain"
	"github.com/braccet/tournament-engine/internal/engine"
)

func (s *Server) findTournament(w http.ResponseWriter, r *http.Request) (*domain.Tournament, domain.TournamentID, bool) {
	id := domain.TournamentID(chi.URLParam(r, "tournamentId"))
	state := s.snapshot()
	t, ok := state.Tournaments[id]
	if !ok {
		writeEngineError(w, apperr.ErrTournamentNotFound)
		return nil, id, false
	}
	return t, id, true
}

// GetTournament returns a tournament's configuration and summary fields.
func (s *Server) GetTournament(w http.ResponseWriter, r *http.Request) {
	t, _, ok := s.findTournament(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toTournamentResponse(t))
}

// ListMatches returns every match belonging to a tournament.
func (s *Server) ListMatches(w http.ResponseWriter, r *http.Request) {
	t, _, ok := s.findTournament(w, r)
	if !ok {
		return
	}
	resp := make([]MatchResponse, len(t.Matches))
	for i, m := range t.Matches {
		resp[i] = toMatchResponse(m)
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetStandings returns flat standings, consulting the read-through cache
// first when one is configured.
func (s *Server) GetStandings(w http.ResponseWriter, r *http.Request) {
	t, id, ok := s.findTournament(w, r)
	if !ok {
		return
	}
	if s.cache != nil {
		if cached, err := s.cache.GetStandings(r.Context(), id); err == nil && cached != nil {
			writeJSON(w, http.StatusOK, cached)
			return
		}
	}
	if s.cache != nil {
		_ = s.cache.PutStandings(r.Context(), id, t.Standings)
	}
	writeJSON(w, http.StatusOK, t.Standings)
}

// UpdateTeamsRequest overwrites a tournament's team list in configuration.
type UpdateTeamsRequest struct {
	Teams []TeamInput `json:"teams"`
}

func (s *Server) UpdateTeams(w http.ResponseWriter, r *http.Request) {
	id := domain.TournamentID(chi.URLParam(r, "tournamentId"))
	var req UpdateTeamsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	teams := make([]domain.Team, len(req.Teams))
	for i, t := range req.Teams {
		teams[i] = domain.Team{ID: domain.TeamID(s.idGen.NewID()), Name: t.Name, SeedPosition: i + 1}
	}
	state, err := s.apply(r.Context(), engine.UpdateTeams{TournamentID: id, Teams: teams}, id)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTournamentResponse(state.Tournaments[id]))
}

// UpdateSettingsRequest overwrites match-rule settings; zero fields leave
// the corresponding setting unchanged (engine.UpdateTournamentSettings).
type UpdateSettingsRequest struct {
	SetsPerMatch      int                    `json:"setsPerMatch"`
	PointsPerSet      int                    `json:"pointsPerSet"`
	PointsPerThirdSet int                    `json:"pointsPerThirdSet"`
	NumberOfCourts    int                    `json:"numberOfCourts"`
	NumberOfRounds    int                    `json:"numberOfRounds"`
	TiebreakerOrder   domain.TiebreakerOrder `json:"tiebreakerOrder"`
}

func (s *Server) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	id := domain.TournamentID(chi.URLParam(r, "tournamentId"))
	var req UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	cmd := engine.UpdateTournamentSettings{
		TournamentID:      id,
		SetsPerMatch:      req.SetsPerMatch,
		PointsPerSet:      req.PointsPerSet,
		PointsPerThirdSet: req.PointsPerThirdSet,
		NumberOfCourts:    req.NumberOfCourts,
		NumberOfRounds:    req.NumberOfRounds,
		TiebreakerOrder:   req.TiebreakerOrder,
	}
	state, err := s.apply(r.Context(), cmd, id)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTournamentResponse(state.Tournaments[id]))
}

// UpdateGroupsRequest overwrites group membership and marks seeding manual.
type UpdateGroupsRequest struct {
	Groups []domain.Group `json:"groups"`
}

func (s *Server) UpdateGroups(w http.ResponseWriter, r *http.Request) {
	id := domain.TournamentID(chi.URLParam(r, "tournamentId"))
	var req UpdateGroupsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	state, err := s.apply(r.Context(), engine.UpdateGroups{TournamentID: id, Groups: req.Groups}, id)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTournamentResponse(state.Tournaments[id]))
}

// StartTournament generates the initial schedule and transitions the
// tournament to in-progress (§4.9).
func (s *Server) StartTournament(w http.ResponseWriter, r *http.Request) {
	id := domain.TournamentID(chi.URLParam(r, "tournamentId"))
	state, err := s.apply(r.Context(), engine.StartTournament{TournamentID: id}, id)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTournamentResponse(state.Tournaments[id]))
}

// GenerateNextSwissRound advances a Swiss tournament's round counter.
func (s *Server) GenerateNextSwissRound(w http.ResponseWriter, r *http.Request) {
	id := domain.TournamentID(chi.URLParam(r, "tournamentId"))
	state, err := s.apply(r.Context(), engine.GenerateNextSwissRound{TournamentID: id}, id)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTournamentResponse(state.Tournaments[id]))
}

// ResetTournament clears matches/standings and returns the tournament to
// configuration, dropping any child phases (§4.9).
func (s *Server) ResetTournament(w http.ResponseWriter, r *http.Request) {
	id := domain.TournamentID(chi.URLParam(r, "tournamentId"))
	state, err := s.apply(r.Context(), engine.ResetTournament{TournamentID: id}, id)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTournamentResponse(state.Tournaments[id]))
}

// DeleteTournament deletes the whole container owning this tournament
// (§4.9: deletion is container-wide).
func (s *Server) DeleteTournament(w http.ResponseWriter, r *http.Request) {
	id := domain.TournamentID(chi.URLParam(r, "tournamentId"))
	if _, err := s.apply(r.Context(), engine.DeleteTournament{TournamentID: id}, ""); err != nil {
		writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateKnockoutTournament explicitly materializes a parent's knockout
// child phase.
func (s *Server) CreateKnockoutTournament(w http.ResponseWriter, r *http.Request) {
	id := domain.TournamentID(chi.URLParam(r, "tournamentId"))
	state, err := s.apply(r.Context(), engine.CreateKnockoutTournament{TournamentID: id}, "")
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTournamentResponse(state.Tournaments[id]))
}

// CreateFinalsTournament explicitly materializes a parent's placement
// child phase.
func (s *Server) CreateFinalsTournament(w http.ResponseWriter, r *http.Request) {
	id := domain.TournamentID(chi.URLParam(r, "tournamentId"))
	state, err := s.apply(r.Context(), engine.CreateFinalsTournament{TournamentID: id}, "")
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTournamentResponse(state.Tournaments[id]))
}

// SetCurrentTournamentRequest names the tournament a caller is now viewing.
type SetCurrentTournamentRequest struct {
	TournamentID domain.TournamentID `json:"tournamentId"`
}

func (s *Server) SetCurrentTournament(w http.ResponseWriter, r *http.Request) {
	var req SetCurrentTournamentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if _, err := s.apply(r.Context(), engine.SetCurrentTournament{TournamentID: req.TournamentID}, ""); err != nil {
		writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/braccet/tournament-engine/internal/apperr"
	"github.com/braccet/tournament-engine/internal/domain"
	"github.com/braccet/tournament-engine/internal/engine"
)

// TeamInput is the wire shape of one team at tournament-creation time; IDs
// are minted server-side, the way CreateTournamentInput's doc comment
// describes for the container/tournament IDs themselves.
type TeamInput struct {
	Name string `json:"name"`
}

// CreateTournamentRequest is the wire shape of engine.CreateTournamentInput,
// minus the caller-pre-minted IDs the command needs internally.
type CreateTournamentRequest struct {
	ContainerName     string                    `json:"containerName"`
	Name              string                    `json:"name"`
	System            domain.System             `json:"system"`
	Teams             []TeamInput               `json:"teams"`
	SetsPerMatch      int                       `json:"setsPerMatch"`
	PointsPerSet      int                       `json:"pointsPerSet"`
	PointsPerThirdSet int                       `json:"pointsPerThirdSet"`
	TiebreakerOrder   domain.TiebreakerOrder    `json:"tiebreakerOrder"`
	NumberOfCourts    int                       `json:"numberOfCourts"`
	NumberOfRounds    int                       `json:"numberOfRounds,omitempty"`
	GroupPhaseConfig  *domain.GroupPhaseConfig  `json:"groupPhaseConfig,omitempty"`
	KnockoutSettings  *domain.KnockoutSettings  `json:"knockoutSettings,omitempty"`
}

// CreateTournament mints a container + first-phase tournament and applies
// CreateTournamentInput (§4.9).
func (s *Server) CreateTournament(w http.ResponseWriter, r *http.Request) {
	var req CreateTournamentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || len(req.Teams) < 2 {
		writeError(w, http.StatusBadRequest, "name and at least 2 teams are required")
		return
	}

	teams := make([]domain.Team, len(req.Teams))
	for i, t := range req.Teams {
		teams[i] = domain.Team{
			ID:           domain.TeamID(s.idGen.NewID()),
			Name:         t.Name,
			SeedPosition: i + 1,
		}
	}

	cmd := engine.CreateTournamentInput{
		ContainerID:       domain.ContainerID(s.idGen.NewID()),
		TournamentID:      domain.TournamentID(s.idGen.NewID()),
		ContainerName:     req.ContainerName,
		Name:              req.Name,
		System:            req.System,
		Teams:             teams,
		SetsPerMatch:      req.SetsPerMatch,
		PointsPerSet:      req.PointsPerSet,
		PointsPerThirdSet: req.PointsPerThirdSet,
		TiebreakerOrder:   req.TiebreakerOrder,
		NumberOfCourts:    req.NumberOfCourts,
		NumberOfRounds:    req.NumberOfRounds,
		GroupPhaseConfig:  req.GroupPhaseConfig,
		KnockoutSettings:  req.KnockoutSettings,
	}

	state, err := s.apply(r.Context(), cmd, "")
	if err != nil {
		writeEngineError(w, err)
		return
	}

	tournament := state.Tournaments[cmd.TournamentID]
	writeJSON(w, http.StatusCreated, toTournamentResponse(tournament))
}

// GetContainer returns a container and its phase list.
func (s *Server) GetContainer(w http.ResponseWriter, r *http.Request) {
	id := domain.ContainerID(chi.URLParam(r, "containerId"))
	state := s.snapshot()
	container, ok := state.Containers[id]
	if !ok {
		writeEngineError(w, apperr.ErrContainerNotFound)
		return
	}
	writeJSON(w, http.StatusOK, toContainerResponse(container))
}

// DeleteContainer deletes a container and every phase tournament it owns
// (§4.9).
func (s *Server) DeleteContainer(w http.ResponseWriter, r *http.Request) {
	id := domain.ContainerID(chi.URLParam(r, "containerId"))
	if _, err := s.apply(r.Context(), engine.DeleteContainer{ContainerID: id}, ""); err != nil {
		writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetCurrentPhaseRequest carries the new active phase index for a container.
type SetCurrentPhaseRequest struct {
	PhaseIndex int `json:"phaseIndex"`
}

// SetCurrentPhase updates which phase a container's caller is viewing.
func (s *Server) SetCurrentPhase(w http.ResponseWriter, r *http.Request) {
	id := domain.ContainerID(chi.URLParam(r, "containerId"))
	var req SetCurrentPhaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	state, err := s.apply(r.Context(), engine.SetCurrentPhase{ContainerID: id, PhaseIndex: req.PhaseIndex}, "")
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toContainerResponse(state.Containers[id]))
}

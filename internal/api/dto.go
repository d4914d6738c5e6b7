package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/braccet/tournament-engine/internal/apperr"
	"github.com/braccet/tournament-engine/internal/domain"
)

// ErrorResponse is the {"error": "..."} body every failed handler returns.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// writeEngineError maps a sentinel from package apperr to the HTTP status a
// REST client expects; anything unrecognized (ErrInvariantViolation
// included) is a 500, since §7 treats that case as a bug report rather than
// a client-correctable condition.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperr.ErrTournamentNotFound),
		errors.Is(err, apperr.ErrContainerNotFound),
		errors.Is(err, apperr.ErrMatchNotFound),
		errors.Is(err, apperr.ErrTeamNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, apperr.ErrNotInConfiguration),
		errors.Is(err, apperr.ErrAlreadyStarted),
		errors.Is(err, apperr.ErrRoundNotYetComplete),
		errors.Is(err, apperr.ErrTournamentNotRunning),
		errors.Is(err, apperr.ErrUnsupportedGroupCount),
		errors.Is(err, apperr.ErrMissingGroupStandings),
		errors.Is(err, apperr.ErrInvalidScore),
		errors.Is(err, apperr.ErrMissingSettings),
		errors.Is(err, apperr.ErrUnsupportedTeamTotal):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// TeamResponse mirrors domain.Team over the wire.
type TeamResponse struct {
	ID           domain.TeamID `json:"id"`
	Name         string        `json:"name"`
	SeedPosition int           `json:"seedPosition"`
}

// MatchResponse mirrors domain.Match over the wire.
type MatchResponse struct {
	ID          domain.MatchID `json:"id"`
	Round       int            `json:"round"`
	MatchNumber int            `json:"matchNumber"`
	CourtNumber int            `json:"courtNumber"`

	TeamAID *domain.TeamID `json:"teamAId,omitempty"`
	TeamBID *domain.TeamID `json:"teamBId,omitempty"`

	Scores   []domain.SetScore `json:"scores"`
	WinnerID *domain.TeamID    `json:"winnerId,omitempty"`

	Status string `json:"status"`

	KnockoutRound     string             `json:"knockoutRound,omitempty"`
	BracketPosition   int                `json:"bracketPosition,omitempty"`
	PlayoffForPlace   int                `json:"playoffForPlace,omitempty"`
	PlacementInterval *domain.Interval   `json:"placementInterval,omitempty"`
	IsPlayoff         bool               `json:"isPlayoff,omitempty"`

	RefereeTeamID *domain.TeamID `json:"refereeTeamId,omitempty"`

	PlaceholderA       string `json:"placeholderA,omitempty"`
	PlaceholderB       string `json:"placeholderB,omitempty"`
	PlaceholderReferee string `json:"placeholderReferee,omitempty"`
}

func toMatchResponse(m *domain.Match) MatchResponse {
	return MatchResponse{
		ID:                 m.ID,
		Round:              m.Round,
		MatchNumber:        m.MatchNumber,
		CourtNumber:        m.CourtNumber,
		TeamAID:            m.TeamAID,
		TeamBID:            m.TeamBID,
		Scores:             m.Scores,
		WinnerID:           m.WinnerID,
		Status:             string(m.Status),
		KnockoutRound:      string(m.KnockoutRound),
		BracketPosition:    m.BracketPosition,
		PlayoffForPlace:    m.PlayoffForPlace,
		PlacementInterval:  m.PlacementInterval,
		IsPlayoff:          m.IsPlayoff,
		RefereeTeamID:      m.RefereeTeamID,
		PlaceholderA:       m.PlaceholderA,
		PlaceholderB:       m.PlaceholderB,
		PlaceholderReferee: m.PlaceholderReferee,
	}
}

// TournamentResponse mirrors domain.Tournament over the wire, minus the
// Matches slice (served separately by the matches endpoint to keep the
// tournament payload small once a bracket has hundreds of matches).
type TournamentResponse struct {
	ID     domain.TournamentID `json:"id"`
	Name   string              `json:"name"`
	System string              `json:"system"`

	SetsPerMatch      int                    `json:"setsPerMatch"`
	PointsPerSet      int                    `json:"pointsPerSet"`
	PointsPerThirdSet int                    `json:"pointsPerThirdSet"`
	TiebreakerOrder   domain.TiebreakerOrder `json:"tiebreakerOrder"`
	NumberOfCourts    int                    `json:"numberOfCourts"`

	Teams []TeamResponse `json:"teams"`

	GroupStandings   []domain.GroupStandingEntry `json:"groupStandings,omitempty"`
	GroupPhaseConfig *domain.GroupPhaseConfig    `json:"groupPhaseConfig,omitempty"`
	KnockoutSettings *domain.KnockoutSettings    `json:"knockoutSettings,omitempty"`

	NumberOfRounds int `json:"numberOfRounds,omitempty"`
	CurrentRound   int `json:"currentRound,omitempty"`

	Status string `json:"status"`

	EliminatedTeamIDs []domain.TeamID `json:"eliminatedTeamIds,omitempty"`

	ContainerID   domain.ContainerID   `json:"containerId"`
	PhaseOrder    int                  `json:"phaseOrder"`
	PhaseName     string               `json:"phaseName"`
	ParentPhaseID *domain.TournamentID `json:"parentPhaseId,omitempty"`

	MatchCount int `json:"matchCount"`
}

func toTournamentResponse(t *domain.Tournament) TournamentResponse {
	teams := make([]TeamResponse, len(t.Teams))
	for i, team := range t.Teams {
		teams[i] = TeamResponse{ID: team.ID, Name: team.Name, SeedPosition: team.SeedPosition}
	}
	return TournamentResponse{
		ID:                t.ID,
		Name:              t.Name,
		System:            string(t.System),
		SetsPerMatch:      t.SetsPerMatch,
		PointsPerSet:      t.PointsPerSet,
		PointsPerThirdSet: t.PointsPerThirdSet,
		TiebreakerOrder:   t.TiebreakerOrder,
		NumberOfCourts:    t.NumberOfCourts,
		Teams:             teams,
		GroupStandings:    t.GroupStandings,
		GroupPhaseConfig:  t.GroupPhaseConfig,
		KnockoutSettings:  t.KnockoutSettings,
		NumberOfRounds:    t.NumberOfRounds,
		CurrentRound:      t.CurrentRound,
		Status:            string(t.Status),
		EliminatedTeamIDs: t.EliminatedTeamIDs,
		ContainerID:       t.ContainerID,
		PhaseOrder:        t.PhaseOrder,
		PhaseName:         t.PhaseName,
		ParentPhaseID:     t.ParentPhaseID,
		MatchCount:        len(t.Matches),
	}
}

// ContainerResponse mirrors domain.TournamentContainer over the wire.
type ContainerResponse struct {
	ID                domain.ContainerID `json:"id"`
	Name              string             `json:"name"`
	Phases            []domain.PhaseRef  `json:"phases"`
	CurrentPhaseIndex int                `json:"currentPhaseIndex"`
	Status            string             `json:"status"`
}

func toContainerResponse(c *domain.TournamentContainer) ContainerResponse {
	return ContainerResponse{
		ID:                c.ID,
		Name:              c.Name,
		Phases:            c.Phases,
		CurrentPhaseIndex: c.CurrentPhaseIndex,
		Status:            string(c.Status),
	}
}

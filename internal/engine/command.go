package engine

import "github.com/braccet/tournament-engine/internal/domain"

// Command is the closed set of reducer inputs (§4.9, §6). Every concrete
// type below is a sum-type variant; Reduce's switch over Command must stay
// exhaustive so a new variant forces a visit to the reducer (§9 "Sum-type
// discipline").
type Command interface {
	isCommand()
}

// LoadState replaces the whole ApplicationState with payload (§4.9).
type LoadState struct {
	State domain.ApplicationState
}

func (LoadState) isCommand() {}

// CreateTournamentInput mints a fresh container with one phase in
// `configuration` status. Teams are assigned SeedPosition equal to their
// order in the slice (§4.9).
//
// ContainerID and TournamentID are minted by the caller before the command
// is constructed, not by Reduce: keeping Reduce free of its own ID
// generation side effect (beyond the idGen argument already threaded
// through bracket generation) means a caller can know a tournament's ID
// before the command that creates it is even applied.
type CreateTournamentInput struct {
	ContainerID       domain.ContainerID
	TournamentID      domain.TournamentID
	ContainerName     string
	Name              string
	System            domain.System
	Teams             []domain.Team
	SetsPerMatch      int
	PointsPerSet      int
	PointsPerThirdSet int
	TiebreakerOrder   domain.TiebreakerOrder
	NumberOfCourts    int
	NumberOfRounds    int // Swiss only
	GroupPhaseConfig  *domain.GroupPhaseConfig
	KnockoutSettings  *domain.KnockoutSettings
}

func (CreateTournamentInput) isCommand() {}

// UpdateTeams overwrites a tournament's team list. Only valid in
// `configuration` status.
type UpdateTeams struct {
	TournamentID domain.TournamentID
	Teams        []domain.Team
}

func (UpdateTeams) isCommand() {}

// UpdateTournamentSettings overwrites match-rule settings. Only valid in
// `configuration` status. Zero-valued fields (TiebreakerOrder == "" or an
// int == 0) leave the corresponding setting unchanged, so a caller can
// patch a single field.
type UpdateTournamentSettings struct {
	TournamentID      domain.TournamentID
	SetsPerMatch      int
	PointsPerSet      int
	PointsPerThirdSet int
	NumberOfCourts    int
	NumberOfRounds    int
	TiebreakerOrder   domain.TiebreakerOrder
}

func (UpdateTournamentSettings) isCommand() {}

// UpdateGroups overwrites group membership and marks seeding manual
// (§4.9).
type UpdateGroups struct {
	TournamentID domain.TournamentID
	Groups       []domain.Group
}

func (UpdateGroups) isCommand() {}

// StartTournament calls the system-appropriate generator, initializes
// standings, transitions to `in-progress`, and materializes a child
// placeholder phase when the system calls for one.
type StartTournament struct {
	TournamentID domain.TournamentID
}

func (StartTournament) isCommand() {}

// UpdateMatchScore overwrites a match's in-progress scores without
// resolving a winner (§4.9).
type UpdateMatchScore struct {
	TournamentID domain.TournamentID
	MatchID      domain.MatchID
	Scores       []domain.SetScore
}

func (UpdateMatchScore) isCommand() {}

// CompleteMatch finalizes a match's scores, resolves WinnerID, runs
// dependency propagation / referee updates / standings recomputation /
// phase-completion and phase-populate checks (§4.9).
type CompleteMatch struct {
	TournamentID domain.TournamentID
	MatchID      domain.MatchID
	Scores       []domain.SetScore
}

func (CompleteMatch) isCommand() {}

// EditMatchScore corrects an already-completed match's score: if the
// winner changes, every match that already consumed the old winner/loser
// through a one-hop DependsOn edge is reset to pending and re-propagated
// from the corrected result.
type EditMatchScore struct {
	TournamentID domain.TournamentID
	MatchID      domain.MatchID
	Scores       []domain.SetScore
}

func (EditMatchScore) isCommand() {}

// ForfeitTeam withdraws a team from an in-progress tournament: every
// scheduled/in-progress match of that team completes with the opponent as
// a synthetic winner, propagating forward exactly as COMPLETE_MATCH does.
type ForfeitTeam struct {
	TournamentID domain.TournamentID
	TeamID       domain.TeamID
}

func (ForfeitTeam) isCommand() {}

// GenerateNextSwissRound advances a Swiss tournament's CurrentRound and
// calls C3 (§4.9).
type GenerateNextSwissRound struct {
	TournamentID domain.TournamentID
}

func (GenerateNextSwissRound) isCommand() {}

// ResetTournament clears matches/standings, drops child phases from the
// container, and returns the tournament to `configuration` (§4.9).
type ResetTournament struct {
	TournamentID domain.TournamentID
}

func (ResetTournament) isCommand() {}

// DeleteTournament deletes the entire container owning the tournament
// (§4.9: deletion is container-wide, not phase-wide).
type DeleteTournament struct {
	TournamentID domain.TournamentID
}

func (DeleteTournament) isCommand() {}

// DeleteContainer deletes a container and every phase tournament it owns.
type DeleteContainer struct {
	ContainerID domain.ContainerID
}

func (DeleteContainer) isCommand() {}

// SetCurrentTournament is bookkeeping: it updates which tournament a
// caller is viewing.
type SetCurrentTournament struct {
	TournamentID domain.TournamentID
}

func (SetCurrentTournament) isCommand() {}

// SetCurrentPhase is bookkeeping: it updates a container's active phase
// index.
type SetCurrentPhase struct {
	ContainerID domain.ContainerID
	PhaseIndex  int
}

func (SetCurrentPhase) isCommand() {}

// CreateKnockoutTournament explicitly materializes a parent's knockout
// child phase; idempotent if one already exists (§4.9).
type CreateKnockoutTournament struct {
	TournamentID domain.TournamentID
}

func (CreateKnockoutTournament) isCommand() {}

// CreateFinalsTournament explicitly materializes a parent's placement
// child phase; idempotent if one already exists (§4.9).
type CreateFinalsTournament struct {
	TournamentID domain.TournamentID
}

func (CreateFinalsTournament) isCommand() {}

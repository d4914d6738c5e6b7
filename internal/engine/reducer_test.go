package engine

import (
	"errors"
	"testing"

	"github.com/braccet/tournament-engine/internal/apperr"
	"github.com/braccet/tournament-engine/internal/domain"
)

func createRoundRobin(t *testing.T, state domain.ApplicationState, idGen domain.IDGenerator, clock domain.Clock) (domain.ApplicationState, domain.TournamentID) {
	t.Helper()
	tournamentID := domain.TournamentID("t1")
	cmd := CreateTournamentInput{
		ContainerID:     domain.ContainerID("c1"),
		TournamentID:    tournamentID,
		ContainerName:   "Test Container",
		Name:            "Test Round Robin",
		System:          domain.SystemRoundRobin,
		Teams:           makeTeams(4),
		SetsPerMatch:    1,
		PointsPerSet:    21,
		NumberOfCourts:  2,
		TiebreakerOrder: domain.TiebreakHeadToHeadFirst,
	}
	next, err := Reduce(state, cmd, idGen, clock)
	if err != nil {
		t.Fatalf("CreateTournamentInput: %v", err)
	}
	return next, tournamentID
}

func TestReduceCreateTournamentThenStart(t *testing.T) {
	idGen := &sequentialIDs{}
	clock := newTestClock()
	state := domain.NewApplicationState()

	state, tournamentID := createRoundRobin(t, state, idGen, clock)
	tour := state.Tournaments[tournamentID]
	if tour.Status != domain.TournamentConfiguration {
		t.Fatalf("status = %s, want configuration", tour.Status)
	}

	state, err := Reduce(state, StartTournament{TournamentID: tournamentID}, idGen, clock)
	if err != nil {
		t.Fatalf("StartTournament: %v", err)
	}
	tour = state.Tournaments[tournamentID]
	if tour.Status != domain.TournamentInProgress {
		t.Fatalf("status = %s, want in-progress", tour.Status)
	}
	if len(tour.Matches) != 6 {
		t.Fatalf("got %d matches, want 6 for 4 teams round robin", len(tour.Matches))
	}
	if len(tour.Standings) != 4 {
		t.Fatalf("got %d standings rows, want 4", len(tour.Standings))
	}
}

func TestReduceStartTournamentTwiceFails(t *testing.T) {
	idGen := &sequentialIDs{}
	clock := newTestClock()
	state := domain.NewApplicationState()
	state, tournamentID := createRoundRobin(t, state, idGen, clock)

	state, err := Reduce(state, StartTournament{TournamentID: tournamentID}, idGen, clock)
	if err != nil {
		t.Fatalf("first StartTournament: %v", err)
	}

	_, err = Reduce(state, StartTournament{TournamentID: tournamentID}, idGen, clock)
	if !errors.Is(err, apperr.ErrAlreadyStarted) {
		t.Fatalf("got err = %v, want ErrAlreadyStarted", err)
	}
}

func TestReduceCompleteMatchUpdatesStandings(t *testing.T) {
	idGen := &sequentialIDs{}
	clock := newTestClock()
	state := domain.NewApplicationState()
	state, tournamentID := createRoundRobin(t, state, idGen, clock)
	state, err := Reduce(state, StartTournament{TournamentID: tournamentID}, idGen, clock)
	if err != nil {
		t.Fatalf("StartTournament: %v", err)
	}

	tour := state.Tournaments[tournamentID]
	first := tour.Matches[0]

	cmd := CompleteMatch{
		TournamentID: tournamentID,
		MatchID:      first.ID,
		Scores:       []domain.SetScore{{TeamA: 21, TeamB: 15}},
	}
	state, err = Reduce(state, cmd, idGen, clock)
	if err != nil {
		t.Fatalf("CompleteMatch: %v", err)
	}

	tour = state.Tournaments[tournamentID]
	completedMatch := tour.MatchByID(first.ID)
	if completedMatch.Status != domain.MatchCompleted {
		t.Fatalf("match status = %s, want completed", completedMatch.Status)
	}
	if completedMatch.WinnerID == nil || *completedMatch.WinnerID != *first.TeamAID {
		t.Fatalf("winner = %v, want %s", completedMatch.WinnerID, *first.TeamAID)
	}

	var winnerEntry domain.StandingEntry
	for _, e := range tour.Standings {
		if e.TeamID == *first.TeamAID {
			winnerEntry = e
		}
	}
	if winnerEntry.Won != 1 {
		t.Fatalf("winner's Won = %d, want 1", winnerEntry.Won)
	}
}

func TestReduceCompleteMatchUnknownMatchIsNoOp(t *testing.T) {
	idGen := &sequentialIDs{}
	clock := newTestClock()
	state := domain.NewApplicationState()
	state, tournamentID := createRoundRobin(t, state, idGen, clock)
	state, err := Reduce(state, StartTournament{TournamentID: tournamentID}, idGen, clock)
	if err != nil {
		t.Fatalf("StartTournament: %v", err)
	}

	before := state
	_, err = Reduce(state, CompleteMatch{TournamentID: tournamentID, MatchID: "not-a-real-id"}, idGen, clock)
	if !errors.Is(err, apperr.ErrMatchNotFound) {
		t.Fatalf("got err = %v, want ErrMatchNotFound", err)
	}
	if len(state.Tournaments) != len(before.Tournaments) {
		t.Fatalf("state mutated on a failed command")
	}
}

func TestReduceEditMatchScoreCascadesDependents(t *testing.T) {
	idGen := &sequentialIDs{}
	clock := newTestClock()
	state := domain.NewApplicationState()

	tournamentID := domain.TournamentID("t1")
	teams := makeTeams(4)
	groups := []domain.Group{
		{ID: "g1", TeamIDs: []domain.TeamID{teams[0].ID, teams[1].ID}},
		{ID: "g2", TeamIDs: []domain.TeamID{teams[2].ID, teams[3].ID}},
	}
	cmd := CreateTournamentInput{
		ContainerID:  domain.ContainerID("c1"),
		TournamentID: tournamentID,
		Name:         "Knockout",
		System:       domain.SystemKnockout,
		Teams:        teams,
		SetsPerMatch: 1,
		PointsPerSet: 21,
		GroupPhaseConfig: &domain.GroupPhaseConfig{
			NumberOfGroups: 2,
			TeamsPerGroup:  2,
			Seeding:        domain.SeedingManual,
			Groups:         groups,
		},
	}
	state, err := Reduce(state, cmd, idGen, clock)
	if err != nil {
		t.Fatalf("CreateTournamentInput: %v", err)
	}
	state, err = Reduce(state, StartTournament{TournamentID: tournamentID}, idGen, clock)
	if err != nil {
		t.Fatalf("StartTournament: %v", err)
	}

	tour := state.Tournaments[tournamentID]
	var semis []*domain.Match
	for _, m := range tour.Matches {
		if m.KnockoutRound == domain.RoundSemifinal {
			semis = append(semis, m)
		}
	}
	if len(semis) != 2 {
		t.Fatalf("got %d semifinal matches, want 2", len(semis))
	}

	sf1 := semis[0]
	state, err = Reduce(state, CompleteMatch{
		TournamentID: tournamentID,
		MatchID:      sf1.ID,
		Scores:       []domain.SetScore{{TeamA: 21, TeamB: 10}},
	}, idGen, clock)
	if err != nil {
		t.Fatalf("CompleteMatch sf1: %v", err)
	}

	tour = state.Tournaments[tournamentID]
	sf1After := tour.MatchByID(sf1.ID)
	originalWinner := *sf1After.WinnerID

	// Flip the result: team B actually won. Any final match that already
	// consumed the original winner must reset to pending.
	state, err = Reduce(state, EditMatchScore{
		TournamentID: tournamentID,
		MatchID:      sf1.ID,
		Scores:       []domain.SetScore{{TeamA: 10, TeamB: 21}},
	}, idGen, clock)
	if err != nil {
		t.Fatalf("EditMatchScore: %v", err)
	}

	tour = state.Tournaments[tournamentID]
	sf1After = tour.MatchByID(sf1.ID)
	if sf1After.WinnerID == nil || *sf1After.WinnerID == originalWinner {
		t.Fatalf("winner unchanged after edit, want the opposite team")
	}

	for _, m := range tour.Matches {
		if m.KnockoutRound != domain.RoundFinal {
			continue
		}
		if (m.TeamAID != nil && *m.TeamAID == originalWinner) || (m.TeamBID != nil && *m.TeamBID == originalWinner) {
			t.Fatalf("final still holds the stale winner as a concrete team")
		}
	}
}

func TestReduceForfeitTeamCompletesRemainingMatchesForOpponent(t *testing.T) {
	idGen := &sequentialIDs{}
	clock := newTestClock()
	state := domain.NewApplicationState()
	state, tournamentID := createRoundRobin(t, state, idGen, clock)
	state, err := Reduce(state, StartTournament{TournamentID: tournamentID}, idGen, clock)
	if err != nil {
		t.Fatalf("StartTournament: %v", err)
	}

	tour := state.Tournaments[tournamentID]
	forfeiting := tour.Teams[0].ID

	state, err = Reduce(state, ForfeitTeam{TournamentID: tournamentID, TeamID: forfeiting}, idGen, clock)
	if err != nil {
		t.Fatalf("ForfeitTeam: %v", err)
	}

	tour = state.Tournaments[tournamentID]
	for _, m := range tour.Matches {
		involvesForfeiter := (m.TeamAID != nil && *m.TeamAID == forfeiting) || (m.TeamBID != nil && *m.TeamBID == forfeiting)
		if !involvesForfeiter {
			continue
		}
		if m.Status != domain.MatchCompleted {
			t.Fatalf("match %s involving forfeited team is %s, want completed", m.ID, m.Status)
		}
		if m.WinnerID == nil || *m.WinnerID == forfeiting {
			t.Fatalf("match %s winner = %v, want the opponent", m.ID, m.WinnerID)
		}
	}
}

func TestReduceResetTournamentReturnsToConfiguration(t *testing.T) {
	idGen := &sequentialIDs{}
	clock := newTestClock()
	state := domain.NewApplicationState()
	state, tournamentID := createRoundRobin(t, state, idGen, clock)
	state, err := Reduce(state, StartTournament{TournamentID: tournamentID}, idGen, clock)
	if err != nil {
		t.Fatalf("StartTournament: %v", err)
	}

	state, err = Reduce(state, ResetTournament{TournamentID: tournamentID}, idGen, clock)
	if err != nil {
		t.Fatalf("ResetTournament: %v", err)
	}

	tour := state.Tournaments[tournamentID]
	if tour.Status != domain.TournamentConfiguration {
		t.Fatalf("status = %s, want configuration", tour.Status)
	}
	if len(tour.Matches) != 0 {
		t.Fatalf("got %d matches after reset, want 0", len(tour.Matches))
	}
}

func TestReduceDeleteContainerRemovesAllPhases(t *testing.T) {
	idGen := &sequentialIDs{}
	clock := newTestClock()
	state := domain.NewApplicationState()
	state, tournamentID := createRoundRobin(t, state, idGen, clock)

	containerID := state.Tournaments[tournamentID].ContainerID
	state, err := Reduce(state, DeleteContainer{ContainerID: containerID}, idGen, clock)
	if err != nil {
		t.Fatalf("DeleteContainer: %v", err)
	}

	if _, ok := state.Tournaments[tournamentID]; ok {
		t.Fatalf("tournament still present after deleting its container")
	}
	if _, ok := state.Containers[containerID]; ok {
		t.Fatalf("container still present after delete")
	}
}

package engine

import (
	"testing"

	"github.com/braccet/tournament-engine/internal/domain"
)

func TestComputeStandingsRanksByWinsThenPointDiff(t *testing.T) {
	teams := makeTeams(3)
	a, b, c := teams[0].ID, teams[1].ID, teams[2].ID

	matches := []*domain.Match{
		completed(a, b, []domain.SetScore{{TeamA: 21, TeamB: 10}}, a),
		completed(a, c, []domain.SetScore{{TeamA: 21, TeamB: 19}}, a),
		completed(b, c, []domain.SetScore{{TeamA: 15, TeamB: 21}}, c),
	}

	entries := ComputeStandings(teams, matches, StandingsOptions{SetsPerMatch: 1, TiebreakerOrder: domain.TiebreakHeadToHeadFirst})
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	if entries[0].TeamID != a {
		t.Fatalf("first place = %s, want %s (2 wins)", entries[0].TeamID, a)
	}
	if entries[0].Won != 2 || entries[0].Lost != 0 {
		t.Fatalf("team a record = %d-%d, want 2-0", entries[0].Won, entries[0].Lost)
	}
}

func TestComputeStandingsHeadToHeadBreaksTieBeforePointDiff(t *testing.T) {
	teams := makeTeams(3)
	a, b, c := teams[0].ID, teams[1].ID, teams[2].ID

	// a and b each have one win, one loss, identical point diff, but a beat
	// b directly: head-to-head-first must rank a above b regardless.
	matches := []*domain.Match{
		completed(a, b, []domain.SetScore{{TeamA: 21, TeamB: 19}}, a),
		completed(b, c, []domain.SetScore{{TeamA: 21, TeamB: 19}}, b),
		completed(c, a, []domain.SetScore{{TeamA: 21, TeamB: 19}}, c),
	}

	entries := ComputeStandings(teams, matches, StandingsOptions{SetsPerMatch: 1, TiebreakerOrder: domain.TiebreakHeadToHeadFirst})
	rank := make(map[domain.TeamID]int, 3)
	for i, e := range entries {
		rank[e.TeamID] = i
	}
	if rank[a] >= rank[b] {
		t.Fatalf("expected a ranked above b via head-to-head, got order %v", entries)
	}
}

func TestComputeStandingsIgnoresIncompleteMatches(t *testing.T) {
	teams := makeTeams(2)
	a, b := teams[0].ID, teams[1].ID
	pending := &domain.Match{TeamAID: &a, TeamBID: &b, Status: domain.MatchScheduled}

	entries := ComputeStandings(teams, []*domain.Match{pending}, StandingsOptions{SetsPerMatch: 1})
	for _, e := range entries {
		if e.Played != 0 {
			t.Fatalf("team %s played = %d, want 0 for an unstarted tournament", e.TeamID, e.Played)
		}
	}
}

func TestComputeGroupStandingsTagsGroupAndRank(t *testing.T) {
	teams := makeTeams(4)
	g1 := domain.Group{ID: "g1", TeamIDs: []domain.TeamID{teams[0].ID, teams[1].ID}}
	g2 := domain.Group{ID: "g2", TeamIDs: []domain.TeamID{teams[2].ID, teams[3].ID}}

	matches := []*domain.Match{
		completed(teams[0].ID, teams[1].ID, []domain.SetScore{{TeamA: 21, TeamB: 10}}, teams[0].ID),
		completed(teams[2].ID, teams[3].ID, []domain.SetScore{{TeamA: 10, TeamB: 21}}, teams[3].ID),
	}

	entries := ComputeGroupStandings([]domain.Group{g1, g2}, teams, matches, StandingsOptions{SetsPerMatch: 1})
	if len(entries) != 4 {
		t.Fatalf("got %d entries, want 4", len(entries))
	}
	for _, e := range entries {
		if e.GroupID == "g1" && e.TeamID == teams[0].ID && e.GroupRank != 1 {
			t.Fatalf("team 0 group rank = %d, want 1", e.GroupRank)
		}
	}
}

func completed(a, b domain.TeamID, scores []domain.SetScore, winner domain.TeamID) *domain.Match {
	return &domain.Match{
		TeamAID:  &a,
		TeamBID:  &b,
		Scores:   scores,
		WinnerID: &winner,
		Status:   domain.MatchCompleted,
	}
}

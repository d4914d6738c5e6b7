package engine

import (
	"testing"

	"github.com/braccet/tournament-engine/internal/domain"
)

func TestAssignRefereesNeverAssignsAPlayingTeam(t *testing.T) {
	idGen := &sequentialIDs{}
	teams := makeTeams(6)
	a, b, c, d, e, f := teams[0].ID, teams[1].ID, teams[2].ID, teams[3].ID, teams[4].ID, teams[5].ID

	m1 := newBracketMatch(idGen, 1, 1, 1, domain.RoundQuarterfinal)
	m1.TeamAID, m1.TeamBID = &a, &b
	m2 := newBracketMatch(idGen, 1, 1, 2, domain.RoundQuarterfinal)
	m2.TeamAID, m2.TeamBID = &c, &d

	pool := []domain.TeamID{a, e, f} // a is a playing team in m1 and must never referee it
	AssignReferees([]*domain.Match{m1, m2}, pool, map[domain.TeamID]map[domain.TeamID]bool{})

	for _, m := range []*domain.Match{m1, m2} {
		if m.RefereeTeamID == nil {
			t.Fatalf("match %v got no referee despite an eligible pool", m.ID)
		}
		if *m.RefereeTeamID == *m.TeamAID || *m.RefereeTeamID == *m.TeamBID {
			t.Fatalf("match %v assigned a playing team as referee", m.ID)
		}
	}
}

func TestAssignRefereesPrefersNoPriorOpponentConflict(t *testing.T) {
	idGen := &sequentialIDs{}
	teams := makeTeams(4)
	a, b, c, d := teams[0].ID, teams[1].ID, teams[2].ID, teams[3].ID

	m := newBracketMatch(idGen, 1, 1, 1, domain.RoundQuarterfinal)
	m.TeamAID, m.TeamBID = &a, &b

	priorOpponents := map[domain.TeamID]map[domain.TeamID]bool{
		c: {a: true}, // c already faced a in the group phase
	}
	pool := []domain.TeamID{c, d}
	AssignReferees([]*domain.Match{m}, pool, priorOpponents)

	if m.RefereeTeamID == nil || *m.RefereeTeamID != d {
		t.Fatalf("referee = %v, want d (the conflict-free candidate)", m.RefereeTeamID)
	}
}

func TestAssignRefereesFallsBackWhenEveryCandidateConflicts(t *testing.T) {
	idGen := &sequentialIDs{}
	teams := makeTeams(3)
	a, b, c := teams[0].ID, teams[1].ID, teams[2].ID

	m := newBracketMatch(idGen, 1, 1, 1, domain.RoundQuarterfinal)
	m.TeamAID, m.TeamBID = &a, &b

	priorOpponents := map[domain.TeamID]map[domain.TeamID]bool{
		c: {a: true, b: true},
	}
	AssignReferees([]*domain.Match{m}, []domain.TeamID{c}, priorOpponents)
	if m.RefereeTeamID == nil || *m.RefereeTeamID != c {
		t.Fatalf("referee = %v, want best-effort fallback c", m.RefereeTeamID)
	}
}

func TestAssignRefereesLeavesUnassignedWhenPoolExhausted(t *testing.T) {
	idGen := &sequentialIDs{}
	teams := makeTeams(4)
	a, b, c, d := teams[0].ID, teams[1].ID, teams[2].ID, teams[3].ID

	m1 := newBracketMatch(idGen, 1, 1, 1, domain.RoundQuarterfinal)
	m1.TeamAID, m1.TeamBID = &a, &b
	m2 := newBracketMatch(idGen, 1, 1, 2, domain.RoundQuarterfinal)
	m2.TeamAID, m2.TeamBID = &c, &d

	// The sole pool candidate (a) is itself playing in m1, so scanning in
	// BracketPosition order leaves m1 unassigned; it remains free for m2.
	AssignReferees([]*domain.Match{m1, m2}, []domain.TeamID{a}, map[domain.TeamID]map[domain.TeamID]bool{})
	if m1.RefereeTeamID != nil {
		t.Fatalf("match 1 got a referee %v, want unassigned (its only pool candidate plays in it)", m1.RefereeTeamID)
	}
	if m2.RefereeTeamID == nil || *m2.RefereeTeamID != a {
		t.Fatalf("match 2 referee = %v, want a (the only pool candidate, free to officiate here)", m2.RefereeTeamID)
	}
}

func TestBuildPriorOpponentsIsSymmetric(t *testing.T) {
	teams := makeTeams(2)
	a, b := teams[0].ID, teams[1].ID
	matches := []*domain.Match{completed(a, b, []domain.SetScore{{TeamA: 21, TeamB: 10}}, a)}

	adj := BuildPriorOpponents(matches)
	if !adj[a][b] || !adj[b][a] {
		t.Fatalf("prior-opponents map not symmetric: %+v", adj)
	}
}

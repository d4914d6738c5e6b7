package engine

import (
	"testing"

	"github.com/braccet/tournament-engine/internal/domain"
)

func TestGenerateRoundRobinCoversEveryPairOnce(t *testing.T) {
	tests := []struct {
		name  string
		teams int
	}{
		{"four teams, even", 4},
		{"five teams, odd with bye", 5},
		{"two teams, minimum", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idGen := &sequentialIDs{}
			matches := GenerateRoundRobin(makeTeams(tt.teams), 2, 1, idGen)

			want := tt.teams * (tt.teams - 1) / 2
			if len(matches) != want {
				t.Fatalf("got %d matches, want %d", len(matches), want)
			}

			seen := make(map[[2]domain.TeamID]bool)
			for _, m := range matches {
				if m.TeamAID == nil || m.TeamBID == nil {
					t.Fatalf("match %s missing a concrete team", m.ID)
				}
				if m.Status != domain.MatchScheduled {
					t.Fatalf("match %s status = %s, want scheduled", m.ID, m.Status)
				}
				key := pairKey(*m.TeamAID, *m.TeamBID)
				if seen[key] {
					t.Fatalf("pair %v scheduled more than once", key)
				}
				seen[key] = true
			}
		})
	}
}

func TestGenerateRoundRobinCyclesCourts(t *testing.T) {
	idGen := &sequentialIDs{}
	matches := GenerateRoundRobin(makeTeams(4), 2, 1, idGen)
	for _, m := range matches {
		if m.CourtNumber < 1 || m.CourtNumber > 2 {
			t.Fatalf("match %s court = %d, want in [1,2]", m.ID, m.CourtNumber)
		}
	}
}

func TestGenerateRoundRobinSingleTeamIsNoOp(t *testing.T) {
	idGen := &sequentialIDs{}
	if matches := GenerateRoundRobin(makeTeams(1), 1, 1, idGen); matches != nil {
		t.Fatalf("got %d matches for 1 team, want none", len(matches))
	}
}

func pairKey(a, b domain.TeamID) [2]domain.TeamID {
	if a < b {
		return [2]domain.TeamID{a, b}
	}
	return [2]domain.TeamID{b, a}
}

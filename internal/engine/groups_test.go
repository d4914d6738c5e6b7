package engine

import (
	"testing"

	"github.com/braccet/tournament-engine/internal/domain"
)

func TestSnakeAssignDistributesSerpentine(t *testing.T) {
	// 8 teams, 4 groups: row 0 -> 0,1,2,3 assigned left-to-right; row 1 ->
	// 4,5,6,7 assigned right-to-left, so group 0 gets seeds {0,7}.
	groups := snakeAssign(8, 4)
	if len(groups) != 4 {
		t.Fatalf("got %d groups, want 4", len(groups))
	}
	if groups[0][0] != 0 || groups[0][1] != 7 {
		t.Fatalf("group 0 = %v, want [0 7]", groups[0])
	}
	if groups[3][0] != 3 || groups[3][1] != 4 {
		t.Fatalf("group 3 = %v, want [3 4]", groups[3])
	}
}

func TestAssignGroupsManualPassesThroughAsIs(t *testing.T) {
	idGen := &sequentialIDs{}
	teams := makeTeams(4)
	manual := []domain.Group{
		{ID: "g1", TeamIDs: []domain.TeamID{teams[0].ID, teams[2].ID}},
		{ID: "g2", TeamIDs: []domain.TeamID{teams[1].ID, teams[3].ID}},
	}
	got := AssignGroups(teams, 2, domain.SeedingManual, manual, idGen)
	if len(got) != 2 || got[0].ID != "g1" || got[1].ID != "g2" {
		t.Fatalf("manual assignment was not passed through unchanged: %+v", got)
	}
}

// TestGenerateGroupPhaseRaggedFinalGroup mirrors scenario S3: 15 teams split
// into 4 groups of teamsPerGroup=4 leaves three groups of 4 and one of 3,
// yielding 3*6 + 3 = 21 matches total.
func TestGenerateGroupPhaseRaggedFinalGroup(t *testing.T) {
	idGen := &sequentialIDs{}
	teams := makeTeams(15)
	groups := AssignGroups(teams, 4, domain.SeedingSnake, nil, idGen)

	sizes := make([]int, len(groups))
	total := 0
	for i, g := range groups {
		sizes[i] = len(g.TeamIDs)
		total += len(g.TeamIDs)
	}
	if total != 15 {
		t.Fatalf("groups hold %d teams total, want 15", total)
	}

	matches, standings := GenerateGroupPhase(groups, teams, 1, idGen)
	if len(matches) != 21 {
		t.Fatalf("got %d matches, want 21 (3 groups of 4 + 1 group of 3)", len(matches))
	}
	if len(standings) != 15 {
		t.Fatalf("got %d group standings rows, want 15", len(standings))
	}
}

func TestGenerateGroupPhaseInitializesRankByMembershipOrder(t *testing.T) {
	idGen := &sequentialIDs{}
	teams := makeTeams(4)
	groups := []domain.Group{{ID: "g1", TeamIDs: []domain.TeamID{teams[0].ID, teams[1].ID, teams[2].ID, teams[3].ID}}}

	_, standings := GenerateGroupPhase(groups, teams, 1, idGen)
	for i, s := range standings {
		if s.GroupRank != i+1 {
			t.Fatalf("standing %d rank = %d, want %d", i, s.GroupRank, i+1)
		}
	}
}

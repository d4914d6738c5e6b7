package engine

import (
	"testing"

	"github.com/braccet/tournament-engine/internal/domain"
)

func TestRankedRunnerUpGroupsOrdersByPointsThenDiff(t *testing.T) {
	groups := []domain.Group{{ID: "g0"}, {ID: "g1"}, {ID: "g2"}}
	standings := []domain.GroupStandingEntry{
		{StandingEntry: domain.StandingEntry{TeamID: "a1", Points: 2}, GroupID: "g0", GroupRank: 1},
		{StandingEntry: domain.StandingEntry{TeamID: "a2", Points: 1, PointsWon: 21, PointsLost: 1}, GroupID: "g0", GroupRank: 2},
		{StandingEntry: domain.StandingEntry{TeamID: "b1", Points: 2}, GroupID: "g1", GroupRank: 1},
		{StandingEntry: domain.StandingEntry{TeamID: "b2", Points: 1, PointsWon: 10, PointsLost: 9}, GroupID: "g1", GroupRank: 2},
		{StandingEntry: domain.StandingEntry{TeamID: "c1", Points: 3}, GroupID: "g2", GroupRank: 1},
		{StandingEntry: domain.StandingEntry{TeamID: "c2", Points: 2, PointsWon: 5, PointsLost: 0}, GroupID: "g2", GroupRank: 2},
	}

	ranked := rankedRunnerUpGroups(groups, standings)
	if len(ranked) != 3 {
		t.Fatalf("got %d ranked runner-up groups, want 3", len(ranked))
	}
	// g2's 2nd has the most points (2), so it leads regardless of diff.
	if ranked[0] != 2 {
		t.Fatalf("best runner-up group = %d, want 2 (highest points)", ranked[0])
	}
	// g0 and g1 tie on points (1); g0's runner-up has the better diff (+20 vs +1).
	if ranked[1] != 0 || ranked[2] != 1 {
		t.Fatalf("tie-break order = %v, want [0 1]", ranked[1:])
	}
}

// TestResolveDynamicGroupRolesThreeGroups mirrors the 3-group SSVB shape:
// the group with the best runner-up plays itself (1v2), the other two
// groups' winners play each other.
func TestResolveDynamicGroupRolesThreeGroups(t *testing.T) {
	idGen := &sequentialIDs{}
	built, err := GenerateSSVBBracket(3, 0, false, idGen)
	if err != nil {
		t.Fatalf("GenerateSSVBBracket: %v", err)
	}

	groups := []domain.Group{{ID: "g0"}, {ID: "g1"}, {ID: "g2"}}
	standings := []domain.GroupStandingEntry{
		{StandingEntry: domain.StandingEntry{TeamID: "a1"}, GroupID: "g0", GroupRank: 1},
		{StandingEntry: domain.StandingEntry{TeamID: "a2", Points: 3}, GroupID: "g0", GroupRank: 2},
		{StandingEntry: domain.StandingEntry{TeamID: "b1"}, GroupID: "g1", GroupRank: 1},
		{StandingEntry: domain.StandingEntry{TeamID: "b2", Points: 1}, GroupID: "g1", GroupRank: 2},
		{StandingEntry: domain.StandingEntry{TeamID: "c1"}, GroupID: "g2", GroupRank: 1},
		{StandingEntry: domain.StandingEntry{TeamID: "c2", Points: 0}, GroupID: "g2", GroupRank: 2},
	}

	resolveDynamicGroupRoles(built, 3, groups, standings)

	var sfSelf, sfOther *domain.Match
	for _, m := range built {
		if m.KnockoutRound != domain.RoundSemifinal {
			continue
		}
		if sfSelf == nil {
			sfSelf = m
		} else {
			sfOther = m
		}
	}
	if sfSelf == nil || sfOther == nil {
		t.Fatalf("expected two semifinal matches")
	}

	// sfSelf is the first-generated semifinal: both sides should now
	// resolve to group 0 (the best runner-up, g0's points=3 is highest).
	if sfSelf.TeamASource.GroupIndex != 0 || sfSelf.TeamBSource.GroupIndex != 0 {
		t.Fatalf("self-group semifinal sides = %d/%d, want 0/0", sfSelf.TeamASource.GroupIndex, sfSelf.TeamBSource.GroupIndex)
	}
	// sfOther's sides should resolve to the two remaining groups (1 and 2),
	// order determined by which of them ranks better: here g1 (points=1)
	// outranks g2 (points=0), so g1 comes first.
	if sfOther.TeamASource.GroupIndex != 1 || sfOther.TeamBSource.GroupIndex != 2 {
		t.Fatalf("other-groups semifinal sides = %d/%d, want 1/2", sfOther.TeamASource.GroupIndex, sfOther.TeamBSource.GroupIndex)
	}
}

func TestEliminatedTeamIDsSkipsSizeThreeGroups(t *testing.T) {
	groups := []domain.Group{
		{ID: "g0", TeamIDs: []domain.TeamID{"t1", "t2", "t3"}},
		{ID: "g1", TeamIDs: []domain.TeamID{"t4", "t5", "t6", "t7"}},
	}
	parent := &domain.Tournament{
		GroupPhaseConfig: &domain.GroupPhaseConfig{Groups: groups},
		GroupStandings: []domain.GroupStandingEntry{
			{StandingEntry: domain.StandingEntry{TeamID: "t3"}, GroupID: "g0", GroupRank: 3},
			{StandingEntry: domain.StandingEntry{TeamID: "t7"}, GroupID: "g1", GroupRank: 4},
		},
	}
	idMap := map[domain.TeamID]domain.TeamID{"t3": "new-t3", "t7": "new-t7"}

	out := eliminatedTeamIDs(parent, domain.SystemKnockout, idMap)
	if len(out) != 1 || out[0] != "new-t7" {
		t.Fatalf("eliminated = %v, want only new-t7 (size-3 group g0 eliminates no one)", out)
	}
}

func TestEliminatedTeamIDsEmptyForNonKnockoutChild(t *testing.T) {
	parent := &domain.Tournament{GroupPhaseConfig: &domain.GroupPhaseConfig{}}
	if out := eliminatedTeamIDs(parent, domain.SystemPlacementTree, nil); out != nil {
		t.Fatalf("got %v, want nil for a placement-tree child (no one is eliminated)", out)
	}
}

func TestApplyPlaceholdersRendersGroupAndDependencySources(t *testing.T) {
	idGen := &sequentialIDs{}
	dep := newBracketMatch(idGen, 1, 1, 1, domain.RoundSemifinal)
	final := newBracketMatch(idGen, 2, 0, 1, domain.RoundFinal)
	sourceFromGroup(final, 'A', 0, 1)
	dependOnMatch(final, 'B', dep.ID, domain.ResultWinner)

	applyPlaceholders([]*domain.Match{dep, final})

	if final.PlaceholderA != "1st, Group 1" {
		t.Fatalf("placeholder A = %q, want %q", final.PlaceholderA, "1st, Group 1")
	}
	if final.PlaceholderB != "Winner of Match 1" {
		t.Fatalf("placeholder B = %q, want %q", final.PlaceholderB, "Winner of Match 1")
	}
	if final.PlaceholderReferee != "TBD" {
		t.Fatalf("placeholder referee = %q, want TBD", final.PlaceholderReferee)
	}
}

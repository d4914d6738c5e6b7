package engine

import (
	"sort"

	"github.com/braccet/tournament-engine/internal/domain"
)

// AssignGroups partitions teams into groups (C4's assignment step). Snake
// seeding distributes seeds serpentine-fashion across groups; manual
// seeding accepts the supplied group membership as-is (the caller passes
// it through manualGroups). When the team count doesn't divide evenly
// (dropouts), the groups the last, partial serpentine row does not reach
// hold one team fewer: the final groups when that row runs forward, the
// first groups when it runs in reverse.
func AssignGroups(teams []domain.Team, numberOfGroups int, seeding domain.Seeding, manualGroups []domain.Group, idGen domain.IDGenerator) []domain.Group {
	if seeding == domain.SeedingManual {
		return manualGroups
	}

	sorted := append([]domain.Team(nil), teams...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SeedPosition < sorted[j].SeedPosition
	})

	assignment := snakeAssign(len(sorted), numberOfGroups)

	groups := make([]domain.Group, numberOfGroups)
	for gi := range groups {
		groups[gi].ID = domain.GroupID(idGen.NewID())
		for _, seedIdx := range assignment[gi] {
			groups[gi].TeamIDs = append(groups[gi].TeamIDs, sorted[seedIdx].ID)
		}
	}
	return groups
}

// GenerateGroupPhase generates the full match set of a group-phase
// Tournament: every group's round-robin, concatenated, with match numbers
// and group standings initialized at GroupRank = index+1.
func GenerateGroupPhase(groups []domain.Group, teams []domain.Team, numberOfCourts int, idGen domain.IDGenerator) ([]*domain.Match, []domain.GroupStandingEntry) {
	teamByID := make(map[domain.TeamID]domain.Team, len(teams))
	for _, t := range teams {
		teamByID[t.ID] = t
	}

	var matches []*domain.Match
	var standings []domain.GroupStandingEntry
	matchNumber := 1

	for _, g := range groups {
		groupTeams := make([]domain.Team, 0, len(g.TeamIDs))
		for i, id := range g.TeamIDs {
			t := teamByID[id]
			standings = append(standings, domain.GroupStandingEntry{
				StandingEntry: domain.StandingEntry{TeamID: id},
				GroupID:       g.ID,
				GroupRank:     i + 1,
			})
			groupTeams = append(groupTeams, t)
		}

		groupMatches := GenerateRoundRobin(groupTeams, numberOfCourts, matchNumber, idGen)
		matches = append(matches, groupMatches...)
		matchNumber += len(groupMatches)
	}

	return matches, standings
}

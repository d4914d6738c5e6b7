package engine

import (
	"sort"

	"github.com/braccet/tournament-engine/internal/domain"
)

// GenerateRoundRobin produces the full match set for a single group of
// teams (C2): exactly N*(N-1)/2 matches, each unordered pair covered once,
// round numbers assigned via the circle method (one team fixed, the rest
// rotate) and court numbers cycling 1..numberOfCourts. Every match comes
// back scheduled with both teams concrete.
func GenerateRoundRobin(teams []domain.Team, numberOfCourts int, startingMatchNumber int, idGen domain.IDGenerator) []*domain.Match {
	if len(teams) < 2 {
		return nil
	}
	if numberOfCourts < 1 {
		numberOfCourts = 1
	}

	sorted := append([]domain.Team(nil), teams...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SeedPosition < sorted[j].SeedPosition
	})

	n := len(sorted)
	hasBye := n%2 != 0
	if hasBye {
		n++
	}

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}

	numRounds := n - 1
	matchesPerRound := n / 2

	var matches []*domain.Match
	matchNumber := startingMatchNumber
	court := 0

	for round := 1; round <= numRounds; round++ {
		for i := 0; i < matchesPerRound; i++ {
			home := indices[i]
			away := indices[n-1-i]
			if hasBye && (home == n-1 || away == n-1) {
				continue
			}

			homeID, awayID := sorted[home].ID, sorted[away].ID
			matches = append(matches, &domain.Match{
				ID:          domain.MatchID(idGen.NewID()),
				Round:       round,
				MatchNumber: matchNumber,
				CourtNumber: court%numberOfCourts + 1,
				TeamAID:     &homeID,
				TeamBID:     &awayID,
				Status:      domain.MatchScheduled,
			})
			matchNumber++
			court++
		}
		rotate(indices)
	}

	return matches
}

// rotate rotates every index but the first one position forward, the
// "circle method" step of round-robin scheduling.
func rotate(indices []int) {
	n := len(indices)
	if n <= 2 {
		return
	}
	last := indices[n-1]
	for i := n - 1; i > 1; i-- {
		indices[i] = indices[i-1]
	}
	indices[1] = last
}

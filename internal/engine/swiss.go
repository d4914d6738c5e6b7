package engine

import (
	"sort"

	"github.com/braccet/tournament-engine/internal/domain"
)

// playedPair is an unordered pair of team ids that have already met.
type playedPair struct {
	a, b domain.TeamID
}

func newPlayedPair(a, b domain.TeamID) playedPair {
	if a > b {
		a, b = b, a
	}
	return playedPair{a, b}
}

// GenerateSwissRound generates round k's pairings from the current
// standings and match history (C3):
//  1. sort teams by points, then set diff, then point diff
//  2. build the played-pairs set from every prior match
//  3. greedily pair from the top, skipping opponents already played
//  4. pair any unpaired residue top-down, accepting a repeat rather than
//     discarding the round
//  5. on an odd team count, leave one team unpaired this round
//
// Emits scheduled matches with match numbers continuing from
// startingMatchNumber, Round = k, and court numbers cycling up to
// numberOfCourts.
func GenerateSwissRound(teams []domain.Team, standings []domain.StandingEntry, priorMatches []*domain.Match, round, numberOfCourts, startingMatchNumber int, idGen domain.IDGenerator) []*domain.Match {
	if len(teams) < 2 {
		return nil
	}
	if numberOfCourts < 1 {
		numberOfCourts = 1
	}

	order := swissOrder(teams, standings)

	played := make(map[playedPair]bool)
	for _, m := range priorMatches {
		if m.TeamAID != nil && m.TeamBID != nil {
			played[newPlayedPair(*m.TeamAID, *m.TeamBID)] = true
		}
	}

	paired := make(map[domain.TeamID]bool, len(order))
	var pairs [][2]domain.TeamID

	for i, t := range order {
		if paired[t] {
			continue
		}
		for j := i + 1; j < len(order); j++ {
			opp := order[j]
			if paired[opp] {
				continue
			}
			if played[newPlayedPair(t, opp)] {
				continue
			}
			pairs = append(pairs, [2]domain.TeamID{t, opp})
			paired[t] = true
			paired[opp] = true
			break
		}
	}

	// Residue: whoever is still unpaired (all their candidates were
	// repeats) gets paired top-down among themselves, accepting a repeat.
	var residue []domain.TeamID
	for _, t := range order {
		if !paired[t] {
			residue = append(residue, t)
		}
	}
	for len(residue) >= 2 {
		pairs = append(pairs, [2]domain.TeamID{residue[0], residue[1]})
		residue = residue[2:]
	}
	// residue now has 0 or 1 team left: an odd count leaves one bye, no
	// match generated for it.

	var matches []*domain.Match
	matchNumber := startingMatchNumber
	court := 0
	for _, p := range pairs {
		a, b := p[0], p[1]
		matches = append(matches, &domain.Match{
			ID:          domain.MatchID(idGen.NewID()),
			Round:       round,
			MatchNumber: matchNumber,
			CourtNumber: court%numberOfCourts + 1,
			TeamAID:     &a,
			TeamBID:     &b,
			Status:      domain.MatchScheduled,
		})
		matchNumber++
		court++
	}
	return matches
}

// swissOrder sorts teams by points, then set diff, then point diff
// descending, using the supplied standings (falling back to seed order for
// any team the standings don't cover, e.g. round 1 with no history yet).
func swissOrder(teams []domain.Team, standings []domain.StandingEntry) []domain.TeamID {
	byTeam := make(map[domain.TeamID]domain.StandingEntry, len(standings))
	for _, s := range standings {
		byTeam[s.TeamID] = s
	}

	sorted := append([]domain.Team(nil), teams...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SeedPosition < sorted[j].SeedPosition
	})

	ids := make([]domain.TeamID, len(sorted))
	for i, t := range sorted {
		ids[i] = t.ID
	}

	sort.SliceStable(ids, func(i, j int) bool {
		si, oki := byTeam[ids[i]]
		sj, okj := byTeam[ids[j]]
		if !oki || !okj {
			return false
		}
		if si.Points != sj.Points {
			return si.Points > sj.Points
		}
		if si.SetDiff() != sj.SetDiff() {
			return si.SetDiff() > sj.SetDiff()
		}
		return si.PointDiff() > sj.PointDiff()
	})

	return ids
}

package engine

import (
	"sort"

	"github.com/braccet/tournament-engine/internal/domain"
)

// BuildPriorOpponents returns a symmetric adjacency set of every pair of
// teams that met in a completed match: the group-phase "who has faced
// whom" table C7 consults to avoid assigning a referee that already
// played one of the two teams it would officiate.
func BuildPriorOpponents(matches []*domain.Match) map[domain.TeamID]map[domain.TeamID]bool {
	adj := make(map[domain.TeamID]map[domain.TeamID]bool)
	mark := func(a, b domain.TeamID) {
		if adj[a] == nil {
			adj[a] = make(map[domain.TeamID]bool)
		}
		adj[a][b] = true
	}
	for _, m := range matches {
		if m.Status != domain.MatchCompleted || !m.HasConcreteTeams() {
			continue
		}
		mark(*m.TeamAID, *m.TeamBID)
		mark(*m.TeamBID, *m.TeamAID)
	}
	return adj
}

// AssignReferees implements C7 for one round of SSVB-family knockout play.
// Scanning pool in the order given, for each match (sorted by
// BracketPosition for determinism) it:
//  1. prefers a referee that never faced either playing team in the group
//     phase,
//  2. never reuses a referee already assigned within this round,
//  3. falls back to any unused candidate if no conflict-free one remains,
//  4. leaves the match unassigned if the pool is exhausted.
//
// This is a greedy best-fit, not an optimal assignment, and deterministic
// given the same pool order and prior-opponent map (§4.8).
func AssignReferees(roundMatches []*domain.Match, pool []domain.TeamID, priorOpponents map[domain.TeamID]map[domain.TeamID]bool) {
	used := make(map[domain.TeamID]bool, len(pool))

	matches := append([]*domain.Match(nil), roundMatches...)
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].BracketPosition < matches[j].BracketPosition
	})

	for _, m := range matches {
		if m.TeamAID == nil || m.TeamBID == nil {
			continue
		}
		var fallback *domain.TeamID
		for i := range pool {
			candidate := pool[i]
			if used[candidate] || candidate == *m.TeamAID || candidate == *m.TeamBID {
				continue
			}
			if fallback == nil {
				c := candidate
				fallback = &c
			}
			if !priorOpponents[candidate][*m.TeamAID] && !priorOpponents[candidate][*m.TeamBID] {
				ref := candidate
				m.RefereeTeamID = &ref
				used[ref] = true
				fallback = nil
				break
			}
		}
		if m.RefereeTeamID == nil && fallback != nil {
			m.RefereeTeamID = fallback
			used[*fallback] = true
		}
	}
}

// refereePoolForRound returns the eligible referee pool for one SSVB round
// (§4.8): eliminated group-losers for intermediate/quarterfinal, the
// intermediate-round losers for semifinal, the quarterfinal losers for
// final and third-place. Returns nil for any other round; those carry no
// referee assignment.
func refereePoolForRound(kind domain.KnockoutRound, eliminated []domain.TeamID, matches []*domain.Match) []domain.TeamID {
	switch kind {
	case domain.RoundIntermediate, domain.RoundQuarterfinal:
		return eliminated
	case domain.RoundSemifinal:
		return losersOf(matches, domain.RoundIntermediate)
	case domain.RoundFinal, domain.RoundThirdPlace:
		return losersOf(matches, domain.RoundQuarterfinal)
	default:
		return nil
	}
}

// losersOf collects, in BracketPosition order, the losing team of every
// completed match of the given knockout round.
func losersOf(matches []*domain.Match, kind domain.KnockoutRound) []domain.TeamID {
	var round []*domain.Match
	for _, m := range matches {
		if m.KnockoutRound == kind {
			round = append(round, m)
		}
	}
	sort.SliceStable(round, func(i, j int) bool { return round[i].BracketPosition < round[j].BracketPosition })

	var losers []domain.TeamID
	for _, m := range round {
		if m.Status != domain.MatchCompleted || m.WinnerID == nil {
			continue
		}
		if loser := m.OtherTeam(*m.WinnerID); loser != nil {
			losers = append(losers, *loser)
		}
	}
	return losers
}

// UpdateRefereesForRound recomputes referee assignments for every SSVB
// match of the given round once that round's prerequisites are known: the
// intermediate/quarterfinal pool is fixed at phase populate time, but the
// semifinal and final/third-place pools only exist once the previous round
// has finished, so the reducer calls this again at each round boundary
// (§4.9 COMPLETE_MATCH, "if a round just completed").
func UpdateRefereesForRound(matches []*domain.Match, kind domain.KnockoutRound, eliminated []domain.TeamID, priorOpponents map[domain.TeamID]map[domain.TeamID]bool) {
	pool := refereePoolForRound(kind, eliminated, matches)
	if pool == nil {
		return
	}
	var round []*domain.Match
	for _, m := range matches {
		if m.KnockoutRound == kind {
			round = append(round, m)
		}
	}
	AssignReferees(round, pool, priorOpponents)
}

// RoundIsComplete reports whether every match of the given knockout round
// in matches has left the scheduled/in-progress states.
func RoundIsComplete(matches []*domain.Match, kind domain.KnockoutRound) bool {
	found := false
	for _, m := range matches {
		if m.KnockoutRound != kind {
			continue
		}
		found = true
		if m.Status == domain.MatchScheduled || m.Status == domain.MatchInProgress {
			return false
		}
	}
	return found
}

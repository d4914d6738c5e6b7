package engine

import "github.com/braccet/tournament-engine/internal/domain"

// newBracketMatch creates a pending knockout-family match with no resolved
// participants yet; the caller wires TeamASource/TeamBSource and/or
// DependsOn immediately afterward.
func newBracketMatch(idGen domain.IDGenerator, round, matchNumber, bracketPosition int, kind domain.KnockoutRound) *domain.Match {
	return &domain.Match{
		ID:              domain.MatchID(idGen.NewID()),
		Round:           round,
		MatchNumber:     matchNumber,
		BracketPosition: bracketPosition,
		KnockoutRound:   kind,
		Status:          domain.MatchPending,
	}
}

// dependOnMatch wires one side of m to the winner or loser of predecessor.
func dependOnMatch(m *domain.Match, side byte, predecessor domain.MatchID, result domain.ResultKind) {
	if m.DependsOn == nil {
		m.DependsOn = &domain.DependsOn{}
	}
	ref := &domain.MatchRef{MatchID: predecessor, Result: result}
	if side == 'A' {
		m.DependsOn.TeamA = ref
	} else {
		m.DependsOn.TeamB = ref
	}
}

// sourceFromGroup wires one side of m to a group-standings lookup.
func sourceFromGroup(m *domain.Match, side byte, groupIndex, rank int) {
	src := &domain.TeamSource{Kind: domain.SourceFromGroup, GroupIndex: groupIndex, Rank: rank}
	if side == 'A' {
		m.TeamASource = src
	} else {
		m.TeamBSource = src
	}
}

// sourceFromStanding wires one side of m to a flat-standings lookup.
func sourceFromStanding(m *domain.Match, side byte, rank int) {
	src := &domain.TeamSource{Kind: domain.SourceFromStanding, Rank: rank}
	if side == 'A' {
		m.TeamASource = src
	} else {
		m.TeamBSource = src
	}
}

// chain renumbers MatchNumber sequentially across the given matches,
// continuing from start, preserving relative order. Bracket generators
// build matches round-by-round; this gives the whole set tournament-wide
// sequential numbers once every round has been produced.
func chain(matches []*domain.Match, start int) {
	n := start
	for _, m := range matches {
		m.MatchNumber = n
		n++
	}
}

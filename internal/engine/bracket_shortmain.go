package engine

import "github.com/braccet/tournament-engine/internal/domain"

// GenerateShortMainRound builds the beachl-short-main hybrid bracket
// (§4.5.3) for the canonical 4-group/16-team configuration: a
// qualification round, an upper-half 8-team knockout (quarter/semi/final
// plus third-place), and three explicit 4-team placement mini-brackets
// for positions 5-8, 9-12 and 13-16: each mini-bracket is itself a
// complete 2-semifinal/final/3rd-place shape so it resolves all four of
// its own placements without ties. 4 + (4+2+1+1) + 4 + 4 + 4 = 24 matches,
// matching §4.5.3's count exactly.
//
// The source left this bracket's internal round numbering underspecified
// (§9 Open Questions); this implementation fixes qualification as round
// 1, the top bracket as round 2 (quarterfinal) through round 4 (final/3rd
// place round), and each placement mini-bracket as round 2 (its
// semifinals) and round 3 (its final/3rd place pair).
func GenerateShortMainRound(idGen domain.IDGenerator) []*domain.Match {
	qualification := make([]*domain.Match, 4)
	for i := 0; i < 4; i++ {
		opponentGroup := (4 - 1 - i + 4) % 4
		m := newBracketMatch(idGen, 1, 0, i+1, domain.RoundQualification)
		sourceFromGroup(m, 'A', i, 2)
		sourceFromGroup(m, 'B', opponentGroup, 3)
		qualification[i] = m
	}

	topQF := make([]*domain.Match, 4)
	for i := 0; i < 4; i++ {
		m := newBracketMatch(idGen, 2, 0, i+1, domain.RoundTopQuarterfinal)
		sourceFromGroup(m, 'A', i, 1)
		dependOnMatch(m, 'B', qualification[(i+1)%4].ID, domain.ResultWinner)
		topQF[i] = m
	}

	topSFA := newBracketMatch(idGen, 3, 0, 1, domain.RoundTopSemifinal)
	dependOnMatch(topSFA, 'A', topQF[0].ID, domain.ResultWinner)
	dependOnMatch(topSFA, 'B', topQF[1].ID, domain.ResultWinner)

	topSFB := newBracketMatch(idGen, 3, 0, 2, domain.RoundTopSemifinal)
	dependOnMatch(topSFB, 'A', topQF[2].ID, domain.ResultWinner)
	dependOnMatch(topSFB, 'B', topQF[3].ID, domain.ResultWinner)

	topThird := newBracketMatch(idGen, 4, 0, 1, domain.RoundThirdPlace)
	dependOnMatch(topThird, 'A', topSFA.ID, domain.ResultLoser)
	dependOnMatch(topThird, 'B', topSFB.ID, domain.ResultLoser)
	topThird.PlayoffForPlace = 3

	topFinal := newBracketMatch(idGen, 4, 0, 2, domain.RoundTopFinal)
	dependOnMatch(topFinal, 'A', topSFA.ID, domain.ResultWinner)
	dependOnMatch(topFinal, 'B', topSFB.ID, domain.ResultWinner)
	topFinal.PlayoffForPlace = 1

	placement58 := miniPlacementBracket(idGen, domain.RoundPlacement58, 5,
		func(m *domain.Match, side byte) { dependOnMatch(m, side, topQF[0].ID, domain.ResultLoser) },
		func(m *domain.Match, side byte) { dependOnMatch(m, side, topQF[1].ID, domain.ResultLoser) },
		func(m *domain.Match, side byte) { dependOnMatch(m, side, topQF[2].ID, domain.ResultLoser) },
		func(m *domain.Match, side byte) { dependOnMatch(m, side, topQF[3].ID, domain.ResultLoser) },
	)

	placement912 := miniPlacementBracket(idGen, domain.RoundPlacement912, 9,
		func(m *domain.Match, side byte) { dependOnMatch(m, side, qualification[0].ID, domain.ResultLoser) },
		func(m *domain.Match, side byte) { dependOnMatch(m, side, qualification[1].ID, domain.ResultLoser) },
		func(m *domain.Match, side byte) { dependOnMatch(m, side, qualification[2].ID, domain.ResultLoser) },
		func(m *domain.Match, side byte) { dependOnMatch(m, side, qualification[3].ID, domain.ResultLoser) },
	)

	placement1316 := miniPlacementBracket(idGen, domain.RoundPlacement1316, 13,
		func(m *domain.Match, side byte) { sourceFromGroup(m, side, 0, 4) },
		func(m *domain.Match, side byte) { sourceFromGroup(m, side, 1, 4) },
		func(m *domain.Match, side byte) { sourceFromGroup(m, side, 2, 4) },
		func(m *domain.Match, side byte) { sourceFromGroup(m, side, 3, 4) },
	)

	var matches []*domain.Match
	matches = append(matches, qualification...)
	matches = append(matches, topQF...)
	matches = append(matches, topSFA, topSFB, topThird, topFinal)
	matches = append(matches, placement58...)
	matches = append(matches, placement912...)
	matches = append(matches, placement1316...)
	chain(matches, 1)
	return matches
}

// miniPlacementBracket builds the 4-team/4-match shape shared by the
// 5-8, 9-12 and 13-16 placement bands: two semifinals wired by the given
// source functions, a final deciding basePlace/basePlace+1, and a
// consolation match deciding basePlace+2/basePlace+3.
func miniPlacementBracket(idGen domain.IDGenerator, kind domain.KnockoutRound, basePlace int, sourceA, sourceB, sourceC, sourceD func(m *domain.Match, side byte)) []*domain.Match {
	sf1 := newBracketMatch(idGen, 2, 0, 1, kind)
	sourceA(sf1, 'A')
	sourceB(sf1, 'B')

	sf2 := newBracketMatch(idGen, 2, 0, 2, kind)
	sourceC(sf2, 'A')
	sourceD(sf2, 'B')

	final := newBracketMatch(idGen, 3, 0, 1, kind)
	dependOnMatch(final, 'A', sf1.ID, domain.ResultWinner)
	dependOnMatch(final, 'B', sf2.ID, domain.ResultWinner)
	final.PlayoffForPlace = basePlace

	consolation := newBracketMatch(idGen, 3, 0, 2, kind)
	dependOnMatch(consolation, 'A', sf1.ID, domain.ResultLoser)
	dependOnMatch(consolation, 'B', sf2.ID, domain.ResultLoser)
	consolation.PlayoffForPlace = basePlace + 2

	return []*domain.Match{sf1, sf2, final, consolation}
}

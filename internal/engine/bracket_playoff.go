package engine

import "github.com/braccet/tournament-engine/internal/domain"

// GeneratePlayoffLadder builds the fixed 4-team playoff ladder (§4.5.4-style
// downstream phase for a round-robin or Swiss parent): semifinal 1 is flat
// standing 1 versus 4, semifinal 2 is 2 versus 3, then the usual
// final/third-place pair. Scoped deliberately to the 4-team shape rather
// than a generic arbitrary-power-of-two recursive ladder: every pack
// example that plays a "top N" playoff after a round-robin uses this exact
// 1v4/2v3 shape, and SPEC_FULL.md names no larger one. See DESIGN.md.
func GeneratePlayoffLadder(thirdPlace bool, idGen domain.IDGenerator) []*domain.Match {
	sf1 := newBracketMatch(idGen, 1, 0, 1, domain.RoundSemifinal)
	sourceFromStanding(sf1, 'A', 1)
	sourceFromStanding(sf1, 'B', 4)

	sf2 := newBracketMatch(idGen, 1, 0, 2, domain.RoundSemifinal)
	sourceFromStanding(sf2, 'A', 2)
	sourceFromStanding(sf2, 'B', 3)

	matches := []*domain.Match{sf1, sf2}
	matches = append(matches, finalAndThirdPlace(idGen, 2, sf1.ID, sf2.ID, thirdPlace)...)
	chain(matches, 1)
	return matches
}

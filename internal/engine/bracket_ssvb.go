package engine

import (
	"github.com/braccet/tournament-engine/internal/apperr"
	"github.com/braccet/tournament-engine/internal/domain"
)

// Sentinel TeamSource.GroupIndex values used only within this file, for the
// two SSVB shapes (3-group and 5-8-group) whose pairing depends on which
// group's runner-up finishes best: information that does not exist until
// the group phase's standings are final. Generation happens at the child
// phase's materialization (C8, "at start"), before the parent has played a
// single match, so the shape cannot be pinned to a literal group index yet.
// resolveDynamicGroupRoles (orchestrator.go) rewrites these to real group
// indices once the parent's final GroupStandings are known, before the
// normal TeamSource resolution pass runs. This keeps TeamSourceKind itself
// a closed, two-variant tag (group/standing); only the *value* carried
// when Kind == SourceFromGroup is provisional until populate time.
const (
	roleBestSecond      = -1 // the single best-placed group runner-up (3-group case)
	roleBestSecondStart = -100
)

func roleNthBestSecond(n int) int { return roleBestSecondStart - n } // n = 1-based rank among runners-up

// GenerateSSVBBracket produces the SSVB-family knockout bracket (§4.5.1)
// for numberOfGroups in [2,8]. teamsPerGroup only matters for the 4-group
// shape, to pick the intermediate-round rank pairing (2,3) vs (3,4).
func GenerateSSVBBracket(numberOfGroups, teamsPerGroup int, thirdPlace bool, idGen domain.IDGenerator) ([]*domain.Match, error) {
	switch {
	case numberOfGroups < 2 || numberOfGroups > 8:
		return nil, apperr.ErrUnsupportedGroupCount
	case numberOfGroups == 2:
		return ssvb2Groups(thirdPlace, idGen), nil
	case numberOfGroups == 3:
		return ssvb3Groups(thirdPlace, idGen), nil
	case numberOfGroups == 4:
		return ssvb4Groups(teamsPerGroup, thirdPlace, idGen), nil
	default:
		return ssvb5To8Groups(numberOfGroups, thirdPlace, idGen), nil
	}
}

// ssvb2Groups: two semifinals (1A-2B, 1B-2A), optional third-place, final.
func ssvb2Groups(thirdPlace bool, idGen domain.IDGenerator) []*domain.Match {
	sf1 := newBracketMatch(idGen, 1, 0, 1, domain.RoundSemifinal)
	sourceFromGroup(sf1, 'A', 0, 1)
	sourceFromGroup(sf1, 'B', 1, 2)

	sf2 := newBracketMatch(idGen, 1, 0, 2, domain.RoundSemifinal)
	sourceFromGroup(sf2, 'A', 1, 1)
	sourceFromGroup(sf2, 'B', 0, 2)

	matches := []*domain.Match{sf1, sf2}
	matches = append(matches, finalAndThirdPlace(idGen, 2, sf1.ID, sf2.ID, thirdPlace)...)
	chain(matches, 1)
	return matches
}

// ssvb3Groups: the group with the best runner-up plays its own 1st vs its
// own 2nd; the other two groups' winners meet each other.
func ssvb3Groups(thirdPlace bool, idGen domain.IDGenerator) []*domain.Match {
	sfSelf := newBracketMatch(idGen, 1, 0, 1, domain.RoundSemifinal)
	sourceFromGroup(sfSelf, 'A', roleBestSecond, 1)
	sourceFromGroup(sfSelf, 'B', roleBestSecond, 2)

	sfOther := newBracketMatch(idGen, 1, 0, 2, domain.RoundSemifinal)
	sourceFromGroup(sfOther, 'A', roleNthBestSecond(1), 1) // "other group #1" winner
	sourceFromGroup(sfOther, 'B', roleNthBestSecond(2), 1) // "other group #2" winner

	matches := []*domain.Match{sfSelf, sfOther}
	matches = append(matches, finalAndThirdPlace(idGen, 2, sfSelf.ID, sfOther.ID, thirdPlace)...)
	chain(matches, 1)
	return matches
}

// ssvb4Groups: the classic 16-team SSVB shape, 4 intermediate matches, 4
// quarterfinals, 2 semifinals, optional third-place, final.
func ssvb4Groups(teamsPerGroup int, thirdPlace bool, idGen domain.IDGenerator) []*domain.Match {
	rankA, rankB := 2, 3
	if teamsPerGroup == 5 {
		rankA, rankB = 3, 4
	}

	intermediates := make([]*domain.Match, 4)
	for i := 0; i < 4; i++ {
		opponentGroup := (4 - 1 - i + 4) % 4
		m := newBracketMatch(idGen, 1, 0, i+1, domain.RoundIntermediate)
		sourceFromGroup(m, 'A', i, rankA)
		sourceFromGroup(m, 'B', opponentGroup, rankB)
		intermediates[i] = m
	}

	quarterfinals := make([]*domain.Match, 4)
	for i := 0; i < 4; i++ {
		m := newBracketMatch(idGen, 2, 0, i+1, domain.RoundQuarterfinal)
		sourceFromGroup(m, 'A', i, 1)
		dependOnMatch(m, 'B', intermediates[(i+1)%4].ID, domain.ResultWinner)
		quarterfinals[i] = m
	}

	sfA := newBracketMatch(idGen, 3, 0, 1, domain.RoundSemifinal)
	dependOnMatch(sfA, 'A', quarterfinals[0].ID, domain.ResultWinner)
	dependOnMatch(sfA, 'B', quarterfinals[1].ID, domain.ResultWinner)

	sfB := newBracketMatch(idGen, 3, 0, 2, domain.RoundSemifinal)
	dependOnMatch(sfB, 'A', quarterfinals[2].ID, domain.ResultWinner)
	dependOnMatch(sfB, 'B', quarterfinals[3].ID, domain.ResultWinner)

	var matches []*domain.Match
	matches = append(matches, intermediates...)
	matches = append(matches, quarterfinals...)
	matches = append(matches, sfA, sfB)
	matches = append(matches, finalAndThirdPlace(idGen, 4, sfA.ID, sfB.ID, thirdPlace)...)
	chain(matches, 1)
	return matches
}

// ssvb5To8Groups: seed the 8-slot quarterfinal list with the numberOfGroups
// group-winners followed by the best (8-numberOfGroups) group-2nds, then
// apply the standard 1-8/2-7/3-6/4-5 seeded pairing.
func ssvb5To8Groups(numberOfGroups int, thirdPlace bool, idGen domain.IDGenerator) []*domain.Match {
	type slot struct {
		groupIndex int
		rank       int
	}
	slots := make([]slot, 0, 8)
	for i := 0; i < numberOfGroups; i++ {
		slots = append(slots, slot{groupIndex: i, rank: 1})
	}
	for k := 1; k <= 8-numberOfGroups; k++ {
		slots = append(slots, slot{groupIndex: roleNthBestSecond(k), rank: 2})
	}

	pairings := seedPairings(8)
	quarterfinals := make([]*domain.Match, len(pairings))
	for i, pair := range pairings {
		m := newBracketMatch(idGen, 1, 0, i+1, domain.RoundQuarterfinal)
		a, b := slots[pair[0]-1], slots[pair[1]-1]
		sourceFromGroup(m, 'A', a.groupIndex, a.rank)
		sourceFromGroup(m, 'B', b.groupIndex, b.rank)
		quarterfinals[i] = m
	}

	sfA := newBracketMatch(idGen, 2, 0, 1, domain.RoundSemifinal)
	dependOnMatch(sfA, 'A', quarterfinals[0].ID, domain.ResultWinner)
	dependOnMatch(sfA, 'B', quarterfinals[1].ID, domain.ResultWinner)

	sfB := newBracketMatch(idGen, 2, 0, 2, domain.RoundSemifinal)
	dependOnMatch(sfB, 'A', quarterfinals[2].ID, domain.ResultWinner)
	dependOnMatch(sfB, 'B', quarterfinals[3].ID, domain.ResultWinner)

	var matches []*domain.Match
	matches = append(matches, quarterfinals...)
	matches = append(matches, sfA, sfB)
	matches = append(matches, finalAndThirdPlace(idGen, 3, sfA.ID, sfB.ID, thirdPlace)...)
	chain(matches, 1)
	return matches
}

// finalAndThirdPlace builds the final (winners of the two semifinals) and,
// if requested, the third-place match (losers of the two semifinals).
func finalAndThirdPlace(idGen domain.IDGenerator, round int, sf1, sf2 domain.MatchID, thirdPlace bool) []*domain.Match {
	var out []*domain.Match
	if thirdPlace {
		tp := newBracketMatch(idGen, round, 0, 1, domain.RoundThirdPlace)
		dependOnMatch(tp, 'A', sf1, domain.ResultLoser)
		dependOnMatch(tp, 'B', sf2, domain.ResultLoser)
		tp.PlayoffForPlace = 3
		out = append(out, tp)
	}

	final := newBracketMatch(idGen, round, 0, 2, domain.RoundFinal)
	dependOnMatch(final, 'A', sf1, domain.ResultWinner)
	dependOnMatch(final, 'B', sf2, domain.ResultWinner)
	final.PlayoffForPlace = 1
	out = append(out, final)
	return out
}

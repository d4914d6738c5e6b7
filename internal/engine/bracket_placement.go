package engine

import (
	"sort"

	"github.com/braccet/tournament-engine/internal/domain"
)

// pendingPlacementInterval is one not-yet-played slice of the placement
// tree: a target placement range plus the matches whose `role` side
// (winner or loser) supplies that range's contestants.
type pendingPlacementInterval struct {
	interval domain.Interval
	feeders  []*domain.Match
	role     domain.ResultKind
}

// GeneratePlacementTree builds the placement-tree bracket (§4.5.2): seed
// order is all group 1st-places (by group order), then all 2nds, and so
// on; the caller is responsible for giving teams SeedPositions in that
// seeded order. Teams are sorted by SeedPosition, and slice order only
// decides between equal SeedPositions. An odd or sub-2 team count yields
// no matches.
//
// Round 1 pairs seed i against seed N+1-i. Every later round takes each
// currently active interval, collects the matches feeding it, pairs them
// first-with-last, and narrows the interval; a match produced for an
// interval of width 2 is terminal (`playoffForPlace = start`).
//
// Resolving every one of the N placements without ties, by real play
// rather than a seed-based tiebreak, means recursing both the winner- and
// loser-side of every interval down to width 2: for N=16 that is 32
// matches, not the N-1 a plain single-elimination bracket needs to crown
// one champion. See DESIGN.md's "Open Question decisions" entry on the
// placement-tree match count for why this implementation keeps "every
// placement resolved, no ties" over the section's own "Total matches:
// N-1" line, which only holds for a champion-only bracket.
func GeneratePlacementTree(teams []domain.Team, idGen domain.IDGenerator) []*domain.Match {
	n := len(teams)
	if n < 2 || n%2 != 0 {
		return nil
	}

	sorted := append([]domain.Team(nil), teams...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SeedPosition < sorted[j].SeedPosition
	})

	round1 := make([]*domain.Match, n/2)
	for i := 0; i < n/2; i++ {
		a, b := sorted[i].ID, sorted[n-1-i].ID
		round1[i] = &domain.Match{
			ID:                domain.MatchID(idGen.NewID()),
			Round:             1,
			BracketPosition:   i + 1,
			TeamAID:           &a,
			TeamBID:           &b,
			Status:            domain.MatchScheduled,
			PlacementInterval: &domain.Interval{Start: 1, End: n},
			WinnerInterval:    &domain.Interval{Start: 1, End: n / 2},
			LoserInterval:     &domain.Interval{Start: n/2 + 1, End: n},
		}
	}

	return placementTreeFromRound1(round1, n, idGen)
}

// GeneratePlacementTreeFromGroups builds the same all-placements bracket
// (§4.5.2) as a downstream phase materialized before the upstream group
// phase has played a match (C8, "at start"): round 1 is wired with
// TeamSource references instead of concrete teams, using the seed order
// the section specifies ("all group 1st-places (by group order), then
// all 2nds, etc.") with a ragged final group contributing fewer seeds at
// the bottom ranks.
func GeneratePlacementTreeFromGroups(groupSizes []int, idGen domain.IDGenerator) []*domain.Match {
	var seeds []domain.TeamSource
	maxSize := 0
	for _, s := range groupSizes {
		if s > maxSize {
			maxSize = s
		}
	}
	for rank := 1; rank <= maxSize; rank++ {
		for gi, size := range groupSizes {
			if rank <= size {
				seeds = append(seeds, domain.TeamSource{Kind: domain.SourceFromGroup, GroupIndex: gi, Rank: rank})
			}
		}
	}

	n := len(seeds)
	if n < 2 {
		return nil
	}

	round1 := make([]*domain.Match, n/2)
	for i := 0; i < n/2; i++ {
		m := &domain.Match{
			ID:                domain.MatchID(idGen.NewID()),
			Round:             1,
			BracketPosition:   i + 1,
			Status:            domain.MatchPending,
			PlacementInterval: &domain.Interval{Start: 1, End: n},
			WinnerInterval:    &domain.Interval{Start: 1, End: n / 2},
			LoserInterval:     &domain.Interval{Start: n/2 + 1, End: n},
		}
		a, b := seeds[i], seeds[n-1-i]
		m.TeamASource = &a
		m.TeamBSource = &b
		round1[i] = m
	}

	return placementTreeFromRound1(round1, n, idGen)
}

// placementTreeFromRound1 runs the round-2-onward interval narrowing
// shared by both entry points above, given an already-built round 1.
func placementTreeFromRound1(round1 []*domain.Match, n int, idGen domain.IDGenerator) []*domain.Match {
	all := append([]*domain.Match(nil), round1...)
	queue := []pendingPlacementInterval{
		{interval: domain.Interval{Start: 1, End: n / 2}, feeders: round1, role: domain.ResultWinner},
		{interval: domain.Interval{Start: n/2 + 1, End: n}, feeders: round1, role: domain.ResultLoser},
	}

	round := 2
	for len(queue) > 0 {
		var produced []*domain.Match
		var next []pendingPlacementInterval

		for _, p := range queue {
			feeders := append([]*domain.Match(nil), p.feeders...)
			sort.SliceStable(feeders, func(i, j int) bool {
				return feeders[i].BracketPosition < feeders[j].BracketPosition
			})

			terminal := p.interval.End-p.interval.Start == 1
			mid := p.interval.Start + (p.interval.End-p.interval.Start)/2

			var thisInterval []*domain.Match
			for lo, hi := 0, len(feeders)-1; lo < hi; lo, hi = lo+1, hi-1 {
				m := &domain.Match{
					ID:                domain.MatchID(idGen.NewID()),
					Round:             round,
					Status:            domain.MatchPending,
					PlacementInterval: &domain.Interval{Start: p.interval.Start, End: p.interval.End},
				}
				dependOnMatch(m, 'A', feeders[lo].ID, p.role)
				dependOnMatch(m, 'B', feeders[hi].ID, p.role)

				if terminal {
					m.PlayoffForPlace = p.interval.Start
					m.KnockoutRound = domain.RoundPlacementFinal
				} else {
					m.WinnerInterval = &domain.Interval{Start: p.interval.Start, End: mid}
					m.LoserInterval = &domain.Interval{Start: mid + 1, End: p.interval.End}
					m.KnockoutRound = placementRoundLabel(round)
				}
				thisInterval = append(thisInterval, m)
			}

			produced = append(produced, thisInterval...)
			if !terminal && len(thisInterval) > 0 {
				next = append(next,
					pendingPlacementInterval{interval: domain.Interval{Start: p.interval.Start, End: mid}, feeders: thisInterval, role: domain.ResultWinner},
					pendingPlacementInterval{interval: domain.Interval{Start: mid + 1, End: p.interval.End}, feeders: thisInterval, role: domain.ResultLoser},
				)
			}
		}

		for i, m := range produced {
			m.BracketPosition = i + 1
		}

		all = append(all, produced...)
		queue = next
		round++
	}

	chain(all, 1)
	return all
}

func placementRoundLabel(round int) domain.KnockoutRound {
	switch round {
	case 2:
		return domain.RoundPlacement1
	case 3:
		return domain.RoundPlacement2
	case 4:
		return domain.RoundPlacement3
	default:
		return domain.RoundPlacement4
	}
}

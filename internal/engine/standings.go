package engine

import (
	"sort"

	"github.com/braccet/tournament-engine/internal/domain"
)

// StandingsOptions configures ComputeStandings (§4.1).
type StandingsOptions struct {
	SetsPerMatch    int
	TiebreakerOrder domain.TiebreakerOrder
	System          domain.System
}

// ComputeStandings returns the stable ordered sequence of StandingEntry for
// the given teams and matches (C1). Only completed matches with both team
// ids count toward the accumulated stats.
func ComputeStandings(teams []domain.Team, matches []*domain.Match, opts StandingsOptions) []domain.StandingEntry {
	if opts.System == domain.SystemPlayoff {
		return computePlayoffStandings(teams, matches)
	}

	byTeam := make(map[domain.TeamID]*domain.StandingEntry, len(teams))
	order := make([]domain.TeamID, 0, len(teams))
	for _, t := range teams {
		e := &domain.StandingEntry{TeamID: t.ID}
		byTeam[t.ID] = e
		order = append(order, t.ID)
	}

	for _, m := range matches {
		if m.Status != domain.MatchCompleted || !m.HasConcreteTeams() {
			continue
		}
		a, aok := byTeam[*m.TeamAID]
		b, bok := byTeam[*m.TeamBID]
		if !aok || !bok {
			continue
		}
		accumulate(a, b, m, opts.SetsPerMatch)
	}

	entries := make([]domain.StandingEntry, 0, len(order))
	for _, id := range order {
		entries = append(entries, *byTeam[id])
	}

	h2h := buildHeadToHead(matches)
	sortStandings(entries, opts, h2h)
	return entries
}

// accumulate folds one completed match into both teams' running entries:
// per-set wins/losses (strictly-greater comparison), point sums, the
// played/won/lost tallies derived from WinnerID, and the match-points
// awarded toward the Swiss/standings "points" ranking key.
//
// setsPerMatch == 2 uses the beach-volleyball-style scheme a 2-set format
// implies (a clean 2-0 is worth more than a 2-1): winner of a 2-0 earns 3,
// winner of a 2-1 earns 2, loser of a 1-2 earns 1, loser of a 0-2 earns 0.
// Best-of-1 and best-of-3 formats always have a clear winner, worth 2
// points against the loser's 0. This is an Open Question in the source
// spec (§9).
func accumulate(a, b *domain.StandingEntry, m *domain.Match, setsPerMatch int) {
	a.Played++
	b.Played++

	var aSets, bSets int
	for _, s := range m.Scores {
		a.PointsWon += s.TeamA
		a.PointsLost += s.TeamB
		b.PointsWon += s.TeamB
		b.PointsLost += s.TeamA
		switch {
		case s.TeamA > s.TeamB:
			a.SetsWon++
			b.SetsLost++
			aSets++
		case s.TeamB > s.TeamA:
			b.SetsWon++
			a.SetsLost++
			bSets++
		}
	}

	switch {
	case m.WinnerID == nil:
		// no-winner draw: played counts, won/lost/points do not change.
	case *m.WinnerID == a.TeamID:
		a.Won++
		b.Lost++
		awardMatchPoints(a, b, setsPerMatch, aSets, bSets)
	case *m.WinnerID == b.TeamID:
		b.Won++
		a.Lost++
		awardMatchPoints(b, a, setsPerMatch, bSets, aSets)
	}
}

func awardMatchPoints(winner, loser *domain.StandingEntry, setsPerMatch, winnerSets, loserSets int) {
	if setsPerMatch == 2 {
		if loserSets == 0 {
			winner.Points += 3
		} else {
			winner.Points += 2
			loser.Points += 1
		}
		return
	}
	winner.Points += 2
}

type headToHeadKey struct {
	a, b domain.TeamID
}

// headToHeadRecord is the (wins, losses) a team accrued directly against one
// specific opponent, plus the point differential of those encounters.
type headToHeadRecord struct {
	wins, losses int
	pointDiff    int
}

// buildHeadToHead builds a symmetric map of direct-encounter records between
// every pair of teams that has played a completed match against each other.
func buildHeadToHead(matches []*domain.Match) map[headToHeadKey]*headToHeadRecord {
	h2h := make(map[headToHeadKey]*headToHeadRecord)
	for _, m := range matches {
		if m.Status != domain.MatchCompleted || !m.HasConcreteTeams() {
			continue
		}
		a, b := *m.TeamAID, *m.TeamBID
		recAB := h2hEntry(h2h, a, b)
		recBA := h2hEntry(h2h, b, a)

		var diffAB int
		for _, s := range m.Scores {
			diffAB += s.TeamA - s.TeamB
		}
		recAB.pointDiff += diffAB
		recBA.pointDiff -= diffAB

		switch {
		case m.WinnerID == nil:
		case *m.WinnerID == a:
			recAB.wins++
			recBA.losses++
		case *m.WinnerID == b:
			recBA.wins++
			recAB.losses++
		}
	}
	return h2h
}

func h2hEntry(h2h map[headToHeadKey]*headToHeadRecord, a, b domain.TeamID) *headToHeadRecord {
	k := headToHeadKey{a, b}
	r, ok := h2h[k]
	if !ok {
		r = &headToHeadRecord{}
		h2h[k] = r
	}
	return r
}

// headToHeadDiff returns (wins-losses) of a versus b, 0 if they never met.
func headToHeadDiff(h2h map[headToHeadKey]*headToHeadRecord, a, b domain.TeamID) int {
	r, ok := h2h[headToHeadKey{a, b}]
	if !ok {
		return 0
	}
	return r.wins - r.losses
}

// sortStandings orders entries in place per §4.1's primary key and
// tiebreaker rules. Ties remaining after every criterion keep their
// original (insertion) order, since sort.SliceStable guarantees this.
func sortStandings(entries []domain.StandingEntry, opts StandingsOptions, h2h map[headToHeadKey]*headToHeadRecord) {
	primary := func(e domain.StandingEntry) int {
		if opts.SetsPerMatch == 2 {
			return e.SetsWon
		}
		return e.Won
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if pa, pb := primary(a), primary(b); pa != pb {
			return pa > pb
		}

		if opts.TiebreakerOrder == domain.TiebreakPointDiffFirst {
			if a.PointDiff() != b.PointDiff() {
				return a.PointDiff() > b.PointDiff()
			}
			return headToHeadDiff(h2h, a.TeamID, b.TeamID) > 0
		}

		// head-to-head-first (default)
		if hh := headToHeadDiff(h2h, a.TeamID, b.TeamID); hh != 0 {
			return hh > 0
		}
		return a.PointDiff() > b.PointDiff()
	})
}

// computePlayoffStandings implements the playoff variant of C1: rank by
// each team's resolved PlayoffForPlace (winner -> place, loser -> place+1);
// teams with no resolved place yet keep seed-position order, ahead of
// nobody with a resolved place.
func computePlayoffStandings(teams []domain.Team, matches []*domain.Match) []domain.StandingEntry {
	place := make(map[domain.TeamID]int)
	for _, m := range matches {
		if m.Status != domain.MatchCompleted || m.PlayoffForPlace == 0 || !m.HasConcreteTeams() {
			continue
		}
		if m.WinnerID == nil {
			continue
		}
		loser := m.OtherTeam(*m.WinnerID)
		place[*m.WinnerID] = m.PlayoffForPlace
		if loser != nil {
			place[*loser] = m.PlayoffForPlace + 1
		}
	}

	sorted := append([]domain.Team(nil), teams...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SeedPosition < sorted[j].SeedPosition
	})

	entries := make([]domain.StandingEntry, 0, len(sorted))
	for _, t := range sorted {
		entries = append(entries, domain.StandingEntry{TeamID: t.ID})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		pi, oki := place[entries[i].TeamID]
		pj, okj := place[entries[j].TeamID]
		switch {
		case oki && okj:
			return pi < pj
		case oki && !okj:
			return true
		case !oki && okj:
			return false
		default:
			return false // both unresolved: keep seed order already established
		}
	})

	return entries
}

// ComputeGroupStandings computes standings independently within each group
// and tags every entry with its group and rank.
func ComputeGroupStandings(groups []domain.Group, teams []domain.Team, matches []*domain.Match, opts StandingsOptions) []domain.GroupStandingEntry {
	teamByID := make(map[domain.TeamID]domain.Team, len(teams))
	for _, t := range teams {
		teamByID[t.ID] = t
	}

	var out []domain.GroupStandingEntry
	for _, g := range groups {
		groupTeams := make([]domain.Team, 0, len(g.TeamIDs))
		for _, id := range g.TeamIDs {
			if t, ok := teamByID[id]; ok {
				groupTeams = append(groupTeams, t)
			}
		}
		groupMatches := matchesAmong(matches, g.TeamIDs)
		entries := ComputeStandings(groupTeams, groupMatches, opts)
		for i, e := range entries {
			out = append(out, domain.GroupStandingEntry{
				StandingEntry: e,
				GroupID:       g.ID,
				GroupRank:     i + 1,
			})
		}
	}
	return out
}

func matchesAmong(matches []*domain.Match, teamIDs []domain.TeamID) []*domain.Match {
	set := make(map[domain.TeamID]bool, len(teamIDs))
	for _, id := range teamIDs {
		set[id] = true
	}
	var out []*domain.Match
	for _, m := range matches {
		if m.TeamAID != nil && m.TeamBID != nil && set[*m.TeamAID] && set[*m.TeamBID] {
			out = append(out, m)
		}
	}
	return out
}

package engine

import (
	"fmt"
	"sort"

	"github.com/braccet/tournament-engine/internal/apperr"
	"github.com/braccet/tournament-engine/internal/domain"
)

// MaterializeChildPlaceholder implements C8's "at start" step: a parent
// Tournament carrying KnockoutSettings gets its downstream phase's full
// match DAG generated immediately, with no team roster yet; every slot
// is a TeamSource or DependsOn reference and every match starts pending,
// readable through its placeholder strings.
//
// The parent's own System decides only how its own matches are generated
// (see isGroupBased in reducer.go); KnockoutSettings.System decides the
// shape of the child this function builds.
func MaterializeChildPlaceholder(parent *domain.Tournament, idGen domain.IDGenerator, clock domain.Clock) (*domain.Tournament, error) {
	ks := parent.KnockoutSettings
	if ks == nil {
		return nil, nil
	}

	var matches []*domain.Match
	var err error

	switch ks.System {
	case domain.SystemKnockout:
		teamsPerGroup := 0
		if parent.GroupPhaseConfig != nil {
			teamsPerGroup = parent.GroupPhaseConfig.TeamsPerGroup
		}
		matches, err = GenerateSSVBBracket(ks.NumberOfGroups, teamsPerGroup, ks.ThirdPlace, idGen)
		if err != nil {
			return nil, err
		}
	case domain.SystemPlacementTree:
		if parent.GroupPhaseConfig == nil {
			return nil, apperr.ErrMissingGroupStandings
		}
		matches = GeneratePlacementTreeFromGroups(groupSizes(parent), idGen)
	case domain.SystemShortMainKnockout:
		matches = GenerateShortMainRound(idGen)
	case domain.SystemPlayoff:
		matches = GeneratePlayoffLadder(ks.ThirdPlace, idGen)
	default:
		return nil, fmt.Errorf("%w: child system %q", apperr.ErrMissingSettings, ks.System)
	}

	applyPlaceholders(matches)

	phaseName := "Knockout"
	if ks.System == domain.SystemPlayoff {
		phaseName = "Playoff"
	}

	child := &domain.Tournament{
		ID:                domain.TournamentID(idGen.NewID()),
		Name:              parent.Name + " - " + phaseName,
		System:            ks.System,
		SetsPerMatch:      parent.SetsPerMatch,
		PointsPerSet:      parent.PointsPerSet,
		PointsPerThirdSet: parent.PointsPerThirdSet,
		TiebreakerOrder:   parent.TiebreakerOrder,
		NumberOfCourts:    parent.NumberOfCourts,
		Matches:           matches,
		Status:            domain.TournamentInProgress,
		ContainerID:       parent.ContainerID,
		PhaseOrder:        parent.PhaseOrder + 1,
		PhaseName:         phaseName,
		ParentPhaseID:     &parent.ID,
		CreatedAt:         clock.Now(),
		UpdatedAt:         clock.Now(),
	}
	return child, nil
}

// groupSizes returns each group's team count in group order.
func groupSizes(t *domain.Tournament) []int {
	if t.GroupPhaseConfig == nil {
		return nil
	}
	sizes := make([]int, len(t.GroupPhaseConfig.Groups))
	for i, g := range t.GroupPhaseConfig.Groups {
		sizes[i] = len(g.TeamIDs)
	}
	return sizes
}

// PopulateChildFromParent implements C8's "at completion" step: the
// parent's final GroupStandings (or, for a round-robin/Swiss parent,
// flat Standings) determine every team's identity in the child. Teams are
// copied with freshly-minted ids; TeamSource references resolve to the
// copies; DependsOn edges are left untouched for C6 to resolve as the
// child's own matches complete.
func PopulateChildFromParent(parent, child *domain.Tournament, idGen domain.IDGenerator, clock domain.Clock) error {
	idMap := make(map[domain.TeamID]domain.TeamID, len(parent.Teams))
	child.Teams = make([]domain.Team, len(parent.Teams))
	for i, t := range parent.Teams {
		newID := domain.TeamID(idGen.NewID())
		idMap[t.ID] = newID
		child.Teams[i] = domain.Team{ID: newID, Name: t.Name, SeedPosition: t.SeedPosition}
	}

	child.EliminatedTeamIDs = eliminatedTeamIDs(parent, child.System, idMap)

	if isSSVBFamily3or5to8(parent) {
		resolveDynamicGroupRoles(child.Matches, parent.GroupPhaseConfig.NumberOfGroups, parent.GroupPhaseConfig.Groups, parent.GroupStandings)
	}

	for _, m := range child.Matches {
		resolveTeamSource(m, 'A', parent, idMap)
		resolveTeamSource(m, 'B', parent, idMap)
		if m.Status == domain.MatchPending && m.HasConcreteTeams() {
			m.Status = domain.MatchScheduled
		}
	}

	child.Standings = make([]domain.StandingEntry, len(child.Teams))
	for i, t := range child.Teams {
		child.Standings[i] = domain.StandingEntry{TeamID: t.ID}
	}

	if child.System == domain.SystemKnockout && ssvbUsesReferees(parent) {
		eliminated := make([]domain.TeamID, len(child.EliminatedTeamIDs))
		copy(eliminated, child.EliminatedTeamIDs)
		sort.Slice(eliminated, func(i, j int) bool { return eliminated[i] < eliminated[j] })

		priorOpponents := BuildPriorOpponents(translateMatches(parent.Matches, idMap))
		firstRound := domain.RoundQuarterfinal
		if parent.KnockoutSettings.NumberOfGroups == 4 {
			firstRound = domain.RoundIntermediate
		}
		UpdateRefereesForRound(child.Matches, firstRound, eliminated, priorOpponents)
	}

	child.UpdatedAt = clock.Now()
	return nil
}

// translateMatches returns a copy of matches with team ids rewritten
// through idMap, used to build a prior-opponents map scoped to the
// child's own freshly-minted team ids.
func translateMatches(matches []*domain.Match, idMap map[domain.TeamID]domain.TeamID) []*domain.Match {
	out := make([]*domain.Match, 0, len(matches))
	for _, m := range matches {
		if m.Status != domain.MatchCompleted || !m.HasConcreteTeams() {
			continue
		}
		a, aok := idMap[*m.TeamAID]
		b, bok := idMap[*m.TeamBID]
		if !aok || !bok {
			continue
		}
		out = append(out, &domain.Match{TeamAID: &a, TeamBID: &b, Status: domain.MatchCompleted})
	}
	return out
}

func ssvbUsesReferees(parent *domain.Tournament) bool {
	return parent.KnockoutSettings != nil && parent.KnockoutSettings.UseReferees
}

func isSSVBFamily3or5to8(parent *domain.Tournament) bool {
	if parent.KnockoutSettings == nil || parent.KnockoutSettings.System != domain.SystemKnockout {
		return false
	}
	n := parent.KnockoutSettings.NumberOfGroups
	return n == 3 || (n >= 5 && n <= 8)
}

// eliminatedTeamIDs determines, per §4.7, which (newly-minted) teams the
// child excludes from play: size-4 groups eliminate rank 4, size-5 groups
// eliminate rank 5, size-3 groups eliminate none, any other size
// eliminates its last rank, but only for the SSVB knockout child.
// Placement-tree and short-main populators eliminate no one: every team
// still has a placement to play for.
func eliminatedTeamIDs(parent *domain.Tournament, childSystem domain.System, idMap map[domain.TeamID]domain.TeamID) []domain.TeamID {
	if childSystem != domain.SystemKnockout || parent.GroupPhaseConfig == nil {
		return nil
	}

	var out []domain.TeamID
	for _, entry := range parent.GroupStandings {
		size := groupSize(parent.GroupPhaseConfig.Groups, entry.GroupID)
		if size == 3 {
			continue
		}
		lastRank := size
		if size == 0 {
			lastRank = len(parent.GroupStandings) // degenerate fallback, never hit in practice
		}
		if entry.GroupRank == lastRank {
			if newID, ok := idMap[entry.TeamID]; ok {
				out = append(out, newID)
			}
		}
	}
	return out
}

func groupSize(groups []domain.Group, id domain.GroupID) int {
	for _, g := range groups {
		if g.ID == id {
			return len(g.TeamIDs)
		}
	}
	return 0
}

// resolveTeamSource resolves one side of a match's static TeamSource (if
// any) against the parent's final standings, translating the resolved
// team id through idMap.
func resolveTeamSource(m *domain.Match, side byte, parent *domain.Tournament, idMap map[domain.TeamID]domain.TeamID) {
	src := m.TeamASource
	assign := func(id domain.TeamID) { m.TeamAID = &id }
	if side == 'B' {
		src = m.TeamBSource
		assign = func(id domain.TeamID) { m.TeamBID = &id }
	}
	if src == nil {
		return
	}

	var oldID domain.TeamID
	var ok bool
	switch src.Kind {
	case domain.SourceFromGroup:
		oldID, ok = lookupGroupRank(parent, src.GroupIndex, src.Rank)
	case domain.SourceFromStanding:
		oldID, ok = lookupFlatRank(parent.Standings, src.Rank)
	}
	if !ok {
		return
	}
	if newID, found := idMap[oldID]; found {
		assign(newID)
	}
}

func lookupGroupRank(parent *domain.Tournament, groupIndex, rank int) (domain.TeamID, bool) {
	if parent.GroupPhaseConfig == nil || groupIndex < 0 || groupIndex >= len(parent.GroupPhaseConfig.Groups) {
		return "", false
	}
	groupID := parent.GroupPhaseConfig.Groups[groupIndex].ID
	for _, e := range parent.GroupStandings {
		if e.GroupID == groupID && e.GroupRank == rank {
			return e.TeamID, true
		}
	}
	return "", false
}

func lookupFlatRank(standings []domain.StandingEntry, rank int) (domain.TeamID, bool) {
	if rank < 1 || rank > len(standings) {
		return "", false
	}
	return standings[rank-1].TeamID, true
}

// resolveDynamicGroupRoles rewrites the SSVB 3-group and 5-8-group
// generators' placeholder TeamSource.GroupIndex "roles" (roleBestSecond /
// roleNthBestSecond, defined in bracket_ssvb.go) into concrete group
// indices now that the parent's final GroupStandings are known. Must run
// before resolveTeamSource.
func resolveDynamicGroupRoles(matches []*domain.Match, numberOfGroups int, groups []domain.Group, standings []domain.GroupStandingEntry) {
	ranked := rankedRunnerUpGroups(groups, standings)

	var otherGroups []int
	if numberOfGroups == 3 && len(ranked) > 0 {
		best := ranked[0]
		for _, gi := range ranked {
			if gi != best {
				otherGroups = append(otherGroups, gi)
			}
		}
	}

	resolve := func(src *domain.TeamSource) {
		if src == nil || src.Kind != domain.SourceFromGroup {
			return
		}
		switch {
		case src.GroupIndex == roleBestSecond:
			if len(ranked) > 0 {
				src.GroupIndex = ranked[0]
			}
		case src.GroupIndex <= roleBestSecondStart:
			n := roleBestSecondStart - src.GroupIndex // 1-based rank among "other" groups
			if numberOfGroups == 3 {
				if n >= 1 && n <= len(otherGroups) {
					src.GroupIndex = otherGroups[n-1]
				}
			} else if n >= 1 && n <= len(ranked) {
				src.GroupIndex = ranked[n-1]
			}
		}
	}

	for _, m := range matches {
		resolve(m.TeamASource)
		resolve(m.TeamBSource)
	}
}

// rankedRunnerUpGroups returns group indices ordered by their rank-2
// entry's (points, point-diff) descending: the "best group-2nd" rule
// used by the 3-group and 5-8-group SSVB shapes (§4.5.1).
func rankedRunnerUpGroups(groups []domain.Group, standings []domain.GroupStandingEntry) []int {
	type cand struct {
		groupIndex int
		points     int
		diff       int
	}
	byGroup := make(map[domain.GroupID][]domain.GroupStandingEntry)
	for _, s := range standings {
		byGroup[s.GroupID] = append(byGroup[s.GroupID], s)
	}

	var cands []cand
	for gi, g := range groups {
		for _, s := range byGroup[g.ID] {
			if s.GroupRank == 2 {
				cands = append(cands, cand{gi, s.Points, s.PointDiff()})
			}
		}
	}
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].points != cands[j].points {
			return cands[i].points > cands[j].points
		}
		return cands[i].diff > cands[j].diff
	})

	out := make([]int, len(cands))
	for i, c := range cands {
		out[i] = c.groupIndex
	}
	return out
}

// applyPlaceholders fills PlaceholderA/B/Referee for every match whose
// corresponding side is not yet concrete, rendered generically from the
// match's TeamSource/DependsOn wiring so every bracket generator gets
// human-readable text for free.
func applyPlaceholders(matches []*domain.Match) {
	byID := make(map[domain.MatchID]*domain.Match, len(matches))
	for _, m := range matches {
		byID[m.ID] = m
	}
	for _, m := range matches {
		m.PlaceholderA = placeholderFor(m.TeamASource, m.DependsOn, byID)
		m.PlaceholderB = placeholderForB(m.TeamBSource, m.DependsOn, byID)
		m.PlaceholderReferee = "TBD"
	}
}

func placeholderFor(src *domain.TeamSource, dep *domain.DependsOn, byID map[domain.MatchID]*domain.Match) string {
	if src != nil {
		return sourceText(*src)
	}
	if dep != nil && dep.TeamA != nil {
		return refText(*dep.TeamA, byID)
	}
	return ""
}

func placeholderForB(src *domain.TeamSource, dep *domain.DependsOn, byID map[domain.MatchID]*domain.Match) string {
	if src != nil {
		return sourceText(*src)
	}
	if dep != nil && dep.TeamB != nil {
		return refText(*dep.TeamB, byID)
	}
	return ""
}

func sourceText(src domain.TeamSource) string {
	if src.Kind == domain.SourceFromGroup {
		return fmt.Sprintf("%s, Group %d", ordinal(src.Rank), src.GroupIndex+1)
	}
	return fmt.Sprintf("%s place", ordinal(src.Rank))
}

func refText(ref domain.MatchRef, byID map[domain.MatchID]*domain.Match) string {
	m := byID[ref.MatchID]
	number := 0
	if m != nil {
		number = m.MatchNumber
	}
	if ref.Result == domain.ResultWinner {
		return fmt.Sprintf("Winner of Match %d", number)
	}
	return fmt.Sprintf("Loser of Match %d", number)
}

func ordinal(n int) string {
	switch n {
	case 1:
		return "1st"
	case 2:
		return "2nd"
	case 3:
		return "3rd"
	default:
		return fmt.Sprintf("%dth", n)
	}
}

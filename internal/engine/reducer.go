package engine

import (
	"github.com/braccet/tournament-engine/internal/apperr"
	"github.com/braccet/tournament-engine/internal/domain"
)

// Reduce is C9: the single entry point for the whole engine. It is a pure
// total function: either it returns the fully updated state, or it
// returns the untouched prior state together with an error (§5, §7).
// Unknown command variants (impossible through the closed Command
// interface, but defensive against a caller's zero value) leave state
// unchanged.
func Reduce(state domain.ApplicationState, cmd Command, idGen domain.IDGenerator, clock domain.Clock) (domain.ApplicationState, error) {
	switch c := cmd.(type) {
	case LoadState:
		return c.State, nil
	case CreateTournamentInput:
		return reduceCreateTournament(state, c, clock)
	case UpdateTeams:
		return reduceUpdateTeams(state, c)
	case UpdateTournamentSettings:
		return reduceUpdateSettings(state, c)
	case UpdateGroups:
		return reduceUpdateGroups(state, c)
	case StartTournament:
		return reduceStartTournament(state, c, idGen, clock)
	case UpdateMatchScore:
		return reduceUpdateMatchScore(state, c, clock)
	case CompleteMatch:
		return reduceCompleteMatch(state, c, idGen, clock)
	case EditMatchScore:
		return reduceEditMatchScore(state, c, clock)
	case ForfeitTeam:
		return reduceForfeitTeam(state, c, idGen, clock)
	case GenerateNextSwissRound:
		return reduceGenerateNextSwissRound(state, c, idGen, clock)
	case ResetTournament:
		return reduceResetTournament(state, c, clock)
	case DeleteTournament:
		return reduceDeleteTournament(state, c)
	case DeleteContainer:
		return reduceDeleteContainer(state, c)
	case SetCurrentTournament:
		id := c.TournamentID
		next := state.Clone()
		next.CurrentTournamentID = &id
		return next, nil
	case SetCurrentPhase:
		next := state.Clone()
		cont, ok := next.Containers[c.ContainerID]
		if !ok {
			return state, apperr.ErrContainerNotFound
		}
		clone := *cont
		clone.CurrentPhaseIndex = c.PhaseIndex
		next.Containers[c.ContainerID] = &clone
		return next, nil
	case CreateKnockoutTournament:
		return reduceCreateChildExplicit(state, c.TournamentID, idGen, clock)
	case CreateFinalsTournament:
		return reduceCreateChildExplicit(state, c.TournamentID, idGen, clock)
	default:
		return state, nil
	}
}

// --- lookups -----------------------------------------------------------

func findTournament(state domain.ApplicationState, id domain.TournamentID) (*domain.Tournament, bool) {
	t, ok := state.Tournaments[id]
	return t, ok
}

func findChild(state domain.ApplicationState, parentID domain.TournamentID) *domain.Tournament {
	for _, t := range state.Tournaments {
		if t.ParentPhaseID != nil && *t.ParentPhaseID == parentID {
			return t
		}
	}
	return nil
}

func standingsOpts(t *domain.Tournament) StandingsOptions {
	return StandingsOptions{SetsPerMatch: t.SetsPerMatch, TiebreakerOrder: t.TiebreakerOrder, System: t.System}
}

func isGroupBased(system domain.System) bool {
	return system == domain.SystemGroupPhase || system == domain.SystemBeachlAllPlacements || system == domain.SystemBeachlShortMain
}

// --- CREATE_TOURNAMENT ---------------------------------------------------

func reduceCreateTournament(state domain.ApplicationState, c CreateTournamentInput, clock domain.Clock) (domain.ApplicationState, error) {
	if c.ContainerName == "" && c.Name == "" {
		return state, apperr.ErrMissingSettings
	}
	if _, exists := state.Tournaments[c.TournamentID]; exists {
		return state, apperr.ErrAlreadyStarted
	}

	teams := append([]domain.Team(nil), c.Teams...)
	for i := range teams {
		teams[i].SeedPosition = i + 1
	}

	now := clock.Now()
	t := &domain.Tournament{
		ID:                c.TournamentID,
		Name:              c.Name,
		System:            c.System,
		SetsPerMatch:      c.SetsPerMatch,
		PointsPerSet:      c.PointsPerSet,
		PointsPerThirdSet: c.PointsPerThirdSet,
		TiebreakerOrder:   c.TiebreakerOrder,
		NumberOfCourts:    c.NumberOfCourts,
		NumberOfRounds:    c.NumberOfRounds,
		Teams:             teams,
		GroupPhaseConfig:  c.GroupPhaseConfig,
		KnockoutSettings:  c.KnockoutSettings,
		Status:            domain.TournamentConfiguration,
		ContainerID:        c.ContainerID,
		PhaseOrder:         1,
		PhaseName:          "Main",
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	container := &domain.TournamentContainer{
		ID:     c.ContainerID,
		Name:   c.ContainerName,
		Status: domain.ContainerConfiguration,
		Phases: []domain.PhaseRef{{TournamentID: t.ID, Order: 1, Name: t.PhaseName}},
		CreatedAt: now,
		UpdatedAt: now,
	}

	next := state.Clone()
	next.Tournaments[t.ID] = t
	next.Containers[container.ID] = container
	tid, cid := t.ID, container.ID
	next.CurrentTournamentID = &tid
	next.CurrentContainerID = &cid
	return next, nil
}

// --- UPDATE_TEAMS / UPDATE_TOURNAMENT_SETTINGS / UPDATE_GROUPS ----------

func reduceUpdateTeams(state domain.ApplicationState, c UpdateTeams) (domain.ApplicationState, error) {
	t, ok := findTournament(state, c.TournamentID)
	if !ok {
		return state, apperr.ErrTournamentNotFound
	}
	if t.Status != domain.TournamentConfiguration {
		return state, apperr.ErrNotInConfiguration
	}

	clone := domain.CloneTournament(t)
	teams := append([]domain.Team(nil), c.Teams...)
	for i := range teams {
		teams[i].SeedPosition = i + 1
	}
	clone.Teams = teams

	next := state.Clone()
	next.Tournaments[t.ID] = clone
	return next, nil
}

func reduceUpdateSettings(state domain.ApplicationState, c UpdateTournamentSettings) (domain.ApplicationState, error) {
	t, ok := findTournament(state, c.TournamentID)
	if !ok {
		return state, apperr.ErrTournamentNotFound
	}
	if t.Status != domain.TournamentConfiguration {
		return state, apperr.ErrNotInConfiguration
	}

	clone := domain.CloneTournament(t)
	if c.SetsPerMatch != 0 {
		clone.SetsPerMatch = c.SetsPerMatch
	}
	if c.PointsPerSet != 0 {
		clone.PointsPerSet = c.PointsPerSet
	}
	if c.PointsPerThirdSet != 0 {
		clone.PointsPerThirdSet = c.PointsPerThirdSet
	}
	if c.NumberOfCourts != 0 {
		clone.NumberOfCourts = c.NumberOfCourts
	}
	if c.NumberOfRounds != 0 {
		clone.NumberOfRounds = c.NumberOfRounds
	}
	if c.TiebreakerOrder != "" {
		clone.TiebreakerOrder = c.TiebreakerOrder
	}

	next := state.Clone()
	next.Tournaments[t.ID] = clone
	return next, nil
}

func reduceUpdateGroups(state domain.ApplicationState, c UpdateGroups) (domain.ApplicationState, error) {
	t, ok := findTournament(state, c.TournamentID)
	if !ok {
		return state, apperr.ErrTournamentNotFound
	}
	if t.Status != domain.TournamentConfiguration {
		return state, apperr.ErrNotInConfiguration
	}

	clone := domain.CloneTournament(t)
	cfg := domain.GroupPhaseConfig{NumberOfGroups: len(c.Groups), Seeding: domain.SeedingManual, Groups: c.Groups}
	if clone.GroupPhaseConfig != nil {
		cfg.TeamsPerGroup = clone.GroupPhaseConfig.TeamsPerGroup
	}
	clone.GroupPhaseConfig = &cfg

	next := state.Clone()
	next.Tournaments[t.ID] = clone
	return next, nil
}

// --- START_TOURNAMENT ----------------------------------------------------

func reduceStartTournament(state domain.ApplicationState, c StartTournament, idGen domain.IDGenerator, clock domain.Clock) (domain.ApplicationState, error) {
	t, ok := findTournament(state, c.TournamentID)
	if !ok {
		return state, apperr.ErrTournamentNotFound
	}
	if t.Status != domain.TournamentConfiguration {
		return state, apperr.ErrAlreadyStarted
	}

	clone := domain.CloneTournament(t)

	switch {
	case clone.System == domain.SystemRoundRobin:
		clone.Matches = GenerateRoundRobin(clone.Teams, clone.NumberOfCourts, 1, idGen)
		clone.Standings = ComputeStandings(clone.Teams, clone.Matches, standingsOpts(clone))

	case clone.System == domain.SystemSwiss:
		clone.CurrentRound = 1
		clone.Standings = ComputeStandings(clone.Teams, nil, standingsOpts(clone))
		clone.Matches = GenerateSwissRound(clone.Teams, clone.Standings, nil, 1, clone.NumberOfCourts, 1, idGen)
		if len(clone.Matches) == 0 {
			clone.Status = domain.TournamentCompleted
		}

	case isGroupBased(clone.System):
		if clone.GroupPhaseConfig == nil {
			return state, apperr.ErrMissingSettings
		}
		if len(clone.GroupPhaseConfig.Groups) == 0 {
			clone.GroupPhaseConfig.Groups = AssignGroups(clone.Teams, clone.GroupPhaseConfig.NumberOfGroups, clone.GroupPhaseConfig.Seeding, nil, idGen)
		}
		matches, groupStandings := GenerateGroupPhase(clone.GroupPhaseConfig.Groups, clone.Teams, clone.NumberOfCourts, idGen)
		clone.Matches = matches
		clone.GroupStandings = groupStandings

	case clone.System == domain.SystemKnockout, clone.System == domain.SystemShortMainKnockout:
		if clone.GroupPhaseConfig == nil || len(clone.GroupPhaseConfig.Groups) == 0 {
			return state, apperr.ErrMissingGroupStandings
		}
		if err := startStandaloneBracket(clone, idGen); err != nil {
			return state, err
		}

	case clone.System == domain.SystemPlacementTree:
		clone.Matches = GeneratePlacementTree(clone.Teams, idGen)

	default:
		return state, apperr.ErrMissingSettings
	}

	if clone.Status != domain.TournamentCompleted {
		clone.Status = domain.TournamentInProgress
	}
	clone.UpdatedAt = clock.Now()

	next := state.Clone()
	next.Tournaments[clone.ID] = clone

	if clone.KnockoutSettings != nil && findChild(next, clone.ID) == nil {
		child, err := MaterializeChildPlaceholder(clone, idGen, clock)
		if err != nil {
			return state, err
		}
		if child != nil {
			next.Tournaments[child.ID] = child
			if cont, ok := next.Containers[clone.ContainerID]; ok {
				containerClone := *cont
				containerClone.Phases = append(append([]domain.PhaseRef(nil), cont.Phases...),
					domain.PhaseRef{TournamentID: child.ID, Order: child.PhaseOrder, Name: child.PhaseName})
				next.Containers[clone.ContainerID] = &containerClone
			}
		}
	}

	return next, nil
}

// startStandaloneBracket generates an SSVB or short-main bracket directly
// over a tournament's own pre-assigned groups (no upstream phase): the
// TeamSource references it wires are resolved immediately against a
// provisional "standings" built from seed order within each group, since
// no group match has been played yet.
func startStandaloneBracket(t *domain.Tournament, idGen domain.IDGenerator) error {
	var matches []*domain.Match
	var err error
	if t.System == domain.SystemKnockout {
		matches, err = GenerateSSVBBracket(len(t.GroupPhaseConfig.Groups), t.GroupPhaseConfig.TeamsPerGroup, t.KnockoutSettings != nil && t.KnockoutSettings.ThirdPlace, idGen)
	} else {
		matches = GenerateShortMainRound(idGen)
	}
	if err != nil {
		return err
	}

	provisional := provisionalGroupStandings(t.GroupPhaseConfig.Groups)
	if len(t.GroupPhaseConfig.Groups) == 3 || (len(t.GroupPhaseConfig.Groups) >= 5 && len(t.GroupPhaseConfig.Groups) <= 8) {
		resolveDynamicGroupRoles(matches, len(t.GroupPhaseConfig.Groups), t.GroupPhaseConfig.Groups, provisional)
	}

	identity := make(map[domain.TeamID]domain.TeamID, len(t.Teams))
	for _, team := range t.Teams {
		identity[team.ID] = team.ID
	}
	fakeParent := &domain.Tournament{GroupPhaseConfig: t.GroupPhaseConfig, GroupStandings: provisional}
	for _, m := range matches {
		resolveTeamSource(m, 'A', fakeParent, identity)
		resolveTeamSource(m, 'B', fakeParent, identity)
		if m.Status == domain.MatchPending && m.HasConcreteTeams() {
			m.Status = domain.MatchScheduled
		}
	}
	applyPlaceholders(matches)
	t.Matches = matches
	t.Standings = ComputeStandings(t.Teams, nil, standingsOpts(t))
	return nil
}

// provisionalGroupStandings ranks each group's teams by their existing
// membership order (seed order within the group), used only when a
// knockout bracket is generated directly over pre-assigned groups with no
// played matches yet to rank by.
func provisionalGroupStandings(groups []domain.Group) []domain.GroupStandingEntry {
	var out []domain.GroupStandingEntry
	for _, g := range groups {
		for i, id := range g.TeamIDs {
			out = append(out, domain.GroupStandingEntry{StandingEntry: domain.StandingEntry{TeamID: id}, GroupID: g.ID, GroupRank: i + 1})
		}
	}
	return out
}

// --- UPDATE_MATCH_SCORE ---------------------------------------------------

func reduceUpdateMatchScore(state domain.ApplicationState, c UpdateMatchScore, clock domain.Clock) (domain.ApplicationState, error) {
	t, ok := findTournament(state, c.TournamentID)
	if !ok {
		return state, apperr.ErrTournamentNotFound
	}
	m := t.MatchByID(c.MatchID)
	if m == nil {
		return state, apperr.ErrMatchNotFound
	}
	if t.Status != domain.TournamentInProgress {
		return state, apperr.ErrTournamentNotRunning
	}

	clone := domain.CloneTournament(t)
	mClone := domain.CloneMatch(clone.MatchByID(c.MatchID))
	mClone.Scores = append([]domain.SetScore(nil), c.Scores...)
	mClone.Status = domain.MatchInProgress
	replaceMatch(clone, mClone)
	clone.UpdatedAt = clock.Now()

	next := state.Clone()
	next.Tournaments[clone.ID] = clone
	return next, nil
}

func replaceMatch(t *domain.Tournament, m *domain.Match) {
	for i, existing := range t.Matches {
		if existing.ID == m.ID {
			t.Matches[i] = m
			return
		}
	}
}

// computeWinner resolves the winner of a completed match's set scores per
// setsPerMatch (§4.9): the side with strictly more set wins; nil
// ("no-winner draw") when sets are equal, which only a setsPerMatch == 2
// format can produce.
func computeWinner(teamA, teamB domain.TeamID, scores []domain.SetScore) *domain.TeamID {
	var aSets, bSets int
	for _, s := range scores {
		switch {
		case s.TeamA > s.TeamB:
			aSets++
		case s.TeamB > s.TeamA:
			bSets++
		}
	}
	switch {
	case aSets > bSets:
		return &teamA
	case bSets > aSets:
		return &teamB
	default:
		return nil
	}
}

// --- COMPLETE_MATCH --------------------------------------------------------

func reduceCompleteMatch(state domain.ApplicationState, c CompleteMatch, idGen domain.IDGenerator, clock domain.Clock) (domain.ApplicationState, error) {
	t, ok := findTournament(state, c.TournamentID)
	if !ok {
		return state, apperr.ErrTournamentNotFound
	}
	orig := t.MatchByID(c.MatchID)
	if orig == nil {
		return state, apperr.ErrMatchNotFound
	}
	if !orig.HasConcreteTeams() {
		return state, apperr.ErrInvalidScore
	}

	clone := domain.CloneTournament(t)
	m := domain.CloneMatch(clone.MatchByID(c.MatchID))
	m.Scores = append([]domain.SetScore(nil), c.Scores...)
	m.WinnerID = computeWinner(*m.TeamAID, *m.TeamBID, m.Scores)
	m.Status = domain.MatchCompleted
	replaceMatch(clone, m)

	PropagateCompletion(clone.Matches, m)

	if isKnockoutFamily(clone.System) && clone.KnockoutSettings == nil {
		// a materialized knockout/placement-tree/short-main CHILD
		// tournament carries its own parent's referee settings via the
		// parent, so refresh referees whenever this round just finished.
		refreshRefereesIfNeeded(state, clone, m)
	}

	if isGroupBased(clone.System) && clone.GroupPhaseConfig != nil {
		clone.GroupStandings = ComputeGroupStandings(clone.GroupPhaseConfig.Groups, clone.Teams, clone.Matches, standingsOpts(clone))
	} else {
		clone.Standings = ComputeStandings(clone.Teams, clone.Matches, standingsOpts(clone))
	}

	// A Swiss tournament completes through GENERATE_NEXT_SWISS_ROUND, not
	// when its current round runs out of playable matches.
	if clone.AllMatchesTerminal() && clone.System != domain.SystemSwiss {
		clone.Status = domain.TournamentCompleted
	}
	clone.UpdatedAt = clock.Now()

	next := state.Clone()
	next.Tournaments[clone.ID] = clone

	if clone.Status == domain.TournamentCompleted {
		if child := findChild(next, clone.ID); child != nil && len(child.Teams) == 0 {
			childClone := domain.CloneTournament(child)
			if err := PopulateChildFromParent(clone, childClone, idGen, clock); err != nil {
				return state, err
			}
			next.Tournaments[childClone.ID] = childClone
		}
	}

	return next, nil
}

func isKnockoutFamily(system domain.System) bool {
	return system == domain.SystemKnockout || system == domain.SystemPlacementTree ||
		system == domain.SystemShortMainKnockout || system == domain.SystemPlayoff
}

// refreshRefereesIfNeeded re-runs C7 for the semifinal and final/third-place
// rounds once their prerequisite round has completed: the SSVB pool for
// those rounds (intermediate losers, quarterfinal losers) only exists
// after that round is fully played (§4.8).
func refreshRefereesIfNeeded(state domain.ApplicationState, child *domain.Tournament, justCompleted *domain.Match) {
	parent := findParent(state, child)
	if parent == nil || parent.KnockoutSettings == nil || !parent.KnockoutSettings.UseReferees || child.System != domain.SystemKnockout {
		return
	}

	// child.Teams[i] is the child-side copy of parent.Teams[i] (see
	// PopulateChildFromParent), so the group-phase results translate by index.
	idMap := make(map[domain.TeamID]domain.TeamID, len(parent.Teams))
	for i, t := range parent.Teams {
		if i < len(child.Teams) {
			idMap[t.ID] = child.Teams[i].ID
		}
	}
	priorOpponents := BuildPriorOpponents(translateMatches(parent.Matches, idMap))
	switch justCompleted.KnockoutRound {
	case domain.RoundIntermediate:
		if RoundIsComplete(child.Matches, domain.RoundIntermediate) {
			UpdateRefereesForRound(child.Matches, domain.RoundSemifinal, child.EliminatedTeamIDs, priorOpponents)
		}
	case domain.RoundQuarterfinal:
		if RoundIsComplete(child.Matches, domain.RoundQuarterfinal) {
			UpdateRefereesForRound(child.Matches, domain.RoundSemifinal, child.EliminatedTeamIDs, priorOpponents)
			UpdateRefereesForRound(child.Matches, domain.RoundFinal, child.EliminatedTeamIDs, priorOpponents)
			UpdateRefereesForRound(child.Matches, domain.RoundThirdPlace, child.EliminatedTeamIDs, priorOpponents)
		}
	}
}

func findParent(state domain.ApplicationState, child *domain.Tournament) *domain.Tournament {
	if child.ParentPhaseID == nil {
		return nil
	}
	t, ok := state.Tournaments[*child.ParentPhaseID]
	if !ok {
		return nil
	}
	return t
}

// --- EDIT_MATCH_SCORE (supplement) ----------------------------------------

func reduceEditMatchScore(state domain.ApplicationState, c EditMatchScore, clock domain.Clock) (domain.ApplicationState, error) {
	t, ok := findTournament(state, c.TournamentID)
	if !ok {
		return state, apperr.ErrTournamentNotFound
	}
	orig := t.MatchByID(c.MatchID)
	if orig == nil {
		return state, apperr.ErrMatchNotFound
	}
	if orig.Status != domain.MatchCompleted {
		return state, apperr.ErrTournamentNotRunning
	}

	clone := domain.CloneTournament(t)
	m := domain.CloneMatch(clone.MatchByID(c.MatchID))
	oldWinner := m.WinnerID

	m.Scores = append([]domain.SetScore(nil), c.Scores...)
	newWinner := computeWinner(*m.TeamAID, *m.TeamBID, m.Scores)
	m.WinnerID = newWinner
	replaceMatch(clone, m)

	winnerChanged := (oldWinner == nil) != (newWinner == nil) || (oldWinner != nil && newWinner != nil && *oldWinner != *newWinner)
	if winnerChanged {
		resetOneHopDependents(clone.Matches, m.ID)
		PropagateCompletion(clone.Matches, m)
	}

	if isGroupBased(clone.System) && clone.GroupPhaseConfig != nil {
		clone.GroupStandings = ComputeGroupStandings(clone.GroupPhaseConfig.Groups, clone.Teams, clone.Matches, standingsOpts(clone))
	} else {
		clone.Standings = ComputeStandings(clone.Teams, clone.Matches, standingsOpts(clone))
	}
	clone.UpdatedAt = clock.Now()

	next := state.Clone()
	next.Tournaments[clone.ID] = clone
	return next, nil
}

// resetOneHopDependents walks every match that already consumed editedID's
// (old) outcome via a one-hop DependsOn edge and resets it: clears the
// resolved side, reverts status to pending, and, if the dependent had
// itself already been played, reopens it too, since its own result is no
// longer grounded in a real outcome.
func resetOneHopDependents(matches []*domain.Match, editedID domain.MatchID) {
	for _, m := range matches {
		if m.DependsOn == nil {
			continue
		}
		touched := false
		if m.DependsOn.TeamA != nil && m.DependsOn.TeamA.MatchID == editedID {
			m.TeamAID = nil
			touched = true
		}
		if m.DependsOn.TeamB != nil && m.DependsOn.TeamB.MatchID == editedID {
			m.TeamBID = nil
			touched = true
		}
		if !touched {
			continue
		}
		if m.Status == domain.MatchCompleted {
			resetOneHopDependents(matches, m.ID)
		}
		m.Scores = nil
		m.WinnerID = nil
		m.Status = domain.MatchPending
	}
}

// --- FORFEIT_TEAM (supplement) --------------------------------------------

func reduceForfeitTeam(state domain.ApplicationState, c ForfeitTeam, idGen domain.IDGenerator, clock domain.Clock) (domain.ApplicationState, error) {
	t, ok := findTournament(state, c.TournamentID)
	if !ok {
		return state, apperr.ErrTournamentNotFound
	}
	if t.Status != domain.TournamentInProgress {
		return state, apperr.ErrTournamentNotRunning
	}
	if t.TeamByID(c.TeamID) == nil {
		return state, apperr.ErrTeamNotFound
	}

	clone := domain.CloneTournament(t)
	for _, m := range clone.Matches {
		if m.Status != domain.MatchScheduled && m.Status != domain.MatchInProgress {
			continue
		}
		if !m.HasConcreteTeams() {
			continue
		}
		if *m.TeamAID != c.TeamID && *m.TeamBID != c.TeamID {
			continue
		}
		winner := m.OtherTeam(c.TeamID)
		if winner == nil {
			continue
		}
		mClone := domain.CloneMatch(m)
		mClone.WinnerID = winner
		mClone.Status = domain.MatchCompleted
		replaceMatch(clone, mClone)
		PropagateCompletion(clone.Matches, mClone)
	}

	if isGroupBased(clone.System) && clone.GroupPhaseConfig != nil {
		clone.GroupStandings = ComputeGroupStandings(clone.GroupPhaseConfig.Groups, clone.Teams, clone.Matches, standingsOpts(clone))
	} else {
		clone.Standings = ComputeStandings(clone.Teams, clone.Matches, standingsOpts(clone))
	}
	if clone.AllMatchesTerminal() && clone.System != domain.SystemSwiss {
		clone.Status = domain.TournamentCompleted
	}
	clone.UpdatedAt = clock.Now()

	next := state.Clone()
	next.Tournaments[clone.ID] = clone

	if clone.Status == domain.TournamentCompleted {
		if child := findChild(next, clone.ID); child != nil && len(child.Teams) == 0 {
			childClone := domain.CloneTournament(child)
			if err := PopulateChildFromParent(clone, childClone, idGen, clock); err != nil {
				return state, err
			}
			next.Tournaments[childClone.ID] = childClone
		}
	}
	return next, nil
}

// --- GENERATE_NEXT_SWISS_ROUND ---------------------------------------------

func reduceGenerateNextSwissRound(state domain.ApplicationState, c GenerateNextSwissRound, idGen domain.IDGenerator, clock domain.Clock) (domain.ApplicationState, error) {
	t, ok := findTournament(state, c.TournamentID)
	if !ok {
		return state, apperr.ErrTournamentNotFound
	}
	if t.System != domain.SystemSwiss {
		return state, apperr.ErrMissingSettings
	}
	if t.Status != domain.TournamentInProgress {
		return state, apperr.ErrTournamentNotRunning
	}
	for _, m := range t.Matches {
		if m.Round == t.CurrentRound && (m.Status == domain.MatchScheduled || m.Status == domain.MatchInProgress) {
			return state, apperr.ErrRoundNotYetComplete
		}
	}

	clone := domain.CloneTournament(t)
	nextRound := clone.CurrentRound + 1
	startingNumber := len(clone.Matches) + 1
	newMatches := GenerateSwissRound(clone.Teams, clone.Standings, clone.Matches, nextRound, clone.NumberOfCourts, startingNumber, idGen)

	if len(newMatches) == 0 || nextRound > clone.NumberOfRounds {
		clone.Status = domain.TournamentCompleted
	} else {
		clone.CurrentRound = nextRound
		clone.Matches = append(clone.Matches, newMatches...)
	}
	clone.UpdatedAt = clock.Now()

	next := state.Clone()
	next.Tournaments[clone.ID] = clone
	return next, nil
}

// --- RESET_TOURNAMENT / DELETE_* -------------------------------------------

func reduceResetTournament(state domain.ApplicationState, c ResetTournament, clock domain.Clock) (domain.ApplicationState, error) {
	t, ok := findTournament(state, c.TournamentID)
	if !ok {
		return state, apperr.ErrTournamentNotFound
	}

	next := state.Clone()

	if child := findChild(next, t.ID); child != nil {
		delete(next.Tournaments, child.ID)
		if cont, ok := next.Containers[t.ContainerID]; ok {
			containerClone := *cont
			var phases []domain.PhaseRef
			for _, p := range cont.Phases {
				if p.TournamentID != child.ID {
					phases = append(phases, p)
				}
			}
			containerClone.Phases = phases
			next.Containers[t.ContainerID] = &containerClone
		}
	}

	clone := domain.CloneTournament(t)
	clone.Matches = nil
	clone.Standings = nil
	clone.GroupStandings = nil
	clone.EliminatedTeamIDs = nil
	clone.CurrentRound = 0
	clone.Status = domain.TournamentConfiguration
	clone.UpdatedAt = clock.Now()
	if clone.GroupPhaseConfig != nil {
		cfg := *clone.GroupPhaseConfig
		cfg.Groups = nil
		clone.GroupPhaseConfig = &cfg
	}

	next.Tournaments[clone.ID] = clone
	return next, nil
}

func reduceDeleteTournament(state domain.ApplicationState, c DeleteTournament) (domain.ApplicationState, error) {
	t, ok := findTournament(state, c.TournamentID)
	if !ok {
		return state, apperr.ErrTournamentNotFound
	}
	return reduceDeleteContainer(state, DeleteContainer{ContainerID: t.ContainerID})
}

func reduceDeleteContainer(state domain.ApplicationState, c DeleteContainer) (domain.ApplicationState, error) {
	cont, ok := state.Containers[c.ContainerID]
	if !ok {
		return state, apperr.ErrContainerNotFound
	}

	next := state.Clone()
	for _, p := range cont.Phases {
		delete(next.Tournaments, p.TournamentID)
	}
	delete(next.Containers, c.ContainerID)
	if next.CurrentContainerID != nil && *next.CurrentContainerID == c.ContainerID {
		next.CurrentContainerID = nil
	}
	return next, nil
}

// --- CREATE_KNOCKOUT_TOURNAMENT / CREATE_FINALS_TOURNAMENT ----------------

func reduceCreateChildExplicit(state domain.ApplicationState, parentID domain.TournamentID, idGen domain.IDGenerator, clock domain.Clock) (domain.ApplicationState, error) {
	t, ok := findTournament(state, parentID)
	if !ok {
		return state, apperr.ErrTournamentNotFound
	}
	if existing := findChild(state, parentID); existing != nil {
		return state, nil // idempotent: a child already exists
	}
	if t.KnockoutSettings == nil {
		return state, apperr.ErrMissingSettings
	}

	child, err := MaterializeChildPlaceholder(t, idGen, clock)
	if err != nil {
		return state, err
	}
	if child == nil {
		return state, nil
	}

	next := state.Clone()
	next.Tournaments[child.ID] = child
	if cont, ok := next.Containers[t.ContainerID]; ok {
		containerClone := *cont
		containerClone.Phases = append(append([]domain.PhaseRef(nil), cont.Phases...),
			domain.PhaseRef{TournamentID: child.ID, Order: child.PhaseOrder, Name: child.PhaseName})
		next.Containers[t.ContainerID] = &containerClone
	}
	return next, nil
}

package domain

// ApplicationState is the engine's single root of truth. It is always
// replaced wholesale by the reducer (package engine), never mutated by a
// collaborator, but replacement uses structural sharing: a command that
// only touches one Tournament clones that Tournament (and the Match(es) it
// changes) and reuses every other pointer unchanged, per §9's "avoid deep
// structural cloning per command" guidance.
type ApplicationState struct {
	Tournaments         map[TournamentID]*Tournament
	Containers          map[ContainerID]*TournamentContainer
	CurrentTournamentID *TournamentID
	CurrentContainerID  *ContainerID
}

// NewApplicationState returns an empty, ready-to-use state.
func NewApplicationState() ApplicationState {
	return ApplicationState{
		Tournaments: make(map[TournamentID]*Tournament),
		Containers:  make(map[ContainerID]*TournamentContainer),
	}
}

// Clone returns a shallow copy of the state: new top-level maps, but the
// same Tournament/TournamentContainer pointers. Callers that intend to
// mutate a specific entity must replace its map entry with a new pointer
// rather than writing through the old one.
func (s ApplicationState) Clone() ApplicationState {
	out := ApplicationState{
		Tournaments:         make(map[TournamentID]*Tournament, len(s.Tournaments)),
		Containers:          make(map[ContainerID]*TournamentContainer, len(s.Containers)),
		CurrentTournamentID: s.CurrentTournamentID,
		CurrentContainerID:  s.CurrentContainerID,
	}
	for k, v := range s.Tournaments {
		out.Tournaments[k] = v
	}
	for k, v := range s.Containers {
		out.Containers[k] = v
	}
	return out
}

// CloneTournament returns a shallow copy of t safe to mutate in place: its
// Teams/Matches/Standings slices are copied (so append/index-assignment on
// the copy never touches the original), but individual *Match pointers
// inside are shared until a caller explicitly replaces one.
func CloneTournament(t *Tournament) *Tournament {
	clone := *t
	clone.Teams = append([]Team(nil), t.Teams...)
	clone.Matches = append([]*Match(nil), t.Matches...)
	clone.Standings = append([]StandingEntry(nil), t.Standings...)
	clone.GroupStandings = append([]GroupStandingEntry(nil), t.GroupStandings...)
	clone.EliminatedTeamIDs = append([]TeamID(nil), t.EliminatedTeamIDs...)
	if t.GroupPhaseConfig != nil {
		cfg := *t.GroupPhaseConfig
		cfg.Groups = append([]Group(nil), t.GroupPhaseConfig.Groups...)
		clone.GroupPhaseConfig = &cfg
	}
	if t.KnockoutSettings != nil {
		ks := *t.KnockoutSettings
		clone.KnockoutSettings = &ks
	}
	return &clone
}

// CloneMatch returns a shallow copy of m safe to mutate in place.
func CloneMatch(m *Match) *Match {
	clone := *m
	clone.Scores = append([]SetScore(nil), m.Scores...)
	if m.DependsOn != nil {
		d := *m.DependsOn
		clone.DependsOn = &d
	}
	return &clone
}

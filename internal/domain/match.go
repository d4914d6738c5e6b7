package domain

// MatchStatus is a closed tagged variant (§9 "Sum-type discipline").
type MatchStatus string

const (
	MatchPending    MatchStatus = "pending"
	MatchScheduled  MatchStatus = "scheduled"
	MatchInProgress MatchStatus = "in-progress"
	MatchCompleted  MatchStatus = "completed"
)

// KnockoutRound discriminates bracket position within the knockout family
// generators (§4.5). Only knockout/placement/short-main matches carry one.
type KnockoutRound string

const (
	RoundIntermediate    KnockoutRound = "intermediate"
	RoundQuarterfinal    KnockoutRound = "quarterfinal"
	RoundSemifinal       KnockoutRound = "semifinal"
	RoundThirdPlace      KnockoutRound = "third-place"
	RoundFinal           KnockoutRound = "final"
	RoundPlacement1      KnockoutRound = "placement-round-1"
	RoundPlacement2      KnockoutRound = "placement-round-2"
	RoundPlacement3      KnockoutRound = "placement-round-3"
	RoundPlacement4      KnockoutRound = "placement-round-4"
	RoundPlacementFinal  KnockoutRound = "placement-final"
	RoundQualification   KnockoutRound = "qualification"
	RoundTopQuarterfinal KnockoutRound = "top-quarterfinal"
	RoundTopSemifinal    KnockoutRound = "top-semifinal"
	RoundTopFinal        KnockoutRound = "top-final"
	RoundPlacement1316   KnockoutRound = "placement-13-16"
	RoundPlacement912    KnockoutRound = "placement-9-12"
	RoundPlacement58     KnockoutRound = "placement-5-8"
)

// ResultKind discriminates which side of a finished match a dependency
// refers to.
type ResultKind string

const (
	ResultWinner ResultKind = "winner"
	ResultLoser  ResultKind = "loser"
)

// TeamSourceKind discriminates where a statically-bound team reference
// resolves from.
type TeamSourceKind string

const (
	SourceFromGroup    TeamSourceKind = "group"
	SourceFromStanding TeamSourceKind = "standing"
)

// TeamSource binds a not-yet-known participant to a future standings
// lookup, resolved once at phase-transition time (C8 populate step).
type TeamSource struct {
	Kind       TeamSourceKind
	GroupIndex int // valid when Kind == SourceFromGroup; 0-based
	Rank       int // 1-based group rank or flat standing rank
}

// MatchRef is one dynamic dependency edge: "the team for this slot is the
// winner/loser of match MatchID".
type MatchRef struct {
	MatchID MatchID
	Result  ResultKind
}

// DependsOn holds the 0-2 dynamic dependency edges of a match. A nil pointer
// on either side means that side is not (or no longer) dependent.
type DependsOn struct {
	TeamA *MatchRef
	TeamB *MatchRef
}

// SetScore is one set/game's point tally.
type SetScore struct {
	TeamA int
	TeamB int
}

// Interval is an inclusive placement range, e.g. {1,16} or {9,12}.
type Interval struct {
	Start int
	End   int
}

// Match is the central node of the engine: a DAG vertex whose participants
// may be concrete teams or dynamically/statically resolved references.
type Match struct {
	ID          MatchID
	Round       int // 1-indexed
	MatchNumber int // 1-indexed within tournament
	CourtNumber int // 0 means unassigned

	TeamAID *TeamID
	TeamBID *TeamID

	Scores   []SetScore
	WinnerID *TeamID // nil on incomplete matches; also nil on a resolved no-winner draw

	Status MatchStatus

	// Bracket metadata (§3); zero values when not applicable.
	KnockoutRound     KnockoutRound
	BracketPosition   int
	PlayoffForPlace   int
	PlacementInterval *Interval
	WinnerInterval    *Interval
	LoserInterval     *Interval
	IsPlayoff         bool

	TeamASource *TeamSource
	TeamBSource *TeamSource

	DependsOn *DependsOn

	RefereeTeamID *TeamID

	// PlaceholderA/B/Referee are rendered by collaborators when the
	// corresponding ID is not yet known.
	PlaceholderA       string
	PlaceholderB       string
	PlaceholderReferee string
}

// HasConcreteTeams reports whether both sides are resolved to real teams.
func (m *Match) HasConcreteTeams() bool {
	return m.TeamAID != nil && m.TeamBID != nil
}

// OtherTeam returns the participant id on the opposite side from teamID, or
// nil if teamID doesn't appear in the match or the other side is unresolved.
func (m *Match) OtherTeam(teamID TeamID) *TeamID {
	if m.TeamAID != nil && *m.TeamAID == teamID {
		return m.TeamBID
	}
	if m.TeamBID != nil && *m.TeamBID == teamID {
		return m.TeamAID
	}
	return nil
}

// IsTerminal reports whether the match can no longer change on its own: it
// is either completed, or pending with nothing left to resolve it this pass.
func (m *Match) IsTerminal() bool {
	return m.Status == MatchCompleted || m.Status == MatchPending
}

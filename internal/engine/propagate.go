package engine

import "github.com/braccet/tournament-engine/internal/domain"

// PropagateCompletion implements C6: given a match that has just completed
// (with matches already holding its final state), resolves every other
// match's dependsOn edge that points at it, assigning the referred team
// to the appropriate side and promoting pending -> scheduled once both
// sides are concrete.
//
// A null winner (2-set draw) produces no resolvable "winner" and still
// produces no resolvable "loser": matches depending on either side of a
// drawn match are skipped entirely, same as a no-op, per §4.6.
//
// This is single-step: it does not recurse into matches it just made
// scheduled. The reducer drives further propagation, if any, through
// later completions.
func PropagateCompletion(matches []*domain.Match, completed *domain.Match) {
	if completed.WinnerID == nil {
		return
	}
	winner := *completed.WinnerID
	loser := completed.OtherTeam(winner)
	if loser == nil {
		return
	}

	for _, m := range matches {
		if m.ID == completed.ID || m.DependsOn == nil {
			continue
		}
		resolveSide(m, completed.ID, m.DependsOn.TeamA, func(id domain.TeamID) { m.TeamAID = &id }, winner, *loser)
		resolveSide(m, completed.ID, m.DependsOn.TeamB, func(id domain.TeamID) { m.TeamBID = &id }, winner, *loser)

		if m.Status == domain.MatchPending && m.HasConcreteTeams() {
			m.Status = domain.MatchScheduled
		}
	}
}

func resolveSide(m *domain.Match, completedID domain.MatchID, ref *domain.MatchRef, assign func(domain.TeamID), winner, loser domain.TeamID) {
	if ref == nil || ref.MatchID != completedID {
		return
	}
	switch ref.Result {
	case domain.ResultWinner:
		assign(winner)
	case domain.ResultLoser:
		assign(loser)
	}
}

package engine

import (
	"fmt"
	"time"

	"github.com/braccet/tournament-engine/internal/domain"
)

// sequentialIDs is the test double for domain.IDGenerator: deterministic,
// sequential ids so test assertions can name a match/team by its mint order
// instead of matching a UUID pattern.
type sequentialIDs struct{ next int }

func (s *sequentialIDs) NewID() string {
	s.next++
	return fmt.Sprintf("id-%d", s.next)
}

// fixedClock is the test double for domain.Clock.
type fixedClock struct{ at time.Time }

func (c fixedClock) Now() time.Time { return c.at }

func newTestClock() fixedClock {
	return fixedClock{at: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func makeTeams(n int) []domain.Team {
	teams := make([]domain.Team, n)
	for i := 0; i < n; i++ {
		teams[i] = domain.Team{
			ID:           domain.TeamID(fmt.Sprintf("team-%d", i+1)),
			Name:         fmt.Sprintf("Team %d", i+1),
			SeedPosition: i + 1,
		}
	}
	return teams
}

// completeMatch is a test helper mutating m in place to a completed state
// with the chosen side winning a single set 21-15, mirroring how a
// CompleteMatch command would leave it.
func completeMatch(m *domain.Match, aWins bool) {
	m.Status = domain.MatchCompleted
	if aWins {
		m.Scores = []domain.SetScore{{TeamA: 21, TeamB: 15}}
		m.WinnerID = m.TeamAID
	} else {
		m.Scores = []domain.SetScore{{TeamA: 15, TeamB: 21}}
		m.WinnerID = m.TeamBID
	}
}

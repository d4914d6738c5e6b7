package domain

import "time"

// ContainerStatus mirrors the lifecycle of its active phase.
type ContainerStatus string

const (
	ContainerConfiguration ContainerStatus = "configuration"
	ContainerInProgress    ContainerStatus = "in-progress"
	ContainerCompleted     ContainerStatus = "completed"
)

// PhaseRef is one entry in a container's ordered phase sequence.
type PhaseRef struct {
	TournamentID TournamentID
	Order        int
	Name         string
}

// TournamentContainer groups a sequence of phase Tournaments into a single
// end-to-end competition.
type TournamentContainer struct {
	ID                ContainerID
	Name              string
	Phases            []PhaseRef
	CurrentPhaseIndex int
	Status            ContainerStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PhaseByTournament returns the PhaseRef for the given tournament, or nil.
func (c *TournamentContainer) PhaseByTournament(id TournamentID) *PhaseRef {
	for i := range c.Phases {
		if c.Phases[i].TournamentID == id {
			return &c.Phases[i]
		}
	}
	return nil
}

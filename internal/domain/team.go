package domain

// Team is the smallest entity in the model: it is owned by exactly one
// Tournament and referenced by value (its ID) from every Match.
type Team struct {
	ID           TeamID
	Name         string
	SeedPosition int // 1..N, assigned equal to input order on CREATE_TOURNAMENT
}

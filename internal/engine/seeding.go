// Package engine is the deterministic reducer and the generators it calls:
// standings (C1), round-robin (C2), Swiss (C3), group-phase (C4), the
// knockout-family bracket generators (C5), the dependency propagator (C6),
// the referee assigner (C7), the phase orchestrator (C8) and the reducer
// itself (C9). No file in this package performs I/O; every function is a
// total, pure transformation of its inputs.
package engine

// seedPairings returns the standard tournament seed pairing list for a
// bracket of the given size (a power of two): for size 8 this yields
// [[1,8],[4,5],[2,7],[3,6]], seed N always meets seed size+1-N at the round
// it is generated for, and 1-vs-2 can only happen in the final.
func seedPairings(bracketSize int) [][2]int {
	if bracketSize < 2 {
		return nil
	}
	return buildSeedPairings(bracketSize)
}

func buildSeedPairings(size int) [][2]int {
	if size == 2 {
		return [][2]int{{1, 2}}
	}
	smaller := buildSeedPairings(size / 2)
	result := make([][2]int, len(smaller)*2)
	for i, pair := range smaller {
		result[i*2] = [2]int{pair[0], size + 1 - pair[0]}
		result[i*2+1] = [2]int{pair[1], size + 1 - pair[1]}
	}
	return result
}

// snakeAssign distributes 0..numberOfTeams-1 seed indices across
// numberOfGroups groups in serpentine order: row 0 fills groups
// left-to-right, row 1 fills them right-to-left, and so on (§4.4 "snake
// seeding"). The input must already be sorted by SeedPosition ascending.
//
// Returns, for each group index (0-based), the ordered list of seed indices
// (into the sorted input) assigned to it.
func snakeAssign(numberOfTeams, numberOfGroups int) [][]int {
	groups := make([][]int, numberOfGroups)
	row := 0
	for seed := 0; seed < numberOfTeams; seed++ {
		col := seed % numberOfGroups
		if row%2 == 1 {
			col = numberOfGroups - 1 - col
		}
		groups[col] = append(groups[col], seed)
		if (seed+1)%numberOfGroups == 0 {
			row++
		}
	}
	return groups
}

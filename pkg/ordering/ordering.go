// Package ordering maintains the user-controlled order of entities within a partition
// (items within a category, branches within an item) using integer positions.
//
// Inserts at either end only touch the new entity. An explicit reorder renumbers exactly
// the ids it is given, 1-based; partition members left out of a partial reorder keep
// their old positions, so positions across the partition can repeat or leave gaps.
package ordering

// Front returns a position that sorts before all the given positions.
// An empty partition starts at 1.
func Front(positions []int) int {
	if len(positions) == 0 {
		return 1
	}

	lowest := positions[0]
	for _, p := range positions[1:] {
		if p < lowest {
			lowest = p
		}
	}

	return lowest - 1
}

// Back returns a position that sorts after all the given positions.
// An empty partition starts at 1.
func Back(positions []int) int {
	if len(positions) == 0 {
		return 1
	}

	highest := positions[0]
	for _, p := range positions[1:] {
		if p > highest {
			highest = p
		}
	}

	return highest + 1
}

// Positions collects the positions of the entities that belong to the partition.
func Positions[T any](entities []T, member func(T) bool, position func(T) int) []int {
	positions := []int{}

	for _, e := range entities {
		if member(e) {
			positions = append(positions, position(e))
		}
	}

	return positions
}

// Assignment is the position an entity takes after a reorder.
type Assignment struct {
	ID       int64
	Position int
}

// Reorder numbers ids from 1 in the order given.
func Reorder(ids []int64) []Assignment {
	assignments := make([]Assignment, 0, len(ids))

	for i, id := range ids {
		assignments = append(assignments, Assignment{ID: id, Position: i + 1})
	}

	return assignments
}

// Partition narrows a requested order to the ids sharing the partition key of the
// first known id. keyOf reports the key of an id and whether the id exists at all.
// Unknown ids, ids from another partition and repeated ids are returned in dropped.
func Partition[K comparable](ids []int64, keyOf func(id int64) (K, bool)) (kept []int64, dropped []int64) {
	var (
		key   K
		found bool
	)

	seen := map[int64]bool{}

	for _, id := range ids {
		k, ok := keyOf(id)
		if !ok || seen[id] {
			dropped = append(dropped, id)

			continue
		}

		if !found {
			key = k
			found = true
		}

		if k != key {
			dropped = append(dropped, id)

			continue
		}

		seen[id] = true
		kept = append(kept, id)
	}

	return kept, dropped
}

// Move returns ids with the entry at index from moved to index to, the shape a
// drag or a move-up/move-down keypress produces. Out of range indexes return a copy
// of ids unchanged.
func Move(ids []int64, from, to int) []int64 {
	out := append([]int64{}, ids...)

	if from < 0 || from >= len(out) || to < 0 || to >= len(out) || from == to {
		return out
	}

	moved := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append([]int64{moved}, out[to:]...)...)

	return out
}

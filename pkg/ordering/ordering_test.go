package ordering_test

import (
	"sort"
	"testing"

	"github.com/matt-steen/date-ideas/pkg/ordering"
	"github.com/stretchr/testify/assert"
)

func TestFrontAndBack(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	assert.Equal(1, ordering.Front(nil))
	assert.Equal(1, ordering.Back(nil))
	assert.Equal(-3, ordering.Front([]int{4, -2, 7}))
	assert.Equal(8, ordering.Back([]int{4, -2, 7}))
}

func TestReorder(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	assert.Empty(ordering.Reorder(nil))
	assert.Equal(
		[]ordering.Assignment{{ID: 30, Position: 1}, {ID: 10, Position: 2}, {ID: 20, Position: 3}},
		ordering.Reorder([]int64{30, 10, 20}),
	)
}

func TestPartition(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	categories := map[int64]string{1: "food", 2: "food", 3: "place", 4: "food"}
	keyOf := func(id int64) (string, bool) {
		c, ok := categories[id]

		return c, ok
	}

	kept, dropped := ordering.Partition([]int64{99, 2, 3, 1, 2, 4}, keyOf)

	// 99 is unknown, so the partition comes from 2
	assert.Equal([]int64{2, 1, 4}, kept)
	assert.Equal([]int64{99, 3, 2}, dropped)
}

func TestMove(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	ids := []int64{1, 2, 3, 4}

	assert.Equal([]int64{2, 3, 1, 4}, ordering.Move(ids, 0, 2))
	assert.Equal([]int64{4, 1, 2, 3}, ordering.Move(ids, 3, 0))
	assert.Equal([]int64{1, 2, 3, 4}, ordering.Move(ids, 3, 4))
	// the input is not modified
	assert.Equal([]int64{1, 2, 3, 4}, ids)
}

// partition is a toy id -> position map used to replay sequences of operations.
type partition map[int64]int

func (p partition) positions() []int {
	positions := []int{}
	for _, pos := range p {
		positions = append(positions, pos)
	}

	return positions
}

// sorted returns the ids ordered by position, then id.
func (p partition) sorted() []int64 {
	ids := []int64{}
	for id := range p {
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool {
		if p[ids[i]] != p[ids[j]] {
			return p[ids[i]] < p[ids[j]]
		}

		return ids[i] < ids[j]
	})

	return ids
}

func TestOrderSurvivesInsertsAndReorder(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	p := partition{}

	p[1] = ordering.Front(p.positions())
	p[2] = ordering.Front(p.positions())
	p[3] = ordering.Back(p.positions())
	p[4] = ordering.Front(p.positions())

	assert.Equal([]int64{4, 2, 1, 3}, p.sorted())

	for _, a := range ordering.Reorder([]int64{3, 1, 4, 2}) {
		p[a.ID] = a.Position
	}

	assert.Equal([]int64{3, 1, 4, 2}, p.sorted())

	// later extreme inserts do not disturb the reordered run
	p[5] = ordering.Front(p.positions())
	p[6] = ordering.Back(p.positions())

	assert.Equal([]int64{5, 3, 1, 4, 2, 6}, p.sorted())
}

func TestPartialReorderKeepsOtherPositions(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	p := partition{1: 1, 2: 2, 3: 3, 4: 4}

	for _, a := range ordering.Reorder([]int64{4, 3}) {
		p[a.ID] = a.Position
	}

	// 1 and 2 are untouched, so positions repeat
	assert.Equal(partition{1: 1, 2: 2, 3: 2, 4: 1}, p)
}

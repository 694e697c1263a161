package game

import (
	"math/rand"
	"testing"

	"github.com/jason-s-yu/memoria/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBoard(t *testing.T) *Board {
	b := NewBoard()
	b.Reset(testDeck)
	return b
}

func TestMemoryObserveAndForget(t *testing.T) {
	m := NewMemory()
	m.Observe("A", 6)
	m.Observe("A", 0)
	m.Observe("A", 0)
	m.Observe("B", 1)

	assert.Equal(t, []int{0, 6}, m.Positions("A"))
	assert.Equal(t, []string{"A", "B"}, m.Icons())
	assert.Equal(t, 2, m.Len())

	m.Forget("A")
	assert.False(t, m.Knows("A"))
	assert.Empty(t, m.Positions("A"))
	assert.Equal(t, map[string][]int{"B": {1}}, m.Snapshot())

	rebuilt := MemoryFromSnapshot(map[string][]int{"C": {2, 8}})
	assert.Equal(t, []int{2, 8}, rebuilt.Positions("C"))

	m.Reset()
	assert.Zero(t, m.Len())
}

func TestKnowledgeChance(t *testing.T) {
	assert.Equal(t, 0.4, KnowledgeChance(models.DifficultyEasy))
	assert.Equal(t, 0.7, KnowledgeChance(models.DifficultyMedium))
	assert.Equal(t, 1.0, KnowledgeChance(models.DifficultyHard))
}

func TestPickPairPrefersKnownPair(t *testing.T) {
	b := testBoard(t)
	m := NewMemory()
	m.Observe("C", 2)
	m.Observe("C", 8)
	m.Observe("D", 3)

	for seed := int64(0); seed < 50; seed++ {
		a, c, ok := PickPair(b, m, 1.0, rand.New(rand.NewSource(seed)))
		require.True(t, ok)
		assert.Equal(t, [2]int{2, 8}, [2]int{a, c})
	}
}

func TestPickPairCompletesKnownSingle(t *testing.T) {
	b := testBoard(t)
	m := NewMemory()
	m.Observe("E", 4)

	for seed := int64(0); seed < 50; seed++ {
		a, c, ok := PickPair(b, m, 1.0, rand.New(rand.NewSource(seed)))
		require.True(t, ok)
		assert.Equal(t, 4, a, "the remembered single is tried first")
		assert.NotEqual(t, a, c)
		assert.True(t, isEligible(b, c))
	}
}

func TestPickPairNeverChoosesIneligible(t *testing.T) {
	b := testBoard(t)
	b.SetStatus(0, models.StatusMatched)
	b.SetStatus(6, models.StatusMatched)
	b.SetStatus(1, models.StatusFlipped)

	m := NewMemory()
	m.Observe("A", 0) // stale entry for a matched icon
	m.Observe("A", 6)

	for seed := int64(0); seed < 200; seed++ {
		for _, k := range []float64{0, 0.4, 0.7, 1} {
			a, c, ok := PickPair(b, m, k, rand.New(rand.NewSource(seed)))
			require.True(t, ok)
			assert.NotEqual(t, a, c)
			assert.True(t, isEligible(b, a), "seed %d k %.1f picked %d", seed, k, a)
			assert.True(t, isEligible(b, c), "seed %d k %.1f picked %d", seed, k, c)
		}
	}
}

func TestPickPairNoCards(t *testing.T) {
	b := testBoard(t)
	for i := 0; i < b.Len(); i++ {
		if i != 3 {
			b.SetStatus(i, models.StatusMatched)
		}
	}
	_, _, ok := PickPair(b, NewMemory(), 1.0, rand.New(rand.NewSource(1)))
	assert.False(t, ok, "one hidden card is not enough for a turn")
}

func TestPickPairZeroKnowledgeIgnoresMemory(t *testing.T) {
	b := testBoard(t)
	m := NewMemory()
	m.Observe("B", 1)
	m.Observe("B", 7)

	hits := 0
	for seed := int64(0); seed < 300; seed++ {
		a, c, ok := PickPair(b, m, 0, rand.New(rand.NewSource(seed)))
		require.True(t, ok)
		if (a == 1 && c == 7) || (a == 7 && c == 1) {
			hits++
		}
	}
	assert.Less(t, hits, 30, "with k=0 the known pair should only come up by chance")
}

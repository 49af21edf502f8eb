package pathfinding

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriorityQueuePopsInPriorityOrder(t *testing.T) {
	q := NewPriorityQueue[int]()
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		p := rng.Intn(50)
		q.Push(p, p)
	}
	require.Equal(t, 200, q.Len())

	last := -1
	for q.Len() > 0 {
		item, priority, ok := q.Pop()
		require.True(t, ok)
		assert.Equal(t, item, priority)
		assert.GreaterOrEqual(t, priority, last)
		last = priority
	}
	_, _, ok := q.Pop()
	assert.False(t, ok)
}

func TestPriorityQueueTiesAreFIFO(t *testing.T) {
	q := NewPriorityQueue[string]()
	q.Push("b", 2)
	q.Push("a1", 1)
	q.Push("a2", 1)
	q.Push("a3", 1)

	item, _, ok := q.Peek()
	require.True(t, ok)
	assert.Equal(t, "a1", item)

	var order []string
	for q.Len() > 0 {
		item, _, _ := q.Pop()
		order = append(order, item)
	}
	assert.Equal(t, []string{"a1", "a2", "a3", "b"}, order)
}

package pathfinding

import "container/heap"

// PriorityQueue is a binary min-heap keyed by integer priority. Items with
// equal priority leave in insertion order.
type PriorityQueue[T any] struct {
	entries entryHeap[T]
	seq     uint64
}

func NewPriorityQueue[T any]() *PriorityQueue[T] {
	return &PriorityQueue[T]{}
}

// Push inserts item with the given priority in O(log n).
func (q *PriorityQueue[T]) Push(item T, priority int) {
	heap.Push(&q.entries, &queueEntry[T]{item: item, priority: priority, seq: q.seq})
	q.seq++
}

// Pop removes the item with the lowest priority. ok is false when empty.
func (q *PriorityQueue[T]) Pop() (item T, priority int, ok bool) {
	if q.entries.Len() == 0 {
		return item, 0, false
	}
	entry := heap.Pop(&q.entries).(*queueEntry[T])
	return entry.item, entry.priority, true
}

// Peek returns the lowest priority item without removing it.
func (q *PriorityQueue[T]) Peek() (item T, priority int, ok bool) {
	if q.entries.Len() == 0 {
		return item, 0, false
	}
	entry := q.entries[0]
	return entry.item, entry.priority, true
}

func (q *PriorityQueue[T]) Len() int { return q.entries.Len() }

type queueEntry[T any] struct {
	item     T
	priority int
	seq      uint64
	index    int
}

type entryHeap[T any] []*queueEntry[T]

func (h entryHeap[T]) Len() int { return len(h) }
func (h entryHeap[T]) Less(i, j int) bool {
	if h[i].priority != h[j].priority {
		return h[i].priority < h[j].priority
	}
	return h[i].seq < h[j].seq
}
func (h entryHeap[T]) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *entryHeap[T]) Push(x any) {
	entry := x.(*queueEntry[T])
	entry.index = len(*h)
	*h = append(*h, entry)
}

func (h *entryHeap[T]) Pop() any {
	old := *h
	n := len(old)
	entry := old[n-1]
	old[n-1] = nil
	entry.index = -1
	*h = old[:n-1]
	return entry
}

// SPDX-License-Identifier: MIT

// Package pq provides the min-priority queue shared by the flooding and
// shortest-path engines.
//
// Items are cell indices keyed by a float64 priority. Among equal
// priorities items leave in insertion order (FIFO), which is what makes
// priority-flood and Dijkstra outputs reproducible across runs.
//
// Complexity: Push and Pop are O(log n). Decrease-key is lazy: push a
// duplicate and skip stale entries on Pop, as the shortest-path code does.
package pq

import "container/heap"

// item is one queued cell.
type item struct {
	index    int     // flat cell index
	priority float64 // smaller leaves first
	seq      uint64  // insertion counter; breaks ties FIFO
}

// itemHeap implements heap.Interface.
type itemHeap []item

// Len returns the number of items in the heap.
func (h itemHeap) Len() int { return len(h) }

// Less orders by priority, then by insertion sequence.
func (h itemHeap) Less(i, j int) bool {
	if h[i].priority != h[j].priority {
		return h[i].priority < h[j].priority
	}
	return h[i].seq < h[j].seq
}

// Swap swaps two elements in the heap.
func (h itemHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

// Push is called by heap.Push; x must be an item.
func (h *itemHeap) Push(x interface{}) { *h = append(*h, x.(item)) }

// Pop is called by heap.Pop.
func (h *itemHeap) Pop() interface{} {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]

	return it
}

// Queue is a min-priority queue of cell indices. The zero value is ready to use.
type Queue struct {
	h   itemHeap
	seq uint64
}

// New returns a Queue with room for capacity items.
func New(capacity int) *Queue {
	return &Queue{h: make(itemHeap, 0, capacity)}
}

// Len returns the number of queued items, stale duplicates included.
func (q *Queue) Len() int { return len(q.h) }

// Push queues index with the given priority.
func (q *Queue) Push(index int, priority float64) {
	heap.Push(&q.h, item{index: index, priority: priority, seq: q.seq})
	q.seq++
}

// Pop removes the item with the smallest priority (oldest first on ties).
// ok is false when the queue is empty.
func (q *Queue) Pop() (index int, priority float64, ok bool) {
	if len(q.h) == 0 {
		return 0, 0, false
	}
	it := heap.Pop(&q.h).(item)
	return it.index, it.priority, true
}


package search

import (
	"errors"
	"sort"
)

// ErrEmptyQueue is returned when removing from an empty queue.
var ErrEmptyQueue = errors.New("search: empty queue")

// Entry is a frontier entry: a point's coordinates and its priority.
// Lower priority is visited sooner.
type Entry struct {
	X        int
	Y        int
	Priority float64
}

type queued struct {
	Entry
	seq uint64
}

// Queue is a concrete-typed min-heap of frontier entries.
// Equal priorities come out last-in-first-out: the later insertion carries a
// higher sequence number and sorts first.
type Queue struct {
	items   []queued
	nextSeq uint64
	counts  map[Entry]int
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{
		items:  make([]queued, 0, 64),
		counts: make(map[Entry]int),
	}
}

func (q *Queue) Len() int { return len(q.items) }

// Insert adds e to the queue.
func (q *Queue) Insert(e Entry) {
	q.nextSeq++
	q.items = append(q.items, queued{Entry: e, seq: q.nextSeq})
	q.counts[e]++
	q.siftUp(len(q.items) - 1)
}

// Remove pops the lowest-priority entry.
func (q *Queue) Remove() (Entry, error) {
	n := len(q.items)
	if n == 0 {
		return Entry{}, ErrEmptyQueue
	}
	item := q.items[0]
	q.items[0] = q.items[n-1]
	q.items = q.items[:n-1]
	if len(q.items) > 0 {
		q.siftDown(0)
	}
	if q.counts[item.Entry]--; q.counts[item.Entry] == 0 {
		delete(q.counts, item.Entry)
	}
	return item.Entry, nil
}

// Peek returns the entry Remove would return next.
func (q *Queue) Peek() (Entry, bool) {
	if len(q.items) == 0 {
		return Entry{}, false
	}
	return q.items[0].Entry, true
}

// Contains reports whether an identical (x, y, priority) entry is queued.
func (q *Queue) Contains(x, y int, priority float64) bool {
	return q.counts[Entry{X: x, Y: y, Priority: priority}] > 0
}

// Snapshot returns a copy of the queued entries in removal order.
func (q *Queue) Snapshot() []Entry {
	items := make([]queued, len(q.items))
	copy(items, q.items)
	sort.Slice(items, func(i, j int) bool { return less(items[i], items[j]) })

	out := make([]Entry, len(items))
	for i, it := range items {
		out[i] = it.Entry
	}
	return out
}

// Reset empties the queue, keeping its storage.
func (q *Queue) Reset() {
	q.items = q.items[:0]
	clear(q.counts)
}

func less(a, b queued) bool {
	if a.Priority != b.Priority {
		return a.Priority < b.Priority
	}
	return a.seq > b.seq
}

func (q *Queue) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !less(q.items[i], q.items[parent]) {
			break
		}
		q.items[i], q.items[parent] = q.items[parent], q.items[i]
		i = parent
	}
}

func (q *Queue) siftDown(i int) {
	n := len(q.items)
	for {
		smallest := i
		left := 2*i + 1
		right := 2*i + 2
		if left < n && less(q.items[left], q.items[smallest]) {
			smallest = left
		}
		if right < n && less(q.items[right], q.items[smallest]) {
			smallest = right
		}
		if smallest == i {
			break
		}
		q.items[i], q.items[smallest] = q.items[smallest], q.items[i]
		i = smallest
	}
}

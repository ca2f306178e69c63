// Package timeline schedules deferred effects on the game clock.
//
// Effects run inside the update pass when the queue is advanced, never on a
// separate timer goroutine, so they cannot race the loop or outlive the
// session that owns the queue.
package timeline

import (
	"container/heap"
	"time"
)

// Queue holds pending effects ordered by due time, then insertion order.
// It is not safe for concurrent use; the tick driver owns it.
type Queue struct {
	now     time.Duration
	seq     uint64
	pending effectHeap
	byKey   map[string]*effect
}

type effect struct {
	key   string
	due   time.Duration
	seq   uint64
	fn    func()
	index int // Position in the heap, -1 once popped or removed
}

// New creates an empty queue at time zero.
func New() *Queue {
	return &Queue{byKey: make(map[string]*effect)}
}

// Now returns the queue's current clock.
func (q *Queue) Now() time.Duration {
	return q.now
}

// Len returns the number of pending effects.
func (q *Queue) Len() int {
	return len(q.pending)
}

// Schedule registers fn to run once the clock has advanced by after.
// A non-empty key identifies the effect: scheduling a key that is still
// pending replaces the earlier effect.
func (q *Queue) Schedule(key string, after time.Duration, fn func()) {
	if fn == nil {
		return
	}
	if key != "" {
		q.Cancel(key)
	}
	q.seq++
	e := &effect{key: key, due: q.now + max(after, 0), seq: q.seq, fn: fn}
	heap.Push(&q.pending, e)
	if key != "" {
		q.byKey[key] = e
	}
}

// Cancel drops the pending effect with the given key, if any.
func (q *Queue) Cancel(key string) bool {
	e, ok := q.byKey[key]
	if !ok {
		return false
	}
	delete(q.byKey, key)
	if e.index >= 0 {
		heap.Remove(&q.pending, e.index)
	}
	return true
}

// Pending reports whether an effect with the given key is waiting to run.
func (q *Queue) Pending(key string) bool {
	_, ok := q.byKey[key]
	return ok
}

// Advance moves the clock forward by dt and runs every effect that has come
// due. Effects scheduled by a running effect run in the same call if they
// are already due.
func (q *Queue) Advance(dt time.Duration) int {
	if dt > 0 {
		q.now += dt
	}
	ran := 0
	for len(q.pending) > 0 && q.pending[0].due <= q.now {
		e := heap.Pop(&q.pending).(*effect)
		if e.key != "" && q.byKey[e.key] == e {
			delete(q.byKey, e.key)
		}
		e.fn()
		ran++
	}
	return ran
}

// Clear drops every pending effect without running it.
func (q *Queue) Clear() {
	for _, e := range q.pending {
		e.index = -1
	}
	q.pending = q.pending[:0]
	clear(q.byKey)
}

type effectHeap []*effect

func (h effectHeap) Len() int { return len(h) }

func (h effectHeap) Less(i, j int) bool {
	if h[i].due != h[j].due {
		return h[i].due < h[j].due
	}
	return h[i].seq < h[j].seq
}

func (h effectHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *effectHeap) Push(x any) {
	e := x.(*effect)
	e.index = len(*h)
	*h = append(*h, e)
}

func (h *effectHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*h = old[:n-1]
	return e
}

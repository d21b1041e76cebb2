// Package timer is the frame-clock driven deferred-callback queue.
// Nothing here runs on a goroutine: callbacks fire inside Advance, on the
// simulation thread, in (fire time, schedule order) order.
package timer

import (
	"container/heap"
)

// Token identifies a scheduled callback. The zero Token is never issued.
type Token uint64

type entry struct {
	at    float64
	seq   uint64
	token Token
	fn    func()
	index int
}

type entryHeap []*entry

func (h entryHeap) Len() int { return len(h) }
func (h entryHeap) Less(i, j int) bool {
	if h[i].at != h[j].at {
		return h[i].at < h[j].at
	}
	return h[i].seq < h[j].seq
}
func (h entryHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *entryHeap) Push(x interface{}) {
	e := x.(*entry)
	e.index = len(*h)
	*h = append(*h, e)
}
func (h *entryHeap) Pop() interface{} {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*h = old[:n-1]
	return e
}

// Queue is a min-heap of (fire time, token) pairs over a frame clock.
type Queue struct {
	now     float64
	seq     uint64
	entries entryHeap
	live    map[Token]*entry
}

func NewQueue() *Queue {
	return &Queue{live: make(map[Token]*entry)}
}

// Now returns the frame clock in seconds. Inside a firing callback it is that
// callback's scheduled time, so chains re-armed with After keep their cadence.
func (q *Queue) Now() float64 {
	return q.now
}

// Len returns the number of pending callbacks.
func (q *Queue) Len() int {
	return len(q.entries)
}

// After schedules fn to fire delay seconds from now. A non-positive delay
// fires on the next Advance.
func (q *Queue) After(delay float64, fn func()) Token {
	if delay < 0 {
		delay = 0
	}
	return q.At(q.now+delay, fn)
}

// At schedules fn at an absolute frame-clock time.
func (q *Queue) At(at float64, fn func()) Token {
	q.seq++
	e := &entry{at: at, seq: q.seq, token: Token(q.seq), fn: fn}
	heap.Push(&q.entries, e)
	q.live[e.token] = e
	return e.token
}

// Cancel invalidates a token. Returns false if it already fired or was cancelled.
func (q *Queue) Cancel(t Token) bool {
	e, ok := q.live[t]
	if !ok {
		return false
	}
	delete(q.live, t)
	if e.index >= 0 {
		heap.Remove(&q.entries, e.index)
	}
	return true
}

// Pending reports whether t is still scheduled.
func (q *Queue) Pending(t Token) bool {
	_, ok := q.live[t]
	return ok
}

// Advance moves the clock forward by dt and fires everything now due.
// Callbacks scheduled from inside a firing callback wait for the next Advance,
// even when already due.
func (q *Queue) Advance(dt float64) int {
	start := q.now
	end := start
	if dt > 0 {
		end += dt
	}
	limit := q.seq
	var deferred []*entry
	fired := 0
	for len(q.entries) > 0 && q.entries[0].at <= end {
		e := heap.Pop(&q.entries).(*entry)
		if e.seq > limit {
			deferred = append(deferred, e)
			continue
		}
		delete(q.live, e.token)
		q.now = max(e.at, start)
		e.fn()
		fired++
	}
	q.now = end
	for _, e := range deferred {
		// a deferred entry may have been cancelled by a later callback
		if _, ok := q.live[e.token]; ok {
			heap.Push(&q.entries, e)
		}
	}
	return fired
}

// Reset drops every pending callback without firing it. The clock keeps its value.
func (q *Queue) Reset() {
	q.entries = q.entries[:0]
	q.live = make(map[Token]*entry)
}

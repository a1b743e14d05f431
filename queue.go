package landsim

import "container/heap"

// secondaryEvent is one entry in the pending-secondary-event heap: a cell
// id and the time it is next due to emit. seq breaks exact time ties in
// insertion order, giving the heap a strict order even though t_next
// alone is not.
type secondaryEvent struct {
	cellID int
	tNext  float64
	seq    uint64
}

// eventHeap implements container/heap.Interface. It is never used
// directly by callers; SecondaryQueue wraps it with the insert/peek/pop
// vocabulary the epidemic loop expects.
type eventHeap []secondaryEvent

func (h eventHeap) Len() int { return len(h) }
func (h eventHeap) Less(i, j int) bool {
	if h[i].tNext != h[j].tNext {
		return h[i].tNext < h[j].tNext
	}
	return h[i].seq < h[j].seq
}
func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *eventHeap) Push(x interface{}) {
	*h = append(*h, x.(secondaryEvent))
}
func (h *eventHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// SecondaryQueue is the binary min-heap of pending next-secondary-infection
// events, keyed by t_next. Each active cell may appear at most once;
// callers must pop a cell before re-inserting it.
type SecondaryQueue struct {
	h       eventHeap
	nextSeq uint64
}

// NewSecondaryQueue returns an empty queue pre-sized for capacity active
// cells.
func NewSecondaryQueue(capacity int) *SecondaryQueue {
	q := &SecondaryQueue{h: make(eventHeap, 0, capacity)}
	heap.Init(&q.h)
	return q
}

// Empty reports whether the queue currently holds no pending events.
func (q *SecondaryQueue) Empty() bool { return q.h.Len() == 0 }

// Len returns the number of pending events.
func (q *SecondaryQueue) Len() int { return q.h.Len() }

// PeekMin returns the smallest t_next currently pending, in O(1).
func (q *SecondaryQueue) PeekMin() float64 { return q.h[0].tNext }

// Insert adds a pending event for cellID due at tNext.
func (q *SecondaryQueue) Insert(cellID int, tNext float64) {
	heap.Push(&q.h, secondaryEvent{cellID: cellID, tNext: tNext, seq: q.nextSeq})
	q.nextSeq++
}

// PopMin removes and returns the cell id with the smallest t_next.
// Panics if the queue is empty; callers must check Empty() first.
func (q *SecondaryQueue) PopMin() int {
	if q.Empty() {
		panic(HeapUnderflowError)
	}
	item := heap.Pop(&q.h).(secondaryEvent)
	return item.cellID
}

func (q *SecondaryQueue) reset() {
	q.h = q.h[:0]
	q.nextSeq = 0
}

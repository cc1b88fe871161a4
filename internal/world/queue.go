package world

import "math"

// Queue is a bucket priority queue over the cells of a grid. Priorities are
// small non-negative integers (SearchPriority); each bucket is a singly
// linked list threaded through the cells themselves.
//
// Change assumes the new priority is lower than the old one, since the
// minimum cursor only moves down on Enqueue.
type Queue struct {
	grid    *Grid
	buckets []int32
	count   int
	minimum int
}

// NewQueue returns an empty queue over the cells of g.
func NewQueue(g *Grid) *Queue {
	q := &Queue{grid: g}
	q.Clear()
	return q
}

// Len returns the number of queued cells.
func (q *Queue) Len() int { return q.count }

// Enqueue inserts c at its current search priority.
func (q *Queue) Enqueue(c *Cell) {
	q.count++
	priority := c.SearchPriority()
	if priority < q.minimum {
		q.minimum = priority
	}
	for priority >= len(q.buckets) {
		q.buckets = append(q.buckets, noCell)
	}
	c.nextWithSamePriority = q.buckets[priority]
	q.buckets[priority] = int32(c.index)
}

// Dequeue removes and returns a cell with the lowest priority, or nil when
// the queue is empty.
func (q *Queue) Dequeue() *Cell {
	for ; q.minimum < len(q.buckets); q.minimum++ {
		i := q.buckets[q.minimum]
		if i == noCell {
			continue
		}
		c := &q.grid.cells[i]
		q.buckets[q.minimum] = c.nextWithSamePriority
		c.nextWithSamePriority = noCell
		q.count--
		return c
	}
	return nil
}

// Change moves c, currently queued at oldPriority, to its new lower priority.
func (q *Queue) Change(c *Cell, oldPriority int) {
	cells := q.grid.cells
	current := q.buckets[oldPriority]
	next := cells[current].nextWithSamePriority
	if current == int32(c.index) {
		q.buckets[oldPriority] = next
	} else {
		for next != int32(c.index) {
			current = next
			next = cells[current].nextWithSamePriority
		}
		cells[current].nextWithSamePriority = c.nextWithSamePriority
	}
	q.Enqueue(c)
	q.count--
}

// Clear empties the queue.
func (q *Queue) Clear() {
	q.buckets = q.buckets[:0]
	q.count = 0
	q.minimum = math.MaxInt
}

package world

import (
	"math/rand"
	"testing"
)

func TestQueueDequeuesInPriorityOrder(t *testing.T) {
	g := newExploredGrid(t, 10, 10, false)
	q := NewQueue(g)
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < g.Len(); i++ {
		c := g.Cell(i)
		c.Distance = rng.Intn(40)
		c.SearchHeuristic = rng.Intn(5)
		q.Enqueue(c)
	}
	if q.Len() != g.Len() {
		t.Fatalf("Len = %d, want %d", q.Len(), g.Len())
	}

	last := -1
	for n := 0; q.Len() > 0; n++ {
		c := q.Dequeue()
		if c == nil {
			t.Fatalf("Dequeue returned nil with %d left", q.Len())
		}
		p := c.SearchPriority()
		if p < last {
			t.Fatalf("dequeue %d: priority %d after %d", n, p, last)
		}
		last = p
	}
	if c := q.Dequeue(); c != nil {
		t.Errorf("Dequeue on empty queue = cell %d", c.Index())
	}
	if q.Len() != 0 {
		t.Errorf("Len after draining = %d", q.Len())
	}
}

func TestQueueChange(t *testing.T) {
	g := newExploredGrid(t, 5, 5, false)
	q := NewQueue(g)

	// Three cells share bucket 10 so Change must unlink from the middle.
	cells := []*Cell{g.Cell(0), g.Cell(1), g.Cell(2), g.Cell(3)}
	for _, c := range cells[:3] {
		c.Distance = 10
		q.Enqueue(c)
	}
	cells[3].Distance = 6
	q.Enqueue(cells[3])

	moved := cells[1]
	old := moved.SearchPriority()
	moved.Distance = 3
	q.Change(moved, old)
	if q.Len() != 4 {
		t.Fatalf("Len after Change = %d, want 4", q.Len())
	}

	want := []*Cell{moved, cells[3]}
	for i, w := range want {
		if got := q.Dequeue(); got != w {
			t.Fatalf("dequeue %d = cell %d, want cell %d", i, got.Index(), w.Index())
		}
	}
	rest := map[*Cell]bool{}
	for q.Len() > 0 {
		rest[q.Dequeue()] = true
	}
	if len(rest) != 2 || !rest[cells[0]] || !rest[cells[2]] {
		t.Errorf("remaining cells = %v", rest)
	}
}

func TestQueueClear(t *testing.T) {
	g := newExploredGrid(t, 5, 5, false)
	q := NewQueue(g)
	c := g.Cell(3)
	c.Distance = 4
	q.Enqueue(c)
	q.Clear()
	if q.Len() != 0 || q.Dequeue() != nil {
		t.Error("queue not empty after Clear")
	}

	c.Distance = 1
	q.Enqueue(c)
	if got := q.Dequeue(); got != c {
		t.Errorf("Dequeue after Clear = %v, want cell 3", got)
	}
}

package hex

import (
	"math/rand"
	"testing"
)

func TestCoordInvariant(t *testing.T) {
	for row := -6; row < 12; row++ {
		for col := -6; col < 12; col++ {
			c := FromOffset(col, row, 0)
			if c.X+c.Y()+c.Z != 0 {
				t.Fatalf("FromOffset(%d, %d) = %v breaks x+y+z=0", col, row, c)
			}
			gotCol, gotRow := c.Offset()
			if gotCol != col || gotRow != row {
				t.Errorf("Offset(%v) = (%d, %d), want (%d, %d)", c, gotCol, gotRow, col, row)
			}
		}
	}
}

func TestFromOffset(t *testing.T) {
	tests := []struct {
		col, row int
		want     Coord
	}{
		{0, 0, Coord{0, 0}},
		{3, 0, Coord{3, 0}},
		{0, 1, Coord{0, 1}},
		{0, 2, Coord{-1, 2}},
		{4, 5, Coord{2, 5}},
	}
	for _, tc := range tests {
		if got := FromOffset(tc.col, tc.row, 0); got != tc.want {
			t.Errorf("FromOffset(%d, %d) = %v, want %v", tc.col, tc.row, got, tc.want)
		}
	}
}

func TestDistanceSymmetry(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		a := FromOffset(rng.Intn(40), rng.Intn(30), 0)
		b := FromOffset(rng.Intn(40), rng.Intn(30), 0)
		ab, ba := a.DistanceTo(b), b.DistanceTo(a)
		if ab != ba {
			t.Fatalf("distance %v->%v = %d, reverse = %d", a, b, ab, ba)
		}
		if (ab == 0) != (a == b) {
			t.Fatalf("distance %v->%v = %d, equal = %v", a, b, ab, a == b)
		}
	}
}

func TestDistanceColinear(t *testing.T) {
	a := Coord{X: 0, Z: 0}
	for _, d := range Directions {
		b, c := a, a
		for i := 0; i < 3; i++ {
			b = b.Step(d)
		}
		c = b
		for i := 0; i < 4; i++ {
			c = c.Step(d)
		}
		if got, want := a.DistanceTo(c), a.DistanceTo(b)+b.DistanceTo(c); got != want {
			t.Errorf("direction %v: dist(A,C) = %d, want %d", d, got, want)
		}
		if got := a.DistanceTo(c); got != 7 {
			t.Errorf("direction %v: dist(A,C) = %d, want 7", d, got)
		}
	}
}

func TestWrappedDistanceAcrossSeam(t *testing.T) {
	const width = 20
	for row := 0; row < 6; row++ {
		left := FromOffset(0, row, width)
		right := FromOffset(width-1, row, width)
		if got := left.WrappedDistance(right, width); got != 1 {
			t.Errorf("row %d: wrapped distance = %d, want 1", row, got)
		}
		if got := right.WrappedDistance(left, width); got != 1 {
			t.Errorf("row %d: reverse wrapped distance = %d, want 1", row, got)
		}
		if got := left.DistanceTo(right); got != width-1 {
			t.Errorf("row %d: unwrapped distance = %d, want %d", row, got, width-1)
		}
	}
}

func TestNewCoordWrapNormalizes(t *testing.T) {
	const width = 10
	tests := []struct {
		x, z  int
		wantX int
	}{
		{-1, 0, 9},
		{10, 0, 0},
		{-3, 4, 7},
		{3, 4, 3},
	}
	for _, tc := range tests {
		c := NewCoord(tc.x, tc.z, width)
		if c.X != tc.wantX {
			t.Errorf("NewCoord(%d, %d) X = %d, want %d", tc.x, tc.z, c.X, tc.wantX)
		}
		if col, _ := c.Offset(); col < 0 || col >= width {
			t.Errorf("NewCoord(%d, %d) column %d outside [0,%d)", tc.x, tc.z, col, width)
		}
	}
}

func TestFromPositionRoundTrip(t *testing.T) {
	for row := 0; row < 10; row++ {
		for col := 0; col < 10; col++ {
			want := FromOffset(col, row, 0)
			center := Position(col, row)
			nudges := []Vec3{{}, {X: 3}, {X: -3}, {Z: 4}, {Z: -4}, {X: 2, Z: -2}}
			for _, n := range nudges {
				if got := FromPosition(center.Add(n), 0); got != want {
					t.Errorf("FromPosition(%v) = %v, want %v", center.Add(n), got, want)
				}
			}
		}
	}
}

package hex

import "testing"

func TestDirectionArithmetic(t *testing.T) {
	tests := []struct {
		d                                      Direction
		opposite, next, previous, next2, prev2 Direction
	}{
		{NE, SW, E, NW, SE, W},
		{E, W, SE, NE, SW, NW},
		{SE, NW, SW, E, W, NE},
		{SW, NE, W, SE, NW, E},
		{W, E, NW, SW, NE, SE},
		{NW, SE, NE, W, E, SW},
	}
	for _, tc := range tests {
		if got := tc.d.Opposite(); got != tc.opposite {
			t.Errorf("%v.Opposite() = %v, want %v", tc.d, got, tc.opposite)
		}
		if got := tc.d.Next(); got != tc.next {
			t.Errorf("%v.Next() = %v, want %v", tc.d, got, tc.next)
		}
		if got := tc.d.Previous(); got != tc.previous {
			t.Errorf("%v.Previous() = %v, want %v", tc.d, got, tc.previous)
		}
		if got := tc.d.Next2(); got != tc.next2 {
			t.Errorf("%v.Next2() = %v, want %v", tc.d, got, tc.next2)
		}
		if got := tc.d.Previous2(); got != tc.prev2 {
			t.Errorf("%v.Previous2() = %v, want %v", tc.d, got, tc.prev2)
		}
	}
}

func TestStepOppositeReturns(t *testing.T) {
	c := Coord{X: 2, Z: 3}
	for _, d := range Directions {
		if got := c.Step(d).Step(d.Opposite()); got != c {
			t.Errorf("step %v then back = %v, want %v", d, got, c)
		}
		if got := c.DistanceTo(c.Step(d)); got != 1 {
			t.Errorf("step %v distance = %d, want 1", d, got)
		}
	}
}

func TestGetEdgeType(t *testing.T) {
	tests := []struct {
		a, b int
		want EdgeType
	}{
		{0, 0, Flat},
		{2, 3, Slope},
		{3, 2, Slope},
		{0, 2, Cliff},
		{5, -1, Cliff},
	}
	for _, tc := range tests {
		if got := GetEdgeType(tc.a, tc.b); got != tc.want {
			t.Errorf("GetEdgeType(%d, %d) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestDirectionText(t *testing.T) {
	for _, d := range Directions {
		text, err := d.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", d, err)
		}
		var back Direction
		if err := back.UnmarshalText(text); err != nil || back != d {
			t.Errorf("UnmarshalText(%q) = %v, %v", text, back, err)
		}
	}

	var d Direction
	if err := d.UnmarshalText([]byte(" sw ")); err != nil || d != SW {
		t.Errorf("lower case name = %v, %v", d, err)
	}
	if err := d.UnmarshalText([]byte("north")); err == nil {
		t.Error("accepted unknown direction")
	}
	if _, err := Direction(6).MarshalText(); err == nil {
		t.Error("marshalled invalid direction")
	}
}

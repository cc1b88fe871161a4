package celldata

import (
	"testing"
	"time"

	"github.com/talgya/hexmap/internal/world"
)

func newGrid(t *testing.T, tex *Texture) *world.Grid {
	t.Helper()
	g := world.New(world.WithObserver(tex))
	if err := g.CreateMap(10, 10, false); err != nil {
		t.Fatal(err)
	}
	return g
}

func TestInitializeSizesBuffer(t *testing.T) {
	tex := NewTexture()
	newGrid(t, tex)
	if b := tex.Image().Bounds(); b.Dx() != 10 || b.Dy() != 10 {
		t.Fatalf("bounds = %v, want 10x10", b)
	}
}

func TestTerrainChannel(t *testing.T) {
	tex := NewTexture()
	g := newGrid(t, tex)
	c := g.CellAtOffset(3, 4)
	g.SetTerrainType(c, world.TerrainStone)
	if px := tex.Pixel(c.Index()); px[3] != world.TerrainStone {
		t.Errorf("alpha = %d, want %d", px[3], world.TerrainStone)
	}
}

func TestImmediateMode(t *testing.T) {
	tex := NewTexture()
	tex.ImmediateMode = true
	g := newGrid(t, tex)
	c := g.CellAtOffset(5, 5)

	g.IncreaseVisibility(c, 2)
	if px := tex.Pixel(c.Index()); px[0] != 255 || px[1] != 255 {
		t.Errorf("pixel = %v, want visible and explored", px)
	}
	if tex.Pending() != 0 {
		t.Errorf("pending = %d in immediate mode", tex.Pending())
	}

	g.DecreaseVisibility(c, 2)
	if px := tex.Pixel(c.Index()); px[0] != 0 || px[1] != 255 {
		t.Errorf("pixel = %v, want hidden but explored", px)
	}
}

func TestFadeTransitions(t *testing.T) {
	tex := NewTexture()
	g := newGrid(t, tex)
	c := g.CellAtOffset(5, 5)

	g.IncreaseVisibility(c, 2)
	if px := tex.Pixel(c.Index()); px[0] != 0 || px[2] != 255 {
		t.Fatalf("pixel = %v, want fade queued", px)
	}
	if tex.Pending() == 0 {
		t.Fatal("no cells fading")
	}

	if !tex.Update(500 * time.Millisecond) {
		t.Fatal("fade finished after half a second")
	}
	if px := tex.Pixel(c.Index()); px[0] != 127 {
		t.Errorf("half-way red = %d, want 127", px[0])
	}

	for i := 0; i < 3 && tex.Update(time.Second); i++ {
	}
	if tex.Pending() != 0 {
		t.Fatalf("pending = %d after fading out", tex.Pending())
	}
	if px := tex.Pixel(c.Index()); px != [4]uint8{255, 255, 0, 0} {
		t.Errorf("pixel = %v, want fully visible", px)
	}

	g.DecreaseVisibility(c, 2)
	for tex.Update(100 * time.Millisecond) {
	}
	if px := tex.Pixel(c.Index()); px[0] != 0 || px[1] != 255 {
		t.Errorf("pixel = %v, want faded out but explored", px)
	}
}

func TestInitializeClears(t *testing.T) {
	tex := NewTexture()
	g := newGrid(t, tex)
	g.IncreaseVisibility(g.CellAtOffset(5, 5), 2)
	if err := g.CreateMap(10, 10, false); err != nil {
		t.Fatal(err)
	}
	if tex.Pending() != 0 {
		t.Errorf("pending = %d after re-creating the map", tex.Pending())
	}
	for i := 0; i < g.Len(); i++ {
		if px := tex.Pixel(i); px != [4]uint8{} {
			t.Fatalf("pixel %d = %v after re-creating the map", i, px)
		}
	}
}

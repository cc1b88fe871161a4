// Package celldata mirrors per-cell visibility and terrain into a compact
// RGBA buffer, one pixel per cell, for upload to a renderer.
//
// Channels: R visibility, G exploration, B transition marker, A terrain
// type index. Visibility changes fade in and out over successive Update
// calls unless ImmediateMode is set.
package celldata

import (
	"image"
	"time"

	"github.com/talgya/hexmap/internal/world"
)

// transitionSpeed is the channel change per second while fading.
const transitionSpeed = 255

// Texture implements world.Observer.
type Texture struct {
	// ImmediateMode skips fading; visibility changes land at once.
	ImmediateMode bool

	img           *image.RGBA
	transitioning []*world.Cell
}

var _ world.Observer = (*Texture)(nil)

// NewTexture returns an empty texture; the grid sizes it through Initialize.
func NewTexture() *Texture {
	return &Texture{img: image.NewRGBA(image.Rect(0, 0, 0, 0))}
}

// Initialize resizes the buffer to x by z cells and clears it.
func (t *Texture) Initialize(x, z int) {
	if t.img.Rect.Dx() == x && t.img.Rect.Dy() == z {
		clear(t.img.Pix)
	} else {
		t.img = image.NewRGBA(image.Rect(0, 0, x, z))
	}
	t.transitioning = t.transitioning[:0]
}

// TerrainChanged stores the cell's terrain type in the alpha channel.
func (t *Texture) TerrainChanged(c *world.Cell) {
	t.img.Pix[c.Index()*4+3] = uint8(c.TerrainType())
}

// VisibilityChanged updates the visibility channels or queues a fade.
func (t *Texture) VisibilityChanged(c *world.Cell) {
	p := t.img.Pix[c.Index()*4 : c.Index()*4+4]
	if t.ImmediateMode {
		p[0] = channel(c.IsVisible())
		p[1] = channel(c.IsExplored())
		return
	}
	if p[2] != 255 {
		p[2] = 255
		t.transitioning = append(t.transitioning, c)
	}
}

// Update advances fades by elapsed time and reports whether any remain.
func (t *Texture) Update(elapsed time.Duration) bool {
	delta := int(elapsed.Seconds() * transitionSpeed)
	if delta == 0 {
		delta = 1
	}
	for i := 0; i < len(t.transitioning); i++ {
		if t.updateCell(t.transitioning[i], delta) {
			continue
		}
		last := len(t.transitioning) - 1
		t.transitioning[i] = t.transitioning[last]
		t.transitioning = t.transitioning[:last]
		i--
	}
	return len(t.transitioning) > 0
}

func (t *Texture) updateCell(c *world.Cell, delta int) bool {
	p := t.img.Pix[c.Index()*4 : c.Index()*4+4]
	updating := false

	if c.IsExplored() && p[1] < 255 {
		updating = true
		p[1] = uint8(min(int(p[1])+delta, 255))
	}
	if c.IsVisible() {
		if p[0] < 255 {
			updating = true
			p[0] = uint8(min(int(p[0])+delta, 255))
		}
	} else if p[0] > 0 {
		updating = true
		p[0] = uint8(max(int(p[0])-delta, 0))
	}

	if !updating {
		p[2] = 0
	}
	return updating
}

// Pending returns the number of cells still fading.
func (t *Texture) Pending() int { return len(t.transitioning) }

// Pixel returns the RGBA bytes of cell i.
func (t *Texture) Pixel(i int) [4]uint8 {
	var px [4]uint8
	copy(px[:], t.img.Pix[i*4:i*4+4])
	return px
}

// Image exposes the buffer, row z of the map at image row z.
func (t *Texture) Image() *image.RGBA { return t.img }

func channel(on bool) uint8 {
	if on {
		return 255
	}
	return 0
}

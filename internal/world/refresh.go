package world

// refresh marks the chunk of c and the chunks of its neighbours for rebuild.
func (g *Grid) refresh(c *Cell) {
	g.markChunk(c.chunk)
	for _, i := range c.neighbors {
		if i != noCell {
			g.markChunk(g.cells[i].chunk)
		}
	}
}

// refreshSelf marks only the chunk holding c.
func (g *Grid) refreshSelf(c *Cell) {
	g.markChunk(c.chunk)
}

func (g *Grid) markChunk(chunk int) {
	if !g.dirty[chunk] {
		g.dirty[chunk] = true
		g.dirtyCount++
	}
}

// RefreshAll marks every chunk for rebuild.
func (g *Grid) RefreshAll() {
	for i := range g.dirty {
		g.markChunk(i)
	}
}

// PendingRefreshes returns the number of chunks awaiting a rebuild.
func (g *Grid) PendingRefreshes() int {
	return g.dirtyCount
}

// FlushPendingRefreshes hands every dirty chunk index to rebuild, in
// ascending order, and clears the dirty set. It returns how many chunks
// were flushed.
func (g *Grid) FlushPendingRefreshes(rebuild func(chunk int)) int {
	if g.dirtyCount == 0 {
		return 0
	}
	n := 0
	for i, d := range g.dirty {
		if !d {
			continue
		}
		g.dirty[i] = false
		if rebuild != nil {
			rebuild(i)
		}
		n++
	}
	g.dirtyCount = 0
	return n
}

// NeedsVisibilityReset reports whether a view elevation changed since the
// last ResetVisibility, making current visibility counters stale.
func (g *Grid) NeedsVisibilityReset() bool {
	return g.needsVisibilityReset
}

package main

import "math"

// chunk is a fixed-extent grid of material cells anchored in world space.
// Cells are one world unit square; position is the world-space center of the
// chunk, so its local origin sits at position - size/2. Contents are
// read-only while a render pass is in flight.
type chunk struct {
	width, height int
	position      vec2
	cells         []uint8
}

// newChunk allocates an empty chunk centered on the given world position.
func newChunk(width, height int, position vec2) *chunk {
	return &chunk{
		width:    width,
		height:   height,
		position: position,
		cells:    make([]uint8, width*height),
	}
}

// worldOrigin returns the world-space position of the chunk's (0,0) cell corner.
func (c *chunk) worldOrigin() vec2 {
	return c.position.sub(vec2{float64(c.width) / 2, float64(c.height) / 2})
}

// inBounds reports whether (x, y) addresses a cell inside the chunk.
func (c *chunk) inBounds(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height
}

// materialAt returns the material of cell (x, y); out-of-range coordinates
// read as empty.
func (c *chunk) materialAt(x, y int) uint8 {
	if !c.inBounds(x, y) {
		return materialEmpty
	}
	return c.cells[y*c.width+x]
}

// setMaterial writes a material into cell (x, y) if it is in bounds.
func (c *chunk) setMaterial(x, y int, m uint8) {
	if !c.inBounds(x, y) {
		return
	}
	c.cells[y*c.width+x] = m
}

// cellAtWorld maps a world-space point to the local cell containing it.
func (c *chunk) cellAtWorld(p vec2) (int, int, bool) {
	local := p.sub(c.worldOrigin())
	x := int(math.Floor(local.X))
	y := int(math.Floor(local.Y))
	return x, y, c.inBounds(x, y)
}

// world is the ordered set of chunks the renderer traces against.
type world struct {
	chunks []*chunk
}

// newWorld creates a world holding a single empty chunk centered at the origin.
func newWorld() *world {
	return &world{chunks: []*chunk{newChunk(chunkW, chunkH, vec2{})}}
}

// chunkAt returns the chunk whose extent contains the world point, if any.
func (wld *world) chunkAt(p vec2) (*chunk, int, int) {
	for _, c := range wld.chunks {
		if x, y, ok := c.cellAtWorld(p); ok {
			return c, x, y
		}
	}
	return nil, 0, 0
}

// materialAtWorld samples the material of the cell containing the world point.
func (wld *world) materialAtWorld(p vec2) uint8 {
	c, x, y := wld.chunkAt(p)
	if c == nil {
		return materialEmpty
	}
	return c.materialAt(x, y)
}

// trace casts the ray against every chunk in its local frame and keeps the
// nearest hit. The second return value reports whether anything was hit.
func (wld *world) trace(r ray, maxDistance float64, policy tracePolicy) (hit, bool, error) {
	var best hit
	found := false
	for _, c := range wld.chunks {
		h, ok, err := traceChunkWorld(c, r, maxDistance, policy)
		if err != nil {
			return hit{}, false, err
		}
		if ok && (!found || h.distance < best.distance) {
			best = h
			found = true
		}
	}
	return best, found, nil
}

package main

import (
	"math/rand"
	"time"
)

// generateScene procedurally fills the chunk with wall segments of varied
// materials, leaving a clearing around the spawn cell at the chunk center.
func generateScene(c *chunk, seed int64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	for i := range c.cells {
		c.cells[i] = materialEmpty
	}
	for s := 0; s < wallSegments; s++ {
		lengthRange := wallMaxLen - wallMinLen + 1
		if lengthRange <= 0 {
			lengthRange = 1
		}
		length := wallMinLen + rng.Intn(lengthRange)
		thickness := 1
		if wallThicknessVariance > 0 {
			thickness += rng.Intn(wallThicknessVariance + 1)
		}
		material := uint8(1 + rng.Intn(int(materialCount())))
		horizontal := rng.Intn(2) == 0
		x := rng.Intn(c.width-4) + 2
		y := rng.Intn(c.height-4) + 2
		dx, dy := 0, 1
		if horizontal {
			dx, dy = 1, 0
		}
		perpX, perpY := dy, dx
		cx, cy := x, y
		for l := 0; l < length; l++ {
			if cx <= 1 || cx >= c.width-1 || cy <= 1 || cy >= c.height-1 {
				break
			}
			for t := -thickness; t <= thickness; t++ {
				trySetSceneCell(c, cx+perpX*t, cy+perpY*t, material)
			}
			cx += dx
			cy += dy
		}
	}
}

// trySetSceneCell places a material while enforcing the clearing around the
// spawn cell at the chunk center.
func trySetSceneCell(c *chunk, x, y int, material uint8) {
	if x <= 1 || x >= c.width-1 || y <= 1 || y >= c.height-1 {
		return
	}
	sx := c.width / 2
	sy := c.height / 2
	ddx := x - sx
	ddy := y - sy
	if ddx*ddx+ddy*ddy < spawnExclusionRadius*spawnExclusionRadius {
		return
	}
	c.setMaterial(x, y, material)
}

package main

// intPoint represents an integer cell coordinate on a chunk grid.
type intPoint struct {
	x int
	y int
}

// center returns the grid-local center point of the cell.
func (p intPoint) center() vec2 {
	return vec2{float64(p.x) + 0.5, float64(p.y) + 0.5}
}

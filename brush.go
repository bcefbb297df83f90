package main

// brushFootprint lists the cell offsets covered by a circular paint brush of
// the given radius. Radius 0 is the single hovered cell.
func brushFootprint(radius int) []intPoint {
	footprint := make([]intPoint, 0, (2*radius+1)*(2*radius+1))
	r2 := radius * radius
	for y := -radius; y <= radius; y++ {
		for x := -radius; x <= radius; x++ {
			if x*x+y*y <= r2 {
				footprint = append(footprint, intPoint{x: x, y: y})
			}
		}
	}
	return footprint
}

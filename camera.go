package main

// camera defines the visible world rectangle of the top-down view: a center
// position and a vertical extent in world units. The horizontal extent
// follows from the framebuffer aspect ratio.
type camera struct {
	position   vec2
	viewHeight float64
}

// screenToWorld maps the center of pixel (px, py) to world space. Pixel rows
// grow downward while world y grows upward, so the vertical axis flips.
func (c camera) screenToWorld(px, py, screenW, screenH int) vec2 {
	aspect := float64(screenW) / float64(screenH)
	u := ((float64(px)+0.5)/float64(screenW)*2 - 1) * aspect
	v := (float64(py)+0.5)/float64(screenH)*-2 + 1
	half := c.viewHeight * 0.5
	return vec2{c.position.X + u*half, c.position.Y + v*half}
}

// zoom scales the view height by one zoom step per scroll notch, clamped to
// the configured range. Positive notches zoom in.
func (c *camera) zoom(notches float64) {
	for ; notches >= 1; notches-- {
		c.viewHeight *= zoomStepFactor
	}
	for ; notches <= -1; notches++ {
		c.viewHeight /= zoomStepFactor
	}
	c.clampViewHeight()
}

func (c *camera) clampViewHeight() {
	if c.viewHeight < minViewHeight {
		c.viewHeight = minViewHeight
	} else if c.viewHeight > maxViewHeight {
		c.viewHeight = maxViewHeight
	}
}

// pixelRay builds the ray from the view origin toward a pixel's world
// position together with the distance bound that stops the trace at the
// pixel. A zero distance means the origin sits on the pixel itself and no
// ray needs casting.
func pixelRay(origin, pixel vec2) (ray, float64) {
	delta := pixel.sub(origin)
	distance := delta.length()
	if distance < contactEpsilon {
		return ray{}, 0
	}
	return ray{origin: origin, dir: delta.scale(1 / distance)}, distance
}

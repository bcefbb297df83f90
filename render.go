package main

import "sync"

// frameParams is the immutable per-pass snapshot handed to render workers:
// the camera window, the ray origin, and the active hit-resolution policy.
type frameParams struct {
	camera camera
	origin vec2
	policy tracePolicy
}

// frameRenderer owns the RGBA framebuffer and the worker pool that fills it.
// One ray is traced per pixel; rows are independent, so workers share
// nothing but the read-only world snapshot and their disjoint row slices.
type frameRenderer struct {
	width, height int
	world         *world
	pixels        []byte

	workerCount    int
	workerRows     [][]int
	workerMu       sync.Mutex
	workerCond     *sync.Cond
	workerStep     int
	workerPending  int
	workersStarted bool
	frame          frameParams
}

// newFrameRenderer allocates the framebuffer and distributes rows across the
// requested number of workers.
func newFrameRenderer(width, height int, wld *world, workerCount int) *frameRenderer {
	if workerCount < 1 {
		workerCount = 1
	}
	fr := &frameRenderer{
		width:       width,
		height:      height,
		world:       wld,
		pixels:      make([]byte, width*height*4),
		workerCount: workerCount,
		workerRows:  assignRows(workerCount, height),
	}
	fr.workerCond = sync.NewCond(&fr.workerMu)
	return fr
}

// renderFrame traces one ray per pixel and fills the RGBA buffer. The world
// must not be mutated while a pass is in flight; the caller provides that
// exclusion by editing only between passes.
func (fr *frameRenderer) renderFrame(p frameParams) {
	if fr.workerCount <= 1 {
		for y := 0; y < fr.height; y++ {
			fr.renderRow(y, p)
		}
		return
	}
	fr.startWorkers()
	fr.workerMu.Lock()
	fr.frame = p
	fr.workerPending = fr.workerCount
	fr.workerStep++
	fr.workerCond.Broadcast()
	for fr.workerPending > 0 {
		fr.workerCond.Wait()
	}
	fr.workerMu.Unlock()
}

// renderRow shades every pixel of one framebuffer row.
func (fr *frameRenderer) renderRow(y int, p frameParams) {
	base := y * fr.width * 4
	for x := 0; x < fr.width; x++ {
		r, g, b := fr.shadePixel(x, y, p).bytes()
		i := base + x*4
		fr.pixels[i] = r
		fr.pixels[i+1] = g
		fr.pixels[i+2] = b
		fr.pixels[i+3] = 255
	}
}

// shadePixel casts the per-pixel ray from the view origin toward the pixel's
// world position, bounded by the distance to the pixel, and resolves its
// color: the hit material's palette color, or the pixel's own cell when the
// ray arrives unobstructed.
func (fr *frameRenderer) shadePixel(x, y int, p frameParams) rgb {
	pixel := p.camera.screenToWorld(x, y, fr.width, fr.height)
	r, distance := pixelRay(p.origin, pixel)
	if distance == 0 {
		return materialColor(fr.world.materialAtWorld(pixel))
	}
	h, ok, err := fr.world.trace(r, distance, p.policy)
	if err != nil {
		// The renderer only builds normalized, finite rays; a violation here
		// would be a bug, not a shading decision.
		return backgroundColor
	}
	if ok {
		return materialColor(h.material)
	}
	return materialColor(fr.world.materialAtWorld(pixel))
}

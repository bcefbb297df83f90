package main

import (
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game holds the world, the camera that follows the player, the frame
// renderer, and the editor state. The player position is the origin of every
// per-pixel ray.
type Game struct {
	world    *world
	renderer *frameRenderer
	gpu      *openCLFrameTracer

	cam    camera
	player vec2
	facing vec2

	policy      tracePolicy
	selected    uint8
	brushRadius int
	brush       []intPoint
	cellsDirty  bool

	lastTraceDuration time.Duration
	savePath          string

	autoPan           bool
	autoPanDeadline   time.Time
	autoPanRand       *rand.Rand
	autoPanDirX       float64
	autoPanDirY       float64
	autoPanFrameCount int
	stopPGO           func()
}

// newGame constructs a fully initialized Game around an existing world.
func newGame(wld *world, policy tracePolicy, workerCount int) *Game {
	g := &Game{
		world:    wld,
		renderer: newFrameRenderer(renderW, renderH, wld, workerCount),
		cam:      camera{position: wld.chunks[0].position, viewHeight: defaultViewHeight},
		player:   wld.chunks[0].position,
		facing:   vec2{0, 1},
		policy:   policy,
		selected: 1,
		brush:    brushFootprint(0),
		savePath: *saveWorldFlag,
	}
	if *openclFlag {
		tracer, err := newOpenCLFrameTracer(renderW, renderH, wld.chunks[0])
		if err != nil {
			log.Fatalf("OpenCL initialization failed: %v", err)
		}
		log.Printf("OpenCL frame tracer enabled (device: %s)", tracer.DeviceName())
		g.gpu = tracer
		g.cellsDirty = true
	}
	return g
}

// insidePlayableArea reports whether the point lies within the first chunk's
// world extent, with a one-cell margin.
func (g *Game) insidePlayableArea(p vec2) bool {
	c := g.world.chunks[0]
	o := c.worldOrigin()
	return p.X > o.X+1 && p.X < o.X+float64(c.width)-1 &&
		p.Y > o.Y+1 && p.Y < o.Y+float64(c.height)-1
}

// Update advances the player, applies pending edits, and traces the frame.
// All world mutation happens here, strictly before the render pass, so the
// traversal only ever sees an immutable snapshot.
func (g *Game) Update() error {
	dx, dy := g.movementVector()
	if dx != 0 || dy != 0 {
		next := g.player.add(vec2{dx, dy})
		if g.insidePlayableArea(next) && g.world.materialAtWorld(next) == materialEmpty {
			g.player = next
		}
		g.facing = vec2{dx, dy}.normalized()
	}
	g.cam.position = g.player

	g.handleDebugControls()
	g.handleEditorInput()
	if _, wy := ebiten.Wheel(); wy != 0 {
		g.cam.zoom(wy)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		if g.policy == policyExact {
			g.policy = policyNearest
		} else {
			g.policy = policyExact
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		if err := saveWorld(g.savePath, g.world); err != nil {
			log.Printf("Saving world failed: %v", err)
		} else {
			log.Printf("World saved to %s", g.savePath)
		}
	}

	params := frameParams{camera: g.cam, origin: g.player, policy: g.policy}
	traceStart := time.Now()
	if g.gpu != nil {
		if err := g.gpu.Trace(params, g.world.chunks[0], g.cellsDirty, g.renderer.pixels); err != nil {
			return err
		}
		g.cellsDirty = false
	} else {
		g.renderer.renderFrame(params)
	}
	g.lastTraceDuration = time.Since(traceStart)

	if inpututil.IsKeyJustPressed(ebiten.KeyF10) {
		path, err := saveScreenshot(*shotDirFlag, g.renderer.pixels, renderW, renderH, *shotScaleFlag)
		if err != nil {
			log.Printf("Screenshot failed: %v", err)
		} else {
			log.Printf("Screenshot written to %s", path)
		}
	}
	return nil
}

// handleEditorInput paints or clears cells under the cursor and adjusts the
// brush and selected material.
func (g *Game) handleEditorInput() {
	for d := ebiten.KeyDigit1; d <= ebiten.KeyDigit7; d++ {
		if inpututil.IsKeyJustPressed(d) {
			m := uint8(d-ebiten.KeyDigit1) + 1
			if m <= materialCount() {
				g.selected = m
			}
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) && g.brushRadius > minBrushRadius {
		g.brushRadius--
		g.brush = brushFootprint(g.brushRadius)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) && g.brushRadius < maxBrushRadius {
		g.brushRadius++
		g.brush = brushFootprint(g.brushRadius)
	}

	paint := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	erase := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	if !paint && !erase {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < 0 || mx >= renderW || my < 0 || my >= renderH {
		return
	}
	target := g.cam.screenToWorld(mx, my, renderW, renderH)
	c, cx, cy := g.world.chunkAt(target)
	if c == nil {
		return
	}
	material := g.selected
	if erase {
		material = materialEmpty
	}
	for _, offset := range g.brush {
		c.setMaterial(cx+offset.x, cy+offset.y, material)
	}
	g.cellsDirty = true
}

// Layout reports the logical screen size used by Ebiten.
func (g *Game) Layout(_, _ int) (int, int) { return renderW, renderH }

package main

import (
	"math"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// enableAutoPan schedules scripted wandering for a limited duration.
func (g *Game) enableAutoPan(duration time.Duration) {
	g.autoPan = true
	g.autoPanDeadline = time.Now().Add(duration)
	if g.autoPanRand == nil {
		g.autoPanRand = rand.New(rand.NewSource(time.Now().UnixNano() + 3))
	}
	g.autoPanFrameCount = 0
}

// movementVector selects either manual or automatic movement for this tick.
func (g *Game) movementVector() (float64, float64) {
	if g.autoPan {
		if time.Now().After(g.autoPanDeadline) {
			g.autoPan = false
			if g.stopPGO != nil {
				g.stopPGO()
				g.stopPGO = nil
			}
			return 0, 0
		}
		return g.autoPanVector()
	}
	return g.manualMovementVector()
}

// manualMovementVector returns WASD-based movement scaled to the per-tick
// player speed, with diagonals normalized.
func (g *Game) manualMovementVector() (float64, float64) {
	step := playerSpeed / defaultTPS
	dx, dy := 0.0, 0.0
	if ebiten.IsKeyPressed(ebiten.KeyW) {
		dy += step
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		dy -= step
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		dx -= step
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		dx += step
	}
	if dx != 0 && dy != 0 {
		dx *= 0.7071
		dy *= 0.7071
	}
	return dx, dy
}

// autoPanVector returns a pseudo-random, collision-aware movement vector
// used while recording the default CPU profile.
func (g *Game) autoPanVector() (float64, float64) {
	step := playerSpeed / defaultTPS
	for attempts := 0; attempts < 5; attempts++ {
		if g.autoPanFrameCount <= 0 {
			g.randomizeAutoPanDirection()
		}
		next := g.player.add(vec2{g.autoPanDirX * step, g.autoPanDirY * step})
		if g.world.materialAtWorld(next) == materialEmpty && g.insidePlayableArea(next) {
			g.autoPanFrameCount--
			return g.autoPanDirX * step, g.autoPanDirY * step
		}
		g.autoPanFrameCount = 0
	}
	return 0, 0
}

// randomizeAutoPanDirection chooses a new heading for automatic wandering.
func (g *Game) randomizeAutoPanDirection() {
	if g.autoPanRand == nil {
		g.autoPanRand = rand.New(rand.NewSource(time.Now().UnixNano() + 5))
	}
	angle := g.autoPanRand.Float64() * 2 * math.Pi
	g.autoPanDirX = math.Cos(angle)
	g.autoPanDirY = math.Sin(angle)
	g.autoPanFrameCount = 20 + g.autoPanRand.Intn(50)
}

// handleDebugControls processes the debug overlay hotkeys.
func (g *Game) handleDebugControls() {
	if !*debugFlag {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		g.cam.viewHeight += viewHeightKeyStep
		g.cam.clampViewHeight()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		g.cam.viewHeight -= viewHeightKeyStep
		g.cam.clampViewHeight()
	}
}

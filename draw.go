package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Draw presents the traced frame and the player, cursor, and debug overlays.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.WritePixels(g.renderer.pixels)

	px, py := g.worldToScreen(g.player)
	hx, hy := g.worldToScreen(g.player.add(g.facing.scale(1.5)))
	drawLine(screen, px, py, hx, hy, color.RGBA{255, 220, 80, 220})
	for oy := -1; oy <= 1; oy++ {
		for ox := -1; ox <= 1; ox++ {
			screen.Set(px+ox, py+oy, color.RGBA{255, 60, 60, 255})
		}
	}

	g.drawCursorCell(screen)

	if *debugFlag {
		fps := ebiten.ActualFPS()
		traceMS := g.lastTraceDuration.Seconds() * 1000
		mode := "cpu"
		if g.gpu != nil {
			mode = "opencl"
		}
		msg := fmt.Sprintf("FPS: %.1f\nTrace: %.2f ms (%s, %d workers)\nPolicy: %s (P)\nMaterial: %d  Brush: %d",
			fps, traceMS, mode, g.renderer.workerCount, g.policy, g.selected, g.brushRadius)
		ebitenutil.DebugPrint(screen, msg)
	}
}

// drawCursorCell outlines the world cell under the mouse cursor.
func (g *Game) drawCursorCell(screen *ebiten.Image) {
	mx, my := ebiten.CursorPosition()
	if mx < 0 || mx >= renderW || my < 0 || my >= renderH {
		return
	}
	target := g.cam.screenToWorld(mx, my, renderW, renderH)
	c, cx, cy := g.world.chunkAt(target)
	if c == nil {
		return
	}
	o := c.worldOrigin()
	x0, y0 := g.worldToScreen(o.add(vec2{float64(cx), float64(cy)}))
	x1, y1 := g.worldToScreen(o.add(vec2{float64(cx + 1), float64(cy + 1)}))
	outline := color.RGBA{255, 255, 255, 160}
	drawLine(screen, x0, y0, x1, y0, outline)
	drawLine(screen, x1, y0, x1, y1, outline)
	drawLine(screen, x1, y1, x0, y1, outline)
	drawLine(screen, x0, y1, x0, y0, outline)
}

// worldToScreen maps a world point to framebuffer pixel coordinates; the
// inverse of camera.screenToWorld.
func (g *Game) worldToScreen(p vec2) (int, int) {
	aspect := float64(renderW) / float64(renderH)
	half := g.cam.viewHeight * 0.5
	u := (p.X - g.cam.position.X) / half
	v := (p.Y - g.cam.position.Y) / half
	px := (u/aspect + 1) / 2 * renderW
	py := (1 - v) / 2 * renderH
	return int(math.Round(px - 0.5)), int(math.Round(py - 0.5))
}

// drawLine plots a line segment using Bresenham's integer algorithm.
func drawLine(screen *ebiten.Image, x0, y0, x1, y1 int, clr color.Color) {
	dx := int(math.Abs(float64(x1 - x0)))
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -int(math.Abs(float64(y1 - y0)))
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		if x0 >= 0 && x0 < renderW && y0 >= 0 && y0 < renderH {
			screen.Set(x0, y0, clr)
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

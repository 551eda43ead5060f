package ebitenview

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/flowcanvas"
	"github.com/phanxgames/flowcanvas/hittest"
)

// screenRect maps a canvas-space rect to screen space.
func screenRect(r hittest.HitRect, v flowcanvas.Viewport) (x, y, w, h float32) {
	p := flowcanvas.ToScreen(flowcanvas.Vec2{X: r.X, Y: r.Y}, v)
	return float32(p.X), float32(p.Y), float32(r.Width * v.Scale), float32(r.Height * v.Scale)
}

func fillRect(dst *ebiten.Image, r hittest.HitRect, v flowcanvas.Viewport, clr color.Color) {
	x, y, w, h := screenRect(r, v)
	vector.DrawFilledRect(dst, x, y, w, h, clr, true)
}

func strokeRect(dst *ebiten.Image, r hittest.HitRect, v flowcanvas.Viewport, clr color.Color) {
	x, y, w, h := screenRect(r, v)
	vector.StrokeRect(dst, x, y, w, h, 2, clr, true)
}

func fillCircle(dst *ebiten.Image, cx, cy, r float64, clr color.Color) {
	vector.DrawFilledCircle(dst, float32(cx), float32(cy), float32(r), clr, true)
}

func strokeLine(dst *ebiten.Image, x0, y0, x1, y1, width float64, clr color.Color) {
	vector.StrokeLine(dst, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), clr, true)
}

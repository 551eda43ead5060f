package flowcanvas

import "math"

// Viewport is the pan/zoom state of a canvas. PanX and PanY are screen-space
// pixels; Scale is screen pixels per canvas unit and must be non-zero.
type Viewport struct {
	PanX, PanY float64
	Scale      float64
}

// identityViewport maps canvas units 1:1 onto screen pixels.
var identityViewport = Viewport{Scale: 1}

// ToCanvas converts a screen-space point to canvas space.
//
//	canvas = (screen - pan) / scale
func ToCanvas(p Vec2, v Viewport) Vec2 {
	return Vec2{
		X: (p.X - v.PanX) / v.Scale,
		Y: (p.Y - v.PanY) / v.Scale,
	}
}

// ToScreen converts a canvas-space point to screen space. It is the inverse
// of ToCanvas.
//
//	screen = canvas * scale + pan
func ToScreen(p Vec2, v Viewport) Vec2 {
	return transformPoint(v.Matrix(), p.X, p.Y)
}

// Matrix returns the canvas-to-screen affine matrix [a, b, c, d, tx, ty].
//
//	| a  c  tx |   | scale  0      panX |
//	| b  d  ty | = | 0      scale  panY |
//	| 0  0   1 |   | 0      0      1    |
func (v Viewport) Matrix() [6]float64 {
	return [6]float64{v.Scale, 0, 0, v.Scale, v.PanX, v.PanY}
}

// VisibleBounds returns the canvas-space rectangle covered by a screen
// viewport of the given size whose top-left corner is screen (0, 0).
func (v Viewport) VisibleBounds(width, height float64) Rect {
	tl := ToCanvas(Vec2{0, 0}, v)
	br := ToCanvas(Vec2{width, height}, v)
	return Rect{
		X:      math.Min(tl.X, br.X),
		Y:      math.Min(tl.Y, br.Y),
		Width:  math.Abs(br.X - tl.X),
		Height: math.Abs(br.Y - tl.Y),
	}
}

// ScreenDelta converts a screen-space displacement to canvas units. Pan does
// not affect deltas.
func (v Viewport) ScreenDelta(d Vec2) Vec2 {
	return Vec2{d.X / v.Scale, d.Y / v.Scale}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) Vec2 {
	return Vec2{m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]}
}

package flowcanvas

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	DefaultMinScale       = 0.1
	DefaultMaxScale       = 5.0
	DefaultZoomInFactor   = 1.1
	DefaultZoomOutFactor  = 0.9
	DefaultZoomModifier   = ModCtrl
	defaultScrollDuration = 0.35 // seconds
)

// scrollAnim holds active scroll-to tweens for the pan offset.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	target Viewport
	doneX  bool
	doneY  bool
}

// ViewportController is the only writer of a canvas's Viewport. It applies
// cursor-anchored zoom, screen-space pan and animated scrolls.
type ViewportController struct {
	// MinScale and MaxScale bound Scale; zoom results are clamped, never rejected.
	MinScale, MaxScale float64
	// ZoomInFactor multiplies Scale for a negative or zero wheel delta,
	// ZoomOutFactor for a positive one.
	ZoomInFactor, ZoomOutFactor float64
	// ZoomModifier must be held for wheel events to zoom. Zero means wheel
	// always zooms.
	ZoomModifier KeyModifiers

	state       Viewport
	scrollTween *scrollAnim
	onChange    func(Viewport)
}

// NewViewportController creates a controller at pan (0, 0), scale 1 with the
// default bounds and zoom factors.
func NewViewportController() *ViewportController {
	return &ViewportController{
		MinScale:      DefaultMinScale,
		MaxScale:      DefaultMaxScale,
		ZoomInFactor:  DefaultZoomInFactor,
		ZoomOutFactor: DefaultZoomOutFactor,
		ZoomModifier:  DefaultZoomModifier,
		state:         identityViewport,
	}
}

// State returns the current viewport.
func (c *ViewportController) State() Viewport {
	return c.state
}

// Scale returns the current scale.
func (c *ViewportController) Scale() float64 {
	return c.state.Scale
}

// ZoomEnabled reports whether a wheel event carrying mods should zoom.
func (c *ViewportController) ZoomEnabled(mods KeyModifiers) bool {
	return mods.Has(c.ZoomModifier)
}

// Zoom rescales around the screen point cursor so that the canvas point under
// the cursor stays under it. A positive wheelDelta zooms out.
func (c *ViewportController) Zoom(cursor Vec2, wheelDelta float64) {
	factor := c.ZoomInFactor
	if wheelDelta > 0 {
		factor = c.ZoomOutFactor
	}
	c.ZoomTo(cursor, c.state.Scale*factor)
}

// ZoomTo sets the scale (clamped to the bounds) keeping the canvas point
// under cursor fixed on screen.
func (c *ViewportController) ZoomTo(cursor Vec2, scale float64) {
	c.scrollTween = nil
	newScale := clamp(scale, c.MinScale, c.MaxScale)
	anchor := ToCanvas(cursor, c.state)
	c.set(Viewport{
		PanX:  cursor.X - anchor.X*newScale,
		PanY:  cursor.Y - anchor.Y*newScale,
		Scale: newScale,
	})
}

// Pan shifts the viewport by a screen-space delta. The delta is not scaled.
func (c *ViewportController) Pan(dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	c.scrollTween = nil
	c.set(Viewport{PanX: c.state.PanX + dx, PanY: c.state.PanY + dy, Scale: c.state.Scale})
}

// Reset returns to pan (0, 0), scale 1.
func (c *ViewportController) Reset() {
	c.scrollTween = nil
	c.set(identityViewport)
}

// CenterOn immediately pans so the canvas point p sits at the centre of a
// screen viewport of the given size. Scale is unchanged.
func (c *ViewportController) CenterOn(p Vec2, width, height float64) {
	c.scrollTween = nil
	c.set(c.centeredOn(p, width, height))
}

// ScrollTo animates the pan offset so the canvas point p ends up at the
// centre of a width x height screen viewport over duration seconds. Advance
// the animation with Update. Any direct pan or zoom cancels it.
func (c *ViewportController) ScrollTo(p Vec2, width, height float64, duration float32, easeFn ease.TweenFunc) {
	if easeFn == nil {
		easeFn = ease.OutQuad
	}
	if duration <= 0 {
		duration = defaultScrollDuration
	}
	target := c.centeredOn(p, width, height)
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(c.state.PanX), float32(target.PanX), duration, easeFn),
		tweenY: gween.New(float32(c.state.PanY), float32(target.PanY), duration, easeFn),
		target: target,
	}
}

// Scrolling reports whether a ScrollTo animation is in progress.
func (c *ViewportController) Scrolling() bool {
	return c.scrollTween != nil
}

// Update advances an active scroll animation by dt seconds.
func (c *ViewportController) Update(dt float32) {
	if c.scrollTween == nil {
		return
	}
	next := c.state
	if !c.scrollTween.doneX {
		val, done := c.scrollTween.tweenX.Update(dt)
		next.PanX = float64(val)
		c.scrollTween.doneX = done
	}
	if !c.scrollTween.doneY {
		val, done := c.scrollTween.tweenY.Update(dt)
		next.PanY = float64(val)
		c.scrollTween.doneY = done
	}
	if c.scrollTween.doneX && c.scrollTween.doneY {
		// Tweens run in float32; land exactly on the target.
		next.PanX, next.PanY = c.scrollTween.target.PanX, c.scrollTween.target.PanY
		c.scrollTween = nil
	}
	c.set(next)
}

func (c *ViewportController) centeredOn(p Vec2, width, height float64) Viewport {
	s := c.state.Scale
	return Viewport{
		PanX:  width/2 - p.X*s,
		PanY:  height/2 - p.Y*s,
		Scale: s,
	}
}

func (c *ViewportController) set(v Viewport) {
	if v == c.state {
		return
	}
	c.state = v
	if c.onChange != nil {
		c.onChange(v)
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

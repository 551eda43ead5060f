// Package hittest classifies pointer positions against the stock node layout
// of a flowcanvas canvas. It has no rendering dependencies, so headless tools
// and tests can drive a canvas with the same geometry the window uses.
package hittest

import (
	"github.com/phanxgames/flowcanvas"
)

// Layout defaults, in canvas units.
const (
	DefaultPortRadius   = 20.0
	DefaultHeaderHeight = 36.0
	DefaultContentInset = 12.0
	DefaultDeleteSize   = 24.0
)

// Shape is a hit area in canvas coordinates.
type Shape interface {
	Contains(x, y float64) bool
}

// HitRect is an axis-aligned rectangular hit area.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// Sizer reports node display sizes. *flowcanvas.Registry implements it.
type Sizer interface {
	DisplayWidth(kind flowcanvas.NodeKind) float64
	DisplayHeight(kind flowcanvas.NodeKind) float64
}

// Layout describes where the interactive parts of a node sit. A node box is
// centred on its position. The header strip is the drag handle and holds
// the delete button at its right end; the content field below it is a
// no-drag region; ports sit on the left and right edges at mid height.
type Layout struct {
	Sizes        Sizer
	PortRadius   float64
	HeaderHeight float64
	ContentInset float64
	DeleteSize   float64
}

// NewLayout returns a Layout with the default geometry. A nil s uses
// flowcanvas.DefaultRegistry.
func NewLayout(s Sizer) *Layout {
	if s == nil {
		s = flowcanvas.DefaultRegistry()
	}
	return &Layout{
		Sizes:        s,
		PortRadius:   DefaultPortRadius,
		HeaderHeight: DefaultHeaderHeight,
		ContentInset: DefaultContentInset,
		DeleteSize:   DefaultDeleteSize,
	}
}

// NodeRect returns the node box in canvas space.
func (l *Layout) NodeRect(n flowcanvas.Node) HitRect {
	w := l.Sizes.DisplayWidth(n.Kind)
	h := l.Sizes.DisplayHeight(n.Kind)
	return HitRect{X: n.Position.X - w/2, Y: n.Position.Y - h/2, Width: w, Height: h}
}

// HeaderRect returns the draggable header strip.
func (l *Layout) HeaderRect(n flowcanvas.Node) HitRect {
	r := l.NodeRect(n)
	r.Height = l.HeaderHeight
	return r
}

// DeleteRect returns the delete button at the right end of the header.
func (l *Layout) DeleteRect(n flowcanvas.Node) HitRect {
	r := l.NodeRect(n)
	pad := (l.HeaderHeight - l.DeleteSize) / 2
	return HitRect{
		X:      r.X + r.Width - pad - l.DeleteSize,
		Y:      r.Y + pad,
		Width:  l.DeleteSize,
		Height: l.DeleteSize,
	}
}

// ContentRect returns the editable field below the header.
func (l *Layout) ContentRect(n flowcanvas.Node) HitRect {
	r := l.NodeRect(n)
	in := l.ContentInset
	h := r.Height - l.HeaderHeight - 2*in
	if h < 0 {
		h = 0
	}
	return HitRect{X: r.X + in, Y: r.Y + l.HeaderHeight + in, Width: r.Width - 2*in, Height: h}
}

// Port returns the hit area of one of n's ports.
func (l *Layout) Port(n flowcanvas.Node, port flowcanvas.PortType) HitCircle {
	half := l.Sizes.DisplayWidth(n.Kind) / 2
	if port == flowcanvas.PortInput {
		half = -half
	}
	return HitCircle{CenterX: n.Position.X + half, CenterY: n.Position.Y, Radius: l.PortRadius}
}

// Classify returns the target under canvas point p. nodes are in render
// order, so later nodes are on top. Ports win over every node body; among
// bodies the topmost wins.
func (l *Layout) Classify(nodes []flowcanvas.NodeView, p flowcanvas.Vec2) flowcanvas.HitTarget {
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i].Node
		if l.Port(n, flowcanvas.PortOutput).Contains(p.X, p.Y) {
			return flowcanvas.PortOf(n.ID, flowcanvas.PortOutput)
		}
		if l.Port(n, flowcanvas.PortInput).Contains(p.X, p.Y) {
			return flowcanvas.PortOf(n.ID, flowcanvas.PortInput)
		}
	}
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i].Node
		if !l.NodeRect(n).Contains(p.X, p.Y) {
			continue
		}
		if l.DeleteRect(n).Contains(p.X, p.Y) || l.ContentRect(n).Contains(p.X, p.Y) {
			return flowcanvas.NoDragOf(n.ID)
		}
		return flowcanvas.BodyOf(n.ID)
	}
	return flowcanvas.Background
}

// DeleteAt returns the id of the node whose delete button is under p.
func (l *Layout) DeleteAt(nodes []flowcanvas.NodeView, p flowcanvas.Vec2) (string, bool) {
	t := l.Classify(nodes, p)
	if t.Kind != flowcanvas.HitNoDrag {
		return "", false
	}
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i].Node
		if n.ID == t.NodeID {
			return n.ID, l.DeleteRect(n).Contains(p.X, p.Y)
		}
	}
	return "", false
}

// ContentAt returns the id of the node whose content field is under p.
func (l *Layout) ContentAt(nodes []flowcanvas.NodeView, p flowcanvas.Vec2) (string, bool) {
	t := l.Classify(nodes, p)
	if t.Kind != flowcanvas.HitNoDrag {
		return "", false
	}
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i].Node
		if n.ID == t.NodeID {
			return n.ID, l.ContentRect(n).Contains(p.X, p.Y)
		}
	}
	return "", false
}

// For returns a HitTester that classifies screen positions against c's
// current frame, including a node's live drag position.
func (l *Layout) For(c *flowcanvas.Canvas) flowcanvas.HitTester {
	return flowcanvas.HitTesterFunc(func(screen flowcanvas.Vec2) flowcanvas.HitTarget {
		f := c.Frame()
		return l.Classify(f.Nodes, flowcanvas.ToCanvas(screen, f.Viewport))
	})
}

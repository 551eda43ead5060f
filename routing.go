package flowcanvas

import (
	"math"
	"strconv"
	"strings"
)

const (
	DefaultControlRatio = 0.5
	DefaultControlMin   = 50.0
	defaultCurveSegs    = 24
)

// Curve is a cubic Bézier in canvas space.
type Curve struct {
	Start, Control1, Control2, End Vec2
}

// Point evaluates the curve at t in [0, 1].
func (c Curve) Point(t float64) Vec2 {
	u := 1 - t
	u2 := u * u
	t2 := t * t
	return Vec2{
		X: u2*u*c.Start.X + 3*u2*t*c.Control1.X + 3*u*t2*c.Control2.X + t2*t*c.End.X,
		Y: u2*u*c.Start.Y + 3*u2*t*c.Control1.Y + 3*u*t2*c.Control2.Y + t2*t*c.End.Y,
	}
}

// Sample appends segs+1 evenly spaced points along the curve to buf.
// segs <= 0 uses a default resolution.
func (c Curve) Sample(segs int, buf []Vec2) []Vec2 {
	if segs <= 0 {
		segs = defaultCurveSegs
	}
	for i := 0; i <= segs; i++ {
		buf = append(buf, c.Point(float64(i)/float64(segs)))
	}
	return buf
}

// Transform maps every control point through the viewport into screen space.
func (c Curve) Transform(v Viewport) Curve {
	return Curve{
		Start:    ToScreen(c.Start, v),
		Control1: ToScreen(c.Control1, v),
		Control2: ToScreen(c.Control2, v),
		End:      ToScreen(c.End, v),
	}
}

// SVGPath renders the curve as an SVG path "M x y C x1 y1, x2 y2, x y".
func (c Curve) SVGPath() string {
	var b strings.Builder
	b.WriteString("M ")
	writePoint(&b, c.Start)
	b.WriteString(" C ")
	writePoint(&b, c.Control1)
	b.WriteString(", ")
	writePoint(&b, c.Control2)
	b.WriteString(", ")
	writePoint(&b, c.End)
	return b.String()
}

func writePoint(b *strings.Builder, p Vec2) {
	b.WriteString(strconv.FormatFloat(p.X, 'f', -1, 64))
	b.WriteByte(' ')
	b.WriteString(strconv.FormatFloat(p.Y, 'f', -1, 64))
}

// Router computes port anchors and edge curves. Anchors sit on the node's
// horizontal centre line, half the kind's display width either side of the
// node position.
type Router struct {
	Registry KindRegistry
	// ControlRatio and ControlMin set the horizontal control-point offset:
	// max(|dx| * ControlRatio, ControlMin).
	ControlRatio float64
	ControlMin   float64
}

// NewRouter returns a Router with the default control-point offsets.
func NewRouter(reg KindRegistry) Router {
	return Router{Registry: reg, ControlRatio: DefaultControlRatio, ControlMin: DefaultControlMin}
}

// Anchor returns the canvas-space position of one of n's ports.
func (r Router) Anchor(n Node, port PortType) Vec2 {
	half := r.Registry.DisplayWidth(n.Kind) / 2
	if port == PortInput {
		half = -half
	}
	return Vec2{n.Position.X + half, n.Position.Y}
}

// Curve returns the S-curve from an output anchor start to end. Control
// points leave start heading right and enter end heading right, so the curve
// stays readable whichever side of the source the end lies on.
func (r Router) Curve(start, end Vec2) Curve {
	cp := math.Max(math.Abs(end.X-start.X)*r.ControlRatio, r.ControlMin)
	return Curve{
		Start:    start,
		Control1: Vec2{start.X + cp, start.Y},
		Control2: Vec2{end.X - cp, end.Y},
		End:      end,
	}
}

// EdgeCurve returns the rendered path of an edge from src to dst.
func (r Router) EdgeCurve(src, dst Node) Curve {
	return r.Curve(r.Anchor(src, PortOutput), r.Anchor(dst, PortInput))
}

// ProvisionalCurve returns the in-progress connection line from src's output
// anchor to the cursor.
func (r Router) ProvisionalCurve(src Node, cursor Vec2) Curve {
	return r.Curve(r.Anchor(src, PortOutput), cursor)
}

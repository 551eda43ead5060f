package flowcanvas

import "strings"

// Vec2 is a 2D vector used for positions, offsets and deltas throughout the
// API. Whether it holds screen or canvas units depends on the call site.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v multiplied by f.
func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// NodeKind selects the data shape and display width of a Node.
type NodeKind uint8

const (
	KindScript NodeKind = iota // scene script: title + content
	KindShot                   // camera shot: prompt + framing
	KindText                   // free text: title + content
	KindImage                  // image asset
	KindVideo                  // video asset
)

var kindNames = [...]string{"script", "shot", "text", "image", "video"}

// String returns the lowercase kind name.
func (k NodeKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ParseNodeKind maps a case-insensitive kind name to a NodeKind.
func ParseNodeKind(s string) (NodeKind, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range kindNames {
		if name == s {
			return NodeKind(i), true
		}
	}
	return 0, false
}

// NodeStatus reports the generation state of a node. The core never changes
// it on its own; see Graph.SetStatus.
type NodeStatus uint8

const (
	StatusIdle NodeStatus = iota
	StatusLoading
	StatusCompleted
	StatusError
)

// String returns the lowercase status name.
func (s NodeStatus) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusCompleted:
		return "completed"
	case StatusError:
		return "error"
	}
	return "unknown"
}

// MouseButton identifies a pointer button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// Has reports whether every modifier in want is held.
func (m KeyModifiers) Has(want KeyModifiers) bool {
	return m&want == want
}

// PortType distinguishes the two connection points on a node.
type PortType uint8

const (
	PortInput  PortType = iota // left anchor, end of incoming edges
	PortOutput                 // right anchor, start of outgoing edges
)

// HitKind classifies what a pointer landed on. The presentation layer owns
// hit testing and reports its verdict in PointerEvent.Target.
type HitKind uint8

const (
	HitBackground HitKind = iota // empty canvas
	HitNodeBody                  // draggable part of a node
	HitPort                      // an input or output anchor
	HitNoDrag                    // interactive sub-region: text field, button
)

// HitTarget is the presentation layer's classification of a pointer position.
type HitTarget struct {
	Kind   HitKind
	NodeID string
	Port   PortType
}

// Background is the HitTarget for empty canvas.
var Background = HitTarget{Kind: HitBackground}

// BodyOf returns the HitTarget for the draggable body of a node.
func BodyOf(nodeID string) HitTarget {
	return HitTarget{Kind: HitNodeBody, NodeID: nodeID}
}

// PortOf returns the HitTarget for one of a node's ports.
func PortOf(nodeID string, port PortType) HitTarget {
	return HitTarget{Kind: HitPort, NodeID: nodeID, Port: port}
}

// NoDragOf returns the HitTarget for an interactive region inside a node.
func NoDragOf(nodeID string) HitTarget {
	return HitTarget{Kind: HitNoDrag, NodeID: nodeID}
}

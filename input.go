package flowcanvas

import "github.com/charmbracelet/log"

// GestureKind identifies the active pointer gesture.
type GestureKind uint8

const (
	GestureNone         GestureKind = iota // idle
	GesturePanning                         // secondary/middle drag on background
	GestureDraggingNode                    // primary drag on a node body
	GestureConnecting                      // primary drag from an output port
)

// String returns the gesture name.
func (k GestureKind) String() string {
	switch k {
	case GestureNone:
		return "idle"
	case GesturePanning:
		return "panning"
	case GestureDraggingNode:
		return "dragging-node"
	case GestureConnecting:
		return "connecting"
	}
	return "unknown"
}

// Gesture is the state of the single active pointer interaction.
// Fields not used by Kind are zero.
type Gesture struct {
	Kind GestureKind
	// PointerID and Button identify the press that started the gesture.
	// Only events from the same pointer reach the gesture (capture) and only
	// a release of the same button ends it.
	PointerID int
	Button    MouseButton

	// NodeID is the dragged node (GestureDraggingNode) or the connection
	// source (GestureConnecting).
	NodeID string

	// StartScreen is the press position; StartCanvas the node's committed
	// position at press time (GestureDraggingNode).
	StartScreen Vec2
	StartCanvas Vec2
	// Pending is the live, uncommitted node position (GestureDraggingNode).
	Pending Vec2

	// Cursor is the live pointer position in canvas space (GestureConnecting).
	Cursor Vec2

	// lastScreen is the previous pointer position, for raw pan deltas.
	lastScreen Vec2
}

// Active reports whether a gesture is in progress.
func (g Gesture) Active() bool {
	return g.Kind != GestureNone
}

// PointerEvent is a raw pointer-down/move/up event as reported by the
// presentation layer, including its hit-test verdict.
type PointerEvent struct {
	PointerID int
	ScreenX   float64
	ScreenY   float64
	Button    MouseButton
	Modifiers KeyModifiers
	Target    HitTarget
}

// Screen returns the event position as a Vec2.
func (e PointerEvent) Screen() Vec2 {
	return Vec2{e.ScreenX, e.ScreenY}
}

// WheelEvent is a raw wheel event. A positive DeltaY scrolls down / zooms out.
type WheelEvent struct {
	DeltaY    float64
	ScreenX   float64
	ScreenY   float64
	Modifiers KeyModifiers
}

// GestureMachine turns raw pointer events into at most one active gesture and
// routes its effects to the viewport controller or the graph. A press while a
// gesture is active is ignored until that gesture's release.
type GestureMachine struct {
	active   Gesture
	viewport *ViewportController
	graph    *Graph
	logger   *log.Logger
	onChange func(Gesture)
}

// NewGestureMachine creates an idle gesture machine driving vc and g. A
// gesture on a node is cancelled as soon as g deletes that node.
func NewGestureMachine(vc *ViewportController, g *Graph) *GestureMachine {
	m := &GestureMachine{viewport: vc, graph: g, logger: discardLogger()}
	g.onDelete = append(g.onDelete, m.nodeDeleted)
	return m
}

// Active returns the current gesture.
func (m *GestureMachine) Active() Gesture {
	return m.active
}

// PointerDown starts a gesture from idle. Ports are classified before node
// bodies by the presentation layer, so a press on a port never starts a
// node drag. Returns whether a gesture started.
func (m *GestureMachine) PointerDown(ev PointerEvent) bool {
	if m.active.Active() {
		m.logger.Debug("press ignored: gesture active", "gesture", m.active.Kind, "pointer", ev.PointerID)
		return false
	}

	screen := ev.Screen()
	t := ev.Target
	next := Gesture{PointerID: ev.PointerID, Button: ev.Button, StartScreen: screen, lastScreen: screen}

	switch t.Kind {
	case HitPort:
		if ev.Button != MouseButtonLeft || t.Port != PortOutput || !m.graph.HasNode(t.NodeID) {
			return false
		}
		next.Kind = GestureConnecting
		next.NodeID = t.NodeID
		next.Cursor = ToCanvas(screen, m.viewport.State())

	case HitNodeBody:
		if ev.Button != MouseButtonLeft {
			return false
		}
		n, ok := m.graph.Node(t.NodeID)
		if !ok {
			return false
		}
		next.Kind = GestureDraggingNode
		next.NodeID = n.ID
		next.StartCanvas = n.Position
		next.Pending = n.Position

	case HitBackground:
		if ev.Button != MouseButtonMiddle && ev.Button != MouseButtonRight {
			return false
		}
		next.Kind = GesturePanning

	default:
		// Text fields and buttons inside a node never start a gesture.
		return false
	}

	m.set(next)
	return true
}

// PointerMove updates the active gesture. Events from a pointer other than
// the one that started the gesture are ignored.
func (m *GestureMachine) PointerMove(ev PointerEvent) {
	if !m.active.Active() || ev.PointerID != m.active.PointerID {
		return
	}
	screen := ev.Screen()

	switch m.active.Kind {
	case GesturePanning:
		d := screen.Sub(m.active.lastScreen)
		m.active.lastScreen = screen
		m.viewport.Pan(d.X, d.Y)

	case GestureDraggingNode:
		m.active.lastScreen = screen
		m.active.Pending = m.dragPosition(screen)
		m.changed()

	case GestureConnecting:
		m.active.lastScreen = screen
		m.active.Cursor = ToCanvas(screen, m.viewport.State())
		m.changed()
	}
}

// PointerUp ends the active gesture if ev is the matching release. A release
// with no matching gesture is a no-op.
func (m *GestureMachine) PointerUp(ev PointerEvent) {
	g := m.active
	if !g.Active() || ev.PointerID != g.PointerID || ev.Button != g.Button {
		return
	}
	screen := ev.Screen()

	switch g.Kind {
	case GesturePanning:
		d := screen.Sub(g.lastScreen)
		m.set(Gesture{})
		m.viewport.Pan(d.X, d.Y)

	case GestureDraggingNode:
		final := m.dragPosition(screen)
		m.set(Gesture{})
		m.graph.MoveNode(g.NodeID, final)

	case GestureConnecting:
		m.set(Gesture{})
		t := ev.Target
		if t.Kind == HitPort && t.Port == PortInput && t.NodeID != g.NodeID {
			m.graph.Connect(g.NodeID, t.NodeID)
		}

	default:
		m.set(Gesture{})
	}
}

// Cancel drops the active gesture without committing anything.
func (m *GestureMachine) Cancel() {
	if m.active.Active() {
		m.set(Gesture{})
	}
}

// nodeDeleted cancels a gesture that references a removed node.
func (m *GestureMachine) nodeDeleted(id string) {
	if m.active.Active() && m.active.NodeID == id {
		m.logger.Debug("gesture cancelled: node deleted", "gesture", m.active.Kind, "id", id)
		m.set(Gesture{})
	}
}

// dragPosition maps the current screen position to the dragged node's
// canvas position using the scale in effect now.
func (m *GestureMachine) dragPosition(screen Vec2) Vec2 {
	d := m.viewport.State().ScreenDelta(screen.Sub(m.active.StartScreen))
	return m.active.StartCanvas.Add(d)
}

func (m *GestureMachine) set(g Gesture) {
	prev := m.active.Kind
	m.active = g
	if prev != g.Kind {
		m.logger.Debug("gesture", "from", prev, "to", g.Kind, "node", g.NodeID)
	}
	m.changed()
}

// changed reports live preview updates; the graph is not touched.
func (m *GestureMachine) changed() {
	if m.onChange != nil {
		m.onChange(m.active)
	}
}

package flowcanvas

import (
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tanema/gween/ease"
)

// ChangeType identifies what a ChangeEvent reports.
type ChangeType uint8

const (
	ChangeNodeAdded   ChangeType = iota // NodeID was created
	ChangeNodeMoved                     // NodeID's committed position changed
	ChangeNodeData                      // NodeID's data changed (edit or propagation)
	ChangeNodeStatus                    // NodeID's status changed
	ChangeNodeDeleted                   // NodeID and its edges are gone
	ChangeEdgeAdded                     // EdgeID was created
	ChangeEdgeRemoved                   // EdgeID was removed
	ChangeViewport                      // pan or scale changed
	ChangeGesture                       // the active gesture or its preview changed
)

var changeNames = [...]string{
	"node-added", "node-moved", "node-data", "node-status", "node-deleted",
	"edge-added", "edge-removed", "viewport", "gesture",
}

// String returns the change name.
func (t ChangeType) String() string {
	if int(t) < len(changeNames) {
		return changeNames[t]
	}
	return "unknown"
}

// ChangeEvent is the re-render signal sent to the presentation layer.
type ChangeEvent struct {
	Type         ChangeType
	NodeID       string
	EdgeID       string
	SourceNodeID string
	TargetNodeID string
	// Propagated is set on ChangeNodeData events caused by propagation from
	// SourceNodeID along EdgeID.
	Propagated bool
	// Gesture is the active gesture kind for ChangeGesture events.
	Gesture GestureKind
	// Viewport is the new viewport for ChangeViewport events.
	Viewport Viewport
}

// EventSink is the interface for an optional change bridge (for example an
// ECS world). When set on a Canvas every ChangeEvent is forwarded to it.
type EventSink interface {
	EmitEvent(event ChangeEvent)
}

// HitTester classifies a screen position. The canvas uses it only for
// injected input that carries no explicit target.
type HitTester interface {
	HitTest(screen Vec2) HitTarget
}

// HitTesterFunc adapts a function to HitTester.
type HitTesterFunc func(screen Vec2) HitTarget

// HitTest calls f(screen).
func (f HitTesterFunc) HitTest(screen Vec2) HitTarget { return f(screen) }

// --- Handler registry ---

type changeHandler struct {
	id uint32
	fn func(ChangeEvent)
}

type handlerRegistry struct {
	change []changeHandler
	nextID uint32
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id  uint32
	reg *handlerRegistry
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	s := h.reg.change
	for i := range s {
		if s[i].id == h.id {
			// Build a new slice: emit may be iterating the old one.
			next := make([]changeHandler, 0, len(s)-1)
			next = append(next, s[:i]...)
			h.reg.change = append(next, s[i+1:]...)
			return
		}
	}
}

// --- Canvas ---

// Options configures New. Every field is optional. A Config that fails
// Validate is replaced by DefaultConfig.
type Options struct {
	Config    *Config
	Registry  KindRegistry
	Logger    *log.Logger
	HitTester HitTester
}

// Canvas is the top-level object that owns the graph, the viewport, the
// gesture machine and the render contract for one editor surface. Multiple
// canvases are fully independent.
//
// Canvas is single-threaded: call every method from the UI goroutine.
type Canvas struct {
	graph    *Graph
	viewport *ViewportController
	gestures *GestureMachine
	router   Router
	registry KindRegistry

	handlers  handlerRegistry
	sink      EventSink
	hitTester HitTester
	logger    *log.Logger
	baseLevel log.Level
	debug     bool

	width, height float64 // screen viewport size

	injectQueue  []syntheticEvent
	injectButton MouseButton
	testRunner   *TestRunner

	changeCount int
}

// New creates an empty canvas at pan (0, 0), scale 1.
func New(opts Options) *Canvas {
	logger := opts.Logger
	if logger == nil {
		logger = discardLogger()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = DefaultConfig()
	} else if err := cfg.Validate(); err != nil {
		logger.Warn("invalid config, using defaults", "err", err)
		cfg = DefaultConfig()
	}
	reg := opts.Registry
	if reg == nil {
		reg = cfg.Registry()
	}

	vc := NewViewportController()
	cfg.applyViewport(vc)
	g := NewGraph(reg)
	router := NewRouter(reg)
	router.ControlRatio = cfg.Routing.ControlRatio
	router.ControlMin = cfg.Routing.ControlMin

	c := &Canvas{
		graph:     g,
		viewport:  vc,
		gestures:  NewGestureMachine(vc, g),
		router:    router,
		registry:  reg,
		hitTester: opts.HitTester,
		width:     float64(cfg.Window.Width),
		height:    float64(cfg.Window.Height),
	}
	c.SetLogger(logger)

	g.notify = c.emit
	vc.onChange = func(v Viewport) {
		c.emit(ChangeEvent{Type: ChangeViewport, Viewport: v})
	}
	c.gestures.onChange = func(gs Gesture) {
		c.emit(ChangeEvent{Type: ChangeGesture, Gesture: gs.Kind, NodeID: gs.NodeID})
	}
	return c
}

// Graph returns the canvas's graph store.
func (c *Canvas) Graph() *Graph { return c.graph }

// Viewport returns the canvas's viewport controller.
func (c *Canvas) Viewport() *ViewportController { return c.viewport }

// Gestures returns the canvas's gesture machine.
func (c *Canvas) Gestures() *GestureMachine { return c.gestures }

// Router returns the canvas's edge router.
func (c *Canvas) Router() Router { return c.router }

// Registry returns the kind registry the canvas was built with.
func (c *Canvas) Registry() KindRegistry { return c.registry }

// SetLogger replaces the logger used by the canvas and its components. The
// canvas logs through a child of l, so debug mode never changes l's level.
func (c *Canvas) SetLogger(l *log.Logger) {
	if l == nil {
		l = discardLogger()
	}
	l = l.With()
	c.baseLevel = l.GetLevel()
	if c.debug {
		l.SetLevel(log.DebugLevel)
	}
	c.logger = l
	c.graph.logger = l
	c.gestures.logger = l
}

// Logger returns the canvas logger.
func (c *Canvas) Logger() *log.Logger { return c.logger }

// SetDebugMode enables or disables debug mode. When enabled the canvas
// logger is raised to debug level and every ignored operation, gesture transition and
// per-update counter is logged.
func (c *Canvas) SetDebugMode(enabled bool) {
	c.debug = enabled
	if enabled {
		c.logger.SetLevel(log.DebugLevel)
	} else {
		c.logger.SetLevel(c.baseLevel)
	}
}

// SetEventSink sets the optional change bridge.
func (c *Canvas) SetEventSink(sink EventSink) { c.sink = sink }

// SetHitTester sets the classifier used for injected input.
func (c *Canvas) SetHitTester(h HitTester) { c.hitTester = h }

// SetViewportSize records the screen size of the canvas surface, used for
// screen-centre placement and FocusNode.
func (c *Canvas) SetViewportSize(width, height float64) {
	c.width, c.height = width, height
}

// ViewportSize returns the recorded screen size.
func (c *Canvas) ViewportSize() (width, height float64) {
	return c.width, c.height
}

// OnChange registers a callback fired for every ChangeEvent, synchronously,
// before the mutating call returns.
func (c *Canvas) OnChange(fn func(ChangeEvent)) CallbackHandle {
	c.handlers.nextID++
	id := c.handlers.nextID
	c.handlers.change = append(c.handlers.change, changeHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &c.handlers}
}

func (c *Canvas) emit(ev ChangeEvent) {
	c.changeCount++
	for _, h := range c.handlers.change {
		if h.fn != nil {
			h.fn(ev)
		}
	}
	if c.sink != nil {
		c.sink.EmitEvent(ev)
	}
}

// --- Input ---

// HandlePointerDown feeds a pointer press to the gesture machine and reports
// whether it started a gesture.
func (c *Canvas) HandlePointerDown(ev PointerEvent) bool {
	return c.gestures.PointerDown(ev)
}

// HandlePointerMove feeds a pointer move to the gesture machine.
func (c *Canvas) HandlePointerMove(ev PointerEvent) {
	c.gestures.PointerMove(ev)
}

// HandlePointerUp feeds a pointer release to the gesture machine.
func (c *Canvas) HandlePointerUp(ev PointerEvent) {
	c.gestures.PointerUp(ev)
}

// HandleWheel zooms around the cursor when the zoom modifier is held. It
// returns false, leaving the scroll to the host, otherwise.
func (c *Canvas) HandleWheel(ev WheelEvent) bool {
	if !c.viewport.ZoomEnabled(ev.Modifiers) {
		return false
	}
	c.viewport.Zoom(Vec2{ev.ScreenX, ev.ScreenY}, ev.DeltaY)
	return true
}

// CancelGesture drops the active gesture without committing it.
func (c *Canvas) CancelGesture() {
	c.gestures.Cancel()
}

// --- Graph operations ---

// AddNode creates a node at a canvas-space position.
func (c *Canvas) AddNode(kind NodeKind, pos Vec2) string {
	return c.graph.AddNode(kind, pos)
}

// AddNodeAtScreen creates a node under a screen-space point.
func (c *Canvas) AddNodeAtScreen(kind NodeKind, screen Vec2) string {
	return c.graph.AddNode(kind, ToCanvas(screen, c.viewport.State()))
}

// AddNodeAtCenter creates a node at the centre of the screen viewport.
func (c *Canvas) AddNodeAtCenter(kind NodeKind) string {
	return c.AddNodeAtScreen(kind, Vec2{c.width / 2, c.height / 2})
}

// MoveNode commits a node position.
func (c *Canvas) MoveNode(id string, pos Vec2) bool { return c.graph.MoveNode(id, pos) }

// UpdateNodeData merges partial into a node's data and propagates it.
func (c *Canvas) UpdateNodeData(id string, partial NodeData) bool {
	return c.graph.UpdateNodeData(id, partial)
}

// SetStatus sets a node's generation status.
func (c *Canvas) SetStatus(id string, status NodeStatus) bool {
	return c.graph.SetStatus(id, status)
}

// DeleteNode removes a node and its edges, cancelling any gesture that
// references it.
func (c *Canvas) DeleteNode(id string) bool { return c.graph.DeleteNode(id) }

// Connect creates an edge and propagates the source's data into the target.
func (c *Canvas) Connect(source, target string) (string, bool) {
	return c.graph.Connect(source, target)
}

// Disconnect removes an edge.
func (c *Canvas) Disconnect(edgeID string) bool { return c.graph.Disconnect(edgeID) }

// FocusNode animates the viewport so node id ends up at the screen centre.
func (c *Canvas) FocusNode(id string, duration float32) bool {
	n, ok := c.graph.Node(id)
	if !ok {
		return false
	}
	c.viewport.ScrollTo(n.Position, c.width, c.height, duration, ease.OutCubic)
	return true
}

// Update advances one frame: the scripted test runner, one injected input
// event and any viewport animation. dt is in seconds.
func (c *Canvas) Update(dt float32) {
	var t0 time.Time
	if c.debug {
		t0 = time.Now()
		c.changeCount = 0
	}

	if c.testRunner != nil {
		c.testRunner.step(c)
	}
	injected := c.processInjectedInput()
	c.viewport.Update(dt)

	if c.debug {
		stats := debugStats{
			updateTime: time.Since(t0),
			changes:    c.changeCount,
			nodes:      c.graph.NumNodes(),
			edges:      c.graph.NumEdges(),
			gesture:    c.gestures.Active().Kind,
		}
		if injected {
			stats.injected = 1
		}
		c.debugLog(stats)
	}
}

// --- Render contract ---

// NodeView is a node as it should be drawn this frame.
type NodeView struct {
	Node
	// Dragging is set on the node being dragged; Position then holds the
	// live preview position, not the committed one.
	Dragging bool
	// Connecting is set on the source of an in-progress connection.
	Connecting bool
}

// EdgeView is an edge with its resolved canvas-space path.
type EdgeView struct {
	Edge
	Curve Curve
}

// FrameStats carries the on-screen counters.
type FrameStats struct {
	ScalePercent int
	Nodes        int
	Edges        int
}

// Frame is everything the presentation layer needs to draw one frame.
type Frame struct {
	Viewport Viewport
	Nodes    []NodeView
	Edges    []EdgeView
	// Provisional is the in-progress connection line, nil unless connecting.
	Provisional      *Curve
	Gesture          GestureKind
	ConnectingSource string
	Stats            FrameStats
}

// Frame builds the render snapshot. Node positions and edge paths reflect an
// uncommitted drag so the preview stays consistent.
func (c *Canvas) Frame() Frame {
	g := c.gestures.Active()
	v := c.viewport.State()
	f := Frame{
		Viewport: v,
		Gesture:  g.Kind,
		Stats: FrameStats{
			ScalePercent: int(math.Round(v.Scale * 100)),
			Nodes:        c.graph.NumNodes(),
			Edges:        c.graph.NumEdges(),
		},
	}

	nodes := c.graph.Nodes()
	byID := make(map[string]Node, len(nodes))
	f.Nodes = make([]NodeView, 0, len(nodes))
	for _, n := range nodes {
		nv := NodeView{Node: n}
		switch {
		case g.Kind == GestureDraggingNode && g.NodeID == n.ID:
			nv.Dragging = true
			nv.Position = g.Pending
		case g.Kind == GestureConnecting && g.NodeID == n.ID:
			nv.Connecting = true
		}
		byID[n.ID] = nv.Node
		f.Nodes = append(f.Nodes, nv)
	}

	edges := c.graph.Edges()
	f.Edges = make([]EdgeView, 0, len(edges))
	for _, e := range edges {
		src, okS := byID[e.SourceNodeID]
		dst, okD := byID[e.TargetNodeID]
		if !okS || !okD {
			continue
		}
		f.Edges = append(f.Edges, EdgeView{Edge: e, Curve: c.router.EdgeCurve(src, dst)})
	}

	if g.Kind == GestureConnecting {
		if src, ok := byID[g.NodeID]; ok {
			cv := c.router.ProvisionalCurve(src, g.Cursor)
			f.Provisional = &cv
			f.ConnectingSource = g.NodeID
		}
	}
	return f
}

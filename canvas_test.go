package flowcanvas

import "testing"

type recordingSink struct {
	events []ChangeEvent
}

func (s *recordingSink) EmitEvent(ev ChangeEvent) { s.events = append(s.events, ev) }

func TestNewCanvasDefaults(t *testing.T) {
	c := New(Options{})
	if c.Viewport().State() != identityViewport {
		t.Errorf("viewport = %+v", c.Viewport().State())
	}
	if w, h := c.ViewportSize(); w != 1280 || h != 800 {
		t.Errorf("size = %v x %v", w, h)
	}
	if c.Graph().NumNodes() != 0 || c.Gestures().Active().Active() {
		t.Error("new canvas not empty and idle")
	}
}

func TestCanvasesAreIndependent(t *testing.T) {
	a := New(Options{})
	b := New(Options{})
	a.AddNode(KindText, Vec2{})
	a.Viewport().Pan(10, 10)
	if b.Graph().NumNodes() != 0 || b.Viewport().State() != identityViewport {
		t.Error("canvas state leaked between instances")
	}
}

func TestOnChangeAndRemove(t *testing.T) {
	c := New(Options{})
	var got []ChangeType
	h := c.OnChange(func(ev ChangeEvent) { got = append(got, ev.Type) })

	id := c.AddNode(KindText, Vec2{})
	c.MoveNode(id, Vec2{1, 1})
	h.Remove()
	c.DeleteNode(id)

	want := []ChangeType{ChangeNodeAdded, ChangeNodeMoved}
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestCallbackHandleRemoveKeepsOthers(t *testing.T) {
	c := New(Options{})
	var first, second int
	h1 := c.OnChange(func(ChangeEvent) { first++ })
	c.OnChange(func(ChangeEvent) { second++ })
	h1.Remove()
	h1.Remove()
	CallbackHandle{}.Remove()

	c.AddNode(KindText, Vec2{})
	if first != 0 || second != 1 {
		t.Errorf("first = %d, second = %d", first, second)
	}
}

func TestEventSinkReceivesAllChanges(t *testing.T) {
	c := New(Options{})
	sink := &recordingSink{}
	c.SetEventSink(sink)

	c.AddNode(KindText, Vec2{})
	c.Viewport().Pan(5, 0)
	c.HandlePointerDown(PointerEvent{Button: MouseButtonMiddle, Target: Background})

	want := []ChangeType{ChangeNodeAdded, ChangeViewport, ChangeGesture}
	if len(sink.events) != len(want) {
		t.Fatalf("events = %+v", sink.events)
	}
	for i := range want {
		if sink.events[i].Type != want[i] {
			t.Errorf("event %d = %v, want %v", i, sink.events[i].Type, want[i])
		}
	}
	if sink.events[1].Viewport.PanX != 5 {
		t.Errorf("viewport event = %+v", sink.events[1].Viewport)
	}
	if sink.events[2].Gesture != GesturePanning {
		t.Errorf("gesture event = %+v", sink.events[2])
	}
}

func TestHandleWheelModifier(t *testing.T) {
	c := New(Options{})
	if c.HandleWheel(WheelEvent{DeltaY: -1, ScreenX: 10, ScreenY: 10}) {
		t.Error("wheel without ctrl was intercepted")
	}
	if c.Viewport().Scale() != 1 {
		t.Error("wheel without ctrl zoomed")
	}
	if !c.HandleWheel(WheelEvent{DeltaY: -1, ScreenX: 10, ScreenY: 10, Modifiers: ModCtrl}) {
		t.Error("ctrl+wheel not intercepted")
	}
	if !approxEqual(c.Viewport().Scale(), 1.1, epsilon) {
		t.Errorf("Scale = %v", c.Viewport().Scale())
	}
}

func TestAddNodeAtScreen(t *testing.T) {
	c := New(Options{})
	c.Viewport().ZoomTo(Vec2{}, 2)
	c.Viewport().Pan(100, 40)

	id := c.AddNodeAtScreen(KindShot, Vec2{300, 240})
	n, _ := c.Graph().Node(id)
	assertVec(t, "position", n.Position, Vec2{100, 100})

	c.SetViewportSize(800, 600)
	id = c.AddNodeAtCenter(KindText)
	n, _ = c.Graph().Node(id)
	assertVec(t, "centre", ToScreen(n.Position, c.Viewport().State()), Vec2{400, 300})
}

func TestFocusNode(t *testing.T) {
	c := New(Options{})
	c.SetViewportSize(800, 600)
	id := c.AddNode(KindText, Vec2{1000, -500})

	if c.FocusNode("ghost", 0.2) {
		t.Error("FocusNode on unknown id")
	}
	if !c.FocusNode(id, 0.2) {
		t.Fatal("FocusNode returned false")
	}
	for range 30 {
		c.Update(1.0 / 60)
	}
	assertVec(t, "focused", ToScreen(Vec2{1000, -500}, c.Viewport().State()), Vec2{400, 300})
}

func TestFrameDragPreview(t *testing.T) {
	c := New(Options{})
	a := c.AddNode(KindScript, Vec2{0, 0})
	b := c.AddNode(KindShot, Vec2{600, 0})
	c.Connect(a, b)

	c.HandlePointerDown(PointerEvent{Button: MouseButtonLeft, Target: BodyOf(b)})
	c.HandlePointerMove(PointerEvent{ScreenX: 0, ScreenY: 100})

	f := c.Frame()
	if f.Gesture != GestureDraggingNode {
		t.Fatalf("gesture = %v", f.Gesture)
	}
	var view NodeView
	for _, nv := range f.Nodes {
		if nv.ID == b {
			view = nv
		}
	}
	if !view.Dragging || view.Position != (Vec2{600, 100}) {
		t.Errorf("dragged view = %+v", view)
	}
	if len(f.Edges) != 1 {
		t.Fatalf("edges = %d", len(f.Edges))
	}
	assertVec(t, "edge end follows preview", f.Edges[0].Curve.End, Vec2{456, 100})

	if n, _ := c.Graph().Node(b); n.Position != (Vec2{600, 0}) {
		t.Errorf("store position = %v, want uncommitted", n.Position)
	}
}

func TestFrameProvisionalEdge(t *testing.T) {
	c := New(Options{})
	a := c.AddNode(KindScript, Vec2{0, 0})
	if f := c.Frame(); f.Provisional != nil || f.ConnectingSource != "" {
		t.Error("idle frame has a provisional edge")
	}

	c.HandlePointerDown(PointerEvent{ScreenX: 192, Button: MouseButtonLeft, Target: PortOf(a, PortOutput)})
	c.HandlePointerMove(PointerEvent{ScreenX: 400, ScreenY: 80})

	f := c.Frame()
	if f.Provisional == nil {
		t.Fatal("no provisional edge")
	}
	assertVec(t, "start", f.Provisional.Start, Vec2{192, 0})
	assertVec(t, "end", f.Provisional.End, Vec2{400, 80})
	if f.ConnectingSource != a || !f.Nodes[0].Connecting {
		t.Errorf("connecting source = %q", f.ConnectingSource)
	}
}

func TestFrameStats(t *testing.T) {
	c := New(Options{})
	c.AddNode(KindText, Vec2{})
	c.AddNode(KindText, Vec2{})
	c.Viewport().ZoomTo(Vec2{}, 1.1*1.1)

	s := c.Frame().Stats
	if s.ScalePercent != 121 || s.Nodes != 2 || s.Edges != 0 {
		t.Errorf("stats = %+v", s)
	}
}

func TestChangeTypeString(t *testing.T) {
	if ChangeNodeData.String() != "node-data" || ChangeType(200).String() != "unknown" {
		t.Error("ChangeType names")
	}
}

func TestHandlerRemovesItselfDuringEmit(t *testing.T) {
	c := New(Options{})
	var once, other int
	var h CallbackHandle
	h = c.OnChange(func(ChangeEvent) {
		once++
		h.Remove()
	})
	c.OnChange(func(ChangeEvent) { other++ })

	c.AddNode(KindText, Vec2{})
	if once != 1 || other != 1 {
		t.Fatalf("once = %d, other = %d after first event", once, other)
	}
	c.AddNode(KindText, Vec2{})
	if once != 1 || other != 2 {
		t.Errorf("once = %d, other = %d after second event", once, other)
	}
}

func TestInvalidConfigFallsBackToDefaults(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
	}{
		{"zero value", &Config{}},
		{"inverted bounds", func() *Config {
			cfg := DefaultConfig()
			cfg.Viewport.MinScale, cfg.Viewport.MaxScale = 4, 2
			return cfg
		}()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(Options{Config: tt.cfg})
			c.HandleWheel(WheelEvent{DeltaY: -1, ScreenX: 100, ScreenY: 100, Modifiers: ModCtrl})
			if !approxEqual(c.Viewport().Scale(), 1.1, epsilon) {
				t.Fatalf("Scale = %v, want 1.1", c.Viewport().Scale())
			}
			assertVec(t, "anchor", ToCanvas(Vec2{100, 100}, c.Viewport().State()), Vec2{100, 100})
			if w, h := c.ViewportSize(); w != 1280 || h != 800 {
				t.Errorf("size = %v x %v", w, h)
			}
		})
	}
}

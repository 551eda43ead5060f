package hittest

import (
	"testing"

	"github.com/phanxgames/flowcanvas"
)

func views(nodes ...flowcanvas.Node) []flowcanvas.NodeView {
	out := make([]flowcanvas.NodeView, len(nodes))
	for i, n := range nodes {
		out[i] = flowcanvas.NodeView{Node: n}
	}
	return out
}

func scriptAt(id string, x, y float64) flowcanvas.Node {
	return flowcanvas.Node{ID: id, Kind: flowcanvas.KindScript, Position: flowcanvas.Vec2{X: x, Y: y}}
}

func TestHitRectContains(t *testing.T) {
	r := HitRect{X: 10, Y: 20, Width: 100, Height: 50}
	tests := []struct {
		x, y float64
		want bool
	}{
		{50, 40, true},
		{10, 20, true},
		{110, 70, true},
		{9, 40, false},
		{50, 71, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestHitCircleContains(t *testing.T) {
	c := HitCircle{CenterX: 50, CenterY: 50, Radius: 20}
	if !c.Contains(50, 50) {
		t.Error("center should be inside")
	}
	if !c.Contains(70, 50) {
		t.Error("edge should be inside")
	}
	if c.Contains(65, 65) {
		t.Error("corner should be outside")
	}
}

func TestClassifySingleNode(t *testing.T) {
	l := NewLayout(nil)
	nodes := views(scriptAt("a", 0, 0))

	tests := []struct {
		name string
		x, y float64
		want flowcanvas.HitTarget
	}{
		{"header", 0, -90, flowcanvas.BodyOf("a")},
		{"below content", 0, 105, flowcanvas.BodyOf("a")},
		{"delete button", 170, -95, flowcanvas.NoDragOf("a")},
		{"content field", 0, 0, flowcanvas.NoDragOf("a")},
		{"output port", 192, 5, flowcanvas.PortOf("a", flowcanvas.PortOutput)},
		{"output port outside box", 205, 0, flowcanvas.PortOf("a", flowcanvas.PortOutput)},
		{"input port", -200, 0, flowcanvas.PortOf("a", flowcanvas.PortInput)},
		{"background", 500, 500, flowcanvas.Background},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := l.Classify(nodes, flowcanvas.Vec2{X: tt.x, Y: tt.y})
			if got != tt.want {
				t.Errorf("Classify(%v, %v) = %+v, want %+v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestClassifyTopmostBody(t *testing.T) {
	l := NewLayout(nil)
	nodes := views(scriptAt("a", 0, 0), scriptAt("b", 100, 0))

	got := l.Classify(nodes, flowcanvas.Vec2{X: 50, Y: -90})
	if got != flowcanvas.BodyOf("b") {
		t.Errorf("overlap = %+v, want body of b", got)
	}
}

func TestClassifyPortBeatsBody(t *testing.T) {
	l := NewLayout(nil)
	// a's output port lies inside b's content field; b is drawn on top.
	nodes := views(scriptAt("a", 0, 0), scriptAt("b", 100, 0))

	got := l.Classify(nodes, flowcanvas.Vec2{X: 192, Y: 0})
	if got != flowcanvas.PortOf("a", flowcanvas.PortOutput) {
		t.Errorf("port under body = %+v, want a's output port", got)
	}
}

func TestDeleteAndContentAt(t *testing.T) {
	l := NewLayout(nil)
	nodes := views(scriptAt("a", 0, 0))

	if id, ok := l.DeleteAt(nodes, flowcanvas.Vec2{X: 170, Y: -95}); !ok || id != "a" {
		t.Errorf("DeleteAt = (%q, %v), want (a, true)", id, ok)
	}
	if _, ok := l.DeleteAt(nodes, flowcanvas.Vec2{X: 0, Y: 0}); ok {
		t.Error("DeleteAt on content field should be false")
	}
	if id, ok := l.ContentAt(nodes, flowcanvas.Vec2{X: 0, Y: 0}); !ok || id != "a" {
		t.Errorf("ContentAt = (%q, %v), want (a, true)", id, ok)
	}
	if _, ok := l.ContentAt(nodes, flowcanvas.Vec2{X: 0, Y: -90}); ok {
		t.Error("ContentAt on header should be false")
	}
}

func TestLayoutUsesRegistryWidths(t *testing.T) {
	l := NewLayout(nil)
	shot := flowcanvas.Node{ID: "s", Kind: flowcanvas.KindShot}
	if got := l.Port(shot, flowcanvas.PortOutput).CenterX; got != 144 {
		t.Errorf("shot output port x = %v, want 144", got)
	}
	text := flowcanvas.Node{ID: "t", Kind: flowcanvas.KindText}
	if got := l.Port(text, flowcanvas.PortInput).CenterX; got != -128 {
		t.Errorf("text input port x = %v, want -128", got)
	}
}

func TestForDrivesInjectedDrag(t *testing.T) {
	c := flowcanvas.New(flowcanvas.Options{})
	id := c.AddNode(flowcanvas.KindScript, flowcanvas.Vec2{})
	c.SetHitTester(NewLayout(nil).For(c))

	// Press on the header, drag 40px right over four frames.
	c.InjectDrag(0, -90, 40, -90, 4, flowcanvas.MouseButtonLeft)
	for c.PendingInjections() > 0 {
		c.Update(1.0 / 60)
	}

	n, _ := c.Graph().Node(id)
	if n.Position != (flowcanvas.Vec2{X: 40, Y: 0}) {
		t.Errorf("position = %+v, want (40, 0)", n.Position)
	}
}

func TestForDrivesInjectedConnect(t *testing.T) {
	c := flowcanvas.New(flowcanvas.Options{})
	a := c.AddNode(flowcanvas.KindScript, flowcanvas.Vec2{})
	b := c.AddNode(flowcanvas.KindShot, flowcanvas.Vec2{X: 600})
	c.SetHitTester(NewLayout(nil).For(c))

	// From a's output port (192, 0) to b's input port (600-144, 0).
	c.InjectDrag(192, 0, 456, 0, 5, flowcanvas.MouseButtonLeft)
	for c.PendingInjections() > 0 {
		c.Update(1.0 / 60)
	}
	if !c.Graph().HasEdge(a, b) {
		t.Fatal("expected edge a -> b")
	}
}

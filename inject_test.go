package flowcanvas

import "testing"

func TestInjectClickQueue(t *testing.T) {
	c := New(Options{})
	c.InjectClick(50, 50, MouseButtonLeft)
	if len(c.injectQueue) != 2 {
		t.Fatalf("expected 2 queued events, got %d", len(c.injectQueue))
	}

	// One event per frame.
	c.Update(0)
	if len(c.injectQueue) != 1 {
		t.Fatalf("expected 1 remaining event after frame 1, got %d", len(c.injectQueue))
	}
	c.Update(0)
	if c.PendingInjections() != 0 {
		t.Fatalf("expected empty queue, got %d", c.PendingInjections())
	}
}

func TestInjectDragFrames(t *testing.T) {
	tests := []struct {
		frames int
		want   int
	}{
		{0, 2},
		{2, 2},
		{5, 5},
	}
	for _, tt := range tests {
		c := New(Options{})
		c.InjectDrag(0, 0, 100, 0, tt.frames, MouseButtonLeft)
		if got := c.PendingInjections(); got != tt.want {
			t.Errorf("frames %d: queued %d, want %d", tt.frames, got, tt.want)
		}
	}
}

func TestInjectDragInterpolates(t *testing.T) {
	c := New(Options{})
	c.InjectDrag(0, 0, 100, 50, 6, MouseButtonRight)
	moves := c.injectQueue[1 : len(c.injectQueue)-1]
	if len(moves) != 4 {
		t.Fatalf("moves = %d, want 4", len(moves))
	}
	for i, ev := range moves {
		want := float64(i+1) * 20
		if !approxEqual(ev.screenX, want, epsilon) || !approxEqual(ev.screenY, want/2, epsilon) {
			t.Errorf("move %d at (%v, %v)", i, ev.screenX, ev.screenY)
		}
		if ev.button != MouseButtonRight {
			t.Errorf("move %d button = %v", i, ev.button)
		}
	}
}

func TestInjectPressOnExplicitTarget(t *testing.T) {
	c := New(Options{})
	id := c.AddNode(KindText, Vec2{})
	c.SetHitTester(HitTesterFunc(func(Vec2) HitTarget { return Background }))

	c.InjectPressOn(0, 0, MouseButtonLeft, BodyOf(id))
	c.InjectMove(25, 10)
	c.InjectRelease(25, 10)
	for c.PendingInjections() > 0 {
		c.Update(1.0 / 60)
	}
	if n, _ := c.Graph().Node(id); n.Position != (Vec2{25, 10}) {
		t.Errorf("Position = %v, want (25, 10)", n.Position)
	}
}

func TestInjectUsesHitTester(t *testing.T) {
	c := New(Options{})
	a := c.AddNode(KindScript, Vec2{})
	b := c.AddNode(KindShot, Vec2{500, 0})
	c.SetHitTester(HitTesterFunc(func(p Vec2) HitTarget {
		switch {
		case p.X < 10:
			return PortOf(a, PortOutput)
		case p.X > 90:
			return PortOf(b, PortInput)
		}
		return Background
	}))

	c.InjectDrag(0, 0, 100, 0, 3, MouseButtonLeft)
	c.Update(0)
	if c.Gestures().Active().Kind != GestureConnecting {
		t.Fatalf("gesture = %v, want connecting", c.Gestures().Active().Kind)
	}
	c.Update(0)
	c.Update(0)
	if !c.Graph().HasEdge(a, b) {
		t.Error("expected edge")
	}
}

func TestInjectWithoutHitTesterIsBackground(t *testing.T) {
	c := New(Options{})
	c.InjectDrag(0, 0, 40, 30, 3, MouseButtonMiddle)
	for c.PendingInjections() > 0 {
		c.Update(0)
	}
	v := c.Viewport().State()
	if v.PanX != 40 || v.PanY != 30 {
		t.Errorf("pan = (%v, %v), want (40, 30)", v.PanX, v.PanY)
	}
}

func TestInjectWheel(t *testing.T) {
	c := New(Options{})
	c.InjectWheel(100, 100, 1, 0)
	c.InjectWheel(100, 100, 1, ModCtrl)
	c.Update(0)
	if c.Viewport().Scale() != 1 {
		t.Error("wheel without modifier zoomed")
	}
	c.Update(0)
	if !approxEqual(c.Viewport().Scale(), 0.9, epsilon) {
		t.Errorf("Scale = %v, want 0.9", c.Viewport().Scale())
	}
}

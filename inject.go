package flowcanvas

// syntheticPhase is the kind of an injected event.
type syntheticPhase uint8

const (
	phaseDown syntheticPhase = iota
	phaseMove
	phaseUp
	phaseWheel
)

// syntheticEvent represents a single injected input event. Screen
// coordinates are used, identical to real pointer input.
type syntheticEvent struct {
	phase     syntheticPhase
	screenX   float64
	screenY   float64
	button    MouseButton
	mods      KeyModifiers
	delta     float64
	target    HitTarget
	hasTarget bool
}

// InjectPress queues a pointer press at the given screen coordinates. The
// target is classified by the canvas HitTester when the event is consumed.
// Events are consumed one per Update.
func (c *Canvas) InjectPress(x, y float64, button MouseButton) {
	c.injectButton = button
	c.injectQueue = append(c.injectQueue, syntheticEvent{
		phase: phaseDown, screenX: x, screenY: y, button: button,
	})
}

// InjectPressOn queues a pointer press with an explicit hit target.
func (c *Canvas) InjectPressOn(x, y float64, button MouseButton, target HitTarget) {
	c.injectButton = button
	c.injectQueue = append(c.injectQueue, syntheticEvent{
		phase: phaseDown, screenX: x, screenY: y, button: button,
		target: target, hasTarget: true,
	})
}

// InjectMove queues a pointer move with the most recently pressed button held.
func (c *Canvas) InjectMove(x, y float64) {
	c.injectQueue = append(c.injectQueue, syntheticEvent{
		phase: phaseMove, screenX: x, screenY: y, button: c.injectButton,
	})
}

// InjectRelease queues a pointer release of the most recently pressed button.
func (c *Canvas) InjectRelease(x, y float64) {
	c.injectQueue = append(c.injectQueue, syntheticEvent{
		phase: phaseUp, screenX: x, screenY: y, button: c.injectButton,
	})
}

// InjectClick queues a press followed by a release at the same position.
func (c *Canvas) InjectClick(x, y float64, button MouseButton) {
	c.InjectPress(x, y, button)
	c.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY), linearly
// interpolated moves over frames-2 intermediate frames, and release at
// (toX, toY). Minimum frames is 2 (press + release).
func (c *Canvas) InjectDrag(fromX, fromY, toX, toY float64, frames int, button MouseButton) {
	if frames < 2 {
		frames = 2
	}
	c.InjectPress(fromX, fromY, button)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		c.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	c.InjectRelease(toX, toY)
}

// InjectWheel queues a wheel event at the given screen coordinates.
func (c *Canvas) InjectWheel(x, y, deltaY float64, mods KeyModifiers) {
	c.injectQueue = append(c.injectQueue, syntheticEvent{
		phase: phaseWheel, screenX: x, screenY: y, delta: deltaY, mods: mods,
	})
}

// PendingInjections returns the number of queued synthetic events.
func (c *Canvas) PendingInjections() int {
	return len(c.injectQueue)
}

// processInjectedInput pops one event from the inject queue and feeds it to
// the input handlers. Returns true if an event was consumed.
func (c *Canvas) processInjectedInput() bool {
	if len(c.injectQueue) == 0 {
		return false
	}
	evt := c.injectQueue[0]
	copy(c.injectQueue, c.injectQueue[1:])
	c.injectQueue = c.injectQueue[:len(c.injectQueue)-1]

	if evt.phase == phaseWheel {
		c.HandleWheel(WheelEvent{DeltaY: evt.delta, ScreenX: evt.screenX, ScreenY: evt.screenY, Modifiers: evt.mods})
		return true
	}

	target := evt.target
	if !evt.hasTarget && c.hitTester != nil {
		target = c.hitTester.HitTest(Vec2{evt.screenX, evt.screenY})
	}
	pe := PointerEvent{
		ScreenX: evt.screenX, ScreenY: evt.screenY,
		Button: evt.button, Modifiers: evt.mods, Target: target,
	}
	switch evt.phase {
	case phaseDown:
		c.HandlePointerDown(pe)
	case phaseMove:
		c.HandlePointerMove(pe)
	case phaseUp:
		c.HandlePointerUp(pe)
	}
	return true
}

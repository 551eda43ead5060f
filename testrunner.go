package flowcanvas

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyScript is returned by LoadTestScript for a script with no steps.
var ErrEmptyScript = errors.New("parse test script: no steps")

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Kind   string  `json:"kind,omitempty"`
	Button string  `json:"button,omitempty"`
	Mods   string  `json:"mods,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Delta  float64 `json:"delta,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected input across frames for scripted
// interaction tests. Attach to a Canvas via SetTestRunner.
//
// Supported actions: "add" (kind at screen x,y), "press", "move",
// "release", "click", "drag", "wheel" and "wait".
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
	added     []string
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready to
// be attached to a Canvas via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, ErrEmptyScript
	}
	for i, st := range script.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

func (st testStep) validate() error {
	switch st.Action {
	case "add":
		if _, ok := ParseNodeKind(st.Kind); !ok {
			return fmt.Errorf("unknown node kind %q", st.Kind)
		}
	case "press", "move", "release", "click", "drag", "wheel", "wait":
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	if _, err := parseButton(st.Button); err != nil {
		return err
	}
	if _, err := parseMods(st.Mods); err != nil {
		return err
	}
	return nil
}

// SetTestRunner attaches a TestRunner to the canvas. The runner's step method
// is called from Canvas.Update before injected input is processed.
func (c *Canvas) SetTestRunner(runner *TestRunner) {
	c.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// Added returns the ids of nodes created by "add" steps, in order.
func (r *TestRunner) Added() []string {
	return r.added
}

// step advances the test runner by one frame. Called from Canvas.Update.
func (r *TestRunner) step(c *Canvas) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(c.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	button, _ := parseButton(st.Button)
	mods, _ := parseMods(st.Mods)

	switch st.Action {
	case "add":
		kind, _ := ParseNodeKind(st.Kind)
		r.added = append(r.added, c.AddNodeAtScreen(kind, Vec2{st.X, st.Y}))
	case "press":
		c.InjectPress(st.X, st.Y, button)
	case "move":
		c.InjectMove(st.X, st.Y)
	case "release":
		c.InjectRelease(st.X, st.Y)
	case "click":
		c.InjectClick(st.X, st.Y, button)
	case "drag":
		c.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames, button)
	case "wheel":
		c.InjectWheel(st.X, st.Y, st.Delta, mods)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(c.injectQueue) == 0 {
		r.done = true
	}
}

func parseButton(s string) (MouseButton, error) {
	switch strings.ToLower(s) {
	case "", "left", "primary":
		return MouseButtonLeft, nil
	case "right", "secondary":
		return MouseButtonRight, nil
	case "middle":
		return MouseButtonMiddle, nil
	}
	return 0, fmt.Errorf("unknown button %q", s)
}

// parseMods parses a "+"-separated modifier list such as "ctrl+shift".
func parseMods(s string) (KeyModifiers, error) {
	var mods KeyModifiers
	if s == "" {
		return 0, nil
	}
	for _, part := range strings.Split(s, "+") {
		m, err := parseModifier(part)
		if err != nil {
			return 0, err
		}
		mods |= m
	}
	return mods, nil
}

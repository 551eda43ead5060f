package ebitenview

import (
	"testing"

	"github.com/phanxgames/flowcanvas"
)

func TestWheelDelta(t *testing.T) {
	// Scrolling up in Ebitengine is a negative DOM delta, which zooms in.
	if got := wheelDelta(1); got != -1 {
		t.Errorf("wheelDelta(1) = %v, want -1", got)
	}
	if got := wheelDelta(-2); got != 2 {
		t.Errorf("wheelDelta(-2) = %v, want 2", got)
	}
}

func TestFrameDelta(t *testing.T) {
	if got := frameDelta(60); got != float32(1)/60 {
		t.Errorf("frameDelta(60) = %v", got)
	}
	if got := frameDelta(0); got <= 0 {
		t.Errorf("frameDelta(0) = %v, want positive", got)
	}
}

func TestApplyTyping(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		typed     string
		backspace bool
		enter     bool
		want      string
	}{
		{"append", "Hel", "lo", false, false, "Hello"},
		{"backspace", "Hello", "", true, false, "Hell"},
		{"backspace empty", "", "", true, false, ""},
		{"enter", "line", "", false, true, "line\n"},
		{"multibyte backspace", "café", "", true, false, "caf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := applyTyping(tt.value, []rune(tt.typed), tt.backspace, tt.enter)
			if got != tt.want {
				t.Errorf("applyTyping = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEditField(t *testing.T) {
	tests := []struct {
		kind flowcanvas.NodeKind
		want string
	}{
		{flowcanvas.KindScript, flowcanvas.FieldContent},
		{flowcanvas.KindText, flowcanvas.FieldContent},
		{flowcanvas.KindShot, flowcanvas.FieldPrompt},
		{flowcanvas.KindImage, flowcanvas.FieldTitle},
		{flowcanvas.KindVideo, flowcanvas.FieldTitle},
	}
	for _, tt := range tests {
		if got := editField(tt.kind); got != tt.want {
			t.Errorf("editField(%v) = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("a long piece of text", 10); got != "a long ..." {
		t.Errorf("truncate = %q, want %q", got, "a long ...")
	}
}

func TestNodeLabel(t *testing.T) {
	n := flowcanvas.Node{Kind: flowcanvas.KindShot, Data: flowcanvas.NodeData{}}
	if got := nodeLabel(n); got != "shot" {
		t.Errorf("nodeLabel = %q, want shot", got)
	}
	n.Data[flowcanvas.FieldTitle] = "Opening"
	n.Status = flowcanvas.StatusLoading
	if got := nodeLabel(n); got != "Opening [loading]" {
		t.Errorf("nodeLabel = %q", got)
	}
}

func TestHUDText(t *testing.T) {
	f := flowcanvas.Frame{
		Gesture: flowcanvas.GesturePanning,
		Stats:   flowcanvas.FrameStats{ScalePercent: 110, Nodes: 3, Edges: 2},
	}
	want := "zoom 110%  nodes 3  edges 2  panning"
	if got := hudText(f); got != want {
		t.Errorf("hudText = %q, want %q", got, want)
	}
}

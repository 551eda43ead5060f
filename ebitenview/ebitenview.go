// Package ebitenview runs a flowcanvas canvas in an Ebitengine window. It
// reads mouse, wheel and keyboard input, classifies pointer positions with
// the hittest layout and draws each frame from Canvas.Frame.
package ebitenview

import (
	"fmt"
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/flowcanvas"
	"github.com/phanxgames/flowcanvas/hittest"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
	Logger  *log.Logger
}

// Run opens a window and drives c until the window is closed. A nil layout
// uses the stock geometry with c's registry sizes when available.
func Run(c *flowcanvas.Canvas, layout *hittest.Layout, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 1280, 800
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(NewGame(c, layout, cfg))
}

// focusField is the node field receiving typed text.
type focusField struct {
	nodeID string
	field  string
}

// Game implements ebiten.Game for a canvas.
type Game struct {
	canvas *flowcanvas.Canvas
	layout *hittest.Layout
	cfg    RunConfig
	logger *log.Logger

	focus    focusField
	selected string
	lastX    int
	lastY    int
	chars    []rune
	curve    []flowcanvas.Vec2
}

// NewGame wires c to a new Game. The canvas hit tester is set to the layout
// so injected input and window input share geometry.
func NewGame(c *flowcanvas.Canvas, layout *hittest.Layout, cfg RunConfig) *Game {
	if layout == nil {
		var sizes hittest.Sizer
		if s, ok := c.Registry().(hittest.Sizer); ok {
			sizes = s
		}
		layout = hittest.NewLayout(sizes)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = c.Logger()
	}
	c.SetHitTester(layout.For(c))
	c.SetViewportSize(float64(cfg.Width), float64(cfg.Height))
	return &Game{canvas: c, layout: layout, cfg: cfg, logger: logger}
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	g.handleKeys()
	g.handleText()
	g.handleWheel()
	g.handlePointer()
	g.canvas.Update(frameDelta(ebiten.TPS()))
	return nil
}

// frameDelta is the fixed update step for a tick rate.
func frameDelta(tps int) float32 {
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	return 1 / float32(tps)
}

// Layout implements ebiten.Game.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.canvas.SetViewportSize(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}

var kindKeys = [...]struct {
	key  ebiten.Key
	kind flowcanvas.NodeKind
}{
	{ebiten.Key1, flowcanvas.KindScript},
	{ebiten.Key2, flowcanvas.KindShot},
	{ebiten.Key3, flowcanvas.KindText},
	{ebiten.Key4, flowcanvas.KindImage},
	{ebiten.Key5, flowcanvas.KindVideo},
}

func (g *Game) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		if g.focus.nodeID != "" {
			g.focus = focusField{}
		} else {
			g.canvas.CancelGesture()
		}
	}
	if g.focus.nodeID != "" {
		return
	}
	for _, kk := range kindKeys {
		if inpututil.IsKeyJustPressed(kk.key) {
			g.selected = g.canvas.AddNodeAtCenter(kk.kind)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDelete) && g.selected != "" {
		g.canvas.DeleteNode(g.selected)
		g.selected = ""
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) && g.selected != "" {
		g.canvas.FocusNode(g.selected, 0)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		g.canvas.Viewport().Reset()
	}
}

func (g *Game) handleText() {
	if g.focus.nodeID == "" {
		return
	}
	n, ok := g.canvas.Graph().Node(g.focus.nodeID)
	if !ok {
		g.focus = focusField{}
		return
	}
	value := n.Data[g.focus.field]
	g.chars = ebiten.AppendInputChars(g.chars[:0])
	edited := applyTyping(value, g.chars,
		inpututil.IsKeyJustPressed(ebiten.KeyBackspace),
		inpututil.IsKeyJustPressed(ebiten.KeyEnter))
	if edited != value {
		g.canvas.UpdateNodeData(n.ID, flowcanvas.NodeData{g.focus.field: edited})
	}
}

func (g *Game) handleWheel() {
	_, yoff := ebiten.Wheel()
	if yoff == 0 {
		return
	}
	mx, my := ebiten.CursorPosition()
	g.canvas.HandleWheel(flowcanvas.WheelEvent{
		DeltaY:    wheelDelta(yoff),
		ScreenX:   float64(mx),
		ScreenY:   float64(my),
		Modifiers: readModifiers(),
	})
}

var pointerButtons = [...]struct {
	eb ebiten.MouseButton
	fc flowcanvas.MouseButton
}{
	{ebiten.MouseButtonLeft, flowcanvas.MouseButtonLeft},
	{ebiten.MouseButtonRight, flowcanvas.MouseButtonRight},
	{ebiten.MouseButtonMiddle, flowcanvas.MouseButtonMiddle},
}

// handlePointer feeds the mouse to the canvas as pointer 0.
func (g *Game) handlePointer() {
	mx, my := ebiten.CursorPosition()
	mods := readModifiers()
	f := g.canvas.Frame()
	canvasPt := flowcanvas.ToCanvas(flowcanvas.Vec2{X: float64(mx), Y: float64(my)}, f.Viewport)
	target := g.layout.Classify(f.Nodes, canvasPt)

	ev := flowcanvas.PointerEvent{
		ScreenX:   float64(mx),
		ScreenY:   float64(my),
		Modifiers: mods,
		Target:    target,
	}

	if mx != g.lastX || my != g.lastY {
		g.lastX, g.lastY = mx, my
		if active := g.canvas.Gestures().Active(); active.Active() {
			ev.Button = active.Button
			g.canvas.HandlePointerMove(ev)
		}
	}

	for _, b := range pointerButtons {
		if inpututil.IsMouseButtonJustReleased(b.eb) {
			ev.Button = b.fc
			g.canvas.HandlePointerUp(ev)
		}
	}

	for _, b := range pointerButtons {
		if !inpututil.IsMouseButtonJustPressed(b.eb) {
			continue
		}
		ev.Button = b.fc
		if target.NodeID != "" {
			g.selected = target.NodeID
		}
		if target.Kind == flowcanvas.HitNoDrag && b.fc == flowcanvas.MouseButtonLeft {
			if id, ok := g.layout.DeleteAt(f.Nodes, canvasPt); ok {
				g.logger.Debug("delete button", "id", id)
				g.canvas.DeleteNode(id)
				g.selected = ""
				continue
			}
			if id, ok := g.layout.ContentAt(f.Nodes, canvasPt); ok {
				n, _ := g.canvas.Graph().Node(id)
				g.focus = focusField{nodeID: id, field: editField(n.Kind)}
				continue
			}
		}
		if target.Kind != flowcanvas.HitNoDrag {
			g.focus = focusField{}
		}
		g.canvas.HandlePointerDown(ev)
	}
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() flowcanvas.KeyModifiers {
	var mods flowcanvas.KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= flowcanvas.ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= flowcanvas.ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= flowcanvas.ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= flowcanvas.ModMeta
	}
	return mods
}

// wheelDelta converts an Ebitengine wheel offset (positive is up) to a
// DOM-style delta (positive is down, zoom out).
func wheelDelta(yoff float64) float64 {
	return -yoff
}

// editField is the field typed into when a node's content area is focused.
func editField(kind flowcanvas.NodeKind) string {
	switch kind {
	case flowcanvas.KindShot:
		return flowcanvas.FieldPrompt
	case flowcanvas.KindImage, flowcanvas.KindVideo:
		return flowcanvas.FieldTitle
	default:
		return flowcanvas.FieldContent
	}
}

// applyTyping returns value after appending typed runes, then a newline on
// enter, then removing the last rune on backspace.
func applyTyping(value string, typed []rune, backspace, enter bool) string {
	out := []rune(value)
	out = append(out, typed...)
	if enter {
		out = append(out, '\n')
	}
	if backspace && len(out) > 0 {
		out = out[:len(out)-1]
	}
	return string(out)
}

// --- Drawing ---

var (
	colorBackground = color.RGBA{0x12, 0x14, 0x18, 0xff}
	colorNode       = color.RGBA{0x22, 0x26, 0x2e, 0xff}
	colorHeader     = color.RGBA{0x2e, 0x33, 0x3d, 0xff}
	colorField      = color.RGBA{0x1a, 0x1d, 0x23, 0xff}
	colorFocus      = color.RGBA{0x4c, 0x8b, 0xf5, 0xff}
	colorEdge       = color.RGBA{0x8a, 0x93, 0xa6, 0xff}
	colorPending    = color.RGBA{0x4c, 0x8b, 0xf5, 0xff}
	colorPort       = color.RGBA{0xc0, 0xc6, 0xd4, 0xff}
	colorDelete     = color.RGBA{0xc0, 0x4a, 0x4a, 0xff}
	colorHUD        = color.RGBA{0x00, 0x00, 0x00, 0x99}
)

// statusColor returns the accent color for a node status.
func statusColor(s flowcanvas.NodeStatus) color.RGBA {
	switch s {
	case flowcanvas.StatusLoading:
		return color.RGBA{0xe0, 0xb0, 0x30, 0xff}
	case flowcanvas.StatusCompleted:
		return color.RGBA{0x40, 0xb0, 0x60, 0xff}
	case flowcanvas.StatusError:
		return color.RGBA{0xd0, 0x40, 0x40, 0xff}
	}
	return color.RGBA{0x60, 0x66, 0x73, 0xff}
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	f := g.canvas.Frame()
	v := f.Viewport
	w, h := g.canvas.ViewportSize()
	visible := v.VisibleBounds(w, h)

	for _, e := range f.Edges {
		g.drawCurve(screen, e.Curve.Transform(v), colorEdge)
	}
	if f.Provisional != nil {
		g.drawCurve(screen, f.Provisional.Transform(v), colorPending)
	}

	for _, nv := range f.Nodes {
		r := g.layout.NodeRect(nv.Node)
		bounds := flowcanvas.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
		// Ports overhang the box.
		bounds.X -= g.layout.PortRadius
		bounds.Width += 2 * g.layout.PortRadius
		if !visible.Intersects(bounds) {
			continue
		}
		g.drawNode(screen, nv, v)
	}

	ebitenutil.DebugPrintAt(screen, hudText(f), 4, 4)
	if g.cfg.ShowFPS {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.0f  TPS: %.0f", ebiten.ActualFPS(), ebiten.ActualTPS()), 4, int(h)-16)
	}
}

// hudText is the top-left status line.
func hudText(f flowcanvas.Frame) string {
	return fmt.Sprintf("zoom %d%%  nodes %d  edges %d  %s",
		f.Stats.ScalePercent, f.Stats.Nodes, f.Stats.Edges, f.Gesture)
}

func (g *Game) drawCurve(screen *ebiten.Image, c flowcanvas.Curve, clr color.Color) {
	g.curve = c.Sample(0, g.curve[:0])
	for i := 1; i < len(g.curve); i++ {
		a, b := g.curve[i-1], g.curve[i]
		strokeLine(screen, a.X, a.Y, b.X, b.Y, 2, clr)
	}
}

func (g *Game) drawNode(screen *ebiten.Image, nv flowcanvas.NodeView, v flowcanvas.Viewport) {
	n := nv.Node
	fillRect(screen, g.layout.NodeRect(n), v, colorNode)
	fillRect(screen, g.layout.HeaderRect(n), v, colorHeader)

	field := g.layout.ContentRect(n)
	fillRect(screen, field, v, colorField)
	if g.focus.nodeID == n.ID {
		strokeRect(screen, field, v, colorFocus)
	}
	fillRect(screen, g.layout.DeleteRect(n), v, colorDelete)

	accent := statusColor(n.Status)
	if nv.Dragging || nv.Connecting || n.ID == g.selected {
		accent = colorFocus
	}
	strokeRect(screen, g.layout.NodeRect(n), v, accent)

	for _, port := range [...]flowcanvas.PortType{flowcanvas.PortInput, flowcanvas.PortOutput} {
		pc := g.layout.Port(n, port)
		p := flowcanvas.ToScreen(flowcanvas.Vec2{X: pc.CenterX, Y: pc.CenterY}, v)
		fillCircle(screen, p.X, p.Y, 6*v.Scale, colorPort)
	}

	head := flowcanvas.ToScreen(flowcanvas.Vec2{X: g.layout.NodeRect(n).X, Y: g.layout.NodeRect(n).Y}, v)
	ebitenutil.DebugPrintAt(screen, nodeLabel(n), int(head.X)+6, int(head.Y)+6)
	body := flowcanvas.ToScreen(flowcanvas.Vec2{X: field.X, Y: field.Y}, v)
	ebitenutil.DebugPrintAt(screen, truncate(n.Data[editField(n.Kind)], 40), int(body.X)+4, int(body.Y)+4)
}

// nodeLabel is the header text of a node.
func nodeLabel(n flowcanvas.Node) string {
	title := n.Data[flowcanvas.FieldTitle]
	if title == "" {
		title = n.Kind.String()
	}
	if n.Status != flowcanvas.StatusIdle {
		return fmt.Sprintf("%s [%s]", title, n.Status)
	}
	return title
}

// truncate shortens s to at most max runes, marking the cut with "...".
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

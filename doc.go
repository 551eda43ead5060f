// Package flowcanvas is the interaction and coordinate-transform engine of a
// node-graph editor canvas.
//
// It owns a graph of typed nodes joined by directed edges, a pan/zoom
// viewport, and a pointer gesture machine that turns raw input into
// panning, node dragging and connection drawing. Drawing is left to the host;
// [Canvas.Frame] returns everything needed to render one frame. A window
// implementation on top of [Ebitengine] lives in flowcanvas/ebitenview.
//
// # Quick start
//
//	c := flowcanvas.New(flowcanvas.Options{})
//	c.SetViewportSize(1280, 800)
//
//	script := c.AddNode(flowcanvas.KindScript, flowcanvas.Vec2{X: 0, Y: 0})
//	shot := c.AddNode(flowcanvas.KindShot, flowcanvas.Vec2{X: 400, Y: 0})
//	c.UpdateNodeData(script, flowcanvas.NodeData{flowcanvas.FieldContent: "Hello"})
//	c.Connect(script, shot) // shot's prompt is now "Hello"
//
// # Coordinate spaces
//
// Screen space is pixels relative to the canvas surface. Canvas space is the
// unbounded plane nodes live on. A [Viewport] maps one to the other:
//
//	screen = canvas*scale + pan
//
// Use [ToCanvas] and [ToScreen] to convert. Wheel zoom keeps the canvas point
// under the cursor fixed on screen.
//
// # Input
//
// The host classifies every pointer event into a [HitTarget] (background,
// node body, port or an interactive no-drag region) and forwards it to
// [Canvas.HandlePointerDown], [Canvas.HandlePointerMove] and
// [Canvas.HandlePointerUp]. Ports must be classified before node bodies.
// At most one gesture is active at a time; node drags are previewed live and
// committed to the graph only on release.
//
// Synthetic input can be queued with [Canvas.InjectPress], [Canvas.InjectDrag]
// and friends, or replayed from a JSON script with [LoadTestScript].
//
// # Propagation
//
// Editing a node's data, or connecting two nodes, copies the source's text
// into each directly connected target. Visual targets (shot, image, video)
// receive it as a prompt; textual targets (text, script) receive the title.
// Propagation is one hop only.
//
// # Observing changes
//
// [Canvas.OnChange] registers a callback for every [ChangeEvent]. An
// [EventSink] forwards the same events elsewhere, for example into a
// [Donburi] world via flowcanvas/ecs.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package flowcanvas

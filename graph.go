package flowcanvas

import (
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Node is one vertex of the canvas graph. Position is in canvas space.
type Node struct {
	ID       string
	Kind     NodeKind
	Position Vec2
	Status   NodeStatus
	Data     NodeData
}

// clone returns a copy whose Data can be mutated freely.
func (n *Node) clone() Node {
	c := *n
	c.Data = n.Data.Clone()
	return c
}

// Edge is a directed connection from SourceNodeID to TargetNodeID.
type Edge struct {
	ID           string
	SourceNodeID string
	TargetNodeID string
}

// Graph owns the node and edge collections. It never holds an edge whose
// endpoints are missing, a self loop, or two edges for the same ordered pair.
//
// All mutations are synchronous; propagation triggered by a mutation has
// finished by the time the call returns. Graph is not safe for concurrent use.
type Graph struct {
	nodes    map[string]*Node
	order    []string // insertion order, also render order
	edges    []Edge
	registry KindRegistry
	logger   *log.Logger

	newID  func(prefix string) string
	notify func(ChangeEvent)
	// onDelete hooks run after a node is removed and before any change
	// event for the removal fires.
	onDelete []func(id string)
}

// NewGraph creates an empty graph using reg for default data. A nil reg uses
// DefaultRegistry.
func NewGraph(reg KindRegistry) *Graph {
	if reg == nil {
		reg = DefaultRegistry()
	}
	return &Graph{
		nodes:    make(map[string]*Node),
		registry: reg,
		logger:   discardLogger(),
		newID:    newUUID,
	}
}

func newUUID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// AddNode creates a node of kind at pos with the kind's default data and
// status Idle, and returns its fresh id.
func (g *Graph) AddNode(kind NodeKind, pos Vec2) string {
	id := g.newID("node")
	data := g.registry.DefaultData(kind)
	if data == nil {
		data = NodeData{}
	}
	g.nodes[id] = &Node{
		ID:       id,
		Kind:     kind,
		Position: pos,
		Status:   StatusIdle,
		Data:     data,
	}
	g.order = append(g.order, id)
	g.logger.Debug("node added", "id", id, "kind", kind, "x", pos.X, "y", pos.Y)
	g.emit(ChangeEvent{Type: ChangeNodeAdded, NodeID: id})
	return id
}

// Node returns a copy of the node with the given id.
func (g *Graph) Node(id string) (Node, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return Node{}, false
	}
	return n.clone(), true
}

// HasNode reports whether id names a live node.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Nodes returns copies of all nodes in insertion order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id].clone())
	}
	return out
}

// NumNodes returns the number of nodes.
func (g *Graph) NumNodes() int {
	return len(g.order)
}

// Edges returns a copy of the edge list in creation order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// NumEdges returns the number of edges.
func (g *Graph) NumEdges() int {
	return len(g.edges)
}

// HasEdge reports whether an edge source -> target exists.
func (g *Graph) HasEdge(source, target string) bool {
	for _, e := range g.edges {
		if e.SourceNodeID == source && e.TargetNodeID == target {
			return true
		}
	}
	return false
}

// Outgoing returns the edges whose source is id, in creation order.
func (g *Graph) Outgoing(id string) []Edge {
	var out []Edge
	for _, e := range g.edges {
		if e.SourceNodeID == id {
			out = append(out, e)
		}
	}
	return out
}

// MoveNode replaces the position of a node. Unknown ids are ignored.
func (g *Graph) MoveNode(id string, pos Vec2) bool {
	n, ok := g.nodes[id]
	if !ok {
		g.logger.Debug("move ignored: unknown node", "id", id)
		return false
	}
	if n.Position == pos {
		return true
	}
	n.Position = pos
	g.emit(ChangeEvent{Type: ChangeNodeMoved, NodeID: id})
	return true
}

// UpdateNodeData shallow-merges partial into the node's data and then
// propagates the merged record to every directly connected target. Unknown
// ids are ignored.
func (g *Graph) UpdateNodeData(id string, partial NodeData) bool {
	n, ok := g.nodes[id]
	if !ok {
		g.logger.Debug("update ignored: unknown node", "id", id)
		return false
	}
	n.Data.Merge(partial)
	g.emit(ChangeEvent{Type: ChangeNodeData, NodeID: id})
	g.propagate(id, n.Data)
	return true
}

// SetStatus sets the node's generation status. Unknown ids are ignored.
func (g *Graph) SetStatus(id string, status NodeStatus) bool {
	n, ok := g.nodes[id]
	if !ok {
		return false
	}
	if n.Status == status {
		return true
	}
	n.Status = status
	g.emit(ChangeEvent{Type: ChangeNodeStatus, NodeID: id})
	return true
}

// DeleteNode removes a node together with every edge it is an endpoint of.
// Both collections are updated before any change event fires, so observers
// never see an edge that points at a removed node.
func (g *Graph) DeleteNode(id string) bool {
	if _, ok := g.nodes[id]; !ok {
		g.logger.Debug("delete ignored: unknown node", "id", id)
		return false
	}

	var removed []Edge
	kept := g.edges[:0]
	for _, e := range g.edges {
		if e.SourceNodeID == id || e.TargetNodeID == id {
			removed = append(removed, e)
			continue
		}
		kept = append(kept, e)
	}
	for i := len(kept); i < len(g.edges); i++ {
		g.edges[i] = Edge{}
	}
	g.edges = kept

	delete(g.nodes, id)
	for i, oid := range g.order {
		if oid == id {
			copy(g.order[i:], g.order[i+1:])
			g.order[len(g.order)-1] = ""
			g.order = g.order[:len(g.order)-1]
			break
		}
	}

	g.logger.Debug("node deleted", "id", id, "edges", len(removed))
	for _, fn := range g.onDelete {
		fn(id)
	}
	for _, e := range removed {
		g.emit(ChangeEvent{Type: ChangeEdgeRemoved, EdgeID: e.ID, SourceNodeID: e.SourceNodeID, TargetNodeID: e.TargetNodeID})
	}
	g.emit(ChangeEvent{Type: ChangeNodeDeleted, NodeID: id})
	return true
}

// Connect creates an edge source -> target and immediately propagates the
// source's current data into the target. Self loops, duplicates and unknown
// endpoints are ignored; ok reports whether an edge was created.
func (g *Graph) Connect(source, target string) (edgeID string, ok bool) {
	if source == target {
		g.logger.Debug("connect ignored: self loop", "id", source)
		return "", false
	}
	src, srcOK := g.nodes[source]
	_, tgtOK := g.nodes[target]
	if !srcOK || !tgtOK {
		g.logger.Debug("connect ignored: unknown node", "source", source, "target", target)
		return "", false
	}
	if g.HasEdge(source, target) {
		g.logger.Debug("connect ignored: duplicate edge", "source", source, "target", target)
		return "", false
	}

	e := Edge{ID: g.newID("edge"), SourceNodeID: source, TargetNodeID: target}
	g.edges = append(g.edges, e)
	g.logger.Debug("edge added", "id", e.ID, "source", source, "target", target)
	g.emit(ChangeEvent{Type: ChangeEdgeAdded, EdgeID: e.ID, SourceNodeID: source, TargetNodeID: target})

	g.propagateEdge(e, src.Data)
	return e.ID, true
}

// Disconnect removes the edge with the given id. Unknown ids are ignored.
func (g *Graph) Disconnect(edgeID string) bool {
	for i, e := range g.edges {
		if e.ID != edgeID {
			continue
		}
		copy(g.edges[i:], g.edges[i+1:])
		g.edges[len(g.edges)-1] = Edge{}
		g.edges = g.edges[:len(g.edges)-1]
		g.emit(ChangeEvent{Type: ChangeEdgeRemoved, EdgeID: e.ID, SourceNodeID: e.SourceNodeID, TargetNodeID: e.TargetNodeID})
		return true
	}
	return false
}

func (g *Graph) emit(ev ChangeEvent) {
	if g.notify != nil {
		g.notify(ev)
	}
}

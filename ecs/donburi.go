package ecs

import (
	"github.com/phanxgames/flowcanvas"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// ChangeEventType is the Donburi event type for canvas change events.
var ChangeEventType = events.NewEventType[flowcanvas.ChangeEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EventSink backed by a Donburi world. Change
// events are published to ChangeEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) flowcanvas.EventSink {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event flowcanvas.ChangeEvent) {
	ChangeEventType.Publish(s.world, event)
}

// NodeData is the component mirrored for every graph node.
type NodeData struct {
	ID       string
	Kind     flowcanvas.NodeKind
	Position flowcanvas.Vec2
	Status   flowcanvas.NodeStatus
	Edges    int // outgoing edge count
}

// NodeComponent tags entities that mirror a graph node.
var NodeComponent = donburi.NewComponentType[NodeData]()

// Mirror keeps one entity per node of a canvas graph and publishes every
// change event to ChangeEventType.
type Mirror struct {
	world    donburi.World
	graph    *flowcanvas.Graph
	entities map[string]donburi.Entity
}

// NewDonburiMirror creates a Mirror for g and creates entities for the nodes
// g already holds. Set it as the canvas event sink to keep it in sync.
func NewDonburiMirror(world donburi.World, g *flowcanvas.Graph) *Mirror {
	m := &Mirror{world: world, graph: g, entities: make(map[string]donburi.Entity)}
	for _, n := range g.Nodes() {
		m.sync(n.ID)
	}
	return m
}

// Entity returns the entity mirroring node id.
func (m *Mirror) Entity(id string) (donburi.Entity, bool) {
	e, ok := m.entities[id]
	return e, ok
}

// Len returns the number of mirrored nodes.
func (m *Mirror) Len() int {
	return len(m.entities)
}

// EmitEvent implements flowcanvas.EventSink.
func (m *Mirror) EmitEvent(event flowcanvas.ChangeEvent) {
	switch event.Type {
	case flowcanvas.ChangeNodeAdded, flowcanvas.ChangeNodeMoved, flowcanvas.ChangeNodeStatus:
		m.sync(event.NodeID)
	case flowcanvas.ChangeNodeDeleted:
		if e, ok := m.entities[event.NodeID]; ok {
			m.world.Remove(e)
			delete(m.entities, event.NodeID)
		}
	case flowcanvas.ChangeEdgeAdded, flowcanvas.ChangeEdgeRemoved:
		m.sync(event.SourceNodeID)
	}
	ChangeEventType.Publish(m.world, event)
}

func (m *Mirror) sync(id string) {
	n, ok := m.graph.Node(id)
	if !ok {
		return
	}
	e, ok := m.entities[id]
	if !ok || !m.world.Valid(e) {
		e = m.world.Create(NodeComponent)
		m.entities[id] = e
	}
	NodeComponent.SetValue(m.world.Entry(e), NodeData{
		ID:       n.ID,
		Kind:     n.Kind,
		Position: n.Position,
		Status:   n.Status,
		Edges:    len(m.graph.Outgoing(id)),
	})
}

package flowcanvas

// mergeRule derives fields of a target's data from a source's data. It
// mutates target in place and reports whether anything changed.
type mergeRule func(target, source NodeData) bool

// visualMerge feeds a visual consumer's prompt from the source's content,
// falling back to its title. An existing prompt is kept when neither is set.
func visualMerge(target, source NodeData) bool {
	v, ok := source.firstNonEmpty(FieldContent, FieldTitle)
	if !ok || target[FieldPrompt] == v {
		return false
	}
	target[FieldPrompt] = v
	return true
}

// textualMerge copies a non-empty source title.
func textualMerge(target, source NodeData) bool {
	v, ok := source.firstNonEmpty(FieldTitle)
	if !ok || target[FieldTitle] == v {
		return false
	}
	target[FieldTitle] = v
	return true
}

// mergeRules maps target kinds to their merge rule. Kinds without an entry
// are never touched by propagation.
var mergeRules = map[NodeKind]mergeRule{
	KindShot:   visualMerge,
	KindImage:  visualMerge,
	KindVideo:  visualMerge,
	KindText:   textualMerge,
	KindScript: textualMerge,
}

// propagate pushes derived fields from sourceData into every direct target
// of sourceID, in edge creation order. It is one hop only: updated targets do
// not propagate further, so a chain A -> B -> C leaves C untouched until B
// is itself edited or connected.
func (g *Graph) propagate(sourceID string, sourceData NodeData) {
	for _, e := range g.edges {
		if e.SourceNodeID == sourceID {
			g.propagateEdge(e, sourceData)
		}
	}
}

// propagateEdge applies the target kind's merge rule for a single edge.
func (g *Graph) propagateEdge(e Edge, sourceData NodeData) {
	target, ok := g.nodes[e.TargetNodeID]
	if !ok {
		return
	}
	rule, ok := mergeRules[target.Kind]
	if !ok {
		return
	}
	if !rule(target.Data, sourceData) {
		return
	}
	g.logger.Debug("propagated", "source", e.SourceNodeID, "target", e.TargetNodeID, "kind", target.Kind)
	g.emit(ChangeEvent{
		Type:         ChangeNodeData,
		NodeID:       target.ID,
		EdgeID:       e.ID,
		SourceNodeID: e.SourceNodeID,
		Propagated:   true,
	})
}

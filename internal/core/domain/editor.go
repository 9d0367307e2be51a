package domain

// NodeState is the editor's view of one model loader node: the extracted
// context plus the editable entries bound to it.
type NodeState struct {
	Context NodeEditContext
	Entries []EditableEntry

	// PathStatus describes the primary model path.
	PathStatus PathStatus

	// EmptyProperties is set when the node lacks property data.
	EmptyProperties bool
}

// ID returns the node ID and whether the node has one.
func (s NodeState) ID() (NodeID, bool) {
	if s.Context.Node == nil {
		return 0, false
	}
	return s.Context.Node.ID()
}

// Type returns the node type name.
func (s NodeState) Type() string {
	if s.Context.Node == nil {
		return ""
	}
	return s.Context.Node.Type()
}

// Stats counts the node's entries by class.
func (s NodeState) Stats() EntryStats {
	var stats EntryStats
	for _, e := range s.Entries {
		stats.Add(e.Class())
	}
	return stats
}

package domain

import (
	"math"
	"strconv"
)

// Node property keys used by the workflow format.
const (
	// KeyNodes is the top-level array holding every node.
	KeyNodes = "nodes"

	// KeyID is the numeric node identifier.
	KeyID = "id"

	// KeyType is the node type name.
	KeyType = "type"

	// KeyWidgetsValues holds the positional widget parameters.
	KeyWidgetsValues = "widgets_values"

	// KeyProperties holds the node property map.
	KeyProperties = "properties"

	// KeyModels is the persisted model entry list inside properties.
	KeyModels = "models"

	// KeyNodeName marks a model loader node when truthy.
	KeyNodeName = "Node name for S&R"
)

// NodeID identifies a node within a document.
type NodeID int64

// String returns the decimal form of the ID.
func (id NodeID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// Document is a parsed workflow. The root object is the single source of
// truth: nodes are views over it and every mutation lands in the root.
type Document struct {
	root  map[string]any
	nodes []*Node
}

// NewDocument wraps a parsed root object.
// Returns ErrNoNodes when the root has no nodes array.
func NewDocument(root map[string]any) (*Document, error) {
	if root == nil {
		return nil, ErrNoNodes
	}
	raw, ok := root[KeyNodes].([]any)
	if !ok {
		return nil, ErrNoNodes
	}

	nodes := make([]*Node, 0, len(raw))
	for _, item := range raw {
		fields, ok := item.(map[string]any)
		if !ok {
			continue
		}
		nodes = append(nodes, &Node{fields: fields})
	}
	return &Document{root: root, nodes: nodes}, nil
}

// Root returns the underlying root object for serialisation.
func (d *Document) Root() map[string]any {
	return d.root
}

// Nodes returns the object nodes in document order.
func (d *Document) Nodes() []*Node {
	return d.nodes
}

// NodeByID returns the first node carrying the given ID, or nil.
func (d *Document) NodeByID(id NodeID) *Node {
	for _, n := range d.nodes {
		if nid, ok := n.ID(); ok && nid == id {
			return n
		}
	}
	return nil
}

// Node is a view over one node object in a document.
type Node struct {
	fields map[string]any
}

// NewNode wraps a raw node object. Mainly useful for tests.
func NewNode(fields map[string]any) *Node {
	if fields == nil {
		fields = map[string]any{}
	}
	return &Node{fields: fields}
}

// Fields returns the raw node object.
func (n *Node) Fields() map[string]any {
	return n.fields
}

// ID returns the node ID. The second result is false when the node has no
// integral numeric id.
func (n *Node) ID() (NodeID, bool) {
	switch v := n.fields[KeyID].(type) {
	case int64:
		return NodeID(v), true
	case int:
		return NodeID(v), true
	case float64:
		if v == math.Trunc(v) && !math.IsInf(v, 0) {
			return NodeID(v), true
		}
	}
	return 0, false
}

// Type returns the node type name, or "" when absent.
func (n *Node) Type() string {
	t, _ := n.fields[KeyType].(string)
	return t
}

// WidgetsValues returns the widget values. The second result is false when
// the node has no widgets_values array.
func (n *Node) WidgetsValues() ([]any, bool) {
	v, ok := n.fields[KeyWidgetsValues].([]any)
	return v, ok
}

// SetWidgetValue rewrites the first string widget value equal to old.
// Reports whether a value was replaced.
func (n *Node) SetWidgetValue(old, value string) bool {
	values, ok := n.WidgetsValues()
	if !ok {
		return false
	}
	for i, v := range values {
		if s, isStr := v.(string); isStr && s == old {
			values[i] = value
			return true
		}
	}
	return false
}

// Properties returns the property map, or nil when absent.
func (n *Node) Properties() map[string]any {
	p, _ := n.fields[KeyProperties].(map[string]any)
	return p
}

// IsModelLoader reports whether the node carries a truthy "Node name for S&R".
func (n *Node) IsModelLoader() bool {
	props := n.Properties()
	if props == nil {
		return false
	}
	return truthy(props[KeyNodeName])
}

// HasEmptyProperties reports whether the node lacks property data beyond
// its S&R name.
func (n *Node) HasEmptyProperties() bool {
	props := n.Properties()
	return props == nil || len(props) == 1
}

// HasModelsArray reports whether properties.models is an array.
func (n *Node) HasModelsArray() bool {
	props := n.Properties()
	if props == nil {
		return false
	}
	_, ok := props[KeyModels].([]any)
	return ok
}

// ExistingModels returns a snapshot of properties.models.
// Non-object items are skipped and non-string fields read as "".
func (n *Node) ExistingModels() []ModelEntry {
	props := n.Properties()
	if props == nil {
		return nil
	}
	raw, ok := props[KeyModels].([]any)
	if !ok {
		return nil
	}

	models := make([]ModelEntry, 0, len(raw))
	for _, item := range raw {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		models = append(models, ModelEntry{
			Name:      stringField(obj, "name"),
			URL:       stringField(obj, "url"),
			Directory: stringField(obj, "directory"),
		})
	}
	return models
}

// SetModels replaces properties.models. An empty list removes the key.
// Properties are created when absent.
func (n *Node) SetModels(models []ModelEntry) {
	props := n.Properties()
	if props == nil {
		props = map[string]any{}
		n.fields[KeyProperties] = props
	}

	if len(models) == 0 {
		delete(props, KeyModels)
		return
	}

	list := make([]any, 0, len(models))
	for _, m := range models {
		list = append(list, map[string]any{
			"name":      m.Name,
			"url":       m.URL,
			"directory": m.Directory,
		})
	}
	props[KeyModels] = list
}

func stringField(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}

// truthy mirrors loose truthiness of JSON values.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case int64:
		return t != 0
	case int:
		return t != 0
	case float64:
		return t != 0 && !math.IsNaN(t)
	default:
		return true
	}
}

package model

import (
	"encoding/json"
	"strings"
)

// Color is an opaque display color token (a palette hex value). One color is
// assigned to every node except the root.
type Color string

// Node is a valued node of the priced tree: either a *GroupNode or an
// *AssetNode. Values are always in BRL. Nodes are immutable once built; the
// presentation layer keeps its expand/collapse state in a side table keyed
// by Node.PathKey, never on the tree itself.
type Node interface {
	Name() string
	Value() float64
	Path() []string

	// PathKey is the dot-joined ancestor chain plus the node's own name,
	// stable across rebuilds of the same document.
	PathKey() string

	json.Marshaler
}

// Child pairs a node with its assigned display color. Children keep the
// declared entry order.
type Child struct {
	Node  Node
	Color Color
}

// MarshalJSON serializes the pair as a [node, color] tuple, the layout the
// visualization frontend consumes.
func (c Child) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{c.Node, c.Color})
}

// GroupNode is a priced group. Its value is the sum of its children's values.
// The group back-reference points at the validated declared group and must
// never be mutated.
type GroupNode struct {
	name     string
	value    float64
	group    *AssetGroup
	path     []string
	children []Child
}

// NewGroupNode builds an immutable priced group node. The children slice is
// owned by the node after the call.
func NewGroupNode(name string, value float64, group *AssetGroup, path []string, children []Child) *GroupNode {
	return &GroupNode{name: name, value: value, group: group, path: path, children: children}
}

func (n *GroupNode) Name() string { return n.name }
func (n *GroupNode) Value() float64 { return n.value }
func (n *GroupNode) Path() []string { return n.path }
func (n *GroupNode) Group() *AssetGroup { return n.group }
func (n *GroupNode) Children() []Child { return n.children }
func (n *GroupNode) PathKey() string { return pathKey(n.path, n.name) }

// MarshalJSON mirrors the serializable form of the original tree: the node's
// own fields plus its declared-group back-reference.
func (n *GroupNode) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name     string      `json:"name"`
		Value    float64     `json:"value"`
		Path     []string    `json:"path"`
		Group    *AssetGroup `json:"group"`
		Children []Child     `json:"children"`
	}{n.name, n.value, n.path, n.group, n.children})
}

// AssetNode is a priced leaf. The asset back-reference points at the
// validated declared asset and must never be mutated.
type AssetNode struct {
	name  string
	value float64
	asset Asset
	path  []string
}

// NewAssetNode builds an immutable priced leaf node.
func NewAssetNode(name string, value float64, asset Asset, path []string) *AssetNode {
	return &AssetNode{name: name, value: value, asset: asset, path: path}
}

func (n *AssetNode) Name() string { return n.name }
func (n *AssetNode) Value() float64 { return n.value }
func (n *AssetNode) Path() []string { return n.path }
func (n *AssetNode) Asset() Asset { return n.asset }
func (n *AssetNode) PathKey() string { return pathKey(n.path, n.name) }

func (n *AssetNode) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name  string   `json:"name"`
		Value float64  `json:"value"`
		Path  []string `json:"path"`
		Asset Asset    `json:"asset"`
	}{n.name, n.value, n.path, n.asset})
}

func pathKey(path []string, name string) string {
	if len(path) == 0 {
		return name
	}
	return strings.Join(path, ".") + "." + name
}

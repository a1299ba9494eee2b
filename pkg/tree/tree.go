package tree

import (
	"slices"
	"strings"

	"github.com/goliatone/go-schemaflat/pkg/flatten"
)

// Node is one entry of the reconstructed hierarchy. Record is nil for
// intermediate paths that have no record of their own, such as the property
// that owns a union container.
type Node struct {
	Name     string
	Key      string
	Sort     string
	Type     string
	Required bool
	Record   *flatten.Record
	Children []*Node
}

// Synthetic reports whether the node was created to close a gap in the
// parent chain.
func (n *Node) Synthetic() bool {
	return n != nil && n.Record == nil
}

// Walk visits n and its descendants depth first. Returning false from fn
// skips the node's children.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(node *Node, depth int) bool, depth int) {
	if n == nil {
		return
	}
	if !fn(n, depth) {
		return
	}
	for _, child := range n.Children {
		child.walk(fn, depth+1)
	}
}

// Find returns the node with the given model path.
func (n *Node) Find(key string) *Node {
	var found *Node
	n.Walk(func(node *Node, _ int) bool {
		if found != nil {
			return false
		}
		if node.Key == key {
			found = node
			return false
		}
		return true
	})
	return found
}

// Len counts n and its descendants.
func (n *Node) Len() int {
	count := 0
	n.Walk(func(*Node, int) bool {
		count++
		return true
	})
	return count
}

type builder struct {
	rootKey string
	nodes   map[string]*Node
	parents map[string]string
	order   []string
}

// Build reconstructs the hierarchy of records. The root record (model "*")
// becomes the returned node; when it is absent the root path is taken from
// the first record's model. Parents that have no record are synthesised from
// the model path, one segment at a time.
func Build(records []flatten.Record) *Node {
	b := &builder{
		nodes:   make(map[string]*Node),
		parents: make(map[string]string),
	}

	root := &Node{Sort: "1", Type: flatten.TypeObject}
	for i := range records {
		if records[i].IsRoot() {
			rec := records[i]
			root.Name, root.Record, root.Type, root.Sort = rec.Field, &rec, rec.Type, rec.Sort
			break
		}
	}
	if root.Name == "" {
		root.Name = defaultRoot(records)
	}
	root.Key = root.Name
	b.rootKey = root.Key
	b.nodes[root.Key] = root

	for i := range records {
		rec := records[i]
		if rec.IsRoot() || rec.Model == "" || rec.Model == b.rootKey {
			continue
		}
		node := b.ensure(rec.Model)
		node.Name = rec.Field
		node.Sort = rec.Sort
		node.Type = rec.Type
		node.Required = rec.Required
		node.Record = &rec

		parent := rec.Parent
		if parent == "" || parent == flatten.RootModel {
			parent = b.rootKey
		}
		b.parents[rec.Model] = parent
	}

	for i := 0; i < len(b.order); i++ {
		key := b.order[i]
		node := b.nodes[key]
		parent := b.ensure(b.parents[key])
		if parent != node {
			parent.Children = append(parent.Children, node)
		}
	}

	inheritSort(root)
	sortChildren(root)
	return root
}

// inheritSort gives synthetic nodes the lowest sort key among their
// children so they keep their position between keyed siblings.
func inheritSort(node *Node) {
	for _, child := range node.Children {
		inheritSort(child)
	}
	if node.Sort != "" {
		return
	}
	for _, child := range node.Children {
		if child.Sort == "" {
			continue
		}
		if node.Sort == "" || CompareSortKeys(child.Sort, node.Sort) < 0 {
			node.Sort = child.Sort
		}
	}
}

// ensure returns the node for key, creating a synthetic one whose parent is
// the key minus its last segment.
func (b *builder) ensure(key string) *Node {
	if key == "" {
		key = b.rootKey
	}
	if node, ok := b.nodes[key]; ok {
		return node
	}
	name := key
	parent := b.rootKey
	if idx := strings.LastIndex(key, "."); idx >= 0 {
		name = key[idx+1:]
		parent = key[:idx]
	}
	node := &Node{Name: name, Key: key}
	b.nodes[key] = node
	b.parents[key] = parent
	b.order = append(b.order, key)
	return node
}

func defaultRoot(records []flatten.Record) string {
	for _, rec := range records {
		if rec.Model == "" || rec.IsRoot() {
			continue
		}
		if idx := strings.Index(rec.Model, "."); idx > 0 {
			return rec.Model[:idx]
		}
		return rec.Model
	}
	return "root"
}

// sortChildren orders siblings by sort key. Keyed nodes come before
// synthetic ones; ties fall back to the name.
func sortChildren(node *Node) {
	slices.SortStableFunc(node.Children, func(a, b *Node) int {
		switch {
		case a.Sort != "" && b.Sort != "" && a.Sort != b.Sort:
			return CompareSortKeys(a.Sort, b.Sort)
		case a.Sort != "" && b.Sort == "":
			return -1
		case a.Sort == "" && b.Sort != "":
			return 1
		}
		return strings.Compare(a.Name, b.Name)
	})
	for _, child := range node.Children {
		sortChildren(child)
	}
}

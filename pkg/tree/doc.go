// Package tree rebuilds the hierarchy of a flat record list. Records only
// carry their model path and parent path, so the tree is reconstructed from
// those links and ordered by the hierarchical sort keys.
package tree

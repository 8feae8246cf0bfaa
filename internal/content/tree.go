package content

import (
	"context"
	"sort"
)

// Store provides read access to the flat content table for a route.
type Store interface {
	FetchContentNodes(ctx context.Context, routeID string) ([]Node, error)
}

// Resolve builds the ordered forest for a flat node list. The source table
// gives no acyclicity guarantee, so the build is a two-pass arena
// construction: first an id→node index, then a parent-link pass. A node whose
// parent id resolves to nothing is kept as a root rather than dropped, and a
// parent chain that loops back on itself is broken at the offending node.
func Resolve(nodes []Node) []*TreeNode {
	index := make(map[string]*TreeNode, len(nodes))
	ordered := make([]*TreeNode, 0, len(nodes))
	for _, n := range nodes {
		tn := &TreeNode{Node: n}
		index[n.ID] = tn
		ordered = append(ordered, tn)
	}

	var roots []*TreeNode
	for _, tn := range ordered {
		parent, ok := index[tn.ParentID]
		if !ok || tn.ParentID == "" || parent == tn || formsCycle(index, tn) {
			roots = append(roots, tn)
			continue
		}
		parent.Children = append(parent.Children, tn)
	}

	sortForest(roots)
	return roots
}

// formsCycle walks the parent chain from n and reports whether it revisits n
// (or any node twice) before reaching a root.
func formsCycle(index map[string]*TreeNode, n *TreeNode) bool {
	seen := map[string]bool{n.ID: true}
	cur := n
	for cur.ParentID != "" {
		next, ok := index[cur.ParentID]
		if !ok {
			return false
		}
		if seen[next.ID] {
			return true
		}
		seen[next.ID] = true
		cur = next
	}
	return false
}

// sortForest orders every children list and the root list by OrderIndex.
func sortForest(nodes []*TreeNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].OrderIndex < nodes[j].OrderIndex
	})
	for _, n := range nodes {
		sortForest(n.Children)
	}
}

// Leaves returns the question-fetch units under a topic node: its subtopic
// children in order, or the topic itself when it has none.
func Leaves(topic *TreeNode) []*TreeNode {
	if len(topic.Children) == 0 {
		return []*TreeNode{topic}
	}
	return topic.Children
}

// FindTopic returns the root-level node with the given id, or nil.
func FindTopic(forest []*TreeNode, id string) *TreeNode {
	for _, n := range forest {
		if n.ID == id {
			return n
		}
	}
	return nil
}

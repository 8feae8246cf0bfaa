package content

import "testing"

func flatRoute() []Node {
	return []Node{
		{ID: "t2", Kind: KindTopic, DisplayName: "Derivatives", OrderIndex: 2},
		{ID: "s21", ParentID: "t2", Kind: KindSubtopic, DisplayName: "Chain rule", OrderIndex: 1},
		{ID: "t1", Kind: KindTopic, DisplayName: "Limits", OrderIndex: 1},
		{ID: "s12", ParentID: "t1", Kind: KindSubtopic, DisplayName: "Continuity", OrderIndex: 2},
		{ID: "s11", ParentID: "t1", Kind: KindSubtopic, DisplayName: "Definition", OrderIndex: 1},
	}
}

func countNodes(forest []*TreeNode) int {
	total := 0
	var walk func(n *TreeNode)
	walk = func(n *TreeNode) {
		total++
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, n := range forest {
		walk(n)
	}
	return total
}

func TestResolve_OrdersByOrderIndex(t *testing.T) {
	forest := Resolve(flatRoute())

	if len(forest) != 2 {
		t.Fatalf("roots = %d, want 2", len(forest))
	}
	if forest[0].ID != "t1" || forest[1].ID != "t2" {
		t.Errorf("root order = %s, %s, want t1, t2", forest[0].ID, forest[1].ID)
	}
	if forest[0].Children[0].ID != "s11" || forest[0].Children[1].ID != "s12" {
		t.Errorf("children of t1 out of order: %s, %s", forest[0].Children[0].ID, forest[0].Children[1].ID)
	}
}

func TestResolve_EveryNodeAppearsOnce(t *testing.T) {
	nodes := flatRoute()
	forest := Resolve(nodes)
	if got := countNodes(forest); got != len(nodes) {
		t.Errorf("resolved tree has %d nodes, want %d", got, len(nodes))
	}
}

func TestResolve_OrphanBecomesRoot(t *testing.T) {
	nodes := append(flatRoute(), Node{ID: "sX", ParentID: "missing", Kind: KindSubtopic, OrderIndex: 9})
	forest := Resolve(nodes)

	if FindTopic(forest, "sX") == nil {
		t.Error("node with unresolvable parent should be promoted to root")
	}
	if got := countNodes(forest); got != len(nodes) {
		t.Errorf("resolved tree has %d nodes, want %d", got, len(nodes))
	}
}

func TestResolve_CycleBroken(t *testing.T) {
	nodes := []Node{
		{ID: "a", ParentID: "b", Kind: KindTopic, OrderIndex: 1},
		{ID: "b", ParentID: "a", Kind: KindTopic, OrderIndex: 2},
	}
	forest := Resolve(nodes)

	if got := countNodes(forest); got != 2 {
		t.Fatalf("resolved tree has %d nodes, want 2", got)
	}
	if len(forest) == 0 {
		t.Fatal("cycle produced no roots")
	}
}

func TestLeaves_TopicWithoutSubtopics(t *testing.T) {
	forest := Resolve([]Node{{ID: "t1", Kind: KindTopic, DisplayName: "Limits"}})
	leaves := Leaves(forest[0])
	if len(leaves) != 1 || leaves[0].ID != "t1" {
		t.Errorf("topic without subtopics should be its own leaf, got %v", leaves)
	}
}

func TestLeaves_TopicWithSubtopics(t *testing.T) {
	forest := Resolve(flatRoute())
	leaves := Leaves(forest[0])
	if len(leaves) != 2 {
		t.Fatalf("leaves = %d, want 2", len(leaves))
	}
	if leaves[0].ID != "s11" {
		t.Errorf("first leaf = %s, want s11", leaves[0].ID)
	}
}

package content

// NodeKind distinguishes the two levels of the content hierarchy.
type NodeKind string

const (
	KindTopic    NodeKind = "topic"
	KindSubtopic NodeKind = "subtopic"
)

// Node is a single row of the flat content table. Nodes are authored
// elsewhere; the engine only reads them.
type Node struct {
	ID            string
	ParentID      string // empty for root-level topics
	Kind          NodeKind
	DisplayName   string
	OrderIndex    int
	EstimatedTime int // minutes
	Difficulty    string
}

// TreeNode is a Node placed in the resolved hierarchy.
type TreeNode struct {
	Node
	Children []*TreeNode
}

// IsLeaf reports whether questions are fetched against this node directly:
// a subtopic, or a topic with no subtopic children.
func (n *TreeNode) IsLeaf() bool {
	return len(n.Children) == 0
}

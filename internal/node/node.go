package node

// Node is a single vertex in the causal graph: a fact and the facts that must
// be invalidated when it changes.
type Node struct {
	// ID is the opaque, unique identifier of the fact.
	ID string
	// Dependents holds the forward edges of the node. An entry may name a fact
	// that has no node of its own; duplicates and self-references are kept
	// exactly as declared.
	Dependents []string
}

// New builds a node that owns a private copy of dependents, so later changes
// to the caller's slice are not observed by the graph.
func New(id string, dependents []string) *Node {
	deps := make([]string, len(dependents))
	copy(deps, dependents)
	return &Node{ID: id, Dependents: deps}
}

// OutDegree returns the number of declared forward edges, duplicates included.
func (n *Node) OutDegree() int {
	if n == nil {
		return 0
	}
	return len(n.Dependents)
}

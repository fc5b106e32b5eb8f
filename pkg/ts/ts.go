// Package ts defines the Transition System (TS) data model used as input to
// the model checker, and implements the line-delimited loader format
// described in the system's external interfaces (section 6.1).
package ts

// Node is one state of a transition system: a set of atomic propositions
// that hold there, and whether it is a designated initial state.
type Node struct {
	ID      int
	AP      map[string]bool
	Initial bool
}

// TS is a finite directed graph of Nodes, plus the global AP alphabet.
// Transitions are unlabeled: action labels present in the input format are
// discarded at load time, so two parallel transitions differing only by
// action collapse into a single edge.
type TS struct {
	Nodes []Node
	// adj[i] holds the successor node indices of Nodes[i].
	adj [][]int
	// AP is the TS's global atomic-proposition alphabet, in declaration
	// order.
	AP []string
}

// NodeCount implements scc.Graph.
func (t *TS) NodeCount() int { return len(t.Nodes) }

// Successors implements scc.Graph.
func (t *TS) Successors(i int) []int { return t.adj[i] }

// InitialNodes returns the indices of every initial node.
func (t *TS) InitialNodes() []int {
	var out []int
	for _, n := range t.Nodes {
		if n.Initial {
			out = append(out, n.ID)
		}
	}
	return out
}

// WithInitial returns a shallow copy of t whose only initial node is id,
// leaving t itself unmodified. This lets a batch of per-start-state queries
// (section 6.2, item 3) re-root the TS without disturbing the TS used by
// global queries (section 6.2, item 2) that run earlier or later in the
// same batch.
func (t *TS) WithInitial(id int) *TS {
	nodes := make([]Node, len(t.Nodes))
	copy(nodes, t.Nodes)
	for i := range nodes {
		nodes[i].Initial = nodes[i].ID == id
	}
	return &TS{
		Nodes: nodes,
		adj:   t.adj,
		AP:    t.AP,
	}
}

// Package callgraph builds ordered graphs of pool actions whose amounts may
// reference outputs of earlier actions, reads those outputs back through
// peeks, and rebuilds the graph with slippage bounded limits for execution.
package callgraph

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/fleshka4/vault-quoter/internal/apperrors"
)

// CallGraph is an ordered list of nodes plus the registry of which node
// produces each slot. Every reference names a slot produced by a strictly
// earlier node.
type CallGraph struct {
	nodes     []Node
	producers map[SlotKey]int
	nextSlot  SlotKey
}

// New returns an empty graph.
func New() *CallGraph {
	return &CallGraph{producers: make(map[SlotKey]int)}
}

// FromNodes rebuilds a graph from nodes, checking the ordering invariant.
func FromNodes(nodes []Node) (*CallGraph, error) {
	g := New()
	for _, n := range nodes {
		if err := g.Append(n); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// NewSlot reserves a fresh slot key.
func (g *CallGraph) NewSlot() SlotKey {
	s := g.nextSlot
	g.nextSlot++
	return s
}

// Append adds n at the end of the graph. It fails with ErrMalformedGraph when
// n references a slot nobody produced yet or produces a slot twice.
func (g *CallGraph) Append(n Node) error {
	if err := checkNode(n, g.producers); err != nil {
		return err
	}

	idx := len(g.nodes)
	for _, s := range n.Produces() {
		g.producers[s] = idx
		if s >= g.nextSlot {
			g.nextSlot = s + 1
		}
	}
	g.nodes = append(g.nodes, n.Clone())
	return nil
}

// checkNode validates n against the slots produced so far.
func checkNode(n Node, producers map[SlotKey]int) error {
	for _, s := range n.Consumes() {
		if _, ok := producers[s]; !ok {
			return errors.Wrapf(apperrors.ErrMalformedGraph, "slot %d consumed before it is produced", s)
		}
	}

	own := make(map[SlotKey]struct{}, len(n.Outputs))
	for _, s := range n.Produces() {
		if _, ok := producers[s]; ok {
			return errors.Wrapf(apperrors.ErrMalformedGraph, "slot %d produced twice", s)
		}
		if _, ok := own[s]; ok {
			return errors.Wrapf(apperrors.ErrMalformedGraph, "slot %d produced twice", s)
		}
		own[s] = struct{}{}
	}

	for _, l := range n.Limits {
		if !l.Bound.IsReference() {
			continue
		}
		_, earlier := producers[l.Bound.Slot()]
		_, self := own[l.Bound.Slot()]
		if !earlier && !self {
			return errors.Wrapf(apperrors.ErrMalformedGraph, "limit on unknown slot %d", l.Bound.Slot())
		}
	}

	if n.Action == ActionPeek && (len(n.Inputs) != 1 || !n.Inputs[0].Amount.IsReference() || len(n.Outputs) != 0) {
		return errors.Wrap(apperrors.ErrMalformedGraph, "peek must read exactly one slot")
	}
	return nil
}

// Validate re-checks the whole graph from its nodes, independent of the
// registry built while appending.
func (g *CallGraph) Validate() error {
	producers := make(map[SlotKey]int)
	for i, n := range g.nodes {
		if err := checkNode(n, producers); err != nil {
			return err
		}
		for _, s := range n.Produces() {
			producers[s] = i
		}
	}
	return nil
}

// Nodes returns a copy of the nodes in execution order.
func (g *CallGraph) Nodes() []Node {
	return lo.Map(g.nodes, func(n Node, _ int) Node { return n.Clone() })
}

// Len is the number of nodes.
func (g *CallGraph) Len() int {
	return len(g.nodes)
}

// Producer returns the index of the node producing slot.
func (g *CallGraph) Producer(slot SlotKey) (int, bool) {
	idx, ok := g.producers[slot]
	return idx, ok
}

// Consumed reports whether a non-peek node consumes slot.
func (g *CallGraph) Consumed(slot SlotKey) bool {
	return lo.ContainsBy(g.nodes, func(n Node) bool {
		return n.Action != ActionPeek && lo.Contains(n.Consumes(), slot)
	})
}

// Peeked reports whether a peek node reads slot.
func (g *CallGraph) Peeked(slot SlotKey) bool {
	return lo.ContainsBy(g.nodes, func(n Node) bool {
		return n.Action == ActionPeek && lo.Contains(n.Consumes(), slot)
	})
}

// Clone returns an independent copy.
func (g *CallGraph) Clone() *CallGraph {
	c := &CallGraph{
		nodes:     g.Nodes(),
		producers: make(map[SlotKey]int, len(g.producers)),
		nextSlot:  g.nextSlot,
	}
	for k, v := range g.producers {
		c.producers[k] = v
	}
	return c
}

func (g *CallGraph) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.nodes)
}

func (g *CallGraph) UnmarshalJSON(data []byte) error {
	var nodes []Node
	if err := json.Unmarshal(data, &nodes); err != nil {
		return errors.Wrap(err, "json.Unmarshal")
	}
	parsed, err := FromNodes(nodes)
	if err != nil {
		return err
	}
	*g = *parsed
	return nil
}

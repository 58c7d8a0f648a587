package callgraph

import (
	"slices"

	"github.com/pkg/errors"

	"github.com/fleshka4/vault-quoter/internal/apperrors"
	"github.com/fleshka4/vault-quoter/internal/token"
)

// ExitInput asks to redeem BptAmountIn of a root pool, unwrapping every nested
// pool share on the way. With TokenOut set only the pools leading to TokenOut
// are exited, each into a single token.
type ExitInput struct {
	BptAmountIn token.Amount
	TokenOut    *token.Token
}

// BuildNestedExit emits one exit node per pool, parents before children. The
// root consumes the literal BptAmountIn and every nested pool consumes the
// slot its parent produced for its share token.
func BuildNestedExit(in ExitInput, state NestedPoolState) (*CallGraph, error) {
	if in.BptAmountIn.IsZero() {
		return nil, errors.Wrap(apperrors.ErrInvalidArgument, "bpt amount in must be positive")
	}

	h, err := newHierarchy(in.BptAmountIn.Token.ChainID, state)
	if err != nil {
		return nil, err
	}
	root, err := h.pool(in.BptAmountIn.Token.Address)
	if err != nil {
		return nil, err
	}
	if err = h.checkCycles(root); err != nil {
		return nil, err
	}

	g := New()
	amountIn := Literal(in.BptAmountIn.Raw())
	if in.TokenOut != nil {
		err = h.exitSingle(g, root, amountIn, *in.TokenOut)
	} else {
		err = h.exitProportional(g, root, amountIn)
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (h hierarchy) exitNode(p NestedPool, amountIn AmountDescriptor, kind Kind) Node {
	return Node{
		Action:        ActionExit,
		PoolID:        p.ID,
		PoolAddress:   p.Address,
		PoolType:      p.Type,
		Tokens:        slices.Clone(p.Tokens),
		Kind:          kind,
		TokenOutIndex: -1,
		Inputs:        []Input{{Token: h.bpt(p), Amount: amountIn}},
	}
}

func (h hierarchy) exitProportional(g *CallGraph, p NestedPool, amountIn AmountDescriptor) error {
	if err := checkPoolType(p); err != nil {
		return err
	}

	type nested struct {
		pool NestedPool
		slot SlotKey
	}
	var children []nested

	n := h.exitNode(p, amountIn, KindProportional)
	for i, t := range p.Tokens {
		if t.Address == p.Address {
			continue
		}
		slot := g.NewSlot()
		n.Outputs = append(n.Outputs, Output{Token: t, Index: i, Slot: slot})
		n.Limits = append(n.Limits, Limit{Token: t, Side: SideReceive, Bound: Reference(slot)})
		if c, ok := h.child(p, t); ok {
			children = append(children, nested{pool: c, slot: slot})
		}
	}
	if err := g.Append(n); err != nil {
		return err
	}

	for _, c := range children {
		if err := h.exitProportional(g, c.pool, Reference(c.slot)); err != nil {
			return err
		}
	}
	return nil
}

func (h hierarchy) exitSingle(g *CallGraph, root NestedPool, amountIn AmountDescriptor, tokenOut token.Token) error {
	chain, ok := h.chainTo(root, tokenOut)
	if !ok {
		return errors.Wrapf(apperrors.ErrInvalidArgument, "token %s is not reachable from pool %s", tokenOut, root.Address.Hex())
	}

	for i, p := range chain {
		if err := checkPoolType(p); err != nil {
			return err
		}

		target := tokenOut
		if i < len(chain)-1 {
			target = h.bpt(chain[i+1])
		}
		idx := token.Index(p.Tokens, target)
		if idx < 0 {
			idx = slices.IndexFunc(p.Tokens, func(t token.Token) bool { return t.Address == target.Address })
		}

		slot := g.NewSlot()
		n := h.exitNode(p, amountIn, KindSingleToken)
		n.TokenOutIndex = idx
		n.Outputs = []Output{{Token: p.Tokens[idx], Index: idx, Slot: slot}}
		n.Limits = []Limit{{Token: p.Tokens[idx], Side: SideReceive, Bound: Reference(slot)}}
		if err := g.Append(n); err != nil {
			return err
		}
		amountIn = Reference(slot)
	}
	return nil
}

// chainTo finds the pools leading from p to the first pool, in depth first
// order, holding tok as an underlying token.
func (h hierarchy) chainTo(p NestedPool, tok token.Token) ([]NestedPool, bool) {
	if slices.ContainsFunc(h.underlying(p), tok.Equal) {
		return []NestedPool{p}, true
	}
	for _, t := range h.underlying(p) {
		c, ok := h.child(p, t)
		if !ok {
			continue
		}
		if rest, found := h.chainTo(c, tok); found {
			return append([]NestedPool{p}, rest...), true
		}
	}
	return nil, false
}

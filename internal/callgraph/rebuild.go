package callgraph

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/fleshka4/vault-quoter/internal/apperrors"
	"github.com/fleshka4/vault-quoter/internal/slippage"
	"github.com/fleshka4/vault-quoter/internal/token"
)

// Bound is the slippage adjusted limit enforced on one observed output.
type Bound struct {
	Token token.Token `json:"token"`
	Side  Side        `json:"side"`
	Slot  SlotKey     `json:"slot"`
	Value *big.Int    `json:"value"`
}

// ExecutableGraph is a quoting graph without peeks whose limits are all
// literal.
type ExecutableGraph struct {
	Nodes  []Node  `json:"nodes"`
	Bounds []Bound `json:"bounds"`
}

// RebuildForExecution drops the peeks of g and replaces every reference limit
// with a literal: the resolved value less slippage for received amounts, plus
// slippage for paid ones. Limits on internal slots nobody observed become
// unbounded. Inputs and literal limits are kept as they are.
func RebuildForExecution(g *CallGraph, resolved Resolved, s slippage.Slippage) (ExecutableGraph, error) {
	if err := g.Validate(); err != nil {
		return ExecutableGraph{}, err
	}

	values := resolved.BySlot()
	out := ExecutableGraph{}
	for _, n := range g.nodes {
		if n.Action == ActionPeek {
			continue
		}
		n = n.Clone()
		for i, l := range n.Limits {
			if !l.Bound.IsReference() {
				continue
			}

			v, ok := values[l.Bound.Slot()]
			if !ok {
				if !g.Consumed(l.Bound.Slot()) {
					return ExecutableGraph{}, errors.Wrapf(apperrors.ErrInvalidArgument, "no resolved amount for %s", l.Token)
				}
				n.Limits[i].Bound = Literal(unbounded(l.Side))
				continue
			}
			if !v.Token.Equal(l.Token) {
				return ExecutableGraph{}, errors.Wrapf(apperrors.ErrTokenMismatch, "resolved %s for a %s limit", v.Token, l.Token)
			}

			var bound *big.Int
			if l.Side == SidePay {
				bound = s.ApplyTo(v.Raw())
				if bound.Cmp(token.MaxUint256) > 0 {
					bound = new(big.Int).Set(token.MaxUint256)
				}
			} else {
				bound = s.RemoveFrom(v.Raw())
			}
			n.Limits[i].Bound = Literal(bound)
			out.Bounds = append(out.Bounds, Bound{Token: l.Token, Side: l.Side, Slot: l.Bound.Slot(), Value: bound})
		}
		out.Nodes = append(out.Nodes, n)
	}
	return out, nil
}

// unbounded is the limit that never binds on side.
func unbounded(side Side) *big.Int {
	if side == SidePay {
		return new(big.Int).Set(token.MaxUint256)
	}
	return new(big.Int)
}

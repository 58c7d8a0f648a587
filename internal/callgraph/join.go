package callgraph

import (
	"slices"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/fleshka4/vault-quoter/internal/apperrors"
	"github.com/fleshka4/vault-quoter/internal/token"
)

// JoinInput asks to deposit AmountsIn of underlying tokens into the hierarchy
// rooted at Pool.
type JoinInput struct {
	Pool      common.Address
	AmountsIn []token.Amount
}

// BuildNestedJoin emits one join node per pool receiving liquidity, children
// before parents. Each amount goes to the deepest pool holding its token and a
// child's share output feeds its parent as a reference.
func BuildNestedJoin(in JoinInput, state NestedPoolState) (*CallGraph, error) {
	if len(in.AmountsIn) == 0 {
		return nil, errors.Wrap(apperrors.ErrInvalidArgument, "no amounts in")
	}

	h, err := newHierarchy(in.AmountsIn[0].Token.ChainID, state)
	if err != nil {
		return nil, err
	}
	root, err := h.pool(in.Pool)
	if err != nil {
		return nil, err
	}
	if err = h.checkCycles(root); err != nil {
		return nil, err
	}

	assigned, err := h.assign(root, in.AmountsIn)
	if err != nil {
		return nil, err
	}

	g := New()
	_, joined, err := h.join(g, root, assigned, make(map[common.Address]bool))
	if err != nil {
		return nil, err
	}
	if !joined {
		return nil, errors.Wrap(apperrors.ErrInvalidArgument, "root pool receives nothing")
	}
	return g, nil
}

type placed struct {
	pool  NestedPool
	depth int
}

// assign maps every amount to the deepest pool holding its token, the first
// one in depth first order on ties.
func (h hierarchy) assign(root NestedPool, amounts []token.Amount) (map[common.Address]map[common.Address]token.Amount, error) {
	var order []placed
	seen := make(map[common.Address]bool)
	var walk func(p NestedPool, depth int)
	walk = func(p NestedPool, depth int) {
		if seen[p.Address] {
			return
		}
		seen[p.Address] = true
		order = append(order, placed{pool: p, depth: depth})
		for _, t := range h.underlying(p) {
			if c, ok := h.child(p, t); ok {
				walk(c, depth+1)
			}
		}
	}
	walk(root, 0)

	assigned := make(map[common.Address]map[common.Address]token.Amount)
	for _, a := range amounts {
		if _, nested := h.pools[a.Token.Address]; nested {
			return nil, errors.Wrapf(apperrors.ErrInvalidArgument, "amount in pool share %s", a.Token)
		}

		best := -1
		for i, pl := range order {
			if !slices.ContainsFunc(h.underlying(pl.pool), a.Token.Equal) {
				continue
			}
			if best < 0 || pl.depth > order[best].depth {
				best = i
			}
		}
		if best < 0 {
			return nil, errors.Wrapf(apperrors.ErrInvalidArgument, "token %s is not in the pool hierarchy", a.Token)
		}

		addr := order[best].pool.Address
		if assigned[addr] == nil {
			assigned[addr] = make(map[common.Address]token.Amount)
		}
		if _, dup := assigned[addr][a.Token.Address]; dup {
			return nil, errors.Wrapf(apperrors.ErrInvalidArgument, "token %s given twice", a.Token)
		}
		assigned[addr][a.Token.Address] = a
	}
	return assigned, nil
}

// join appends the joins of p's subtree and returns the slot holding p's
// share output, if p received anything.
func (h hierarchy) join(
	g *CallGraph,
	p NestedPool,
	assigned map[common.Address]map[common.Address]token.Amount,
	visited map[common.Address]bool,
) (SlotKey, bool, error) {
	if visited[p.Address] {
		return 0, false, errors.Wrapf(apperrors.ErrUnsupportedOperation, "pool %s is nested under several parents", p.Address.Hex())
	}
	visited[p.Address] = true

	if err := checkPoolType(p); err != nil {
		return 0, false, err
	}

	var (
		inputs []Input
		limits []Limit
	)
	for _, t := range h.underlying(p) {
		if c, ok := h.child(p, t); ok {
			slot, joined, err := h.join(g, c, assigned, visited)
			if err != nil {
				return 0, false, err
			}
			if joined {
				inputs = append(inputs, Input{Token: t, Amount: Reference(slot)})
				limits = append(limits, Limit{Token: t, Side: SidePay, Bound: Reference(slot)})
			}
			continue
		}
		if a, ok := assigned[p.Address][t.Address]; ok {
			inputs = append(inputs, Input{Token: t, Amount: Literal(a.Raw())})
			limits = append(limits, Limit{Token: t, Side: SidePay, Bound: Literal(a.Raw())})
		}
	}
	if len(inputs) == 0 {
		return 0, false, nil
	}

	bpt := h.bpt(p)
	slot := g.NewSlot()
	n := Node{
		Action:        ActionJoin,
		PoolID:        p.ID,
		PoolAddress:   p.Address,
		PoolType:      p.Type,
		Tokens:        slices.Clone(p.Tokens),
		TokenOutIndex: -1,
		Inputs:        inputs,
		Outputs:       []Output{{Token: bpt, Index: token.Index(p.Tokens, bpt), Slot: slot}},
		Limits:        append(limits, Limit{Token: bpt, Side: SideReceive, Bound: Reference(slot)}),
	}
	if err := g.Append(n); err != nil {
		return 0, false, err
	}
	return slot, true, nil
}

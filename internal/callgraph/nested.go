package callgraph

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/fleshka4/vault-quoter/internal/apperrors"
	"github.com/fleshka4/vault-quoter/internal/token"
)

// PoolType is the pool variant of a nested pool.
type PoolType string

const (
	PoolTypeWeighted         PoolType = "WEIGHTED"
	PoolTypeComposableStable PoolType = "COMPOSABLE_STABLE"
)

// bptDecimals is the precision of every vault pool share token.
const bptDecimals = 18

// NestedPool is one pool of a hierarchy. A token whose address is the address
// of another pool of the state is a share of that pool.
type NestedPool struct {
	ID      common.Hash    `json:"id"`
	Address common.Address `json:"address"`
	Type    PoolType       `json:"type"`
	Tokens  []token.Token  `json:"tokens"`
}

// NestedPoolState describes every pool reachable from a root pool.
type NestedPoolState struct {
	Pools []NestedPool `json:"pools"`
}

type hierarchy struct {
	chainID uint64
	pools   map[common.Address]NestedPool
}

func newHierarchy(chainID uint64, state NestedPoolState) (hierarchy, error) {
	h := hierarchy{chainID: chainID, pools: make(map[common.Address]NestedPool, len(state.Pools))}
	for _, p := range state.Pools {
		if _, ok := h.pools[p.Address]; ok {
			return hierarchy{}, errors.Wrapf(apperrors.ErrInvalidArgument, "pool %s listed twice", p.Address.Hex())
		}
		if len(p.Tokens) < 2 {
			return hierarchy{}, errors.Wrapf(apperrors.ErrInvalidArgument, "pool %s has %d tokens", p.Address.Hex(), len(p.Tokens))
		}
		p.Tokens = token.Sorted(p.Tokens)
		h.pools[p.Address] = p
	}
	return h, nil
}

func (h hierarchy) pool(addr common.Address) (NestedPool, error) {
	p, ok := h.pools[addr]
	if !ok {
		return NestedPool{}, errors.Wrapf(apperrors.ErrInvalidArgument, "pool %s is not in the pool state", addr.Hex())
	}
	return p, nil
}

// bpt is the share token of p.
func (h hierarchy) bpt(p NestedPool) token.Token {
	if t, ok := lo.Find(p.Tokens, func(t token.Token) bool { return t.Address == p.Address }); ok {
		return t
	}
	return token.New(h.chainID, p.Address, bptDecimals)
}

// child returns the nested pool whose share t is, if any. A pool listing its
// own share token is not nesting.
func (h hierarchy) child(parent NestedPool, t token.Token) (NestedPool, bool) {
	if t.Address == parent.Address {
		return NestedPool{}, false
	}
	p, ok := h.pools[t.Address]
	return p, ok
}

// underlying lists the tokens of p other than its own share, in sorted order.
func (h hierarchy) underlying(p NestedPool) []token.Token {
	return lo.Filter(p.Tokens, func(t token.Token, _ int) bool { return t.Address != p.Address })
}

// checkCycles walks every pool reachable from root and fails if a pool is
// nested inside itself.
func (h hierarchy) checkCycles(root NestedPool) error {
	const (
		visiting = 1
		done     = 2
	)
	state := make(map[common.Address]int)

	var walk func(p NestedPool) error
	walk = func(p NestedPool) error {
		switch state[p.Address] {
		case visiting:
			return errors.Wrapf(apperrors.ErrCyclicNesting, "pool %s is nested inside itself", p.Address.Hex())
		case done:
			return nil
		}
		state[p.Address] = visiting
		for _, t := range h.underlying(p) {
			if c, ok := h.child(p, t); ok {
				if err := walk(c); err != nil {
					return err
				}
			}
		}
		state[p.Address] = done
		return nil
	}
	return walk(root)
}

func checkPoolType(p NestedPool) error {
	switch p.Type {
	case PoolTypeWeighted, PoolTypeComposableStable:
		return nil
	default:
		return errors.Wrapf(apperrors.ErrUnsupportedOperation, "pool type %q", p.Type)
	}
}

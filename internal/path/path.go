// Package path composes per-pool exchange functions along a fixed chain of
// pools.
package path

import (
	"slices"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/fleshka4/vault-quoter/internal/apperrors"
	"github.com/fleshka4/vault-quoter/internal/pool"
	"github.com/fleshka4/vault-quoter/internal/token"
)

// Hop is one pool traversal of a Path.
type Hop interface {
	pool.ExchangeFunction
	PoolID() common.Hash
	HasPair(tokenIn, tokenOut token.Token) bool
}

// Path is an immutable chain of tokens T[0..n-1] and hops P[0..n-2], hop i
// exchanging T[i] for T[i+1].
type Path struct {
	tokens []token.Token
	hops   []Hop
}

// NewPath validates the chain structure.
func NewPath(tokens []token.Token, hops []Hop) (Path, error) {
	if len(tokens) < 2 {
		return Path{}, errors.Wrapf(apperrors.ErrInvalidArgument, "path needs at least 2 tokens, got %d", len(tokens))
	}
	if len(hops) != len(tokens)-1 {
		return Path{}, errors.Wrapf(apperrors.ErrInvalidArgument, "path with %d tokens needs %d pools, got %d", len(tokens), len(tokens)-1, len(hops))
	}
	for i, h := range hops {
		if h == nil || !h.HasPair(tokens[i], tokens[i+1]) {
			return Path{}, errors.Wrapf(apperrors.ErrInvalidArgument, "pool does not trade %s -> %s", tokens[i], tokens[i+1])
		}
	}
	return Path{tokens: slices.Clone(tokens), hops: slices.Clone(hops)}, nil
}

// Tokens returns the token chain.
func (p Path) Tokens() []token.Token {
	return slices.Clone(p.tokens)
}

// Hops returns the pools in hop order.
func (p Path) Hops() []Hop {
	return slices.Clone(p.hops)
}

// TokenIn is the first token of the path.
func (p Path) TokenIn() token.Token {
	return p.tokens[0]
}

// TokenOut is the last token of the path.
func (p Path) TokenOut() token.Token {
	return p.tokens[len(p.tokens)-1]
}

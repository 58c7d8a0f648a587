// Package pool models vault pools as a tagged variant. The pool type selects
// the exchange function used to price a single hop; callers only ever see the
// ExchangeFunction capability.
package pool

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/multierr"

	"github.com/fleshka4/vault-quoter/internal/apperrors"
	"github.com/fleshka4/vault-quoter/internal/token"
)

// Type is the pool variant tag.
type Type string

const (
	// TypeConstantProduct is an x*y=k pool with a swap fee in basis points.
	TypeConstantProduct Type = "CONSTANT_PRODUCT"
	// TypeFixedRate exchanges tokens at fixed 1e18 scaled rates, bounded by balances.
	TypeFixedRate Type = "FIXED_RATE"
)

const bpsDivisor = 10_000

// ErrAmountExceedsLimit is returned when a pool cannot absorb or deliver the
// requested amount.
var ErrAmountExceedsLimit = errors.New("amount exceeds pool limit")

// ExchangeFunction prices a single hop through one pool. Implementations are
// pure functions of the pool state snapshot.
type ExchangeFunction interface {
	// SwapGivenIn returns the amount of tokenOut received for amountIn of tokenIn.
	SwapGivenIn(tokenIn, tokenOut token.Token, amountIn token.Amount) (token.Amount, error)
	// SwapGivenOut returns the amount of tokenIn paid for amountOut of tokenOut.
	SwapGivenOut(tokenIn, tokenOut token.Token, amountOut token.Amount) (token.Amount, error)
}

// Pool is a state snapshot of a single vault pool.
type Pool struct {
	ID       common.Hash    `json:"id"`
	Address  common.Address `json:"address"`
	Type     Type           `json:"type"`
	Tokens   []token.Token  `json:"tokens"`
	Balances []*big.Int     `json:"balances"`
	FeeBps   uint32         `json:"feeBps"`
	// Rates are used by TypeFixedRate only, one per token.
	Rates []*big.Int `json:"rates,omitempty"`
}

// Validate checks the pool type is supported and the snapshot is internally
// consistent.
func (p Pool) Validate() error {
	if _, err := p.Exchange(); err != nil {
		return err
	}

	var err error
	if len(p.Tokens) < 2 {
		err = multierr.Append(err, errors.Errorf("pool %s has %d tokens", p.ID.Hex(), len(p.Tokens)))
	}
	if len(p.Balances) != len(p.Tokens) {
		err = multierr.Append(err, errors.Errorf("pool %s has %d balances for %d tokens", p.ID.Hex(), len(p.Balances), len(p.Tokens)))
	}
	if lo.ContainsBy(p.Balances, func(b *big.Int) bool { return b == nil || b.Sign() < 0 }) {
		err = multierr.Append(err, errors.Errorf("pool %s has a negative balance", p.ID.Hex()))
	}
	if p.FeeBps >= bpsDivisor {
		err = multierr.Append(err, errors.Errorf("pool %s fee %d bps is not below 100%%", p.ID.Hex(), p.FeeBps))
	}
	if p.Type == TypeFixedRate && (len(p.Rates) != len(p.Tokens) || lo.ContainsBy(p.Rates, func(r *big.Int) bool { return r == nil || r.Sign() <= 0 })) {
		err = multierr.Append(err, errors.Errorf("pool %s needs one positive rate per token", p.ID.Hex()))
	}
	if err != nil {
		return errors.Wrap(apperrors.ErrInvalidArgument, err.Error())
	}
	return nil
}

// PoolID returns the vault pool id.
func (p Pool) PoolID() common.Hash {
	return p.ID
}

// HasPair reports whether both tokens are distinct tokens of the pool.
func (p Pool) HasPair(tokenIn, tokenOut token.Token) bool {
	return !tokenIn.Equal(tokenOut) && token.Index(p.Tokens, tokenIn) >= 0 && token.Index(p.Tokens, tokenOut) >= 0
}

// Exchange returns the exchange function selected by the pool type.
func (p Pool) Exchange() (ExchangeFunction, error) {
	switch p.Type {
	case TypeConstantProduct:
		return constantProduct{pool: p}, nil
	case TypeFixedRate:
		return fixedRate{pool: p}, nil
	default:
		return nil, errors.Wrapf(apperrors.ErrUnsupportedOperation, "pool type %q", p.Type)
	}
}

// SwapGivenIn implements ExchangeFunction by dispatching on the pool type.
func (p Pool) SwapGivenIn(tokenIn, tokenOut token.Token, amountIn token.Amount) (token.Amount, error) {
	ex, err := p.Exchange()
	if err != nil {
		return token.Amount{}, err
	}
	return ex.SwapGivenIn(tokenIn, tokenOut, amountIn)
}

// SwapGivenOut implements ExchangeFunction by dispatching on the pool type.
func (p Pool) SwapGivenOut(tokenIn, tokenOut token.Token, amountOut token.Amount) (token.Amount, error) {
	ex, err := p.Exchange()
	if err != nil {
		return token.Amount{}, err
	}
	return ex.SwapGivenOut(tokenIn, tokenOut, amountOut)
}

// indexes resolves the balance positions of a pair.
func (p Pool) indexes(tokenIn, tokenOut token.Token) (int, int, error) {
	in, out := token.Index(p.Tokens, tokenIn), token.Index(p.Tokens, tokenOut)
	if in < 0 || out < 0 || in == out {
		return 0, 0, errors.Wrapf(apperrors.ErrTokenMismatch, "pool %s does not contain the pair %s -> %s", p.ID.Hex(), tokenIn, tokenOut)
	}
	if in >= len(p.Balances) || out >= len(p.Balances) {
		return 0, 0, errors.Wrapf(apperrors.ErrInvalidArgument, "pool %s is missing balances", p.ID.Hex())
	}
	return in, out, nil
}

func checkToken(a token.Amount, want token.Token) error {
	if !a.Token.Equal(want) {
		return errors.Wrapf(apperrors.ErrTokenMismatch, "amount in %s, expected %s", a.Token, want)
	}
	return nil
}

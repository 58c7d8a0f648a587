// Package slippage holds the caller accepted deviation between a quoted amount
// and the bound enforced on chain.
package slippage

import (
	"math/big"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/fleshka4/vault-quoter/internal/apperrors"
)

var (
	one        = big.NewRat(1, 1)
	hundred    = decimal.NewFromInt(100)
	bpsDivisor = int64(10_000)
)

// Slippage is a rational tolerance t with 0 <= t < 1.
type Slippage struct {
	t *big.Rat
}

// New creates a Slippage from a rational tolerance.
func New(t *big.Rat) (Slippage, error) {
	if t == nil || t.Sign() < 0 || t.Cmp(one) >= 0 {
		return Slippage{}, errors.Wrap(apperrors.ErrInvalidArgument, "slippage must be in [0, 1)")
	}
	return Slippage{t: new(big.Rat).Set(t)}, nil
}

// FromPercentage parses a percentage such as "0.5" (half a percent).
func FromPercentage(s string) (Slippage, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Slippage{}, errors.Wrapf(apperrors.ErrInvalidArgument, "bad slippage %q", s)
	}
	return New(new(big.Rat).Quo(d.Rat(), big.NewRat(100, 1)))
}

// FromBasisPoints creates a Slippage of bps / 10000.
func FromBasisPoints(bps uint32) (Slippage, error) {
	return New(big.NewRat(int64(bps), bpsDivisor))
}

// Rat returns the tolerance.
func (s Slippage) Rat() *big.Rat {
	if s.t == nil {
		return new(big.Rat)
	}
	return new(big.Rat).Set(s.t)
}

// Percentage renders the tolerance as a percentage string.
func (s Slippage) Percentage() string {
	r := s.Rat()
	return decimal.NewFromBigInt(r.Num(), 0).Mul(hundred).Div(decimal.NewFromBigInt(r.Denom(), 0)).String()
}

// RemoveFrom returns floor(v * (1 - t)), the minimum to accept when receiving v.
func (s Slippage) RemoveFrom(v *big.Int) *big.Int {
	factor := new(big.Rat).Sub(one, s.Rat())
	num, den := scaled(v, factor)
	return num.Quo(num, den)
}

// ApplyTo returns ceil(v * (1 + t)), the maximum to pay when paying v.
func (s Slippage) ApplyTo(v *big.Int) *big.Int {
	factor := new(big.Rat).Add(one, s.Rat())
	num, den := scaled(v, factor)
	q, m := new(big.Int).QuoRem(num, den, new(big.Int))
	if m.Sign() != 0 {
		q.Add(q, big.NewInt(1))
	}
	return q
}

// scaled returns v * factor as an unreduced numerator and denominator.
func scaled(v *big.Int, factor *big.Rat) (*big.Int, *big.Int) {
	num := new(big.Int).Mul(v, factor.Num())
	return num, new(big.Int).Set(factor.Denom())
}

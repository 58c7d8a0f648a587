package pool

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/fleshka4/vault-quoter/internal/token"
)

// fixedRate prices tokens by their 1e18 scaled rates: value = amount * rate.
type fixedRate struct {
	pool Pool
}

func (f fixedRate) rates(in, out int) (*big.Int, *big.Int, error) {
	if in >= len(f.pool.Rates) || out >= len(f.pool.Rates) ||
		f.pool.Rates[in] == nil || f.pool.Rates[out] == nil ||
		f.pool.Rates[in].Sign() <= 0 || f.pool.Rates[out].Sign() <= 0 {
		return nil, nil, errors.Wrapf(ErrAmountExceedsLimit, "pool %s has no rate for the pair", f.pool.ID.Hex())
	}
	return f.pool.Rates[in], f.pool.Rates[out], nil
}

func (f fixedRate) SwapGivenIn(tokenIn, tokenOut token.Token, amountIn token.Amount) (token.Amount, error) {
	if err := checkToken(amountIn, tokenIn); err != nil {
		return token.Amount{}, err
	}
	in, out, err := f.pool.indexes(tokenIn, tokenOut)
	if err != nil {
		return token.Amount{}, err
	}
	rateIn, rateOut, err := f.rates(in, out)
	if err != nil {
		return token.Amount{}, err
	}

	// out = floor(amountIn * (D - fee) * rateIn / (D * rateOut)).
	num := new(big.Int).Mul(amountIn.Raw(), big.NewInt(bpsDivisor-int64(f.pool.FeeBps)))
	num.Mul(num, rateIn)
	den := new(big.Int).Mul(feeDen, rateOut)
	res := num.Quo(num, den)

	if res.Cmp(f.pool.Balances[out]) > 0 {
		return token.Amount{}, errors.Wrapf(ErrAmountExceedsLimit, "pool %s holds %s %s", f.pool.ID.Hex(), f.pool.Balances[out], tokenOut)
	}
	return token.NewAmount(tokenOut, res)
}

func (f fixedRate) SwapGivenOut(tokenIn, tokenOut token.Token, amountOut token.Amount) (token.Amount, error) {
	if err := checkToken(amountOut, tokenOut); err != nil {
		return token.Amount{}, err
	}
	in, out, err := f.pool.indexes(tokenIn, tokenOut)
	if err != nil {
		return token.Amount{}, err
	}
	rateIn, rateOut, err := f.rates(in, out)
	if err != nil {
		return token.Amount{}, err
	}
	if amountOut.Raw().Cmp(f.pool.Balances[out]) > 0 {
		return token.Amount{}, errors.Wrapf(ErrAmountExceedsLimit, "pool %s holds %s %s", f.pool.ID.Hex(), f.pool.Balances[out], tokenOut)
	}

	// in = ceil(amountOut * D * rateOut / ((D - fee) * rateIn)).
	num := new(big.Int).Mul(amountOut.Raw(), feeDen)
	num.Mul(num, rateOut)
	den := new(big.Int).Mul(big.NewInt(bpsDivisor-int64(f.pool.FeeBps)), rateIn)
	res, rem := new(big.Int).QuoRem(num, den, new(big.Int))
	if rem.Sign() != 0 {
		res.Add(res, big.NewInt(1))
	}

	amount, err := token.NewAmount(tokenIn, res)
	if err != nil {
		return token.Amount{}, errors.Wrap(ErrAmountExceedsLimit, err.Error())
	}
	return amount, nil
}

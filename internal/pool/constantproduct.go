package pool

import (
	"math/big"
	"sync"

	"github.com/pkg/errors"

	"github.com/fleshka4/vault-quoter/internal/token"
)

var (
	feeDen = big.NewInt(bpsDivisor)

	defaultMath = newMathService()
)

type mathTmp struct {
	a *big.Int
	b *big.Int
	c *big.Int
	d *big.Int
}

type mathService struct {
	pool *sync.Pool
}

func newMathService() *mathService {
	return &mathService{
		pool: &sync.Pool{
			New: func() any {
				return &mathTmp{
					a: new(big.Int),
					b: new(big.Int),
					c: new(big.Int),
					d: new(big.Int),
				}
			},
		},
	}
}

// amountOutInto writes floor(amountIn*f*reserveOut / (reserveIn*D + amountIn*f))
// into out, where f = D - fee.
func (m *mathService) amountOutInto(out, amountIn, reserveIn, reserveOut *big.Int, feeBps uint32) bool {
	if reserveIn.Sign() <= 0 || reserveOut.Sign() <= 0 {
		out.SetInt64(0)
		return false
	}
	if amountIn.Sign() == 0 {
		out.SetInt64(0)
		return true
	}

	t := m.pool.Get().(*mathTmp)
	defer m.pool.Put(t)

	// ainFee := amountIn * (D - fee).
	t.d.SetInt64(bpsDivisor - int64(feeBps))
	t.a.Mul(amountIn, t.d)

	// num := ainFee * reserveOut.
	t.b.Mul(t.a, reserveOut)

	// den := reserveIn * D + ainFee.
	t.c.Mul(reserveIn, feeDen)
	t.c.Add(t.c, t.a)

	out.Quo(t.b, t.c)
	return true
}

// amountInInto writes ceil(reserveIn*amountOut*D / ((reserveOut-amountOut)*f))
// into out. It fails when amountOut drains the pool.
func (m *mathService) amountInInto(out, amountOut, reserveIn, reserveOut *big.Int, feeBps uint32) bool {
	if reserveIn.Sign() <= 0 || reserveOut.Sign() <= 0 || amountOut.Cmp(reserveOut) >= 0 {
		out.SetInt64(0)
		return false
	}
	if amountOut.Sign() == 0 {
		out.SetInt64(0)
		return true
	}

	t := m.pool.Get().(*mathTmp)
	defer m.pool.Put(t)

	// num := reserveIn * amountOut * D.
	t.a.Mul(reserveIn, amountOut)
	t.a.Mul(t.a, feeDen)

	// den := (reserveOut - amountOut) * (D - fee).
	t.d.SetInt64(bpsDivisor - int64(feeBps))
	t.b.Sub(reserveOut, amountOut)
	t.b.Mul(t.b, t.d)

	out.QuoRem(t.a, t.b, t.c)
	if t.c.Sign() != 0 {
		out.Add(out, big.NewInt(1))
	}
	return true
}

type constantProduct struct {
	pool Pool
}

func (c constantProduct) SwapGivenIn(tokenIn, tokenOut token.Token, amountIn token.Amount) (token.Amount, error) {
	if err := checkToken(amountIn, tokenIn); err != nil {
		return token.Amount{}, err
	}
	in, out, err := c.pool.indexes(tokenIn, tokenOut)
	if err != nil {
		return token.Amount{}, err
	}

	res := new(big.Int)
	if !defaultMath.amountOutInto(res, amountIn.Raw(), c.pool.Balances[in], c.pool.Balances[out], c.pool.FeeBps) {
		return token.Amount{}, errors.Wrapf(ErrAmountExceedsLimit, "pool %s has no liquidity", c.pool.ID.Hex())
	}
	return token.NewAmount(tokenOut, res)
}

func (c constantProduct) SwapGivenOut(tokenIn, tokenOut token.Token, amountOut token.Amount) (token.Amount, error) {
	if err := checkToken(amountOut, tokenOut); err != nil {
		return token.Amount{}, err
	}
	in, out, err := c.pool.indexes(tokenIn, tokenOut)
	if err != nil {
		return token.Amount{}, err
	}

	res := new(big.Int)
	if !defaultMath.amountInInto(res, amountOut.Raw(), c.pool.Balances[in], c.pool.Balances[out], c.pool.FeeBps) {
		return token.Amount{}, errors.Wrapf(ErrAmountExceedsLimit, "pool %s cannot deliver %s %s", c.pool.ID.Hex(), amountOut, tokenOut)
	}
	amount, err := token.NewAmount(tokenIn, res)
	if err != nil {
		return token.Amount{}, errors.Wrap(ErrAmountExceedsLimit, err.Error())
	}
	return amount, nil
}

package path

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/fleshka4/vault-quoter/internal/apperrors"
	"github.com/fleshka4/vault-quoter/internal/pool"
	"github.com/fleshka4/vault-quoter/internal/token"
)

var (
	tokA = token.New(1, common.HexToAddress("0xa0"), 18)
	tokB = token.New(1, common.HexToAddress("0xb0"), 18)
	tokC = token.New(1, common.HexToAddress("0xc0"), 18)
	tokD = token.New(1, common.HexToAddress("0xd0"), 18)
)

// fakeHop doubles amounts going forward and fails above limit.
type fakeHop struct {
	id    common.Hash
	a, b  token.Token
	limit int64
	calls *int
}

func (f fakeHop) PoolID() common.Hash { return f.id }

func (f fakeHop) HasPair(in, out token.Token) bool {
	return (in.Equal(f.a) && out.Equal(f.b)) || (in.Equal(f.b) && out.Equal(f.a))
}

func (f fakeHop) SwapGivenIn(_, out token.Token, in token.Amount) (token.Amount, error) {
	if f.calls != nil {
		*f.calls++
	}
	if f.limit > 0 && in.Raw().Int64() > f.limit {
		return token.Amount{}, pool.ErrAmountExceedsLimit
	}
	return token.MustAmount(out, new(big.Int).Mul(in.Raw(), big.NewInt(2))), nil
}

func (f fakeHop) SwapGivenOut(in, _ token.Token, out token.Amount) (token.Amount, error) {
	if f.calls != nil {
		*f.calls++
	}
	res := new(big.Int).Div(out.Raw(), big.NewInt(2))
	if f.limit > 0 && res.Int64() > f.limit {
		return token.Amount{}, pool.ErrAmountExceedsLimit
	}
	return token.MustAmount(in, res), nil
}

func cp(id byte, a, b token.Token, ra, rb int64) pool.Pool {
	return pool.Pool{
		ID:       common.BytesToHash([]byte{id}),
		Type:     pool.TypeConstantProduct,
		Tokens:   []token.Token{a, b},
		Balances: []*big.Int{big.NewInt(ra), big.NewInt(rb)},
		FeeBps:   30,
	}
}

func TestNewPath(t *testing.T) {
	t.Parallel()

	ab := fakeHop{a: tokA, b: tokB}
	bc := fakeHop{a: tokB, b: tokC}

	t.Run("ok", func(t *testing.T) {
		p, err := NewPath([]token.Token{tokA, tokB, tokC}, []Hop{ab, bc})
		require.NoError(t, err)
		require.Equal(t, tokA, p.TokenIn())
		require.Equal(t, tokC, p.TokenOut())
		require.Len(t, p.Hops(), 2)
	})

	cases := []struct {
		name   string
		tokens []token.Token
		hops   []Hop
	}{
		{name: "single token", tokens: []token.Token{tokA}, hops: nil},
		{name: "hop count", tokens: []token.Token{tokA, tokB, tokC}, hops: []Hop{ab}},
		{name: "wrong pair", tokens: []token.Token{tokA, tokC}, hops: []Hop{ab}},
		{name: "nil hop", tokens: []token.Token{tokA, tokB}, hops: []Hop{nil}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewPath(tc.tokens, tc.hops)
			require.ErrorIs(t, err, apperrors.ErrInvalidArgument)
		})
	}
}

func TestAmountedPathDirections(t *testing.T) {
	t.Parallel()

	p, err := NewPath([]token.Token{tokA, tokB, tokC}, []Hop{fakeHop{a: tokA, b: tokB}, fakeHop{a: tokB, b: tokC}})
	require.NoError(t, err)

	in, err := NewAmountedPath(p, token.MustAmount(tokA, big.NewInt(10)))
	require.NoError(t, err)
	require.Equal(t, GivenIn, in.Direction())
	require.Equal(t, "10", in.InputAmount().String())
	require.Equal(t, "40", in.OutputAmount().String())
	require.True(t, in.OutputAmount().Token.Equal(tokC))
	amounts := in.Amounts()
	require.Len(t, amounts, 3)
	require.Equal(t, "20", amounts[1].String())

	out, err := NewAmountedPath(p, token.MustAmount(tokC, big.NewInt(40)))
	require.NoError(t, err)
	require.Equal(t, GivenOut, out.Direction())
	require.Equal(t, "10", out.InputAmount().String())
	require.Equal(t, "40", out.OutputAmount().String())

	_, err = NewAmountedPath(p, token.MustAmount(tokB, big.NewInt(1)))
	require.ErrorIs(t, err, apperrors.ErrTokenMismatch)
}

func TestMiddleHopExceedsLimit(t *testing.T) {
	t.Parallel()

	calls := 0
	p, err := NewPath(
		[]token.Token{tokA, tokB, tokC, tokD},
		[]Hop{
			fakeHop{a: tokA, b: tokB, calls: &calls},
			fakeHop{a: tokB, b: tokC, limit: 1500, calls: &calls},
			fakeHop{a: tokC, b: tokD, calls: &calls},
		},
	)
	require.NoError(t, err)

	_, err = NewAmountedPath(p, token.MustAmount(tokA, big.NewInt(1000)))
	require.ErrorIs(t, err, apperrors.ErrPathExceedsLimit)
	require.NotContains(t, err.Error(), "hop")
	require.Equal(t, 2, calls)
}

func TestUnsupportedPoolTypeNotCollapsed(t *testing.T) {
	t.Parallel()

	weighted := cp(1, tokA, tokB, 1_000, 1_000)
	weighted.Type = "WEIGHTED"
	p, err := NewPath([]token.Token{tokA, tokB}, []Hop{weighted})
	require.NoError(t, err)

	_, err = NewAmountedPath(p, token.MustAmount(tokA, big.NewInt(10)))
	require.ErrorIs(t, err, apperrors.ErrUnsupportedOperation)
	require.NotErrorIs(t, err, apperrors.ErrPathExceedsLimit)

	_, err = NewAmountedPath(p, token.MustAmount(tokB, big.NewInt(10)))
	require.ErrorIs(t, err, apperrors.ErrUnsupportedOperation)
}

func TestCompositionConsistency(t *testing.T) {
	t.Parallel()

	p, err := NewPath(
		[]token.Token{tokA, tokB, tokC},
		[]Hop{
			cp(1, tokA, tokB, 5_000_000, 7_000_000),
			cp(2, tokB, tokC, 3_000_000, 9_000_000),
		},
	)
	require.NoError(t, err)

	for _, v := range []int64{1, 13, 1000, 77_777, 250_000} {
		in, err := NewAmountedPath(p, token.MustAmount(tokA, big.NewInt(v)))
		require.NoError(t, err)

		back, err := NewAmountedPath(p, in.OutputAmount())
		require.NoError(t, err)

		got := back.InputAmount().Raw().Int64()
		require.LessOrEqual(t, got, v)
		require.GreaterOrEqual(t, got, v-v/100-2, "input %d drifted to %d", v, got)
	}
}

func TestDeterminism(t *testing.T) {
	t.Parallel()

	p, err := NewPath([]token.Token{tokA, tokB}, []Hop{cp(1, tokA, tokB, 1_000_000, 1_000_000)})
	require.NoError(t, err)

	amt := token.MustAmount(tokA, big.NewInt(12_345))
	first, err := NewAmountedPath(p, amt)
	require.NoError(t, err)
	second, err := NewAmountedPath(p, amt)
	require.NoError(t, err)
	require.Equal(t, first.OutputAmount().String(), second.OutputAmount().String())
}

func TestSwapAggregate(t *testing.T) {
	t.Parallel()

	direct, err := NewPath([]token.Token{tokA, tokC}, []Hop{fakeHop{a: tokA, b: tokC}})
	require.NoError(t, err)
	twoHop, err := NewPath([]token.Token{tokA, tokB, tokC}, []Hop{fakeHop{a: tokA, b: tokB}, fakeHop{a: tokB, b: tokC}})
	require.NoError(t, err)

	p1, err := NewAmountedPath(direct, token.MustAmount(tokA, big.NewInt(5)))
	require.NoError(t, err)
	p2, err := NewAmountedPath(twoHop, token.MustAmount(tokA, big.NewInt(5)))
	require.NoError(t, err)

	s, err := NewSwap([]AmountedPath{p1, p2})
	require.NoError(t, err)
	require.Equal(t, GivenIn, s.Direction())
	require.Equal(t, "10", s.InputAmount().String())
	require.Equal(t, "30", s.OutputAmount().String())

	reversed, err := NewAmountedPath(direct, token.MustAmount(tokC, big.NewInt(10)))
	require.NoError(t, err)
	_, err = NewSwap([]AmountedPath{p1, reversed})
	require.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	_, err = NewSwap(nil)
	require.ErrorIs(t, err, apperrors.ErrInvalidArgument)
}

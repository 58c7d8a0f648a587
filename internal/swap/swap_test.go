package swap

import (
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/fleshka4/vault-quoter/internal/apperrors"
	"github.com/fleshka4/vault-quoter/internal/path"
	"github.com/fleshka4/vault-quoter/internal/pool"
	"github.com/fleshka4/vault-quoter/internal/slippage"
	"github.com/fleshka4/vault-quoter/internal/token"
)

var (
	eth  = token.New(1, common.Address{}, 18)
	tokB = token.New(1, common.HexToAddress("0xb0"), 18)
	tokC = token.New(1, common.HexToAddress("0xc0"), 18)

	sender    = common.HexToAddress("0x5e")
	recipient = common.HexToAddress("0x7e")
	deadline  = time.Unix(1_900_000_000, 0)
)

func fixed(id byte, a, b token.Token) pool.Pool {
	e18 := new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
	return pool.Pool{
		ID:       common.BytesToHash([]byte{id}),
		Type:     pool.TypeFixedRate,
		Tokens:   []token.Token{a, b},
		Balances: []*big.Int{e18, e18},
		Rates:    []*big.Int{e18, e18},
	}
}

func twoHopSwap(t *testing.T, amount token.Amount) path.Swap {
	t.Helper()

	p, err := path.NewPath([]token.Token{eth, tokB, tokC}, []path.Hop{fixed(1, eth, tokB), fixed(2, tokB, tokC)})
	require.NoError(t, err)
	ap, err := path.NewAmountedPath(p, amount)
	require.NoError(t, err)
	s, err := path.NewSwap([]path.AmountedPath{ap})
	require.NoError(t, err)
	return s
}

func onePercent(t *testing.T) slippage.Slippage {
	t.Helper()

	s, err := slippage.FromPercentage("1")
	require.NoError(t, err)
	return s
}

func TestBuildGivenIn(t *testing.T) {
	t.Parallel()

	s := twoHopSwap(t, token.MustAmount(eth, big.NewInt(10_000)))
	built, err := Build(s, BuildInput{Slippage: onePercent(t), Deadline: deadline, Sender: sender, Recipient: recipient})
	require.NoError(t, err)

	bs := built.BatchSwap
	require.Equal(t, KindGivenIn, bs.Kind)
	require.Equal(t, []common.Address{eth.Address, tokB.Address, tokC.Address}, bs.Assets)
	require.Len(t, bs.Steps, 2)
	require.Equal(t, "10000", bs.Steps[0].Amount.String())
	require.Equal(t, "0", bs.Steps[1].Amount.String())
	require.Equal(t, int64(1), bs.Steps[1].AssetInIndex.Int64())
	require.Equal(t, int64(2), bs.Steps[1].AssetOutIndex.Int64())

	require.Equal(t, "10000", bs.Limits[0].String())
	require.Equal(t, "0", bs.Limits[1].String())
	require.Equal(t, "-9900", bs.Limits[2].String())
	require.Equal(t, "9900", built.Bound.String())
	require.True(t, built.Bound.Token.Equal(tokC))

	require.Equal(t, "10000", bs.Value.String())
	require.Equal(t, int64(1_900_000_000), bs.Deadline.Int64())
	require.Equal(t, sender, bs.Funds.Sender)
	require.Equal(t, recipient, bs.Funds.Recipient)
}

func TestBuildGivenOut(t *testing.T) {
	t.Parallel()

	s := twoHopSwap(t, token.MustAmount(tokC, big.NewInt(10_000)))
	built, err := Build(s, BuildInput{Slippage: onePercent(t), Deadline: deadline, Sender: sender, Recipient: recipient})
	require.NoError(t, err)

	bs := built.BatchSwap
	require.Equal(t, KindGivenOut, bs.Kind)
	require.Equal(t, common.BytesToHash([]byte{2}), bs.Steps[0].PoolID)
	require.Equal(t, "10000", bs.Steps[0].Amount.String())
	require.Equal(t, common.BytesToHash([]byte{1}), bs.Steps[1].PoolID)
	require.Equal(t, "0", bs.Steps[1].Amount.String())

	require.Equal(t, "10100", bs.Limits[0].String())
	require.Equal(t, "-10000", bs.Limits[2].String())
	require.Equal(t, "10100", built.Bound.String())
	require.Equal(t, "10100", bs.Value.String())
}

func TestBuildRequiresDeadline(t *testing.T) {
	t.Parallel()

	s := twoHopSwap(t, token.MustAmount(eth, big.NewInt(1)))
	_, err := Build(s, BuildInput{Slippage: onePercent(t)})
	require.ErrorIs(t, err, apperrors.ErrInvalidArgument)
}

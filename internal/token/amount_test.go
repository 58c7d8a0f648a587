package token

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/fleshka4/vault-quoter/internal/apperrors"
)

var (
	dai  = New(1, common.HexToAddress("0x6B175474E89094C44Da98b954EedeAC495271d0F"), 18)
	usdc = New(1, common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"), 6)
)

func TestNewAmount(t *testing.T) {
	t.Parallel()

	t.Run("copies raw", func(t *testing.T) {
		raw := big.NewInt(10)
		a, err := NewAmount(dai, raw)
		require.NoError(t, err)

		raw.SetInt64(99)
		require.Equal(t, "10", a.String())
	})

	t.Run("nil", func(t *testing.T) {
		_, err := NewAmount(dai, nil)
		require.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	})

	t.Run("negative", func(t *testing.T) {
		_, err := NewAmount(dai, big.NewInt(-1))
		require.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	})

	t.Run("max uint256 fits", func(t *testing.T) {
		_, err := NewAmount(dai, MaxUint256)
		require.NoError(t, err)
	})

	t.Run("overflow", func(t *testing.T) {
		_, err := NewAmount(dai, new(big.Int).Add(MaxUint256, big.NewInt(1)))
		require.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	})
}

func TestAmountArithmetic(t *testing.T) {
	t.Parallel()

	a := MustAmount(dai, big.NewInt(700))
	b := MustAmount(dai, big.NewInt(300))

	sum, err := a.Add(b)
	require.NoError(t, err)
	require.Equal(t, "1000", sum.String())

	diff, err := a.Sub(b)
	require.NoError(t, err)
	require.Equal(t, "400", diff.String())

	_, err = b.Sub(a)
	require.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	cmp, err := a.Cmp(b)
	require.NoError(t, err)
	require.Equal(t, 1, cmp)

	other := MustAmount(usdc, big.NewInt(1))
	_, err = a.Add(other)
	require.ErrorIs(t, err, apperrors.ErrTokenMismatch)
	_, err = a.Sub(other)
	require.ErrorIs(t, err, apperrors.ErrTokenMismatch)
	_, err = a.Cmp(other)
	require.ErrorIs(t, err, apperrors.ErrTokenMismatch)
}

func TestTokenEqualIgnoresDecimals(t *testing.T) {
	t.Parallel()

	require.True(t, dai.Equal(New(1, dai.Address, 6)))
	require.False(t, dai.Equal(New(10, dai.Address, 18)))
}

func TestSum(t *testing.T) {
	t.Parallel()

	total, err := Sum([]Amount{
		MustAmount(usdc, big.NewInt(1)),
		MustAmount(usdc, big.NewInt(2)),
		MustAmount(usdc, big.NewInt(3)),
	})
	require.NoError(t, err)
	require.Equal(t, "6", total.String())

	_, err = Sum(nil)
	require.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	_, err = Sum([]Amount{MustAmount(usdc, big.NewInt(1)), MustAmount(dai, big.NewInt(1))})
	require.ErrorIs(t, err, apperrors.ErrTokenMismatch)
}

func TestAmountDecimal(t *testing.T) {
	t.Parallel()

	a := MustAmount(usdc, big.NewInt(1_500_000))
	require.Equal(t, "1.5", a.Decimal().String())
}

func TestAmountJSON(t *testing.T) {
	t.Parallel()

	a := MustAmount(usdc, big.NewInt(1_500_000))
	data, err := json.Marshal(a)
	require.NoError(t, err)
	require.JSONEq(t, `{"token":{"chainId":1,"address":"0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48","decimals":6},"amount":"1500000","decimal":"1.5"}`, string(data))

	var back Amount
	require.NoError(t, json.Unmarshal(data, &back))
	require.True(t, back.Token.Equal(usdc))
	require.Equal(t, "1500000", back.String())

	require.Error(t, json.Unmarshal([]byte(`{"token":{},"amount":"x"}`), &back))
}

func TestSorted(t *testing.T) {
	t.Parallel()

	sorted := Sorted([]Token{usdc, dai})
	require.Equal(t, []Token{dai, usdc}, sorted)
	require.Equal(t, 1, Index(sorted, usdc))
	require.Equal(t, -1, Index(sorted, New(5, usdc.Address, 6)))
}

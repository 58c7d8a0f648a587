package validate

import (
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleshka4/vault-quoter/internal/apperrors"
	"github.com/fleshka4/vault-quoter/internal/callgraph"
	"github.com/fleshka4/vault-quoter/internal/pool"
	"github.com/fleshka4/vault-quoter/internal/service/dto"
	"github.com/fleshka4/vault-quoter/internal/token"
)

var (
	dai  = token.New(1, common.HexToAddress("0x6B175474E89094C44Da98b954EedeAC495271d0F"), 18)
	usdc = token.New(1, common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"), 6)
	bpt  = token.New(1, common.HexToAddress("0x742d35Cc6634C0532925a3b844Bc454e4438f44e"), 18)
)

func createValidQuote() dto.SwapQuoteRequest {
	return dto.SwapQuoteRequest{
		ChainID: 1,
		Paths: []dto.PathRequest{{
			Tokens: []token.Token{dai, usdc},
			Pools:  []pool.Pool{{Type: pool.TypeConstantProduct}},
			Amount: token.MustAmount(dai, big.NewInt(1000)),
		}},
	}
}

func TestSwapQuoteRequestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(*dto.SwapQuoteRequest)
		wantErr assert.ErrorAssertionFunc
	}{
		{
			name:    "valid request",
			modify:  func(*dto.SwapQuoteRequest) {},
			wantErr: assert.NoError,
		},
		{
			name:    "zero chain",
			modify:  func(r *dto.SwapQuoteRequest) { r.ChainID = 0 },
			wantErr: assert.Error,
		},
		{
			name:    "no paths",
			modify:  func(r *dto.SwapQuoteRequest) { r.Paths = nil },
			wantErr: assert.Error,
		},
		{
			name:    "zero amount",
			modify:  func(r *dto.SwapQuoteRequest) { r.Paths[0].Amount = token.Zero(dai) },
			wantErr: assert.Error,
		},
		{
			name:    "single token path",
			modify:  func(r *dto.SwapQuoteRequest) { r.Paths[0].Tokens = r.Paths[0].Tokens[:1] },
			wantErr: assert.Error,
		},
		{
			name:    "pool count mismatch",
			modify:  func(r *dto.SwapQuoteRequest) { r.Paths[0].Pools = nil },
			wantErr: assert.Error,
		},
		{
			name: "token on another chain",
			modify: func(r *dto.SwapQuoteRequest) {
				r.Paths[0].Tokens[1] = token.New(137, usdc.Address, 6)
			},
			wantErr: assert.Error,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := createValidQuote()
			tt.modify(&req)

			err := SwapQuoteRequestValidate(req)
			tt.wantErr(t, err)
			if err != nil {
				require.ErrorIs(t, err, apperrors.ErrInvalidArgument)
			}
		})
	}
}

func TestSwapBuildRequestValidate(t *testing.T) {
	t.Parallel()

	valid := func() dto.SwapBuildRequest {
		return dto.SwapBuildRequest{
			Quote:     createValidQuote(),
			Deadline:  time.Unix(1_700_000_000, 0),
			Sender:    common.HexToAddress("0xaa"),
			Recipient: common.HexToAddress("0xbb"),
		}
	}

	require.NoError(t, SwapBuildRequestValidate(valid()))

	t.Run("missing deadline", func(t *testing.T) {
		req := valid()
		req.Deadline = time.Time{}
		require.ErrorIs(t, SwapBuildRequestValidate(req), apperrors.ErrInvalidArgument)
	})

	t.Run("missing recipient", func(t *testing.T) {
		req := valid()
		req.Recipient = common.Address{}
		require.ErrorIs(t, SwapBuildRequestValidate(req), apperrors.ErrInvalidArgument)
	})

	t.Run("invalid quote", func(t *testing.T) {
		req := valid()
		req.Quote.Paths = nil
		require.ErrorIs(t, SwapBuildRequestValidate(req), apperrors.ErrInvalidArgument)
	})
}

func TestNestedRequestsValidate(t *testing.T) {
	t.Parallel()

	state := callgraph.NestedPoolState{Pools: []callgraph.NestedPool{{
		Address: bpt.Address,
		Type:    callgraph.PoolTypeWeighted,
		Tokens:  []token.Token{dai, usdc},
	}}}
	account := common.HexToAddress("0xaa")

	t.Run("exit", func(t *testing.T) {
		req := dto.NestedExitQuoteRequest{
			ChainID:     1,
			Account:     account,
			State:       state,
			BptAmountIn: token.MustAmount(bpt, big.NewInt(10)),
		}
		require.NoError(t, NestedExitQuoteRequestValidate(req))

		req.BptAmountIn = token.Zero(bpt)
		require.ErrorIs(t, NestedExitQuoteRequestValidate(req), apperrors.ErrInvalidArgument)

		req.BptAmountIn = token.MustAmount(bpt, big.NewInt(10))
		out := token.New(10, dai.Address, 18)
		req.TokenOut = &out
		require.ErrorIs(t, NestedExitQuoteRequestValidate(req), apperrors.ErrInvalidArgument)
	})

	t.Run("join", func(t *testing.T) {
		req := dto.NestedJoinQuoteRequest{
			ChainID:   1,
			Account:   account,
			State:     state,
			Pool:      bpt.Address,
			AmountsIn: []token.Amount{token.MustAmount(dai, big.NewInt(5))},
		}
		require.NoError(t, NestedJoinQuoteRequestValidate(req))

		req.Pool = common.Address{}
		require.ErrorIs(t, NestedJoinQuoteRequestValidate(req), apperrors.ErrInvalidArgument)

		req.Pool = bpt.Address
		req.AmountsIn = nil
		require.ErrorIs(t, NestedJoinQuoteRequestValidate(req), apperrors.ErrInvalidArgument)
	})

	t.Run("build", func(t *testing.T) {
		require.ErrorIs(t, NestedBuildRequestValidate(dto.NestedBuildRequest{}), apperrors.ErrInvalidArgument)

		g, err := callgraph.BuildNestedExit(callgraph.ExitInput{BptAmountIn: token.MustAmount(bpt, big.NewInt(10))}, state)
		require.NoError(t, err)

		req := dto.NestedBuildRequest{
			Quote:     dto.NestedQuote{Graph: g},
			Sender:    account,
			Recipient: account,
		}
		require.NoError(t, NestedBuildRequestValidate(req))

		req.Sender = common.Address{}
		require.ErrorIs(t, NestedBuildRequestValidate(req), apperrors.ErrInvalidArgument)
	})
}

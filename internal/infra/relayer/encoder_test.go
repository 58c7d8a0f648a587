package relayer

import (
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/fleshka4/vault-quoter/internal/callgraph"
	"github.com/fleshka4/vault-quoter/internal/path"
	"github.com/fleshka4/vault-quoter/internal/pool"
	"github.com/fleshka4/vault-quoter/internal/slippage"
	"github.com/fleshka4/vault-quoter/internal/swap"
	"github.com/fleshka4/vault-quoter/internal/token"
)

var (
	innerAddr = common.HexToAddress("0x1100000000000000000000000000000000000011")
	outerAddr = common.HexToAddress("0x2200000000000000000000000000000000000022")

	tokA     = token.New(1, common.HexToAddress("0xa100000000000000000000000000000000000001"), 18)
	tokB     = token.New(1, common.HexToAddress("0xb100000000000000000000000000000000000001"), 18)
	tokC     = token.New(1, common.HexToAddress("0xc100000000000000000000000000000000000001"), 18)
	innerBpt = token.New(1, innerAddr, 18)
	outerBpt = token.New(1, outerAddr, 18)

	user = common.HexToAddress("0x00000000000000000000000000000000000000aa")
)

func nestedState() callgraph.NestedPoolState {
	return callgraph.NestedPoolState{Pools: []callgraph.NestedPool{
		{ID: common.HexToHash("0x22"), Address: outerAddr, Type: callgraph.PoolTypeComposableStable, Tokens: []token.Token{tokC, outerBpt, innerBpt}},
		{ID: common.HexToHash("0x11"), Address: innerAddr, Type: callgraph.PoolTypeWeighted, Tokens: []token.Token{tokA, tokB}},
	}}
}

func newTestEncoder(t *testing.T) *Encoder {
	t.Helper()

	e, err := NewEncoder()
	require.NoError(t, err)
	return e
}

func unpackExit(t *testing.T, e *Encoder, data []byte) (exitPoolRequest, []outputReference, common.Address) {
	t.Helper()

	method := e.library.Methods["exitPool"]
	require.Equal(t, method.ID, data[:4])
	args, err := method.Inputs.Unpack(data[4:])
	require.NoError(t, err)

	req := *abi.ConvertType(args[4], new(exitPoolRequest)).(*exitPoolRequest)
	refs := *abi.ConvertType(args[5], new([]outputReference)).(*[]outputReference)
	return req, refs, args[3].(common.Address)
}

func TestEncodeExitGraph(t *testing.T) {
	t.Parallel()

	e := newTestEncoder(t)
	g, err := callgraph.BuildNestedExit(callgraph.ExitInput{BptAmountIn: token.MustAmount(outerBpt, big.NewInt(1_000))}, nestedState())
	require.NoError(t, err)
	extended, layout, err := callgraph.AppendPeeks(g, callgraph.LeafPeekRequests(g))
	require.NoError(t, err)

	recipient := common.HexToAddress("0xbb")
	calls, value, err := e.EncodeGraph(extended.Nodes(), Accounts{Sender: user, Recipient: recipient})
	require.NoError(t, err)
	require.Len(t, calls, extended.Len())
	require.Zero(t, value.Sign())

	outer, outerRefs, outerRecipient := unpackExit(t, e, calls[0])
	require.Equal(t, []common.Address{innerAddr, outerAddr, tokC.Address}, outer.Assets)
	require.Len(t, outer.MinAmountsOut, 3)
	for _, m := range outer.MinAmountsOut {
		require.Zero(t, m.Sign(), "quoting limits never bind")
	}
	require.Equal(t, user, outerRecipient, "intermediate shares stay with the sender")

	userData, err := e.exitAll.Unpack(outer.UserData)
	require.NoError(t, err)
	require.Equal(t, int64(composableExitExactBptInForAll), userData[0].(*big.Int).Int64())
	require.Equal(t, "1000", userData[1].(*big.Int).String())

	require.Len(t, outerRefs, 2)
	require.Equal(t, int64(0), outerRefs[0].Index.Int64())
	require.Equal(t, callgraph.ChainedReference(0, true).String(), outerRefs[0].Key.String())
	require.Equal(t, int64(2), outerRefs[1].Index.Int64())
	require.Equal(t, callgraph.ChainedReference(1, false).String(), outerRefs[1].Key.String(), "peeked slots are read-only")

	inner, _, innerRecipient := unpackExit(t, e, calls[1])
	require.Equal(t, recipient, innerRecipient)
	userData, err = e.exitAll.Unpack(inner.UserData)
	require.NoError(t, err)
	require.Equal(t, int64(weightedExitExactBptInForAll), userData[0].(*big.Int).Int64())
	require.Equal(t, callgraph.ChainedReference(0, true).String(), userData[1].(*big.Int).String())

	peek := e.library.Methods["peekChainedReferenceValue"]
	args, err := peek.Inputs.Unpack(calls[layout[0].Position][4:])
	require.NoError(t, err)
	require.Equal(t, callgraph.ChainedReference(layout[0].Slot, false).String(), args[0].(*big.Int).String())
}

func TestEncodeRebuiltExit(t *testing.T) {
	t.Parallel()

	e := newTestEncoder(t)
	g, err := callgraph.BuildNestedExit(callgraph.ExitInput{BptAmountIn: token.MustAmount(outerBpt, big.NewInt(1_000))}, nestedState())
	require.NoError(t, err)

	s, err := slippage.FromPercentage("1")
	require.NoError(t, err)
	resolved := callgraph.Resolved{
		{Slot: 1, Amount: token.MustAmount(tokC, big.NewInt(10_000))},
		{Slot: 2, Amount: token.MustAmount(tokA, big.NewInt(500))},
		{Slot: 3, Amount: token.MustAmount(tokB, big.NewInt(700))},
	}
	exec, err := callgraph.RebuildForExecution(g, resolved, s)
	require.NoError(t, err)

	calls, _, err := e.EncodeGraph(exec.Nodes, Accounts{Sender: user, Recipient: user})
	require.NoError(t, err)
	require.Len(t, calls, 2)

	outer, _, _ := unpackExit(t, e, calls[0])
	require.Equal(t, "0", outer.MinAmountsOut[0].String())
	require.Equal(t, "9900", outer.MinAmountsOut[2].String())

	inner, _, _ := unpackExit(t, e, calls[1])
	require.Equal(t, "495", inner.MinAmountsOut[0].String())
	require.Equal(t, "693", inner.MinAmountsOut[1].String())
}

func TestEncodeSingleTokenExit(t *testing.T) {
	t.Parallel()

	e := newTestEncoder(t)
	out := tokC
	g, err := callgraph.BuildNestedExit(callgraph.ExitInput{BptAmountIn: token.MustAmount(outerBpt, big.NewInt(1)), TokenOut: &out}, nestedState())
	require.NoError(t, err)

	calls, _, err := e.EncodeGraph(g.Nodes(), Accounts{Sender: user, Recipient: user})
	require.NoError(t, err)
	require.Len(t, calls, 1)

	req, _, _ := unpackExit(t, e, calls[0])
	userData, err := e.exitSingle.Unpack(req.UserData)
	require.NoError(t, err)
	require.Equal(t, int64(exitExactBptInForOneTokenOut), userData[0].(*big.Int).Int64())
	// tokC sits at 2 among the pool tokens and at 1 once the share is left out
	require.Equal(t, int64(1), userData[2].(*big.Int).Int64())
}

func TestEncodeJoinGraph(t *testing.T) {
	t.Parallel()

	e := newTestEncoder(t)
	eth := token.New(1, common.Address{}, 18)
	state := nestedState()
	state.Pools[1].Tokens = []token.Token{eth, tokB}

	g, err := callgraph.BuildNestedJoin(callgraph.JoinInput{
		Pool: outerAddr,
		AmountsIn: []token.Amount{
			token.MustAmount(eth, big.NewInt(100)),
			token.MustAmount(tokC, big.NewInt(50)),
		},
	}, state)
	require.NoError(t, err)

	calls, value, err := e.EncodeGraph(g.Nodes(), Accounts{Sender: user, Recipient: user})
	require.NoError(t, err)
	require.Len(t, calls, 2)
	require.Equal(t, "100", value.String())

	method := e.library.Methods["joinPool"]
	args, err := method.Inputs.Unpack(calls[1][4:])
	require.NoError(t, err)
	req := *abi.ConvertType(args[4], new(joinPoolRequest)).(*joinPoolRequest)
	require.Equal(t, token.MaxUint256.String(), req.MaxAmountsIn[0].String())
	require.Equal(t, "0", req.MaxAmountsIn[1].String())
	require.Equal(t, "50", req.MaxAmountsIn[2].String())
	require.Zero(t, args[5].(*big.Int).Sign())
	require.Equal(t, callgraph.ChainedReference(1, true).String(), args[6].(*big.Int).String())

	userData, err := e.joinIn.Unpack(req.UserData)
	require.NoError(t, err)
	amountsIn := userData[1].([]*big.Int)
	require.Len(t, amountsIn, 2, "share token is left out")
	require.Equal(t, callgraph.ChainedReference(0, true).String(), amountsIn[0].String())
	require.Equal(t, "50", amountsIn[1].String())
}

func TestQueryMulticallRoundTrip(t *testing.T) {
	t.Parallel()

	e := newTestEncoder(t)
	calls := [][]byte{{0x01, 0x02}, {0x03}}

	data, err := e.EncodeQueryMulticall(calls)
	require.NoError(t, err)
	require.Equal(t, e.relayer.Methods["vaultActionsQueryMulticall"].ID, data[:4])

	exec, err := e.EncodeMulticall(calls)
	require.NoError(t, err)
	require.Equal(t, e.relayer.Methods["multicall"].ID, exec[:4])

	ret, err := e.relayer.Methods["vaultActionsQueryMulticall"].Outputs.Pack(calls)
	require.NoError(t, err)
	results, err := e.DecodeQueryMulticall(ret)
	require.NoError(t, err)
	require.Equal(t, calls, results)

	_, err = e.DecodeQueryMulticall([]byte{0x01})
	require.Error(t, err)
}

func TestEncodeRelayerApproval(t *testing.T) {
	t.Parallel()

	e := newTestEncoder(t)
	relayer := common.HexToAddress("0x35Cea9e57A393ac66Aaa7E25C391D52C74B5648f")
	data, err := e.EncodeRelayerApproval(relayer, true, []byte{0xde, 0xad})
	require.NoError(t, err)

	method := e.library.Methods["setRelayerApproval"]
	args, err := method.Inputs.Unpack(data[4:])
	require.NoError(t, err)
	require.Equal(t, relayer, args[0].(common.Address))
	require.True(t, args[1].(bool))
	require.Equal(t, []byte{0xde, 0xad}, args[2].([]byte))
}

func TestEncodeBatchSwap(t *testing.T) {
	t.Parallel()

	e := newTestEncoder(t)
	e18 := new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
	p := pool.Pool{
		ID:       common.HexToHash("0x99"),
		Type:     pool.TypeFixedRate,
		Tokens:   []token.Token{tokA, tokB},
		Balances: []*big.Int{e18, e18},
		Rates:    []*big.Int{e18, e18},
	}
	pth, err := path.NewPath([]token.Token{tokA, tokB}, []path.Hop{p})
	require.NoError(t, err)
	ap, err := path.NewAmountedPath(pth, token.MustAmount(tokA, big.NewInt(1_000)))
	require.NoError(t, err)
	sw, err := path.NewSwap([]path.AmountedPath{ap})
	require.NoError(t, err)

	s, err := slippage.FromPercentage("1")
	require.NoError(t, err)
	built, err := swap.Build(sw, swap.BuildInput{Slippage: s, Deadline: time.Unix(2_000_000_000, 0), Sender: user, Recipient: user})
	require.NoError(t, err)

	data, err := e.EncodeBatchSwap(built.BatchSwap)
	require.NoError(t, err)

	method := e.vault.Methods["batchSwap"]
	args, err := method.Inputs.Unpack(data[4:])
	require.NoError(t, err)
	require.Equal(t, uint8(swap.KindGivenIn), args[0].(uint8))
	limits := args[4].([]*big.Int)
	require.Equal(t, "1000", limits[0].String())
	require.Equal(t, "-990", limits[1].String())
	require.Equal(t, int64(2_000_000_000), args[5].(*big.Int).Int64())
}

// Package relayer encodes call graphs into batch relayer calldata and
// simulates them against a node.
package relayer

import (
	"math/big"
	"slices"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/fleshka4/vault-quoter/internal/apperrors"
	"github.com/fleshka4/vault-quoter/internal/callgraph"
	"github.com/fleshka4/vault-quoter/internal/swap"
	"github.com/fleshka4/vault-quoter/internal/token"
)

// Relayer library PoolKind enum.
const (
	poolKindWeighted         uint8 = 0
	poolKindComposableStable uint8 = 3
)

// Exit and join userData kinds.
const (
	exitExactBptInForOneTokenOut   = 0
	weightedExitExactBptInForAll   = 1
	composableExitExactBptInForAll = 2
	joinExactTokensInForBptOut     = 1
)

// Accounts are the identities a graph is executed for.
type Accounts struct {
	Sender    common.Address
	Recipient common.Address
}

type exitPoolRequest struct {
	Assets            []common.Address
	MinAmountsOut     []*big.Int
	UserData          []byte
	ToInternalBalance bool
}

type joinPoolRequest struct {
	Assets              []common.Address
	MaxAmountsIn        []*big.Int
	UserData            []byte
	FromInternalBalance bool
}

type outputReference struct {
	Index *big.Int
	Key   *big.Int
}

type batchSwapStep struct {
	PoolId        [32]byte
	AssetInIndex  *big.Int
	AssetOutIndex *big.Int
	Amount        *big.Int
	UserData      []byte
}

type fundManagement struct {
	Sender              common.Address
	FromInternalBalance bool
	Recipient           common.Address
	ToInternalBalance   bool
}

// Encoder packs relayer library, relayer and vault calls. It only holds
// parsed ABIs and is safe for concurrent use.
type Encoder struct {
	library abi.ABI
	relayer abi.ABI
	vault   abi.ABI

	exitAll    abi.Arguments
	exitSingle abi.Arguments
	joinIn     abi.Arguments
}

// NewEncoder parses the contract ABIs.
func NewEncoder() (*Encoder, error) {
	library, err := abi.JSON(strings.NewReader(libraryABIJSON))
	if err != nil {
		return nil, errors.Wrap(err, "abi.JSON")
	}
	relayer, err := abi.JSON(strings.NewReader(relayerABIJSON))
	if err != nil {
		return nil, errors.Wrap(err, "abi.JSON")
	}
	vault, err := abi.JSON(strings.NewReader(vaultABIJSON))
	if err != nil {
		return nil, errors.Wrap(err, "abi.JSON")
	}

	uint256Ty, err := abi.NewType("uint256", "", nil)
	if err != nil {
		return nil, errors.Wrap(err, "abi.NewType")
	}
	uint256ArrTy, err := abi.NewType("uint256[]", "", nil)
	if err != nil {
		return nil, errors.Wrap(err, "abi.NewType")
	}

	return &Encoder{
		library: library,
		relayer: relayer,
		vault:   vault,

		exitAll:    abi.Arguments{{Type: uint256Ty}, {Type: uint256Ty}},
		exitSingle: abi.Arguments{{Type: uint256Ty}, {Type: uint256Ty}, {Type: uint256Ty}},
		joinIn:     abi.Arguments{{Type: uint256Ty}, {Type: uint256ArrTy}, {Type: uint256Ty}},
	}, nil
}

// EncodeGraph encodes one relayer library call per node, so a node's result
// lands at the node's index of the multicall results. It also returns the
// native value the calls need.
func (e *Encoder) EncodeGraph(nodes []callgraph.Node, acc Accounts) ([][]byte, *big.Int, error) {
	refs := newReferences(nodes)
	calls := make([][]byte, 0, len(nodes))
	value := new(big.Int)

	for i, n := range nodes {
		var (
			data []byte
			v    *big.Int
			err  error
		)
		switch n.Action {
		case callgraph.ActionExit:
			data, err = e.encodeExit(n, refs, accountsFor(nodes, i, acc))
		case callgraph.ActionJoin:
			data, v, err = e.encodeJoin(n, refs, accountsFor(nodes, i, acc))
			if v != nil {
				value.Add(value, v)
			}
		case callgraph.ActionPeek:
			if len(n.Inputs) != 1 {
				return nil, nil, errors.Wrap(apperrors.ErrMalformedGraph, "peek must read exactly one slot")
			}
			data, err = e.library.Pack("peekChainedReferenceValue", refs.key(n.Inputs[0].Amount.Slot()))
		default:
			err = errors.Wrapf(apperrors.ErrUnsupportedOperation, "action %q", n.Action)
		}
		if err != nil {
			return nil, nil, err
		}
		calls = append(calls, data)
	}
	return calls, value, nil
}

// accountsFor sends intermediate outputs back to the sender so later nodes can
// pull them.
func accountsFor(nodes []callgraph.Node, i int, acc Accounts) Accounts {
	for _, out := range nodes[i].Outputs {
		for _, later := range nodes[i+1:] {
			if later.Action != callgraph.ActionPeek && lo.Contains(later.Consumes(), out.Slot) {
				return Accounts{Sender: acc.Sender, Recipient: acc.Sender}
			}
		}
	}
	return acc
}

func poolKind(t callgraph.PoolType) (uint8, error) {
	switch t {
	case callgraph.PoolTypeWeighted:
		return poolKindWeighted, nil
	case callgraph.PoolTypeComposableStable:
		return poolKindComposableStable, nil
	default:
		return 0, errors.Wrapf(apperrors.ErrUnsupportedOperation, "pool type %q", t)
	}
}

// bptIndex is the position of the pool's own share in its tokens, or -1.
func bptIndex(n callgraph.Node) int {
	return slices.IndexFunc(n.Tokens, func(t token.Token) bool { return t.Address == n.PoolAddress })
}

func (e *Encoder) encodeExit(n callgraph.Node, refs references, acc Accounts) ([]byte, error) {
	kind, err := poolKind(n.PoolType)
	if err != nil {
		return nil, err
	}
	if len(n.Inputs) != 1 {
		return nil, errors.Wrap(apperrors.ErrMalformedGraph, "exit consumes exactly one amount")
	}
	bptIn := refs.amount(n.Inputs[0].Amount)

	var userData []byte
	if n.Kind == callgraph.KindSingleToken {
		idx := n.TokenOutIndex
		if b := bptIndex(n); kind == poolKindComposableStable && b >= 0 && b < idx {
			idx--
		}
		userData, err = e.exitSingle.Pack(big.NewInt(exitExactBptInForOneTokenOut), bptIn, big.NewInt(int64(idx)))
	} else {
		exitKind := int64(weightedExitExactBptInForAll)
		if kind == poolKindComposableStable {
			exitKind = composableExitExactBptInForAll
		}
		userData, err = e.exitAll.Pack(big.NewInt(exitKind), bptIn)
	}
	if err != nil {
		return nil, errors.Wrap(err, "userData.Pack")
	}

	minAmountsOut := zeros(len(n.Tokens))
	for _, l := range n.Limits {
		if idx := token.Index(n.Tokens, l.Token); idx >= 0 && l.Side == callgraph.SideReceive {
			minAmountsOut[idx] = refs.limit(l)
		}
	}

	outputs := lo.Map(n.Outputs, func(o callgraph.Output, _ int) outputReference {
		return outputReference{Index: big.NewInt(int64(o.Index)), Key: refs.key(o.Slot)}
	})

	data, err := e.library.Pack(
		"exitPool",
		[32]byte(n.PoolID),
		kind,
		acc.Sender,
		acc.Recipient,
		exitPoolRequest{
			Assets:        addresses(n.Tokens),
			MinAmountsOut: minAmountsOut,
			UserData:      userData,
		},
		outputs,
	)
	if err != nil {
		return nil, errors.Wrap(err, "e.library.Pack")
	}
	return data, nil
}

func (e *Encoder) encodeJoin(n callgraph.Node, refs references, acc Accounts) ([]byte, *big.Int, error) {
	kind, err := poolKind(n.PoolType)
	if err != nil {
		return nil, nil, err
	}
	if len(n.Outputs) != 1 {
		return nil, nil, errors.Wrap(apperrors.ErrMalformedGraph, "join produces exactly one amount")
	}

	amountsIn := zeros(len(n.Tokens))
	value := new(big.Int)
	for _, in := range n.Inputs {
		idx := token.Index(n.Tokens, in.Token)
		if idx < 0 {
			return nil, nil, errors.Wrapf(apperrors.ErrMalformedGraph, "join input %s is not a pool token", in.Token)
		}
		amountsIn[idx] = refs.amount(in.Amount)
		if in.Token.IsNative() && in.Amount.IsLiteral() {
			value.Add(value, in.Amount.Value())
		}
	}

	maxAmountsIn := zeros(len(n.Tokens))
	minBptOut := new(big.Int)
	for _, l := range n.Limits {
		switch {
		case l.Side == callgraph.SidePay:
			if idx := token.Index(n.Tokens, l.Token); idx >= 0 {
				maxAmountsIn[idx] = refs.limit(l)
			}
		case l.Token.Equal(n.Outputs[0].Token):
			minBptOut = refs.limit(l)
		}
	}

	userAmounts := amountsIn
	if b := bptIndex(n); b >= 0 {
		userAmounts = slices.Delete(slices.Clone(amountsIn), b, b+1)
	}
	userData, err := e.joinIn.Pack(big.NewInt(joinExactTokensInForBptOut), userAmounts, minBptOut)
	if err != nil {
		return nil, nil, errors.Wrap(err, "userData.Pack")
	}

	data, err := e.library.Pack(
		"joinPool",
		[32]byte(n.PoolID),
		kind,
		acc.Sender,
		acc.Recipient,
		joinPoolRequest{
			Assets:       addresses(n.Tokens),
			MaxAmountsIn: maxAmountsIn,
			UserData:     userData,
		},
		value,
		refs.key(n.Outputs[0].Slot),
	)
	if err != nil {
		return nil, nil, errors.Wrap(err, "e.library.Pack")
	}
	return data, value, nil
}

// EncodeQueryMulticall wraps calls for a static simulation.
func (e *Encoder) EncodeQueryMulticall(calls [][]byte) ([]byte, error) {
	data, err := e.relayer.Pack("vaultActionsQueryMulticall", calls)
	if err != nil {
		return nil, errors.Wrap(err, "e.relayer.Pack")
	}
	return data, nil
}

// EncodeMulticall wraps calls for execution.
func (e *Encoder) EncodeMulticall(calls [][]byte) ([]byte, error) {
	data, err := e.relayer.Pack("multicall", calls)
	if err != nil {
		return nil, errors.Wrap(err, "e.relayer.Pack")
	}
	return data, nil
}

// DecodeQueryMulticall returns the per call results of a query multicall.
func (e *Encoder) DecodeQueryMulticall(data []byte) ([][]byte, error) {
	out, err := e.relayer.Unpack("vaultActionsQueryMulticall", data)
	if err != nil {
		return nil, errors.Wrap(apperrors.ErrSimulationFailed, err.Error())
	}
	if len(out) != 1 {
		return nil, errors.Wrapf(apperrors.ErrSimulationFailed, "expected 1 output, got %d", len(out))
	}
	results, ok := out[0].([][]byte)
	if !ok {
		return nil, errors.Wrap(apperrors.ErrSimulationFailed, "results are not bytes[]")
	}
	return results, nil
}

// EncodeRelayerApproval encodes the library call approving relayer with the
// user's signature.
func (e *Encoder) EncodeRelayerApproval(relayer common.Address, approved bool, signature []byte) ([]byte, error) {
	data, err := e.library.Pack("setRelayerApproval", relayer, approved, signature)
	if err != nil {
		return nil, errors.Wrap(err, "e.library.Pack")
	}
	return data, nil
}

// EncodeBatchSwap encodes vault.batchSwap.
func (e *Encoder) EncodeBatchSwap(bs swap.BatchSwap) ([]byte, error) {
	steps := lo.Map(bs.Steps, func(s swap.Step, _ int) batchSwapStep {
		return batchSwapStep{
			PoolId:        [32]byte(s.PoolID),
			AssetInIndex:  s.AssetInIndex,
			AssetOutIndex: s.AssetOutIndex,
			Amount:        s.Amount,
			UserData:      s.UserData,
		}
	})

	data, err := e.vault.Pack(
		"batchSwap",
		uint8(bs.Kind),
		steps,
		bs.Assets,
		fundManagement{
			Sender:              bs.Funds.Sender,
			FromInternalBalance: bs.Funds.FromInternalBalance,
			Recipient:           bs.Funds.Recipient,
			ToInternalBalance:   bs.Funds.ToInternalBalance,
		},
		bs.Limits,
		bs.Deadline,
	)
	if err != nil {
		return nil, errors.Wrap(err, "e.vault.Pack")
	}
	return data, nil
}

// references maps slots to chained reference keys. Slots read by a peek are
// kept read-only so a consuming node does not clear them first.
type references struct {
	peeked map[callgraph.SlotKey]bool
}

func newReferences(nodes []callgraph.Node) references {
	r := references{peeked: make(map[callgraph.SlotKey]bool)}
	for _, n := range nodes {
		if n.Action == callgraph.ActionPeek {
			for _, s := range n.Consumes() {
				r.peeked[s] = true
			}
		}
	}
	return r
}

func (r references) key(slot callgraph.SlotKey) *big.Int {
	return callgraph.ChainedReference(slot, !r.peeked[slot])
}

func (r references) amount(d callgraph.AmountDescriptor) *big.Int {
	if d.IsReference() {
		return r.key(d.Slot())
	}
	return d.Value()
}

// limit encodes a bound. Reference bounds only exist while quoting and never
// bind.
func (r references) limit(l callgraph.Limit) *big.Int {
	if l.Bound.IsLiteral() {
		return l.Bound.Value()
	}
	if l.Side == callgraph.SidePay {
		return new(big.Int).Set(token.MaxUint256)
	}
	return new(big.Int)
}

func zeros(n int) []*big.Int {
	return lo.Times(n, func(int) *big.Int { return new(big.Int) })
}

func addresses(tokens []token.Token) []common.Address {
	return lo.Map(tokens, func(t token.Token, _ int) common.Address { return t.Address })
}

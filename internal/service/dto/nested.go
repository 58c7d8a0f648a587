package dto

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/fleshka4/vault-quoter/internal/callgraph"
	"github.com/fleshka4/vault-quoter/internal/slippage"
	"github.com/fleshka4/vault-quoter/internal/token"
)

// NestedExitQuoteRequest represents a request to quote burning BptAmountIn
// through every nested pool below it.
type NestedExitQuoteRequest struct {
	ChainID     uint64
	Account     common.Address
	State       callgraph.NestedPoolState
	BptAmountIn token.Amount
	// TokenOut, when set, exits to this single token only.
	TokenOut *token.Token
	// Observe lists intermediate tokens whose amounts are reported too.
	Observe []token.Token
}

// NestedJoinQuoteRequest represents a request to quote depositing AmountsIn
// into the hierarchy rooted at Pool.
type NestedJoinQuoteRequest struct {
	ChainID   uint64
	Account   common.Address
	State     callgraph.NestedPoolState
	Pool      common.Address
	AmountsIn []token.Amount
	Observe   []token.Token
}

// NestedQuote is a simulated call graph. It is the input of a nested build.
type NestedQuote struct {
	ChainID  uint64               `json:"chainId"`
	Account  common.Address       `json:"account"`
	Graph    *callgraph.CallGraph `json:"graph"`
	Layout   callgraph.PeekLayout `json:"layout"`
	Resolved callgraph.Resolved   `json:"resolved"`
	// Totals sums resolved amounts per token.
	Totals []token.Amount `json:"totals"`
}

// NestedBuildRequest represents a request to build the relayer call executing
// a nested quote.
type NestedBuildRequest struct {
	Quote     NestedQuote
	Slippage  slippage.Slippage
	Sender    common.Address
	Recipient common.Address
	// RelayerApproval is the sender's signature approving the relayer. When
	// present the approval runs before the graph.
	RelayerApproval []byte
	DryRun          bool
}

// NestedCall is a ready to send relayer.multicall transaction.
type NestedCall struct {
	To       common.Address    `json:"to"`
	CallData hexutil.Bytes     `json:"callData"`
	Value    string            `json:"value"`
	Bounds   []callgraph.Bound `json:"bounds"`
}

package dto

import (
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/fleshka4/vault-quoter/internal/callgraph"
	"github.com/fleshka4/vault-quoter/internal/pool"
	"github.com/fleshka4/vault-quoter/internal/service/dto"
	"github.com/fleshka4/vault-quoter/internal/token"
)

// PathRequest is one path of a /swap/quote body.
type PathRequest struct {
	Tokens []token.Token `json:"tokens"`
	Pools  []pool.Pool   `json:"pools"`
	Amount *token.Amount `json:"amount"`
}

// SwapQuoteRequest represents the body of /swap/quote.
type SwapQuoteRequest struct {
	ChainID uint64        `json:"chainId"`
	Paths   []PathRequest `json:"paths"`
}

// SwapBuildRequest represents the body of /swap/build. Slippage is a
// percentage, "0.5" meaning half a percent. Deadline is a unix timestamp.
type SwapBuildRequest struct {
	Quote     SwapQuoteRequest `json:"quote"`
	Slippage  string           `json:"slippage"`
	Deadline  int64            `json:"deadline"`
	Sender    string           `json:"sender"`
	Recipient string           `json:"recipient"`
	DryRun    bool             `json:"dryRun"`
}

// NestedExitQuoteRequest represents the body of /nested/exit/quote.
type NestedExitQuoteRequest struct {
	ChainID     uint64                    `json:"chainId"`
	Account     string                    `json:"account"`
	State       callgraph.NestedPoolState `json:"state"`
	BptAmountIn *token.Amount             `json:"bptAmountIn"`
	TokenOut    *token.Token              `json:"tokenOut,omitempty"`
	Observe     []token.Token             `json:"observe,omitempty"`
}

// NestedJoinQuoteRequest represents the body of /nested/join/quote.
type NestedJoinQuoteRequest struct {
	ChainID   uint64                    `json:"chainId"`
	Account   string                    `json:"account"`
	State     callgraph.NestedPoolState `json:"state"`
	Pool      string                    `json:"pool"`
	AmountsIn []token.Amount            `json:"amountsIn"`
	Observe   []token.Token             `json:"observe,omitempty"`
}

// NestedBuildRequest represents the body of /nested/build. Quote is the
// response of a nested quote endpoint, passed back unchanged.
type NestedBuildRequest struct {
	Quote           *dto.NestedQuote `json:"quote"`
	Slippage        string           `json:"slippage"`
	Sender          string           `json:"sender"`
	Recipient       string           `json:"recipient"`
	RelayerApproval hexutil.Bytes    `json:"relayerApproval,omitempty"`
	DryRun          bool             `json:"dryRun"`
}

// ErrorResponse is written for every failed request.
type ErrorResponse struct {
	Kind  string `json:"kind"`
	Error string `json:"error"`
}

package dto

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/fleshka4/vault-quoter/internal/path"
	"github.com/fleshka4/vault-quoter/internal/pool"
	"github.com/fleshka4/vault-quoter/internal/slippage"
	"github.com/fleshka4/vault-quoter/internal/token"
)

// PathRequest is one route through caller supplied pool states. Pools[i]
// swaps Tokens[i] for Tokens[i+1]. Amount is the exact input when its token
// starts the path and the exact output when it ends it.
type PathRequest struct {
	Tokens []token.Token
	Pools  []pool.Pool
	Amount token.Amount
}

// SwapQuoteRequest represents a request to quote a swap split over one or
// more paths.
type SwapQuoteRequest struct {
	ChainID uint64
	Paths   []PathRequest
}

// PathQuote lists the amount of every token along one path.
type PathQuote struct {
	Tokens  []token.Token  `json:"tokens"`
	Amounts []token.Amount `json:"amounts"`
}

// SwapQuote is the result of quoting a swap.
type SwapQuote struct {
	ChainID   uint64         `json:"chainId"`
	Direction path.Direction `json:"direction"`
	Input     token.Amount   `json:"input"`
	Output    token.Amount   `json:"output"`
	Paths     []PathQuote    `json:"paths"`
}

// SwapBuildRequest represents a request to build the vault call executing a
// quoted swap.
type SwapBuildRequest struct {
	Quote     SwapQuoteRequest
	Slippage  slippage.Slippage
	Deadline  time.Time
	Sender    common.Address
	Recipient common.Address
	// DryRun simulates the built call from Sender before returning it.
	DryRun bool
}

// SwapCall is a ready to send vault.batchSwap transaction.
type SwapCall struct {
	To       common.Address `json:"to"`
	CallData hexutil.Bytes  `json:"callData"`
	Value    string         `json:"value"`
	// Limit is the minimum amount out for exact input swaps and the maximum
	// amount in for exact output swaps.
	Limit    token.Amount `json:"limit"`
	Deadline int64        `json:"deadline"`
	Quote    SwapQuote    `json:"quote"`
}

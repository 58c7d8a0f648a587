package token

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/ethereum/go-ethereum/common"
)

// Token is a chain scoped ERC20 identity.
type Token struct {
	ChainID  uint64         `json:"chainId"`
	Address  common.Address `json:"address"`
	Decimals uint8          `json:"decimals"`
}

// New creates a Token.
func New(chainID uint64, address common.Address, decimals uint8) Token {
	return Token{ChainID: chainID, Address: address, Decimals: decimals}
}

// Equal reports whether t and other are the same token: same chain, same address.
func (t Token) Equal(other Token) bool {
	return t.ChainID == other.ChainID && t.Address == other.Address
}

// IsNative reports whether t is the chain's native asset, addressed as zero.
func (t Token) IsNative() bool {
	return t.Address == (common.Address{})
}

func (t Token) String() string {
	return fmt.Sprintf("%d:%s", t.ChainID, t.Address.Hex())
}

// Sorted returns a copy of tokens ordered by address, the order vault pools
// register their assets in.
func Sorted(tokens []Token) []Token {
	out := slices.Clone(tokens)
	slices.SortFunc(out, func(a, b Token) int {
		return bytes.Compare(a.Address.Bytes(), b.Address.Bytes())
	})
	return out
}

// Index returns the position of tok in tokens, or -1.
func Index(tokens []Token, tok Token) int {
	return slices.IndexFunc(tokens, tok.Equal)
}

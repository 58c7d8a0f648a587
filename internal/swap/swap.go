// Package swap turns a quoted multi-path swap into vault batchSwap arguments
// bounded by the caller's slippage tolerance.
package swap

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/fleshka4/vault-quoter/internal/apperrors"
	"github.com/fleshka4/vault-quoter/internal/path"
	"github.com/fleshka4/vault-quoter/internal/slippage"
	"github.com/fleshka4/vault-quoter/internal/token"
)

// Kind is the vault SwapKind enum.
type Kind uint8

const (
	KindGivenIn  Kind = 0
	KindGivenOut Kind = 1
)

// Step mirrors the vault BatchSwapStep struct.
type Step struct {
	PoolID        common.Hash
	AssetInIndex  *big.Int
	AssetOutIndex *big.Int
	Amount        *big.Int
	UserData      []byte
}

// Funds mirrors the vault FundManagement struct.
type Funds struct {
	Sender              common.Address
	FromInternalBalance bool
	Recipient           common.Address
	ToInternalBalance   bool
}

// BatchSwap holds every argument of vault.batchSwap plus the native value to
// attach.
type BatchSwap struct {
	Kind     Kind
	Steps    []Step
	Assets   []common.Address
	Funds    Funds
	Limits   []*big.Int
	Deadline *big.Int
	Value    *big.Int
}

// BuildInput carries the caller side of the build.
type BuildInput struct {
	Slippage  slippage.Slippage
	Deadline  time.Time
	Sender    common.Address
	Recipient common.Address
}

// Built is a batch swap together with the bound it enforces.
type Built struct {
	BatchSwap BatchSwap
	// Bound is the minimum amount out for GivenIn swaps and the maximum amount
	// in for GivenOut swaps.
	Bound token.Amount
}

// Build lays out steps and limits for s.
func Build(s path.Swap, in BuildInput) (Built, error) {
	paths := s.Paths()
	if len(paths) == 0 {
		return Built{}, errors.Wrap(apperrors.ErrInvalidArgument, "empty swap")
	}
	if in.Deadline.IsZero() {
		return Built{}, errors.Wrap(apperrors.ErrInvalidArgument, "deadline is required")
	}

	assets := lo.UniqBy(
		lo.FlatMap(paths, func(p path.AmountedPath, _ int) []token.Token { return p.Path().Tokens() }),
		func(t token.Token) common.Address { return t.Address },
	)
	index := func(t token.Token) *big.Int {
		return big.NewInt(int64(token.Index(assets, t)))
	}

	kind := KindGivenIn
	if s.Direction() == path.GivenOut {
		kind = KindGivenOut
	}

	var steps []Step
	for _, p := range paths {
		steps = append(steps, pathSteps(p, kind, index)...)
	}

	limits := lo.Map(assets, func(_ token.Token, _ int) *big.Int { return new(big.Int) })
	inIdx, outIdx := token.Index(assets, s.TokenIn()), token.Index(assets, s.TokenOut())

	var bound token.Amount
	var err error
	if kind == KindGivenIn {
		bound, err = token.NewAmount(s.TokenOut(), in.Slippage.RemoveFrom(s.OutputAmount().Raw()))
		limits[inIdx] = s.InputAmount().Raw()
		limits[outIdx] = new(big.Int).Neg(bound.Raw())
	} else {
		bound, err = token.NewAmount(s.TokenIn(), in.Slippage.ApplyTo(s.InputAmount().Raw()))
		limits[inIdx] = bound.Raw()
		limits[outIdx] = new(big.Int).Neg(s.OutputAmount().Raw())
	}
	if err != nil {
		return Built{}, errors.Wrap(err, "token.NewAmount")
	}

	value := new(big.Int)
	if s.TokenIn().IsNative() {
		value.Set(limits[inIdx])
	}

	return Built{
		BatchSwap: BatchSwap{
			Kind:   kind,
			Steps:  steps,
			Assets: lo.Map(assets, func(t token.Token, _ int) common.Address { return t.Address }),
			Funds: Funds{
				Sender:    in.Sender,
				Recipient: in.Recipient,
			},
			Limits:   limits,
			Deadline: big.NewInt(in.Deadline.Unix()),
			Value:    value,
		},
		Bound: bound,
	}, nil
}

// pathSteps emits one step per hop. GivenIn steps run forward, GivenOut steps
// run from the last hop back. Only the first step of a path carries an amount,
// the others consume the previous step's result.
func pathSteps(p path.AmountedPath, kind Kind, index func(token.Token) *big.Int) []Step {
	tokens := p.Path().Tokens()
	hops := p.Path().Hops()
	steps := make([]Step, 0, len(hops))

	for i := range hops {
		h := i
		if kind == KindGivenOut {
			h = len(hops) - 1 - i
		}
		amount := new(big.Int)
		if i == 0 {
			if kind == KindGivenIn {
				amount = p.InputAmount().Raw()
			} else {
				amount = p.OutputAmount().Raw()
			}
		}
		steps = append(steps, Step{
			PoolID:        hops[h].PoolID(),
			AssetInIndex:  index(tokens[h]),
			AssetOutIndex: index(tokens[h+1]),
			Amount:        amount,
			UserData:      []byte{},
		})
	}
	return steps
}

package path

import (
	"slices"

	"github.com/pkg/errors"

	"github.com/fleshka4/vault-quoter/internal/apperrors"
	"github.com/fleshka4/vault-quoter/internal/token"
)

// Direction says which side of the swap is fixed.
type Direction string

const (
	GivenIn  Direction = "GIVEN_IN"
	GivenOut Direction = "GIVEN_OUT"
)

// AmountedPath is a Path bound to one swap amount. Every per-token amount is
// computed on construction.
type AmountedPath struct {
	path      Path
	direction Direction
	amounts   []token.Amount
}

// NewAmountedPath derives the direction from the token of amount and composes
// the hops. Any hop failure is reported as ErrPathExceedsLimit, except a hop
// whose pool type has no exchange function.
func NewAmountedPath(p Path, amount token.Amount) (AmountedPath, error) {
	if len(p.tokens) < 2 {
		return AmountedPath{}, errors.Wrap(apperrors.ErrInvalidArgument, "empty path")
	}

	var dir Direction
	switch {
	case amount.Token.Equal(p.TokenIn()):
		dir = GivenIn
	case amount.Token.Equal(p.TokenOut()):
		dir = GivenOut
	default:
		return AmountedPath{}, errors.Wrapf(apperrors.ErrTokenMismatch, "amount in %s is neither %s nor %s", amount.Token, p.TokenIn(), p.TokenOut())
	}

	amounts, err := compose(p, amount, dir)
	if err != nil {
		return AmountedPath{}, err
	}
	return AmountedPath{path: p, direction: dir, amounts: amounts}, nil
}

func compose(p Path, amount token.Amount, dir Direction) ([]token.Amount, error) {
	n := len(p.tokens)
	amounts := make([]token.Amount, n)

	if dir == GivenIn {
		amounts[0] = amount
		for i := 0; i < n-1; i++ {
			out, err := p.hops[i].SwapGivenIn(p.tokens[i], p.tokens[i+1], amounts[i])
			if err != nil {
				return nil, hopError(err)
			}
			amounts[i+1] = out
		}
		return amounts, nil
	}

	amounts[n-1] = amount
	for i := n - 2; i >= 0; i-- {
		in, err := p.hops[i].SwapGivenOut(p.tokens[i], p.tokens[i+1], amounts[i+1])
		if err != nil {
			return nil, hopError(err)
		}
		amounts[i] = in
	}
	return amounts, nil
}

func hopError(err error) error {
	if errors.Is(err, apperrors.ErrUnsupportedOperation) {
		return err
	}
	return errors.Wrap(apperrors.ErrPathExceedsLimit, "path cannot carry the requested amount")
}

func (a AmountedPath) Path() Path {
	return a.path
}

func (a AmountedPath) Direction() Direction {
	return a.direction
}

// Amounts returns the amount of every token of the path, T[0] first.
func (a AmountedPath) Amounts() []token.Amount {
	return slices.Clone(a.amounts)
}

func (a AmountedPath) InputAmount() token.Amount {
	return a.amounts[0]
}

func (a AmountedPath) OutputAmount() token.Amount {
	return a.amounts[len(a.amounts)-1]
}

// Swap aggregates amounted paths sharing the same first and last token and the
// same direction.
type Swap struct {
	paths  []AmountedPath
	input  token.Amount
	output token.Amount
}

// NewSwap checks the paths agree and sums their amounts.
func NewSwap(paths []AmountedPath) (Swap, error) {
	if len(paths) == 0 {
		return Swap{}, errors.Wrap(apperrors.ErrInvalidArgument, "swap needs at least one path")
	}
	first := paths[0]
	for _, p := range paths[1:] {
		if !p.path.TokenIn().Equal(first.path.TokenIn()) || !p.path.TokenOut().Equal(first.path.TokenOut()) {
			return Swap{}, errors.Wrap(apperrors.ErrTokenMismatch, "paths do not share start and end tokens")
		}
		if p.direction != first.direction {
			return Swap{}, errors.Wrap(apperrors.ErrInvalidArgument, "paths mix swap directions")
		}
	}

	inputs := make([]token.Amount, 0, len(paths))
	outputs := make([]token.Amount, 0, len(paths))
	for _, p := range paths {
		inputs = append(inputs, p.InputAmount())
		outputs = append(outputs, p.OutputAmount())
	}
	input, err := token.Sum(inputs)
	if err != nil {
		return Swap{}, err
	}
	output, err := token.Sum(outputs)
	if err != nil {
		return Swap{}, err
	}
	return Swap{paths: slices.Clone(paths), input: input, output: output}, nil
}

func (s Swap) Paths() []AmountedPath {
	return slices.Clone(s.paths)
}

func (s Swap) Direction() Direction {
	return s.paths[0].direction
}

func (s Swap) TokenIn() token.Token {
	return s.input.Token
}

func (s Swap) TokenOut() token.Token {
	return s.output.Token
}

// InputAmount is the sum of the path inputs.
func (s Swap) InputAmount() token.Amount {
	return s.input
}

// OutputAmount is the sum of the path outputs.
func (s Swap) OutputAmount() token.Amount {
	return s.output
}

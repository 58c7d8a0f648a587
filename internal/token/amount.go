package token

import (
	"encoding/json"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/fleshka4/vault-quoter/internal/apperrors"
)

// MaxUint256 is the largest raw amount representable on chain.
var MaxUint256 = uint256.MustFromHex("0xffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff").ToBig()

// Amount is a raw integer quantity of a token, scaled by the token decimals.
// The raw value is never negative and always fits in uint256.
type Amount struct {
	Token Token
	raw   *big.Int
}

// NewAmount creates an Amount, copying raw.
func NewAmount(tok Token, raw *big.Int) (Amount, error) {
	if raw == nil {
		return Amount{}, errors.Wrap(apperrors.ErrInvalidArgument, "nil amount")
	}
	if raw.Sign() < 0 {
		return Amount{}, errors.Wrapf(apperrors.ErrInvalidArgument, "negative amount %s", raw.String())
	}
	if _, overflow := uint256.FromBig(raw); overflow {
		return Amount{}, errors.Wrapf(apperrors.ErrInvalidArgument, "amount %s overflows uint256", raw.String())
	}
	return Amount{Token: tok, raw: new(big.Int).Set(raw)}, nil
}

// MustAmount is NewAmount for values known to be valid.
func MustAmount(tok Token, raw *big.Int) Amount {
	a, err := NewAmount(tok, raw)
	if err != nil {
		panic(err)
	}
	return a
}

// Zero returns a zero amount of tok.
func Zero(tok Token) Amount {
	return Amount{Token: tok, raw: new(big.Int)}
}

// Raw returns a copy of the raw value.
func (a Amount) Raw() *big.Int {
	if a.raw == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(a.raw)
}

// IsZero reports whether the raw value is zero.
func (a Amount) IsZero() bool {
	return a.raw == nil || a.raw.Sign() == 0
}

// Add returns a + b.
func (a Amount) Add(b Amount) (Amount, error) {
	if !a.Token.Equal(b.Token) {
		return Amount{}, errors.Wrapf(apperrors.ErrTokenMismatch, "add %s to %s", b.Token, a.Token)
	}
	return NewAmount(a.Token, new(big.Int).Add(a.Raw(), b.Raw()))
}

// Sub returns a - b. The result must not be negative.
func (a Amount) Sub(b Amount) (Amount, error) {
	if !a.Token.Equal(b.Token) {
		return Amount{}, errors.Wrapf(apperrors.ErrTokenMismatch, "sub %s from %s", b.Token, a.Token)
	}
	return NewAmount(a.Token, new(big.Int).Sub(a.Raw(), b.Raw()))
}

// Cmp compares a and b like big.Int.Cmp.
func (a Amount) Cmp(b Amount) (int, error) {
	if !a.Token.Equal(b.Token) {
		return 0, errors.Wrapf(apperrors.ErrTokenMismatch, "compare %s with %s", a.Token, b.Token)
	}
	return a.Raw().Cmp(b.Raw()), nil
}

// Decimal returns the human readable value, raw / 10^decimals.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.NewFromBigInt(a.Raw(), -int32(a.Token.Decimals))
}

func (a Amount) String() string {
	return a.Raw().String()
}

type amountJSON struct {
	Token   Token  `json:"token"`
	Amount  string `json:"amount"`
	Decimal string `json:"decimal,omitempty"`
}

// MarshalJSON encodes the raw value as a base 10 string.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(amountJSON{
		Token:   a.Token,
		Amount:  a.String(),
		Decimal: a.Decimal().String(),
	})
}

// UnmarshalJSON decodes an amount written by MarshalJSON.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var v amountJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return errors.Wrap(err, "json.Unmarshal")
	}
	raw, ok := new(big.Int).SetString(v.Amount, 10)
	if !ok {
		return errors.Wrapf(apperrors.ErrInvalidArgument, "bad amount %q", v.Amount)
	}
	parsed, err := NewAmount(v.Token, raw)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Sum adds amounts of one token. It fails on an empty list.
func Sum(amounts []Amount) (Amount, error) {
	if len(amounts) == 0 {
		return Amount{}, errors.Wrap(apperrors.ErrInvalidArgument, "nothing to sum")
	}
	total := Zero(amounts[0].Token)
	for _, a := range amounts {
		var err error
		if total, err = total.Add(a); err != nil {
			return Amount{}, err
		}
	}
	return total, nil
}

package validate

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/fleshka4/vault-quoter/internal/apperrors"
	"github.com/fleshka4/vault-quoter/internal/service/dto"
)

// SwapQuoteRequestValidate validates the shape of a swap quote request.
// Path consistency is checked when the paths are built.
func SwapQuoteRequestValidate(req dto.SwapQuoteRequest) error {
	if req.ChainID == 0 {
		return errors.Wrap(apperrors.ErrInvalidArgument, "chain id cannot be zero")
	}
	if len(req.Paths) == 0 {
		return errors.Wrap(apperrors.ErrInvalidArgument, "at least one path is required")
	}

	for i, p := range req.Paths {
		if len(p.Tokens) < 2 {
			return errors.Wrapf(apperrors.ErrInvalidArgument, "path %d needs at least two tokens", i)
		}
		if p.Amount.IsZero() {
			return errors.Wrapf(apperrors.ErrInvalidArgument, "path %d amount cannot be zero", i)
		}
		if len(p.Pools) != len(p.Tokens)-1 {
			return errors.Wrapf(apperrors.ErrInvalidArgument, "path %d has %d pools for %d tokens", i, len(p.Pools), len(p.Tokens))
		}
		for _, t := range p.Tokens {
			if t.ChainID != req.ChainID {
				return errors.Wrapf(apperrors.ErrInvalidArgument, "path %d token %s is on another chain", i, t.Address.Hex())
			}
		}
	}

	return nil
}

// SwapBuildRequestValidate validates a swap build request.
func SwapBuildRequestValidate(req dto.SwapBuildRequest) error {
	if err := SwapQuoteRequestValidate(req.Quote); err != nil {
		return err
	}

	var zeroAddress = common.Address{}

	if req.Sender == zeroAddress || req.Recipient == zeroAddress {
		return errors.Wrap(apperrors.ErrInvalidArgument, "sender and recipient cannot be empty")
	}

	if req.Deadline.IsZero() {
		return errors.Wrap(apperrors.ErrInvalidArgument, "deadline is required")
	}

	return nil
}

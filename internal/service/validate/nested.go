package validate

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/fleshka4/vault-quoter/internal/apperrors"
	"github.com/fleshka4/vault-quoter/internal/service/dto"
)

// NestedExitQuoteRequestValidate validates a nested exit quote request.
func NestedExitQuoteRequestValidate(req dto.NestedExitQuoteRequest) error {
	if req.ChainID == 0 {
		return errors.Wrap(apperrors.ErrInvalidArgument, "chain id cannot be zero")
	}
	if req.Account == (common.Address{}) {
		return errors.Wrap(apperrors.ErrInvalidArgument, "account cannot be empty")
	}
	if len(req.State.Pools) == 0 {
		return errors.Wrap(apperrors.ErrInvalidArgument, "pool state is empty")
	}
	if req.BptAmountIn.IsZero() {
		return errors.Wrap(apperrors.ErrInvalidArgument, "bpt amount in cannot be zero")
	}
	if req.BptAmountIn.Token.ChainID != req.ChainID {
		return errors.Wrapf(apperrors.ErrInvalidArgument, "bpt is on chain %d", req.BptAmountIn.Token.ChainID)
	}
	if req.TokenOut != nil && req.TokenOut.ChainID != req.ChainID {
		return errors.Wrapf(apperrors.ErrInvalidArgument, "token out is on chain %d", req.TokenOut.ChainID)
	}
	return nil
}

// NestedJoinQuoteRequestValidate validates a nested join quote request.
func NestedJoinQuoteRequestValidate(req dto.NestedJoinQuoteRequest) error {
	if req.ChainID == 0 {
		return errors.Wrap(apperrors.ErrInvalidArgument, "chain id cannot be zero")
	}
	if req.Account == (common.Address{}) || req.Pool == (common.Address{}) {
		return errors.Wrap(apperrors.ErrInvalidArgument, "account and pool cannot be empty")
	}
	if len(req.State.Pools) == 0 {
		return errors.Wrap(apperrors.ErrInvalidArgument, "pool state is empty")
	}
	if len(req.AmountsIn) == 0 {
		return errors.Wrap(apperrors.ErrInvalidArgument, "at least one amount in is required")
	}
	for _, a := range req.AmountsIn {
		if a.Token.ChainID != req.ChainID {
			return errors.Wrapf(apperrors.ErrInvalidArgument, "token %s is on chain %d", a.Token.Address.Hex(), a.Token.ChainID)
		}
	}
	return nil
}

// NestedBuildRequestValidate validates a nested build request.
func NestedBuildRequestValidate(req dto.NestedBuildRequest) error {
	if req.Quote.Graph == nil || req.Quote.Graph.Len() == 0 {
		return errors.Wrap(apperrors.ErrInvalidArgument, "quote carries no call graph")
	}
	if req.Sender == (common.Address{}) || req.Recipient == (common.Address{}) {
		return errors.Wrap(apperrors.ErrInvalidArgument, "sender and recipient cannot be empty")
	}
	return nil
}

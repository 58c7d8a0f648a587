package validate

import (
	"net/http"

	"github.com/pkg/errors"

	"github.com/fleshka4/vault-quoter/internal/apperrors"
	"github.com/fleshka4/vault-quoter/internal/service/dto"
	httpdto "github.com/fleshka4/vault-quoter/internal/transport/http/dto"
)

// NestedExitQuoteRequestValidate validates /nested/exit/quote request and
// returns dto.
func NestedExitQuoteRequestValidate(r *http.Request) (*dto.NestedExitQuoteRequest, int, error) {
	var body httpdto.NestedExitQuoteRequest
	if code, err := decodeBody(r, &body); err != nil {
		return nil, code, err
	}

	account, err := parseAddress("account", body.Account)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	if body.BptAmountIn == nil {
		return nil, http.StatusBadRequest, errors.Wrap(apperrors.ErrInvalidArgument, "missing bptAmountIn")
	}

	return &dto.NestedExitQuoteRequest{
		ChainID:     body.ChainID,
		Account:     account,
		State:       body.State,
		BptAmountIn: *body.BptAmountIn,
		TokenOut:    body.TokenOut,
		Observe:     body.Observe,
	}, 0, nil
}

// NestedJoinQuoteRequestValidate validates /nested/join/quote request and
// returns dto.
func NestedJoinQuoteRequestValidate(r *http.Request) (*dto.NestedJoinQuoteRequest, int, error) {
	var body httpdto.NestedJoinQuoteRequest
	if code, err := decodeBody(r, &body); err != nil {
		return nil, code, err
	}

	account, err := parseAddress("account", body.Account)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	pool, err := parseAddress("pool", body.Pool)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}

	return &dto.NestedJoinQuoteRequest{
		ChainID:   body.ChainID,
		Account:   account,
		State:     body.State,
		Pool:      pool,
		AmountsIn: body.AmountsIn,
		Observe:   body.Observe,
	}, 0, nil
}

// NestedBuildRequestValidate validates /nested/build request and returns dto.
func NestedBuildRequestValidate(r *http.Request) (*dto.NestedBuildRequest, int, error) {
	var body httpdto.NestedBuildRequest
	if code, err := decodeBody(r, &body); err != nil {
		return nil, code, err
	}

	if body.Quote == nil || body.Quote.Graph == nil {
		return nil, http.StatusBadRequest, errors.Wrap(apperrors.ErrInvalidArgument, "missing quote")
	}
	s, err := parseSlippage(body.Slippage)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	sender, err := parseAddress("sender", body.Sender)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	recipient, err := parseAddress("recipient", body.Recipient)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}

	return &dto.NestedBuildRequest{
		Quote:           *body.Quote,
		Slippage:        s,
		Sender:          sender,
		Recipient:       recipient,
		RelayerApproval: body.RelayerApproval,
		DryRun:          body.DryRun,
	}, 0, nil
}

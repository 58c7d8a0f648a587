package validate

import (
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/fleshka4/vault-quoter/internal/apperrors"
	"github.com/fleshka4/vault-quoter/internal/service/dto"
	httpdto "github.com/fleshka4/vault-quoter/internal/transport/http/dto"
)

// SwapQuoteRequestValidate validates /swap/quote request and returns dto.
func SwapQuoteRequestValidate(r *http.Request) (*dto.SwapQuoteRequest, int, error) {
	var body httpdto.SwapQuoteRequest
	if code, err := decodeBody(r, &body); err != nil {
		return nil, code, err
	}

	req, err := swapQuote(body)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	return req, 0, nil
}

// SwapBuildRequestValidate validates /swap/build request and returns dto.
func SwapBuildRequestValidate(r *http.Request) (*dto.SwapBuildRequest, int, error) {
	var body httpdto.SwapBuildRequest
	if code, err := decodeBody(r, &body); err != nil {
		return nil, code, err
	}

	quote, err := swapQuote(body.Quote)
	if err != nil {
		return nil, http.StatusBadRequest, err
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
	if body.Deadline <= 0 {
		return nil, http.StatusBadRequest, errors.Wrap(apperrors.ErrInvalidArgument, "deadline must be a positive unix timestamp")
	}

	return &dto.SwapBuildRequest{
		Quote:     *quote,
		Slippage:  s,
		Deadline:  time.Unix(body.Deadline, 0),
		Sender:    sender,
		Recipient: recipient,
		DryRun:    body.DryRun,
	}, 0, nil
}

func swapQuote(body httpdto.SwapQuoteRequest) (*dto.SwapQuoteRequest, error) {
	if len(body.Paths) == 0 {
		return nil, errors.Wrap(apperrors.ErrInvalidArgument, "missing paths")
	}

	paths := make([]dto.PathRequest, 0, len(body.Paths))
	for i, p := range body.Paths {
		if p.Amount == nil {
			return nil, errors.Wrapf(apperrors.ErrInvalidArgument, "path %d has no amount", i)
		}
		paths = append(paths, dto.PathRequest{
			Tokens: p.Tokens,
			Pools:  p.Pools,
			Amount: *p.Amount,
		})
	}

	return &dto.SwapQuoteRequest{ChainID: body.ChainID, Paths: paths}, nil
}

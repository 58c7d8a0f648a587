package validate

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/fleshka4/vault-quoter/internal/apperrors"
	"github.com/fleshka4/vault-quoter/internal/slippage"
)

const maxBodyBytes = 1 << 20

// decodeBody reads the JSON body of a POST request into v.
func decodeBody(r *http.Request, v any) (int, error) {
	if r.Method != http.MethodPost {
		return http.StatusMethodNotAllowed, errors.New("method not allowed")
	}
	if r.Body == nil {
		return http.StatusBadRequest, errors.Wrap(apperrors.ErrInvalidArgument, "empty body")
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if apperrors.Kind(err) != apperrors.KindInternal {
			return http.StatusBadRequest, errors.Wrap(err, "bad body")
		}
		return http.StatusBadRequest, errors.Wrapf(apperrors.ErrInvalidArgument, "bad body: %v", err)
	}
	return 0, nil
}

func parseAddress(name, s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, errors.Wrapf(apperrors.ErrInvalidArgument, "bad %s address format", name)
	}
	return common.HexToAddress(s), nil
}

func parseSlippage(s string) (slippage.Slippage, error) {
	if s == "" {
		return slippage.Slippage{}, errors.Wrap(apperrors.ErrInvalidArgument, "slippage is required")
	}
	return slippage.FromPercentage(s)
}

package service

import (
	"context"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/fleshka4/vault-quoter/internal/infra/relayer"
	"github.com/fleshka4/vault-quoter/internal/path"
	"github.com/fleshka4/vault-quoter/internal/pool"
	"github.com/fleshka4/vault-quoter/internal/service/dto"
	"github.com/fleshka4/vault-quoter/internal/service/validate"
	"github.com/fleshka4/vault-quoter/internal/swap"
)

// QuoteSwap composes every path's pool exchange functions hop by hop. It
// runs locally and never reaches the node.
func (s *QuoterService) QuoteSwap(_ context.Context, req dto.SwapQuoteRequest) (_ *dto.SwapQuote, err error) {
	defer func() { s.metrics.request(opQuoteSwap, err) }()

	if err = validate.SwapQuoteRequestValidate(req); err != nil {
		return nil, err
	}

	sw, err := s.quoteSwap(req)
	if err != nil {
		return nil, err
	}

	q := swapQuote(req.ChainID, sw)
	return &q, nil
}

// BuildSwap quotes req.Quote again and lays it out as a vault batchSwap
// bounded by req.Slippage.
func (s *QuoterService) BuildSwap(ctx context.Context, req dto.SwapBuildRequest) (_ *dto.SwapCall, err error) {
	defer func() { s.metrics.request(opBuildSwap, err) }()

	if err = validate.SwapBuildRequestValidate(req); err != nil {
		return nil, err
	}

	sw, err := s.quoteSwap(req.Quote)
	if err != nil {
		return nil, err
	}

	built, err := swap.Build(sw, swap.BuildInput{
		Slippage:  req.Slippage,
		Deadline:  req.Deadline,
		Sender:    req.Sender,
		Recipient: req.Recipient,
	})
	if err != nil {
		return nil, errors.Wrap(err, "swap.Build")
	}

	data, err := s.encoder.EncodeBatchSwap(built.BatchSwap)
	if err != nil {
		return nil, errors.Wrap(err, "s.encoder.EncodeBatchSwap")
	}

	if req.DryRun {
		call := relayer.Call{
			ChainID: s.chainID,
			From:    req.Sender,
			To:      s.vault,
			Value:   built.BatchSwap.Value,
			Data:    data,
		}
		if _, err = s.simulate(ctx, opBuildSwap, call); err != nil {
			return nil, err
		}
	}

	s.logger.Debug("swap built",
		zap.String("direction", string(sw.Direction())),
		zap.Int("paths", len(sw.Paths())),
		zap.Int("steps", len(built.BatchSwap.Steps)),
	)

	return &dto.SwapCall{
		To:       s.vault,
		CallData: data,
		Value:    built.BatchSwap.Value.String(),
		Limit:    built.Bound,
		Deadline: req.Deadline.Unix(),
		Quote:    swapQuote(req.Quote.ChainID, sw),
	}, nil
}

func (s *QuoterService) quoteSwap(req dto.SwapQuoteRequest) (path.Swap, error) {
	if err := s.checkChain(req.ChainID); err != nil {
		return path.Swap{}, err
	}

	paths := make([]path.AmountedPath, 0, len(req.Paths))
	for _, p := range req.Paths {
		for _, pl := range p.Pools {
			if err := pl.Validate(); err != nil {
				return path.Swap{}, err
			}
		}

		hops := lo.Map(p.Pools, func(pl pool.Pool, _ int) path.Hop { return pl })
		pth, err := path.NewPath(p.Tokens, hops)
		if err != nil {
			return path.Swap{}, err
		}

		amounted, err := path.NewAmountedPath(pth, p.Amount)
		if err != nil {
			return path.Swap{}, err
		}
		paths = append(paths, amounted)
	}

	return path.NewSwap(paths)
}

func swapQuote(chainID uint64, sw path.Swap) dto.SwapQuote {
	return dto.SwapQuote{
		ChainID:   chainID,
		Direction: sw.Direction(),
		Input:     sw.InputAmount(),
		Output:    sw.OutputAmount(),
		Paths: lo.Map(sw.Paths(), func(p path.AmountedPath, _ int) dto.PathQuote {
			return dto.PathQuote{Tokens: p.Path().Tokens(), Amounts: p.Amounts()}
		}),
	}
}

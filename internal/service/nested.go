package service

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/fleshka4/vault-quoter/internal/apperrors"
	"github.com/fleshka4/vault-quoter/internal/callgraph"
	"github.com/fleshka4/vault-quoter/internal/infra/relayer"
	"github.com/fleshka4/vault-quoter/internal/service/dto"
	"github.com/fleshka4/vault-quoter/internal/service/validate"
	"github.com/fleshka4/vault-quoter/internal/token"
)

// QuoteNestedExit builds the exit graph for req, simulates it with peeks on
// every terminal output, every amount paid under a reference bound and the
// observed tokens, and returns the amounts read.
func (s *QuoterService) QuoteNestedExit(ctx context.Context, req dto.NestedExitQuoteRequest) (_ *dto.NestedQuote, err error) {
	defer func() { s.metrics.request(opQuoteNestedExit, err) }()

	if err = validate.NestedExitQuoteRequestValidate(req); err != nil {
		return nil, err
	}
	if err = s.checkChain(req.ChainID); err != nil {
		return nil, err
	}

	g, err := callgraph.BuildNestedExit(callgraph.ExitInput{
		BptAmountIn: req.BptAmountIn,
		TokenOut:    req.TokenOut,
	}, req.State)
	if err != nil {
		return nil, errors.Wrap(err, "callgraph.BuildNestedExit")
	}

	return s.quoteGraph(ctx, opQuoteNestedExit, req.Account, g, req.Observe)
}

// QuoteNestedJoin is QuoteNestedExit for deposits.
func (s *QuoterService) QuoteNestedJoin(ctx context.Context, req dto.NestedJoinQuoteRequest) (_ *dto.NestedQuote, err error) {
	defer func() { s.metrics.request(opQuoteNestedJoin, err) }()

	if err = validate.NestedJoinQuoteRequestValidate(req); err != nil {
		return nil, err
	}
	if err = s.checkChain(req.ChainID); err != nil {
		return nil, err
	}

	g, err := callgraph.BuildNestedJoin(callgraph.JoinInput{
		Pool:      req.Pool,
		AmountsIn: req.AmountsIn,
	}, req.State)
	if err != nil {
		return nil, errors.Wrap(err, "callgraph.BuildNestedJoin")
	}

	return s.quoteGraph(ctx, opQuoteNestedJoin, req.Account, g, req.Observe)
}

func (s *QuoterService) quoteGraph(
	ctx context.Context,
	operation string,
	account common.Address,
	g *callgraph.CallGraph,
	observe []token.Token,
) (*dto.NestedQuote, error) {
	observed, err := callgraph.ObservePeekRequests(g, observe)
	if err != nil {
		return nil, errors.Wrap(err, "callgraph.ObservePeekRequests")
	}
	requests := append(callgraph.LeafPeekRequests(g), callgraph.PaidPeekRequests(g)...)
	requests = append(requests, observed...)

	extended, layout, err := callgraph.AppendPeeks(g, requests)
	if err != nil {
		return nil, errors.Wrap(err, "callgraph.AppendPeeks")
	}

	calls, _, err := s.encoder.EncodeGraph(extended.Nodes(), relayer.Accounts{Sender: account, Recipient: account})
	if err != nil {
		return nil, errors.Wrap(err, "s.encoder.EncodeGraph")
	}
	data, err := s.encoder.EncodeQueryMulticall(calls)
	if err != nil {
		return nil, errors.Wrap(err, "s.encoder.EncodeQueryMulticall")
	}

	raw, err := s.simulate(ctx, operation, relayer.Call{
		ChainID: s.chainID,
		From:    account,
		To:      s.relayer,
		Data:    data,
	})
	if err != nil {
		return nil, err
	}

	results, err := s.encoder.DecodeQueryMulticall(raw)
	if err != nil {
		return nil, errors.Wrap(err, "s.encoder.DecodeQueryMulticall")
	}
	resolved, err := callgraph.ExtractAmounts(results, layout)
	if err != nil {
		return nil, errors.Wrap(err, "callgraph.ExtractAmounts")
	}
	totals, err := resolved.ByToken()
	if err != nil {
		return nil, errors.Wrap(err, "resolved.ByToken")
	}

	s.logger.Debug("nested graph quoted",
		zap.String("operation", operation),
		zap.Int("nodes", g.Len()),
		zap.Int("peeks", len(layout)),
	)

	return &dto.NestedQuote{
		ChainID:  s.chainID,
		Account:  account,
		Graph:    extended,
		Layout:   layout,
		Resolved: resolved,
		Totals:   totals,
	}, nil
}

// BuildNested rebuilds a quoted graph with slippage bounds and wraps it in a
// relayer multicall, after the relayer approval when one is supplied.
func (s *QuoterService) BuildNested(ctx context.Context, req dto.NestedBuildRequest) (_ *dto.NestedCall, err error) {
	defer func() { s.metrics.request(opBuildNested, err) }()

	if err = validate.NestedBuildRequestValidate(req); err != nil {
		return nil, err
	}
	if err = s.checkChain(req.Quote.ChainID); err != nil {
		return nil, err
	}

	exec, err := callgraph.RebuildForExecution(req.Quote.Graph, req.Quote.Resolved, req.Slippage)
	if err != nil {
		return nil, errors.Wrap(err, "callgraph.RebuildForExecution")
	}

	calls, value, err := s.encoder.EncodeGraph(exec.Nodes, relayer.Accounts{Sender: req.Sender, Recipient: req.Recipient})
	if err != nil {
		return nil, errors.Wrap(err, "s.encoder.EncodeGraph")
	}

	if len(req.RelayerApproval) > 0 {
		approval, err := s.encoder.EncodeRelayerApproval(s.relayer, true, req.RelayerApproval)
		if err != nil {
			return nil, errors.Wrap(err, "s.encoder.EncodeRelayerApproval")
		}
		calls = append([][]byte{approval}, calls...)
	}

	data, err := s.encoder.EncodeMulticall(calls)
	if err != nil {
		return nil, errors.Wrap(err, "s.encoder.EncodeMulticall")
	}

	if req.DryRun {
		call := relayer.Call{
			ChainID: s.chainID,
			From:    req.Sender,
			To:      s.relayer,
			Value:   value,
			Data:    data,
		}
		if _, err = s.simulate(ctx, opBuildNested, call); err != nil {
			return nil, err
		}
	}

	s.logger.Debug("nested call built",
		zap.Int("calls", len(calls)),
		zap.Int("bounds", len(exec.Bounds)),
		zap.String("slippage", req.Slippage.Percentage()),
	)

	return &dto.NestedCall{
		To:       s.relayer,
		CallData: data,
		Value:    value.String(),
		Bounds:   exec.Bounds,
	}, nil
}

func (s *QuoterService) checkChain(chainID uint64) error {
	if chainID != s.chainID {
		return errors.Wrapf(apperrors.ErrInvalidArgument, "chain %d is not served", chainID)
	}
	return nil
}

// simulate runs call and records its latency. Failures are logged with the
// node's message and surface as ErrSimulationFailed.
func (s *QuoterService) simulate(ctx context.Context, operation string, call relayer.Call) ([]byte, error) {
	start := time.Now()
	raw, err := s.simulator.Simulate(ctx, call)
	s.metrics.simulation(operation, start)
	if err != nil {
		s.logger.Warn("simulation failed",
			zap.String("operation", operation),
			zap.String("to", call.To.Hex()),
			zap.Error(err),
		)
		if !errors.Is(err, apperrors.ErrSimulationFailed) && !errors.Is(err, apperrors.ErrInvalidArgument) {
			return nil, errors.Wrap(apperrors.ErrSimulationFailed, err.Error())
		}
		return nil, errors.Wrap(err, "s.simulator.Simulate")
	}
	return raw, nil
}

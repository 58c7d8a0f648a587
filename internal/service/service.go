package service

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/fleshka4/vault-quoter/internal/infra/relayer"
	"github.com/fleshka4/vault-quoter/internal/service/dto"
)

const (
	opQuoteSwap       = "quote_swap"
	opBuildSwap       = "build_swap"
	opQuoteNestedExit = "quote_nested_exit"
	opQuoteNestedJoin = "quote_nested_join"
	opBuildNested     = "build_nested"
)

// Service represents interface for business logic.
type Service interface {
	QuoteSwap(ctx context.Context, req dto.SwapQuoteRequest) (*dto.SwapQuote, error)
	BuildSwap(ctx context.Context, req dto.SwapBuildRequest) (*dto.SwapCall, error)
	QuoteNestedExit(ctx context.Context, req dto.NestedExitQuoteRequest) (*dto.NestedQuote, error)
	QuoteNestedJoin(ctx context.Context, req dto.NestedJoinQuoteRequest) (*dto.NestedQuote, error)
	BuildNested(ctx context.Context, req dto.NestedBuildRequest) (*dto.NestedCall, error)
}

// Simulator runs calls without committing state.
type Simulator interface {
	Simulate(ctx context.Context, call relayer.Call) ([]byte, error)
}

var _ Service = (*QuoterService)(nil)

// Options are the chain deployment the service quotes against.
type Options struct {
	ChainID uint64
	Relayer common.Address
	Vault   common.Address
}

// QuoterService represents struct for business logic.
type QuoterService struct {
	logger    *zap.Logger
	metrics   *Metrics
	encoder   *relayer.Encoder
	simulator Simulator

	chainID uint64
	relayer common.Address
	vault   common.Address
}

// NewQuoterService creates QuoterService.
func NewQuoterService(
	logger *zap.Logger,
	metrics *Metrics,
	encoder *relayer.Encoder,
	simulator Simulator,
	opts Options,
) (*QuoterService, error) {
	if logger == nil || metrics == nil || encoder == nil || simulator == nil {
		return nil, errors.New("quoter service dependencies must not be nil")
	}
	if opts.ChainID == 0 {
		return nil, errors.New("chain id is required")
	}
	if opts.Relayer == (common.Address{}) || opts.Vault == (common.Address{}) {
		return nil, errors.New("relayer and vault addresses are required")
	}

	return &QuoterService{
		logger:    logger,
		metrics:   metrics,
		encoder:   encoder,
		simulator: simulator,

		chainID: opts.ChainID,
		relayer: opts.Relayer,
		vault:   opts.Vault,
	}, nil
}

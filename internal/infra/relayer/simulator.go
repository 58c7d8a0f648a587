package relayer

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"

	"github.com/fleshka4/vault-quoter/internal/apperrors"
)

// Call is one static call to simulate.
type Call struct {
	ChainID uint64
	From    common.Address
	To      common.Address
	Value   *big.Int
	Data    []byte
}

// Simulator executes calls without committing any state.
type Simulator interface {
	// Simulate runs call at the latest block and returns its raw return data.
	Simulate(ctx context.Context, call Call) ([]byte, error)
}

// EthCaller represents interface for calling contracts.
type EthCaller interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

type ethSimulator struct {
	caller  EthCaller
	chainID uint64

	callTimeout time.Duration
}

// NewSimulator dials rpcURL and checks the node serves chainID.
func NewSimulator(ctx context.Context, rpcURL string, chainID uint64, callTimeout time.Duration) (Simulator, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, errors.Wrap(err, "ethclient.DialContext")
	}

	remote, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, errors.Wrap(err, "client.ChainID")
	}
	if !remote.IsUint64() || remote.Uint64() != chainID {
		client.Close()
		return nil, errors.Errorf("node serves chain %s, configured %d", remote, chainID)
	}

	return newSimulatorWithCaller(client, chainID, callTimeout), nil
}

func newSimulatorWithCaller(caller EthCaller, chainID uint64, callTimeout time.Duration) *ethSimulator {
	return &ethSimulator{
		caller:  caller,
		chainID: chainID,

		callTimeout: callTimeout,
	}
}

// Simulate implements Simulator with eth_call.
func (s *ethSimulator) Simulate(ctx context.Context, call Call) ([]byte, error) {
	if call.ChainID != s.chainID {
		return nil, errors.Wrapf(apperrors.ErrInvalidArgument, "chain %d is not served, expected %d", call.ChainID, s.chainID)
	}

	ctxCall, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	to := call.To
	res, err := s.caller.CallContract(
		ctxCall,
		ethereum.CallMsg{
			From:  call.From,
			To:    &to,
			Value: call.Value,
			Data:  call.Data,
		},
		nil,
	)
	if err != nil {
		return nil, errors.Wrapf(apperrors.ErrSimulationFailed, "s.caller.CallContract: %v", err)
	}
	if len(res) == 0 {
		return nil, errors.Wrap(apperrors.ErrSimulationFailed, "empty return data")
	}
	return res, nil
}

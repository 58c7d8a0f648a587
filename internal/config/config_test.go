package config

import (
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

const validYAML = `
rpc_url: https://eth.example.org
chain_id: 1
relayer_address: "0x35Cea9e57A393ac66Aaa7E25C391D52C74B5648f"
call_timeout: 2s
log_level: debug
`

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("fallbacks", func(t *testing.T) {
		cfg, err := Parse(strings.NewReader(validYAML))
		require.NoError(t, err)

		require.Equal(t, ":1337", cfg.ListenAddr)
		require.Equal(t, uint64(1), cfg.ChainID)
		require.Equal(t, 5*time.Second, cfg.GraceTimeout)
		require.Equal(t, 5*time.Second, cfg.RequestTimeout)
		require.Equal(t, 5*time.Second, cfg.ReadHeaderTimeout)
		require.Equal(t, 2*time.Second, cfg.CallTimeout)
		require.Equal(t, common.HexToAddress(DefaultVaultAddress), cfg.Vault())
		require.Equal(t, common.HexToAddress("0x35Cea9e57A393ac66Aaa7E25C391D52C74B5648f"), cfg.Relayer())
		require.Equal(t, zapcore.DebugLevel, cfg.Level())
	})

	t.Run("missing required keys are all reported", func(t *testing.T) {
		_, err := Parse(strings.NewReader("listen_addr: :8080\n"))
		require.Error(t, err)
		require.Contains(t, err.Error(), "rpc_url is required")
		require.Contains(t, err.Error(), "chain_id is required")
		require.Contains(t, err.Error(), "relayer_address")
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := Parse(strings.NewReader(validYAML + "rpc: x\n"))
		require.Error(t, err)
	})

	t.Run("call timeout above request timeout", func(t *testing.T) {
		_, err := Parse(strings.NewReader(validYAML + "request_timeout: 1s\n"))
		require.ErrorContains(t, err, "call_timeout exceeds request_timeout")
	})

	t.Run("bad log level", func(t *testing.T) {
		_, err := Parse(strings.NewReader(strings.Replace(validYAML, "debug", "loud", 1)))
		require.ErrorContains(t, err, "log_level")
	})
}

func TestLoad(t *testing.T) {
	t.Parallel()

	_, err := Load("does/not/exist.yaml")
	require.Error(t, err)
}

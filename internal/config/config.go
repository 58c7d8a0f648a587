package config

import (
	"io"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// DefaultVaultAddress is the vault deployment shared by every supported chain.
const DefaultVaultAddress = "0xBA12222222228d8Ba445958a75a0704d566BF2C8"

// Config holds application configuration loaded from file.
type Config struct {
	RPCURL            string        `yaml:"rpc_url"`
	ListenAddr        string        `yaml:"listen_addr"`
	ChainID           uint64        `yaml:"chain_id"`
	RelayerAddress    string        `yaml:"relayer_address"`
	VaultAddress      string        `yaml:"vault_address"`
	GraceTimeout      time.Duration `yaml:"shutdown_timeout"`
	RequestTimeout    time.Duration `yaml:"request_timeout"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	CallTimeout       time.Duration `yaml:"call_timeout"`
	LogLevel          string        `yaml:"log_level"`
}

// Load reads the config from a YAML file path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "os.Open")
	}
	defer func() {
		_ = f.Close()
	}()

	return Parse(f)
}

// Parse decodes a YAML config, applies fallbacks and validates the result.
func Parse(r io.Reader) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Wrap(err, "decoder.Decode")
	}

	// Fallbacks
	const defaultTimeout = 5 * time.Second
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":1337"
	}
	if cfg.VaultAddress == "" {
		cfg.VaultAddress = DefaultVaultAddress
	}
	if cfg.GraceTimeout == 0 {
		cfg.GraceTimeout = defaultTimeout
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = defaultTimeout
	}
	if cfg.ReadHeaderTimeout == 0 {
		cfg.ReadHeaderTimeout = defaultTimeout
	}
	if cfg.CallTimeout == 0 {
		cfg.CallTimeout = defaultTimeout
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	var err error
	if c.RPCURL == "" {
		err = multierr.Append(err, errors.New("rpc_url is required"))
	}
	if c.ChainID == 0 {
		err = multierr.Append(err, errors.New("chain_id is required"))
	}
	if !common.IsHexAddress(c.RelayerAddress) {
		err = multierr.Append(err, errors.Errorf("relayer_address %q is not an address", c.RelayerAddress))
	}
	if !common.IsHexAddress(c.VaultAddress) {
		err = multierr.Append(err, errors.Errorf("vault_address %q is not an address", c.VaultAddress))
	}
	if _, lvlErr := zapcore.ParseLevel(c.LogLevel); lvlErr != nil {
		err = multierr.Append(err, errors.Errorf("log_level %q is unknown", c.LogLevel))
	}
	if c.CallTimeout > c.RequestTimeout {
		err = multierr.Append(err, errors.New("call_timeout exceeds request_timeout"))
	}
	return errors.Wrap(err, "invalid config")
}

// Relayer is the batch relayer address.
func (c *Config) Relayer() common.Address {
	return common.HexToAddress(c.RelayerAddress)
}

// Vault is the vault address.
func (c *Config) Vault() common.Address {
	return common.HexToAddress(c.VaultAddress)
}

// Level is the parsed log level.
func (c *Config) Level() zapcore.Level {
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

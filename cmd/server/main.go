package main

import (
	"log"
	"os"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/fleshka4/vault-quoter/internal/config"
	"github.com/fleshka4/vault-quoter/internal/infra/relayer"
	"github.com/fleshka4/vault-quoter/internal/service"
	transporthttp "github.com/fleshka4/vault-quoter/internal/transport/http"
)

func main() {
	app := &cli.App{
		Name:  "vault-quoter",
		Usage: "quote vault swaps and nested pool exits and joins",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "cfg/config.yaml",
				EnvVars: []string{"CONFIG_PATH"},
				Usage:   "path to the YAML config file",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("app.Run: %v", err)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return errors.Wrap(err, "config.Load")
	}

	logger, err := newLogger(cfg.Level())
	if err != nil {
		return errors.Wrap(err, "newLogger")
	}
	defer func() {
		_ = logger.Sync()
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	sim, err := relayer.NewSimulator(c.Context, cfg.RPCURL, cfg.ChainID, cfg.CallTimeout)
	if err != nil {
		return errors.Wrap(err, "relayer.NewSimulator")
	}

	enc, err := relayer.NewEncoder()
	if err != nil {
		return errors.Wrap(err, "relayer.NewEncoder")
	}

	svc, err := service.NewQuoterService(logger, service.NewMetrics(reg), enc, sim, service.Options{
		ChainID: cfg.ChainID,
		Relayer: cfg.Relayer(),
		Vault:   cfg.Vault(),
	})
	if err != nil {
		return errors.Wrap(err, "service.NewQuoterService")
	}

	srv, err := transporthttp.NewServer(svc, logger, reg, cfg)
	if err != nil {
		return errors.Wrap(err, "transporthttp.NewServer")
	}

	logger.Info("vault quoter configured",
		zap.Uint64("chain_id", cfg.ChainID),
		zap.String("relayer", cfg.Relayer().Hex()),
		zap.String("vault", cfg.Vault().Hex()),
	)

	if err = srv.ListenAndServe(cfg.ListenAddr); err != nil {
		return errors.Wrap(err, "srv.ListenAndServe")
	}
	return nil
}

func newLogger(level zapcore.Level) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"tokenwatch/config"
	"tokenwatch/internal/chainfm/alerter"
	"tokenwatch/internal/chainfm/filter"
	"tokenwatch/internal/chainfm/schedule"
	"tokenwatch/internal/chainfm/snapshot"
	"tokenwatch/logger"
	"tokenwatch/pkg/chainfm"
	"tokenwatch/pkg/notify"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "path to config file (default: ./config.yaml or ./config/config.yaml if present)")
	once := pflag.Bool("once", false, "run a single pass and exit, ignoring schedule.interval")
	pflag.Parse()

	// viper config
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *once {
		cfg.Schedule.Interval = 0
	}

	// zap logger
	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Secrets.Source == "ssm" {
		resolveSecrets(ctx, cfg, log)
	}

	var opts []alerter.Option
	if journal := openJournal(ctx, cfg.Postgres, log); journal != nil {
		defer journal.Close()
		opts = append(opts, alerter.WithJournal(journal))
	}

	loader := &snapshot.TokenLoader{
		RestClient: chainfm.NewRESTClient(cfg.ChainFM.REST),
		Logger:     log,
	}
	notifier := notify.FromConfig(cfg, log)
	a := alerter.New(loader, filter.New(filter.ThresholdsFromConfig(cfg.Filter), nil), notifier, log, opts...)

	log.Info("tokenwatch starting",
		zap.Strings("channels", notifier.Channels()),
		zap.Duration("interval", cfg.Schedule.Interval),
	)

	runner := &schedule.IntervalRunner{Interval: cfg.Schedule.Interval, Logger: log}
	runner.Run(ctx, func(ctx context.Context) {
		a.RunOnce(ctx)
	})
}

func resolveSecrets(ctx context.Context, cfg *config.Config, log *zap.Logger) {
	store, err := config.NewParameterStore(ctx)
	if err != nil {
		log.Warn("parameter store unavailable, using environment credentials only", zap.Error(err))
		return
	}
	if err := cfg.ResolveSecrets(ctx, store); err != nil {
		log.Warn("some secrets could not be resolved", zap.Error(err))
	}
}

package main

import (
	"context"
	"time"

	"tokenwatch/config"
	"tokenwatch/pkg/storage/postgres"

	"go.uber.org/zap"
)

const journalPingTimeout = 3 * time.Second

// openJournal returns a migrated, reachable journal client, or nil when the
// journal is disabled or unusable. Failures only disable the journal.
func openJournal(ctx context.Context, cfg config.PostgresConfig, log *zap.Logger) *postgres.PostgresClient {
	if !cfg.Enabled {
		return nil
	}

	client, err := postgres.InitializeAndMigrateDeliveryRecord(cfg)
	if err != nil {
		log.Warn("delivery journal disabled", zap.Error(err))
		return nil
	}

	pingCtx, cancel := context.WithTimeout(ctx, journalPingTimeout)
	defer cancel()
	if !client.IsHealthy(pingCtx) {
		log.Warn("delivery journal disabled", zap.String("reason", "postgres ping failed"))
		client.Close()
		return nil
	}

	pruneJournal(ctx, client, cfg.Retention, log)
	return client
}

func pruneJournal(ctx context.Context, client *postgres.PostgresClient, retention time.Duration, log *zap.Logger) {
	if retention <= 0 {
		return
	}

	deleted, err := client.DeleteDeliveriesBefore(ctx, time.Now().Add(-retention))
	if err != nil {
		log.Warn("failed to prune delivery journal", zap.Error(err))
		return
	}
	log.Info("pruned delivery journal", zap.Int64("deleted", deleted), zap.Duration("retention", retention))
}

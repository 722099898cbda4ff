package snapshot

import (
	"context"

	"tokenwatch/pkg/chainfm"

	"go.uber.org/zap"
)

// HotListClient is the REST call the loader depends on.
type HotListClient interface {
	GetHotList(ctx context.Context) (*chainfm.HotList, error)
}

type TokenLoader struct {
	RestClient HotListClient
	Logger     *zap.Logger
}

// LoadTokens fetches the hot list once. Any failure is logged and yields an
// empty slice, so a broken fetch means no alerts for this run. It never
// retries; the next scheduled run is the retry.
func (l *TokenLoader) LoadTokens(ctx context.Context) []chainfm.TokenRecord {
	list, err := l.RestClient.GetHotList(ctx)
	if err != nil {
		l.Logger.Error("failed to load hot list", zap.Error(err))
		return []chainfm.TokenRecord{}
	}

	if list.Skipped > 0 {
		l.Logger.Warn("skipped malformed hot list entries", zap.Int("skipped", list.Skipped))
	}
	l.Logger.Info("loaded tokens", zap.Int("count", len(list.Tokens)))

	return list.Tokens
}

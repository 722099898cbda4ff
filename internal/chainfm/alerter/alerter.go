// Package alerter runs one fetch, filter and notify pass over the chain.fm
// hot list.
package alerter

import (
	"context"
	"time"

	"tokenwatch/pkg/chainfm"
	"tokenwatch/pkg/notify"
	"tokenwatch/pkg/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Fetcher interface {
	LoadTokens(ctx context.Context) []chainfm.TokenRecord
}

type Filter interface {
	Apply(tokens []chainfm.TokenRecord) []chainfm.TokenRecord
}

type Dispatcher interface {
	Notify(ctx context.Context, message string) notify.Report
}

type Alerter struct {
	fetcher  Fetcher
	filter   Filter
	notifier Dispatcher
	journal  storage.DeliveryStore
	logger   *zap.Logger

	newRunID func() string
	now      func() time.Time
}

type Option func(*Alerter)

// WithJournal records every delivery outcome in store.
func WithJournal(store storage.DeliveryStore) Option {
	return func(a *Alerter) { a.journal = store }
}

func WithClock(now func() time.Time) Option {
	return func(a *Alerter) { a.now = now }
}

func WithRunID(newRunID func() string) Option {
	return func(a *Alerter) { a.newRunID = newRunID }
}

func New(fetcher Fetcher, filter Filter, notifier Dispatcher, logger *zap.Logger, opts ...Option) *Alerter {
	a := &Alerter{
		fetcher:  fetcher,
		filter:   filter,
		notifier: notifier,
		logger:   logger,
		newRunID: uuid.NewString,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Summary describes one run.
type Summary struct {
	RunID     string
	Fetched   int
	Qualified int
	// Delivered counts qualifying tokens that reached at least one channel.
	Delivered int
	Reports   []notify.Report
}

// RunOnce fetches the hot list, filters it and notifies every channel once
// per qualifying token, in list order. It has no failure mode: fetch and
// delivery errors are logged by the components that hit them.
func (a *Alerter) RunOnce(ctx context.Context) Summary {
	summary := Summary{RunID: a.newRunID()}
	log := a.logger.With(zap.String("run_id", summary.RunID))

	tokens := a.fetcher.LoadTokens(ctx)
	summary.Fetched = len(tokens)

	qualifying := a.filter.Apply(tokens)
	summary.Qualified = len(qualifying)

	log.Info("filtered tokens",
		zap.Int("fetched", summary.Fetched),
		zap.Int("qualified", summary.Qualified),
	)

	for _, token := range qualifying {
		report := a.notifier.Notify(ctx, FormatMessage(token))
		summary.Reports = append(summary.Reports, report)
		if len(report.Succeeded()) > 0 {
			summary.Delivered++
		}

		a.record(ctx, log, summary.RunID, token, report)
	}

	log.Info("run complete",
		zap.Int("qualified", summary.Qualified),
		zap.Int("delivered", summary.Delivered),
	)

	return summary
}

func (a *Alerter) record(ctx context.Context, log *zap.Logger, runID string, token chainfm.TokenRecord, report notify.Report) {
	if a.journal == nil {
		return
	}

	at := a.now()
	deliveries := make([]storage.Delivery, 0, len(report.Results))
	for _, res := range report.Results {
		d := storage.Delivery{
			RunID:       runID,
			TokenName:   token.Name,
			Address:     token.Address,
			Channel:     res.Channel,
			OK:          res.OK,
			DeliveredAt: at,
		}
		if res.Err != nil {
			d.Error = res.Err.Error()
		}
		deliveries = append(deliveries, d)
	}

	if err := a.journal.SaveDeliveries(ctx, deliveries); err != nil {
		log.Warn("failed to record deliveries", zap.String("address", token.Address), zap.Error(err))
	}
}

// Package notify delivers alert messages to Telegram, Discord and PushDeer.
// Every channel is attempted independently; a failing channel never stops
// the others and nothing is retried.
package notify

import (
	"context"
	"errors"
	"net/http"

	"tokenwatch/config"

	"go.uber.org/zap"
)

// ErrNotConfigured is the failure reason of a channel whose credentials are
// missing. Such a channel performs no network I/O.
var ErrNotConfigured = errors.New("channel not configured")

// Channel is one delivery target.
type Channel interface {
	Name() string
	Send(ctx context.Context, message string) Result
}

// Result is the outcome of one delivery attempt.
type Result struct {
	Channel string
	OK      bool
	Err     error
}

func success(channel string) Result {
	return Result{Channel: channel, OK: true}
}

func failure(channel string, err error) Result {
	return Result{Channel: channel, Err: err}
}

// Report collects the results of one Notify call in channel order.
type Report struct {
	Results []Result
}

func (r Report) Succeeded() []string {
	names := make([]string, 0, len(r.Results))
	for _, res := range r.Results {
		if res.OK {
			names = append(names, res.Channel)
		}
	}
	return names
}

func (r Report) Failed() []string {
	names := make([]string, 0, len(r.Results))
	for _, res := range r.Results {
		if !res.OK {
			names = append(names, res.Channel)
		}
	}
	return names
}

type Notifier struct {
	channels []Channel
	logger   *zap.Logger
}

func New(logger *zap.Logger, channels ...Channel) *Notifier {
	return &Notifier{channels: channels, logger: logger}
}

// FromConfig builds the Telegram, Discord and PushDeer channels, in that
// order, sharing one HTTP client with the configured timeout.
func FromConfig(cfg *config.Config, logger *zap.Logger) *Notifier {
	client := &http.Client{Timeout: cfg.Notify.Timeout}

	return New(logger,
		NewTelegram(cfg.Telegram, client),
		NewDiscord(cfg.Discord, client),
		NewPushDeer(cfg.PushDeer, client),
	)
}

// Channels returns the configured channel names in delivery order.
func (n *Notifier) Channels() []string {
	names := make([]string, len(n.channels))
	for i, ch := range n.channels {
		names[i] = ch.Name()
	}
	return names
}

// Notify sends message through every channel, one after the other, and
// logs which channels succeeded and which failed. It never fails itself.
func (n *Notifier) Notify(ctx context.Context, message string) Report {
	report := Report{Results: make([]Result, 0, len(n.channels))}

	for _, ch := range n.channels {
		res := ch.Send(ctx, message)

		switch {
		case res.OK:
		case errors.Is(res.Err, ErrNotConfigured):
			n.logger.Debug("channel not configured", zap.String("channel", res.Channel))
		default:
			n.logger.Warn("notification delivery failed", zap.String("channel", res.Channel), zap.Error(res.Err))
		}

		report.Results = append(report.Results, res)
	}

	n.logger.Info("notification sent",
		zap.Strings("succeeded", report.Succeeded()),
		zap.Strings("failed", report.Failed()),
	)

	return report
}

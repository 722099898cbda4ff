// Package filter decides which hot list tokens are worth an alert.
package filter

import (
	"time"

	"tokenwatch/config"
	"tokenwatch/pkg/chainfm"

	"github.com/shopspring/decimal"
)

// Thresholds configure the alert predicate:
//
//	buyAmount >= MinBuyAmount
//	OR (marketCap >= MinMarketCap AND now - createdAt <= MaxAge)
type Thresholds struct {
	MinBuyAmount decimal.Decimal
	MinMarketCap decimal.Decimal
	MaxAge       time.Duration
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		MinBuyAmount: decimal.NewFromInt(15000),
		MinMarketCap: decimal.NewFromInt(100000),
		MaxAge:       time.Hour,
	}
}

func ThresholdsFromConfig(cfg config.FilterConfig) Thresholds {
	return Thresholds{
		MinBuyAmount: decimal.NewFromFloat(cfg.MinBuyAmount),
		MinMarketCap: decimal.NewFromFloat(cfg.MinMarketCap),
		MaxAge:       cfg.MaxAge,
	}
}

type Filter struct {
	thresholds Thresholds
	now        func() time.Time
}

// New returns a Filter. A nil now uses time.Now.
func New(thresholds Thresholds, now func() time.Time) *Filter {
	if now == nil {
		now = time.Now
	}
	return &Filter{thresholds: thresholds, now: now}
}

// Apply returns the qualifying tokens in input order. The clock is read
// once per call.
func (f *Filter) Apply(tokens []chainfm.TokenRecord) []chainfm.TokenRecord {
	now := f.now()

	out := make([]chainfm.TokenRecord, 0, len(tokens))
	for _, token := range tokens {
		if f.Qualifies(token, now) {
			out = append(out, token)
		}
	}
	return out
}

// Qualifies evaluates the predicate for one token at now. A createdAt in
// the future gives a negative age, which passes the age check.
func (f *Filter) Qualifies(token chainfm.TokenRecord, now time.Time) bool {
	if token.BuyAmount.GreaterThanOrEqual(f.thresholds.MinBuyAmount) {
		return true
	}
	if !token.MarketCap.GreaterThanOrEqual(f.thresholds.MinMarketCap) {
		return false
	}
	return Age(token, now).LessThanOrEqual(seconds(f.thresholds.MaxAge))
}

// Age is now minus createdAt, in seconds. createdAt is milliseconds.
func Age(token chainfm.TokenRecord, now time.Time) decimal.Decimal {
	nowSeconds := decimal.New(now.UnixNano(), -9)
	createdSeconds := token.CreatedAt.Shift(-3)
	return nowSeconds.Sub(createdSeconds)
}

func seconds(d time.Duration) decimal.Decimal {
	return decimal.New(int64(d), -9)
}

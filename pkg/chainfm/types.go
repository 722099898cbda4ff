package chainfm

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

// Unknown replaces a missing token name or address.
const Unknown = "unknown"

// ErrMissingResult is returned when the response envelope has no result.
var ErrMissingResult = errors.New("response has no result")

// HotListResponse is the envelope returned by the hot list endpoint.
type HotListResponse struct {
	Result json.RawMessage `json:"result"` // Delay decoding; must be an array of token objects
}

// Number is a lenient decimal. JSON numbers and numeric strings decode to
// their value; null, absent, and non-numeric values decode to zero.
// Magnitudes beyond float64 range saturate: above it to ±MaxFloat64,
// below it to zero.
type Number struct {
	decimal.Decimal
}

// Orders of magnitude representable by a float64.
const (
	maxOrder = 308
	minOrder = -324
)

var maxNumber = decimal.NewFromFloat(math.MaxFloat64)

// NewNumber returns f as a Number.
func NewNumber(f float64) Number {
	return Number{decimal.NewFromFloat(f)}
}

// NewNumberFromInt returns i as a Number.
func NewNumberFromInt(i int64) Number {
	return Number{decimal.NewFromInt(i)}
}

// UnmarshalJSON never fails; see Number.
func (n *Number) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		n.Decimal = decimal.Zero
		return nil
	}
	n.Decimal = saturate(d)
	return nil
}

// saturate keeps the exponent small enough that comparisons, which rescale
// both operands to a common exponent, stay cheap.
func saturate(d decimal.Decimal) decimal.Decimal {
	if d.IsZero() {
		return decimal.Zero
	}

	order := int64(d.Exponent()) + int64(d.NumDigits()) - 1
	switch {
	case order > maxOrder:
		if d.Sign() < 0 {
			return maxNumber.Neg()
		}
		return maxNumber
	case order < minOrder:
		return decimal.Zero
	}
	return d
}

// text decodes any JSON scalar into a display string. Strings keep their
// value, numbers and booleans keep their literal, and null, objects and
// arrays become empty.
type text string

func (t *text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*t = ""
	if len(data) == 0 {
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			*t = text(s)
		}
	case '{', '[', 'n':
	default:
		*t = text(data)
	}
	return nil
}

// TokenRecord is one entry of the hot list.
type TokenRecord struct {
	Name      string `json:"name"`
	Address   string `json:"address"`   // contract (mint) address
	BuyAmount Number `json:"buyAmount"` // observed buy volume, USD
	MarketCap Number `json:"marketCap"` // USD
	CreatedAt Number `json:"createdAt"` // listing time, ms since epoch
}

// UnmarshalJSON decodes a hot list entry. Only a non-object entry fails;
// a malformed field falls back to its default instead of dropping the token.
func (t *TokenRecord) UnmarshalJSON(data []byte) error {
	var w struct {
		Name      text   `json:"name"`
		Address   text   `json:"address"`
		BuyAmount Number `json:"buyAmount"`
		MarketCap Number `json:"marketCap"`
		CreatedAt Number `json:"createdAt"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*t = TokenRecord{
		Name:      string(w.Name),
		Address:   string(w.Address),
		BuyAmount: w.BuyAmount,
		MarketCap: w.MarketCap,
		CreatedAt: w.CreatedAt,
	}
	if t.Name == "" {
		t.Name = Unknown
	}
	if t.Address == "" {
		t.Address = Unknown
	}
	return nil
}

// HotList is the decoded result of one hot list request.
type HotList struct {
	Tokens []TokenRecord
	// Skipped counts result entries that were not token objects.
	Skipped int
}

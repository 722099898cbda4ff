package snapshot

import (
	"context"
	"errors"
	"testing"

	"tokenwatch/pkg/chainfm"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type stubClient struct {
	list *chainfm.HotList
	err  error
}

func (s *stubClient) GetHotList(context.Context) (*chainfm.HotList, error) {
	return s.list, s.err
}

// go test -v --run TestLoadTokens
func TestLoadTokens(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	loader := &TokenLoader{
		RestClient: &stubClient{list: &chainfm.HotList{
			Tokens:  []chainfm.TokenRecord{{Name: "A"}, {Name: "B"}},
			Skipped: 1,
		}},
		Logger: zap.New(core),
	}

	tokens := loader.LoadTokens(context.Background())

	assert.Len(t, tokens, 2)
	assert.Equal(t, "A", tokens[0].Name)
	assert.Equal(t, 1, logs.FilterMessage("skipped malformed hot list entries").Len())
}

// go test -v --run TestLoadTokensSwallowsErrors
func TestLoadTokensSwallowsErrors(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	loader := &TokenLoader{
		RestClient: &stubClient{err: errors.New("connection refused")},
		Logger:     zap.New(core),
	}

	tokens := loader.LoadTokens(context.Background())

	assert.NotNil(t, tokens)
	assert.Empty(t, tokens)

	entries := logs.FilterMessage("failed to load hot list").All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	}
}

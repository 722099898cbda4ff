package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"tokenwatch/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// recorder is a fake endpoint that answers every request with status and
// keeps the last decoded JSON body.
type recorder struct {
	hits   atomic.Int32
	path   atomic.Value
	body   atomic.Value
	status int
}

func newRecorder(t *testing.T, status int) (*recorder, *httptest.Server) {
	t.Helper()
	rec := &recorder{status: status}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.hits.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		rec.path.Store(r.URL.Path)
		rec.body.Store(body)
		w.WriteHeader(rec.status)
	}))
	t.Cleanup(server.Close)
	return rec, server
}

func (r *recorder) lastBody() map[string]string {
	body, _ := r.body.Load().(map[string]string)
	return body
}

func (r *recorder) lastPath() string {
	path, _ := r.path.Load().(string)
	return path
}

func testConfig(telegramURL, discordURL, pushDeerURL string) *config.Config {
	return &config.Config{
		Notify:   config.NotifyConfig{Timeout: time.Second},
		Telegram: config.TelegramConfig{APIURL: telegramURL, BotToken: "123:abc", ChatID: "-1001"},
		Discord:  config.DiscordConfig{WebhookURL: discordURL + "/api/webhooks/1/token"},
		PushDeer: config.PushDeerConfig{APIURL: pushDeerURL, Key: "PDU1"},
	}
}

// go test -v --run TestNotifyAllChannelsSucceed
func TestNotifyAllChannelsSucceed(t *testing.T) {
	tg, tgServer := newRecorder(t, http.StatusOK)
	dc, dcServer := newRecorder(t, http.StatusNoContent)
	pd, pdServer := newRecorder(t, http.StatusOK)

	core, logs := observer.New(zapcore.InfoLevel)
	n := FromConfig(testConfig(tgServer.URL, dcServer.URL, pdServer.URL), zap.New(core))

	report := n.Notify(context.Background(), "hello")

	assert.Equal(t, []string{"Telegram", "Discord", "PushDeer"}, report.Succeeded())
	assert.Empty(t, report.Failed())

	assert.Equal(t, "/bot123:abc/sendMessage", tg.lastPath())
	assert.Equal(t, map[string]string{"chat_id": "-1001", "text": "hello"}, tg.lastBody())

	assert.Equal(t, "/api/webhooks/1/token", dc.lastPath())
	assert.Equal(t, map[string]string{"content": "hello"}, dc.lastBody())

	assert.Equal(t, "/message/push", pd.lastPath())
	assert.Equal(t, map[string]string{"pushkey": "PDU1", "type": "text", "text": "hello"}, pd.lastBody())

	summary := logs.FilterMessage("notification sent").All()
	require.Len(t, summary, 1)
	assert.Equal(t, []any{"Telegram", "Discord", "PushDeer"}, summary[0].ContextMap()["succeeded"])
}

// go test -v --run TestNotifyChannelsFailIndependently
func TestNotifyChannelsFailIndependently(t *testing.T) {
	// Telegram returns 500, Discord returns 200 instead of 204, PushDeer succeeds.
	tg, tgServer := newRecorder(t, http.StatusInternalServerError)
	dc, dcServer := newRecorder(t, http.StatusOK)
	pd, pdServer := newRecorder(t, http.StatusOK)

	n := FromConfig(testConfig(tgServer.URL, dcServer.URL, pdServer.URL), zap.NewNop())

	report := n.Notify(context.Background(), "hello")

	assert.Equal(t, []string{"PushDeer"}, report.Succeeded())
	assert.Equal(t, []string{"Telegram", "Discord"}, report.Failed())
	assert.EqualValues(t, 1, tg.hits.Load())
	assert.EqualValues(t, 1, dc.hits.Load())
	assert.EqualValues(t, 1, pd.hits.Load())

	for _, res := range report.Results[:2] {
		assert.Error(t, res.Err)
		assert.False(t, errors.Is(res.Err, ErrNotConfigured))
	}
}

// go test -v --run TestNotifyUnconfiguredChannels
func TestNotifyUnconfiguredChannels(t *testing.T) {
	tg, tgServer := newRecorder(t, http.StatusOK)
	_, pdServer := newRecorder(t, http.StatusOK)

	cfg := &config.Config{
		Notify:   config.NotifyConfig{Timeout: time.Second},
		Telegram: config.TelegramConfig{APIURL: tgServer.URL},
		PushDeer: config.PushDeerConfig{APIURL: pdServer.URL},
	}
	n := FromConfig(cfg, zap.NewNop())

	report := n.Notify(context.Background(), "hello")

	assert.Empty(t, report.Succeeded())
	assert.Equal(t, []string{"Telegram", "Discord", "PushDeer"}, report.Failed())
	for _, res := range report.Results {
		assert.ErrorIs(t, res.Err, ErrNotConfigured)
	}
	assert.EqualValues(t, 0, tg.hits.Load())
}

// go test -v --run TestTelegramNeedsChatID
func TestTelegramNeedsChatID(t *testing.T) {
	tg, server := newRecorder(t, http.StatusOK)
	ch := NewTelegram(config.TelegramConfig{APIURL: server.URL, BotToken: "123:abc"}, server.Client())

	res := ch.Send(context.Background(), "hi")

	assert.False(t, res.OK)
	assert.ErrorIs(t, res.Err, ErrNotConfigured)
	assert.EqualValues(t, 0, tg.hits.Load())
}

// go test -v --run TestTelegramRedactsToken
func TestTelegramRedactsToken(t *testing.T) {
	ch := NewTelegram(config.TelegramConfig{APIURL: "http://127.0.0.1:0", BotToken: "123:secret", ChatID: "1"}, &http.Client{Timeout: time.Second})

	res := ch.Send(context.Background(), "hi")

	require.Error(t, res.Err)
	assert.NotContains(t, res.Err.Error(), "123:secret")
}

// go test -v --run TestTelegramRedactedErrorKeepsCause
func TestTelegramRedactedErrorKeepsCause(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	ch := NewTelegram(config.TelegramConfig{APIURL: server.URL, BotToken: "123:secret", ChatID: "1"}, &http.Client{})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	res := ch.Send(ctx, "hi")

	require.Error(t, res.Err)
	assert.NotContains(t, res.Err.Error(), "123:secret")
	assert.True(t, errors.Is(res.Err, context.DeadlineExceeded))

	var urlErr *url.Error
	assert.True(t, errors.As(res.Err, &urlErr))
}

// go test -v --run TestRedact
func TestRedact(t *testing.T) {
	cause := errors.New("boom")
	err := redact(fmt.Errorf("post https://hooks.example/abc: %w", cause), "https://hooks.example/abc")

	assert.Equal(t, "post ***: boom", err.Error())
	assert.True(t, errors.Is(err, cause))

	plain := errors.New("no secret here")
	assert.Same(t, plain, redact(plain, "abc"))
	assert.Same(t, plain, redact(plain, ""))
}

// go test -v --run TestChannelTimeout
func TestChannelTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	ch := NewPushDeer(config.PushDeerConfig{APIURL: server.URL, Key: "PDU1"}, &http.Client{Timeout: 50 * time.Millisecond})

	res := ch.Send(context.Background(), "hi")

	assert.False(t, res.OK)
	assert.Error(t, res.Err)
	assert.Equal(t, "PushDeer", res.Channel)
}

// go test -v --run TestNotifyNoChannels
func TestNotifyNoChannels(t *testing.T) {
	report := New(zap.NewNop()).Notify(context.Background(), "hello")

	assert.Empty(t, report.Results)
	assert.Empty(t, report.Succeeded())
	assert.Empty(t, report.Failed())
}

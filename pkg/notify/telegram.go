package notify

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"tokenwatch/config"
)

const telegramName = "Telegram"

type Telegram struct {
	apiURL   string
	botToken string
	chatID   string
	client   *http.Client
}

type telegramMessage struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

func NewTelegram(cfg config.TelegramConfig, client *http.Client) *Telegram {
	return &Telegram{
		apiURL:   strings.TrimRight(cfg.APIURL, "/"),
		botToken: cfg.BotToken,
		chatID:   cfg.ChatID,
		client:   client,
	}
}

func (t *Telegram) Name() string { return telegramName }

// Send calls sendMessage. Both the bot token and the chat id are required.
func (t *Telegram) Send(ctx context.Context, message string) Result {
	if t.botToken == "" || t.chatID == "" {
		return failure(telegramName, ErrNotConfigured)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.apiURL, t.botToken)
	payload := telegramMessage{ChatID: t.chatID, Text: message}

	if err := postJSON(ctx, t.client, url, payload, http.StatusOK); err != nil {
		// The URL carries the bot token; keep it out of logs.
		return failure(telegramName, redact(err, t.botToken))
	}
	return success(telegramName)
}

// redactedError masks a secret in the message and keeps the cause
// reachable for errors.Is and errors.As.
type redactedError struct {
	msg string
	err error
}

func (e *redactedError) Error() string { return e.msg }

func (e *redactedError) Unwrap() error { return e.err }

func redact(err error, secret string) error {
	msg := err.Error()
	if secret == "" || !strings.Contains(msg, secret) {
		return err
	}
	return &redactedError{msg: strings.ReplaceAll(msg, secret, "***"), err: err}
}

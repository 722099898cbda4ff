package notify

import (
	"context"
	"net/http"

	"tokenwatch/config"
)

const discordName = "Discord"

type Discord struct {
	webhookURL string
	client     *http.Client
}

type discordMessage struct {
	Content string `json:"content"`
}

func NewDiscord(cfg config.DiscordConfig, client *http.Client) *Discord {
	return &Discord{webhookURL: cfg.WebhookURL, client: client}
}

func (d *Discord) Name() string { return discordName }

// Send posts to the webhook. Discord answers 204 No Content on success;
// any other status, including 200, counts as a failure.
func (d *Discord) Send(ctx context.Context, message string) Result {
	if d.webhookURL == "" {
		return failure(discordName, ErrNotConfigured)
	}

	if err := postJSON(ctx, d.client, d.webhookURL, discordMessage{Content: message}, http.StatusNoContent); err != nil {
		return failure(discordName, redact(err, d.webhookURL))
	}
	return success(discordName)
}

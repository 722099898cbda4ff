package notify

import (
	"context"
	"net/http"
	"strings"

	"tokenwatch/config"
)

const pushDeerName = "PushDeer"

type PushDeer struct {
	apiURL string
	key    string
	client *http.Client
}

type pushDeerMessage struct {
	PushKey string `json:"pushkey"`
	Type    string `json:"type"`
	Text    string `json:"text"`
}

func NewPushDeer(cfg config.PushDeerConfig, client *http.Client) *PushDeer {
	return &PushDeer{
		apiURL: strings.TrimRight(cfg.APIURL, "/"),
		key:    cfg.Key,
		client: client,
	}
}

func (p *PushDeer) Name() string { return pushDeerName }

func (p *PushDeer) Send(ctx context.Context, message string) Result {
	if p.key == "" {
		return failure(pushDeerName, ErrNotConfigured)
	}

	payload := pushDeerMessage{PushKey: p.key, Type: "text", Text: message}
	if err := postJSON(ctx, p.client, p.apiURL+"/message/push", payload, http.StatusOK); err != nil {
		return failure(pushDeerName, err)
	}
	return success(pushDeerName)
}

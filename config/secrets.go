package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

const parameterTimeout = 5 * time.Second

// ParameterStore is the subset of the SSM client used to resolve secrets.
type ParameterStore interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// NewParameterStore builds an SSM client from the default AWS credential chain.
func NewParameterStore(ctx context.Context) (ParameterStore, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, parameterTimeout)
	defer cancel()

	cfg, err := awsconfig.LoadDefaultConfig(ctxWithTimeout)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return ssm.NewFromConfig(cfg), nil
}

// secretRefs maps each credential to the environment variable name that
// doubles as its parameter name under the SSM prefix.
func (c *Config) secretRefs() []struct {
	name  string
	value *string
} {
	return []struct {
		name  string
		value *string
	}{
		{"TELEGRAM_BOT_TOKEN", &c.Telegram.BotToken},
		{"TELEGRAM_CHAT_ID", &c.Telegram.ChatID},
		{"DISCORD_WEBHOOK_URL", &c.Discord.WebhookURL},
		{"PUSHDEER_KEY", &c.PushDeer.Key},
		{"POSTGRES_PASSWORD", &c.Postgres.Password},
	}
}

// ResolveSecrets fills every empty credential from the parameter store.
// Values already set by the config file or environment win. A failed
// lookup leaves the credential empty; all failures are returned joined so
// the caller can log them and carry on.
func (c *Config) ResolveSecrets(ctx context.Context, store ParameterStore) error {
	var errs []error
	for _, ref := range c.secretRefs() {
		if *ref.value != "" {
			continue
		}

		value, err := getParameterStoreValue(ctx, store, c.Secrets.SSMPrefix+ref.name, true)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", ref.name, err))
			continue
		}
		*ref.value = value
	}
	return errors.Join(errs...)
}

func getParameterStoreValue(ctx context.Context, store ParameterStore, parameterName string, decrypt bool) (string, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, parameterTimeout)
	defer cancel()

	result, err := store.GetParameter(ctxWithTimeout, &ssm.GetParameterInput{
		Name:           aws.String(parameterName),
		WithDecryption: aws.Bool(decrypt),
	})
	if err != nil {
		return "", err
	}

	if result.Parameter == nil || result.Parameter.Value == nil {
		return "", nil
	}

	return *result.Parameter.Value, nil
}

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ChainFM  ChainFMConfig  `mapstructure:"chainfm"`
	Filter   FilterConfig   `mapstructure:"filter"`
	Notify   NotifyConfig   `mapstructure:"notify"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Discord  DiscordConfig  `mapstructure:"discord"`
	PushDeer PushDeerConfig `mapstructure:"pushdeer"`
	Schedule ScheduleConfig `mapstructure:"schedule"`
	Secrets  SecretsConfig  `mapstructure:"secrets"`
	Log      LogConfig      `mapstructure:"log"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type ChainFMConfig struct {
	REST RESTConfig `mapstructure:"rest"`
}

type RESTConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
	Referer   string        `mapstructure:"referer"`
}

// FilterConfig holds the alert thresholds. Amounts are in USD.
type FilterConfig struct {
	MinBuyAmount float64       `mapstructure:"min_buy_amount"`
	MinMarketCap float64       `mapstructure:"min_market_cap"`
	MaxAge       time.Duration `mapstructure:"max_age"`
}

type NotifyConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

type TelegramConfig struct {
	APIURL   string `mapstructure:"api_url"`
	BotToken string `mapstructure:"bot_token"` // TELEGRAM_BOT_TOKEN
	ChatID   string `mapstructure:"chat_id"`   // TELEGRAM_CHAT_ID
}

type DiscordConfig struct {
	WebhookURL string `mapstructure:"webhook_url"` // DISCORD_WEBHOOK_URL
}

type PushDeerConfig struct {
	APIURL string `mapstructure:"api_url"`
	Key    string `mapstructure:"key"` // PUSHDEER_KEY
}

// ScheduleConfig controls the in-process loop. A zero interval means a
// single run, which is what an external cron expects.
type ScheduleConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

// SecretsConfig selects where channel credentials come from.
// Source is "env" (default) or "ssm".
type SecretsConfig struct {
	Source    string `mapstructure:"source"`
	SSMPrefix string `mapstructure:"ssm_prefix"`
}

// LogConfig defines the logger configuration options.
type LogConfig struct {
	Level       string `mapstructure:"level"`       // log level: "debug", "info", "warn", "error"
	Format      string `mapstructure:"format"`      // log format: "json" or "console"
	OutputFile  string `mapstructure:"output_file"` // file path to store logs (optional)
	Environment string `mapstructure:"environment"` // environment: "dev" or "prod"
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("chainfm.rest.base_url", "https://api.chain.fm")
	v.SetDefault("chainfm.rest.timeout", 10*time.Second)
	v.SetDefault("chainfm.rest.user_agent", "Mozilla/5.0")
	v.SetDefault("chainfm.rest.referer", "https://chain.fm/")

	v.SetDefault("filter.min_buy_amount", 15000.0)
	v.SetDefault("filter.min_market_cap", 100000.0)
	v.SetDefault("filter.max_age", time.Hour)

	v.SetDefault("notify.timeout", 10*time.Second)

	// Credentials default to empty so AutomaticEnv can still bind them.
	v.SetDefault("telegram.api_url", "https://api.telegram.org")
	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.chat_id", "")
	v.SetDefault("discord.webhook_url", "")
	v.SetDefault("pushdeer.api_url", "https://api2.pushdeer.com")
	v.SetDefault("pushdeer.key", "")

	v.SetDefault("schedule.interval", time.Duration(0))

	v.SetDefault("secrets.source", "env")
	v.SetDefault("secrets.ssm_prefix", "/tokenwatch/")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output_file", "")
	v.SetDefault("log.environment", "prod")

	v.SetDefault("postgres.enabled", false)
	v.SetDefault("postgres.create_db", false)
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "postgres")
	v.SetDefault("postgres.password", "")
	v.SetDefault("postgres.dbname", "tokenwatch")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.timezone", "UTC")
	v.SetDefault("postgres.max_open_conns", 5)
	v.SetDefault("postgres.max_idle_conns", 2)
	v.SetDefault("postgres.conn_max_lifetime", time.Hour)
	v.SetDefault("postgres.retention", time.Duration(0))
}

// Load loads application configuration using Viper.
// It reads path (or config.yaml from the working directory or ./config when
// path is empty) and overrides with environment variables. A missing
// config.yaml is not an error: defaults plus the environment are enough.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config") // config.yaml
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Support environment variables with dot notation (e.g., TELEGRAM_BOT_TOKEN)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects settings no run could work with. Missing channel
// credentials are not validated here; they only disable a channel.
func (c *Config) Validate() error {
	if c.ChainFM.REST.BaseURL == "" {
		return errors.New("chainfm.rest.base_url is required")
	}
	if c.ChainFM.REST.Timeout <= 0 {
		return errors.New("chainfm.rest.timeout must be positive")
	}
	if c.Notify.Timeout <= 0 {
		return errors.New("notify.timeout must be positive")
	}
	if c.Schedule.Interval < 0 {
		return errors.New("schedule.interval must not be negative")
	}
	switch c.Secrets.Source {
	case "env", "ssm":
	default:
		return fmt.Errorf("secrets.source must be \"env\" or \"ssm\", got %q", c.Secrets.Source)
	}
	return nil
}

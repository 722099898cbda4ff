package config

import (
	"fmt"
	"time"
)

// PostgresConfig defines the configuration for the optional delivery journal.
type PostgresConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	CreateDB bool   `mapstructure:"create_db"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"` // POSTGRES_PASSWORD
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
	TimeZone string `mapstructure:"timezone"`

	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`

	// Retention prunes journal rows older than this at startup; 0 keeps all.
	Retention time.Duration `mapstructure:"retention"`
}

// DSN renders a keyword/value connection string. An empty password is left
// out; "password= dbname=x" would parse as the password "dbname=x".
func (cfg *PostgresConfig) DSN() string {
	dsn := fmt.Sprintf("host=%s port=%d user=%s", cfg.Host, cfg.Port, cfg.User)
	if cfg.Password != "" {
		dsn += fmt.Sprintf(" password=%s", cfg.Password)
	}
	dsn += fmt.Sprintf(" dbname=%s sslmode=%s", cfg.DBName, cfg.SSLMode)

	if cfg.TimeZone != "" {
		dsn += fmt.Sprintf(" TimeZone=%s", cfg.TimeZone)
	}

	return dsn
}

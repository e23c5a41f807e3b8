// SPDX-License-Identifier: GPL-3.0-only

package config

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	JWTSecret string `env:"JWT_SECRET, default=default_very_secret_key"`
	AppURL    string `env:"APP_URL,   default=https://petdor.app"`

	DBDialect   string `env:"DB_DIALECT,   default=sqlite"`
	DBPath      string `env:"DB_PATH,      default=petdor.db"`
	PostgresDSN string `env:"POSTGRES_DSN"`
	MySQLDSN    string `env:"MYSQL_DSN"`

	// ResetTokenTTL bounds the lifetime of password reset tokens.
	ResetTokenTTL time.Duration `env:"RESET_TOKEN_TTL, default=1h"`

	// OperatorReportEmail always receives a copy of every compiled report.
	OperatorReportEmail string        `env:"OPERATOR_REPORT_EMAIL, default=relatorio@petdor.app"`
	MailTimeout         time.Duration `env:"MAIL_TIMEOUT, default=15s"`
	MockEmail           bool          `env:"MOCK_EMAIL_NOTIFICATIONS, default=false"`
	EmailTemplatesDir   string        `env:"EMAIL_TEMPLATES_DIR, default=email_templates"`

	SMTP SMTPConfig
}

type SMTPConfig struct {
	Host      string `env:"SMTP_HOST"`
	Port      int    `env:"SMTP_PORT, default=465"`
	Username  string `env:"SMTP_USERNAME"`
	Password  string `env:"SMTP_PASSWORD"`
	FromEmail string `env:"SMTP_FROM_EMAIL"`
	FromName  string `env:"SMTP_FROM_NAME, default=PET DOR"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SPDX-License-Identifier: GPL-3.0-only

package notifications

import (
	"petdor-server/commons"
	"petdor-server/config"
)

// NewMailer selects the mail provider from configuration: SMTP when
// configured, otherwise the mock provider.
func NewMailer(cfg *config.Config) (Mailer, error) {
	if cfg.MockEmail || cfg.SMTP.Host == "" {
		commons.Logger.Debug("Mock email notifications enabled, using mock mailer")
		return NewMockMailer(cfg.EmailTemplatesDir), nil
	}
	return NewSMTPMailer(cfg.SMTP, cfg.EmailTemplatesDir)
}

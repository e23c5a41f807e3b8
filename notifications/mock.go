// SPDX-License-Identifier: GPL-3.0-only

package notifications

import (
	"context"
	"fmt"
	"petdor-server/commons"
)

// MockMailer logs messages instead of sending them, for local runs and
// tests. Selected through MOCK_EMAIL_NOTIFICATIONS.
type MockMailer struct {
	templatesDir string
}

func NewMockMailer(templatesDir string) *MockMailer {
	return &MockMailer{templatesDir: templatesDir}
}

func (m *MockMailer) Send(ctx context.Context, msg Message) error {
	commons.Logger.Info("=== MOCK EMAIL NOTIFICATION ===")
	commons.Logger.Infof("To: %s", msg.To)
	if msg.ToName != "" {
		commons.Logger.Infof("To Name: %s", msg.ToName)
	}
	commons.Logger.Infof("Subject: %s", msg.Subject)
	commons.Logger.Infof("Template: %s", msg.Template)

	if len(msg.Variables) > 0 {
		commons.Logger.Info("Variables:")
		for key, value := range msg.Variables {
			commons.Logger.Infof("  %s: %v", key, value)
		}
	}

	if msg.Attachment != nil {
		commons.Logger.Infof("Attachment: %s (%d bytes)", msg.Attachment.Filename, len(msg.Attachment.Bytes))
	}

	if msg.Template != "" {
		htmlBody, err := renderTemplate(m.templatesDir, msg.Template, msg.Variables)
		if err != nil {
			commons.Logger.Errorf("Failed to render template: %v", err)
			return &MailError{Kind: MailOther, Err: fmt.Errorf("failed to render template: %w", err)}
		}

		commons.Logger.Info("=== RENDERED EMAIL CONTENT ===")
		fmt.Println(htmlBody)
		commons.Logger.Info("=== END EMAIL CONTENT ===")
	}

	commons.Logger.Info("=== EMAIL MOCK COMPLETE ===")
	return nil
}


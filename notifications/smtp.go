// SPDX-License-Identifier: GPL-3.0-only

package notifications

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/textproto"
	"petdor-server/commons"
	"petdor-server/config"
	"strings"

	"gopkg.in/gomail.v2"
)

// SMTPMailer delivers mail over SMTP with implicit TLS using gomail.
type SMTPMailer struct {
	cfg          config.SMTPConfig
	templatesDir string
}

func NewSMTPMailer(cfg config.SMTPConfig, templatesDir string) (*SMTPMailer, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("SMTP_HOST is not set")
	}
	if cfg.Username == "" {
		return nil, fmt.Errorf("SMTP_USERNAME is not set")
	}
	if cfg.Password == "" {
		return nil, fmt.Errorf("SMTP_PASSWORD is not set")
	}
	if cfg.FromEmail == "" {
		return nil, fmt.Errorf("SMTP_FROM_EMAIL is not set")
	}
	return &SMTPMailer{cfg: cfg, templatesDir: templatesDir}, nil
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return &MailError{Kind: MailOther, Err: fmt.Errorf("'to' field is required")}
	}
	if msg.Subject == "" {
		return &MailError{Kind: MailOther, Err: fmt.Errorf("'subject' field is required")}
	}
	if msg.Template == "" {
		return &MailError{Kind: MailOther, Err: fmt.Errorf("'template' field is required")}
	}

	htmlBody, err := renderTemplate(m.templatesDir, msg.Template, msg.Variables)
	if err != nil {
		return &MailError{Kind: MailOther, Err: err}
	}

	message := gomail.NewMessage()
	message.SetHeader("From", message.FormatAddress(m.cfg.FromEmail, m.cfg.FromName))
	message.SetHeader("To", message.FormatAddress(msg.To, msg.ToName))
	message.SetHeader("Subject", msg.Subject)
	message.SetBody("text/html", htmlBody)
	if msg.Attachment != nil {
		data := msg.Attachment.Bytes
		message.Attach(msg.Attachment.Filename, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := io.Copy(w, bytes.NewReader(data))
			return err
		}))
	}

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	dialer.TLSConfig = &tls.Config{
		ServerName:         m.cfg.Host,
		InsecureSkipVerify: false,
	}

	// gomail has no context support, so the send runs in a goroutine and
	// the deadline is enforced here. An abandoned attempt finishes in the
	// background and its result is discarded.
	done := make(chan error, 1)
	go func() {
		done <- dialer.DialAndSend(message)
	}()

	select {
	case <-ctx.Done():
		return &MailError{Kind: MailTimeout, Err: ctx.Err()}
	case err := <-done:
		if err != nil {
			commons.Logger.Error("Failed to send email via SMTP:", err)
			return classifySMTPError(err)
		}
	}
	return nil
}

func classifySMTPError(err error) *MailError {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &MailError{Kind: MailTimeout, Err: err}
	}

	code := 0
	var protoErr *textproto.Error
	if errors.As(err, &protoErr) {
		code = protoErr.Code
	} else {
		// gomail flattens server replies into the error text, so fall back
		// to scanning for the reply code.
		for _, c := range []int{530, 534, 535, 550, 551, 553} {
			if strings.Contains(err.Error(), fmt.Sprintf("%d ", c)) {
				code = c
				break
			}
		}
	}

	switch code {
	case 530, 534, 535:
		return &MailError{Kind: MailAuthFailed, Err: err}
	case 550, 551, 553:
		return &MailError{Kind: MailRecipientRejected, Err: err}
	}
	return &MailError{Kind: MailOther, Err: err}
}

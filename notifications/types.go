// SPDX-License-Identifier: GPL-3.0-only

package notifications

import "context"

type MailErrorKind string

const (
	MailAuthFailed        MailErrorKind = "AUTH_FAILED"
	MailRecipientRejected MailErrorKind = "RECIPIENT_REJECTED"
	MailTimeout           MailErrorKind = "TIMEOUT"
	MailOther             MailErrorKind = "OTHER"
)

// MailError is the typed failure surface of the mail collaborator.
type MailError struct {
	Kind MailErrorKind
	Err  error
}

func (e *MailError) Error() string {
	if e.Err != nil {
		return string(e.Kind) + ": " + e.Err.Error()
	}
	return string(e.Kind)
}

func (e *MailError) Unwrap() error {
	return e.Err
}

type Attachment struct {
	Filename string
	Bytes    []byte
}

type Message struct {
	To       string
	ToName   string
	Subject  string
	Template string
	// Variables feed the HTML template for the body.
	Variables  map[string]any
	Attachment *Attachment
}

// Mailer sends a single message. Implementations must respect ctx deadlines
// and surface failures as *MailError.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SPDX-License-Identifier: GPL-3.0-only

// Package delivery fans a compiled report out to its recipients and reports
// a per-recipient outcome, never an aggregate one.
package delivery

import (
	"context"
	"errors"
	"fmt"
	"petdor-server/notifications"
	"petdor-server/report"
	"petdor-server/scoring"
	"sync"
	"time"
)

type Outcome struct {
	Recipient string
	Delivered bool
	// Reason holds the failure kind for undelivered recipients.
	Reason string
}

type Report struct {
	TutorName string
	PetName   string
	Species   scoring.Species
	Percent   float64
	PDF       []byte
}

type Dispatcher struct {
	mailer        notifications.Mailer
	operatorEmail string
	timeout       time.Duration
}

// NewDispatcher wires the mail collaborator. operatorEmail always receives
// a copy of every report; timeout bounds each individual send.
func NewDispatcher(mailer notifications.Mailer, operatorEmail string, timeout time.Duration) *Dispatcher {
	return &Dispatcher{mailer: mailer, operatorEmail: operatorEmail, timeout: timeout}
}

// Dispatch sends the report to the operator address plus the given
// recipients, deduplicated in order. Sends run concurrently and all are
// joined before returning; one recipient's failure never blocks another's
// delivery.
func (d *Dispatcher) Dispatch(ctx context.Context, rpt Report, recipients []string) []Outcome {
	targets := d.dedupe(recipients)
	outcomes := make([]Outcome, len(targets))

	var wg sync.WaitGroup
	for i, recipient := range targets {
		wg.Add(1)
		go func(i int, recipient string) {
			defer wg.Done()
			outcomes[i] = d.sendOne(ctx, rpt, recipient)
		}(i, recipient)
	}
	wg.Wait()

	return outcomes
}

func (d *Dispatcher) sendOne(ctx context.Context, rpt Report, recipient string) Outcome {
	sendCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	band := scoring.Classify(rpt.Percent)
	msg := notifications.Message{
		To:       recipient,
		Subject:  fmt.Sprintf("PET DOR report for %s", rpt.PetName),
		Template: "report",
		Variables: map[string]any{
			"tutor_name": rpt.TutorName,
			"pet_name":   rpt.PetName,
			"species":    string(rpt.Species),
			"percent":    fmt.Sprintf("%.1f", rpt.Percent),
			"band":       string(band),
			"advice":     band.Advice(),
		},
		Attachment: &notifications.Attachment{
			Filename: report.Filename(rpt.PetName),
			Bytes:    rpt.PDF,
		},
	}

	if err := d.mailer.Send(sendCtx, msg); err != nil {
		return Outcome{Recipient: recipient, Delivered: false, Reason: failureReason(err)}
	}
	return Outcome{Recipient: recipient, Delivered: true}
}

// dedupe keeps first occurrences in order, with the operator backup address
// always in front.
func (d *Dispatcher) dedupe(recipients []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(recipients)+1)
	for _, r := range append([]string{d.operatorEmail}, recipients...) {
		if r == "" || seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out
}

func failureReason(err error) string {
	var mailErr *notifications.MailError
	if errors.As(err, &mailErr) {
		return string(mailErr.Kind)
	}
	return string(notifications.MailOther)
}

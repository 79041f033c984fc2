package mailer

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// Sender delivers a structured HTML email: subject, recipients and a rendered
// body, with the transport building the wire format itself.
type Sender interface {
	Send(ctx context.Context, params SendParams) error
}

// RawSender delivers a finished RFC 2822 MIME payload as-is. Used for report
// emails that carry attachments, where the payload is built by pkg/rawmail.
type RawSender interface {
	SendRaw(ctx context.Context, from string, to []string, raw []byte) error
}

// SendParams describes one structured outbound email.
type SendParams struct {
	To       []string `json:"to"`
	Subject  string   `json:"subject"`
	BodyHTML string   `json:"body_html"`
	Tag      string   `json:"tag,omitempty"` // Optional, for delivery analytics
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Validate checks that the parameters can form a deliverable email.
func (p SendParams) Validate() error {
	if len(p.To) == 0 {
		return fmt.Errorf("%w: at least one recipient is required", ErrInvalidParams)
	}
	for _, to := range p.To {
		if strings.TrimSpace(to) == "" {
			return fmt.Errorf("%w: empty recipient address", ErrInvalidParams)
		}
		if !emailRegex.MatchString(to) {
			return fmt.Errorf("%w: %q is not a valid email address", ErrInvalidParams, to)
		}
	}
	if strings.TrimSpace(p.Subject) == "" {
		return fmt.Errorf("%w: subject is required", ErrInvalidParams)
	}
	if strings.TrimSpace(p.BodyHTML) == "" {
		return fmt.Errorf("%w: html body is required", ErrInvalidParams)
	}
	return nil
}

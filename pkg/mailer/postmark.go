package mailer

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrz1836/postmark"
)

// PostmarkAPI is the slice of the Postmark client used by postmarkSender.
type PostmarkAPI interface {
	SendEmail(ctx context.Context, email postmark.Email) (postmark.EmailResponse, error)
}

type postmarkSender struct {
	client PostmarkAPI
	config Config
}

// NewPostmarkSender creates a Postmark-backed structured email sender.
// Both tokens are required for runtime operation - this enforces explicit
// configuration rather than silent failures in production.
func NewPostmarkSender(cfg Config) (Sender, error) {
	if cfg.PostmarkServerToken == "" {
		return nil, fmt.Errorf("%w: PostmarkServerToken is required", ErrInvalidConfig)
	}
	if cfg.PostmarkAccountToken == "" {
		return nil, fmt.Errorf("%w: PostmarkAccountToken is required", ErrInvalidConfig)
	}
	if cfg.SenderEmail == "" {
		return nil, fmt.Errorf("%w: SenderEmail is required", ErrInvalidConfig)
	}
	if !emailRegex.MatchString(cfg.SenderEmail) {
		return nil, fmt.Errorf("%w: SenderEmail must be a valid email address", ErrInvalidConfig)
	}

	return &postmarkSender{
		client: postmark.NewClient(cfg.PostmarkServerToken, cfg.PostmarkAccountToken),
		config: cfg,
	}, nil
}

// MustNewPostmarkSender creates a Postmark sender that panics on invalid
// config, failing fast during startup.
func MustNewPostmarkSender(cfg Config) Sender {
	sender, err := NewPostmarkSender(cfg)
	if err != nil {
		panic(err)
	}
	return sender
}

// Send delivers one structured notification per recipient through Postmark's
// transactional API. The From header carries the Compact Connect display
// name; tracking stays disabled since these are operational reports, not
// marketing mail.
func (s *postmarkSender) Send(ctx context.Context, params SendParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	for _, to := range params.To {
		resp, err := s.client.SendEmail(ctx, postmark.Email{
			From:     fmt.Sprintf("Compact Connect <%s>", s.config.SenderEmail),
			To:       to,
			Subject:  params.Subject,
			Tag:      params.Tag,
			HTMLBody: params.BodyHTML,
		})
		if err != nil {
			return errors.Join(ErrFailedToSendEmail, err)
		}
		if resp.ErrorCode > 0 {
			return errors.Join(
				ErrFailedToSendEmail,
				fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message),
			)
		}
	}
	return nil
}

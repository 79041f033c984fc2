package mailer

import (
	"context"
	"errors"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// SESClient is the slice of the SES v2 API used by SESRawSender.
// Narrow by design so tests can substitute a mock.
type SESClient interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// SESOption configures a SESRawSender.
type SESOption func(*sesOptions)

type sesOptions struct {
	client SESClient
}

// WithSESClient sets a pre-configured SES client. Useful for testing.
func WithSESClient(client SESClient) SESOption {
	return func(o *sesOptions) { o.client = client }
}

// SESRawSender delivers finished MIME payloads through the SES v2 raw email
// API. The payload - headers, parts, boundaries - is taken verbatim; SES only
// handles envelope routing.
type SESRawSender struct {
	client SESClient
}

// NewSESRawSender creates a raw-message sender over SES.
func NewSESRawSender(ctx context.Context, cfg Config, opts ...SESOption) (*SESRawSender, error) {
	var o sesOptions
	for _, opt := range opts {
		opt(&o)
	}

	client := o.client
	if client == nil {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			return nil, errors.Join(ErrInvalidConfig, err)
		}
		client = sesv2.NewFromConfig(awsCfg)
	}
	return &SESRawSender{client: client}, nil
}

// SendRaw hands the finished message to SES. The from address and recipient
// list repeat the payload's headers for the SMTP envelope.
func (s *SESRawSender) SendRaw(ctx context.Context, from string, to []string, raw []byte) error {
	if from == "" {
		return fmt.Errorf("%w: from address is required", ErrInvalidParams)
	}
	if len(to) == 0 {
		return fmt.Errorf("%w: at least one recipient is required", ErrInvalidParams)
	}
	if len(raw) == 0 {
		return fmt.Errorf("%w: raw message is empty", ErrInvalidParams)
	}

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination:      &types.Destination{ToAddresses: to},
		Content: &types.EmailContent{
			Raw: &types.RawMessage{Data: raw},
		},
	})
	if err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}
	return nil
}

package notifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/compactconnect/notify/pkg/emaildoc"
	"github.com/compactconnect/notify/pkg/mailer"
	"github.com/compactconnect/notify/pkg/rawmail"
	"github.com/compactconnect/notify/pkg/recipients"
	"github.com/compactconnect/notify/pkg/report"
)

// EventSource reads license-data events for a compact, jurisdiction and time
// window. Implemented by eventlog.Store.
type EventSource interface {
	IngestFailures(ctx context.Context, compact, jurisdiction string, w report.Window) ([]report.IngestFailureRecord, error)
	ValidationErrors(ctx context.Context, compact, jurisdiction string, w report.Window) ([]report.ValidationErrorRecord, error)
	SuccessfulIngestCount(ctx context.Context, compact, jurisdiction string, w report.Window) (int64, error)
}

// AttachmentFetcher retrieves attachment content by object-store key.
// Implemented by attachments.S3Fetcher.
type AttachmentFetcher interface {
	Fetch(ctx context.Context, key string) (rawmail.Attachment, error)
}

// Outcome is the routing decision made for one jurisdiction in one run.
type Outcome string

const (
	OutcomeErrorSummary Outcome = "error-summary"
	OutcomeAllsWell     Outcome = "alls-well"
	OutcomeNoUploads    Outcome = "no-uploads"
	OutcomeNone         Outcome = "none"
)

// Subject lines for the three report variants; the compact and jurisdiction
// are appended uppercased.
const (
	subjectErrorSummary = "License Data Error Summary"
	subjectAllsWell     = "Weekly License Data Summary"
	subjectNoUploads    = "No License Data Uploaded"
)

// ServiceParams carries the collaborators a Service needs.
type ServiceParams struct {
	Events      EventSource
	Recipients  recipients.Source
	Sender      mailer.Sender
	RawSender   mailer.RawSender
	Attachments AttachmentFetcher
	FromAddress string
	Logger      *slog.Logger
}

// Service implements the per-jurisdiction notification decision: which of
// the three mutually exclusive report variants (error summary, all's well,
// no uploads) goes out, to whom, for one run. It holds no state between
// runs - every decision is recomputed from the event log, so re-running the
// same window routes identically.
type Service struct {
	events      EventSource
	recipients  recipients.Source
	sender      mailer.Sender
	rawSender   mailer.RawSender
	attachments AttachmentFetcher
	from        string
	log         *slog.Logger
}

// NewService validates the collaborators and builds a Service. RawSender and
// Attachments are only required when transaction reports are sent, so they
// may be nil for notification-only deployments.
func NewService(p ServiceParams) (*Service, error) {
	if p.Events == nil {
		return nil, fmt.Errorf("%w: event source is required", ErrInvalidService)
	}
	if p.Recipients == nil {
		return nil, fmt.Errorf("%w: recipient source is required", ErrInvalidService)
	}
	if p.Sender == nil {
		return nil, fmt.Errorf("%w: sender is required", ErrInvalidService)
	}
	if p.FromAddress == "" {
		return nil, fmt.Errorf("%w: from address is required", ErrInvalidService)
	}
	log := p.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		events:      p.Events,
		recipients:  p.Recipients,
		sender:      p.Sender,
		rawSender:   p.RawSender,
		attachments: p.Attachments,
		from:        p.FromAddress,
		log:         log,
	}, nil
}

// Run evaluates every configured (compact, jurisdiction) target for one run.
// A failed jurisdiction is logged and joined into the returned error but
// never aborts the remaining targets.
func (s *Service) Run(ctx context.Context, now time.Time, weekly bool) error {
	targets, err := s.recipients.Targets(ctx)
	if err != nil {
		return fmt.Errorf("list notification targets: %w", err)
	}

	var errs []error
	for _, target := range targets {
		outcome, err := s.NotifyJurisdiction(ctx, target.Compact, target.Jurisdiction, now, weekly)
		if err != nil {
			s.log.ErrorContext(ctx, "jurisdiction notification failed",
				"compact", target.Compact,
				"jurisdiction", target.Jurisdiction,
				"error", err)
			errs = append(errs, fmt.Errorf("%s/%s: %w", target.Compact, target.Jurisdiction, err))
			continue
		}
		s.log.InfoContext(ctx, "jurisdiction notification evaluated",
			"compact", target.Compact,
			"jurisdiction", target.Jurisdiction,
			"outcome", string(outcome))
	}
	return errors.Join(errs...)
}

// NotifyJurisdiction makes and executes the routing decision for one
// jurisdiction:
//
//   - any ingest failure or validation error in the prior day sends the
//     error-summary report to the jurisdiction's operations recipients;
//   - otherwise, on weekly runs only, a clean trailing week with at least one
//     successful ingest sends the all's-well report;
//   - a trailing week with zero successful ingests sends the no-uploads
//     report to jurisdiction and compact recipients both - silent
//     non-submission is a risk the compact must know about;
//   - anything else sends nothing this run.
func (s *Service) NotifyJurisdiction(ctx context.Context, compact, jurisdiction string, now time.Time, weekly bool) (Outcome, error) {
	day := report.PriorDay(now)
	failures, err := s.events.IngestFailures(ctx, compact, jurisdiction, day)
	if err != nil {
		return OutcomeNone, fmt.Errorf("read ingest failures: %w", err)
	}
	validationErrors, err := s.events.ValidationErrors(ctx, compact, jurisdiction, day)
	if err != nil {
		return OutcomeNone, fmt.Errorf("read validation errors: %w", err)
	}

	if len(failures) > 0 || len(validationErrors) > 0 {
		doc, err := report.BuildReport(failures, validationErrors)
		if err != nil {
			return OutcomeNone, fmt.Errorf("assemble error summary: %w", err)
		}
		if err := s.sendToJurisdiction(ctx, compact, jurisdiction, subjectErrorSummary, string(OutcomeErrorSummary), doc); err != nil {
			return OutcomeNone, err
		}
		return OutcomeErrorSummary, nil
	}

	if !weekly {
		return OutcomeNone, nil
	}

	week := report.TrailingWeek(now)
	weekFailures, err := s.events.IngestFailures(ctx, compact, jurisdiction, week)
	if err != nil {
		return OutcomeNone, fmt.Errorf("read weekly ingest failures: %w", err)
	}
	weekValidationErrors, err := s.events.ValidationErrors(ctx, compact, jurisdiction, week)
	if err != nil {
		return OutcomeNone, fmt.Errorf("read weekly validation errors: %w", err)
	}
	successes, err := s.events.SuccessfulIngestCount(ctx, compact, jurisdiction, week)
	if err != nil {
		return OutcomeNone, fmt.Errorf("count successful ingests: %w", err)
	}

	switch {
	case len(weekFailures) == 0 && len(weekValidationErrors) == 0 && successes > 0:
		doc, err := report.BuildAllsWellReport()
		if err != nil {
			return OutcomeNone, fmt.Errorf("assemble alls-well report: %w", err)
		}
		if err := s.sendToJurisdiction(ctx, compact, jurisdiction, subjectAllsWell, string(OutcomeAllsWell), doc); err != nil {
			return OutcomeNone, err
		}
		return OutcomeAllsWell, nil

	case successes == 0:
		doc, err := report.BuildNoUploadsReport()
		if err != nil {
			return OutcomeNone, fmt.Errorf("assemble no-uploads report: %w", err)
		}
		if err := s.sendEscalated(ctx, compact, jurisdiction, doc); err != nil {
			return OutcomeNone, err
		}
		return OutcomeNoUploads, nil

	default:
		// Errors occurred earlier in the week but not in the prior day;
		// those runs already reported them.
		return OutcomeNone, nil
	}
}

// SendTransactionReport composes a raw MIME message carrying the rendered
// body plus every object-store attachment named by keys, and delivers it to
// the jurisdiction's operations recipients. Any attachment that cannot be
// retrieved fails the whole notification - a report with a missing attachment
// must never be sent.
func (s *Service) SendTransactionReport(ctx context.Context, compact, jurisdiction, subject, bodyHTML string, keys []string) error {
	if s.rawSender == nil || s.attachments == nil {
		return fmt.Errorf("%w: raw sender and attachment fetcher are required for transaction reports", ErrInvalidService)
	}

	to, err := s.jurisdictionRecipients(ctx, compact, jurisdiction)
	if err != nil {
		return err
	}

	atts := make([]rawmail.Attachment, 0, len(keys))
	for _, key := range keys {
		att, err := s.attachments.Fetch(ctx, key)
		if err != nil {
			return fmt.Errorf("fetch attachment: %w", err)
		}
		atts = append(atts, att)
	}

	raw, err := rawmail.Compose(rawmail.Message{
		From:        s.from,
		To:          to,
		Subject:     subjectSuffix(subject, compact, jurisdiction),
		HTMLBody:    bodyHTML,
		Attachments: atts,
	})
	if err != nil {
		return fmt.Errorf("compose raw message: %w", err)
	}
	if err := s.rawSender.SendRaw(ctx, s.from, to, raw); err != nil {
		return fmt.Errorf("send raw message: %w", err)
	}
	return nil
}

func (s *Service) sendToJurisdiction(ctx context.Context, compact, jurisdiction, subject, tag string, doc *emaildoc.Document) error {
	to, err := s.jurisdictionRecipients(ctx, compact, jurisdiction)
	if err != nil {
		return err
	}
	return s.send(ctx, to, subjectSuffix(subject, compact, jurisdiction), tag, doc)
}

// sendEscalated delivers to jurisdiction and compact recipients both. Both
// classes must be configured; duplicates between them collapse.
func (s *Service) sendEscalated(ctx context.Context, compact, jurisdiction string, doc *emaildoc.Document) error {
	jurAddrs, err := s.jurisdictionRecipients(ctx, compact, jurisdiction)
	if err != nil {
		return err
	}
	compactAddrs, err := s.recipients.CompactRecipients(ctx, compact)
	if err != nil {
		return fmt.Errorf("read compact recipients: %w", err)
	}
	if len(compactAddrs) == 0 {
		return fmt.Errorf("%w: compact %s has no compact-level recipients", ErrNoRecipients, compact)
	}

	to := slices.Clone(jurAddrs)
	for _, addr := range compactAddrs {
		if !slices.Contains(to, addr) {
			to = append(to, addr)
		}
	}
	return s.send(ctx, to, subjectSuffix(subjectNoUploads, compact, jurisdiction), string(OutcomeNoUploads), doc)
}

func (s *Service) jurisdictionRecipients(ctx context.Context, compact, jurisdiction string) ([]string, error) {
	to, err := s.recipients.JurisdictionRecipients(ctx, compact, jurisdiction)
	if err != nil {
		return nil, fmt.Errorf("read jurisdiction recipients: %w", err)
	}
	if len(to) == 0 {
		return nil, fmt.Errorf("%w: %s/%s has no operations recipients", ErrNoRecipients, compact, jurisdiction)
	}
	return to, nil
}

func (s *Service) send(ctx context.Context, to []string, subject, tag string, doc *emaildoc.Document) error {
	html, err := emaildoc.Render(doc)
	if err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	if err := s.sender.Send(ctx, mailer.SendParams{
		To:       to,
		Subject:  subject,
		BodyHTML: html,
		Tag:      tag,
	}); err != nil {
		return fmt.Errorf("send report: %w", err)
	}
	return nil
}

func subjectSuffix(subject, compact, jurisdiction string) string {
	return fmt.Sprintf("%s - %s %s", subject, strings.ToUpper(compact), strings.ToUpper(jurisdiction))
}

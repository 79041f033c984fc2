package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/compactconnect/notify/pkg/attachments"
	"github.com/compactconnect/notify/pkg/config"
	"github.com/compactconnect/notify/pkg/eventlog"
	"github.com/compactconnect/notify/pkg/logger"
	"github.com/compactconnect/notify/pkg/mailer"
	"github.com/compactconnect/notify/pkg/notifier"
	"github.com/compactconnect/notify/pkg/recipients"
)

// appConfig is the job-level configuration; collaborator packages declare
// their own Config structs loaded alongside it.
type appConfig struct {
	ServiceName     string        `env:"SERVICE_NAME" envDefault:"compact-notify"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	RecipientsFile  string        `env:"RECIPIENTS_FILE"` // When set, recipients come from this YAML file instead of Redis.
	EmailOutputDir  string        `env:"EMAIL_OUTPUT_DIR" envDefault:"./email-output"`
	WeeklyReportDay string        `env:"WEEKLY_REPORT_DAY" envDefault:"Friday"`
	RunTimeout      time.Duration `env:"RUN_TIMEOUT" envDefault:"10m"`
}

func main() {
	if err := run(); err != nil {
		slog.Error("notification run failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	var appCfg appConfig
	config.MustLoad(&appCfg)

	log := logger.New(logger.WithEnvironment(appCfg.Environment, appCfg.ServiceName))
	logger.SetAsDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, appCfg.RunTimeout)
	defer cancel()

	var pgCfg eventlog.Config
	config.MustLoad(&pgCfg)
	pool, err := eventlog.Connect(ctx, pgCfg)
	if err != nil {
		return fmt.Errorf("connect to event log: %w", err)
	}
	defer pool.Close()
	if err := eventlog.Migrate(ctx, pool, pgCfg, log); err != nil {
		return fmt.Errorf("apply event log migrations: %w", err)
	}

	recipientSource, closeRecipients, err := buildRecipientSource(ctx, appCfg)
	if err != nil {
		return err
	}
	defer closeRecipients()

	var mailCfg mailer.Config
	config.MustLoad(&mailCfg)
	sender, rawSender, err := buildTransports(ctx, appCfg, mailCfg)
	if err != nil {
		return err
	}

	var s3Cfg attachments.Config
	config.MustLoad(&s3Cfg)
	var fetcher notifier.AttachmentFetcher
	if s3Cfg.Bucket != "" {
		s3Fetcher, err := attachments.NewS3Fetcher(ctx, s3Cfg)
		if err != nil {
			return fmt.Errorf("build attachment fetcher: %w", err)
		}
		fetcher = s3Fetcher
	}

	svc, err := notifier.NewService(notifier.ServiceParams{
		Events:      eventlog.NewStore(pool),
		Recipients:  recipientSource,
		Sender:      sender,
		RawSender:   rawSender,
		Attachments: fetcher,
		FromAddress: mailCfg.SenderEmail,
		Logger:      log,
	})
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	weekly, err := isWeeklyRun(now, appCfg.WeeklyReportDay)
	if err != nil {
		return err
	}

	log.InfoContext(ctx, "starting notification run", "weekly", weekly, "run_time", now)
	return svc.Run(ctx, now, weekly)
}

func buildRecipientSource(ctx context.Context, cfg appConfig) (recipients.Source, func(), error) {
	if cfg.RecipientsFile != "" {
		source, err := recipients.NewFileSource(cfg.RecipientsFile)
		if err != nil {
			return nil, nil, fmt.Errorf("load recipients file: %w", err)
		}
		return source, func() {}, nil
	}

	var redisCfg recipients.Config
	config.MustLoad(&redisCfg)
	client, err := recipients.Connect(ctx, redisCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to recipient store: %w", err)
	}
	return recipients.NewRedisSource(client), func() { _ = client.Close() }, nil
}

// buildTransports picks the outbound transports: Postmark + SES when the
// Postmark tokens are configured, the disk-writing DevSender otherwise.
func buildTransports(ctx context.Context, appCfg appConfig, mailCfg mailer.Config) (mailer.Sender, mailer.RawSender, error) {
	if mailCfg.PostmarkServerToken == "" {
		dev := mailer.NewDevSender(appCfg.EmailOutputDir)
		return dev, dev, nil
	}

	sender, err := mailer.NewPostmarkSender(mailCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("build postmark sender: %w", err)
	}
	rawSender, err := mailer.NewSESRawSender(ctx, mailCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("build ses raw sender: %w", err)
	}
	return sender, rawSender, nil
}

func isWeeklyRun(now time.Time, day string) (bool, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), day) {
			return now.Weekday() == d, nil
		}
	}
	return false, fmt.Errorf("invalid WEEKLY_REPORT_DAY %q", day)
}

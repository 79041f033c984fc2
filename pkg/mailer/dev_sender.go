package mailer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// DevSender implements Sender and RawSender for local development. It saves
// outbound mail to a directory instead of delivering it: structured emails as
// HTML plus JSON metadata, raw MIME payloads as .eml files.
type DevSender struct {
	dir string
}

// NewDevSender creates a development sender that saves emails to disk.
// The directory is created on first send if it doesn't exist.
func NewDevSender(dir string) *DevSender {
	return &DevSender{dir: dir}
}

// emailMetadata is the structured email data saved to JSON (excluding HTML).
type emailMetadata struct {
	Timestamp string   `json:"timestamp"`
	To        []string `json:"to"`
	Subject   string   `json:"subject"`
	Tag       string   `json:"tag,omitempty"`
}

// Send saves the email as an HTML file plus a JSON metadata file.
func (d *DevSender) Send(ctx context.Context, params SendParams) error {
	if err := params.Validate(); err != nil {
		return err
	}
	base, err := d.baseFilename(params.Tag, params.Subject)
	if err != nil {
		return err
	}

	if err := os.WriteFile(base+".html", []byte(params.BodyHTML), 0644); err != nil {
		return fmt.Errorf("%w: failed to write HTML file: %v", ErrFailedToSendEmail, err)
	}

	metadata := emailMetadata{
		Timestamp: time.Now().Format(time.RFC3339),
		To:        params.To,
		Subject:   params.Subject,
		Tag:       params.Tag,
	}
	jsonData, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: failed to marshal metadata: %v", ErrFailedToSendEmail, err)
	}
	if err := os.WriteFile(base+".json", jsonData, 0644); err != nil {
		return fmt.Errorf("%w: failed to write JSON file: %v", ErrFailedToSendEmail, err)
	}
	return nil
}

// SendRaw saves the finished MIME payload as an .eml file, openable directly
// in any mail client for inspection.
func (d *DevSender) SendRaw(ctx context.Context, from string, to []string, raw []byte) error {
	if len(raw) == 0 {
		return fmt.Errorf("%w: raw message is empty", ErrInvalidParams)
	}
	base, err := d.baseFilename("raw", strings.Join(to, "_"))
	if err != nil {
		return err
	}
	if err := os.WriteFile(base+".eml", raw, 0644); err != nil {
		return fmt.Errorf("%w: failed to write eml file: %v", ErrFailedToSendEmail, err)
	}
	return nil
}

func (d *DevSender) baseFilename(tag, fallback string) (string, error) {
	if err := os.MkdirAll(d.dir, 0755); err != nil {
		return "", fmt.Errorf("%w: failed to create directory: %v", ErrFailedToSendEmail, err)
	}
	identifier := tag
	if identifier == "" {
		identifier = fallback
	}
	timestamp := time.Now().Format("2006_01_02_150405.000")
	return filepath.Join(d.dir, timestamp+"_"+sanitizeFilename(identifier)), nil
}

// sanitizeRegex matches characters that are not alphanumeric, dash,
// underscore, or dot.
var sanitizeRegex = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)

// sanitizeFilename converts a string into a safe, lowercase filename.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = sanitizeRegex.ReplaceAllString(s, "")

	const maxLength = 100
	if len(s) > maxLength {
		s = s[:maxLength]
	}
	if s == "" {
		s = "email"
	}
	return strings.ToLower(s)
}

package rawmail

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/textproto"
	"strings"
)

// SenderName is the display name rendered into the From header, verbatim per
// the downstream transport's interoperability contract.
const SenderName = "Compact Connect"

// Attachment is one named file carried by a message. Content is the raw
// source bytes; the composer applies transfer encoding. Attachments are
// immutable once constructed.
type Attachment struct {
	Filename string
	MIMEType string
	Content  []byte
}

// Message describes one outbound email before wire encoding.
type Message struct {
	From        string
	To          []string
	Subject     string
	HTMLBody    string
	Attachments []Attachment
}

// Compose encodes the message as a single RFC 2822 multipart/mixed payload:
// one text/html body part followed by one part per attachment. The multipart
// boundary is generated fresh per message. The HTML part is quoted-printable;
// attachment content is base64 with 76-column wrapping, which round-trips
// byte-for-byte for binary and text alike.
func Compose(msg Message) ([]byte, error) {
	if err := msg.validate(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s <%s>\r\n", SenderName, msg.From)
	fmt.Fprintf(&buf, "To: %s\r\n", strings.Join(msg.To, ", "))
	fmt.Fprintf(&buf, "Subject: %s\r\n", encodeHeader(msg.Subject))
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", mw.Boundary())

	htmlPart, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {`text/html; charset="utf-8"`},
		"Content-Transfer-Encoding": {"quoted-printable"},
	})
	if err != nil {
		return nil, fmt.Errorf("create html part: %w", err)
	}
	qp := quotedprintable.NewWriter(htmlPart)
	if _, err := qp.Write([]byte(msg.HTMLBody)); err != nil {
		return nil, fmt.Errorf("encode html body: %w", err)
	}
	if err := qp.Close(); err != nil {
		return nil, fmt.Errorf("encode html body: %w", err)
	}

	for _, att := range msg.Attachments {
		if len(att.Content) == 0 {
			return nil, fmt.Errorf("%w: %q", ErrMissingAttachment, att.Filename)
		}
		contentType := att.MIMEType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		part, err := mw.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {contentType},
			"Content-Transfer-Encoding": {"base64"},
			"Content-Disposition":       {fmt.Sprintf("attachment; filename=%s", att.Filename)},
		})
		if err != nil {
			return nil, fmt.Errorf("create attachment part %q: %w", att.Filename, err)
		}
		if err := writeBase64(part, att.Content); err != nil {
			return nil, fmt.Errorf("encode attachment %q: %w", att.Filename, err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}
	return buf.Bytes(), nil
}

func (m Message) validate() error {
	if m.From == "" {
		return fmt.Errorf("%w: from address is required", ErrInvalidMessage)
	}
	if len(m.To) == 0 {
		return fmt.Errorf("%w: at least one recipient is required", ErrInvalidMessage)
	}
	for _, to := range m.To {
		if strings.TrimSpace(to) == "" {
			return fmt.Errorf("%w: empty recipient address", ErrInvalidMessage)
		}
	}
	if m.Subject == "" {
		return fmt.Errorf("%w: subject is required", ErrInvalidMessage)
	}
	if m.HTMLBody == "" {
		return fmt.Errorf("%w: html body is required", ErrInvalidMessage)
	}
	return nil
}

// encodeHeader Q-encodes a header value only when it contains non-ASCII
// characters, keeping the common case readable in raw form.
func encodeHeader(s string) string {
	return mime.QEncoding.Encode("utf-8", s)
}

// writeBase64 emits base64 content wrapped at 76 columns per RFC 2045.
func writeBase64(w io.Writer, content []byte) error {
	encoded := base64.StdEncoding.EncodeToString(content)
	const lineLen = 76
	for len(encoded) > 0 {
		n := min(lineLen, len(encoded))
		if _, err := fmt.Fprintf(w, "%s\r\n", encoded[:n]); err != nil {
			return err
		}
		encoded = encoded[n:]
	}
	return nil
}

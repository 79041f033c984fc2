package rawmail_test

import (
	"bytes"
	"encoding/base64"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compactconnect/notify/pkg/rawmail"
)

func compose(t *testing.T, msg rawmail.Message) []byte {
	t.Helper()
	raw, err := rawmail.Compose(msg)
	require.NoError(t, err)
	return raw
}

func validMessage() rawmail.Message {
	return rawmail.Message{
		From:     "noreply@compactconnect.org",
		To:       []string{"ops@oh.example.gov"},
		Subject:  "License Data Error Summary",
		HTMLBody: "<html><body><p>report</p></body></html>",
	}
}

func TestCompose_Headers(t *testing.T) {
	t.Parallel()

	msg := validMessage()
	msg.To = []string{"ops@oh.example.gov", "compact@aslp.example.org"}
	raw := compose(t, msg)

	parsed, err := mail.ReadMessage(bytes.NewReader(raw))
	require.NoError(t, err)

	assert.Equal(t, "Compact Connect <noreply@compactconnect.org>", parsed.Header.Get("From"))
	assert.Equal(t, "ops@oh.example.gov, compact@aslp.example.org", parsed.Header.Get("To"))
	assert.Equal(t, "License Data Error Summary", parsed.Header.Get("Subject"))
	assert.Equal(t, "1.0", parsed.Header.Get("MIME-Version"))

	mediaType, params, err := mime.ParseMediaType(parsed.Header.Get("Content-Type"))
	require.NoError(t, err)
	assert.Equal(t, "multipart/mixed", mediaType)
	assert.NotEmpty(t, params["boundary"])
}

func TestCompose_UniqueBoundaries(t *testing.T) {
	t.Parallel()

	boundary := func() string {
		raw := compose(t, validMessage())
		parsed, err := mail.ReadMessage(bytes.NewReader(raw))
		require.NoError(t, err)
		_, params, err := mime.ParseMediaType(parsed.Header.Get("Content-Type"))
		require.NoError(t, err)
		return params["boundary"]
	}
	assert.NotEqual(t, boundary(), boundary())
}

func TestCompose_Attachments(t *testing.T) {
	t.Parallel()

	msg := validMessage()
	msg.Attachments = []rawmail.Attachment{
		{Filename: "report.csv", MIMEType: "text/csv", Content: []byte("a,b\n1,2\n")},
		{Filename: "summary.csv", MIMEType: "text/csv", Content: []byte("total\n2\n")},
	}
	raw := compose(t, msg)

	parsed, err := mail.ReadMessage(bytes.NewReader(raw))
	require.NoError(t, err)
	_, params, err := mime.ParseMediaType(parsed.Header.Get("Content-Type"))
	require.NoError(t, err)

	mr := multipart.NewReader(parsed.Body, params["boundary"])
	var htmlParts int
	var filenames []string
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)

		contentType, _, err := mime.ParseMediaType(part.Header.Get("Content-Type"))
		require.NoError(t, err)
		if contentType == "text/html" {
			htmlParts++
			continue
		}

		assert.Equal(t, "text/csv", contentType)
		_, dispParams, err := mime.ParseMediaType(part.Header.Get("Content-Disposition"))
		require.NoError(t, err)
		filenames = append(filenames, dispParams["filename"])
	}

	assert.Equal(t, 1, htmlParts, "exactly one text/html part")
	assert.Equal(t, []string{"report.csv", "summary.csv"}, filenames)
	assert.Contains(t, string(raw), "Content-Disposition: attachment; filename=report.csv")
	assert.Contains(t, string(raw), "filename=summary.csv")
}

func TestCompose_BinaryAttachmentRoundTrips(t *testing.T) {
	t.Parallel()

	// Every byte value, long enough to force base64 line wrapping.
	content := make([]byte, 512)
	for i := range content {
		content[i] = byte(i % 256)
	}

	msg := validMessage()
	msg.Attachments = []rawmail.Attachment{
		{Filename: "bundle.zip", MIMEType: "application/zip", Content: content},
	}
	raw := compose(t, msg)

	parsed, err := mail.ReadMessage(bytes.NewReader(raw))
	require.NoError(t, err)
	_, params, err := mime.ParseMediaType(parsed.Header.Get("Content-Type"))
	require.NoError(t, err)

	mr := multipart.NewReader(parsed.Body, params["boundary"])
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		if part.FileName() == "" {
			continue
		}

		// multipart leaves base64 content encoded; decode explicitly.
		assert.Equal(t, "base64", part.Header.Get("Content-Transfer-Encoding"))
		encoded, err := io.ReadAll(part)
		require.NoError(t, err)
		decoded := decodeBase64Lines(t, string(encoded))
		assert.Equal(t, content, decoded)
	}
}

func TestCompose_HTMLBodyQuotedPrintable(t *testing.T) {
	t.Parallel()

	msg := validMessage()
	msg.HTMLBody = "<p>naïve résumé</p>"
	raw := compose(t, msg)

	parsed, err := mail.ReadMessage(bytes.NewReader(raw))
	require.NoError(t, err)
	_, params, err := mime.ParseMediaType(parsed.Header.Get("Content-Type"))
	require.NoError(t, err)

	// NextRawPart keeps the transfer encoding visible; NextPart would decode
	// quoted-printable transparently and strip the header.
	mr := multipart.NewReader(parsed.Body, params["boundary"])
	part, err := mr.NextRawPart()
	require.NoError(t, err)
	require.Equal(t, "quoted-printable", part.Header.Get("Content-Transfer-Encoding"))

	body, err := io.ReadAll(quotedprintable.NewReader(part))
	require.NoError(t, err)
	assert.Equal(t, msg.HTMLBody, string(body))
}

func TestCompose_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*rawmail.Message)
	}{
		{"missing from", func(m *rawmail.Message) { m.From = "" }},
		{"no recipients", func(m *rawmail.Message) { m.To = nil }},
		{"blank recipient", func(m *rawmail.Message) { m.To = []string{"  "} }},
		{"missing subject", func(m *rawmail.Message) { m.Subject = "" }},
		{"missing body", func(m *rawmail.Message) { m.HTMLBody = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			msg := validMessage()
			tt.mutate(&msg)
			_, err := rawmail.Compose(msg)
			require.ErrorIs(t, err, rawmail.ErrInvalidMessage)
		})
	}
}

func TestCompose_EmptyAttachmentFails(t *testing.T) {
	t.Parallel()

	msg := validMessage()
	msg.Attachments = []rawmail.Attachment{
		{Filename: "report.csv", MIMEType: "text/csv", Content: nil},
	}
	_, err := rawmail.Compose(msg)
	require.ErrorIs(t, err, rawmail.ErrMissingAttachment)
	assert.Contains(t, err.Error(), "report.csv")
}

func decodeBase64Lines(t *testing.T, encoded string) []byte {
	t.Helper()
	clean := strings.NewReplacer("\r", "", "\n", "").Replace(encoded)
	decoded, err := base64.StdEncoding.DecodeString(clean)
	require.NoError(t, err)
	return decoded
}

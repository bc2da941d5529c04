package notification

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"html"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/textproto"
	"regexp"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"service-logger-backend/internal/model"
)

const base64LineLen = 76

var (
	breakTags = regexp.MustCompile(`(?i)<br\s*/?>|</(p|li|ul|ol|div|h[1-6])\s*>`)
	anyTag    = regexp.MustCompile(`<[^>]*>`)
	blankRuns = regexp.MustCompile(`\n{3,}`)

	errNoSender = errors.New("sender address is not configured")
	errNoAdmin  = errors.New("admin address is not configured")
)

// PlainText derives the text/plain alternative of an HTML body: line break
// tags become newlines, other tags are dropped and entities are unescaped.
func PlainText(body string) string {
	text := breakTags.ReplaceAllString(body, "\n")
	text = anyTag.ReplaceAllString(text, "")
	text = html.UnescapeString(text)

	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	text = blankRuns.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(text)
}

// Attachment is a file sent along with a message.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Message is a composed email ready for a Mailer.
type Message struct {
	From        string
	To          []string
	Subject     string
	Date        time.Time
	JobID       string
	Text        string
	HTML        string
	Attachments []Attachment
}

// Composer builds job emails. Admin receives a copy of every message.
type Composer struct {
	From  string
	Admin string
}

// Compose builds a message about job for the optional recipient and the admin.
func (c Composer) Compose(job *model.Job, recipient, subject, htmlBody string, attachments []Attachment) (*Message, error) {
	if strings.TrimSpace(c.From) == "" {
		return nil, errNoSender
	}
	if strings.TrimSpace(c.Admin) == "" {
		return nil, errNoAdmin
	}

	var to []string
	if r := strings.TrimSpace(recipient); r != "" && !strings.EqualFold(r, c.Admin) {
		to = append(to, r)
	}
	to = append(to, c.Admin)

	msg := &Message{
		From:    c.From,
		To:      to,
		Subject: subject,
		Date:    time.Now(),
		Text:    PlainText(htmlBody),
		HTML:    htmlBody,
	}
	if job != nil {
		msg.JobID = job.ID
	}
	for _, a := range attachments {
		if a.ContentType == "" {
			a.ContentType = mimetype.Detect(a.Data).String()
		}
		msg.Attachments = append(msg.Attachments, a)
	}
	return msg, nil
}

// Bytes renders the message as multipart/mixed holding a
// multipart/alternative text+HTML part followed by base64 attachments.
func (m *Message) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	mixed := multipart.NewWriter(&buf)

	header := [][2]string{
		{"From", m.From},
		{"To", strings.Join(m.To, ", ")},
		{"Subject", mime.QEncoding.Encode("utf-8", m.Subject)},
		{"Date", m.Date.Format(time.RFC1123Z)},
		{"MIME-Version", "1.0"},
		{"Content-Type", fmt.Sprintf("multipart/mixed; boundary=%q", mixed.Boundary())},
	}
	if m.JobID != "" {
		header = append(header, [2]string{"X-Service-Job", m.JobID})
	}
	for _, h := range header {
		fmt.Fprintf(&buf, "%s: %s\r\n", h[0], h[1])
	}
	buf.WriteString("\r\n")

	var altBuf bytes.Buffer
	alt := multipart.NewWriter(&altBuf)
	altPart, err := mixed.CreatePart(textproto.MIMEHeader{
		"Content-Type": {fmt.Sprintf("multipart/alternative; boundary=%q", alt.Boundary())},
	})
	if err != nil {
		return nil, err
	}
	if err := writeQuoted(alt, "text/plain", m.Text); err != nil {
		return nil, err
	}
	if err := writeQuoted(alt, "text/html", m.HTML); err != nil {
		return nil, err
	}
	if err := alt.Close(); err != nil {
		return nil, err
	}
	if _, err := altPart.Write(altBuf.Bytes()); err != nil {
		return nil, err
	}

	for _, a := range m.Attachments {
		part, err := mixed.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {a.ContentType},
			"Content-Transfer-Encoding": {"base64"},
			"Content-Disposition":       {mime.FormatMediaType("attachment", map[string]string{"filename": a.Filename})},
		})
		if err != nil {
			return nil, err
		}
		if err := writeBase64(part, a.Data); err != nil {
			return nil, fmt.Errorf("failed to encode attachment %s: %w", a.Filename, err)
		}
	}

	if err := mixed.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeQuoted(w *multipart.Writer, contentType, body string) error {
	part, err := w.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {contentType + `; charset="utf-8"`},
		"Content-Transfer-Encoding": {"quoted-printable"},
	})
	if err != nil {
		return err
	}
	qp := quotedprintable.NewWriter(part)
	if _, err := qp.Write([]byte(body)); err != nil {
		return err
	}
	return qp.Close()
}

func writeBase64(w io.Writer, data []byte) error {
	encoded := base64.StdEncoding.EncodeToString(data)
	for len(encoded) > 0 {
		n := min(base64LineLen, len(encoded))
		if _, err := fmt.Fprintf(w, "%s\r\n", encoded[:n]); err != nil {
			return err
		}
		encoded = encoded[n:]
	}
	return nil
}

package notification

import (
	"bytes"
	"context"
	"encoding/base64"
	"io"
	"mime"
	"mime/multipart"
	"net"
	"net/mail"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"service-logger-backend/internal/model"
)

func TestPlainText(t *testing.T) {
	testCases := []struct {
		name     string
		html     string
		expected string
	}{
		{"break inside paragraph", "<p>Hi<br>there</p>", "Hi\nthere"},
		{"self-closing break", "Line one<br/>Line two<BR />Line three", "Line one\nLine two\nLine three"},
		{"entities unescaped", "<p>Fish &amp; Chips &lt;3</p>", "Fish & Chips <3"},
		{"list items on their own lines", "<ul>\n  <li><strong>Job ID:</strong> j1</li>\n  <li>b</li>\n</ul>", "Job ID: j1\nb"},
		{"plain text untouched", "nothing to strip", "nothing to strip"},
		{"empty", "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, PlainText(tc.html))
		})
	}
}

func TestComposer_Compose(t *testing.T) {
	c := Composer{From: "service@example.com", Admin: "office@example.com"}
	job := &model.Job{ID: "job-1"}

	msg, err := c.Compose(job, " ana@beanthere.ca ", "Subject", "<p>Hi<br>there</p>", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"ana@beanthere.ca", "office@example.com"}, msg.To)
	assert.Equal(t, "Hi\nthere", msg.Text)
	assert.Equal(t, "job-1", msg.JobID)

	msg, err = c.Compose(job, "", "Subject", "x", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"office@example.com"}, msg.To)

	msg, err = c.Compose(job, "OFFICE@example.com", "Subject", "x", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"office@example.com"}, msg.To)

	_, err = Composer{From: "service@example.com"}.Compose(job, "a@b.co", "s", "x", nil)
	assert.Error(t, err)
	_, err = Composer{Admin: "office@example.com"}.Compose(job, "a@b.co", "s", "x", nil)
	assert.Error(t, err)
}

func TestMessage_Bytes(t *testing.T) {
	sig := []byte("\x89PNG\r\n\x1a\n fake signature payload")
	c := Composer{From: "service@example.com", Admin: "office@example.com"}
	msg, err := c.Compose(&model.Job{ID: "job-1"}, "ana@beanthere.ca", "Service Job Confirmation – job-1",
		"<p>Hi<br>there</p>", []Attachment{
			{Filename: "job-1_sig.png", Data: sig},
			{Filename: "left.jpg", ContentType: "image/jpeg", Data: []byte{0xff, 0xd8, 0xff}},
		})
	require.NoError(t, err)
	assert.Equal(t, "image/png", msg.Attachments[0].ContentType)

	raw, err := msg.Bytes()
	require.NoError(t, err)

	parsed, err := mail.ReadMessage(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, "service@example.com", parsed.Header.Get("From"))
	assert.Equal(t, "ana@beanthere.ca, office@example.com", parsed.Header.Get("To"))
	assert.Equal(t, "job-1", parsed.Header.Get("X-Service-Job"))
	subject, err := new(mime.WordDecoder).DecodeHeader(parsed.Header.Get("Subject"))
	require.NoError(t, err)
	assert.Equal(t, "Service Job Confirmation – job-1", subject)

	mediaType, params, err := mime.ParseMediaType(parsed.Header.Get("Content-Type"))
	require.NoError(t, err)
	assert.Equal(t, "multipart/mixed", mediaType)

	mixed := multipart.NewReader(parsed.Body, params["boundary"])

	// First part: the text and HTML alternatives.
	altPart, err := mixed.NextPart()
	require.NoError(t, err)
	altType, altParams, err := mime.ParseMediaType(altPart.Header.Get("Content-Type"))
	require.NoError(t, err)
	assert.Equal(t, "multipart/alternative", altType)

	alt := multipart.NewReader(altPart, altParams["boundary"])
	textPart, err := alt.NextPart()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(textPart.Header.Get("Content-Type"), "text/plain"))
	text, err := io.ReadAll(textPart)
	require.NoError(t, err)
	assert.Equal(t, "Hi\nthere", strings.ReplaceAll(string(text), "\r\n", "\n"))

	htmlPart, err := alt.NextPart()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(htmlPart.Header.Get("Content-Type"), "text/html"))
	body, err := io.ReadAll(htmlPart)
	require.NoError(t, err)
	assert.Equal(t, "<p>Hi<br>there</p>", string(body))
	_, err = alt.NextPart()
	assert.ErrorIs(t, err, io.EOF)

	// Then the attachments, base64 encoded with their file names.
	for _, want := range msg.Attachments {
		part, err := mixed.NextPart()
		require.NoError(t, err)
		assert.Equal(t, want.ContentType, part.Header.Get("Content-Type"))
		assert.Equal(t, "base64", part.Header.Get("Content-Transfer-Encoding"))
		disposition, dParams, err := mime.ParseMediaType(part.Header.Get("Content-Disposition"))
		require.NoError(t, err)
		assert.Equal(t, "attachment", disposition)
		assert.Equal(t, want.Filename, dParams["filename"])

		encoded, err := io.ReadAll(part)
		require.NoError(t, err)
		decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(string(encoded), "\r\n", ""))
		require.NoError(t, err)
		assert.Equal(t, want.Data, decoded)
	}
	_, err = mixed.NextPart()
	assert.ErrorIs(t, err, io.EOF)
}

func TestTemplates(t *testing.T) {
	data := JobEmail{
		Team:          "Machine Hunter",
		ContactName:   "Ana",
		JobID:         "job-1",
		CustomerName:  "Bean & Co",
		MachineLabel:  "Rancilio (Classe 9)",
		Employee:      "Dana",
		Technician:    "Miki Horvath",
		Date:          "2026-10-16",
		TravelMinutes: 25,
		TimeIn:        "09:00:00",
		TimeOut:       "10:30:00",
		Description:   "Descaled boiler",
		LeftMedia:     []Link{{Name: "left.jpg", URL: "https://raw.example.com/media/left.jpg"}},
	}

	subject, body, err := CustomerConfirmation(data)
	require.NoError(t, err)
	assert.Equal(t, "Service Job Confirmation – job-1", subject)
	assert.Contains(t, body, "<p>Dear Ana,</p>")
	assert.Contains(t, body, "Bean &amp; Co")
	assert.Contains(t, body, `<a href="https://raw.example.com/media/left.jpg">left.jpg</a>`)
	assert.NotContains(t, body, "Additional Comments")
	assert.NotContains(t, body, "Travel Time")

	data.Comments = "Call before next visit"
	subject, body, err = InternalSummary(data)
	require.NoError(t, err)
	assert.Equal(t, "Service Job Logged – job-1", subject)
	assert.Contains(t, body, "<li><strong>Travel Time:</strong> 25 minutes</li>")
	assert.Contains(t, body, "<li><strong>Additional Comments:</strong> Call before next visit</li>")
	assert.Contains(t, PlainText(body), "Time Out: 10:30:00")
}

func TestSMTPMailer_ConnectionRefused(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().(*net.TCPAddr)
	require.NoError(t, l.Close())

	m := NewSMTPMailer("127.0.0.1", addr.Port, "user", "secret")
	msg, err := Composer{From: "a@example.com", Admin: "b@example.com"}.Compose(nil, "", "s", "x", nil)
	require.NoError(t, err)
	assert.Error(t, m.Send(context.Background(), msg))
}

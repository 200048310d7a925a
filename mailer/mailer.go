// Package mailer delivers reports through the local sendmail binary.
// It composes a multipart/alternative message (plain text first, then
// HTML) and pipes it to sendmail, which picks the recipient up from
// the To header.
package mailer

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"mime/quotedprintable"
	"net/textproto"
	"os/exec"
	"time"
)

const (
	sendmailPath = "/usr/sbin/sendmail"
	sendTimeout  = 30 * time.Second
)

// Mailer sends email to a single recipient.
type Mailer struct {
	Recipient string
	// From is optional; sendmail fills in a default when empty.
	From string
	// Sendmail is the binary to pipe messages to.
	Sendmail string
}

// New creates a Mailer using the system sendmail.
func New(recipient string) *Mailer {
	return &Mailer{Recipient: recipient, Sendmail: sendmailPath}
}

// Send composes and delivers one message. text is the plain
// alternative shown by clients that do not render HTML.
func (m *Mailer) Send(ctx context.Context, subject, text, html string) error {
	msg, err := m.compose(subject, text, html)
	if err != nil {
		return fmt.Errorf("cannot compose message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, m.Sendmail, "-t", "-oi")
	cmd.Stdin = bytes.NewReader(msg)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("sendmail timed out after %s", sendTimeout)
		}
		return fmt.Errorf("sendmail failed: %w: %s", err, stderr.String())
	}
	return nil
}

// compose builds the full RFC 5322 message, headers included.
func (m *Mailer) compose(subject, text, html string) ([]byte, error) {
	var buf bytes.Buffer
	mp := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	fmt.Fprintf(&buf, "To: %s\r\n", m.Recipient)
	if m.From != "" {
		fmt.Fprintf(&buf, "From: %s\r\n", m.From)
	}
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%q\r\n", mp.Boundary())
	fmt.Fprintf(&buf, "\r\n")

	// Least preferred alternative first, best last.
	for _, part := range []struct{ contentType, body string }{
		{"text/plain; charset=utf-8", text},
		{"text/html; charset=utf-8", html},
	} {
		h := textproto.MIMEHeader{}
		h.Set("Content-Type", part.contentType)
		h.Set("Content-Transfer-Encoding", "quoted-printable")
		w, err := mp.CreatePart(h)
		if err != nil {
			return nil, err
		}
		qp := quotedprintable.NewWriter(w)
		if _, err := qp.Write([]byte(part.body)); err != nil {
			return nil, err
		}
		if err := qp.Close(); err != nil {
			return nil, err
		}
	}
	if err := mp.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

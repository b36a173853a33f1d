package notify

import (
	"encoding/base64"
	"fmt"
	"net/smtp"
	"strings"
)

// Mailer delivers a single message, optionally with an iCalendar attachment.
type Mailer interface {
	Send(to, subject, body, icsBody string) error
}

// SMTPMailer sends via unauthenticated SMTP (Mailpit-compatible).
type SMTPMailer struct {
	addr string
	from string
}

func NewSMTPMailer(host, port, from string) *SMTPMailer {
	host = strings.TrimSpace(host)
	port = strings.TrimSpace(port)
	from = strings.TrimSpace(from)
	if from == "" {
		from = "no-reply@bookmyslot.local"
	}
	return &SMTPMailer{
		addr: fmt.Sprintf("%s:%s", host, port),
		from: from,
	}
}

func (m *SMTPMailer) Send(to, subject, body, icsBody string) error {
	msg := buildMessage(m.from, to, subject, body, icsBody)
	return smtp.SendMail(m.addr, nil, m.from, []string{to}, []byte(msg))
}

const mimeBoundary = "bookmyslot-invite"

// buildMessage assembles an RFC 5322 message. With an ICS part it becomes
// multipart/mixed so mail clients surface the invite as an attachment.
func buildMessage(from, to, subject, body, icsBody string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")

	if icsBody == "" {
		b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
		b.WriteString(body)
		b.WriteString("\r\n")
		return b.String()
	}

	fmt.Fprintf(&b, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", mimeBoundary)

	fmt.Fprintf(&b, "--%s\r\n", mimeBoundary)
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString(body)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", mimeBoundary)
	b.WriteString("Content-Type: text/calendar; method=PUBLISH; charset=utf-8\r\n")
	b.WriteString("Content-Transfer-Encoding: base64\r\n")
	b.WriteString("Content-Disposition: attachment; filename=invite.ics\r\n\r\n")
	b.WriteString(base64.StdEncoding.EncodeToString([]byte(icsBody)))
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s--\r\n", mimeBoundary)
	return b.String()
}

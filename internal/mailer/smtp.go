// Package mailer relays contact-form messages to the site inbox over SMTP.
package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/nexlearn/nexlearn-backend/internal/config"
	"github.com/nexlearn/nexlearn-backend/internal/model"
	"github.com/rs/zerolog"
)

// SMTPConfig holds the SMTP account used to relay messages.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Inbox    string
}

// SMTPConfigFrom extracts the mailer settings from the app config.
func SMTPConfigFrom(cfg *config.Config) SMTPConfig {
	return SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		Inbox:    cfg.ContactInbox,
	}
}

// Mailer sends contact messages through an authenticated SMTP account.
type Mailer struct {
	cfg  SMTPConfig
	log  zerolog.Logger
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// New creates a Mailer.
func New(cfg SMTPConfig, log zerolog.Logger) *Mailer {
	return &Mailer{
		cfg:  cfg,
		log:  log.With().Str("component", "mailer").Logger(),
		send: smtp.SendMail,
	}
}

// Configured reports whether SMTP credentials are present.
func (m *Mailer) Configured() bool {
	return m.cfg.Username != "" && m.cfg.Password != ""
}

// SendContact relays msg to the configured inbox. Without credentials the
// message is logged and dropped.
func (m *Mailer) SendContact(_ context.Context, msg *model.ContactMessage) error {
	if !m.Configured() {
		m.log.Warn().
			Str("from_email", msg.Email).
			Str("from_name", msg.Name).
			Msg("SMTP credentials not configured - contact message not sent")
		return nil
	}

	inbox := m.cfg.Inbox
	if inbox == "" {
		inbox = m.cfg.Username
	}

	body := BuildContactMessage(m.cfg.Username, inbox, msg)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	addr := m.cfg.Host + ":" + strconv.Itoa(m.cfg.Port)

	if err := m.send(addr, auth, m.cfg.Username, []string{inbox}, body); err != nil {
		return fmt.Errorf("send contact email: %w", err)
	}
	return nil
}

// BuildContactMessage renders the RFC 5322 message for a contact submission.
// The submitter goes in Reply-To; the relay account is the envelope sender.
func BuildContactMessage(from, to string, msg *model.ContactMessage) []byte {
	name := headerSafe(msg.Name)

	var b bytes.Buffer
	writeHeader := func(k, v string) {
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(v)
		b.WriteString("\r\n")
	}
	writeHeader("From", fmt.Sprintf("NexLearn <%s>", from))
	writeHeader("To", to)
	writeHeader("Reply-To", headerSafe(msg.Email))
	writeHeader("Subject", "[NexLearn Contact] Pesan Baru dari "+name)
	writeHeader("Date", receivedAt(msg).Format(time.RFC1123Z))
	writeHeader("MIME-Version", "1.0")
	writeHeader("Content-Type", "text/html; charset=UTF-8")
	b.WriteString("\r\n")

	fmt.Fprintf(&b, `<div style="font-family: sans-serif; padding: 20px; border: 1px solid #eee;">
<h2 style="color: #7c3aed;">Pesan Baru dari Website</h2>
<p><strong>Nama:</strong> %s</p>
<p><strong>Email Pengirim:</strong> %s</p>
<hr />
<p><strong>Isi Pesan:</strong></p>
<p style="background: #f9f9f9; padding: 15px; border-radius: 10px;">%s</p>
</div>
`,
		html.EscapeString(msg.Name),
		html.EscapeString(msg.Email),
		strings.ReplaceAll(html.EscapeString(msg.Message), "\n", "<br />"),
	)
	return b.Bytes()
}

func receivedAt(msg *model.ContactMessage) time.Time {
	if msg.ReceivedAt.IsZero() {
		return time.Now().UTC()
	}
	return msg.ReceivedAt
}

// headerSafe strips line breaks so user input cannot add headers.
func headerSafe(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}
